// SPDX-License-Identifier: MPL-2.0

package prefetch

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	"lockfetch-cli/pkg/lockfile"

	"github.com/cenkalti/backoff/v4"
	"github.com/charmbracelet/log"
	"mvdan.cc/sh/v3/shell"
)

const (
	// DefaultCommand is the prefetch command used when none is configured.
	DefaultCommand = "nix flake prefetch --json --extra-experimental-features 'nix-command flakes'"
	// DefaultAttempts is the number of times a failing prefetch is tried.
	DefaultAttempts = 3
	// DefaultTimeout bounds a single prefetch attempt.
	DefaultTimeout = 5 * time.Minute
)

var (
	// ErrEmptyCommand is returned when the prefetch command line has no words.
	ErrEmptyCommand = errors.New("empty prefetch command")
	// ErrCommandNotFound is returned when the prefetch binary is not on PATH.
	ErrCommandNotFound = errors.New("prefetch command not found")
	// ErrInvalidOutput is returned when the command output carries no hash.
	ErrInvalidOutput = errors.New("invalid prefetch output")
)

type (
	// Runner executes argv and returns its standard output.
	Runner func(ctx context.Context, argv []string) ([]byte, error)

	// NixOptions configures a Nix prefetcher.
	NixOptions struct {
		// Command is the shell-style command line; the locator is appended as
		// the last argument. Empty means DefaultCommand.
		Command string
		// Attempts is the total number of tries per locator. Zero means DefaultAttempts.
		Attempts int
		// Timeout bounds each attempt. Zero means DefaultTimeout.
		Timeout time.Duration
		// Logger receives debug and retry messages. Nil disables logging.
		Logger *log.Logger
		// Runner overrides process execution; used by tests.
		Runner Runner
	}

	// Nix prefetches locators with the nix CLI.
	Nix struct {
		argv     []string
		attempts int
		timeout  time.Duration
		logger   *log.Logger
		run      Runner
	}

	// nixOutput is the subset of `nix flake prefetch --json` output we read.
	nixOutput struct {
		Hash string `json:"hash"`
	}
)

// ParseCommand splits a shell-style command line into argv. Quotes,
// escapes and $VAR references are expanded like a POSIX shell would.
func ParseCommand(cmdline string) ([]string, error) {
	argv, err := shell.Fields(cmdline, os.Getenv)
	if err != nil {
		return nil, fmt.Errorf("failed to parse prefetch command %q: %w", cmdline, err)
	}
	if len(argv) == 0 {
		return nil, ErrEmptyCommand
	}
	return argv, nil
}

// NewNix creates a Nix prefetcher from opts.
func NewNix(opts NixOptions) (*Nix, error) {
	cmdline := opts.Command
	if strings.TrimSpace(cmdline) == "" {
		cmdline = DefaultCommand
	}
	argv, err := ParseCommand(cmdline)
	if err != nil {
		return nil, err
	}

	n := &Nix{
		argv:     argv,
		attempts: opts.Attempts,
		timeout:  opts.Timeout,
		logger:   opts.Logger,
		run:      opts.Runner,
	}
	if n.attempts <= 0 {
		n.attempts = DefaultAttempts
	}
	if n.timeout <= 0 {
		n.timeout = DefaultTimeout
	}
	if n.run == nil {
		n.run = execRunner
	}
	return n, nil
}

// Prefetch implements lockfile.Prefetcher.
func (n *Nix) Prefetch(ctx context.Context, locator string) (lockfile.PrefetchResult, error) {
	argv := append(append(make([]string, 0, len(n.argv)+1), n.argv...), locator)

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 500 * time.Millisecond
	policy := backoff.WithContext(backoff.WithMaxRetries(b, uint64(n.attempts-1)), ctx)

	op := func() (lockfile.PrefetchResult, error) {
		attemptCtx, cancel := context.WithTimeout(ctx, n.timeout)
		defer cancel()

		n.debug("prefetching", "locator", locator)
		out, err := n.run(attemptCtx, argv)
		if err != nil {
			if errors.Is(err, ErrCommandNotFound) {
				return lockfile.PrefetchResult{}, backoff.Permanent(err)
			}
			return lockfile.PrefetchResult{}, err
		}

		res, err := parseOutput(out)
		if err != nil {
			return lockfile.PrefetchResult{}, backoff.Permanent(err)
		}
		return res, nil
	}

	notify := func(err error, wait time.Duration) {
		if n.logger != nil {
			n.logger.Warn("prefetch failed, retrying", "locator", locator, "in", wait, "err", err)
		}
	}

	return backoff.RetryNotifyWithData(op, policy, notify)
}

func (n *Nix) debug(msg string, keyvals ...any) {
	if n.logger != nil {
		n.logger.Debug(msg, keyvals...)
	}
}

func parseOutput(out []byte) (lockfile.PrefetchResult, error) {
	var parsed nixOutput
	if err := json.Unmarshal(out, &parsed); err != nil {
		return lockfile.PrefetchResult{}, fmt.Errorf("%w: %v", ErrInvalidOutput, err)
	}
	if parsed.Hash == "" {
		return lockfile.PrefetchResult{}, fmt.Errorf("%w: no hash field", ErrInvalidOutput)
	}
	return lockfile.PrefetchResult{Hash: parsed.Hash}, nil
}

// execRunner runs argv as a child process, returning stdout. Stderr is folded
// into the error on failure.
func execRunner(ctx context.Context, argv []string) ([]byte, error) {
	path, err := exec.LookPath(argv[0])
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrCommandNotFound, argv[0])
	}

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, path, argv[1:]...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return nil, fmt.Errorf("%s: %w: %s", argv[0], err, msg)
		}
		return nil, fmt.Errorf("%s: %w", argv[0], err)
	}
	return stdout.Bytes(), nil
}
