// SPDX-License-Identifier: MPL-2.0

package convert

import (
	"context"
	"errors"
	"fmt"
	"runtime"

	"lockfetch-cli/pkg/fetcher"
	"lockfetch-cli/pkg/lockfile"

	"github.com/charmbracelet/log"
	"golang.org/x/exp/slices"
	"golang.org/x/sync/errgroup"
)

const (
	// PolicyAbort stops at the first failing entry.
	PolicyAbort Policy = iota
	// PolicySkip records failing entries and continues with the rest.
	PolicySkip
)

// ErrInvalidPolicy is returned when a Policy value is out of range.
var ErrInvalidPolicy = errors.New("invalid error policy")

type (
	// Policy selects what happens when an entry fails to decode.
	Policy int

	// EntryDecoder decodes a single lockfile entry. *lockfile.Decoder implements it.
	EntryDecoder interface {
		Decode(ctx context.Context, entry lockfile.RawEntry) (fetcher.Package, error)
	}

	// Converter decodes batches of lockfile entries.
	Converter struct {
		// Decoder decodes each entry.
		Decoder EntryDecoder
		// Jobs bounds concurrent decodes. Zero or less means GOMAXPROCS.
		Jobs int
		// Policy controls failure handling.
		Policy Policy
		// Logger receives per-entry messages. Nil disables logging.
		Logger *log.Logger
		// OnEntry, if set, is called once per finished entry from the worker
		// goroutines; it must be safe for concurrent use.
		OnEntry func(Progress)
	}

	// Progress reports one finished entry.
	Progress struct {
		Name string
		Err  error
	}

	// Result is the outcome of a conversion.
	Result struct {
		// Packages holds the decoded packages in lockfile order.
		Packages []fetcher.Package
		// Skipped holds the entries that failed under PolicySkip, in lockfile order.
		Skipped []*EntryError
	}

	// EntryError attributes a decode failure to a lockfile entry.
	EntryError struct {
		Name string
		Err  error
	}
)

func (p Policy) String() string {
	switch p {
	case PolicyAbort:
		return "abort"
	case PolicySkip:
		return "skip"
	default:
		return fmt.Sprintf("Policy(%d)", int(p))
	}
}

// IsValid returns whether p is a known policy.
func (p Policy) IsValid() (bool, []error) {
	switch p {
	case PolicyAbort, PolicySkip:
		return true, nil
	default:
		return false, []error{fmt.Errorf("%w: %d", ErrInvalidPolicy, int(p))}
	}
}

func (e *EntryError) Error() string {
	return fmt.Sprintf("entry %q: %v", e.Name, e.Err)
}

func (e *EntryError) Unwrap() error { return e.Err }

// Convert decodes entries without modifying them. Under PolicyAbort the
// first failure cancels the remaining work and is returned as an
// *EntryError. The returned error is also non-nil if ctx is cancelled.
func (c *Converter) Convert(ctx context.Context, entries []lockfile.RawEntry) (*Result, error) {
	if valid, errs := c.Policy.IsValid(); !valid {
		return nil, errors.Join(errs...)
	}

	jobs := c.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	pkgs := make([]fetcher.Package, len(entries))
	failed := make([]*EntryError, len(entries))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)

	for i, entry := range entries {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			// Decoding consumes Values; work on a copy so entries can be reused.
			entry.Values = slices.Clone(entry.Values)
			pkg, err := c.Decoder.Decode(gctx, entry)
			c.report(Progress{Name: entry.Name, Err: err})
			if err != nil {
				entryErr := &EntryError{Name: entry.Name, Err: err}
				if c.Policy == PolicyAbort {
					return entryErr
				}
				c.debug("entry failed", "name", entry.Name, "err", err)
				failed[i] = entryErr
				return nil
			}

			c.debug("decoded entry", "name", entry.Name, "package", pkg.Name, "kind", pkg.Kind())
			pkgs[i] = pkg
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	// errgroup only reports worker errors; a parent cancellation that
	// happened before any worker failed still leaves the batch incomplete.
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	res := &Result{Packages: make([]fetcher.Package, 0, len(entries))}
	for i := range entries {
		if failed[i] != nil {
			res.Skipped = append(res.Skipped, failed[i])
			continue
		}
		res.Packages = append(res.Packages, pkgs[i])
	}
	return res, nil
}

func (c *Converter) report(p Progress) {
	if c.OnEntry != nil {
		c.OnEntry(p)
	}
}

func (c *Converter) debug(msg string, keyvals ...any) {
	if c.Logger != nil {
		c.Logger.Debug(msg, keyvals...)
	}
}
