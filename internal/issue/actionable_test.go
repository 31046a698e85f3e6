// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestActionableError_Error(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		err      *ActionableError
		expected string
	}{
		{
			name:     "operation only",
			err:      &ActionableError{Operation: "read lockfile"},
			expected: "failed to read lockfile",
		},
		{
			name:     "operation with resource",
			err:      &ActionableError{Operation: "read lockfile", Resource: "./bun.lock"},
			expected: "failed to read lockfile: ./bun.lock",
		},
		{
			name: "full context",
			err: &ActionableError{
				Operation: "read lockfile",
				Resource:  "./bun.lock",
				Cause:     errors.New("file not found"),
			},
			expected: "failed to read lockfile: ./bun.lock: file not found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := tt.err.Error(); got != tt.expected {
				t.Errorf("Error() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestActionableError_Format(t *testing.T) {
	t.Parallel()

	root := errors.New("exit status 1")
	err := NewErrorContext().
		WithOperation("prefetch source").
		WithResource("github:o/r?ref=abc").
		WithSuggestion("Check your network").
		WithSuggestion("Retry with --skip-errors").
		Wrap(fmt.Errorf("nix: %w", root)).
		Build()

	short := err.Format(false)
	if !strings.Contains(short, "  • Check your network") || !strings.Contains(short, "  • Retry with --skip-errors") {
		t.Errorf("Format(false) missing suggestions:\n%s", short)
	}
	if strings.Contains(short, "Error chain:") {
		t.Errorf("Format(false) should not include the error chain:\n%s", short)
	}

	verbose := err.Format(true)
	if !strings.Contains(verbose, "1. nix: exit status 1") || !strings.Contains(verbose, "2. exit status 1") {
		t.Errorf("Format(true) missing error chain:\n%s", verbose)
	}
}

func TestErrorContext_BuildRequiresOperation(t *testing.T) {
	t.Parallel()

	if got := NewErrorContext().WithResource("x").Build(); got != nil {
		t.Errorf("Build() without operation = %v, want nil", got)
	}
	if got := NewErrorContext().BuildError(); got != nil {
		t.Errorf("BuildError() without operation = %v, want nil", got)
	}
}

func TestActionableError_Unwrap(t *testing.T) {
	t.Parallel()

	sentinel := errors.New("sentinel")
	err := NewErrorContext().WithOperation("load configuration").Wrap(sentinel).BuildError()
	if !errors.Is(err, sentinel) {
		t.Errorf("errors.Is(err, sentinel) = false")
	}
}

// multiErr wraps a sentinel and a cause the way lockfile.PrefetchError does.
type multiErr struct{ sentinel, cause error }

func (e *multiErr) Error() string   { return "prefetch x: " + e.cause.Error() }
func (e *multiErr) Unwrap() []error { return []error{e.sentinel, e.cause} }

func TestActionableError_FormatFollowsMultiWrap(t *testing.T) {
	t.Parallel()

	root := errors.New("exit status 1")
	err := NewErrorContext().
		WithOperation("convert entry").
		Wrap(&multiErr{sentinel: errors.New("prefetch failed"), cause: fmt.Errorf("nix: %w", root)}).
		Build()

	verbose := err.Format(true)
	for _, want := range []string{"1. prefetch x: nix: exit status 1", "2. nix: exit status 1", "3. exit status 1"} {
		if !strings.Contains(verbose, want) {
			t.Errorf("Format(true) missing %q:\n%s", want, verbose)
		}
	}
	if strings.Contains(verbose, "4.") {
		t.Errorf("Format(true) followed the sentinel:\n%s", verbose)
	}
}

func TestIssueOf(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("convert: %w", NewErrorContext().
		WithOperation("read lockfile").
		WithIssue(LockfileNotFoundId).
		BuildError())

	iss := IssueOf(err)
	if iss == nil || iss.Id() != LockfileNotFoundId {
		t.Errorf("IssueOf() = %v, want LockfileNotFoundId", iss)
	}
	if IssueOf(errors.New("plain")) != nil {
		t.Error("IssueOf(plain error) should be nil")
	}
	if IssueOf(NewErrorContext().WithOperation("x").BuildError()) != nil {
		t.Error("IssueOf(error without issue) should be nil")
	}
}
