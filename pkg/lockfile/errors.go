// SPDX-License-Identifier: MPL-2.0

package lockfile

import (
	"errors"
	"fmt"

	"lockfetch-cli/pkg/fetcher"
)

var (
	// ErrUnexpectedEntryLength is the sentinel error wrapped by UnexpectedEntryLengthError.
	ErrUnexpectedEntryLength = errors.New("unexpected package entry length")
	// ErrNoAtInIdentifier is returned when an identifier has no "@" where one is required.
	ErrNoAtInIdentifier = fetcher.ErrNoAtInIdentifier
	// ErrMissingGitRef is returned when a git or GitHub spec has no "#<rev>".
	ErrMissingGitRef = errors.New("missing git ref")
	// ErrImproperGitHubURL is returned when a github: spec has no "/" between owner and repo.
	ErrImproperGitHubURL = errors.New("improper GitHub URL")
	// ErrMissingFileSpecifier is returned when a local package lacks "file:".
	ErrMissingFileSpecifier = errors.New("missing file specifier")
	// ErrMissingWorkspaceSpecifier is returned when a workspace package lacks "workspace:".
	ErrMissingWorkspaceSpecifier = errors.New("missing workspace specifier")
	// ErrPrefetchFailed is the sentinel error wrapped by PrefetchError.
	ErrPrefetchFailed = errors.New("prefetch failed")
)

type (
	// UnexpectedEntryLengthError is returned when a tuple's arity is outside 1-4.
	// It wraps ErrUnexpectedEntryLength for errors.Is() compatibility.
	UnexpectedEntryLengthError struct {
		Length int
	}

	// PrefetchError is returned when the Prefetcher fails for a locator.
	// It matches both ErrPrefetchFailed and the prefetcher's own error.
	PrefetchError struct {
		Locator string
		Err     error
	}
)

// Error implements the error interface for UnexpectedEntryLengthError.
func (e *UnexpectedEntryLengthError) Error() string {
	return fmt.Sprintf("unexpected package entry length %d (valid: 1-4)", e.Length)
}

// Unwrap returns ErrUnexpectedEntryLength for errors.Is() compatibility.
func (e *UnexpectedEntryLengthError) Unwrap() error { return ErrUnexpectedEntryLength }

// Error implements the error interface for PrefetchError.
func (e *PrefetchError) Error() string {
	return fmt.Sprintf("prefetch %s: %v", e.Locator, e.Err)
}

// Unwrap returns the sentinel and the underlying prefetcher error.
func (e *PrefetchError) Unwrap() []error {
	return []error{ErrPrefetchFailed, e.Err}
}
