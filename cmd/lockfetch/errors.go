// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"os"

	"lockfetch-cli/internal/convert"
	"lockfetch-cli/internal/issue"
	"lockfetch-cli/internal/prefetch"
	"lockfetch-cli/pkg/lockfile"
)

// withIssue links a help page to err, wrapping it in an ActionableError for
// operation when it is not one already.
func withIssue(err error, operation string, id issue.Id) error {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		if ae.Issue == 0 {
			ae.Issue = id
		}
		return err
	}
	return issue.NewErrorContext().
		WithOperation(operation).
		WithIssue(id).
		Wrap(err).
		BuildError()
}

// lockfileError explains a failure to read or parse the lockfile at path.
func lockfileError(path string, err error) error {
	ctx := issue.NewErrorContext().
		WithOperation("read lockfile").
		WithResource(path).
		Wrap(err)

	if errors.Is(err, os.ErrNotExist) {
		return ctx.
			WithIssue(issue.LockfileNotFoundId).
			WithSuggestion("Pass the lockfile path explicitly, e.g. 'lockfetch convert ./app/bun.lock'").
			BuildError()
	}
	return ctx.
		WithIssue(issue.LockfileParseErrorId).
		WithSuggestion("Regenerate the lockfile with 'bun install'").
		BuildError()
}

// entryError explains a failed conversion of a single lockfile entry.
func entryError(err error) error {
	ctx := issue.NewErrorContext().WithOperation("convert entry")

	var entryErr *convert.EntryError
	if errors.As(err, &entryErr) {
		ctx = ctx.WithResource(entryErr.Name).Wrap(entryErr.Err)
	} else {
		ctx = ctx.Wrap(err)
	}

	switch {
	case errors.Is(err, prefetch.ErrCommandNotFound):
		return ctx.
			WithIssue(issue.PrefetchCommandNotFoundId).
			WithSuggestion("Install Nix, or set 'prefetch.command' in your config").
			BuildError()
	case errors.Is(err, lockfile.ErrPrefetchFailed):
		return ctx.
			WithIssue(issue.PrefetchFailedId).
			WithSuggestion("Use --skip-errors to convert the remaining entries").
			BuildError()
	default:
		return ctx.
			WithIssue(issue.EntryDecodeFailedId).
			WithSuggestion("Run 'lockfetch inspect' to check the entry's shape").
			BuildError()
	}
}
