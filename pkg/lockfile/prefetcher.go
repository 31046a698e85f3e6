// SPDX-License-Identifier: MPL-2.0

package lockfile

import "context"

type (
	// PrefetchResult is the content hash computed for a locator.
	PrefetchResult struct {
		// Hash is an SRI hash, e.g. "sha256-...".
		Hash string `json:"hash"`
	}

	// Prefetcher computes a content hash for a URL-like locator ahead of the
	// real fetch. Locators are plain URLs, "github:<owner>/<repo>?ref=<rev>"
	// or "git+<url>?rev=<rev>". Retries, if any, are the implementation's concern.
	Prefetcher interface {
		Prefetch(ctx context.Context, locator string) (PrefetchResult, error)
	}

	// PrefetcherFunc adapts a function to the Prefetcher interface.
	PrefetcherFunc func(ctx context.Context, locator string) (PrefetchResult, error)
)

// Prefetch calls f.
func (f PrefetcherFunc) Prefetch(ctx context.Context, locator string) (PrefetchResult, error) {
	return f(ctx, locator)
}
