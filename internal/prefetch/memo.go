// SPDX-License-Identifier: MPL-2.0

package prefetch

import (
	"context"
	"sync"

	"lockfetch-cli/pkg/lockfile"

	"golang.org/x/sync/singleflight"
)

// Memo caches successful prefetch results by locator. Concurrent requests for
// the same locator share one underlying call. Failures are not cached.
type Memo struct {
	next  lockfile.Prefetcher
	group singleflight.Group

	mu    sync.Mutex
	cache map[string]lockfile.PrefetchResult
}

// NewMemo wraps next with a per-locator cache.
func NewMemo(next lockfile.Prefetcher) *Memo {
	return &Memo{
		next:  next,
		cache: make(map[string]lockfile.PrefetchResult),
	}
}

// Prefetch implements lockfile.Prefetcher.
func (m *Memo) Prefetch(ctx context.Context, locator string) (lockfile.PrefetchResult, error) {
	m.mu.Lock()
	res, ok := m.cache[locator]
	m.mu.Unlock()
	if ok {
		return res, nil
	}

	v, err, _ := m.group.Do(locator, func() (any, error) {
		res, err := m.next.Prefetch(ctx, locator)
		if err != nil {
			return nil, err
		}
		m.mu.Lock()
		m.cache[locator] = res
		m.mu.Unlock()
		return res, nil
	})
	if err != nil {
		return lockfile.PrefetchResult{}, err
	}
	return v.(lockfile.PrefetchResult), nil
}

// Len returns the number of cached locators.
func (m *Memo) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.cache)
}
