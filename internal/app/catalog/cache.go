// internal/app/catalog/cache.go
package catalog

import (
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// DefaultCacheEntries caps how many distinct URLs the revalidation cache holds.
const DefaultCacheEntries = 500

// response is a fetched catalog response.
type response struct {
	status int
	body   []byte
}

func (r response) ok() bool {
	return r.status >= 200 && r.status < 300
}

// cacheEntry is immutable once stored apart from refreshing, which is guarded
// by revalidateCache.mu.
type cacheEntry struct {
	resp       response
	fetchedAt  time.Time
	refreshing bool
}

// revalidateCache keeps successful responses by URL for a revalidation window.
// Entries older than the window are still served, but the caller is told to
// refresh them. The least recently used URL is evicted once maxEntries is
// reached, and an entry that has not been refetched within two windows
// expires. It is safe for concurrent use.
type revalidateCache struct {
	mu      sync.Mutex
	entries *expirable.LRU[string, *cacheEntry]
	window  time.Duration
	now     func() time.Time
}

func newRevalidateCache(window time.Duration, maxEntries int) *revalidateCache {
	if maxEntries <= 0 {
		maxEntries = DefaultCacheEntries
	}
	return &revalidateCache{
		entries: expirable.NewLRU[string, *cacheEntry](maxEntries, nil, 2*window),
		window:  window,
		now:     time.Now,
	}
}

// get returns the cached response for url. fresh is false when the entry is
// older than the window.
func (c *revalidateCache) get(url string) (resp response, fresh, ok bool) {
	e, exists := c.entries.Get(url)
	if !exists {
		return response{}, false, false
	}
	return e.resp, c.now().Sub(e.fetchedAt) < c.window, true
}

// put stores a response. Only 2xx responses are kept.
func (c *revalidateCache) put(url string, resp response) {
	if !resp.ok() {
		return
	}
	c.entries.Add(url, &cacheEntry{resp: resp, fetchedAt: c.now()})
}

// beginRefresh marks a stale entry as being refreshed. It returns false if a
// refresh is already running or the entry is gone.
func (c *revalidateCache) beginRefresh(url string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, exists := c.entries.Peek(url)
	if !exists || e.refreshing {
		return false
	}
	e.refreshing = true
	return true
}

// endRefresh clears the refreshing mark after a failed refresh so the next
// stale read can try again. A successful refresh replaces the entry via put.
func (c *revalidateCache) endRefresh(url string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if e, exists := c.entries.Peek(url); exists {
		e.refreshing = false
	}
}

// len returns the number of cached URLs.
func (c *revalidateCache) len() int {
	return c.entries.Len()
}
