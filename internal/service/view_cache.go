package service

import (
	"sync"
	"time"
)

// ViewCache holds the most recent successful fetch of one raw collection
// together with its fetch timestamp. Data is fresh while less than the TTL
// has elapsed; once stale, the next access triggers a refetch.
//
// The cache is advisory only: it decides whether a fetch is needed but does
// not serialize fetches itself. Overlapping-call deduplication lives with
// the caller (see ViewEngine's singleflight group).
type ViewCache[T any] struct {
	mu          sync.Mutex
	ttl         time.Duration
	now         func() time.Time
	data        T
	fetchedAt   time.Time
	initialized bool
}

// NewViewCache creates a cache with the given TTL. A nil now falls back to
// time.Now; tests inject a controllable clock.
func NewViewCache[T any](ttl time.Duration, now func() time.Time) *ViewCache[T] {
	if now == nil {
		now = time.Now
	}
	return &ViewCache[T]{ttl: ttl, now: now}
}

// IsStale reports whether the elapsed time since the last successful fetch
// has reached the TTL. An uninitialized cache is always stale.
func (c *ViewCache[T]) IsStale() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.staleLocked()
}

func (c *ViewCache[T]) staleLocked() bool {
	if !c.initialized {
		return true
	}
	return c.now().Sub(c.fetchedAt) >= c.ttl
}

// ShouldFetch reports whether a fetch is required: always when forced,
// otherwise only when uninitialized or stale.
func (c *ViewCache[T]) ShouldFetch(force bool) bool {
	if force {
		return true
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return !c.initialized || c.staleLocked()
}

// Store records a successful fetch result and stamps it with the current
// time. Failed fetches must not be stored: stale data stays available for
// display while the caller surfaces the error.
func (c *ViewCache[T]) Store(data T) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data = data
	c.fetchedAt = c.now()
	c.initialized = true
}

// Data returns the cached collection and whether a successful fetch has ever
// populated it. Stale data is still returned; freshness is ShouldFetch's
// concern.
func (c *ViewCache[T]) Data() (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.data, c.initialized
}

// Invalidate clears the cached data and timestamp so the next access
// refetches unconditionally.
func (c *ViewCache[T]) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	var zero T
	c.data = zero
	c.fetchedAt = time.Time{}
	c.initialized = false
}
