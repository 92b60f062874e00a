package service

import (
	"testing"
	"time"
)

// testClock is a settable time source for TTL tests.
type testClock struct {
	current time.Time
}

func (c *testClock) Now() time.Time {
	return c.current
}

func (c *testClock) Advance(d time.Duration) {
	c.current = c.current.Add(d)
}

func newTestCache(ttl time.Duration) (*ViewCache[[]string], *testClock) {
	clock := &testClock{current: time.Date(2024, time.May, 15, 8, 0, 0, 0, time.Local)}
	return NewViewCache[[]string](ttl, clock.Now), clock
}

func TestShouldFetchFreshAfterStore(t *testing.T) {
	cache, clock := newTestCache(5 * time.Minute)

	if !cache.ShouldFetch(false) {
		t.Error("uninitialized cache should require a fetch")
	}

	cache.Store([]string{"a"})
	if cache.ShouldFetch(false) {
		t.Error("cache should be fresh immediately after a successful fetch")
	}

	clock.Advance(4*time.Minute + 59*time.Second)
	if cache.ShouldFetch(false) {
		t.Error("cache should still be fresh just under the TTL")
	}

	clock.Advance(time.Second)
	if !cache.ShouldFetch(false) {
		t.Error("cache should be stale once elapsed time reaches the TTL")
	}
}

func TestShouldFetchForce(t *testing.T) {
	cache, _ := newTestCache(5 * time.Minute)
	cache.Store([]string{"a"})

	if !cache.ShouldFetch(true) {
		t.Error("forced fetch must always be allowed")
	}
}

func TestIsStale(t *testing.T) {
	cache, clock := newTestCache(5 * time.Minute)

	if !cache.IsStale() {
		t.Error("uninitialized cache should report stale")
	}

	cache.Store([]string{"a"})
	if cache.IsStale() {
		t.Error("freshly stored cache should not be stale")
	}

	clock.Advance(5 * time.Minute)
	if !cache.IsStale() {
		t.Error("cache should be stale at exactly the TTL")
	}
}

func TestDataSurvivesStaleness(t *testing.T) {
	cache, clock := newTestCache(5 * time.Minute)
	cache.Store([]string{"a", "b"})

	clock.Advance(time.Hour)

	data, ok := cache.Data()
	if !ok {
		t.Fatal("stale cache should still hand out its last good data")
	}
	if len(data) != 2 {
		t.Errorf("data length = %d, want 2", len(data))
	}
}

func TestInvalidate(t *testing.T) {
	cache, _ := newTestCache(5 * time.Minute)
	cache.Store([]string{"a"})

	cache.Invalidate()

	if _, ok := cache.Data(); ok {
		t.Error("invalidated cache should report no data")
	}
	if !cache.ShouldFetch(false) {
		t.Error("invalidated cache must force the next access to refetch")
	}
}
