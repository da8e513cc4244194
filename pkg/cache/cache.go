// Package cache provides a small in-process TTL memoization layer for
// expensive upstream read operations.
//
// The key space is the fixed set of operation names ("health",
// "overview"), never user input, so the map needs no eviction beyond TTL
// expiry. Entries are only ever written from
// successful computations; a failed refresh propagates its error and
// leaves the cache untouched, so stale values are never served.
package cache

import (
	"context"
	"sync"
	"time"
)

type entry struct {
	value      any
	insertedAt time.Time
}

// Cache memoizes computed values per operation key. The zero value is not
// usable; construct with New.
type Cache struct {
	mu      sync.Mutex
	entries map[string]entry
	now     func() time.Time
}

// New creates an empty cache using the wall clock.
func New() *Cache {
	return NewWithClock(time.Now)
}

// NewWithClock creates a cache with an injectable clock, used by tests to
// control TTL expiry.
func NewWithClock(now func() time.Time) *Cache {
	return &Cache{
		entries: make(map[string]entry),
		now:     now,
	}
}

func (c *Cache) lookup(key string, ttl time.Duration) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if c.now().Sub(e.insertedAt) > ttl {
		delete(c.entries, key)
		return nil, false
	}
	return e.value, true
}

func (c *Cache) store(key string, value any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = entry{value: value, insertedAt: c.now()}
}

// GetOrCompute returns the value stored under key if it is no older than
// ttl. Otherwise compute is invoked; its result is stored and returned on
// success, and its error is propagated without writing the cache on
// failure.
//
// Concurrent callers hitting a cold key may invoke compute in parallel.
// That brief duplication is tolerated; the last writer wins.
func GetOrCompute[T any](ctx context.Context, c *Cache, key string, ttl time.Duration, compute func(context.Context) (T, error)) (T, error) {
	if v, ok := c.lookup(key, ttl); ok {
		Hits.WithLabelValues(key).Inc()
		return v.(T), nil
	}
	Misses.WithLabelValues(key).Inc()

	value, err := compute(ctx)
	if err != nil {
		var zero T
		return zero, err
	}

	c.store(key, value)
	return value, nil
}
