// Package cache provides a minimal time-based cache for request-path reuse.
//
// The cache is an explicit value handed to its consumer, not package state,
// so independent instances (one per test, one per server) stay isolated.
// Concurrent refills on a miss are tolerated; the last writer wins.
package cache

import (
	"sync"
	"time"
)

// TTL holds one value that expires a fixed duration after it was set.
type TTL[T any] struct {
	mu       sync.Mutex
	value    T
	filledAt time.Time
	ttl      time.Duration
}

// NewTTL creates an empty cache with the given lifetime.
func NewTTL[T any](ttl time.Duration) *TTL[T] {
	return &TTL[T]{ttl: ttl}
}

// Get returns the cached value and whether it is still fresh at now.
func (c *TTL[T]) Get(now time.Time) (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.filledAt.IsZero() || now.Sub(c.filledAt) > c.ttl {
		var zero T
		return zero, false
	}
	return c.value, true
}

// Set stores a value with now as its fill time.
func (c *TTL[T]) Set(value T, now time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.value = value
	c.filledAt = now
}
