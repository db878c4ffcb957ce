package cache

import (
	"sync"
	"time"
)

// Cache holds one value with the time it was fetched and how long it stays fresh.
// Every fetch takes a sequence number; a result older than the last committed one is dropped.
type Cache[V any] struct {
	mu        sync.RWMutex
	value     V
	loaded    bool
	fetchedAt time.Time
	ttl       time.Duration
	issued    uint64
	committed uint64
	now       func() time.Time
}

// New returns an empty cache.
func New[V any](ttl time.Duration) *Cache[V] {
	return &Cache[V]{ttl: ttl, now: time.Now}
}

// NewLoaded returns a cache already holding v, fresh as of now.
func NewLoaded[V any](v V, ttl time.Duration) *Cache[V] {
	c := New[V](ttl)
	c.value = v
	c.loaded = true
	c.fetchedAt = c.now()
	return c
}

// Get returns the cached value, stale or not, and whether anything has been loaded.
func (c *Cache[V]) Get() (V, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.value, c.loaded
}

// Stale reports whether the value is missing or older than the ttl.
func (c *Cache[V]) Stale() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return !c.loaded || c.now().Sub(c.fetchedAt) >= c.ttl
}

// FetchedAt returns when the current value was fetched.
func (c *Cache[V]) FetchedAt() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.fetchedAt
}

// TTL returns the freshness window.
func (c *Cache[V]) TTL() time.Duration { return c.ttl }

// Begin reserves the sequence number for a new fetch.
func (c *Cache[V]) Begin() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.issued++
	return c.issued
}

// Commit stores v fetched under seq. It returns false when a newer fetch already committed.
func (c *Cache[V]) Commit(seq uint64, v V) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if seq <= c.committed {
		return false
	}
	c.committed = seq
	c.value = v
	c.loaded = true
	c.fetchedAt = c.now()
	return true
}
