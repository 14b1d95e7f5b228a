// Package cache holds the TTL view cache.
//
// Caching is a read-path convenience, never a source of truth: an
// entry is just a recently derived view, and expiry forces the next
// read back through fetch-and-reconcile. Nothing in the cache is
// durable and losing it costs one refetch.
package cache

import (
	"sync"
	"time"
)

// Key identifies one cached view: the view type plus a canonical
// rendering of its parameters. Two requests for the same view of the
// same entity share an entry; everything else does not.
type Key struct {
	ViewType string
	Params   string
}

// Cache is a TTL map from view keys to derived views. Always injected,
// never a package singleton, so tests and the harness control exactly
// what is warm. Safe for concurrent use.
type Cache struct {
	ttl time.Duration
	now func() time.Time

	mu      sync.Mutex
	entries map[Key]entry
}

type entry struct {
	value   any
	expires time.Time
}

// New builds a cache with the given TTL. A non-positive TTL disables
// caching entirely: Get never hits and Put is a no-op.
func New(ttl time.Duration) *Cache {
	return NewWithClock(ttl, time.Now)
}

// NewWithClock injects the time source, for tests.
func NewWithClock(ttl time.Duration, now func() time.Time) *Cache {
	return &Cache{ttl: ttl, now: now, entries: make(map[Key]entry)}
}

// Get returns the cached view for a key if it is still fresh. Expired
// entries are evicted lazily on access.
func (c *Cache) Get(key Key) (any, bool) {
	if c.ttl <= 0 {
		return nil, false
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if c.now().After(e.expires) {
		delete(c.entries, key)
		return nil, false
	}
	return e.value, true
}

// Put stores a derived view under a key.
func (c *Cache) Put(key Key, value any) {
	if c.ttl <= 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = entry{value: value, expires: c.now().Add(c.ttl)}
}

// Invalidate drops one key. Called after a publish that supersedes the
// cached view, so the next read reflects the writer's own record.
func (c *Cache) Invalidate(key Key) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
}

// InvalidateView drops every entry of one view type.
func (c *Cache) InvalidateView(viewType string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for k := range c.entries {
		if k.ViewType == viewType {
			delete(c.entries, k)
		}
	}
}

// Len reports the number of stored entries, expired ones included.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
