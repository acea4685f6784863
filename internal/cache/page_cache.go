// Package cache holds rendered pages for a short, fixed time.
package cache

import (
	"sync"
	"time"
)

// DefaultTTL bounds how stale a cached index page may get.
const DefaultTTL = 20 * time.Second

// KeyPrefix namespaces entries for the global feed.
const KeyPrefix = "index_page"

type entry struct {
	value     []byte
	expiresAt time.Time
}

// sweepInterval is the minimum gap between two full scans for expired
// entries.
const sweepInterval = DefaultTTL

// PageCache is a process-wide TTL cache of rendered payloads. Entries are
// only ever removed by expiry: lazily on Get, and in bulk by Set at most
// once per sweepInterval.
type PageCache struct {
	mu        sync.RWMutex
	entries   map[string]entry
	now       func() time.Time
	nextSweep time.Time
}

// Option configures a PageCache
type Option func(*PageCache)

// WithClock replaces time.Now, mainly for tests.
func WithClock(now func() time.Time) Option {
	return func(c *PageCache) {
		c.now = now
	}
}

// NewPageCache creates an empty PageCache
func NewPageCache(opts ...Option) *PageCache {
	c := &PageCache{
		entries: make(map[string]entry),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get returns the live value stored under key.
func (c *PageCache) Get(key string) ([]byte, bool) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok {
		return nil, false
	}
	if !c.now().Before(e.expiresAt) {
		c.mu.Lock()
		if cur, ok := c.entries[key]; ok && !c.now().Before(cur.expiresAt) {
			delete(c.entries, key)
		}
		c.mu.Unlock()
		return nil, false
	}
	return e.value, true
}

// Set stores value under key until now + ttl.
func (c *PageCache) Set(key string, value []byte, ttl time.Duration) {
	now := c.now()

	c.mu.Lock()
	defer c.mu.Unlock()
	if !now.Before(c.nextSweep) {
		c.sweepLocked(now)
	}
	c.entries[key] = entry{value: value, expiresAt: now.Add(ttl)}
}

// sweepLocked drops every entry expired at now. c.mu must be held.
func (c *PageCache) sweepLocked(now time.Time) {
	for key, e := range c.entries {
		if !now.Before(e.expiresAt) {
			delete(c.entries, key)
		}
	}
	c.nextSweep = now.Add(sweepInterval)
}

// GetOrCompute returns the cached value for key or stores the result of
// compute. Failed computations are not cached. Concurrent misses on the
// same key may each call compute; the last write wins.
func (c *PageCache) GetOrCompute(key string, ttl time.Duration, compute func() ([]byte, error)) ([]byte, error) {
	if value, ok := c.Get(key); ok {
		return value, nil
	}

	value, err := compute()
	if err != nil {
		return nil, err
	}
	c.Set(key, value, ttl)
	return value, nil
}

// Len reports the number of stored entries, including expired ones not yet
// swept.
func (c *PageCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
