// Package cache provides a small in-memory cache with per-entry expiry.
package cache

import (
	"sync"
	"time"
)

type entry[V any] struct {
	v   V
	exp time.Time
}

type TTLCache[K comparable, V any] struct {
	mu   sync.RWMutex
	data map[K]entry[V]
	ttl  time.Duration
	now  func() time.Time

	done     chan struct{}
	stopOnce sync.Once
}

// NewTTL creates a cache whose entries live for ttl. A background goroutine
// drops expired entries once per ttl until Stop is called, so keys that are
// never read again do not accumulate.
func NewTTL[K comparable, V any](ttl time.Duration) *TTLCache[K, V] {
	c := &TTLCache[K, V]{
		data: make(map[K]entry[V]),
		ttl:  ttl,
		now:  time.Now,
		done: make(chan struct{}),
	}
	if ttl > 0 {
		go c.sweepEvery(ttl)
	}
	return c
}

// WithClock replaces the time source. Used by tests.
func (c *TTLCache[K, V]) WithClock(now func() time.Time) *TTLCache[K, V] {
	c.mu.Lock()
	c.now = now
	c.mu.Unlock()
	return c
}

func (c *TTLCache[K, V]) Get(k K) (V, bool) {
	c.mu.RLock()
	e, ok := c.data[k]
	expired := ok && c.now().After(e.exp)
	c.mu.RUnlock()
	if !ok {
		var zero V
		return zero, false
	}
	if expired {
		c.mu.Lock()
		// A Set may have refreshed the key since the read lock was released.
		if cur, ok := c.data[k]; ok && c.now().After(cur.exp) {
			delete(c.data, k)
		}
		c.mu.Unlock()
		var zero V
		return zero, false
	}
	return e.v, true
}

func (c *TTLCache[K, V]) Set(k K, v V) {
	c.mu.Lock()
	c.data[k] = entry[V]{v: v, exp: c.now().Add(c.ttl)}
	c.mu.Unlock()
}

// Sweep removes every expired entry.
func (c *TTLCache[K, V]) Sweep() {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := c.now()
	for k, e := range c.data {
		if now.After(e.exp) {
			delete(c.data, k)
		}
	}
}

// Stop ends the background sweep. The cache stays usable.
func (c *TTLCache[K, V]) Stop() {
	c.stopOnce.Do(func() { close(c.done) })
}

func (c *TTLCache[K, V]) sweepEvery(every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-c.done:
			return
		case <-ticker.C:
			c.Sweep()
		}
	}
}

// Len counts entries, including expired ones not yet evicted.
func (c *TTLCache[K, V]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.data)
}
