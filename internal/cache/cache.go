// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package cache

import (
	"sync"
	"sync/atomic"
)

// Cache is a generic thread-safe cache without eviction.
//
// Entries live until Drain. Cache must not be copied after creation.
type Cache[K comparable, V any] struct {
	mu      sync.Mutex
	entries map[K]V
	order   []K // insertion order, for deterministic Range and Drain

	hits    atomic.Uint64
	misses  atomic.Uint64
	creates atomic.Uint64
}

// New creates an empty cache.
func New[K comparable, V any]() *Cache[K, V] {
	return &Cache[K, V]{
		entries: make(map[K]V),
	}
}

// Get retrieves a value from the cache.
// Returns (value, true) if found, (zero, false) otherwise.
// Get counts toward the hit/miss statistics.
func (c *Cache[K, V]) Get(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	v, ok := c.entries[key]
	if ok {
		c.hits.Add(1)
	} else {
		c.misses.Add(1)
	}
	return v, ok
}

// Contains reports whether key is cached without touching statistics.
func (c *Cache[K, V]) Contains(key K) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	_, ok := c.entries[key]
	return ok
}

// GetOrCreate returns the cached value for key, or calls create and caches
// its result. create runs under the cache lock, so it is called at most
// once per key even with concurrent callers. If create fails nothing is
// cached and the error is returned; a later call retries.
//
// created reports whether this call inserted the value.
func (c *Cache[K, V]) GetOrCreate(key K, create func() (V, error)) (value V, created bool, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if v, ok := c.entries[key]; ok {
		c.hits.Add(1)
		return v, false, nil
	}
	c.misses.Add(1)

	v, err := create()
	if err != nil {
		var zero V
		return zero, false, err
	}

	c.entries[key] = v
	c.order = append(c.order, key)
	c.creates.Add(1)
	return v, true, nil
}

// Range calls fn for every entry in insertion order until fn returns
// false. fn must not call back into the cache.
func (c *Cache[K, V]) Range(fn func(key K, value V) bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, k := range c.order {
		if !fn(k, c.entries[k]) {
			return
		}
	}
}

// Drain removes every entry and returns the values in reverse insertion
// order, ready for release. Statistics are kept.
func (c *Cache[K, V]) Drain() []V {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]V, 0, len(c.order))
	for i := len(c.order) - 1; i >= 0; i-- {
		out = append(out, c.entries[c.order[i]])
	}
	c.entries = make(map[K]V)
	c.order = nil
	return out
}

// Len returns the number of entries in the cache.
func (c *Cache[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return len(c.entries)
}

// Stats returns cache statistics.
func (c *Cache[K, V]) Stats() Stats {
	hits := c.hits.Load()
	misses := c.misses.Load()

	var rate float64
	if total := hits + misses; total > 0 {
		rate = float64(hits) / float64(total)
	}

	return Stats{
		Len:     c.Len(),
		Hits:    hits,
		Misses:  misses,
		Creates: c.creates.Load(),
		HitRate: rate,
	}
}

// Stats contains cache statistics.
type Stats struct {
	// Len is the current number of entries.
	Len int
	// Hits is the number of lookups that found an entry.
	Hits uint64
	// Misses is the number of lookups that found nothing.
	Misses uint64
	// Creates is the number of successful create callbacks.
	Creates uint64
	// HitRate is Hits / (Hits + Misses), 0.0 to 1.0.
	HitRate float64
}
