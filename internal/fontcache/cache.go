// Package fontcache memoizes parsed fonts by the content of their bytes.
//
// The same font file is commonly requested at several sizes in one atlas;
// parsing it once per distinct payload keeps request calls cheap.
//
// Cache is safe for concurrent use and must not be copied after creation.
// It keeps a reference to every payload it has parsed until the entry is
// evicted or Clear is called.
package fontcache

import (
	"bytes"
	"hash/fnv"
	"sync"
)

// Key buckets font payloads. Two payloads with the same Key are only
// treated as the same font if their bytes are equal.
type Key struct {
	Hash uint64
	Len  int
}

// KeyOf computes the FNV-1a key of data.
func KeyOf(data []byte) Key {
	h := fnv.New64a()
	_, _ = h.Write(data)
	return Key{Hash: h.Sum64(), Len: len(data)}
}

// Cache is a thread-safe LRU of parsed fonts with a soft limit.
// When the limit is exceeded the least recently used quarter is evicted.
type Cache[V any] struct {
	mu        sync.Mutex
	entries   map[Key]*entry[V]
	softLimit int
	tick      int64

	hits, misses uint64
}

type entry[V any] struct {
	data  []byte
	value V
	atime int64
}

// New creates a cache holding about softLimit fonts.
// A softLimit of 0 means unlimited.
func New[V any](softLimit int) *Cache[V] {
	return &Cache[V]{
		entries:   make(map[Key]*entry[V]),
		softLimit: softLimit,
	}
}

// Get returns the font parsed from data, calling parse on a miss.
// Parse errors are returned and not cached. data is retained by the cache
// and must not be modified afterwards. A payload whose Key collides with a
// different cached payload replaces it.
func (c *Cache[V]) Get(data []byte, parse func([]byte) (V, error)) (V, error) {
	key := KeyOf(data)

	c.mu.Lock()
	defer c.mu.Unlock()

	c.tick++
	if e, ok := c.entries[key]; ok && bytes.Equal(e.data, data) {
		e.atime = c.tick
		c.hits++
		return e.value, nil
	}
	c.misses++

	v, err := parse(data)
	if err != nil {
		var zero V
		return zero, err
	}
	c.entries[key] = &entry[V]{data: data, value: v, atime: c.tick}
	if c.softLimit > 0 && len(c.entries) > c.softLimit {
		c.evictOldest()
	}
	return v, nil
}

// Len returns the number of cached fonts.
func (c *Cache[V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Stats returns the hit and miss counters.
func (c *Cache[V]) Stats() (hits, misses uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hits, c.misses
}

// Clear drops every cached font.
func (c *Cache[V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[Key]*entry[V])
	c.tick = 0
}

// evictOldest removes entries until 3/4 of softLimit remain.
// Caller must hold c.mu.
func (c *Cache[V]) evictOldest() {
	target := max(c.softLimit*3/4, 1)
	for len(c.entries) > target {
		var oldest Key
		oldestTick := int64(-1)
		for k, e := range c.entries {
			if oldestTick < 0 || e.atime < oldestTick {
				oldest, oldestTick = k, e.atime
			}
		}
		delete(c.entries, oldest)
	}
}
