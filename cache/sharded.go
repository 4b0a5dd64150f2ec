// Package cache provides a small sharded cache keyed by native handles.
//
// The safe layer uses it to memoize results of native info queries
// (platform and device strings, kernel argument descriptors), which are
// immutable for the life of a handle but cost a native round trip per
// query.
package cache

import (
	"hash/fnv"
	"sync"
	"sync/atomic"
)

// shardCount is the number of shards. Power of 2 for mask selection.
const shardCount = 16

const shardMask = shardCount - 1

// Hasher computes a hash for a key, used for shard selection.
type Hasher[K any] func(K) uint64

// UintptrHasher hashes a native handle value with FNV-1a.
func UintptrHasher(p uintptr) uint64 {
	h := fnv.New64a()
	var buf [8]byte
	for i := range buf {
		buf[i] = byte(p >> (8 * i))
	}
	_, _ = h.Write(buf[:]) // fnv.Write never returns an error
	return h.Sum64()
}

// StringHasher computes the FNV-1a hash of a string key.
func StringHasher(s string) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(s))
	return h.Sum64()
}

// Sharded is a thread-safe sharded map cache. Unlike an LRU it never
// evicts: the key space is bounded by live native handles, and entries
// for released handles are removed explicitly via Remove.
type Sharded[K comparable, V any] struct {
	shards [shardCount]*shard[K, V]
	hasher Hasher[K]

	hits   atomic.Uint64
	misses atomic.Uint64
}

type shard[K comparable, V any] struct {
	mu      sync.RWMutex
	entries map[K]V
}

// NewSharded creates an empty cache using the given hasher for shard
// selection.
func NewSharded[K comparable, V any](hasher Hasher[K]) *Sharded[K, V] {
	c := &Sharded[K, V]{hasher: hasher}
	for i := range c.shards {
		c.shards[i] = &shard[K, V]{entries: make(map[K]V)}
	}
	return c
}

func (c *Sharded[K, V]) getShard(key K) *shard[K, V] {
	return c.shards[c.hasher(key)&shardMask]
}

// Get retrieves a cached value.
func (c *Sharded[K, V]) Get(key K) (V, bool) {
	s := c.getShard(key)
	s.mu.RLock()
	v, ok := s.entries[key]
	s.mu.RUnlock()
	if ok {
		c.hits.Add(1)
	} else {
		c.misses.Add(1)
	}
	return v, ok
}

// Set stores a value.
func (c *Sharded[K, V]) Set(key K, value V) {
	s := c.getShard(key)
	s.mu.Lock()
	s.entries[key] = value
	s.mu.Unlock()
}

// Remove drops the entry for key, if present. Called when the handle
// owning the key is released.
func (c *Sharded[K, V]) Remove(key K) {
	s := c.getShard(key)
	s.mu.Lock()
	delete(s.entries, key)
	s.mu.Unlock()
}

// GetOrCreate returns the cached value for key, or runs create and
// caches its result. A failed create caches nothing, so transient
// native failures are retried on the next call. The create function
// runs with the shard lock held; keep it short.
func (c *Sharded[K, V]) GetOrCreate(key K, create func() (V, error)) (V, error) {
	s := c.getShard(key)

	s.mu.RLock()
	v, ok := s.entries[key]
	s.mu.RUnlock()
	if ok {
		c.hits.Add(1)
		return v, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if v, ok := s.entries[key]; ok {
		c.hits.Add(1)
		return v, nil
	}
	c.misses.Add(1)
	v, err := create()
	if err != nil {
		var zero V
		return zero, err
	}
	s.entries[key] = v
	return v, nil
}

// Len returns the total number of cached entries.
func (c *Sharded[K, V]) Len() int {
	n := 0
	for _, s := range c.shards {
		s.mu.RLock()
		n += len(s.entries)
		s.mu.RUnlock()
	}
	return n
}

// Stats returns cumulative hit and miss counts.
func (c *Sharded[K, V]) Stats() (hits, misses uint64) {
	return c.hits.Load(), c.misses.Load()
}
