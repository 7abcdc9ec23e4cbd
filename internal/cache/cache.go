package cache

import (
	"math/rand"
	"time"

	"github.com/oklog/ulid"
	"github.com/rs/zerolog"
)

// Policy selects the eviction policy of a cache built by New.
type Policy string

// Supported eviction policies.
const (
	// LRU evicts the entry that has gone longest without being
	// read or written.
	LRU Policy = "lru"
	// LFU evicts the entry with the lowest access count, breaking
	// ties towards the least recently used.
	LFU Policy = "lfu"
)

// Cache describes an entity of a cache.
//
// A cache holds at most its capacity of entries. Writing a new key
// to a full cache evicts exactly one entry, chosen by the eviction
// policy of the implementation. Keys must be comparable and are
// unique across the live cache; values are opaque to the engine.
type Cache interface {
	// Get gets the value stored under the key. A hit promotes the
	// entry according to the eviction policy, so a Get mutates the
	// internal ordering state even though it looks like a pure
	// read. A miss is a normal outcome reported by the boolean,
	// never an error. This function must be implemented in O(1)
	// complexity.
	Get(key interface{}) (interface{}, bool)
	// Put stores the value under the key. An existing key is
	// overwritten in place and promoted like a hit; a new key on a
	// full cache evicts one entry first. Putting into a cache of
	// capacity zero is a no-op. This function must be implemented
	// in O(1) complexity.
	Put(key, value interface{})
	// Peek gets the value stored under the key without promoting
	// the entry.
	Peek(key interface{}) (interface{}, bool)
	// Contains returns true if the key is in the cache, without
	// promoting the entry.
	Contains(key interface{}) bool
	// Remove deletes the entry stored under the key. An error is
	// raised if the key isn't in the cache.
	Remove(key interface{}) error
	// Clear drops every entry from the cache.
	Clear()
	// Len returns the number of entries currently in the cache.
	Len() int
	// Capacity returns the max capacity of the cache.
	Capacity() int
	// Full returns true if the cache is full, else returns false.
	Full() bool
}

// New creates a cache of the given capacity using the requested
// eviction policy. An error is raised for an unknown policy or a
// negative capacity.
func New(policy Policy, capacity int, log zerolog.Logger) (Cache, error) {
	switch policy {
	case LRU:
		return NewLRUCache(capacity, log)
	case LFU:
		return NewLFUCache(capacity, log)
	default:
		return nil, ErrUnknownPolicy
	}
}

// newInstanceID returns the ULID identifying one cache instance
// in its log context.
func newInstanceID() ulid.ULID {
	t := time.Now()
	entropy := rand.New(rand.NewSource(t.UnixNano()))
	return ulid.MustNew(ulid.Timestamp(t), entropy)
}
