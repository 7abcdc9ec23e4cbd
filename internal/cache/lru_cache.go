package cache

import (
	"sync"

	"github.com/rs/zerolog"
)

var _ Cache = (*LRUCache)(nil)

// LRUCache implements a cache. It uses a linked list as the
// primary data structure along with a hash-map for checking the
// existence of an element in the cache.
//
// The starting element in the linked list will always be the most
// recently used element in the cache and will be maintained that
// way by all the operating functions:
// * Maintaining a logical order in the list - first element is MRU.
// * At every insertion, the new entry is placed at the head.
// * After every access, the entry is moved back to the head.
// This ensures that the LRU position is always the element just
// before the tail sentinel, which is the one evicted when a new
// key arrives at capacity.
//
// The hash map maintains the existence of the element in the cache
// and maps each key to its node in the list, so every operation
// runs in O(1).
type LRUCache struct {
	capacity int
	size     int
	m        map[interface{}]*node
	ll       *list
	mu       sync.Mutex
	log      zerolog.Logger

	// OnEvicted, when non-nil, is called with the key and value of
	// every entry removed by a capacity eviction. It is not called
	// for Remove or Clear. It runs with the cache lock held.
	OnEvicted func(key, value interface{})
}

// NewLRUCache creates a new LRUCache of the provided capacity.
//
// A negative capacity is rejected with ErrInvalidCapacity. A
// capacity of zero builds a permanently empty cache: every Put is
// a no-op and every Get misses.
func NewLRUCache(capacity int, log zerolog.Logger) (*LRUCache, error) {
	if capacity < 0 {
		return nil, ErrInvalidCapacity
	}
	return &LRUCache{
		capacity: capacity,
		m:        make(map[interface{}]*node),
		ll:       newList(),
		log: log.With().
			Str("cache", newInstanceID().String()).
			Str("policy", string(LRU)).
			Logger(),
	}, nil
}

// Get gets an element from the cache.
//
// Whenever an element is retrieved from the cache, it's bumped to
// the MRU position in the list, so even a read reorders state.
func (lru *LRUCache) Get(key interface{}) (interface{}, bool) {
	lru.mu.Lock()
	defer lru.mu.Unlock()
	n, ok := lru.m[key]
	if !ok {
		lru.
			log.
			Debug().
			Interface("key", key).
			Msg("miss")
		return nil, false
	}
	lru.ll.remove(n)
	lru.ll.pushFront(n)
	lru.
		log.
		Debug().
		Interface("key", key).
		Msg("hit")
	return n.entry.Value, true
}

// Put inserts an element into the cache. All insertions occur at
// the head of the list.
//
// Removal of the LRU element is done by deleting the node just
// before the tail sentinel, making place for the new node.
func (lru *LRUCache) Put(key, value interface{}) {
	lru.mu.Lock()
	defer lru.mu.Unlock()
	if lru.capacity == 0 {
		return
	}
	if n, ok := lru.m[key]; ok {
		n.entry.Value = value
		lru.ll.remove(n)
		lru.ll.pushFront(n)
		lru.
			log.
			Debug().
			Interface("key", key).
			Msg("overwrite")
		return
	}
	if lru.size == lru.capacity {
		lru.evict()
	}
	n := &node{entry: &Entry{Key: key, Value: value}}
	lru.ll.pushFront(n)
	lru.m[key] = n
	lru.size++
	lru.
		log.
		Debug().
		Interface("key", key).
		Msg("insert")
}

// evict removes the least recently used entry from both the list
// and the map in one operation. The caller must hold the lock and
// the cache must not be empty.
func (lru *LRUCache) evict() {
	n := lru.ll.back()
	delete(lru.m, n.entry.Key)
	lru.ll.remove(n)
	lru.size--
	lru.
		log.
		Debug().
		Interface("key", n.entry.Key).
		Msg("evicted")
	if lru.OnEvicted != nil {
		lru.OnEvicted(n.entry.Key, n.entry.Value)
	}
}

// Peek gets an element from the cache without bumping it to the
// MRU position.
func (lru *LRUCache) Peek(key interface{}) (interface{}, bool) {
	lru.mu.Lock()
	defer lru.mu.Unlock()
	n, ok := lru.m[key]
	if !ok {
		return nil, false
	}
	return n.entry.Value, true
}

// Contains returns true if the key is in the cache. The recency
// order is left untouched.
func (lru *LRUCache) Contains(key interface{}) bool {
	lru.mu.Lock()
	defer lru.mu.Unlock()
	_, ok := lru.m[key]
	return ok
}

// Remove deletes the entry stored under the key from the cache.
func (lru *LRUCache) Remove(key interface{}) error {
	lru.mu.Lock()
	defer lru.mu.Unlock()
	n, ok := lru.m[key]
	if !ok {
		return ErrElementDoesntExist
	}
	delete(lru.m, key)
	lru.ll.remove(n)
	lru.size--
	lru.
		log.
		Debug().
		Interface("key", key).
		Msg("removed")
	return nil
}

// Clear drops every entry from the cache.
func (lru *LRUCache) Clear() {
	lru.mu.Lock()
	defer lru.mu.Unlock()
	lru.m = make(map[interface{}]*node)
	lru.ll = newList()
	lru.size = 0
}

// Len returns the number of elements in the cache.
func (lru *LRUCache) Len() int {
	lru.mu.Lock()
	defer lru.mu.Unlock()
	return lru.size
}

// Capacity returns the max capacity of the cache.
func (lru *LRUCache) Capacity() int {
	return lru.capacity
}

// Full returns true if the cache is full, else returns false.
func (lru *LRUCache) Full() bool {
	lru.mu.Lock()
	defer lru.mu.Unlock()
	return lru.size == lru.capacity
}
