package cache

import (
	"sync"

	"github.com/rs/zerolog"
)

var _ Cache = (*LFUCache)(nil)

// LFUCache implements a cache. It keeps one linked list per access
// count ("frequency bucket") along with a hash-map from key to the
// node holding the entry, so every operation runs in O(1).
//
// Each bucket is ordered MRU to LRU like the LRUCache list, and
// minFreq tracks the lowest populated frequency. Eviction removes
// the least recently used entry of the minFreq bucket, making the
// access count the primary eviction key and recency the secondary
// one.
//
// minFreq is advanced immediately whenever the bucket it points to
// drains; it is never left pointing at an empty bucket. Every new
// entry starts with an access count of 1, which can never exceed
// the true minimum, so an insertion resets minFreq to 1
// unconditionally. An incautious refactor changing the starting
// count breaks that reset.
type LFUCache struct {
	capacity int
	size     int
	minFreq  int
	m        map[interface{}]*node
	buckets  map[int]*list
	mu       sync.Mutex
	log      zerolog.Logger

	// OnEvicted, when non-nil, is called with the key and value of
	// every entry removed by a capacity eviction. It is not called
	// for Remove or Clear. It runs with the cache lock held.
	OnEvicted func(key, value interface{})
}

// NewLFUCache creates a new LFUCache of the provided capacity.
//
// A negative capacity is rejected with ErrInvalidCapacity. A
// capacity of zero builds a permanently empty cache: every Put is
// a no-op and every Get misses.
func NewLFUCache(capacity int, log zerolog.Logger) (*LFUCache, error) {
	if capacity < 0 {
		return nil, ErrInvalidCapacity
	}
	return &LFUCache{
		capacity: capacity,
		m:        make(map[interface{}]*node),
		buckets:  make(map[int]*list),
		log: log.With().
			Str("cache", newInstanceID().String()).
			Str("policy", string(LFU)).
			Logger(),
	}, nil
}

// Get gets an element from the cache.
//
// A hit promotes the entry one frequency tier up, so even a read
// reorders state. Repeated gets on the same key return the same
// value while its access count grows by exactly 1 per call.
func (lfu *LFUCache) Get(key interface{}) (interface{}, bool) {
	lfu.mu.Lock()
	defer lfu.mu.Unlock()
	n, ok := lfu.m[key]
	if !ok {
		lfu.
			log.
			Debug().
			Interface("key", key).
			Msg("miss")
		return nil, false
	}
	lfu.promote(n)
	lfu.
		log.
		Debug().
		Interface("key", key).
		Int("frequency", n.entry.frequency).
		Msg("hit")
	return n.entry.Value, true
}

// Put inserts an element into the cache.
//
// An existing key is overwritten in place and promoted like a hit.
// A new key on a full cache first evicts the least recently used
// entry of the minimum frequency bucket, then is inserted at the
// head of bucket 1.
func (lfu *LFUCache) Put(key, value interface{}) {
	lfu.mu.Lock()
	defer lfu.mu.Unlock()
	if lfu.capacity == 0 {
		return
	}
	if n, ok := lfu.m[key]; ok {
		n.entry.Value = value
		lfu.promote(n)
		lfu.
			log.
			Debug().
			Interface("key", key).
			Int("frequency", n.entry.frequency).
			Msg("overwrite")
		return
	}
	if lfu.size == lfu.capacity {
		lfu.evict()
	}
	// A fresh entry always starts with an access count of 1, so 1
	// can never exceed the true minimum frequency.
	lfu.minFreq = 1
	n := &node{entry: &Entry{Key: key, Value: value, frequency: 1}}
	lfu.bucket(1).pushFront(n)
	lfu.m[key] = n
	lfu.size++
	lfu.
		log.
		Debug().
		Interface("key", key).
		Msg("insert")
}

// promote moves n one frequency tier up: it is unlinked from its
// current bucket and relinked at the head of the bucket for the
// incremented count, created on demand. A drained bucket is
// dropped from the map, advancing minFreq immediately when it was
// the tracked minimum. The caller must hold the lock.
func (lfu *LFUCache) promote(n *node) {
	freq := n.entry.frequency
	b := lfu.buckets[freq]
	b.remove(n)
	if b.empty() {
		delete(lfu.buckets, freq)
		if lfu.minFreq == freq {
			lfu.minFreq++
		}
	}
	n.entry.frequency++
	lfu.bucket(n.entry.frequency).pushFront(n)
}

// bucket returns the list of entries with the given access count,
// creating it if absent.
func (lfu *LFUCache) bucket(freq int) *list {
	b, ok := lfu.buckets[freq]
	if !ok {
		b = newList()
		lfu.buckets[freq] = b
	}
	return b
}

// evict removes the least recently used entry of the minimum
// frequency bucket from both the bucket and the map in one
// operation. The caller must hold the lock and the cache must not
// be empty.
func (lfu *LFUCache) evict() {
	b := lfu.buckets[lfu.minFreq]
	n := b.back()
	b.remove(n)
	if b.empty() {
		delete(lfu.buckets, lfu.minFreq)
	}
	delete(lfu.m, n.entry.Key)
	lfu.size--
	lfu.
		log.
		Debug().
		Interface("key", n.entry.Key).
		Int("frequency", n.entry.frequency).
		Msg("evicted")
	if lfu.OnEvicted != nil {
		lfu.OnEvicted(n.entry.Key, n.entry.Value)
	}
}

// Peek gets an element from the cache without promoting it.
func (lfu *LFUCache) Peek(key interface{}) (interface{}, bool) {
	lfu.mu.Lock()
	defer lfu.mu.Unlock()
	n, ok := lfu.m[key]
	if !ok {
		return nil, false
	}
	return n.entry.Value, true
}

// Contains returns true if the key is in the cache. The frequency
// of the entry is left untouched.
func (lfu *LFUCache) Contains(key interface{}) bool {
	lfu.mu.Lock()
	defer lfu.mu.Unlock()
	_, ok := lfu.m[key]
	return ok
}

// FrequencyOf returns the current access count of the key without
// promoting the entry.
func (lfu *LFUCache) FrequencyOf(key interface{}) (int, bool) {
	lfu.mu.Lock()
	defer lfu.mu.Unlock()
	n, ok := lfu.m[key]
	if !ok {
		return 0, false
	}
	return n.entry.frequency, true
}

// Remove deletes the entry stored under the key from the cache.
func (lfu *LFUCache) Remove(key interface{}) error {
	lfu.mu.Lock()
	defer lfu.mu.Unlock()
	n, ok := lfu.m[key]
	if !ok {
		return ErrElementDoesntExist
	}
	freq := n.entry.frequency
	b := lfu.buckets[freq]
	b.remove(n)
	delete(lfu.m, key)
	lfu.size--
	if b.empty() {
		delete(lfu.buckets, freq)
		if lfu.minFreq == freq {
			lfu.minFreq = lfu.nextPopulated(freq)
		}
	}
	lfu.
		log.
		Debug().
		Interface("key", key).
		Msg("removed")
	return nil
}

// nextPopulated returns the lowest populated frequency at or above
// freq, or 0 when the cache is empty. All live entries have a
// count of at least minFreq, so scanning upwards always
// terminates.
func (lfu *LFUCache) nextPopulated(freq int) int {
	if lfu.size == 0 {
		return 0
	}
	for {
		if _, ok := lfu.buckets[freq]; ok {
			return freq
		}
		freq++
	}
}

// Clear drops every entry from the cache.
func (lfu *LFUCache) Clear() {
	lfu.mu.Lock()
	defer lfu.mu.Unlock()
	lfu.m = make(map[interface{}]*node)
	lfu.buckets = make(map[int]*list)
	lfu.size = 0
	lfu.minFreq = 0
}

// Len returns the number of elements in the cache.
func (lfu *LFUCache) Len() int {
	lfu.mu.Lock()
	defer lfu.mu.Unlock()
	return lfu.size
}

// Capacity returns the max capacity of the cache.
func (lfu *LFUCache) Capacity() int {
	return lfu.capacity
}

// Full returns true if the cache is full, else returns false.
func (lfu *LFUCache) Full() bool {
	lfu.mu.Lock()
	defer lfu.mu.Unlock()
	return lfu.size == lfu.capacity
}
