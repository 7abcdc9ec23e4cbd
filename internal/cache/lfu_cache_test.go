package cache

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_LFUCache(t *testing.T) {
	lfu, err := NewLFUCache(2, zerolog.Nop())
	if err != nil {
		t.Fatal(err)
	}

	lfu.Put(1, 1)
	lfu.Put(2, 2)

	// Key 1 reaches an access count of 2, key 2 stays at 1.
	got, ok := lfu.Get(1)
	if !ok || got != 1 {
		t.Errorf("get 1: got %v, %t, want 1, true", got, ok)
	}

	lfu.Put(3, 3)

	if _, ok := lfu.Get(2); ok {
		t.Error("get 2: expected a miss, key 2 had the lowest access count")
	}
	got, ok = lfu.Get(1)
	if !ok || got != 1 {
		t.Errorf("get 1: got %v, %t, want 1, true", got, ok)
	}
	got, ok = lfu.Get(3)
	if !ok || got != 3 {
		t.Errorf("get 3: got %v, %t, want 3, true", got, ok)
	}
	if lfu.Len() != 2 {
		t.Errorf("len: got %d, want 2", lfu.Len())
	}
}

func Test_LFUCache_RecencyTieBreak(t *testing.T) {
	lfu, err := NewLFUCache(3, zerolog.Nop())
	if err != nil {
		t.Fatal(err)
	}

	lfu.Put(1, 1)
	lfu.Put(2, 2)
	lfu.Put(3, 3)

	// Key 3 leaves the lowest tier; keys 1 and 2 are tied at an
	// access count of 1 with key 1 the least recently used.
	if _, ok := lfu.Get(3); !ok {
		t.Fatal("get 3: expected a hit")
	}

	lfu.Put(4, 4)

	if _, ok := lfu.Get(1); ok {
		t.Error("get 1: expected a miss, key 1 was the least recently used of the tied tier")
	}
	if _, ok := lfu.Get(2); !ok {
		t.Error("get 2: expected a hit")
	}
}

func Test_LFUCache_FrequencyOf(t *testing.T) {
	lfu, err := NewLFUCache(2, zerolog.Nop())
	if err != nil {
		t.Fatal(err)
	}

	lfu.Put("k", "v")
	freq, ok := lfu.FrequencyOf("k")
	if !ok || freq != 1 {
		t.Fatalf("frequency: got %d, %t, want 1, true", freq, ok)
	}

	// Every hit returns the same value and grows the access count
	// by exactly 1; FrequencyOf itself must not promote.
	for i := 0; i < 5; i++ {
		got, ok := lfu.Get("k")
		if !ok || got != "v" {
			t.Fatalf("get k: got %v, %t, want v, true", got, ok)
		}
		freq, _ = lfu.FrequencyOf("k")
		if freq != i+2 {
			t.Fatalf("frequency after %d gets: got %d, want %d", i+1, freq, i+2)
		}
	}

	// An overwrite promotes like a hit.
	lfu.Put("k", "v2")
	freq, _ = lfu.FrequencyOf("k")
	if freq != 7 {
		t.Errorf("frequency after overwrite: got %d, want 7", freq)
	}

	if _, ok := lfu.FrequencyOf("absent"); ok {
		t.Error("frequency of an absent key must report a miss")
	}
}

func Test_LFUCache_Overwrite(t *testing.T) {
	lfu, err := NewLFUCache(2, zerolog.Nop())
	if err != nil {
		t.Fatal(err)
	}

	lfu.Put(1, "v1")
	lfu.Put(2, "x")
	lfu.Put(1, "v2")

	got, ok := lfu.Get(1)
	if !ok || got != "v2" {
		t.Errorf("get 1: got %v, %t, want v2, true", got, ok)
	}
	if lfu.Len() != 2 {
		t.Errorf("len: got %d, want 2, overwrite must not change the size", lfu.Len())
	}
	if _, ok := lfu.Get(2); !ok {
		t.Error("get 2: expected a hit, overwrite must not evict")
	}
}

func Test_LFUCache_MinFrequencyResetOnInsert(t *testing.T) {
	lfu, err := NewLFUCache(3, zerolog.Nop())
	if err != nil {
		t.Fatal(err)
	}

	// Push both resident keys into high frequency tiers.
	lfu.Put(1, 1)
	lfu.Put(2, 2)
	for i := 0; i < 4; i++ {
		lfu.Get(1)
		lfu.Get(2)
	}

	// Each newcomer lands at an access count of 1 and is therefore
	// the next eviction victim, never the long lived keys.
	lfu.Put(3, 3)
	lfu.Put(4, 4)

	if _, ok := lfu.Get(3); ok {
		t.Error("get 3: expected a miss, the newcomer holds the minimum frequency")
	}
	if _, ok := lfu.Get(1); !ok {
		t.Error("get 1: expected a hit")
	}
	if _, ok := lfu.Get(2); !ok {
		t.Error("get 2: expected a hit")
	}
}

func Test_LFUCache_ZeroCapacity(t *testing.T) {
	lfu, err := NewLFUCache(0, zerolog.Nop())
	if err != nil {
		t.Fatal(err)
	}

	lfu.Put(1, 1)
	if _, ok := lfu.Get(1); ok {
		t.Error("get 1: a zero capacity cache must always miss")
	}
	if lfu.Len() != 0 {
		t.Errorf("len: got %d, want 0", lfu.Len())
	}
}

func Test_LFUCache_InvalidCapacity(t *testing.T) {
	_, err := NewLFUCache(-1, zerolog.Nop())
	if err != ErrInvalidCapacity {
		t.Errorf("got %v, want %v", err, ErrInvalidCapacity)
	}
}

func Test_LFUCache_RemoveAdvancesMinimum(t *testing.T) {
	lfu, err := NewLFUCache(3, zerolog.Nop())
	require.NoError(t, err)

	lfu.Put(1, 1)
	lfu.Put(2, 2)
	lfu.Get(1)
	lfu.Get(1)
	lfu.Get(2)

	// Removing key 2 drains the tier holding the minimum; the
	// cache must keep evicting correctly afterwards.
	require.NoError(t, lfu.Remove(2))
	assert.Equal(t, ErrElementDoesntExist, lfu.Remove(2))
	assert.Equal(t, 1, lfu.Len())

	lfu.Put(3, 3)
	lfu.Put(4, 4)
	require.True(t, lfu.Full())

	// Keys 3 and 4 are tied at the minimum, key 3 least recent.
	lfu.Put(5, 5)
	assert.False(t, lfu.Contains(3))
	assert.True(t, lfu.Contains(1))
	assert.True(t, lfu.Contains(4))
}

func Test_LFUCache_PeekAndClear(t *testing.T) {
	lfu, err := NewLFUCache(2, zerolog.Nop())
	require.NoError(t, err)

	lfu.Put(1, 1)
	v, ok := lfu.Peek(1)
	require.True(t, ok)
	assert.Equal(t, 1, v)

	// Peek must not promote.
	freq, _ := lfu.FrequencyOf(1)
	assert.Equal(t, 1, freq)

	lfu.Clear()
	assert.Equal(t, 0, lfu.Len())
	assert.False(t, lfu.Contains(1))

	lfu.Put(2, 2)
	v, ok = lfu.Get(2)
	require.True(t, ok)
	assert.Equal(t, 2, v)
}

func Test_LFUCache_OnEvicted(t *testing.T) {
	lfu, err := NewLFUCache(1, zerolog.Nop())
	require.NoError(t, err)

	var evictedKeys []interface{}
	lfu.OnEvicted = func(key, value interface{}) {
		evictedKeys = append(evictedKeys, key)
	}

	lfu.Put(1, 1)
	lfu.Put(2, 2)
	lfu.Put(2, 22)
	require.NoError(t, lfu.Remove(2))

	assert.Equal(t, []interface{}{1}, evictedKeys)
}
