package main

import (
	"os"

	"github.com/SystemBuilders/EviCache/internal/cache"
	"github.com/rs/zerolog"
)

func main() {
	log := zerolog.New(os.Stdout).With().Logger().Level(zerolog.GlobalLevel())

	lru, err := cache.New(cache.LRU, 2, log)
	if err != nil {
		log.Fatal().Err(err).Msg("building LRU cache")
	}
	lru.Put(1, "one")
	lru.Put(2, "two")
	lru.Get(1)
	// Key 2 is now the least recently used and gets evicted.
	lru.Put(3, "three")
	if _, ok := lru.Get(2); !ok {
		log.Info().Msg("LRU evicted key 2")
	}

	lfu, err := cache.New(cache.LFU, 2, log)
	if err != nil {
		log.Fatal().Err(err).Msg("building LFU cache")
	}
	lfu.Put(1, "one")
	lfu.Put(2, "two")
	lfu.Get(1)
	// Key 2 sits alone in the lowest frequency tier and gets evicted.
	lfu.Put(3, "three")
	if _, ok := lfu.Get(2); !ok {
		log.Info().Msg("LFU evicted key 2")
	}
}
