package service

import (
	"fmt"
	"strconv"

	"github.com/cespare/xxhash/v2"
	"github.com/dgraph-io/ristretto"
)

// AnswerCache remembers answers by request fingerprint
type AnswerCache struct {
	cache *ristretto.Cache
}

// NewAnswerCache creates a cache holding up to maxEntries answers
func NewAnswerCache(maxEntries int64) (*AnswerCache, error) {
	if maxEntries <= 0 {
		return nil, fmt.Errorf("cache size must be positive, got %d", maxEntries)
	}
	cache, err := ristretto.NewCache(&ristretto.Config{
		NumCounters:        maxEntries * 10,
		MaxCost:            maxEntries,
		BufferItems:        64,
		IgnoreInternalCost: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize answer cache: %w", err)
	}
	return &AnswerCache{cache: cache}, nil
}

// Get returns the cached answer for key
func (c *AnswerCache) Get(key uint64) (int, bool) {
	v, found := c.cache.Get(key)
	if !found {
		return 0, false
	}
	answer, ok := v.(int)
	return answer, ok
}

// Set stores answer under key and waits until it is visible to Get
func (c *AnswerCache) Set(key uint64, answer int) {
	c.cache.Set(key, answer, 1)
	c.cache.Wait()
}

// Close stops the cache's background goroutines
func (c *AnswerCache) Close() {
	c.cache.Close()
}

// cacheKey fingerprints everything that determines an answer
func cacheKey(puzzle string, part int, params, text string) uint64 {
	d := xxhash.New()
	for _, s := range []string{puzzle, strconv.Itoa(part), params, text} {
		d.WriteString(s)
		d.Write([]byte{0})
	}
	return d.Sum64()
}
