package handler

import (
	"fmt"

	"github.com/dgraph-io/ristretto"
	"github.com/google/uuid"
)

// PersonCache holds encoded person bodies keyed by id. People never change
// once created, so entries only leave through eviction. A nil *PersonCache
// is valid and caches nothing.
type PersonCache struct {
	cache *ristretto.Cache
}

// NewPersonCache returns nil when maxCost is zero or less.
func NewPersonCache(maxCost int64) (*PersonCache, error) {
	if maxCost <= 0 {
		return nil, nil
	}

	cache, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: 1e7, // number of keys to track frequency of (10M).
		MaxCost:     maxCost,
		BufferItems: 64, // number of keys per Get buffer.
	})
	if err != nil {
		return nil, fmt.Errorf("create person cache: %w", err)
	}

	return &PersonCache{cache: cache}, nil
}

func cacheKey(id uuid.UUID) string {
	return "id::" + id.String()
}

func (c *PersonCache) Get(id uuid.UUID) ([]byte, bool) {
	if c == nil {
		return nil, false
	}

	v, found := c.cache.Get(cacheKey(id))
	if !found {
		return nil, false
	}

	body, ok := v.([]byte)
	return body, ok
}

// Set is asynchronous; a Get right after it may still miss.
func (c *PersonCache) Set(id uuid.UUID, body []byte) {
	if c == nil {
		return
	}
	c.cache.Set(cacheKey(id), body, int64(len(body)))
}

// Wait blocks until buffered writes are applied.
func (c *PersonCache) Wait() {
	if c == nil {
		return
	}
	c.cache.Wait()
}

func (c *PersonCache) Close() {
	if c == nil {
		return
	}
	c.cache.Close()
}
