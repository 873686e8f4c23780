package cms

import (
	"time"

	"github.com/dgraph-io/ristretto/v2"
)

// Cache stores rendered pages keyed by locale and slug.
type Cache interface {
	Get(key string) (Page, bool)
	Set(key string, page Page)
	Clear()
}

// RistrettoCache is an in-process Cache backed by ristretto. Cost is the
// rendered HTML size in bytes.
type RistrettoCache struct {
	c   *ristretto.Cache[string, Page]
	ttl time.Duration
}

// NewRistrettoCache creates a cache holding at most maxCostBytes of rendered
// HTML. numCounters should be about ten times the expected item count.
func NewRistrettoCache(maxCostBytes, numCounters int64, ttl time.Duration) (*RistrettoCache, error) {
	if numCounters <= 0 {
		numCounters = maxCostBytes / 100 * 10
	}
	c, err := ristretto.NewCache(&ristretto.Config[string, Page]{
		NumCounters: numCounters,
		MaxCost:     maxCostBytes,
		BufferItems: 64,
	})
	if err != nil {
		return nil, err
	}
	return &RistrettoCache{c: c, ttl: ttl}, nil
}

// Get retrieves a page from the cache.
func (c *RistrettoCache) Get(key string) (Page, bool) {
	return c.c.Get(key)
}

// Set stores a page. Writes are flushed before returning so a following Get
// observes them.
func (c *RistrettoCache) Set(key string, page Page) {
	cost := int64(len(page.HTML))
	if cost == 0 {
		cost = 1
	}
	if c.ttl > 0 {
		c.c.SetWithTTL(key, page, cost, c.ttl)
	} else {
		c.c.Set(key, page, cost)
	}
	c.c.Wait()
}

// Clear drops every cached page.
func (c *RistrettoCache) Clear() {
	c.c.Clear()
}

// Close shuts down the cache and releases resources.
func (c *RistrettoCache) Close() {
	c.c.Close()
}
