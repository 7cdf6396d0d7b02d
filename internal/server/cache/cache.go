// Package cache keeps rendered list responses for the controlled list
// server. Entries are keyed by request path and query and expire after a
// TTL, using patrickmn/go-cache.
package cache

import (
	"net/http"
	"net/url"
	"sync/atomic"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// Cache stores encoded response bodies.
type Cache struct {
	store  *gocache.Cache
	hits   atomic.Int64
	misses atomic.Int64
}

// New creates a new cache with the given TTL and cleanup interval.
func New(defaultTTL, cleanupInterval time.Duration) *Cache {
	return &Cache{
		store: gocache.New(defaultTTL, cleanupInterval),
	}
}

// Key returns the cache key for a request. Query parameters are
// normalized so their order does not matter.
func Key(r *http.Request) string {
	q, err := url.ParseQuery(r.URL.RawQuery)
	if err != nil || len(q) == 0 {
		return r.URL.Path
	}
	return r.URL.Path + "?" + q.Encode()
}

// Get returns the body cached under key.
func (c *Cache) Get(key string) ([]byte, bool) {
	v, ok := c.store.Get(key)
	if !ok {
		c.misses.Add(1)
		return nil, false
	}
	c.hits.Add(1)
	return v.([]byte), true
}

// Set stores body under key with the default TTL.
func (c *Cache) Set(key string, body []byte) {
	c.store.Set(key, body, gocache.DefaultExpiration)
}

// Delete removes a value from the cache.
func (c *Cache) Delete(key string) {
	c.store.Delete(key)
}

// Clear removes all items from the cache.
func (c *Cache) Clear() {
	c.store.Flush()
}

// ItemCount returns the number of items in the cache.
func (c *Cache) ItemCount() int {
	return c.store.ItemCount()
}

// Stats is a snapshot of cache usage.
type Stats struct {
	ItemCount int   `json:"item_count"`
	Hits      int64 `json:"hits"`
	Misses    int64 `json:"misses"`
}

// GetStats returns current cache statistics.
func (c *Cache) GetStats() Stats {
	return Stats{
		ItemCount: c.store.ItemCount(),
		Hits:      c.hits.Load(),
		Misses:    c.misses.Load(),
	}
}
