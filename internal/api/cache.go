package api

import (
	"sync"

	"github.com/degreecalc/degreecalc/internal/records"
)

// ResultCache is a thread-safe LRU cache for stored classification results.
// Stored results never change, so entries are only evicted for space.
type ResultCache struct {
	mu      sync.Mutex
	maxSize int
	entries map[string]*records.ResultRow
	order   []string // oldest first
}

// NewResultCache creates a cache with the given maximum number of entries.
// If maxSize <= 0, it defaults to 256.
func NewResultCache(maxSize int) *ResultCache {
	if maxSize <= 0 {
		maxSize = 256
	}
	return &ResultCache{
		maxSize: maxSize,
		entries: make(map[string]*records.ResultRow),
	}
}

// Len reports the number of cached entries.
func (c *ResultCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Get retrieves a result from the cache, or nil if not found.
func (c *ResultCache) Get(id string) *records.ResultRow {
	c.mu.Lock()
	defer c.mu.Unlock()

	row, ok := c.entries[id]
	if !ok {
		return nil
	}

	// Move to end (most recently used)
	c.moveToEnd(id)
	return row
}

// Put adds a result to the cache, evicting the oldest if full.
func (c *ResultCache) Put(id string, row *records.ResultRow) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.entries[id]; ok {
		c.entries[id] = row
		c.moveToEnd(id)
		return
	}

	// Evict oldest if at capacity
	for len(c.entries) >= c.maxSize && len(c.order) > 0 {
		oldest := c.order[0]
		c.order = c.order[1:]
		delete(c.entries, oldest)
	}

	c.entries[id] = row
	c.order = append(c.order, id)
}

func (c *ResultCache) moveToEnd(id string) {
	for i, k := range c.order {
		if k == id {
			c.order = append(c.order[:i], c.order[i+1:]...)
			c.order = append(c.order, id)
			return
		}
	}
}
