package feed

import (
	"time"

	lru "github.com/hashicorp/golang-lru/v2/expirable"
)

// Cache memoizes generated feed documents by feed id for a bounded time.
// It sits in front of the engine so repeated polls of the same feed do
// not re-scrape the upstream site.
type Cache struct {
	entries *lru.LRU[string, *Document]
}

// NewCache creates a cache holding up to size documents for ttl each.
func NewCache(size int, ttl time.Duration) *Cache {
	if size <= 0 {
		size = 256
	}
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &Cache{
		entries: lru.NewLRU[string, *Document](size, nil, ttl),
	}
}

// Get returns the cached document for feedID, if present and fresh.
func (c *Cache) Get(feedID string) (*Document, bool) {
	return c.entries.Get(feedID)
}

// Put stores doc under feedID.
func (c *Cache) Put(feedID string, doc *Document) {
	c.entries.Add(feedID, doc)
}

// Len reports the number of live entries.
func (c *Cache) Len() int {
	return c.entries.Len()
}
