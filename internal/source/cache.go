package source

import (
	"context"
	"sync"
	"time"

	"go-elt-dashboard/internal/model"
)

// FetchFunc is any feed fetch keyed by URL.
type FetchFunc func(ctx context.Context, url string) ([]model.Record, error)

type cacheEntry struct {
	rows      []model.Record
	fetchedAt time.Time
}

// Cache memoizes fetch results per URL for a fixed TTL, so repeated
// dashboard actions inside the window reuse the previous payload instead
// of hitting the feed again.
type Cache struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[string]cacheEntry
	now     func() time.Time
}

// NewCache creates a fetch cache with the given TTL.
func NewCache(ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = 60 * time.Second
	}
	return &Cache{
		ttl:     ttl,
		entries: make(map[string]cacheEntry),
		now:     time.Now,
	}
}

// Fetch returns the cached rows for url when fresh, otherwise calls fn and
// caches its result. Errors are never cached. Rows are cloned on every
// return: session stores mutate their rows in place during transform, and
// the cached copy must stay untouched for the next caller.
func (c *Cache) Fetch(ctx context.Context, url string, fn FetchFunc) ([]model.Record, error) {
	c.mu.Lock()
	if entry, ok := c.entries[url]; ok && c.now().Sub(entry.fetchedAt) < c.ttl {
		rows := cloneRows(entry.rows)
		c.mu.Unlock()
		return rows, nil
	}
	c.mu.Unlock()

	rows, err := fn(ctx, url)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.entries[url] = cacheEntry{rows: rows, fetchedAt: c.now()}
	c.mu.Unlock()
	return cloneRows(rows), nil
}

func cloneRows(rows []model.Record) []model.Record {
	out := make([]model.Record, len(rows))
	for i, rec := range rows {
		out[i] = rec.Clone()
	}
	return out
}

// Invalidate drops the cached entry for url.
func (c *Cache) Invalidate(url string) {
	c.mu.Lock()
	delete(c.entries, url)
	c.mu.Unlock()
}
