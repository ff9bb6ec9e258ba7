// Package cache holds the rendered-page cache for the HTTP layer. Entries
// are keyed on the full view state plus the repository version, so any
// mutation naturally invalidates every cached page.
package cache

import (
	"container/list"
	"fmt"
	"sync"
	"time"

	"spendlog/internal/core"
)

// RenderCache is an LRU cache of rendered HTML pages with TTL and
// size-based eviction.
type RenderCache struct {
	mu      sync.Mutex
	maxSize int
	ttl     time.Duration
	items   map[string]*list.Element
	lru     *list.List
}

type renderEntry struct {
	key       string
	page      []byte
	expiresAt time.Time
}

func NewRenderCache(maxSize int, ttl time.Duration) *RenderCache {
	return &RenderCache{
		maxSize: maxSize,
		ttl:     ttl,
		items:   make(map[string]*list.Element),
		lru:     list.New(),
	}
}

// PageKey builds the cache key for a rendered list page. The repository
// version participates so stale pages can never be served after a mutation.
func PageKey(q core.Query, theme string, version uint64) string {
	return fmt.Sprintf("v%d|%s|%s|%s|%s|%s", version, q.Search, q.Date, q.Key, q.Order, theme)
}

// Get returns the cached page for key, if present and not expired.
func (c *RenderCache) Get(key string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	elem, ok := c.items[key]
	if !ok {
		return nil, false
	}
	entry := elem.Value.(*renderEntry)
	if time.Now().After(entry.expiresAt) {
		c.removeElement(elem)
		return nil, false
	}
	c.lru.MoveToFront(elem)
	return entry.page, true
}

// Set stores a rendered page, evicting the least recently used entry when
// over capacity.
func (c *RenderCache) Set(key string, page []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry := &renderEntry{
		key:       key,
		page:      page,
		expiresAt: time.Now().Add(c.ttl),
	}
	if elem, ok := c.items[key]; ok {
		elem.Value = entry
		c.lru.MoveToFront(elem)
		return
	}
	c.items[key] = c.lru.PushFront(entry)
	if c.lru.Len() > c.maxSize {
		if oldest := c.lru.Back(); oldest != nil {
			c.removeElement(oldest)
		}
	}
}

func (c *RenderCache) removeElement(elem *list.Element) {
	entry := elem.Value.(*renderEntry)
	delete(c.items, entry.key)
	c.lru.Remove(elem)
}

// CleanExpired drops every expired entry and reports how many were removed.
func (c *RenderCache) CleanExpired() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	var stale []*list.Element
	for elem := c.lru.Front(); elem != nil; elem = elem.Next() {
		if now.After(elem.Value.(*renderEntry).expiresAt) {
			stale = append(stale, elem)
		}
	}
	for _, elem := range stale {
		c.removeElement(elem)
	}
	return len(stale)
}

// Size returns the number of cached pages.
func (c *RenderCache) Size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}
