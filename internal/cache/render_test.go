package cache

import (
	"testing"
	"time"

	"spendlog/internal/core"
)

func TestRenderCacheGetSet(t *testing.T) {
	c := NewRenderCache(10, time.Minute)

	if _, ok := c.Get("missing"); ok {
		t.Error("expected miss for unknown key")
	}

	c.Set("k", []byte("<html>"))
	page, ok := c.Get("k")
	if !ok {
		t.Fatal("expected hit after Set")
	}
	if string(page) != "<html>" {
		t.Errorf("got %q", page)
	}
}

func TestRenderCacheTTLExpiry(t *testing.T) {
	c := NewRenderCache(10, 10*time.Millisecond)
	c.Set("k", []byte("page"))

	time.Sleep(30 * time.Millisecond)

	if _, ok := c.Get("k"); ok {
		t.Error("expected expired entry to miss")
	}
	if c.Size() != 0 {
		t.Errorf("expected expired entry to be removed, size=%d", c.Size())
	}
}

func TestRenderCacheEvictsLRU(t *testing.T) {
	c := NewRenderCache(2, time.Minute)
	c.Set("a", []byte("1"))
	c.Set("b", []byte("2"))

	// Touch a so b becomes least recently used.
	c.Get("a")
	c.Set("c", []byte("3"))

	if _, ok := c.Get("b"); ok {
		t.Error("expected b to be evicted")
	}
	if _, ok := c.Get("a"); !ok {
		t.Error("expected a to survive eviction")
	}
	if _, ok := c.Get("c"); !ok {
		t.Error("expected c to be present")
	}
}

func TestRenderCacheCleanExpired(t *testing.T) {
	c := NewRenderCache(10, 10*time.Millisecond)
	c.Set("a", []byte("1"))
	c.Set("b", []byte("2"))

	time.Sleep(30 * time.Millisecond)
	c.Set("fresh", []byte("3"))

	if removed := c.CleanExpired(); removed != 2 {
		t.Errorf("expected 2 removed, got %d", removed)
	}
	if c.Size() != 1 {
		t.Errorf("expected 1 remaining, got %d", c.Size())
	}
}

func TestPageKeyIncludesVersionAndQuery(t *testing.T) {
	q := core.Query{Search: "cof", Key: core.SortByPrice, Order: core.Ascending}

	k1 := PageKey(q, "light", 1)
	k2 := PageKey(q, "light", 2)
	if k1 == k2 {
		t.Error("expected version change to change the key")
	}

	q2 := q
	q2.Search = "tea"
	if PageKey(q, "light", 1) == PageKey(q2, "light", 1) {
		t.Error("expected search change to change the key")
	}
	if PageKey(q, "light", 1) == PageKey(q, "dark", 1) {
		t.Error("expected theme change to change the key")
	}
}
