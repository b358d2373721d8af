package repository

import (
	"context"
	"fmt"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/okian/leetview/pkg/metrics"
)

// rating is a cached lookup result; ok=false caches a known absence.
type rating struct {
	value int
	ok    bool
}

// CachedStore fronts a Store with an LRU read cache. Upserts write through
// to the backing store before the cache is updated.
//
// Cache hits take no lock. A miss holds fill across the backing read and the
// cache insert, and Upsert holds it across the write and the insert, so a
// read that started before a write can never cache the older value.
type CachedStore struct {
	next  Store
	cache *lru.Cache[string, rating]
	fill  sync.Mutex
}

// NewCachedStore wraps next with a cache of size entries. A size of zero or
// less returns next unchanged.
func NewCachedStore(next Store, size int) (Store, error) {
	if size <= 0 {
		return next, nil
	}
	cache, err := lru.New[string, rating](size)
	if err != nil {
		return nil, fmt.Errorf("create rating cache: %w", err)
	}
	return &CachedStore{next: next, cache: cache}, nil
}

func (c *CachedStore) Get(ctx context.Context, key string) (int, bool, error) {
	if r, ok := c.cache.Get(key); ok {
		metrics.RecordCacheHit()
		return r.value, r.ok, nil
	}
	metrics.RecordCacheMiss()

	c.fill.Lock()
	defer c.fill.Unlock()

	// An Upsert may have filled the entry while we waited.
	if r, ok := c.cache.Get(key); ok {
		return r.value, r.ok, nil
	}
	v, ok, err := c.next.Get(ctx, key)
	if err != nil {
		return 0, false, err
	}
	c.cache.Add(key, rating{value: v, ok: ok})
	return v, ok, nil
}

func (c *CachedStore) Upsert(ctx context.Context, key string, r int) error {
	c.fill.Lock()
	defer c.fill.Unlock()

	if err := c.next.Upsert(ctx, key, r); err != nil {
		// Drop any stale entry so the next read goes to the backing store.
		c.cache.Remove(key)
		return err
	}
	c.cache.Add(key, rating{value: r, ok: true})
	return nil
}

func (c *CachedStore) Count(ctx context.Context) (int, error) { return c.next.Count(ctx) }

func (c *CachedStore) Ping(ctx context.Context) error { return c.next.Ping(ctx) }

// Len returns the number of cached keys.
func (c *CachedStore) Len() int { return c.cache.Len() }

func (c *CachedStore) Close() error {
	c.cache.Purge()
	return c.next.Close()
}
