package cache

import (
	"context"
	"slices"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

type memoryEntry struct {
	payload   []byte
	tags      []string
	expiresAt time.Time
}

// MemoryCache is an in-process TagCache with the same contract as RedisCache.
// It backs the unit tests and single-process deployments that run without
// redis. Expired entries are dropped lazily on access and on eviction scans.
type MemoryCache struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	config  Config
	group   singleflight.Group

	now func() time.Time
}

func NewMemoryCache(config Config) *MemoryCache {
	if config.TTL <= 0 {
		config.TTL = DefaultTTL
	}

	return &MemoryCache{
		entries: make(map[string]memoryEntry),
		config:  config,
		now:     time.Now,
	}
}

func (c *MemoryCache) GetOrSet(ctx context.Context, key string, tags []string, ttl time.Duration, fetch FetchFunc) ([]byte, error) {
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()

	if ok && c.now().Before(entry.expiresAt) {
		return entry.payload, nil
	}

	if c.config.Coalesce {
		v, err, _ := c.group.Do(key, func() (any, error) {
			return c.populate(ctx, key, tags, ttl, fetch)
		})
		if err != nil {
			return nil, err
		}
		return v.([]byte), nil
	}

	return c.populate(ctx, key, tags, ttl, fetch)
}

func (c *MemoryCache) populate(ctx context.Context, key string, tags []string, ttl time.Duration, fetch FetchFunc) ([]byte, error) {
	payload, err := fetch(ctx)
	if err != nil {
		return nil, err
	}

	if ttl <= 0 {
		ttl = c.config.TTL
	}

	c.mu.Lock()
	c.entries[key] = memoryEntry{
		payload:   payload,
		tags:      slices.Clone(tags),
		expiresAt: c.now().Add(ttl),
	}
	c.mu.Unlock()

	return payload, nil
}

func (c *MemoryCache) EvictByTag(ctx context.Context, tag string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for key, entry := range c.entries {
		if !c.now().Before(entry.expiresAt) {
			delete(c.entries, key)
			continue
		}

		if slices.Contains(entry.tags, tag) {
			delete(c.entries, key)
		}
	}

	return nil
}

// Len reports the number of live entries. Test helper.
func (c *MemoryCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	n := 0
	for _, entry := range c.entries {
		if c.now().Before(entry.expiresAt) {
			n++
		}
	}

	return n
}
