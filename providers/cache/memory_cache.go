package cache

import (
	"context"
	"sync"
	"time"

	"tripplanner.app/models"
)

// Cache defines generic byte-value cache operations with a per-entry TTL
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration)
	Clear(ctx context.Context)
	Stats(ctx context.Context) models.CacheStats
}

type cacheEntry struct {
	Data      []byte
	FetchedAt time.Time
	ExpiresAt time.Time
}

// MemoryCache is an in-process cache. Entries expire lazily: an expired entry
// is only replaced on the next write for its key, there is no background
// eviction. A max-entry bound keeps long-lived processes from growing without
// limit; when the bound is hit, expired entries are dropped first, then the
// oldest by fetch time.
type MemoryCache struct {
	data       map[string]cacheEntry
	maxEntries int
	mutex      sync.RWMutex
}

// NewMemoryCache creates an in-process cache bounded to maxEntries
func NewMemoryCache(maxEntries int) *MemoryCache {
	return &MemoryCache{
		data:       make(map[string]cacheEntry),
		maxEntries: maxEntries,
	}
}

func (c *MemoryCache) Get(ctx context.Context, key string) ([]byte, bool) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	entry, exists := c.data[key]
	if !exists {
		return nil, false
	}

	if time.Now().After(entry.ExpiresAt) {
		return nil, false
	}

	return entry.Data, true
}

func (c *MemoryCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) {
	if value == nil {
		return
	}

	c.mutex.Lock()
	defer c.mutex.Unlock()

	if _, exists := c.data[key]; !exists && len(c.data) >= c.maxEntries {
		c.evictLocked()
	}

	now := time.Now()
	c.data[key] = cacheEntry{
		Data:      value,
		FetchedAt: now,
		ExpiresAt: now.Add(ttl),
	}
}

func (c *MemoryCache) Clear(ctx context.Context) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.data = make(map[string]cacheEntry)
}

// Stats reports entry counts without evicting anything
func (c *MemoryCache) Stats(ctx context.Context) models.CacheStats {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	now := time.Now()
	valid := 0
	for _, entry := range c.data {
		if now.Before(entry.ExpiresAt) {
			valid++
		}
	}

	return models.CacheStats{
		TotalEntries:   len(c.data),
		ValidEntries:   valid,
		ExpiredEntries: len(c.data) - valid,
	}
}

// evictLocked frees room for one insert. Must be called while holding the mutex.
func (c *MemoryCache) evictLocked() {
	now := time.Now()
	for key, entry := range c.data {
		if now.After(entry.ExpiresAt) {
			delete(c.data, key)
		}
	}
	if len(c.data) < c.maxEntries {
		return
	}

	var oldestKey string
	var oldestAt time.Time
	for key, entry := range c.data {
		if oldestKey == "" || entry.FetchedAt.Before(oldestAt) {
			oldestKey = key
			oldestAt = entry.FetchedAt
		}
	}
	if oldestKey != "" {
		delete(c.data, oldestKey)
	}
}
