package cache

import (
	"context"
	"encoding/json"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/Lakeram21/RSP-precurement/internal/domain"
)

// ResponseKey builds the cache key for a search. MPN and manufacturer are
// case-folded and the provider set is sorted, so "abc123" over
// {DigiKey, eBay} and "ABC123" over {eBay, DigiKey} share one entry.
func ResponseKey(query domain.Query, providers []string) string {
	sorted := make([]string, len(providers))
	copy(sorted, providers)
	sort.Strings(sorted)

	parts := []string{
		"search",
		strings.ToUpper(strings.TrimSpace(query.MPN)),
		strings.ToUpper(strings.TrimSpace(query.Manufacturer)),
		strings.Join(sorted, ","),
	}
	return strings.Join(parts, "|")
}

// cacheItem represents a single item in the cache with expiration
type cacheItem struct {
	Response   *domain.SearchResponse
	Expiration time.Time
}

// MemoryCache is a thread-safe in-memory cache with TTL support.
// Implements domain.SearchCache.
type MemoryCache struct {
	data  map[string]cacheItem
	mutex sync.RWMutex
}

// NewMemoryCache creates a new in-memory cache
func NewMemoryCache() *MemoryCache {
	cache := &MemoryCache{
		data: make(map[string]cacheItem),
	}

	// Start cleanup goroutine to remove expired entries every 10 minutes
	go cache.cleanupExpired()

	return cache
}

// Get retrieves a cached response
func (c *MemoryCache) Get(ctx context.Context, key string) (*domain.SearchResponse, error) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	item, exists := c.data[key]
	if !exists {
		return nil, domain.ErrCacheMiss
	}

	// Check if expired
	if time.Now().After(item.Expiration) {
		return nil, domain.ErrCacheMiss
	}

	return item.Response, nil
}

// Set stores a response in the cache with TTL
func (c *MemoryCache) Set(ctx context.Context, key string, response *domain.SearchResponse, ttl time.Duration) error {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	// Serialize to JSON and back so the stored copy cannot alias slices
	// the caller keeps mutating
	jsonData, err := json.Marshal(response)
	if err != nil {
		return err
	}

	var stored domain.SearchResponse
	if err := json.Unmarshal(jsonData, &stored); err != nil {
		return err
	}

	c.data[key] = cacheItem{
		Response:   &stored,
		Expiration: time.Now().Add(ttl),
	}

	return nil
}

// Delete removes a value from the cache
func (c *MemoryCache) Delete(ctx context.Context, key string) error {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	delete(c.data, key)
	return nil
}

// Exists checks if a key exists in the cache and is not expired
func (c *MemoryCache) Exists(ctx context.Context, key string) (bool, error) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	item, exists := c.data[key]
	if !exists {
		return false, nil
	}

	// Check if expired
	if time.Now().After(item.Expiration) {
		return false, nil
	}

	return true, nil
}

// cleanupExpired removes expired entries from the cache periodically
func (c *MemoryCache) cleanupExpired() {
	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		c.mutex.Lock()
		now := time.Now()
		for key, item := range c.data {
			if now.After(item.Expiration) {
				delete(c.data, key)
			}
		}
		c.mutex.Unlock()
	}
}

// Size returns the current number of items in the cache (for debugging/monitoring)
func (c *MemoryCache) Size() int {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	return len(c.data)
}

// Clear removes all items from the cache
func (c *MemoryCache) Clear() {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.data = make(map[string]cacheItem)
}
