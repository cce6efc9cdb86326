package cache

import (
	"context"
	"sync"

	"github.com/ecocart/backend/internal/domain"
)

const defaultMaxEntries = 500

// CoordinateCache is a thread-safe, bounded in-memory cache for geocoding
// results. Resolved coordinates never go stale, so entries have no TTL;
// the bound keeps memory flat when scans carry many distinct origin texts.
// When full, the oldest entry is evicted first.
type CoordinateCache struct {
	data       map[string]domain.Coordinates
	order      []string
	maxEntries int
	mutex      sync.RWMutex
}

// NewCoordinateCache creates a bounded coordinate cache. A non-positive
// maxEntries falls back to the default of 500.
func NewCoordinateCache(maxEntries int) *CoordinateCache {
	if maxEntries <= 0 {
		maxEntries = defaultMaxEntries
	}
	return &CoordinateCache{
		data:       make(map[string]domain.Coordinates),
		maxEntries: maxEntries,
	}
}

// Get retrieves cached coordinates for a normalized location key.
func (c *CoordinateCache) Get(ctx context.Context, key string) (domain.Coordinates, error) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	coords, exists := c.data[key]
	if !exists {
		return domain.Coordinates{}, domain.ErrCacheMiss
	}
	return coords, nil
}

// Set stores coordinates, evicting the oldest entry when the cache is full.
func (c *CoordinateCache) Set(ctx context.Context, key string, coords domain.Coordinates) error {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	if _, exists := c.data[key]; exists {
		c.data[key] = coords
		return nil
	}

	if len(c.data) >= c.maxEntries {
		oldest := c.order[0]
		c.order = c.order[1:]
		delete(c.data, oldest)
	}

	c.data[key] = coords
	c.order = append(c.order, key)
	return nil
}

// Delete removes an entry from the cache.
func (c *CoordinateCache) Delete(ctx context.Context, key string) error {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	if _, exists := c.data[key]; exists {
		delete(c.data, key)
		for i, k := range c.order {
			if k == key {
				c.order = append(c.order[:i], c.order[i+1:]...)
				break
			}
		}
	}
	return nil
}

// Size returns the current number of entries (for debugging/monitoring).
func (c *CoordinateCache) Size() int {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	return len(c.data)
}

// Clear removes all entries from the cache.
func (c *CoordinateCache) Clear() {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.data = make(map[string]domain.Coordinates)
	c.order = nil
}
