package cache

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/patrickmn/go-cache"
)

// Loader fetches a collection from the entity store on a cache miss.
type Loader func() (interface{}, error)

type Cache interface {
	Get(key string) (interface{}, bool)
	Set(key string, value interface{})
	Fetch(key string, load Loader) (interface{}, error)
	Refresh(key string, load Loader) (interface{}, error)
	Invalidate(entity string)
	Clear()
	Stats() CacheStats
}

type CacheStats struct {
	Hits          int64     `json:"hits"`
	Misses        int64     `json:"misses"`
	Invalidations int64     `json:"invalidations"`
	Size          int       `json:"size"`
	LastAccess    time.Time `json:"last_access"`
}

// LRUCache holds fetched collections keyed by entity and query. When full,
// the entry closest to expiry is evicted.
//
// Each entity carries a generation that Invalidate advances. A load that
// started under an older generation is returned to its caller but not
// stored.
type LRUCache struct {
	cache       *cache.Cache
	mu          sync.Mutex
	stats       CacheStats
	maxSize     int
	generations map[string]uint64
	epoch       uint64
}

func NewCache(maxSize int, ttl time.Duration) Cache {
	return &LRUCache{
		cache:       cache.New(ttl, ttl*2),
		maxSize:     maxSize,
		generations: make(map[string]uint64),
	}
}

func (c *LRUCache) Get(key string) (interface{}, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.stats.LastAccess = time.Now()

	if data, found := c.cache.Get(key); found {
		c.stats.Hits++
		return data, true
	}

	c.stats.Misses++
	return nil, false
}

func (c *LRUCache) Set(key string, value interface{}) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.set(key, value)
}

func (c *LRUCache) set(key string, value interface{}) {
	if _, exists := c.cache.Get(key); !exists && c.cache.ItemCount() >= c.maxSize {
		c.removeOldest()
	}
	c.cache.Set(key, value, cache.DefaultExpiration)
}

// Fetch returns the cached value for key, loading and storing it on a miss.
// Load errors are returned and nothing is cached.
func (c *LRUCache) Fetch(key string, load Loader) (interface{}, error) {
	if v, ok := c.Get(key); ok {
		return v, nil
	}
	return c.Refresh(key, load)
}

// Refresh reloads key unconditionally. The result is not stored if key's
// entity was invalidated while loading.
func (c *LRUCache) Refresh(key string, load Loader) (interface{}, error) {
	entity := entityOf(key)

	c.mu.Lock()
	gen, epoch := c.generations[entity], c.epoch
	c.mu.Unlock()

	v, err := load()
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.generations[entity] == gen && c.epoch == epoch {
		c.set(key, v)
	}
	return v, nil
}

// Invalidate drops every cached query of entity.
func (c *LRUCache) Invalidate(entity string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	prefix := entity + ":"
	for key := range c.cache.Items() {
		if strings.HasPrefix(key, prefix) {
			c.cache.Delete(key)
		}
	}
	c.generations[entity]++
	c.stats.Invalidations++
}

func (c *LRUCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.cache.Flush()
	c.epoch++
	c.stats = CacheStats{}
}

func (c *LRUCache) Stats() CacheStats {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.stats.Size = c.cache.ItemCount()
	return c.stats
}

func (c *LRUCache) removeOldest() {
	items := c.cache.Items()
	if len(items) == 0 {
		return
	}

	var oldestKey string
	var oldest int64

	for key, item := range items {
		if oldestKey == "" || item.Expiration < oldest {
			oldestKey = key
			oldest = item.Expiration
		}
	}

	if oldestKey != "" {
		c.cache.Delete(oldestKey)
	}
}

// Collection fetches a typed collection through c.
func Collection[T any](c Cache, key string, load func() ([]T, error)) ([]T, error) {
	v, err := c.Fetch(key, func() (interface{}, error) {
		return load()
	})
	if err != nil {
		return nil, err
	}
	items, ok := v.([]T)
	if !ok {
		return nil, fmt.Errorf("cache entry %q holds %T", key, v)
	}
	return items, nil
}

func entityOf(key string) string {
	entity, _, _ := strings.Cut(key, ":")
	return entity
}

// GenerateCacheKey builds "<entity>:<part>:<part>..." keys; Invalidate
// matches on the entity prefix.
func GenerateCacheKey(entity string, parts ...string) string {
	return entity + ":" + strings.Join(parts, ":")
}
