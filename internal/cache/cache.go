package cache

import (
	"sync"
	"time"
)

type item[T any] struct {
	value     T
	expiresAt time.Time
}

// Cache is a small in-memory TTL cache. Used to avoid re-fetching news
// context for a keyword that comes around again within minutes.
type Cache[T any] struct {
	mu    sync.RWMutex
	items map[string]item[T]
}

func New[T any]() *Cache[T] {
	c := &Cache[T]{
		items: make(map[string]item[T]),
	}

	// Drop expired entries every hour
	go c.cleanupLoop()

	return c
}

func (c *Cache[T]) Set(key string, value T, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items[key] = item[T]{
		value:     value,
		expiresAt: time.Now().Add(ttl),
	}
}

func (c *Cache[T]) Get(key string) (T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var zero T
	it, exists := c.items[key]
	if !exists {
		return zero, false
	}
	if time.Now().After(it.expiresAt) {
		return zero, false
	}
	return it.value, true
}

func (c *Cache[T]) cleanupLoop() {
	ticker := time.NewTicker(1 * time.Hour)
	defer ticker.Stop()

	for range ticker.C {
		c.cleanup()
	}
}

func (c *Cache[T]) cleanup() {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	for key, it := range c.items {
		if now.After(it.expiresAt) {
			delete(c.items, key)
		}
	}
}
