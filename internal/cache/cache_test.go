package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCacheSetGet(t *testing.T) {
	c := New[string]()

	c.Set("김민수", "value", time.Minute)

	got, ok := c.Get("김민수")
	assert.True(t, ok)
	assert.Equal(t, "value", got)

	_, ok = c.Get("없는키")
	assert.False(t, ok)
}

func TestCacheExpiry(t *testing.T) {
	c := New[int]()

	c.Set("k", 42, 10*time.Millisecond)
	time.Sleep(30 * time.Millisecond)

	_, ok := c.Get("k")
	assert.False(t, ok)
}

func TestCacheOverwrite(t *testing.T) {
	c := New[int]()

	c.Set("k", 1, time.Minute)
	c.Set("k", 2, time.Minute)

	got, ok := c.Get("k")
	assert.True(t, ok)
	assert.Equal(t, 2, got)
}

func TestCacheCleanupDropsExpired(t *testing.T) {
	c := New[int]()

	c.Set("stale", 1, -time.Minute)
	c.Set("fresh", 2, time.Minute)
	c.cleanup()

	c.mu.RLock()
	defer c.mu.RUnlock()
	assert.Len(t, c.items, 1)
}
