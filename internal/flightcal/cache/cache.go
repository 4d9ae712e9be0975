package cache

import (
	"sync"
	"time"
)

type item[T any] struct {
	value     T
	expiresAt time.Time
}

// Cache is an in-memory TTL cache. When a clone function is supplied, values
// are copied on the way in and out so callers can mutate results freely.
// Expired items are evicted lazily on read.
type Cache[T any] struct {
	mu    sync.RWMutex
	items map[string]item[T]
	clone func(T) T
}

func New[T any](clone func(T) T) *Cache[T] {
	return &Cache[T]{
		items: make(map[string]item[T]),
		clone: clone,
	}
}

func (c *Cache[T]) Get(key string) (T, bool) {
	c.mu.RLock()
	cached, ok := c.items[key]
	c.mu.RUnlock()

	var zero T
	if !ok {
		return zero, false
	}
	if time.Now().After(cached.expiresAt) {
		c.mu.Lock()
		delete(c.items, key)
		c.mu.Unlock()
		return zero, false
	}
	if c.clone != nil {
		return c.clone(cached.value), true
	}
	return cached.value, true
}

func (c *Cache[T]) Set(key string, value T, ttl time.Duration) {
	if c.clone != nil {
		value = c.clone(value)
	}
	c.mu.Lock()
	c.items[key] = item[T]{value: value, expiresAt: time.Now().Add(ttl)}
	c.mu.Unlock()
}
