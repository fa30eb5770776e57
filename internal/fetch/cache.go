package fetch

import "sync"

// Cache maps a request path to the last successful result fetched for it.
// Entries are never evicted or invalidated; a newer result for the same path
// replaces the old one. One Cache is shared by every loader of a process.
type Cache[T any] struct {
	mu      sync.RWMutex
	entries map[string]T
}

// NewCache returns an empty cache.
func NewCache[T any]() *Cache[T] {
	return &Cache[T]{entries: make(map[string]T)}
}

// Get returns the cached result for path. Callers must not modify it.
func (c *Cache[T]) Get(path string) (T, bool) {
	var zero T
	if c == nil {
		return zero, false
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	v, ok := c.entries[path]
	return v, ok
}

// Put stores v as the result for path.
func (c *Cache[T]) Put(path string, v T) {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[path] = v
}

// Len reports the number of cached paths.
func (c *Cache[T]) Len() int {
	if c == nil {
		return 0
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Reset drops every entry.
func (c *Cache[T]) Reset() {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	clear(c.entries)
}
