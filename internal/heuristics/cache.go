package heuristics

import "sync"

// memoCache memoizes heuristic results keyed by (operation, URL).
// Unbounded, process-lifetime: acceptable for the size of a personal
// link collection.
type memoCache struct {
	mu      sync.RWMutex
	entries map[string]any
}

func newMemoCache() *memoCache {
	return &memoCache{
		entries: make(map[string]any),
	}
}

func (c *memoCache) get(key string) (any, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	v, ok := c.entries[key]
	return v, ok
}

func (c *memoCache) put(key string, v any) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = v
}

func (c *memoCache) len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.entries)
}
