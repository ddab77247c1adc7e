package cache

import "sync"

// NameCache memoizes resolved display names and tracks in-flight resolutions
// so the same user id is never fetched twice concurrently.
type NameCache struct {
	mu      sync.Mutex
	names   map[string]string
	pending map[string]struct{}
}

func NewNameCache() *NameCache {
	return &NameCache{
		names:   make(map[string]string),
		pending: make(map[string]struct{}),
	}
}

func (c *NameCache) Lookup(userID string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	name, ok := c.names[userID]
	return name, ok
}

// StartResolve marks a resolution as in flight. Returns false when the name is
// already known or another resolution for the same id is outstanding, in which
// case the caller must not issue a duplicate fetch.
func (c *NameCache) StartResolve(userID string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.names[userID]; ok {
		return false
	}
	if _, ok := c.pending[userID]; ok {
		return false
	}
	c.pending[userID] = struct{}{}
	return true
}

// Complete records the resolved name and clears the pending marker.
func (c *NameCache) Complete(userID, name string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.pending, userID)
	c.names[userID] = name
}

// Abandon clears the pending marker without caching anything, so a later
// render may retry the fetch.
func (c *NameCache) Abandon(userID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.pending, userID)
}

func (c *NameCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.names = make(map[string]string)
	c.pending = make(map[string]struct{})
}
