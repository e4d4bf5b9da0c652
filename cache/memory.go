package cache

import (
	"sync"
	"time"
)

// entry holds a cached value with its write timestamp.
type entry struct {
	value     string
	timestamp time.Time
}

// Memory is a thread-safe in-memory cache with optional TTL. The resolver
// uses it with TTL disabled: resolved strings stay valid until an explicit
// clear, because bundle content only changes on an explicit reload.
type Memory struct {
	entries map[string]entry
	mu      sync.RWMutex
	ttl     time.Duration
}

// NewMemory creates an in-memory cache. A zero or negative ttl disables
// expiry.
func NewMemory(ttl time.Duration) *Memory {
	if ttl < 0 {
		ttl = 0
	}
	return &Memory{
		entries: make(map[string]entry),
		ttl:     ttl,
	}
}

// Get retrieves a value. Expired entries are dropped on access.
func (c *Memory) Get(key string) (string, bool) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok {
		return "", false
	}

	if c.ttl > 0 && time.Since(e.timestamp) > c.ttl {
		c.mu.Lock()
		delete(c.entries, key)
		c.mu.Unlock()
		return "", false
	}

	return e.value, true
}

// Set stores a value, replacing any existing entry whole.
func (c *Memory) Set(key string, value string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = entry{value: value, timestamp: time.Now()}
	return nil
}

// Delete removes a single entry.
func (c *Memory) Delete(key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.entries, key)
	return nil
}

// Clear removes all entries.
func (c *Memory) Clear() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[string]entry)
	return nil
}

// Len returns the number of entries, including any not yet swept expired
// ones.
func (c *Memory) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Entries returns all live entries as key-value pairs. Used for snapshot
// export.
func (c *Memory) Entries() map[string]string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make(map[string]string, len(c.entries))
	now := time.Now()
	for key, e := range c.entries {
		if c.ttl > 0 && now.Sub(e.timestamp) > c.ttl {
			continue
		}
		out[key] = e.value
	}
	return out
}

// Verify Memory implements StringCache.
var _ StringCache = (*Memory)(nil)
