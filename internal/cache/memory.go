package cache

import (
	"context"
	"sync"
	"time"
)

const cleanupInterval = 5 * time.Minute

type memoryEntry struct {
	value     []byte
	expiresAt time.Time
}

// MemoryCache is an in-process Cache implementation with per-entry TTLs.
// A background goroutine sweeps expired entries periodically; expired
// entries are also removed lazily on read. Safe for concurrent use.
type MemoryCache struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	done    chan struct{}
	closed  sync.Once
}

// NewMemoryCache creates an in-memory cache and starts its cleanup loop.
func NewMemoryCache() *MemoryCache {
	c := &MemoryCache{
		entries: make(map[string]memoryEntry),
		done:    make(chan struct{}),
	}
	go c.cleanupLoop()
	return c
}

// Get retrieves the value for key, treating expired entries as misses.
func (c *MemoryCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	c.mu.RLock()
	entry, exists := c.entries[key]
	c.mu.RUnlock()

	if !exists {
		return nil, false, nil
	}
	if time.Now().After(entry.expiresAt) {
		c.mu.Lock()
		delete(c.entries, key)
		c.mu.Unlock()
		return nil, false, nil
	}
	return entry.value, true, nil
}

// Set stores value under key with the given TTL.
func (c *MemoryCache) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	c.mu.Lock()
	c.entries[key] = memoryEntry{
		value:     value,
		expiresAt: time.Now().Add(ttl),
	}
	c.mu.Unlock()
	return nil
}

// Delete removes key. Deleting an absent key is a no-op.
func (c *MemoryCache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()
	return nil
}

// Close stops the cleanup goroutine.
func (c *MemoryCache) Close() error {
	c.closed.Do(func() { close(c.done) })
	return nil
}

// Len returns the number of entries currently held, including entries
// that have expired but not yet been swept.
func (c *MemoryCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

func (c *MemoryCache) cleanupLoop() {
	ticker := time.NewTicker(cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.cleanup()
		case <-c.done:
			return
		}
	}
}

func (c *MemoryCache) cleanup() {
	now := time.Now()
	c.mu.Lock()
	defer c.mu.Unlock()
	for key, entry := range c.entries {
		if now.After(entry.expiresAt) {
			delete(c.entries, key)
		}
	}
}
