package cache

import (
	"context"
	"sync"
	"time"

	"github.com/aqari/backend/internal/application/report"
)

type memoryEntry struct {
	value     []byte
	expiresAt time.Time
}

// MemorySnapshotCache is an in-process SnapshotCache for single-instance
// deployments and tests. Expired entries are dropped lazily on read.
type MemorySnapshotCache struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
}

// NewMemorySnapshotCache creates an empty in-memory cache
func NewMemorySnapshotCache() *MemorySnapshotCache {
	return &MemorySnapshotCache{
		entries: make(map[string]memoryEntry),
	}
}

// Get returns the cached value for key, or nil when absent or expired
func (c *MemorySnapshotCache) Get(_ context.Context, key string) ([]byte, error) {
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok {
		return nil, nil
	}
	if time.Now().After(entry.expiresAt) {
		c.mu.Lock()
		delete(c.entries, key)
		c.mu.Unlock()
		return nil, nil
	}
	return entry.value, nil
}

// Set stores value under key for the given TTL
func (c *MemorySnapshotCache) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	c.mu.Lock()
	c.entries[key] = memoryEntry{
		value:     value,
		expiresAt: time.Now().Add(ttl),
	}
	c.mu.Unlock()
	return nil
}

// Ensure MemorySnapshotCache implements SnapshotCache
var _ report.SnapshotCache = (*MemorySnapshotCache)(nil)
