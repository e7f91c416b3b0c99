// Package statecache provides an in-memory TTL cache for short-lived values
// such as OAuth authorization state.
package statecache

import (
	"context"
	"sync"
	"time"

	"github.com/filehub-labs/filehub/internal/core/domain"
	"github.com/filehub-labs/filehub/internal/core/ports/driven"
)

// Ensure Cache implements the interface.
var _ driven.StateCache = (*Cache)(nil)

type entry struct {
	value     string
	expiresAt time.Time
}

// Cache is an in-memory key-value cache with per-entry expiry. Expired
// entries are dropped lazily on read and write; there is no background
// sweeper.
type Cache struct {
	mu      sync.Mutex
	entries map[string]entry
	now     func() time.Time
}

// New creates an empty cache.
func New() *Cache {
	return &Cache{
		entries: make(map[string]entry),
		now:     time.Now,
	}
}

// NewWithClock creates a cache with an injected clock for testing.
func NewWithClock(now func() time.Time) *Cache {
	return &Cache{
		entries: make(map[string]entry),
		now:     now,
	}
}

// Put stores a value under key for at most ttl. A non-positive ttl expires
// the entry immediately.
func (c *Cache) Put(_ context.Context, key, value string, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.sweepLocked()
	c.entries[key] = entry{
		value:     value,
		expiresAt: c.now().Add(ttl),
	}
	return nil
}

// Get retrieves a live value. Expired or absent keys return domain.ErrNotFound.
func (c *Cache) Get(_ context.Context, key string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return "", domain.ErrNotFound
	}
	if !c.now().Before(e.expiresAt) {
		delete(c.entries, key)
		return "", domain.ErrNotFound
	}
	return e.value, nil
}

// Delete removes a key. Deleting an absent key is not an error.
func (c *Cache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
	return nil
}

// sweepLocked drops expired entries. Caller holds the lock.
func (c *Cache) sweepLocked() {
	now := c.now()
	for key, e := range c.entries {
		if !now.Before(e.expiresAt) {
			delete(c.entries, key)
		}
	}
}
