package cache

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// depotEntry wraps a cached depot id with its expiration time
type depotEntry struct {
	depotID   uuid.UUID
	expiresAt time.Time
}

func (e depotEntry) isExpired() bool {
	return time.Now().After(e.expiresAt)
}

// InMemoryDepotCache implements DepotCache using process-local storage.
// Suitable for single-instance deployments and as a fallback when Redis
// is unavailable.
type InMemoryDepotCache struct {
	mu      sync.RWMutex
	entries map[string]depotEntry
	ttl     time.Duration
}

// InMemoryDepotCacheOption is a functional option for configuring the cache
type InMemoryDepotCacheOption func(*InMemoryDepotCache)

// WithInMemoryTTL sets the entry TTL
func WithInMemoryTTL(ttl time.Duration) InMemoryDepotCacheOption {
	return func(c *InMemoryDepotCache) {
		c.ttl = ttl
	}
}

// NewInMemoryDepotCache creates a new in-memory depot cache
func NewInMemoryDepotCache(opts ...InMemoryDepotCacheOption) *InMemoryDepotCache {
	c := &InMemoryDepotCache{
		entries: make(map[string]depotEntry),
		ttl:     defaultDepotTTL,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// GetDepotIDByPincode returns the cached depot id for a pincode
func (c *InMemoryDepotCache) GetDepotIDByPincode(_ context.Context, pincode string) (uuid.UUID, bool, error) {
	c.mu.RLock()
	entry, ok := c.entries[pincode]
	c.mu.RUnlock()

	if !ok || entry.isExpired() {
		if ok {
			c.mu.Lock()
			delete(c.entries, pincode)
			c.mu.Unlock()
		}
		return uuid.Nil, false, nil
	}
	return entry.depotID, true, nil
}

// SetDepotIDByPincode caches a pincode resolution
func (c *InMemoryDepotCache) SetDepotIDByPincode(_ context.Context, pincode string, depotID uuid.UUID) error {
	c.mu.Lock()
	c.entries[pincode] = depotEntry{depotID: depotID, expiresAt: time.Now().Add(c.ttl)}
	c.mu.Unlock()
	return nil
}

// InvalidatePincode drops a cached resolution
func (c *InMemoryDepotCache) InvalidatePincode(_ context.Context, pincode string) error {
	c.mu.Lock()
	delete(c.entries, pincode)
	c.mu.Unlock()
	return nil
}
