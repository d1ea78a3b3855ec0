package cache

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/paintfactory/backend/internal/application/costing"
)

// InMemoryCostCache implements CostCache using in-process storage. Suitable
// for single-instance deployments and tests; entries expire lazily on read.
type InMemoryCostCache struct {
	mu      sync.RWMutex
	entries map[uuid.UUID]costEntry
	ttl     time.Duration
}

type costEntry struct {
	cost      decimal.Decimal
	expiresAt time.Time
}

func (e costEntry) isExpired() bool {
	return !e.expiresAt.IsZero() && time.Now().After(e.expiresAt)
}

// NewInMemoryCostCache creates a new in-memory cost cache. A zero TTL means
// entries never expire and live until invalidated.
func NewInMemoryCostCache(ttl time.Duration) *InMemoryCostCache {
	return &InMemoryCostCache{
		entries: make(map[uuid.UUID]costEntry),
		ttl:     ttl,
	}
}

// Get returns the cached unit cost and whether it was present
func (c *InMemoryCostCache) Get(_ context.Context, finishedGoodID uuid.UUID) (decimal.Decimal, bool, error) {
	c.mu.RLock()
	entry, ok := c.entries[finishedGoodID]
	c.mu.RUnlock()

	if !ok {
		return decimal.Zero, false, nil
	}
	if entry.isExpired() {
		c.mu.Lock()
		delete(c.entries, finishedGoodID)
		c.mu.Unlock()
		return decimal.Zero, false, nil
	}
	return entry.cost, true, nil
}

// Set stores the unit cost for a finished good
func (c *InMemoryCostCache) Set(_ context.Context, finishedGoodID uuid.UUID, cost decimal.Decimal) error {
	entry := costEntry{cost: cost}
	if c.ttl > 0 {
		entry.expiresAt = time.Now().Add(c.ttl)
	}

	c.mu.Lock()
	c.entries[finishedGoodID] = entry
	c.mu.Unlock()
	return nil
}

// Invalidate removes one cached entry
func (c *InMemoryCostCache) Invalidate(_ context.Context, finishedGoodID uuid.UUID) error {
	c.mu.Lock()
	delete(c.entries, finishedGoodID)
	c.mu.Unlock()
	return nil
}

// InvalidateAll removes all cached entries
func (c *InMemoryCostCache) InvalidateAll(_ context.Context) error {
	c.mu.Lock()
	c.entries = make(map[uuid.UUID]costEntry)
	c.mu.Unlock()
	return nil
}

// Len returns the number of live entries, counting expired ones that have
// not been read yet.
func (c *InMemoryCostCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Ensure InMemoryCostCache implements CostCache
var _ costing.CostCache = (*InMemoryCostCache)(nil)
