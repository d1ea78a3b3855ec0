package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	"github.com/paintfactory/backend/internal/application/costing"
)

const defaultCostKeyPrefix = "cost:fg:"

// RedisCostCache implements CostCache using Redis. This is suitable for
// distributed deployments where multiple instances need to share cached
// cost rollups.
type RedisCostCache struct {
	client    *redis.Client
	keyPrefix string
	ttl       time.Duration
}

// RedisConfig holds Redis connection configuration
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// NewRedisCostCache creates a new Redis-based cost cache
func NewRedisCostCache(cfg RedisConfig, ttl time.Duration) (*RedisCostCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisCostCache{
		client:    client,
		keyPrefix: defaultCostKeyPrefix,
		ttl:       ttl,
	}, nil
}

// NewRedisCostCacheWithClient creates a cache with an existing Redis client.
// This is useful for testing or when sharing a client across components.
func NewRedisCostCacheWithClient(client *redis.Client, keyPrefix string, ttl time.Duration) *RedisCostCache {
	if keyPrefix == "" {
		keyPrefix = defaultCostKeyPrefix
	}
	return &RedisCostCache{
		client:    client,
		keyPrefix: keyPrefix,
		ttl:       ttl,
	}
}

func (c *RedisCostCache) key(finishedGoodID uuid.UUID) string {
	return c.keyPrefix + finishedGoodID.String()
}

// Get returns the cached unit cost and whether it was present
func (c *RedisCostCache) Get(ctx context.Context, finishedGoodID uuid.UUID) (decimal.Decimal, bool, error) {
	value, err := c.client.Get(ctx, c.key(finishedGoodID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return decimal.Zero, false, nil
		}
		return decimal.Zero, false, fmt.Errorf("failed to read cost cache: %w", err)
	}

	cost, err := decimal.NewFromString(value)
	if err != nil {
		// A corrupt entry is treated as a miss and dropped
		_ = c.client.Del(ctx, c.key(finishedGoodID)).Err()
		return decimal.Zero, false, nil
	}
	return cost, true, nil
}

// Set stores the unit cost for a finished good
func (c *RedisCostCache) Set(ctx context.Context, finishedGoodID uuid.UUID, cost decimal.Decimal) error {
	if err := c.client.Set(ctx, c.key(finishedGoodID), cost.String(), c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to write cost cache: %w", err)
	}
	return nil
}

// Invalidate removes one cached entry
func (c *RedisCostCache) Invalidate(ctx context.Context, finishedGoodID uuid.UUID) error {
	if err := c.client.Del(ctx, c.key(finishedGoodID)).Err(); err != nil {
		return fmt.Errorf("failed to invalidate cost cache: %w", err)
	}
	return nil
}

// InvalidateAll removes all cached cost entries. Keys are discovered with
// SCAN rather than KEYS so a large cache does not block Redis.
func (c *RedisCostCache) InvalidateAll(ctx context.Context) error {
	iter := c.client.Scan(ctx, 0, c.keyPrefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		if err := c.client.Del(ctx, iter.Val()).Err(); err != nil {
			return fmt.Errorf("failed to invalidate cost cache: %w", err)
		}
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("failed to scan cost cache keys: %w", err)
	}
	return nil
}

// Close closes the underlying Redis client
func (c *RedisCostCache) Close() error {
	return c.client.Close()
}

// Ensure RedisCostCache implements CostCache
var _ costing.CostCache = (*RedisCostCache)(nil)
