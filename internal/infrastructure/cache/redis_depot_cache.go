package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// RedisDepotCache implements DepotCache using Redis. Suitable for
// deployments where multiple instances should share depot resolutions.
type RedisDepotCache struct {
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

// NewRedisDepotCache creates a new Redis-backed depot cache
func NewRedisDepotCache(cfg RedisConfig) (*RedisDepotCache, error) {
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

	return &RedisDepotCache{
		client:    client,
		keyPrefix: "pricing:depot:",
		ttl:       defaultDepotTTL,
	}, nil
}

// NewRedisDepotCacheWithClient creates a cache with an existing Redis client.
// Useful for testing or when sharing a client across components.
func NewRedisDepotCacheWithClient(client *redis.Client, keyPrefix string) *RedisDepotCache {
	if keyPrefix == "" {
		keyPrefix = "pricing:depot:"
	}
	return &RedisDepotCache{
		client:    client,
		keyPrefix: keyPrefix,
		ttl:       defaultDepotTTL,
	}
}

func (c *RedisDepotCache) key(pincode string) string {
	return c.keyPrefix + pincode
}

// GetDepotIDByPincode returns the cached depot id for a pincode
func (c *RedisDepotCache) GetDepotIDByPincode(ctx context.Context, pincode string) (uuid.UUID, bool, error) {
	val, err := c.client.Get(ctx, c.key(pincode)).Result()
	if errors.Is(err, redis.Nil) {
		return uuid.Nil, false, nil
	}
	if err != nil {
		return uuid.Nil, false, fmt.Errorf("redis get: %w", err)
	}

	depotID, err := uuid.Parse(val)
	if err != nil {
		// Corrupt entry; treat as a miss so it gets rewritten.
		return uuid.Nil, false, nil
	}
	return depotID, true, nil
}

// SetDepotIDByPincode caches a pincode resolution
func (c *RedisDepotCache) SetDepotIDByPincode(ctx context.Context, pincode string, depotID uuid.UUID) error {
	if err := c.client.Set(ctx, c.key(pincode), depotID.String(), c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

// InvalidatePincode drops a cached resolution
func (c *RedisDepotCache) InvalidatePincode(ctx context.Context, pincode string) error {
	if err := c.client.Del(ctx, c.key(pincode)).Err(); err != nil {
		return fmt.Errorf("redis del: %w", err)
	}
	return nil
}
