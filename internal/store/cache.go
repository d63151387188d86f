package store

import (
	"context"       // Context for Redis operations
	"encoding/json" // JSON encoding/decoding
	"time"          // Time durations

	"github.com/Jimmyweng006/User-Points-Service-Backend-Homework/internal/domain" // Importing domain models

	"github.com/redis/go-redis/v9" // Redis client
)

// Cache key prefix for per-user balance rows
const balanceKeyPrefix = "user_points:"

// RedisBalanceCache is a read-through cache of UserPoints rows with a TTL
type RedisBalanceCache struct {
	rdb *redis.Client // Redis client
	ttl time.Duration // Expiry for cached rows
}

// NewRedisBalanceCache builds a balance cache on top of a Redis client
func NewRedisBalanceCache(rdb *redis.Client, ttl time.Duration) *RedisBalanceCache {
	return &RedisBalanceCache{rdb: rdb, ttl: ttl}
}

// Get retrieves a cached balance row; the second return reports a hit
func (c *RedisBalanceCache) Get(ctx context.Context, userID string) (*domain.UserPoints, bool, error) {
	val, err := c.rdb.Get(ctx, balanceKeyPrefix+userID).Result() // Get value from Redis
	if err == redis.Nil {
		return nil, false, nil // Key does not exist
	} else if err != nil {
		return nil, false, err // Other Redis error
	}
	var up domain.UserPoints
	if err := json.Unmarshal([]byte(val), &up); err != nil {
		return nil, false, err // Corrupt entry counts as an error, not a hit
	}
	return &up, true, nil
}

// Put stores a balance row in Redis with the configured TTL
func (c *RedisBalanceCache) Put(ctx context.Context, up *domain.UserPoints) error {
	b, err := json.Marshal(up) // Marshal value to JSON
	if err != nil {
		return err // Return error if marshaling fails
	}
	return c.rdb.Set(ctx, balanceKeyPrefix+up.UserID, b, c.ttl).Err() // Set value in Redis with TTL
}

// Invalidate deletes a user's cached balance row from Redis
func (c *RedisBalanceCache) Invalidate(ctx context.Context, userID string) error {
	return c.rdb.Del(ctx, balanceKeyPrefix+userID).Err() // Delete key from Redis
}
