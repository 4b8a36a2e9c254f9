// Package cache provides a thin Redis read-cache for hot ledger queries.
// Mutating workflows invalidate the affected keys; a miss always falls
// through to PostgreSQL, so the cache is never authoritative.
package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// DefaultTTL bounds staleness for cached reads that escaped invalidation.
const DefaultTTL = 60 * time.Second

// Cache wraps a Redis client with JSON marshaling helpers.
type Cache struct {
	rdb *redis.Client
}

// New creates a Cache over an existing Redis client.
func New(rdb *redis.Client) *Cache {
	return &Cache{rdb: rdb}
}

// BalanceKey is the cache key for a user's points balance.
func BalanceKey(userID uuid.UUID) string {
	return "balance:" + userID.String()
}

// HistoryKey is the cache key for a user's transaction history. kind is
// empty for the unfiltered listing.
func HistoryKey(userID uuid.UUID, kind string) string {
	return "txhistory:" + userID.String() + ":" + kind
}

// Get retrieves a key and unmarshals it into dest. The first return value
// reports whether the key existed.
func (c *Cache) Get(ctx context.Context, key string, dest any) (bool, error) {
	val, err := c.rdb.Get(ctx, key).Result()
	if err == redis.Nil {
		return false, nil
	} else if err != nil {
		return false, err
	}
	return true, json.Unmarshal([]byte(val), dest)
}

// Set stores value under key with the given TTL.
func (c *Cache) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, key, b, ttl).Err()
}

// Invalidate removes the given keys. Missing keys are not an error.
func (c *Cache) Invalidate(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	return c.rdb.Del(ctx, keys...).Err()
}

// InvalidateUser removes every cached read for a user. Called after any
// balance mutation.
func (c *Cache) InvalidateUser(ctx context.Context, userID uuid.UUID) error {
	return c.Invalidate(ctx,
		BalanceKey(userID),
		HistoryKey(userID, ""),
		HistoryKey(userID, "earning"),
		HistoryKey(userID, "withdrawal"),
	)
}
