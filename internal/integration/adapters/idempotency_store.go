// Package adapters provides implementations for external service integrations.
package adapters

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/yasasArt/financemate-backend/internal/application/adapter"
)

// RedisIdempotencyStore implements adapter.IdempotencyStore on Redis.
// Keys are best-effort markers; the ledger's unique index remains the
// durable authority when Redis is unavailable or a key expires.
type RedisIdempotencyStore struct {
	client *redis.Client
}

// NewRedisIdempotencyStore creates a new Redis-backed idempotency store.
func NewRedisIdempotencyStore(client *redis.Client) *RedisIdempotencyStore {
	return &RedisIdempotencyStore{
		client: client,
	}
}

// Acquire attempts to record the key with SETNX semantics. Returns true
// when the key was newly recorded.
func (s *RedisIdempotencyStore) Acquire(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	return s.client.SetNX(ctx, key, time.Now().UTC().Format(time.RFC3339), ttl).Result()
}

// Release removes the key so a failed operation can be retried.
func (s *RedisIdempotencyStore) Release(ctx context.Context, key string) error {
	return s.client.Del(ctx, key).Err()
}

var _ adapter.IdempotencyStore = (*RedisIdempotencyStore)(nil)
