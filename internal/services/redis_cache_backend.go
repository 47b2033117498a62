package services

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/cleanarch/webapp/internal/domain"
)

// redisCacheBackend implements CacheBackend using Redis.
type redisCacheBackend struct {
	client *redis.Client
	prefix string
}

// NewRedisCacheBackend creates a Redis cache backend over an existing client.
// All keys are namespaced with the given prefix.
func NewRedisCacheBackend(client *redis.Client, prefix string) CacheBackend {
	return &redisCacheBackend{client: client, prefix: prefix}
}

func (r *redisCacheBackend) key(key string) string {
	return r.prefix + key
}

// Set stores a value in Redis with TTL.
func (r *redisCacheBackend) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := r.client.Set(ctx, r.key(key), value, ttl).Err(); err != nil {
		return domain.NewInfrastructureError("CACHE_WRITE_FAILED", "Failed to write cache entry", err)
	}
	return nil
}

// Get retrieves a value from Redis.
func (r *redisCacheBackend) Get(ctx context.Context, key string) ([]byte, error) {
	payload, err := r.client.Get(ctx, r.key(key)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, NewCacheMiss(key)
		}
		return nil, domain.NewInfrastructureError("CACHE_READ_FAILED", "Failed to read cache entry", err)
	}
	return payload, nil
}

// Delete removes a key from Redis.
func (r *redisCacheBackend) Delete(ctx context.Context, key string) error {
	if err := r.client.Del(ctx, r.key(key)).Err(); err != nil {
		return domain.NewInfrastructureError("CACHE_DELETE_FAILED", "Failed to delete cache entry", err)
	}
	return nil
}

// Exists checks if a key exists in Redis.
func (r *redisCacheBackend) Exists(ctx context.Context, key string) bool {
	count, err := r.client.Exists(ctx, r.key(key)).Result()
	return err == nil && count > 0
}

// Flush removes every key under the backend's prefix.
func (r *redisCacheBackend) Flush(ctx context.Context) error {
	iter := r.client.Scan(ctx, 0, r.prefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		if err := r.client.Del(ctx, iter.Val()).Err(); err != nil {
			return domain.NewInfrastructureError("CACHE_FLUSH_FAILED", "Failed to flush cache", err)
		}
	}
	if err := iter.Err(); err != nil {
		return domain.NewInfrastructureError("CACHE_FLUSH_FAILED", "Failed to flush cache", err)
	}
	return nil
}
