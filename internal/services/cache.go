// Package services provides the technical service implementations registered
// in the infrastructure layer.
package services

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/cleanarch/webapp/internal/domain"
)

// CacheBackend defines the interface for cache storage backends.
type CacheBackend interface {
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Get(ctx context.Context, key string) ([]byte, error)
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) bool
	Flush(ctx context.Context) error
}

// NewCacheMiss builds the domain error returned for an absent cache key.
func NewCacheMiss(key string) *domain.Error {
	return domain.NewNotFoundError("CACHE_MISS", "Cache miss for key "+key)
}

// IsCacheMiss reports whether err represents a cache miss; callers treat a
// miss as "load from source", not as a failure.
func IsCacheMiss(err error) bool {
	return domain.IsNotFound(err)
}

// UserCache is a typed read-through helper over a CacheBackend used by the
// user read paths.
type UserCache struct {
	backend CacheBackend
	ttl     time.Duration
}

// NewUserCache creates a user cache with the given default entry lifetime.
func NewUserCache(backend CacheBackend, ttl time.Duration) *UserCache {
	return &UserCache{backend: backend, ttl: ttl}
}

func userKey(id string) string {
	return "user:" + id
}

// Put stores a sanitized copy of the user.
func (c *UserCache) Put(ctx context.Context, user *domain.User) error {
	payload, err := json.Marshal(user.Sanitized())
	if err != nil {
		return domain.NewInternalError("CACHE_ENCODE_FAILED", "Failed to encode user for caching", err)
	}
	return c.backend.Set(ctx, userKey(user.ID), payload, c.ttl)
}

// Get returns the cached user, or a cache-miss error.
func (c *UserCache) Get(ctx context.Context, id string) (*domain.User, error) {
	payload, err := c.backend.Get(ctx, userKey(id))
	if err != nil {
		return nil, err
	}
	var user domain.User
	if err := json.Unmarshal(payload, &user); err != nil {
		// A corrupt entry behaves like a miss so the caller reloads.
		_ = c.backend.Delete(ctx, userKey(id))
		return nil, NewCacheMiss(id)
	}
	return &user, nil
}

// Invalidate drops the cached entry for a user.
func (c *UserCache) Invalidate(ctx context.Context, id string) error {
	return c.backend.Delete(ctx, userKey(id))
}

// memoryCacheBackend is a process-local CacheBackend used in development and
// tests.
type memoryCacheBackend struct {
	mu      sync.RWMutex
	entries map[string]memoryCacheEntry
}

type memoryCacheEntry struct {
	payload   []byte
	expiresAt time.Time
}

// NewMemoryCacheBackend creates an in-memory cache backend.
func NewMemoryCacheBackend() CacheBackend {
	return &memoryCacheBackend{
		entries: make(map[string]memoryCacheEntry),
	}
}

func (m *memoryCacheBackend) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry := memoryCacheEntry{payload: append([]byte(nil), value...)}
	if ttl > 0 {
		entry.expiresAt = time.Now().Add(ttl)
	}
	m.entries[key] = entry
	return nil
}

func (m *memoryCacheBackend) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	entry, ok := m.entries[key]
	m.mu.RUnlock()

	if !ok {
		return nil, NewCacheMiss(key)
	}
	if !entry.expiresAt.IsZero() && time.Now().After(entry.expiresAt) {
		m.mu.Lock()
		delete(m.entries, key)
		m.mu.Unlock()
		return nil, NewCacheMiss(key)
	}
	return append([]byte(nil), entry.payload...), nil
}

func (m *memoryCacheBackend) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, key)
	return nil
}

func (m *memoryCacheBackend) Exists(_ context.Context, key string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()

	entry, ok := m.entries[key]
	if !ok {
		return false
	}
	return entry.expiresAt.IsZero() || time.Now().Before(entry.expiresAt)
}

func (m *memoryCacheBackend) Flush(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = make(map[string]memoryCacheEntry)
	return nil
}
