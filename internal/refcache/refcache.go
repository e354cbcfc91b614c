// Package refcache caches slow-changing reference data such as countries and
// their states. Values are loaded on first use and kept until they expire or
// are invalidated.
package refcache

import (
	"context"
	"time"

	"go.uber.org/zap"

	"ziplofy-shipping/internal/logger"
)

// Store is the backing storage of a Cache.
type Store[V any] interface {
	Get(ctx context.Context, key string) (V, bool, error)
	Set(ctx context.Context, key string, value V, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// FetchFunc loads the value of key from its source.
type FetchFunc[V any] func(ctx context.Context, key string) (V, error)

const DefaultTTL = 10 * time.Minute

type Cache[V any] struct {
	store Store[V]
	fetch FetchFunc[V]
	ttl   time.Duration
	log   *zap.Logger
}

// New returns a cache over store. A non-positive ttl uses DefaultTTL.
func New[V any](store Store[V], fetch FetchFunc[V], ttl time.Duration, log *zap.Logger) *Cache[V] {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Cache[V]{store: store, fetch: fetch, ttl: ttl, log: logger.OrNop(log)}
}

// Get returns the cached value without fetching.
func (c *Cache[V]) Get(ctx context.Context, key string) (V, bool) {
	v, ok, err := c.store.Get(ctx, key)
	if err != nil {
		c.log.Warn("refcache get failed", zap.String("key", key), zap.Error(err))
		var zero V
		return zero, false
	}
	return v, ok
}

// GetOrFetch returns the cached value or loads and stores it. A store failure
// degrades to a direct fetch; only fetch errors are returned.
func (c *Cache[V]) GetOrFetch(ctx context.Context, key string) (V, error) {
	if v, ok := c.Get(ctx, key); ok {
		return v, nil
	}

	v, err := c.fetch(ctx, key)
	if err != nil {
		var zero V
		return zero, err
	}
	if err := c.store.Set(ctx, key, v, c.ttl); err != nil {
		c.log.Warn("refcache set failed", zap.String("key", key), zap.Error(err))
	}
	return v, nil
}

func (c *Cache[V]) Invalidate(ctx context.Context, key string) error {
	return c.store.Delete(ctx, key)
}
