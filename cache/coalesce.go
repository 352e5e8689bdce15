package cache

import (
	"context"
	"time"

	"golang.org/x/sync/singleflight"
)

// Coalescer adds caller side single-flight on top of a Cache: concurrent misses for the
// same key share one producer call. The Cache itself never coalesces.
type Coalescer[T any] struct {
	cache Cache[T]
	group singleflight.Group
}

func NewCoalescer[T any](c Cache[T]) *Coalescer[T] {
	return &Coalescer[T]{cache: c}
}

func (c *Coalescer[T]) WithCacheTTL(ctx context.Context, key string, producer Producer[T], ttl time.Duration) (T, error) {
	v, er, _ := c.group.Do(key, func() (interface{}, error) {
		return c.cache.WithCacheTTL(ctx, key, producer, ttl)
	})
	if er != nil {
		var zero T
		return zero, er
	}
	t, _ := v.(T)
	return t, nil
}

// Forget makes the next call for key start a new flight instead of joining one in progress.
func (c *Coalescer[T]) Forget(key string) {
	c.group.Forget(key)
}
