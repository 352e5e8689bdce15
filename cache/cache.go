package cache

import (
	"context"
	"time"

	"github.com/samber/mo"
)

// Producer computes a value on a cache miss.
type Producer[T any] func(ctx context.Context) (T, error)

type Cache[T any] interface {
	Set(key string, value T) error
	SetWithTTL(key string, value T, ttl time.Duration) error
	Get(key string) mo.Option[T]
	Remove(key string) error
	Clear() error
	ClearExpired() (int, error)
	WithCache(ctx context.Context, key string, producer Producer[T]) (T, error)
	WithCacheTTL(ctx context.Context, key string, producer Producer[T], ttl time.Duration) (T, error)
}
