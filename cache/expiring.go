package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/samber/mo"
	"go.uber.org/zap"

	"github.com/msaldanha/taskflow/storage"
)

const (
	DefaultPrefix = "taskflow_cache_"
	DefaultTTL    = 3600 * time.Second
)

type Options struct {
	// Prefix namespaces every key written by the cache. Keys outside it are never touched.
	Prefix     string
	DefaultTTL time.Duration
	// ProducerTimeout bounds each producer call made by WithCache. Zero means no deadline.
	ProducerTimeout time.Duration
	Now             func() time.Time
	Logger          *zap.Logger
}

// Expiring is a TTL cache over a persistent key value store. Values are stored as JSON,
// so the cache never holds references to caller owned data.
type Expiring[T any] struct {
	store           storage.KeyValueStore
	prefix          string
	defaultTTL      time.Duration
	producerTimeout time.Duration
	now             func() time.Time
	logger          *zap.Logger
}

var _ Cache[string] = (*Expiring[string])(nil)

func NewExpiring[T any](store storage.KeyValueStore, opts Options) (*Expiring[T], error) {
	if store == nil {
		return nil, ErrNilStore
	}
	if opts.Prefix == "" {
		opts.Prefix = DefaultPrefix
	}
	if opts.DefaultTTL <= 0 {
		opts.DefaultTTL = DefaultTTL
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	return &Expiring[T]{
		store:           store,
		prefix:          opts.Prefix,
		defaultTTL:      opts.DefaultTTL,
		producerTimeout: opts.ProducerTimeout,
		now:             opts.Now,
		logger:          opts.Logger.Named("Cache"),
	}, nil
}

func (c *Expiring[T]) Prefix() string {
	return c.prefix
}

func (c *Expiring[T]) Set(key string, value T) error {
	return c.SetWithTTL(key, value, c.defaultTTL)
}

// SetWithTTL overwrites key with value. Storage failures, including
// storage.ErrQuotaExceeded, are returned to the caller and nothing is evicted.
func (c *Expiring[T]) SetWithTTL(key string, value T, ttl time.Duration) error {
	v, er := json.Marshal(value)
	if er != nil {
		return fmt.Errorf("encoding value for %q: %w", key, er)
	}
	data, er := json.Marshal(newEntry(v, c.now(), ttl))
	if er != nil {
		return fmt.Errorf("encoding entry for %q: %w", key, er)
	}
	if er = c.store.Put(c.prefix+key, data); er != nil {
		return fmt.Errorf("storing %q: %w", key, er)
	}
	return nil
}

// Get returns the value stored under key. Missing, expired and malformed entries all
// read as None; the last two are deleted.
func (c *Expiring[T]) Get(key string) mo.Option[T] {
	data, found, er := c.store.Get(c.prefix + key)
	if er != nil {
		c.logger.Warn("read failed", zap.String("key", key), zap.Error(er))
		return mo.None[T]()
	}
	if !found {
		return mo.None[T]()
	}

	e, er := parseEntry(data)
	if er != nil {
		c.purge(key, "malformed")
		return mo.None[T]()
	}
	if e.IsExpired(c.now()) {
		c.purge(key, "expired")
		return mo.None[T]()
	}

	var value T
	if er = json.Unmarshal(e.Value, &value); er != nil {
		c.purge(key, "undecodable")
		return mo.None[T]()
	}
	return mo.Some(value)
}

func (c *Expiring[T]) Remove(key string) error {
	return c.store.Delete(c.prefix + key)
}

// Clear deletes every entry under the cache prefix.
func (c *Expiring[T]) Clear() error {
	keys, er := c.store.Keys(c.prefix)
	if er != nil {
		return er
	}
	for _, k := range keys {
		if er = c.store.Delete(k); er != nil {
			return er
		}
	}
	c.logger.Debug("cleared", zap.Int("count", len(keys)))
	return nil
}

// ClearExpired deletes expired and unparsable entries under the cache prefix and
// returns how many were removed.
func (c *Expiring[T]) ClearExpired() (int, error) {
	keys, er := c.store.Keys(c.prefix)
	if er != nil {
		return 0, er
	}

	now := c.now()
	removed := 0
	for _, k := range keys {
		data, found, er := c.store.Get(k)
		if er != nil {
			return removed, er
		}
		if !found {
			continue
		}
		if e, er := parseEntry(data); er == nil && !e.IsExpired(now) {
			continue
		}
		if er = c.store.Delete(k); er != nil {
			return removed, er
		}
		removed++
	}
	c.logger.Debug("expired entries cleared", zap.Int("count", removed))
	return removed, nil
}

func (c *Expiring[T]) WithCache(ctx context.Context, key string, producer Producer[T]) (T, error) {
	return c.WithCacheTTL(ctx, key, producer, c.defaultTTL)
}

// WithCacheTTL returns the cached value for key or calls producer once and caches its
// result. Concurrent callers missing the same key each call producer; see Coalescer.
// A result that cannot be stored is still returned.
func (c *Expiring[T]) WithCacheTTL(ctx context.Context, key string, producer Producer[T], ttl time.Duration) (T, error) {
	if v, ok := c.Get(key).Get(); ok {
		return v, nil
	}

	var (
		value T
		er    error
	)
	if c.producerTimeout > 0 {
		tctx, cancel := context.WithTimeout(ctx, c.producerTimeout)
		defer cancel()
		value, er = produce(tctx, producer)
	} else {
		value, er = producer(ctx)
	}
	if er != nil {
		var zero T
		return zero, er
	}

	if er = c.SetWithTTL(key, value, ttl); er != nil {
		c.logger.Warn("result not cached", zap.String("key", key), zap.Error(er))
	}
	return value, nil
}

func (c *Expiring[T]) purge(key, reason string) {
	if er := c.store.Delete(c.prefix + key); er != nil {
		c.logger.Warn("purge failed", zap.String("key", key), zap.String("reason", reason), zap.Error(er))
		return
	}
	c.logger.Debug("purged", zap.String("key", key), zap.String("reason", reason))
}

// Keys lists the keys currently stored under the cache prefix, without the prefix.
// Expired entries are included until they are read or swept.
func (c *Expiring[T]) Keys() ([]string, error) {
	raw, er := c.store.Keys(c.prefix)
	if er != nil {
		return nil, er
	}
	keys := make([]string, 0, len(raw))
	for _, k := range raw {
		keys = append(keys, strings.TrimPrefix(k, c.prefix))
	}
	return keys, nil
}

type produced[T any] struct {
	value T
	er    error
}

// produce calls producer, giving up when ctx is done even if producer ignores ctx.
func produce[T any](ctx context.Context, producer Producer[T]) (T, error) {
	ch := make(chan produced[T], 1)
	go func() {
		v, er := producer(ctx)
		ch <- produced[T]{value: v, er: er}
	}()
	select {
	case p := <-ch:
		return p.value, p.er
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}
