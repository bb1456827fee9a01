package pagecache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/Sternrassler/go-scrollpager/pkg/pager"
)

// ErrCacheMiss is returned by Get when no entry exists for the key.
var ErrCacheMiss = errors.New("page cache miss")

// DefaultTTL is the fallback TTL when none is configured.
const DefaultTTL = 5 * time.Minute

// Prometheus metrics for page cache operations.
var (
	cacheHitsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "scrollpager_cache_hits_total",
		Help: "Pages served from the Redis page cache",
	})

	cacheMissesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "scrollpager_cache_misses_total",
		Help: "Pages fetched from the underlying source",
	})

	cacheErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "scrollpager_cache_errors_total",
		Help: "Page cache operation errors",
	}, []string{"operation"})
)

// Cache wraps a pager.Source and memoizes its pages in Redis.
type Cache[T comparable] struct {
	source pager.Source[T]
	redis  *redis.Client
	feed   string
	ttl    time.Duration
	logger zerolog.Logger
}

// New creates a page cache over the given source. Panics if source or
// client is nil. A non-positive TTL falls back to DefaultTTL.
func New[T comparable](source pager.Source[T], client *redis.Client, feed string, ttl time.Duration) *Cache[T] {
	if source == nil {
		panic("pagecache: source cannot be nil")
	}
	if client == nil {
		panic("pagecache: redis client cannot be nil")
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	return &Cache[T]{
		source: source,
		redis:  client,
		feed:   feed,
		ttl:    ttl,
		logger: log.With().Str("component", "pagecache").Str("feed", feed).Logger(),
	}
}

// FetchPage implements pager.Source: it serves the page from Redis when
// present, otherwise fetches from the underlying source and stores the
// result. Cache failures degrade to a direct fetch.
func (c *Cache[T]) FetchPage(ctx context.Context, position, pageSize int) ([]T, error) {
	key := Key{Feed: c.feed, Position: position, PageSize: pageSize}

	batch, err := c.Get(ctx, key)
	if err == nil {
		cacheHitsTotal.Inc()
		c.logger.Debug().
			Str("cache_key", key.String()).
			Int("items", len(batch)).
			Msg("Page cache hit")
		return batch, nil
	}
	if !errors.Is(err, ErrCacheMiss) {
		cacheErrorsTotal.WithLabelValues("get").Inc()
		c.logger.Warn().Err(err).Str("cache_key", key.String()).Msg("Page cache get error")
	}
	cacheMissesTotal.Inc()

	batch, err = c.source.FetchPage(ctx, position, pageSize)
	if err != nil {
		return nil, err
	}

	if err := c.Set(ctx, key, batch); err != nil {
		cacheErrorsTotal.WithLabelValues("set").Inc()
		c.logger.Warn().Err(err).Str("cache_key", key.String()).Msg("Page cache set error")
	}

	return batch, nil
}

// Get retrieves a cached page. Returns ErrCacheMiss when absent.
func (c *Cache[T]) Get(ctx context.Context, key Key) ([]T, error) {
	data, err := c.redis.Get(ctx, key.String()).Bytes()
	if err == redis.Nil {
		return nil, ErrCacheMiss
	}
	if err != nil {
		return nil, fmt.Errorf("cache get: %w", err)
	}

	var batch []T
	if err := json.Unmarshal(data, &batch); err != nil {
		return nil, fmt.Errorf("cache decode: %w", err)
	}
	return batch, nil
}

// Set stores a page with the configured TTL.
func (c *Cache[T]) Set(ctx context.Context, key Key, batch []T) error {
	data, err := json.Marshal(batch)
	if err != nil {
		return fmt.Errorf("cache encode: %w", err)
	}
	if err := c.redis.Set(ctx, key.String(), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("cache set: %w", err)
	}
	return nil
}

// Invalidate removes all cached pages of the feed.
func (c *Cache[T]) Invalidate(ctx context.Context) error {
	pattern := fmt.Sprintf("scrollpager:page:%s:*", c.feed)

	var cursor uint64
	for {
		keys, next, err := c.redis.Scan(ctx, cursor, pattern, 100).Result()
		if err != nil {
			return fmt.Errorf("cache scan: %w", err)
		}
		if len(keys) > 0 {
			if err := c.redis.Del(ctx, keys...).Err(); err != nil {
				return fmt.Errorf("cache del: %w", err)
			}
		}
		cursor = next
		if cursor == 0 {
			return nil
		}
	}
}
