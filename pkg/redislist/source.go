// Package redislist provides a pager.Source backed by a Redis list.
//
// Items are stored under a single list key; FetchPage maps the
// pagination position onto an LRANGE window, so the natural Redis
// behavior of returning a short (or empty) range at the end of the list
// doubles as the loader's end-of-list signal.
package redislist

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Source reads pages of string items from a Redis list.
type Source struct {
	redis  *redis.Client
	key    string
	logger zerolog.Logger
}

// New creates a source over the given Redis list key.
// Panics if client is nil.
func New(client *redis.Client, key string) *Source {
	if client == nil {
		panic("redislist: redis client cannot be nil")
	}
	return &Source{
		redis:  client,
		key:    key,
		logger: log.With().Str("component", "redislist").Str("key", key).Logger(),
	}
}

// FetchPage implements pager.Source for string items.
func (s *Source) FetchPage(ctx context.Context, position, pageSize int) ([]string, error) {
	stop := int64(position + pageSize - 1)

	items, err := s.redis.LRange(ctx, s.key, int64(position), stop).Result()
	if err != nil {
		return nil, fmt.Errorf("lrange %s [%d:%d]: %w", s.key, position, stop, err)
	}

	s.logger.Debug().
		Int("position", position).
		Int("page_size", pageSize).
		Int("items", len(items)).
		Msg("Fetched page from Redis list")

	return items, nil
}

// Seed replaces the contents of the list with the given items.
// Intended for demos and tests.
func Seed(ctx context.Context, client *redis.Client, key string, items []string) error {
	pipe := client.TxPipeline()
	pipe.Del(ctx, key)
	if len(items) > 0 {
		values := make([]interface{}, len(items))
		for i, item := range items {
			values[i] = item
		}
		pipe.RPush(ctx, key, values...)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("seed list %s: %w", key, err)
	}
	return nil
}
