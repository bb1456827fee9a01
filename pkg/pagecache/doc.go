// Package pagecache provides a Redis-backed page cache that wraps any
// pager.Source.
//
// Each fetched page is memoized under a deterministic key derived from
// the feed name, position, and page size, with a fixed TTL. Repeated
// reloads of the same feed (the controller clears its sequence and
// rewinds the loader) are then served from Redis without touching the
// underlying source.
//
// # Basic Usage
//
//	source := redislist.New(redisClient, "feed:articles")
//	cached := pagecache.New[string](source, redisClient, "articles", time.Minute)
//
//	loader := pager.New[string](cached, pager.DefaultConfig())
//
// Cache failures never fail a fetch: a Redis or decode error falls back
// to the underlying source and is only counted and logged.
//
// # Metrics
//
//   - scrollpager_cache_hits_total - Pages served from Redis
//   - scrollpager_cache_misses_total - Pages fetched from the source
//   - scrollpager_cache_errors_total{operation} - Cache operation errors
package pagecache
