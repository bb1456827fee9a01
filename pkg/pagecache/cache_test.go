package pagecache

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Sternrassler/go-scrollpager/internal/testutil"
	"github.com/Sternrassler/go-scrollpager/pkg/pager"
)

// setupTestRedis creates a test Redis client. Tests skip when no local
// Redis is available; the containerized path lives in tests/integration.
func setupTestRedis(t *testing.T) *redis.Client {
	t.Helper()

	client := redis.NewClient(&redis.Options{
		Addr: "localhost:6379",
		DB:   15,
	})

	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		t.Skipf("Redis not available for testing: %v", err)
	}

	if err := client.FlushDB(ctx).Err(); err != nil {
		t.Fatalf("Failed to flush test DB: %v", err)
	}

	t.Cleanup(func() {
		client.FlushDB(context.Background())
		client.Close()
	})

	return client
}

func TestNew_Panics(t *testing.T) {
	src := testutil.NewScriptedSource[string]()

	t.Run("nil_source", func(t *testing.T) {
		defer func() {
			if r := recover(); r == nil {
				t.Error("New should panic with nil source")
			}
		}()
		New[string](nil, redis.NewClient(&redis.Options{}), "feed", time.Minute)
	})

	t.Run("nil_client", func(t *testing.T) {
		defer func() {
			if r := recover(); r == nil {
				t.Error("New should panic with nil redis client")
			}
		}()
		New[string](src, nil, "feed", time.Minute)
	})
}

func TestFetchPage_MissThenHit(t *testing.T) {
	client := setupTestRedis(t)
	ctx := context.Background()

	src := testutil.NewScriptedSource[string](
		testutil.ScriptedPage[string]{Items: []string{"a", "b", "c"}},
	)
	cache := New[string](src, client, "test-feed", time.Minute)

	// Compile-time check: the cache is itself a source.
	var _ pager.Source[string] = cache

	// First fetch: miss, served by the underlying source.
	page1, err := cache.FetchPage(ctx, 0, 3)
	if err != nil {
		t.Fatalf("FetchPage failed: %v", err)
	}
	if len(page1) != 3 {
		t.Fatalf("Page length = %d, want 3", len(page1))
	}
	if src.CallCount() != 1 {
		t.Fatalf("Source called %d times, want 1", src.CallCount())
	}

	// Second fetch of the same window: served from Redis.
	page2, err := cache.FetchPage(ctx, 0, 3)
	if err != nil {
		t.Fatalf("FetchPage failed: %v", err)
	}
	if len(page2) != 3 || page2[0] != "a" || page2[2] != "c" {
		t.Errorf("Cached page = %v, want [a b c]", page2)
	}
	if src.CallCount() != 1 {
		t.Errorf("Source called %d times, want 1 (second fetch must hit the cache)", src.CallCount())
	}
}

func TestFetchPage_DistinctWindows(t *testing.T) {
	client := setupTestRedis(t)
	ctx := context.Background()

	src := testutil.NewScriptedSource[string](
		testutil.ScriptedPage[string]{Items: []string{"a", "b"}},
		testutil.ScriptedPage[string]{Items: []string{"c"}},
	)
	cache := New[string](src, client, "test-feed", time.Minute)

	if _, err := cache.FetchPage(ctx, 0, 2); err != nil {
		t.Fatalf("FetchPage failed: %v", err)
	}
	if _, err := cache.FetchPage(ctx, 2, 2); err != nil {
		t.Fatalf("FetchPage failed: %v", err)
	}

	if src.CallCount() != 2 {
		t.Errorf("Source called %d times, want 2 (distinct windows must not collide)", src.CallCount())
	}
}

func TestGet_Miss(t *testing.T) {
	client := setupTestRedis(t)
	ctx := context.Background()

	src := testutil.NewScriptedSource[string]()
	cache := New[string](src, client, "test-feed", time.Minute)

	_, err := cache.Get(ctx, Key{Feed: "test-feed", Position: 0, PageSize: 10})
	if err != ErrCacheMiss {
		t.Errorf("Get on empty cache = %v, want ErrCacheMiss", err)
	}
}

func TestInvalidate(t *testing.T) {
	client := setupTestRedis(t)
	ctx := context.Background()

	src := testutil.NewScriptedSource[string](
		testutil.ScriptedPage[string]{Items: []string{"a"}},
		testutil.ScriptedPage[string]{Items: []string{"a"}},
	)
	cache := New[string](src, client, "test-feed", time.Minute)

	if _, err := cache.FetchPage(ctx, 0, 1); err != nil {
		t.Fatalf("FetchPage failed: %v", err)
	}
	if err := cache.Invalidate(ctx); err != nil {
		t.Fatalf("Invalidate failed: %v", err)
	}

	// The window must be refetched after invalidation.
	if _, err := cache.FetchPage(ctx, 0, 1); err != nil {
		t.Fatalf("FetchPage failed: %v", err)
	}
	if src.CallCount() != 2 {
		t.Errorf("Source called %d times, want 2 after invalidation", src.CallCount())
	}
}
