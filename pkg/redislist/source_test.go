package redislist

import (
	"context"
	"fmt"
	"testing"

	"github.com/redis/go-redis/v9"

	"github.com/Sternrassler/go-scrollpager/pkg/pager"
)

// setupTestRedis creates a test Redis client. Unit tests skip when no
// local Redis is available; the containerized path lives in
// tests/integration.
func setupTestRedis(t *testing.T) *redis.Client {
	t.Helper()

	client := redis.NewClient(&redis.Options{
		Addr: "localhost:6379",
		DB:   15, // Use a separate DB for tests
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

func TestNew_Panic(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Error("New should panic with nil redis client")
		}
	}()
	New(nil, "feed")
}

func TestFetchPage(t *testing.T) {
	client := setupTestRedis(t)
	ctx := context.Background()

	items := make([]string, 25)
	for i := range items {
		items[i] = fmt.Sprintf("item-%02d", i)
	}
	if err := Seed(ctx, client, "test:feed", items); err != nil {
		t.Fatalf("Seed failed: %v", err)
	}

	src := New(client, "test:feed")

	// Compile-time check that the source satisfies the loader contract.
	var _ pager.Source[string] = src

	t.Run("full_page", func(t *testing.T) {
		page, err := src.FetchPage(ctx, 0, 10)
		if err != nil {
			t.Fatalf("FetchPage failed: %v", err)
		}
		if len(page) != 10 {
			t.Fatalf("Page length = %d, want 10", len(page))
		}
		if page[0] != "item-00" || page[9] != "item-09" {
			t.Errorf("Page = %v, want item-00..item-09", page)
		}
	})

	t.Run("short_last_page", func(t *testing.T) {
		page, err := src.FetchPage(ctx, 20, 10)
		if err != nil {
			t.Fatalf("FetchPage failed: %v", err)
		}
		if len(page) != 5 {
			t.Errorf("Page length = %d, want 5 (end of list)", len(page))
		}
	})

	t.Run("past_end", func(t *testing.T) {
		page, err := src.FetchPage(ctx, 100, 10)
		if err != nil {
			t.Fatalf("FetchPage failed: %v", err)
		}
		if len(page) != 0 {
			t.Errorf("Page length = %d, want 0", len(page))
		}
	})
}

func TestSeed_Replaces(t *testing.T) {
	client := setupTestRedis(t)
	ctx := context.Background()

	if err := Seed(ctx, client, "test:feed", []string{"a", "b", "c"}); err != nil {
		t.Fatalf("Seed failed: %v", err)
	}
	if err := Seed(ctx, client, "test:feed", []string{"x"}); err != nil {
		t.Fatalf("Second seed failed: %v", err)
	}

	src := New(client, "test:feed")
	page, err := src.FetchPage(ctx, 0, 10)
	if err != nil {
		t.Fatalf("FetchPage failed: %v", err)
	}
	if len(page) != 1 || page[0] != "x" {
		t.Errorf("Page = %v, want [x]", page)
	}
}
