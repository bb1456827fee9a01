// Command scroll-demo seeds a Redis list with demo items and drives a
// scroll controller over it until the source is exhausted, while serving
// health and Prometheus metrics endpoints.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/Sternrassler/go-scrollpager/pkg/controller"
	"github.com/Sternrassler/go-scrollpager/pkg/logging"
	"github.com/Sternrassler/go-scrollpager/pkg/pagecache"
	"github.com/Sternrassler/go-scrollpager/pkg/pager"
	"github.com/Sternrassler/go-scrollpager/pkg/redislist"
)

const demoKey = "scrollpager:demo:feed"

func main() {
	// Configuration from environment
	redisURL := getEnv("REDIS_URL", "localhost:6379")
	port := getEnv("PORT", "8080")
	pageSize := getEnvInt("PAGE_SIZE", 10)
	totalItems := getEnvInt("TOTAL_ITEMS", 37)

	logging.Setup(logging.Config{
		Level:  logging.LogLevel(getEnv("LOG_LEVEL", "info")),
		Pretty: os.Getenv("LOG_PRETTY") == "true",
	})

	// Setup Redis
	redisClient := redis.NewClient(&redis.Options{
		Addr: redisURL,
	})

	ctx := context.Background()
	if err := redisClient.Ping(ctx).Err(); err != nil {
		log.Fatal().Err(err).Str("addr", redisURL).Msg("Failed to connect to Redis")
	}
	log.Info().Str("addr", redisURL).Msg("Connected to Redis")

	// Seed demo data
	items := make([]string, totalItems)
	for i := range items {
		items[i] = fmt.Sprintf("item-%03d", i)
	}
	if err := redislist.Seed(ctx, redisClient, demoKey, items); err != nil {
		log.Fatal().Err(err).Msg("Failed to seed demo data")
	}
	log.Info().Int("items", totalItems).Msg("Seeded demo feed")

	// Wire source -> page cache -> loader -> controller
	source := redislist.New(redisClient, demoKey)
	cached := pagecache.New[string](source, redisClient, "demo", time.Minute)
	loader := pager.New[string](cached, pager.Config{PageSize: pageSize})
	defer loader.Close()

	ctrl := controller.New[string](loader, controller.Config{EagerFirstLoad: true})
	defer ctrl.Close()

	view := &logView{logger: logging.NewLogger("view")}
	ctrl.Attach(ctx, view)

	go driveScroll(ctrl, loader)

	// HTTP Server
	http.HandleFunc("/health", healthHandler)
	http.Handle("/metrics", promhttp.Handler())

	addr := ":" + port
	log.Info().Str("addr", addr).Msg("Starting scroll-demo server")

	if err := http.ListenAndServe(addr, nil); err != nil {
		log.Fatal().Err(err).Msg("Server failed")
	}
}

// driveScroll simulates a user repeatedly scrolling to the end of the
// list until the source is exhausted.
func driveScroll(ctrl *controller.Controller[string], loader *pager.Loader[string]) {
	ticker := time.NewTicker(500 * time.Millisecond)
	defer ticker.Stop()

	for range ticker.C {
		if loader.ReachedEnd() && ctrl.State() == pager.StateDone {
			log.Info().Int("items", ctrl.Len()).Msg("Feed exhausted")
			return
		}
		ctrl.OnScroll(ctrl.Len() - 1)
	}
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	fmt.Fprintf(w, "OK")
}

// logView logs every list mutation the controller emits.
type logView struct {
	logger zerolog.Logger
}

func (v *logView) ItemInserted(index int) {
	v.logger.Info().Int("index", index).Msg("Item inserted")
}

func (v *logView) RangeInserted(start, count int) {
	v.logger.Info().Int("start", start).Int("count", count).Msg("Range inserted")
}

func (v *logView) ItemChanged(index int) {
	v.logger.Info().Int("index", index).Msg("Item changed")
}

func (v *logView) ItemRemoved(index int) {
	v.logger.Info().Int("index", index).Msg("Item removed")
}

func (v *logView) Reset() {
	v.logger.Info().Msg("List reset")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}
