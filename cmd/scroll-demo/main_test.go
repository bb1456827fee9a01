package main

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Sternrassler/go-scrollpager/pkg/controller"
	"github.com/Sternrassler/go-scrollpager/pkg/logging"
)

func TestHealthEndpoint(t *testing.T) {
	req := httptest.NewRequest("GET", "/health", nil)
	w := httptest.NewRecorder()

	healthHandler(w, req)

	resp := w.Result()
	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusOK {
		t.Errorf("Expected status 200, got %d", resp.StatusCode)
	}

	if string(body) != "OK" {
		t.Errorf("Expected body 'OK', got %s", string(body))
	}
}

func TestMetricsEndpoint(t *testing.T) {
	// Touch the controller package so its promauto metrics are
	// registered before scraping.
	c := controller.New[string](nil, controller.Config{})
	c.Add("warmup")

	req := httptest.NewRequest("GET", "/metrics", nil)
	w := httptest.NewRecorder()

	handler := promhttp.Handler()
	handler.ServeHTTP(w, req)

	resp := w.Result()
	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusOK {
		t.Errorf("Expected status 200, got %d", resp.StatusCode)
	}

	bodyStr := string(body)

	if !strings.Contains(bodyStr, "# HELP") || !strings.Contains(bodyStr, "# TYPE") {
		t.Error("Expected Prometheus format metrics output")
	}

	if !strings.Contains(bodyStr, "scrollpager_items_inserted_total") {
		t.Error("Expected metrics output to contain scrollpager_items_inserted_total")
	}
}

func TestGetEnv(t *testing.T) {
	t.Setenv("SCROLL_DEMO_TEST_KEY", "value")

	if got := getEnv("SCROLL_DEMO_TEST_KEY", "fallback"); got != "value" {
		t.Errorf("getEnv = %q, want %q", got, "value")
	}
	if got := getEnv("SCROLL_DEMO_MISSING_KEY", "fallback"); got != "fallback" {
		t.Errorf("getEnv = %q, want %q", got, "fallback")
	}
}

func TestGetEnvInt(t *testing.T) {
	t.Setenv("SCROLL_DEMO_TEST_INT", "42")
	t.Setenv("SCROLL_DEMO_TEST_BAD_INT", "not-a-number")

	if got := getEnvInt("SCROLL_DEMO_TEST_INT", 7); got != 42 {
		t.Errorf("getEnvInt = %d, want 42", got)
	}
	if got := getEnvInt("SCROLL_DEMO_TEST_BAD_INT", 7); got != 7 {
		t.Errorf("getEnvInt = %d, want 7", got)
	}
	if got := getEnvInt("SCROLL_DEMO_MISSING_INT", 7); got != 7 {
		t.Errorf("getEnvInt = %d, want 7", got)
	}
}

func TestLogView(t *testing.T) {
	// The log view only forwards notifications; just make sure every
	// method is callable.
	v := &logView{logger: logging.NewLogger("view")}
	v.ItemInserted(0)
	v.RangeInserted(0, 3)
	v.ItemChanged(1)
	v.ItemRemoved(2)
	v.Reset()
}
