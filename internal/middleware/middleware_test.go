package middleware

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/andybalholm/brotli"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stemsi/roomgrid-backend/internal/response"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestRateLimiterAllow(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	rl := NewRateLimiter(ctx, 2, time.Minute)
	clock := time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return clock }

	if !rl.Allow("a") || !rl.Allow("a") {
		t.Fatal("first two requests should pass")
	}
	if rl.Allow("a") {
		t.Fatal("third request should be limited")
	}
	if !rl.Allow("b") {
		t.Fatal("other visitors keep their own bucket")
	}

	clock = clock.Add(time.Minute)
	if !rl.Allow("a") {
		t.Fatal("bucket should refill after the interval")
	}

	clock = clock.Add(10 * time.Minute)
	rl.cleanup()
	if len(rl.visitors) != 0 {
		t.Errorf("visitors = %d after cleanup, want 0", len(rl.visitors))
	}
}

func TestRateLimiterMiddleware(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	r := gin.New()
	r.Use(NewRateLimiter(ctx, 1, time.Minute).Middleware())
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, "ok") })

	first := httptest.NewRecorder()
	r.ServeHTTP(first, httptest.NewRequest(http.MethodGet, "/", nil))
	if first.Code != http.StatusOK {
		t.Fatalf("first status = %d", first.Code)
	}

	second := httptest.NewRecorder()
	r.ServeHTTP(second, httptest.NewRequest(http.MethodGet, "/", nil))
	if second.Code != http.StatusTooManyRequests {
		t.Fatalf("second status = %d, want 429", second.Code)
	}
	if second.Header().Get("Retry-After") != "60" {
		t.Errorf("Retry-After = %q", second.Header().Get("Retry-After"))
	}
	if !strings.Contains(second.Body.String(), "RATE_LIMIT_EXCEEDED") {
		t.Errorf("body = %s", second.Body.String())
	}
}

func TestBrotli(t *testing.T) {
	large := strings.Repeat("DANA 113 ", 512)

	r := gin.New()
	r.Use(BrotliWithConfig(BrotliConfig{Quality: 5, MinLength: 64}))
	r.GET("/large", func(c *gin.Context) { c.String(http.StatusOK, large) })
	r.GET("/small", func(c *gin.Context) { c.String(http.StatusOK, "ok") })

	req := httptest.NewRequest(http.MethodGet, "/large", nil)
	req.Header.Set("Accept-Encoding", "gzip, br;q=0.9")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Header().Get("Content-Encoding") != "br" {
		t.Fatalf("Content-Encoding = %q, want br", w.Header().Get("Content-Encoding"))
	}
	body, err := io.ReadAll(brotli.NewReader(bytes.NewReader(w.Body.Bytes())))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if string(body) != large {
		t.Errorf("decoded body length = %d, want %d", len(body), len(large))
	}

	req = httptest.NewRequest(http.MethodGet, "/small", nil)
	req.Header.Set("Accept-Encoding", "br")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Header().Get("Content-Encoding") != "" || w.Body.String() != "ok" {
		t.Errorf("small body compressed: %q %q", w.Header().Get("Content-Encoding"), w.Body.String())
	}
}

func TestCacheControl(t *testing.T) {
	r := gin.New()
	r.Use(CacheControl(300))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.POST("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	if got := w.Header().Get("Cache-Control"); got != "public, max-age=300" {
		t.Errorf("GET Cache-Control = %q", got)
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/", nil))
	if got := w.Header().Get("Cache-Control"); got != "" {
		t.Errorf("POST Cache-Control = %q, want none", got)
	}
}

func TestAccessLog(t *testing.T) {
	var buf bytes.Buffer
	log := zerolog.New(&buf).Level(zerolog.DebugLevel)

	r := gin.New()
	r.Use(AccessLog(log))
	r.Use(response.RequestIDMiddleware())
	r.GET("/api/v1/terms/:term/rooms", func(c *gin.Context) {
		c.Status(http.StatusNotFound)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/terms/2025FA/rooms", nil)
	req.Header.Set("X-Request-ID", "trace-1")
	r.ServeHTTP(httptest.NewRecorder(), req)

	line := buf.String()
	for _, want := range []string{
		`"level":"warn"`,
		`"request_id":"trace-1"`,
		`"route":"/api/v1/terms/:term/rooms"`,
		`"status":404`,
	} {
		if !strings.Contains(line, want) {
			t.Errorf("log line %s missing %s", line, want)
		}
	}
}
