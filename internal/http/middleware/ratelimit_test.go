package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"jobboard/internal/common"
)

func TestRateLimiterAllowsUpToLimit(t *testing.T) {
	limiter := NewRateLimiter()

	for i := 0; i < 3; i++ {
		if !limiter.Allow("1.2.3.4", 3, time.Minute) {
			t.Fatalf("request %d should be allowed", i+1)
		}
	}
	if limiter.Allow("1.2.3.4", 3, time.Minute) {
		t.Fatal("fourth request should be blocked")
	}
	if !limiter.Allow("5.6.7.8", 3, time.Minute) {
		t.Fatal("a different key has its own bucket")
	}
}

func TestRateLimiterResetsAfterWindow(t *testing.T) {
	limiter := NewRateLimiter()

	if !limiter.Allow("1.2.3.4", 1, 10*time.Millisecond) {
		t.Fatal("first request should be allowed")
	}
	if limiter.Allow("1.2.3.4", 1, 10*time.Millisecond) {
		t.Fatal("second request within the window should be blocked")
	}
	time.Sleep(15 * time.Millisecond)
	if !limiter.Allow("1.2.3.4", 1, 10*time.Millisecond) {
		t.Fatal("request after the window should be allowed")
	}
}

func TestRedisLimiterAllowsUpToLimit(t *testing.T) {
	srv := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	limiter := NewRedisLimiter(client)

	for i := 0; i < 2; i++ {
		if !limiter.Allow("login:1.2.3.4", 2, time.Minute) {
			t.Fatalf("request %d should be allowed", i+1)
		}
	}
	if limiter.Allow("login:1.2.3.4", 2, time.Minute) {
		t.Fatal("third request should be blocked")
	}
}

func TestRedisLimiterFailsOpen(t *testing.T) {
	var limiter *RedisLimiter
	if !limiter.Allow("key", 1, time.Minute) {
		t.Fatal("a nil limiter must not block")
	}
	if NewRedisLimiter(nil) != nil {
		t.Fatal("a nil client yields a nil limiter")
	}
}

func TestRateLimitMiddlewareBlocksWithTooManyRequests(t *testing.T) {
	handler := RateLimit(NewRateLimiter(), ClientIP, 1, time.Minute)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodPost, "/auth/login", nil)
	req.RemoteAddr = "1.2.3.4:5555"

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("first request: expected 200, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("second request: expected 429, got %d", rec.Code)
	}
	var body struct {
		Error *common.Error `json:"error"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Error == nil || body.Error.Code != common.CodeRateLimited {
		t.Fatalf("expected a rate_limited envelope, got %s", rec.Body.String())
	}
}

func TestClientIPPrefersFirstForwardedEntry(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "10.0.0.1:4000"
	if ip := ClientIP(req); ip != "10.0.0.1" {
		t.Fatalf("expected the remote host, got %q", ip)
	}

	req.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1")
	if ip := ClientIP(req); ip != "203.0.113.7" {
		t.Fatalf("expected the first forwarded entry, got %q", ip)
	}
}
