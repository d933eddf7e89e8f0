package middleware

import (
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"jobboard/internal/common"
	"jobboard/internal/http/response"
)

// Limiter answers whether one more request under key fits inside the window.
type Limiter interface {
	Allow(key string, limit int, window time.Duration) bool
}

// RateLimiter is the in-process fallback used when redis is not configured.
// Fixed-window counting per key; windows are not shared across replicas.
type RateLimiter struct {
	mu      sync.Mutex
	windows map[string]*countingWindow
}

type countingWindow struct {
	seen     int
	resetsAt time.Time
}

func NewRateLimiter() *RateLimiter {
	return &RateLimiter{windows: make(map[string]*countingWindow)}
}

func (r *RateLimiter) Allow(key string, limit int, window time.Duration) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now()
	w, ok := r.windows[key]
	if !ok || now.After(w.resetsAt) {
		r.windows[key] = &countingWindow{seen: 1, resetsAt: now.Add(window)}
		return true
	}
	if w.seen >= limit {
		return false
	}
	w.seen++
	return true
}

// RateLimit rejects requests above limit-per-window with the rate_limited
// error envelope. A nil limiter or an empty key passes everything through.
func RateLimit(limiter Limiter, keyFn func(*http.Request) string, limit int, window time.Duration) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if limiter == nil {
				next.ServeHTTP(w, r)
				return
			}
			key := keyFn(r)
			if key == "" {
				next.ServeHTTP(w, r)
				return
			}
			if !limiter.Allow(key, limit, window) {
				response.Error(w, common.NewError(common.CodeRateLimited, "too many requests", nil))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// ClientIP extracts the caller address for rate-limit keying. Behind a proxy
// the first X-Forwarded-For entry is the original client.
func ClientIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		first, _, _ := strings.Cut(forwarded, ",")
		return strings.TrimSpace(first)
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
