package middleware

import (
	"net"
	"net/http"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/time/rate"
)

// RateLimiter applies per-IP rate limiting with a shared limiter table.
type RateLimiter struct {
	visitors sync.Map // map[string]*visitor
	stop     chan struct{}
}

type visitor struct {
	limiter  *rate.Limiter
	lastSeen atomic.Int64 // unix nanos
}

// NewRateLimiter creates a rate limiter with background cleanup of idle
// visitors. Call Stop() on shutdown.
func NewRateLimiter(cleanupInterval time.Duration) *RateLimiter {
	rl := &RateLimiter{stop: make(chan struct{})}
	go rl.cleanup(cleanupInterval)
	return rl
}

// Stop terminates the background cleanup goroutine.
func (rl *RateLimiter) Stop() {
	close(rl.stop)
}

// Limit returns middleware that allows maxPerMinute requests per client IP,
// with bursts up to the full minute budget.
func (rl *RateLimiter) Limit(maxPerMinute int) Middleware {
	perSecond := rate.Limit(float64(maxPerMinute) / 60.0)
	retryAfter := strconv.Itoa(int(60.0/float64(maxPerMinute)) + 1)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			v := rl.visitor(clientIP(r), perSecond, maxPerMinute)
			if !v.limiter.Allow() {
				w.Header().Set("Retry-After", retryAfter)
				http.Error(w, "rate limit exceeded", http.StatusTooManyRequests)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func (rl *RateLimiter) visitor(key string, limit rate.Limit, burst int) *visitor {
	val, ok := rl.visitors.Load(key)
	if !ok {
		val, _ = rl.visitors.LoadOrStore(key, &visitor{
			limiter: rate.NewLimiter(limit, burst),
		})
	}

	v := val.(*visitor)
	v.lastSeen.Store(time.Now().UnixNano())
	return v
}

// clientIP strips the port from RemoteAddr; proxies are expected to be
// trusted and rewrite RemoteAddr themselves.
func clientIP(r *http.Request) string {
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}

func (rl *RateLimiter) cleanup(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-rl.stop:
			return
		case <-ticker.C:
			cutoff := time.Now().Add(-10 * time.Minute).UnixNano()
			rl.visitors.Range(func(key, value any) bool {
				if value.(*visitor).lastSeen.Load() < cutoff {
					rl.visitors.Delete(key)
				}
				return true
			})
		}
	}
}
