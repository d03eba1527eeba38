// Package ratelimit provides per-client rate limiting using a token bucket.
package ratelimit

import (
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/mandalnilabja/tokencost/internal/types"
)

// bucket is a token bucket refilled continuously over a minute.
type bucket struct {
	tokens   float64
	lastFill time.Time
	mu       sync.Mutex
}

// Limiter tracks one bucket per client key.
type Limiter struct {
	perMinute int
	buckets   sync.Map // map[clientKey]*bucket
	now       func() time.Time
}

// New creates a limiter allowing perMinute requests per client. Zero or
// negative disables limiting.
func New(perMinute int) *Limiter {
	return &Limiter{perMinute: perMinute, now: time.Now}
}

// Allow reports whether key may make another request, consuming a token if so.
func (l *Limiter) Allow(key string) bool {
	if l.perMinute <= 0 {
		return true
	}

	capacity := float64(l.perMinute)
	val, _ := l.buckets.LoadOrStore(key, &bucket{
		tokens:   capacity,
		lastFill: l.now(),
	})
	b := val.(*bucket)

	b.mu.Lock()
	defer b.mu.Unlock()

	now := l.now()
	b.tokens += now.Sub(b.lastFill).Seconds() * capacity / 60.0
	if b.tokens > capacity {
		b.tokens = capacity
	}
	b.lastFill = now

	if b.tokens >= 1.0 {
		b.tokens--
		return true
	}
	return false
}

// Prune drops buckets idle for longer than idle and returns how many it removed.
// An idle bucket is full again, so dropping it changes nothing for the client.
func (l *Limiter) Prune(idle time.Duration) int {
	cutoff := l.now().Add(-idle)
	removed := 0
	l.buckets.Range(func(k, v any) bool {
		b := v.(*bucket)
		b.mu.Lock()
		stale := b.lastFill.Before(cutoff)
		b.mu.Unlock()
		if stale {
			l.buckets.Delete(k)
			removed++
		}
		return true
	})
	return removed
}

// Middleware rejects requests from clients that exhausted their bucket.
func Middleware(limiter *Limiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow(ClientKey(r)) {
				retry := 60
				if limiter.perMinute > 0 {
					retry = max(1, 60/limiter.perMinute)
				}
				w.Header().Set("Retry-After", strconv.Itoa(retry))
				types.WriteError(w, types.ErrRateLimit("rate limit exceeded"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// ClientKey identifies the caller by remote IP, without the port.
func ClientKey(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
