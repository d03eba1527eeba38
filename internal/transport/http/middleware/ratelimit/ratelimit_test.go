package ratelimit

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

// fakeClock is a manually advanced time source.
type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time          { return c.t }
func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestLimiter(perMinute int) (*Limiter, *fakeClock) {
	clock := &fakeClock{t: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)}
	l := New(perMinute)
	l.now = clock.now
	return l, clock
}

func TestAllow(t *testing.T) {
	l, clock := newTestLimiter(3)

	for i := range 3 {
		if !l.Allow("a") {
			t.Fatalf("request %d should be allowed", i+1)
		}
	}
	if l.Allow("a") {
		t.Error("fourth request should be limited")
	}
	if !l.Allow("b") {
		t.Error("other clients keep their own bucket")
	}

	// 3 per minute refills one token every 20s.
	clock.advance(20 * time.Second)
	if !l.Allow("a") {
		t.Error("expected a token after refill")
	}
	if l.Allow("a") {
		t.Error("expected only one refilled token")
	}
}

func TestAllow_Unlimited(t *testing.T) {
	l, _ := newTestLimiter(0)
	for range 100 {
		if !l.Allow("a") {
			t.Fatal("zero limit must not reject")
		}
	}
}

func TestPrune(t *testing.T) {
	l, clock := newTestLimiter(10)
	l.Allow("a")
	clock.advance(5 * time.Minute)
	l.Allow("b")

	if got := l.Prune(time.Minute); got != 1 {
		t.Errorf("Prune() = %d, want 1", got)
	}
	if _, ok := l.buckets.Load("a"); ok {
		t.Error("bucket a should be pruned")
	}
	if _, ok := l.buckets.Load("b"); !ok {
		t.Error("bucket b should remain")
	}
}

func TestMiddleware(t *testing.T) {
	l, _ := newTestLimiter(1)
	handler := Middleware(l)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	send := func(remote string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/api/models", nil)
		req.RemoteAddr = remote
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return rec
	}

	if rec := send("10.0.0.1:1234"); rec.Code != http.StatusOK {
		t.Fatalf("first request status = %d", rec.Code)
	}
	rec := send("10.0.0.1:5678")
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("second request status = %d, want 429", rec.Code)
	}
	if rec.Header().Get("Retry-After") == "" {
		t.Error("expected Retry-After header")
	}
	if rec := send("10.0.0.2:1234"); rec.Code != http.StatusOK {
		t.Errorf("different client status = %d", rec.Code)
	}
}

func TestClientKey(t *testing.T) {
	tests := []struct {
		remote string
		want   string
	}{
		{"192.168.1.5:4000", "192.168.1.5"},
		{"[::1]:8080", "::1"},
		{"pipe", "pipe"},
	}
	for _, tc := range tests {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = tc.remote
		if got := ClientKey(req); got != tc.want {
			t.Errorf("ClientKey(%q) = %q, want %q", tc.remote, got, tc.want)
		}
	}
}
