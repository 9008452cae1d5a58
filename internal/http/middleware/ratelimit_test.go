package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestRateLimiterAllow_WindowRollover(t *testing.T) {
	limiter := NewRateLimiter()

	if !limiter.Allow("client", 2, 50*time.Millisecond) {
		t.Fatal("expected first request allowed")
	}
	if !limiter.Allow("client", 2, 50*time.Millisecond) {
		t.Fatal("expected second request allowed")
	}
	if limiter.Allow("client", 2, 50*time.Millisecond) {
		t.Fatal("expected third request rejected inside the window")
	}
	time.Sleep(60 * time.Millisecond)
	if !limiter.Allow("client", 2, 50*time.Millisecond) {
		t.Fatal("expected a fresh window after expiry")
	}
}

func TestRateLimiterAllow_KeysAreIndependent(t *testing.T) {
	limiter := NewRateLimiter()

	if !limiter.Allow("a", 1, time.Minute) {
		t.Fatal("expected first key allowed")
	}
	if !limiter.Allow("b", 1, time.Minute) {
		t.Fatal("expected second key allowed")
	}
	if limiter.Allow("a", 1, time.Minute) {
		t.Fatal("expected first key exhausted")
	}
}

func TestRateLimitMiddleware_RejectsWithTooManyRequests(t *testing.T) {
	limiter := NewRateLimiter()
	handler := RateLimit(limiter, ClientIP, 1, time.Minute)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	first := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/postings/abc/view", nil)
	req.RemoteAddr = "10.0.0.1:4000"
	handler.ServeHTTP(first, req)
	if first.Code != http.StatusOK {
		t.Fatalf("expected first request to pass, got %d", first.Code)
	}

	second := httptest.NewRecorder()
	handler.ServeHTTP(second, req)
	if second.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", second.Code)
	}
}

func TestRateLimitMiddleware_EmptyKeyBypasses(t *testing.T) {
	limiter := NewRateLimiter()
	handler := RateLimit(limiter, func(*http.Request) string { return "" }, 1, time.Minute)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	for i := 0; i < 3; i++ {
		recorder := httptest.NewRecorder()
		handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/", nil))
		if recorder.Code != http.StatusOK {
			t.Fatalf("expected requests without a key to pass, got %d", recorder.Code)
		}
	}
}
