package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

type stubLimiter struct {
	allowed bool
	err     error

	keys []string
}

func (s *stubLimiter) Allow(_ context.Context, key string) (bool, error) {
	s.keys = append(s.keys, key)
	return s.allowed, s.err
}

func TestRateLimit(t *testing.T) {
	tests := []struct {
		name       string
		limiter    *stubLimiter
		wantStatus int
	}{
		{name: "allowed", limiter: &stubLimiter{allowed: true}, wantStatus: http.StatusOK},
		{name: "throttled", limiter: &stubLimiter{allowed: false}, wantStatus: http.StatusTooManyRequests},
		{name: "limiter failure fails open", limiter: &stubLimiter{err: errors.New("redis down")}, wantStatus: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := RateLimit(tt.limiter)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
			}))

			r := httptest.NewRequest("POST", "/auth/login", nil)
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, r)

			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", w.Code, tt.wantStatus)
			}
		})
	}
}

func TestRateLimit_Keying(t *testing.T) {
	limiter := &stubLimiter{allowed: true}
	handler := RateLimit(limiter)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	// Anonymous requests key on the client IP without the port.
	r := httptest.NewRequest("POST", "/auth/login", nil)
	r.RemoteAddr = "203.0.113.9:52110"
	handler.ServeHTTP(httptest.NewRecorder(), r)

	// Authenticated requests key on the user ID.
	r = httptest.NewRequest("POST", "/posts", nil)
	r = r.WithContext(context.WithValue(r.Context(), UserIDKey, int64(42)))
	handler.ServeHTTP(httptest.NewRecorder(), r)

	want := []string{"ip:203.0.113.9", "user:42"}
	if len(limiter.keys) != 2 || limiter.keys[0] != want[0] || limiter.keys[1] != want[1] {
		t.Errorf("keys = %v, want %v", limiter.keys, want)
	}
}
