package middleware

import (
	"log"
	"net"
	"net/http"
	"strconv"

	"socialite/internal/httputil"
	"socialite/internal/ratelimit"
)

// RateLimit applies a fixed-window limit keyed by authenticated user ID
// when present, client IP otherwise. It must run after authentication in
// the middleware chain. Limiter failures fail open: a broken limiter
// should slow nobody down.
func RateLimit(limiter ratelimit.Limiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := clientKey(r)

			allowed, err := limiter.Allow(r.Context(), key)
			if err != nil {
				log.Printf("[RateLimit] Limiter failed, allowing: key=%s err=%v", key, err)
				next.ServeHTTP(w, r)
				return
			}
			if !allowed {
				httputil.WriteTooManyRequests(w, "Rate limit exceeded, try again later")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func clientKey(r *http.Request) string {
	if userID, ok := GetUserIDFromContext(r.Context()); ok {
		return "user:" + strconv.FormatInt(userID, 10)
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}
	return "ip:" + host
}
