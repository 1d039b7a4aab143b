package middleware

import (
	"context"
	"net/http"
	"strings"

	"socialite/internal/httputil"
	"socialite/internal/repository"
)

// contextKey is a custom type for context keys to avoid collisions
type contextKey string

const (
	// UserIDKey is the context key for the authenticated user's ID
	UserIDKey contextKey = "user_id"
)

// TokenVerifier validates an access token and returns the subject user ID.
type TokenVerifier interface {
	VerifyAccessToken(tokenString string) (int64, error)
}

// Authenticator builds the authentication middlewares. Beyond token
// validity it checks that the account still exists and is active, so a
// deactivated user's outstanding tokens stop working immediately.
type Authenticator struct {
	verifier TokenVerifier
	users    repository.UserRepository
}

func NewAuthenticator(verifier TokenVerifier, users repository.UserRepository) *Authenticator {
	return &Authenticator{verifier: verifier, users: users}
}

// Require rejects requests without a valid token for an active account.
func (a *Authenticator) Require() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, ok := a.authenticate(r)
			if !ok {
				httputil.WriteUnauthorized(w, "Invalid or missing authentication token")
				return
			}
			ctx := context.WithValue(r.Context(), UserIDKey, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// Optional attaches the user ID when a valid token is present and lets
// the request through anonymously otherwise. A token that fails any
// check, including the active-account check, yields an anonymous
// request rather than an error.
func (a *Authenticator) Optional() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if userID, ok := a.authenticate(r); ok {
				ctx := context.WithValue(r.Context(), UserIDKey, userID)
				r = r.WithContext(ctx)
			}
			next.ServeHTTP(w, r)
		})
	}
}

func (a *Authenticator) authenticate(r *http.Request) (int64, bool) {
	tokenString := extractToken(r)
	if tokenString == "" {
		return 0, false
	}

	userID, err := a.verifier.VerifyAccessToken(tokenString)
	if err != nil {
		return 0, false
	}

	// A missing or deactivated account is treated like an invalid token.
	if _, err := a.users.GetByID(r.Context(), userID); err != nil {
		return 0, false
	}
	return userID, true
}

// extractToken checks the Authorization header first (mobile), then the
// access_token cookie (web).
func extractToken(r *http.Request) string {
	if authHeader := r.Header.Get("Authorization"); authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			return parts[1]
		}
	}
	if cookie, err := r.Cookie("access_token"); err == nil && cookie.Value != "" {
		return cookie.Value
	}
	return ""
}

// RequireAdmin gates the maintenance endpoints behind a static API key
// carried in the X-Admin-Key header.
func RequireAdmin(adminKey string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if adminKey == "" || r.Header.Get("X-Admin-Key") != adminKey {
				httputil.WriteForbidden(w, "Admin access required")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// GetUserIDFromContext extracts the user ID from the request context
// Returns the user ID and true if found, or 0 and false if not found
func GetUserIDFromContext(ctx context.Context) (int64, bool) {
	userID, ok := ctx.Value(UserIDKey).(int64)
	return userID, ok
}
