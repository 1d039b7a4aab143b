package handler

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"socialite/internal/httputil"
	"socialite/internal/model"
	"socialite/internal/service"
	"socialite/internal/transport/http/middleware"
)

// AuthHandler groups auth-related HTTP endpoints and their dependencies.
type AuthHandler struct {
	userService *service.UserService
	authService *service.AuthService
}

func NewAuthHandler(userService *service.UserService, authService *service.AuthService) *AuthHandler {
	return &AuthHandler{
		userService: userService,
		authService: authService,
	}
}

// registerResponse bundles the new user with its first token pair.
type registerResponse struct {
	User   *model.User      `json:"user"`
	Tokens *model.TokenPair `json:"tokens"`
}

// Register handles POST /auth/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req model.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteBadRequest(w, "Invalid request body")
		return
	}
	if req.Username == "" {
		httputil.WriteBadRequest(w, "Username is required")
		return
	}
	if req.Password == "" {
		httputil.WriteBadRequest(w, "Password is required")
		return
	}

	user, err := h.userService.Register(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrInvalidUsername):
			httputil.WriteBadRequest(w, "Username must be 3-30 characters: letters, digits, underscore")
		case errors.Is(err, model.ErrPasswordTooWeak):
			httputil.WriteBadRequest(w, "Password must be at least 8 characters")
		case errors.Is(err, model.ErrUsernameExists):
			httputil.WriteConflict(w, "Username already exists")
		default:
			log.Printf("[ERROR] Register handler: err=%v", err)
			httputil.WriteInternalError(w, err, "Failed to register")
		}
		return
	}

	tokens, err := h.authService.GenerateTokenPair(r.Context(), user.ID, r.Header.Get("User-Agent"), clientIP(r))
	if err != nil {
		log.Printf("[ERROR] Register token generation: user=%d err=%v", user.ID, err)
		httputil.WriteInternalError(w, err, "Failed to generate tokens")
		return
	}

	httputil.WriteSuccess(w, http.StatusCreated, registerResponse{User: user, Tokens: tokens})
}

// Login handles POST /auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req model.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteBadRequest(w, "Invalid request body")
		return
	}
	if req.Username == "" || req.Password == "" {
		httputil.WriteBadRequest(w, "Username and password are required")
		return
	}

	user, tokens, err := h.userService.Login(r.Context(), req, r.Header.Get("User-Agent"), clientIP(r))
	if err != nil {
		if errors.Is(err, model.ErrInvalidCredentials) {
			httputil.WriteUnauthorized(w, "Invalid username or password")
			return
		}
		log.Printf("[ERROR] Login handler: err=%v", err)
		httputil.WriteInternalError(w, err, "Failed to login")
		return
	}

	httputil.WriteSuccess(w, http.StatusOK, registerResponse{User: user, Tokens: tokens})
}

// Refresh handles POST /auth/refresh
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	var req model.RefreshRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteBadRequest(w, "Invalid request body")
		return
	}
	if req.RefreshToken == "" {
		httputil.WriteBadRequest(w, "Refresh token is required")
		return
	}

	tokens, _, err := h.authService.RefreshTokens(r.Context(), req.RefreshToken, r.Header.Get("User-Agent"), clientIP(r))
	if err != nil {
		switch {
		case errors.Is(err, model.ErrRefreshTokenNotFound):
			httputil.WriteUnauthorized(w, "Invalid refresh token")
		case errors.Is(err, model.ErrRefreshTokenExpired):
			httputil.WriteUnauthorized(w, "Refresh token has expired")
		case errors.Is(err, model.ErrRefreshTokenReused):
			httputil.WriteUnauthorized(w, "Refresh token reuse detected, please login again")
		default:
			log.Printf("[ERROR] Refresh handler: err=%v", err)
			httputil.WriteInternalError(w, err, "Failed to refresh tokens")
		}
		return
	}

	httputil.WriteSuccess(w, http.StatusOK, tokens)
}

// Logout handles POST /auth/logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	var req model.RefreshRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteBadRequest(w, "Invalid request body")
		return
	}
	if req.RefreshToken == "" {
		httputil.WriteBadRequest(w, "Refresh token is required")
		return
	}

	if err := h.authService.RevokeRefreshToken(r.Context(), req.RefreshToken); err != nil &&
		!errors.Is(err, model.ErrRefreshTokenNotFound) {
		log.Printf("[ERROR] Logout handler: err=%v", err)
		httputil.WriteInternalError(w, err, "Failed to logout")
		return
	}

	// Revoking an unknown token still logs the caller out.
	httputil.WriteMessage(w, http.StatusOK, "Logged out successfully")
}

// LogoutAll handles POST /auth/logout-all
func (h *AuthHandler) LogoutAll(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Authentication required")
		return
	}

	if err := h.authService.RevokeAllUserTokens(r.Context(), userID); err != nil {
		log.Printf("[ERROR] LogoutAll handler: user=%d err=%v", userID, err)
		httputil.WriteInternalError(w, err, "Failed to logout from all devices")
		return
	}

	httputil.WriteMessage(w, http.StatusOK, "Logged out from all devices")
}

// CleanupTokens handles POST /admin/tokens/cleanup and removes refresh
// tokens that have been expired for more than a day.
func (h *AuthHandler) CleanupTokens(w http.ResponseWriter, r *http.Request) {
	deleted, err := h.authService.CleanupExpiredTokens(r.Context(), 24*time.Hour)
	if err != nil {
		log.Printf("[ERROR] Token cleanup handler: err=%v", err)
		httputil.WriteInternalError(w, err, "Failed to clean up tokens")
		return
	}

	httputil.WriteSuccess(w, http.StatusOK, map[string]int64{"deleted": deleted})
}

// clientIP extracts the client IP, honoring proxy headers.
func clientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		return strings.TrimSpace(strings.Split(xff, ",")[0])
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return xri
	}
	addr := r.RemoteAddr
	if idx := strings.LastIndex(addr, ":"); idx != -1 {
		return addr[:idx]
	}
	return addr
}
