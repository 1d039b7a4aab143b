package handler

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"socialite/internal/httputil"
	"socialite/internal/model"
	"socialite/internal/service"
	"socialite/internal/transport/http/middleware"
)

type UserHandler struct {
	userService *service.UserService
}

func NewUserHandler(userService *service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// Me handles GET /me
func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Authentication required")
		return
	}

	user, err := h.userService.GetByID(r.Context(), userID)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			httputil.WriteNotFound(w, "User not found")
			return
		}
		log.Printf("[ERROR] Me handler: user=%d err=%v", userID, err)
		httputil.WriteInternalError(w, err, "Failed to get user")
		return
	}

	httputil.WriteSuccess(w, http.StatusOK, user)
}

// GetProfile handles GET /users/{username}
func (h *UserHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")

	profile, err := h.userService.GetProfile(r.Context(), viewer(r), username)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			httputil.WriteNotFound(w, "User not found")
			return
		}
		log.Printf("[ERROR] GetProfile handler: username=%s err=%v", username, err)
		httputil.WriteInternalError(w, err, "Failed to get profile")
		return
	}

	httputil.WriteSuccess(w, http.StatusOK, profile)
}

// UpdateProfile handles PATCH /me
func (h *UserHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Authentication required")
		return
	}

	var req model.UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteBadRequest(w, "Invalid request body")
		return
	}

	user, err := h.userService.UpdateProfile(r.Context(), userID, req)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrBioTooLong):
			httputil.WriteBadRequest(w, "Bio too long (max 500 characters)")
		case errors.Is(err, model.ErrUserNotFound):
			httputil.WriteNotFound(w, "User not found")
		default:
			log.Printf("[ERROR] UpdateProfile handler: user=%d err=%v", userID, err)
			httputil.WriteInternalError(w, err, "Failed to update profile")
		}
		return
	}

	httputil.WriteSuccess(w, http.StatusOK, user)
}

// Search handles GET /users/search?q=
func (h *UserHandler) Search(w http.ResponseWriter, r *http.Request) {
	limit, offset, ok := pagination(w, r)
	if !ok {
		return
	}

	users, err := h.userService.Search(r.Context(), r.URL.Query().Get("q"), limit, offset)
	if err != nil {
		if errors.Is(err, model.ErrSearchTooShort) {
			httputil.WriteBadRequest(w, "Search query must be at least 2 characters")
			return
		}
		log.Printf("[ERROR] Search handler: err=%v", err)
		httputil.WriteInternalError(w, err, "Failed to search users")
		return
	}

	httputil.WritePage(w, http.StatusOK, users, limit, offset)
}

// Suggestions handles GET /users/suggestions
func (h *UserHandler) Suggestions(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Authentication required")
		return
	}

	limit, _, ok := pagination(w, r)
	if !ok {
		return
	}

	users, err := h.userService.Suggestions(r.Context(), userID, limit)
	if err != nil {
		log.Printf("[ERROR] Suggestions handler: user=%d err=%v", userID, err)
		httputil.WriteInternalError(w, err, "Failed to get suggestions")
		return
	}

	httputil.WriteSuccess(w, http.StatusOK, users)
}

// Deactivate handles DELETE /me
func (h *UserHandler) Deactivate(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Authentication required")
		return
	}

	if err := h.userService.Deactivate(r.Context(), userID); err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			httputil.WriteNotFound(w, "User not found")
			return
		}
		log.Printf("[ERROR] Deactivate handler: user=%d err=%v", userID, err)
		httputil.WriteInternalError(w, err, "Failed to deactivate account")
		return
	}

	httputil.WriteMessage(w, http.StatusOK, "Account deactivated")
}
