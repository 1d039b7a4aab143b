package handler

import (
	"errors"
	"log"
	"net/http"

	"socialite/internal/httputil"
	"socialite/internal/model"
	"socialite/internal/service"
	"socialite/internal/transport/http/middleware"
)

type FollowHandler struct {
	followService *service.FollowService
}

func NewFollowHandler(followService *service.FollowService) *FollowHandler {
	return &FollowHandler{followService: followService}
}

// Follow handles POST /users/{id}/follow
func (h *FollowHandler) Follow(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Authentication required")
		return
	}
	targetID, ok := idParam(w, r, "id")
	if !ok {
		return
	}

	if err := h.followService.Follow(r.Context(), userID, targetID); err != nil {
		switch {
		case errors.Is(err, model.ErrCannotFollowSelf):
			httputil.WriteBadRequest(w, "Cannot follow yourself")
		case errors.Is(err, model.ErrUserNotFound):
			httputil.WriteNotFound(w, "User not found")
		case errors.Is(err, model.ErrBlocked):
			httputil.WriteForbidden(w, "Cannot follow this user")
		case errors.Is(err, model.ErrAlreadyFollowing):
			httputil.WriteConflict(w, "Already following this user")
		default:
			log.Printf("[ERROR] Follow handler: user=%d target=%d err=%v", userID, targetID, err)
			httputil.WriteInternalError(w, err, "Failed to follow user")
		}
		return
	}

	httputil.WriteMessage(w, http.StatusCreated, "Followed successfully")
}

// Unfollow handles DELETE /users/{id}/follow
func (h *FollowHandler) Unfollow(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Authentication required")
		return
	}
	targetID, ok := idParam(w, r, "id")
	if !ok {
		return
	}

	if err := h.followService.Unfollow(r.Context(), userID, targetID); err != nil {
		if errors.Is(err, model.ErrNotFollowing) {
			httputil.WriteNotFound(w, "Not following this user")
			return
		}
		log.Printf("[ERROR] Unfollow handler: user=%d target=%d err=%v", userID, targetID, err)
		httputil.WriteInternalError(w, err, "Failed to unfollow user")
		return
	}

	httputil.WriteMessage(w, http.StatusOK, "Unfollowed successfully")
}

// GetFollowers handles GET /users/{id}/followers
func (h *FollowHandler) GetFollowers(w http.ResponseWriter, r *http.Request) {
	targetID, ok := idParam(w, r, "id")
	if !ok {
		return
	}
	limit, offset, ok := pagination(w, r)
	if !ok {
		return
	}

	users, err := h.followService.ListFollowers(r.Context(), targetID, limit, offset)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			httputil.WriteNotFound(w, "User not found")
			return
		}
		log.Printf("[ERROR] GetFollowers handler: user=%d err=%v", targetID, err)
		httputil.WriteInternalError(w, err, "Failed to get followers")
		return
	}

	httputil.WritePage(w, http.StatusOK, users, limit, offset)
}

// GetFollowing handles GET /users/{id}/following
func (h *FollowHandler) GetFollowing(w http.ResponseWriter, r *http.Request) {
	targetID, ok := idParam(w, r, "id")
	if !ok {
		return
	}
	limit, offset, ok := pagination(w, r)
	if !ok {
		return
	}

	users, err := h.followService.ListFollowing(r.Context(), targetID, limit, offset)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			httputil.WriteNotFound(w, "User not found")
			return
		}
		log.Printf("[ERROR] GetFollowing handler: user=%d err=%v", targetID, err)
		httputil.WriteInternalError(w, err, "Failed to get following")
		return
	}

	httputil.WritePage(w, http.StatusOK, users, limit, offset)
}

// Block handles POST /users/{id}/block
func (h *FollowHandler) Block(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Authentication required")
		return
	}
	targetID, ok := idParam(w, r, "id")
	if !ok {
		return
	}

	if err := h.followService.Block(r.Context(), userID, targetID); err != nil {
		switch {
		case errors.Is(err, model.ErrCannotBlockSelf):
			httputil.WriteBadRequest(w, "Cannot block yourself")
		case errors.Is(err, model.ErrUserNotFound):
			httputil.WriteNotFound(w, "User not found")
		case errors.Is(err, model.ErrAlreadyBlocked):
			httputil.WriteConflict(w, "Already blocked this user")
		default:
			log.Printf("[ERROR] Block handler: user=%d target=%d err=%v", userID, targetID, err)
			httputil.WriteInternalError(w, err, "Failed to block user")
		}
		return
	}

	httputil.WriteMessage(w, http.StatusCreated, "Blocked successfully")
}

// Unblock handles DELETE /users/{id}/block
func (h *FollowHandler) Unblock(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Authentication required")
		return
	}
	targetID, ok := idParam(w, r, "id")
	if !ok {
		return
	}

	if err := h.followService.Unblock(r.Context(), userID, targetID); err != nil {
		if errors.Is(err, model.ErrNotBlocked) {
			httputil.WriteNotFound(w, "User is not blocked")
			return
		}
		log.Printf("[ERROR] Unblock handler: user=%d target=%d err=%v", userID, targetID, err)
		httputil.WriteInternalError(w, err, "Failed to unblock user")
		return
	}

	httputil.WriteMessage(w, http.StatusOK, "Unblocked successfully")
}

// GetBlocked handles GET /me/blocked
func (h *FollowHandler) GetBlocked(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Authentication required")
		return
	}
	limit, offset, ok := pagination(w, r)
	if !ok {
		return
	}

	users, err := h.followService.ListBlocked(r.Context(), userID, limit, offset)
	if err != nil {
		log.Printf("[ERROR] GetBlocked handler: user=%d err=%v", userID, err)
		httputil.WriteInternalError(w, err, "Failed to get blocked users")
		return
	}

	httputil.WritePage(w, http.StatusOK, users, limit, offset)
}
