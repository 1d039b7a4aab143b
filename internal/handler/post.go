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

type PostHandler struct {
	postService *service.PostService
}

func NewPostHandler(postService *service.PostService) *PostHandler {
	return &PostHandler{postService: postService}
}

// Create handles POST /posts
func (h *PostHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Authentication required")
		return
	}

	var req model.CreatePostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteBadRequest(w, "Invalid request body")
		return
	}

	post, err := h.postService.Create(r.Context(), userID, req)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrPostEmpty):
			httputil.WriteBadRequest(w, "Post needs content or media")
		case errors.Is(err, model.ErrContentTooLong):
			httputil.WriteBadRequest(w, "Content too long (max 2200 characters)")
		case errors.Is(err, model.ErrTooManyMedia):
			httputil.WriteBadRequest(w, "Too many media items (max 10)")
		case errors.Is(err, model.ErrBadVisibility):
			httputil.WriteBadRequest(w, "Visibility must be public, followers or private")
		default:
			log.Printf("[ERROR] Create post handler: user=%d err=%v", userID, err)
			httputil.WriteInternalError(w, err, "Failed to create post")
		}
		return
	}

	httputil.WriteSuccess(w, http.StatusCreated, post)
}

// GetByID handles GET /posts/{id}
func (h *PostHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	postID, ok := idParam(w, r, "id")
	if !ok {
		return
	}

	post, err := h.postService.GetByID(r.Context(), viewer(r), postID)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrPostNotFound):
			httputil.WriteNotFound(w, "Post not found")
		case errors.Is(err, model.ErrPostAccessDenied):
			httputil.WriteForbidden(w, "You cannot view this post")
		default:
			log.Printf("[ERROR] Get post handler: post=%d err=%v", postID, err)
			httputil.WriteInternalError(w, err, "Failed to get post")
		}
		return
	}

	httputil.WriteSuccess(w, http.StatusOK, post)
}

// GetUserPosts handles GET /users/{username}/posts
func (h *PostHandler) GetUserPosts(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")
	limit, offset, ok := pagination(w, r)
	if !ok {
		return
	}

	posts, err := h.postService.ListByUser(r.Context(), viewer(r), username, limit, offset)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrUserNotFound):
			httputil.WriteNotFound(w, "User not found")
		case errors.Is(err, model.ErrBlocked):
			httputil.WriteForbidden(w, "You cannot view this user's posts")
		default:
			log.Printf("[ERROR] Get user posts handler: username=%s err=%v", username, err)
			httputil.WriteInternalError(w, err, "Failed to get posts")
		}
		return
	}

	httputil.WritePage(w, http.StatusOK, posts, limit, offset)
}

// ByTag handles GET /posts/hashtag/{tag}
func (h *PostHandler) ByTag(w http.ResponseWriter, r *http.Request) {
	tag := chi.URLParam(r, "tag")
	limit, offset, ok := pagination(w, r)
	if !ok {
		return
	}

	posts, err := h.postService.ListByTag(r.Context(), viewer(r), tag, limit, offset)
	if err != nil {
		if errors.Is(err, model.ErrTagEmpty) {
			httputil.WriteBadRequest(w, "Hashtag must not be empty")
			return
		}
		log.Printf("[ERROR] Posts by tag handler: tag=%s err=%v", tag, err)
		httputil.WriteInternalError(w, err, "Failed to get posts")
		return
	}

	httputil.WritePage(w, http.StatusOK, posts, limit, offset)
}

// Update handles PATCH /posts/{id}
func (h *PostHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Authentication required")
		return
	}
	postID, ok := idParam(w, r, "id")
	if !ok {
		return
	}

	var req model.UpdatePostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteBadRequest(w, "Invalid request body")
		return
	}

	post, err := h.postService.Update(r.Context(), userID, postID, req)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrPostEmpty):
			httputil.WriteBadRequest(w, "Content cannot be empty")
		case errors.Is(err, model.ErrContentTooLong):
			httputil.WriteBadRequest(w, "Content too long (max 2200 characters)")
		case errors.Is(err, model.ErrBadVisibility):
			httputil.WriteBadRequest(w, "Visibility must be public, followers or private")
		case errors.Is(err, model.ErrPostNotFound):
			httputil.WriteNotFound(w, "Post not found")
		case errors.Is(err, model.ErrNotPostOwner):
			httputil.WriteForbidden(w, "You can only edit your own posts")
		default:
			log.Printf("[ERROR] Update post handler: user=%d post=%d err=%v", userID, postID, err)
			httputil.WriteInternalError(w, err, "Failed to update post")
		}
		return
	}

	httputil.WriteSuccess(w, http.StatusOK, post)
}

// Delete handles DELETE /posts/{id}
func (h *PostHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Authentication required")
		return
	}
	postID, ok := idParam(w, r, "id")
	if !ok {
		return
	}

	if err := h.postService.Delete(r.Context(), userID, postID); err != nil {
		switch {
		case errors.Is(err, model.ErrPostNotFound):
			httputil.WriteNotFound(w, "Post not found")
		case errors.Is(err, model.ErrNotPostOwner):
			httputil.WriteForbidden(w, "You can only delete your own posts")
		default:
			log.Printf("[ERROR] Delete post handler: user=%d post=%d err=%v", userID, postID, err)
			httputil.WriteInternalError(w, err, "Failed to delete post")
		}
		return
	}

	httputil.WriteMessage(w, http.StatusOK, "Post deleted successfully")
}

// Like handles POST /posts/{id}/like
func (h *PostHandler) Like(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Authentication required")
		return
	}
	postID, ok := idParam(w, r, "id")
	if !ok {
		return
	}

	if err := h.postService.Like(r.Context(), userID, postID); err != nil {
		switch {
		case errors.Is(err, model.ErrPostNotFound):
			httputil.WriteNotFound(w, "Post not found")
		case errors.Is(err, model.ErrPostAccessDenied):
			httputil.WriteForbidden(w, "You cannot like this post")
		case errors.Is(err, model.ErrAlreadyLiked):
			httputil.WriteConflict(w, "Already liked this post")
		default:
			log.Printf("[ERROR] Like handler: user=%d post=%d err=%v", userID, postID, err)
			httputil.WriteInternalError(w, err, "Failed to like post")
		}
		return
	}

	httputil.WriteMessage(w, http.StatusCreated, "Liked successfully")
}

// Unlike handles DELETE /posts/{id}/like
func (h *PostHandler) Unlike(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Authentication required")
		return
	}
	postID, ok := idParam(w, r, "id")
	if !ok {
		return
	}

	if err := h.postService.Unlike(r.Context(), userID, postID); err != nil {
		if errors.Is(err, model.ErrNotLiked) {
			httputil.WriteNotFound(w, "Post is not liked")
			return
		}
		log.Printf("[ERROR] Unlike handler: user=%d post=%d err=%v", userID, postID, err)
		httputil.WriteInternalError(w, err, "Failed to unlike post")
		return
	}

	httputil.WriteMessage(w, http.StatusOK, "Unliked successfully")
}

// Likers handles GET /posts/{id}/likes
func (h *PostHandler) Likers(w http.ResponseWriter, r *http.Request) {
	postID, ok := idParam(w, r, "id")
	if !ok {
		return
	}
	limit, offset, ok := pagination(w, r)
	if !ok {
		return
	}

	users, err := h.postService.ListLikers(r.Context(), viewer(r), postID, limit, offset)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrPostNotFound):
			httputil.WriteNotFound(w, "Post not found")
		case errors.Is(err, model.ErrPostAccessDenied):
			httputil.WriteForbidden(w, "You cannot view this post")
		default:
			log.Printf("[ERROR] Likers handler: post=%d err=%v", postID, err)
			httputil.WriteInternalError(w, err, "Failed to get likers")
		}
		return
	}

	httputil.WritePage(w, http.StatusOK, users, limit, offset)
}

// Bookmark handles POST /posts/{id}/bookmark
func (h *PostHandler) Bookmark(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Authentication required")
		return
	}
	postID, ok := idParam(w, r, "id")
	if !ok {
		return
	}

	if err := h.postService.Bookmark(r.Context(), userID, postID); err != nil {
		switch {
		case errors.Is(err, model.ErrPostNotFound):
			httputil.WriteNotFound(w, "Post not found")
		case errors.Is(err, model.ErrPostAccessDenied):
			httputil.WriteForbidden(w, "You cannot bookmark this post")
		case errors.Is(err, model.ErrAlreadyBookmarked):
			httputil.WriteConflict(w, "Already bookmarked this post")
		default:
			log.Printf("[ERROR] Bookmark handler: user=%d post=%d err=%v", userID, postID, err)
			httputil.WriteInternalError(w, err, "Failed to bookmark post")
		}
		return
	}

	httputil.WriteMessage(w, http.StatusCreated, "Bookmarked successfully")
}

// Unbookmark handles DELETE /posts/{id}/bookmark
func (h *PostHandler) Unbookmark(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Authentication required")
		return
	}
	postID, ok := idParam(w, r, "id")
	if !ok {
		return
	}

	if err := h.postService.Unbookmark(r.Context(), userID, postID); err != nil {
		if errors.Is(err, model.ErrNotBookmarked) {
			httputil.WriteNotFound(w, "Post is not bookmarked")
			return
		}
		log.Printf("[ERROR] Unbookmark handler: user=%d post=%d err=%v", userID, postID, err)
		httputil.WriteInternalError(w, err, "Failed to remove bookmark")
		return
	}

	httputil.WriteMessage(w, http.StatusOK, "Bookmark removed")
}

// Bookmarks handles GET /me/bookmarks
func (h *PostHandler) Bookmarks(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Authentication required")
		return
	}
	limit, offset, ok := pagination(w, r)
	if !ok {
		return
	}

	posts, err := h.postService.ListBookmarks(r.Context(), userID, limit, offset)
	if err != nil {
		log.Printf("[ERROR] Bookmarks handler: user=%d err=%v", userID, err)
		httputil.WriteInternalError(w, err, "Failed to get bookmarks")
		return
	}

	httputil.WritePage(w, http.StatusOK, posts, limit, offset)
}

// Share handles POST /posts/{id}/share
func (h *PostHandler) Share(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Authentication required")
		return
	}
	postID, ok := idParam(w, r, "id")
	if !ok {
		return
	}

	if err := h.postService.Share(r.Context(), userID, postID); err != nil {
		switch {
		case errors.Is(err, model.ErrPostNotFound):
			httputil.WriteNotFound(w, "Post not found")
		case errors.Is(err, model.ErrPostAccessDenied):
			httputil.WriteForbidden(w, "You cannot share this post")
		default:
			log.Printf("[ERROR] Share handler: user=%d post=%d err=%v", userID, postID, err)
			httputil.WriteInternalError(w, err, "Failed to share post")
		}
		return
	}

	httputil.WriteMessage(w, http.StatusCreated, "Shared successfully")
}
