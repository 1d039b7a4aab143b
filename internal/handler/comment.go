package handler

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"socialite/internal/httputil"
	"socialite/internal/model"
	"socialite/internal/service"
	"socialite/internal/transport/http/middleware"
)

type CommentHandler struct {
	commentService *service.CommentService
}

func NewCommentHandler(commentService *service.CommentService) *CommentHandler {
	return &CommentHandler{commentService: commentService}
}

// Create handles POST /posts/{id}/comments
func (h *CommentHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Authentication required")
		return
	}
	postID, ok := idParam(w, r, "id")
	if !ok {
		return
	}

	var req model.CreateCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteBadRequest(w, "Invalid request body")
		return
	}

	comment, err := h.commentService.Create(r.Context(), userID, postID, req)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrCommentEmpty):
			httputil.WriteBadRequest(w, "Comment content is required")
		case errors.Is(err, model.ErrCommentTooLong):
			httputil.WriteBadRequest(w, "Comment too long (max 1000 characters)")
		case errors.Is(err, model.ErrParentWrongPost):
			httputil.WriteBadRequest(w, "Parent comment belongs to a different post")
		case errors.Is(err, model.ErrCommentNotFound):
			httputil.WriteNotFound(w, "Parent comment not found")
		case errors.Is(err, model.ErrPostNotFound):
			httputil.WriteNotFound(w, "Post not found")
		case errors.Is(err, model.ErrPostAccessDenied):
			httputil.WriteForbidden(w, "You cannot comment on this post")
		default:
			log.Printf("[ERROR] Create comment handler: user=%d post=%d err=%v", userID, postID, err)
			httputil.WriteInternalError(w, err, "Failed to create comment")
		}
		return
	}

	httputil.WriteSuccess(w, http.StatusCreated, comment)
}

// List handles GET /posts/{id}/comments
func (h *CommentHandler) List(w http.ResponseWriter, r *http.Request) {
	postID, ok := idParam(w, r, "id")
	if !ok {
		return
	}
	limit, offset, ok := pagination(w, r)
	if !ok {
		return
	}

	comments, err := h.commentService.List(r.Context(), viewer(r), postID, limit, offset)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrPostNotFound):
			httputil.WriteNotFound(w, "Post not found")
		case errors.Is(err, model.ErrPostAccessDenied):
			httputil.WriteForbidden(w, "You cannot view this post")
		default:
			log.Printf("[ERROR] List comments handler: post=%d err=%v", postID, err)
			httputil.WriteInternalError(w, err, "Failed to get comments")
		}
		return
	}

	httputil.WritePage(w, http.StatusOK, comments, limit, offset)
}

// Update handles PATCH /comments/{id}
func (h *CommentHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Authentication required")
		return
	}
	commentID, ok := idParam(w, r, "id")
	if !ok {
		return
	}

	var req struct {
		Content string `json:"content"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteBadRequest(w, "Invalid request body")
		return
	}

	comment, err := h.commentService.Update(r.Context(), userID, commentID, req.Content)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrCommentEmpty):
			httputil.WriteBadRequest(w, "Comment content is required")
		case errors.Is(err, model.ErrCommentTooLong):
			httputil.WriteBadRequest(w, "Comment too long (max 1000 characters)")
		case errors.Is(err, model.ErrCommentNotFound):
			httputil.WriteNotFound(w, "Comment not found")
		case errors.Is(err, model.ErrNotCommentOwner):
			httputil.WriteForbidden(w, "You can only edit your own comments")
		default:
			log.Printf("[ERROR] Update comment handler: user=%d comment=%d err=%v", userID, commentID, err)
			httputil.WriteInternalError(w, err, "Failed to update comment")
		}
		return
	}

	httputil.WriteSuccess(w, http.StatusOK, comment)
}

// Delete handles DELETE /comments/{id}
func (h *CommentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Authentication required")
		return
	}
	commentID, ok := idParam(w, r, "id")
	if !ok {
		return
	}

	if err := h.commentService.Delete(r.Context(), userID, commentID); err != nil {
		switch {
		case errors.Is(err, model.ErrCommentNotFound):
			httputil.WriteNotFound(w, "Comment not found")
		case errors.Is(err, model.ErrNotCommentOwner):
			httputil.WriteForbidden(w, "You can only delete your own comments")
		default:
			log.Printf("[ERROR] Delete comment handler: user=%d comment=%d err=%v", userID, commentID, err)
			httputil.WriteInternalError(w, err, "Failed to delete comment")
		}
		return
	}

	httputil.WriteMessage(w, http.StatusOK, "Comment deleted successfully")
}

// Like handles POST /comments/{id}/like
func (h *CommentHandler) Like(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Authentication required")
		return
	}
	commentID, ok := idParam(w, r, "id")
	if !ok {
		return
	}

	if err := h.commentService.Like(r.Context(), userID, commentID); err != nil {
		switch {
		case errors.Is(err, model.ErrCommentNotFound):
			httputil.WriteNotFound(w, "Comment not found")
		case errors.Is(err, model.ErrPostNotFound):
			httputil.WriteNotFound(w, "Post not found")
		case errors.Is(err, model.ErrPostAccessDenied):
			httputil.WriteForbidden(w, "You cannot like this comment")
		case errors.Is(err, model.ErrAlreadyLiked):
			httputil.WriteConflict(w, "Already liked this comment")
		default:
			log.Printf("[ERROR] Like comment handler: user=%d comment=%d err=%v", userID, commentID, err)
			httputil.WriteInternalError(w, err, "Failed to like comment")
		}
		return
	}

	httputil.WriteMessage(w, http.StatusCreated, "Liked successfully")
}

// Unlike handles DELETE /comments/{id}/like
func (h *CommentHandler) Unlike(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Authentication required")
		return
	}
	commentID, ok := idParam(w, r, "id")
	if !ok {
		return
	}

	if err := h.commentService.Unlike(r.Context(), userID, commentID); err != nil {
		if errors.Is(err, model.ErrNotLiked) {
			httputil.WriteNotFound(w, "Comment is not liked")
			return
		}
		log.Printf("[ERROR] Unlike comment handler: user=%d comment=%d err=%v", userID, commentID, err)
		httputil.WriteInternalError(w, err, "Failed to unlike comment")
		return
	}

	httputil.WriteMessage(w, http.StatusOK, "Unliked successfully")
}
