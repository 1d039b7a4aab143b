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

type StoryHandler struct {
	storyService *service.StoryService
}

func NewStoryHandler(storyService *service.StoryService) *StoryHandler {
	return &StoryHandler{storyService: storyService}
}

// Create handles POST /stories
func (h *StoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Authentication required")
		return
	}

	var req model.CreateStoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteBadRequest(w, "Invalid request body")
		return
	}

	story, err := h.storyService.Create(r.Context(), userID, req)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrStoryNoMedia):
			httputil.WriteBadRequest(w, "Story media is required")
		case errors.Is(err, model.ErrBadMediaType):
			httputil.WriteBadRequest(w, "Media type must be image or video")
		case errors.Is(err, model.ErrBadDuration):
			httputil.WriteBadRequest(w, "Duration must be between 1 and 48 hours")
		default:
			log.Printf("[ERROR] Create story handler: user=%d err=%v", userID, err)
			httputil.WriteInternalError(w, err, "Failed to create story")
		}
		return
	}

	httputil.WriteSuccess(w, http.StatusCreated, story)
}

// Feed handles GET /stories/feed
func (h *StoryHandler) Feed(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Authentication required")
		return
	}

	stories, err := h.storyService.Feed(r.Context(), userID)
	if err != nil {
		log.Printf("[ERROR] Story feed handler: user=%d err=%v", userID, err)
		httputil.WriteInternalError(w, err, "Failed to get stories")
		return
	}

	httputil.WriteSuccess(w, http.StatusOK, stories)
}

// View handles POST /stories/{id}/view
func (h *StoryHandler) View(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Authentication required")
		return
	}
	storyID, ok := idParam(w, r, "id")
	if !ok {
		return
	}

	if err := h.storyService.View(r.Context(), userID, storyID); err != nil {
		if errors.Is(err, model.ErrStoryNotFound) {
			httputil.WriteNotFound(w, "Story not found")
			return
		}
		log.Printf("[ERROR] View story handler: user=%d story=%d err=%v", userID, storyID, err)
		httputil.WriteInternalError(w, err, "Failed to record view")
		return
	}

	httputil.WriteMessage(w, http.StatusOK, "View recorded")
}

// Viewers handles GET /stories/{id}/viewers
func (h *StoryHandler) Viewers(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Authentication required")
		return
	}
	storyID, ok := idParam(w, r, "id")
	if !ok {
		return
	}
	limit, offset, ok := pagination(w, r)
	if !ok {
		return
	}

	viewers, err := h.storyService.Viewers(r.Context(), userID, storyID, limit, offset)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrStoryNotFound):
			httputil.WriteNotFound(w, "Story not found")
		case errors.Is(err, model.ErrNotStoryOwner):
			httputil.WriteForbidden(w, "Only the author can see story viewers")
		default:
			log.Printf("[ERROR] Story viewers handler: user=%d story=%d err=%v", userID, storyID, err)
			httputil.WriteInternalError(w, err, "Failed to get viewers")
		}
		return
	}

	httputil.WritePage(w, http.StatusOK, viewers, limit, offset)
}

// Delete handles DELETE /stories/{id}
func (h *StoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Authentication required")
		return
	}
	storyID, ok := idParam(w, r, "id")
	if !ok {
		return
	}

	if err := h.storyService.Delete(r.Context(), userID, storyID); err != nil {
		switch {
		case errors.Is(err, model.ErrStoryNotFound):
			httputil.WriteNotFound(w, "Story not found")
		case errors.Is(err, model.ErrNotStoryOwner):
			httputil.WriteForbidden(w, "You can only delete your own stories")
		default:
			log.Printf("[ERROR] Delete story handler: user=%d story=%d err=%v", userID, storyID, err)
			httputil.WriteInternalError(w, err, "Failed to delete story")
		}
		return
	}

	httputil.WriteMessage(w, http.StatusOK, "Story deleted successfully")
}
