package handler

import (
	"log"
	"net/http"
	"strconv"

	"socialite/internal/httputil"
	"socialite/internal/service"
	"socialite/internal/transport/http/middleware"
)

type FeedHandler struct {
	feedService *service.FeedService
}

func NewFeedHandler(feedService *service.FeedService) *FeedHandler {
	return &FeedHandler{feedService: feedService}
}

// Home handles GET /feed
func (h *FeedHandler) Home(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Authentication required")
		return
	}
	limit, offset, ok := pagination(w, r)
	if !ok {
		return
	}

	posts, err := h.feedService.GetHomeFeed(r.Context(), userID, limit, offset)
	if err != nil {
		log.Printf("[ERROR] Home feed handler: user=%d err=%v", userID, err)
		httputil.WriteInternalError(w, err, "Failed to get feed")
		return
	}

	httputil.WritePage(w, http.StatusOK, posts, limit, offset)
}

// Explore handles GET /explore
func (h *FeedHandler) Explore(w http.ResponseWriter, r *http.Request) {
	limit, offset, ok := pagination(w, r)
	if !ok {
		return
	}

	posts, err := h.feedService.GetExploreFeed(r.Context(), viewer(r), limit, offset)
	if err != nil {
		log.Printf("[ERROR] Explore feed handler: err=%v", err)
		httputil.WriteInternalError(w, err, "Failed to get explore feed")
		return
	}

	httputil.WritePage(w, http.StatusOK, posts, limit, offset)
}

// Trending handles GET /trending/hashtags
func (h *FeedHandler) Trending(w http.ResponseWriter, r *http.Request) {
	limit := 10
	if raw := r.URL.Query().Get("limit"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v <= 0 {
			httputil.WriteBadRequest(w, "Invalid limit parameter")
			return
		}
		if v > httputil.MaxLimit {
			v = httputil.MaxLimit
		}
		limit = v
	}

	tags, err := h.feedService.GetTrendingHashtags(r.Context(), limit)
	if err != nil {
		log.Printf("[ERROR] Trending handler: err=%v", err)
		httputil.WriteInternalError(w, err, "Failed to get trending hashtags")
		return
	}

	httputil.WriteSuccess(w, http.StatusOK, tags)
}
