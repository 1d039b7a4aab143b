package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"socialite/internal/handler"
	"socialite/internal/httputil"
	"socialite/internal/ratelimit"
	authmw "socialite/internal/transport/http/middleware"
)

// RouterConfig holds the dependencies needed to create routes
type RouterConfig struct {
	AuthHandler         *handler.AuthHandler
	UserHandler         *handler.UserHandler
	FollowHandler       *handler.FollowHandler
	FeedHandler         *handler.FeedHandler
	PostHandler         *handler.PostHandler
	CommentHandler      *handler.CommentHandler
	StoryHandler        *handler.StoryHandler
	MessageHandler      *handler.MessageHandler
	NotificationHandler *handler.NotificationHandler
	MediaHandler        *handler.MediaHandler

	Authenticator *authmw.Authenticator
	Limiter       ratelimit.Limiter
	AdminAPIKey   string
}

// NewRouter creates and configures a new Chi router with all route groups.
// Everything is mounted under /api; the rate limiter runs after
// authentication so authenticated traffic is keyed by user, not IP.
func NewRouter(cfg RouterConfig) chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api", func(r chi.Router) {
		// Public routes - no authentication required
		r.Group(func(r chi.Router) {
			r.Use(authmw.RateLimit(cfg.Limiter))

			r.Post("/auth/register", cfg.AuthHandler.Register)
			r.Post("/auth/login", cfg.AuthHandler.Login)
			r.Post("/auth/refresh", cfg.AuthHandler.Refresh)
		})

		// Public routes with optional authentication
		r.Group(func(r chi.Router) {
			r.Use(cfg.Authenticator.Optional())
			r.Use(authmw.RateLimit(cfg.Limiter))

			r.Get("/users/search", cfg.UserHandler.Search)
			r.Get("/users/{username}", cfg.UserHandler.GetProfile)
			r.Get("/users/{username}/posts", cfg.PostHandler.GetUserPosts)
			r.Get("/users/{id}/followers", cfg.FollowHandler.GetFollowers)
			r.Get("/users/{id}/following", cfg.FollowHandler.GetFollowing)

			r.Get("/posts/hashtag/{tag}", cfg.PostHandler.ByTag)
			r.Get("/posts/{id}", cfg.PostHandler.GetByID)
			r.Get("/posts/{id}/comments", cfg.CommentHandler.List)
			r.Get("/posts/{id}/likes", cfg.PostHandler.Likers)

			r.Get("/explore", cfg.FeedHandler.Explore)
			r.Get("/trending/hashtags", cfg.FeedHandler.Trending)
		})

		// Protected routes - require authentication
		r.Group(func(r chi.Router) {
			r.Use(cfg.Authenticator.Require())
			r.Use(authmw.RateLimit(cfg.Limiter))

			r.Post("/auth/logout", cfg.AuthHandler.Logout)
			r.Post("/auth/logout-all", cfg.AuthHandler.LogoutAll)

			r.Get("/me", cfg.UserHandler.Me)
			r.Patch("/me", cfg.UserHandler.UpdateProfile)
			r.Delete("/me", cfg.UserHandler.Deactivate)
			r.Get("/me/blocked", cfg.FollowHandler.GetBlocked)
			r.Get("/me/bookmarks", cfg.PostHandler.Bookmarks)

			r.Get("/users/suggestions", cfg.UserHandler.Suggestions)
			r.Post("/users/{id}/follow", cfg.FollowHandler.Follow)
			r.Delete("/users/{id}/follow", cfg.FollowHandler.Unfollow)
			r.Post("/users/{id}/block", cfg.FollowHandler.Block)
			r.Delete("/users/{id}/block", cfg.FollowHandler.Unblock)

			r.Get("/feed", cfg.FeedHandler.Home)

			r.Post("/posts", cfg.PostHandler.Create)
			r.Patch("/posts/{id}", cfg.PostHandler.Update)
			r.Delete("/posts/{id}", cfg.PostHandler.Delete)
			r.Post("/posts/{id}/like", cfg.PostHandler.Like)
			r.Delete("/posts/{id}/like", cfg.PostHandler.Unlike)
			r.Post("/posts/{id}/bookmark", cfg.PostHandler.Bookmark)
			r.Delete("/posts/{id}/bookmark", cfg.PostHandler.Unbookmark)
			r.Post("/posts/{id}/share", cfg.PostHandler.Share)
			r.Post("/posts/{id}/comments", cfg.CommentHandler.Create)

			r.Patch("/comments/{id}", cfg.CommentHandler.Update)
			r.Delete("/comments/{id}", cfg.CommentHandler.Delete)
			r.Post("/comments/{id}/like", cfg.CommentHandler.Like)
			r.Delete("/comments/{id}/like", cfg.CommentHandler.Unlike)

			r.Post("/stories", cfg.StoryHandler.Create)
			r.Get("/stories/feed", cfg.StoryHandler.Feed)
			r.Post("/stories/{id}/view", cfg.StoryHandler.View)
			r.Get("/stories/{id}/viewers", cfg.StoryHandler.Viewers)
			r.Delete("/stories/{id}", cfg.StoryHandler.Delete)

			r.Post("/messages", cfg.MessageHandler.Send)
			r.Get("/messages", cfg.MessageHandler.Conversations)
			r.Get("/messages/{id}", cfg.MessageHandler.Thread)
			r.Patch("/messages/{id}", cfg.MessageHandler.Edit)
			r.Delete("/messages/{id}", cfg.MessageHandler.Delete)
			r.Post("/messages/{id}/read", cfg.MessageHandler.MarkRead)

			r.Get("/notifications", cfg.NotificationHandler.List)
			r.Get("/notifications/unread-count", cfg.NotificationHandler.UnreadCount)
			r.Post("/notifications/{id}/read", cfg.NotificationHandler.MarkRead)
			r.Post("/notifications/read-all", cfg.NotificationHandler.MarkAllRead)
			r.Get("/notifications/preferences", cfg.NotificationHandler.GetPreferences)
			r.Put("/notifications/preferences", cfg.NotificationHandler.UpdatePreferences)

			if cfg.MediaHandler != nil {
				r.Post("/media/presign", cfg.MediaHandler.Presign)
				r.Post("/media/presign/batch", cfg.MediaHandler.PresignBatch)
			}
		})

		// Maintenance routes - gated behind the admin API key
		r.Group(func(r chi.Router) {
			r.Use(authmw.RequireAdmin(cfg.AdminAPIKey))

			r.Post("/admin/notifications/cleanup", cfg.NotificationHandler.Cleanup)
			r.Post("/admin/tokens/cleanup", cfg.AuthHandler.CleanupTokens)
		})
	})

	return r
}
