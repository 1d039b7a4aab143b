package http

import (
	"context"
	"fmt"
	"log"
	stdhttp "net/http"

	"socialite/internal/cache"
	"socialite/internal/config"
	"socialite/internal/database"
	"socialite/internal/handler"
	"socialite/internal/httputil"
	"socialite/internal/ratelimit"
	appredis "socialite/internal/redis"
	"socialite/internal/repository"
	"socialite/internal/service"
	authmw "socialite/internal/transport/http/middleware"
)

func Run() error {
	ctx := context.Background()

	// 1. Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	httputil.ExposeErrorDetail(cfg.IsDevelopment())

	// 2. Connect to the database
	db, err := database.Connect(cfg)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	// 3. Connect to Redis when configured. The server runs without it:
	// rate limiting falls back to the in-memory limiter and the trending
	// cache is skipped.
	var (
		limiter       ratelimit.Limiter
		trendingCache cache.TrendingCache
	)
	if cfg.RedisURL != "" {
		redisClient, err := appredis.NewClient(cfg.RedisURL)
		if err != nil {
			return fmt.Errorf("failed to connect to redis: %w", err)
		}
		if err := redisClient.Ping(ctx); err != nil {
			return fmt.Errorf("failed to reach redis: %w", err)
		}
		defer redisClient.Close()
		limiter = ratelimit.NewRedisLimiter(redisClient.Client, cfg.RateLimitRequests, cfg.RateLimitWindow)
		trendingCache = cache.NewTrendingCache(redisClient.Client)
	} else {
		log.Println("[Server] REDIS_URL not set, using in-memory rate limiter and no trending cache")
		limiter = ratelimit.NewMemoryLimiter(cfg.RateLimitRequests, cfg.RateLimitWindow)
	}

	// 4. Repositories
	userRepo := repository.NewUserRepository(db)
	tokenRepo := repository.NewRefreshTokenRepository(db)
	followRepo := repository.NewFollowRepository(db)
	blockRepo := repository.NewBlockRepository(db)
	postRepo := repository.NewPostRepository(db)
	feedRepo := repository.NewFeedRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	engagementRepo := repository.NewEngagementRepository(db)
	storyRepo := repository.NewStoryRepository(db)
	messageRepo := repository.NewMessageRepository(db)
	notifRepo := repository.NewNotificationRepository(db)
	prefRepo := repository.NewPreferenceRepository(db)

	// 5. Probe for the server-side home feed aggregate once at startup.
	useAggregate, err := feedRepo.HasAggregate(ctx)
	if err != nil {
		log.Printf("[Server] Feed aggregate probe failed, using fallback query: err=%v", err)
		useAggregate = false
	}
	log.Printf("[Server] Home feed aggregate available: %t", useAggregate)

	// 6. Services
	authService := service.NewAuthService(tokenRepo, cfg)
	notificationService := service.NewNotificationService(notifRepo, prefRepo, blockRepo, userRepo)
	userService := service.NewUserService(userRepo, followRepo, blockRepo, authService)
	followService := service.NewFollowService(db, followRepo, blockRepo, userRepo, notificationService)
	postService := service.NewPostService(postRepo, followRepo, blockRepo, userRepo, engagementRepo, notificationService)
	commentService := service.NewCommentService(commentRepo, postRepo, followRepo, blockRepo, userRepo, engagementRepo, notificationService)
	feedService := service.NewFeedService(feedRepo, userRepo, engagementRepo, trendingCache, useAggregate)
	storyService := service.NewStoryService(storyRepo, followRepo, userRepo)
	messageService := service.NewMessageService(messageRepo, userRepo, blockRepo, notificationService)

	// Media presigning is optional; without storage credentials the
	// media routes are simply not mounted.
	var mediaHandler *handler.MediaHandler
	mediaService, err := service.NewMediaService(ctx, cfg)
	if err != nil {
		log.Printf("[Server] Media service disabled: %v", err)
	} else {
		mediaHandler = handler.NewMediaHandler(mediaService)
	}

	// 7. Router
	authenticator := authmw.NewAuthenticator(authService, userRepo)
	router := NewRouter(RouterConfig{
		AuthHandler:         handler.NewAuthHandler(userService, authService),
		UserHandler:         handler.NewUserHandler(userService),
		FollowHandler:       handler.NewFollowHandler(followService),
		FeedHandler:         handler.NewFeedHandler(feedService),
		PostHandler:         handler.NewPostHandler(postService),
		CommentHandler:      handler.NewCommentHandler(commentService),
		StoryHandler:        handler.NewStoryHandler(storyService),
		MessageHandler:      handler.NewMessageHandler(messageService),
		NotificationHandler: handler.NewNotificationHandler(notificationService),
		MediaHandler:        mediaHandler,
		Authenticator:       authenticator,
		Limiter:             limiter,
		AdminAPIKey:         cfg.AdminAPIKey,
	})

	addr := ":" + cfg.ServerPort
	log.Printf("Starting server on %s", addr)
	return stdhttp.ListenAndServe(addr, router)
}
