package service

import (
	"context"
	"log"
	"time"

	"socialite/internal/cache"
	"socialite/internal/model"
	"socialite/internal/repository"
)

// TrendingWindow is how far back the trending-hashtags aggregation looks.
const TrendingWindow = 7 * 24 * time.Hour

// FeedService composes the home, explore and trending surfaces. The home
// feed prefers the server-side aggregate when the startup probe found it,
// and drops to the composed fallback query per request when the aggregate
// errors at runtime.
type FeedService struct {
	feedRepo       repository.FeedRepository
	userRepo       repository.UserRepository
	engagementRepo repository.EngagementRepository
	trending       cache.TrendingCache
	useAggregate   bool
}

func NewFeedService(
	feedRepo repository.FeedRepository,
	userRepo repository.UserRepository,
	engagementRepo repository.EngagementRepository,
	trending cache.TrendingCache,
	useAggregate bool,
) *FeedService {
	return &FeedService{
		feedRepo:       feedRepo,
		userRepo:       userRepo,
		engagementRepo: engagementRepo,
		trending:       trending,
		useAggregate:   useAggregate,
	}
}

// GetHomeFeed returns the viewer's timeline: own posts plus followed
// authors' posts the viewer may see, newest first.
func (s *FeedService) GetHomeFeed(ctx context.Context, viewerID int64, limit, offset int) ([]model.Post, error) {
	var (
		posts []model.Post
		err   error
	)
	if s.useAggregate {
		posts, err = s.feedRepo.AggregateHomeFeed(ctx, viewerID, limit, offset)
		if err != nil {
			log.Printf("[FeedService] Aggregate feed failed, using fallback: viewer=%d err=%v", viewerID, err)
			posts, err = s.feedRepo.FallbackHomeFeed(ctx, viewerID, limit, offset)
		}
	} else {
		posts, err = s.feedRepo.FallbackHomeFeed(ctx, viewerID, limit, offset)
	}
	if err != nil {
		return nil, err
	}

	if err := s.hydratePosts(ctx, &viewerID, posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// GetExploreFeed returns public posts ranked by like count then recency.
// viewerID is nil for anonymous callers.
func (s *FeedService) GetExploreFeed(ctx context.Context, viewerID *int64, limit, offset int) ([]model.Post, error) {
	posts, err := s.feedRepo.Explore(ctx, viewerID, limit, offset)
	if err != nil {
		return nil, err
	}

	if err := s.hydratePosts(ctx, viewerID, posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// GetTrendingHashtags aggregates tag frequency over the trending window.
// The cache is best-effort on both sides: a read or write failure is
// logged and the store aggregation still answers.
func (s *FeedService) GetTrendingHashtags(ctx context.Context, limit int) ([]model.TagCount, error) {
	if s.trending != nil {
		cached, err := s.trending.Get(ctx, limit)
		if err != nil {
			log.Printf("[FeedService] Trending cache read failed: err=%v", err)
		}
		if cached != nil {
			return cached, nil
		}
	}

	tags, err := s.feedRepo.TrendingTags(ctx, time.Now().Add(-TrendingWindow), limit)
	if err != nil {
		return nil, err
	}
	if tags == nil {
		tags = []model.TagCount{}
	}

	if s.trending != nil {
		if err := s.trending.Set(ctx, limit, tags); err != nil {
			log.Printf("[FeedService] Trending cache write failed: err=%v", err)
		}
	}
	return tags, nil
}

// hydratePosts attaches author summaries and, for signed-in viewers, the
// liked and bookmarked flags. Mutates posts in place.
func (s *FeedService) hydratePosts(ctx context.Context, viewerID *int64, posts []model.Post) error {
	if len(posts) == 0 {
		return nil
	}

	authorIDs := make([]int64, 0, len(posts))
	postIDs := make([]int64, 0, len(posts))
	seen := make(map[int64]struct{}, len(posts))
	for _, p := range posts {
		postIDs = append(postIDs, p.ID)
		if _, ok := seen[p.AuthorID]; ok {
			continue
		}
		seen[p.AuthorID] = struct{}{}
		authorIDs = append(authorIDs, p.AuthorID)
	}

	authors, err := s.userRepo.GetSummaries(ctx, authorIDs)
	if err != nil {
		return err
	}
	for i := range posts {
		if a, ok := authors[posts[i].AuthorID]; ok {
			author := a
			posts[i].Author = &author
		}
	}

	if viewerID == nil {
		return nil
	}

	liked, err := s.engagementRepo.CheckPostLikes(ctx, *viewerID, postIDs)
	if err != nil {
		return err
	}
	bookmarked, err := s.engagementRepo.CheckBookmarks(ctx, *viewerID, postIDs)
	if err != nil {
		return err
	}
	for i := range posts {
		posts[i].IsLiked = liked[posts[i].ID]
		posts[i].IsBookmarked = bookmarked[posts[i].ID]
	}
	return nil
}
