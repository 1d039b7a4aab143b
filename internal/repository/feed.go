package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"socialite/internal/model"
)

type feedRepository struct {
	db *sqlx.DB
}

func NewFeedRepository(db *sqlx.DB) FeedRepository {
	return &feedRepository{db: db}
}

// blockFilter excludes posts whose author has a block edge with the viewer
// in either direction. Expects the viewer as $1 and posts aliased p.
const blockFilter = `
	NOT EXISTS (
		SELECT 1 FROM blocks b
		WHERE (b.blocker_id = $1 AND b.blocked_id = p.author_id)
		   OR (b.blocker_id = p.author_id AND b.blocked_id = $1)
	)`

// HasAggregate probes the catalog for the server-side feed function. Run
// once at startup; the composer picks its tier from the answer instead of
// try/catching on every request.
func (r *feedRepository) HasAggregate(ctx context.Context) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists,
		`SELECT EXISTS(SELECT 1 FROM pg_proc WHERE proname = 'get_home_feed')`)
	if err != nil {
		return false, fmt.Errorf("probe feed aggregate: %w", err)
	}
	return exists, nil
}

// AggregateHomeFeed delegates ranking and merging to get_home_feed, which
// returns rows in the post shape with counters precomputed server-side.
func (r *feedRepository) AggregateHomeFeed(ctx context.Context, viewerID int64, limit, offset int) ([]model.Post, error) {
	posts := []model.Post{}
	err := r.db.SelectContext(ctx, &posts, `
		SELECT id, author_id, content, media_urls, visibility, tags,
		       created_at, updated_at, like_count, comment_count, share_count
		FROM get_home_feed($1, $2, $3)
	`, viewerID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("aggregate home feed: %w", err)
	}
	return posts, nil
}

// FallbackHomeFeed composes the timeline from plain queries when the
// aggregate is unavailable: the viewer's own posts plus posts from followed
// authors, under the full visibility and block filter. Chronological only;
// (created_at, id) descending keeps pagination deterministic under
// concurrent inserts with equal timestamps.
func (r *feedRepository) FallbackHomeFeed(ctx context.Context, viewerID int64, limit, offset int) ([]model.Post, error) {
	posts := []model.Post{}
	err := r.db.SelectContext(ctx, &posts, `
		SELECT `+postColumns+`
		FROM posts p
		WHERE p.is_deleted = FALSE
		  AND (
			p.author_id = $1
			OR p.author_id IN (SELECT following_id FROM follows WHERE follower_id = $1)
		  )
		  AND (
			p.author_id = $1
			OR p.visibility = 'public'
			OR (p.visibility = 'followers' AND EXISTS (
				SELECT 1 FROM follows f
				WHERE f.follower_id = $1 AND f.following_id = p.author_id
			))
		  )
		  AND `+blockFilter+`
		ORDER BY p.created_at DESC, p.id DESC
		LIMIT $2 OFFSET $3
	`, viewerID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("fallback home feed: %w", err)
	}
	return posts, nil
}

// Explore lists public posts by like count, then recency, then id. The
// block filter applies only when the viewer is known.
func (r *feedRepository) Explore(ctx context.Context, viewerID *int64, limit, offset int) ([]model.Post, error) {
	posts := []model.Post{}
	err := r.db.SelectContext(ctx, &posts, `
		SELECT `+postColumns+`
		FROM posts p
		WHERE p.is_deleted = FALSE
		  AND p.visibility = 'public'
		  AND ($1::bigint IS NULL OR `+blockFilter+`)
		ORDER BY like_count DESC, p.created_at DESC, p.id DESC
		LIMIT $2 OFFSET $3
	`, viewerID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("explore feed: %w", err)
	}
	return posts, nil
}

// TrendingTags aggregates tag frequency over recent public posts.
func (r *feedRepository) TrendingTags(ctx context.Context, since time.Time, limit int) ([]model.TagCount, error) {
	tags := []model.TagCount{}
	err := r.db.SelectContext(ctx, &tags, `
		SELECT tag, COUNT(*) AS count
		FROM posts p, unnest(p.tags) AS tag
		WHERE p.is_deleted = FALSE
		  AND p.visibility = 'public'
		  AND p.created_at > $1
		GROUP BY tag
		ORDER BY count DESC, tag ASC
		LIMIT $2
	`, since, limit)
	if err != nil {
		return nil, fmt.Errorf("trending tags: %w", err)
	}
	return tags, nil
}
