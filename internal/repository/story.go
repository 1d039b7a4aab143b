package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"socialite/internal/model"
)

type storyRepository struct {
	db *sqlx.DB
}

func NewStoryRepository(db *sqlx.DB) StoryRepository {
	return &storyRepository{db: db}
}

// Live stories only: soft delete and expiry are both read-path gates.
const storyLiveFilter = `s.is_deleted = FALSE AND s.expires_at > NOW()`

const storyColumns = `
	s.id, s.author_id, s.media_url, s.media_type, s.expires_at, s.created_at,
	(SELECT COUNT(*) FROM story_views sv WHERE sv.story_id = s.id) AS view_count`

func (r *storyRepository) Create(ctx context.Context, story *model.Story) error {
	query := `
		INSERT INTO stories (author_id, media_url, media_type, expires_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`
	err := r.db.QueryRowxContext(ctx, query,
		story.AuthorID, story.MediaURL, story.MediaType, story.ExpiresAt,
	).Scan(&story.ID, &story.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert story: %w", err)
	}
	return nil
}

func (r *storyRepository) GetByID(ctx context.Context, storyID int64) (*model.Story, error) {
	var story model.Story
	err := r.db.GetContext(ctx, &story, `
		SELECT `+storyColumns+`
		FROM stories s
		WHERE s.id = $1 AND `+storyLiveFilter+`
	`, storyID)
	if err == sql.ErrNoRows {
		return nil, model.ErrStoryNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get story: %w", err)
	}
	return &story, nil
}

func (r *storyRepository) ListActiveByAuthors(ctx context.Context, authorIDs []int64) ([]model.Story, error) {
	if len(authorIDs) == 0 {
		return []model.Story{}, nil
	}

	stories := []model.Story{}
	err := r.db.SelectContext(ctx, &stories, `
		SELECT `+storyColumns+`
		FROM stories s
		WHERE s.author_id = ANY($1) AND `+storyLiveFilter+`
		ORDER BY s.created_at DESC, s.id DESC
	`, pq.Array(authorIDs))
	if err != nil {
		return nil, fmt.Errorf("list active stories: %w", err)
	}
	return stories, nil
}

// RecordView upserts the view row. The pair constraint plus ON CONFLICT
// guarantees at most one row per viewer; repeat views refresh viewed_at.
func (r *storyRepository) RecordView(ctx context.Context, storyID, viewerID int64) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO story_views (story_id, viewer_id, viewed_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (story_id, viewer_id) DO UPDATE SET viewed_at = NOW()
	`, storyID, viewerID)
	if err != nil {
		return fmt.Errorf("record story view: %w", err)
	}
	return nil
}

func (r *storyRepository) CheckViews(ctx context.Context, viewerID int64, storyIDs []int64) (map[int64]bool, error) {
	if len(storyIDs) == 0 {
		return map[int64]bool{}, nil
	}

	ids := []int64{}
	err := r.db.SelectContext(ctx, &ids, `
		SELECT story_id FROM story_views
		WHERE viewer_id = $1 AND story_id = ANY($2)
	`, viewerID, pq.Array(storyIDs))
	if err != nil {
		return nil, fmt.Errorf("check story views: %w", err)
	}

	out := make(map[int64]bool, len(ids))
	for _, id := range ids {
		out[id] = true
	}
	return out, nil
}

func (r *storyRepository) ListViewers(ctx context.Context, storyID int64, limit, offset int) ([]model.StoryView, error) {
	type viewerRow struct {
		model.StoryView
		model.UserSummary
	}

	rows := []viewerRow{}
	err := r.db.SelectContext(ctx, &rows, `
		SELECT sv.story_id, sv.viewer_id, sv.viewed_at,
		       u.id, u.username, u.display_name, u.avatar_url
		FROM story_views sv
		JOIN users u ON u.id = sv.viewer_id
		WHERE sv.story_id = $1 AND u.is_active = TRUE
		ORDER BY sv.viewed_at DESC, u.id DESC
		LIMIT $2 OFFSET $3
	`, storyID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list story viewers: %w", err)
	}

	views := make([]model.StoryView, len(rows))
	for i, row := range rows {
		view := row.StoryView
		summary := row.UserSummary
		view.Viewer = &summary
		views[i] = view
	}
	return views, nil
}

func (r *storyRepository) SoftDelete(ctx context.Context, storyID, authorID int64) error {
	result, err := r.db.ExecContext(ctx, `
		UPDATE stories SET is_deleted = TRUE
		WHERE id = $1 AND author_id = $2 AND is_deleted = FALSE
	`, storyID, authorID)
	if err != nil {
		return fmt.Errorf("delete story: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete story rows affected: %w", err)
	}
	if rows == 0 {
		var exists bool
		if err := r.db.GetContext(ctx, &exists,
			`SELECT EXISTS(SELECT 1 FROM stories WHERE id = $1 AND is_deleted = FALSE)`, storyID); err != nil {
			return fmt.Errorf("check story exists: %w", err)
		}
		if exists {
			return model.ErrNotStoryOwner
		}
		return model.ErrStoryNotFound
	}
	return nil
}
