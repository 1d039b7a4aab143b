package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"socialite/internal/model"
)

type engagementRepository struct {
	db *sqlx.DB
}

func NewEngagementRepository(db *sqlx.DB) EngagementRepository {
	return &engagementRepository{db: db}
}

// pairInsert runs an insert that relies on the pair constraint for
// duplicate rejection and maps the violation to dupErr.
func (r *engagementRepository) pairInsert(ctx context.Context, query string, dupErr error, subjectID, userID int64) error {
	_, err := r.db.ExecContext(ctx, query, subjectID, userID)
	if isUniqueViolation(err) {
		return dupErr
	}
	if err != nil {
		return fmt.Errorf("insert engagement: %w", err)
	}
	return nil
}

// pairDelete removes the pair row and maps "nothing deleted" to missErr.
func (r *engagementRepository) pairDelete(ctx context.Context, query string, missErr error, subjectID, userID int64) error {
	result, err := r.db.ExecContext(ctx, query, subjectID, userID)
	if err != nil {
		return fmt.Errorf("delete engagement: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete engagement rows affected: %w", err)
	}
	if rows == 0 {
		return missErr
	}
	return nil
}

func (r *engagementRepository) LikePost(ctx context.Context, postID, userID int64) error {
	return r.pairInsert(ctx,
		`INSERT INTO post_likes (post_id, user_id) VALUES ($1, $2)`,
		model.ErrAlreadyLiked, postID, userID)
}

func (r *engagementRepository) UnlikePost(ctx context.Context, postID, userID int64) error {
	return r.pairDelete(ctx,
		`DELETE FROM post_likes WHERE post_id = $1 AND user_id = $2`,
		model.ErrNotLiked, postID, userID)
}

func (r *engagementRepository) LikeComment(ctx context.Context, commentID, userID int64) error {
	return r.pairInsert(ctx,
		`INSERT INTO comment_likes (comment_id, user_id) VALUES ($1, $2)`,
		model.ErrAlreadyLiked, commentID, userID)
}

func (r *engagementRepository) UnlikeComment(ctx context.Context, commentID, userID int64) error {
	return r.pairDelete(ctx,
		`DELETE FROM comment_likes WHERE comment_id = $1 AND user_id = $2`,
		model.ErrNotLiked, commentID, userID)
}

func (r *engagementRepository) Bookmark(ctx context.Context, postID, userID int64) error {
	return r.pairInsert(ctx,
		`INSERT INTO bookmarks (post_id, user_id) VALUES ($1, $2)`,
		model.ErrAlreadyBookmarked, postID, userID)
}

func (r *engagementRepository) Unbookmark(ctx context.Context, postID, userID int64) error {
	return r.pairDelete(ctx,
		`DELETE FROM bookmarks WHERE post_id = $1 AND user_id = $2`,
		model.ErrNotBookmarked, postID, userID)
}

func (r *engagementRepository) Share(ctx context.Context, postID, userID int64) error {
	return r.pairInsert(ctx,
		`INSERT INTO shares (post_id, user_id) VALUES ($1, $2)`,
		model.ErrAlreadyShared, postID, userID)
}

func (r *engagementRepository) ListPostLikers(ctx context.Context, postID int64, limit, offset int) ([]model.UserSummary, error) {
	users := []model.UserSummary{}
	err := r.db.SelectContext(ctx, &users, `
		SELECT u.id, u.username, u.display_name, u.avatar_url
		FROM post_likes pl
		JOIN users u ON u.id = pl.user_id
		WHERE pl.post_id = $1 AND u.is_active = TRUE
		ORDER BY pl.created_at DESC, u.id DESC
		LIMIT $2 OFFSET $3
	`, postID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list post likers: %w", err)
	}
	return users, nil
}

func (r *engagementRepository) ListBookmarkedPosts(ctx context.Context, userID int64, limit, offset int) ([]model.Post, error) {
	posts := []model.Post{}
	err := r.db.SelectContext(ctx, &posts, `
		SELECT `+postColumns+`
		FROM bookmarks bm
		JOIN posts p ON p.id = bm.post_id
		WHERE bm.user_id = $1 AND p.is_deleted = FALSE
		ORDER BY bm.created_at DESC, p.id DESC
		LIMIT $2 OFFSET $3
	`, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list bookmarked posts: %w", err)
	}
	return posts, nil
}

func (r *engagementRepository) CheckPostLikes(ctx context.Context, userID int64, postIDs []int64) (map[int64]bool, error) {
	return r.checkPairs(ctx,
		`SELECT post_id FROM post_likes WHERE user_id = $1 AND post_id = ANY($2)`,
		userID, postIDs)
}

func (r *engagementRepository) CheckCommentLikes(ctx context.Context, userID int64, commentIDs []int64) (map[int64]bool, error) {
	return r.checkPairs(ctx,
		`SELECT comment_id FROM comment_likes WHERE user_id = $1 AND comment_id = ANY($2)`,
		userID, commentIDs)
}

func (r *engagementRepository) CheckBookmarks(ctx context.Context, userID int64, postIDs []int64) (map[int64]bool, error) {
	return r.checkPairs(ctx,
		`SELECT post_id FROM bookmarks WHERE user_id = $1 AND post_id = ANY($2)`,
		userID, postIDs)
}

func (r *engagementRepository) checkPairs(ctx context.Context, query string, userID int64, subjectIDs []int64) (map[int64]bool, error) {
	if len(subjectIDs) == 0 {
		return map[int64]bool{}, nil
	}

	ids := []int64{}
	err := r.db.SelectContext(ctx, &ids, query, userID, pq.Array(subjectIDs))
	if err != nil {
		return nil, fmt.Errorf("check engagement pairs: %w", err)
	}

	out := make(map[int64]bool, len(ids))
	for _, id := range ids {
		out[id] = true
	}
	return out, nil
}
