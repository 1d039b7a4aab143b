package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"socialite/internal/model"
)

type followRepository struct {
	db *sqlx.DB
}

func NewFollowRepository(db *sqlx.DB) FollowRepository {
	return &followRepository{db: db}
}

// Create inserts a follow edge. The pair constraint decides duplicates.
func (r *followRepository) Create(ctx context.Context, followerID, followingID int64) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO follows (follower_id, following_id)
		VALUES ($1, $2)
	`, followerID, followingID)
	if isUniqueViolation(err) {
		return model.ErrAlreadyFollowing
	}
	if err != nil {
		return fmt.Errorf("insert follow: %w", err)
	}
	return nil
}

func (r *followRepository) Delete(ctx context.Context, followerID, followingID int64) error {
	result, err := r.db.ExecContext(ctx, `
		DELETE FROM follows
		WHERE follower_id = $1 AND following_id = $2
	`, followerID, followingID)
	if err != nil {
		return fmt.Errorf("delete follow: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete follow rows affected: %w", err)
	}
	if rows == 0 {
		return model.ErrNotFollowing
	}
	return nil
}

// DeletePair removes exactly the two directed edges (a→b) and (b→a).
// Runs inside the caller's transaction so block creation and the unfollow
// commit together.
func (r *followRepository) DeletePair(ctx context.Context, tx *sqlx.Tx, a, b int64) error {
	_, err := tx.ExecContext(ctx, `
		DELETE FROM follows
		WHERE (follower_id = $1 AND following_id = $2)
		   OR (follower_id = $2 AND following_id = $1)
	`, a, b)
	if err != nil {
		return fmt.Errorf("delete follow pair: %w", err)
	}
	return nil
}

func (r *followRepository) Exists(ctx context.Context, followerID, followingID int64) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists, `
		SELECT EXISTS(
			SELECT 1 FROM follows WHERE follower_id = $1 AND following_id = $2
		)
	`, followerID, followingID)
	if err != nil {
		return false, fmt.Errorf("check follow: %w", err)
	}
	return exists, nil
}

func (r *followRepository) ListFollowers(ctx context.Context, userID int64, limit, offset int) ([]model.UserSummary, error) {
	users := []model.UserSummary{}
	err := r.db.SelectContext(ctx, &users, `
		SELECT u.id, u.username, u.display_name, u.avatar_url
		FROM follows f
		JOIN users u ON u.id = f.follower_id
		WHERE f.following_id = $1 AND u.is_active = TRUE
		ORDER BY f.created_at DESC, u.id DESC
		LIMIT $2 OFFSET $3
	`, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list followers: %w", err)
	}
	return users, nil
}

func (r *followRepository) ListFollowing(ctx context.Context, userID int64, limit, offset int) ([]model.UserSummary, error) {
	users := []model.UserSummary{}
	err := r.db.SelectContext(ctx, &users, `
		SELECT u.id, u.username, u.display_name, u.avatar_url
		FROM follows f
		JOIN users u ON u.id = f.following_id
		WHERE f.follower_id = $1 AND u.is_active = TRUE
		ORDER BY f.created_at DESC, u.id DESC
		LIMIT $2 OFFSET $3
	`, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list following: %w", err)
	}
	return users, nil
}

func (r *followRepository) FollowingIDs(ctx context.Context, userID int64) ([]int64, error) {
	ids := []int64{}
	err := r.db.SelectContext(ctx, &ids, `
		SELECT following_id FROM follows WHERE follower_id = $1
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("list following ids: %w", err)
	}
	return ids, nil
}
