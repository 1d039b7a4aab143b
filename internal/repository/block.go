package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"socialite/internal/model"
)

type blockRepository struct {
	db *sqlx.DB
}

func NewBlockRepository(db *sqlx.DB) BlockRepository {
	return &blockRepository{db: db}
}

// Create inserts a block edge inside the caller's transaction. The follow
// edges between the pair are removed by the same transaction (see
// FollowRepository.DeletePair).
func (r *blockRepository) Create(ctx context.Context, tx *sqlx.Tx, blockerID, blockedID int64) error {
	_, err := tx.ExecContext(ctx, `
		INSERT INTO blocks (blocker_id, blocked_id)
		VALUES ($1, $2)
	`, blockerID, blockedID)
	if isUniqueViolation(err) {
		return model.ErrAlreadyBlocked
	}
	if err != nil {
		return fmt.Errorf("insert block: %w", err)
	}
	return nil
}

func (r *blockRepository) Delete(ctx context.Context, blockerID, blockedID int64) error {
	result, err := r.db.ExecContext(ctx, `
		DELETE FROM blocks
		WHERE blocker_id = $1 AND blocked_id = $2
	`, blockerID, blockedID)
	if err != nil {
		return fmt.Errorf("delete block: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete block rows affected: %w", err)
	}
	if rows == 0 {
		return model.ErrNotBlocked
	}
	return nil
}

// ExistsBetween reports a block edge in either direction. Storage is
// asymmetric but the effect is symmetric, so interaction checks always use
// this form.
func (r *blockRepository) ExistsBetween(ctx context.Context, a, b int64) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists, `
		SELECT EXISTS(
			SELECT 1 FROM blocks
			WHERE (blocker_id = $1 AND blocked_id = $2)
			   OR (blocker_id = $2 AND blocked_id = $1)
		)
	`, a, b)
	if err != nil {
		return false, fmt.Errorf("check block between: %w", err)
	}
	return exists, nil
}

func (r *blockRepository) Exists(ctx context.Context, blockerID, blockedID int64) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists, `
		SELECT EXISTS(
			SELECT 1 FROM blocks WHERE blocker_id = $1 AND blocked_id = $2
		)
	`, blockerID, blockedID)
	if err != nil {
		return false, fmt.Errorf("check block: %w", err)
	}
	return exists, nil
}

func (r *blockRepository) ListBlocked(ctx context.Context, blockerID int64, limit, offset int) ([]model.UserSummary, error) {
	users := []model.UserSummary{}
	err := r.db.SelectContext(ctx, &users, `
		SELECT u.id, u.username, u.display_name, u.avatar_url
		FROM blocks b
		JOIN users u ON u.id = b.blocked_id
		WHERE b.blocker_id = $1
		ORDER BY b.created_at DESC, u.id DESC
		LIMIT $2 OFFSET $3
	`, blockerID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list blocked users: %w", err)
	}
	return users, nil
}
