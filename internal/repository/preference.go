package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"socialite/internal/model"
)

type preferenceRepository struct {
	db *sqlx.DB
}

func NewPreferenceRepository(db *sqlx.DB) PreferenceRepository {
	return &preferenceRepository{db: db}
}

// Get returns nil on a missing row: no preferences means nothing disabled.
func (r *preferenceRepository) Get(ctx context.Context, userID int64) (*model.NotificationPreferences, error) {
	var prefs model.NotificationPreferences
	err := r.db.GetContext(ctx, &prefs, `
		SELECT user_id, likes, comments, comment_likes, follows, mentions, shares, messages
		FROM notification_preferences
		WHERE user_id = $1
	`, userID)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get notification preferences: %w", err)
	}
	return &prefs, nil
}

func (r *preferenceRepository) Upsert(ctx context.Context, prefs *model.NotificationPreferences) error {
	_, err := r.db.NamedExecContext(ctx, `
		INSERT INTO notification_preferences
			(user_id, likes, comments, comment_likes, follows, mentions, shares, messages)
		VALUES
			(:user_id, :likes, :comments, :comment_likes, :follows, :mentions, :shares, :messages)
		ON CONFLICT (user_id) DO UPDATE SET
			likes         = EXCLUDED.likes,
			comments      = EXCLUDED.comments,
			comment_likes = EXCLUDED.comment_likes,
			follows       = EXCLUDED.follows,
			mentions      = EXCLUDED.mentions,
			shares        = EXCLUDED.shares,
			messages      = EXCLUDED.messages
	`, prefs)
	if err != nil {
		return fmt.Errorf("upsert notification preferences: %w", err)
	}
	return nil
}
