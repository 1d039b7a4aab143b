package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"socialite/internal/model"
)

type userRepository struct {
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) UserRepository {
	return &userRepository{db: db}
}

const userColumns = `id, username, password_hashed, display_name, bio, avatar_url,
	is_private, is_active, created_at, updated_at, deactivated_at`

// Create inserts a new user. Usernames are stored case-folded; the unique
// index rejects duplicates.
func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	query := `
		INSERT INTO users (username, password_hashed, display_name)
		VALUES (LOWER($1), $2, $3)
		RETURNING ` + userColumns

	err := r.db.GetContext(ctx, user, query, user.Username, user.PasswordHashed, user.DisplayName)
	if isUniqueViolation(err) {
		return model.ErrUsernameExists
	}
	if err != nil {
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (r *userRepository) GetByID(ctx context.Context, id int64) (*model.User, error) {
	var user model.User
	err := r.db.GetContext(ctx, &user,
		`SELECT `+userColumns+` FROM users WHERE id = $1 AND is_active = TRUE`, id)
	if err == sql.ErrNoRows {
		return nil, model.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	return &user, nil
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	var user model.User
	err := r.db.GetContext(ctx, &user,
		`SELECT `+userColumns+` FROM users WHERE username = LOWER($1) AND is_active = TRUE`, username)
	if err == sql.ErrNoRows {
		return nil, model.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get user by username: %w", err)
	}
	return &user, nil
}

func (r *userRepository) GetSummaries(ctx context.Context, ids []int64) (map[int64]model.UserSummary, error) {
	if len(ids) == 0 {
		return map[int64]model.UserSummary{}, nil
	}

	var rows []model.UserSummary
	err := r.db.SelectContext(ctx, &rows, `
		SELECT id, username, display_name, avatar_url
		FROM users
		WHERE id = ANY($1) AND is_active = TRUE
	`, pq.Array(ids))
	if err != nil {
		return nil, fmt.Errorf("get user summaries: %w", err)
	}

	out := make(map[int64]model.UserSummary, len(rows))
	for _, u := range rows {
		out[u.ID] = u
	}
	return out, nil
}

func (r *userRepository) ResolveUsernames(ctx context.Context, usernames []string) (map[string]int64, error) {
	if len(usernames) == 0 {
		return map[string]int64{}, nil
	}

	lowered := make([]string, len(usernames))
	for i, u := range usernames {
		lowered[i] = strings.ToLower(u)
	}

	var rows []struct {
		ID       int64  `db:"id"`
		Username string `db:"username"`
	}
	err := r.db.SelectContext(ctx, &rows, `
		SELECT id, username
		FROM users
		WHERE username = ANY($1) AND is_active = TRUE
	`, pq.Array(lowered))
	if err != nil {
		return nil, fmt.Errorf("resolve usernames: %w", err)
	}

	out := make(map[string]int64, len(rows))
	for _, row := range rows {
		out[row.Username] = row.ID
	}
	return out, nil
}

// GetCounts computes the derived profile counters. Counts are never stored;
// the follow and post tables are the source of truth.
func (r *userRepository) GetCounts(ctx context.Context, userID int64) (*model.ProfileCounts, error) {
	var counts model.ProfileCounts
	err := r.db.GetContext(ctx, &counts, `
		SELECT
			(SELECT COUNT(*) FROM follows WHERE following_id = $1) AS followers,
			(SELECT COUNT(*) FROM follows WHERE follower_id = $1)  AS following,
			(SELECT COUNT(*) FROM posts WHERE author_id = $1 AND is_deleted = FALSE) AS posts
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("get profile counts: %w", err)
	}
	return &counts, nil
}

func (r *userRepository) Search(ctx context.Context, query string, limit, offset int) ([]model.UserSummary, error) {
	users := []model.UserSummary{}
	err := r.db.SelectContext(ctx, &users, `
		SELECT id, username, display_name, avatar_url
		FROM users
		WHERE is_active = TRUE
		  AND (username ILIKE '%' || $1 || '%' OR display_name ILIKE '%' || $1 || '%')
		ORDER BY username ASC
		LIMIT $2 OFFSET $3
	`, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("search users: %w", err)
	}
	return users, nil
}

// Suggestions returns active accounts the viewer does not follow, most
// followed first. Blocked relationships are excluded in both directions.
func (r *userRepository) Suggestions(ctx context.Context, viewerID int64, limit int) ([]model.UserSummary, error) {
	users := []model.UserSummary{}
	err := r.db.SelectContext(ctx, &users, `
		SELECT u.id, u.username, u.display_name, u.avatar_url
		FROM users u
		WHERE u.is_active = TRUE
		  AND u.id <> $1
		  AND NOT EXISTS (
			SELECT 1 FROM follows f WHERE f.follower_id = $1 AND f.following_id = u.id
		  )
		  AND NOT EXISTS (
			SELECT 1 FROM blocks b
			WHERE (b.blocker_id = $1 AND b.blocked_id = u.id)
			   OR (b.blocker_id = u.id AND b.blocked_id = $1)
		  )
		ORDER BY (SELECT COUNT(*) FROM follows f WHERE f.following_id = u.id) DESC, u.id ASC
		LIMIT $2
	`, viewerID, limit)
	if err != nil {
		return nil, fmt.Errorf("user suggestions: %w", err)
	}
	return users, nil
}

func (r *userRepository) UpdateProfile(ctx context.Context, userID int64, req model.UpdateProfileRequest) (*model.User, error) {
	var user model.User
	err := r.db.GetContext(ctx, &user, `
		UPDATE users SET
			display_name = COALESCE($2, display_name),
			bio          = COALESCE($3, bio),
			avatar_url   = COALESCE($4, avatar_url),
			is_private   = COALESCE($5, is_private),
			updated_at   = NOW()
		WHERE id = $1 AND is_active = TRUE
		RETURNING `+userColumns,
		userID, req.DisplayName, req.Bio, req.AvatarURL, req.IsPrivate)
	if err == sql.ErrNoRows {
		return nil, model.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}
	return &user, nil
}

// Deactivate soft-deletes the account and scrubs PII in the same statement.
// The row survives so foreign keys stay intact, but nothing personal remains.
func (r *userRepository) Deactivate(ctx context.Context, userID int64) error {
	result, err := r.db.ExecContext(ctx, `
		UPDATE users SET
			is_active      = FALSE,
			display_name   = NULL,
			bio            = NULL,
			avatar_url     = NULL,
			deactivated_at = NOW(),
			updated_at     = NOW()
		WHERE id = $1 AND is_active = TRUE
	`, userID)
	if err != nil {
		return fmt.Errorf("deactivate user: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("deactivate rows affected: %w", err)
	}
	if rows == 0 {
		return model.ErrUserNotFound
	}
	return nil
}
