package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"socialite/internal/model"
)

type postRepository struct {
	db *sqlx.DB
}

func NewPostRepository(db *sqlx.DB) PostRepository {
	return &postRepository{db: db}
}

// postColumns selects a post with its derived counters. Counts come from the
// engagement tables at read time; nothing is denormalized.
const postColumns = `
	p.id, p.author_id, p.content, p.media_urls, p.visibility, p.tags,
	p.created_at, p.updated_at,
	(SELECT COUNT(*) FROM post_likes pl WHERE pl.post_id = p.id) AS like_count,
	(SELECT COUNT(*) FROM comments c WHERE c.post_id = p.id AND c.is_deleted = FALSE) AS comment_count,
	(SELECT COUNT(*) FROM shares s WHERE s.post_id = p.id) AS share_count`

func (r *postRepository) Create(ctx context.Context, post *model.Post) error {
	query := `
		INSERT INTO posts (author_id, content, media_urls, visibility, tags)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`
	err := r.db.QueryRowxContext(ctx, query,
		post.AuthorID, post.Content, post.MediaURLs, post.Visibility, post.Tags,
	).Scan(&post.ID, &post.CreatedAt, &post.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert post: %w", err)
	}
	return nil
}

func (r *postRepository) GetByID(ctx context.Context, postID int64) (*model.Post, error) {
	var post model.Post
	err := r.db.GetContext(ctx, &post, `
		SELECT `+postColumns+`
		FROM posts p
		WHERE p.id = $1 AND p.is_deleted = FALSE
	`, postID)
	if err == sql.ErrNoRows {
		return nil, model.ErrPostNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get post: %w", err)
	}
	return &post, nil
}

func (r *postRepository) ListByAuthor(ctx context.Context, authorID int64, visibilities []string, limit, offset int) ([]model.Post, error) {
	if len(visibilities) == 0 {
		return []model.Post{}, nil
	}

	posts := []model.Post{}
	err := r.db.SelectContext(ctx, &posts, `
		SELECT `+postColumns+`
		FROM posts p
		WHERE p.author_id = $1
		  AND p.is_deleted = FALSE
		  AND p.visibility = ANY($2)
		ORDER BY p.created_at DESC, p.id DESC
		LIMIT $3 OFFSET $4
	`, authorID, pq.Array(visibilities), limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list posts by author: %w", err)
	}
	return posts, nil
}

// ListByTag returns public posts carrying the tag, newest first. Tags are
// stored lowercased, so the caller normalizes before querying.
func (r *postRepository) ListByTag(ctx context.Context, tag string, limit, offset int) ([]model.Post, error) {
	posts := []model.Post{}
	err := r.db.SelectContext(ctx, &posts, `
		SELECT `+postColumns+`
		FROM posts p
		WHERE p.visibility = 'public'
		  AND p.is_deleted = FALSE
		  AND p.tags @> ARRAY[$1]::text[]
		ORDER BY p.created_at DESC, p.id DESC
		LIMIT $2 OFFSET $3
	`, tag, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list posts by tag: %w", err)
	}
	return posts, nil
}

// Update edits a post in place. Ownership is part of the WHERE clause, so a
// non-owner gets the same "no rows" answer as a missing post and the caller
// distinguishes the two afterwards.
func (r *postRepository) Update(ctx context.Context, postID, authorID int64, content *string, visibility *string, tags []string) (*model.Post, error) {
	var tagsArg interface{}
	if tags != nil {
		tagsArg = pq.Array(tags)
	}

	var post model.Post
	err := r.db.GetContext(ctx, &post, `
		UPDATE posts p SET
			content    = COALESCE($3, p.content),
			visibility = COALESCE($4, p.visibility),
			tags       = COALESCE($5, p.tags),
			updated_at = NOW()
		WHERE p.id = $1 AND p.author_id = $2 AND p.is_deleted = FALSE
		RETURNING `+postColumns,
		postID, authorID, content, visibility, tagsArg)
	if err == sql.ErrNoRows {
		return nil, r.notFoundOrNotOwner(ctx, postID)
	}
	if err != nil {
		return nil, fmt.Errorf("update post: %w", err)
	}
	return &post, nil
}

func (r *postRepository) SoftDelete(ctx context.Context, postID, authorID int64) error {
	result, err := r.db.ExecContext(ctx, `
		UPDATE posts SET is_deleted = TRUE, updated_at = NOW()
		WHERE id = $1 AND author_id = $2 AND is_deleted = FALSE
	`, postID, authorID)
	if err != nil {
		return fmt.Errorf("delete post: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete post rows affected: %w", err)
	}
	if rows == 0 {
		return r.notFoundOrNotOwner(ctx, postID)
	}
	return nil
}

// notFoundOrNotOwner disambiguates a zero-row write: the post either does
// not exist (404) or belongs to someone else (403).
func (r *postRepository) notFoundOrNotOwner(ctx context.Context, postID int64) error {
	var exists bool
	if err := r.db.GetContext(ctx, &exists,
		`SELECT EXISTS(SELECT 1 FROM posts WHERE id = $1 AND is_deleted = FALSE)`, postID); err != nil {
		return fmt.Errorf("check post exists: %w", err)
	}
	if exists {
		return model.ErrNotPostOwner
	}
	return model.ErrPostNotFound
}
