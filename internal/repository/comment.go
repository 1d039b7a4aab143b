package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"socialite/internal/model"
)

type commentRepository struct {
	db *sqlx.DB
}

func NewCommentRepository(db *sqlx.DB) CommentRepository {
	return &commentRepository{db: db}
}

const commentColumns = `
	c.id, c.post_id, c.author_id, c.parent_id, c.content,
	c.created_at, c.updated_at,
	(SELECT COUNT(*) FROM comment_likes cl WHERE cl.comment_id = c.id) AS like_count`

func (r *commentRepository) Create(ctx context.Context, comment *model.Comment) error {
	query := `
		INSERT INTO comments (post_id, author_id, parent_id, content)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`
	err := r.db.QueryRowxContext(ctx, query,
		comment.PostID, comment.AuthorID, comment.ParentID, comment.Content,
	).Scan(&comment.ID, &comment.CreatedAt, &comment.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert comment: %w", err)
	}
	return nil
}

func (r *commentRepository) GetByID(ctx context.Context, commentID int64) (*model.Comment, error) {
	var comment model.Comment
	err := r.db.GetContext(ctx, &comment, `
		SELECT `+commentColumns+`
		FROM comments c
		WHERE c.id = $1 AND c.is_deleted = FALSE
	`, commentID)
	if err == sql.ErrNoRows {
		return nil, model.ErrCommentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get comment: %w", err)
	}
	return &comment, nil
}

func (r *commentRepository) ListByPost(ctx context.Context, postID int64, limit, offset int) ([]model.Comment, error) {
	comments := []model.Comment{}
	err := r.db.SelectContext(ctx, &comments, `
		SELECT `+commentColumns+`
		FROM comments c
		WHERE c.post_id = $1 AND c.is_deleted = FALSE
		ORDER BY c.created_at ASC, c.id ASC
		LIMIT $2 OFFSET $3
	`, postID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	return comments, nil
}

func (r *commentRepository) Update(ctx context.Context, commentID, authorID int64, content string) (*model.Comment, error) {
	var comment model.Comment
	err := r.db.GetContext(ctx, &comment, `
		UPDATE comments c SET content = $3, updated_at = NOW()
		WHERE c.id = $1 AND c.author_id = $2 AND c.is_deleted = FALSE
		RETURNING `+commentColumns,
		commentID, authorID, content)
	if err == sql.ErrNoRows {
		return nil, r.notFoundOrNotOwner(ctx, commentID)
	}
	if err != nil {
		return nil, fmt.Errorf("update comment: %w", err)
	}
	return &comment, nil
}

func (r *commentRepository) SoftDelete(ctx context.Context, commentID, authorID int64) error {
	result, err := r.db.ExecContext(ctx, `
		UPDATE comments SET is_deleted = TRUE, updated_at = NOW()
		WHERE id = $1 AND author_id = $2 AND is_deleted = FALSE
	`, commentID, authorID)
	if err != nil {
		return fmt.Errorf("delete comment: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete comment rows affected: %w", err)
	}
	if rows == 0 {
		return r.notFoundOrNotOwner(ctx, commentID)
	}
	return nil
}

func (r *commentRepository) notFoundOrNotOwner(ctx context.Context, commentID int64) error {
	var exists bool
	if err := r.db.GetContext(ctx, &exists,
		`SELECT EXISTS(SELECT 1 FROM comments WHERE id = $1 AND is_deleted = FALSE)`, commentID); err != nil {
		return fmt.Errorf("check comment exists: %w", err)
	}
	if exists {
		return model.ErrNotCommentOwner
	}
	return model.ErrCommentNotFound
}
