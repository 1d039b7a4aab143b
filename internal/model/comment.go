package model

import (
	"errors"
	"time"
)

// Comment is a top-level comment (ParentID nil) or a reply. A reply's parent
// must belong to the same post.
type Comment struct {
	ID        int64     `db:"id" json:"id"`
	PostID    int64     `db:"post_id" json:"post_id"`
	AuthorID  int64     `db:"author_id" json:"author_id"`
	ParentID  *int64    `db:"parent_id" json:"parent_id,omitempty"`
	Content   string    `db:"content" json:"content"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
	IsDeleted bool      `db:"is_deleted" json:"-"`

	LikeCount int          `db:"like_count" json:"like_count"`
	Author    *UserSummary `json:"author,omitempty"`
	IsLiked   bool         `json:"is_liked"`
}

// CreateCommentRequest is the request body for creating a comment.
type CreateCommentRequest struct {
	Content  string `json:"content"`
	ParentID *int64 `json:"parent_id"`
}

const MaxCommentLength = 1000

var (
	ErrCommentNotFound  = errors.New("comment not found")
	ErrNotCommentOwner  = errors.New("not the owner of this comment")
	ErrCommentEmpty     = errors.New("comment content is required")
	ErrCommentTooLong   = errors.New("comment too long")
	ErrParentWrongPost  = errors.New("parent comment belongs to a different post")
)
