package model

import (
	"errors"
	"time"

	"github.com/lib/pq"
)

// Post visibility levels.
const (
	VisibilityPublic    = "public"
	VisibilityFollowers = "followers"
	VisibilityPrivate   = "private"
)

// ValidVisibility reports whether v is a recognized visibility level.
func ValidVisibility(v string) bool {
	switch v {
	case VisibilityPublic, VisibilityFollowers, VisibilityPrivate:
		return true
	}
	return false
}

// Post represents a user's post. Content is optional when media is present.
// Tags hold the union of hashtags extracted from the content and tags the
// author supplied explicitly, case-folded and deduplicated.
type Post struct {
	ID         int64          `db:"id" json:"id"`
	AuthorID   int64          `db:"author_id" json:"author_id"`
	Content    *string        `db:"content" json:"content"`
	MediaURLs  pq.StringArray `db:"media_urls" json:"media_urls"`
	Visibility string         `db:"visibility" json:"visibility"`
	Tags       pq.StringArray `db:"tags" json:"tags"`
	CreatedAt  time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time      `db:"updated_at" json:"updated_at"`
	IsDeleted  bool           `db:"is_deleted" json:"-"`

	// Derived counters, computed by the store at read time.
	LikeCount    int `db:"like_count" json:"like_count"`
	CommentCount int `db:"comment_count" json:"comment_count"`
	ShareCount   int `db:"share_count" json:"share_count"`

	// Viewer-relative fields, absent in the table.
	Author       *UserSummary `json:"author,omitempty"`
	IsLiked      bool         `json:"is_liked"`
	IsBookmarked bool         `json:"is_bookmarked"`
}

// TagCount is one entry of the trending-hashtags aggregation.
type TagCount struct {
	Tag   string `db:"tag" json:"tag"`
	Count int    `db:"count" json:"count"`
}

// CreatePostRequest is the request body for creating a post.
type CreatePostRequest struct {
	Content    *string  `json:"content"`
	MediaURLs  []string `json:"media_urls"`
	Visibility string   `json:"visibility"`
	Tags       []string `json:"tags"`
}

// UpdatePostRequest carries the editable post fields. Nil means unchanged.
type UpdatePostRequest struct {
	Content    *string `json:"content"`
	Visibility *string `json:"visibility"`
}

const (
	MaxPostContentLength = 2200
	MaxPostMediaCount    = 10
	MaxPostTags          = 30
)

var (
	ErrPostNotFound     = errors.New("post not found")
	ErrNotPostOwner     = errors.New("not the owner of this post")
	ErrPostAccessDenied = errors.New("post is not visible to this user")
	ErrPostEmpty        = errors.New("post needs content or media")
	ErrContentTooLong   = errors.New("content too long")
	ErrTooManyMedia     = errors.New("too many media items")
	ErrBadVisibility    = errors.New("unknown visibility level")
	ErrTagEmpty         = errors.New("tag must not be empty")
)
