package model

import (
	"errors"
	"time"
)

// Story is temporary content: invisible once ExpiresAt has passed, in
// addition to the usual soft-delete gate.
type Story struct {
	ID        int64     `db:"id" json:"id"`
	AuthorID  int64     `db:"author_id" json:"author_id"`
	MediaURL  string    `db:"media_url" json:"media_url"`
	MediaType string    `db:"media_type" json:"media_type"`
	ExpiresAt time.Time `db:"expires_at" json:"expires_at"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	IsDeleted bool      `db:"is_deleted" json:"-"`

	ViewCount int          `db:"view_count" json:"view_count"`
	Author    *UserSummary `json:"author,omitempty"`
	IsViewed  bool         `json:"is_viewed"`
}

// StoryView records that a viewer saw a story. At most one row exists per
// (story, viewer); repeat views bump ViewedAt.
type StoryView struct {
	StoryID  int64     `db:"story_id" json:"story_id"`
	ViewerID int64     `db:"viewer_id" json:"-"`
	ViewedAt time.Time `db:"viewed_at" json:"viewed_at"`

	Viewer *UserSummary `json:"viewer,omitempty"`
}

// CreateStoryRequest is the request body for creating a story.
// DurationHours defaults to 24 when zero.
type CreateStoryRequest struct {
	MediaURL      string `json:"media_url"`
	MediaType     string `json:"media_type"`
	DurationHours int    `json:"duration_hours"`
}

const (
	StoryDefaultDuration = 24 * time.Hour
	StoryMaxDuration     = 48 * time.Hour

	StoryMediaImage = "image"
	StoryMediaVideo = "video"
)

var (
	ErrStoryNotFound  = errors.New("story not found")
	ErrNotStoryOwner  = errors.New("not the owner of this story")
	ErrStoryNoMedia   = errors.New("story media is required")
	ErrBadMediaType   = errors.New("unknown media type")
	ErrBadDuration    = errors.New("invalid story duration")
)
