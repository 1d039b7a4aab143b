package model

import (
	"errors"
	"time"
)

// Notification types.
const (
	NotificationTypeLike        = "like"
	NotificationTypeComment     = "comment"
	NotificationTypeCommentLike = "comment_like"
	NotificationTypeFollow      = "follow"
	NotificationTypeMention     = "mention"
	NotificationTypeShare       = "share"
	NotificationTypeMessage     = "message"
)

// Reference types name the entity a notification points at.
const (
	ReferenceTypePost    = "post"
	ReferenceTypeComment = "comment"
	ReferenceTypeUser    = "user"
	ReferenceTypeMessage = "message"
)

// Notification is a delivered fan-out record. Rows are append-only except
// for IsRead, which only the recipient may flip.
type Notification struct {
	ID            int64     `db:"id" json:"id"`
	RecipientID   int64     `db:"recipient_id" json:"-"`
	SenderID      int64     `db:"sender_id" json:"sender_id"`
	Type          string    `db:"type" json:"type"`
	ReferenceType string    `db:"reference_type" json:"reference_type"`
	ReferenceID   int64     `db:"reference_id" json:"reference_id"`
	IsRead        bool      `db:"is_read" json:"is_read"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`

	Sender *UserSummary `json:"sender,omitempty"`
}

// NotificationInput is a candidate delivery before suppression rules run.
type NotificationInput struct {
	RecipientID   int64
	SenderID      int64
	Type          string
	ReferenceType string
	ReferenceID   int64
}

// NotificationPreferences holds per-type delivery switches for one user.
// A missing row means everything is enabled.
type NotificationPreferences struct {
	UserID       int64 `db:"user_id" json:"-"`
	Likes        bool  `db:"likes" json:"likes"`
	Comments     bool  `db:"comments" json:"comments"`
	CommentLikes bool  `db:"comment_likes" json:"comment_likes"`
	Follows      bool  `db:"follows" json:"follows"`
	Mentions     bool  `db:"mentions" json:"mentions"`
	Shares       bool  `db:"shares" json:"shares"`
	Messages     bool  `db:"messages" json:"messages"`
}

// Allows reports whether the given notification type is enabled.
// Unknown types default to enabled.
func (p *NotificationPreferences) Allows(notifType string) bool {
	switch notifType {
	case NotificationTypeLike:
		return p.Likes
	case NotificationTypeComment:
		return p.Comments
	case NotificationTypeCommentLike:
		return p.CommentLikes
	case NotificationTypeFollow:
		return p.Follows
	case NotificationTypeMention:
		return p.Mentions
	case NotificationTypeShare:
		return p.Shares
	case NotificationTypeMessage:
		return p.Messages
	}
	return true
}

// DefaultNotificationPreferences returns the all-enabled defaults.
func DefaultNotificationPreferences(userID int64) *NotificationPreferences {
	return &NotificationPreferences{
		UserID:       userID,
		Likes:        true,
		Comments:     true,
		CommentLikes: true,
		Follows:      true,
		Mentions:     true,
		Shares:       true,
		Messages:     true,
	}
}

// NotificationRetention is how long read notifications are kept before the
// maintenance cleanup removes them.
const NotificationRetention = 30 * 24 * time.Hour

var ErrNotificationNotFound = errors.New("notification not found")
