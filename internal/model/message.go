package model

import (
	"errors"
	"time"
)

// Message is a direct message between two users.
type Message struct {
	ID          int64     `db:"id" json:"id"`
	SenderID    int64     `db:"sender_id" json:"sender_id"`
	RecipientID int64     `db:"recipient_id" json:"recipient_id"`
	Content     string    `db:"content" json:"content"`
	IsRead      bool      `db:"is_read" json:"is_read"`
	IsEdited    bool      `db:"is_edited" json:"is_edited"`
	IsDeleted   bool      `db:"is_deleted" json:"-"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"-"`
}

// CanEdit reports whether the message is still inside its edit window at now.
func (m *Message) CanEdit(now time.Time) bool {
	return now.Sub(m.CreatedAt) <= MessageEditWindow
}

// Conversation is one row of the conversation list: the peer, the latest
// message exchanged with them, and how many of their messages are unread.
type Conversation struct {
	Peer        UserSummary `json:"peer"`
	LastMessage Message     `json:"last_message"`
	UnreadCount int         `db:"unread_count" json:"unread_count"`
}

// SendMessageRequest is the request body for sending a message.
type SendMessageRequest struct {
	RecipientID int64  `json:"recipient_id"`
	Content     string `json:"content"`
}

// EditMessageRequest is the request body for editing a message.
type EditMessageRequest struct {
	Content string `json:"content"`
}

const (
	MaxMessageLength  = 2000
	MessageEditWindow = 15 * time.Minute
)

var (
	ErrMessageNotFound   = errors.New("message not found")
	ErrNotMessageSender  = errors.New("not the sender of this message")
	ErrCannotMessageSelf = errors.New("cannot message yourself")
	ErrMessageEmpty      = errors.New("message content is required")
	ErrMessageTooLong    = errors.New("message too long")
	ErrEditWindowClosed  = errors.New("message can no longer be edited")
)
