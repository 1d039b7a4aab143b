package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"socialite/internal/model"
)

type messageRepository struct {
	db *sqlx.DB
}

func NewMessageRepository(db *sqlx.DB) MessageRepository {
	return &messageRepository{db: db}
}

const messageColumns = `id, sender_id, recipient_id, content, is_read, is_edited,
	is_deleted, created_at, updated_at`

func (r *messageRepository) Create(ctx context.Context, msg *model.Message) error {
	query := `
		INSERT INTO messages (sender_id, recipient_id, content)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at
	`
	err := r.db.QueryRowxContext(ctx, query,
		msg.SenderID, msg.RecipientID, msg.Content,
	).Scan(&msg.ID, &msg.CreatedAt, &msg.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert message: %w", err)
	}
	return nil
}

func (r *messageRepository) GetByID(ctx context.Context, messageID int64) (*model.Message, error) {
	var msg model.Message
	err := r.db.GetContext(ctx, &msg, `
		SELECT `+messageColumns+`
		FROM messages
		WHERE id = $1 AND is_deleted = FALSE
	`, messageID)
	if err == sql.ErrNoRows {
		return nil, model.ErrMessageNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get message: %w", err)
	}
	return &msg, nil
}

// ListConversations returns the latest message per peer with the peer's
// summary and the count of their unread messages, newest conversation first.
func (r *messageRepository) ListConversations(ctx context.Context, userID int64, limit, offset int) ([]model.Conversation, error) {
	type convRow struct {
		ID          int64     `db:"id"`
		SenderID    int64     `db:"sender_id"`
		RecipientID int64     `db:"recipient_id"`
		Content     string    `db:"content"`
		IsRead      bool      `db:"is_read"`
		IsEdited    bool      `db:"is_edited"`
		CreatedAt   time.Time `db:"created_at"`
		UpdatedAt   time.Time `db:"updated_at"`

		PeerID          int64   `db:"peer_id"`
		PeerUsername    string  `db:"peer_username"`
		PeerDisplayName *string `db:"peer_display_name"`
		PeerAvatarURL   *string `db:"peer_avatar_url"`
		UnreadCount     int     `db:"unread_count"`
	}

	rows := []convRow{}
	err := r.db.SelectContext(ctx, &rows, `
		WITH msgs AS (
			SELECT m.id, m.sender_id, m.recipient_id, m.content, m.is_read,
			       m.is_edited, m.created_at, m.updated_at,
			       CASE WHEN m.sender_id = $1 THEN m.recipient_id ELSE m.sender_id END AS peer_id
			FROM messages m
			WHERE (m.sender_id = $1 OR m.recipient_id = $1) AND m.is_deleted = FALSE
		),
		latest AS (
			SELECT DISTINCT ON (peer_id) *
			FROM msgs
			ORDER BY peer_id, created_at DESC, id DESC
		)
		SELECT l.id, l.sender_id, l.recipient_id, l.content, l.is_read,
		       l.is_edited, l.created_at, l.updated_at,
		       u.id AS peer_id, u.username AS peer_username,
		       u.display_name AS peer_display_name, u.avatar_url AS peer_avatar_url,
		       (SELECT COUNT(*) FROM messages um
		        WHERE um.sender_id = l.peer_id AND um.recipient_id = $1
		          AND um.is_read = FALSE AND um.is_deleted = FALSE) AS unread_count
		FROM latest l
		JOIN users u ON u.id = l.peer_id AND u.is_active = TRUE
		ORDER BY l.created_at DESC, l.id DESC
		LIMIT $2 OFFSET $3
	`, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list conversations: %w", err)
	}

	conversations := make([]model.Conversation, len(rows))
	for i, row := range rows {
		conversations[i] = model.Conversation{
			Peer: model.UserSummary{
				ID:          row.PeerID,
				Username:    row.PeerUsername,
				DisplayName: row.PeerDisplayName,
				AvatarURL:   row.PeerAvatarURL,
			},
			LastMessage: model.Message{
				ID:          row.ID,
				SenderID:    row.SenderID,
				RecipientID: row.RecipientID,
				Content:     row.Content,
				IsRead:      row.IsRead,
				IsEdited:    row.IsEdited,
				CreatedAt:   row.CreatedAt,
				UpdatedAt:   row.UpdatedAt,
			},
			UnreadCount: row.UnreadCount,
		}
	}
	return conversations, nil
}

func (r *messageRepository) ListThread(ctx context.Context, userID, peerID int64, limit, offset int) ([]model.Message, error) {
	messages := []model.Message{}
	err := r.db.SelectContext(ctx, &messages, `
		SELECT `+messageColumns+`
		FROM messages
		WHERE is_deleted = FALSE
		  AND ((sender_id = $1 AND recipient_id = $2)
		    OR (sender_id = $2 AND recipient_id = $1))
		ORDER BY created_at DESC, id DESC
		LIMIT $3 OFFSET $4
	`, userID, peerID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list thread: %w", err)
	}
	return messages, nil
}

func (r *messageRepository) UpdateContent(ctx context.Context, messageID, senderID int64, content string) (*model.Message, error) {
	var msg model.Message
	err := r.db.GetContext(ctx, &msg, `
		UPDATE messages
		SET content = $3, is_edited = TRUE, updated_at = NOW()
		WHERE id = $1 AND sender_id = $2 AND is_deleted = FALSE
		RETURNING `+messageColumns,
		messageID, senderID, content)
	if err == sql.ErrNoRows {
		return nil, model.ErrMessageNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("update message: %w", err)
	}
	return &msg, nil
}

func (r *messageRepository) SoftDelete(ctx context.Context, messageID, senderID int64) error {
	result, err := r.db.ExecContext(ctx, `
		UPDATE messages SET is_deleted = TRUE, updated_at = NOW()
		WHERE id = $1 AND sender_id = $2 AND is_deleted = FALSE
	`, messageID, senderID)
	if err != nil {
		return fmt.Errorf("delete message: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete message rows affected: %w", err)
	}
	if rows == 0 {
		return model.ErrMessageNotFound
	}
	return nil
}

// MarkThreadRead marks every unread message from peer to user as read.
func (r *messageRepository) MarkThreadRead(ctx context.Context, userID, peerID int64) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE messages SET is_read = TRUE, updated_at = NOW()
		WHERE recipient_id = $1 AND sender_id = $2
		  AND is_read = FALSE AND is_deleted = FALSE
	`, userID, peerID)
	if err != nil {
		return fmt.Errorf("mark thread read: %w", err)
	}
	return nil
}
