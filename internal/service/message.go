package service

import (
	"context"
	"strings"
	"time"

	"socialite/internal/model"
	"socialite/internal/repository"
)

// MessageService handles direct messages and the conversation list.
type MessageService struct {
	messageRepo   repository.MessageRepository
	userRepo      repository.UserRepository
	blockRepo     repository.BlockRepository
	notifications *NotificationService

	// now is swappable so the edit window is testable.
	now func() time.Time
}

func NewMessageService(
	messageRepo repository.MessageRepository,
	userRepo repository.UserRepository,
	blockRepo repository.BlockRepository,
	notifications *NotificationService,
) *MessageService {
	return &MessageService{
		messageRepo:   messageRepo,
		userRepo:      userRepo,
		blockRepo:     blockRepo,
		notifications: notifications,
		now:           time.Now,
	}
}

// Send delivers a message to an active, unblocked recipient and raises a
// message notification.
func (s *MessageService) Send(ctx context.Context, senderID int64, req model.SendMessageRequest) (*model.Message, error) {
	if req.RecipientID == senderID {
		return nil, model.ErrCannotMessageSelf
	}

	content := strings.TrimSpace(req.Content)
	if content == "" {
		return nil, model.ErrMessageEmpty
	}
	if len(content) > model.MaxMessageLength {
		return nil, model.ErrMessageTooLong
	}

	if _, err := s.userRepo.GetByID(ctx, req.RecipientID); err != nil {
		return nil, err
	}

	blocked, err := s.blockRepo.ExistsBetween(ctx, senderID, req.RecipientID)
	if err != nil {
		return nil, err
	}
	if blocked {
		return nil, model.ErrBlocked
	}

	msg := &model.Message{
		SenderID:    senderID,
		RecipientID: req.RecipientID,
		Content:     content,
	}
	if err := s.messageRepo.Create(ctx, msg); err != nil {
		return nil, err
	}

	s.notifications.Deliver(ctx, model.NotificationInput{
		RecipientID:   req.RecipientID,
		SenderID:      senderID,
		Type:          model.NotificationTypeMessage,
		ReferenceType: model.ReferenceTypeMessage,
		ReferenceID:   msg.ID,
	})
	return msg, nil
}

func (s *MessageService) Conversations(ctx context.Context, userID int64, limit, offset int) ([]model.Conversation, error) {
	return s.messageRepo.ListConversations(ctx, userID, limit, offset)
}

// Thread returns the two-party history newest first and marks the peer's
// messages as read.
func (s *MessageService) Thread(ctx context.Context, userID, peerID int64, limit, offset int) ([]model.Message, error) {
	messages, err := s.messageRepo.ListThread(ctx, userID, peerID, limit, offset)
	if err != nil {
		return nil, err
	}
	if err := s.messageRepo.MarkThreadRead(ctx, userID, peerID); err != nil {
		return nil, err
	}
	return messages, nil
}

// Edit rewrites a message's content. Only the sender may edit, and only
// within the edit window after sending.
func (s *MessageService) Edit(ctx context.Context, senderID, messageID int64, content string) (*model.Message, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, model.ErrMessageEmpty
	}
	if len(content) > model.MaxMessageLength {
		return nil, model.ErrMessageTooLong
	}

	msg, err := s.messageRepo.GetByID(ctx, messageID)
	if err != nil {
		return nil, err
	}
	if msg.SenderID != senderID {
		return nil, model.ErrNotMessageSender
	}
	if !msg.CanEdit(s.now()) {
		return nil, model.ErrEditWindowClosed
	}

	return s.messageRepo.UpdateContent(ctx, messageID, senderID, content)
}

func (s *MessageService) Delete(ctx context.Context, senderID, messageID int64) error {
	return s.messageRepo.SoftDelete(ctx, messageID, senderID)
}

func (s *MessageService) MarkThreadRead(ctx context.Context, userID, peerID int64) error {
	return s.messageRepo.MarkThreadRead(ctx, userID, peerID)
}
