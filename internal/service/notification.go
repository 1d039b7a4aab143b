package service

import (
	"context"
	"log"
	"time"

	"socialite/internal/model"
	"socialite/internal/repository"
	"socialite/internal/textutil"
)

// NotificationService converts content actions into recipient notification
// records. Delivery is strictly best-effort: every suppression rule and
// every persistence failure ends in a log line, never in an error that
// could fail or roll back the triggering action.
type NotificationService struct {
	notifRepo repository.NotificationRepository
	prefRepo  repository.PreferenceRepository
	blockRepo repository.BlockRepository
	userRepo  repository.UserRepository
}

func NewNotificationService(
	notifRepo repository.NotificationRepository,
	prefRepo repository.PreferenceRepository,
	blockRepo repository.BlockRepository,
	userRepo repository.UserRepository,
) *NotificationService {
	return &NotificationService{
		notifRepo: notifRepo,
		prefRepo:  prefRepo,
		blockRepo: blockRepo,
		userRepo:  userRepo,
	}
}

// Deliver runs the suppression chain and persists the notification.
//
// Suppression order: self, block (either direction), recipient preference.
// A failed suppression lookup suppresses conservatively for blocks and
// delivers for preferences (missing preferences mean everything enabled).
func (s *NotificationService) Deliver(ctx context.Context, in model.NotificationInput) {
	if in.RecipientID == in.SenderID {
		return
	}

	blocked, err := s.blockRepo.ExistsBetween(ctx, in.SenderID, in.RecipientID)
	if err != nil {
		log.Printf("[NotificationService] Block check failed, suppressing: recipient=%d sender=%d err=%v",
			in.RecipientID, in.SenderID, err)
		return
	}
	if blocked {
		return
	}

	prefs, err := s.prefRepo.Get(ctx, in.RecipientID)
	if err != nil {
		log.Printf("[NotificationService] Preference check failed, delivering anyway: recipient=%d err=%v",
			in.RecipientID, err)
	}
	if prefs != nil && !prefs.Allows(in.Type) {
		return
	}

	n := &model.Notification{
		RecipientID:   in.RecipientID,
		SenderID:      in.SenderID,
		Type:          in.Type,
		ReferenceType: in.ReferenceType,
		ReferenceID:   in.ReferenceID,
	}
	if err := s.notifRepo.Insert(ctx, n); err != nil {
		log.Printf("[NotificationService] Insert failed, dropping: recipient=%d type=%s err=%v",
			in.RecipientID, in.Type, err)
	}
}

// DeliverBulk filters self and blocked candidates, then persists the
// survivors in one batch. Suppressed items are removed before the insert,
// so a batch failure is never caused by them.
func (s *NotificationService) DeliverBulk(ctx context.Context, ins []model.NotificationInput) {
	valid := make([]model.Notification, 0, len(ins))
	for _, in := range ins {
		if in.RecipientID == in.SenderID {
			continue
		}
		blocked, err := s.blockRepo.ExistsBetween(ctx, in.SenderID, in.RecipientID)
		if err != nil {
			log.Printf("[NotificationService] Bulk block check failed, suppressing item: recipient=%d err=%v",
				in.RecipientID, err)
			continue
		}
		if blocked {
			continue
		}
		valid = append(valid, model.Notification{
			RecipientID:   in.RecipientID,
			SenderID:      in.SenderID,
			Type:          in.Type,
			ReferenceType: in.ReferenceType,
			ReferenceID:   in.ReferenceID,
		})
	}

	if len(valid) == 0 {
		return
	}

	if err := s.notifRepo.InsertBatch(ctx, valid); err != nil {
		log.Printf("[NotificationService] Batch insert failed, dropping %d items: err=%v", len(valid), err)
	}
}

// FanoutMentions scans content for @handle tokens and raises one mention
// notification per resolved recipient. Repeated mentions of the same handle
// collapse to one; unknown handles are dropped silently. Delivery goes
// through DeliverBulk, so self and block suppression apply and the
// survivors land in a single batch insert.
func (s *NotificationService) FanoutMentions(ctx context.Context, actorID int64, content, referenceType string, referenceID int64) {
	handles := textutil.Mentions(content)
	if len(handles) == 0 {
		return
	}

	resolved, err := s.userRepo.ResolveUsernames(ctx, handles)
	if err != nil {
		log.Printf("[NotificationService] Mention resolution failed, dropping: actor=%d err=%v", actorID, err)
		return
	}

	ins := make([]model.NotificationInput, 0, len(handles))
	for _, handle := range handles {
		recipientID, ok := resolved[handle]
		if !ok {
			continue
		}
		ins = append(ins, model.NotificationInput{
			RecipientID:   recipientID,
			SenderID:      actorID,
			Type:          model.NotificationTypeMention,
			ReferenceType: referenceType,
			ReferenceID:   referenceID,
		})
	}
	s.DeliverBulk(ctx, ins)
}

// List returns the recipient's notifications with sender summaries attached.
func (s *NotificationService) List(ctx context.Context, recipientID int64, limit, offset int) ([]model.Notification, error) {
	notifications, err := s.notifRepo.List(ctx, recipientID, limit, offset)
	if err != nil {
		return nil, err
	}

	senderIDs := make([]int64, 0, len(notifications))
	seen := make(map[int64]struct{}, len(notifications))
	for _, n := range notifications {
		if _, ok := seen[n.SenderID]; ok {
			continue
		}
		seen[n.SenderID] = struct{}{}
		senderIDs = append(senderIDs, n.SenderID)
	}

	senders, err := s.userRepo.GetSummaries(ctx, senderIDs)
	if err != nil {
		log.Printf("[NotificationService] Sender hydration failed: recipient=%d err=%v", recipientID, err)
		return notifications, nil
	}

	for i := range notifications {
		if sender, ok := senders[notifications[i].SenderID]; ok {
			s := sender
			notifications[i].Sender = &s
		}
	}
	return notifications, nil
}

func (s *NotificationService) UnreadCount(ctx context.Context, recipientID int64) (int, error) {
	return s.notifRepo.UnreadCount(ctx, recipientID)
}

func (s *NotificationService) MarkRead(ctx context.Context, recipientID, notificationID int64) error {
	return s.notifRepo.MarkRead(ctx, recipientID, notificationID)
}

func (s *NotificationService) MarkAllRead(ctx context.Context, recipientID int64) error {
	return s.notifRepo.MarkAllRead(ctx, recipientID)
}

// GetPreferences returns the stored preferences or the all-enabled defaults.
func (s *NotificationService) GetPreferences(ctx context.Context, userID int64) (*model.NotificationPreferences, error) {
	prefs, err := s.prefRepo.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if prefs == nil {
		return model.DefaultNotificationPreferences(userID), nil
	}
	return prefs, nil
}

func (s *NotificationService) UpdatePreferences(ctx context.Context, prefs *model.NotificationPreferences) error {
	return s.prefRepo.Upsert(ctx, prefs)
}

// CleanupRead removes read notifications older than the retention window.
// Invoked by the maintenance endpoint; there is no in-process scheduler.
func (s *NotificationService) CleanupRead(ctx context.Context, retention time.Duration) (int64, error) {
	if retention <= 0 {
		retention = model.NotificationRetention
	}
	return s.notifRepo.DeleteReadBefore(ctx, time.Now().Add(-retention))
}
