package service

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"socialite/internal/model"
	"socialite/internal/repository"
)

// FollowService manages the follow graph and the block list. Blocking is
// the one write that spans two tables, so the service owns the transaction.
type FollowService struct {
	followRepo    repository.FollowRepository
	blockRepo     repository.BlockRepository
	userRepo      repository.UserRepository
	notifications *NotificationService

	// inTx runs fn inside a transaction, committing on nil. Swappable in
	// tests, like MessageService.now.
	inTx func(ctx context.Context, fn func(tx *sqlx.Tx) error) error
}

func NewFollowService(
	db *sqlx.DB,
	followRepo repository.FollowRepository,
	blockRepo repository.BlockRepository,
	userRepo repository.UserRepository,
	notifications *NotificationService,
) *FollowService {
	return &FollowService{
		followRepo:    followRepo,
		blockRepo:     blockRepo,
		userRepo:      userRepo,
		notifications: notifications,
		inTx: func(ctx context.Context, fn func(tx *sqlx.Tx) error) error {
			tx, err := db.BeginTxx(ctx, nil)
			if err != nil {
				return fmt.Errorf("begin tx: %w", err)
			}
			defer tx.Rollback()
			if err := fn(tx); err != nil {
				return err
			}
			if err := tx.Commit(); err != nil {
				return fmt.Errorf("commit tx: %w", err)
			}
			return nil
		},
	}
}

// Follow creates the directed edge follower -> target. Blocked pairs, in
// either direction, cannot follow each other.
func (s *FollowService) Follow(ctx context.Context, followerID, targetID int64) error {
	if followerID == targetID {
		return model.ErrCannotFollowSelf
	}

	if _, err := s.userRepo.GetByID(ctx, targetID); err != nil {
		return err
	}

	blocked, err := s.blockRepo.ExistsBetween(ctx, followerID, targetID)
	if err != nil {
		return err
	}
	if blocked {
		return model.ErrBlocked
	}

	if err := s.followRepo.Create(ctx, followerID, targetID); err != nil {
		return err
	}

	s.notifications.Deliver(ctx, model.NotificationInput{
		RecipientID:   targetID,
		SenderID:      followerID,
		Type:          model.NotificationTypeFollow,
		ReferenceType: model.ReferenceTypeUser,
		ReferenceID:   followerID,
	})
	return nil
}

func (s *FollowService) Unfollow(ctx context.Context, followerID, targetID int64) error {
	return s.followRepo.Delete(ctx, followerID, targetID)
}

func (s *FollowService) ListFollowers(ctx context.Context, userID int64, limit, offset int) ([]model.UserSummary, error) {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	return s.followRepo.ListFollowers(ctx, userID, limit, offset)
}

func (s *FollowService) ListFollowing(ctx context.Context, userID int64, limit, offset int) ([]model.UserSummary, error) {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	return s.followRepo.ListFollowing(ctx, userID, limit, offset)
}

// Block records the block and severs the follow relationship in both
// directions inside one transaction, so a block can never leave a
// dangling follow edge.
func (s *FollowService) Block(ctx context.Context, blockerID, targetID int64) error {
	if blockerID == targetID {
		return model.ErrCannotBlockSelf
	}

	if _, err := s.userRepo.GetByID(ctx, targetID); err != nil {
		return err
	}

	return s.inTx(ctx, func(tx *sqlx.Tx) error {
		if err := s.blockRepo.Create(ctx, tx, blockerID, targetID); err != nil {
			return err
		}
		return s.followRepo.DeletePair(ctx, tx, blockerID, targetID)
	})
}

func (s *FollowService) Unblock(ctx context.Context, blockerID, targetID int64) error {
	return s.blockRepo.Delete(ctx, blockerID, targetID)
}

func (s *FollowService) ListBlocked(ctx context.Context, blockerID int64, limit, offset int) ([]model.UserSummary, error) {
	return s.blockRepo.ListBlocked(ctx, blockerID, limit, offset)
}
