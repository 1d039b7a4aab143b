package service

import (
	"context"
	"log"
	"regexp"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"socialite/internal/model"
	"socialite/internal/repository"
)

var usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_]{3,30}$`)

// UserService handles account lifecycle, profiles and user discovery.
type UserService struct {
	userRepo   repository.UserRepository
	followRepo repository.FollowRepository
	blockRepo  repository.BlockRepository
	auth       *AuthService
}

func NewUserService(
	userRepo repository.UserRepository,
	followRepo repository.FollowRepository,
	blockRepo repository.BlockRepository,
	auth *AuthService,
) *UserService {
	return &UserService{
		userRepo:   userRepo,
		followRepo: followRepo,
		blockRepo:  blockRepo,
		auth:       auth,
	}
}

// Register creates the account and hands back the stored user. Usernames
// are case-insensitive: stored lowercased, matched lowercased everywhere.
func (s *UserService) Register(ctx context.Context, req model.RegisterRequest) (*model.User, error) {
	username := strings.ToLower(strings.TrimSpace(req.Username))
	if !usernamePattern.MatchString(username) {
		return nil, model.ErrInvalidUsername
	}
	if len(req.Password) < model.MinPasswordLength {
		return nil, model.ErrPasswordTooWeak
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Username:       username,
		PasswordHashed: string(hashed),
	}
	if name := strings.TrimSpace(req.DisplayName); name != "" {
		user.DisplayName = &name
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login verifies credentials and issues a token pair. Unknown usernames
// and wrong passwords collapse into the same error so callers cannot
// probe which accounts exist.
func (s *UserService) Login(ctx context.Context, req model.LoginRequest, deviceInfo, ipAddress string) (*model.User, *model.TokenPair, error) {
	username := strings.ToLower(strings.TrimSpace(req.Username))

	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		if err == model.ErrUserNotFound {
			return nil, nil, model.ErrInvalidCredentials
		}
		return nil, nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHashed), []byte(req.Password)); err != nil {
		return nil, nil, model.ErrInvalidCredentials
	}

	pair, err := s.auth.GenerateTokenPair(ctx, user.ID, deviceInfo, ipAddress)
	if err != nil {
		return nil, nil, err
	}
	return user, pair, nil
}

// GetByID returns the active user record.
func (s *UserService) GetByID(ctx context.Context, userID int64) (*model.User, error) {
	return s.userRepo.GetByID(ctx, userID)
}

// GetProfile returns the user with derived counts and, when a viewer is
// present, the relationship flags. A viewer blocked by the profile owner
// still sees the profile shell; post listing enforcement happens elsewhere.
func (s *UserService) GetProfile(ctx context.Context, viewerID *int64, username string) (*model.Profile, error) {
	user, err := s.userRepo.GetByUsername(ctx, strings.ToLower(username))
	if err != nil {
		return nil, err
	}

	counts, err := s.userRepo.GetCounts(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	profile := &model.Profile{
		User:           *user,
		FollowerCount:  counts.Followers,
		FollowingCount: counts.Following,
		PostCount:      counts.Posts,
	}

	if viewerID != nil && *viewerID != user.ID {
		if profile.IsFollowing, err = s.followRepo.Exists(ctx, *viewerID, user.ID); err != nil {
			return nil, err
		}
		if profile.IsFollowedBy, err = s.followRepo.Exists(ctx, user.ID, *viewerID); err != nil {
			return nil, err
		}
		if profile.IsBlocked, err = s.blockRepo.Exists(ctx, *viewerID, user.ID); err != nil {
			return nil, err
		}
	}
	return profile, nil
}

func (s *UserService) UpdateProfile(ctx context.Context, userID int64, req model.UpdateProfileRequest) (*model.User, error) {
	if req.Bio != nil && len(*req.Bio) > model.MaxBioLength {
		return nil, model.ErrBioTooLong
	}
	return s.userRepo.UpdateProfile(ctx, userID, req)
}

// Search matches usernames and display names by substring.
func (s *UserService) Search(ctx context.Context, query string, limit, offset int) ([]model.UserSummary, error) {
	query = strings.TrimSpace(query)
	if len(query) < model.MinSearchLength {
		return nil, model.ErrSearchTooShort
	}
	return s.userRepo.Search(ctx, query, limit, offset)
}

// Suggestions returns active accounts the viewer does not follow yet,
// excluding blocked relationships in either direction.
func (s *UserService) Suggestions(ctx context.Context, viewerID int64, limit int) ([]model.UserSummary, error) {
	return s.userRepo.Suggestions(ctx, viewerID, limit)
}

// Deactivate soft-deletes the account, scrubs its PII and revokes every
// refresh token so no session survives the deactivation.
func (s *UserService) Deactivate(ctx context.Context, userID int64) error {
	if err := s.userRepo.Deactivate(ctx, userID); err != nil {
		return err
	}
	if err := s.auth.RevokeAllUserTokens(ctx, userID); err != nil {
		log.Printf("[UserService] Token revocation after deactivation failed: user=%d err=%v", userID, err)
	}
	return nil
}
