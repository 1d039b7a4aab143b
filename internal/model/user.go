package model

import (
	"errors"
	"time"
)

// User represents an account in the system.
type User struct {
	ID             int64      `db:"id" json:"id"`
	Username       string     `db:"username" json:"username"`
	PasswordHashed string     `db:"password_hashed" json:"-"`
	DisplayName    *string    `db:"display_name" json:"display_name"`
	Bio            *string    `db:"bio" json:"bio"`
	AvatarURL      *string    `db:"avatar_url" json:"avatar_url"`
	IsPrivate      bool       `db:"is_private" json:"is_private"`
	IsActive       bool       `db:"is_active" json:"-"`
	CreatedAt      time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time  `db:"updated_at" json:"-"`
	DeactivatedAt  *time.Time `db:"deactivated_at" json:"-"`
}

// UserSummary is the lightweight representation embedded in posts, comments,
// notifications and follower lists.
type UserSummary struct {
	ID          int64   `db:"id" json:"id"`
	Username    string  `db:"username" json:"username"`
	DisplayName *string `db:"display_name" json:"display_name"`
	AvatarURL   *string `db:"avatar_url" json:"avatar_url"`

	IsFollowing bool `json:"is_following,omitempty"`
}

// Profile is a user plus derived counts and viewer-relative flags.
// Counts are computed from the follow and post tables, never stored.
type Profile struct {
	User
	FollowerCount  int  `json:"follower_count"`
	FollowingCount int  `json:"following_count"`
	PostCount      int  `json:"post_count"`
	IsFollowing    bool `json:"is_following"`
	IsFollowedBy   bool `json:"is_followed_by"`
	IsBlocked      bool `json:"is_blocked"`
}

// ProfileCounts holds the derived counters for a profile.
type ProfileCounts struct {
	Followers int `db:"followers"`
	Following int `db:"following"`
	Posts     int `db:"posts"`
}

// RegisterRequest represents the data needed to create an account.
type RegisterRequest struct {
	Username    string `json:"username"`
	Password    string `json:"password"`
	DisplayName string `json:"display_name"`
}

// LoginRequest represents the data needed to log in.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// UpdateProfileRequest carries the editable profile fields. Nil means
// "leave unchanged".
type UpdateProfileRequest struct {
	DisplayName *string `json:"display_name"`
	Bio         *string `json:"bio"`
	AvatarURL   *string `json:"avatar_url"`
	IsPrivate   *bool   `json:"is_private"`
}

const (
	MinUsernameLength = 3
	MaxUsernameLength = 30
	MinPasswordLength = 8
	MaxBioLength      = 500
	MinSearchLength   = 2
)

var (
	// ErrUserNotFound is returned when a user cannot be found or is inactive.
	ErrUserNotFound = errors.New("user not found")

	// ErrUsernameExists is returned when the username is already taken.
	ErrUsernameExists = errors.New("username already exists")

	// ErrInvalidCredentials is returned when login credentials are incorrect.
	ErrInvalidCredentials = errors.New("invalid credentials")

	ErrInvalidUsername = errors.New("invalid username")
	ErrPasswordTooWeak = errors.New("password too short")
	ErrBioTooLong      = errors.New("bio too long")
	ErrSearchTooShort  = errors.New("search query too short")
)
