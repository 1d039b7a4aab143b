package model

import (
	"errors"
	"time"
)

// Follow is a directed edge: follower follows following.
// The (follower_id, following_id) pair is unique at the store level; that
// constraint is the only guard against concurrent double-follow.
type Follow struct {
	FollowerID  int64     `db:"follower_id"`
	FollowingID int64     `db:"following_id"`
	CreatedAt   time.Time `db:"created_at"`
}

// Block is a directed suppression edge. Its effect is symmetric: content and
// interactions are hidden in both directions regardless of who created it.
type Block struct {
	BlockerID int64     `db:"blocker_id"`
	BlockedID int64     `db:"blocked_id"`
	CreatedAt time.Time `db:"created_at"`
}

var (
	ErrCannotFollowSelf = errors.New("cannot follow yourself")
	ErrAlreadyFollowing = errors.New("already following this user")
	ErrNotFollowing     = errors.New("not following this user")

	ErrCannotBlockSelf = errors.New("cannot block yourself")
	ErrAlreadyBlocked  = errors.New("user already blocked")
	ErrNotBlocked      = errors.New("user is not blocked")

	// ErrBlocked is returned when a block edge in either direction forbids
	// the attempted interaction.
	ErrBlocked = errors.New("interaction not allowed")
)
