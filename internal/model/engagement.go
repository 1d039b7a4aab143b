package model

import "errors"

// Like, bookmark and share rows are bare (subject_id, user_id) pairs with a
// uniqueness constraint. A duplicate insert is a user-visible conflict, not
// a silent no-op; the constraint is the sole guard against insert races.
var (
	ErrAlreadyLiked      = errors.New("already liked")
	ErrNotLiked          = errors.New("not liked")
	ErrAlreadyBookmarked = errors.New("already bookmarked")
	ErrNotBookmarked     = errors.New("not bookmarked")
	ErrAlreadyShared     = errors.New("already shared")
)
