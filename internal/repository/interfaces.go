package repository

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"

	"socialite/internal/model"
)

type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	GetByID(ctx context.Context, id int64) (*model.User, error)
	GetByUsername(ctx context.Context, username string) (*model.User, error)
	GetSummaries(ctx context.Context, ids []int64) (map[int64]model.UserSummary, error)
	// ResolveUsernames maps existing, active usernames (case-folded) to ids.
	// Unknown handles are simply absent from the result.
	ResolveUsernames(ctx context.Context, usernames []string) (map[string]int64, error)
	GetCounts(ctx context.Context, userID int64) (*model.ProfileCounts, error)
	Search(ctx context.Context, query string, limit, offset int) ([]model.UserSummary, error)
	Suggestions(ctx context.Context, viewerID int64, limit int) ([]model.UserSummary, error)
	UpdateProfile(ctx context.Context, userID int64, req model.UpdateProfileRequest) (*model.User, error)
	// Deactivate soft-deletes the account and scrubs PII in one statement.
	Deactivate(ctx context.Context, userID int64) error
}

type RefreshTokenRepository interface {
	Create(ctx context.Context, token *model.RefreshToken) error
	FindByTokenHash(ctx context.Context, tokenHash string) (*model.RefreshToken, error)
	Revoke(ctx context.Context, id string, replacedBy *string) error
	RevokeAllForUser(ctx context.Context, userID int64) error
	DeleteExpired(ctx context.Context, olderThan time.Duration) (int64, error)
}

type FollowRepository interface {
	Create(ctx context.Context, followerID, followingID int64) error
	Delete(ctx context.Context, followerID, followingID int64) error
	// DeletePair removes both directed edges between a and b inside tx.
	// Block creation uses it so the unfollow rides the same transaction.
	DeletePair(ctx context.Context, tx *sqlx.Tx, a, b int64) error
	Exists(ctx context.Context, followerID, followingID int64) (bool, error)
	ListFollowers(ctx context.Context, userID int64, limit, offset int) ([]model.UserSummary, error)
	ListFollowing(ctx context.Context, userID int64, limit, offset int) ([]model.UserSummary, error)
	FollowingIDs(ctx context.Context, userID int64) ([]int64, error)
}

type BlockRepository interface {
	Create(ctx context.Context, tx *sqlx.Tx, blockerID, blockedID int64) error
	Delete(ctx context.Context, blockerID, blockedID int64) error
	// ExistsBetween reports a block edge in either direction.
	ExistsBetween(ctx context.Context, a, b int64) (bool, error)
	Exists(ctx context.Context, blockerID, blockedID int64) (bool, error)
	ListBlocked(ctx context.Context, blockerID int64, limit, offset int) ([]model.UserSummary, error)
}

type PostRepository interface {
	Create(ctx context.Context, post *model.Post) error
	GetByID(ctx context.Context, postID int64) (*model.Post, error)
	// ListByAuthor returns the author's not-deleted posts restricted to the
	// given visibility levels, newest first with id as tie-break.
	ListByAuthor(ctx context.Context, authorID int64, visibilities []string, limit, offset int) ([]model.Post, error)
	// ListByTag returns public not-deleted posts carrying the (lowercased) tag.
	ListByTag(ctx context.Context, tag string, limit, offset int) ([]model.Post, error)
	Update(ctx context.Context, postID, authorID int64, content *string, visibility *string, tags []string) (*model.Post, error)
	SoftDelete(ctx context.Context, postID, authorID int64) error
}

// FeedRepository owns the composed timeline queries, including the
// server-side aggregate and its capability probe.
type FeedRepository interface {
	// HasAggregate probes for the get_home_feed server-side function.
	HasAggregate(ctx context.Context) (bool, error)
	// AggregateHomeFeed delegates ranking and merging to the store function.
	AggregateHomeFeed(ctx context.Context, viewerID int64, limit, offset int) ([]model.Post, error)
	// FallbackHomeFeed composes own + followed authors' posts with the full
	// visibility and block filter, chronological only.
	FallbackHomeFeed(ctx context.Context, viewerID int64, limit, offset int) ([]model.Post, error)
	// Explore lists public posts by popularity then recency. viewerID is nil
	// for anonymous callers; when present, blocked relationships are excluded.
	Explore(ctx context.Context, viewerID *int64, limit, offset int) ([]model.Post, error)
	// TrendingTags aggregates tag frequency over recent public posts.
	TrendingTags(ctx context.Context, since time.Time, limit int) ([]model.TagCount, error)
}

type CommentRepository interface {
	Create(ctx context.Context, comment *model.Comment) error
	GetByID(ctx context.Context, commentID int64) (*model.Comment, error)
	ListByPost(ctx context.Context, postID int64, limit, offset int) ([]model.Comment, error)
	Update(ctx context.Context, commentID, authorID int64, content string) (*model.Comment, error)
	SoftDelete(ctx context.Context, commentID, authorID int64) error
}

type EngagementRepository interface {
	LikePost(ctx context.Context, postID, userID int64) error
	UnlikePost(ctx context.Context, postID, userID int64) error
	LikeComment(ctx context.Context, commentID, userID int64) error
	UnlikeComment(ctx context.Context, commentID, userID int64) error
	Bookmark(ctx context.Context, postID, userID int64) error
	Unbookmark(ctx context.Context, postID, userID int64) error
	Share(ctx context.Context, postID, userID int64) error
	ListPostLikers(ctx context.Context, postID int64, limit, offset int) ([]model.UserSummary, error)
	ListBookmarkedPosts(ctx context.Context, userID int64, limit, offset int) ([]model.Post, error)
	CheckPostLikes(ctx context.Context, userID int64, postIDs []int64) (map[int64]bool, error)
	CheckCommentLikes(ctx context.Context, userID int64, commentIDs []int64) (map[int64]bool, error)
	CheckBookmarks(ctx context.Context, userID int64, postIDs []int64) (map[int64]bool, error)
}

type StoryRepository interface {
	Create(ctx context.Context, story *model.Story) error
	// GetByID returns only live stories: not deleted, not expired.
	GetByID(ctx context.Context, storyID int64) (*model.Story, error)
	ListActiveByAuthors(ctx context.Context, authorIDs []int64) ([]model.Story, error)
	// RecordView upserts the (story, viewer) row; repeat views refresh
	// viewed_at instead of inserting duplicates.
	RecordView(ctx context.Context, storyID, viewerID int64) error
	CheckViews(ctx context.Context, viewerID int64, storyIDs []int64) (map[int64]bool, error)
	ListViewers(ctx context.Context, storyID int64, limit, offset int) ([]model.StoryView, error)
	SoftDelete(ctx context.Context, storyID, authorID int64) error
}

type MessageRepository interface {
	Create(ctx context.Context, msg *model.Message) error
	GetByID(ctx context.Context, messageID int64) (*model.Message, error)
	ListConversations(ctx context.Context, userID int64, limit, offset int) ([]model.Conversation, error)
	ListThread(ctx context.Context, userID, peerID int64, limit, offset int) ([]model.Message, error)
	UpdateContent(ctx context.Context, messageID, senderID int64, content string) (*model.Message, error)
	SoftDelete(ctx context.Context, messageID, senderID int64) error
	MarkThreadRead(ctx context.Context, userID, peerID int64) error
}

type NotificationRepository interface {
	Insert(ctx context.Context, n *model.Notification) error
	InsertBatch(ctx context.Context, ns []model.Notification) error
	List(ctx context.Context, recipientID int64, limit, offset int) ([]model.Notification, error)
	UnreadCount(ctx context.Context, recipientID int64) (int, error)
	MarkRead(ctx context.Context, recipientID, notificationID int64) error
	MarkAllRead(ctx context.Context, recipientID int64) error
	// DeleteReadBefore removes read notifications created before cutoff.
	DeleteReadBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

type PreferenceRepository interface {
	// Get returns nil (not an error) when the user has no preferences row,
	// which means every notification type is enabled.
	Get(ctx context.Context, userID int64) (*model.NotificationPreferences, error)
	Upsert(ctx context.Context, prefs *model.NotificationPreferences) error
}
