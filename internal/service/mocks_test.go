package service

// Function-field mocks for the repository interfaces. Each test assigns
// only the behaviors it cares about; unset functions return zero values
// or not-found errors.

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"

	"socialite/internal/model"
)

type mockUserRepo struct {
	createFn           func(ctx context.Context, user *model.User) error
	getByIDFn          func(ctx context.Context, id int64) (*model.User, error)
	getByUsernameFn    func(ctx context.Context, username string) (*model.User, error)
	getSummariesFn     func(ctx context.Context, ids []int64) (map[int64]model.UserSummary, error)
	resolveUsernamesFn func(ctx context.Context, usernames []string) (map[string]int64, error)
	getCountsFn        func(ctx context.Context, userID int64) (*model.ProfileCounts, error)
	searchFn           func(ctx context.Context, query string, limit, offset int) ([]model.UserSummary, error)
	suggestionsFn      func(ctx context.Context, viewerID int64, limit int) ([]model.UserSummary, error)
	updateProfileFn    func(ctx context.Context, userID int64, req model.UpdateProfileRequest) (*model.User, error)
	deactivateFn       func(ctx context.Context, userID int64) error

	createCalls []*model.User
}

func (m *mockUserRepo) Create(ctx context.Context, user *model.User) error {
	m.createCalls = append(m.createCalls, user)
	if m.createFn != nil {
		return m.createFn(ctx, user)
	}
	return nil
}

func (m *mockUserRepo) GetByID(ctx context.Context, id int64) (*model.User, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, model.ErrUserNotFound
}

func (m *mockUserRepo) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	if m.getByUsernameFn != nil {
		return m.getByUsernameFn(ctx, username)
	}
	return nil, model.ErrUserNotFound
}

func (m *mockUserRepo) GetSummaries(ctx context.Context, ids []int64) (map[int64]model.UserSummary, error) {
	if m.getSummariesFn != nil {
		return m.getSummariesFn(ctx, ids)
	}
	return map[int64]model.UserSummary{}, nil
}

func (m *mockUserRepo) ResolveUsernames(ctx context.Context, usernames []string) (map[string]int64, error) {
	if m.resolveUsernamesFn != nil {
		return m.resolveUsernamesFn(ctx, usernames)
	}
	return map[string]int64{}, nil
}

func (m *mockUserRepo) GetCounts(ctx context.Context, userID int64) (*model.ProfileCounts, error) {
	if m.getCountsFn != nil {
		return m.getCountsFn(ctx, userID)
	}
	return &model.ProfileCounts{}, nil
}

func (m *mockUserRepo) Search(ctx context.Context, query string, limit, offset int) ([]model.UserSummary, error) {
	if m.searchFn != nil {
		return m.searchFn(ctx, query, limit, offset)
	}
	return nil, nil
}

func (m *mockUserRepo) Suggestions(ctx context.Context, viewerID int64, limit int) ([]model.UserSummary, error) {
	if m.suggestionsFn != nil {
		return m.suggestionsFn(ctx, viewerID, limit)
	}
	return nil, nil
}

func (m *mockUserRepo) UpdateProfile(ctx context.Context, userID int64, req model.UpdateProfileRequest) (*model.User, error) {
	if m.updateProfileFn != nil {
		return m.updateProfileFn(ctx, userID, req)
	}
	return nil, model.ErrUserNotFound
}

func (m *mockUserRepo) Deactivate(ctx context.Context, userID int64) error {
	if m.deactivateFn != nil {
		return m.deactivateFn(ctx, userID)
	}
	return nil
}

type mockFollowRepo struct {
	createFn        func(ctx context.Context, followerID, followingID int64) error
	deleteFn        func(ctx context.Context, followerID, followingID int64) error
	deletePairFn    func(ctx context.Context, tx *sqlx.Tx, a, b int64) error
	existsFn        func(ctx context.Context, followerID, followingID int64) (bool, error)
	listFollowersFn func(ctx context.Context, userID int64, limit, offset int) ([]model.UserSummary, error)
	listFollowingFn func(ctx context.Context, userID int64, limit, offset int) ([]model.UserSummary, error)
	followingIDsFn  func(ctx context.Context, userID int64) ([]int64, error)
}

func (m *mockFollowRepo) Create(ctx context.Context, followerID, followingID int64) error {
	if m.createFn != nil {
		return m.createFn(ctx, followerID, followingID)
	}
	return nil
}

func (m *mockFollowRepo) Delete(ctx context.Context, followerID, followingID int64) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, followerID, followingID)
	}
	return nil
}

func (m *mockFollowRepo) DeletePair(ctx context.Context, tx *sqlx.Tx, a, b int64) error {
	if m.deletePairFn != nil {
		return m.deletePairFn(ctx, tx, a, b)
	}
	return nil
}

func (m *mockFollowRepo) Exists(ctx context.Context, followerID, followingID int64) (bool, error) {
	if m.existsFn != nil {
		return m.existsFn(ctx, followerID, followingID)
	}
	return false, nil
}

func (m *mockFollowRepo) ListFollowers(ctx context.Context, userID int64, limit, offset int) ([]model.UserSummary, error) {
	if m.listFollowersFn != nil {
		return m.listFollowersFn(ctx, userID, limit, offset)
	}
	return nil, nil
}

func (m *mockFollowRepo) ListFollowing(ctx context.Context, userID int64, limit, offset int) ([]model.UserSummary, error) {
	if m.listFollowingFn != nil {
		return m.listFollowingFn(ctx, userID, limit, offset)
	}
	return nil, nil
}

func (m *mockFollowRepo) FollowingIDs(ctx context.Context, userID int64) ([]int64, error) {
	if m.followingIDsFn != nil {
		return m.followingIDsFn(ctx, userID)
	}
	return nil, nil
}

type mockBlockRepo struct {
	createFn        func(ctx context.Context, tx *sqlx.Tx, blockerID, blockedID int64) error
	deleteFn        func(ctx context.Context, blockerID, blockedID int64) error
	existsBetweenFn func(ctx context.Context, a, b int64) (bool, error)
	existsFn        func(ctx context.Context, blockerID, blockedID int64) (bool, error)
	listBlockedFn   func(ctx context.Context, blockerID int64, limit, offset int) ([]model.UserSummary, error)
}

func (m *mockBlockRepo) Create(ctx context.Context, tx *sqlx.Tx, blockerID, blockedID int64) error {
	if m.createFn != nil {
		return m.createFn(ctx, tx, blockerID, blockedID)
	}
	return nil
}

func (m *mockBlockRepo) Delete(ctx context.Context, blockerID, blockedID int64) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, blockerID, blockedID)
	}
	return nil
}

func (m *mockBlockRepo) ExistsBetween(ctx context.Context, a, b int64) (bool, error) {
	if m.existsBetweenFn != nil {
		return m.existsBetweenFn(ctx, a, b)
	}
	return false, nil
}

func (m *mockBlockRepo) Exists(ctx context.Context, blockerID, blockedID int64) (bool, error) {
	if m.existsFn != nil {
		return m.existsFn(ctx, blockerID, blockedID)
	}
	return false, nil
}

func (m *mockBlockRepo) ListBlocked(ctx context.Context, blockerID int64, limit, offset int) ([]model.UserSummary, error) {
	if m.listBlockedFn != nil {
		return m.listBlockedFn(ctx, blockerID, limit, offset)
	}
	return nil, nil
}

type mockPostRepo struct {
	createFn       func(ctx context.Context, post *model.Post) error
	getByIDFn      func(ctx context.Context, postID int64) (*model.Post, error)
	listByAuthorFn func(ctx context.Context, authorID int64, visibilities []string, limit, offset int) ([]model.Post, error)
	listByTagFn    func(ctx context.Context, tag string, limit, offset int) ([]model.Post, error)
	updateFn       func(ctx context.Context, postID, authorID int64, content *string, visibility *string, tags []string) (*model.Post, error)
	softDeleteFn   func(ctx context.Context, postID, authorID int64) error

	createCalls []*model.Post
}

func (m *mockPostRepo) Create(ctx context.Context, post *model.Post) error {
	m.createCalls = append(m.createCalls, post)
	if m.createFn != nil {
		return m.createFn(ctx, post)
	}
	post.ID = int64(len(m.createCalls))
	return nil
}

func (m *mockPostRepo) GetByID(ctx context.Context, postID int64) (*model.Post, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, postID)
	}
	return nil, model.ErrPostNotFound
}

func (m *mockPostRepo) ListByAuthor(ctx context.Context, authorID int64, visibilities []string, limit, offset int) ([]model.Post, error) {
	if m.listByAuthorFn != nil {
		return m.listByAuthorFn(ctx, authorID, visibilities, limit, offset)
	}
	return nil, nil
}

func (m *mockPostRepo) ListByTag(ctx context.Context, tag string, limit, offset int) ([]model.Post, error) {
	if m.listByTagFn != nil {
		return m.listByTagFn(ctx, tag, limit, offset)
	}
	return nil, nil
}

func (m *mockPostRepo) Update(ctx context.Context, postID, authorID int64, content *string, visibility *string, tags []string) (*model.Post, error) {
	if m.updateFn != nil {
		return m.updateFn(ctx, postID, authorID, content, visibility, tags)
	}
	return nil, model.ErrPostNotFound
}

func (m *mockPostRepo) SoftDelete(ctx context.Context, postID, authorID int64) error {
	if m.softDeleteFn != nil {
		return m.softDeleteFn(ctx, postID, authorID)
	}
	return nil
}

type mockFeedRepo struct {
	hasAggregateFn      func(ctx context.Context) (bool, error)
	aggregateHomeFeedFn func(ctx context.Context, viewerID int64, limit, offset int) ([]model.Post, error)
	fallbackHomeFeedFn  func(ctx context.Context, viewerID int64, limit, offset int) ([]model.Post, error)
	exploreFn           func(ctx context.Context, viewerID *int64, limit, offset int) ([]model.Post, error)
	trendingTagsFn      func(ctx context.Context, since time.Time, limit int) ([]model.TagCount, error)
}

func (m *mockFeedRepo) HasAggregate(ctx context.Context) (bool, error) {
	if m.hasAggregateFn != nil {
		return m.hasAggregateFn(ctx)
	}
	return false, nil
}

func (m *mockFeedRepo) AggregateHomeFeed(ctx context.Context, viewerID int64, limit, offset int) ([]model.Post, error) {
	if m.aggregateHomeFeedFn != nil {
		return m.aggregateHomeFeedFn(ctx, viewerID, limit, offset)
	}
	return nil, nil
}

func (m *mockFeedRepo) FallbackHomeFeed(ctx context.Context, viewerID int64, limit, offset int) ([]model.Post, error) {
	if m.fallbackHomeFeedFn != nil {
		return m.fallbackHomeFeedFn(ctx, viewerID, limit, offset)
	}
	return nil, nil
}

func (m *mockFeedRepo) Explore(ctx context.Context, viewerID *int64, limit, offset int) ([]model.Post, error) {
	if m.exploreFn != nil {
		return m.exploreFn(ctx, viewerID, limit, offset)
	}
	return nil, nil
}

func (m *mockFeedRepo) TrendingTags(ctx context.Context, since time.Time, limit int) ([]model.TagCount, error) {
	if m.trendingTagsFn != nil {
		return m.trendingTagsFn(ctx, since, limit)
	}
	return nil, nil
}

type mockEngagementRepo struct {
	likePostFn            func(ctx context.Context, postID, userID int64) error
	unlikePostFn          func(ctx context.Context, postID, userID int64) error
	likeCommentFn         func(ctx context.Context, commentID, userID int64) error
	unlikeCommentFn       func(ctx context.Context, commentID, userID int64) error
	bookmarkFn            func(ctx context.Context, postID, userID int64) error
	unbookmarkFn          func(ctx context.Context, postID, userID int64) error
	shareFn               func(ctx context.Context, postID, userID int64) error
	listPostLikersFn      func(ctx context.Context, postID int64, limit, offset int) ([]model.UserSummary, error)
	listBookmarkedPostsFn func(ctx context.Context, userID int64, limit, offset int) ([]model.Post, error)
	checkPostLikesFn      func(ctx context.Context, userID int64, postIDs []int64) (map[int64]bool, error)
	checkCommentLikesFn   func(ctx context.Context, userID int64, commentIDs []int64) (map[int64]bool, error)
	checkBookmarksFn      func(ctx context.Context, userID int64, postIDs []int64) (map[int64]bool, error)
}

func (m *mockEngagementRepo) LikePost(ctx context.Context, postID, userID int64) error {
	if m.likePostFn != nil {
		return m.likePostFn(ctx, postID, userID)
	}
	return nil
}

func (m *mockEngagementRepo) UnlikePost(ctx context.Context, postID, userID int64) error {
	if m.unlikePostFn != nil {
		return m.unlikePostFn(ctx, postID, userID)
	}
	return nil
}

func (m *mockEngagementRepo) LikeComment(ctx context.Context, commentID, userID int64) error {
	if m.likeCommentFn != nil {
		return m.likeCommentFn(ctx, commentID, userID)
	}
	return nil
}

func (m *mockEngagementRepo) UnlikeComment(ctx context.Context, commentID, userID int64) error {
	if m.unlikeCommentFn != nil {
		return m.unlikeCommentFn(ctx, commentID, userID)
	}
	return nil
}

func (m *mockEngagementRepo) Bookmark(ctx context.Context, postID, userID int64) error {
	if m.bookmarkFn != nil {
		return m.bookmarkFn(ctx, postID, userID)
	}
	return nil
}

func (m *mockEngagementRepo) Unbookmark(ctx context.Context, postID, userID int64) error {
	if m.unbookmarkFn != nil {
		return m.unbookmarkFn(ctx, postID, userID)
	}
	return nil
}

func (m *mockEngagementRepo) Share(ctx context.Context, postID, userID int64) error {
	if m.shareFn != nil {
		return m.shareFn(ctx, postID, userID)
	}
	return nil
}

func (m *mockEngagementRepo) ListPostLikers(ctx context.Context, postID int64, limit, offset int) ([]model.UserSummary, error) {
	if m.listPostLikersFn != nil {
		return m.listPostLikersFn(ctx, postID, limit, offset)
	}
	return nil, nil
}

func (m *mockEngagementRepo) ListBookmarkedPosts(ctx context.Context, userID int64, limit, offset int) ([]model.Post, error) {
	if m.listBookmarkedPostsFn != nil {
		return m.listBookmarkedPostsFn(ctx, userID, limit, offset)
	}
	return nil, nil
}

func (m *mockEngagementRepo) CheckPostLikes(ctx context.Context, userID int64, postIDs []int64) (map[int64]bool, error) {
	if m.checkPostLikesFn != nil {
		return m.checkPostLikesFn(ctx, userID, postIDs)
	}
	return map[int64]bool{}, nil
}

func (m *mockEngagementRepo) CheckCommentLikes(ctx context.Context, userID int64, commentIDs []int64) (map[int64]bool, error) {
	if m.checkCommentLikesFn != nil {
		return m.checkCommentLikesFn(ctx, userID, commentIDs)
	}
	return map[int64]bool{}, nil
}

func (m *mockEngagementRepo) CheckBookmarks(ctx context.Context, userID int64, postIDs []int64) (map[int64]bool, error) {
	if m.checkBookmarksFn != nil {
		return m.checkBookmarksFn(ctx, userID, postIDs)
	}
	return map[int64]bool{}, nil
}

type mockNotificationRepo struct {
	insertFn           func(ctx context.Context, n *model.Notification) error
	insertBatchFn      func(ctx context.Context, ns []model.Notification) error
	listFn             func(ctx context.Context, recipientID int64, limit, offset int) ([]model.Notification, error)
	unreadCountFn      func(ctx context.Context, recipientID int64) (int, error)
	markReadFn         func(ctx context.Context, recipientID, notificationID int64) error
	markAllReadFn      func(ctx context.Context, recipientID int64) error
	deleteReadBeforeFn func(ctx context.Context, cutoff time.Time) (int64, error)

	inserts []*model.Notification
	batches [][]model.Notification
}

func (m *mockNotificationRepo) Insert(ctx context.Context, n *model.Notification) error {
	m.inserts = append(m.inserts, n)
	if m.insertFn != nil {
		return m.insertFn(ctx, n)
	}
	return nil
}

func (m *mockNotificationRepo) InsertBatch(ctx context.Context, ns []model.Notification) error {
	m.batches = append(m.batches, ns)
	if m.insertBatchFn != nil {
		return m.insertBatchFn(ctx, ns)
	}
	return nil
}

func (m *mockNotificationRepo) List(ctx context.Context, recipientID int64, limit, offset int) ([]model.Notification, error) {
	if m.listFn != nil {
		return m.listFn(ctx, recipientID, limit, offset)
	}
	return nil, nil
}

func (m *mockNotificationRepo) UnreadCount(ctx context.Context, recipientID int64) (int, error) {
	if m.unreadCountFn != nil {
		return m.unreadCountFn(ctx, recipientID)
	}
	return 0, nil
}

func (m *mockNotificationRepo) MarkRead(ctx context.Context, recipientID, notificationID int64) error {
	if m.markReadFn != nil {
		return m.markReadFn(ctx, recipientID, notificationID)
	}
	return nil
}

func (m *mockNotificationRepo) MarkAllRead(ctx context.Context, recipientID int64) error {
	if m.markAllReadFn != nil {
		return m.markAllReadFn(ctx, recipientID)
	}
	return nil
}

func (m *mockNotificationRepo) DeleteReadBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	if m.deleteReadBeforeFn != nil {
		return m.deleteReadBeforeFn(ctx, cutoff)
	}
	return 0, nil
}

type mockPreferenceRepo struct {
	getFn    func(ctx context.Context, userID int64) (*model.NotificationPreferences, error)
	upsertFn func(ctx context.Context, prefs *model.NotificationPreferences) error
}

func (m *mockPreferenceRepo) Get(ctx context.Context, userID int64) (*model.NotificationPreferences, error) {
	if m.getFn != nil {
		return m.getFn(ctx, userID)
	}
	return nil, nil
}

func (m *mockPreferenceRepo) Upsert(ctx context.Context, prefs *model.NotificationPreferences) error {
	if m.upsertFn != nil {
		return m.upsertFn(ctx, prefs)
	}
	return nil
}

type mockCommentRepo struct {
	createFn     func(ctx context.Context, comment *model.Comment) error
	getByIDFn    func(ctx context.Context, commentID int64) (*model.Comment, error)
	listByPostFn func(ctx context.Context, postID int64, limit, offset int) ([]model.Comment, error)
	updateFn     func(ctx context.Context, commentID, authorID int64, content string) (*model.Comment, error)
	softDeleteFn func(ctx context.Context, commentID, authorID int64) error

	createCalls []*model.Comment
}

func (m *mockCommentRepo) Create(ctx context.Context, comment *model.Comment) error {
	m.createCalls = append(m.createCalls, comment)
	if m.createFn != nil {
		return m.createFn(ctx, comment)
	}
	comment.ID = int64(len(m.createCalls))
	return nil
}

func (m *mockCommentRepo) GetByID(ctx context.Context, commentID int64) (*model.Comment, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, commentID)
	}
	return nil, model.ErrCommentNotFound
}

func (m *mockCommentRepo) ListByPost(ctx context.Context, postID int64, limit, offset int) ([]model.Comment, error) {
	if m.listByPostFn != nil {
		return m.listByPostFn(ctx, postID, limit, offset)
	}
	return nil, nil
}

func (m *mockCommentRepo) Update(ctx context.Context, commentID, authorID int64, content string) (*model.Comment, error) {
	if m.updateFn != nil {
		return m.updateFn(ctx, commentID, authorID, content)
	}
	return nil, model.ErrCommentNotFound
}

func (m *mockCommentRepo) SoftDelete(ctx context.Context, commentID, authorID int64) error {
	if m.softDeleteFn != nil {
		return m.softDeleteFn(ctx, commentID, authorID)
	}
	return nil
}

type mockMessageRepo struct {
	createFn            func(ctx context.Context, msg *model.Message) error
	getByIDFn           func(ctx context.Context, messageID int64) (*model.Message, error)
	listConversationsFn func(ctx context.Context, userID int64, limit, offset int) ([]model.Conversation, error)
	listThreadFn        func(ctx context.Context, userID, peerID int64, limit, offset int) ([]model.Message, error)
	updateContentFn     func(ctx context.Context, messageID, senderID int64, content string) (*model.Message, error)
	softDeleteFn        func(ctx context.Context, messageID, senderID int64) error
	markThreadReadFn    func(ctx context.Context, userID, peerID int64) error
}

func (m *mockMessageRepo) Create(ctx context.Context, msg *model.Message) error {
	if m.createFn != nil {
		return m.createFn(ctx, msg)
	}
	msg.ID = 1
	return nil
}

func (m *mockMessageRepo) GetByID(ctx context.Context, messageID int64) (*model.Message, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, messageID)
	}
	return nil, model.ErrMessageNotFound
}

func (m *mockMessageRepo) ListConversations(ctx context.Context, userID int64, limit, offset int) ([]model.Conversation, error) {
	if m.listConversationsFn != nil {
		return m.listConversationsFn(ctx, userID, limit, offset)
	}
	return nil, nil
}

func (m *mockMessageRepo) ListThread(ctx context.Context, userID, peerID int64, limit, offset int) ([]model.Message, error) {
	if m.listThreadFn != nil {
		return m.listThreadFn(ctx, userID, peerID, limit, offset)
	}
	return nil, nil
}

func (m *mockMessageRepo) UpdateContent(ctx context.Context, messageID, senderID int64, content string) (*model.Message, error) {
	if m.updateContentFn != nil {
		return m.updateContentFn(ctx, messageID, senderID, content)
	}
	return nil, model.ErrMessageNotFound
}

func (m *mockMessageRepo) SoftDelete(ctx context.Context, messageID, senderID int64) error {
	if m.softDeleteFn != nil {
		return m.softDeleteFn(ctx, messageID, senderID)
	}
	return nil
}

func (m *mockMessageRepo) MarkThreadRead(ctx context.Context, userID, peerID int64) error {
	if m.markThreadReadFn != nil {
		return m.markThreadReadFn(ctx, userID, peerID)
	}
	return nil
}

type mockStoryRepo struct {
	createFn              func(ctx context.Context, story *model.Story) error
	getByIDFn             func(ctx context.Context, storyID int64) (*model.Story, error)
	listActiveByAuthorsFn func(ctx context.Context, authorIDs []int64) ([]model.Story, error)
	recordViewFn          func(ctx context.Context, storyID, viewerID int64) error
	checkViewsFn          func(ctx context.Context, viewerID int64, storyIDs []int64) (map[int64]bool, error)
	listViewersFn         func(ctx context.Context, storyID int64, limit, offset int) ([]model.StoryView, error)
	softDeleteFn          func(ctx context.Context, storyID, authorID int64) error

	recordViewCalls [][2]int64
}

func (m *mockStoryRepo) Create(ctx context.Context, story *model.Story) error {
	if m.createFn != nil {
		return m.createFn(ctx, story)
	}
	story.ID = 1
	return nil
}

func (m *mockStoryRepo) GetByID(ctx context.Context, storyID int64) (*model.Story, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, storyID)
	}
	return nil, model.ErrStoryNotFound
}

func (m *mockStoryRepo) ListActiveByAuthors(ctx context.Context, authorIDs []int64) ([]model.Story, error) {
	if m.listActiveByAuthorsFn != nil {
		return m.listActiveByAuthorsFn(ctx, authorIDs)
	}
	return nil, nil
}

func (m *mockStoryRepo) RecordView(ctx context.Context, storyID, viewerID int64) error {
	m.recordViewCalls = append(m.recordViewCalls, [2]int64{storyID, viewerID})
	if m.recordViewFn != nil {
		return m.recordViewFn(ctx, storyID, viewerID)
	}
	return nil
}

func (m *mockStoryRepo) CheckViews(ctx context.Context, viewerID int64, storyIDs []int64) (map[int64]bool, error) {
	if m.checkViewsFn != nil {
		return m.checkViewsFn(ctx, viewerID, storyIDs)
	}
	return map[int64]bool{}, nil
}

func (m *mockStoryRepo) ListViewers(ctx context.Context, storyID int64, limit, offset int) ([]model.StoryView, error) {
	if m.listViewersFn != nil {
		return m.listViewersFn(ctx, storyID, limit, offset)
	}
	return nil, nil
}

func (m *mockStoryRepo) SoftDelete(ctx context.Context, storyID, authorID int64) error {
	if m.softDeleteFn != nil {
		return m.softDeleteFn(ctx, storyID, authorID)
	}
	return nil
}

type mockRefreshTokenRepo struct {
	createFn          func(ctx context.Context, token *model.RefreshToken) error
	findByTokenHashFn func(ctx context.Context, tokenHash string) (*model.RefreshToken, error)
	revokeFn          func(ctx context.Context, id string, replacedBy *string) error
	revokeAllFn       func(ctx context.Context, userID int64) error
	deleteExpiredFn   func(ctx context.Context, olderThan time.Duration) (int64, error)

	revokeAllCalls []int64
}

func (m *mockRefreshTokenRepo) Create(ctx context.Context, token *model.RefreshToken) error {
	if m.createFn != nil {
		return m.createFn(ctx, token)
	}
	return nil
}

func (m *mockRefreshTokenRepo) FindByTokenHash(ctx context.Context, tokenHash string) (*model.RefreshToken, error) {
	if m.findByTokenHashFn != nil {
		return m.findByTokenHashFn(ctx, tokenHash)
	}
	return nil, model.ErrRefreshTokenNotFound
}

func (m *mockRefreshTokenRepo) Revoke(ctx context.Context, id string, replacedBy *string) error {
	if m.revokeFn != nil {
		return m.revokeFn(ctx, id, replacedBy)
	}
	return nil
}

func (m *mockRefreshTokenRepo) RevokeAllForUser(ctx context.Context, userID int64) error {
	m.revokeAllCalls = append(m.revokeAllCalls, userID)
	if m.revokeAllFn != nil {
		return m.revokeAllFn(ctx, userID)
	}
	return nil
}

func (m *mockRefreshTokenRepo) DeleteExpired(ctx context.Context, olderThan time.Duration) (int64, error) {
	if m.deleteExpiredFn != nil {
		return m.deleteExpiredFn(ctx, olderThan)
	}
	return 0, nil
}
