package service

import (
	"context"
	"strings"

	"socialite/internal/model"
	"socialite/internal/repository"
	"socialite/internal/textutil"
)

// PostService handles post CRUD and engagement (likes, bookmarks, shares).
type PostService struct {
	postRepo       repository.PostRepository
	followRepo     repository.FollowRepository
	blockRepo      repository.BlockRepository
	userRepo       repository.UserRepository
	engagementRepo repository.EngagementRepository
	notifications  *NotificationService
}

func NewPostService(
	postRepo repository.PostRepository,
	followRepo repository.FollowRepository,
	blockRepo repository.BlockRepository,
	userRepo repository.UserRepository,
	engagementRepo repository.EngagementRepository,
	notifications *NotificationService,
) *PostService {
	return &PostService{
		postRepo:       postRepo,
		followRepo:     followRepo,
		blockRepo:      blockRepo,
		userRepo:       userRepo,
		engagementRepo: engagementRepo,
		notifications:  notifications,
	}
}

// Create validates and stores the post, then fans out mention
// notifications from its content.
func (s *PostService) Create(ctx context.Context, authorID int64, req model.CreatePostRequest) (*model.Post, error) {
	content := normalizeContent(req.Content)
	if content == nil && len(req.MediaURLs) == 0 {
		return nil, model.ErrPostEmpty
	}
	if content != nil && len(*content) > model.MaxPostContentLength {
		return nil, model.ErrContentTooLong
	}
	if len(req.MediaURLs) > model.MaxPostMediaCount {
		return nil, model.ErrTooManyMedia
	}

	visibility := req.Visibility
	if visibility == "" {
		visibility = model.VisibilityPublic
	}
	if !model.ValidVisibility(visibility) {
		return nil, model.ErrBadVisibility
	}

	tags := textutil.MergeTags(content, req.Tags)
	if len(tags) > model.MaxPostTags {
		tags = tags[:model.MaxPostTags]
	}

	post := &model.Post{
		AuthorID:   authorID,
		Content:    content,
		MediaURLs:  req.MediaURLs,
		Visibility: visibility,
		Tags:       tags,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}

	if content != nil {
		s.notifications.FanoutMentions(ctx, authorID, *content, model.ReferenceTypePost, post.ID)
	}
	return post, nil
}

// GetByID returns the post if the viewer may see it, hydrated with the
// author summary and viewer flags.
func (s *PostService) GetByID(ctx context.Context, viewerID *int64, postID int64) (*model.Post, error) {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if err := canViewPost(ctx, s.followRepo, s.blockRepo, viewerID, post); err != nil {
		return nil, err
	}
	if err := s.hydrate(ctx, viewerID, post); err != nil {
		return nil, err
	}
	return post, nil
}

// ListByUser returns a user's posts scoped to what the viewer may see:
// everything for the owner, public+followers for followers, public only
// otherwise. Blocked pairs see nothing.
func (s *PostService) ListByUser(ctx context.Context, viewerID *int64, username string, limit, offset int) ([]model.Post, error) {
	author, err := s.userRepo.GetByUsername(ctx, strings.ToLower(username))
	if err != nil {
		return nil, err
	}

	visibilities := []string{model.VisibilityPublic}
	switch {
	case viewerID != nil && *viewerID == author.ID:
		visibilities = []string{model.VisibilityPublic, model.VisibilityFollowers, model.VisibilityPrivate}
	case viewerID != nil:
		blocked, err := s.blockRepo.ExistsBetween(ctx, *viewerID, author.ID)
		if err != nil {
			return nil, err
		}
		if blocked {
			return nil, model.ErrBlocked
		}
		following, err := s.followRepo.Exists(ctx, *viewerID, author.ID)
		if err != nil {
			return nil, err
		}
		if following {
			visibilities = []string{model.VisibilityPublic, model.VisibilityFollowers}
		}
	}

	posts, err := s.postRepo.ListByAuthor(ctx, author.ID, visibilities, limit, offset)
	if err != nil {
		return nil, err
	}

	summary := model.UserSummary{
		ID:          author.ID,
		Username:    author.Username,
		DisplayName: author.DisplayName,
		AvatarURL:   author.AvatarURL,
	}
	for i := range posts {
		a := summary
		posts[i].Author = &a
	}
	if viewerID != nil {
		if err := s.attachViewerFlags(ctx, *viewerID, posts); err != nil {
			return nil, err
		}
	}
	return posts, nil
}

// ListByTag returns public posts carrying the hashtag, newest first. The
// tag is normalized the same way stored tags are: lowercased, with any
// leading # stripped.
func (s *PostService) ListByTag(ctx context.Context, viewerID *int64, tag string, limit, offset int) ([]model.Post, error) {
	tag = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(tag), "#"))
	if tag == "" {
		return nil, model.ErrTagEmpty
	}

	posts, err := s.postRepo.ListByTag(ctx, tag, limit, offset)
	if err != nil {
		return nil, err
	}

	authorIDs := make([]int64, 0, len(posts))
	seen := make(map[int64]struct{}, len(posts))
	for _, p := range posts {
		if _, ok := seen[p.AuthorID]; ok {
			continue
		}
		seen[p.AuthorID] = struct{}{}
		authorIDs = append(authorIDs, p.AuthorID)
	}
	authors, err := s.userRepo.GetSummaries(ctx, authorIDs)
	if err != nil {
		return nil, err
	}
	for i := range posts {
		if a, ok := authors[posts[i].AuthorID]; ok {
			author := a
			posts[i].Author = &author
		}
	}
	if viewerID != nil {
		if err := s.attachViewerFlags(ctx, *viewerID, posts); err != nil {
			return nil, err
		}
	}
	return posts, nil
}

// Update edits content and/or visibility. Tags are recomputed when the
// content changes so they never drift from the text.
func (s *PostService) Update(ctx context.Context, authorID, postID int64, req model.UpdatePostRequest) (*model.Post, error) {
	content := req.Content
	if content != nil {
		content = normalizeContent(content)
		if content == nil {
			return nil, model.ErrPostEmpty
		}
		if len(*content) > model.MaxPostContentLength {
			return nil, model.ErrContentTooLong
		}
	}
	if req.Visibility != nil && !model.ValidVisibility(*req.Visibility) {
		return nil, model.ErrBadVisibility
	}

	var tags []string
	if content != nil {
		tags = textutil.Hashtags(*content)
		if len(tags) > model.MaxPostTags {
			tags = tags[:model.MaxPostTags]
		}
	}

	return s.postRepo.Update(ctx, postID, authorID, content, req.Visibility, tags)
}

func (s *PostService) Delete(ctx context.Context, authorID, postID int64) error {
	return s.postRepo.SoftDelete(ctx, postID, authorID)
}

// Like records the like and notifies the post author. The post must be
// visible to the liker.
func (s *PostService) Like(ctx context.Context, userID, postID int64) error {
	post, err := s.visiblePost(ctx, userID, postID)
	if err != nil {
		return err
	}

	if err := s.engagementRepo.LikePost(ctx, postID, userID); err != nil {
		return err
	}

	s.notifications.Deliver(ctx, model.NotificationInput{
		RecipientID:   post.AuthorID,
		SenderID:      userID,
		Type:          model.NotificationTypeLike,
		ReferenceType: model.ReferenceTypePost,
		ReferenceID:   postID,
	})
	return nil
}

func (s *PostService) Unlike(ctx context.Context, userID, postID int64) error {
	return s.engagementRepo.UnlikePost(ctx, postID, userID)
}

func (s *PostService) Bookmark(ctx context.Context, userID, postID int64) error {
	if _, err := s.visiblePost(ctx, userID, postID); err != nil {
		return err
	}
	return s.engagementRepo.Bookmark(ctx, postID, userID)
}

func (s *PostService) Unbookmark(ctx context.Context, userID, postID int64) error {
	return s.engagementRepo.Unbookmark(ctx, postID, userID)
}

func (s *PostService) ListBookmarks(ctx context.Context, userID int64, limit, offset int) ([]model.Post, error) {
	posts, err := s.engagementRepo.ListBookmarkedPosts(ctx, userID, limit, offset)
	if err != nil {
		return nil, err
	}

	authorIDs := make([]int64, 0, len(posts))
	seen := make(map[int64]struct{}, len(posts))
	for _, p := range posts {
		if _, ok := seen[p.AuthorID]; ok {
			continue
		}
		seen[p.AuthorID] = struct{}{}
		authorIDs = append(authorIDs, p.AuthorID)
	}
	authors, err := s.userRepo.GetSummaries(ctx, authorIDs)
	if err != nil {
		return nil, err
	}
	for i := range posts {
		if a, ok := authors[posts[i].AuthorID]; ok {
			author := a
			posts[i].Author = &author
		}
		posts[i].IsBookmarked = true
	}
	if err := s.attachViewerLikes(ctx, userID, posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// Share records the repost edge and notifies the author. Repeat shares of
// the same post are idempotent at the store level.
func (s *PostService) Share(ctx context.Context, userID, postID int64) error {
	post, err := s.visiblePost(ctx, userID, postID)
	if err != nil {
		return err
	}

	if err := s.engagementRepo.Share(ctx, postID, userID); err != nil {
		return err
	}

	s.notifications.Deliver(ctx, model.NotificationInput{
		RecipientID:   post.AuthorID,
		SenderID:      userID,
		Type:          model.NotificationTypeShare,
		ReferenceType: model.ReferenceTypePost,
		ReferenceID:   postID,
	})
	return nil
}

func (s *PostService) ListLikers(ctx context.Context, viewerID *int64, postID int64, limit, offset int) ([]model.UserSummary, error) {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if err := canViewPost(ctx, s.followRepo, s.blockRepo, viewerID, post); err != nil {
		return nil, err
	}
	return s.engagementRepo.ListPostLikers(ctx, postID, limit, offset)
}

func (s *PostService) visiblePost(ctx context.Context, viewerID, postID int64) (*model.Post, error) {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if err := canViewPost(ctx, s.followRepo, s.blockRepo, &viewerID, post); err != nil {
		return nil, err
	}
	return post, nil
}

func (s *PostService) hydrate(ctx context.Context, viewerID *int64, post *model.Post) error {
	authors, err := s.userRepo.GetSummaries(ctx, []int64{post.AuthorID})
	if err != nil {
		return err
	}
	if a, ok := authors[post.AuthorID]; ok {
		post.Author = &a
	}
	if viewerID == nil {
		return nil
	}

	liked, err := s.engagementRepo.CheckPostLikes(ctx, *viewerID, []int64{post.ID})
	if err != nil {
		return err
	}
	bookmarked, err := s.engagementRepo.CheckBookmarks(ctx, *viewerID, []int64{post.ID})
	if err != nil {
		return err
	}
	post.IsLiked = liked[post.ID]
	post.IsBookmarked = bookmarked[post.ID]
	return nil
}

func (s *PostService) attachViewerFlags(ctx context.Context, viewerID int64, posts []model.Post) error {
	if len(posts) == 0 {
		return nil
	}
	postIDs := make([]int64, len(posts))
	for i, p := range posts {
		postIDs[i] = p.ID
	}
	liked, err := s.engagementRepo.CheckPostLikes(ctx, viewerID, postIDs)
	if err != nil {
		return err
	}
	bookmarked, err := s.engagementRepo.CheckBookmarks(ctx, viewerID, postIDs)
	if err != nil {
		return err
	}
	for i := range posts {
		posts[i].IsLiked = liked[posts[i].ID]
		posts[i].IsBookmarked = bookmarked[posts[i].ID]
	}
	return nil
}

func (s *PostService) attachViewerLikes(ctx context.Context, viewerID int64, posts []model.Post) error {
	if len(posts) == 0 {
		return nil
	}
	postIDs := make([]int64, len(posts))
	for i, p := range posts {
		postIDs[i] = p.ID
	}
	liked, err := s.engagementRepo.CheckPostLikes(ctx, viewerID, postIDs)
	if err != nil {
		return err
	}
	for i := range posts {
		posts[i].IsLiked = liked[posts[i].ID]
	}
	return nil
}

// normalizeContent trims whitespace and collapses empty strings to nil.
func normalizeContent(content *string) *string {
	if content == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*content)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
