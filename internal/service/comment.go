package service

import (
	"context"
	"strings"

	"socialite/internal/model"
	"socialite/internal/repository"
)

// CommentService handles comments, replies and comment likes.
type CommentService struct {
	commentRepo    repository.CommentRepository
	postRepo       repository.PostRepository
	followRepo     repository.FollowRepository
	blockRepo      repository.BlockRepository
	userRepo       repository.UserRepository
	engagementRepo repository.EngagementRepository
	notifications  *NotificationService
}

func NewCommentService(
	commentRepo repository.CommentRepository,
	postRepo repository.PostRepository,
	followRepo repository.FollowRepository,
	blockRepo repository.BlockRepository,
	userRepo repository.UserRepository,
	engagementRepo repository.EngagementRepository,
	notifications *NotificationService,
) *CommentService {
	return &CommentService{
		commentRepo:    commentRepo,
		postRepo:       postRepo,
		followRepo:     followRepo,
		blockRepo:      blockRepo,
		userRepo:       userRepo,
		engagementRepo: engagementRepo,
		notifications:  notifications,
	}
}

// Create stores a comment or reply on a post the author may view, then
// notifies the post author and fans out mention notifications.
func (s *CommentService) Create(ctx context.Context, authorID, postID int64, req model.CreateCommentRequest) (*model.Comment, error) {
	content := strings.TrimSpace(req.Content)
	if content == "" {
		return nil, model.ErrCommentEmpty
	}
	if len(content) > model.MaxCommentLength {
		return nil, model.ErrCommentTooLong
	}

	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if err := canViewPost(ctx, s.followRepo, s.blockRepo, &authorID, post); err != nil {
		return nil, err
	}

	if req.ParentID != nil {
		parent, err := s.commentRepo.GetByID(ctx, *req.ParentID)
		if err != nil {
			return nil, err
		}
		if parent.PostID != postID {
			return nil, model.ErrParentWrongPost
		}
	}

	comment := &model.Comment{
		PostID:   postID,
		AuthorID: authorID,
		ParentID: req.ParentID,
		Content:  content,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}

	s.notifications.Deliver(ctx, model.NotificationInput{
		RecipientID:   post.AuthorID,
		SenderID:      authorID,
		Type:          model.NotificationTypeComment,
		ReferenceType: model.ReferenceTypePost,
		ReferenceID:   postID,
	})
	s.notifications.FanoutMentions(ctx, authorID, content, model.ReferenceTypeComment, comment.ID)

	return comment, nil
}

// List returns a post's comments with author summaries and, when a viewer
// is present, the liked flag. The post must be visible to the viewer.
func (s *CommentService) List(ctx context.Context, viewerID *int64, postID int64, limit, offset int) ([]model.Comment, error) {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if err := canViewPost(ctx, s.followRepo, s.blockRepo, viewerID, post); err != nil {
		return nil, err
	}

	comments, err := s.commentRepo.ListByPost(ctx, postID, limit, offset)
	if err != nil {
		return nil, err
	}

	authorIDs := make([]int64, 0, len(comments))
	seen := make(map[int64]struct{}, len(comments))
	for _, c := range comments {
		if _, ok := seen[c.AuthorID]; ok {
			continue
		}
		seen[c.AuthorID] = struct{}{}
		authorIDs = append(authorIDs, c.AuthorID)
	}
	authors, err := s.userRepo.GetSummaries(ctx, authorIDs)
	if err != nil {
		return nil, err
	}
	for i := range comments {
		if a, ok := authors[comments[i].AuthorID]; ok {
			author := a
			comments[i].Author = &author
		}
	}

	if viewerID != nil && len(comments) > 0 {
		ids := make([]int64, len(comments))
		for i, c := range comments {
			ids[i] = c.ID
		}
		liked, err := s.engagementRepo.CheckCommentLikes(ctx, *viewerID, ids)
		if err != nil {
			return nil, err
		}
		for i := range comments {
			comments[i].IsLiked = liked[comments[i].ID]
		}
	}
	return comments, nil
}

func (s *CommentService) Update(ctx context.Context, authorID, commentID int64, content string) (*model.Comment, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, model.ErrCommentEmpty
	}
	if len(content) > model.MaxCommentLength {
		return nil, model.ErrCommentTooLong
	}
	return s.commentRepo.Update(ctx, commentID, authorID, content)
}

func (s *CommentService) Delete(ctx context.Context, authorID, commentID int64) error {
	return s.commentRepo.SoftDelete(ctx, commentID, authorID)
}

// Like records a comment like and notifies the comment author.
func (s *CommentService) Like(ctx context.Context, userID, commentID int64) error {
	comment, err := s.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		return err
	}

	post, err := s.postRepo.GetByID(ctx, comment.PostID)
	if err != nil {
		return err
	}
	if err := canViewPost(ctx, s.followRepo, s.blockRepo, &userID, post); err != nil {
		return err
	}

	if err := s.engagementRepo.LikeComment(ctx, commentID, userID); err != nil {
		return err
	}

	s.notifications.Deliver(ctx, model.NotificationInput{
		RecipientID:   comment.AuthorID,
		SenderID:      userID,
		Type:          model.NotificationTypeCommentLike,
		ReferenceType: model.ReferenceTypeComment,
		ReferenceID:   commentID,
	})
	return nil
}

func (s *CommentService) Unlike(ctx context.Context, userID, commentID int64) error {
	return s.engagementRepo.UnlikeComment(ctx, commentID, userID)
}
