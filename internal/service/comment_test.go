package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"socialite/internal/model"
)

func newTestCommentService(commentRepo *mockCommentRepo, postRepo *mockPostRepo, notifRepo *mockNotificationRepo) *CommentService {
	if commentRepo == nil {
		commentRepo = &mockCommentRepo{}
	}
	if postRepo == nil {
		postRepo = &mockPostRepo{
			getByIDFn: func(ctx context.Context, postID int64) (*model.Post, error) {
				return &model.Post{ID: postID, AuthorID: 2, Visibility: model.VisibilityPublic}, nil
			},
		}
	}
	if notifRepo == nil {
		notifRepo = &mockNotificationRepo{}
	}
	notifications := NewNotificationService(notifRepo, &mockPreferenceRepo{}, &mockBlockRepo{}, &mockUserRepo{})
	return NewCommentService(commentRepo, postRepo, &mockFollowRepo{}, &mockBlockRepo{}, &mockUserRepo{}, &mockEngagementRepo{}, notifications)
}

func int64Ptr(v int64) *int64 { return &v }

func TestCommentService_Create(t *testing.T) {
	tests := []struct {
		name    string
		req     model.CreateCommentRequest
		wantErr error
	}{
		{
			name: "comment created",
			req:  model.CreateCommentRequest{Content: "nice post"},
		},
		{
			name:    "empty content rejected",
			req:     model.CreateCommentRequest{Content: "   "},
			wantErr: model.ErrCommentEmpty,
		},
		{
			name:    "content too long",
			req:     model.CreateCommentRequest{Content: strings.Repeat("x", model.MaxCommentLength+1)},
			wantErr: model.ErrCommentTooLong,
		},
		{
			name: "reply to comment on same post",
			req:  model.CreateCommentRequest{Content: "agreed", ParentID: int64Ptr(5)},
		},
		{
			name:    "reply to comment on another post",
			req:     model.CreateCommentRequest{Content: "agreed", ParentID: int64Ptr(6)},
			wantErr: model.ErrParentWrongPost,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			commentRepo := &mockCommentRepo{
				getByIDFn: func(ctx context.Context, commentID int64) (*model.Comment, error) {
					// Parent 5 lives on post 1, parent 6 elsewhere.
					if commentID == 5 {
						return &model.Comment{ID: 5, PostID: 1, AuthorID: 3}, nil
					}
					return &model.Comment{ID: commentID, PostID: 99, AuthorID: 3}, nil
				},
			}
			notifRepo := &mockNotificationRepo{}
			svc := newTestCommentService(commentRepo, nil, notifRepo)

			comment, err := svc.Create(context.Background(), 1, 1, tt.req)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("error = %v, want %v", err, tt.wantErr)
				}
				if len(notifRepo.inserts) != 0 {
					t.Error("rejected comment must not notify")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if comment.PostID != 1 {
				t.Errorf("post ID = %d, want 1", comment.PostID)
			}
			// The post author gets a comment notification.
			if len(notifRepo.inserts) != 1 {
				t.Fatalf("notifications = %d, want 1", len(notifRepo.inserts))
			}
			n := notifRepo.inserts[0]
			if n.Type != model.NotificationTypeComment || n.RecipientID != 2 {
				t.Errorf("notification = %+v", n)
			}
		})
	}
}

func TestCommentService_Create_InvisiblePostDenied(t *testing.T) {
	postRepo := &mockPostRepo{
		getByIDFn: func(ctx context.Context, postID int64) (*model.Post, error) {
			return &model.Post{ID: postID, AuthorID: 2, Visibility: model.VisibilityPrivate}, nil
		},
	}
	svc := newTestCommentService(nil, postRepo, nil)

	_, err := svc.Create(context.Background(), 1, 1, model.CreateCommentRequest{Content: "hey"})
	if !errors.Is(err, model.ErrPostAccessDenied) {
		t.Errorf("error = %v, want %v", err, model.ErrPostAccessDenied)
	}
}

func TestCommentService_Like_NotifiesCommentAuthor(t *testing.T) {
	commentRepo := &mockCommentRepo{
		getByIDFn: func(ctx context.Context, commentID int64) (*model.Comment, error) {
			return &model.Comment{ID: commentID, PostID: 1, AuthorID: 3}, nil
		},
	}
	notifRepo := &mockNotificationRepo{}
	svc := newTestCommentService(commentRepo, nil, notifRepo)

	if err := svc.Like(context.Background(), 1, 7); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(notifRepo.inserts) != 1 {
		t.Fatalf("notifications = %d, want 1", len(notifRepo.inserts))
	}
	n := notifRepo.inserts[0]
	if n.Type != model.NotificationTypeCommentLike || n.RecipientID != 3 || n.ReferenceID != 7 {
		t.Errorf("notification = %+v", n)
	}
}

func TestCommentService_List_HydratesAuthors(t *testing.T) {
	commentRepo := &mockCommentRepo{
		listByPostFn: func(ctx context.Context, postID int64, limit, offset int) ([]model.Comment, error) {
			return []model.Comment{
				{ID: 1, PostID: postID, AuthorID: 3},
				{ID: 2, PostID: postID, AuthorID: 4},
				{ID: 3, PostID: postID, AuthorID: 3},
			}, nil
		},
	}
	var requested []int64
	userRepo := &mockUserRepo{
		getSummariesFn: func(ctx context.Context, ids []int64) (map[int64]model.UserSummary, error) {
			requested = ids
			out := make(map[int64]model.UserSummary, len(ids))
			for _, id := range ids {
				out[id] = model.UserSummary{ID: id}
			}
			return out, nil
		},
	}
	postRepo := &mockPostRepo{
		getByIDFn: func(ctx context.Context, postID int64) (*model.Post, error) {
			return &model.Post{ID: postID, AuthorID: 2, Visibility: model.VisibilityPublic}, nil
		},
	}
	notifications := NewNotificationService(&mockNotificationRepo{}, &mockPreferenceRepo{}, &mockBlockRepo{}, userRepo)
	svc := NewCommentService(commentRepo, postRepo, &mockFollowRepo{}, &mockBlockRepo{}, userRepo, &mockEngagementRepo{}, notifications)

	comments, err := svc.List(context.Background(), nil, 1, 20, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(requested) != 2 {
		t.Errorf("summary lookup = %v, want 2 unique author IDs", requested)
	}
	for _, c := range comments {
		if c.Author == nil || c.Author.ID != c.AuthorID {
			t.Errorf("comment %d missing author summary", c.ID)
		}
	}
}

func TestCommentService_List_SetsLikedFlag(t *testing.T) {
	commentRepo := &mockCommentRepo{
		listByPostFn: func(ctx context.Context, postID int64, limit, offset int) ([]model.Comment, error) {
			return []model.Comment{
				{ID: 1, PostID: postID, AuthorID: 3},
				{ID: 2, PostID: postID, AuthorID: 4},
			}, nil
		},
	}
	var checkedUser int64
	var checkedIDs []int64
	engagementRepo := &mockEngagementRepo{
		checkCommentLikesFn: func(ctx context.Context, userID int64, commentIDs []int64) (map[int64]bool, error) {
			checkedUser = userID
			checkedIDs = commentIDs
			return map[int64]bool{2: true}, nil
		},
	}
	postRepo := &mockPostRepo{
		getByIDFn: func(ctx context.Context, postID int64) (*model.Post, error) {
			return &model.Post{ID: postID, AuthorID: 2, Visibility: model.VisibilityPublic}, nil
		},
	}
	notifications := NewNotificationService(&mockNotificationRepo{}, &mockPreferenceRepo{}, &mockBlockRepo{}, &mockUserRepo{})
	svc := NewCommentService(commentRepo, postRepo, &mockFollowRepo{}, &mockBlockRepo{}, &mockUserRepo{}, engagementRepo, notifications)

	comments, err := svc.List(context.Background(), int64Ptr(9), 1, 20, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if checkedUser != 9 {
		t.Errorf("like check user = %d, want 9", checkedUser)
	}
	if len(checkedIDs) != 2 {
		t.Errorf("like check IDs = %v, want both comment IDs", checkedIDs)
	}
	if comments[0].IsLiked || !comments[1].IsLiked {
		t.Errorf("liked flags = %v/%v, want false/true", comments[0].IsLiked, comments[1].IsLiked)
	}
}

func TestCommentService_List_AnonymousSkipsLikeCheck(t *testing.T) {
	commentRepo := &mockCommentRepo{
		listByPostFn: func(ctx context.Context, postID int64, limit, offset int) ([]model.Comment, error) {
			return []model.Comment{{ID: 1, PostID: postID, AuthorID: 3}}, nil
		},
	}
	engagementRepo := &mockEngagementRepo{
		checkCommentLikesFn: func(ctx context.Context, userID int64, commentIDs []int64) (map[int64]bool, error) {
			t.Error("anonymous list must not check likes")
			return nil, nil
		},
	}
	notifications := NewNotificationService(&mockNotificationRepo{}, &mockPreferenceRepo{}, &mockBlockRepo{}, &mockUserRepo{})
	postRepo := &mockPostRepo{
		getByIDFn: func(ctx context.Context, postID int64) (*model.Post, error) {
			return &model.Post{ID: postID, AuthorID: 2, Visibility: model.VisibilityPublic}, nil
		},
	}
	svc := NewCommentService(commentRepo, postRepo, &mockFollowRepo{}, &mockBlockRepo{}, &mockUserRepo{}, engagementRepo, notifications)

	if _, err := svc.List(context.Background(), nil, 1, 20, 0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
