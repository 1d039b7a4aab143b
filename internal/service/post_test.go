package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"socialite/internal/model"
)

func newTestPostService(postRepo *mockPostRepo, followRepo *mockFollowRepo, blockRepo *mockBlockRepo, userRepo *mockUserRepo, engagementRepo *mockEngagementRepo, notifRepo *mockNotificationRepo) *PostService {
	if postRepo == nil {
		postRepo = &mockPostRepo{}
	}
	if followRepo == nil {
		followRepo = &mockFollowRepo{}
	}
	if blockRepo == nil {
		blockRepo = &mockBlockRepo{}
	}
	if userRepo == nil {
		userRepo = &mockUserRepo{}
	}
	if engagementRepo == nil {
		engagementRepo = &mockEngagementRepo{}
	}
	if notifRepo == nil {
		notifRepo = &mockNotificationRepo{}
	}
	notifications := NewNotificationService(notifRepo, &mockPreferenceRepo{}, blockRepo, userRepo)
	return NewPostService(postRepo, followRepo, blockRepo, userRepo, engagementRepo, notifications)
}

func strPtr(s string) *string { return &s }

func TestPostService_Create_Validation(t *testing.T) {
	tests := []struct {
		name    string
		req     model.CreatePostRequest
		wantErr error
	}{
		{
			name:    "empty post rejected",
			req:     model.CreatePostRequest{},
			wantErr: model.ErrPostEmpty,
		},
		{
			name:    "whitespace content alone rejected",
			req:     model.CreatePostRequest{Content: strPtr("   ")},
			wantErr: model.ErrPostEmpty,
		},
		{
			name: "media without content accepted",
			req:  model.CreatePostRequest{MediaURLs: []string{"https://cdn.example/a.jpg"}},
		},
		{
			name:    "content too long",
			req:     model.CreatePostRequest{Content: strPtr(strings.Repeat("x", model.MaxPostContentLength+1))},
			wantErr: model.ErrContentTooLong,
		},
		{
			name: "too many media",
			req: model.CreatePostRequest{
				MediaURLs: make([]string, model.MaxPostMediaCount+1),
			},
			wantErr: model.ErrTooManyMedia,
		},
		{
			name:    "unknown visibility",
			req:     model.CreatePostRequest{Content: strPtr("hello"), Visibility: "friends"},
			wantErr: model.ErrBadVisibility,
		},
		{
			name: "visibility defaults to public",
			req:  model.CreatePostRequest{Content: strPtr("hello")},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			postRepo := &mockPostRepo{}
			svc := newTestPostService(postRepo, nil, nil, nil, nil, nil)

			post, err := svc.Create(context.Background(), 1, tt.req)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if post.Visibility != model.VisibilityPublic && tt.req.Visibility == "" {
				t.Errorf("visibility = %q, want public default", post.Visibility)
			}
		})
	}
}

func TestPostService_Create_MergesTags(t *testing.T) {
	postRepo := &mockPostRepo{}
	svc := newTestPostService(postRepo, nil, nil, nil, nil, nil)

	post, err := svc.Create(context.Background(), 1, model.CreatePostRequest{
		Content: strPtr("shipping #GoLang today #golang"),
		Tags:    []string{"#Backend", "golang"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got := map[string]bool{}
	for _, tag := range post.Tags {
		got[tag] = true
	}
	if len(post.Tags) != 2 || !got["golang"] || !got["backend"] {
		t.Errorf("tags = %v, want [golang backend] deduplicated and lowercased", post.Tags)
	}
}

func TestPostService_Create_FansOutMentions(t *testing.T) {
	notifRepo := &mockNotificationRepo{}
	userRepo := &mockUserRepo{
		resolveUsernamesFn: func(ctx context.Context, usernames []string) (map[string]int64, error) {
			return map[string]int64{"alice": 5}, nil
		},
	}
	svc := newTestPostService(nil, nil, nil, userRepo, nil, notifRepo)

	post, err := svc.Create(context.Background(), 1, model.CreatePostRequest{
		Content: strPtr("shoutout to @alice"),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(notifRepo.inserts) != 1 {
		t.Fatalf("notifications = %d, want 1", len(notifRepo.inserts))
	}
	n := notifRepo.inserts[0]
	if n.Type != model.NotificationTypeMention || n.RecipientID != 5 || n.ReferenceID != post.ID {
		t.Errorf("notification = %+v", n)
	}
}

func TestPostService_GetByID_Visibility(t *testing.T) {
	author := int64(2)
	follower := int64(3)
	stranger := int64(4)

	tests := []struct {
		name       string
		visibility string
		viewer     *int64
		wantErr    error
	}{
		{name: "public anonymous ok", visibility: model.VisibilityPublic, viewer: nil},
		{name: "public stranger ok", visibility: model.VisibilityPublic, viewer: &stranger},
		{name: "followers anonymous denied", visibility: model.VisibilityFollowers, viewer: nil, wantErr: model.ErrPostAccessDenied},
		{name: "followers stranger denied", visibility: model.VisibilityFollowers, viewer: &stranger, wantErr: model.ErrPostAccessDenied},
		{name: "followers follower ok", visibility: model.VisibilityFollowers, viewer: &follower},
		{name: "private follower denied", visibility: model.VisibilityPrivate, viewer: &follower, wantErr: model.ErrPostAccessDenied},
		{name: "private author ok", visibility: model.VisibilityPrivate, viewer: &author},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			postRepo := &mockPostRepo{
				getByIDFn: func(ctx context.Context, postID int64) (*model.Post, error) {
					return &model.Post{ID: postID, AuthorID: author, Visibility: tt.visibility}, nil
				},
			}
			followRepo := &mockFollowRepo{
				existsFn: func(ctx context.Context, followerID, followingID int64) (bool, error) {
					return followerID == follower && followingID == author, nil
				},
			}
			svc := newTestPostService(postRepo, followRepo, nil, nil, nil, nil)

			_, err := svc.GetByID(context.Background(), tt.viewer, 1)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("error = %v, want %v", err, tt.wantErr)
				}
			} else if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestPostService_GetByID_BlockedViewerDenied(t *testing.T) {
	postRepo := &mockPostRepo{
		getByIDFn: func(ctx context.Context, postID int64) (*model.Post, error) {
			return &model.Post{ID: postID, AuthorID: 2, Visibility: model.VisibilityPublic}, nil
		},
	}
	blockRepo := &mockBlockRepo{
		existsBetweenFn: func(ctx context.Context, a, b int64) (bool, error) {
			return true, nil
		},
	}
	svc := newTestPostService(postRepo, nil, blockRepo, nil, nil, nil)

	viewerID := int64(9)
	_, err := svc.GetByID(context.Background(), &viewerID, 1)
	if !errors.Is(err, model.ErrPostAccessDenied) {
		t.Errorf("error = %v, want %v", err, model.ErrPostAccessDenied)
	}
}

func TestPostService_Like_DuplicateConflicts(t *testing.T) {
	postRepo := &mockPostRepo{
		getByIDFn: func(ctx context.Context, postID int64) (*model.Post, error) {
			return &model.Post{ID: postID, AuthorID: 2, Visibility: model.VisibilityPublic}, nil
		},
	}
	engagementRepo := &mockEngagementRepo{
		likePostFn: func(ctx context.Context, postID, userID int64) error {
			return model.ErrAlreadyLiked
		},
	}
	notifRepo := &mockNotificationRepo{}
	svc := newTestPostService(postRepo, nil, nil, nil, engagementRepo, notifRepo)

	err := svc.Like(context.Background(), 1, 10)
	if !errors.Is(err, model.ErrAlreadyLiked) {
		t.Errorf("error = %v, want %v", err, model.ErrAlreadyLiked)
	}
	if len(notifRepo.inserts) != 0 {
		t.Error("duplicate like must not notify")
	}
}

func TestPostService_Like_NotifiesAuthor(t *testing.T) {
	postRepo := &mockPostRepo{
		getByIDFn: func(ctx context.Context, postID int64) (*model.Post, error) {
			return &model.Post{ID: postID, AuthorID: 2, Visibility: model.VisibilityPublic}, nil
		},
	}
	notifRepo := &mockNotificationRepo{}
	svc := newTestPostService(postRepo, nil, nil, nil, nil, notifRepo)

	if err := svc.Like(context.Background(), 1, 10); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(notifRepo.inserts) != 1 {
		t.Fatalf("notifications = %d, want 1", len(notifRepo.inserts))
	}
	n := notifRepo.inserts[0]
	if n.Type != model.NotificationTypeLike || n.RecipientID != 2 || n.SenderID != 1 {
		t.Errorf("notification = %+v", n)
	}
}

func TestPostService_ListByUser_VisibilityScope(t *testing.T) {
	author := &model.User{ID: 2, Username: "alice", IsActive: true}
	owner := int64(2)
	follower := int64(3)
	stranger := int64(4)

	tests := []struct {
		name       string
		viewer     *int64
		following  bool
		wantLevels int
	}{
		{name: "owner sees all", viewer: &owner, wantLevels: 3},
		{name: "follower sees public+followers", viewer: &follower, following: true, wantLevels: 2},
		{name: "stranger sees public", viewer: &stranger, wantLevels: 1},
		{name: "anonymous sees public", viewer: nil, wantLevels: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotLevels []string
			postRepo := &mockPostRepo{
				listByAuthorFn: func(ctx context.Context, authorID int64, visibilities []string, limit, offset int) ([]model.Post, error) {
					gotLevels = visibilities
					return nil, nil
				},
			}
			followRepo := &mockFollowRepo{
				existsFn: func(ctx context.Context, followerID, followingID int64) (bool, error) {
					return tt.following, nil
				},
			}
			userRepo := &mockUserRepo{
				getByUsernameFn: func(ctx context.Context, username string) (*model.User, error) {
					return author, nil
				},
			}
			svc := newTestPostService(postRepo, followRepo, nil, userRepo, nil, nil)

			if _, err := svc.ListByUser(context.Background(), tt.viewer, "alice", 20, 0); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(gotLevels) != tt.wantLevels {
				t.Errorf("visibility levels = %v, want %d", gotLevels, tt.wantLevels)
			}
		})
	}
}

func TestPostService_ListByUser_BlockedViewer(t *testing.T) {
	userRepo := &mockUserRepo{
		getByUsernameFn: func(ctx context.Context, username string) (*model.User, error) {
			return &model.User{ID: 2, Username: "alice", IsActive: true}, nil
		},
	}
	blockRepo := &mockBlockRepo{
		existsBetweenFn: func(ctx context.Context, a, b int64) (bool, error) {
			return true, nil
		},
	}
	svc := newTestPostService(nil, nil, blockRepo, userRepo, nil, nil)

	viewerID := int64(9)
	_, err := svc.ListByUser(context.Background(), &viewerID, "alice", 20, 0)
	if !errors.Is(err, model.ErrBlocked) {
		t.Errorf("error = %v, want %v", err, model.ErrBlocked)
	}
}

func TestPostService_ListByTag_NormalizesTag(t *testing.T) {
	var queriedTag string
	postRepo := &mockPostRepo{
		listByTagFn: func(ctx context.Context, tag string, limit, offset int) ([]model.Post, error) {
			queriedTag = tag
			return []model.Post{{ID: 1, AuthorID: 3, Visibility: model.VisibilityPublic}}, nil
		},
	}
	userRepo := &mockUserRepo{
		getSummariesFn: func(ctx context.Context, ids []int64) (map[int64]model.UserSummary, error) {
			out := make(map[int64]model.UserSummary, len(ids))
			for _, id := range ids {
				out[id] = model.UserSummary{ID: id, Username: "author"}
			}
			return out, nil
		},
	}
	engagementRepo := &mockEngagementRepo{
		checkPostLikesFn: func(ctx context.Context, userID int64, postIDs []int64) (map[int64]bool, error) {
			return map[int64]bool{1: true}, nil
		},
	}
	svc := newTestPostService(postRepo, nil, nil, userRepo, engagementRepo, nil)

	viewerID := int64(9)
	posts, err := svc.ListByTag(context.Background(), &viewerID, "  #GoLang ", 20, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if queriedTag != "golang" {
		t.Errorf("queried tag = %q, want %q", queriedTag, "golang")
	}
	if len(posts) != 1 {
		t.Fatalf("posts = %d, want 1", len(posts))
	}
	if posts[0].Author == nil || posts[0].Author.ID != 3 {
		t.Error("post missing author summary")
	}
	if !posts[0].IsLiked {
		t.Error("viewer like flag not attached")
	}
}

func TestPostService_ListByTag_EmptyTagRejected(t *testing.T) {
	svc := newTestPostService(nil, nil, nil, nil, nil, nil)

	for _, tag := range []string{"", "  ", "#"} {
		if _, err := svc.ListByTag(context.Background(), nil, tag, 20, 0); !errors.Is(err, model.ErrTagEmpty) {
			t.Errorf("tag %q: error = %v, want %v", tag, err, model.ErrTagEmpty)
		}
	}
}
