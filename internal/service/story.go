package service

import (
	"context"
	"time"

	"socialite/internal/model"
	"socialite/internal/repository"
)

// StoryService handles temporary content: creation, the story feed, view
// tracking and the author-only viewer list. Expiry is enforced by the
// store queries; there is no sweeper.
type StoryService struct {
	storyRepo  repository.StoryRepository
	followRepo repository.FollowRepository
	userRepo   repository.UserRepository
}

func NewStoryService(
	storyRepo repository.StoryRepository,
	followRepo repository.FollowRepository,
	userRepo repository.UserRepository,
) *StoryService {
	return &StoryService{
		storyRepo:  storyRepo,
		followRepo: followRepo,
		userRepo:   userRepo,
	}
}

// Create stores a story expiring after the requested duration, default 24h,
// at most 48h.
func (s *StoryService) Create(ctx context.Context, authorID int64, req model.CreateStoryRequest) (*model.Story, error) {
	if req.MediaURL == "" {
		return nil, model.ErrStoryNoMedia
	}
	if req.MediaType != model.StoryMediaImage && req.MediaType != model.StoryMediaVideo {
		return nil, model.ErrBadMediaType
	}

	duration := model.StoryDefaultDuration
	if req.DurationHours != 0 {
		duration = time.Duration(req.DurationHours) * time.Hour
	}
	if duration <= 0 || duration > model.StoryMaxDuration {
		return nil, model.ErrBadDuration
	}

	story := &model.Story{
		AuthorID:  authorID,
		MediaURL:  req.MediaURL,
		MediaType: req.MediaType,
		ExpiresAt: time.Now().Add(duration),
	}
	if err := s.storyRepo.Create(ctx, story); err != nil {
		return nil, err
	}
	return story, nil
}

// Feed returns the live stories of the viewer and everyone they follow,
// with author summaries and the viewer's seen flag attached.
func (s *StoryService) Feed(ctx context.Context, viewerID int64) ([]model.Story, error) {
	followed, err := s.followRepo.FollowingIDs(ctx, viewerID)
	if err != nil {
		return nil, err
	}
	authorIDs := append(followed, viewerID)

	stories, err := s.storyRepo.ListActiveByAuthors(ctx, authorIDs)
	if err != nil {
		return nil, err
	}
	if len(stories) == 0 {
		return stories, nil
	}

	ids := make([]int64, 0, len(stories))
	seen := make(map[int64]struct{}, len(stories))
	for _, st := range stories {
		ids = append(ids, st.ID)
		seen[st.AuthorID] = struct{}{}
	}
	uniqueAuthors := make([]int64, 0, len(seen))
	for id := range seen {
		uniqueAuthors = append(uniqueAuthors, id)
	}

	authors, err := s.userRepo.GetSummaries(ctx, uniqueAuthors)
	if err != nil {
		return nil, err
	}
	viewed, err := s.storyRepo.CheckViews(ctx, viewerID, ids)
	if err != nil {
		return nil, err
	}

	for i := range stories {
		if a, ok := authors[stories[i].AuthorID]; ok {
			author := a
			stories[i].Author = &author
		}
		stories[i].IsViewed = viewed[stories[i].ID]
	}
	return stories, nil
}

// View records that the viewer saw the story. Authors viewing their own
// story are not recorded.
func (s *StoryService) View(ctx context.Context, viewerID, storyID int64) error {
	story, err := s.storyRepo.GetByID(ctx, storyID)
	if err != nil {
		return err
	}
	if story.AuthorID == viewerID {
		return nil
	}
	return s.storyRepo.RecordView(ctx, storyID, viewerID)
}

// Viewers lists who saw the story. Only the author may ask.
func (s *StoryService) Viewers(ctx context.Context, requesterID, storyID int64, limit, offset int) ([]model.StoryView, error) {
	story, err := s.storyRepo.GetByID(ctx, storyID)
	if err != nil {
		return nil, err
	}
	if story.AuthorID != requesterID {
		return nil, model.ErrNotStoryOwner
	}
	return s.storyRepo.ListViewers(ctx, storyID, limit, offset)
}

func (s *StoryService) Delete(ctx context.Context, authorID, storyID int64) error {
	return s.storyRepo.SoftDelete(ctx, storyID, authorID)
}
