package service

import (
	"context"
	"fmt"

	"socialite/internal/model"
	"socialite/internal/repository"
)

// canViewPost decides whether viewer may see post. A block edge in either
// direction denies regardless of visibility level; the author always sees
// their own posts, including while blocked checks would otherwise not apply.
func canViewPost(ctx context.Context, follows repository.FollowRepository, blocks repository.BlockRepository, viewerID *int64, post *model.Post) error {
	if viewerID != nil && *viewerID == post.AuthorID {
		return nil
	}

	if viewerID != nil {
		blocked, err := blocks.ExistsBetween(ctx, *viewerID, post.AuthorID)
		if err != nil {
			return fmt.Errorf("check block: %w", err)
		}
		if blocked {
			return model.ErrPostAccessDenied
		}
	}

	switch post.Visibility {
	case model.VisibilityPublic:
		return nil
	case model.VisibilityPrivate:
		return model.ErrPostAccessDenied
	case model.VisibilityFollowers:
		if viewerID == nil {
			return model.ErrPostAccessDenied
		}
		following, err := follows.Exists(ctx, *viewerID, post.AuthorID)
		if err != nil {
			return fmt.Errorf("check follow: %w", err)
		}
		if !following {
			return model.ErrPostAccessDenied
		}
		return nil
	}
	return model.ErrPostAccessDenied
}
