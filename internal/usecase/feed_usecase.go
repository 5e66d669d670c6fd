package usecase

import (
	"context"
	"fmt"

	"photo-share/internal/entity"
	"photo-share/internal/repo/persistent"
	"photo-share/pkg/logger"
)

// MaxFeedLimit caps an explicit page size. A limit of zero returns the whole feed.
const MaxFeedLimit = 100

type FeedUseCase interface {
	GetFeed(ctx context.Context, actor entity.Actor, limit, offset int) ([]*entity.Post, error)
}

type feedUseCase struct {
	postRepo persistent.PostRepository
	logger   *logger.Logger
}

func NewFeedUseCase(postRepo persistent.PostRepository, logger *logger.Logger) FeedUseCase {
	return &feedUseCase{
		postRepo: postRepo,
		logger:   logger,
	}
}

// FeedPage normalizes an optional feed page. Non-positive limits mean no
// limit, larger ones are capped at MaxFeedLimit.
func FeedPage(limit, offset int) (int, int) {
	if limit < 0 {
		limit = 0
	}
	if limit > MaxFeedLimit {
		limit = MaxFeedLimit
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

// GetFeed lists posts by the users the actor follows, newest first.
func (uc *feedUseCase) GetFeed(ctx context.Context, actor entity.Actor, limit, offset int) ([]*entity.Post, error) {
	if err := requireAuthenticated(actor); err != nil {
		return nil, err
	}

	limit, offset = FeedPage(limit, offset)
	posts, err := uc.postRepo.GetFeed(ctx, actor.UserID, limit, offset)
	if err != nil {
		uc.logger.Error("Failed to load feed for user %s: %v", actor.UserID, err)
		return nil, fmt.Errorf("failed to load feed: %w", err)
	}
	if posts == nil {
		posts = []*entity.Post{}
	}
	return posts, nil
}
