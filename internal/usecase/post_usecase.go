package usecase

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"photo-share/internal/entity"
	"photo-share/internal/repo/persistent"
	"photo-share/pkg/logger"
	"photo-share/pkg/media"
	"photo-share/pkg/queue"

	"github.com/google/uuid"
)

type PostUseCase interface {
	CreatePost(ctx context.Context, actor entity.Actor, content string, image *entity.Image) (*entity.Post, error)
	GetPost(ctx context.Context, actor entity.Actor, postID string) (*entity.PostDetail, error)
	UpdatePost(ctx context.Context, actor entity.Actor, postID, content string, image *entity.Image) (*entity.Post, error)
	DeletePost(ctx context.Context, actor entity.Actor, postID string) error
	// LikePost reports true when a new like record was created and false
	// when an existing one was reactivated.
	LikePost(ctx context.Context, actor entity.Actor, postID string) (bool, error)
	DislikePost(ctx context.Context, actor entity.Actor, postID string) error
}

type postUseCase struct {
	postRepo    persistent.PostRepository
	commentRepo persistent.CommentRepository
	likeRepo    persistent.LikeRepository
	storage     ImageStorage
	publisher   EventPublisher
	logger      *logger.Logger
}

func NewPostUseCase(
	postRepo persistent.PostRepository,
	commentRepo persistent.CommentRepository,
	likeRepo persistent.LikeRepository,
	storage ImageStorage,
	publisher EventPublisher,
	logger *logger.Logger,
) PostUseCase {
	return &postUseCase{
		postRepo:    postRepo,
		commentRepo: commentRepo,
		likeRepo:    likeRepo,
		storage:     storage,
		publisher:   publisher,
		logger:      logger,
	}
}

func (uc *postUseCase) CreatePost(ctx context.Context, actor entity.Actor, content string, image *entity.Image) (*entity.Post, error) {
	if err := requireAuthenticated(actor); err != nil {
		return nil, err
	}

	content = strings.TrimSpace(content)
	if content == "" {
		return nil, validationError("content is required")
	}

	post := &entity.Post{
		UserID:  actor.UserID,
		Content: content,
	}

	if image != nil {
		url, key, err := uc.storeImage(actor.UserID, image)
		if err != nil {
			return nil, err
		}
		post.ImageURL = url
		post.ImageKey = key
	}

	if err := uc.postRepo.Create(ctx, post); err != nil {
		uc.logger.Error("Failed to create post: %v", err)
		uc.removeImage(post.ImageKey)
		return nil, fmt.Errorf("failed to create post: %w", err)
	}

	return post, nil
}

func (uc *postUseCase) GetPost(ctx context.Context, actor entity.Actor, postID string) (*entity.PostDetail, error) {
	post, err := uc.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, lookupError("post", err)
	}

	likeCount, err := uc.postRepo.CountLikes(ctx, postID)
	if err != nil {
		return nil, fmt.Errorf("failed to count likes: %w", err)
	}

	var likedByUser int64
	if actor.Authenticated {
		likedByUser, err = uc.postRepo.CountLikesByUser(ctx, postID, actor.UserID)
		if err != nil {
			return nil, fmt.Errorf("failed to check like status: %w", err)
		}
	}

	comments, err := uc.commentRepo.GetByPostID(ctx, postID)
	if err != nil {
		return nil, fmt.Errorf("failed to load comments: %w", err)
	}

	return &entity.PostDetail{
		Post:        post,
		LikeCount:   likeCount,
		LikedByUser: likedByUser,
		Comments:    comments,
	}, nil
}

func (uc *postUseCase) UpdatePost(ctx context.Context, actor entity.Actor, postID, content string, image *entity.Image) (*entity.Post, error) {
	if err := requireAuthenticated(actor); err != nil {
		return nil, err
	}

	post, err := uc.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, lookupError("post", err)
	}

	if !CanModify(actor, post.UserID) {
		return nil, fmt.Errorf("%w: you can only edit your own posts", ErrForbidden)
	}

	content = strings.TrimSpace(content)
	if content == "" {
		return nil, validationError("content is required")
	}

	oldKey := post.ImageKey
	post.Content = content
	if image != nil {
		url, key, err := uc.storeImage(post.UserID, image)
		if err != nil {
			return nil, err
		}
		post.ImageURL = url
		post.ImageKey = key
	}

	if err := uc.postRepo.Update(ctx, post); err != nil {
		if image != nil {
			uc.removeImage(post.ImageKey)
		}
		if errors.Is(err, persistent.ErrNotFound) {
			return nil, lookupError("post", err)
		}
		uc.logger.Error("Failed to update post %s: %v", postID, err)
		return nil, fmt.Errorf("failed to update post: %w", err)
	}

	if image != nil && oldKey != "" {
		uc.removeImage(oldKey)
	}

	return post, nil
}

func (uc *postUseCase) DeletePost(ctx context.Context, actor entity.Actor, postID string) error {
	if err := requireAuthenticated(actor); err != nil {
		return err
	}

	post, err := uc.postRepo.GetByID(ctx, postID)
	if err != nil {
		return lookupError("post", err)
	}

	if !CanModify(actor, post.UserID) {
		return fmt.Errorf("%w: you can only delete your own posts", ErrForbidden)
	}

	if err := uc.postRepo.Delete(ctx, postID); err != nil {
		if errors.Is(err, persistent.ErrNotFound) {
			return lookupError("post", err)
		}
		uc.logger.Error("Failed to delete post %s: %v", postID, err)
		return fmt.Errorf("failed to delete post: %w", err)
	}

	uc.removeImage(post.ImageKey)
	uc.logger.Info("Post %s deleted by user %s", postID, actor.UserID)
	return nil
}

func (uc *postUseCase) LikePost(ctx context.Context, actor entity.Actor, postID string) (bool, error) {
	if err := requireAuthenticated(actor); err != nil {
		return false, err
	}

	post, err := uc.postRepo.GetByID(ctx, postID)
	if err != nil {
		return false, lookupError("post", err)
	}

	outcome, err := uc.likeRepo.Like(ctx, actor.UserID, postID)
	if err != nil {
		uc.logger.Error("Failed to like post %s: %v", postID, err)
		return false, fmt.Errorf("failed to like post: %w", err)
	}

	// re-liking an active like changes nothing, so nobody is told about it
	if outcome.Activated && post.UserID != actor.UserID {
		notify(uc.publisher, uc.logger, queue.Task{
			Type:    queue.EventLike,
			UserID:  post.UserID,
			ActorID: actor.UserID,
			PostID:  postID,
		})
	}

	return outcome.Created, nil
}

func (uc *postUseCase) DislikePost(ctx context.Context, actor entity.Actor, postID string) error {
	if err := requireAuthenticated(actor); err != nil {
		return err
	}

	if _, err := uc.postRepo.GetByID(ctx, postID); err != nil {
		return lookupError("post", err)
	}

	if err := uc.likeRepo.Dislike(ctx, actor.UserID, postID); err != nil {
		if errors.Is(err, persistent.ErrNotFound) {
			return lookupError("like", err)
		}
		uc.logger.Error("Failed to dislike post %s: %v", postID, err)
		return fmt.Errorf("failed to dislike post: %w", err)
	}
	return nil
}

func (uc *postUseCase) storeImage(userID string, image *entity.Image) (string, string, error) {
	if uc.storage == nil {
		return "", "", errors.New("image storage is not configured")
	}

	data, contentType, err := media.FitImage(image.Body)
	if err != nil {
		return "", "", validationError(err.Error())
	}

	key := fmt.Sprintf("posts/%s/%s.jpg", userID, uuid.New().String())
	url, err := uc.storage.UploadFile(key, bytes.NewReader(data), contentType)
	if err != nil {
		uc.logger.Error("Failed to upload image: %v", err)
		return "", "", fmt.Errorf("failed to upload image: %w", err)
	}
	return url, key, nil
}

func (uc *postUseCase) removeImage(key string) {
	if key == "" || uc.storage == nil {
		return
	}
	if err := uc.storage.DeleteFile(key); err != nil {
		uc.logger.Warn("Failed to delete image %s: %v", key, err)
	}
}
