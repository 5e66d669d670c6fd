package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"photo-share/internal/entity"
	"photo-share/internal/repo/persistent"
	"photo-share/pkg/logger"
	"photo-share/pkg/queue"
)

type CommentUseCase interface {
	// CreateComment attaches a comment to postID. The post always comes from
	// the caller's route, never from submitted form data.
	CreateComment(ctx context.Context, actor entity.Actor, postID, content string) (*entity.Comment, error)
	UpdateComment(ctx context.Context, actor entity.Actor, commentID, content string) (*entity.Comment, error)
	// DeleteComment returns the ID of the post the comment belonged to.
	DeleteComment(ctx context.Context, actor entity.Actor, commentID string) (string, error)
}

type commentUseCase struct {
	commentRepo persistent.CommentRepository
	postRepo    persistent.PostRepository
	publisher   EventPublisher
	logger      *logger.Logger
}

func NewCommentUseCase(
	commentRepo persistent.CommentRepository,
	postRepo persistent.PostRepository,
	publisher EventPublisher,
	logger *logger.Logger,
) CommentUseCase {
	return &commentUseCase{
		commentRepo: commentRepo,
		postRepo:    postRepo,
		publisher:   publisher,
		logger:      logger,
	}
}

func (uc *commentUseCase) CreateComment(ctx context.Context, actor entity.Actor, postID, content string) (*entity.Comment, error) {
	if err := requireAuthenticated(actor); err != nil {
		return nil, err
	}

	post, err := uc.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, lookupError("post", err)
	}

	content = strings.TrimSpace(content)
	if content == "" {
		return nil, validationError("content is required")
	}

	comment := &entity.Comment{
		UserID:  actor.UserID,
		PostID:  post.ID,
		Content: content,
	}
	if err := uc.commentRepo.Create(ctx, comment); err != nil {
		uc.logger.Error("Failed to create comment on post %s: %v", postID, err)
		return nil, fmt.Errorf("failed to create comment: %w", err)
	}

	if post.UserID != actor.UserID {
		notify(uc.publisher, uc.logger, queue.Task{
			Type:    queue.EventComment,
			UserID:  post.UserID,
			ActorID: actor.UserID,
			PostID:  post.ID,
		})
	}

	return comment, nil
}

func (uc *commentUseCase) UpdateComment(ctx context.Context, actor entity.Actor, commentID, content string) (*entity.Comment, error) {
	if err := requireAuthenticated(actor); err != nil {
		return nil, err
	}

	comment, err := uc.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		return nil, lookupError("comment", err)
	}

	if !CanModify(actor, comment.UserID) {
		return nil, fmt.Errorf("%w: you can only edit your own comments", ErrForbidden)
	}

	content = strings.TrimSpace(content)
	if content == "" {
		return nil, validationError("content is required")
	}

	if err := uc.commentRepo.UpdateContent(ctx, commentID, content); err != nil {
		if errors.Is(err, persistent.ErrNotFound) {
			return nil, lookupError("comment", err)
		}
		uc.logger.Error("Failed to update comment %s: %v", commentID, err)
		return nil, fmt.Errorf("failed to update comment: %w", err)
	}

	comment.Content = content
	return comment, nil
}

func (uc *commentUseCase) DeleteComment(ctx context.Context, actor entity.Actor, commentID string) (string, error) {
	if err := requireAuthenticated(actor); err != nil {
		return "", err
	}

	comment, err := uc.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		return "", lookupError("comment", err)
	}

	if !CanModify(actor, comment.UserID) {
		return "", fmt.Errorf("%w: you can only delete your own comments", ErrForbidden)
	}

	if err := uc.commentRepo.Delete(ctx, commentID); err != nil {
		if errors.Is(err, persistent.ErrNotFound) {
			return "", lookupError("comment", err)
		}
		uc.logger.Error("Failed to delete comment %s: %v", commentID, err)
		return "", fmt.Errorf("failed to delete comment: %w", err)
	}

	return comment.PostID, nil
}
