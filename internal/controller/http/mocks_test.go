package http

import (
	"context"
	"time"

	"photo-share/internal/entity"
	"photo-share/internal/usecase"

	"github.com/stretchr/testify/mock"
)

type MockPostUseCase struct {
	mock.Mock
}

func (m *MockPostUseCase) CreatePost(ctx context.Context, actor entity.Actor, content string, image *entity.Image) (*entity.Post, error) {
	args := m.Called(ctx, actor, content, image)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Post), args.Error(1)
}

func (m *MockPostUseCase) GetPost(ctx context.Context, actor entity.Actor, postID string) (*entity.PostDetail, error) {
	args := m.Called(ctx, actor, postID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.PostDetail), args.Error(1)
}

func (m *MockPostUseCase) UpdatePost(ctx context.Context, actor entity.Actor, postID, content string, image *entity.Image) (*entity.Post, error) {
	args := m.Called(ctx, actor, postID, content, image)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Post), args.Error(1)
}

func (m *MockPostUseCase) DeletePost(ctx context.Context, actor entity.Actor, postID string) error {
	args := m.Called(ctx, actor, postID)
	return args.Error(0)
}

func (m *MockPostUseCase) LikePost(ctx context.Context, actor entity.Actor, postID string) (bool, error) {
	args := m.Called(ctx, actor, postID)
	return args.Bool(0), args.Error(1)
}

func (m *MockPostUseCase) DislikePost(ctx context.Context, actor entity.Actor, postID string) error {
	args := m.Called(ctx, actor, postID)
	return args.Error(0)
}

type MockCommentUseCase struct {
	mock.Mock
}

func (m *MockCommentUseCase) CreateComment(ctx context.Context, actor entity.Actor, postID, content string) (*entity.Comment, error) {
	args := m.Called(ctx, actor, postID, content)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Comment), args.Error(1)
}

func (m *MockCommentUseCase) UpdateComment(ctx context.Context, actor entity.Actor, commentID, content string) (*entity.Comment, error) {
	args := m.Called(ctx, actor, commentID, content)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Comment), args.Error(1)
}

func (m *MockCommentUseCase) DeleteComment(ctx context.Context, actor entity.Actor, commentID string) (string, error) {
	args := m.Called(ctx, actor, commentID)
	return args.String(0), args.Error(1)
}

type MockUserUseCase struct {
	mock.Mock
}

func (m *MockUserUseCase) Register(ctx context.Context, input usecase.RegisterInput) (*entity.User, string, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, "", args.Error(2)
	}
	return args.Get(0).(*entity.User), args.String(1), args.Error(2)
}

func (m *MockUserUseCase) Login(ctx context.Context, email, password string) (*entity.User, string, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, "", args.Error(2)
	}
	return args.Get(0).(*entity.User), args.String(1), args.Error(2)
}

func (m *MockUserUseCase) Logout(ctx context.Context, tokenID string, expiresAt time.Time) error {
	args := m.Called(ctx, tokenID, expiresAt)
	return args.Error(0)
}

func (m *MockUserUseCase) GetUser(ctx context.Context, userID string) (*entity.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserUseCase) GetProfile(ctx context.Context, userID string) (*entity.Profile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Profile), args.Error(1)
}

func (m *MockUserUseCase) Search(ctx context.Context, phrase string) ([]*entity.User, error) {
	args := m.Called(ctx, phrase)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.User), args.Error(1)
}

func (m *MockUserUseCase) Follow(ctx context.Context, actor entity.Actor, targetID string) error {
	args := m.Called(ctx, actor, targetID)
	return args.Error(0)
}

func (m *MockUserUseCase) Unfollow(ctx context.Context, actor entity.Actor, targetID string) error {
	args := m.Called(ctx, actor, targetID)
	return args.Error(0)
}

type MockFeedUseCase struct {
	mock.Mock
}

func (m *MockFeedUseCase) GetFeed(ctx context.Context, actor entity.Actor, limit, offset int) ([]*entity.Post, error) {
	args := m.Called(ctx, actor, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Post), args.Error(1)
}

var (
	_ usecase.PostUseCase    = (*MockPostUseCase)(nil)
	_ usecase.CommentUseCase = (*MockCommentUseCase)(nil)
	_ usecase.UserUseCase    = (*MockUserUseCase)(nil)
	_ usecase.FeedUseCase    = (*MockFeedUseCase)(nil)
)
