package usecase

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"photo-share/internal/entity"
	"photo-share/internal/repo/persistent"
	"photo-share/pkg/jwt"
	"photo-share/pkg/logger"
	"photo-share/pkg/queue"

	"golang.org/x/crypto/bcrypt"
)

const MinPasswordLength = 8

type RegisterInput struct {
	Email     string
	FirstName string
	LastName  string
	Password1 string
	Password2 string
}

type UserUseCase interface {
	Register(ctx context.Context, input RegisterInput) (*entity.User, string, error)
	Login(ctx context.Context, email, password string) (*entity.User, string, error)
	Logout(ctx context.Context, tokenID string, expiresAt time.Time) error
	GetUser(ctx context.Context, userID string) (*entity.User, error)
	GetProfile(ctx context.Context, userID string) (*entity.Profile, error)
	Search(ctx context.Context, phrase string) ([]*entity.User, error)
	Follow(ctx context.Context, actor entity.Actor, targetID string) error
	Unfollow(ctx context.Context, actor entity.Actor, targetID string) error
}

type userUseCase struct {
	userRepo   persistent.UserRepository
	postRepo   persistent.PostRepository
	jwtService *jwt.Service
	revoker    TokenRevoker
	publisher  EventPublisher
	logger     *logger.Logger
}

func NewUserUseCase(
	userRepo persistent.UserRepository,
	postRepo persistent.PostRepository,
	jwtService *jwt.Service,
	revoker TokenRevoker,
	publisher EventPublisher,
	logger *logger.Logger,
) UserUseCase {
	return &userUseCase{
		userRepo:   userRepo,
		postRepo:   postRepo,
		jwtService: jwtService,
		revoker:    revoker,
		publisher:  publisher,
		logger:     logger,
	}
}

func (uc *userUseCase) Register(ctx context.Context, input RegisterInput) (*entity.User, string, error) {
	addr, err := mail.ParseAddress(strings.TrimSpace(input.Email))
	if err != nil {
		return nil, "", validationError("enter a valid email address")
	}
	// only the bare address is kept, never a display name
	email := addr.Address
	if input.Password1 != input.Password2 {
		return nil, "", validationError("the two password fields didn't match")
	}
	if len(input.Password1) < MinPasswordLength {
		return nil, "", validationError(fmt.Sprintf("password must contain at least %d characters", MinPasswordLength))
	}

	if _, err := uc.userRepo.GetByEmail(ctx, email); err == nil {
		return nil, "", fmt.Errorf("user with this email %w", ErrConflict)
	} else if !errors.Is(err, persistent.ErrNotFound) {
		uc.logger.Error("Failed to look up email: %v", err)
		return nil, "", fmt.Errorf("failed to process registration: %w", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password1), bcrypt.DefaultCost)
	if err != nil {
		uc.logger.Error("Failed to hash password: %v", err)
		return nil, "", fmt.Errorf("failed to process registration: %w", err)
	}

	user := &entity.User{
		Email:     email,
		FirstName: strings.TrimSpace(input.FirstName),
		LastName:  strings.TrimSpace(input.LastName),
		Password:  string(hashedPassword),
	}

	if err := uc.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, persistent.ErrDuplicate) {
			return nil, "", fmt.Errorf("user with this email %w", ErrConflict)
		}
		uc.logger.Error("Failed to create user: %v", err)
		return nil, "", fmt.Errorf("failed to create user: %w", err)
	}

	token, err := uc.jwtService.GenerateToken(user.ID, string(user.Role()))
	if err != nil {
		uc.logger.Error("Failed to generate token: %v", err)
		return nil, "", fmt.Errorf("failed to generate token: %w", err)
	}

	uc.logger.Info("User %s registered", user.ID)
	user.Password = ""
	return user, token, nil
}

func (uc *userUseCase) Login(ctx context.Context, email, password string) (*entity.User, string, error) {
	user, err := uc.userRepo.GetByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, persistent.ErrNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", fmt.Errorf("failed to look up user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := uc.jwtService.GenerateToken(user.ID, string(user.Role()))
	if err != nil {
		uc.logger.Error("Failed to generate token: %v", err)
		return nil, "", fmt.Errorf("failed to generate token: %w", err)
	}

	user.Password = ""
	return user, token, nil
}

// Logout revokes the token until it would have expired. Without a revoker
// configured the token simply stays valid until expiry.
func (uc *userUseCase) Logout(ctx context.Context, tokenID string, expiresAt time.Time) error {
	if uc.revoker == nil {
		uc.logger.Warn("Token revocation unavailable, token %s stays valid until expiry", tokenID)
		return nil
	}
	if err := uc.revoker.Revoke(ctx, tokenID, expiresAt); err != nil {
		uc.logger.Error("Failed to revoke token: %v", err)
		return fmt.Errorf("failed to revoke token: %w", err)
	}
	return nil
}

func (uc *userUseCase) GetUser(ctx context.Context, userID string) (*entity.User, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, lookupError("user", err)
	}
	user.Password = ""
	return user, nil
}

func (uc *userUseCase) GetProfile(ctx context.Context, userID string) (*entity.Profile, error) {
	user, err := uc.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	posts, err := uc.postRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load posts: %w", err)
	}
	for _, post := range posts {
		if post.User != nil {
			post.User.Password = ""
		}
	}

	followers, err := uc.userRepo.CountFollowers(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to count followers: %w", err)
	}
	following, err := uc.userRepo.CountFollowing(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to count following: %w", err)
	}

	return &entity.Profile{
		User:           user,
		Posts:          posts,
		FollowersCount: followers,
		FollowingCount: following,
	}, nil
}

// Search returns no users for a blank phrase.
func (uc *userUseCase) Search(ctx context.Context, phrase string) ([]*entity.User, error) {
	if phrase == "" {
		return []*entity.User{}, nil
	}

	users, err := uc.userRepo.Search(ctx, phrase)
	if err != nil {
		uc.logger.Error("Failed to search users: %v", err)
		return nil, fmt.Errorf("failed to search users: %w", err)
	}
	if users == nil {
		users = []*entity.User{}
	}
	for _, user := range users {
		user.Password = ""
	}
	return users, nil
}

func (uc *userUseCase) Follow(ctx context.Context, actor entity.Actor, targetID string) error {
	if err := requireAuthenticated(actor); err != nil {
		return err
	}
	if actor.UserID == targetID {
		return validationError("you cannot follow yourself")
	}

	if _, err := uc.userRepo.GetByID(ctx, targetID); err != nil {
		return lookupError("user", err)
	}

	if err := uc.userRepo.Follow(ctx, actor.UserID, targetID); err != nil {
		uc.logger.Error("Failed to follow user %s: %v", targetID, err)
		return fmt.Errorf("failed to follow user: %w", err)
	}

	notify(uc.publisher, uc.logger, queue.Task{
		Type:    queue.EventFollow,
		UserID:  targetID,
		ActorID: actor.UserID,
	})
	return nil
}

func (uc *userUseCase) Unfollow(ctx context.Context, actor entity.Actor, targetID string) error {
	if err := requireAuthenticated(actor); err != nil {
		return err
	}

	if _, err := uc.userRepo.GetByID(ctx, targetID); err != nil {
		return lookupError("user", err)
	}

	if err := uc.userRepo.Unfollow(ctx, actor.UserID, targetID); err != nil {
		uc.logger.Error("Failed to unfollow user %s: %v", targetID, err)
		return fmt.Errorf("failed to unfollow user: %w", err)
	}
	return nil
}
