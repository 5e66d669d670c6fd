package main

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"time"

	"photo-share/internal/entity"
	"photo-share/internal/model"
	"photo-share/internal/repo/persistent"
	"photo-share/internal/usecase"
	"photo-share/pkg/config"
	"photo-share/pkg/database"
	"photo-share/pkg/jwt"
	"photo-share/pkg/logger"
	"photo-share/pkg/s3"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type seedUser struct {
	email     string
	firstName string
	lastName  string
	password  string
	superuser bool
}

var testUsers = []seedUser{
	{"alice@test.com", "Alice", "Archer", "password123", false},
	{"bob@test.com", "Bob", "Baker", "password123", false},
	{"charlie@test.com", "Charlie", "Cooper", "password123", false},
	{"diana@test.com", "Diana", "Dawson", "password123", false},
	{"admin@test.com", "Site", "Admin", "password123", true},
}

func main() {
	var withImages bool
	flag.BoolVar(&withImages, "images", false, "Download cat pictures from cataas.com and attach them to posts")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	log := logger.New()
	db, err := database.NewDB(cfg)
	if err != nil {
		log.Error("Failed to connect to database: %v", err)
		panic(err)
	}

	if cfg.SQLiteFile != "" {
		if err := model.AutoMigrate(db); err != nil {
			log.Error("Failed to migrate sqlite database: %v", err)
			panic(err)
		}
	}

	var storage usecase.ImageStorage
	if withImages {
		s3Client, err := s3.NewClient(cfg)
		if err != nil {
			log.Error("Failed to create S3 client: %v", err)
			panic(err)
		}
		storage = s3Client
	}

	if err := seedDatabase(context.Background(), db, storage, log); err != nil {
		log.Error("Failed to seed database: %v", err)
		panic(err)
	}

	log.Info("Database seeded successfully!")
}

func seedDatabase(ctx context.Context, db *gorm.DB, storage usecase.ImageStorage, log *logger.Logger) error {
	userRepo := persistent.NewUserRepository(db)
	postRepo := persistent.NewPostRepository(db)
	commentRepo := persistent.NewCommentRepository(db)
	likeRepo := persistent.NewLikeRepository(db)

	// Seeding never notifies anyone.
	userUseCase := usecase.NewUserUseCase(userRepo, postRepo, jwt.NewService("seed"), nil, nil, log)
	postUseCase := usecase.NewPostUseCase(postRepo, commentRepo, likeRepo, storage, nil, log)
	commentUseCase := usecase.NewCommentUseCase(commentRepo, postRepo, nil, log)

	httpClient := &http.Client{
		Timeout: 30 * time.Second,
	}

	actors := make([]entity.Actor, 0, len(testUsers))
	for _, data := range testUsers {
		user, err := ensureUser(ctx, userRepo, data)
		if err != nil {
			log.Error("Failed to create user %s: %v", data.email, err)
			continue
		}
		actors = append(actors, entity.Actor{UserID: user.ID, Authenticated: true, IsSuperuser: user.IsSuperuser})
	}

	var postIDs []string
	for i, actor := range actors {
		postsCount := 2 + i%2
		for j := 0; j < postsCount; j++ {
			var image *entity.Image
			if storage != nil {
				fetched, err := fetchCatImage(httpClient, i*10+j)
				if err != nil {
					log.Warn("Failed to fetch cat image, posting without one: %v", err)
				} else {
					image = fetched
				}
			}

			post, err := postUseCase.CreatePost(ctx, actor, fmt.Sprintf("Photo #%d by user %d", j+1, i+1), image)
			if err != nil {
				log.Error("Failed to create post: %v", err)
				continue
			}
			postIDs = append(postIDs, post.ID)
		}
	}
	log.Info("Created %d posts", len(postIDs))

	// Everyone follows the next two users so each feed has content.
	for i, actor := range actors {
		for k := 1; k <= 2; k++ {
			target := actors[(i+k)%len(actors)]
			if err := userUseCase.Follow(ctx, actor, target.UserID); err != nil {
				log.Error("Failed to create follow: %v", err)
			}
		}
	}

	for i, postID := range postIDs {
		actor := actors[(i+1)%len(actors)]
		if _, err := postUseCase.LikePost(ctx, actor, postID); err != nil {
			log.Error("Failed to like post %s: %v", postID, err)
		}
		if _, err := commentUseCase.CreateComment(ctx, actor, postID, "Lovely shot!"); err != nil {
			log.Error("Failed to comment on post %s: %v", postID, err)
		}
	}

	log.Info("Created test follows, likes and comments")
	return nil
}

func ensureUser(ctx context.Context, repo persistent.UserRepository, data seedUser) (*entity.User, error) {
	existing, err := repo.GetByEmail(ctx, data.email)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, persistent.ErrNotFound) {
		return nil, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(data.password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &entity.User{
		Email:       data.email,
		FirstName:   data.firstName,
		LastName:    data.lastName,
		Password:    string(hashedPassword),
		IsSuperuser: data.superuser,
	}
	if err := repo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func fetchCatImage(httpClient *http.Client, index int) (*entity.Image, error) {
	resp, err := httpClient.Get("https://cataas.com/cat")
	if err != nil {
		return nil, fmt.Errorf("failed to fetch cat image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("cataas API returned status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read image data: %w", err)
	}
	if len(data) == 0 {
		return nil, errors.New("received empty image data")
	}

	return &entity.Image{
		Filename:    fmt.Sprintf("seed_%d.jpg", index),
		ContentType: resp.Header.Get("Content-Type"),
		Body:        bytes.NewReader(data),
	}, nil
}
