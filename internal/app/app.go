package app

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	photoHTTP "photo-share/internal/controller/http"
	"photo-share/internal/model"
	"photo-share/internal/repo/persistent"
	"photo-share/internal/usecase"
	"photo-share/pkg/cache"
	"photo-share/pkg/config"
	"photo-share/pkg/database"
	"photo-share/pkg/jwt"
	"photo-share/pkg/logger"
	"photo-share/pkg/middleware"
	"photo-share/pkg/queue"
	"photo-share/pkg/s3"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	_ "photo-share/docs" // Swagger docs
)

type App struct {
	cfg         *config.Config
	log         *logger.Logger
	db          *gorm.DB
	redisClient *redis.Client
	queueClient *queue.Client
	jwtService  *jwt.Service

	// Optional collaborators; nil when the backing service is unavailable.
	storage   usecase.ImageStorage
	publisher usecase.EventPublisher
	revoker   usecase.TokenRevoker

	revocationCheckers []middleware.RevocationChecker

	httpServer *http.Server
}

func NewApp(cfg *config.Config) (*App, error) {
	log := logger.New()

	db, err := database.NewDB(cfg)
	if err != nil {
		log.Error("Failed to connect to database: %v", err)
		return nil, err
	}

	// SQLite databases are not managed by goose
	if cfg.SQLiteFile != "" {
		if err := model.AutoMigrate(db); err != nil {
			log.Error("Failed to migrate sqlite database: %v", err)
			return nil, err
		}
	}

	app := &App{
		cfg:        cfg,
		log:        log,
		db:         db,
		jwtService: jwt.NewServiceWithTTL(cfg.JWTSecret, cfg.JWTTTL),
	}

	redisClient, err := cache.NewRedisClient(cfg)
	if err != nil {
		log.Error("Failed to connect to redis: %v (continuing without rate limiting and logout)", err)
	} else {
		tokenStore := cache.NewTokenStore(redisClient)
		app.redisClient = redisClient
		app.revoker = tokenStore
		app.revocationCheckers = []middleware.RevocationChecker{tokenStore}
	}

	s3Client, err := s3.NewClient(cfg)
	if err != nil {
		log.Error("Failed to create S3 client: %v", err)
		return nil, err
	}
	app.storage = s3Client

	queueClient, err := queue.NewRabbitMQClient(cfg, log)
	if err != nil {
		log.Error("Failed to connect to RabbitMQ: %v (continuing without queue)", err)
	} else {
		app.queueClient = queueClient
		app.publisher = queueClient
	}

	return app, nil
}

func (a *App) Run() error {
	a.httpServer = &http.Server{
		Addr:    ":" + a.cfg.ServerPort,
		Handler: a.router(),
	}

	go func() {
		a.log.Info("Photo-share service starting on port %s", a.cfg.ServerPort)
		if err := a.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			a.log.Error("Failed to start server: %v", err)
			panic(err)
		}
	}()

	return nil
}

func (a *App) router() *gin.Engine {
	// Initialize repositories
	userRepo := persistent.NewUserRepository(a.db)
	postRepo := persistent.NewPostRepository(a.db)
	commentRepo := persistent.NewCommentRepository(a.db)
	likeRepo := persistent.NewLikeRepository(a.db)

	// Initialize use cases
	userUseCase := usecase.NewUserUseCase(userRepo, postRepo, a.jwtService, a.revoker, a.publisher, a.log)
	feedUseCase := usecase.NewFeedUseCase(postRepo, a.log)
	postUseCase := usecase.NewPostUseCase(postRepo, commentRepo, likeRepo, a.storage, a.publisher, a.log)
	commentUseCase := usecase.NewCommentUseCase(commentRepo, postRepo, a.publisher, a.log)

	// Initialize HTTP handlers
	authHandler := photoHTTP.NewAuthHandler(userUseCase, a.log)
	userHandler := photoHTTP.NewUserHandler(userUseCase, a.log)
	feedHandler := photoHTTP.NewFeedHandler(feedUseCase, a.log)
	postHandler := photoHTTP.NewPostHandler(postUseCase, a.log)
	commentHandler := photoHTTP.NewCommentHandler(commentUseCase, a.log)

	r := gin.Default()
	r.HandleMethodNotAllowed = true

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://127.0.0.1:3000"},
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "Accept"},
		ExposeHeaders:    []string{"Content-Length", "Location"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(gzip.Gzip(gzip.DefaultCompression, gzip.WithExcludedPaths([]string{"/swagger"})))

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Swagger documentation
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	requireAuth := middleware.AuthMiddleware(a.jwtService, a.revocationCheckers...)
	optionalAuth := middleware.OptionalAuthMiddleware(a.jwtService, a.revocationCheckers...)
	rateLimit := middleware.RateLimitMiddleware(a.redisClient, a.cfg.RateLimit, a.cfg.RateLimitWindow)

	api := r.Group(photoHTTP.BasePath)
	{
		public := api.Group("")
		public.Use(optionalAuth, rateLimit)
		{
			public.POST("/register", authHandler.Register)
			public.POST("/login", authHandler.Login)
			public.GET("/posts/:id", postHandler.GetPost)
			public.GET("/users/:id", userHandler.GetProfile)
			public.GET("/search", userHandler.Search)
		}

		protected := api.Group("")
		protected.Use(requireAuth, rateLimit)
		{
			protected.POST("/logout", authHandler.Logout)
			protected.GET("/me", authHandler.Me)
			protected.GET("/feed", feedHandler.GetFeed)

			protected.POST("/users/:id/follow", userHandler.Follow)
			protected.POST("/users/:id/unfollow", userHandler.Unfollow)

			protected.POST("/posts", postHandler.CreatePost)
			protected.POST("/posts/:id/update", postHandler.UpdatePost)
			protected.POST("/posts/:id/delete", postHandler.DeletePost)
			protected.POST("/posts/:id/like", postHandler.LikePost)
			protected.POST("/posts/:id/dislike", postHandler.DislikePost)
			protected.POST("/posts/:id/comments", commentHandler.CreateComment)

			protected.POST("/comments/:id/update", commentHandler.UpdateComment)
			protected.POST("/comments/:id/delete", commentHandler.DeleteComment)
		}
	}

	return r
}

func (a *App) Wait() {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	a.log.Info("Shutting down photo-share service...")
}

func (a *App) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var shutdownErr error
	if a.httpServer != nil {
		if err := a.httpServer.Shutdown(ctx); err != nil {
			a.log.Error("Server forced to shutdown: %v", err)
			shutdownErr = err
		}
	}

	sqlDB, err := a.db.DB()
	if err == nil {
		if err := sqlDB.Close(); err != nil {
			a.log.Error("Error closing database: %v", err)
		}
	}

	if a.redisClient != nil {
		if err := a.redisClient.Close(); err != nil {
			a.log.Error("Error closing Redis: %v", err)
		}
	}

	if a.queueClient != nil {
		if err := a.queueClient.Close(); err != nil {
			a.log.Error("Error closing RabbitMQ: %v", err)
		}
	}

	a.log.Info("Photo-share service exited")
	return shutdownErr
}
