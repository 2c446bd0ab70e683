package http

import (
	"context"
	"fmt"
	"log"
	stdhttp "net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"pixelgram/internal/config"
	"pixelgram/internal/database"
	"pixelgram/internal/handler"
	"pixelgram/internal/queue"
	"pixelgram/internal/repository"
	"pixelgram/internal/service"
	"pixelgram/internal/worker"
)

// Run wires the whole application together and serves until interrupted.
func Run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	// Redis is optional: without it the app runs with durable
	// notifications only and no real-time fan-out.
	var publisher queue.Publisher
	var workers *worker.Manager
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return fmt.Errorf("failed to parse redis url: %w", err)
		}
		redisClient := redis.NewClient(opts)
		defer redisClient.Close()

		publisher = queue.NewPublisher(redisClient)
		consumer := queue.NewConsumer(redisClient)
		workers = worker.NewManager(consumer, worker.NewHandler(worker.LogBroadcaster{}), worker.DefaultManagerConfig())
	} else {
		log.Println("[Server] REDIS_URL not set, real-time notification fan-out disabled")
	}

	// Repositories
	userRepo := repository.NewUserRepository(db)
	postRepo := repository.NewPostRepository(db)
	likeRepo := repository.NewLikeRepository(db)
	followRepo := repository.NewFollowRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	storyRepo := repository.NewStoryRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)

	// Services
	authService := service.NewAuthService(cfg)
	userService := service.NewUserService(userRepo, authService)
	mediaService, err := service.NewMediaService(cfg.UploadDir)
	if err != nil {
		return fmt.Errorf("failed to init media storage: %w", err)
	}
	notificationService := service.NewNotificationService(notificationRepo, publisher)
	postService := service.NewPostService(postRepo, mediaService)
	feedService := service.NewFeedService(postRepo)
	likeService := service.NewLikeService(likeRepo, postRepo, notificationService)
	followService := service.NewFollowService(followRepo, userRepo, notificationService)
	commentService := service.NewCommentService(commentRepo, postRepo, notificationService)
	storyService := service.NewStoryService(storyRepo, mediaService)

	router := NewRouter(RouterConfig{
		AuthHandler:         handler.NewAuthHandler(userService),
		UserHandler:         handler.NewUserHandler(userService, mediaService),
		PostHandler:         handler.NewPostHandler(postService),
		FeedHandler:         handler.NewFeedHandler(feedService),
		LikeHandler:         handler.NewLikeHandler(likeService),
		FollowHandler:       handler.NewFollowHandler(followService),
		CommentHandler:      handler.NewCommentHandler(commentService),
		StoryHandler:        handler.NewStoryHandler(storyService),
		NotificationHandler: handler.NewNotificationHandler(notificationService),
		AuthService:         authService,
		UploadDir:           cfg.UploadDir,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if workers != nil {
		if err := workers.Start(ctx); err != nil {
			return fmt.Errorf("failed to start workers: %w", err)
		}
		defer workers.Stop()
	}

	server := &stdhttp.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("[Server] Listening on :%s", cfg.ServerPort)
		if err := server.ListenAndServe(); err != nil && err != stdhttp.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Println("[Server] Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
