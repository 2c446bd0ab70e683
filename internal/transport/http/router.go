package http

import (
	"net/http"
	"path/filepath"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"pixelgram/internal/handler"
	"pixelgram/internal/httputil"
	"pixelgram/internal/service"
	authmw "pixelgram/internal/transport/http/middleware"
)

// RouterConfig holds the dependencies needed to create routes
type RouterConfig struct {
	AuthHandler         *handler.AuthHandler
	UserHandler         *handler.UserHandler
	PostHandler         *handler.PostHandler
	FeedHandler         *handler.FeedHandler
	LikeHandler         *handler.LikeHandler
	FollowHandler       *handler.FollowHandler
	CommentHandler      *handler.CommentHandler
	StoryHandler        *handler.StoryHandler
	NotificationHandler *handler.NotificationHandler
	AuthService         *service.AuthService
	UploadDir           string
}

// NewRouter creates and configures a new Chi router with all route groups
func NewRouter(cfg RouterConfig) chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)

	requireAuth := authmw.Auth(cfg.AuthService)
	optionalAuth := authmw.OptionalAuth(cfg.AuthService)

	// Health check endpoint (useful for deployment/monitoring)
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	// Uploaded images are served statically
	uploadsDir := http.Dir(filepath.Clean(cfg.UploadDir))
	r.Handle("/uploads/*", http.StripPrefix("/uploads/", http.FileServer(uploadsDir)))

	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", cfg.AuthHandler.Register)
		r.Post("/login", cfg.AuthHandler.Login)
		r.Get("/check-username/{username}", cfg.AuthHandler.CheckUsername)
		r.With(requireAuth).Get("/me", cfg.AuthHandler.Me)
	})

	r.Route("/users", func(r chi.Router) {
		r.With(requireAuth).Put("/profile", cfg.UserHandler.UpdateProfile)
		r.With(optionalAuth).Get("/search/{query}", cfg.UserHandler.Search)
		r.With(optionalAuth).Get("/{username}", cfg.UserHandler.GetProfile)
		r.With(optionalAuth).Get("/{username}/followers", cfg.FollowHandler.GetFollowers)
		r.With(optionalAuth).Get("/{username}/following", cfg.FollowHandler.GetFollowing)
	})

	r.Route("/posts", func(r chi.Router) {
		r.With(requireAuth).Post("/", cfg.PostHandler.Create)
		r.With(requireAuth).Get("/feed", cfg.FeedHandler.GetFeed)
		r.With(optionalAuth).Get("/explore", cfg.FeedHandler.GetExplore)
		r.With(optionalAuth).Get("/user/{username}", cfg.PostHandler.GetUserPosts)
		r.With(optionalAuth).Get("/{id}", cfg.PostHandler.GetByID)
		r.With(requireAuth).Delete("/{id}", cfg.PostHandler.Delete)
	})

	r.Route("/likes", func(r chi.Router) {
		r.Use(requireAuth)
		r.Post("/toggle", cfg.LikeHandler.Toggle)
		r.Get("/post/{postID}", cfg.LikeHandler.GetLikers)
		r.Get("/count/{postID}", cfg.LikeHandler.Count)
		r.Get("/check/{postID}", cfg.LikeHandler.Check)
	})

	r.Route("/follows", func(r chi.Router) {
		r.Use(requireAuth)
		r.Post("/toggle", cfg.FollowHandler.Toggle)
		r.Get("/suggestions", cfg.FollowHandler.GetSuggestions)
		r.Get("/check/{userID}", cfg.FollowHandler.Check)
		r.Get("/mutual/{userID}", cfg.FollowHandler.GetMutual)
		r.Get("/counts/{userID}", cfg.FollowHandler.GetCounts)
	})

	r.Route("/comments", func(r chi.Router) {
		r.With(requireAuth).Post("/", cfg.CommentHandler.Create)
		r.With(optionalAuth).Get("/post/{postID}", cfg.CommentHandler.GetByPostID)
		r.With(requireAuth).Delete("/{id}", cfg.CommentHandler.Delete)
		r.Get("/count/{postID}", cfg.CommentHandler.Count)
	})

	r.Route("/stories", func(r chi.Router) {
		r.Use(requireAuth)
		r.Post("/", cfg.StoryHandler.Create)
		r.Get("/feed", cfg.StoryHandler.GetFeed)
		r.Post("/{id}/view", cfg.StoryHandler.MarkViewed)
	})

	r.Route("/notifications", func(r chi.Router) {
		r.Use(requireAuth)
		r.Get("/", cfg.NotificationHandler.List)
		r.Put("/read", cfg.NotificationHandler.MarkAllRead)
		r.Get("/unread-count", cfg.NotificationHandler.UnreadCount)
	})

	return r
}
