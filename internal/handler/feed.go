package handler

import (
	"net/http"

	"pixelgram/internal/httputil"
	"pixelgram/internal/model"
	"pixelgram/internal/service"
	"pixelgram/internal/transport/http/middleware"
)

// FeedHandler serves the home feed and the explore surface.
type FeedHandler struct {
	feedService *service.FeedService
}

func NewFeedHandler(feedService *service.FeedService) *FeedHandler {
	return &FeedHandler{feedService: feedService}
}

// GetFeed returns the authenticated user's home feed
// GET /posts/feed
func (h *FeedHandler) GetFeed(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Access token required")
		return
	}

	page := parsePage(r, model.DefaultFeedLimit)
	posts, err := h.feedService.GetFeed(r.Context(), claims.UserID, page)
	if err != nil {
		httputil.WriteInternalError(w, "Failed to load feed")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, model.PostListResponse{Posts: posts})
}

// GetExplore returns a randomly ordered page across all posts
// GET /posts/explore (optional auth)
func (h *FeedHandler) GetExplore(w http.ResponseWriter, r *http.Request) {
	page := parsePage(r, model.DefaultPageLimit)
	posts, err := h.feedService.GetExplore(r.Context(), middleware.ViewerID(r.Context()), page)
	if err != nil {
		httputil.WriteInternalError(w, "Failed to load explore posts")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, model.PostListResponse{Posts: posts})
}
