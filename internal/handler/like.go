package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"pixelgram/internal/httputil"
	"pixelgram/internal/model"
	"pixelgram/internal/service"
	"pixelgram/internal/transport/http/middleware"
)

// LikeHandler groups like HTTP endpoints.
type LikeHandler struct {
	likeService *service.LikeService
}

func NewLikeHandler(likeService *service.LikeService) *LikeHandler {
	return &LikeHandler{likeService: likeService}
}

// Toggle flips the caller's like on a post
// POST /likes/toggle
func (h *LikeHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Access token required")
		return
	}

	var req model.ToggleLikeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteBadRequest(w, "Invalid request body")
		return
	}

	result, err := h.likeService.Toggle(r.Context(), claims, req.PostID)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrPostIDRequired):
			httputil.WriteBadRequest(w, "Post ID is required")
		case errors.Is(err, model.ErrPostNotFound):
			httputil.WriteNotFound(w, "Post not found")
		default:
			httputil.WriteInternalError(w, "Failed to toggle like")
		}
		return
	}

	httputil.WriteJSON(w, http.StatusOK, result)
}

// GetLikers lists users who liked a post
// GET /likes/post/{postID}
func (h *LikeHandler) GetLikers(w http.ResponseWriter, r *http.Request) {
	postID, err := parseIDParam(r, "postID")
	if err != nil {
		httputil.WriteBadRequest(w, "Invalid post ID")
		return
	}

	limit := parseLimit(r, model.DefaultPageLimit, model.MaxPageLimit)
	likers, err := h.likeService.GetLikers(r.Context(), postID, limit)
	if err != nil {
		if errors.Is(err, model.ErrPostNotFound) {
			httputil.WriteNotFound(w, "Post not found")
			return
		}
		httputil.WriteInternalError(w, "Failed to load likes")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, map[string]interface{}{"likes": likers})
}

// Count returns a post's like count
// GET /likes/count/{postID}
func (h *LikeHandler) Count(w http.ResponseWriter, r *http.Request) {
	postID, err := parseIDParam(r, "postID")
	if err != nil {
		httputil.WriteBadRequest(w, "Invalid post ID")
		return
	}

	count, err := h.likeService.Count(r.Context(), postID)
	if err != nil {
		httputil.WriteInternalError(w, "Failed to count likes")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, map[string]int{"likesCount": count})
}

// Check reports whether the caller liked a post
// GET /likes/check/{postID}
func (h *LikeHandler) Check(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Access token required")
		return
	}

	postID, err := parseIDParam(r, "postID")
	if err != nil {
		httputil.WriteBadRequest(w, "Invalid post ID")
		return
	}

	liked, err := h.likeService.Check(r.Context(), postID, claims.UserID)
	if err != nil {
		httputil.WriteInternalError(w, "Failed to check like")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, map[string]bool{"isLiked": liked})
}
