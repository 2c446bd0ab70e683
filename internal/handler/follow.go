package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"pixelgram/internal/httputil"
	"pixelgram/internal/model"
	"pixelgram/internal/service"
	"pixelgram/internal/transport/http/middleware"
)

// FollowHandler groups follow-graph HTTP endpoints.
type FollowHandler struct {
	followService *service.FollowService
}

func NewFollowHandler(followService *service.FollowService) *FollowHandler {
	return &FollowHandler{followService: followService}
}

// Toggle flips the follow edge to the target user
// POST /follows/toggle
func (h *FollowHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Access token required")
		return
	}

	var req model.ToggleFollowRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteBadRequest(w, "Invalid request body")
		return
	}

	result, err := h.followService.Toggle(r.Context(), claims, req.UserID)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrUserIDRequired):
			httputil.WriteBadRequest(w, "User ID is required")
		case errors.Is(err, model.ErrCannotFollowSelf):
			httputil.WriteBadRequest(w, "Cannot follow yourself")
		case errors.Is(err, model.ErrUserNotFound):
			httputil.WriteNotFound(w, "User not found")
		default:
			httputil.WriteInternalError(w, "Failed to toggle follow")
		}
		return
	}

	httputil.WriteJSON(w, http.StatusOK, result)
}

// GetSuggestions ranks non-followed users by popularity
// GET /follows/suggestions
func (h *FollowHandler) GetSuggestions(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Access token required")
		return
	}

	limit := parseLimit(r, 5, model.MaxPageLimit)
	suggestions, err := h.followService.GetSuggestions(r.Context(), claims.UserID, limit)
	if err != nil {
		httputil.WriteInternalError(w, "Failed to load suggestions")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, map[string]interface{}{"suggestions": suggestions})
}

// Check reports whether the caller follows the target
// GET /follows/check/{userID}
func (h *FollowHandler) Check(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Access token required")
		return
	}

	userID, err := parseIDParam(r, "userID")
	if err != nil {
		httputil.WriteBadRequest(w, "Invalid user ID")
		return
	}

	following, err := h.followService.Check(r.Context(), claims.UserID, userID)
	if err != nil {
		httputil.WriteInternalError(w, "Failed to check follow")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, map[string]bool{"isFollowing": following})
}

// GetMutual lists followers of the target the caller also follows
// GET /follows/mutual/{userID}
func (h *FollowHandler) GetMutual(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Access token required")
		return
	}

	userID, err := parseIDParam(r, "userID")
	if err != nil {
		httputil.WriteBadRequest(w, "Invalid user ID")
		return
	}

	limit := parseLimit(r, model.DefaultPageLimit, model.MaxPageLimit)
	users, err := h.followService.GetMutual(r.Context(), claims.UserID, userID, limit)
	if err != nil {
		httputil.WriteInternalError(w, "Failed to load mutual followers")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, map[string]interface{}{"mutualFollowers": users})
}

// GetCounts returns follower/following counts for a user
// GET /follows/counts/{userID}
func (h *FollowHandler) GetCounts(w http.ResponseWriter, r *http.Request) {
	userID, err := parseIDParam(r, "userID")
	if err != nil {
		httputil.WriteBadRequest(w, "Invalid user ID")
		return
	}

	counts, err := h.followService.GetCounts(r.Context(), userID)
	if err != nil {
		httputil.WriteInternalError(w, "Failed to load follow counts")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, counts)
}

// GetFollowers lists a user's followers
// GET /users/{username}/followers
func (h *FollowHandler) GetFollowers(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")

	followers, err := h.followService.GetFollowers(r.Context(), username)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			httputil.WriteNotFound(w, "User not found")
			return
		}
		httputil.WriteInternalError(w, "Failed to load followers")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, map[string]interface{}{"followers": followers})
}

// GetFollowing lists the users a user follows
// GET /users/{username}/following
func (h *FollowHandler) GetFollowing(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")

	following, err := h.followService.GetFollowing(r.Context(), username)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			httputil.WriteNotFound(w, "User not found")
			return
		}
		httputil.WriteInternalError(w, "Failed to load following")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, map[string]interface{}{"following": following})
}
