package handler

import (
	"errors"
	"net/http"
	"strings"

	"pixelgram/internal/httputil"
	"pixelgram/internal/model"
	"pixelgram/internal/service"
	"pixelgram/internal/transport/http/middleware"
)

// StoryHandler groups story HTTP endpoints.
type StoryHandler struct {
	storyService *service.StoryService
}

func NewStoryHandler(storyService *service.StoryService) *StoryHandler {
	return &StoryHandler{storyService: storyService}
}

// Create posts a story frame that expires in 24 hours
// POST /stories
func (h *StoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Access token required")
		return
	}

	maxFormSize := int64(model.MaxPostImageSize) + 1024*1024
	r.Body = http.MaxBytesReader(w, r.Body, maxFormSize)
	if err := r.ParseMultipartForm(maxFormSize); err != nil {
		if strings.Contains(err.Error(), "request body too large") {
			httputil.WriteBadRequest(w, "Image exceeds 10MB limit")
			return
		}
		httputil.WriteBadRequest(w, "Invalid form data")
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		httputil.WriteBadRequest(w, "Image is required")
		return
	}
	defer file.Close()

	story, err := h.storyService.Create(r.Context(), claims.UserID, file, header)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrFileTooLarge):
			httputil.WriteBadRequest(w, "Image exceeds 10MB limit")
		case errors.Is(err, model.ErrInvalidImageType):
			httputil.WriteBadRequest(w, "Only image files are allowed")
		default:
			httputil.WriteInternalError(w, "Failed to create story")
		}
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, map[string]interface{}{"story": story})
}

// GetFeed returns unexpired stories from the caller's follow set
// GET /stories/feed
func (h *StoryHandler) GetFeed(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Access token required")
		return
	}

	stories, err := h.storyService.GetFeed(r.Context(), claims.UserID)
	if err != nil {
		httputil.WriteInternalError(w, "Failed to load stories")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, map[string]interface{}{"stories": stories})
}

// MarkViewed records a view receipt for a story
// POST /stories/{id}/view
func (h *StoryHandler) MarkViewed(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Access token required")
		return
	}

	storyID, err := parseIDParam(r, "id")
	if err != nil {
		httputil.WriteBadRequest(w, "Invalid story ID")
		return
	}

	if err := h.storyService.MarkViewed(r.Context(), storyID, claims.UserID); err != nil {
		if errors.Is(err, model.ErrStoryNotFound) {
			httputil.WriteNotFound(w, "Story not found")
			return
		}
		httputil.WriteInternalError(w, "Failed to record story view")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, map[string]string{"message": "Story viewed"})
}
