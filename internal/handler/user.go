package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"pixelgram/internal/httputil"
	"pixelgram/internal/model"
	"pixelgram/internal/service"
	"pixelgram/internal/transport/http/middleware"
)

// UserHandler groups profile HTTP endpoints.
type UserHandler struct {
	userService  *service.UserService
	mediaService *service.MediaService
}

func NewUserHandler(userService *service.UserService, mediaService *service.MediaService) *UserHandler {
	return &UserHandler{
		userService:  userService,
		mediaService: mediaService,
	}
}

// GetProfile returns a user's profile with fresh counts
// GET /users/{username} (optional auth)
func (h *UserHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")
	viewerID := middleware.ViewerID(r.Context())

	profile, err := h.userService.GetProfile(r.Context(), username, viewerID)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			httputil.WriteNotFound(w, "User not found")
			return
		}
		httputil.WriteInternalError(w, "Failed to load profile")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, profile)
}

// UpdateProfile applies a partial profile update with an optional new
// avatar image
// PUT /users/profile (multipart)
func (h *UserHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Access token required")
		return
	}

	maxFormSize := int64(model.MaxAvatarSize) + 1024*1024 // form overhead
	r.Body = http.MaxBytesReader(w, r.Body, maxFormSize)
	if err := r.ParseMultipartForm(maxFormSize); err != nil {
		if strings.Contains(err.Error(), "request body too large") {
			httputil.WriteBadRequest(w, "Avatar exceeds 5MB limit")
			return
		}
		httputil.WriteBadRequest(w, "Invalid form data")
		return
	}

	var update model.ProfileUpdate
	if _, present := r.MultipartForm.Value["fullName"]; present {
		v := strings.TrimSpace(r.FormValue("fullName"))
		update.FullName = &v
	}
	if _, present := r.MultipartForm.Value["bio"]; present {
		v := r.FormValue("bio")
		update.Bio = &v
	}
	if _, present := r.MultipartForm.Value["private"]; present {
		v, err := strconv.ParseBool(r.FormValue("private"))
		if err != nil {
			httputil.WriteBadRequest(w, "Invalid private flag")
			return
		}
		update.Private = &v
	}

	file, header, err := r.FormFile("avatar")
	if err == nil {
		defer file.Close()
		avatarURL, uploadErr := h.mediaService.SaveAvatar(file, header)
		if uploadErr != nil {
			switch {
			case errors.Is(uploadErr, model.ErrFileTooLarge):
				httputil.WriteBadRequest(w, "Avatar exceeds 5MB limit")
			case errors.Is(uploadErr, model.ErrInvalidImageType):
				httputil.WriteBadRequest(w, "Only image files are allowed")
			default:
				httputil.WriteInternalError(w, "Failed to save avatar")
			}
			return
		}
		update.Avatar = &avatarURL
	} else if !errors.Is(err, http.ErrMissingFile) {
		httputil.WriteBadRequest(w, "Invalid avatar upload")
		return
	}

	user, err := h.userService.UpdateProfile(r.Context(), claims.UserID, &update)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrNoFieldsToUpdate):
			httputil.WriteBadRequest(w, "No fields to update")
		case errors.Is(err, model.ErrUserNotFound):
			httputil.WriteNotFound(w, "User not found")
		default:
			httputil.WriteInternalError(w, "Failed to update profile")
		}
		return
	}

	httputil.WriteJSON(w, http.StatusOK, map[string]interface{}{"user": user})
}

// Search matches users by username or name substring
// GET /users/search/{query} (optional auth)
func (h *UserHandler) Search(w http.ResponseWriter, r *http.Request) {
	query := chi.URLParam(r, "query")
	viewerID := middleware.ViewerID(r.Context())
	limit := parseLimit(r, model.DefaultPageLimit, model.MaxPageLimit)

	users, err := h.userService.Search(r.Context(), query, viewerID, limit)
	if err != nil {
		httputil.WriteInternalError(w, "Failed to search users")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, map[string]interface{}{"users": users})
}
