package handler

import (
	"net/http"

	"pixelgram/internal/httputil"
	"pixelgram/internal/model"
	"pixelgram/internal/service"
	"pixelgram/internal/transport/http/middleware"
)

// NotificationHandler groups notification HTTP endpoints.
type NotificationHandler struct {
	notificationService *service.NotificationService
}

func NewNotificationHandler(notificationService *service.NotificationService) *NotificationHandler {
	return &NotificationHandler{notificationService: notificationService}
}

// List returns the caller's notifications with the unread badge count
// GET /notifications
func (h *NotificationHandler) List(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Access token required")
		return
	}

	page := parsePage(r, model.DefaultPageLimit)
	resp, err := h.notificationService.List(r.Context(), claims.UserID, page)
	if err != nil {
		httputil.WriteInternalError(w, "Failed to load notifications")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, resp)
}

// MarkAllRead clears the caller's unread flags
// PUT /notifications/read
func (h *NotificationHandler) MarkAllRead(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Access token required")
		return
	}

	if err := h.notificationService.MarkAllRead(r.Context(), claims.UserID); err != nil {
		httputil.WriteInternalError(w, "Failed to mark notifications read")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, map[string]string{"message": "Notifications marked as read"})
}

// UnreadCount returns the unread badge count
// GET /notifications/unread-count
func (h *NotificationHandler) UnreadCount(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Access token required")
		return
	}

	count, err := h.notificationService.UnreadCount(r.Context(), claims.UserID)
	if err != nil {
		httputil.WriteInternalError(w, "Failed to count notifications")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, map[string]int{"unreadCount": count})
}
