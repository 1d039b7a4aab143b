package handler

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"socialite/internal/httputil"
	"socialite/internal/model"
	"socialite/internal/service"
	"socialite/internal/transport/http/middleware"
)

type NotificationHandler struct {
	notificationService *service.NotificationService
}

func NewNotificationHandler(notificationService *service.NotificationService) *NotificationHandler {
	return &NotificationHandler{notificationService: notificationService}
}

// List handles GET /notifications
func (h *NotificationHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Authentication required")
		return
	}
	limit, offset, ok := pagination(w, r)
	if !ok {
		return
	}

	notifications, err := h.notificationService.List(r.Context(), userID, limit, offset)
	if err != nil {
		log.Printf("[ERROR] List notifications handler: user=%d err=%v", userID, err)
		httputil.WriteInternalError(w, err, "Failed to get notifications")
		return
	}

	httputil.WritePage(w, http.StatusOK, notifications, limit, offset)
}

// UnreadCount handles GET /notifications/unread-count
func (h *NotificationHandler) UnreadCount(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Authentication required")
		return
	}

	count, err := h.notificationService.UnreadCount(r.Context(), userID)
	if err != nil {
		log.Printf("[ERROR] UnreadCount handler: user=%d err=%v", userID, err)
		httputil.WriteInternalError(w, err, "Failed to get unread count")
		return
	}

	httputil.WriteSuccess(w, http.StatusOK, map[string]int{"unread_count": count})
}

// MarkRead handles POST /notifications/{id}/read
func (h *NotificationHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Authentication required")
		return
	}
	notificationID, ok := idParam(w, r, "id")
	if !ok {
		return
	}

	if err := h.notificationService.MarkRead(r.Context(), userID, notificationID); err != nil {
		if errors.Is(err, model.ErrNotificationNotFound) {
			httputil.WriteNotFound(w, "Notification not found")
			return
		}
		log.Printf("[ERROR] MarkRead notification handler: user=%d notification=%d err=%v", userID, notificationID, err)
		httputil.WriteInternalError(w, err, "Failed to mark notification read")
		return
	}

	httputil.WriteMessage(w, http.StatusOK, "Notification marked read")
}

// MarkAllRead handles POST /notifications/read-all
func (h *NotificationHandler) MarkAllRead(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Authentication required")
		return
	}

	if err := h.notificationService.MarkAllRead(r.Context(), userID); err != nil {
		log.Printf("[ERROR] MarkAllRead handler: user=%d err=%v", userID, err)
		httputil.WriteInternalError(w, err, "Failed to mark notifications read")
		return
	}

	httputil.WriteMessage(w, http.StatusOK, "All notifications marked read")
}

// GetPreferences handles GET /notifications/preferences
func (h *NotificationHandler) GetPreferences(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Authentication required")
		return
	}

	prefs, err := h.notificationService.GetPreferences(r.Context(), userID)
	if err != nil {
		log.Printf("[ERROR] GetPreferences handler: user=%d err=%v", userID, err)
		httputil.WriteInternalError(w, err, "Failed to get preferences")
		return
	}

	httputil.WriteSuccess(w, http.StatusOK, prefs)
}

// UpdatePreferences handles PUT /notifications/preferences
func (h *NotificationHandler) UpdatePreferences(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Authentication required")
		return
	}

	var prefs model.NotificationPreferences
	if err := json.NewDecoder(r.Body).Decode(&prefs); err != nil {
		httputil.WriteBadRequest(w, "Invalid request body")
		return
	}
	prefs.UserID = userID

	if err := h.notificationService.UpdatePreferences(r.Context(), &prefs); err != nil {
		log.Printf("[ERROR] UpdatePreferences handler: user=%d err=%v", userID, err)
		httputil.WriteInternalError(w, err, "Failed to update preferences")
		return
	}

	httputil.WriteSuccess(w, http.StatusOK, prefs)
}

// Cleanup handles POST /admin/notifications/cleanup and removes read
// notifications past the retention window.
func (h *NotificationHandler) Cleanup(w http.ResponseWriter, r *http.Request) {
	deleted, err := h.notificationService.CleanupRead(r.Context(), model.NotificationRetention)
	if err != nil {
		log.Printf("[ERROR] Notification cleanup handler: err=%v", err)
		httputil.WriteInternalError(w, err, "Failed to clean up notifications")
		return
	}

	httputil.WriteSuccess(w, http.StatusOK, map[string]int64{"deleted": deleted})
}
