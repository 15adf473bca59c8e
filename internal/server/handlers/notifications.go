package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"fixmate/internal/service/engine"
)

// NotificationHandler exposes the notification stack
type NotificationHandler struct {
	engine *engine.Engine
}

// NewNotificationHandler creates a new notification handler
func NewNotificationHandler(eng *engine.Engine) *NotificationHandler {
	return &NotificationHandler{engine: eng}
}

// List returns the notifications currently on screen
func (h *NotificationHandler) List(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, h.engine.Notifications())
}

// InvokeAction runs a notification's action (e.g. Retry) and dismisses it
func (h *NotificationHandler) InvokeAction(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		respondWithError(w, http.StatusBadRequest, "Missing notification ID", nil)
		return
	}

	if !h.engine.InvokeNotification(id) {
		respondWithError(w, http.StatusNotFound, "No actionable notification", nil)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]string{"status": "invoked"})
}

// Dismiss removes a notification without running its action
func (h *NotificationHandler) Dismiss(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		respondWithError(w, http.StatusBadRequest, "Missing notification ID", nil)
		return
	}

	h.engine.DismissNotification(id)
	w.WriteHeader(http.StatusNoContent)
}
