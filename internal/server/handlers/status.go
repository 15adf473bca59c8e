package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"fixmate/internal/domain/ticket"
	"fixmate/internal/service/engine"
)

// StatusHandler drives the ticket status lifecycle
type StatusHandler struct {
	engine *engine.Engine
}

// NewStatusHandler creates a new status handler
func NewStatusHandler(eng *engine.Engine) *StatusHandler {
	return &StatusHandler{engine: eng}
}

type statusRequest struct {
	Status ticket.Status `json:"status"`
}

// SetStatus moves one ticket to an explicitly selected status. A remote
// failure leaves the collection untouched; the retryable notification has
// already been raised by the engine, so the handler only reports the
// failure.
func (h *StatusHandler) SetStatus(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		respondWithError(w, http.StatusBadRequest, "Missing ticket ID", nil)
		return
	}

	var req statusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Status == "" {
		respondWithError(w, http.StatusBadRequest, "Invalid status payload", err)
		return
	}

	if err := h.engine.SetStatus(r.Context(), id, req.Status); err != nil {
		respondWithError(w, http.StatusBadGateway, "Failed to update status", err)
		return
	}
	respondWithJSON(w, http.StatusOK, h.engine.View())
}

// CycleStatus advances one ticket to the next status in the cycle
func (h *StatusHandler) CycleStatus(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		respondWithError(w, http.StatusBadRequest, "Missing ticket ID", nil)
		return
	}

	if err := h.engine.CycleStatus(r.Context(), id); err != nil {
		if errors.Is(err, ticket.ErrNotFound) {
			respondWithError(w, http.StatusNotFound, "Ticket not found", nil)
			return
		}
		respondWithError(w, http.StatusBadGateway, "Failed to update status", err)
		return
	}
	respondWithJSON(w, http.StatusOK, h.engine.View())
}
