package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"fixmate/internal/domain/ticket"
	"fixmate/internal/service/engine"
)

// DashboardHandler serves the derived view and the canonical collection
type DashboardHandler struct {
	engine *engine.Engine
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(eng *engine.Engine) *DashboardHandler {
	return &DashboardHandler{engine: eng}
}

// GetView returns the current derived view snapshot
func (h *DashboardHandler) GetView(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, h.engine.View())
}

// GetTicket returns one normalized ticket by id
func (h *DashboardHandler) GetTicket(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		respondWithError(w, http.StatusBadRequest, "Missing ticket ID", nil)
		return
	}

	t, err := h.engine.Ticket(id)
	if err != nil {
		if errors.Is(err, ticket.ErrNotFound) {
			respondWithError(w, http.StatusNotFound, "Ticket not found", nil)
		} else {
			respondWithError(w, http.StatusInternalServerError, "Failed to get ticket", err)
		}
		return
	}

	respondWithJSON(w, http.StatusOK, t)
}

// Reload re-runs the remote fetch. Load failures surface as notifications,
// not HTTP errors: the previous collection stays intact and the handler
// reports the outcome via the refreshed view.
func (h *DashboardHandler) Reload(w http.ResponseWriter, r *http.Request) {
	if err := h.engine.Load(r.Context()); err != nil {
		respondWithJSON(w, http.StatusAccepted, h.engine.View())
		return
	}
	respondWithJSON(w, http.StatusOK, h.engine.View())
}
