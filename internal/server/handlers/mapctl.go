package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"fixmate/internal/domain/ticket"
	"fixmate/internal/service/engine"
)

// MapHandler controls selection, the density overlay and camera focus
type MapHandler struct {
	engine *engine.Engine
}

// NewMapHandler creates a new map handler
func NewMapHandler(eng *engine.Engine) *MapHandler {
	return &MapHandler{engine: eng}
}

type idRequest struct {
	ID string `json:"id"`
}

type densityRequest struct {
	Enabled bool `json:"enabled"`
}

// Select marks a ticket as the detail-view selection
func (h *MapHandler) Select(w http.ResponseWriter, r *http.Request) {
	var req idRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ID == "" {
		respondWithError(w, http.StatusBadRequest, "Missing ticket ID", err)
		return
	}

	if err := h.engine.Select(req.ID); err != nil {
		if errors.Is(err, ticket.ErrNotFound) {
			respondWithError(w, http.StatusNotFound, "Ticket not found", nil)
			return
		}
		respondWithError(w, http.StatusInternalServerError, "Failed to select ticket", err)
		return
	}
	respondWithJSON(w, http.StatusOK, h.engine.View())
}

// ClearSelection closes the detail view
func (h *MapHandler) ClearSelection(w http.ResponseWriter, r *http.Request) {
	h.engine.ClearSelection()
	respondWithJSON(w, http.StatusOK, h.engine.View())
}

// SetDensity toggles the density overlay
func (h *MapHandler) SetDensity(w http.ResponseWriter, r *http.Request) {
	var req densityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid density payload", err)
		return
	}

	h.engine.SetDensity(req.Enabled)
	respondWithJSON(w, http.StatusOK, h.engine.View())
}

// FlyTo focuses the camera on one ticket and selects it
func (h *MapHandler) FlyTo(w http.ResponseWriter, r *http.Request) {
	var req idRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ID == "" {
		respondWithError(w, http.StatusBadRequest, "Missing ticket ID", err)
		return
	}

	if err := h.engine.FlyTo(req.ID); err != nil {
		if errors.Is(err, ticket.ErrNotFound) {
			respondWithError(w, http.StatusNotFound, "Ticket not found", nil)
			return
		}
		respondWithError(w, http.StatusInternalServerError, "Failed to focus ticket", err)
		return
	}
	respondWithJSON(w, http.StatusOK, h.engine.View())
}
