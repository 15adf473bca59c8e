package handlers

import (
	"encoding/json"
	"net/http"

	"fixmate/internal/domain/ticket"
	"fixmate/internal/service/engine"
)

// FilterHandler manages the two-phase filter criteria
type FilterHandler struct {
	engine *engine.Engine
}

// NewFilterHandler creates a new filter handler
func NewFilterHandler(eng *engine.Engine) *FilterHandler {
	return &FilterHandler{engine: eng}
}

// SetPending replaces the pending criteria. This never re-derives the view;
// only Apply or Reset do.
func (h *FilterHandler) SetPending(w http.ResponseWriter, r *http.Request) {
	var criteria ticket.Criteria
	if err := json.NewDecoder(r.Body).Decode(&criteria); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid filter criteria", err)
		return
	}

	h.engine.SetPendingCriteria(criteria)
	respondWithJSON(w, http.StatusOK, h.engine.PendingCriteria())
}

// Apply copies pending criteria into the applied instance and re-derives
func (h *FilterHandler) Apply(w http.ResponseWriter, r *http.Request) {
	h.engine.Apply()
	respondWithJSON(w, http.StatusOK, h.engine.View())
}

// Reset restores default criteria and re-derives
func (h *FilterHandler) Reset(w http.ResponseWriter, r *http.Request) {
	h.engine.Reset()
	respondWithJSON(w, http.StatusOK, h.engine.View())
}
