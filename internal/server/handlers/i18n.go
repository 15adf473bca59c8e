package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"fixmate/internal/i18n"
)

// I18nHandler serves the locale dictionaries
type I18nHandler struct {
	bundle *i18n.Bundle
}

// NewI18nHandler creates a new i18n handler
func NewI18nHandler(bundle *i18n.Bundle) *I18nHandler {
	return &I18nHandler{bundle: bundle}
}

// GetDictionary returns one locale's flat key-to-string dictionary
func (h *I18nHandler) GetDictionary(w http.ResponseWriter, r *http.Request) {
	locale := chi.URLParam(r, "locale")
	if locale == "" {
		respondWithError(w, http.StatusBadRequest, "Missing locale", nil)
		return
	}

	dict := h.bundle.Dictionary(locale)
	if dict == nil {
		respondWithError(w, http.StatusNotFound, "Unknown locale", nil)
		return
	}
	respondWithJSON(w, http.StatusOK, dict)
}
