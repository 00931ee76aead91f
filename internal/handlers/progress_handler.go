package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/spoorthyhm/dreampath/internal/services"
)

// ProgressHandler serves the aggregated dashboard statistics.
type ProgressHandler struct {
	Service *services.ProgressService
}

// NewProgressHandler creates a new instance of ProgressHandler.
func NewProgressHandler(service *services.ProgressService) *ProgressHandler {
	return &ProgressHandler{Service: service}
}

// GetProgressHandler returns the user's activity counters.
func (h *ProgressHandler) GetProgressHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	stats := h.Service.GetStats(r.Context(), userID)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(stats)
}
