package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/sirupsen/logrus"
	"github.com/spoorthyhm/dreampath/internal/services"
)

// DecoderHandler handles HTTP requests related to dream interpretation.
type DecoderHandler struct {
	Service *services.DecoderService
}

// NewDecoderHandler creates a new instance of DecoderHandler.
func NewDecoderHandler(service *services.DecoderService) *DecoderHandler {
	return &DecoderHandler{Service: service}
}

// CreateDecoderHandler interprets a dream and stores the result.
func (h *DecoderHandler) CreateDecoderHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var req struct {
		DreamText string `json:"dreamText"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	if req.DreamText == "" {
		http.Error(w, "Dream text is required", http.StatusBadRequest)
		return
	}

	decoder, err := h.Service.CreateDecoder(r.Context(), userID, req.DreamText)
	if err != nil {
		logrus.WithError(err).Error("Failed to create decoder")
		http.Error(w, "Failed to create decoder", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"message": "Decoder created",
		"decoder": decoder,
	})
}

// GetDecodersHandler lists the user's stored interpretations.
func (h *DecoderHandler) GetDecodersHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	decoders, err := h.Service.GetDecoders(r.Context(), userID)
	if err != nil {
		logrus.WithError(err).Error("Failed to fetch decoders")
		http.Error(w, "Failed to fetch decoders", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(decoders)
}

// DecodeDreamHandler interprets a dream without persisting anything.
func (h *DecoderHandler) DecodeDreamHandler(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireUser(w, r); !ok {
		return
	}

	var req struct {
		DreamText string `json:"dreamText"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	if req.DreamText == "" {
		http.Error(w, "Dream text is required", http.StatusBadRequest)
		return
	}

	decoded, err := h.Service.DecodeDream(r.Context(), req.DreamText)
	if err != nil {
		logrus.WithError(err).Error("Failed to decode dream")
		http.Error(w, "Failed to decode dream", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"decoded": decoded})
}
