package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	"github.com/spoorthyhm/dreampath/internal/services"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// FutureMessageHandler handles HTTP requests related to future messages.
type FutureMessageHandler struct {
	Service *services.FutureMessageService
}

// NewFutureMessageHandler creates a new instance of FutureMessageHandler.
func NewFutureMessageHandler(service *services.FutureMessageService) *FutureMessageHandler {
	return &FutureMessageHandler{Service: service}
}

// CreateFutureMessageHandler stores a message locked until deliverAt.
func (h *FutureMessageHandler) CreateFutureMessageHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var req struct {
		Message   string `json:"message"`
		DeliverAt string `json:"deliverAt"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	if req.Message == "" || req.DeliverAt == "" {
		http.Error(w, "Message and delivery date are required", http.StatusBadRequest)
		return
	}

	unlockDate, err := time.Parse(time.RFC3339, req.DeliverAt)
	if err != nil {
		logrus.WithField("deliverAt", req.DeliverAt).Warn("Invalid delivery date format")
		http.Error(w, "Invalid delivery date format", http.StatusBadRequest)
		return
	}

	msg, err := h.Service.CreateFutureMessage(r.Context(), userID, req.Message, unlockDate)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"message": "Future message saved",
		"id":      msg.ID,
	})
}

// GetFutureMessagesHandler lists the user's messages; locked bodies are
// blanked out.
func (h *FutureMessageHandler) GetFutureMessagesHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	messages, err := h.Service.GetFutureMessages(r.Context(), userID)
	if err != nil {
		logrus.WithError(err).Error("Failed to fetch future messages")
		http.Error(w, "Server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{"messages": messages})
}

// OpenFutureMessageHandler reveals a message once its unlock date passed.
func (h *FutureMessageHandler) OpenFutureMessageHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	id, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "Invalid message ID", http.StatusBadRequest)
		return
	}

	msg, err := h.Service.OpenFutureMessage(r.Context(), id, userID)
	if err != nil {
		if errors.Is(err, services.ErrMessageLocked) {
			http.Error(w, "Message is still locked", http.StatusForbidden)
			return
		}
		http.Error(w, "Message not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(msg)
}
