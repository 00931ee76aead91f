package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/sirupsen/logrus"
	"github.com/spoorthyhm/dreampath/internal/services"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RoadmapHandler handles HTTP requests related to roadmaps.
type RoadmapHandler struct {
	Service *services.RoadmapService
}

// NewRoadmapHandler creates a new instance of RoadmapHandler.
func NewRoadmapHandler(service *services.RoadmapService) *RoadmapHandler {
	return &RoadmapHandler{Service: service}
}

// GenerateRoadmapHandler asks the AI for a plan and schedules its step
// reminders.
func (h *RoadmapHandler) GenerateRoadmapHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var req struct {
		Goal string `json:"goal"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	if req.Goal == "" {
		http.Error(w, "Goal is required", http.StatusBadRequest)
		return
	}

	roadmap, err := h.Service.GenerateRoadmap(r.Context(), userID, req.Goal)
	if err != nil {
		logrus.WithError(err).Error("Roadmap generation failed")
		http.Error(w, "Failed to generate roadmap", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"message": "Roadmap created successfully",
		"roadmap": roadmap,
	})
}

// GetRoadmapsHandler lists the user's roadmaps, newest first.
func (h *RoadmapHandler) GetRoadmapsHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	roadmaps, err := h.Service.GetRoadmaps(r.Context(), userID)
	if err != nil {
		logrus.WithError(err).Error("Failed to fetch roadmaps")
		http.Error(w, "Failed to retrieve roadmaps", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{"roadmap": roadmaps})
}

// UpdateRoadmapStepHandler toggles one step's completed flag and returns
// the roadmap with its progress percentage.
func (h *RoadmapHandler) UpdateRoadmapStepHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var req struct {
		RoadmapID string `json:"roadmapId"`
		StepIndex int    `json:"stepIndex"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	roadmapID, err := primitive.ObjectIDFromHex(req.RoadmapID)
	if err != nil {
		http.Error(w, "Invalid roadmap ID", http.StatusBadRequest)
		return
	}

	roadmap, progress, err := h.Service.ToggleStep(r.Context(), roadmapID, userID, req.StepIndex)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"message":  "Step updated",
		"roadmap":  roadmap,
		"progress": fmt.Sprintf("%d%%", progress),
	})
}
