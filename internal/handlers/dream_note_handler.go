package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	"github.com/spoorthyhm/dreampath/internal/services"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DreamNoteHandler handles HTTP requests related to dream notes.
type DreamNoteHandler struct {
	Service *services.DreamNoteService
}

// NewDreamNoteHandler creates a new instance of DreamNoteHandler.
func NewDreamNoteHandler(service *services.DreamNoteService) *DreamNoteHandler {
	return &DreamNoteHandler{Service: service}
}

// CreateDreamNoteHandler stores a new note.
func (h *DreamNoteHandler) CreateDreamNoteHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var req struct {
		Title   string `json:"title"`
		Content string `json:"content"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	note, err := h.Service.CreateDreamNote(r.Context(), userID, req.Title, req.Content)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"message": "Dream Note saved",
		"note":    note,
	})
}

// GetDreamNotesHandler lists the user's notes, newest first.
func (h *DreamNoteHandler) GetDreamNotesHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	notes, err := h.Service.GetDreamNotes(r.Context(), userID)
	if err != nil {
		logrus.WithError(err).Error("Failed to fetch dream notes")
		http.Error(w, "Error fetching notes", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(notes)
}

// UpdateDreamNoteHandler changes title and/or content.
func (h *DreamNoteHandler) UpdateDreamNoteHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	id, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "Invalid note ID", http.StatusBadRequest)
		return
	}

	var req struct {
		Title   string `json:"title"`
		Content string `json:"content"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	note, err := h.Service.UpdateDreamNote(r.Context(), id, userID, req.Title, req.Content)
	if err != nil {
		http.Error(w, "Note not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"message": "Note updated",
		"note":    note,
	})
}

// DeleteDreamNoteHandler removes a note.
func (h *DreamNoteHandler) DeleteDreamNoteHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	id, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "Invalid note ID", http.StatusBadRequest)
		return
	}

	deleted, err := h.Service.DeleteDreamNote(r.Context(), id, userID)
	if err != nil {
		logrus.WithError(err).Error("Failed to delete dream note")
		http.Error(w, "Error deleting note", http.StatusInternalServerError)
		return
	}
	if !deleted {
		http.Error(w, "Note not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"message": "Note deleted"})
}
