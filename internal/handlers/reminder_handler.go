package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	"github.com/spoorthyhm/dreampath/internal/services"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ReminderHandler handles HTTP requests related to reminders.
type ReminderHandler struct {
	Service *services.ReminderService
}

// NewReminderHandler creates a new instance of ReminderHandler.
func NewReminderHandler(service *services.ReminderService) *ReminderHandler {
	return &ReminderHandler{Service: service}
}

// reminderRequest is the wire shape for create/update. The frontend sends
// either a single "text" field or separate title/message.
type reminderRequest struct {
	Text    string `json:"text"`
	Title   string `json:"title"`
	Message string `json:"message"`
	Time    string `json:"time"`
	Type    string `json:"type"`
	Repeat  string `json:"repeat"`
}

func (req *reminderRequest) toInput() (services.ReminderInput, error) {
	in := services.ReminderInput{
		Text:    req.Text,
		Title:   req.Title,
		Message: req.Message,
		Type:    req.Type,
		Repeat:  req.Repeat,
	}
	if req.Time != "" {
		t, err := time.Parse(time.RFC3339, req.Time)
		if err != nil {
			return in, err
		}
		in.Time = t
	}
	return in, nil
}

// CreateReminderHandler validates, persists and schedules a new reminder.
func (h *ReminderHandler) CreateReminderHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var req reminderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	in, err := req.toInput()
	if err != nil {
		logrus.WithError(err).Warn("Unparseable reminder time")
		http.Error(w, "Invalid reminder time", http.StatusBadRequest)
		return
	}

	reminder, err := h.Service.CreateReminder(r.Context(), userID, in)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(reminder)
}

// GetRemindersHandler lists the user's reminders sorted by fire time.
func (h *ReminderHandler) GetRemindersHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	reminders, err := h.Service.GetReminders(r.Context(), userID)
	if err != nil {
		logrus.WithError(err).Error("Failed to fetch reminders")
		http.Error(w, "Error fetching reminders", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(reminders)
}

// UpdateReminderHandler changes a reminder and re-registers its trigger.
func (h *ReminderHandler) UpdateReminderHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	id, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "Invalid reminder ID", http.StatusBadRequest)
		return
	}

	var req reminderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	in, err := req.toInput()
	if err != nil {
		http.Error(w, "Invalid reminder time", http.StatusBadRequest)
		return
	}

	reminder, err := h.Service.UpdateReminder(r.Context(), id, userID, in)
	if err != nil {
		http.Error(w, "Reminder not found or unauthorized to update", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(reminder)
}

// DeleteReminderHandler cancels the trigger and removes the record.
func (h *ReminderHandler) DeleteReminderHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	id, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "Invalid reminder ID", http.StatusBadRequest)
		return
	}

	deleted, err := h.Service.DeleteReminder(r.Context(), id, userID)
	if err != nil {
		logrus.WithError(err).Error("Failed to delete reminder")
		http.Error(w, "Error deleting reminder", http.StatusInternalServerError)
		return
	}
	if !deleted {
		http.Error(w, "Reminder not found or unauthorized to delete", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"message": "Reminder deleted successfully"})
}
