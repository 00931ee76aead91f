package services

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spoorthyhm/dreampath/internal/models"
	"github.com/spoorthyhm/dreampath/internal/repository"
	"github.com/spoorthyhm/dreampath/internal/scheduler"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ReminderService encapsulates reminder CRUD plus trigger bookkeeping: a
// created or updated reminder is live in the scheduler before the call
// returns, and a deleted reminder's trigger is cancelled.
type ReminderService struct {
	repo  *repository.ReminderRepository
	sched *scheduler.Scheduler
}

// NewReminderService creates a new instance of ReminderService.
func NewReminderService(repo *repository.ReminderRepository, sched *scheduler.Scheduler) *ReminderService {
	return &ReminderService{
		repo:  repo,
		sched: sched,
	}
}

// ReminderInput is the creation/update surface. Text, when set, populates
// both Title and Message (the stored record requires both).
type ReminderInput struct {
	Text    string
	Title   string
	Message string
	Time    time.Time
	Type    string
	Repeat  string
}

func (in *ReminderInput) normalize() error {
	if in.Text != "" {
		if in.Title == "" {
			in.Title = in.Text
		}
		if in.Message == "" {
			in.Message = in.Text
		}
	}
	if in.Title == "" || in.Message == "" {
		return fmt.Errorf("reminder text and time are required")
	}
	if in.Time.IsZero() {
		return fmt.Errorf("reminder text and time are required")
	}
	if in.Type == "" {
		in.Type = models.ReminderTypeCustom
	}
	if !models.ValidReminderType(in.Type) {
		return fmt.Errorf("invalid reminder type %q", in.Type)
	}
	if in.Repeat == "" {
		in.Repeat = models.RepeatOnce
	}
	if !models.ValidRepeat(in.Repeat) {
		return fmt.Errorf("invalid repeat kind %q", in.Repeat)
	}
	return nil
}

// CreateReminder validates, persists and schedules a reminder.
func (s *ReminderService) CreateReminder(ctx context.Context, userID primitive.ObjectID, in ReminderInput) (*models.Reminder, error) {
	if err := in.normalize(); err != nil {
		return nil, err
	}

	reminder := &models.Reminder{
		UserID:    userID,
		Title:     in.Title,
		Message:   in.Message,
		Time:      in.Time,
		Type:      in.Type,
		Repeat:    in.Repeat,
		CreatedAt: time.Now(),
	}
	created, err := s.repo.CreateReminder(ctx, reminder)
	if err != nil {
		return nil, err
	}

	s.sched.Schedule(created)
	logrus.WithFields(logrus.Fields{
		"reminderID": created.ID.Hex(),
		"userID":     userID.Hex(),
	}).Info("Reminder created and scheduled")
	return created, nil
}

// GetReminders returns the user's reminders sorted by fire time.
func (s *ReminderService) GetReminders(ctx context.Context, userID primitive.ObjectID) ([]models.Reminder, error) {
	return s.repo.GetUserReminders(ctx, userID)
}

// UpdateReminder applies changes to a user's reminder and re-registers its
// trigger. Re-scheduling replaces the previous trigger, never duplicates it.
func (s *ReminderService) UpdateReminder(ctx context.Context, id, userID primitive.ObjectID, in ReminderInput) (*models.Reminder, error) {
	if err := in.normalize(); err != nil {
		return nil, err
	}

	update := bson.M{
		"title":   in.Title,
		"message": in.Message,
		"time":    in.Time,
		"type":    in.Type,
		"repeat":  in.Repeat,
	}
	updated, err := s.repo.UpdateReminder(ctx, id, userID, update)
	if err != nil {
		return nil, err
	}

	s.sched.Schedule(updated)
	return updated, nil
}

// DeleteReminder cancels the live trigger and removes the record.
func (s *ReminderService) DeleteReminder(ctx context.Context, id, userID primitive.ObjectID) (bool, error) {
	s.sched.Cancel(id)
	return s.repo.DeleteUserReminder(ctx, id, userID)
}
