package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spoorthyhm/dreampath/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Roadmap step reminders fire at this local hour.
const roadmapReminderHour = 9

// CreateRoadmapReminders derives a one-shot reminder per roadmap step and
// schedules each immediately. The first fires tomorrow at 09:00 local time,
// each following step one calendar day later at the same wall-clock time.
// A failing step is logged and skipped so roadmap creation never fails on
// reminder bookkeeping.
func (s *Scheduler) CreateRoadmapReminders(ctx context.Context, userID primitive.ObjectID, steps []models.RoadmapStep) []models.Reminder {
	now := s.now().In(s.loc)
	base := time.Date(now.Year(), now.Month(), now.Day(), roadmapReminderHour, 0, 0, 0, s.loc).AddDate(0, 0, 1)

	created := make([]models.Reminder, 0, len(steps))
	for i, step := range steps {
		number := step.StepNumber
		if number <= 0 {
			number = i + 1
		}
		title := step.Title
		if title == "" {
			title = fmt.Sprintf("Step %d", number)
		}
		message := step.Description
		if message == "" {
			message = fmt.Sprintf("Complete step %d", number)
		}

		rem := &models.Reminder{
			UserID:  userID,
			Title:   "Roadmap: " + title,
			Message: message,
			Time:    base.AddDate(0, 0, i),
			Type:    models.ReminderTypeRoadmap,
			Repeat:  models.RepeatOnce,
		}
		saved, err := s.reminders.CreateReminder(ctx, rem)
		if err != nil {
			logrus.WithError(err).Errorf("Failed to create reminder for roadmap step %d", number)
			continue
		}
		s.Schedule(saved)
		created = append(created, *saved)
	}

	logrus.Infof("Created and scheduled %d roadmap reminders for user %s", len(created), userID.Hex())
	return created
}
