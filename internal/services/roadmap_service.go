package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spoorthyhm/dreampath/internal/models"
	"github.com/spoorthyhm/dreampath/internal/repository"
	"github.com/spoorthyhm/dreampath/internal/scheduler"
	"github.com/spoorthyhm/dreampath/pkg/ai"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TextGenerator is the opaque AI capability: prompt in, raw text out. The
// raw text is expected to contain a single JSON object.
type TextGenerator interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// RoadmapService generates, stores and mutates roadmaps.
type RoadmapService struct {
	repo     *repository.RoadmapRepository
	userRepo *repository.UserRepository
	sched    *scheduler.Scheduler
	gen      TextGenerator
}

// NewRoadmapService creates a new instance of RoadmapService.
func NewRoadmapService(repo *repository.RoadmapRepository, userRepo *repository.UserRepository, sched *scheduler.Scheduler, gen TextGenerator) *RoadmapService {
	return &RoadmapService{
		repo:     repo,
		userRepo: userRepo,
		sched:    sched,
		gen:      gen,
	}
}

const roadmapPromptTemplate = `
Generate a detailed roadmap for the goal: %q.
Return ONLY clean JSON in this exact structure:

{
  "steps": [
    {
      "stepNumber": 1,
      "title": "Step title",
      "description": "Short explanation",
      "duration": "2 weeks",
      "tasks": {
        "daily": ["Task 1", "Task 2"],
        "weekly": ["Task 1", "Task 2"]
      },
      "tools": ["Tool 1", "Tool 2"],
      "resources": {
        "youtube": ["Link 1", "Link 2"],
        "courses": ["Link 1", "Link 2"]
      },
      "completed": false
    }
  ],
  "finalChecklist": ["Checklist item 1", "Checklist item 2"]
}

ONLY RETURN JSON. DO NOT USE backticks.
`

type roadmapPayload struct {
	Steps          []models.RoadmapStep `json:"steps"`
	FinalChecklist []string             `json:"finalChecklist"`
}

// GenerateRoadmap asks the AI for a step plan, persists it and schedules a
// one-shot reminder per step. Reminder scheduling failures are logged only;
// the roadmap itself is already saved and is returned regardless.
func (s *RoadmapService) GenerateRoadmap(ctx context.Context, userID primitive.ObjectID, goal string) (*models.Roadmap, error) {
	if goal == "" {
		return nil, fmt.Errorf("goal is required")
	}

	raw, err := s.gen.Complete(ctx, fmt.Sprintf(roadmapPromptTemplate, goal))
	if err != nil {
		return nil, fmt.Errorf("AI request failed: %v", err)
	}

	span, err := ai.ExtractJSON(raw)
	if err != nil {
		logrus.WithField("output", raw).Error("AI returned no recognizable JSON structure")
		return nil, fmt.Errorf("AI returned invalid JSON")
	}

	var payload roadmapPayload
	if err := json.Unmarshal([]byte(span), &payload); err != nil {
		logrus.WithError(err).Error("Failed to parse AI roadmap JSON")
		return nil, fmt.Errorf("AI returned invalid JSON")
	}

	roadmap := &models.Roadmap{
		UserID:         userID,
		Goal:           goal,
		Steps:          payload.Steps,
		FinalChecklist: payload.FinalChecklist,
		CreatedAt:      time.Now(),
	}
	created, err := s.repo.CreateRoadmap(ctx, roadmap)
	if err != nil {
		return nil, err
	}

	// One call produces live triggers; partial failures are logged inside.
	s.sched.CreateRoadmapReminders(ctx, userID, created.Steps)

	logrus.WithFields(logrus.Fields{
		"roadmapID": created.ID.Hex(),
		"steps":     len(created.Steps),
	}).Info("Roadmap generated")
	return created, nil
}

// GetRoadmaps returns a user's roadmaps, newest first.
func (s *RoadmapService) GetRoadmaps(ctx context.Context, userID primitive.ObjectID) ([]models.Roadmap, error) {
	return s.repo.GetUserRoadmaps(ctx, userID)
}

// ToggleStep flips the completed flag of one step and returns the updated
// roadmap together with its progress percentage. Completing a step also
// advances the owner's streak.
func (s *RoadmapService) ToggleStep(ctx context.Context, roadmapID, userID primitive.ObjectID, stepIndex int) (*models.Roadmap, int, error) {
	roadmap, err := s.repo.GetRoadmapByID(ctx, roadmapID)
	if err != nil {
		return nil, 0, fmt.Errorf("roadmap not found")
	}
	if roadmap.UserID != userID {
		return nil, 0, fmt.Errorf("forbidden")
	}
	if stepIndex < 0 || stepIndex >= len(roadmap.Steps) {
		return nil, 0, fmt.Errorf("invalid step index")
	}

	roadmap.Steps[stepIndex].Completed = !roadmap.Steps[stepIndex].Completed
	if err := s.repo.UpdateRoadmapSteps(ctx, roadmapID, roadmap.Steps); err != nil {
		return nil, 0, err
	}

	if roadmap.Steps[stepIndex].Completed {
		if err := s.recordCompletion(ctx, userID); err != nil {
			logrus.WithError(err).Warn("Failed to update streak after step completion")
		}
	}

	return roadmap, roadmap.Progress(), nil
}

// recordCompletion maintains the streak fields: consecutive days extend the
// streak, a same-day completion keeps it, anything else restarts at 1.
func (s *RoadmapService) recordCompletion(ctx context.Context, userID primitive.ObjectID) error {
	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return err
	}

	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	streak := 1
	if !user.LastCompletionDate.IsZero() {
		last := user.LastCompletionDate.In(now.Location())
		lastDay := time.Date(last.Year(), last.Month(), last.Day(), 0, 0, 0, 0, now.Location())
		switch today.Sub(lastDay) {
		case 0:
			streak = user.Streak
			if streak < 1 {
				streak = 1
			}
		case 24 * time.Hour:
			streak = user.Streak + 1
		}
	}

	_, err = s.userRepo.UpdateUser(ctx, userID, bson.M{
		"streak":               streak,
		"last_completion_date": now,
		"updated_at":           now,
	})
	return err
}
