package services

import (
	"context"

	"github.com/sirupsen/logrus"
	"github.com/spoorthyhm/dreampath/internal/repository"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ProgressStats aggregates a user's activity counters for the dashboard.
type ProgressStats struct {
	DreamCount     int64 `json:"dreamCount"`
	RoadmapCount   int64 `json:"roadmapCount"`
	CompletedTasks int   `json:"completedTasks"`
	FutureMessages int64 `json:"futureMessages"`
}

// ProgressService aggregates per-user statistics across collections.
type ProgressService struct {
	dreamNotes     *repository.DreamNoteRepository
	roadmaps       *repository.RoadmapRepository
	futureMessages *repository.FutureMessageRepository
}

// NewProgressService creates a new instance of ProgressService.
func NewProgressService(dreamNotes *repository.DreamNoteRepository, roadmaps *repository.RoadmapRepository, futureMessages *repository.FutureMessageRepository) *ProgressService {
	return &ProgressService{
		dreamNotes:     dreamNotes,
		roadmaps:       roadmaps,
		futureMessages: futureMessages,
	}
}

// GetStats collects the user's counters. A failing counter is logged and
// reported as zero rather than failing the whole aggregation.
func (s *ProgressService) GetStats(ctx context.Context, userID primitive.ObjectID) ProgressStats {
	var stats ProgressStats

	if n, err := s.dreamNotes.CountUserDreamNotes(ctx, userID); err != nil {
		logrus.WithError(err).Warn("Failed to count dream notes")
	} else {
		stats.DreamCount = n
	}

	if n, err := s.roadmaps.CountUserRoadmaps(ctx, userID); err != nil {
		logrus.WithError(err).Warn("Failed to count roadmaps")
	} else {
		stats.RoadmapCount = n
	}

	if roadmaps, err := s.roadmaps.GetUserRoadmaps(ctx, userID); err != nil {
		logrus.WithError(err).Warn("Failed to fetch roadmaps for progress stats")
	} else {
		for i := range roadmaps {
			stats.CompletedTasks += roadmaps[i].CompletedSteps()
		}
	}

	if n, err := s.futureMessages.CountUserFutureMessages(ctx, userID); err != nil {
		logrus.WithError(err).Warn("Failed to count future messages")
	} else {
		stats.FutureMessages = n
	}

	return stats
}
