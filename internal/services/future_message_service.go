package services

import (
	"context"
	"fmt"
	"time"

	"github.com/spoorthyhm/dreampath/internal/models"
	"github.com/spoorthyhm/dreampath/internal/repository"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ErrMessageLocked is returned when a future message is opened before its
// unlock date.
var ErrMessageLocked = fmt.Errorf("message is still locked")

// FutureMessageService encapsulates the business logic for messages to the
// future. Messages are read-gated by their unlock date; they never pass
// through the reminder scheduler.
type FutureMessageService struct {
	repo *repository.FutureMessageRepository
}

// NewFutureMessageService creates a new instance of FutureMessageService.
func NewFutureMessageService(repo *repository.FutureMessageRepository) *FutureMessageService {
	return &FutureMessageService{repo: repo}
}

// CreateFutureMessage validates and stores a locked message.
func (s *FutureMessageService) CreateFutureMessage(ctx context.Context, userID primitive.ObjectID, message string, unlockDate time.Time) (*models.FutureMessage, error) {
	if message == "" || unlockDate.IsZero() {
		return nil, fmt.Errorf("message and delivery date are required")
	}
	msg := &models.FutureMessage{
		UserID:     userID,
		Message:    message,
		UnlockDate: unlockDate,
		CreatedAt:  time.Now(),
	}
	return s.repo.CreateFutureMessage(ctx, msg)
}

// GetFutureMessages returns the user's messages sorted by unlock date. The
// body of still-locked messages is blanked out.
func (s *FutureMessageService) GetFutureMessages(ctx context.Context, userID primitive.ObjectID) ([]models.FutureMessage, error) {
	messages, err := s.repo.GetUserFutureMessages(ctx, userID)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	for i := range messages {
		if !messages[i].Unlocked(now) {
			messages[i].Message = ""
		}
	}
	return messages, nil
}

// OpenFutureMessage returns the full message once its unlock date has
// passed, marking it opened. Opening early fails with ErrMessageLocked.
func (s *FutureMessageService) OpenFutureMessage(ctx context.Context, id, userID primitive.ObjectID) (*models.FutureMessage, error) {
	msg, err := s.repo.GetFutureMessageByID(ctx, id, userID)
	if err != nil {
		return nil, fmt.Errorf("message not found")
	}
	if !msg.Unlocked(time.Now()) {
		return nil, ErrMessageLocked
	}
	if !msg.Opened {
		if err := s.repo.MarkOpened(ctx, msg.ID); err != nil {
			return nil, err
		}
		msg.Opened = true
	}
	return msg, nil
}
