package services

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spoorthyhm/dreampath/internal/models"
	"github.com/spoorthyhm/dreampath/internal/repository"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DecoderService produces and stores AI dream interpretations.
type DecoderService struct {
	repo *repository.DecoderRepository
	gen  TextGenerator
}

// NewDecoderService creates a new instance of DecoderService.
func NewDecoderService(repo *repository.DecoderRepository, gen TextGenerator) *DecoderService {
	return &DecoderService{
		repo: repo,
		gen:  gen,
	}
}

// DecodeDream returns an AI interpretation without persisting anything.
func (s *DecoderService) DecodeDream(ctx context.Context, dreamText string) (string, error) {
	if dreamText == "" {
		return "", fmt.Errorf("dream text is required")
	}
	prompt := fmt.Sprintf("Analyze and decode this dream psychologically and symbolically:\n%s", dreamText)
	output, err := s.gen.Complete(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("failed to decode dream: %v", err)
	}
	return output, nil
}

// CreateDecoder interprets a dream and stores the result.
func (s *DecoderService) CreateDecoder(ctx context.Context, userID primitive.ObjectID, dreamText string) (*models.Decoder, error) {
	interpretation, err := s.DecodeDream(ctx, dreamText)
	if err != nil {
		return nil, err
	}

	decoder := &models.Decoder{
		UserID:         userID,
		DreamText:      dreamText,
		Interpretation: interpretation,
		CreatedAt:      time.Now(),
	}
	created, err := s.repo.CreateDecoder(ctx, decoder)
	if err != nil {
		return nil, err
	}
	logrus.WithField("decoderID", created.ID.Hex()).Info("Dream interpretation stored")
	return created, nil
}

// GetDecoders returns the user's stored interpretations, newest first.
func (s *DecoderService) GetDecoders(ctx context.Context, userID primitive.ObjectID) ([]models.Decoder, error) {
	return s.repo.GetUserDecoders(ctx, userID)
}
