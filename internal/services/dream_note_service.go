package services

import (
	"context"
	"fmt"
	"time"

	"github.com/spoorthyhm/dreampath/internal/models"
	"github.com/spoorthyhm/dreampath/internal/repository"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DreamNoteService encapsulates the business logic for dream notes.
type DreamNoteService struct {
	repo *repository.DreamNoteRepository
}

// NewDreamNoteService creates a new instance of DreamNoteService.
func NewDreamNoteService(repo *repository.DreamNoteRepository) *DreamNoteService {
	return &DreamNoteService{repo: repo}
}

// CreateDreamNote validates and stores a note.
func (s *DreamNoteService) CreateDreamNote(ctx context.Context, userID primitive.ObjectID, title, content string) (*models.DreamNote, error) {
	if title == "" || content == "" {
		return nil, fmt.Errorf("title and content are required")
	}
	note := &models.DreamNote{
		UserID:    userID,
		Title:     title,
		Content:   content,
		CreatedAt: time.Now(),
	}
	return s.repo.CreateDreamNote(ctx, note)
}

// GetDreamNotes returns the user's notes, newest first.
func (s *DreamNoteService) GetDreamNotes(ctx context.Context, userID primitive.ObjectID) ([]models.DreamNote, error) {
	return s.repo.GetUserDreamNotes(ctx, userID)
}

// UpdateDreamNote changes title and/or content of the user's note.
func (s *DreamNoteService) UpdateDreamNote(ctx context.Context, id, userID primitive.ObjectID, title, content string) (*models.DreamNote, error) {
	update := bson.M{}
	if title != "" {
		update["title"] = title
	}
	if content != "" {
		update["content"] = content
	}
	if len(update) == 0 {
		return nil, fmt.Errorf("nothing to update")
	}
	return s.repo.UpdateDreamNote(ctx, id, userID, update)
}

// DeleteDreamNote removes the user's note, reporting whether it existed.
func (s *DreamNoteService) DeleteDreamNote(ctx context.Context, id, userID primitive.ObjectID) (bool, error) {
	return s.repo.DeleteDreamNote(ctx, id, userID)
}
