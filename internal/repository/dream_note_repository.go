package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/spoorthyhm/dreampath/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// DreamNoteRepository provides access to the dream_notes collection.
type DreamNoteRepository struct {
	collection *mongo.Collection
}

// NewDreamNoteRepository creates a new instance of DreamNoteRepository.
func NewDreamNoteRepository(db *mongo.Database) *DreamNoteRepository {
	return &DreamNoteRepository{
		collection: db.Collection("dream_notes"),
	}
}

// CreateDreamNote inserts a new dream note.
func (r *DreamNoteRepository) CreateDreamNote(ctx context.Context, note *models.DreamNote) (*models.DreamNote, error) {
	if note.CreatedAt.IsZero() {
		note.CreatedAt = time.Now()
	}
	result, err := r.collection.InsertOne(ctx, note)
	if err != nil {
		return nil, fmt.Errorf("failed to create dream note: %v", err)
	}
	note.ID = result.InsertedID.(primitive.ObjectID)
	return note, nil
}

// GetUserDreamNotes returns a user's notes, newest first.
func (r *DreamNoteRepository) GetUserDreamNotes(ctx context.Context, userID primitive.ObjectID) ([]models.DreamNote, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch dream notes: %v", err)
	}
	defer cursor.Close(ctx)

	var notes []models.DreamNote
	if err := cursor.All(ctx, &notes); err != nil {
		return nil, fmt.Errorf("failed to decode dream notes: %v", err)
	}
	return notes, nil
}

// UpdateDreamNote applies a partial update to a note owned by the user and
// returns the fresh document.
func (r *DreamNoteRepository) UpdateDreamNote(ctx context.Context, id, userID primitive.ObjectID, update bson.M) (*models.DreamNote, error) {
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id, "user_id": userID}, bson.M{"$set": update})
	if err != nil {
		return nil, fmt.Errorf("failed to update dream note: %v", err)
	}
	if result.MatchedCount == 0 {
		return nil, mongo.ErrNoDocuments
	}

	var note models.DreamNote
	if err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&note); err != nil {
		return nil, fmt.Errorf("failed to fetch dream note: %v", err)
	}
	return &note, nil
}

// DeleteDreamNote removes a note owned by the user and reports whether a
// document matched.
func (r *DreamNoteRepository) DeleteDreamNote(ctx context.Context, id, userID primitive.ObjectID) (bool, error) {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id, "user_id": userID})
	if err != nil {
		return false, fmt.Errorf("failed to delete dream note: %v", err)
	}
	return result.DeletedCount > 0, nil
}

// CountUserDreamNotes counts a user's notes.
func (r *DreamNoteRepository) CountUserDreamNotes(ctx context.Context, userID primitive.ObjectID) (int64, error) {
	count, err := r.collection.CountDocuments(ctx, bson.M{"user_id": userID})
	if err != nil {
		return 0, fmt.Errorf("failed to count dream notes: %v", err)
	}
	return count, nil
}
