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

// FutureMessageRepository provides access to the future_messages collection.
type FutureMessageRepository struct {
	collection *mongo.Collection
}

// NewFutureMessageRepository creates a new instance of FutureMessageRepository.
func NewFutureMessageRepository(db *mongo.Database) *FutureMessageRepository {
	return &FutureMessageRepository{
		collection: db.Collection("future_messages"),
	}
}

// CreateFutureMessage inserts a new future message.
func (r *FutureMessageRepository) CreateFutureMessage(ctx context.Context, msg *models.FutureMessage) (*models.FutureMessage, error) {
	if msg.CreatedAt.IsZero() {
		msg.CreatedAt = time.Now()
	}
	result, err := r.collection.InsertOne(ctx, msg)
	if err != nil {
		return nil, fmt.Errorf("failed to create future message: %v", err)
	}
	msg.ID = result.InsertedID.(primitive.ObjectID)
	return msg, nil
}

// GetFutureMessageByID fetches a message owned by the given user.
func (r *FutureMessageRepository) GetFutureMessageByID(ctx context.Context, id, userID primitive.ObjectID) (*models.FutureMessage, error) {
	var msg models.FutureMessage
	if err := r.collection.FindOne(ctx, bson.M{"_id": id, "user_id": userID}).Decode(&msg); err != nil {
		return nil, fmt.Errorf("failed to fetch future message: %v", err)
	}
	return &msg, nil
}

// GetUserFutureMessages returns a user's messages sorted by unlock date.
func (r *FutureMessageRepository) GetUserFutureMessages(ctx context.Context, userID primitive.ObjectID) ([]models.FutureMessage, error) {
	opts := options.Find().SetSort(bson.D{{Key: "unlock_date", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch future messages: %v", err)
	}
	defer cursor.Close(ctx)

	var messages []models.FutureMessage
	if err := cursor.All(ctx, &messages); err != nil {
		return nil, fmt.Errorf("failed to decode future messages: %v", err)
	}
	return messages, nil
}

// MarkOpened sets the opened flag on a message.
func (r *FutureMessageRepository) MarkOpened(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"opened": true}})
	if err != nil {
		return fmt.Errorf("failed to mark future message opened: %v", err)
	}
	if result.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// CountUserFutureMessages counts a user's messages.
func (r *FutureMessageRepository) CountUserFutureMessages(ctx context.Context, userID primitive.ObjectID) (int64, error) {
	count, err := r.collection.CountDocuments(ctx, bson.M{"user_id": userID})
	if err != nil {
		return 0, fmt.Errorf("failed to count future messages: %v", err)
	}
	return count, nil
}
