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

// DecoderRepository provides access to the decoders collection.
type DecoderRepository struct {
	collection *mongo.Collection
}

// NewDecoderRepository creates a new instance of DecoderRepository.
func NewDecoderRepository(db *mongo.Database) *DecoderRepository {
	return &DecoderRepository{
		collection: db.Collection("decoders"),
	}
}

// CreateDecoder inserts a new dream interpretation.
func (r *DecoderRepository) CreateDecoder(ctx context.Context, decoder *models.Decoder) (*models.Decoder, error) {
	if decoder.CreatedAt.IsZero() {
		decoder.CreatedAt = time.Now()
	}
	result, err := r.collection.InsertOne(ctx, decoder)
	if err != nil {
		return nil, fmt.Errorf("failed to create decoder: %v", err)
	}
	decoder.ID = result.InsertedID.(primitive.ObjectID)
	return decoder, nil
}

// GetUserDecoders returns a user's interpretations, newest first.
func (r *DecoderRepository) GetUserDecoders(ctx context.Context, userID primitive.ObjectID) ([]models.Decoder, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch decoders: %v", err)
	}
	defer cursor.Close(ctx)

	var decoders []models.Decoder
	if err := cursor.All(ctx, &decoders); err != nil {
		return nil, fmt.Errorf("failed to decode decoders: %v", err)
	}
	return decoders, nil
}
