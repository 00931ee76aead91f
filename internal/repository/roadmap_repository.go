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

// RoadmapRepository provides access to the roadmaps collection.
type RoadmapRepository struct {
	collection *mongo.Collection
}

// NewRoadmapRepository creates a new instance of RoadmapRepository.
func NewRoadmapRepository(db *mongo.Database) *RoadmapRepository {
	return &RoadmapRepository{
		collection: db.Collection("roadmaps"),
	}
}

// CreateRoadmap inserts a new roadmap document.
func (r *RoadmapRepository) CreateRoadmap(ctx context.Context, roadmap *models.Roadmap) (*models.Roadmap, error) {
	if roadmap.CreatedAt.IsZero() {
		roadmap.CreatedAt = time.Now()
	}
	result, err := r.collection.InsertOne(ctx, roadmap)
	if err != nil {
		return nil, fmt.Errorf("failed to create roadmap: %v", err)
	}
	roadmap.ID = result.InsertedID.(primitive.ObjectID)
	return roadmap, nil
}

// GetRoadmapByID fetches a single roadmap by id.
func (r *RoadmapRepository) GetRoadmapByID(ctx context.Context, id primitive.ObjectID) (*models.Roadmap, error) {
	var roadmap models.Roadmap
	if err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&roadmap); err != nil {
		return nil, fmt.Errorf("failed to fetch roadmap: %v", err)
	}
	return &roadmap, nil
}

// GetUserRoadmaps returns a user's roadmaps, newest first.
func (r *RoadmapRepository) GetUserRoadmaps(ctx context.Context, userID primitive.ObjectID) ([]models.Roadmap, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch roadmaps: %v", err)
	}
	defer cursor.Close(ctx)

	var roadmaps []models.Roadmap
	if err := cursor.All(ctx, &roadmaps); err != nil {
		return nil, fmt.Errorf("failed to decode roadmaps: %v", err)
	}
	return roadmaps, nil
}

// GetAllRoadmaps returns every roadmap document. Used by the daily nudge
// sweep.
func (r *RoadmapRepository) GetAllRoadmaps(ctx context.Context) ([]models.Roadmap, error) {
	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch roadmaps: %v", err)
	}
	defer cursor.Close(ctx)

	var roadmaps []models.Roadmap
	if err := cursor.All(ctx, &roadmaps); err != nil {
		return nil, fmt.Errorf("failed to decode roadmaps: %v", err)
	}
	return roadmaps, nil
}

// UpdateRoadmapSteps stores the full step list of a roadmap.
func (r *RoadmapRepository) UpdateRoadmapSteps(ctx context.Context, id primitive.ObjectID, steps []models.RoadmapStep) error {
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"steps": steps}})
	if err != nil {
		return fmt.Errorf("failed to update roadmap steps: %v", err)
	}
	if result.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// CountUserRoadmaps counts a user's roadmaps.
func (r *RoadmapRepository) CountUserRoadmaps(ctx context.Context, userID primitive.ObjectID) (int64, error) {
	count, err := r.collection.CountDocuments(ctx, bson.M{"user_id": userID})
	if err != nil {
		return 0, fmt.Errorf("failed to count roadmaps: %v", err)
	}
	return count, nil
}
