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

// ReminderRepository provides access to the reminders collection.
type ReminderRepository struct {
	collection *mongo.Collection
}

// NewReminderRepository creates a new instance of ReminderRepository.
func NewReminderRepository(db *mongo.Database) *ReminderRepository {
	return &ReminderRepository{
		collection: db.Collection("reminders"),
	}
}

// CreateReminder inserts a new reminder document.
func (r *ReminderRepository) CreateReminder(ctx context.Context, reminder *models.Reminder) (*models.Reminder, error) {
	if reminder.CreatedAt.IsZero() {
		reminder.CreatedAt = time.Now()
	}
	result, err := r.collection.InsertOne(ctx, reminder)
	if err != nil {
		return nil, fmt.Errorf("failed to create reminder: %v", err)
	}
	reminder.ID = result.InsertedID.(primitive.ObjectID)
	return reminder, nil
}

// GetReminderByID fetches a single reminder by id.
func (r *ReminderRepository) GetReminderByID(ctx context.Context, id primitive.ObjectID) (*models.Reminder, error) {
	var reminder models.Reminder
	if err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&reminder); err != nil {
		return nil, fmt.Errorf("failed to fetch reminder: %v", err)
	}
	return &reminder, nil
}

// GetUserReminders returns a user's reminders sorted by fire time.
func (r *ReminderRepository) GetUserReminders(ctx context.Context, userID primitive.ObjectID) ([]models.Reminder, error) {
	opts := options.Find().SetSort(bson.D{{Key: "time", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch reminders: %v", err)
	}
	defer cursor.Close(ctx)

	var reminders []models.Reminder
	if err := cursor.All(ctx, &reminders); err != nil {
		return nil, fmt.Errorf("failed to decode reminders: %v", err)
	}
	return reminders, nil
}

// GetAllReminders returns every reminder document. Used on startup to
// rehydrate the scheduler.
func (r *ReminderRepository) GetAllReminders(ctx context.Context) ([]models.Reminder, error) {
	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch reminders: %v", err)
	}
	defer cursor.Close(ctx)

	var reminders []models.Reminder
	if err := cursor.All(ctx, &reminders); err != nil {
		return nil, fmt.Errorf("failed to decode reminders: %v", err)
	}
	return reminders, nil
}

// UpdateReminder replaces the mutable fields of a user's reminder and
// returns the fresh document. The user id is part of the filter so users
// cannot touch each other's reminders.
func (r *ReminderRepository) UpdateReminder(ctx context.Context, id, userID primitive.ObjectID, update bson.M) (*models.Reminder, error) {
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id, "user_id": userID}, bson.M{"$set": update})
	if err != nil {
		return nil, fmt.Errorf("failed to update reminder: %v", err)
	}
	if result.MatchedCount == 0 {
		return nil, mongo.ErrNoDocuments
	}
	return r.GetReminderByID(ctx, id)
}

// DeleteReminder removes a reminder by id. Deleting an already-removed
// reminder is not an error: the hourly purge and a firing trigger may race
// on the same record.
func (r *ReminderRepository) DeleteReminder(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete reminder: %v", err)
	}
	return nil
}

// DeleteUserReminder removes a reminder owned by the given user and reports
// whether a document matched.
func (r *ReminderRepository) DeleteUserReminder(ctx context.Context, id, userID primitive.ObjectID) (bool, error) {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id, "user_id": userID})
	if err != nil {
		return false, fmt.Errorf("failed to delete reminder: %v", err)
	}
	return result.DeletedCount > 0, nil
}

// DeleteExpiredOnceReminders removes every one-shot reminder whose time is
// strictly in the past. Safety net for reminders whose trigger never got
// registered or whose self-cancel failed.
func (r *ReminderRepository) DeleteExpiredOnceReminders(ctx context.Context, now time.Time) (int64, error) {
	filter := bson.M{
		"repeat": models.RepeatOnce,
		"time":   bson.M{"$lt": now},
	}
	result, err := r.collection.DeleteMany(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("failed to delete expired reminders: %v", err)
	}
	return result.DeletedCount, nil
}
