package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DreamNote is a free-form journal entry.
type DreamNote struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID    primitive.ObjectID `bson:"user_id" json:"user_id"`
	Title     string             `bson:"title" json:"title"`
	Content   string             `bson:"content" json:"content"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
}
