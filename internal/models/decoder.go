package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Decoder is a stored dream interpretation produced by the AI boundary.
type Decoder struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID         primitive.ObjectID `bson:"user_id" json:"user_id"`
	DreamText      string             `bson:"dream_text" json:"dreamText"`
	Interpretation string             `bson:"interpretation,omitempty" json:"interpretation,omitempty"`
	CreatedAt      time.Time          `bson:"created_at" json:"created_at"`
}
