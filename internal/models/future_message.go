package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// FutureMessage is a note to one's future self, locked until UnlockDate.
// It is read-gated at fetch time, not driven by the reminder scheduler.
type FutureMessage struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID     primitive.ObjectID `bson:"user_id" json:"user_id"`
	Message    string             `bson:"message" json:"message"`
	UnlockDate time.Time          `bson:"unlock_date" json:"unlockDate"`
	Opened     bool               `bson:"opened" json:"opened"`
	CreatedAt  time.Time          `bson:"created_at" json:"created_at"`
}

// Unlocked reports whether the message may be opened at the given instant.
func (m *FutureMessage) Unlocked(now time.Time) bool {
	return !now.Before(m.UnlockDate)
}
