package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Reminder types.
const (
	ReminderTypeRoadmap    = "roadmap"
	ReminderTypeMotivation = "motivation"
	ReminderTypeCustom     = "custom"
)

// Repeat kinds. A "once" reminder is deleted after its first firing, a
// "daily" reminder keeps firing at the same local time of day until it is
// deleted explicitly.
const (
	RepeatOnce  = "once"
	RepeatDaily = "daily"
)

// Reminder is a schedulable notification persisted in the store.
type Reminder struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID    primitive.ObjectID `bson:"user_id" json:"user_id"`
	Title     string             `bson:"title" json:"title"`
	Message   string             `bson:"message" json:"message"`
	Time      time.Time          `bson:"time" json:"time"`
	Type      string             `bson:"type" json:"type"`
	Repeat    string             `bson:"repeat" json:"repeat"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
}

// ValidReminderType reports whether t is one of the known reminder types.
func ValidReminderType(t string) bool {
	return t == ReminderTypeRoadmap || t == ReminderTypeMotivation || t == ReminderTypeCustom
}

// ValidRepeat reports whether r is a known repeat kind.
func ValidRepeat(r string) bool {
	return r == RepeatOnce || r == RepeatDaily
}
