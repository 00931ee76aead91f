package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User represents a registered account in the DreamPath system.
type User struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name             string             `bson:"name" json:"name"`
	Email            string             `bson:"email" json:"email"`
	HashedPassword   string             `bson:"hashed_password" json:"-"`
	Theme            string             `bson:"theme,omitempty" json:"theme,omitempty"`
	PushSubscription *PushSubscription  `bson:"push_subscription,omitempty" json:"push_subscription,omitempty"`

	// Streak tracking, maintained by the progress path and the daily
	// streak sweep.
	Streak             int       `bson:"streak" json:"streak"`
	LastCompletionDate time.Time `bson:"last_completion_date,omitempty" json:"last_completion_date,omitempty"`

	ResetToken    string    `bson:"reset_token,omitempty" json:"-"`
	ResetTokenExp time.Time `bson:"reset_token_exp,omitempty" json:"-"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// PushSubscription holds the browser push endpoint and keys handed over by
// the frontend service worker.
type PushSubscription struct {
	Endpoint string               `bson:"endpoint" json:"endpoint"`
	Keys     PushSubscriptionKeys `bson:"keys" json:"keys"`
}

type PushSubscriptionKeys struct {
	P256dh string `bson:"p256dh" json:"p256dh"`
	Auth   string `bson:"auth" json:"auth"`
}

type PublicUser struct {
	ID     primitive.ObjectID `json:"id"`
	Name   string             `json:"name"`
	Email  string             `json:"email"`
	Theme  string             `json:"theme,omitempty"`
	Streak int                `json:"streak"`
}

// Public strips credentials and subscription material from a user document.
func (u *User) Public() PublicUser {
	return PublicUser{
		ID:     u.ID,
		Name:   u.Name,
		Email:  u.Email,
		Theme:  u.Theme,
		Streak: u.Streak,
	}
}
