package scheduler

import (
	"context"
	"time"

	"github.com/spoorthyhm/dreampath/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// The scheduler reaches persistence and delivery only through these
// contracts. The repository types implement the stores; pkg/email and
// pkg/push implement the channels. Tests substitute fakes.

// ReminderStore is the slice of the reminder collection the scheduler needs.
type ReminderStore interface {
	CreateReminder(ctx context.Context, reminder *models.Reminder) (*models.Reminder, error)
	GetAllReminders(ctx context.Context) ([]models.Reminder, error)
	DeleteReminder(ctx context.Context, id primitive.ObjectID) error
	DeleteExpiredOnceReminders(ctx context.Context, now time.Time) (int64, error)
}

// UserStore resolves reminder owners and carries the streak fields.
type UserStore interface {
	GetUserByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	GetAllUsers(ctx context.Context) ([]models.User, error)
	UpdateUser(ctx context.Context, id primitive.ObjectID, update bson.M) (*models.User, error)
}

// RoadmapStore feeds the daily roadmap nudge sweep.
type RoadmapStore interface {
	GetAllRoadmaps(ctx context.Context) ([]models.Roadmap, error)
}

// Mailer sends a plain text email. Best effort; failures are logged by the
// caller and never abort a firing transition.
type Mailer interface {
	Send(to, subject, body string) error
}

// Pusher sends a web push notification. A gone subscription is reported
// with push.ErrSubscriptionGone so user management can drop it.
type Pusher interface {
	Send(sub *models.PushSubscription, title, body string) error
}
