package scheduler

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"
	"github.com/spoorthyhm/dreampath/pkg/push"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Notifier delivers a message to a user over every channel the user has.
// Delivery is best effort: channel failures are logged, isolated from each
// other and never propagated to the caller.
type Notifier struct {
	users  UserStore
	mailer Mailer
	pusher Pusher
}

// NewNotifier creates a new instance of Notifier.
func NewNotifier(users UserStore, mailer Mailer, pusher Pusher) *Notifier {
	return &Notifier{
		users:  users,
		mailer: mailer,
		pusher: pusher,
	}
}

// Notify sends title/message to the user over email and push. A missing
// user is skipped silently.
func (n *Notifier) Notify(ctx context.Context, userID primitive.ObjectID, title, message string) {
	user, err := n.users.GetUserByID(ctx, userID)
	if err != nil || user == nil {
		logrus.WithError(err).Debugf("Notify: user %s not found, skipping", userID.Hex())
		return
	}

	if user.Email != "" && n.mailer != nil {
		if err := n.mailer.Send(user.Email, title, message); err != nil {
			logrus.WithError(err).Warnf("Email send failed for user %s", userID.Hex())
		}
	}

	if user.PushSubscription != nil && n.pusher != nil {
		if err := n.pusher.Send(user.PushSubscription, title, message); err != nil {
			if errors.Is(err, push.ErrSubscriptionGone) {
				logrus.Warnf("Push subscription for user %s is gone and should be removed", userID.Hex())
			} else {
				logrus.WithError(err).Warnf("Push send failed for user %s", userID.Hex())
			}
		}
	}
}
