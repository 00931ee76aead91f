package push

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	webpush "github.com/SherClockHolmes/webpush-go"
	"github.com/spoorthyhm/dreampath/internal/models"
)

// ErrSubscriptionGone marks a permanent delivery failure: the push service
// reported the subscription expired or unknown, so the stored subscription
// should be dropped by user management.
var ErrSubscriptionGone = errors.New("push subscription gone")

// Sender sends Web Push notifications signed with VAPID keys.
type Sender struct {
	subscriber string
	publicKey  string
	privateKey string
}

// NewSender creates a Sender. subscriber is the mailto: contact required by
// the VAPID spec.
func NewSender(subscriber, publicKey, privateKey string) *Sender {
	return &Sender{
		subscriber: subscriber,
		publicKey:  publicKey,
		privateKey: privateKey,
	}
}

type payload struct {
	Title   string `json:"title"`
	Message string `json:"message"`
}

// Send pushes a title/message payload to one subscription.
func (s *Sender) Send(sub *models.PushSubscription, title, message string) error {
	body, err := json.Marshal(payload{Title: title, Message: message})
	if err != nil {
		return fmt.Errorf("failed to encode push payload: %v", err)
	}

	target := &webpush.Subscription{
		Endpoint: sub.Endpoint,
		Keys: webpush.Keys{
			P256dh: sub.Keys.P256dh,
			Auth:   sub.Keys.Auth,
		},
	}

	resp, err := webpush.SendNotification(body, target, &webpush.Options{
		Subscriber:      s.subscriber,
		VAPIDPublicKey:  s.publicKey,
		VAPIDPrivateKey: s.privateKey,
		TTL:             60,
	})
	if err != nil {
		return fmt.Errorf("failed to send push: %v", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusGone || resp.StatusCode == http.StatusNotFound:
		return fmt.Errorf("push endpoint returned %d: %w", resp.StatusCode, ErrSubscriptionGone)
	case resp.StatusCode >= 400:
		return fmt.Errorf("push endpoint returned status %d", resp.StatusCode)
	}
	return nil
}
