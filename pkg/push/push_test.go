package push

import (
	"crypto/ecdh"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	webpush "github.com/SherClockHolmes/webpush-go"
	"github.com/spoorthyhm/dreampath/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testSubscription builds a subscription with freshly generated browser-side
// keys pointing at the given endpoint.
func testSubscription(t *testing.T, endpoint string) *models.PushSubscription {
	t.Helper()

	browserKey, err := ecdh.P256().GenerateKey(rand.Reader)
	require.NoError(t, err)

	auth := make([]byte, 16)
	_, err = rand.Read(auth)
	require.NoError(t, err)

	return &models.PushSubscription{
		Endpoint: endpoint,
		Keys: models.PushSubscriptionKeys{
			P256dh: base64.RawURLEncoding.EncodeToString(browserKey.PublicKey().Bytes()),
			Auth:   base64.RawURLEncoding.EncodeToString(auth),
		},
	}
}

func testSender(t *testing.T) *Sender {
	t.Helper()
	private, public, err := webpush.GenerateVAPIDKeys()
	require.NoError(t, err)
	return NewSender("mailto:test@example.com", public, private)
}

func TestSendDeliversEncryptedPayload(t *testing.T) {
	var gotBody int
	var gotTTL string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotTTL = r.Header.Get("TTL")
		buf := make([]byte, 4096)
		n, _ := r.Body.Read(buf)
		gotBody = n
		w.WriteHeader(http.StatusCreated)
	}))
	defer server.Close()

	sender := testSender(t)
	sub := testSubscription(t, server.URL)

	require.NoError(t, sender.Send(sub, "Daily Motivation", "Keep going!"))
	assert.Equal(t, "60", gotTTL)
	assert.Greater(t, gotBody, 0, "payload should arrive encrypted, not empty")
}

func TestSendReportsGoneSubscription(t *testing.T) {
	for _, status := range []int{http.StatusGone, http.StatusNotFound} {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(status)
		}))

		sender := testSender(t)
		sub := testSubscription(t, server.URL)

		err := sender.Send(sub, "t", "m")
		assert.True(t, errors.Is(err, ErrSubscriptionGone), "status %d should map to ErrSubscriptionGone", status)
		server.Close()
	}
}

func TestSendReportsOtherFailures(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	sender := testSender(t)
	sub := testSubscription(t, server.URL)

	err := sender.Send(sub, "t", "m")
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrSubscriptionGone))
}
