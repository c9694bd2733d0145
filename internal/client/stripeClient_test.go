package client

import (
	"encoding/hex"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v81"
	"github.com/stripe/stripe-go/v81/webhook"

	"modeleval-api/internal/apperrors"
	"modeleval-api/internal/config"
)

const testWebhookSecret = "whsec_test_secret"

func newTestStripeClient() StripeClient {
	return NewStripeClient(&config.Stripe{
		SecretKey:     "sk_test_key",
		WebhookSecret: testWebhookSecret,
	}, "https://example.com")
}

func signatureHeader(t *testing.T, payload []byte, secret string, at time.Time) string {
	t.Helper()

	sig := webhook.ComputeSignature(at, payload, secret)
	return fmt.Sprintf("t=%d,v1=%s", at.Unix(), hex.EncodeToString(sig))
}

func TestVerifyWebhookEventValidSignature(t *testing.T) {
	c := newTestStripeClient()

	payload := []byte(`{"id":"evt_1","object":"event","type":"checkout.session.completed","data":{"object":{"id":"cs_1","metadata":{"orderId":"order-1"}}}}`)
	header := signatureHeader(t, payload, testWebhookSecret, time.Now())

	event, err := c.VerifyWebhookEvent(payload, header)
	require.NoError(t, err)
	assert.Equal(t, "evt_1", event.ID)
	assert.Equal(t, stripe.EventTypeCheckoutSessionCompleted, event.Type)
}

func TestVerifyWebhookEventTamperedBody(t *testing.T) {
	c := newTestStripeClient()

	payload := []byte(`{"id":"evt_1","object":"event","type":"checkout.session.completed","data":{"object":{}}}`)
	header := signatureHeader(t, payload, testWebhookSecret, time.Now())

	tampered := []byte(`{"id":"evt_1","object":"event","type":"checkout.session.expired","data":{"object":{}}}`)

	_, err := c.VerifyWebhookEvent(tampered, header)
	assert.ErrorIs(t, err, apperrors.ErrSignature)
}

func TestVerifyWebhookEventWrongSecret(t *testing.T) {
	c := newTestStripeClient()

	payload := []byte(`{"id":"evt_1","object":"event","type":"checkout.session.completed","data":{"object":{}}}`)
	header := signatureHeader(t, payload, "whsec_other_secret", time.Now())

	_, err := c.VerifyWebhookEvent(payload, header)
	assert.ErrorIs(t, err, apperrors.ErrSignature)
}

func TestVerifyWebhookEventGarbageHeader(t *testing.T) {
	c := newTestStripeClient()

	_, err := c.VerifyWebhookEvent([]byte(`{}`), "not-a-signature")
	assert.ErrorIs(t, err, apperrors.ErrSignature)
}
