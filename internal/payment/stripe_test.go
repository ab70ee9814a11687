package payment

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"testing"
	"time"
)

const testWebhookSecret = "whsec_test_secret"

// signPayload builds a Stripe-Signature header the same way Stripe does:
// HMAC-SHA256 over "<timestamp>.<payload>" with the endpoint secret.
func signPayload(payload []byte, secret string, timestamp time.Time) string {
	mac := hmac.New(sha256.New, []byte(secret))
	fmt.Fprintf(mac, "%d.%s", timestamp.Unix(), payload)
	return fmt.Sprintf("t=%d,v1=%s", timestamp.Unix(), hex.EncodeToString(mac.Sum(nil)))
}

func TestVerifyWebhookSignature(t *testing.T) {
	provider := NewStripeProvider("sk_test_key", testWebhookSecret)
	payload := []byte(`{"id":"evt_1","api_version":"2023-10-16","type":"charge.succeeded","data":{"object":{"id":"ch_1"}}}`)

	t.Run("Valid signature", func(t *testing.T) {
		header := signPayload(payload, testWebhookSecret, time.Now())

		event, err := provider.VerifyWebhookSignature(payload, header)
		if err != nil {
			t.Fatalf("VerifyWebhookSignature() error = %v", err)
		}
		if string(event.Type) != "charge.succeeded" {
			t.Errorf("Expected event type 'charge.succeeded', got '%s'", event.Type)
		}
		if event.ID != "evt_1" {
			t.Errorf("Expected event id 'evt_1', got '%s'", event.ID)
		}
	})

	t.Run("Wrong secret", func(t *testing.T) {
		header := signPayload(payload, "whsec_other_secret", time.Now())

		if _, err := provider.VerifyWebhookSignature(payload, header); err == nil {
			t.Error("Expected verification to fail for signature from another secret")
		}
	})

	t.Run("Tampered payload", func(t *testing.T) {
		header := signPayload(payload, testWebhookSecret, time.Now())
		tampered := []byte(`{"id":"evt_1","api_version":"2023-10-16","type":"charge.succeeded","data":{"object":{"id":"ch_evil"}}}`)

		if _, err := provider.VerifyWebhookSignature(tampered, header); err == nil {
			t.Error("Expected verification to fail for tampered payload")
		}
	})

	t.Run("Stale timestamp", func(t *testing.T) {
		// Valid HMAC but outside the tolerance window.
		header := signPayload(payload, testWebhookSecret, time.Now().Add(-time.Hour))

		if _, err := provider.VerifyWebhookSignature(payload, header); err == nil {
			t.Error("Expected verification to fail for stale timestamp")
		}
	})

	t.Run("Missing header", func(t *testing.T) {
		if _, err := provider.VerifyWebhookSignature(payload, ""); err == nil {
			t.Error("Expected verification to fail for empty header")
		}
	})
}
