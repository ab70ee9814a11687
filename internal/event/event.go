// Package event turns verified Stripe webhook events into internal payloads.
package event

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/stripe/stripe-go/v76"
)

// TopicPaymentSucceeded is the bus topic successful payments are forwarded on.
const TopicPaymentSucceeded = "payment.succeeded"

// ErrMissingOrderReference marks a charge delivered without an order id in
// its metadata. The session was created without metadata or Stripe stripped
// it; retrying cannot fix it, so the event is logged and dropped.
var ErrMissingOrderReference = errors.New("charge has no orderId metadata")

// Event is one recognized webhook outcome.
type Event interface {
	isEvent()
}

// PaymentSucceeded carries the charge object of a charge.succeeded event.
type PaymentSucceeded struct {
	Charge stripe.Charge
}

// Unhandled is any event type this service does not process. It is not an
// error: Stripe sends every type the account is subscribed to, and new types
// must not fail the webhook request.
type Unhandled struct {
	Type string
}

func (PaymentSucceeded) isEvent() {}
func (Unhandled) isEvent()        {}

// Classify maps a verified event onto the closed set of cases this service
// handles. Every type string maps to either PaymentSucceeded or Unhandled;
// an error is returned only when a recognized event carries an undecodable
// object.
func Classify(evt *stripe.Event) (Event, error) {
	switch evt.Type {
	case "charge.succeeded":
		// Data is a pointer and stays nil when a signed payload carries no
		// data field.
		if evt.Data == nil || len(evt.Data.Raw) == 0 {
			return nil, fmt.Errorf("event %s has no charge object", evt.ID)
		}
		var charge stripe.Charge
		if err := json.Unmarshal(evt.Data.Raw, &charge); err != nil {
			return nil, fmt.Errorf("failed to parse charge object: %w", err)
		}
		return PaymentSucceeded{Charge: charge}, nil
	default:
		return Unhandled{Type: string(evt.Type)}, nil
	}
}

// PaymentSucceededPayload is the internal message published for each
// confirmed payment. Delivery downstream is at-least-once (Stripe retries on
// non-200 responses), so consumers must deduplicate on StripePaymentID.
type PaymentSucceededPayload struct {
	StripePaymentID string `json:"stripePaymentId"`
	OrderID         string `json:"orderId"`
	ReceiptURL      string `json:"receiptUrl"`
}

// TranslateCharge extracts the internal payload from a succeeded charge.
func TranslateCharge(charge *stripe.Charge) (PaymentSucceededPayload, error) {
	orderID := charge.Metadata["orderId"]
	if orderID == "" {
		return PaymentSucceededPayload{}, fmt.Errorf("charge %s: %w", charge.ID, ErrMissingOrderReference)
	}

	return PaymentSucceededPayload{
		StripePaymentID: charge.ID,
		OrderID:         orderID,
		ReceiptURL:      charge.ReceiptURL,
	}, nil
}
