// Package store keeps a ledger of forwarded payment events for manual
// reconciliation. Writes are best-effort: the webhook handler never blocks a
// confirmed payment on a ledger failure.
package store

import (
	"context"
	"time"
)

// PaymentRecord is one confirmed payment as it was forwarded to the bus.
type PaymentRecord struct {
	StripePaymentID string
	OrderID         string
	ReceiptURL      string
	ReceivedAt      time.Time
}

// Store defines the ledger operations.
type Store interface {
	// RecordPayment inserts the record keyed on the Stripe payment id.
	// It returns false when the payment was already recorded, which marks a
	// webhook redelivery.
	RecordPayment(ctx context.Context, record PaymentRecord) (bool, error)

	// CountPaymentsSince returns the number of payments recorded at or after
	// the given time.
	CountPaymentsSince(ctx context.Context, since time.Time) (int64, error)

	Close()
}
