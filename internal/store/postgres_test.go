package store

import (
	"context"
	"os"
	"testing"
	"time"
)

// TestPostgresStoreIntegration exercises the ledger against a real database.
// Run with TEST_DATABASE_URL pointing at a scratch database.
func TestPostgresStoreIntegration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test")
	}

	dbURL := os.Getenv("TEST_DATABASE_URL")
	if dbURL == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	ctx := context.Background()
	s, err := NewPostgresStore(ctx, dbURL)
	if err != nil {
		t.Fatalf("NewPostgresStore() error = %v", err)
	}
	defer s.Close()

	paymentID := "ch_test_" + time.Now().UTC().Format("20060102150405.000000000")

	t.Run("RecordPayment", func(t *testing.T) {
		created, err := s.RecordPayment(ctx, PaymentRecord{
			StripePaymentID: paymentID,
			OrderID:         "ord_test",
			ReceiptURL:      "https://r/test",
		})
		if err != nil {
			t.Fatalf("RecordPayment() error = %v", err)
		}
		if !created {
			t.Error("Expected first record to be created")
		}

		created, err = s.RecordPayment(ctx, PaymentRecord{
			StripePaymentID: paymentID,
			OrderID:         "ord_test",
		})
		if err != nil {
			t.Fatalf("RecordPayment() error = %v", err)
		}
		if created {
			t.Error("Expected duplicate record not to be created")
		}
	})

	t.Run("CountPaymentsSince", func(t *testing.T) {
		count, err := s.CountPaymentsSince(ctx, time.Now().Add(-time.Minute))
		if err != nil {
			t.Fatalf("CountPaymentsSince() error = %v", err)
		}
		if count < 1 {
			t.Errorf("Expected at least 1 recent payment, got %d", count)
		}
	})
}
