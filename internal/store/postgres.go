package store

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

const schema = `
CREATE TABLE IF NOT EXISTS payment_events (
    stripe_payment_id TEXT PRIMARY KEY,
    order_id          TEXT NOT NULL,
    receipt_url       TEXT NOT NULL DEFAULT '',
    received_at       TIMESTAMPTZ NOT NULL DEFAULT now()
)`

// PostgresStore persists payment records in Postgres.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore connects to the database and ensures the ledger table
// exists.
func NewPostgresStore(ctx context.Context, databaseURL string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if _, err := pool.Exec(ctx, schema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to create payment_events table: %w", err)
	}

	return &PostgresStore{pool: pool}, nil
}

func (s *PostgresStore) RecordPayment(ctx context.Context, record PaymentRecord) (bool, error) {
	receivedAt := record.ReceivedAt
	if receivedAt.IsZero() {
		receivedAt = time.Now().UTC()
	}

	tag, err := s.pool.Exec(ctx, `
        INSERT INTO payment_events (stripe_payment_id, order_id, receipt_url, received_at)
        VALUES ($1, $2, $3, $4)
        ON CONFLICT (stripe_payment_id) DO NOTHING`,
		record.StripePaymentID,
		record.OrderID,
		record.ReceiptURL,
		receivedAt,
	)
	if err != nil {
		return false, fmt.Errorf("failed to record payment %s: %w", record.StripePaymentID, err)
	}

	return tag.RowsAffected() == 1, nil
}

func (s *PostgresStore) CountPaymentsSince(ctx context.Context, since time.Time) (int64, error) {
	var count int64
	err := s.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM payment_events WHERE received_at >= $1`, since,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count payments: %w", err)
	}
	return count, nil
}

func (s *PostgresStore) Close() {
	s.pool.Close()
}
