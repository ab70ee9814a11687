package store

import (
	"context"
	"sync"
	"time"
)

// MemoryStore is an in-memory ledger used in tests and when no database is
// configured. Records do not survive a restart.
type MemoryStore struct {
	mu      sync.Mutex
	records map[string]PaymentRecord
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: make(map[string]PaymentRecord)}
}

func (s *MemoryStore) RecordPayment(_ context.Context, record PaymentRecord) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.records[record.StripePaymentID]; exists {
		return false, nil
	}

	if record.ReceivedAt.IsZero() {
		record.ReceivedAt = time.Now().UTC()
	}
	s.records[record.StripePaymentID] = record
	return true, nil
}

func (s *MemoryStore) CountPaymentsSince(_ context.Context, since time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var count int64
	for _, record := range s.records {
		if !record.ReceivedAt.Before(since) {
			count++
		}
	}
	return count, nil
}

func (s *MemoryStore) Close() {}
