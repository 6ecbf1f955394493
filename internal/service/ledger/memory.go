package ledger

import (
	"context"
	"sync"

	"github.com/travelswift/booking-system/internal/domain/models"
)

// MemoryStore keeps bookings in process memory, keyed by session.
// Safe for concurrent use.
type MemoryStore struct {
	mu       sync.RWMutex
	bookings map[string][]models.Booking
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		bookings: make(map[string][]models.Booking),
	}
}

func (s *MemoryStore) Insert(_ context.Context, sessionID string, booking models.Booking) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.bookings[sessionID] = append(s.bookings[sessionID], booking)
	return nil
}

func (s *MemoryStore) ListBySession(_ context.Context, sessionID string) ([]models.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stored := s.bookings[sessionID]
	out := make([]models.Booking, len(stored))
	copy(out, stored)
	return out, nil
}

// Drop forgets everything stored for the session.
func (s *MemoryStore) Drop(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.bookings, sessionID)
	return nil
}
