package identity

import (
	"context"
	"sync"

	"github.com/travelswift/booking-system/internal/domain/types"
)

// FixedCode is the code every staged signup verifies against. A real
// deployment would generate one per request and hand it to a delivery
// channel.
const FixedCode = "123456"

// MemoryCodeStore keeps staged verification codes in process memory,
// keyed by email. Safe for concurrent use.
type MemoryCodeStore struct {
	mu    sync.Mutex
	codes map[string]string
}

func NewMemoryCodeStore() *MemoryCodeStore {
	return &MemoryCodeStore{
		codes: make(map[string]string),
	}
}

// Stage records a verification code for the given email, replacing any
// previously staged code.
func (s *MemoryCodeStore) Stage(_ context.Context, email string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.codes[email] = FixedCode
	return FixedCode, nil
}

// Verify compares the submitted code with the staged one. On mismatch
// the staged code stays valid so the caller may retry.
func (s *MemoryCodeStore) Verify(_ context.Context, email, code string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	staged, ok := s.codes[email]
	if !ok {
		return types.ErrNoPendingSignup
	}
	if staged != code {
		return types.ErrInvalidCode
	}

	delete(s.codes, email)
	return nil
}
