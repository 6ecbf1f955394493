package ledger

import (
	"context"

	"github.com/travelswift/booking-system/internal/domain/models"
)

// Store is the persistence boundary of the ledger. Implementations are
// append-only: nothing updates or deletes a booking once stored.
type Store interface {
	Insert(ctx context.Context, sessionID string, booking models.Booking) error
	ListBySession(ctx context.Context, sessionID string) ([]models.Booking, error)

	// Drop forgets the session's history wholesale. Used on logout;
	// individual bookings are never deleted.
	Drop(ctx context.Context, sessionID string) error
}
