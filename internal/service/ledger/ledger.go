package ledger

import (
	"context"
	"sort"
	"time"

	"github.com/travelswift/booking-system/internal/domain/models"
	"github.com/travelswift/booking-system/internal/domain/types"
	"github.com/travelswift/booking-system/pkg/logger"
	wrap "github.com/travelswift/booking-system/pkg/logger/wrapper"
	"github.com/travelswift/booking-system/pkg/metrics"
	"github.com/travelswift/booking-system/pkg/uuid"
)

const metricsService = "ledger"

// Ledger is the append-only booking history. Status is never stored:
// every read derives it from the caller's explicit now.
type Ledger struct {
	store Store
	log   logger.Logger
}

func New(store Store, log logger.Logger) *Ledger {
	return &Ledger{
		store: store,
		log:   log,
	}
}

// Append records a new booking for the session. The ID is assigned
// here if the caller left it zero.
func (l *Ledger) Append(ctx context.Context, sessionID string, booking models.Booking) (models.Booking, error) {
	ctx = wrap.WithAction(ctx, "append_booking")

	if booking.ID.IsZero() {
		id, err := uuid.New()
		if err != nil {
			return models.Booking{}, wrap.Error(ctx, err)
		}
		booking.ID = id
	}

	if err := l.store.Insert(ctx, sessionID, booking); err != nil {
		return models.Booking{}, wrap.Error(ctx, err)
	}

	metrics.RecordBooking(metricsService, string(booking.Kind))
	l.log.Info(ctx, "booking appended",
		"booking_id", booking.ID.String(),
		"kind", booking.Kind,
	)

	return booking, nil
}

// List returns every booking of the session in insertion order.
func (l *Ledger) List(ctx context.Context, sessionID string) ([]models.Booking, error) {
	ctx = wrap.WithAction(ctx, "list_bookings")

	bookings, err := l.store.ListBySession(ctx, sessionID)
	if err != nil {
		return nil, wrap.Error(ctx, err)
	}
	return bookings, nil
}

// Upcoming returns the session's not-yet-completed bookings sorted by
// date ascending, soonest trip first.
func (l *Ledger) Upcoming(ctx context.Context, sessionID string, now time.Time) ([]models.Booking, error) {
	bookings, err := l.byStatus(ctx, sessionID, now, types.StatusUpcoming)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(bookings, func(i, j int) bool {
		return bookings[i].Date.Before(bookings[j].Date)
	})
	return bookings, nil
}

// Completed returns the session's past bookings sorted by date
// descending, most recent trip first.
func (l *Ledger) Completed(ctx context.Context, sessionID string, now time.Time) ([]models.Booking, error) {
	bookings, err := l.byStatus(ctx, sessionID, now, types.StatusCompleted)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(bookings, func(i, j int) bool {
		return bookings[i].Date.After(bookings[j].Date)
	})
	return bookings, nil
}

func (l *Ledger) byStatus(ctx context.Context, sessionID string, now time.Time, status types.BookingStatus) ([]models.Booking, error) {
	ctx = wrap.WithAction(ctx, "list_bookings_by_status")

	all, err := l.store.ListBySession(ctx, sessionID)
	if err != nil {
		return nil, wrap.Error(ctx, err)
	}

	filtered := make([]models.Booking, 0, len(all))
	for _, b := range all {
		if b.Status(now) == status {
			filtered = append(filtered, b)
		}
	}
	return filtered, nil
}

// Seed loads the demo history a freshly authenticated session starts
// with. Dates mix fixed past trips with one relative future trip so
// both status classes are present from the first read.
func (l *Ledger) Seed(ctx context.Context, sessionID string, now time.Time) error {
	ctx = wrap.WithAction(ctx, "seed_bookings")

	existing, err := l.store.ListBySession(ctx, sessionID)
	if err != nil {
		return wrap.Error(ctx, err)
	}
	if len(existing) > 0 {
		return nil
	}

	for _, b := range seedBookings(now) {
		id, err := uuid.New()
		if err != nil {
			return wrap.Error(ctx, err)
		}
		b.ID = id
		if err := l.store.Insert(ctx, sessionID, b); err != nil {
			return wrap.Error(ctx, err)
		}
	}
	return nil
}

// Reset drops the session's entire history. Called on logout so the
// next authentication starts from a clean seed.
func (l *Ledger) Reset(ctx context.Context, sessionID string) error {
	ctx = wrap.WithAction(ctx, "reset_bookings")

	if err := l.store.Drop(ctx, sessionID); err != nil {
		return wrap.Error(ctx, err)
	}
	return nil
}

func mustDate(s string) time.Time {
	t, err := models.ParseDate(s)
	if err != nil {
		panic(err)
	}
	return t
}

func seedBookings(now time.Time) []models.Booking {
	return []models.Booking{
		{
			Kind:        types.RideKind,
			Origin:      "Patna",
			Destination: "Delhi",
			Date:        mustDate("2024-07-15"),
			Fare:        450,
			Details:     "Maruti Dzire (BR01AB1234)",
		},
		{
			Kind:        types.TransitKind,
			Origin:      "Patna",
			Destination: "Gaya",
			Date:        models.Midnight(now).AddDate(0, 0, 5),
			Fare:        300,
			Details:     "Bihar Travels",
		},
		{
			Kind:        types.TransitKind,
			Origin:      "Delhi",
			Destination: "Jaipur",
			Date:        mustDate("2024-06-20"),
			Fare:        850,
			Details:     "Swift Travels",
		},
		{
			Kind:        types.RideKind,
			Origin:      "Mumbai",
			Destination: "Pune",
			Date:        mustDate("2024-05-01"),
			Fare:        700,
			Details:     "Hyundai Verna (MH03EF9012)",
		},
	}
}
