package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/travelswift/booking-system/internal/domain/models"
)

// BookingRepo is the durable ledger store. Rows are appended and never
// updated; they are only removed wholesale when a session is torn down.
type BookingRepo struct {
	db *pgxpool.Pool
}

func NewBookingRepo(db *pgxpool.Pool) *BookingRepo {
	return &BookingRepo{db: db}
}

func (r *BookingRepo) Insert(ctx context.Context, sessionID string, booking models.Booking) error {
	const q = `
		INSERT INTO bookings (id, session_id, kind, origin, destination, travel_date, fare, details, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, now());
	`

	_, err := TxorDB(ctx, r.db).Exec(ctx, q,
		booking.ID,
		sessionID,
		booking.Kind,
		booking.Origin,
		booking.Destination,
		booking.Date,
		booking.Fare,
		booking.Details,
	)
	return err
}

// ListBySession returns the session's bookings in insertion order.
// Status is not a column: it is derived by the ledger at read time.
func (r *BookingRepo) ListBySession(ctx context.Context, sessionID string) ([]models.Booking, error) {
	const q = `
		SELECT id, kind, origin, destination, travel_date, fare, details
		FROM bookings
		WHERE session_id = $1
		ORDER BY created_at;
	`

	rows, err := TxorDB(ctx, r.db).Query(ctx, q, sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Booking, error) {
		var b models.Booking
		err := row.Scan(&b.ID, &b.Kind, &b.Origin, &b.Destination, &b.Date, &b.Fare, &b.Details)
		return b, err
	})
}

func (r *BookingRepo) Drop(ctx context.Context, sessionID string) error {
	const q = `DELETE FROM bookings WHERE session_id = $1;`

	_, err := TxorDB(ctx, r.db).Exec(ctx, q, sessionID)
	return err
}
