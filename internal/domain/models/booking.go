package models

import (
	"time"

	"github.com/travelswift/booking-system/internal/domain/types"
	"github.com/travelswift/booking-system/pkg/uuid"
)

// DateLayout is the calendar-date wire format used for booking dates.
const DateLayout = "2006-01-02"

// Booking is the persisted unit of the ledger. It is created on payment
// success and never mutated or deleted afterwards. Status is not a
// field: it is derived from Date each time the ledger is read.
type Booking struct {
	ID          uuid.UUID         `json:"id"`
	Kind        types.ServiceKind `json:"kind"`
	Origin      string            `json:"origin"`
	Destination string            `json:"destination"`
	Date        time.Time         `json:"date"`
	Fare        float64           `json:"fare"`
	Details     string            `json:"details"`
}

// Status classifies the booking against the supplied instant: upcoming
// if the booking date is today or later, completed otherwise. The caller
// passes now explicitly so reads stay deterministic under test.
func (b Booking) Status(now time.Time) types.BookingStatus {
	if b.Date.Before(Midnight(now)) {
		return types.StatusCompleted
	}
	return types.StatusUpcoming
}

// Midnight truncates an instant to the start of its calendar day in UTC.
func Midnight(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDate parses a calendar date in the booking wire format.
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, s, time.UTC)
}
