package models

import (
	"time"

	"github.com/travelswift/booking-system/internal/domain/types"
)

// PaymentAttempt is transient: it exists only between offer selection
// and booking creation, and is never persisted.
type PaymentAttempt struct {
	Offer     Offer
	Method    types.PaymentMethod
	SubMethod types.OnlineMethod // set only when Method is online

	// Route the offer was searched for, captured when the attempt is
	// made. The session's query may change before an asynchronous
	// outcome lands, so the booking must be built from these.
	Origin      string
	Destination string
	Date        time.Time
}

// Confirmation is the successful terminal outcome of a payment attempt.
type Confirmation struct {
	Offer       Offer
	Method      types.PaymentMethod
	SubMethod   types.OnlineMethod
	Origin      string
	Destination string
	Date        time.Time
	ConfirmedAt time.Time
}

// PaymentOutcome is the terminal result of an asynchronous payment,
// queued against the session when the result arrives after the caller
// has navigated away.
type PaymentOutcome struct {
	Confirmation *Confirmation
	Err          error
}
