package models

import (
	"time"

	"github.com/travelswift/booking-system/internal/domain/types"
	"github.com/travelswift/booking-system/pkg/uuid"
)

// SearchResultsFrame is pushed over the session WebSocket when an
// asynchronous search resolves.
type SearchResultsFrame struct {
	Type      string  `json:"type"`
	RequestID uint64  `json:"request_id"`
	Offers    []Offer `json:"offers,omitempty"`
	Error     string  `json:"error,omitempty"`
}

// PaymentOutcomeFrame is pushed over the session WebSocket when an
// asynchronous payment resolves.
type PaymentOutcomeFrame struct {
	Type      string    `json:"type"`
	Confirmed bool      `json:"confirmed"`
	BookingID uuid.UUID `json:"booking_id,omitzero"`
	Error     string    `json:"error,omitempty"`
}

// TicketIssuedFrame is pushed over the session WebSocket once the
// e-ticket for a confirmed booking has been rendered.
type TicketIssuedFrame struct {
	Type      string    `json:"type"`
	BookingID uuid.UUID `json:"booking_id"`
	Filename  string    `json:"filename"`
}

// BookingEventBody is the payload published to the booking.events
// exchange on booking creation and payment confirmation.
type BookingEventBody struct {
	Event     types.BookingEvent `json:"event"`
	SessionID string             `json:"session_id"`
	Booking   Booking            `json:"booking"`
	Timestamp time.Time          `json:"timestamp"`
}
