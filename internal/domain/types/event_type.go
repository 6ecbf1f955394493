package types

// BookingEvent is the routing key of an event published to the
// booking.events exchange.
type BookingEvent string

func (e BookingEvent) String() string {
	return string(e)
}

const (
	EventBookingCreated   BookingEvent = "booking.created"
	EventPaymentConfirmed BookingEvent = "payment.confirmed"
	EventTicketIssued     BookingEvent = "ticket.issued"
)
