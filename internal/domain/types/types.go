package types

// ServiceKind discriminates the two bookable services.
type ServiceKind string

func (k ServiceKind) String() string {
	return string(k)
}

const (
	RideKind    ServiceKind = "ride"
	TransitKind ServiceKind = "transit"
)

// Valid reports whether the kind is one of the known service kinds.
func (k ServiceKind) Valid() bool {
	return k == RideKind || k == TransitKind
}

// BookingStatus is derived from the booking date at read time, never stored.
type BookingStatus string

const (
	StatusUpcoming  BookingStatus = "upcoming"
	StatusCompleted BookingStatus = "completed"
)

// PaymentMethod is the top-level payment path.
type PaymentMethod string

const (
	MethodCash   PaymentMethod = "cash"
	MethodOnline PaymentMethod = "online"
)

// OnlineMethod is the sub-path of an online payment.
type OnlineMethod string

const (
	OnlineUPI OnlineMethod = "upi"
	OnlineQR  OnlineMethod = "qr"
)

// SessionState is the reservation state machine. StateIdle and every
// state after it imply an authenticated session.
type SessionState string

const (
	StateAnonymous           SessionState = "ANONYMOUS"
	StatePendingVerification SessionState = "PENDING_VERIFICATION"
	StateIdle                SessionState = "IDLE"
	StateSearching           SessionState = "SEARCHING"
	StateReviewingOffers     SessionState = "REVIEWING_OFFERS"
	StateConfirmingPayment   SessionState = "CONFIRMING_PAYMENT"
	StateTicketIssued        SessionState = "TICKET_ISSUED"
)

func (s SessionState) String() string {
	return string(s)
}

// Authenticated reports whether the state is only reachable with a
// verified user on the session.
func (s SessionState) Authenticated() bool {
	switch s {
	case StateIdle, StateSearching, StateReviewingOffers, StateConfirmingPayment, StateTicketIssued:
		return true
	default:
		return false
	}
}

// Theme preference values persisted alongside the session profile.
const (
	ThemeLight = "light"
	ThemeDark  = "dark"
)
