package orchestrator

import (
	"sync"

	"github.com/travelswift/booking-system/internal/domain/models"
	"github.com/travelswift/booking-system/internal/domain/types"
	"github.com/travelswift/booking-system/internal/service/search"
)

// session is the per-session state machine. All fields are guarded by
// mu; only the orchestrator mutates them.
type session struct {
	id string

	mu    sync.Mutex
	state types.SessionState

	user    *models.UserProfile
	pending *models.UserProfile

	query    search.Query
	offers   []models.Offer
	selected *models.Offer

	// searchSeq increases per issued search; only the response carrying
	// the latest value is applied, stale ones are discarded.
	searchSeq uint64

	// lastError is the state-scoped message surfaced to the UI after a
	// recovered failure. Cleared on the next successful transition.
	lastError string

	paymentInFlight bool
	pendingOutcome  *models.PaymentOutcome

	booking    *models.Booking
	ticketPDF  []byte
	ticketName string

	theme string
}

func newSession(id string) *session {
	return &session{
		id:    id,
		state: types.StateAnonymous,
		theme: types.ThemeLight,
	}
}

func (s *session) authenticated() bool {
	return s.user != nil && s.state.Authenticated()
}

// clearResults drops the offer list and any selection, keeping the
// query itself intact.
func (s *session) clearResults() {
	s.offers = nil
	s.selected = nil
}

// Snapshot is the render-ready view of a session, handed to the
// presentation surface. It is a copy: mutating it has no effect.
type Snapshot struct {
	SessionID       string
	State           types.SessionState
	User            *models.UserProfile
	Query           search.Query
	Offers          []models.Offer
	Selected        *models.Offer
	Booking         *models.Booking
	PaymentInFlight bool
	Theme           string
	LastError       string
}

func (s *session) snapshot() Snapshot {
	offers := make([]models.Offer, len(s.offers))
	copy(offers, s.offers)

	snap := Snapshot{
		SessionID:       s.id,
		State:           s.state,
		Query:           s.query,
		Offers:          offers,
		PaymentInFlight: s.paymentInFlight,
		Theme:           s.theme,
		LastError:       s.lastError,
	}
	if s.user != nil {
		u := *s.user
		snap.User = &u
	}
	if s.selected != nil {
		o := *s.selected
		snap.Selected = &o
	}
	if s.booking != nil {
		b := *s.booking
		snap.Booking = &b
	}
	return snap
}
