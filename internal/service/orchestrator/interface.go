package orchestrator

import (
	"context"
	"time"

	"github.com/travelswift/booking-system/internal/domain/models"
	"github.com/travelswift/booking-system/internal/service/search"
)

// Identity drives the signup/verify/login flows.
type Identity interface {
	BeginSignup(ctx context.Context, draft *models.SignupDraft) (*models.UserProfile, error)
	SubmitCode(ctx context.Context, pending *models.UserProfile, code string) (*models.UserProfile, error)
	Login(ctx context.Context, identifier, password string) (*models.UserProfile, error)
}

// Searcher resolves offer queries against the inventory.
type Searcher interface {
	Search(ctx context.Context, query search.Query) ([]models.Offer, error)
}

// Payer resolves a payment attempt to a confirmation or a typed failure.
type Payer interface {
	Confirm(ctx context.Context, attempt models.PaymentAttempt) (*models.Confirmation, error)
}

// History is the booking ledger as the orchestrator consumes it.
type History interface {
	Append(ctx context.Context, sessionID string, booking models.Booking) (models.Booking, error)
	List(ctx context.Context, sessionID string) ([]models.Booking, error)
	Upcoming(ctx context.Context, sessionID string, now time.Time) ([]models.Booking, error)
	Completed(ctx context.Context, sessionID string, now time.Time) ([]models.Booking, error)
	Seed(ctx context.Context, sessionID string, now time.Time) error
	Reset(ctx context.Context, sessionID string) error
}

// TicketRenderer produces the downloadable e-ticket document.
type TicketRenderer interface {
	Render(ctx context.Context, user *models.UserProfile, booking models.Booking) ([]byte, string, error)
}

// SessionStore is the key-value persistence behind a session: at most
// one serialized profile and one theme string per session.
type SessionStore interface {
	SaveProfile(ctx context.Context, sessionID string, profile *models.UserProfile) error
	LoadProfile(ctx context.Context, sessionID string) (*models.UserProfile, error)
	SaveTheme(ctx context.Context, sessionID, theme string) error
	LoadTheme(ctx context.Context, sessionID string) (string, error)
	Clear(ctx context.Context, sessionID string) error
}

// Notifier pushes asynchronous frames to the session's UI channel.
// Implementations must not block the caller.
type Notifier interface {
	Notify(sessionID string, frame any)
}

// EventPublisher emits booking lifecycle events to the message broker.
type EventPublisher interface {
	Publish(ctx context.Context, body models.BookingEventBody) error
}
