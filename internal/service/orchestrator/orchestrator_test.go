package orchestrator

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/travelswift/booking-system/internal/adapter/camera"
	"github.com/travelswift/booking-system/internal/domain/models"
	"github.com/travelswift/booking-system/internal/domain/types"
	"github.com/travelswift/booking-system/internal/service/identity"
	"github.com/travelswift/booking-system/internal/service/ledger"
	"github.com/travelswift/booking-system/internal/service/search"
	"github.com/travelswift/booking-system/internal/service/ticket"
	"github.com/travelswift/booking-system/pkg/logger"
)

var fixedNow = time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)

// stubSearcher blocks each call until released, so tests control when
// an in-flight search resolves.
type stubSearcher struct {
	mu      sync.Mutex
	blocked []chan struct{}
	results [][]models.Offer
	errs    []error
	calls   int
}

func (s *stubSearcher) expect(offers []models.Offer, err error) chan struct{} {
	s.mu.Lock()
	defer s.mu.Unlock()
	release := make(chan struct{})
	s.blocked = append(s.blocked, release)
	s.results = append(s.results, offers)
	s.errs = append(s.errs, err)
	return release
}

func (s *stubSearcher) Search(ctx context.Context, _ search.Query) ([]models.Offer, error) {
	s.mu.Lock()
	i := s.calls
	s.calls++
	release := s.blocked[i]
	offers, err := s.results[i], s.errs[i]
	s.mu.Unlock()

	select {
	case <-release:
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	return offers, err
}

// stubPayer resolves attempts from a scripted sequence, optionally
// blocking until released.
type stubPayer struct {
	mu      sync.Mutex
	blocked []chan struct{}
	confs   []*models.Confirmation
	errs    []error
	calls   int
}

func (p *stubPayer) expect(conf *models.Confirmation, err error) chan struct{} {
	p.mu.Lock()
	defer p.mu.Unlock()
	release := make(chan struct{})
	close(release)
	p.blocked = append(p.blocked, release)
	p.confs = append(p.confs, conf)
	p.errs = append(p.errs, err)
	return release
}

func (p *stubPayer) expectBlocked(conf *models.Confirmation, err error) chan struct{} {
	p.mu.Lock()
	defer p.mu.Unlock()
	release := make(chan struct{})
	p.blocked = append(p.blocked, release)
	p.confs = append(p.confs, conf)
	p.errs = append(p.errs, err)
	return release
}

func (p *stubPayer) Confirm(ctx context.Context, attempt models.PaymentAttempt) (*models.Confirmation, error) {
	p.mu.Lock()
	i := p.calls
	p.calls++
	release := p.blocked[i]
	conf, err := p.confs[i], p.errs[i]
	p.mu.Unlock()

	select {
	case <-release:
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	if conf != nil {
		c := *conf
		c.Offer = attempt.Offer
		c.Origin = attempt.Origin
		c.Destination = attempt.Destination
		c.Date = attempt.Date
		return &c, err
	}
	return nil, err
}

// memorySessionStore is a map-backed SessionStore.
type memorySessionStore struct {
	mu       sync.Mutex
	profiles map[string]models.UserProfile
	themes   map[string]string
}

func newMemorySessionStore() *memorySessionStore {
	return &memorySessionStore{
		profiles: make(map[string]models.UserProfile),
		themes:   make(map[string]string),
	}
}

func (m *memorySessionStore) SaveProfile(_ context.Context, id string, p *models.UserProfile) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.profiles[id] = *p
	return nil
}

func (m *memorySessionStore) LoadProfile(_ context.Context, id string) (*models.UserProfile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if p, ok := m.profiles[id]; ok {
		cp := p
		return &cp, nil
	}
	return nil, nil
}

func (m *memorySessionStore) SaveTheme(_ context.Context, id, theme string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.themes[id] = theme
	return nil
}

func (m *memorySessionStore) LoadTheme(_ context.Context, id string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.themes[id], nil
}

func (m *memorySessionStore) Clear(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.profiles, id)
	delete(m.themes, id)
	return nil
}

// chanNotifier forwards frames to a buffered channel.
type chanNotifier struct {
	frames chan any
}

func newChanNotifier() *chanNotifier {
	return &chanNotifier{frames: make(chan any, 16)}
}

func (n *chanNotifier) Notify(_ string, frame any) {
	select {
	case n.frames <- frame:
	default:
	}
}

func (n *chanNotifier) await(t *testing.T) any {
	t.Helper()
	select {
	case f := <-n.frames:
		return f
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for frame")
		return nil
	}
}

type fixture struct {
	orch     *Orchestrator
	searcher *stubSearcher
	payer    *stubPayer
	store    *memorySessionStore
	notifier *chanNotifier
	device   *camera.MockDevice
	history  *ledger.Ledger
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	log := logger.InitLogger("orchestrator-test", logger.LevelError)
	searcher := &stubSearcher{}
	payer := &stubPayer{}
	store := newMemorySessionStore()
	notifier := newChanNotifier()
	device := camera.NewMockDevice(true)
	history := ledger.New(ledger.NewMemoryStore(), log)

	orch := New(Deps{
		Identity: identity.NewVerifier(identity.NewMemoryCodeStore(), log),
		Searcher: searcher,
		Payer:    payer,
		History:  history,
		Tickets:  ticket.NewRenderer(log),
		Store:    store,
		Notifier: notifier,
		Events:   nil,
		Device:   device,
		Now:      func() time.Time { return fixedNow },
		Log:      log,
	})

	return &fixture{
		orch:     orch,
		searcher: searcher,
		payer:    payer,
		store:    store,
		notifier: notifier,
		device:   device,
		history:  history,
	}
}

func (f *fixture) authenticate(t *testing.T, sessionID string) {
	t.Helper()
	snap, err := f.orch.Login(context.Background(), sessionID, "demo@example.com", "ok")
	require.NoError(t, err)
	require.Equal(t, types.StateIdle, snap.State)
}

func rideQuery() search.Query {
	return search.Query{
		Kind:        types.RideKind,
		Origin:      "Patna",
		Destination: "Delhi",
		Date:        fixedNow,
		BusType:     search.BusTypeAny,
	}
}

func rideOffers() []models.Offer {
	return []models.Offer{
		{
			ID:   "ride-1",
			Kind: types.RideKind,
			Ride: &models.RideOffer{
				DriverName: "Rajesh Kumar", VehicleModel: "Maruti Dzire",
				VehicleNumber: "BR01AB1234", ETAMinutes: 5, Fare: 450, Rating: 4.8,
			},
		},
	}
}

// reviewOffers walks a session through login, search and result
// delivery until it is reviewing the given offers.
func (f *fixture) reviewOffers(t *testing.T, sessionID string, offers []models.Offer) {
	t.Helper()
	ctx := context.Background()

	f.authenticate(t, sessionID)

	release := f.searcher.expect(offers, nil)
	close(release)
	_, err := f.orch.StartSearch(ctx, sessionID, rideQuery())
	require.NoError(t, err)

	f.notifier.await(t)
	snap, err := f.orch.Snapshot(ctx, sessionID)
	require.NoError(t, err)
	require.Equal(t, types.StateReviewingOffers, snap.State)
}

func TestSignupVerifyFlow(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	snap, err := f.orch.Signup(ctx, "s1", &models.SignupDraft{
		Name: "A", Email: "b@x.com", Phone: "1", Password: "p",
	})
	require.NoError(t, err)
	assert.Equal(t, types.StatePendingVerification, snap.State)
	assert.Nil(t, snap.User)

	_, err = f.orch.SubmitCode(ctx, "s1", "000000")
	assert.ErrorIs(t, err, types.ErrInvalidCode)

	snap, err = f.orch.SubmitCode(ctx, "s1", "123456")
	require.NoError(t, err)
	assert.Equal(t, types.StateIdle, snap.State)
	require.NotNil(t, snap.User)
	assert.Equal(t, "b@x.com", snap.User.Email)

	// Session persisted and ledger seeded with the four demo bookings.
	stored, err := f.store.LoadProfile(ctx, "s1")
	require.NoError(t, err)
	require.NotNil(t, stored)

	upcoming, err := f.orch.UpcomingBookings(ctx, "s1")
	require.NoError(t, err)
	completed, err := f.orch.CompletedBookings(ctx, "s1")
	require.NoError(t, err)
	assert.Len(t, upcoming, 1)
	assert.Len(t, completed, 3)
}

func TestLoginScenarios(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.orch.Login(ctx, "s1", "taken@example.com", "fail")
	assert.ErrorIs(t, err, types.ErrInvalidCredentials)

	snap, err := f.orch.Login(ctx, "s1", "taken@example.com", "x")
	require.NoError(t, err)
	require.NotNil(t, snap.User)
	assert.Equal(t, "Demo User", snap.User.Name)
	assert.Equal(t, "taken@example.com", snap.User.Email)
	assert.Equal(t, "9876543210", snap.User.Phone)
}

func TestSessionRestore(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	f.authenticate(t, "s1")
	require.NoError(t, f.orch.SetTheme(ctx, "s1", types.ThemeDark))

	// A fresh orchestrator sharing the store restores straight to Idle.
	restored := New(Deps{
		Identity: identity.NewVerifier(identity.NewMemoryCodeStore(), f.orch.log),
		Searcher: f.searcher,
		Payer:    f.payer,
		History:  f.history,
		Tickets:  ticket.NewRenderer(f.orch.log),
		Store:    f.store,
		Device:   f.device,
		Now:      func() time.Time { return fixedNow },
		Log:      f.orch.log,
	})

	snap, err := restored.Attach(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, types.StateIdle, snap.State)
	require.NotNil(t, snap.User)
	assert.Equal(t, "demo@example.com", snap.User.Email)
	assert.Equal(t, types.ThemeDark, snap.Theme)
}

func TestSearchLifecycle(t *testing.T) {
	ctx := context.Background()

	t.Run("requires authentication", func(t *testing.T) {
		f := newFixture(t)
		f.orch.Attach(ctx, "s1")
		_, err := f.orch.StartSearch(ctx, "s1", rideQuery())
		assert.ErrorIs(t, err, types.ErrNotAuthenticated)
	})

	t.Run("rejects malformed query synchronously", func(t *testing.T) {
		f := newFixture(t)
		f.authenticate(t, "s1")

		q := rideQuery()
		q.Origin = ""
		_, err := f.orch.StartSearch(ctx, "s1", q)
		assert.ErrorIs(t, err, types.ErrValidationFailed)

		snap, err := f.orch.Snapshot(ctx, "s1")
		require.NoError(t, err)
		assert.Equal(t, types.StateIdle, snap.State)
	})

	t.Run("result enters reviewing offers", func(t *testing.T) {
		f := newFixture(t)
		f.reviewOffers(t, "s1", rideOffers())

		snap, err := f.orch.Snapshot(ctx, "s1")
		require.NoError(t, err)
		require.Len(t, snap.Offers, 1)
		assert.Equal(t, "ride-1", snap.Offers[0].ID)
	})

	t.Run("upstream failure returns to idle", func(t *testing.T) {
		f := newFixture(t)
		f.authenticate(t, "s1")

		release := f.searcher.expect(nil, types.ErrUpstreamUnavailable)
		close(release)
		_, err := f.orch.StartSearch(ctx, "s1", rideQuery())
		require.NoError(t, err)

		frame := f.notifier.await(t).(models.SearchResultsFrame)
		assert.NotEmpty(t, frame.Error)

		snap, err := f.orch.Snapshot(ctx, "s1")
		require.NoError(t, err)
		assert.Equal(t, types.StateIdle, snap.State)
		assert.Empty(t, snap.Offers)
		assert.Equal(t, types.ErrUpstreamUnavailable.Error(), snap.LastError)
	})

	t.Run("stale result is discarded", func(t *testing.T) {
		f := newFixture(t)
		f.authenticate(t, "s1")

		staleOffers := []models.Offer{{ID: "stale", Kind: types.RideKind, Ride: &models.RideOffer{}}}
		releaseStale := f.searcher.expect(staleOffers, nil)
		releaseFresh := f.searcher.expect(rideOffers(), nil)

		_, err := f.orch.StartSearch(ctx, "s1", rideQuery())
		require.NoError(t, err)
		// The stub pairs calls with expectations by arrival order, so the
		// stale search must reach it before the fresh one is issued.
		require.Eventually(t, func() bool {
			f.searcher.mu.Lock()
			defer f.searcher.mu.Unlock()
			return f.searcher.calls == 1
		}, time.Second, 5*time.Millisecond)
		_, err = f.orch.StartSearch(ctx, "s1", rideQuery())
		require.NoError(t, err)

		// The fresh search resolves first; the stale one after.
		close(releaseFresh)
		frame := f.notifier.await(t).(models.SearchResultsFrame)
		require.Len(t, frame.Offers, 1)
		assert.Equal(t, "ride-1", frame.Offers[0].ID)

		close(releaseStale)
		assert.Never(t, func() bool {
			snap, _ := f.orch.Snapshot(ctx, "s1")
			return len(snap.Offers) > 0 && snap.Offers[0].ID == "stale"
		}, 200*time.Millisecond, 20*time.Millisecond)
	})
}

func TestSelectOffer(t *testing.T) {
	ctx := context.Background()

	t.Run("opens payment", func(t *testing.T) {
		f := newFixture(t)
		f.reviewOffers(t, "s1", rideOffers())

		snap, err := f.orch.SelectOffer(ctx, "s1", "ride-1")
		require.NoError(t, err)
		assert.Equal(t, types.StateConfirmingPayment, snap.State)
		require.NotNil(t, snap.Selected)
		assert.Equal(t, "ride-1", snap.Selected.ID)
	})

	t.Run("unknown offer", func(t *testing.T) {
		f := newFixture(t)
		f.reviewOffers(t, "s1", rideOffers())

		_, err := f.orch.SelectOffer(ctx, "s1", "nope")
		assert.ErrorIs(t, err, types.ErrNotFound)
	})

	t.Run("unauthenticated selection is redirected", func(t *testing.T) {
		f := newFixture(t)
		f.orch.Attach(ctx, "s1")

		_, err := f.orch.SelectOffer(ctx, "s1", "ride-1")
		assert.ErrorIs(t, err, types.ErrNotAuthenticated)
	})
}

func TestCashPayment(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.reviewOffers(t, "s1", rideOffers())

	_, err := f.orch.SelectOffer(ctx, "s1", "ride-1")
	require.NoError(t, err)

	before, err := f.history.List(ctx, "s1")
	require.NoError(t, err)

	f.payer.expect(&models.Confirmation{Method: types.MethodCash, ConfirmedAt: fixedNow}, nil)
	booking, err := f.orch.ConfirmPayment(ctx, "s1", types.MethodCash, "")
	require.NoError(t, err)
	require.NotNil(t, booking)

	// Exactly one new entry whose fare equals the offer's fare.
	after, err := f.history.List(ctx, "s1")
	require.NoError(t, err)
	assert.Len(t, after, len(before)+1)
	assert.Equal(t, 450.0, booking.Fare)
	assert.Equal(t, "Maruti Dzire (BR01AB1234)", booking.Details)

	snap, err := f.orch.Snapshot(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, types.StateTicketIssued, snap.State)

	pdf, name, err := f.orch.Ticket(ctx, "s1")
	require.NoError(t, err)
	assert.NotEmpty(t, pdf)
	assert.Contains(t, name, ".pdf")

	snap, err = f.orch.AcknowledgeTicket(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, types.StateIdle, snap.State)
}

func TestUPIPayment(t *testing.T) {
	ctx := context.Background()

	t.Run("decline then retry appends once", func(t *testing.T) {
		f := newFixture(t)
		f.reviewOffers(t, "s1", rideOffers())
		_, err := f.orch.SelectOffer(ctx, "s1", "ride-1")
		require.NoError(t, err)

		before, err := f.history.List(ctx, "s1")
		require.NoError(t, err)

		f.payer.expect(nil, types.ErrPaymentDeclined)
		booking, err := f.orch.ConfirmPayment(ctx, "s1", types.MethodOnline, types.OnlineUPI)
		require.NoError(t, err)
		assert.Nil(t, booking)

		frame := f.notifier.await(t).(models.PaymentOutcomeFrame)
		assert.Equal(t, "payment.failed", frame.Type)

		// The attempt was not consumed, retry the same offer.
		f.payer.expect(&models.Confirmation{Method: types.MethodOnline, SubMethod: types.OnlineUPI, ConfirmedAt: fixedNow}, nil)
		_, err = f.orch.ConfirmPayment(ctx, "s1", types.MethodOnline, types.OnlineUPI)
		require.NoError(t, err)

		require.Eventually(t, func() bool {
			snap, _ := f.orch.Snapshot(ctx, "s1")
			return snap.State == types.StateTicketIssued
		}, 5*time.Second, 20*time.Millisecond)

		after, err := f.history.List(ctx, "s1")
		require.NoError(t, err)
		assert.Len(t, after, len(before)+1)
	})

	t.Run("single flight", func(t *testing.T) {
		f := newFixture(t)
		f.reviewOffers(t, "s1", rideOffers())
		_, err := f.orch.SelectOffer(ctx, "s1", "ride-1")
		require.NoError(t, err)

		release := f.payer.expectBlocked(&models.Confirmation{Method: types.MethodOnline, SubMethod: types.OnlineUPI, ConfirmedAt: fixedNow}, nil)

		_, err = f.orch.ConfirmPayment(ctx, "s1", types.MethodOnline, types.OnlineUPI)
		require.NoError(t, err)

		_, err = f.orch.ConfirmPayment(ctx, "s1", types.MethodOnline, types.OnlineUPI)
		assert.ErrorIs(t, err, types.ErrPaymentInFlight)

		close(release)
	})

	t.Run("result queued and applied on return", func(t *testing.T) {
		f := newFixture(t)
		f.reviewOffers(t, "s1", rideOffers())
		_, err := f.orch.SelectOffer(ctx, "s1", "ride-1")
		require.NoError(t, err)

		release := f.payer.expectBlocked(&models.Confirmation{Method: types.MethodOnline, SubMethod: types.OnlineUPI, ConfirmedAt: fixedNow}, nil)

		_, err = f.orch.ConfirmPayment(ctx, "s1", types.MethodOnline, types.OnlineUPI)
		require.NoError(t, err)

		// User navigates away while the gateway call is in flight.
		snap, err := f.orch.CancelPayment(ctx, "s1")
		require.NoError(t, err)
		assert.Equal(t, types.StateReviewingOffers, snap.State)
		assert.Len(t, snap.Offers, 1)

		close(release)

		// On return the queued confirmation is applied.
		require.Eventually(t, func() bool {
			snap, _ := f.orch.Snapshot(ctx, "s1")
			return snap.State == types.StateTicketIssued
		}, 5*time.Second, 20*time.Millisecond)
	})

	t.Run("queued result keeps its originating route", func(t *testing.T) {
		f := newFixture(t)
		f.reviewOffers(t, "s1", rideOffers())
		_, err := f.orch.SelectOffer(ctx, "s1", "ride-1")
		require.NoError(t, err)

		release := f.payer.expectBlocked(&models.Confirmation{Method: types.MethodOnline, SubMethod: types.OnlineUPI, ConfirmedAt: fixedNow}, nil)

		_, err = f.orch.ConfirmPayment(ctx, "s1", types.MethodOnline, types.OnlineUPI)
		require.NoError(t, err)

		_, err = f.orch.CancelPayment(ctx, "s1")
		require.NoError(t, err)

		// While the gateway call is still in flight the user rebooks a
		// past trip, replacing the session's query with its route.
		completed, err := f.orch.CompletedBookings(ctx, "s1")
		require.NoError(t, err)
		var past models.Booking
		for _, b := range completed {
			if b.Origin == "Mumbai" {
				past = b
			}
		}
		require.Equal(t, "Pune", past.Destination)

		query, err := f.orch.Rebook(ctx, "s1", past.ID.String())
		require.NoError(t, err)
		require.Equal(t, "Mumbai", query.Origin)

		close(release)

		// The applied booking must reflect the route the offer was
		// paid for, not the query the session holds now.
		require.Eventually(t, func() bool {
			snap, _ := f.orch.Snapshot(ctx, "s1")
			return snap.State == types.StateTicketIssued
		}, 5*time.Second, 20*time.Millisecond)

		snap, err := f.orch.Snapshot(ctx, "s1")
		require.NoError(t, err)
		require.NotNil(t, snap.Booking)
		assert.Equal(t, "Patna", snap.Booking.Origin)
		assert.Equal(t, "Delhi", snap.Booking.Destination)
		assert.Equal(t, models.Midnight(fixedNow), snap.Booking.Date)
		assert.Equal(t, 450.0, snap.Booking.Fare)
	})
}

func TestQRPayment(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.reviewOffers(t, "s1", rideOffers())
	_, err := f.orch.SelectOffer(ctx, "s1", "ride-1")
	require.NoError(t, err)

	// Device failure keeps the session in method selection.
	f.payer.expect(nil, types.ErrDeviceUnavailable)
	_, err = f.orch.ConfirmPayment(ctx, "s1", types.MethodOnline, types.OnlineQR)
	assert.ErrorIs(t, err, types.ErrDeviceUnavailable)

	snap, err := f.orch.Snapshot(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, types.StateConfirmingPayment, snap.State)

	// A successful scan confirms like cash.
	f.payer.expect(&models.Confirmation{Method: types.MethodOnline, SubMethod: types.OnlineQR, ConfirmedAt: fixedNow}, nil)
	booking, err := f.orch.ConfirmPayment(ctx, "s1", types.MethodOnline, types.OnlineQR)
	require.NoError(t, err)
	require.NotNil(t, booking)
}

func TestRebook(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.authenticate(t, "s1")

	completed, err := f.orch.CompletedBookings(ctx, "s1")
	require.NoError(t, err)
	require.NotEmpty(t, completed)

	// Most recent completed seed trip: Patna -> Delhi cab of 2024-07-15.
	b := completed[0]
	query, err := f.orch.Rebook(ctx, "s1", b.ID.String())
	require.NoError(t, err)

	assert.Equal(t, b.Kind, query.Kind)
	assert.Equal(t, b.Origin, query.Origin)
	assert.Equal(t, b.Destination, query.Destination)
	assert.Equal(t, models.Midnight(fixedNow), query.Date)
	assert.Equal(t, search.BusTypeAny, query.BusType)

	snap, err := f.orch.Snapshot(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, types.StateIdle, snap.State)
	assert.Empty(t, snap.Offers)
}

func TestLogout(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.authenticate(t, "s1")

	require.NoError(t, f.orch.Logout(ctx, "s1"))

	snap, err := f.orch.Snapshot(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, types.StateAnonymous, snap.State)
	assert.Nil(t, snap.User)

	stored, err := f.store.LoadProfile(ctx, "s1")
	require.NoError(t, err)
	assert.Nil(t, stored)

	_, err = f.orch.UpcomingBookings(ctx, "s1")
	assert.ErrorIs(t, err, types.ErrNotAuthenticated)
}

func TestUpdateProfile(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.authenticate(t, "s1")

	_, err := f.orch.UpdateProfile(ctx, "s1", "A", "")
	assert.ErrorIs(t, err, types.ErrValidationFailed)

	_, err = f.orch.UpdateProfile(ctx, "s1", "Asha Verma", "12345")
	assert.ErrorIs(t, err, types.ErrValidationFailed)

	snap, err := f.orch.UpdateProfile(ctx, "s1", "Asha Verma", "9123456780")
	require.NoError(t, err)
	assert.Equal(t, "Asha Verma", snap.User.Name)
	assert.Equal(t, "9123456780", snap.User.Phone)

	stored, err := f.store.LoadProfile(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, "Asha Verma", stored.Name)
}

func TestUploadPicture(t *testing.T) {
	ctx := context.Background()

	t.Run("capture stores the handle", func(t *testing.T) {
		f := newFixture(t)
		f.authenticate(t, "s1")

		snap, err := f.orch.UploadPicture(ctx, "s1")
		require.NoError(t, err)
		assert.NotEmpty(t, snap.User.ProfilePic)
		assert.Zero(t, f.device.OpenStreams())
	})

	t.Run("device failure leaves profile untouched", func(t *testing.T) {
		f := newFixture(t)
		f.authenticate(t, "s1")
		f.device.SetAvailable(false)

		_, err := f.orch.UploadPicture(ctx, "s1")
		assert.ErrorIs(t, err, types.ErrDeviceUnavailable)

		snap, err := f.orch.Snapshot(ctx, "s1")
		require.NoError(t, err)
		assert.Empty(t, snap.User.ProfilePic)
	})
}

func TestTheme(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.orch.Attach(ctx, "s1")

	theme, err := f.orch.Theme(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, types.ThemeLight, theme)

	require.NoError(t, f.orch.SetTheme(ctx, "s1", types.ThemeDark))

	theme, err = f.orch.Theme(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, types.ThemeDark, theme)

	assert.Error(t, f.orch.SetTheme(ctx, "s1", "sepia"))
}
