package orchestrator

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/travelswift/booking-system/internal/adapter/camera"
	"github.com/travelswift/booking-system/internal/domain/models"
	"github.com/travelswift/booking-system/internal/domain/types"
	"github.com/travelswift/booking-system/internal/service/search"
	"github.com/travelswift/booking-system/pkg/logger"
	wrap "github.com/travelswift/booking-system/pkg/logger/wrapper"
	"github.com/travelswift/booking-system/pkg/metrics"
	"github.com/travelswift/booking-system/pkg/validator"
)

const metricsService = "orchestrator"

// Orchestrator owns every session state machine and sequences the
// identity, search, payment, ledger and ticket collaborators. Session
// and ledger state are mutated only through it.
type Orchestrator struct {
	identity Identity
	searcher Searcher
	payer    Payer
	history  History
	tickets  TicketRenderer
	store    SessionStore
	notifier Notifier
	events   EventPublisher
	device   camera.Device
	now      func() time.Time
	log      logger.Logger

	sessions *registry
}

type Deps struct {
	Identity Identity
	Searcher Searcher
	Payer    Payer
	History  History
	Tickets  TicketRenderer
	Store    SessionStore
	Notifier Notifier
	Events   EventPublisher
	Device   camera.Device
	Now      func() time.Time
	Log      logger.Logger
}

func New(deps Deps) *Orchestrator {
	now := deps.Now
	if now == nil {
		now = time.Now
	}
	return &Orchestrator{
		identity: deps.Identity,
		searcher: deps.Searcher,
		payer:    deps.Payer,
		history:  deps.History,
		tickets:  deps.Tickets,
		store:    deps.Store,
		notifier: deps.Notifier,
		events:   deps.Events,
		device:   deps.Device,
		now:      now,
		log:      deps.Log,
		sessions: newRegistry(),
	}
}

// Attach returns the session's current view, creating the session if
// it does not exist yet. A newly created session is restored from the
// persisted store: a stored profile re-enters Idle directly, skipping
// verification.
func (o *Orchestrator) Attach(ctx context.Context, sessionID string) (Snapshot, error) {
	ctx = wrap.WithAction(ctx, "attach_session")

	s, created := o.sessions.getOrCreate(sessionID)

	s.mu.Lock()
	defer s.mu.Unlock()

	if created {
		o.restoreLocked(ctx, s)
	}
	o.applyPendingOutcomeLocked(ctx, s)

	return s.snapshot(), nil
}

// Snapshot returns the session's render-ready view. Reading the view
// counts as returning to the app, so a queued payment outcome is
// applied here.
func (o *Orchestrator) Snapshot(ctx context.Context, sessionID string) (Snapshot, error) {
	return o.Attach(ctx, sessionID)
}

func (o *Orchestrator) restoreLocked(ctx context.Context, s *session) {
	if o.store == nil {
		return
	}

	profile, err := o.store.LoadProfile(ctx, s.id)
	if err != nil {
		o.log.Warn(ctx, "failed to load persisted profile", "session_id", s.id, "error", err.Error())
		return
	}

	if theme, err := o.store.LoadTheme(ctx, s.id); err == nil && theme != "" {
		s.theme = theme
	}

	if profile == nil {
		return
	}

	s.user = profile
	s.state = types.StateIdle
	metrics.ActiveSessionsGauge.WithLabelValues(metricsService).Inc()

	if err := o.history.Seed(ctx, s.id, o.now()); err != nil {
		o.log.Error(ctx, "failed to seed restored session history", err, "session_id", s.id)
	}

	o.log.Info(ctx, "session restored from store", "session_id", s.id, "email", profile.Email)
}

// Signup stages a pending identity and moves the session to
// PendingVerification. The session is not authenticated yet.
func (o *Orchestrator) Signup(ctx context.Context, sessionID string, draft *models.SignupDraft) (Snapshot, error) {
	ctx = wrap.WithAction(ctx, "signup")

	s, _ := o.sessions.getOrCreate(sessionID)
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.authenticated() {
		return s.snapshot(), wrap.Error(ctx, types.ErrInvalidState)
	}

	pending, err := o.identity.BeginSignup(ctx, draft)
	if err != nil {
		s.lastError = err.Error()
		return s.snapshot(), err
	}

	s.pending = pending
	s.state = types.StatePendingVerification
	s.lastError = ""
	return s.snapshot(), nil
}

// SubmitCode verifies the pending identity. Success authenticates the
// session; a wrong code keeps the pending identity so the user can
// retry.
func (o *Orchestrator) SubmitCode(ctx context.Context, sessionID, code string) (Snapshot, error) {
	ctx = wrap.WithAction(ctx, "submit_code")

	s, _ := o.sessions.getOrCreate(sessionID)
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != types.StatePendingVerification || s.pending == nil {
		return s.snapshot(), wrap.Error(ctx, types.ErrNoPendingSignup)
	}

	user, err := o.identity.SubmitCode(ctx, s.pending, code)
	if err != nil {
		s.lastError = err.Error()
		return s.snapshot(), err
	}

	o.authenticateLocked(ctx, s, user)
	return s.snapshot(), nil
}

// Login authenticates directly, abandoning any pending signup.
func (o *Orchestrator) Login(ctx context.Context, sessionID, identifier, password string) (Snapshot, error) {
	ctx = wrap.WithAction(ctx, "login")

	s, _ := o.sessions.getOrCreate(sessionID)
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.authenticated() {
		return s.snapshot(), wrap.Error(ctx, types.ErrInvalidState)
	}

	user, err := o.identity.Login(ctx, identifier, password)
	if err != nil {
		s.lastError = err.Error()
		return s.snapshot(), err
	}

	s.pending = nil
	o.authenticateLocked(ctx, s, user)
	return s.snapshot(), nil
}

func (o *Orchestrator) authenticateLocked(ctx context.Context, s *session, user *models.UserProfile) {
	s.user = user
	s.pending = nil
	s.state = types.StateIdle
	s.lastError = ""
	metrics.ActiveSessionsGauge.WithLabelValues(metricsService).Inc()

	if o.store != nil {
		if err := o.store.SaveProfile(ctx, s.id, user); err != nil {
			o.log.Error(ctx, "failed to persist session profile", err,
				"action", types.ActionSessionStoreFailed,
				"session_id", s.id,
			)
		}
	}

	if err := o.history.Seed(ctx, s.id, o.now()); err != nil {
		o.log.Error(ctx, "failed to seed session history", err, "session_id", s.id)
	}

	o.log.Info(ctx, "session authenticated", "session_id", s.id, "email", user.Email)
}

// Logout tears the session down: user, pending identity, results,
// in-flight payment bookkeeping and persisted profile are all cleared.
// Reachable from every authenticated state.
func (o *Orchestrator) Logout(ctx context.Context, sessionID string) error {
	ctx = wrap.WithAction(ctx, "logout")

	s, ok := o.sessions.get(sessionID)
	if !ok {
		return wrap.Error(ctx, types.ErrSessionNotFound)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.authenticated() {
		return wrap.Error(ctx, types.ErrNotAuthenticated)
	}

	metrics.ActiveSessionsGauge.WithLabelValues(metricsService).Dec()

	s.user = nil
	s.pending = nil
	s.query = search.Query{}
	s.clearResults()
	s.pendingOutcome = nil
	s.booking = nil
	s.ticketPDF = nil
	s.ticketName = ""
	s.lastError = ""
	s.state = types.StateAnonymous

	if err := o.history.Reset(ctx, s.id); err != nil {
		o.log.Error(ctx, "failed to reset session history", err, "session_id", s.id)
	}

	if o.store != nil {
		if err := o.store.Clear(ctx, s.id); err != nil {
			o.log.Error(ctx, "failed to clear persisted session", err,
				"action", types.ActionSessionStoreFailed,
				"session_id", s.id,
			)
		}
	}

	o.log.Info(ctx, "session logged out", "session_id", s.id)
	return nil
}

// StartSearch issues an asynchronous offer search. A repeated call
// replaces the in-flight one: only the newest request's outcome is
// applied, stale responses are discarded by sequence number. The
// assigned sequence number is returned for observability.
func (o *Orchestrator) StartSearch(ctx context.Context, sessionID string, query search.Query) (uint64, error) {
	ctx = wrap.WithAction(ctx, "start_search")

	s, ok := o.sessions.get(sessionID)
	if !ok {
		return 0, wrap.Error(ctx, types.ErrSessionNotFound)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.authenticated() {
		return 0, wrap.Error(ctx, types.ErrNotAuthenticated)
	}

	switch s.state {
	case types.StateIdle, types.StateSearching, types.StateReviewingOffers:
	default:
		return 0, wrap.Error(ctx, types.ErrInvalidState)
	}

	// Malformed queries are rejected here, before any latency or state
	// transition.
	if !query.Kind.Valid() ||
		strings.TrimSpace(query.Origin) == "" ||
		strings.TrimSpace(query.Destination) == "" ||
		query.Date.IsZero() {
		return 0, wrap.Error(ctx, types.ErrValidationFailed)
	}

	s.searchSeq++
	seq := s.searchSeq
	s.query = query
	s.clearResults()
	s.state = types.StateSearching
	s.lastError = ""

	// The search outlives the request that started it.
	go o.runSearch(context.WithoutCancel(ctx), s, seq, query)

	return seq, nil
}

func (o *Orchestrator) runSearch(ctx context.Context, s *session, seq uint64, query search.Query) {
	offers, err := o.searcher.Search(ctx, query)

	s.mu.Lock()
	defer s.mu.Unlock()

	// Only the newest in-flight search may touch the session.
	if seq != s.searchSeq || s.state != types.StateSearching {
		o.log.Debug(ctx, "discarding stale search result", "session_id", s.id, "seq", seq)
		return
	}

	frame := models.SearchResultsFrame{Type: "search.results", RequestID: seq}

	if err != nil {
		s.state = types.StateIdle
		s.lastError = err.Error()
		frame.Error = err.Error()
		o.notify(s.id, frame)
		return
	}

	s.offers = offers
	s.state = types.StateReviewingOffers
	frame.Offers = offers
	o.notify(s.id, frame)
}

// SelectOffer picks one offer from the current result set and opens
// payment. Unauthenticated selection is redirected to the login entry
// point by the caller via ErrNotAuthenticated.
func (o *Orchestrator) SelectOffer(ctx context.Context, sessionID, offerID string) (Snapshot, error) {
	ctx = wrap.WithAction(ctx, "select_offer")

	s, ok := o.sessions.get(sessionID)
	if !ok {
		return Snapshot{}, wrap.Error(ctx, types.ErrSessionNotFound)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.authenticated() {
		return s.snapshot(), wrap.Error(ctx, types.ErrNotAuthenticated)
	}
	if s.state != types.StateReviewingOffers {
		return s.snapshot(), wrap.Error(ctx, types.ErrInvalidState)
	}

	for i := range s.offers {
		if s.offers[i].ID == offerID {
			offer := s.offers[i]
			s.selected = &offer
			s.state = types.StateConfirmingPayment
			s.lastError = ""
			return s.snapshot(), nil
		}
	}

	return s.snapshot(), wrap.Error(ctx, types.ErrNotFound)
}

// ConfirmPayment resolves the selected offer through the chosen
// payment path. Cash and QR resolve synchronously; UPI runs in the
// background and returns a nil booking, its outcome arrives via the
// notifier or is queued for the session's return. Payment is
// single-flight per session.
func (o *Orchestrator) ConfirmPayment(ctx context.Context, sessionID string, method types.PaymentMethod, subMethod types.OnlineMethod) (*models.Booking, error) {
	ctx = wrap.WithAction(ctx, "confirm_payment")

	s, ok := o.sessions.get(sessionID)
	if !ok {
		return nil, wrap.Error(ctx, types.ErrSessionNotFound)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if booking, applied, err := o.applyPendingOutcomeLocked(ctx, s); applied {
		return booking, err
	}

	if !s.authenticated() {
		return nil, wrap.Error(ctx, types.ErrNotAuthenticated)
	}
	if s.state != types.StateConfirmingPayment {
		return nil, wrap.Error(ctx, types.ErrInvalidState)
	}
	if s.paymentInFlight {
		return nil, wrap.Error(ctx, types.ErrPaymentInFlight)
	}

	// Reaching ConfirmingPayment without a selection is a caller
	// contract breach, not a user error.
	if s.selected == nil {
		panic(fmt.Sprintf("session %s: confirm payment with no offer selected", s.id))
	}

	attempt := models.PaymentAttempt{
		Offer:       *s.selected,
		Method:      method,
		SubMethod:   subMethod,
		Origin:      s.query.Origin,
		Destination: s.query.Destination,
		Date:        models.Midnight(s.query.Date),
	}

	if method == types.MethodOnline && subMethod == types.OnlineUPI {
		s.paymentInFlight = true
		go o.runUPIPayment(context.WithoutCancel(ctx), s, attempt)
		return nil, nil
	}

	conf, err := o.payer.Confirm(ctx, attempt)
	if err != nil {
		s.lastError = err.Error()
		return nil, err
	}

	booking, err := o.finalizeLocked(ctx, s, conf)
	if err != nil {
		return nil, wrap.Error(ctx, err)
	}
	return booking, nil
}

// runUPIPayment completes an in-flight UPI attempt. The attempt runs
// to completion even if the user navigated away; a result that arrives
// for a session no longer confirming this offer is queued and applied
// when the session next reads its state.
func (o *Orchestrator) runUPIPayment(ctx context.Context, s *session, attempt models.PaymentAttempt) {
	conf, err := o.payer.Confirm(ctx, attempt)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.paymentInFlight = false

	stillConfirming := s.state == types.StateConfirmingPayment &&
		s.selected != nil && s.selected.ID == attempt.Offer.ID

	if !stillConfirming {
		if s.user == nil {
			// Logged out mid-flight: fire and forget.
			return
		}
		s.pendingOutcome = &models.PaymentOutcome{Confirmation: conf, Err: err}
		o.log.Info(ctx, "queued payment outcome for session return", "session_id", s.id)
		return
	}

	if err != nil {
		s.lastError = err.Error()
		o.notify(s.id, models.PaymentOutcomeFrame{
			Type:  "payment.failed",
			Error: err.Error(),
		})
		return
	}

	if _, err := o.finalizeLocked(ctx, s, conf); err != nil {
		s.lastError = err.Error()
		o.log.Error(ctx, "failed to finalize confirmed payment", err, "session_id", s.id)
	}
}

// applyPendingOutcomeLocked applies a queued asynchronous payment
// result. Returns applied=false when nothing was queued.
func (o *Orchestrator) applyPendingOutcomeLocked(ctx context.Context, s *session) (*models.Booking, bool, error) {
	if s.pendingOutcome == nil {
		return nil, false, nil
	}

	out := s.pendingOutcome
	s.pendingOutcome = nil

	if out.Err != nil {
		s.lastError = out.Err.Error()
		return nil, true, out.Err
	}

	if s.user == nil {
		return nil, true, nil
	}

	booking, err := o.finalizeLocked(ctx, s, out.Confirmation)
	if err != nil {
		s.lastError = err.Error()
		return nil, true, err
	}
	return booking, true, nil
}

// finalizeLocked turns a confirmation into exactly one ledger entry,
// renders the e-ticket and moves the session to TicketIssued. The
// entry is built entirely from the confirmation: by the time a queued
// asynchronous outcome lands here, the session's query may already
// describe a different route.
func (o *Orchestrator) finalizeLocked(ctx context.Context, s *session, conf *models.Confirmation) (*models.Booking, error) {
	booking := models.Booking{
		Kind:        conf.Offer.Kind,
		Origin:      conf.Origin,
		Destination: conf.Destination,
		Date:        models.Midnight(conf.Date),
		Fare:        conf.Offer.Fare(),
		Details:     conf.Offer.Details(),
	}

	appended, err := o.history.Append(ctx, s.id, booking)
	if err != nil {
		return nil, err
	}

	s.booking = &appended
	s.selected = nil
	s.state = types.StateTicketIssued
	s.lastError = ""

	o.publish(ctx, types.EventBookingCreated, s.id, appended)
	o.publish(ctx, types.EventPaymentConfirmed, s.id, appended)

	o.notify(s.id, models.PaymentOutcomeFrame{
		Type:      "payment.confirmed",
		Confirmed: true,
		BookingID: appended.ID,
	})

	pdf, filename, err := o.tickets.Render(ctx, s.user, appended)
	if err != nil {
		o.log.Error(ctx, "failed to render e-ticket", err, "booking_id", appended.ID.String())
	} else {
		s.ticketPDF = pdf
		s.ticketName = filename
		o.publish(ctx, types.EventTicketIssued, s.id, appended)
		o.notify(s.id, models.TicketIssuedFrame{
			Type:      "ticket.issued",
			BookingID: appended.ID,
			Filename:  filename,
		})
	}

	return &appended, nil
}

// CancelPayment abandons the current attempt and returns to the
// preserved offer list. An in-flight UPI call is not interrupted; its
// result is queued against the session.
func (o *Orchestrator) CancelPayment(ctx context.Context, sessionID string) (Snapshot, error) {
	ctx = wrap.WithAction(ctx, "cancel_payment")

	s, ok := o.sessions.get(sessionID)
	if !ok {
		return Snapshot{}, wrap.Error(ctx, types.ErrSessionNotFound)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != types.StateConfirmingPayment {
		return s.snapshot(), wrap.Error(ctx, types.ErrInvalidState)
	}

	s.selected = nil
	s.state = types.StateReviewingOffers
	s.lastError = ""
	return s.snapshot(), nil
}

// AcknowledgeTicket closes the issued-ticket view and returns to Idle.
func (o *Orchestrator) AcknowledgeTicket(ctx context.Context, sessionID string) (Snapshot, error) {
	ctx = wrap.WithAction(ctx, "acknowledge_ticket")

	s, ok := o.sessions.get(sessionID)
	if !ok {
		return Snapshot{}, wrap.Error(ctx, types.ErrSessionNotFound)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != types.StateTicketIssued {
		return s.snapshot(), wrap.Error(ctx, types.ErrInvalidState)
	}

	s.clearResults()
	s.booking = nil
	s.ticketPDF = nil
	s.ticketName = ""
	s.state = types.StateIdle
	return s.snapshot(), nil
}

// Ticket returns the rendered e-ticket of the just-issued booking.
func (o *Orchestrator) Ticket(ctx context.Context, sessionID string) ([]byte, string, error) {
	ctx = wrap.WithAction(ctx, "download_ticket")

	s, ok := o.sessions.get(sessionID)
	if !ok {
		return nil, "", wrap.Error(ctx, types.ErrSessionNotFound)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.ticketPDF) == 0 {
		return nil, "", wrap.Error(ctx, types.ErrNotFound)
	}
	return s.ticketPDF, s.ticketName, nil
}

// Rebook pre-fills a fresh query from a historical booking: original
// route and service kind, date forced to today, filters reset to
// defaults. The session returns to Idle ready for a normal search.
func (o *Orchestrator) Rebook(ctx context.Context, sessionID string, bookingID string) (search.Query, error) {
	ctx = wrap.WithAction(ctx, "rebook")

	s, ok := o.sessions.get(sessionID)
	if !ok {
		return search.Query{}, wrap.Error(ctx, types.ErrSessionNotFound)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.authenticated() {
		return search.Query{}, wrap.Error(ctx, types.ErrNotAuthenticated)
	}

	bookings, err := o.history.List(ctx, s.id)
	if err != nil {
		return search.Query{}, wrap.Error(ctx, err)
	}

	for _, b := range bookings {
		if b.ID.String() != bookingID {
			continue
		}

		s.query = search.Query{
			Kind:        b.Kind,
			Origin:      b.Origin,
			Destination: b.Destination,
			Date:        models.Midnight(o.now()),
			BusType:     search.BusTypeAny,
		}
		s.clearResults()
		s.state = types.StateIdle
		s.lastError = ""
		return s.query, nil
	}

	return search.Query{}, wrap.Error(ctx, types.ErrBookingNotFound)
}

// UpcomingBookings lists the session's future trips, soonest first.
func (o *Orchestrator) UpcomingBookings(ctx context.Context, sessionID string) ([]models.Booking, error) {
	s, err := o.authenticatedSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return o.history.Upcoming(ctx, s.id, o.now())
}

// CompletedBookings lists the session's past trips, most recent first.
func (o *Orchestrator) CompletedBookings(ctx context.Context, sessionID string) ([]models.Booking, error) {
	s, err := o.authenticatedSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return o.history.Completed(ctx, s.id, o.now())
}

// UpdateProfile changes the mutable profile attributes. Email is the
// identity key and stays immutable.
func (o *Orchestrator) UpdateProfile(ctx context.Context, sessionID, name, phone string) (Snapshot, error) {
	ctx = wrap.WithAction(ctx, "update_profile")

	s, ok := o.sessions.get(sessionID)
	if !ok {
		return Snapshot{}, wrap.Error(ctx, types.ErrSessionNotFound)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.authenticated() {
		return s.snapshot(), wrap.Error(ctx, types.ErrNotAuthenticated)
	}

	name = strings.TrimSpace(name)
	phone = strings.TrimSpace(phone)

	v := validator.New()
	v.Check(len(name) >= 2, "name", "must be at least 2 characters")
	v.Check(phone == "" || validator.Matches(phone, validator.PhoneRX), "phone", "must be 10 digits")
	if !v.Valid() {
		s.lastError = types.ErrValidationFailed.Error()
		return s.snapshot(), wrap.Error(ctx, types.ErrValidationFailed)
	}

	s.user.Name = name
	s.user.Phone = phone
	s.lastError = ""

	o.persistProfileLocked(ctx, s)
	return s.snapshot(), nil
}

// UploadPicture captures a profile picture through the camera
// collaborator. The stream is released on every path.
func (o *Orchestrator) UploadPicture(ctx context.Context, sessionID string) (Snapshot, error) {
	ctx = wrap.WithAction(ctx, "upload_picture")

	s, ok := o.sessions.get(sessionID)
	if !ok {
		return Snapshot{}, wrap.Error(ctx, types.ErrSessionNotFound)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.authenticated() {
		return s.snapshot(), wrap.Error(ctx, types.ErrNotAuthenticated)
	}

	stream, err := o.device.AcquireStream(ctx)
	if err != nil {
		s.lastError = err.Error()
		return s.snapshot(), wrap.Error(ctx, err)
	}
	defer func() {
		if relErr := o.device.Release(ctx, stream); relErr != nil {
			o.log.Warn(ctx, "failed to release camera stream", "error", relErr.Error())
		}
	}()

	handle, err := o.device.Capture(ctx, stream)
	if err != nil {
		s.lastError = err.Error()
		return s.snapshot(), wrap.Error(ctx, err)
	}

	s.user.ProfilePic = handle
	s.lastError = ""

	o.persistProfileLocked(ctx, s)
	return s.snapshot(), nil
}

func (o *Orchestrator) persistProfileLocked(ctx context.Context, s *session) {
	if o.store == nil {
		return
	}
	if err := o.store.SaveProfile(ctx, s.id, s.user); err != nil {
		o.log.Error(ctx, "failed to persist session profile", err,
			"action", types.ActionSessionStoreFailed,
			"session_id", s.id,
		)
	}
}

// Theme returns the session's persisted theme preference.
func (o *Orchestrator) Theme(ctx context.Context, sessionID string) (string, error) {
	s, ok := o.sessions.get(sessionID)
	if !ok {
		return "", types.ErrSessionNotFound
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.theme, nil
}

// SetTheme stores the theme preference for the session.
func (o *Orchestrator) SetTheme(ctx context.Context, sessionID, theme string) error {
	ctx = wrap.WithAction(ctx, "set_theme")

	if theme != types.ThemeLight && theme != types.ThemeDark {
		return wrap.Error(ctx, types.ErrValidationFailed)
	}

	s, _ := o.sessions.getOrCreate(sessionID)
	s.mu.Lock()
	defer s.mu.Unlock()

	s.theme = theme

	if o.store != nil {
		if err := o.store.SaveTheme(ctx, s.id, theme); err != nil {
			o.log.Error(ctx, "failed to persist theme", err,
				"action", types.ActionSessionStoreFailed,
				"session_id", s.id,
			)
		}
	}
	return nil
}

func (o *Orchestrator) authenticatedSession(ctx context.Context, sessionID string) (*session, error) {
	s, ok := o.sessions.get(sessionID)
	if !ok {
		return nil, wrap.Error(ctx, types.ErrSessionNotFound)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.authenticated() {
		return nil, wrap.Error(ctx, types.ErrNotAuthenticated)
	}
	return s, nil
}

func (o *Orchestrator) notify(sessionID string, frame any) {
	if o.notifier == nil {
		return
	}
	o.notifier.Notify(sessionID, frame)
}

func (o *Orchestrator) publish(ctx context.Context, event types.BookingEvent, sessionID string, booking models.Booking) {
	if o.events == nil {
		return
	}

	body := models.BookingEventBody{
		Event:     event,
		SessionID: sessionID,
		Booking:   booking,
		Timestamp: o.now().UTC(),
	}
	if err := o.events.Publish(ctx, body); err != nil {
		o.log.Error(ctx, "failed to publish booking event", err, "event", event.String())
	}
}
