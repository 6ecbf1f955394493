package handler

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/travelswift/booking-system/internal/adapter/http/handler/dto"
	"github.com/travelswift/booking-system/internal/domain/models"
	"github.com/travelswift/booking-system/internal/domain/types"
	"github.com/travelswift/booking-system/internal/service/orchestrator"
	"github.com/travelswift/booking-system/internal/service/search"
	"github.com/travelswift/booking-system/pkg/logger"
	wrap "github.com/travelswift/booking-system/pkg/logger/wrapper"
	"github.com/travelswift/booking-system/pkg/uuid"
	"github.com/travelswift/booking-system/pkg/validator"
)

type SessionService interface {
	Attach(ctx context.Context, sessionID string) (orchestrator.Snapshot, error)
	StartSearch(ctx context.Context, sessionID string, query search.Query) (uint64, error)
	SelectOffer(ctx context.Context, sessionID, offerID string) (orchestrator.Snapshot, error)
	ConfirmPayment(ctx context.Context, sessionID string, method types.PaymentMethod, subMethod types.OnlineMethod) (*models.Booking, error)
	CancelPayment(ctx context.Context, sessionID string) (orchestrator.Snapshot, error)
	AcknowledgeTicket(ctx context.Context, sessionID string) (orchestrator.Snapshot, error)
	Ticket(ctx context.Context, sessionID string) ([]byte, string, error)
	Rebook(ctx context.Context, sessionID, bookingID string) (search.Query, error)
	UpcomingBookings(ctx context.Context, sessionID string) ([]models.Booking, error)
	CompletedBookings(ctx context.Context, sessionID string) ([]models.Booking, error)
	Theme(ctx context.Context, sessionID string) (string, error)
	SetTheme(ctx context.Context, sessionID, theme string) error
}

type Session struct {
	sessions SessionService
	now      func() time.Time
	l        logger.Logger
}

func NewSession(sessions SessionService, l logger.Logger) *Session {
	return &Session{
		sessions: sessions,
		now:      time.Now,
		l:        l,
	}
}

// Create mints a fresh session identifier and attaches to it.
func (h *Session) Create(w http.ResponseWriter, r *http.Request) {
	ctx := wrap.WithAction(r.Context(), "create_session")

	id, err := uuid.New()
	if err != nil {
		h.l.Error(wrap.ErrorCtx(ctx, err), "failed to generate session id", err)
		internalErrorResponse(w, "failed to create session")
		return
	}

	snap, err := h.sessions.Attach(ctx, id.String())
	if err != nil {
		h.l.Error(wrap.ErrorCtx(ctx, err), "failed to attach session", err)
		errorResponse(w, GetCode(err), err.Error())
		return
	}

	response := envelope{"session": snapshotEnvelope(snap)}
	if err := writeJSON(w, http.StatusCreated, response, nil); err != nil {
		h.l.Error(wrap.ErrorCtx(ctx, err), "failed to write JSON response", err)
		internalErrorResponse(w, "failed to write JSON response")
	}
}

// Attach returns the current view of a session, creating it on first
// contact and restoring a persisted profile when one exists.
func (h *Session) Attach(w http.ResponseWriter, r *http.Request) {
	ctx := wrap.WithAction(r.Context(), "attach_session")

	sessionID, ok := sessionIDFromRequest(w, r)
	if !ok {
		return
	}

	snap, err := h.sessions.Attach(ctx, sessionID)
	if err != nil {
		h.l.Error(wrap.ErrorCtx(ctx, err), "failed to attach session", err)
		errorResponse(w, GetCode(err), err.Error())
		return
	}

	response := envelope{"session": snapshotEnvelope(snap)}
	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		h.l.Error(wrap.ErrorCtx(ctx, err), "failed to write JSON response", err)
		internalErrorResponse(w, "failed to write JSON response")
	}
}

// Search kicks off an asynchronous offer lookup. Results arrive on the
// session websocket; the response only acknowledges the request.
func (h *Session) Search(w http.ResponseWriter, r *http.Request) {
	ctx := wrap.WithAction(r.Context(), "start_search")

	sessionID, ok := sessionIDFromRequest(w, r)
	if !ok {
		return
	}

	req := &dto.SearchRequest{}
	if err := readJSON(w, r, req); err != nil {
		badRequestResponse(w, err.Error())
		return
	}

	v := validator.New()
	dto.ValidateSearch(v, req)
	if !v.Valid() {
		failedValidationResponse(w, v.Errors)
		return
	}

	query, err := req.ToQuery(h.now())
	if err != nil {
		badRequestResponse(w, err.Error())
		return
	}

	seq, err := h.sessions.StartSearch(ctx, sessionID, query)
	if err != nil {
		h.l.Error(wrap.ErrorCtx(ctx, err), "failed to start search", err)
		errorResponse(w, GetCode(err), err.Error())
		return
	}

	response := envelope{"search_id": seq}
	if err := writeJSON(w, http.StatusAccepted, response, nil); err != nil {
		h.l.Error(wrap.ErrorCtx(ctx, err), "failed to write JSON response", err)
		internalErrorResponse(w, "failed to write JSON response")
	}
}

func (h *Session) SelectOffer(w http.ResponseWriter, r *http.Request) {
	ctx := wrap.WithAction(r.Context(), "select_offer")

	sessionID, ok := sessionIDFromRequest(w, r)
	if !ok {
		return
	}

	offerID := r.PathValue("offer_id")
	if offerID == "" {
		badRequestResponse(w, "missing offer_id path parameter")
		return
	}

	snap, err := h.sessions.SelectOffer(ctx, sessionID, offerID)
	if err != nil {
		h.l.Error(wrap.ErrorCtx(ctx, err), "failed to select offer", err)
		errorResponse(w, GetCode(err), err.Error())
		return
	}

	response := envelope{"session": snapshotEnvelope(snap)}
	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		h.l.Error(wrap.ErrorCtx(ctx, err), "failed to write JSON response", err)
		internalErrorResponse(w, "failed to write JSON response")
	}
}

// ConfirmPayment runs the selected offer through the chosen payment
// path. Cash and QR resolve synchronously; UPI answers 202 and the
// outcome arrives on the session websocket.
func (h *Session) ConfirmPayment(w http.ResponseWriter, r *http.Request) {
	ctx := wrap.WithAction(r.Context(), "confirm_payment")

	sessionID, ok := sessionIDFromRequest(w, r)
	if !ok {
		return
	}

	req := &dto.PaymentRequest{}
	if err := readJSON(w, r, req); err != nil {
		badRequestResponse(w, err.Error())
		return
	}

	v := validator.New()
	dto.ValidatePayment(v, req)
	if !v.Valid() {
		failedValidationResponse(w, v.Errors)
		return
	}

	booking, err := h.sessions.ConfirmPayment(ctx, sessionID,
		types.PaymentMethod(req.Method), types.OnlineMethod(req.SubMethod))
	if err != nil {
		h.l.Error(wrap.ErrorCtx(ctx, err), "payment failed", err)
		errorResponse(w, GetCode(err), err.Error())
		return
	}

	if booking == nil {
		response := envelope{"status": "processing"}
		if err := writeJSON(w, http.StatusAccepted, response, nil); err != nil {
			h.l.Error(wrap.ErrorCtx(ctx, err), "failed to write JSON response", err)
			internalErrorResponse(w, "failed to write JSON response")
		}
		return
	}

	response := envelope{"booking": booking}
	if err := writeJSON(w, http.StatusCreated, response, nil); err != nil {
		h.l.Error(wrap.ErrorCtx(ctx, err), "failed to write JSON response", err)
		internalErrorResponse(w, "failed to write JSON response")
	}
}

func (h *Session) CancelPayment(w http.ResponseWriter, r *http.Request) {
	ctx := wrap.WithAction(r.Context(), "cancel_payment")

	sessionID, ok := sessionIDFromRequest(w, r)
	if !ok {
		return
	}

	snap, err := h.sessions.CancelPayment(ctx, sessionID)
	if err != nil {
		h.l.Error(wrap.ErrorCtx(ctx, err), "failed to cancel payment", err)
		errorResponse(w, GetCode(err), err.Error())
		return
	}

	response := envelope{"session": snapshotEnvelope(snap)}
	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		h.l.Error(wrap.ErrorCtx(ctx, err), "failed to write JSON response", err)
		internalErrorResponse(w, "failed to write JSON response")
	}
}

// AcknowledgeTicket dismisses the issued ticket and returns the
// session to the idle state.
func (h *Session) AcknowledgeTicket(w http.ResponseWriter, r *http.Request) {
	ctx := wrap.WithAction(r.Context(), "acknowledge_ticket")

	sessionID, ok := sessionIDFromRequest(w, r)
	if !ok {
		return
	}

	snap, err := h.sessions.AcknowledgeTicket(ctx, sessionID)
	if err != nil {
		h.l.Error(wrap.ErrorCtx(ctx, err), "failed to acknowledge ticket", err)
		errorResponse(w, GetCode(err), err.Error())
		return
	}

	response := envelope{"session": snapshotEnvelope(snap)}
	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		h.l.Error(wrap.ErrorCtx(ctx, err), "failed to write JSON response", err)
		internalErrorResponse(w, "failed to write JSON response")
	}
}

// Ticket streams the rendered e-ticket PDF for the active booking.
func (h *Session) Ticket(w http.ResponseWriter, r *http.Request) {
	ctx := wrap.WithAction(r.Context(), "download_ticket")

	sessionID, ok := sessionIDFromRequest(w, r)
	if !ok {
		return
	}

	pdf, filename, err := h.sessions.Ticket(ctx, sessionID)
	if err != nil {
		h.l.Error(wrap.ErrorCtx(ctx, err), "failed to fetch ticket", err)
		errorResponse(w, GetCode(err), err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(pdf); err != nil {
		h.l.Error(wrap.ErrorCtx(ctx, err), "failed to stream ticket", err)
	}
}

// Rebook prefills a fresh search from a past booking and returns the
// resulting query so the client can render the form.
func (h *Session) Rebook(w http.ResponseWriter, r *http.Request) {
	ctx := wrap.WithAction(r.Context(), "rebook")

	sessionID, ok := sessionIDFromRequest(w, r)
	if !ok {
		return
	}

	req := &dto.RebookRequest{}
	if err := readJSON(w, r, req); err != nil {
		badRequestResponse(w, err.Error())
		return
	}

	v := validator.New()
	dto.ValidateRebook(v, req)
	if !v.Valid() {
		failedValidationResponse(w, v.Errors)
		return
	}

	query, err := h.sessions.Rebook(ctx, sessionID, req.BookingID)
	if err != nil {
		h.l.Error(wrap.ErrorCtx(ctx, err), "failed to rebook", err)
		errorResponse(w, GetCode(err), err.Error())
		return
	}

	response := envelope{"query": queryEnvelope(query)}
	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		h.l.Error(wrap.ErrorCtx(ctx, err), "failed to write JSON response", err)
		internalErrorResponse(w, "failed to write JSON response")
	}
}

func (h *Session) UpcomingBookings(w http.ResponseWriter, r *http.Request) {
	h.listBookings(w, r, "list_upcoming_bookings", h.sessions.UpcomingBookings)
}

func (h *Session) CompletedBookings(w http.ResponseWriter, r *http.Request) {
	h.listBookings(w, r, "list_completed_bookings", h.sessions.CompletedBookings)
}

func (h *Session) listBookings(w http.ResponseWriter, r *http.Request, action string,
	list func(ctx context.Context, sessionID string) ([]models.Booking, error),
) {
	ctx := wrap.WithAction(r.Context(), action)

	sessionID, ok := sessionIDFromRequest(w, r)
	if !ok {
		return
	}

	qs := r.URL.Query()
	v := validator.New()

	filters := models.Filters{
		Page:         readInt(qs, "page", 1, v),
		PageSize:     readInt(qs, "page_size", 20, v),
		Sort:         readString(qs, "sort", "date"),
		SortSafelist: []string{"date"},
	}
	filters.Validate(v)
	if !v.Valid() {
		failedValidationResponse(w, v.Errors)
		return
	}

	bookings, err := list(ctx, sessionID)
	if err != nil {
		h.l.Error(wrap.ErrorCtx(ctx, err), "failed to list bookings", err)
		errorResponse(w, GetCode(err), err.Error())
		return
	}

	metadata := models.CalculateMetadata(len(bookings), filters.Page, filters.PageSize)
	bookings = paginate(bookings, filters)

	response := envelope{"bookings": bookings, "metadata": metadata}
	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		h.l.Error(wrap.ErrorCtx(ctx, err), "failed to write JSON response", err)
		internalErrorResponse(w, "failed to write JSON response")
	}
}

func (h *Session) GetTheme(w http.ResponseWriter, r *http.Request) {
	ctx := wrap.WithAction(r.Context(), "get_theme")

	sessionID, ok := sessionIDFromRequest(w, r)
	if !ok {
		return
	}

	theme, err := h.sessions.Theme(ctx, sessionID)
	if err != nil {
		h.l.Error(wrap.ErrorCtx(ctx, err), "failed to get theme", err)
		errorResponse(w, GetCode(err), err.Error())
		return
	}

	response := envelope{"theme": theme}
	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		h.l.Error(wrap.ErrorCtx(ctx, err), "failed to write JSON response", err)
		internalErrorResponse(w, "failed to write JSON response")
	}
}

func (h *Session) SetTheme(w http.ResponseWriter, r *http.Request) {
	ctx := wrap.WithAction(r.Context(), "set_theme")

	sessionID, ok := sessionIDFromRequest(w, r)
	if !ok {
		return
	}

	req := &dto.ThemeRequest{}
	if err := readJSON(w, r, req); err != nil {
		badRequestResponse(w, err.Error())
		return
	}

	v := validator.New()
	dto.ValidateTheme(v, req)
	if !v.Valid() {
		failedValidationResponse(w, v.Errors)
		return
	}

	if err := h.sessions.SetTheme(ctx, sessionID, req.Theme); err != nil {
		h.l.Error(wrap.ErrorCtx(ctx, err), "failed to set theme", err)
		errorResponse(w, GetCode(err), err.Error())
		return
	}

	response := envelope{"theme": req.Theme}
	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		h.l.Error(wrap.ErrorCtx(ctx, err), "failed to write JSON response", err)
		internalErrorResponse(w, "failed to write JSON response")
	}
}

// paginate applies the requested page window to an already sorted
// booking list.
func paginate(bookings []models.Booking, filters models.Filters) []models.Booking {
	offset := filters.Offset()
	if offset >= len(bookings) {
		return []models.Booking{}
	}
	end := offset + filters.Limit()
	if end > len(bookings) {
		end = len(bookings)
	}
	return bookings[offset:end]
}

// sessionIDFromRequest extracts the session_id path parameter, writing
// the error response itself when the parameter is missing.
func sessionIDFromRequest(w http.ResponseWriter, r *http.Request) (string, bool) {
	sessionID := r.PathValue("session_id")
	if sessionID == "" {
		badRequestResponse(w, "missing session_id path parameter")
		return "", false
	}
	return sessionID, true
}

// snapshotEnvelope renders a session view for JSON responses. Optional
// parts are omitted rather than sent as nulls.
func snapshotEnvelope(s orchestrator.Snapshot) envelope {
	e := envelope{
		"session_id":        s.SessionID,
		"state":             s.State,
		"theme":             s.Theme,
		"payment_in_flight": s.PaymentInFlight,
	}
	if s.User != nil {
		e["user"] = s.User
	}
	if len(s.Offers) > 0 {
		e["offers"] = s.Offers
	}
	if s.Selected != nil {
		e["selected_offer"] = s.Selected
	}
	if s.Booking != nil {
		e["booking"] = s.Booking
	}
	if s.LastError != "" {
		e["last_error"] = s.LastError
	}
	return e
}

func queryEnvelope(q search.Query) envelope {
	return envelope{
		"kind":        q.Kind,
		"origin":      q.Origin,
		"destination": q.Destination,
		"date":        q.Date.Format(models.DateLayout),
		"bus_type":    q.BusType,
	}
}
