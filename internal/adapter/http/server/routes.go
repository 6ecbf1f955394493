package server

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"
	"github.com/travelswift/booking-system/internal/adapter/http/middleware"
)

// setupRoutes wires every endpoint of the booking service.
func setupRoutes(mux *http.ServeMux, routes *handlers, m *middleware.Middleware) {
	// System
	mux.HandleFunc("/health", routes.health.HealthCheck)
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/swagger/", httpSwagger.Handler(httpSwagger.InstanceName("booking")))

	// Session lifecycle. Attach and the identity endpoints are open:
	// an anonymous session exists before any credentials do.
	mux.HandleFunc("POST /sessions", routes.session.Create)
	mux.HandleFunc("GET /sessions/{session_id}", routes.session.Attach)

	// Identity
	mux.HandleFunc("POST /sessions/{session_id}/signup", routes.auth.Signup)
	mux.HandleFunc("POST /sessions/{session_id}/verify", routes.auth.SubmitCode)
	mux.HandleFunc("POST /sessions/{session_id}/login", routes.auth.Login)
	mux.HandleFunc("POST /auth/refresh", routes.auth.Refresh)
	mux.Handle("POST /sessions/{session_id}/logout", m.RequireAuth(routes.auth.Logout))
	mux.Handle("GET /auth/me", m.RequireAuth(routes.auth.Me))

	// Profile
	mux.Handle("PUT /sessions/{session_id}/profile", m.RequireAuth(routes.auth.UpdateProfile))
	mux.Handle("POST /sessions/{session_id}/profile/picture", m.RequireAuth(routes.auth.UploadPicture))

	// Search and offers
	mux.Handle("POST /sessions/{session_id}/search", m.RequireAuth(routes.session.Search))
	mux.Handle("POST /sessions/{session_id}/offers/{offer_id}/select", m.RequireAuth(routes.session.SelectOffer))

	// Payment and ticket
	mux.Handle("POST /sessions/{session_id}/payment", m.RequireAuth(routes.session.ConfirmPayment))
	mux.Handle("POST /sessions/{session_id}/payment/cancel", m.RequireAuth(routes.session.CancelPayment))
	mux.Handle("GET /sessions/{session_id}/ticket", m.RequireAuth(routes.session.Ticket))
	mux.Handle("POST /sessions/{session_id}/ticket/ack", m.RequireAuth(routes.session.AcknowledgeTicket))

	// Booking history
	mux.Handle("GET /sessions/{session_id}/bookings/upcoming", m.RequireAuth(routes.session.UpcomingBookings))
	mux.Handle("GET /sessions/{session_id}/bookings/completed", m.RequireAuth(routes.session.CompletedBookings))
	mux.Handle("POST /sessions/{session_id}/rebook", m.RequireAuth(routes.session.Rebook))

	// Preferences
	mux.HandleFunc("GET /sessions/{session_id}/theme", routes.session.GetTheme)
	mux.Handle("PUT /sessions/{session_id}/theme", m.RequireAuth(routes.session.SetTheme))

	// WebSocket feed for async search and payment outcomes
	mux.HandleFunc("GET /ws/sessions/{session_id}", routes.ws.Serve)
}
