package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/travelswift/booking-system/internal/domain/models"
	wrap "github.com/travelswift/booking-system/pkg/logger/wrapper"
)

// --- base auth middleware ---

// Auth validates the bearer JWT and injects the token's identity into
// the context. A request without an Authorization header proceeds as
// the anonymous user; protected endpoints reject it downstream.
func (h *Middleware) Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		header := r.Header.Get("Authorization")
		if header == "" {
			r = r.WithContext(models.WithUser(ctx, models.AnonymousUser()))
			next.ServeHTTP(w, r)
			return
		}

		token, err := extractBearerToken(header)
		if err != nil {
			errorResponse(w, http.StatusUnauthorized, err.Error())
			return
		}

		claims, err := h.tokens.Validate(ctx, token)
		if err != nil || claims == nil || claims.TokenType != models.AccessToken {
			h.log.Error(wrap.ErrorCtx(ctx, err), "failed to authenticate request", err)
			errorResponse(w, http.StatusUnauthorized, "invalid credentials")
			return
		}

		user := &models.UserProfile{
			Name:  claims.Name,
			Email: claims.Email,
		}
		next.ServeHTTP(w, r.WithContext(models.WithUser(ctx, user)))
	})
}

// RequireAuth wraps a handler and allows only authenticated users.
// Usage: mux.Handle("GET /bookings", m.RequireAuth(h.History))
func (h *Middleware) RequireAuth(next http.HandlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user := models.UserFromContext(r.Context())
		if user.IsAnonymous() {
			errorResponse(w, http.StatusUnauthorized, "authorization required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// --- header parser ---
func extractBearerToken(header string) (string, error) {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", fmt.Errorf("invalid Authorization header format")
	}
	return parts[1], nil
}
