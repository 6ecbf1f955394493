package middleware

import (
	"net/http"

	wrap "github.com/travelswift/booking-system/pkg/logger/wrapper"
	"github.com/travelswift/booking-system/pkg/uuid"
)

const requestIDHeader = "X-Request-Id"

// RequestID assigns each request a unique id, propagated through the
// log context and echoed in the response header. An id supplied by the
// caller is trusted and reused.
func (h *Middleware) RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(requestIDHeader)
		if id == "" {
			generated, err := uuid.New()
			if err == nil {
				id = generated.String()
			}
		}

		if id != "" {
			w.Header().Set(requestIDHeader, id)
			r = r.WithContext(wrap.WithRequestID(r.Context(), id))
		}

		next.ServeHTTP(w, r)
	})
}
