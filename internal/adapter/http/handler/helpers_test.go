package handler

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/travelswift/booking-system/internal/domain/models"
	t2 "github.com/travelswift/booking-system/internal/domain/types"
)

func TestGetCode(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{t2.ErrValidationFailed, http.StatusUnprocessableEntity},
		{t2.ErrCodeFormat, http.StatusUnprocessableEntity},
		{t2.ErrInvalidCredentials, http.StatusUnauthorized},
		{t2.ErrInvalidCode, http.StatusUnauthorized},
		{t2.ErrNotAuthenticated, http.StatusUnauthorized},
		{t2.ErrPaymentDeclined, http.StatusPaymentRequired},
		{t2.ErrBookingNotFound, http.StatusNotFound},
		{t2.ErrNotFound, http.StatusNotFound},
		{t2.ErrEmailAlreadyExists, http.StatusConflict},
		{t2.ErrPaymentInFlight, http.StatusConflict},
		{t2.ErrInvalidState, http.StatusConflict},
		{t2.ErrUpstreamUnavailable, http.StatusBadGateway},
		{t2.ErrDeviceUnavailable, http.StatusServiceUnavailable},
		{errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, GetCode(tc.err), tc.err.Error())
	}

	// Wrapped errors still map to their sentinel's code.
	wrapped := fmt.Errorf("confirm payment: %w", t2.ErrPaymentDeclined)
	assert.Equal(t, http.StatusPaymentRequired, GetCode(wrapped))
}

func TestPaginate(t *testing.T) {
	bookings := make([]models.Booking, 5)
	for i := range bookings {
		bookings[i].Origin = fmt.Sprintf("origin-%d", i)
	}

	filters := models.Filters{Page: 1, PageSize: 2}
	page := paginate(bookings, filters)
	assert.Len(t, page, 2)
	assert.Equal(t, "origin-0", page[0].Origin)

	filters.Page = 3
	page = paginate(bookings, filters)
	assert.Len(t, page, 1)
	assert.Equal(t, "origin-4", page[0].Origin)

	filters.Page = 4
	assert.Empty(t, paginate(bookings, filters))
}
