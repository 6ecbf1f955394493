package dto

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/travelswift/booking-system/internal/domain/types"
	"github.com/travelswift/booking-system/internal/service/search"
	"github.com/travelswift/booking-system/pkg/validator"
)

func TestValidateSignup(t *testing.T) {
	valid := &SignupRequest{
		Name:     "Ravi Verma",
		Email:    "ravi@example.com",
		Phone:    "9876543210",
		Password: "s3cret-pw",
	}

	v := validator.New()
	ValidateSignup(v, valid)
	assert.True(t, v.Valid())

	cases := []struct {
		name  string
		amend func(r *SignupRequest)
		field string
	}{
		{"empty name", func(r *SignupRequest) { r.Name = "" }, "name"},
		{"bad email", func(r *SignupRequest) { r.Email = "not-an-email" }, "email"},
		{"short phone", func(r *SignupRequest) { r.Phone = "12345" }, "phone"},
		{"letters in phone", func(r *SignupRequest) { r.Phone = "98765abcde" }, "phone"},
		{"empty password", func(r *SignupRequest) { r.Password = "" }, "password"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := *valid
			tc.amend(&req)

			v := validator.New()
			ValidateSignup(v, &req)

			assert.False(t, v.Valid())
			assert.Contains(t, v.Errors, tc.field)
		})
	}
}

func TestValidatePayment(t *testing.T) {
	v := validator.New()
	ValidatePayment(v, &PaymentRequest{Method: "cash"})
	assert.True(t, v.Valid())

	v = validator.New()
	ValidatePayment(v, &PaymentRequest{Method: "online", SubMethod: "upi"})
	assert.True(t, v.Valid())

	v = validator.New()
	ValidatePayment(v, &PaymentRequest{Method: "online", SubMethod: "qr"})
	assert.True(t, v.Valid())

	v = validator.New()
	ValidatePayment(v, &PaymentRequest{Method: "online"})
	assert.Contains(t, v.Errors, "sub_method")

	v = validator.New()
	ValidatePayment(v, &PaymentRequest{Method: "cash", SubMethod: "upi"})
	assert.Contains(t, v.Errors, "sub_method")

	v = validator.New()
	ValidatePayment(v, &PaymentRequest{Method: "card"})
	assert.Contains(t, v.Errors, "method")
}

func TestValidateTheme(t *testing.T) {
	for _, theme := range []string{types.ThemeLight, types.ThemeDark} {
		v := validator.New()
		ValidateTheme(v, &ThemeRequest{Theme: theme})
		assert.True(t, v.Valid(), theme)
	}

	v := validator.New()
	ValidateTheme(v, &ThemeRequest{Theme: "sepia"})
	assert.Contains(t, v.Errors, "theme")
}

func TestSearchRequestToQuery(t *testing.T) {
	now := time.Date(2026, 9, 1, 15, 30, 0, 0, time.UTC)

	req := &SearchRequest{
		Kind:        "transit",
		Origin:      "Patna",
		Destination: "Delhi",
		Date:        "2026-09-10",
		BusType:     "sleeper",
	}

	query, err := req.ToQuery(now)
	require.NoError(t, err)
	assert.Equal(t, types.TransitKind, query.Kind)
	assert.Equal(t, time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC), query.Date)
	assert.Equal(t, "sleeper", query.BusType)
}

func TestSearchRequestToQueryDefaults(t *testing.T) {
	now := time.Date(2026, 9, 1, 15, 30, 0, 0, time.UTC)

	req := &SearchRequest{
		Kind:        "ride",
		Origin:      "MG Road",
		Destination: "Airport",
	}

	query, err := req.ToQuery(now)
	require.NoError(t, err)

	// Omitted date falls back to today, omitted bus type to "any".
	assert.Equal(t, time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC), query.Date)
	assert.Equal(t, search.BusTypeAny, query.BusType)
}

func TestSearchRequestToQueryBadDate(t *testing.T) {
	req := &SearchRequest{
		Kind:        "transit",
		Origin:      "Patna",
		Destination: "Delhi",
		Date:        "10-09-2026",
	}

	_, err := req.ToQuery(time.Now())
	assert.Error(t, err)
}
