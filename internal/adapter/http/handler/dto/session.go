package dto

import (
	"time"

	"github.com/travelswift/booking-system/internal/domain/models"
	"github.com/travelswift/booking-system/internal/domain/types"
	"github.com/travelswift/booking-system/internal/service/search"
	"github.com/travelswift/booking-system/pkg/validator"
)

type SearchRequest struct {
	Kind        string `json:"kind"`
	Origin      string `json:"origin"`
	Destination string `json:"destination"`
	Date        string `json:"date,omitempty"`
	BusType     string `json:"bus_type,omitempty"`
}

// ToQuery converts the request into an inventory query. An omitted
// date defaults to today so cab searches need not send one.
func (r *SearchRequest) ToQuery(now time.Time) (search.Query, error) {
	date := models.Midnight(now)
	if r.Date != "" {
		parsed, err := models.ParseDate(r.Date)
		if err != nil {
			return search.Query{}, err
		}
		date = parsed
	}

	busType := r.BusType
	if busType == "" {
		busType = search.BusTypeAny
	}

	return search.Query{
		Kind:        types.ServiceKind(r.Kind),
		Origin:      r.Origin,
		Destination: r.Destination,
		Date:        date,
		BusType:     busType,
	}, nil
}

type PaymentRequest struct {
	Method    string `json:"method"`
	SubMethod string `json:"sub_method,omitempty"`
}

type RebookRequest struct {
	BookingID string `json:"booking_id"`
}

type ThemeRequest struct {
	Theme string `json:"theme"`
}

func ValidateSearch(v *validator.Validator, req *SearchRequest) {
	v.Check(req.Kind != "", "kind", "must be provided")
	v.Check(types.ServiceKind(req.Kind).Valid(), "kind", "must be either ride or transit")

	v.Check(req.Origin != "", "origin", "must be provided")
	v.Check(req.Destination != "", "destination", "must be provided")

	if req.Date != "" {
		_, err := models.ParseDate(req.Date)
		v.Check(err == nil, "date", "must be a calendar date in YYYY-MM-DD format")
	}
}

func ValidatePayment(v *validator.Validator, req *PaymentRequest) {
	v.Check(req.Method != "", "method", "must be provided")
	v.Check(validator.PermittedValue(req.Method,
		string(types.MethodCash), string(types.MethodOnline)),
		"method", "must be either cash or online")

	switch types.PaymentMethod(req.Method) {
	case types.MethodOnline:
		v.Check(req.SubMethod != "", "sub_method", "must be provided for online payments")
		v.Check(validator.PermittedValue(req.SubMethod,
			string(types.OnlineUPI), string(types.OnlineQR)),
			"sub_method", "must be either upi or qr")
	case types.MethodCash:
		v.Check(req.SubMethod == "", "sub_method", "must be empty for cash payments")
	}
}

func ValidateRebook(v *validator.Validator, req *RebookRequest) {
	v.Check(req.BookingID != "", "booking_id", "must be provided")
}

func ValidateTheme(v *validator.Validator, req *ThemeRequest) {
	v.Check(req.Theme != "", "theme", "must be provided")
	v.Check(validator.PermittedValue(req.Theme, types.ThemeLight, types.ThemeDark),
		"theme", "must be either light or dark")
}
