package models

import (
	"fmt"

	"github.com/travelswift/booking-system/internal/domain/types"
)

// RideOffer is a single cab candidate returned by a search.
type RideOffer struct {
	DriverName    string  `json:"driver_name"`
	VehicleModel  string  `json:"vehicle_model"`
	VehicleNumber string  `json:"vehicle_number"`
	ETAMinutes    int     `json:"eta_minutes"`
	Fare          float64 `json:"fare"`
	Rating        float64 `json:"rating"`
}

// TransitOffer is a single bus candidate returned by a search.
type TransitOffer struct {
	Operator       string  `json:"operator"`
	Class          string  `json:"class"`
	DepartureTime  string  `json:"departure_time"`
	ArrivalTime    string  `json:"arrival_time"`
	Price          float64 `json:"price"`
	SeatsAvailable int     `json:"seats_available"`
}

// Offer is a tagged union over the two service kinds. Exactly one of
// Ride and Transit is set, matching Kind. Offers are immutable and live
// only for the duration of one result set.
type Offer struct {
	ID      string            `json:"id"`
	Kind    types.ServiceKind `json:"kind"`
	Ride    *RideOffer        `json:"ride,omitempty"`
	Transit *TransitOffer     `json:"transit,omitempty"`
}

// Fare returns the amount the traveler pays for this offer.
func (o Offer) Fare() float64 {
	switch o.Kind {
	case types.RideKind:
		return o.Ride.Fare
	case types.TransitKind:
		return o.Transit.Price
	default:
		panic(fmt.Sprintf("offer %q has unknown kind %q", o.ID, o.Kind))
	}
}

// Details renders the human-readable line persisted onto a booking,
// e.g. "Maruti Dzire (BR01AB1234)" or "City Transit".
func (o Offer) Details() string {
	switch o.Kind {
	case types.RideKind:
		return fmt.Sprintf("%s (%s)", o.Ride.VehicleModel, o.Ride.VehicleNumber)
	case types.TransitKind:
		return o.Transit.Operator
	default:
		panic(fmt.Sprintf("offer %q has unknown kind %q", o.ID, o.Kind))
	}
}
