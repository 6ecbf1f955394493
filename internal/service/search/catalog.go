package search

import (
	"github.com/travelswift/booking-system/internal/domain/models"
	"github.com/travelswift/booking-system/internal/domain/types"
)

// The upstream inventory is simulated with fixed fleets. Offer IDs are
// assigned per result set so two searches never alias each other's
// selections.

func rideFleet() []models.Offer {
	return []models.Offer{
		{
			Kind: types.RideKind,
			Ride: &models.RideOffer{
				DriverName:    "Rajesh Kumar",
				VehicleModel:  "Maruti Dzire",
				VehicleNumber: "BR01AB1234",
				ETAMinutes:    5,
				Fare:          450,
				Rating:        4.8,
			},
		},
		{
			Kind: types.RideKind,
			Ride: &models.RideOffer{
				DriverName:    "Priya Sharma",
				VehicleModel:  "Honda Amaze",
				VehicleNumber: "DL02CD5678",
				ETAMinutes:    8,
				Fare:          550,
				Rating:        4.9,
			},
		},
		{
			Kind: types.RideKind,
			Ride: &models.RideOffer{
				DriverName:    "Amit Singh",
				VehicleModel:  "Hyundai Verna",
				VehicleNumber: "MH03EF9012",
				ETAMinutes:    3,
				Fare:          700,
				Rating:        5.0,
			},
		},
	}
}

func transitFleet() []models.Offer {
	return []models.Offer{
		{
			Kind: types.TransitKind,
			Transit: &models.TransitOffer{
				Operator:       "City Transit",
				Class:          "AC Seater",
				DepartureTime:  "09:00 AM",
				ArrivalTime:    "10:30 AM",
				Price:          550,
				SeatsAvailable: 12,
			},
		},
		{
			Kind: types.TransitKind,
			Transit: &models.TransitOffer{
				Operator:       "Metro Connect",
				Class:          "Non-AC Seater",
				DepartureTime:  "09:30 AM",
				ArrivalTime:    "11:00 AM",
				Price:          400,
				SeatsAvailable: 5,
			},
		},
		{
			Kind: types.TransitKind,
			Transit: &models.TransitOffer{
				Operator:       "Swift Travels",
				Class:          "AC Sleeper",
				DepartureTime:  "10:00 PM",
				ArrivalTime:    "05:30 AM",
				Price:          850,
				SeatsAvailable: 20,
			},
		},
	}
}
