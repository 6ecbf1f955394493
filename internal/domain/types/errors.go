package types

import "errors"

var (
	ErrValidationFailed   = errors.New("required fields are missing or malformed")
	ErrEmailAlreadyExists = errors.New("an account with this email address already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrCodeFormat         = errors.New("verification code must be 6 digits")
	ErrInvalidCode        = errors.New("invalid verification code")
	ErrNoPendingSignup    = errors.New("no signup awaiting verification")

	ErrUpstreamUnavailable = errors.New("could not connect to the search provider")
	ErrPaymentDeclined     = errors.New("payment failed due to a network issue")
	ErrDeviceUnavailable   = errors.New("could not access the camera")
	ErrPermissionDenied    = errors.New("camera permission denied")
	ErrUnsupportedDevice   = errors.New("camera access is not supported")

	ErrNotAuthenticated = errors.New("authentication required")
	ErrInvalidState     = errors.New("operation not allowed in the current session state")
	ErrPaymentInFlight  = errors.New("a payment is already in progress")
	ErrSessionNotFound  = errors.New("session not found")
	ErrUserNotFound     = errors.New("user not found")
	ErrBookingNotFound  = errors.New("booking not found")
	ErrNotFound         = errors.New("requested item not found")
)
