package dto

import (
	"github.com/travelswift/booking-system/internal/domain/models"
	"github.com/travelswift/booking-system/pkg/validator"
)

type SignupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

func (r *SignupRequest) ToDraft() *models.SignupDraft {
	return &models.SignupDraft{
		Name:     r.Name,
		Email:    r.Email,
		Phone:    r.Phone,
		Password: r.Password,
	}
}

type SubmitCodeRequest struct {
	Code string `json:"code"`
}

// LoginRequest carries the login form. Identifier is either an email
// address or a phone number.
type LoginRequest struct {
	Identifier string `json:"identifier"`
	Password   string `json:"password"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type UpdateProfileRequest struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

func ValidateSignup(v *validator.Validator, req *SignupRequest) {
	v.Check(req.Name != "", "name", "must be provided")
	v.Check(len(req.Name) <= 500, "name", "must not be more than 500 bytes long")

	v.Check(req.Email != "", "email", "must be provided")
	v.Check(validator.Matches(req.Email, validator.EmailRX), "email", "must be a valid email address")
	v.Check(len(req.Email) <= 500, "email", "must not be more than 500 bytes long")

	v.Check(req.Phone != "", "phone", "must be provided")
	v.Check(validator.Matches(req.Phone, validator.PhoneRX), "phone", "must be a 10 digit number")

	v.Check(req.Password != "", "password", "must be provided")
	v.Check(len(req.Password) <= 72, "password", "must not be more than 72 bytes long")
}

func ValidateSubmitCode(v *validator.Validator, req *SubmitCodeRequest) {
	v.Check(req.Code != "", "code", "must be provided")
}

func ValidateLogin(v *validator.Validator, req *LoginRequest) {
	v.Check(req.Identifier != "", "identifier", "must be provided")
	v.Check(req.Password != "", "password", "must be provided")
}

func ValidateRefreshToken(v *validator.Validator, req *RefreshTokenRequest) {
	v.Check(req.RefreshToken != "", "refresh_token", "must be provided")
}

func ValidateUpdateProfile(v *validator.Validator, req *UpdateProfileRequest) {
	v.Check(req.Name != "", "name", "must be provided")
	v.Check(len(req.Name) >= 2, "name", "must be at least 2 characters long")
	if req.Phone != "" {
		v.Check(validator.Matches(req.Phone, validator.PhoneRX), "phone", "must be a 10 digit number")
	}
}
