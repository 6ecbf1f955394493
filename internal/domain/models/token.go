package models

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/travelswift/booking-system/pkg/uuid"
)

const (
	RefreshToken = "refresh_token"
	AccessToken  = "access_token"
)

type TokenPair struct {
	AccessToken      string    `json:"access_token"`
	AccessExpiresAt  time.Time `json:"access_expires_at"`
	RefreshToken     string    `json:"refresh_token"`
	RefreshExpiresAt time.Time `json:"refresh_expires_at"`
}

func IsValidTokenType(typ string) bool {
	return typ == RefreshToken || typ == AccessToken
}

// CustomClaims are the JWT claims issued for a verified session.
type CustomClaims struct {
	TokenID   uuid.UUID `json:"token_id"`
	SessionID string    `json:"session_id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	TokenType string    `json:"token_type"`
	jwt.RegisteredClaims
}

// RefreshTokenRecord is the stored half of a refresh token. Only the
// hash is persisted, never the token itself.
type RefreshTokenRecord struct {
	ID        uuid.UUID
	Email     string
	TokenHash string
	ExpiresAt time.Time
	Revoked   bool
	CreatedAt time.Time
	LastUsed  *time.Time
}
