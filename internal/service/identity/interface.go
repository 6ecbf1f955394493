package identity

import (
	"context"

	"github.com/travelswift/booking-system/internal/domain/models"
	"github.com/travelswift/booking-system/pkg/uuid"
)

// CodeStore stages and verifies one-time verification codes. Exactly
// one code is valid per pending email at a time; a successful
// verification consumes it, a failed attempt does not.
type CodeStore interface {
	Stage(ctx context.Context, email string) (string, error)
	Verify(ctx context.Context, email, code string) error
}

// RefreshTokenRepo persists refresh token records. A nil repo disables
// refresh token storage entirely.
type RefreshTokenRepo interface {
	Save(ctx context.Context, record *models.RefreshTokenRecord) error
	Get(ctx context.Context, tokenID uuid.UUID) (*models.RefreshTokenRecord, error)
	MarkUsed(ctx context.Context, tokenID uuid.UUID) error
}

// TokenProvider issues and validates the session token pair.
type TokenProvider interface {
	GenerateTokens(ctx context.Context, user *models.UserProfile, sessionID string) (*models.TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (*models.TokenPair, error)
	Validate(ctx context.Context, token string) (*models.CustomClaims, error)
}
