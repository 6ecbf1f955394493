package middleware

import (
	"context"

	"github.com/travelswift/booking-system/internal/domain/models"
	"github.com/travelswift/booking-system/pkg/logger"
)

type (
	// TokenChecker validates an access token and returns its claims.
	TokenChecker interface {
		Validate(ctx context.Context, token string) (*models.CustomClaims, error)
	}

	Middleware struct {
		tokens TokenChecker
		log    logger.Logger
	}
)

func NewMiddleware(tokens TokenChecker, log logger.Logger) *Middleware {
	return &Middleware{
		tokens: tokens,
		log:    log,
	}
}
