package identity

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/travelswift/booking-system/internal/domain/models"
	"github.com/travelswift/booking-system/pkg/hasher"
	"github.com/travelswift/booking-system/pkg/logger"
	wrap "github.com/travelswift/booking-system/pkg/logger/wrapper"
	"github.com/travelswift/booking-system/pkg/trm"
	"github.com/travelswift/booking-system/pkg/uuid"
)

type TokenService struct {
	refreshRepo RefreshTokenRepo
	txManager   trm.TxManager
	RefreshTTL  time.Duration
	AccessTTL   time.Duration
	secret      string
	log         logger.Logger
}

func NewTokenService(secret string, refreshRepo RefreshTokenRepo, txManager trm.TxManager, refreshTTL, accessTTL time.Duration, log logger.Logger) *TokenService {
	return &TokenService{
		refreshRepo: refreshRepo,
		txManager:   txManager,
		RefreshTTL:  refreshTTL,
		AccessTTL:   accessTTL,
		secret:      secret,
		log:         log,
	}
}

func (s *TokenService) getSecret() string {
	return s.secret
}

// GenerateTokens creates a new pair of access and refresh tokens for
// the given verified user and session. The refresh token hash is
// stored along with its expiration time when a repo is configured.
func (s *TokenService) GenerateTokens(ctx context.Context, user *models.UserProfile, sessionID string) (*models.TokenPair, error) {
	ctx = wrap.WithAction(ctx, "generate_tokens")
	if user == nil {
		return nil, wrap.Error(ctx, errors.New("user is nil"))
	}

	issuedAt := time.Now().UTC()

	accessID, err := uuid.New()
	if err != nil {
		return nil, wrap.Error(ctx, ErrTokenGenerateFail)
	}
	refreshID, err := uuid.New()
	if err != nil {
		return nil, wrap.Error(ctx, ErrTokenGenerateFail)
	}

	accessExp := issuedAt.Add(s.AccessTTL)
	refreshExp := issuedAt.Add(s.RefreshTTL)

	accessToken, err := s.signClaims(NewAccessClaim(user, sessionID, issuedAt, s.AccessTTL, accessID))
	if err != nil {
		return nil, wrap.Error(ctx, err)
	}

	refreshToken, err := s.signClaims(NewRefreshClaim(user, sessionID, issuedAt, s.RefreshTTL, refreshID))
	if err != nil {
		return nil, wrap.Error(ctx, err)
	}

	if s.refreshRepo != nil {
		record := &models.RefreshTokenRecord{
			ID:        refreshID,
			Email:     user.Email,
			TokenHash: hasher.Hash(refreshToken),
			ExpiresAt: refreshExp,
			Revoked:   false,
			CreatedAt: issuedAt,
		}

		if err := s.refreshRepo.Save(ctx, record); err != nil {
			return nil, wrap.Error(ctx, fmt.Errorf("failed to persist refresh token: %w", err))
		}
	}

	return &models.TokenPair{
		AccessToken:      accessToken,
		RefreshToken:     refreshToken,
		AccessExpiresAt:  accessExp,
		RefreshExpiresAt: refreshExp,
	}, nil
}

// Refresh rotates the token pair using the provided refresh token. The
// old record is marked used inside a transaction so a token can never
// be redeemed twice.
func (s *TokenService) Refresh(ctx context.Context, refreshToken string) (*models.TokenPair, error) {
	ctx = wrap.WithAction(ctx, "refresh_token")

	claims, err := s.Validate(ctx, refreshToken)
	if err != nil {
		return nil, wrap.Error(ctx, ErrInvalidToken)
	}

	if claims.TokenType != models.RefreshToken {
		return nil, wrap.Error(ctx, ErrInvalidToken)
	}

	user := &models.UserProfile{
		Name:  claims.Name,
		Email: claims.Email,
	}

	if s.refreshRepo == nil {
		return s.GenerateTokens(ctx, user, claims.SessionID)
	}

	var pair *models.TokenPair

	txErr := s.txManager.Do(ctx, func(txCtx context.Context) error {
		record, err := s.refreshRepo.Get(txCtx, claims.TokenID)
		if err != nil {
			return fmt.Errorf("failed to load refresh token record: %w", err)
		}

		if record == nil || record.Revoked {
			return ErrInvalidToken
		}

		now := time.Now().UTC()
		if now.After(record.ExpiresAt) {
			if err := s.refreshRepo.MarkUsed(txCtx, record.ID); err != nil {
				return fmt.Errorf("failed to revoke expired refresh token: %w", err)
			}
			return ErrExpToken
		}

		if record.TokenHash != hasher.Hash(refreshToken) {
			if err := s.refreshRepo.MarkUsed(txCtx, record.ID); err != nil {
				return fmt.Errorf("failed to revoke mismatched refresh token: %w", err)
			}
			return ErrInvalidToken
		}

		if err := s.refreshRepo.MarkUsed(txCtx, record.ID); err != nil {
			return fmt.Errorf("failed to mark refresh token as used: %w", err)
		}

		pair, err = s.GenerateTokens(txCtx, user, claims.SessionID)
		return err
	})

	if txErr != nil {
		return nil, wrap.Error(ctx, txErr)
	}

	return pair, nil
}

// Validate validates the given JWT token string, returning the custom claims if valid.
func (s *TokenService) Validate(ctx context.Context, token string) (*models.CustomClaims, error) {
	ctx = wrap.WithAction(ctx, "validate_token")

	parsedToken, err := jwt.ParseWithClaims(token, jwt.MapClaims{}, func(t *jwt.Token) (any, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, ErrInvalidToken
		}
		return []byte(s.getSecret()), nil
	})
	if err != nil || !parsedToken.Valid {
		return nil, wrap.Error(ctx, ErrInvalidToken)
	}

	mc, ok := parsedToken.Claims.(jwt.MapClaims)
	if !ok {
		return nil, wrap.Error(ctx, ErrInvalidToken)
	}

	typ, _ := mc["typ"].(string)
	if !models.IsValidTokenType(typ) {
		return nil, wrap.Error(ctx, ErrInvalidToken)
	}

	sessionID, _ := mc["session_id"].(string)
	if sessionID == "" {
		return nil, wrap.Error(ctx, fmt.Errorf("invalid or missing 'session_id' in token claims"))
	}

	tokenIDStr, _ := mc["jti"].(string)
	if tokenIDStr == "" {
		return nil, wrap.Error(ctx, fmt.Errorf("invalid or missing 'jti' in token claims"))
	}
	tokenID, err := uuid.Parse(tokenIDStr)
	if err != nil {
		return nil, wrap.Error(ctx, fmt.Errorf("invalid 'jti' in token claims"))
	}

	email, _ := mc["email"].(string)
	name, _ := mc["name"].(string)

	expFloat, ok := mc["exp"].(float64)
	if !ok {
		return nil, wrap.Error(ctx, fmt.Errorf("invalid or missing 'exp' in token claims"))
	}

	expTime := time.Unix(int64(expFloat), 0)
	if time.Now().UTC().After(expTime) {
		return nil, wrap.Error(ctx, ErrExpToken)
	}

	claims := &models.CustomClaims{
		TokenID:   tokenID,
		SessionID: sessionID,
		TokenType: typ,
		Name:      name,
		Email:     email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expTime),
		},
	}

	return claims, nil
}

func (s *TokenService) signClaims(claims jwt.Claims) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.getSecret()))
}

func NewAccessClaim(user *models.UserProfile, sessionID string, issuedAt time.Time, accessTTL time.Duration, tokenID uuid.UUID) jwt.Claims {
	return jwt.MapClaims{
		"typ":        models.AccessToken,
		"jti":        tokenID.String(),
		"session_id": sessionID,
		"email":      user.Email,
		"name":       user.Name,
		"iat":        issuedAt.Unix(),
		"exp":        issuedAt.Add(accessTTL).Unix(),
	}
}

func NewRefreshClaim(user *models.UserProfile, sessionID string, issuedAt time.Time, refreshTTL time.Duration, tokenID uuid.UUID) jwt.Claims {
	return jwt.MapClaims{
		"typ":        models.RefreshToken,
		"jti":        tokenID.String(),
		"session_id": sessionID,
		"email":      user.Email,
		"name":       user.Name,
		"iat":        issuedAt.Unix(),
		"exp":        issuedAt.Add(refreshTTL).Unix(),
	}
}
