package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	goredis "github.com/redis/go-redis/v9"
	"github.com/travelswift/booking-system/internal/domain/models"
	"github.com/travelswift/booking-system/pkg/redis"
)

const keyPrefix = "travelswift:session:"

// SessionStore persists session profiles and theme preferences in
// Redis under fixed per-session keys.
type SessionStore struct {
	client *redis.Client
}

func NewSessionStore(client *redis.Client) *SessionStore {
	return &SessionStore{client: client}
}

func profileKey(sessionID string) string {
	return fmt.Sprintf("%s%s:user", keyPrefix, sessionID)
}

func themeKey(sessionID string) string {
	return fmt.Sprintf("%s%s:theme", keyPrefix, sessionID)
}

func (s *SessionStore) SaveProfile(ctx context.Context, sessionID string, profile *models.UserProfile) error {
	data, err := json.Marshal(profile)
	if err != nil {
		return fmt.Errorf("failed to marshal profile: %w", err)
	}

	if err := s.client.DB.Set(ctx, profileKey(sessionID), data, 0).Err(); err != nil {
		return fmt.Errorf("failed to store profile: %w", err)
	}
	return nil
}

// LoadProfile returns the stored profile, or nil when the session has
// none persisted.
func (s *SessionStore) LoadProfile(ctx context.Context, sessionID string) (*models.UserProfile, error) {
	data, err := s.client.DB.Get(ctx, profileKey(sessionID)).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}

	var profile models.UserProfile
	if err := json.Unmarshal(data, &profile); err != nil {
		return nil, fmt.Errorf("failed to unmarshal profile: %w", err)
	}
	return &profile, nil
}

func (s *SessionStore) SaveTheme(ctx context.Context, sessionID, theme string) error {
	if err := s.client.DB.Set(ctx, themeKey(sessionID), theme, 0).Err(); err != nil {
		return fmt.Errorf("failed to store theme: %w", err)
	}
	return nil
}

// LoadTheme returns the stored theme, or "" when none is persisted.
func (s *SessionStore) LoadTheme(ctx context.Context, sessionID string) (string, error) {
	theme, err := s.client.DB.Get(ctx, themeKey(sessionID)).Result()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return "", nil
		}
		return "", fmt.Errorf("failed to load theme: %w", err)
	}
	return theme, nil
}

func (s *SessionStore) Clear(ctx context.Context, sessionID string) error {
	if err := s.client.DB.Del(ctx, profileKey(sessionID), themeKey(sessionID)).Err(); err != nil {
		return fmt.Errorf("failed to clear session keys: %w", err)
	}
	return nil
}
