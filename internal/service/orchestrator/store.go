package orchestrator

import (
	"context"
	"sync"

	"github.com/travelswift/booking-system/internal/domain/models"
)

// MemorySessionStore keeps session profiles and themes in process
// memory. It is the default store when redis is not configured;
// restores then only survive as long as the process does.
type MemorySessionStore struct {
	mu       sync.RWMutex
	profiles map[string]models.UserProfile
	themes   map[string]string
}

func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{
		profiles: make(map[string]models.UserProfile),
		themes:   make(map[string]string),
	}
}

func (m *MemorySessionStore) SaveProfile(ctx context.Context, sessionID string, profile *models.UserProfile) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.profiles[sessionID] = *profile
	return nil
}

func (m *MemorySessionStore) LoadProfile(ctx context.Context, sessionID string) (*models.UserProfile, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	profile, ok := m.profiles[sessionID]
	if !ok {
		return nil, nil
	}
	return &profile, nil
}

func (m *MemorySessionStore) SaveTheme(ctx context.Context, sessionID, theme string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.themes[sessionID] = theme
	return nil
}

func (m *MemorySessionStore) LoadTheme(ctx context.Context, sessionID string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.themes[sessionID], nil
}

func (m *MemorySessionStore) Clear(ctx context.Context, sessionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.profiles, sessionID)
	delete(m.themes, sessionID)
	return nil
}
