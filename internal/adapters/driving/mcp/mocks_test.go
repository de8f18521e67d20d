package mcp

import (
	"context"

	"github.com/hagraph/hagraph/internal/core/domain"
	"github.com/hagraph/hagraph/internal/core/ports/driving"
)

// mockPresenceService implements driving.PresenceService for testing.
type mockPresenceService struct {
	presence *domain.Presence
	err      error
	gotIDs   []string
	setIDs   []string
	setReqs  []domain.PresenceSetRequest
}

func (m *mockPresenceService) Get(_ context.Context, userID string) (*domain.Presence, error) {
	m.gotIDs = append(m.gotIDs, userID)
	if m.err != nil {
		return nil, m.err
	}
	return m.presence, nil
}

func (m *mockPresenceService) Set(_ context.Context, userID string, req domain.PresenceSetRequest) error {
	m.setIDs = append(m.setIDs, userID)
	m.setReqs = append(m.setReqs, req)
	return m.err
}

// mockAuthService implements driving.AuthService for testing.
type mockAuthService struct {
	status domain.AuthStatus
	err    error
}

func (m *mockAuthService) Login(_ context.Context, _ driving.LoginOptions) (*driving.LoginResult, error) {
	return nil, m.err
}

func (m *mockAuthService) Refresh(_ context.Context) error {
	return m.err
}

func (m *mockAuthService) Status(_ context.Context) (domain.AuthStatus, error) {
	return m.status, m.err
}

func (m *mockAuthService) Logout(_ context.Context) error {
	return m.err
}

var (
	_ driving.PresenceService = (*mockPresenceService)(nil)
	_ driving.AuthService     = (*mockAuthService)(nil)
)
