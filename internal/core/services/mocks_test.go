package services

import (
	"context"
	"net/http"
	"sync"

	"github.com/hagraph/hagraph/internal/core/domain"
	"github.com/hagraph/hagraph/internal/core/ports/driven"
)

// --- Mock implementations ---

// mockAuthenticator implements driven.Authenticator for testing.
type mockAuthenticator struct {
	mu         sync.Mutex
	token      *domain.OAuthToken
	states     []string
	codes      []string
	urlErr     error
	requestErr error
	refreshErr error
	refreshes  int
	issued     *domain.OAuthToken
}

func (m *mockAuthenticator) AuthorizationURL(state string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.urlErr != nil {
		return "", m.urlErr
	}
	m.states = append(m.states, state)
	return "https://login.example.com/authorize?state=" + state, nil
}

func (m *mockAuthenticator) RequestToken(_ context.Context, code string) (*domain.OAuthToken, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.codes = append(m.codes, code)
	if m.requestErr != nil {
		return nil, m.requestErr
	}
	m.token = m.issued
	return m.issued, nil
}

func (m *mockAuthenticator) RefreshTokens(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.refreshes++
	return m.refreshErr
}

func (m *mockAuthenticator) Token() *domain.OAuthToken {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token
}

func (m *mockAuthenticator) SetToken(tok *domain.OAuthToken) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = tok
}

// mockCallback implements driven.CallbackReceiver for testing.
type mockCallback struct {
	code     string
	waitErr  error
	startErr error
	started  bool
	stopped  bool
}

func (m *mockCallback) Start() error {
	m.started = true
	return m.startErr
}

func (m *mockCallback) WaitForCode(ctx context.Context) (string, error) {
	if m.waitErr != nil {
		return "", m.waitErr
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return m.code, nil
}

func (m *mockCallback) Stop() error {
	m.stopped = true
	return nil
}

// mockUsers implements driven.UserInfoProvider for testing.
type mockUsers struct {
	info  *domain.UserInfo
	err   error
	calls int
}

func (m *mockUsers) Me(_ context.Context) (*domain.UserInfo, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	return m.info, nil
}

// setCall records a SetPresence invocation.
type setCall struct {
	userID string
	req    domain.PresenceSetRequest
}

// mockGateway implements driven.PresenceGateway for testing.
type mockGateway struct {
	presence *domain.Presence
	getErr   error
	setErr   error
	gotMe    int
	gotIDs   []string
	sets     []setCall
}

func (m *mockGateway) GetPresence(_ context.Context) (*domain.Presence, error) {
	m.gotMe++
	return m.presence, m.getErr
}

func (m *mockGateway) GetPresenceByID(_ context.Context, userID string) (*domain.Presence, error) {
	m.gotIDs = append(m.gotIDs, userID)
	return m.presence, m.getErr
}

func (m *mockGateway) SetPresence(_ context.Context, userID string, req domain.PresenceSetRequest) (*http.Response, error) {
	m.sets = append(m.sets, setCall{userID: userID, req: req})
	if m.setErr != nil {
		return nil, m.setErr
	}
	return &http.Response{StatusCode: http.StatusOK, Body: http.NoBody}, nil
}

var (
	_ driven.Authenticator    = (*mockAuthenticator)(nil)
	_ driven.CallbackReceiver = (*mockCallback)(nil)
	_ driven.UserInfoProvider = (*mockUsers)(nil)
	_ driven.PresenceGateway  = (*mockGateway)(nil)
)
