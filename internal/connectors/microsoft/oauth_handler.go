package microsoft

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"golang.org/x/oauth2"

	"github.com/hagraph/hagraph/internal/core/domain"
	"github.com/hagraph/hagraph/internal/core/ports/driven"
	"github.com/hagraph/hagraph/internal/logger"
)

// Ensure AuthManager implements the Authenticator interface.
var _ driven.Authenticator = (*AuthManager)(nil)

// maxBodySize caps how much of a response body is read.
const maxBodySize = 1 << 20

// AuthManager implements the OAuth2 authorization code flow against the
// Microsoft identity platform for one user session.
//
// It holds a single token slot. Every successful exchange or refresh replaces
// the slot wholesale under a mutex, so concurrent refreshes serialize instead
// of racing.
type AuthManager struct {
	cfg        domain.AuthConfig
	httpClient *http.Client
	store      driven.TokenStore
	method     ChallengeMethod
	now        func() time.Time

	mu       sync.Mutex
	token    *domain.OAuthToken
	verifier string
}

// AuthOption configures an AuthManager.
type AuthOption func(*AuthManager)

// WithAuthHTTPClient sets the HTTP client used for token endpoint calls.
func WithAuthHTTPClient(c *http.Client) AuthOption {
	return func(m *AuthManager) {
		m.httpClient = c
	}
}

// WithTokenStore persists tokens after every exchange or refresh and lets
// RefreshTokens pick up a token stored by an earlier run.
func WithTokenStore(s driven.TokenStore) AuthOption {
	return func(m *AuthManager) {
		m.store = s
	}
}

// WithChallengeMethod selects the PKCE challenge method. Defaults to plain.
func WithChallengeMethod(method ChallengeMethod) AuthOption {
	return func(m *AuthManager) {
		m.method = method
	}
}

// NewAuthManager creates an AuthManager for the given application registration.
func NewAuthManager(cfg domain.AuthConfig, opts ...AuthOption) (*AuthManager, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	m := &AuthManager{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		method:     ChallengePlain,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m, nil
}

// Config returns the application registration the manager was built with.
func (m *AuthManager) Config() domain.AuthConfig {
	return m.cfg
}

// AuthorizationURL builds the Microsoft authorization URL.
// A new PKCE verifier is generated on every call and kept for the following
// RequestToken. The state parameter is only included when non-empty.
func (m *AuthManager) AuthorizationURL(state string) (string, error) {
	verifier, err := newCodeVerifier()
	if err != nil {
		return "", err
	}

	u, err := url.Parse(m.cfg.EffectiveAuthURL())
	if err != nil {
		return "", fmt.Errorf("parse auth url: %w", err)
	}

	params := url.Values{
		"client_id":             {m.cfg.ClientID},
		"response_type":         {"code"},
		"response_mode":         {"query"},
		"approval_prompt":       {"auto"},
		"code_challenge_method": {string(m.method)},
		"code_challenge":        {codeChallenge(m.method, verifier)},
		"scope":                 {strings.Join(m.cfg.EffectiveScopes(), " ")},
		"redirect_uri":          {m.cfg.RedirectURI},
	}
	if state != "" {
		params.Set("state", state)
	}
	u.RawQuery = params.Encode()

	m.mu.Lock()
	m.verifier = verifier
	m.mu.Unlock()

	return u.String(), nil
}

// RequestToken exchanges an authorization code for tokens.
// On failure the held token is left untouched.
func (m *AuthManager) RequestToken(ctx context.Context, code string) (*domain.OAuthToken, error) {
	if code == "" {
		return nil, &AuthError{Op: "request token", Err: fmt.Errorf("%w: empty authorization code", domain.ErrInvalidInput)}
	}

	m.mu.Lock()
	verifier := m.verifier
	m.mu.Unlock()

	data := url.Values{}
	data.Set("client_id", m.cfg.ClientID)
	data.Set("grant_type", "authorization_code")
	data.Set("code", code)
	data.Set("scope", strings.Join(m.cfg.EffectiveScopes(), " "))
	data.Set("redirect_uri", m.cfg.RedirectURI)
	if verifier != "" {
		data.Set("code_verifier", verifier)
	}
	if m.cfg.ClientSecret != "" {
		data.Set("client_secret", m.cfg.ClientSecret)
	}

	logger.Debug("microsoft: exchanging authorization code for client %s", m.cfg.ClientID)
	tok, err := m.tokenRequest(ctx, data)
	if err != nil {
		return nil, &AuthError{Op: "request token", Err: err}
	}

	m.mu.Lock()
	m.token = tok
	if m.verifier == verifier {
		m.verifier = ""
	}
	m.mu.Unlock()

	m.persist(ctx, tok)
	return copyToken(tok), nil
}

// RefreshTokens refreshes the held token when it is absent or expired.
// It issues no request while the held token is valid. When no token is held
// it first tries the token store. Failures leave the held token unchanged.
func (m *AuthManager) RefreshTokens(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.token == nil && m.store != nil {
		stored, err := m.store.Load(ctx, m.cfg.ClientID)
		switch {
		case err == nil:
			logger.Debug("microsoft: loaded stored token for client %s", m.cfg.ClientID)
			m.token = stored
		case errors.Is(err, domain.ErrNotFound):
		default:
			return fmt.Errorf("load token: %w", err)
		}
	}

	if m.token == nil {
		return domain.ErrNotAuthenticated
	}
	if m.token.ValidAt(m.now()) {
		return nil
	}
	if !m.token.HasRefreshToken() {
		return domain.ErrTokenExpired
	}

	data := url.Values{}
	data.Set("client_id", m.cfg.ClientID)
	data.Set("grant_type", "refresh_token")
	data.Set("refresh_token", m.token.RefreshToken)
	data.Set("scope", strings.Join(m.cfg.EffectiveScopes(), " "))
	if m.cfg.ClientSecret != "" {
		data.Set("client_secret", m.cfg.ClientSecret)
	}

	logger.Debug("microsoft: refreshing token expired at %s", m.token.Expiry().Format(time.RFC3339))
	tok, err := m.tokenRequest(ctx, data)
	if err != nil {
		return &AuthError{Op: "refresh token", Err: err}
	}

	// Microsoft may not return a new refresh token
	if tok.RefreshToken == "" {
		tok.RefreshToken = m.token.RefreshToken
	}
	m.token = tok

	m.persist(ctx, tok)
	return nil
}

// Token returns a copy of the held token, or nil.
func (m *AuthManager) Token() *domain.OAuthToken {
	m.mu.Lock()
	defer m.mu.Unlock()
	return copyToken(m.token)
}

// SetToken replaces the held token.
func (m *AuthManager) SetToken(tok *domain.OAuthToken) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = copyToken(tok)
}

// Authenticated returns true if a token is held.
func (m *AuthManager) Authenticated() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token != nil
}

// TokenSource adapts the manager to oauth2.TokenSource, refreshing the held
// token when needed. It is what attaches the bearer token to Graph requests.
func (m *AuthManager) TokenSource(ctx context.Context) oauth2.TokenSource {
	return &tokenSource{ctx: ctx, manager: m}
}

type tokenSource struct {
	ctx     context.Context
	manager *AuthManager
}

// Token implements oauth2.TokenSource.
func (s *tokenSource) Token() (*oauth2.Token, error) {
	if err := s.manager.RefreshTokens(s.ctx); err != nil {
		return nil, err
	}
	tok := s.manager.Token()
	if tok == nil {
		return nil, domain.ErrNotAuthenticated
	}
	return &oauth2.Token{
		AccessToken:  tok.AccessToken,
		TokenType:    tok.TokenType,
		RefreshToken: tok.RefreshToken,
		// The oauth2 cache must expire when IsValid does.
		Expiry: tok.Expiry().Add(-domain.TokenSafetyMargin),
	}, nil
}

// tokenRequest posts a form to the token endpoint. It must not take m.mu.
func (m *AuthManager) tokenRequest(ctx context.Context, data url.Values) (*domain.OAuthToken, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.cfg.EffectiveTokenURL(), strings.NewReader(data.Encode()))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	resp, err := m.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("token request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("read token response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, newHTTPError(resp.StatusCode, resp.Header, body)
	}

	tok, err := domain.ParseOAuthToken(body, m.now())
	if err != nil {
		return nil, &ParseError{Target: "token response", Err: err}
	}
	return tok, nil
}

// persist saves tok to the token store. A failed save is logged; the held
// token remains authoritative for this process.
func (m *AuthManager) persist(ctx context.Context, tok *domain.OAuthToken) {
	if m.store == nil {
		return
	}
	if err := m.store.Save(ctx, m.cfg.ClientID, *tok); err != nil {
		logger.Warn("microsoft: could not persist token: %v", err)
	}
}

func copyToken(tok *domain.OAuthToken) *domain.OAuthToken {
	if tok == nil {
		return nil
	}
	cp := *tok
	return &cp
}
