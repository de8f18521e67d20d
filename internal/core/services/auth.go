package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/hagraph/hagraph/internal/core/domain"
	"github.com/hagraph/hagraph/internal/core/ports/driven"
	"github.com/hagraph/hagraph/internal/core/ports/driving"
	"github.com/hagraph/hagraph/internal/logger"
)

// Ensure AuthService implements the interface.
var _ driving.AuthService = (*AuthService)(nil)

// CallbackFactory creates a receiver for the authorization redirect.
type CallbackFactory func(redirectURI, state string) (driven.CallbackReceiver, error)

// AuthService drives the sign-in flow and manages the stored session.
type AuthService struct {
	cfg         domain.AuthConfig
	auth        driven.Authenticator
	tokens      driven.TokenStore
	users       driven.UserInfoProvider
	newCallback CallbackFactory
	newState    func() string
}

// NewAuthService creates a new AuthService.
// users may be nil, in which case the account identifier is not resolved.
func NewAuthService(
	cfg domain.AuthConfig,
	auth driven.Authenticator,
	tokens driven.TokenStore,
	users driven.UserInfoProvider,
	newCallback CallbackFactory,
) *AuthService {
	return &AuthService{
		cfg:         cfg,
		auth:        auth,
		tokens:      tokens,
		users:       users,
		newCallback: newCallback,
		newState:    uuid.NewString,
	}
}

// Login runs the authorization code flow: it starts the redirect listener,
// presents the authorization URL, waits for the code and exchanges it.
func (s *AuthService) Login(ctx context.Context, opts driving.LoginOptions) (*driving.LoginResult, error) {
	if s.newCallback == nil {
		return nil, fmt.Errorf("%w: no callback listener", domain.ErrNotConfigured)
	}

	state := s.newState()

	receiver, err := s.newCallback(s.cfg.RedirectURI, state)
	if err != nil {
		return nil, fmt.Errorf("create callback listener: %w", err)
	}
	if err := receiver.Start(); err != nil {
		return nil, fmt.Errorf("start callback listener: %w", err)
	}
	defer func() {
		if err := receiver.Stop(); err != nil {
			logger.Warn("auth: stopping callback listener: %v", err)
		}
	}()

	authURL, err := s.auth.AuthorizationURL(state)
	if err != nil {
		return nil, fmt.Errorf("build authorization url: %w", err)
	}

	if opts.OnAuthorizationURL != nil {
		opts.OnAuthorizationURL(authURL)
	}
	if opts.OpenBrowser != nil {
		if err := opts.OpenBrowser(authURL); err != nil {
			logger.Warn("auth: could not open browser: %v", err)
		}
	}

	code, err := receiver.WaitForCode(ctx)
	if err != nil {
		return nil, err
	}

	tok, err := s.auth.RequestToken(ctx, code)
	if err != nil {
		return nil, err
	}
	logger.Info("auth: signed in, token expires %s", tok.Expiry().Format("2006-01-02 15:04:05"))

	result := &driving.LoginResult{Token: tok}
	if s.users != nil {
		info, err := s.users.Me(ctx)
		if err != nil {
			logger.Warn("auth: could not fetch account identifier: %v", err)
		} else {
			result.AccountIdentifier = info.AccountIdentifier()
		}
	}

	return result, nil
}

// Refresh refreshes the token when it is absent or expired.
func (s *AuthService) Refresh(ctx context.Context) error {
	return s.auth.RefreshTokens(ctx)
}

// Status reports the held token, falling back to the stored one.
func (s *AuthService) Status(ctx context.Context) (domain.AuthStatus, error) {
	status := domain.AuthStatus{
		Configured: s.cfg.Validate() == nil,
		ClientID:   s.cfg.ClientID,
	}

	tok := s.auth.Token()
	if tok == nil && s.tokens != nil {
		stored, err := s.tokens.Load(ctx, s.cfg.ClientID)
		switch {
		case err == nil:
			tok = stored
		case errors.Is(err, domain.ErrNotFound):
		default:
			return status, fmt.Errorf("load token: %w", err)
		}
	}
	if tok == nil {
		return status, nil
	}

	status.Authenticated = true
	status.Valid = tok.IsValid()
	status.Expiry = tok.Expiry()
	status.CanRefresh = tok.HasRefreshToken()
	status.Scope = tok.Scope
	return status, nil
}

// Logout forgets the held token and deletes the stored one.
func (s *AuthService) Logout(ctx context.Context) error {
	s.auth.SetToken(nil)
	if s.tokens == nil {
		return nil
	}
	if err := s.tokens.Delete(ctx, s.cfg.ClientID); err != nil {
		return fmt.Errorf("delete token: %w", err)
	}
	return nil
}
