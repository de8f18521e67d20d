package domain

import (
	"fmt"
	"net/url"
)

// Microsoft identity platform endpoints for the multi-tenant "common" authority.
const (
	DefaultAuthURL = "https://login.microsoftonline.com/common/oauth2/v2.0/authorize"
	//nolint:gosec // G101: Not credentials, OAuth endpoint URL
	DefaultTokenURL = "https://login.microsoftonline.com/common/oauth2/v2.0/token"

	// DefaultRedirectURI matches the local callback listener.
	DefaultRedirectURI = "http://localhost:8080/auth/callback"

	// OfflineAccessScope must be requested for the token endpoint to issue refresh tokens.
	OfflineAccessScope = "offline_access"
)

// DefaultScopes are requested when the configuration does not name any.
var DefaultScopes = []string{
	"Presence.Read",
	"Presence.Read.All",
}

// AuthConfig stores the OAuth application registration used to sign in.
// It is set at construction and never mutated afterwards.
type AuthConfig struct {
	// ClientID is the application (client) ID from the Azure portal.
	ClientID string `json:"client_id"`
	// ClientSecret is optional for public clients using PKCE.
	ClientSecret string `json:"client_secret,omitempty"`
	// RedirectURI must match a redirect URI registered for the application.
	RedirectURI string `json:"redirect_uri"`
	// Scopes are the delegated permissions to request.
	Scopes []string `json:"scopes"`
	// AuthURL overrides the authorization endpoint.
	AuthURL string `json:"auth_url,omitempty"`
	// TokenURL overrides the token endpoint.
	TokenURL string `json:"token_url,omitempty"`
}

// Validate checks that the fields needed for the authorization code flow are present.
func (c *AuthConfig) Validate() error {
	if c.ClientID == "" {
		return fmt.Errorf("%w: client id is required", ErrNotConfigured)
	}
	if c.RedirectURI == "" {
		return fmt.Errorf("%w: redirect uri is required", ErrNotConfigured)
	}
	if _, err := url.ParseRequestURI(c.RedirectURI); err != nil {
		return fmt.Errorf("%w: redirect uri: %w", ErrInvalidInput, err)
	}
	return nil
}

// EffectiveScopes returns the configured scopes, or DefaultScopes when none are set.
func (c *AuthConfig) EffectiveScopes() []string {
	if len(c.Scopes) == 0 {
		return DefaultScopes
	}
	return c.Scopes
}

// EffectiveAuthURL returns the authorization endpoint.
func (c *AuthConfig) EffectiveAuthURL() string {
	if c.AuthURL == "" {
		return DefaultAuthURL
	}
	return c.AuthURL
}

// EffectiveTokenURL returns the token endpoint.
func (c *AuthConfig) EffectiveTokenURL() string {
	if c.TokenURL == "" {
		return DefaultTokenURL
	}
	return c.TokenURL
}
