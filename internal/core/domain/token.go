package domain

import (
	"encoding/json"
	"fmt"
	"time"
)

// TokenSafetyMargin is subtracted from the token lifetime when checking validity,
// so a token is never presented in the last moments before it expires.
const TokenSafetyMargin = 60 * time.Second

// OAuthToken is the payload returned by the OAuth2 token endpoint.
type OAuthToken struct {
	// AccessToken is the bearer token for API access.
	AccessToken string `json:"access_token"`
	// RefreshToken is used to obtain new access tokens. Only issued when
	// the offline_access scope was granted.
	RefreshToken string `json:"refresh_token,omitempty"`
	// ExpiresIn is the access token lifetime in seconds.
	ExpiresIn int `json:"expires_in"`
	// TokenType is typically "Bearer".
	TokenType string `json:"token_type"`
	// Scope is the space-separated list of granted scopes.
	Scope string `json:"scope,omitempty"`
	// IssuedAt is when the token response was received.
	IssuedAt time.Time `json:"issued_at,omitempty"`
}

// ParseOAuthToken decodes a token endpoint response and stamps it with issuedAt.
func ParseOAuthToken(data []byte, issuedAt time.Time) (*OAuthToken, error) {
	var tok OAuthToken
	if err := json.Unmarshal(data, &tok); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	if tok.AccessToken == "" {
		return nil, fmt.Errorf("%w: missing access_token", ErrInvalidToken)
	}
	if tok.ExpiresIn <= 0 {
		return nil, fmt.Errorf("%w: expires_in must be positive, got %d", ErrInvalidToken, tok.ExpiresIn)
	}
	if tok.TokenType == "" {
		tok.TokenType = "Bearer"
	}
	tok.IssuedAt = issuedAt
	return &tok, nil
}

// Expiry returns the instant the access token stops being accepted.
func (t *OAuthToken) Expiry() time.Time {
	return t.IssuedAt.Add(time.Duration(t.ExpiresIn) * time.Second)
}

// ValidAt reports whether the token can still be used at the given instant,
// allowing for TokenSafetyMargin.
func (t *OAuthToken) ValidAt(now time.Time) bool {
	if t == nil || t.AccessToken == "" {
		return false
	}
	return now.Before(t.Expiry().Add(-TokenSafetyMargin))
}

// IsValid reports whether the token can still be used now.
func (t *OAuthToken) IsValid() bool {
	return t.ValidAt(time.Now())
}

// HasRefreshToken returns true if a refresh token is available.
func (t *OAuthToken) HasRefreshToken() bool {
	return t != nil && t.RefreshToken != ""
}
