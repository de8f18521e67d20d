package driven

import (
	"context"

	"github.com/hagraph/hagraph/internal/core/domain"
)

// Authenticator manages the OAuth2 authorization code flow for one user session.
type Authenticator interface {
	// AuthorizationURL builds the URL the user visits to grant consent.
	// A fresh PKCE verifier is generated for every call.
	AuthorizationURL(state string) (string, error)

	// RequestToken exchanges a one-time authorization code for tokens and
	// replaces the held token on success.
	RequestToken(ctx context.Context, code string) (*domain.OAuthToken, error)

	// RefreshTokens refreshes the held token when it is absent or expired.
	// It is a no-op while the held token is valid.
	RefreshTokens(ctx context.Context) error

	// Token returns the currently held token, or nil.
	Token() *domain.OAuthToken

	// SetToken seeds the token slot, e.g. from persistent storage.
	SetToken(tok *domain.OAuthToken)
}
