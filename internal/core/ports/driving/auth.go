package driving

import (
	"context"

	"github.com/hagraph/hagraph/internal/core/domain"
)

// LoginOptions controls how the interactive sign-in is presented.
type LoginOptions struct {
	// OpenBrowser launches the authorization URL. When nil the user is expected
	// to open the printed URL manually.
	OpenBrowser func(url string) error
	// OnAuthorizationURL is called with the URL before the browser is opened.
	OnAuthorizationURL func(url string)
}

// LoginResult describes a completed sign-in.
type LoginResult struct {
	// Token is the token obtained from the code exchange.
	Token *domain.OAuthToken
	// AccountIdentifier is the user's email, when it could be resolved.
	AccountIdentifier string
}

// AuthService manages the signed-in session.
type AuthService interface {
	// Login runs the authorization code flow and persists the resulting token.
	Login(ctx context.Context, opts LoginOptions) (*LoginResult, error)

	// Refresh refreshes the token when it is absent or expired and persists the result.
	Refresh(ctx context.Context) error

	// Status reports the stored session.
	Status(ctx context.Context) (domain.AuthStatus, error)

	// Logout forgets the held and stored token.
	Logout(ctx context.Context) error
}
