package driven

import (
	"context"

	"github.com/hagraph/hagraph/internal/core/domain"
)

// TokenStore persists OAuth tokens between runs, keyed by client id.
type TokenStore interface {
	// Save stores the token. Creates if new, replaces if exists.
	Save(ctx context.Context, clientID string, tok domain.OAuthToken) error

	// Load retrieves the token for a client id.
	// Returns domain.ErrNotFound if none is stored.
	Load(ctx context.Context, clientID string) (*domain.OAuthToken, error)

	// Delete removes the token for a client id. Deleting a missing token is not an error.
	Delete(ctx context.Context, clientID string) error
}
