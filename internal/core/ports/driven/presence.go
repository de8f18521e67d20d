package driven

import (
	"context"
	"net/http"

	"github.com/hagraph/hagraph/internal/core/domain"
)

// PresenceGateway reads and sets presence through Microsoft Graph.
type PresenceGateway interface {
	// GetPresence returns the signed-in user's presence.
	GetPresence(ctx context.Context) (*domain.Presence, error)

	// GetPresenceByID returns the presence of the given user.
	GetPresenceByID(ctx context.Context, userID string) (*domain.Presence, error)

	// SetPresence sets the presence session of the given user.
	SetPresence(ctx context.Context, userID string, req domain.PresenceSetRequest) (*http.Response, error)
}
