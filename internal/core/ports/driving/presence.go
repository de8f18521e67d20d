package driving

import (
	"context"

	"github.com/hagraph/hagraph/internal/core/domain"
)

// PresenceService reads and sets presence on behalf of the signed-in user.
type PresenceService interface {
	// Get returns the presence of userID, or of the signed-in user when userID is empty.
	Get(ctx context.Context, userID string) (*domain.Presence, error)

	// Set sets the presence of userID, or of the signed-in user when userID is empty.
	Set(ctx context.Context, userID string, req domain.PresenceSetRequest) error
}
