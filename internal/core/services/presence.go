package services

import (
	"context"
	"fmt"

	"github.com/hagraph/hagraph/internal/core/domain"
	"github.com/hagraph/hagraph/internal/core/ports/driven"
	"github.com/hagraph/hagraph/internal/core/ports/driving"
	"github.com/hagraph/hagraph/internal/logger"
)

// Ensure PresenceService implements the interface.
var _ driving.PresenceService = (*PresenceService)(nil)

// PresenceService reads and sets presence through the Graph gateway.
type PresenceService struct {
	gateway   driven.PresenceGateway
	users     driven.UserInfoProvider
	sessionID string
}

// NewPresenceService creates a new PresenceService.
// sessionID is used for set requests that do not name one, normally the client id.
func NewPresenceService(gateway driven.PresenceGateway, users driven.UserInfoProvider, sessionID string) *PresenceService {
	return &PresenceService{
		gateway:   gateway,
		users:     users,
		sessionID: sessionID,
	}
}

// Get returns the presence of userID, or of the signed-in user when empty.
func (s *PresenceService) Get(ctx context.Context, userID string) (*domain.Presence, error) {
	if userID == "" {
		return s.gateway.GetPresence(ctx)
	}
	return s.gateway.GetPresenceByID(ctx, userID)
}

// Set sets the presence of userID, or of the signed-in user when empty.
func (s *PresenceService) Set(ctx context.Context, userID string, req domain.PresenceSetRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}
	if req.SessionID == "" {
		req.SessionID = s.sessionID
	}

	if userID == "" {
		id, err := s.currentUserID(ctx)
		if err != nil {
			return err
		}
		userID = id
	}

	resp, err := s.gateway.SetPresence(ctx, userID, req)
	if err != nil {
		return err
	}
	logger.Info("presence: set %s/%s for %s (status %d)", req.Availability, req.Activity, userID, resp.StatusCode)
	return nil
}

func (s *PresenceService) currentUserID(ctx context.Context) (string, error) {
	if s.users == nil {
		return "", fmt.Errorf("%w: user id is required", domain.ErrInvalidInput)
	}
	info, err := s.users.Me(ctx)
	if err != nil {
		return "", fmt.Errorf("resolve signed-in user: %w", err)
	}
	if info.ID == "" {
		return "", fmt.Errorf("%w: signed-in user has no id", domain.ErrInvalidInput)
	}
	return info.ID, nil
}
