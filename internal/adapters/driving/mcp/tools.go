package mcp

import (
	"context"
	"errors"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/hagraph/hagraph/internal/core/domain"
)

// GetPresenceInput is the input schema for the get_presence tool.
type GetPresenceInput struct {
	UserID string `json:"user_id,omitempty" jsonschema:"Azure AD object id of the user; omit for the signed-in user"`
}

// PresenceOutput is the output schema for the presence tools.
// UserID is omitted when set_presence acted on the signed-in user.
type PresenceOutput struct {
	UserID       string `json:"user_id,omitempty"`
	Availability string `json:"availability"`
	Activity     string `json:"activity"`
}

// SetPresenceInput is the input schema for the set_presence tool.
type SetPresenceInput struct {
	UserID            string `json:"user_id,omitempty" jsonschema:"Azure AD object id of the user; omit for the signed-in user"`
	Availability      string `json:"availability" jsonschema:"one of Available, Busy, DoNotDisturb, BeRightBack, Away, Offline"`
	Activity          string `json:"activity" jsonschema:"supplemental activity such as InACall, Presenting or Away"`
	ExpirationMinutes int    `json:"expiration_minutes,omitempty" jsonschema:"minutes until the presence session expires (service default when omitted)"`
}

// AuthStatusInput is the input schema for the auth_status tool.
type AuthStatusInput struct{}

// AuthStatusOutput is the output schema for the auth_status tool.
type AuthStatusOutput struct {
	Configured    bool   `json:"configured"`
	Authenticated bool   `json:"authenticated"`
	Valid         bool   `json:"valid"`
	CanRefresh    bool   `json:"can_refresh"`
	ExpiresAt     string `json:"expires_at,omitempty"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "get_presence",
		Description: "Get the Microsoft Teams presence of the signed-in user or of a user by id",
	}, s.handleGetPresence)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "set_presence",
		Description: "Set the Microsoft Teams presence of the signed-in user or of a user by id",
	}, s.handleSetPresence)

	if s.ports.Auth != nil {
		mcp.AddTool(s.server, &mcp.Tool{
			Name:        "auth_status",
			Description: "Report whether hagraph holds a usable Microsoft Graph token",
		}, s.handleAuthStatus)
	}
}

func (s *Server) handleGetPresence(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input GetPresenceInput,
) (*mcp.CallToolResult, PresenceOutput, error) {
	presence, err := s.ports.Presence.Get(ctx, input.UserID)
	if err != nil {
		return nil, PresenceOutput{}, err
	}

	return nil, PresenceOutput{
		UserID:       presence.ID,
		Availability: string(presence.Availability),
		Activity:     presence.Activity,
	}, nil
}

func (s *Server) handleSetPresence(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SetPresenceInput,
) (*mcp.CallToolResult, PresenceOutput, error) {
	availability, err := domain.ParseAvailability(input.Availability)
	if err != nil {
		return nil, PresenceOutput{}, err
	}
	if input.ExpirationMinutes < 0 {
		return nil, PresenceOutput{}, errors.New("expiration_minutes must not be negative")
	}

	expiration := time.Duration(input.ExpirationMinutes) * time.Minute
	req := domain.NewPresenceSetRequest(availability, input.Activity, expiration)
	if err := s.ports.Presence.Set(ctx, input.UserID, req); err != nil {
		return nil, PresenceOutput{}, err
	}

	return nil, PresenceOutput{
		UserID:       input.UserID,
		Availability: string(availability),
		Activity:     input.Activity,
	}, nil
}

func (s *Server) handleAuthStatus(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ AuthStatusInput,
) (*mcp.CallToolResult, AuthStatusOutput, error) {
	status, err := s.ports.Auth.Status(ctx)
	if err != nil {
		return nil, AuthStatusOutput{}, err
	}

	output := AuthStatusOutput{
		Configured:    status.Configured,
		Authenticated: status.Authenticated,
		Valid:         status.Valid,
		CanRefresh:    status.CanRefresh,
	}
	if status.Authenticated {
		output.ExpiresAt = status.Expiry.UTC().Format(time.RFC3339)
	}
	return nil, output, nil
}
