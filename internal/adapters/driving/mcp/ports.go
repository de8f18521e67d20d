package mcp

import (
	"github.com/hagraph/hagraph/internal/core/ports/driving"
)

// Ports aggregates the driving ports used by the MCP server.
type Ports struct {
	// Presence reads and sets presence.
	Presence driving.PresenceService

	// Auth reports the session. Optional.
	Auth driving.AuthService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Presence == nil {
		return ErrMissingPresenceService
	}
	return nil
}
