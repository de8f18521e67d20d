// Package mcp exposes presence operations to AI assistants over the
// Model Context Protocol.
package mcp

import "errors"

// ErrMissingPresenceService is returned when the presence service is not provided.
var ErrMissingPresenceService = errors.New("mcp: presence service is required")
