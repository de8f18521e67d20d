package domain

import "time"

// AuthStatus summarises the stored session for display.
type AuthStatus struct {
	// Configured is true when a client id and redirect uri are set.
	Configured bool
	// ClientID is the configured application id.
	ClientID string
	// Authenticated is true when a token is held or stored.
	Authenticated bool
	// Valid is true when the access token has not expired.
	Valid bool
	// Expiry is when the access token expires.
	Expiry time.Time
	// CanRefresh is true when a refresh token is available.
	CanRefresh bool
	// Scope is the granted scope list.
	Scope string
}
