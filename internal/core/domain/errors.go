package domain

import "errors"

// Domain errors represent business logic failures.
// Transport failures are reported by the connectors as typed errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotConfigured indicates the OAuth application is not configured.
	ErrNotConfigured = errors.New("oauth application not configured")

	// Authentication Errors.

	// ErrNotAuthenticated indicates no token is held and none could be loaded.
	ErrNotAuthenticated = errors.New("not authenticated")

	// ErrTokenExpired indicates the held token expired and cannot be refreshed.
	ErrTokenExpired = errors.New("token expired and no refresh token available")

	// ErrInvalidToken indicates a token payload is missing required fields.
	ErrInvalidToken = errors.New("invalid token response")

	// Authorization Flow Errors.

	// ErrConsentDenied indicates the identity provider redirected back with an error,
	// typically because the user declined consent.
	ErrConsentDenied = errors.New("authorization denied")

	// ErrCallbackPending indicates an authorization code is already waiting to be consumed.
	ErrCallbackPending = errors.New("authorization callback already received")
)
