// Package domain defines the core entities for hagraph.
//
// This package is the innermost layer of the hexagonal architecture.
// It defines the fundamental types:
//
//   - OAuthToken: a token endpoint response with its issue time
//   - AuthConfig: the OAuth application registration used to sign in
//   - Presence: a user's availability and activity
//   - PresenceSetRequest: the body of a setPresence call
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
