// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Interfaces
//
//   - Authenticator: OAuth2 authorization code flow (Microsoft identity platform)
//   - PresenceGateway: Microsoft Graph presence endpoints
//   - CallbackReceiver: local redirect listener that hands over the authorization code
//   - TokenStore: token persistence between runs (optional, can be nil)
//   - ConfigStore: application configuration
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter or connector package
package driven
