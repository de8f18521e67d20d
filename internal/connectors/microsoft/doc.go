// Package microsoft provides OAuth2 and presence support for Microsoft Graph API.
//
// This package provides:
//   - AuthManager for the Microsoft identity platform authorization code flow
//   - Client, which binds an authenticated session to the provider namespaces
//   - PresenceProvider for reading and setting presence
//   - Rate limiting and typed errors for Graph responses
//
// Endpoints use the "common" tenant for multi-tenant support,
// allowing both personal Microsoft accounts and Azure AD accounts.
//
// # OAuth2 Flow
//
// Microsoft uses standard OAuth2 with PKCE:
//   - Auth URL: https://login.microsoftonline.com/common/oauth2/v2.0/authorize
//   - Token URL: https://login.microsoftonline.com/common/oauth2/v2.0/token
//
// A fresh code verifier is generated for every authorization URL. The
// challenge method defaults to "plain"; use WithChallengeMethod(ChallengeS256)
// to send a hashed challenge.
//
// The "offline_access" scope is required for refresh tokens. Without it,
// RefreshTokens fails with domain.ErrTokenExpired once the access token expires.
//
// # Presence
//
//   - GET /me/presence
//   - GET /users/{id}/presence
//   - POST /users/{id}/presence/setPresence
//
// # Errors
//
// Non-2xx responses are returned as *HTTPError, which unwraps to a status
// sentinel such as ErrNotFound. Bodies that do not decode are *ParseError.
// Failed code exchanges and refreshes are wrapped in *AuthError.
// Nothing is retried; a 429 only delays the next request through the rate limiter.
package microsoft
