package microsoft

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
)

// ChallengeMethod is the PKCE code_challenge_method.
type ChallengeMethod string

const (
	// ChallengePlain sends the verifier itself as the challenge.
	ChallengePlain ChallengeMethod = "plain"
	// ChallengeS256 sends the base64url SHA-256 of the verifier.
	ChallengeS256 ChallengeMethod = "S256"
)

// PKCE code verifier length in random bytes (RFC 7636 allows 43-128 encoded characters).
const codeVerifierLength = 64

// newCodeVerifier creates a cryptographically random code verifier.
func newCodeVerifier() (string, error) {
	b := make([]byte, codeVerifierLength)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate code verifier: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

// codeChallenge derives the challenge sent in the authorization URL.
func codeChallenge(method ChallengeMethod, verifier string) string {
	if method == ChallengeS256 {
		hash := sha256.Sum256([]byte(verifier))
		return base64.RawURLEncoding.EncodeToString(hash[:])
	}
	return verifier
}
