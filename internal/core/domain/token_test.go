package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseOAuthToken(t *testing.T) {
	issued := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	data := []byte(`{
		"access_token": "eyJ0eXAi",
		"refresh_token": "M.R3_BAY",
		"expires_in": 3600,
		"token_type": "Bearer",
		"scope": "Presence.Read Presence.Read.All"
	}`)

	tok, err := ParseOAuthToken(data, issued)

	require.NoError(t, err)
	assert.Equal(t, "eyJ0eXAi", tok.AccessToken)
	assert.Equal(t, "M.R3_BAY", tok.RefreshToken)
	assert.Equal(t, 3600, tok.ExpiresIn)
	assert.Equal(t, "Bearer", tok.TokenType)
	assert.Equal(t, "Presence.Read Presence.Read.All", tok.Scope)
	assert.Equal(t, issued, tok.IssuedAt)
	assert.Equal(t, issued.Add(time.Hour), tok.Expiry())
	assert.True(t, tok.HasRefreshToken())
}

func TestParseOAuthToken_Invalid(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{name: "not json", data: `<html>error</html>`},
		{name: "missing access token", data: `{"expires_in": 3600, "token_type": "Bearer"}`},
		{name: "zero expiry", data: `{"access_token": "abc", "expires_in": 0}`},
		{name: "negative expiry", data: `{"access_token": "abc", "expires_in": -5}`},
		{name: "wrong type", data: `{"access_token": 12, "expires_in": 3600}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tok, err := ParseOAuthToken([]byte(tt.data), time.Now())
			assert.Nil(t, tok)
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}

func TestParseOAuthToken_DefaultsTokenType(t *testing.T) {
	tok, err := ParseOAuthToken([]byte(`{"access_token": "abc", "expires_in": 60}`), time.Now())
	require.NoError(t, err)
	assert.Equal(t, "Bearer", tok.TokenType)
	assert.False(t, tok.HasRefreshToken())
}

func TestOAuthToken_ValidAt(t *testing.T) {
	issued := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	tok := &OAuthToken{AccessToken: "abc", ExpiresIn: 3600, IssuedAt: issued}
	cutoff := issued.Add(3600*time.Second - TokenSafetyMargin)

	assert.True(t, tok.ValidAt(issued))
	// Repeated checks inside the window give the same answer.
	assert.True(t, tok.ValidAt(issued.Add(30*time.Minute)))
	assert.True(t, tok.ValidAt(issued.Add(30*time.Minute)))
	assert.True(t, tok.ValidAt(cutoff.Add(-time.Second)))
	assert.False(t, tok.ValidAt(cutoff))
	assert.False(t, tok.ValidAt(issued.Add(3601*time.Second)))
}

func TestOAuthToken_IsValid(t *testing.T) {
	fresh := &OAuthToken{AccessToken: "abc", ExpiresIn: 3600, IssuedAt: time.Now()}
	assert.True(t, fresh.IsValid())

	stale := &OAuthToken{AccessToken: "abc", ExpiresIn: 3600, IssuedAt: time.Now().Add(-2 * time.Hour)}
	assert.False(t, stale.IsValid())

	var missing *OAuthToken
	assert.False(t, missing.IsValid())
	assert.False(t, missing.HasRefreshToken())

	empty := &OAuthToken{ExpiresIn: 3600, IssuedAt: time.Now()}
	assert.False(t, empty.IsValid())
}
