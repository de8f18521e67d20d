package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAuthConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     AuthConfig
		wantErr error
	}{
		{
			name: "valid",
			cfg:  AuthConfig{ClientID: "cid", RedirectURI: DefaultRedirectURI},
		},
		{
			name:    "missing client id",
			cfg:     AuthConfig{RedirectURI: DefaultRedirectURI},
			wantErr: ErrNotConfigured,
		},
		{
			name:    "missing redirect uri",
			cfg:     AuthConfig{ClientID: "cid"},
			wantErr: ErrNotConfigured,
		},
		{
			name:    "relative redirect uri",
			cfg:     AuthConfig{ClientID: "cid", RedirectURI: "auth/callback"},
			wantErr: ErrInvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestAuthConfig_Defaults(t *testing.T) {
	cfg := AuthConfig{}

	assert.Equal(t, []string{"Presence.Read", "Presence.Read.All"}, cfg.EffectiveScopes())
	assert.Equal(t, "https://login.microsoftonline.com/common/oauth2/v2.0/authorize", cfg.EffectiveAuthURL())
	assert.Equal(t, "https://login.microsoftonline.com/common/oauth2/v2.0/token", cfg.EffectiveTokenURL())
}

func TestAuthConfig_Overrides(t *testing.T) {
	cfg := AuthConfig{
		Scopes:   []string{"User.Read"},
		AuthURL:  "http://127.0.0.1/authorize",
		TokenURL: "http://127.0.0.1/token",
	}

	assert.Equal(t, []string{"User.Read"}, cfg.EffectiveScopes())
	assert.Equal(t, "http://127.0.0.1/authorize", cfg.EffectiveAuthURL())
	assert.Equal(t, "http://127.0.0.1/token", cfg.EffectiveTokenURL())
}
