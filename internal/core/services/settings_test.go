package services

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hagraph/hagraph/internal/adapters/driven/storage/memory"
	"github.com/hagraph/hagraph/internal/core/domain"
)

// newTestSettings returns a SettingsService with the given environment.
func newTestSettings(t *testing.T, env map[string]string) (*SettingsService, *memory.ConfigStore) {
	t.Helper()
	for _, key := range []string{EnvClientID, EnvClientSecret, EnvRedirectURI} {
		t.Setenv(key, env[key])
	}
	store := memory.NewConfigStore()
	return NewSettingsService(store), store
}

func TestNewSettingsService(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore())

	require.NotNil(t, service)
	assert.Equal(t, ":memory:", service.ConfigPath())
}

func TestSettingsService_AuthConfig_Defaults(t *testing.T) {
	service, _ := newTestSettings(t, nil)

	cfg := service.AuthConfig()

	assert.Empty(t, cfg.ClientID)
	assert.Empty(t, cfg.ClientSecret)
	assert.Equal(t, domain.DefaultRedirectURI, cfg.RedirectURI)
	assert.Equal(t, DefaultCLIScopes(), cfg.Scopes)
	assert.Contains(t, cfg.Scopes, domain.OfflineAccessScope)
	for _, scope := range domain.DefaultScopes {
		assert.Contains(t, cfg.Scopes, scope)
	}
}

func TestDefaultCLIScopes_DoesNotAliasDefaults(t *testing.T) {
	scopes := DefaultCLIScopes()
	scopes[0] = "mutated"

	assert.Equal(t, "Presence.Read", domain.DefaultScopes[0])
}

func TestSettingsService_AuthConfig_FromFile(t *testing.T) {
	service, store := newTestSettings(t, nil)
	require.NoError(t, store.Set("auth.client_id", "file-client"))
	require.NoError(t, store.Set("auth.client_secret", "file-secret"))
	require.NoError(t, store.Set("auth.redirect_uri", "http://localhost:9000/auth/callback"))
	require.NoError(t, store.Set("auth.scopes", []any{"Presence.Read"}))

	cfg := service.AuthConfig()

	assert.Equal(t, "file-client", cfg.ClientID)
	assert.Equal(t, "file-secret", cfg.ClientSecret)
	assert.Equal(t, "http://localhost:9000/auth/callback", cfg.RedirectURI)
	assert.Equal(t, []string{"Presence.Read"}, cfg.Scopes)
}

func TestSettingsService_AuthConfig_EnvOverrides(t *testing.T) {
	service, store := newTestSettings(t, map[string]string{
		EnvClientID:     "env-client",
		EnvClientSecret: "env-secret",
		EnvRedirectURI:  "http://localhost:7000/auth/callback",
	})
	require.NoError(t, store.Set("auth.client_id", "file-client"))
	require.NoError(t, store.Set("auth.client_secret", "file-secret"))

	cfg := service.AuthConfig()

	assert.Equal(t, "env-client", cfg.ClientID)
	assert.Equal(t, "env-secret", cfg.ClientSecret)
	assert.Equal(t, "http://localhost:7000/auth/callback", cfg.RedirectURI)
}

func TestSettingsService_AuthConfig_BlankEnvIgnored(t *testing.T) {
	service, store := newTestSettings(t, map[string]string{EnvClientID: "  "})
	require.NoError(t, store.Set("auth.client_id", "file-client"))

	assert.Equal(t, "file-client", service.AuthConfig().ClientID)
}

func TestSettingsService_SaveAuthConfig(t *testing.T) {
	service, store := newTestSettings(t, nil)

	err := service.SaveAuthConfig(domain.AuthConfig{
		ClientID:     "abc",
		ClientSecret: "s3cret",
		RedirectURI:  domain.DefaultRedirectURI,
		Scopes:       []string{"Presence.Read", "offline_access"},
	})
	require.NoError(t, err)

	assert.Equal(t, "abc", store.GetString("auth.client_id"))
	assert.Equal(t, "s3cret", store.GetString("auth.client_secret"))
	assert.Equal(t, domain.DefaultRedirectURI, store.GetString("auth.redirect_uri"))
	assert.Equal(t, []string{"Presence.Read", "offline_access"}, store.GetStringSlice("auth.scopes"))

	// Saving without a secret or scopes clears them.
	require.NoError(t, service.SaveAuthConfig(domain.AuthConfig{ClientID: "abc", RedirectURI: domain.DefaultRedirectURI}))
	_, ok := store.Get("auth.client_secret")
	assert.False(t, ok)
	_, ok = store.Get("auth.scopes")
	assert.False(t, ok)
}

func TestSettingsService_SaveAuthConfig_Invalid(t *testing.T) {
	service, store := newTestSettings(t, nil)

	err := service.SaveAuthConfig(domain.AuthConfig{RedirectURI: domain.DefaultRedirectURI})

	assert.ErrorIs(t, err, domain.ErrNotConfigured)
	_, ok := store.Get("auth.redirect_uri")
	assert.False(t, ok)
}

func TestSettingsService_AuthConfig_EnvError(t *testing.T) {
	service, store := newTestSettings(t, nil)
	service.loadEnv = func() (authEnv, error) { return authEnv{}, errors.New("bad env") }
	require.NoError(t, store.Set("auth.client_id", "file-client"))

	assert.Equal(t, "file-client", service.AuthConfig().ClientID)
}
