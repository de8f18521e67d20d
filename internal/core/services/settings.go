package services

import (
	"strings"

	"github.com/kelseyhightower/envconfig"

	"github.com/hagraph/hagraph/internal/core/domain"
	"github.com/hagraph/hagraph/internal/core/ports/driven"
	"github.com/hagraph/hagraph/internal/core/ports/driving"
	"github.com/hagraph/hagraph/internal/logger"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
//
//nolint:gosec // G101: These are config key names, not actual credentials.
const (
	keyClientID     = "auth.client_id"
	keyClientSecret = "auth.client_secret"
	keyRedirectURI  = "auth.redirect_uri"
	keyScopes       = "auth.scopes"
)

// Environment variables that override the config file.
//
//nolint:gosec // G101: These are variable names, not actual credentials.
const (
	EnvClientID     = "CLIENT_ID"
	EnvClientSecret = "CLIENT_SECRET"
	EnvRedirectURI  = "REDIRECT_URI"
)

// authEnv holds the environment overrides.
type authEnv struct {
	ClientID     string `envconfig:"CLIENT_ID"`
	ClientSecret string `envconfig:"CLIENT_SECRET"`
	RedirectURI  string `envconfig:"REDIRECT_URI"`
}

// SettingsService resolves the OAuth application configuration.
type SettingsService struct {
	configStore driven.ConfigStore
	loadEnv     func() (authEnv, error)
}

// NewSettingsService creates a new settings service reading the process environment.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{
		configStore: configStore,
		loadEnv:     processEnv,
	}
}

func processEnv() (authEnv, error) {
	var env authEnv
	err := envconfig.Process("", &env)
	return env, err
}

// DefaultCLIScopes are requested when none are configured. Beyond the
// presence scopes they ask for a refresh token and the caller's own profile.
func DefaultCLIScopes() []string {
	scopes := append([]string{}, domain.DefaultScopes...)
	return append(scopes, "Presence.ReadWrite", "User.Read", domain.OfflineAccessScope)
}

// AuthConfig returns the configuration from the config file, overridden by
// CLIENT_ID, CLIENT_SECRET and REDIRECT_URI when set.
func (s *SettingsService) AuthConfig() domain.AuthConfig {
	env, err := s.loadEnv()
	if err != nil {
		logger.Warn("settings: reading environment: %v", err)
	}

	cfg := domain.AuthConfig{
		ClientID:     s.resolve(env.ClientID, keyClientID),
		ClientSecret: s.resolve(env.ClientSecret, keyClientSecret),
		RedirectURI:  s.resolve(env.RedirectURI, keyRedirectURI),
		Scopes:       s.configStore.GetStringSlice(keyScopes),
	}
	if cfg.RedirectURI == "" {
		cfg.RedirectURI = domain.DefaultRedirectURI
	}
	if len(cfg.Scopes) == 0 {
		cfg.Scopes = DefaultCLIScopes()
	}
	return cfg
}

// SaveAuthConfig validates and persists the configuration.
// An empty client secret removes any stored secret.
func (s *SettingsService) SaveAuthConfig(cfg domain.AuthConfig) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	if err := s.configStore.Set(keyClientID, cfg.ClientID); err != nil {
		return err
	}
	if err := s.configStore.Set(keyRedirectURI, cfg.RedirectURI); err != nil {
		return err
	}
	if cfg.ClientSecret != "" {
		if err := s.configStore.Set(keyClientSecret, cfg.ClientSecret); err != nil {
			return err
		}
	} else if err := s.configStore.Delete(keyClientSecret); err != nil {
		return err
	}
	if len(cfg.Scopes) > 0 {
		return s.configStore.Set(keyScopes, cfg.Scopes)
	}
	return s.configStore.Delete(keyScopes)
}

// ConfigPath returns the configuration file path.
func (s *SettingsService) ConfigPath() string {
	return s.configStore.Path()
}

func (s *SettingsService) resolve(override, key string) string {
	if v := strings.TrimSpace(override); v != "" {
		return v
	}
	return s.configStore.GetString(key)
}
