package driving

import "github.com/hagraph/hagraph/internal/core/domain"

// SettingsService resolves and stores the OAuth application configuration.
type SettingsService interface {
	// AuthConfig returns the effective configuration (file values overridden by environment).
	AuthConfig() domain.AuthConfig

	// SaveAuthConfig persists the configuration to the config file.
	SaveAuthConfig(cfg domain.AuthConfig) error

	// ConfigPath returns the configuration file path.
	ConfigPath() string
}
