package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/hagraph/hagraph/internal/core/ports/driving"
	"github.com/hagraph/hagraph/internal/logger"
)

var (
	// Version is set by goreleaser ldflags.
	version = "dev"

	// Verbose enables debug logging.
	verbose bool

	// Services holds injected service implementations for CLI commands.
	authService     driving.AuthService
	presenceService driving.PresenceService
	settingsService driving.SettingsService
)

// Services holds configuration for CLI commands.
// Auth and Presence are nil until the OAuth application is configured.
type Services struct {
	Auth     driving.AuthService
	Presence driving.PresenceService
	Settings driving.SettingsService
}

// SetServices injects service implementations for CLI commands.
func SetServices(s *Services) {
	if s == nil {
		return
	}
	authService = s.Auth
	presenceService = s.Presence
	settingsService = s.Settings
}

// rootCmd is the base command.
var rootCmd = &cobra.Command{
	Use:   "hagraph",
	Short: "Read and set Microsoft Teams presence from the terminal",
	Long: `hagraph signs in to Microsoft Graph with the OAuth2 authorization code flow
and reads or sets Microsoft Teams presence.

Register an application in the Azure portal, then run 'hagraph auth configure'
followed by 'hagraph auth login'.`,
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// ExecuteContext runs the root command with ctx, cancelling in-flight requests when ctx is done.
func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

// SetVersion sets the version string for the CLI.
func SetVersion(v string) {
	version = v
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose debug output")

	// Use PersistentPreRunE to set verbose mode before any command executes
	rootCmd.PersistentPreRunE = func(_ *cobra.Command, _ []string) error {
		logger.SetVerbose(verbose)
		return nil
	}
}
