package cli

import (
	"bufio"
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/spf13/pflag"

	"github.com/hagraph/hagraph/internal/core/domain"
	"github.com/hagraph/hagraph/internal/core/ports/driving"
)

// mockAuthService implements driving.AuthService for testing.
type mockAuthService struct {
	result    *driving.LoginResult
	status    domain.AuthStatus
	err       error
	loginOpts driving.LoginOptions
	logins    int
	refreshes int
	logouts   int
}

func (m *mockAuthService) Login(_ context.Context, opts driving.LoginOptions) (*driving.LoginResult, error) {
	m.logins++
	m.loginOpts = opts
	if m.err != nil {
		return nil, m.err
	}
	if opts.OnAuthorizationURL != nil {
		opts.OnAuthorizationURL("https://login.example.com/authorize")
	}
	return m.result, nil
}

func (m *mockAuthService) Refresh(_ context.Context) error {
	m.refreshes++
	return m.err
}

func (m *mockAuthService) Status(_ context.Context) (domain.AuthStatus, error) {
	return m.status, m.err
}

func (m *mockAuthService) Logout(_ context.Context) error {
	m.logouts++
	return m.err
}

// mockPresenceService implements driving.PresenceService for testing.
type mockPresenceService struct {
	presence *domain.Presence
	err      error
	gotIDs   []string
	setIDs   []string
	setReqs  []domain.PresenceSetRequest
}

func (m *mockPresenceService) Get(_ context.Context, userID string) (*domain.Presence, error) {
	m.gotIDs = append(m.gotIDs, userID)
	if m.err != nil {
		return nil, m.err
	}
	return m.presence, nil
}

func (m *mockPresenceService) Set(_ context.Context, userID string, req domain.PresenceSetRequest) error {
	m.setIDs = append(m.setIDs, userID)
	m.setReqs = append(m.setReqs, req)
	return m.err
}

// mockSettingsService implements driving.SettingsService for testing.
type mockSettingsService struct {
	current domain.AuthConfig
	saved   []domain.AuthConfig
	err     error
}

func (m *mockSettingsService) AuthConfig() domain.AuthConfig {
	return m.current
}

func (m *mockSettingsService) SaveAuthConfig(cfg domain.AuthConfig) error {
	if m.err != nil {
		return m.err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	m.saved = append(m.saved, cfg)
	return nil
}

func (m *mockSettingsService) ConfigPath() string {
	return "/tmp/hagraph/config.toml"
}

var (
	_ driving.AuthService     = (*mockAuthService)(nil)
	_ driving.PresenceService = (*mockPresenceService)(nil)
	_ driving.SettingsService = (*mockSettingsService)(nil)
)

// withServices injects services for the duration of a test.
func withServices(t *testing.T, s *Services) {
	t.Helper()
	oldAuth, oldPresence, oldSettings := authService, presenceService, settingsService
	authService, presenceService, settingsService = nil, nil, nil
	SetServices(s)
	t.Cleanup(func() {
		authService, presenceService, settingsService = oldAuth, oldPresence, oldSettings
	})
}

// resetFlags restores package flag variables between command executions.
func resetFlags() {
	authClientID, authClientSecret, authRedirectURI = "", "", ""
	authNoSecret, authNoBrowser = false, false
	authScopes = nil
	authTimeout = 5 * time.Minute
	presenceUser, presenceAvailability, presenceActivity, presenceSession = "", "", "", ""
	presenceExpiration = 0
	verbose = false

	for _, fs := range []*pflag.FlagSet{
		authConfigureCmd.Flags(), authLoginCmd.Flags(),
		presenceGetCmd.Flags(), presenceSetCmd.Flags(),
	} {
		fs.VisitAll(func(f *pflag.Flag) { f.Changed = false })
	}
	if f := rootCmd.Flags().Lookup("help"); f != nil {
		_ = f.Value.Set("false")
		f.Changed = false
	}
}

// executeCommand runs the root command with args and stdin, returning combined output.
func executeCommand(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	resetFlags()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)

	oldSecret := readSecret
	readSecret = func(r *bufio.Reader) (string, error) { return readLine(r) }
	oldBrowser := openBrowser
	openBrowser = func(string) error { return nil }
	t.Cleanup(func() {
		readSecret = oldSecret
		openBrowser = oldBrowser
		rootCmd.SetArgs(nil)
		rootCmd.SetIn(nil)
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		resetFlags()
	})

	err := rootCmd.Execute()
	return buf.String(), err
}
