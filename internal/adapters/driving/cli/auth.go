package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/hagraph/hagraph/internal/adapters/driving/oauth"
	"github.com/hagraph/hagraph/internal/core/domain"
	"github.com/hagraph/hagraph/internal/core/ports/driving"
)

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Manage the Microsoft Graph sign-in",
	Long: `Configure the OAuth application, sign in, and inspect or remove the stored token.

CLIENT_ID, CLIENT_SECRET and REDIRECT_URI override the configured values.`,
}

var authConfigureCmd = &cobra.Command{
	Use:   "configure",
	Short: "Store the OAuth application registration",
	Long: `Store the application (client) id, optional client secret, redirect URI and scopes.

Missing values are prompted for. The secret is read without echo.

Examples:
  # Interactive
  hagraph auth configure

  # Public client using PKCE only
  hagraph auth configure --client-id 00000000-0000-0000-0000-000000000000 --no-secret`,
	RunE: runAuthConfigure,
}

var authLoginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in through the browser",
	Long: `Open the Microsoft sign-in page and wait for the redirect on the configured
redirect URI. The token is stored for later commands.`,
	RunE: runAuthLogin,
}

var authStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the stored session",
	RunE:  runAuthStatus,
}

var authRefreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "Refresh the access token if it has expired",
	RunE:  runAuthRefresh,
}

var authLogoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Delete the stored token",
	RunE:  runAuthLogout,
}

// Flags for auth commands.
var (
	authClientID     string
	authClientSecret string
	authNoSecret     bool
	authRedirectURI  string
	authScopes       []string
	authNoBrowser    bool
	authTimeout      time.Duration
)

// openBrowser launches the authorization URL. Replaced in tests.
var openBrowser = oauth.OpenBrowser

// readSecret reads a secret without echo when stdin is a terminal. Replaced in tests.
var readSecret = func(r *bufio.Reader) (string, error) {
	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		secret, err := term.ReadPassword(fd)
		if err != nil {
			return "", err
		}
		return strings.TrimSpace(string(secret)), nil
	}
	return readLine(r)
}

func init() {
	authConfigureCmd.Flags().StringVar(&authClientID, "client-id", "", "Application (client) id")
	authConfigureCmd.Flags().StringVar(&authClientSecret, "client-secret", "", "Client secret (prompted when omitted)")
	authConfigureCmd.Flags().BoolVar(&authNoSecret, "no-secret", false, "Configure a public client without a secret")
	authConfigureCmd.Flags().StringVar(&authRedirectURI, "redirect-uri", "", "Redirect URI registered for the application")
	authConfigureCmd.Flags().StringSliceVar(&authScopes, "scopes", nil, "Delegated scopes to request")

	authLoginCmd.Flags().BoolVar(&authNoBrowser, "no-browser", false, "Print the sign-in URL instead of opening a browser")
	authLoginCmd.Flags().DurationVar(&authTimeout, "timeout", 5*time.Minute, "How long to wait for the sign-in to complete")

	authCmd.AddCommand(authConfigureCmd)
	authCmd.AddCommand(authLoginCmd)
	authCmd.AddCommand(authStatusCmd)
	authCmd.AddCommand(authRefreshCmd)
	authCmd.AddCommand(authLogoutCmd)
	rootCmd.AddCommand(authCmd)
}

func runAuthConfigure(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	current := settingsService.AuthConfig()
	reader := bufio.NewReader(cmd.InOrStdin())

	cfg := domain.AuthConfig{
		ClientID:     authClientID,
		ClientSecret: authClientSecret,
		RedirectURI:  authRedirectURI,
		Scopes:       authScopes,
	}

	if cfg.ClientID == "" {
		value, err := prompt(cmd, reader, "Client ID", current.ClientID)
		if err != nil {
			return err
		}
		cfg.ClientID = value
	}
	if cfg.ClientSecret == "" && !authNoSecret {
		cmd.Print("Client secret (leave empty for a public client): ")
		secret, err := readSecret(reader)
		cmd.Println()
		if err != nil {
			return fmt.Errorf("reading client secret: %w", err)
		}
		cfg.ClientSecret = secret
	}
	if cfg.RedirectURI == "" {
		value, err := prompt(cmd, reader, "Redirect URI", current.RedirectURI)
		if err != nil {
			return err
		}
		cfg.RedirectURI = value
	}
	if len(cfg.Scopes) == 0 {
		cfg.Scopes = current.Scopes
	}

	if err := settingsService.SaveAuthConfig(cfg); err != nil {
		return err
	}

	cmd.Println(successStyle.Render("Configuration saved to " + settingsService.ConfigPath()))
	cmd.Println("Run 'hagraph auth login' to sign in.")
	return nil
}

func runAuthLogin(cmd *cobra.Command, _ []string) error {
	if authService == nil {
		return errNotConfigured
	}

	ctx, cancel := context.WithTimeout(commandContext(cmd), authTimeout)
	defer cancel()

	opts := driving.LoginOptions{
		OnAuthorizationURL: func(url string) {
			cmd.Println("Open this URL to sign in:")
			cmd.Println()
			cmd.Println("  " + url)
			cmd.Println()
			cmd.Println(mutedStyle.Render("Waiting for the sign-in to complete..."))
		},
	}
	if !authNoBrowser {
		opts.OpenBrowser = openBrowser
	}

	result, err := authService.Login(ctx, opts)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return fmt.Errorf("timed out waiting for sign-in after %s", authTimeout)
		}
		return err
	}

	msg := "Signed in"
	if result.AccountIdentifier != "" {
		msg += " as " + result.AccountIdentifier
	}
	cmd.Println(successStyle.Render(msg))
	if result.Token != nil && !result.Token.HasRefreshToken() {
		cmd.Println(warningStyle.Render("No refresh token was issued; request the offline_access scope to stay signed in."))
	}
	return nil
}

func runAuthStatus(cmd *cobra.Command, _ []string) error {
	if authService == nil {
		cmd.Println(field("Configured", errorStyle.Render("no")))
		cmd.Println("Run 'hagraph auth configure' to set up the OAuth application.")
		return nil
	}

	status, err := authService.Status(commandContext(cmd))
	if err != nil {
		return err
	}

	cmd.Println(field("Client ID", status.ClientID))
	if !status.Authenticated {
		cmd.Println(field("Signed in", errorStyle.Render("no")))
		return nil
	}

	cmd.Println(field("Signed in", successStyle.Render("yes")))
	expiry := status.Expiry.Local().Format("2006-01-02 15:04:05")
	if status.Valid {
		cmd.Println(field("Access token", successStyle.Render("valid until "+expiry)))
	} else {
		cmd.Println(field("Access token", warningStyle.Render("expired at "+expiry)))
	}
	if status.CanRefresh {
		cmd.Println(field("Refresh token", "yes"))
	} else {
		cmd.Println(field("Refresh token", warningStyle.Render("no")))
	}
	if status.Scope != "" {
		cmd.Println(field("Scopes", status.Scope))
	}
	return nil
}

func runAuthRefresh(cmd *cobra.Command, _ []string) error {
	if authService == nil {
		return errNotConfigured
	}
	if err := authService.Refresh(commandContext(cmd)); err != nil {
		return err
	}
	cmd.Println(successStyle.Render("Token is valid."))
	return nil
}

func runAuthLogout(cmd *cobra.Command, _ []string) error {
	if authService == nil {
		return errNotConfigured
	}
	if err := authService.Logout(commandContext(cmd)); err != nil {
		return err
	}
	cmd.Println("Signed out.")
	return nil
}

// prompt asks for a value, returning def when the answer is empty.
func prompt(cmd *cobra.Command, r *bufio.Reader, label, def string) (string, error) {
	if def != "" {
		cmd.Printf("%s [%s]: ", label, def)
	} else {
		cmd.Printf("%s: ", label)
	}
	value, err := readLine(r)
	if err != nil {
		return "", err
	}
	if value == "" {
		return def, nil
	}
	return value, nil
}

func readLine(r *bufio.Reader) (string, error) {
	line, err := r.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// commandContext returns the command context, or Background when run outside Execute.
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
