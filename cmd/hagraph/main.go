package main

import (
	"context"
	"errors"
	"io/fs"
	"log"
	"os"
	"os/signal"

	"github.com/joho/godotenv"

	"github.com/hagraph/hagraph/internal/adapters/driven/config/file"
	"github.com/hagraph/hagraph/internal/adapters/driven/storage/sqlite"
	"github.com/hagraph/hagraph/internal/adapters/driving/cli"
	"github.com/hagraph/hagraph/internal/adapters/driving/oauth"
	"github.com/hagraph/hagraph/internal/connectors/microsoft"
	"github.com/hagraph/hagraph/internal/core/ports/driven"
	"github.com/hagraph/hagraph/internal/core/services"
	"github.com/hagraph/hagraph/internal/logger"
)

var version = "dev"

func main() {
	os.Exit(run())
}

func run() int {
	cli.SetVersion(version)

	// CLIENT_ID, CLIENT_SECRET and REDIRECT_URI may come from a .env file.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Printf("failed to load .env: %v", err)
		return 1
	}

	// Token refreshes inside the Graph transport use this context.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	configStore, err := file.NewConfigStore("")
	if err != nil {
		log.Printf("failed to create config store: %v", err)
		return 1
	}
	settingsSvc := services.NewSettingsService(configStore)
	svcs := &cli.Services{Settings: settingsSvc}

	// Auth and presence need a configured application; 'auth configure' works without one.
	cfg := settingsSvc.AuthConfig()
	if err := cfg.Validate(); err != nil {
		logger.Debug("auth not configured: %v", err)
	} else {
		sqliteStore, err := sqlite.NewStore("")
		if err != nil {
			log.Printf("failed to create SQLite store: %v", err)
			return 1
		}
		defer sqliteStore.Close()
		tokenStore := sqliteStore.TokenStore()

		authManager, err := microsoft.NewAuthManager(cfg, microsoft.WithTokenStore(tokenStore))
		if err != nil {
			log.Printf("failed to create auth manager: %v", err)
			return 1
		}
		client := microsoft.NewClient(ctx, authManager)

		svcs.Auth = services.NewAuthService(cfg, authManager, tokenStore, client, newCallback)
		svcs.Presence = services.NewPresenceService(client.Presence(), client, cfg.ClientID)
	}

	cli.SetServices(svcs)

	if err := cli.ExecuteContext(ctx); err != nil {
		return 1
	}
	return 0
}

func newCallback(redirectURI, state string) (driven.CallbackReceiver, error) {
	server, err := oauth.NewCallbackServer(redirectURI, state)
	if err != nil {
		return nil, err
	}
	return server, nil
}
