// Command admin-bff runs the RemnaWave admin backend-for-frontend: a
// JWT-guarded REST API that proxies, normalizes and caches the upstream
// RemnaWave admin panel API.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/bedolaga/remnawave-admin-bff/internal/server"
	"github.com/bedolaga/remnawave-admin-bff/pkg/auth"
	"github.com/bedolaga/remnawave-admin-bff/pkg/cache"
	"github.com/bedolaga/remnawave-admin-bff/pkg/config"
	"github.com/bedolaga/remnawave-admin-bff/pkg/logging"
	"github.com/bedolaga/remnawave-admin-bff/pkg/services"
	"github.com/bedolaga/remnawave-admin-bff/pkg/upstream"
)

func main() {
	// .env is optional, real deployments set the environment directly.
	_ = godotenv.Load()

	cfg, err := config.Load(os.Getenv("CONFIG_FILE"))
	if err != nil {
		logger := logging.Setup(logging.DefaultConfig())
		logger.Fatal().Err(err).Msg("loading configuration")
	}

	logger := logging.Setup(logging.Config{
		Level:  logging.LogLevel(cfg.Log.Level),
		Pretty: cfg.Log.Pretty,
	})

	client, err := upstream.New(upstream.Config{
		BaseURL:     cfg.RemnaWave.BaseURL,
		APIKey:      cfg.RemnaWave.Token,
		Timeout:     cfg.RemnaWave.Timeout(),
		MaxAttempts: cfg.RemnaWave.Retries,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("creating upstream client")
	}

	memo := cache.New()

	srv := server.New(server.Deps{
		Auth:           auth.NewManager(cfg.JWT.Secret, cfg.JWT.Expiry()),
		Users:          services.NewUsers(client),
		Subscriptions:  services.NewSubscriptions(client),
		Tokens:         services.NewTokens(client),
		Stats:          services.NewStats(client, memo),
		Health:         services.NewHealth(client, memo),
		AllowedOrigins: cfg.Server.AllowedOrigins,
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.Info().
		Str("app", cfg.App.Name).
		Str("upstream", cfg.RemnaWave.BaseURL).
		Msg("starting admin BFF")

	if err := srv.Run(ctx, cfg.Server.Addr()); err != nil {
		logger.Fatal().Err(err).Msg("server failed")
	}
}
