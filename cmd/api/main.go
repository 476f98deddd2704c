// Copyright (c) 2026 CookBook Connect. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command api is the entry point for the CookBook HTTP API server.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables.
//  3. Connect to PostgreSQL (pgxpool).
//  4. Connect to Redis.
//  5. Run database migrations (idempotent).
//  6. Build the JWT service and mail transport.
//  7. Wire domain services and HTTP handlers.
//  8. Start HTTP server with graceful shutdown.
//
// No business logic lives here. All wiring is explicit constructor injection.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/taibuivan/cookbook/internal/api"
	"github.com/taibuivan/cookbook/internal/platform/config"
	"github.com/taibuivan/cookbook/internal/platform/constants"
	"github.com/taibuivan/cookbook/internal/platform/mailer"
	"github.com/taibuivan/cookbook/internal/platform/migration"
	pgstore "github.com/taibuivan/cookbook/internal/platform/postgres"
	redisstore "github.com/taibuivan/cookbook/internal/platform/redis"
	"github.com/taibuivan/cookbook/internal/platform/sec"
	"github.com/taibuivan/cookbook/internal/recipe"
	"github.com/taibuivan/cookbook/internal/social"
	"github.com/taibuivan/cookbook/internal/users/account"
	"github.com/taibuivan/cookbook/internal/users/auth"
)

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	// Initialize first so that subsequent startup errors are structured JSON.
	rawLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	log := rawLog.With(slog.String("app", constants.AppName), slog.String("version", constants.AppVersion))
	slog.SetDefault(log)

	log.Info("service_initializing")

	// ── 2. Configuration ──────────────────────────────────────────────────
	cfg, err := config.Load()
	must(log, err, "load configuration")

	if cfg.Debug {
		debugLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
		log = debugLog.With(slog.String("app", constants.AppName), slog.String("version", constants.AppVersion))
		slog.SetDefault(log)
		log.Debug("debug_logging_enabled")
	}

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
		slog.String("mail_provider", cfg.MailProvider),
	)

	// Process-wide context, cancelled on SIGINT/SIGTERM. Background workers
	// and the rate limiter janitor stop with it.
	rootCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	// Startup gets a 30s deadline so misconfiguration fails fast.
	startupCtx, startupCancel := context.WithTimeout(rootCtx, 30*time.Second)
	defer startupCancel()

	// ── 3. PostgreSQL ─────────────────────────────────────────────────────
	pool, err := pgstore.NewPool(startupCtx, cfg.DatabaseURL, pgstore.PoolSettings{
		MaxConns: cfg.DBMaxConns,
		MinConns: cfg.DBMinConns,
	}, log)
	must(log, err, "connect to postgres")
	defer func() {
		log.Info("closing postgres pool")
		pool.Close()
	}()

	// ── 4. Redis ──────────────────────────────────────────────────────────
	rdb, err := redisstore.NewClient(startupCtx, cfg.RedisURL, cfg.RedisPoolSize, log)
	must(log, err, "connect to redis")
	defer func() {
		log.Info("closing redis client")
		if cerr := rdb.Close(); cerr != nil {
			log.Error("redis close error", slog.Any("error", cerr))
		}
	}()

	// ── 5. Migrations ─────────────────────────────────────────────────────
	must(log, migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, log), "run migrations")

	// ── 6. Security & Mail ────────────────────────────────────────────────
	jwtSvc, err := sec.NewTokenService(cfg.JWTPrivKeyPath, cfg.JWTPubKeyPath, constants.AuthIssuer)
	must(log, err, "initialize jwt service")

	mail, err := mailer.New(mailer.Settings{
		Provider:      cfg.MailProvider,
		From:          cfg.MailFrom,
		Timeout:       cfg.MailTimeout,
		ResendAPIKey:  cfg.ResendAPIKey,
		MailgunDomain: cfg.MailgunDomain,
		MailgunAPIKey: cfg.MailgunAPIKey,
	}, log)
	must(log, err, "initialize mailer")

	// ── 7. Domain Wiring ──────────────────────────────────────────────────
	liveness, readiness := api.NewHealthHandlers(api.HealthDependencies{
		CheckDatabase: func(ctx context.Context) error {
			return pgstore.Ping(ctx, pool)
		},
		CheckCache: func(ctx context.Context) error {
			return redisstore.Ping(ctx, rdb)
		},
	}, log)

	// Users & verification
	userRepository := auth.NewUserRepository(pool)
	tokenStore := auth.NewTokenStore(auth.NewVerificationTokenRepository(pool))
	verification := auth.NewVerificationMailer(tokenStore, mail, cfg.VerificationBaseURL, log)

	authService := auth.NewService(
		userRepository,
		auth.NewSessionRepository(pool),
		tokenStore,
		verification,
		auth.NewCooldownStore(rdb),
		jwtSvc,
		log,
	)
	go authService.RunJanitor(rootCtx, cfg.TokenCleanupInterval)

	accountService := account.NewService(account.NewAccountRepository(pool), log)

	// Recipes & engagement
	recipeService := recipe.NewService(recipe.NewRepository(pool), recipe.NewRedisInvalidator(rdb), log)
	socialService := social.NewService(social.NewRepository(pool), log)

	handlers := api.Handlers{
		Liveness:  liveness,
		Readiness: readiness,
		Auth:      auth.NewHandler(authService, cfg.AppBaseURL),
		Account:   account.NewHandler(accountService),
		Recipe:    recipe.NewHandler(recipeService),
		Social:    social.NewHandler(socialService),
	}

	// ── 8. HTTP Server ────────────────────────────────────────────────────
	server := api.NewServer(rootCtx, cfg, log, jwtSvc, handlers)

	serverErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Block until OS signal or server error.
	select {
	case <-rootCtx.Done():
		log.Info("shutdown signal received")
	case err := <-serverErr:
		log.Error("server startup error", slog.Any("error", err))
		stop()
	}

	shutdownTimeout := constants.ShutdownTimeout
	log.Info("shutting down server", slog.Duration("timeout", shutdownTimeout))

	if err := server.Shutdown(shutdownTimeout); err != nil {
		log.Error("shutdown error", slog.Any("error", err))
		os.Exit(1)
	}

	log.Info("server stopped cleanly")
}

// must logs a structured fatal error and terminates the process if err is non-nil.
//
// Limited to startup wiring. After startup, all errors are returned and
// handled explicitly.
func must(log *slog.Logger, err error, context string) {
	if err != nil {
		log.Error("startup failure",
			slog.String("context", context),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
