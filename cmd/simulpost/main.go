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

	"github.com/ericfisherdev/simulpost/internal/adapter/driven/drafts"
	"github.com/ericfisherdev/simulpost/internal/adapter/driven/platform"
	"github.com/ericfisherdev/simulpost/internal/adapter/driven/secret"
	"github.com/ericfisherdev/simulpost/internal/adapter/driven/settings"
	sqliteadapter "github.com/ericfisherdev/simulpost/internal/adapter/driven/sqlite"
	"github.com/ericfisherdev/simulpost/internal/adapter/driven/vault"
	httphandler "github.com/ericfisherdev/simulpost/internal/adapter/driving/http"
	"github.com/ericfisherdev/simulpost/internal/application"
	"github.com/ericfisherdev/simulpost/internal/config"
)

func main() {
	if err := run(); err != nil {
		slog.Error("fatal error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// 1. Load configuration.
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	slog.Info("config loaded",
		"data_dir", cfg.DataDir,
		"listen_addr", cfg.ListenAddr,
		"call_timeout", cfg.CallTimeout,
	)

	// 2. Setup signal-based context (SIGINT, SIGTERM).
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := os.MkdirAll(cfg.DataDir, 0o700); err != nil {
		return err
	}

	// 3. Open the secret store, creating the key on first run.
	secrets, err := secret.Open(cfg.KeyPath)
	if err != nil {
		return err
	}
	slog.Info("secret store opened", "key_path", cfg.KeyPath)

	// 4. Open the post history database and run migrations.
	db, err := sqliteadapter.NewDB(cfg.HistoryDBPath)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := db.Close(); closeErr != nil {
			slog.Error("error closing database", "error", closeErr)
		}
	}()
	if err := sqliteadapter.RunMigrations(db.Writer); err != nil {
		return err
	}
	slog.Info("post history database opened", "path", cfg.HistoryDBPath)

	// 5. Wire driven adapters.
	logger := slog.Default()
	credVault := vault.NewCredentialVault(cfg.CredentialsPath, secrets, logger)
	tokenVault := vault.NewTokenVault(cfg.TokensPath, secrets, logger)
	draftStore := drafts.NewStore(cfg.DraftsDir, logger)
	settingsStore := settings.NewStore(cfg.SettingsPath)
	historyStore := sqliteadapter.NewHistoryRepo(db)
	registry := platform.NewRegistry(platform.NewXClient())

	// 6. Wire application services.
	authSvc := application.NewAuthService(credVault, tokenVault, registry, cfg.CallTimeout, logger)
	postSvc := application.NewPostService(authSvc, tokenVault, registry, historyStore, draftStore, cfg.CallTimeout, logger)
	credSvc := application.NewCredentialService(credVault, registry, cfg.CallTimeout, logger)

	// 7. Create HTTP handler and server.
	apiHandler := httphandler.NewHandler(credSvc, authSvc, postSvc, settingsStore, logger)
	handler := httphandler.NewServeMux(apiHandler, logger)

	srv := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      2 * cfg.CallTimeout,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		slog.Info("http server starting", "addr", cfg.ListenAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("http server error", "error", err)
		}
	}()

	slog.Info("simulpost started", "listen_addr", cfg.ListenAddr)

	// 8. Wait for shutdown signal, then drain in-flight requests.
	<-ctx.Done()
	slog.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("http server shutdown error", "error", err)
	}

	slog.Info("shutdown complete")
	return nil
}
