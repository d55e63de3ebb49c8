// Package server wires configuration, storage and the HTTP API into a
// process that can be started and stopped.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/exp/slog"

	"timetrack/internal/app/server/api"
	"timetrack/internal/app/server/config"
	"timetrack/internal/app/server/crypto"
	"timetrack/internal/infrastructure/migration"
	"timetrack/internal/infrastructure/storage/memory"
	"timetrack/internal/infrastructure/storage/postgres"
	"timetrack/internal/infrastructure/storage/sqlite"
	"timetrack/internal/utils/logger"
)

const readHeaderTimeout = 5 * time.Second

type App struct {
	cfg        *config.Config
	log        *slog.Logger
	srv        *http.Server
	closeStore func() error
}

// New opens the configured store and builds the HTTP server around it.
// Postgres is migrated to the latest schema first.
func New(ctx context.Context, cfg *config.Config, log *slog.Logger) (*App, error) {
	gate, err := crypto.NewKeyGate(cfg.APIKey.Secret, cfg.APIKey.Salt, crypto.Algorithm(cfg.APIKey.Algorithm))
	if err != nil {
		return nil, fmt.Errorf("api key gate: %w", err)
	}
	if cfg.APIKey.Secret == "" {
		log.Warn("api_secret is empty, every entity request will be rejected")
	}

	repos, closeStore, err := openStore(ctx, cfg, log)
	if err != nil {
		return nil, err
	}

	return &App{
		cfg: cfg,
		log: log,
		srv: &http.Server{
			Addr:              cfg.Server.RunAddress,
			Handler:           api.New(repos, gate, log),
			ReadHeaderTimeout: readHeaderTimeout,
		},
		closeStore: closeStore,
	}, nil
}

func openStore(ctx context.Context, cfg *config.Config, log *slog.Logger) (api.Repositories, func() error, error) {
	switch cfg.DB.Driver() {
	case config.DriverMemory:
		log.Warn("database_uri is empty, using the in-memory store")
		store := memory.New()
		return api.Repositories{
			Users:      store.Users(),
			Categories: store.Categories(),
			Times:      store.Times(),
			Store:      store,
		}, store.Close, nil

	case config.DriverSQLite:
		store, err := sqlite.New(ctx, cfg.DB.SQLitePath(), log)
		if err != nil {
			return api.Repositories{}, nil, fmt.Errorf("open storage: %w", err)
		}
		log.Info("using sqlite store", slog.String("path", cfg.DB.SQLitePath()))
		return api.Repositories{
			Users:      store.Users(),
			Categories: store.Categories(),
			Times:      store.Times(),
			Store:      store,
		}, store.Close, nil
	}

	if err := migration.NewMigration(cfg.DB, migration.DefaultEngine).Up(); err != nil {
		return api.Repositories{}, nil, err
	}

	storage, err := postgres.New(ctx, cfg.DB.DatabaseURI, log)
	if err != nil {
		return api.Repositories{}, nil, fmt.Errorf("open storage: %w", err)
	}
	return api.Repositories{
		Users:      storage.Users(),
		Categories: storage.Categories(),
		Times:      storage.Times(),
		Store:      storage,
	}, storage.Close, nil
}

func (a *App) Handler() http.Handler {
	return a.srv.Handler
}

// Run serves until ctx is cancelled, then drains in-flight requests for
// at most the configured shutdown timeout and closes the store.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.log.Info("server started", slog.String("address", a.srv.Addr), slog.String("env", a.cfg.Env))
		if err := a.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	var serveErr error
	select {
	case <-ctx.Done():
	case serveErr = <-errCh:
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.Server.ShutdownTimeout)
	defer cancel()

	a.log.Info("shutting down")
	if err := a.srv.Shutdown(shutdownCtx); err != nil {
		a.log.Error("graceful shutdown failed", logger.Err(err))
		serveErr = errors.Join(serveErr, err)
	}
	if err := a.closeStore(); err != nil {
		serveErr = errors.Join(serveErr, fmt.Errorf("close store: %w", err))
	}

	return serveErr
}
