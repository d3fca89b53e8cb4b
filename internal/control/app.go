// Package control wires the account store, platform factory and executor
// together and manages their lifecycle.
package control

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/vietddude/interact/internal/core/config"
	"github.com/vietddude/interact/internal/health"
	"github.com/vietddude/interact/internal/infra/platform"
	redisclient "github.com/vietddude/interact/internal/infra/redis"
	"github.com/vietddude/interact/internal/infra/storage/postgres"
	"github.com/vietddude/interact/internal/interaction"
)

// App owns the wired components and their lifecycle.
type App struct {
	cfg          *config.AppConfig
	db           *postgres.DB
	locks        *redisclient.LockStore
	repo         *postgres.AccountRepo
	executor     *interaction.Executor
	healthServer *health.Server
	log          *slog.Logger
}

// New wires an App from configuration. The database is migrated here; Redis
// is only dialed when the pool is configured for Redis locks.
func New(cfg *config.AppConfig) (*App, error) {
	log := slog.Default()

	db, err := postgres.NewDB(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("database: %w", err)
	}

	app := &App{cfg: cfg, db: db, log: log}

	if cfg.Pool.RedisLocks {
		locks, err := redisclient.NewLockStore(cfg.Redis)
		if err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("redis: %w", err)
		}
		app.locks = locks
		app.repo = postgres.NewAccountRepoWithLocks(db, locks)
		log.Info("Queue locks backed by Redis")
	} else {
		app.repo = postgres.NewAccountRepo(db)
	}

	factory := platform.NewHTTPFactory(cfg.Platform.BaseURL, cfg.Platform.Timeout)
	app.executor = interaction.NewExecutor(app.repo, factory, interaction.NewClassifier(), log)

	checks := map[string]health.Checker{
		"database": func(ctx context.Context) error { return db.PingContext(ctx) },
	}
	app.healthServer = health.NewServer(cfg.Server.Port, checks)

	return app, nil
}

// Executor returns the interaction executor.
func (a *App) Executor() *interaction.Executor {
	return a.executor
}

// Accounts returns the account repository.
func (a *App) Accounts() *postgres.AccountRepo {
	return a.repo
}

// Start launches the health/metrics server.
func (a *App) Start(ctx context.Context) error {
	go func() {
		a.log.Info("Health server listening", "port", a.cfg.Server.Port)
		if err := a.healthServer.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.log.Error("Health server stopped", "error", err)
		}
	}()
	return nil
}

// Stop shuts down the health server and closes connections.
func (a *App) Stop(ctx context.Context) error {
	if err := a.healthServer.Stop(ctx); err != nil {
		a.log.Warn("Health server shutdown", "error", err)
	}
	if a.locks != nil {
		if err := a.locks.Close(); err != nil {
			a.log.Warn("Redis close", "error", err)
		}
	}
	return a.db.Close()
}
