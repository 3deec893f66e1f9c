package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"users_manager_backend/internal/directory"
	apphttp "users_manager_backend/internal/http"
	"users_manager_backend/internal/http/router"
	"users_manager_backend/internal/organizations"
	"users_manager_backend/internal/provider"
	"users_manager_backend/internal/users"
	"users_manager_backend/platform/config"
	"users_manager_backend/platform/db"
	"users_manager_backend/platform/logger"
	"users_manager_backend/platform/upstream"
	"users_manager_backend/platform/validator"

	"github.com/cenkalti/backoff/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

// ServeCmd runs the API server.
type ServeCmd struct {
	SkipMigrations bool `help:"Do not apply pending migrations on startup." env:"SKIP_MIGRATIONS"`
	StartupRetries uint `help:"Attempts for startup dependencies." default:"5"`
}

func (s *ServeCmd) Run(ctx context.Context, globals *Globals) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log := logger.New(cfg.Env)
	log.Info("starting server", "env", cfg.Env, "addr", cfg.HTTPAddr, "version", globals.Version)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	if !s.SkipMigrations {
		if _, err := withRetry(ctx, log, "database migrations", s.StartupRetries, func() (struct{}, error) {
			return struct{}{}, db.RunMigrations(cfg)
		}); err != nil {
			log.Error("failed to run database migrations", "error", err)
			return err
		}
		log.Info("database migrations complete")
	}

	pool, err := withRetry(ctx, log, "database connection", s.StartupRetries, func() (*pgxpool.Pool, error) {
		return db.NewPool(ctx, cfg)
	})
	if err != nil {
		log.Error("failed to connect to database", "error", err)
		return err
	}
	defer pool.Close()
	log.Info("database connection established")

	val := validator.New()
	idp := provider.New(upstream.New(cfg.GetProviderTimeout(), log), cfg)

	app := &apphttp.App{
		Config: cfg,
		Logger: log,
		Health: db.NewPoolAdapter(pool),
		Modules: []apphttp.Module{
			organizations.NewModule(idp, cfg, val),
			users.NewModule(idp, cfg, val),
			directory.NewModule(pool, val, log),
		},
	}

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router.New(app),
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       2 * time.Minute,
		MaxHeaderBytes:    8 * 1024,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("server listening", "addr", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Error("server error", "error", err)
		return err
	}
	log.Info("server stopped")
	return nil
}

// withRetry retries fn with exponential backoff until it succeeds,
// attempts run out or ctx is cancelled.
func withRetry[T any](ctx context.Context, log *logger.Logger, name string, attempts uint, fn func() (T, error)) (T, error) {
	if attempts < 1 {
		attempts = 1
	}
	return backoff.Retry(ctx, fn,
		backoff.WithBackOff(backoff.NewExponentialBackOff()),
		backoff.WithMaxTries(attempts),
		backoff.WithNotify(func(err error, next time.Duration) {
			log.Warn("retryable operation failed", "operation", name, "error", err, "retryIn", next)
		}),
	)
}
