// Command server runs the storefront HTTP API. Storage backend selection
// happens at startup: hosted service with relational fallback when both are
// configured, plain relational when only the database is, and the seeded
// in-memory store when nothing is reachable.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alexedwards/scs/v2"
	"github.com/joho/godotenv"

	"github.com/shopfront-dev/shopfront/internal/config"
	"github.com/shopfront-dev/shopfront/internal/migration"
	"github.com/shopfront-dev/shopfront/internal/platform/hosted"
	"github.com/shopfront-dev/shopfront/internal/platform/logger"
	"github.com/shopfront-dev/shopfront/internal/platform/memory"
	"github.com/shopfront-dev/shopfront/internal/platform/postgres"
	"github.com/shopfront-dev/shopfront/internal/service/auth"
	"github.com/shopfront-dev/shopfront/internal/store"
)

type application struct {
	cfg          *config.Config
	logger       *slog.Logger
	selector     *store.Selector
	relational   *postgres.Store
	sessions     *scs.SessionManager
	sessionStore *postgres.SessionStore
	jwt          *auth.JWTService
}

func main() {
	if err := run(); err != nil {
		slog.Error("server exited with error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run() error {
	// A missing .env is the normal case outside local development.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log := logger.Setup(cfg.Server.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app, cleanup, err := newApplication(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer cleanup()

	return app.serve(ctx)
}

// newApplication wires the storage backends, session manager and token
// service. The returned cleanup closes the pool and stops the session reaper.
func newApplication(ctx context.Context, cfg *config.Config, log *slog.Logger) (*application, func(), error) {
	jwtService, err := auth.NewJWTService(cfg.Auth.JWTSecret,
		time.Duration(cfg.Auth.TokenLifetimeMinutes)*time.Minute)
	if err != nil {
		return nil, nil, fmt.Errorf("token service: %w", err)
	}

	app := &application{cfg: cfg, logger: log, jwt: jwtService}
	cleanup := func() {}

	relational := openRelational(ctx, cfg, log)
	if relational != nil {
		app.relational = relational
		cleanup = func() { relational.DB().Close() }
	}

	app.selector = store.NewSelector(app.pickBackend(ctx), log)

	app.sessions = scs.New()
	app.sessions.Lifetime = time.Duration(cfg.Auth.SessionLifetimeHours) * time.Hour
	app.sessions.Cookie.HttpOnly = true
	app.sessions.Cookie.SameSite = http.SameSiteLaxMode
	if relational != nil {
		sessionStore := postgres.NewSessionStore(relational.DB(), log)
		app.sessions.Store = sessionStore
		app.sessionStore = sessionStore
		go sessionStore.StartCleanup(time.Hour)

		poolCleanup := cleanup
		cleanup = func() {
			sessionStore.StopCleanup()
			poolCleanup()
		}
	}

	return app, cleanup, nil
}

// openRelational connects to the database, applies the schema and seeds it.
// Any failure returns nil; the caller falls back to the in-memory backend.
func openRelational(ctx context.Context, cfg *config.Config, log *slog.Logger) *postgres.Store {
	if cfg.Database.URL == "" {
		log.Warn("no database configured, relational backend unavailable")
		return nil
	}

	if err := migration.EnsureSchema(ctx, cfg.Database.URL); err != nil {
		log.Warn("schema migration failed, relational backend unavailable",
			slog.String("error", err.Error()))
		return nil
	}

	db, err := postgres.New(ctx, cfg.Database.URL)
	if err != nil {
		log.Warn("database unreachable, relational backend unavailable",
			slog.String("error", err.Error()))
		return nil
	}

	st := postgres.NewStore(db, log)
	if err := st.EnsureSeedData(ctx); err != nil {
		log.Warn("seeding failed, relational backend unavailable",
			slog.String("error", err.Error()))
		db.Close()
		return nil
	}
	return st
}

// pickBackend chooses the initial active backend: hosted when fully
// configured, then relational, then the seeded in-memory store.
func (app *application) pickBackend(ctx context.Context) store.Store {
	if app.relational != nil && app.cfg.Hosted.Enabled() {
		client := hosted.NewClient(app.cfg.Hosted.URL, app.cfg.Hosted.APIKey, app.logger)
		backend := hosted.New(ctx, client, app.relational, app.cfg.Database.URL, app.logger)
		app.logger.Info("storage backend selected", slog.String("backend", backend.Name()))
		return backend
	}
	if app.relational != nil {
		app.logger.Info("storage backend selected", slog.String("backend", app.relational.Name()))
		return app.relational
	}

	app.logger.Warn("falling back to in-memory storage, data will not survive restarts")
	return memory.New()
}

// serve runs the HTTP server until the context is cancelled, then shuts down
// gracefully.
func (app *application) serve(ctx context.Context) error {
	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Server.Port),
		Handler:           app.routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		app.logger.Info("server starting",
			slog.Int("port", app.cfg.Server.Port),
			slog.String("backend", app.selector.Active().Name()))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
		app.logger.Info("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	app.logger.Info("server stopped")
	return nil
}
