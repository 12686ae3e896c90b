package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpapi "github.com/aussiebroadwan/gatepass/internal/gatepass/http"
	"github.com/aussiebroadwan/gatepass/internal/gatepass/service"
	"github.com/aussiebroadwan/gatepass/internal/gatepass/store"
	"github.com/aussiebroadwan/gatepass/internal/gatepass/store/drivers/sqlite"
	"github.com/aussiebroadwan/gatepass/pkg/jwtx"
	"github.com/aussiebroadwan/gatepass/pkg/slogx"
)

// BuildVersion is overridden at build time via -ldflags.
var BuildVersion = "v0.1.0"

// Application wires the gatepass service together.
type Application struct {
	cfg       Config
	logger    *slog.Logger
	logCloser io.Closer

	db           store.Store
	registry     *service.Registry
	housekeeping *service.HousekeepingService

	server *http.Server
	router *httpapi.Router
}

// New creates a new Application instance with all dependencies initialized
func New(cfg Config) (*Application, error) {
	logger, logCloser := slogx.New(slogx.Config{
		Service: "gatepass",
		Version: BuildVersion,
		Env:     cfg.Env,
		Level:   cfg.LogLevel,
		Format:  cfg.LogFormat,
		File:    cfg.LogFile,
	})

	app := &Application{cfg: cfg, logger: logger, logCloser: logCloser}

	if err := app.initDatabase(); err != nil {
		_ = logCloser.Close()
		return nil, err
	}

	if err := app.initServices(); err != nil {
		_ = app.db.Close()
		_ = logCloser.Close()
		return nil, err
	}

	if err := app.initHTTP(); err != nil {
		_ = app.db.Close()
		_ = logCloser.Close()
		return nil, err
	}

	return app, nil
}

// Handler returns the root HTTP handler.
func (app *Application) Handler() http.Handler { return app.router }

// Run starts the application and blocks until shutdown is requested
func (app *Application) Run() error {
	app.housekeeping.Start()

	app.logger.Info("gatepass starting",
		slog.Int("port", app.cfg.Port),
		slog.String("version", BuildVersion),
		slog.Bool("station_auth", app.cfg.AuthEnabled()),
	)

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(shutdown)

	select {
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			app.housekeeping.Stop()
			_ = app.db.Close()
			return fmt.Errorf("server failed: %w", err)
		}
	case sig := <-shutdown:
		app.logger.Info("shutdown signal received", slog.String("signal", sig.String()))

		if err := app.Shutdown(); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
	}

	return nil
}

// Shutdown gracefully shuts down the application
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down gatepass...")

	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", slog.Any("error", err))
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", slog.Any("error", err))
		}
	}

	app.housekeeping.Stop()

	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", slog.Any("error", err))
		return err
	}

	app.logger.Info("gatepass stopped")
	return app.logCloser.Close()
}

// initDatabase opens the database and applies migrations
func (app *Application) initDatabase() error {
	db, err := sqlite.NewStore(sqlite.DSN(app.cfg.DatabaseFile))
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	app.db = db

	if err := db.ApplyMigrations(); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to apply database migrations: %w", err)
	}

	app.logger.Info("database migrations applied successfully", slog.String("file", app.cfg.DatabaseFile))
	return nil
}

func (app *Application) initServices() error {
	app.registry = service.NewRegistry(app.db, app.cfg.CodePrefix)

	hk, err := service.NewHousekeepingService(
		app.db,
		app.registry,
		app.logger,
		app.cfg.BackupSchedule,
		app.cfg.BackupDir,
		app.cfg.BackupKeep,
		app.cfg.StatsSchedule,
	)
	if err != nil {
		return err
	}
	app.housekeeping = hk
	return nil
}

// initHTTP initializes the HTTP router and server
func (app *Application) initHTTP() error {
	// A typed nil would defeat the router's nil check.
	var verifier jwtx.Verifier
	if app.cfg.AuthEnabled() {
		hs, err := jwtx.NewHS256([]byte(app.cfg.SigningKey), app.cfg.Issuer)
		if err != nil {
			return fmt.Errorf("failed to initialize station tokens: %w", err)
		}
		verifier = hs
	} else {
		app.logger.Warn("GATEPASS_SIGNING_KEY not set, API is open to anyone on the network")
	}

	router := httpapi.NewRouter(
		verifier,
		app.cfg.PublicURL,
		BuildVersion,
		app.db,
		app.registry,
		app.logger,
	)
	router.ApplyRoutes()
	app.router = router

	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
	return nil
}
