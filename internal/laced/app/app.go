package app

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

	httpapi "github.com/aussiebroadwan/laced/internal/laced/http"
	"github.com/aussiebroadwan/laced/internal/laced/service"
	"github.com/aussiebroadwan/laced/internal/laced/store"
	"github.com/aussiebroadwan/laced/internal/laced/store/drivers/postgres"
	"github.com/aussiebroadwan/laced/internal/laced/store/drivers/sqlite"
	"github.com/aussiebroadwan/laced/pkg/cryptox"
	"github.com/aussiebroadwan/laced/pkg/slogx"
)

const (
	// BuildVersion should be set at build time via ldflags.
	BuildVersion = "v0.1.0"
)

// Application owns the store, the services and the HTTP server.
type Application struct {
	cfg    Config
	logger *slog.Logger

	db store.Store

	credentialService   *service.CredentialService
	sessionService      *service.SessionService
	mergeService        *service.MergeService
	authService         *service.AuthService
	catalogService      *service.CatalogService
	housekeepingService *service.HousekeepingService

	server *http.Server
	router *httpapi.Router
}

// New creates an Application with every dependency initialised.
func New(cfg Config) (*Application, error) {
	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "laced",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	if err := app.initDatabase(); err != nil {
		return nil, err
	}
	if err := app.initServices(); err != nil {
		_ = app.db.Close()
		return nil, err
	}
	if err := app.seedCatalog(); err != nil {
		_ = app.db.Close()
		return nil, err
	}
	app.initHTTP()

	return app, nil
}

// Handler exposes the router, mainly for tests.
func (app *Application) Handler() http.Handler {
	return app.router
}

// Run starts the application and blocks until shutdown is requested.
func (app *Application) Run() error {
	app.housekeepingService.Start()

	app.logger.Info("laced starting", "port", app.cfg.Port, "version", BuildVersion, "driver", app.cfg.DatabaseDriver)

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		app.housekeepingService.Stop()
		_ = app.db.Close()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
	case sig := <-shutdown:
		app.logger.Info("shutdown signal received", "signal", sig)
		if err := app.Shutdown(); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
	}

	return nil
}

// Shutdown drains in-flight requests, stops housekeeping and closes the
// store.
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down laced...")

	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	app.housekeepingService.Stop()

	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", "error", err)
		return err
	}

	app.logger.Info("laced stopped")
	return nil
}

// initDatabase opens the configured driver and applies migrations.
func (app *Application) initDatabase() error {
	var (
		db  store.Store
		err error
	)
	switch app.cfg.DatabaseDriver {
	case DriverPostgres:
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		db, err = postgres.NewStore(ctx, app.cfg.DatabaseURL)
	default:
		dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)", app.cfg.DatabaseFile)
		db, err = sqlite.NewStore(dsn)
	}
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	app.db = db

	if err := db.ApplyMigrations(); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to apply database migrations: %w", err)
	}

	app.logger.Info("database migrations applied successfully", "driver", app.cfg.DatabaseDriver)
	return nil
}

func (app *Application) initServices() error {
	var pepper string
	if app.cfg.PasswordAlgorithm == cryptox.AlgorithmArgon2id {
		p, err := cryptox.LoadOrCreatePepper(app.cfg.PepperFile)
		if err != nil {
			return fmt.Errorf("failed to load pepper: %w", err)
		}
		pepper = p
	}
	hasher, err := cryptox.NewPasswordHasher(app.cfg.PasswordAlgorithm, app.cfg.BcryptCost, pepper)
	if err != nil {
		return fmt.Errorf("failed to initialize password hasher: %w", err)
	}

	app.credentialService = &service.CredentialService{Store: app.db, Hasher: hasher}
	app.sessionService = &service.SessionService{
		Store:    app.db,
		TTL:      app.cfg.SessionTTL,
		GuestTTL: app.cfg.GuestSessionTTL,
	}
	app.mergeService = &service.MergeService{Store: app.db}
	app.authService = &service.AuthService{
		Store:       app.db,
		Credentials: app.credentialService,
		Sessions:    app.sessionService,
		Merge:       app.mergeService,
	}
	app.catalogService = &service.CatalogService{Store: app.db}

	app.housekeepingService = service.NewHousekeepingService(
		app.sessionService,
		app.logger,
		app.cfg.HousekeepingInterval,
	)
	return nil
}

func (app *Application) seedCatalog() error {
	if !app.cfg.CatalogSeed {
		return nil
	}
	ctx, cancel := context.WithTimeout(slogx.WithContext(context.Background(), app.logger), 30*time.Second)
	defer cancel()

	if _, err := app.catalogService.Seed(ctx); err != nil {
		return fmt.Errorf("failed to seed catalog: %w", err)
	}
	return nil
}

func (app *Application) initHTTP() {
	router := httpapi.NewRouter(
		BuildVersion,
		app.db,
		httpapi.CookieConfig{
			Secure:   app.cfg.SecureCookies(),
			TTL:      app.cfg.SessionTTL,
			GuestTTL: app.cfg.GuestSessionTTL,
		},
		app.logger,
	)

	router.AuthService = app.authService
	router.SessionService = app.sessionService
	router.CatalogService = app.catalogService
	router.ApplyRoutes()

	app.router = router

	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
}
