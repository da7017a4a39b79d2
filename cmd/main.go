package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/okian/hackstack/internal/adapters/http/api"
	"github.com/okian/hackstack/internal/adapters/http/site"
	"github.com/okian/hackstack/internal/adapters/http/swagger"
	"github.com/okian/hackstack/internal/adapters/mcp"
	"github.com/okian/hackstack/internal/adapters/repository"
	service "github.com/okian/hackstack/internal/app"
	"github.com/okian/hackstack/internal/config"
	"github.com/okian/hackstack/pkg/logger"
)

// HTTP server timeout constants.
const (
	readTimeout       = 10 * time.Second
	writeTimeout      = 10 * time.Second
	idleTimeout       = 60 * time.Second
	readHeaderTimeout = 5 * time.Second
	shutdownTimeout   = 30 * time.Second
)

var version = "dev"

func main() {
	// Initialize logging
	if err := logger.Init(); err != nil {
		// Use fmt for initialization errors since logger isn't available yet
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		logger.Get().Error(ctx, "hackstack server failed", logger.Error(err))
		stop()
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	// Load configuration (defaults -> optional file -> env)
	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}
	if err := logger.SetFormat(cfg.LogFormat); err != nil {
		return err
	}
	// Apply configured log level (fallback to info on invalid input)
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		logger.Get().Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}
	log := logger.Get()

	catalog, err := openCatalog(ctx, cfg)
	if err != nil {
		return err
	}

	// Create and start the service with configuration options
	svc := service.New(
		service.WithLogger(log),
		service.WithCatalog(catalog),
		service.WithIdempotencySize(cfg.IdempotencySize),
		service.WithRefreshInterval(cfg.MetricsInterval()),
	)
	if err := seedCatalog(ctx, cfg, svc); err != nil {
		_ = catalog.Close()
		return err
	}
	if err := svc.Start(ctx); err != nil {
		_ = catalog.Close()
		return fmt.Errorf("start service: %w", err)
	}
	defer svc.Stop()

	mux, err := newMux(ctx, cfg, svc)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           mux,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	// Start the HTTP server
	serveErr := make(chan error, 1)
	go func() {
		log.Info(ctx, "starting HTTP server", logger.String("addr", cfg.Addr), logger.String("backend", cfg.CatalogBackend))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	// Wait for shutdown signal
	select {
	case <-ctx.Done():
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
	}
	log.Info(ctx, "shutting down server...")

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error(ctx, "server shutdown failed", logger.Error(err))
	}

	log.Info(ctx, "server stopped")
	return nil
}

// openCatalog builds the store the config selects.
func openCatalog(ctx context.Context, cfg *config.Config) (repository.Catalog, error) {
	switch cfg.CatalogBackend {
	case config.BackendSQLite:
		db, err := repository.OpenSQLite(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		store, err := repository.NewSQLiteStore(ctx, db)
		if err != nil {
			_ = db.Close()
			return nil, err
		}
		return store, nil
	default:
		return repository.NewMemoryStore(), nil
	}
}

// seedCatalog fills an empty catalog from the seed file, or from the demo
// records when no file is configured. A catalog that already holds records
// is left alone so restarts against SQLite do not collide.
func seedCatalog(ctx context.Context, cfg *config.Config, svc *service.Service) error {
	st, err := svc.Stats(ctx)
	if err != nil {
		return err
	}
	if st.Total > 0 {
		logger.Get().Info(ctx, "catalog already populated; skipping seed", logger.Int("hackathons", st.Total))
		return nil
	}

	switch {
	case cfg.SeedFile != "":
		records, err := repository.LoadSeedFile(cfg.SeedFile)
		if err != nil {
			return err
		}
		logger.Get().Info(ctx, "seeding catalog from file", logger.String("file", cfg.SeedFile), logger.Int("hackathons", len(records)))
		return svc.Seed(ctx, records)
	case cfg.SeedDemo:
		return svc.Seed(ctx, repository.DemoHackathons())
	}
	return nil
}

// newMux registers every HTTP surface.
func newMux(ctx context.Context, cfg *config.Config, svc *service.Service) (*http.ServeMux, error) {
	mux := http.NewServeMux()

	// Register business API routes with the service dependency.
	api.NewServer(svc).Register(ctx, mux)

	// Register API docs under /api-docs
	if err := swagger.Register(ctx, mux); err != nil {
		return nil, fmt.Errorf("register api docs: %w", err)
	}
	site.Register(ctx, mux)

	if cfg.MCPEnabled {
		mcp.Register(ctx, mux, svc, version)
	}
	return mux, nil
}
