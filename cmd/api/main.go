package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"veggie-market/internal/catalog"
	"veggie-market/internal/config"
	"veggie-market/internal/database"
	"veggie-market/internal/handler"
	"veggie-market/internal/repository"
	"veggie-market/internal/router"
	"veggie-market/internal/service"

	"github.com/rs/zerolog"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Initialize logger
	logger := config.NewLogger(cfg.Logger)
	logger.Info().Msg("starting veggie-market API server")

	// Create context for application lifecycle
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize database connection pool
	pool, err := database.NewPool(ctx, cfg.Database, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer pool.Close()

	if cfg.Database.AutoMigrate {
		if err := database.EnsureSchema(ctx, pool); err != nil {
			return fmt.Errorf("failed to apply schema: %w", err)
		}
		logger.Info().Msg("database schema ensured")
	}

	// Initialize repositories
	vegetableRepo := repository.NewVegetableRepository(pool, logger)
	saleRepo := repository.NewSaleRepository(pool, logger)

	// Initialize services
	vegetableService := service.NewVegetableService(vegetableRepo, logger)
	saleService := service.NewSaleService(saleRepo, vegetableRepo, logger)

	if cfg.Catalog.SeedEnabled {
		if err := seedCatalog(ctx, cfg, vegetableService, logger); err != nil {
			return err
		}
	}

	// Initialize HTTP handlers
	vegetableHandler := handler.NewVegetableHandler(vegetableService, logger)
	saleHandler := handler.NewSaleHandler(saleService, logger)
	healthHandler := handler.NewHealthHandler(logger)

	// Initialize router
	mux := router.New(vegetableHandler, saleHandler, healthHandler, cfg.Auth.APIKey, logger)

	// Create HTTP server
	server := newServer(cfg.Server.Address(), mux)

	// Channel to listen for errors from the server
	serverErrors := make(chan error, 1)

	// Start HTTP server in a goroutine
	go func() {
		logger.Info().
			Str("address", cfg.Server.Address()).
			Msg("HTTP server started")
		serverErrors <- server.ListenAndServe()
	}()

	// Channel to listen for interrupt signals
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Block until we receive a signal or an error
	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)

	case sig := <-shutdown:
		logger.Info().
			Str("signal", sig.String()).
			Msg("shutdown signal received, starting graceful shutdown")

		// Create a context with timeout for shutdown
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		// Attempt graceful shutdown
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("failed to shutdown server gracefully")
			// Force close
			if closeErr := server.Close(); closeErr != nil {
				logger.Error().Err(closeErr).Msg("failed to close server")
			}
			return fmt.Errorf("server shutdown failed: %w", err)
		}

		logger.Info().Msg("server shutdown completed")
	}

	return nil
}

// newServer builds the HTTP server. The write timeout leaves room for the
// router's request timeout to answer with 504.
func newServer(addr string, h http.Handler) *http.Server {
	return &http.Server{
		Addr:         addr,
		Handler:      h,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: router.RequestTimeout + 5*time.Second,
		IdleTimeout:  60 * time.Second,
	}
}

// seedCatalog registers the configured catalogue files into an empty vegetable table.
func seedCatalog(ctx context.Context, cfg *config.Config, vegetables service.VegetableService, logger zerolog.Logger) error {
	fileLoader := catalog.NewFileLoader(logger)
	var s3Loader catalog.Loader

	if cfg.S3.Enabled {
		loader, err := catalog.NewS3Loader(ctx, cfg.S3.Bucket, cfg.S3.Region, logger)
		if err != nil {
			logger.Warn().
				Err(err).
				Msg("failed to initialise S3 loader, falling back to local file system only")
		} else {
			s3Loader = loader
		}
	} else {
		logger.Info().Msg("using local file system for catalogue files (S3 disabled)")
	}

	loader := catalog.NewFallbackLoader(s3Loader, fileLoader, cfg.S3.Prefix, cfg.S3.Enabled, logger)

	registered, err := catalog.NewSeeder(loader, vegetables, logger).Seed(ctx, cfg.Catalog.Files)
	if err != nil {
		return fmt.Errorf("failed to seed vegetable catalogue: %w", err)
	}

	logger.Info().Int("registered", registered).Msg("catalogue seeding finished")
	return nil
}
