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

	"github.com/SscSPs/transaction_service/internal/adapters/amqp"
	"github.com/SscSPs/transaction_service/internal/core/ports"
	portsrepo "github.com/SscSPs/transaction_service/internal/core/ports/repositories"
	"github.com/SscSPs/transaction_service/internal/core/services"
	"github.com/SscSPs/transaction_service/internal/handlers"
	"github.com/SscSPs/transaction_service/internal/middleware"
	"github.com/SscSPs/transaction_service/internal/platform/config"
	"github.com/SscSPs/transaction_service/internal/repositories/database/pgsql"
	"github.com/SscSPs/transaction_service/internal/repositories/database/sqlite"
	"github.com/SscSPs/transaction_service/internal/repositories/memory"
	"github.com/SscSPs/transaction_service/pkg/database"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/sync/errgroup"
)

// @title Transaction Service API
// @version 1.0
// @description Stores financial transactions and serves filtered views, description search and aggregate statistics.

// @host localhost:8080
// @BasePath /api/v1
func main() {
	if err := run(); err != nil {
		slog.Error("Server exited with error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)

	if err := handlers.RegisterValidations(); err != nil {
		return fmt.Errorf("failed to register validators: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	repos, cleanup, err := openStorage(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer cleanup()

	publisher, closePublisher := openPublisher(cfg, logger)
	defer closePublisher()

	serviceContainer := services.NewServiceContainer(repos, publisher, nil)

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	httpMetrics := middleware.NewHTTPMetrics("transaction_service", registry)

	r := gin.New()

	// Global middleware (logging, recovery, CORS, metrics)
	r.Use(
		middleware.StructuredLoggingMiddleware(logger),
		gin.Recovery(),
		cors.New(cors.Config{
			AllowOrigins:     cfg.CORSAllowedOrigins,
			AllowMethods:     []string{http.MethodGet, http.MethodHead, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", middleware.RequestIDHeader},
			ExposeHeaders:    []string{middleware.RequestIDHeader},
			AllowCredentials: false,
			MaxAge:           12 * time.Hour,
		}),
		httpMetrics.Middleware(),
	)

	if cfg.RateLimit != "" {
		rateLimiter, err := middleware.NewLimiter(cfg.RateLimit)
		if err != nil {
			return err
		}
		r.Use(middleware.RateLimit(rateLimiter))
	}

	if err := r.SetTrustedProxies(nil); err != nil {
		return fmt.Errorf("failed to set trusted proxies: %w", err)
	}

	handlers.RegisterRoutes(r, cfg, serviceContainer, registry)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("Server starting", slog.String("port", cfg.Port), slog.String("storage", cfg.StorageDriver))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed to run: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Shutting down server", slog.Duration("timeout", cfg.ShutdownTimeout))
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

// openStorage runs migrations for the configured driver and returns its repositories.
// The returned cleanup releases the underlying store.
func openStorage(ctx context.Context, cfg *config.Config, logger *slog.Logger) (portsrepo.RepositoryProvider, func(), error) {
	switch cfg.StorageDriver {
	case config.StorageDriverPostgres:
		if err := database.RunPostgresMigrations(cfg.DatabaseURL, logger); err != nil {
			return portsrepo.RepositoryProvider{}, nil, err
		}
		dbPool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, cfg.EnableDBCheck)
		if err != nil {
			return portsrepo.RepositoryProvider{}, nil, fmt.Errorf("failed to initialize database pool: %w", err)
		}
		return pgsql.NewRepositoryProvider(dbPool), func() { database.ClosePgxPool(dbPool) }, nil

	case config.StorageDriverSQLite:
		if err := database.RunSQLiteMigrations(cfg.SQLitePath, logger); err != nil {
			return portsrepo.RepositoryProvider{}, nil, err
		}
		db, err := database.OpenSQLite(ctx, cfg.SQLitePath)
		if err != nil {
			return portsrepo.RepositoryProvider{}, nil, err
		}
		repos := sqlite.NewRepositoryProvider(db)
		return repos, closeWith(repos, logger), nil

	case config.StorageDriverMemory:
		repo := memory.NewTransactionRepository()
		logger.Warn("Using in-memory storage; data is lost on restart")
		repos := portsrepo.RepositoryProvider{TransactionRepo: repo, Closer: repo}
		return repos, closeWith(repos, logger), nil
	}
	return portsrepo.RepositoryProvider{}, nil, fmt.Errorf("unsupported storage driver %q", cfg.StorageDriver)
}

func closeWith(repos portsrepo.RepositoryProvider, logger *slog.Logger) func() {
	return func() {
		if repos.Closer == nil {
			return
		}
		if err := repos.Closer.Close(); err != nil {
			logger.Error("Error closing storage", slog.String("error", err.Error()))
		}
	}
}

// openPublisher connects to the broker when AMQP_URL is set. A broker that cannot be
// reached is logged and replaced with a no-op publisher so the API still serves.
func openPublisher(cfg *config.Config, logger *slog.Logger) (ports.EventPublisher, func()) {
	if cfg.AMQPURL == "" {
		return ports.NoopPublisher{}, func() {}
	}
	publisher, err := amqp.NewPublisher(cfg.AMQPURL, cfg.AMQPExchange)
	if err != nil {
		logger.Error("Event publishing disabled", slog.String("error", err.Error()))
		return ports.NoopPublisher{}, func() {}
	}
	logger.Info("Publishing transaction events", slog.String("exchange", cfg.AMQPExchange))
	return publisher, func() {
		if err := publisher.Close(); err != nil {
			logger.Error("Error closing AMQP publisher", slog.String("error", err.Error()))
		}
	}
}
