package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/utafrali/product-catalog/internal/config"
	"github.com/utafrali/product-catalog/internal/event"
	handler "github.com/utafrali/product-catalog/internal/handler/http"
	"github.com/utafrali/product-catalog/internal/repository/postgres"
	"github.com/utafrali/product-catalog/internal/search"
	"github.com/utafrali/product-catalog/internal/search/elastic"
	"github.com/utafrali/product-catalog/internal/search/memory"
	"github.com/utafrali/product-catalog/internal/service"
	"github.com/utafrali/product-catalog/pkg/database"
	"github.com/utafrali/product-catalog/pkg/health"
)

// App wires together all dependencies and runs the catalog service.
type App struct {
	cfg        *config.Config
	logger     *slog.Logger
	pool       *pgxpool.Pool
	producer   *event.Producer
	httpServer *http.Server
}

// NewApp creates a new application instance, initializing all dependencies.
func NewApp(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	pool, err := database.NewPostgresPool(ctx, cfg.Postgres(), logger)
	if err != nil {
		return nil, fmt.Errorf("init postgres pool: %w", err)
	}

	repo := postgres.NewProductRepository(pool)

	// Initialize the search gateway based on configuration. The
	// Elasticsearch gateway gets a circuit breaker on its query path so a
	// struggling cluster degrades searches instead of piling up timeouts.
	var index search.Gateway
	var esGateway *elastic.Gateway
	switch cfg.SearchBackend {
	case "elasticsearch":
		esGateway, err = elastic.New(cfg.ElasticsearchURL, cfg.ElasticsearchIndex, cfg.SearchTimeout, logger)
		if err != nil {
			pool.Close()
			return nil, fmt.Errorf("init elasticsearch gateway: %w", err)
		}
		index = search.NewBreakerGateway(esGateway, search.DefaultBreakerConfig(), logger)
		logger.Info("elasticsearch search gateway initialized",
			slog.String("url", cfg.ElasticsearchURL),
			slog.String("index", cfg.ElasticsearchIndex),
		)
	default:
		index = memory.New()
		logger.Info("in-memory search gateway initialized")
	}

	producer := event.NewProducer(cfg.KafkaBrokers, logger)

	catalogService := service.NewCatalogService(repo, index, producer, cfg.StoreTimeout, logger)

	// Health checks.
	healthHandler := health.NewHandler()
	healthHandler.Register("postgres", pool.Ping)
	if esGateway != nil {
		healthHandler.RegisterOptional("elasticsearch", esGateway.Ping)
	}

	router := handler.NewRouter(catalogService, healthHandler, logger)

	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return &App{
		cfg:        cfg,
		logger:     logger,
		pool:       pool,
		producer:   producer,
		httpServer: httpServer,
	}, nil
}

// Run starts the HTTP server, blocking until the context is canceled.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		a.logger.Info("starting HTTP server",
			slog.String("addr", a.httpServer.Addr),
		)
		if err := a.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("shutdown signal received")
	case err := <-errCh:
		return err
	}

	return a.Shutdown()
}

// Shutdown gracefully stops all components.
func (a *App) Shutdown() error {
	a.logger.Info("shutting down application...")

	var errs []error

	// Graceful HTTP server shutdown with a 10-second deadline.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := a.httpServer.Shutdown(shutdownCtx); err != nil {
		a.logger.Error("http server shutdown error", slog.String("error", err.Error()))
		errs = append(errs, err)
	}

	if err := a.producer.Close(); err != nil {
		a.logger.Error("kafka producer close error", slog.String("error", err.Error()))
		errs = append(errs, err)
	}

	a.pool.Close()

	a.logger.Info("application shutdown complete")
	return errors.Join(errs...)
}
