package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/manula2004/bagisto/internal/config"
	"github.com/manula2004/bagisto/internal/engine"
	dbengine "github.com/manula2004/bagisto/internal/engine/database"
	"github.com/manula2004/bagisto/internal/engine/elastic"
	"github.com/manula2004/bagisto/internal/event"
	handler "github.com/manula2004/bagisto/internal/handler/http"
	"github.com/manula2004/bagisto/internal/pricing"
	"github.com/manula2004/bagisto/internal/repository/postgres"
	"github.com/manula2004/bagisto/internal/service"
	"github.com/manula2004/bagisto/migrations"
	"github.com/manula2004/bagisto/pkg/database"
	"github.com/manula2004/bagisto/pkg/health"
	pkgkafka "github.com/manula2004/bagisto/pkg/kafka"
)

// App wires together all dependencies and runs the catalog service.
type App struct {
	cfg        *config.Config
	logger     *slog.Logger
	pool       *pgxpool.Pool
	consumers  []*pkgkafka.Consumer
	httpServer *http.Server
}

// NewApp creates a new application instance, initializing all dependencies.
func NewApp(cfg *config.Config, logger *slog.Logger) (*App, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Initialize PostgreSQL connection pool.
	pgCfg := database.DefaultPostgresConfig()
	pgCfg.Host = cfg.DBHost
	pgCfg.Port = cfg.DBPort
	pgCfg.User = cfg.DBUser
	pgCfg.Password = cfg.DBPassword
	pgCfg.DBName = cfg.DBName
	pgCfg.SSLMode = cfg.DBSSLMode

	pool, err := database.NewPostgresPoolWithLogger(ctx, &pgCfg, logger)
	if err != nil {
		return nil, fmt.Errorf("connect to postgres: %w", err)
	}
	logger.Info("connected to PostgreSQL",
		slog.String("host", cfg.DBHost),
		slog.Int("port", cfg.DBPort),
		slog.String("database", cfg.DBName),
	)
	database.RegisterPoolMetrics(pool, "catalog")

	// Run database migrations.
	if err := database.RunMigrations(ctx, pool, migrations.FS, logger); err != nil {
		pool.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	logger.Info("database migrations completed")

	// Price conversion for currency-facing filter bounds.
	rates, err := cfg.Rates()
	if err != nil {
		pool.Close()
		return nil, err
	}
	converter := pricing.NewConverter(cfg.BaseCurrency, rates)

	// Build the catalog query stack.
	attrRepo := postgres.NewAttributeRepository(pool)
	catalogRepo := postgres.NewCatalogRepository(pool, postgres.NewPlanBuilder(converter), attrRepo, cfg.DefaultSort, cfg.SnapshotReads)
	catalogService := service.NewCatalogService(catalogRepo, logger)

	// Initialize the search engine based on configuration.
	var (
		eng   engine.Engine
		esEng *elastic.Engine
	)
	switch cfg.SearchEngine {
	case config.EngineElastic:
		esEng, err = elastic.New(cfg.ElasticsearchURL, cfg.ElasticsearchIndex, cfg.SearchPageSize, logger)
		if err != nil {
			pool.Close()
			return nil, fmt.Errorf("init elasticsearch engine: %w", err)
		}
		eng = esEng
		logger.Info("elasticsearch search engine initialized",
			slog.String("url", cfg.ElasticsearchURL),
			slog.String("index", cfg.ElasticsearchIndex),
		)
	case config.EngineElasticBool:
		boolEng, err := elastic.NewBool(cfg.ElasticsearchURL, cfg.ElasticsearchIndex, cfg.SearchPageSize, logger)
		if err != nil {
			pool.Close()
			return nil, fmt.Errorf("init elasticsearch bool engine: %w", err)
		}
		esEng = boolEng.Engine
		eng = boolEng
		logger.Info("elasticsearch bool search engine initialized",
			slog.String("url", cfg.ElasticsearchURL),
			slog.String("index", cfg.ElasticsearchIndex),
		)
	default:
		eng = dbengine.New(pool, cfg.SearchPageSize)
		logger.Info("database search engine initialized")
	}

	searchService := service.NewSearchService(eng, logger)

	// Kafka consumers keep the external search index in step with the flat
	// projection. The database engine reads the projection directly and does
	// not maintain an index, so it runs without consumers.
	var consumers []*pkgkafka.Consumer
	if cfg.SearchEngine != config.EngineDatabase {
		eventConsumer := event.NewConsumer(searchService, logger)

		topics := []string{
			event.TopicProductIndexed,
			event.TopicProductRemoved,
		}

		for _, topic := range topics {
			consumerCfg := pkgkafka.ConsumerConfig{
				Brokers:  cfg.KafkaBrokers,
				GroupID:  cfg.KafkaConsumerGroup,
				Topic:    topic,
				MinBytes: 1,
				MaxBytes: 10e6, // 10 MB
			}
			c := pkgkafka.NewConsumer(consumerCfg, eventConsumer.Handle, logger)
			consumers = append(consumers, c)
		}
		logger.Info("kafka consumers initialized",
			slog.Any("brokers", cfg.KafkaBrokers),
			slog.Int("topic_count", len(topics)),
		)
	}

	// Health checks.
	healthHandler := health.NewHandler()
	healthHandler.Register("postgres", func(ctx context.Context) error {
		return pool.Ping(ctx)
	})
	if esEng != nil {
		healthHandler.Register("elasticsearch", esEng.Ping)
	}
	if len(consumers) > 0 {
		healthHandler.Register("kafka", func(ctx context.Context) error {
			return pkgkafka.PingBrokers(ctx, cfg.KafkaBrokers)
		})
	}

	// HTTP router.
	router := handler.NewRouter(catalogService, searchService, cfg.PageSizes, cfg.StoreDefaults(), healthHandler, logger)

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
		consumers:  consumers,
		httpServer: httpServer,
	}, nil
}

// Run starts the HTTP server and Kafka consumers, blocking until the context is canceled.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1+len(a.consumers))

	// Start Kafka consumers in background goroutines.
	for _, c := range a.consumers {
		go func() {
			if err := c.Start(ctx); err != nil {
				errCh <- fmt.Errorf("kafka consumer: %w", err)
			}
		}()
	}

	// Start HTTP server.
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

	// Close Kafka consumers.
	for _, c := range a.consumers {
		if err := c.Close(); err != nil {
			a.logger.Error("kafka consumer close error", slog.String("error", err.Error()))
			errs = append(errs, err)
		}
	}

	a.pool.Close()

	a.logger.Info("application shutdown complete")
	return errors.Join(errs...)
}
