package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	"github.com/horizonte/storefront/internal/config"
	"github.com/horizonte/storefront/internal/event"
	handler "github.com/horizonte/storefront/internal/handler/http"
	"github.com/horizonte/storefront/internal/notify"
	"github.com/horizonte/storefront/internal/repository"
	"github.com/horizonte/storefront/internal/repository/memory"
	redisrepo "github.com/horizonte/storefront/internal/repository/redis"
	"github.com/horizonte/storefront/internal/seed"
	"github.com/horizonte/storefront/internal/service"
	"github.com/horizonte/storefront/pkg/database"
	"github.com/horizonte/storefront/pkg/health"
	"github.com/horizonte/storefront/pkg/httpclient"
	pkgkafka "github.com/horizonte/storefront/pkg/kafka"
	"github.com/horizonte/storefront/pkg/middleware"
	"github.com/horizonte/storefront/pkg/tracing"
)

// App wires together all dependencies and runs the storefront server.
type App struct {
	cfg            *config.Config
	logger         *slog.Logger
	rdb            *redis.Client      // nil with the memory cart store
	producer       *pkgkafka.Producer // nil when Kafka is disabled
	httpServer     *http.Server
	tracerShutdown func(context.Context) error
}

// NewApp creates a new application instance, initializing all dependencies.
func NewApp(cfg *config.Config, logger *slog.Logger) (*App, error) {
	// Prices travel as JSON numbers on the API, in events and in stored carts,
	// matching what the storefront client sends.
	decimal.MarshalJSONWithoutQuotes = true

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Initialize OpenTelemetry tracing.
	tracerShutdown, err := tracing.InitTracer(ctx, tracing.Config{
		ServiceName:    "storefront",
		ServiceVersion: "0.1.0",
		Environment:    cfg.Environment,
		OTLPEndpoint:   cfg.OTELEndpoint,
		SampleRate:     cfg.OTELSampleRate,
		Enabled:        cfg.OTELEnabled,
	})
	if err != nil {
		return nil, fmt.Errorf("init tracer: %w", err)
	}

	a := &App{
		cfg:            cfg,
		logger:         logger,
		tracerShutdown: tracerShutdown,
	}
	router, err := a.build(ctx)
	if err != nil {
		a.closeBackends()
		_ = tracerShutdown(context.Background())
		return nil, err
	}

	a.httpServer = &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           router,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      45 * time.Second,
		IdleTimeout:       60 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return a, nil
}

// build assembles the dependency graph and returns the HTTP router.
func (a *App) build(ctx context.Context) (http.Handler, error) {
	cfg, logger := a.cfg, a.logger
	healthHandler := health.NewHandler()

	// Catalog: embedded sample data unless a file is configured.
	catalog := memory.NewCatalogRepository()
	if err := loadCatalog(ctx, catalog, cfg.CatalogFile); err != nil {
		return nil, err
	}
	logger.Info("catalog loaded", slog.String("source", catalogSource(cfg.CatalogFile)))

	// Cart store.
	var carts repository.CartRepository
	switch cfg.CartBackend {
	case config.CartBackendRedis:
		rdb, err := database.NewRedisClient(ctx, database.RedisConfig{
			Addr:        cfg.RedisAddr,
			Password:    cfg.RedisPass,
			DB:          cfg.RedisDB,
			DialTimeout: 5 * time.Second,
		})
		if err != nil {
			return nil, fmt.Errorf("connect to redis: %w", err)
		}
		a.rdb = rdb
		logger.Info("connected to Redis",
			slog.String("addr", cfg.RedisAddr),
			slog.Int("db", cfg.RedisDB),
		)
		carts = redisrepo.NewCartRepository(rdb, cfg.CartTTL())
		healthHandler.RegisterCritical("redis", func(ctx context.Context) error {
			return database.Ping(ctx, rdb)
		})
	default:
		carts = memory.NewCartRepository()
		logger.Info("using in-memory cart store")
	}

	// Events.
	var events event.Publisher = event.Nop{}
	if cfg.KafkaEnabled {
		producer := pkgkafka.NewProducer(pkgkafka.DefaultProducerConfig(cfg.KafkaBrokers), logger)
		a.producer = producer
		events = event.NewProducer(producer, logger)
		healthHandler.RegisterNonCritical("kafka", producer.Ping)
		logger.Info("kafka producer initialized", slog.Any("brokers", cfg.KafkaBrokers))
	}

	// Order handoff.
	var notifier notify.Notifier = notify.NewLogNotifier(logger)
	if cfg.NotifyWebhookURL != "" {
		cbClient := httpclient.NewCircuitBreakerClient(
			httpclient.New(httpclient.DefaultConfig()),
			httpclient.DefaultCircuitBreakerConfig("order-webhook"),
			logger,
		)
		notifier = notify.NewWebhookNotifier(cbClient, cfg.NotifyWebhookURL, cfg.WhatsAppNumber, logger)
		logger.Info("order webhook enabled")
	}

	if cfg.AdminToken == "" {
		logger.Warn("ADMIN_TOKEN is empty; catalog management routes are open")
	}

	store := service.StoreInfo{Name: cfg.StoreName, WhatsAppNumber: cfg.WhatsAppNumber}
	svcs := handler.Services{
		Catalog:  service.NewCatalogService(catalog, events, logger),
		Cart:     service.NewCartService(carts, catalog, events, logger),
		Checkout: service.NewCheckoutService(carts, notifier, events, store, logger),
	}

	cors := middleware.DefaultCORSConfig()
	cors.AllowedOrigins = cfg.CORSAllowedOrigins
	cors.Environment = cfg.Environment

	return handler.NewRouter(svcs, healthHandler, logger, handler.Options{
		CORS:          cors,
		PprofCIDRs:    cfg.PprofAllowedCIDRs,
		AdminToken:    cfg.AdminToken,
		CatalogMaxAge: cfg.CatalogCacheSeconds,
		WriteRPS:      cfg.WriteRateLimit,
		WriteBurst:    cfg.WriteRateBurst,
	}), nil
}

func loadCatalog(ctx context.Context, repo repository.CatalogRepository, path string) error {
	var (
		cat *seed.Catalog
		err error
	)
	if path == "" {
		cat, err = seed.Default()
	} else {
		cat, err = seed.LoadFile(path)
	}
	if err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}
	if err := seed.Apply(ctx, repo, cat); err != nil {
		return fmt.Errorf("apply catalog: %w", err)
	}
	return nil
}

func catalogSource(path string) string {
	if path == "" {
		return "embedded"
	}
	return path
}

// Handler returns the root HTTP handler.
func (a *App) Handler() http.Handler {
	return a.httpServer.Handler
}

// Run starts the HTTP server and blocks until the context is canceled.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		a.logger.Info("starting HTTP server",
			slog.String("addr", a.httpServer.Addr),
		)
		if err := a.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
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

// Shutdown gracefully stops all components in order: HTTP server, tracer,
// then the Kafka producer and Redis client.
func (a *App) Shutdown() error {
	a.logger.Info("shutting down application...")

	var errs []error

	httpCtx, httpCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer httpCancel()
	if err := a.httpServer.Shutdown(httpCtx); err != nil {
		a.logger.Error("http server shutdown error", slog.String("error", err.Error()))
		errs = append(errs, err)
	}

	// Flush spans after the drain so in-flight request spans are captured.
	if a.tracerShutdown != nil {
		tracerCtx, tracerCancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer tracerCancel()
		if err := a.tracerShutdown(tracerCtx); err != nil {
			a.logger.Error("tracer shutdown error", slog.String("error", err.Error()))
			errs = append(errs, err)
		}
	}

	errs = append(errs, a.closeBackends()...)

	a.logger.Info("application shutdown complete")
	return errors.Join(errs...)
}

func (a *App) closeBackends() []error {
	var errs []error
	if a.producer != nil {
		if err := a.producer.Close(); err != nil {
			a.logger.Error("kafka producer close error", slog.String("error", err.Error()))
			errs = append(errs, err)
		}
	}
	if a.rdb != nil {
		if err := a.rdb.Close(); err != nil {
			a.logger.Error("redis close error", slog.String("error", err.Error()))
			errs = append(errs, err)
		}
	}
	return errs
}
