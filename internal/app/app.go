package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/staypulse/pricingservice/internal/auth"
	"github.com/staypulse/pricingservice/internal/cache"
	"github.com/staypulse/pricingservice/internal/catalog"
	catalogpg "github.com/staypulse/pricingservice/internal/catalog/postgres"
	"github.com/staypulse/pricingservice/internal/config"
	"github.com/staypulse/pricingservice/internal/engine"
	"github.com/staypulse/pricingservice/internal/events"
	"github.com/staypulse/pricingservice/internal/log"
	"github.com/staypulse/pricingservice/internal/metrics"
	"github.com/staypulse/pricingservice/internal/server"
	"github.com/staypulse/pricingservice/internal/service"
	"github.com/staypulse/pricingservice/internal/tracing"
)

// App wires the pricing service and its infrastructure.
type App struct {
	config          *config.Config
	logger          *zap.Logger
	httpServer      *server.HTTPServer
	metricsServer   *metrics.Server
	store           *catalogpg.Store
	resultCache     *cache.Cache
	publisher       events.Publisher
	tracingShutdown func()
}

// New creates a new application instance
func New(cfg *config.Config) (*App, error) {
	if err := log.Init(cfg.Log.Level); err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	logger := log.L(context.Background())

	logger.Info("Initializing pricing service",
		zap.Int("http_port", cfg.Server.Port),
		zap.String("rules_file", cfg.Engine.RulesFile))

	rules, err := engine.LoadRules(cfg.Engine.RulesFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load engine rules: %w", err)
	}
	eng, err := engine.New(rules)
	if err != nil {
		return nil, fmt.Errorf("failed to construct engine: %w", err)
	}

	a := &App{config: cfg, logger: logger}

	if cfg.Tracing.Enabled {
		tcfg := tracing.DefaultConfig()
		tcfg.JaegerEndpoint = cfg.Tracing.JaegerEndpoint
		tcfg.SamplingRatio = cfg.Tracing.SamplingRatio
		tcfg.Environment = cfg.Tracing.Environment
		shutdown, err := tracing.Init(tcfg, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize tracing: %w", err)
		}
		a.tracingShutdown = shutdown
	}

	var (
		units     catalog.UnitRepository
		eventRepo catalog.EventRepository
	)
	if cfg.Postgres.Enabled {
		store, err := catalogpg.NewStore(context.Background(), cfg.Postgres.DSN, cfg.Postgres.MaxConns)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize catalog store: %w", err)
		}
		a.store = store
		units = store
		eventRepo = catalogpg.NewEventStore(store)
	} else {
		memory := catalog.NewMemoryStore()
		units = memory
		eventRepo = catalog.NewEventStore(memory)
		logger.Warn("Postgres disabled, serving from an empty in-memory catalog")
	}

	if cfg.Redis.Enabled {
		resultCache, err := cache.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, cfg.Redis.TTL)
		if err != nil {
			logger.Warn("Redis initialization failed, continuing without cache",
				zap.Error(err),
				zap.String("redis_addr", cfg.Redis.Addr))
		} else {
			a.resultCache = resultCache
		}
	}

	a.publisher = events.NopPublisher{}
	if cfg.Kafka.Enabled {
		publisher, err := events.NewKafkaPublisher(cfg.Kafka.Brokers, cfg.Kafka.Topic)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize Kafka publisher: %w", err)
		}
		a.publisher = publisher
	}

	var validator auth.Validator
	if cfg.Auth.Enabled {
		validator, err = auth.NewJWTValidator(cfg.Auth.Secret)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize auth validator: %w", err)
		}
	}

	pricing := service.NewPricingService(eng, units, eventRepo, a.resultCache, a.publisher)
	a.httpServer = server.NewHTTPServer(cfg, pricing, validator, logger)
	a.metricsServer = metrics.NewServer(cfg.Metrics.Addr)

	return a, nil
}

// Run starts the application and blocks until shutdown
func (a *App) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 2)
	go func() { errCh <- a.httpServer.Start(ctx) }()
	go func() { errCh <- a.metricsServer.Start(ctx) }()

	select {
	case <-ctx.Done():
		a.logger.Info("Shutdown signal received")
	case err := <-errCh:
		if err != nil {
			a.logger.Error("Server failed", zap.Error(err))
			return err
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.config.Server.ShutdownTimeout)
	defer cancel()
	return a.shutdown(shutdownCtx)
}

func (a *App) shutdown(ctx context.Context) error {
	if err := a.httpServer.Shutdown(ctx); err != nil {
		a.logger.Error("HTTP server shutdown failed", zap.Error(err))
	}
	if err := a.metricsServer.Shutdown(ctx); err != nil {
		a.logger.Error("Metrics server shutdown failed", zap.Error(err))
	}
	if a.resultCache != nil {
		if err := a.resultCache.Close(); err != nil {
			a.logger.Error("Cache close failed", zap.Error(err))
		}
	}
	if a.publisher != nil {
		if err := a.publisher.Close(); err != nil {
			a.logger.Error("Publisher close failed", zap.Error(err))
		}
	}
	if a.store != nil {
		_ = a.store.Close()
	}
	if a.tracingShutdown != nil {
		a.tracingShutdown()
	}
	a.logger.Info("Pricing service stopped")
	return nil
}
