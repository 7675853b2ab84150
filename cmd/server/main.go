package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	orderapp "github.com/flx/storefront/internal/application/order"
	"github.com/flx/storefront/internal/domain/order"
	"github.com/flx/storefront/internal/domain/shared"
	"github.com/flx/storefront/internal/infrastructure/cache"
	"github.com/flx/storefront/internal/infrastructure/config"
	"github.com/flx/storefront/internal/infrastructure/event"
	"github.com/flx/storefront/internal/infrastructure/logger"
	"github.com/flx/storefront/internal/infrastructure/migration"
	"github.com/flx/storefront/internal/infrastructure/persistence"
	"github.com/flx/storefront/internal/infrastructure/telemetry"
	"github.com/flx/storefront/internal/interfaces/http/handler"
	"github.com/flx/storefront/internal/interfaces/http/middleware"
	"github.com/flx/storefront/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	_ "github.com/flx/storefront/docs"
)

// Version is set at build time with -ldflags "-X main.Version=..."
var Version = "dev"

//	@title			FLX Storefront API
//	@version		1.0
//	@description	Checkout and order lookup for the FLX storefront. Orders are numbered FLX-YYMMDD-NNNN per UTC day.

//	@contact.name	Storefront Team
//	@contact.email	storefront@flx.example.com

//	@host		localhost:8080
//	@BasePath	/api/v1

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	logCfg := &logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	}
	log, err := logger.New(logCfg)
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// traces, metrics and log export share one collector; log records are
	// teed to the normal output and the collector
	providers, err := telemetry.NewProviders(ctx, cfg.Telemetry, log)
	if err != nil {
		log.Fatal("Failed to initialize telemetry", zap.Error(err))
	}
	if providers.LogsEnabled() {
		if log, err = logger.New(logCfg, providers.ZapCore(logger.ParseLevel(cfg.Log.Level))); err != nil {
			panic("Failed to initialize logger: " + err.Error())
		}
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting FLX storefront",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
		zap.String("version", Version),
	)

	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level), 200*time.Millisecond)
	db, err := persistence.NewDatabase(&cfg.Database, persistence.WithLogger(gormLog))
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected", zap.String("driver", db.Driver))

	if cfg.Telemetry.DBTraceEnabled {
		dbTracingCfg := telemetry.DefaultDBTracingConfig()
		dbTracingCfg.Enabled = true
		dbTracingCfg.DBName = cfg.Database.DBName
		if err := telemetry.NewDBTracingPlugin(dbTracingCfg, log).RegisterOtelGorm(db.DB); err != nil {
			log.Warn("Database tracing disabled", zap.Error(err))
		}
	}

	if err := migrateSchema(db, log); err != nil {
		log.Fatal("Failed to migrate schema", zap.Error(err))
	}

	idempotencyStore, err := cache.NewIdempotencyStoreFactory(cfg.Idempotency, cfg.Redis,
		cache.WithLogger(log),
		cache.WithInMemoryFallback(cfg.App.Env != "production"),
	).CreateStore(ctx)
	if err != nil {
		log.Fatal("Failed to initialize idempotency store", zap.Error(err))
	}

	publisher, closePublisher, err := newEventPublisher(cfg.Event, log)
	if err != nil {
		log.Fatal("Failed to initialize event publisher", zap.Error(err))
	}
	defer closePublisher()

	allocationMetrics, err := telemetry.NewAllocationMetrics(telemetry.AllocationMetricsConfig{
		Meter:  providers.Meter("storefront.orders"),
		Logger: log,
	})
	if err != nil {
		log.Fatal("Failed to create allocation metrics", zap.Error(err))
	}

	orderRepo := persistence.NewGormOrderRepository(db.DB)
	allocator := order.NewNumberAllocator(orderRepo,
		order.WithMaxAttempts(cfg.OrderNumber.MaxAttempts),
		order.WithObserver(allocationMetrics),
	)
	checkoutService := orderapp.NewCheckoutService(orderRepo, allocator, log,
		orderapp.WithCheckoutRetries(cfg.OrderNumber.CheckoutRetries),
		orderapp.WithIdempotencyStore(idempotencyStore, cfg.Idempotency.TTL),
		orderapp.WithCheckoutRecorder(allocationMetrics),
	)
	checkoutService.SetEventPublisher(publisher)
	orderService := orderapp.NewOrderService(orderRepo, allocator, log)
	orderService.SetEventPublisher(publisher)

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	var checkoutLimiter *middleware.RateLimiter
	if cfg.HTTP.RateLimitEnabled {
		checkoutLimiter = middleware.NewRateLimiter(cfg.HTTP.RateLimitRPS, cfg.HTTP.RateLimitBurst)
		go checkoutLimiter.Run(ctx, time.Minute)
		log.Info("Checkout rate limiting enabled",
			zap.Float64("rps", cfg.HTTP.RateLimitRPS),
			zap.Int("burst", cfg.HTTP.RateLimitBurst),
		)
	}

	corsConfig := middleware.DefaultCORSConfig()
	corsConfig.AllowOrigins = cfg.HTTP.CORSAllowOrigins

	tracingConfig := middleware.DefaultTracingConfig()
	tracingConfig.ServiceName = cfg.Telemetry.ServiceName
	tracingConfig.Enabled = providers.TracingEnabled()

	engine := router.NewEngine(router.EngineConfig{
		APIVersion:      "v1",
		TrustedProxies:  cfg.HTTP.TrustedProxies,
		CORS:            corsConfig,
		Security:        middleware.DefaultSecurityConfig(),
		MaxBodySize:     cfg.HTTP.MaxBodySize,
		CheckoutLimiter: checkoutLimiter,
		Tracing:         tracingConfig,
		Telemetry:       providers,
		Swagger:         cfg.App.Env != "production",
		Logger:          log,
	}, router.Handlers{
		Orders: handler.NewOrderHandler(checkoutService, orderService),
		Health: handler.NewHealthHandler(cfg.App.Name, Version, db),
	})

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	<-ctx.Done()
	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}
	if closer, ok := idempotencyStore.(interface{ Close() error }); ok {
		_ = closer.Close()
	}
	if err := providers.Shutdown(shutdownCtx); err != nil {
		log.Warn("Telemetry shutdown failed", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}

// migrateSchema applies the embedded SQL migrations on postgres.
// sqlite is only used for local runs and gets its tables from the GORM models.
func migrateSchema(db *persistence.Database, log *zap.Logger) error {
	if db.Driver == "sqlite" {
		return db.AutoMigrate()
	}

	sqlDB, err := db.DB.DB()
	if err != nil {
		return err
	}
	m, err := migration.New(sqlDB, "", log)
	if err != nil {
		return err
	}
	// Close would also close sqlDB, which the repositories still need
	return m.Up()
}

// newEventPublisher returns the configured publisher and a function releasing it
func newEventPublisher(cfg config.EventConfig, log *zap.Logger) (shared.EventPublisher, func(), error) {
	switch cfg.Backend {
	case "amqp":
		publisher, err := event.DialAMQPPublisher(cfg.AMQPURL, cfg.Exchange, log)
		if err != nil {
			return nil, nil, err
		}
		return publisher, func() {
			if err := publisher.Close(); err != nil {
				log.Warn("Error closing AMQP publisher", zap.Error(err))
			}
		}, nil
	default:
		bus := event.NewInMemoryEventBus(log)
		bus.Subscribe(orderapp.NewActivityHandler(log))
		return bus, func() {}, nil
	}
}
