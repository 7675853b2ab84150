package router

import (
	"net/http"

	"github.com/flx/storefront/internal/infrastructure/logger"
	"github.com/flx/storefront/internal/infrastructure/telemetry"
	"github.com/flx/storefront/internal/interfaces/http/dto"
	"github.com/flx/storefront/internal/interfaces/http/handler"
	"github.com/flx/storefront/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
)

// EngineConfig controls the middleware stack of the storefront engine
type EngineConfig struct {
	APIVersion     string
	TrustedProxies []string
	CORS           middleware.CORSConfig
	Security       middleware.SecurityConfig
	MaxBodySize    int64
	// CheckoutLimiter throttles POST /orders per client IP; nil disables it.
	CheckoutLimiter *middleware.RateLimiter
	Tracing         middleware.TracingConfig
	Telemetry       *telemetry.Providers
	Swagger         bool
	Logger          *zap.Logger
}

// Handlers are the endpoint implementations mounted by NewEngine
type Handlers struct {
	Orders *handler.OrderHandler
	Health *handler.HealthHandler
}

// NewEngine builds the gin engine with the middleware stack applied in order:
//  1. RequestID
//  2. Logger
//  3. Recovery
//  4. Tracing
//  5. Metrics
//  6. Security headers
//  7. CORS
//  8. BodyLimit
func NewEngine(cfg EngineConfig, h Handlers) *gin.Engine {
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}

	middleware.SetupValidator()

	engine := gin.New()
	if len(cfg.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	engine.Use(middleware.RequestID())
	engine.Use(logger.GinMiddleware(log))
	engine.Use(logger.Recovery(log))
	engine.Use(middleware.Tracing(cfg.Tracing)...)
	engine.Use(middleware.HTTPMetrics(cfg.Telemetry, log))
	engine.Use(middleware.SecureWithConfig(cfg.Security))
	engine.Use(middleware.CORSWithConfig(cfg.CORS))
	if cfg.MaxBodySize > 0 {
		engine.Use(middleware.BodyLimit(cfg.MaxBodySize))
	}

	engine.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, dto.NewErrorResponseWithRequestID(
			dto.ErrCodeNotFound, "Route not found", middleware.GetRequestID(c)))
	})

	if h.Health != nil {
		engine.GET("/health", h.Health.Live)
		engine.GET("/health/ready", h.Health.Ready)
	}
	if cfg.Swagger {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	opts := []RouterOption{}
	if cfg.APIVersion != "" {
		opts = append(opts, WithAPIVersion(cfg.APIVersion))
	}
	r := NewRouter(engine, opts...)
	if h.Orders != nil {
		var checkoutLimit []gin.HandlerFunc
		if cfg.CheckoutLimiter != nil {
			checkoutLimit = append(checkoutLimit, middleware.RateLimit(cfg.CheckoutLimiter))
		}
		orders, numbers := OrderRoutes(h.Orders, checkoutLimit...)
		r.Register(orders).Register(numbers)
	}
	r.Setup()

	return engine
}

// OrderRoutes groups the order endpoints. Only checkout passes through
// the extra handlers, so browsing is never throttled.
func OrderRoutes(h *handler.OrderHandler, checkoutMiddleware ...gin.HandlerFunc) (*DomainGroup, *DomainGroup) {
	orders := NewDomainGroup("orders", "/orders")
	orders.POST("", append(checkoutMiddleware, h.PlaceOrder)...)
	orders.GET("", h.List)
	orders.GET("/:orderNumber", h.GetByNumber)
	orders.POST("/:orderNumber/status", h.UpdateStatus)
	orders.POST("/:orderNumber/cancel", h.Cancel)

	numbers := NewDomainGroup("order-numbers", "/order-numbers")
	numbers.GET("/next", h.PreviewNextNumber)

	return orders, numbers
}
