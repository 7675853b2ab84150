package router

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	orderapp "github.com/flx/storefront/internal/application/order"
	"github.com/flx/storefront/internal/domain/order"
	"github.com/flx/storefront/internal/infrastructure/config"
	"github.com/flx/storefront/internal/infrastructure/persistence"
	"github.com/flx/storefront/internal/interfaces/http/dto"
	"github.com/flx/storefront/internal/interfaces/http/handler"
	"github.com/flx/storefront/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestNewRouter(t *testing.T) {
	r := NewRouter(gin.New())
	assert.Equal(t, "/api/v1", r.BasePath())

	r = NewRouter(gin.New(), WithAPIVersion("v2"))
	assert.Equal(t, "/api/v2", r.BasePath())
}

func TestRouterSetup(t *testing.T) {
	engine := gin.New()
	var calls []string

	group := NewDomainGroup("test", "/test").
		Use(func(c *gin.Context) { calls = append(calls, "group"); c.Next() }).
		GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })

	NewRouter(engine).
		Use(func(c *gin.Context) { calls = append(calls, "api"); c.Next() }).
		Register(group).
		Setup()

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/test/ping", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "pong", w.Body.String())
	assert.Equal(t, []string{"api", "group"}, calls)
}

func TestDomainGroup(t *testing.T) {
	g := NewDomainGroup("orders", "/orders")
	assert.Equal(t, "orders", g.Name())
	assert.Equal(t, "/orders", g.Prefix())

	ok := func(c *gin.Context) { c.Status(http.StatusNoContent) }
	g.GET("", ok).POST("/:orderNumber/cancel", ok).Handle(http.MethodDelete, "/:orderNumber", ok)

	routes := g.Routes()
	require.Len(t, routes, 3)
	assert.Equal(t, http.MethodPost, routes[1].Method)
	assert.Equal(t, "/:orderNumber/cancel", routes[1].Path)

	engine := gin.New()
	g.RegisterRoutes(engine.Group("/api/v1"))
	for _, tc := range []struct{ method, path string }{
		{http.MethodGet, "/api/v1/orders"},
		{http.MethodPost, "/api/v1/orders/FLX-240615-0001/cancel"},
		{http.MethodDelete, "/api/v1/orders/FLX-240615-0001"},
	} {
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, httptest.NewRequest(tc.method, tc.path, nil))
		assert.Equal(t, http.StatusNoContent, w.Code, tc.method+" "+tc.path)
	}
}

func newTestEngine(t *testing.T, cfg EngineConfig) *gin.Engine {
	t.Helper()

	db, err := persistence.NewDatabase(&config.DatabaseConfig{Driver: "sqlite", Path: ":memory:"})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate())
	t.Cleanup(func() { _ = db.Close() })

	repo := persistence.NewGormOrderRepository(db.DB)
	day := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
	allocator := order.NewNumberAllocator(repo, order.WithClock(func() time.Time { return day }))

	return NewEngine(cfg, Handlers{
		Orders: handler.NewOrderHandler(
			orderapp.NewCheckoutService(repo, allocator, zap.NewNop()),
			orderapp.NewOrderService(repo, allocator, zap.NewNop()),
		),
		Health: handler.NewHealthHandler("flx-storefront", "test", db),
	})
}

const checkoutJSON = `{
	"customer_name": "Grace Hopper",
	"customer_email": "grace@example.com",
	"items": [{"product_id": "0d4c3a6e-8f51-4b0e-9b7a-2f4c1e6a9d10", "product_name": "Compiler Manual", "quantity": 1, "unit_price": "42.00"}]
}`

func TestNewEngine_CheckoutIsRateLimited(t *testing.T) {
	engine := newTestEngine(t, EngineConfig{
		CORS:            middleware.DefaultCORSConfig(),
		Security:        middleware.DefaultSecurityConfig(),
		MaxBodySize:     1 << 20,
		CheckoutLimiter: middleware.NewRateLimiter(0.001, 1),
	})

	post := func() *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/orders", strings.NewReader(checkoutJSON))
		req.Header.Set("Content-Type", "application/json")
		req.RemoteAddr = "203.0.113.7:5100"
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)
		return w
	}

	first := post()
	require.Equal(t, http.StatusCreated, first.Code, first.Body.String())
	assert.NotEmpty(t, first.Header().Get(middleware.RequestIDHeader))
	assert.Equal(t, "DENY", first.Header().Get("X-Frame-Options"))

	second := post()
	require.Equal(t, http.StatusTooManyRequests, second.Code)
	assert.NotEmpty(t, second.Header().Get("Retry-After"))

	// reads are not throttled
	for range 3 {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/v1/orders/FLX-240615-0001", nil)
		req.RemoteAddr = "203.0.113.7:5100"
		engine.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
	}
}

func TestNewEngine_BodyLimit(t *testing.T) {
	engine := newTestEngine(t, EngineConfig{MaxBodySize: 64})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/orders", strings.NewReader(checkoutJSON))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
}

func TestNewEngine_HealthAndUnknownRoutes(t *testing.T) {
	engine := newTestEngine(t, EngineConfig{})

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health/ready", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/carts", nil)
	req.Header.Set(middleware.RequestIDHeader, "req-lost")
	engine.ServeHTTP(w, req)
	require.Equal(t, http.StatusNotFound, w.Code)

	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotNil(t, resp.Error)
	assert.Equal(t, dto.ErrCodeNotFound, resp.Error.Code)
	assert.Equal(t, "req-lost", resp.Error.RequestID)

	// swagger is opt-in
	w = httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/swagger/index.html", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestNewEngine_PreviewNextNumber(t *testing.T) {
	engine := newTestEngine(t, EngineConfig{APIVersion: "v1"})

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/order-numbers/next", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"order_number":"FLX-240615-0001"`)
}
