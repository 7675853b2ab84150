package logger

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func newTestRouter(log *zap.Logger) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("request_id", "req-42")
		c.Next()
	})
	r.Use(GinMiddleware(log))
	return r
}

func TestGinMiddleware_LevelsByStatus(t *testing.T) {
	tests := []struct {
		status int
		level  zapcore.Level
	}{
		{http.StatusCreated, zapcore.InfoLevel},
		{http.StatusConflict, zapcore.WarnLevel},
		{http.StatusServiceUnavailable, zapcore.ErrorLevel},
	}

	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			core, recorded := observer.New(zapcore.DebugLevel)
			r := newTestRouter(zap.New(core))
			r.POST("/api/v1/orders", func(c *gin.Context) { c.Status(tt.status) })

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/api/v1/orders?x=1", nil)
			r.ServeHTTP(w, req)

			entries := recorded.FilterMessage("HTTP Request").All()
			require.Len(t, entries, 1)
			assert.Equal(t, tt.level, entries[0].Level)

			fields := entries[0].ContextMap()
			assert.Equal(t, "req-42", fields["request_id"])
			assert.Equal(t, int64(tt.status), fields["status"])
			assert.Equal(t, "/api/v1/orders", fields["route"])
			assert.Equal(t, "x=1", fields["query"])
		})
	}
}

func TestGinMiddleware_PropagatesLoggerToRequestContext(t *testing.T) {
	core, recorded := observer.New(zapcore.DebugLevel)
	r := newTestRouter(zap.New(core))
	r.GET("/ping", func(c *gin.Context) {
		assert.Equal(t, "req-42", GetRequestID(c.Request.Context()))
		L(c.Request.Context()).Info("from service")
		GetGinLogger(c).Debug("from handler")
		c.Status(http.StatusOK)
	})

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/ping", nil))

	svc := recorded.FilterMessage("from service").All()
	require.Len(t, svc, 1)
	assert.Equal(t, "req-42", svc[0].ContextMap()["request_id"])
	assert.Equal(t, 1, recorded.FilterMessage("from handler").Len())
}

func TestRecovery(t *testing.T) {
	gin.SetMode(gin.TestMode)
	core, recorded := observer.New(zapcore.ErrorLevel)

	r := gin.New()
	r.Use(Recovery(zap.New(core)))
	r.GET("/boom", func(c *gin.Context) { panic("kaboom") })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, 1, recorded.FilterMessage("Panic recovered").Len())
}

func TestGetGinLogger_NotSet(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	assert.NotNil(t, GetGinLogger(c))
}
