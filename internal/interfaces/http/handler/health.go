package handler

import (
	"net/http"
	"runtime"
	"time"

	"github.com/flx/storefront/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
)

// Pinger reports whether a dependency is reachable
type Pinger interface {
	Ping() error
}

// HealthHandler serves liveness and readiness probes
type HealthHandler struct {
	BaseHandler
	name      string
	version   string
	db        Pinger
	startTime time.Time
}

// NewHealthHandler creates a new HealthHandler
func NewHealthHandler(name, version string, db Pinger) *HealthHandler {
	return &HealthHandler{
		name:      name,
		version:   version,
		db:        db,
		startTime: time.Now(),
	}
}

// HealthResponse represents the health probe response
// @name HandlerHealthResponse
type HealthResponse struct {
	Status    string            `json:"status" example:"ok"`
	Name      string            `json:"name" example:"flx-storefront"`
	Version   string            `json:"version" example:"1.0.0"`
	GoVersion string            `json:"go_version" example:"go1.25.5"`
	Uptime    string            `json:"uptime" example:"1h30m45s"`
	Checks    map[string]string `json:"checks,omitempty"`
}

// Live godoc
// @ID           healthLive
// @Summary      Liveness probe
// @Tags         health
// @Produce      json
// @Success      200 {object} APIResponse[HealthResponse]
// @Router       /health [get]
func (h *HealthHandler) Live(c *gin.Context) {
	h.Success(c, h.snapshot("ok", nil))
}

// Ready godoc
// @ID           healthReady
// @Summary      Readiness probe
// @Description  Reports 503 while the order store cannot be reached; checkout would fail with STORE_UNAVAILABLE.
// @Tags         health
// @Produce      json
// @Success      200 {object} APIResponse[HealthResponse]
// @Failure      503 {object} APIResponse[HealthResponse]
// @Router       /health/ready [get]
func (h *HealthHandler) Ready(c *gin.Context) {
	checks := map[string]string{"database": "ok"}
	if h.db == nil {
		checks["database"] = "not configured"
	} else if err := h.db.Ping(); err != nil {
		checks["database"] = err.Error()
		c.JSON(http.StatusServiceUnavailable, dto.Response{
			Success: false,
			Data:    h.snapshot("unavailable", checks),
			Error: &dto.ErrorInfo{
				Code:      dto.ErrCodeStoreUnavailable,
				Message:   "Order store is unreachable",
				RequestID: getRequestID(c),
			},
		})
		return
	}
	h.Success(c, h.snapshot("ok", checks))
}

func (h *HealthHandler) snapshot(status string, checks map[string]string) HealthResponse {
	return HealthResponse{
		Status:    status,
		Name:      h.name,
		Version:   h.version,
		GoVersion: runtime.Version(),
		Uptime:    time.Since(h.startTime).Round(time.Second).String(),
		Checks:    checks,
	}
}
