package handler

import (
	"net/http"
	"runtime"
	"time"

	"github.com/bizerp/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// DatabasePinger reports database connectivity
type DatabasePinger interface {
	Ping() error
}

// SystemHandler handles system API endpoints
type SystemHandler struct {
	BaseHandler
	startTime time.Time
	db        DatabasePinger
	redis     *redis.Client
}

// NewSystemHandler creates a new SystemHandler. db and redis may be nil
// in tests; the health endpoint reports them as skipped.
func NewSystemHandler(db DatabasePinger, redisClient *redis.Client) *SystemHandler {
	return &SystemHandler{
		startTime: time.Now(),
		db:        db,
		redis:     redisClient,
	}
}

// SystemInfoResponse represents the system information response
type SystemInfoResponse struct {
	Name      string `json:"name" example:"ERP Payments API"`
	Version   string `json:"version" example:"1.0.0"`
	GoVersion string `json:"go_version" example:"go1.25.5"`
	Uptime    string `json:"uptime" example:"1h30m45s"`
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status     string            `json:"status" example:"healthy"`
	Components map[string]string `json:"components"`
}

// GetSystemInfo godoc
// @Summary      Get system information
// @Tags         system
// @Produce      json
// @Success      200 {object} dto.Response{data=SystemInfoResponse}
// @Router       /system/info [get]
func (h *SystemHandler) GetSystemInfo(c *gin.Context) {
	info := SystemInfoResponse{
		Name:      "ERP Payments API",
		Version:   "1.0.0",
		GoVersion: runtime.Version(),
		Uptime:    time.Since(h.startTime).Round(time.Second).String(),
	}
	h.Success(c, info)
}

// Health godoc
// @Summary      Health check
// @Description  Reports connectivity of the database and cache
// @Tags         system
// @Produce      json
// @Success      200 {object} dto.Response{data=HealthResponse}
// @Failure      503 {object} dto.Response{data=HealthResponse}
// @Router       /system/health [get]
func (h *SystemHandler) Health(c *gin.Context) {
	resp := HealthResponse{
		Status:     "healthy",
		Components: make(map[string]string),
	}

	if h.db != nil {
		if err := h.db.Ping(); err != nil {
			resp.Status = "unhealthy"
			resp.Components["database"] = "down"
		} else {
			resp.Components["database"] = "up"
		}
	} else {
		resp.Components["database"] = "skipped"
	}

	if h.redis != nil {
		if err := h.redis.Ping(c.Request.Context()).Err(); err != nil {
			// cache loss degrades tax rate lookups but does not stop
			// payment posting
			resp.Components["cache"] = "down"
		} else {
			resp.Components["cache"] = "up"
		}
	} else {
		resp.Components["cache"] = "skipped"
	}

	status := http.StatusOK
	if resp.Status != "healthy" {
		status = http.StatusServiceUnavailable
	}
	c.JSON(status, dto.NewSuccessResponse(resp))
}

// RegisterRoutes registers system routes
func (h *SystemHandler) RegisterRoutes(rg *gin.RouterGroup) {
	system := rg.Group("/system")
	{
		system.GET("/info", h.GetSystemInfo)
		system.GET("/health", h.Health)
	}
}
