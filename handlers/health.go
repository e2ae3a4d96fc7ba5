package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"prbal/models"
	"prbal/services/health"
)

type HealthHandler struct {
	Monitor *health.Monitor
}

func NewHealthHandler(monitor *health.Monitor) *HealthHandler {
	return &HealthHandler{Monitor: monitor}
}

// HealthStatusHandler handles GET /health. Degraded components return 503 so
// load balancers can act on the status code alone.
func (h *HealthHandler) HealthStatusHandler(c *gin.Context) {
	snapshot := h.Monitor.Snapshot()
	status := http.StatusOK
	if !snapshot.IsHealthy() {
		status = http.StatusServiceUnavailable
	}
	c.JSON(status, snapshot)
}

// DatabaseHealthHandler handles GET /health/db.
func (h *HealthHandler) DatabaseHealthHandler(c *gin.Context) {
	snapshot := h.Monitor.Snapshot()
	status := http.StatusOK
	if snapshot.Database.Status != models.HealthStatusHealthy {
		status = http.StatusServiceUnavailable
	}
	c.JSON(status, snapshot.Database.ToMap())
}

// ApplicationHealthHandler handles GET /health/app. Always 200; the body
// carries the component breakdown for dashboards.
func (h *HealthHandler) ApplicationHealthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, h.Monitor.Snapshot().ToMap())
}
