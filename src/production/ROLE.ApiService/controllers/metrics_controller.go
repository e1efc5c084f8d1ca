package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	logger "gitlab.com/roleapp1/role.api_server/src/production/ROLE.Logger"
)

// MetricsController ingests client-side web-vitals beacons. The payload is
// logged for offline analysis; nothing here feeds application logic.
type MetricsController struct {
	logger *logger.Logger
}

// NewMetricsController creates a new metrics controller
func NewMetricsController(logger *logger.Logger) *MetricsController {
	return &MetricsController{logger: logger.WithComponent("web-vitals")}
}

// RegisterRoutes registers the metrics routes with Gin
func (c *MetricsController) RegisterRoutes(router *gin.Engine) {
	router.POST("/api/metrics/web-vitals", c.WebVitals)
}

// WebVitals accepts a beacon and acknowledges without a body
func (c *MetricsController) WebVitals(ctx *gin.Context) {
	var payload map[string]any
	if err := ctx.ShouldBindJSON(&payload); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}
	c.logger.WithFields(payload).Info("Web vitals beacon")
	ctx.Status(http.StatusNoContent)
}
