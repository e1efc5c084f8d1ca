package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	logger "gitlab.com/roleapp1/role.api_server/src/production/ROLE.Logger"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// HealthController reports process liveness and store reachability
type HealthController struct {
	client *mongo.Client
	logger *logger.Logger
}

// NewHealthController creates a new health controller
func NewHealthController(client *mongo.Client, logger *logger.Logger) *HealthController {
	return &HealthController{client: client, logger: logger}
}

// RegisterRoutes registers the health routes with Gin
func (c *HealthController) RegisterRoutes(router *gin.Engine) {
	router.GET("/health", c.Health)
}

// Health pings the document store with a short deadline
func (c *HealthController) Health(ctx *gin.Context) {
	pingCtx, cancel := context.WithTimeout(ctx.Request.Context(), 2*time.Second)
	defer cancel()

	if err := c.client.Ping(pingCtx, readpref.Primary()); err != nil {
		c.logger.WarnWithError(err, "Health check: mongo ping failed")
		ctx.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "mongo": "down"})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"status": "ok", "mongo": "up"})
}
