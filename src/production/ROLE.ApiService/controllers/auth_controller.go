package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gitlab.com/roleapp1/role.api_server/src/production/ROLE.ApiService/middleware"
)

// AuthController exposes the authenticated caller's identity
type AuthController struct {
	authMiddleware *middleware.AuthMiddleware
}

// NewAuthController creates a new auth controller
func NewAuthController(authMiddleware *middleware.AuthMiddleware) *AuthController {
	return &AuthController{authMiddleware: authMiddleware}
}

// RegisterRoutes registers the auth routes with Gin
func (c *AuthController) RegisterRoutes(router *gin.Engine) {
	group := router.Group("/api/auth")
	{
		group.GET("/me", c.authMiddleware.Authenticate(), c.Me)
	}
}

// Me returns the identity the gate resolved for this request
func (c *AuthController) Me(ctx *gin.Context) {
	uid, err := middleware.GetUserFromGinContext(ctx)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"uid": uid})
}
