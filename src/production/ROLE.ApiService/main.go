package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gitlab.com/roleapp1/role.api_server/src/production/ROLE.ApiService/controllers"
	audit "gitlab.com/roleapp1/role.api_server/src/production/ROLE.ApiService/implementation/audit"
	auth "gitlab.com/roleapp1/role.api_server/src/production/ROLE.ApiService/implementation/auth"
	jwt "gitlab.com/roleapp1/role.api_server/src/production/ROLE.ApiService/implementation/jwt"
	"gitlab.com/roleapp1/role.api_server/src/production/ROLE.ApiService/implementation/roles"
	authMiddleware "gitlab.com/roleapp1/role.api_server/src/production/ROLE.ApiService/middleware"
	"gitlab.com/roleapp1/role.api_server/src/production/ROLE.ApiService/validation"
	container "gitlab.com/roleapp1/role.api_server/src/production/ROLE.Container"
	implementation "gitlab.com/roleapp1/role.api_server/src/production/ROLE.Repository/Implementation"
)

func main() {
	// Initialize dependency injection container
	ctr, err := container.NewContainer()
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize container: %v", err))
	}
	defer ctr.Shutdown(context.Background())

	logger := ctr.GetLogger()
	logger.Info("Starting Role API Service")

	// Connect to the document store
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db, err := ctr.GetDatabase(ctx)
	if err != nil {
		logger.FatalWithError(err, "Failed to connect to document store")
	}
	mongoClient, err := ctr.GetMongoClient(ctx)
	if err != nil {
		logger.FatalWithError(err, "Failed to get MongoDB client")
	}

	// Get configuration
	config := ctr.GetConfig()

	// Build the store adapter and domain services
	store := implementation.NewMongoStore(db)
	auditLogger := audit.NewLogger(store, config.Mongo.AuditCollection, logger)
	roleService := roles.NewService(store, auditLogger, config.Mongo.RolesCollection)

	// Identity provider and authentication gate
	verifier := jwt.NewService(jwt.Config{
		SecretKey: config.Auth.JWTSecretKey,
		Issuer:    config.Auth.JWTIssuer,
	})
	gate := auth.NewGate(verifier)
	authMiddlewareInstance := authMiddleware.NewAuthMiddleware(gate)

	// Register custom validation rules before routes bind payloads
	if err := validation.Register(); err != nil {
		logger.FatalWithError(err, "Failed to register validation rules")
	}

	// Initialize Gin router
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(authMiddleware.RequestID())

	// Configure CORS from config
	corsConfig := cors.Config{
		AllowOrigins:     config.CORS.AllowedOrigins,
		AllowMethods:     config.CORS.AllowedMethods,
		AllowHeaders:     config.CORS.AllowedHeaders,
		ExposeHeaders:    config.CORS.ExposedHeaders,
		AllowCredentials: config.CORS.AllowCredentials,
		MaxAge:           time.Duration(config.CORS.MaxAge) * time.Second,
	}
	router.Use(cors.New(corsConfig))

	// Create controllers and register routes
	roleController := controllers.NewRoleController(roleService, logger, authMiddlewareInstance)
	authController := controllers.NewAuthController(authMiddlewareInstance)
	healthController := controllers.NewHealthController(mongoClient, logger)
	metricsController := controllers.NewMetricsController(logger)

	roleController.RegisterRoutes(router)
	authController.RegisterRoutes(router)
	healthController.RegisterRoutes(router)
	metricsController.RegisterRoutes(router)

	// JSON fallback for unknown routes
	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	})

	// Get port from configuration
	port := config.Server.Port

	// Create HTTP server with timeouts
	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      router,
		ReadTimeout:  config.Server.ReadTimeout,
		WriteTimeout: config.Server.WriteTimeout,
		IdleTimeout:  config.Server.IdleTimeout,
	}

	// Start HTTP server in a goroutine
	go func() {
		logger.Info("HTTP server starting on port " + port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.FatalWithError(err, "Failed to start HTTP server")
		}
	}()

	logger.Info("Role API service running... press Ctrl+C to stop")

	// Wait for shutdown signal
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig

	logger.Info("Shutting down...")

	// Graceful shutdown
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.ErrorWithError(err, "Server forced to shutdown")
	}
}
