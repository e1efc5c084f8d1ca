package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"gitlab.com/roleapp1/role.api_server/src/production/ROLE.ApiService/implementation/roles"
	"gitlab.com/roleapp1/role.api_server/src/production/ROLE.ApiService/middleware"
	logger "gitlab.com/roleapp1/role.api_server/src/production/ROLE.Logger"
	api_models "gitlab.com/roleapp1/role.api_server/src/production/ROLE.Models/api"
)

// RoleController handles role CRUD requests
type RoleController struct {
	service        *roles.Service
	logger         *logger.Logger
	authMiddleware *middleware.AuthMiddleware
}

// NewRoleController creates a new role controller
func NewRoleController(service *roles.Service, logger *logger.Logger, authMiddleware *middleware.AuthMiddleware) *RoleController {
	return &RoleController{
		service:        service,
		logger:         logger,
		authMiddleware: authMiddleware,
	}
}

// RegisterRoutes registers the role routes with Gin
func (c *RoleController) RegisterRoutes(router *gin.Engine) {
	group := router.Group("/api/roles")
	{
		group.GET("", c.List)
		group.GET("/mine", c.authMiddleware.Authenticate(), c.ListMine)
		group.GET("/:id", c.GetByID)
		group.POST("", c.authMiddleware.Authenticate(), c.Create)
		group.PUT("/:id", c.authMiddleware.Authenticate(), c.Update)
		group.DELETE("/:id", c.authMiddleware.Authenticate(), c.Delete)
	}
}

// List handles the public role listing with optional filters
func (c *RoleController) List(ctx *gin.Context) {
	params := parseListParams(ctx)

	items, err := c.service.List(ctx.Request.Context(), params)
	if err != nil {
		c.handleError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, items)
}

// ListMine lists the authenticated caller's roles
func (c *RoleController) ListMine(ctx *gin.Context) {
	uid, err := middleware.GetUserFromGinContext(ctx)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
		return
	}

	params := parseListParams(ctx)
	params.AuthorID = uid

	items, err := c.service.List(ctx.Request.Context(), params)
	if err != nil {
		c.handleError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, items)
}

// GetByID handles the public role detail
func (c *RoleController) GetByID(ctx *gin.Context) {
	item, err := c.service.GetByID(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		c.handleError(ctx, err)
		return
	}
	if item == nil {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "Role not found"})
		return
	}
	ctx.JSON(http.StatusOK, item)
}

// Create handles authenticated role creation
func (c *RoleController) Create(ctx *gin.Context) {
	var req api_models.RoleCreateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		validationError(ctx, err)
		return
	}

	uid, err := middleware.GetUserFromGinContext(ctx)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
		return
	}

	created, err := c.service.Create(ctx.Request.Context(), uid, req.ToDocument())
	if err != nil {
		c.handleError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, created)
}

// Update handles authenticated owner-only role update
func (c *RoleController) Update(ctx *gin.Context) {
	var req api_models.RoleUpdateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		validationError(ctx, err)
		return
	}

	uid, err := middleware.GetUserFromGinContext(ctx)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
		return
	}

	updated, err := c.service.Update(ctx.Request.Context(), uid, ctx.Param("id"), req.ToDocument())
	if err != nil {
		c.handleError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, updated)
}

// Delete handles authenticated owner-only role removal
func (c *RoleController) Delete(ctx *gin.Context) {
	uid, err := middleware.GetUserFromGinContext(ctx)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
		return
	}

	if err := c.service.Delete(ctx.Request.Context(), uid, ctx.Param("id")); err != nil {
		c.handleError(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}

// handleError translates service failures to the wire exactly once.
func (c *RoleController) handleError(ctx *gin.Context, err error) {
	if apiErr, ok := api_models.AsError(err); ok {
		ctx.JSON(apiErr.Status, gin.H{"error": apiErr.Message, "code": apiErr.Code})
		return
	}
	c.logger.ErrorWithError(err, "Role operation failed")
	ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}

// parseListParams reads the recognized filter/sort/pagination query
// parameters. Invalid numbers and timestamps are ignored rather than
// rejected, matching the permissive public listing contract.
func parseListParams(ctx *gin.Context) roles.ListParams {
	params := roles.ListParams{
		State:    ctx.Query("state"),
		City:     ctx.Query("city"),
		Status:   ctx.Query("status"),
		OrderBy:  "startTime",
		Order:    ctx.DefaultQuery("order", "desc"),
		CursorID: ctx.Query("cursorId"),
	}
	if limit, err := strconv.Atoi(ctx.Query("limit")); err == nil {
		params.Limit = limit
	}
	if page, err := strconv.Atoi(ctx.Query("page")); err == nil {
		params.Page = page
	}
	if t, err := time.Parse(time.RFC3339, ctx.Query("startFrom")); err == nil {
		params.StartFrom = &t
	}
	if t, err := time.Parse(time.RFC3339, ctx.Query("startTo")); err == nil {
		params.StartTo = &t
	}
	if t, err := time.Parse(time.RFC3339, ctx.Query("cursorStartTime")); err == nil {
		params.CursorStartTime = &t
	}
	return params
}

// validationError reports schema validation failures with field-level
// details, distinct from domain errors.
func validationError(ctx *gin.Context, err error) {
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) {
		details := make([]gin.H, 0, len(fieldErrs))
		for _, fe := range fieldErrs {
			detail := gin.H{"field": fe.Field(), "rule": fe.Tag()}
			if fe.Param() != "" {
				detail["param"] = fe.Param()
			}
			details = append(details, detail)
		}
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "ValidationError", "details": details})
		return
	}
	ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}
