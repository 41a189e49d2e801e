// Package router sets up the HTTP routing for the application.
package router

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gestao-consultoria/backend/internal/integration/entrypoint/controller"
	"github.com/gestao-consultoria/backend/internal/integration/entrypoint/dto"
	"github.com/gestao-consultoria/backend/internal/integration/entrypoint/middleware"
	"github.com/gestao-consultoria/backend/internal/integration/metrics"
)

// Router holds the Gin engine and controller dependencies.
type Router struct {
	engine                *gin.Engine
	healthController      *controller.HealthController
	adminController       *controller.AdminController
	invoiceController     *controller.InvoiceController
	installmentController *controller.InstallmentController
	adminRateLimiter      *middleware.RateLimiter
	authMiddleware        *middleware.AuthMiddleware
	metrics               *metrics.Recorder
}

// NewRouter creates a new router instance with all dependencies.
func NewRouter(
	healthController *controller.HealthController,
	adminController *controller.AdminController,
	invoiceController *controller.InvoiceController,
	installmentController *controller.InstallmentController,
	adminRateLimiter *middleware.RateLimiter,
	authMiddleware *middleware.AuthMiddleware,
	recorder *metrics.Recorder,
) *Router {
	return &Router{
		healthController:      healthController,
		adminController:       adminController,
		invoiceController:     invoiceController,
		installmentController: installmentController,
		adminRateLimiter:      adminRateLimiter,
		authMiddleware:        authMiddleware,
		metrics:               recorder,
	}
}

// Setup configures and returns the Gin engine with all routes.
func (r *Router) Setup(environment string) *gin.Engine {
	switch environment {
	case "production":
		gin.SetMode(gin.ReleaseMode)
	case "test":
		gin.SetMode(gin.TestMode)
	}

	r.engine = gin.New()
	r.engine.HandleMethodNotAllowed = true
	r.engine.Use(gin.Logger(), gin.CustomRecovery(recoverPanic))
	if r.metrics != nil {
		r.engine.Use(r.metrics.Middleware())
	}

	r.engine.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, dto.ErrorResponse{Error: "Método não permitido"})
	})

	r.setupHealthRoutes()
	r.setupAdminRoutes()
	r.setupAPIRoutes()

	return r.engine
}

func recoverPanic(c *gin.Context, recovered any) {
	slog.Error("panic recovered", "path", c.Request.URL.Path, "panic", recovered)
	c.AbortWithStatusJSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "Internal server error"})
}

// setupHealthRoutes configures health check and metrics endpoints.
func (r *Router) setupHealthRoutes() {
	r.engine.GET("/health", r.healthController.Check)
	if r.metrics != nil {
		r.engine.GET("/metrics", gin.WrapH(r.metrics.Handler()))
	}
}

// setupAdminRoutes configures the admin endpoint, which authenticates on its own.
func (r *Router) setupAdminRoutes() {
	if r.adminController == nil {
		return
	}

	handlers := []gin.HandlerFunc{}
	if r.adminRateLimiter != nil {
		handlers = append(handlers, r.adminRateLimiter.Middleware())
	}
	handlers = append(handlers, r.adminController.DeleteUser)

	r.engine.POST("/api/delete-user", handlers...)
}

// setupAPIRoutes configures the role-gated back-office routes.
func (r *Router) setupAPIRoutes() {
	if r.authMiddleware == nil {
		return
	}

	v1 := r.engine.Group("/api/v1")
	v1.Use(r.authMiddleware.Authenticate())
	{
		if r.invoiceController != nil {
			invoices := v1.Group("/invoices")
			{
				invoices.GET("", r.authMiddleware.RequireRead(), r.invoiceController.List)
				invoices.POST("", r.authMiddleware.RequireWrite(), r.invoiceController.Create)
			}
		}

		if r.installmentController != nil {
			installments := v1.Group("/installments")
			{
				installments.GET("", r.authMiddleware.RequireRead(), r.installmentController.List)
				installments.PATCH("/:key", r.authMiddleware.RequireWrite(), r.installmentController.Update)
			}
		}
	}
}
