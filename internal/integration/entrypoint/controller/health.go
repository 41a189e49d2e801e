// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// HealthChecker reports whether a dependency is reachable.
type HealthChecker func(ctx context.Context) bool

// HealthController handles health check endpoints.
type HealthController struct {
	database HealthChecker
	cache    HealthChecker // nil when Redis is not configured
}

// HealthResponse represents the health check response.
type HealthResponse struct {
	Status    string `json:"status"`
	Database  string `json:"database"`
	Cache     string `json:"cache"`
	Timestamp string `json:"timestamp"`
}

// NewHealthController creates a new health controller instance.
func NewHealthController(database, cache HealthChecker) *HealthController {
	return &HealthController{
		database: database,
		cache:    cache,
	}
}

// Check handles GET /health requests.
// The status is "degraded" when the database is unreachable.
func (h *HealthController) Check(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	response := HealthResponse{
		Status:    "ok",
		Database:  "disconnected",
		Cache:     "disabled",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}

	if h.database != nil && h.database(ctx) {
		response.Database = "connected"
	} else {
		response.Status = "degraded"
	}

	if h.cache != nil {
		response.Cache = "disconnected"
		if h.cache(ctx) {
			response.Cache = "connected"
		}
	}

	c.JSON(http.StatusOK, response)
}
