// Package dependency provides dependency injection for the application.
package dependency

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/redis/go-redis/v9"
	"github.com/rs/cors"

	"github.com/gestao-consultoria/backend/config"
	"github.com/gestao-consultoria/backend/internal/application/usecase/admin"
	"github.com/gestao-consultoria/backend/internal/application/usecase/installment"
	"github.com/gestao-consultoria/backend/internal/application/usecase/invoice"
	"github.com/gestao-consultoria/backend/internal/infra/cache"
	"github.com/gestao-consultoria/backend/internal/infra/db"
	"github.com/gestao-consultoria/backend/internal/infra/server/router"
	"github.com/gestao-consultoria/backend/internal/integration/adapters"
	"github.com/gestao-consultoria/backend/internal/integration/entrypoint/controller"
	"github.com/gestao-consultoria/backend/internal/integration/entrypoint/middleware"
	"github.com/gestao-consultoria/backend/internal/integration/metrics"
	"github.com/gestao-consultoria/backend/internal/integration/persistence"
)

const adminRateLimitScope = "delete-user"

// Injector holds all application dependencies.
type Injector struct {
	Config  *config.Config
	DB      *db.Database
	Metrics *metrics.Recorder
	Router  *router.Router
	Handler http.Handler
}

// NewInjector creates a new dependency injector with all dependencies wired.
// A nil redisClient selects the in-process rate limiter.
func NewInjector(cfg *config.Config, database *db.Database, redisClient redis.UniversalClient) (*Injector, error) {
	// Create repositories
	profileRepo := persistence.NewProfileRepository(database.DB())
	invoiceRepo := persistence.NewInvoiceRepository(database.DB())
	extraRepo := persistence.NewInstallmentExtraRepository(database.DB())

	// Create adapters/services
	identity, err := adapters.NewIdentityService(adapters.SupabaseConfig{
		URL:            cfg.Supabase.URL,
		AnonKey:        cfg.Supabase.AnonKey,
		ServiceRoleKey: cfg.Supabase.ServiceRoleKey,
		JWTSecret:      cfg.Supabase.JWTSecret,
		Timeout:        cfg.Supabase.Timeout,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create identity service: %w", err)
	}
	recorder := metrics.NewRecorder()

	// Create use cases
	deleteUserUseCase := admin.NewDeleteUserUseCase(identity, profileRepo, recorder)
	listInvoicesUseCase := invoice.NewListInvoicesUseCase(invoiceRepo)
	createInvoiceUseCase := invoice.NewCreateInvoiceUseCase(invoiceRepo)
	listInstallmentsUseCase := installment.NewListInstallmentsUseCase(invoiceRepo, extraRepo, recorder)
	updateInstallmentUseCase := installment.NewUpdateInstallmentUseCase(extraRepo)

	// Create controllers
	var cacheCheck controller.HealthChecker
	var limiterStore middleware.LimiterStore
	if redisClient != nil {
		cacheCheck = cache.HealthCheck(redisClient)
		limiterStore = middleware.NewRedisLimiterStore(redisClient, cfg.RateLimit.MaxRequests, cfg.RateLimit.Window)
	} else {
		slog.Warn("Redis not configured, rate limiting is per instance")
		limiterStore = middleware.NewMemoryLimiterStore(cfg.RateLimit.MaxRequests, cfg.RateLimit.Window)
	}

	healthController := controller.NewHealthController(database.HealthCheck, cacheCheck)
	adminController := controller.NewAdminController(deleteUserUseCase)
	invoiceController := controller.NewInvoiceController(listInvoicesUseCase, createInvoiceUseCase)
	installmentController := controller.NewInstallmentController(listInstallmentsUseCase, updateInstallmentUseCase)

	// Create middleware
	adminRateLimiter := middleware.NewRateLimiter(adminRateLimitScope, limiterStore)
	authMiddleware := middleware.NewAuthMiddleware(identity, profileRepo)

	// Create router
	r := router.NewRouter(
		healthController,
		adminController,
		invoiceController,
		installmentController,
		adminRateLimiter,
		authMiddleware,
		recorder,
	)
	engine := r.Setup(cfg.Server.Environment)

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   cfg.CORS.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodOptions},
		AllowedHeaders:   []string{"Authorization", "Content-Type", "apikey", "x-client-info"},
		AllowCredentials: true,
		MaxAge:           600,
	})

	return &Injector{
		Config:  cfg,
		DB:      database,
		Metrics: recorder,
		Router:  r,
		Handler: corsHandler.Handler(engine),
	}, nil
}
