package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/SscSPs/cherry_dining/cmd/docs"
	portssvc "github.com/SscSPs/cherry_dining/internal/core/ports/services"
	"github.com/SscSPs/cherry_dining/internal/middleware"
	"github.com/SscSPs/cherry_dining/internal/platform/config"
	"github.com/SscSPs/cherry_dining/internal/utils"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"
)

// RouteDeps are the collaborators of the HTTP layer that are not services.
type RouteDeps struct {
	Changes ChangeSubscriber
	Posthog *utils.PosthogClientWrapper
	// LoginLimiter throttles credential checks per client IP. When nil one is built
	// from cfg.LoginRateLimit.
	LoginLimiter *limiter.Limiter
	// Heartbeat is the idle interval of change streams.
	Heartbeat time.Duration
}

// NewLoginLimiter builds an in-memory per-IP limiter from a formatted rate such as "5-M".
func NewLoginLimiter(rate string) (*limiter.Limiter, error) {
	parsed, err := limiter.NewRateFromFormatted(rate)
	if err != nil {
		return nil, fmt.Errorf("invalid login rate limit %q: %w", rate, err)
	}
	return limiter.New(memory.NewStore(), parsed), nil
}

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	deps RouteDeps,
) error {
	if deps.LoginLimiter == nil {
		loginLimiter, err := NewLoginLimiter(cfg.LoginRateLimit)
		if err != nil {
			return err
		}
		deps.LoginLimiter = loginLimiter
	}
	if err := RegisterValidators(); err != nil {
		return err
	}

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	auth := newAuthHandler(services.AdminAuth, services.StaffAuth, deps.Posthog)
	registerAuthRoutes(r, auth, middleware.RateLimit(deps.LoginLimiter))

	setupAPIV1Routes(r, cfg, services, auth, deps)

	setupSwaggerRoutes(r, cfg)
	return nil
}

// setupAPIV1Routes configures the authenticated /api/v1 group and delegates to the
// entity route registrations.
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	auth *authHandler,
	deps RouteDeps,
) {
	v1 := r.Group("/api/v1", middleware.AuthMiddleware(cfg.JWTSecret), middleware.PosthogMiddleware(deps.Posthog))

	registerSessionRoutes(v1, auth)
	registerNavigationRoutes(v1, services.Navigation)
	registerStaffRoutes(v1, services.Staff)
	registerAdminRoutes(v1, newAdminHandler(services.Accounts, services.Staff, services.Migration))
	registerBarRoutes(v1, services.Bar, services.Assignment)
	registerCatalogRoutes(v1, services.Catalog)
	registerOrderRoutes(v1, services.Order)
	registerInventoryRoutes(v1, services.Inventory)
	registerTransferRoutes(v1, services.Transfer)
	registerReportingRoutes(v1, services.Reporting)
	if deps.Changes != nil {
		registerRealtimeRoutes(v1, newRealtimeHandler(deps.Changes, deps.Heartbeat))
	}
}

// setupSwaggerRoutes configures the swagger documentation routes
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = "/api/v1"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
