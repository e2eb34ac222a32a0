package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/SscSPs/cherry_dining/internal/core/services"
	"github.com/SscSPs/cherry_dining/internal/handlers"
	"github.com/SscSPs/cherry_dining/internal/middleware"
	"github.com/SscSPs/cherry_dining/internal/platform/config"
	"github.com/SscSPs/cherry_dining/internal/platform/database"
	"github.com/SscSPs/cherry_dining/internal/platform/menu"
	"github.com/SscSPs/cherry_dining/internal/realtime"
	"github.com/SscSPs/cherry_dining/internal/repositories/database/legacymysql"
	"github.com/SscSPs/cherry_dining/internal/repositories/database/pgsql"
	"github.com/SscSPs/cherry_dining/internal/utils"
	"github.com/gin-gonic/gin"
)

const (
	changeBufferSize = 64
	shutdownTimeout  = 10 * time.Second
)

// @title Cherry Dining POS API
// @version 1.0
// @description Backend of the Cherry Dining point of sale: orders, inventory, bar transfers and staff administration.

// @host localhost:8080
// @BasePath /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @security BearerAuth
func main() {
	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dbPool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, cfg.EnableDBCheck, logger)
	if err != nil {
		logger.Error("Failed to initialize database pool", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer dbPool.Close()
	logger.Info("Database connection pool established.")

	if err := database.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath, logger); err != nil {
		logger.Error("Database migration failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	navMenu, err := menu.Load()
	if err != nil {
		logger.Error("Failed to load navigation menu", slog.String("error", err.Error()))
		os.Exit(1)
	}

	posthogClient := utils.InitializePosthogClient(cfg.PosthogAPIKey, logger)
	defer posthogClient.Close()

	repos := pgsql.NewRepositoryProvider(dbPool)
	serviceContainer := services.NewServiceContainer(cfg, repos, navMenu, legacymysql.Open)

	hub := realtime.NewHub(changeBufferSize, logger)
	go pgsql.NewChangeListener(dbPool, hub, logger).Run(ctx)

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware (logging, recovery, cors)
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery(), middleware.CORS(cfg.FrontendBaseURL))

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	err = handlers.RegisterRoutes(r, cfg, serviceContainer, handlers.RouteDeps{
		Changes: hub,
		Posthog: posthogClient,
	})
	if err != nil {
		logger.Error("Failed to register routes", slog.String("error", err.Error()))
		os.Exit(1)
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("Server shutdown failed", slog.String("error", err.Error()))
		}
	}()

	logger.Info("Server starting", slog.String("port", cfg.Port))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("Server failed to run", slog.String("error", err.Error()))
		os.Exit(1)
	}
	logger.Info("Server stopped")
}
