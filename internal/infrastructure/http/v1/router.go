// Package v1 provides HTTP API version 1.
package v1

import (
	"github.com/gin-gonic/gin"

	"quotify/internal/domain/activity"
	"quotify/internal/domain/auth"
	"quotify/internal/domain/client"
	"quotify/internal/domain/dashboard"
	"quotify/internal/domain/item"
	"quotify/internal/domain/quotation"
	"quotify/internal/domain/report"
	"quotify/internal/infrastructure/http/v1/handlers"
	"quotify/internal/infrastructure/http/v1/middleware"
	"quotify/internal/infrastructure/storage/postgres"
	"quotify/pkg/logger"
)

// RouterConfig holds router dependencies.
type RouterConfig struct {
	// Pool is the database connection (for health checks).
	Pool *postgres.Pool

	// Logger for request logging.
	Logger *logger.Logger

	// JWTValidator for token validation.
	JWTValidator middleware.JWTValidator

	AuthService      *auth.Service
	ClientService    *client.Service
	ItemService      *item.Service
	QuotationService *quotation.Service
	ActivityService  *activity.Service
	DashboardService *dashboard.Service
	ReportService    *report.Service
}

// NewRouter creates and configures the Gin router.
func NewRouter(cfg RouterConfig) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Global middleware (order matters!)
	router.Use(middleware.Recovery())
	router.Use(middleware.Trace())
	router.Use(middleware.Logger(cfg.Logger))
	router.Use(middleware.ErrorHandler())

	// Health endpoints (no auth required)
	healthHandler := handlers.NewHealthHandler(cfg.Pool)
	health := router.Group("/health")
	{
		health.GET("/live", healthHandler.Live)
		health.GET("/ready", healthHandler.Ready)
		health.GET("/info", healthHandler.Info)
	}

	base := handlers.NewBaseHandler()

	// API v1
	v1 := router.Group("/api/v1")
	{
		// Auth endpoints: login/register/refresh are public, the rest
		// require a valid token.
		publicAuth := v1.Group("/auth")
		protectedAuth := v1.Group("/auth")
		protectedAuth.Use(middleware.Auth(cfg.JWTValidator))
		handlers.NewAuthHandler(base, cfg.AuthService).RegisterRoutes(publicAuth, protectedAuth)

		// Everything else requires a valid token.
		protected := v1.Group("")
		protected.Use(middleware.Auth(cfg.JWTValidator))

		handlers.NewClientHandler(base, cfg.ClientService).RegisterRoutes(protected)
		handlers.NewItemHandler(base, cfg.ItemService).RegisterRoutes(protected)
		handlers.NewQuotationHandler(base, cfg.QuotationService).RegisterRoutes(protected)
		handlers.NewActivityHandler(base, cfg.ActivityService).RegisterRoutes(protected)
		handlers.NewDashboardHandler(base, cfg.DashboardService).RegisterRoutes(protected)
		handlers.NewReportHandler(base, cfg.ReportService).RegisterRoutes(protected)
		handlers.NewUserHandler(base, cfg.AuthService).RegisterRoutes(protected)
	}

	return router
}
