// Package main is the entry point for the Quotify API server.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"quotify/internal/core/security"
	"quotify/internal/domain/activity"
	"quotify/internal/domain/auth"
	"quotify/internal/domain/client"
	"quotify/internal/domain/dashboard"
	"quotify/internal/domain/item"
	"quotify/internal/domain/quotation"
	"quotify/internal/domain/report"
	v1 "quotify/internal/infrastructure/http/v1"
	"quotify/internal/infrastructure/storage/postgres"
	"quotify/internal/infrastructure/storage/postgres/activity_repo"
	"quotify/internal/infrastructure/storage/postgres/auth_repo"
	"quotify/internal/infrastructure/storage/postgres/client_repo"
	"quotify/internal/infrastructure/storage/postgres/dashboard_repo"
	"quotify/internal/infrastructure/storage/postgres/item_repo"
	"quotify/internal/infrastructure/storage/postgres/quotation_repo"
	"quotify/internal/infrastructure/storage/postgres/report_repo"
	"quotify/migrations"
	"quotify/pkg/logger"
	"quotify/pkg/sequence"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	log, err := logger.New(logger.Config{
		Level:       getEnv("LOG_LEVEL", "info"),
		Development: getEnv("APP_ENV", "development") == "development",
	})
	if err != nil {
		fmt.Printf("failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	log.Info("starting quotify server")

	// --- Database ---
	dsn := mustEnv("DATABASE_URL")

	if getEnv("MIGRATE_ON_START", "true") == "true" {
		if err := postgres.Migrate(dsn, migrations.FS, "."); err != nil {
			log.Fatalw("failed to run migrations", "error", err)
		}
		log.Info("migrations applied")
	}

	poolCfg := postgres.DefaultPoolConfig(dsn)
	if maxConns := getEnvInt("DB_MAX_CONNS", 0); maxConns > 0 {
		poolCfg.MaxConns = int32(maxConns)
	}

	pool, err := postgres.NewPool(ctx, poolCfg)
	if err != nil {
		log.Fatalw("failed to connect to database", "error", err)
	}
	defer pool.Close()
	log.Info("database connection established")

	txManager := postgres.NewTxManager(pool)

	codec, err := postgres.NewChangeCodec()
	if err != nil {
		log.Fatalw("failed to initialize change codec", "error", err)
	}

	// --- Shared services ---
	sequences := sequence.NewService(func(ctx context.Context) sequence.Querier {
		return txManager.GetQuerier(ctx)
	})
	policy := security.DefaultVisibilityPolicy()
	buckets := security.DefaultStatusBuckets()

	activityRepo := activity_repo.NewRepository(txManager, codec)
	audit := activity.NewLogger(activityRepo, log)
	activityService := activity.NewService(activityRepo)

	// --- Auth ---
	jwtSecret := mustEnv("JWT_SECRET")
	jwtService := auth.NewJWTService(auth.DefaultJWTConfig(jwtSecret))

	userRepo := auth_repo.NewUserRepository(txManager)
	tokenRepo := auth_repo.NewTokenRepository(txManager)
	authService := auth.NewService(userRepo, tokenRepo, txManager, jwtService, audit, auth.DefaultServiceConfig())

	// --- Domain services ---
	clientRepo := client_repo.NewRepository(txManager)
	clientService := client.NewService(clientRepo, txManager, sequences, audit, policy)

	itemRepo := item_repo.NewRepository(txManager)
	itemService := item.NewService(itemRepo, txManager, audit)

	quotationRepo := quotation_repo.NewRepository(txManager)
	quotationService := quotation.NewService(quotationRepo, txManager, sequences, audit, policy)

	dashboardRepo := dashboard_repo.NewRepository(txManager)
	dashboardService := dashboard.NewService(dashboardRepo, activityService, policy, buckets)

	reportRepo := report_repo.NewRepository(txManager)
	reportService := report.NewService(reportRepo, activityRepo)

	// --- Router ---
	router := v1.NewRouter(v1.RouterConfig{
		Pool:             pool,
		Logger:           log,
		JWTValidator:     jwtService,
		AuthService:      authService,
		ClientService:    clientService,
		ItemService:      itemService,
		QuotationService: quotationService,
		ActivityService:  activityService,
		DashboardService: dashboardService,
		ReportService:    reportService,
	})

	// --- HTTP Server ---
	port := getEnv("APP_PORT", "8080")
	server := &http.Server{
		Addr:         ":" + port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	statsTicker := time.NewTicker(5 * time.Minute)
	defer statsTicker.Stop()
	go func() {
		for range statsTicker.C {
			pool.LogStats(ctx)
		}
	}()

	go func() {
		log.Infow("server starting", "port", port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalw("server failed", "error", err)
		}
	}()

	// --- Graceful shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")

	// Give outstanding requests 30 seconds to complete
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalw("server forced to shutdown", "error", err)
	}

	log.Info("server stopped")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func mustEnv(key string) string {
	value := os.Getenv(key)
	if value == "" {
		fmt.Printf("required environment variable %s not set\n", key)
		os.Exit(1)
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		var result int
		if _, err := fmt.Sscanf(value, "%d", &result); err == nil {
			return result
		}
	}
	return defaultValue
}
