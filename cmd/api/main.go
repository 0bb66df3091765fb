package main

import (
	"context"
	"go-jobtracker-backend/config"
	_ "go-jobtracker-backend/docs" // Important for Swagger
	v1 "go-jobtracker-backend/internal/delivery/http/v1"
	"go-jobtracker-backend/internal/extract"
	"go-jobtracker-backend/internal/repository/postgres"
	"go-jobtracker-backend/internal/usecase"
	"go-jobtracker-backend/pkg/auth"
	"go-jobtracker-backend/pkg/database"
	"go-jobtracker-backend/pkg/logger"
	"go-jobtracker-backend/pkg/redis"
	"go-jobtracker-backend/pkg/security"
	"go-jobtracker-backend/pkg/validation"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
)

// @title           Job Application Tracker API
// @version         1.0
// @description     Backend for a job application tracker. The grid-facing endpoints keep a per-user server-side collection in sync with Postgres and return row-level deltas.
// @host            localhost:8080
// @BasePath        /v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 2. Setup Loggers
	logger.Init()
	logger.Log.Info("Starting job tracker backend", "port", cfg.Port)

	auditLogger := security.InitAuditLogger("jobtracker-api", os.Getenv("APP_ENV"))
	defer auditLogger.Sync()

	// 3. Setup Database
	dbPool, err := database.NewPostgresConnection(cfg.DBUrl)
	if err != nil {
		logger.Log.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer dbPool.Close()

	// 4. Setup Redis (rate limiting; in-memory fallback when absent)
	if err := redis.Initialize(redis.Config{URL: cfg.UpstashRedisURL, Password: cfg.UpstashRedisPassword}); err != nil {
		logger.Log.Warn("Redis unavailable, using in-memory rate limiting", "error", err)
	}
	defer redis.Close()

	// 5. Setup Repository and Sessions
	recordRepo := postgres.NewRecordRepository(dbPool)
	sessions := v1.NewSessionStore(recordRepo)

	// 6. Setup UseCases
	validate := validator.New()
	validation.RegisterValidators(validate)
	extractor := usecase.NewExtractUsecase(extract.NewScraper(), validate)
	exportUC := usecase.NewExportUsecase()

	// 7. Setup Auth Provider (JWKS)
	jwksURL := cfg.SupabaseUrl + "/auth/v1/.well-known/jwks.json"
	jwksProvider := auth.NewProvider(jwksURL)

	// 8. Setup Router
	router := v1.NewRouter(v1.RouterDeps{
		Sessions:     sessions,
		Extractor:    extractor,
		ExportUC:     exportUC,
		JWKSProvider: jwksProvider,
		Config:       cfg,
	})

	// 9. Start Server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Error("Listen failed", "error", err)
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Error("Server forced to shutdown", "error", err)
	}

	logger.Log.Info("Server exiting")
}
