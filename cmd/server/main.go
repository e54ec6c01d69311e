package main

import (
	"context"
	"database/sql"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"

	httpapi "fleettrack-backend/internal/api/http"
	"fleettrack-backend/internal/config"
	"fleettrack-backend/internal/jobs"
	"fleettrack-backend/internal/logger"
	"fleettrack-backend/internal/repository/postgres"
	"fleettrack-backend/internal/scheduler"
	"fleettrack-backend/internal/security"
	"fleettrack-backend/internal/service"
	"fleettrack-backend/internal/storage"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting FleetTrack Backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "address", cfg.GetServerAddress())
	logger.Info("Database configuration", "host", cfg.Database.Host, "port", cfg.Database.Port, "database", cfg.Database.Database, "user", cfg.Database.User)

	// Initialize Database
	db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Test database connection
	if err := db.Ping(); err != nil {
		logger.Error("Failed to ping database", "error", err)
		log.Fatalf("Failed to ping database: %v", err)
	}
	logger.Info("Database connection established")

	// Initialize Repositories
	store := postgres.NewStore(db)

	// Initialize Security
	tokenManager := security.NewTokenManager(cfg.JWT.Secret, cfg.AccessTokenTTL())

	// Initialize Photo Storage
	blobStore, err := storage.NewLocalStore(cfg.Storage.UploadDir)
	if err != nil {
		logger.Error("Failed to initialize photo storage", "error", err)
		log.Fatalf("Failed to initialize photo storage: %v", err)
	}
	logger.Info("Photo storage ready", "upload_dir", cfg.Storage.UploadDir)

	loc := cfg.ReportLocation()

	// Initialize Services
	authSvc := service.NewAuthService(store.UserRepository, tokenManager)
	checkoutSvc := service.NewCheckoutService(store.CheckoutRepository, store.TripRepository, store.VehicleRepository, time.Now)
	photoSvc := service.NewPhotoService(
		store.PhotoRepository,
		store.CheckoutRepository,
		store.UserRepository,
		blobStore,
		service.PhotoConfig{
			MaxFileSizeMB:  int(cfg.Storage.MaxFileSizeMB),
			MaxPerCheckout: int(cfg.Storage.MaxPerCheckout),
			RetentionDays:  cfg.Storage.RetentionDays,
		},
		time.Now,
	)
	reportSvc := service.NewReportService(
		store.ReportRepository,
		store.VehicleRepository,
		store.UserRepository,
		store.CheckoutRepository,
		store.TripRepository,
		loc,
		time.Now,
	)
	adminSvc := service.NewAdminService(store.UserRepository, store.VehicleRepository, store.CheckoutRepository, loc, time.Now)

	// Initialize HTTP API
	router := httpapi.NewRouter(httpapi.RouterConfig{
		Auth:        authSvc,
		Checkouts:   checkoutSvc,
		Photos:      photoSvc,
		Reports:     reportSvc,
		Admin:       adminSvc,
		Tokens:      tokenManager,
		MaxUploadMB: int(cfg.Storage.MaxFileSizeMB),
	})

	// Initialize Scheduler
	jobRunner := jobs.NewJobRunner(&jobs.Services{Photo: photoSvc}, cfg)
	sched := scheduler.NewScheduler(jobRunner)
	sched.Start()
	defer sched.Stop()

	server := &http.Server{
		Addr:         cfg.GetServerAddress(),
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
	}

	go func() {
		logger.Info("HTTP server listening", "address", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("HTTP server failed", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("Graceful shutdown failed", "error", err)
	}
	logger.Info("Server stopped")
}
