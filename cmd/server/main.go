package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"salon-crm-backend/config"
	"salon-crm-backend/internal/app/controller"
	"salon-crm-backend/internal/app/repository"
	"salon-crm-backend/internal/app/service"
	"salon-crm-backend/internal/db"
	"salon-crm-backend/internal/middleware"
	"salon-crm-backend/internal/router"
	"salon-crm-backend/internal/storage"
	"salon-crm-backend/pkg/logger"
	"salon-crm-backend/pkg/redis"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", err)
	}

	// Initialize logger
	logLevel := "info"
	if cfg.Server.Environment == "development" {
		logLevel = "debug"
	}
	logger.Initialize(logger.Config{
		Level:       logLevel,
		Format:      "console", // Use "json" for production
		EnableColor: true,
	})

	logger.Info("Starting Salon CRM Backend Server", map[string]interface{}{
		"environment": cfg.Server.Environment,
		"port":        cfg.Server.Port,
		"log_level":   logLevel,
	})

	// Initialize database
	if err := db.Initialize(&cfg.Database); err != nil {
		logger.Fatal("Failed to initialize database", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Error("Failed to close database connection", err)
		}
	}()

	// Run migrations
	if err := db.Migrate(); err != nil {
		logger.Fatal("Failed to run migrations", err)
	}

	// Redis is optional; without it the intake endpoint runs unthrottled
	rateLimitEnabled := false
	if cfg.Redis.Enabled() {
		if err := redis.Init(&cfg.Redis); err != nil {
			logger.Warn("Redis unavailable, intake rate limiting disabled", map[string]interface{}{
				"error": err.Error(),
			})
		} else {
			rateLimitEnabled = true
			defer func() {
				if err := redis.Close(); err != nil {
					logger.Error("Failed to close redis connection", err)
				}
			}()
		}
	}

	// Initialize blob storage
	imageStorage := storage.NewS3Storage(
		cfg.S3.Region,
		cfg.S3.Bucket,
		cfg.S3.AccessKeyID,
		cfg.S3.SecretAccessKey,
		cfg.S3.BaseURL,
	)

	// Initialize repositories
	authUserRepo := repository.NewAuthUserRepository(db.GetDB())
	adminRepo := repository.NewAdminRepository(db.GetDB())
	customerRepo := repository.NewCustomerRepository(db.GetDB())
	treatmentRepo := repository.NewTreatmentRepository(db.GetDB())
	imageRepo := repository.NewTreatmentImageRepository(db.GetDB())

	// Initialize services
	authService := service.NewAuthService(
		authUserRepo,
		adminRepo,
		cfg.JWT.Secret,
		cfg.JWT.AccessTokenExpiry,
		cfg.JWT.RefreshTokenExpiry,
	)
	customerService := service.NewCustomerService(customerRepo)
	treatmentService := service.NewTreatmentService(treatmentRepo, imageRepo, customerRepo, imageStorage)
	imageService := service.NewImageService(treatmentRepo, imageRepo, imageStorage)
	adminService := service.NewAdminService(adminRepo, authUserRepo)
	exportService := service.NewExportService(customerRepo)
	intakeService := service.NewIntakeService(customerRepo)

	// Initialize controllers
	authController := controller.NewAuthController(authService)
	customerController := controller.NewCustomerController(customerService)
	treatmentController := controller.NewTreatmentController(treatmentService)
	imageController := controller.NewImageController(imageService)
	adminController := controller.NewAdminController(adminService)
	exportController := controller.NewExportController(exportService)
	intakeController := controller.NewIntakeController(intakeService)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(cfg.JWT.Secret, adminRepo)

	// Setup router
	r := router.NewRouter(
		authController,
		customerController,
		treatmentController,
		imageController,
		adminController,
		exportController,
		intakeController,
		authMiddleware,
		cfg,
		rateLimitEnabled,
	)
	engine := r.Setup()

	// Start server in a goroutine
	go func() {
		addr := fmt.Sprintf(":%s", cfg.Server.Port)
		logger.Info("Server started successfully", map[string]interface{}{
			"address": addr,
			"pid":     os.Getpid(),
		})
		if err := engine.Run(addr); err != nil {
			logger.Fatal("Failed to start server", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server gracefully...")
	logger.Info("Server stopped successfully")
}
