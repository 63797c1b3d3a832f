package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/ebuka-odih/mini-ecommerce-backend/config"
	"github.com/ebuka-odih/mini-ecommerce-backend/internal/app/controller"
	"github.com/ebuka-odih/mini-ecommerce-backend/internal/app/repository"
	"github.com/ebuka-odih/mini-ecommerce-backend/internal/app/service"
	"github.com/ebuka-odih/mini-ecommerce-backend/internal/db"
	"github.com/ebuka-odih/mini-ecommerce-backend/internal/middleware"
	"github.com/ebuka-odih/mini-ecommerce-backend/internal/router"
	"github.com/ebuka-odih/mini-ecommerce-backend/internal/scheduler"
	"github.com/ebuka-odih/mini-ecommerce-backend/internal/storage"
	ws "github.com/ebuka-odih/mini-ecommerce-backend/internal/websocket"
	"github.com/ebuka-odih/mini-ecommerce-backend/pkg/logger"
	"github.com/ebuka-odih/mini-ecommerce-backend/pkg/redis"
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

	logger.Info("Starting storefront API server", map[string]interface{}{
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

	// Seed lookup tables (sizes, colors)
	if err := db.Seed(); err != nil {
		logger.Warn("Failed to seed database", map[string]interface{}{
			"error": err.Error(),
		})
	}

	// Redis is optional; the homepage cache degrades to direct reads.
	if err := redis.Init(&cfg.Redis); err != nil {
		logger.Warn("Redis unavailable, homepage cache disabled", map[string]interface{}{
			"error": err.Error(),
		})
	}
	defer redis.Close()

	// Object storage
	s3Storage := storage.NewS3Storage(
		cfg.S3.Region,
		cfg.S3.Bucket,
		cfg.S3.AccessKeyID,
		cfg.S3.SecretAccessKey,
		cfg.S3.BaseURL,
	)

	// Websocket hub for admin event streaming
	hub := ws.NewHub()
	go hub.Run()

	// Initialize repositories
	userRepo := repository.NewUserRepository(db.GetDB())
	categoryRepo := repository.NewCategoryRepository(db.GetDB())
	productRepo := repository.NewProductRepository(db.GetDB())
	variationRepo := repository.NewVariationRepository(db.GetDB())
	sizeRepo := repository.NewSizeRepository(db.GetDB())
	colorRepo := repository.NewColorRepository(db.GetDB())
	imageRepo := repository.NewImageRepository(db.GetDB())
	layoutRepo := repository.NewLayoutRepository(db.GetDB())
	orderRepo := repository.NewOrderRepository(db.GetDB())

	// Initialize services
	authService := service.NewAuthService(userRepo, cfg.JWT)
	mediaService := service.NewMediaService(imageRepo, s3Storage, cfg.Media, hub)
	productService := service.NewProductService(productRepo, categoryRepo, mediaService, db.GetDB())
	categoryService := service.NewCategoryService(categoryRepo)
	lookupService := service.NewLookupService(sizeRepo, colorRepo)
	variationService := service.NewVariationService(variationRepo, productRepo, sizeRepo, colorRepo)
	layoutService := service.NewLayoutService(layoutRepo, categoryRepo, db.GetDB())
	orderService := service.NewOrderService(orderRepo, userRepo, productRepo, variationRepo, variationService)

	// Initialize controllers
	authController := controller.NewAuthController(authService)
	productController := controller.NewProductController(productService)
	categoryController := controller.NewCategoryController(categoryService)
	lookupController := controller.NewLookupController(lookupService)
	variationController := controller.NewVariationController(variationService)
	mediaController := controller.NewMediaController(mediaService)
	uploadController := controller.NewUploadController(s3Storage)
	layoutController := controller.NewLayoutController(layoutService)
	orderController := controller.NewOrderController(orderService)
	eventsController := controller.NewEventsController(hub, cfg.CORS.AllowedOrigins)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(cfg.JWT.Secret)

	// Nightly media purge
	mediaScheduler := scheduler.NewMediaScheduler(mediaService)
	if err := mediaScheduler.Start(); err != nil {
		logger.Warn("Failed to start media scheduler", map[string]interface{}{
			"error": err.Error(),
		})
	}
	defer mediaScheduler.Stop()

	// Setup router
	r := router.NewRouter(
		authController,
		productController,
		categoryController,
		lookupController,
		variationController,
		mediaController,
		uploadController,
		layoutController,
		orderController,
		eventsController,
		authMiddleware,
		cfg,
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
