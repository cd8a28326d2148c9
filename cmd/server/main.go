package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/artigianatoshop/artigianato-backend/config"
	"github.com/artigianatoshop/artigianato-backend/internal/app/controller"
	"github.com/artigianatoshop/artigianato-backend/internal/app/repository"
	"github.com/artigianatoshop/artigianato-backend/internal/app/service"
	"github.com/artigianatoshop/artigianato-backend/internal/db"
	"github.com/artigianatoshop/artigianato-backend/internal/middleware"
	"github.com/artigianatoshop/artigianato-backend/internal/router"
	"github.com/artigianatoshop/artigianato-backend/internal/scheduler"
	"github.com/artigianatoshop/artigianato-backend/internal/storage"
	"github.com/artigianatoshop/artigianato-backend/internal/websocket"
	"github.com/artigianatoshop/artigianato-backend/pkg/logger"
	"github.com/artigianatoshop/artigianato-backend/pkg/payment/stripe"
	"github.com/artigianatoshop/artigianato-backend/pkg/redis"
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

	logger.Info("Starting ArtigianatoShop Backend Server", map[string]interface{}{
		"environment": cfg.Server.Environment,
		"port":        cfg.Server.Port,
		"log_level":   logLevel,
	})

	// Initialize database
	database, err := db.Initialize(&cfg.Database)
	if err != nil {
		logger.Fatal("Failed to initialize database", err)
	}
	defer func() {
		if err := db.Close(database); err != nil {
			logger.Error("Failed to close database connection", err)
		}
	}()

	// Run migrations
	if err := db.Migrate(database); err != nil {
		logger.Fatal("Failed to run migrations", err)
	}

	// Initialize Redis for the token blacklist
	tokenBlacklist := middleware.TokenBlacklist(nil)
	tokenRevoker := controller.TokenRevoker(nil)
	if err := redis.Init(&cfg.Redis); err != nil {
		logger.Warn("Redis unavailable, token revocation disabled", map[string]interface{}{
			"error": err.Error(),
		})
	} else {
		defer redis.Close()
		tokenBlacklist = redis.IsTokenBlacklisted
		tokenRevoker = redis.BlacklistToken
	}

	// Initialize Stripe client
	stripeClient, err := stripe.NewClient(stripe.Config{
		SecretKey: cfg.Payment.Stripe.SecretKey,
		BaseURL:   cfg.Payment.Stripe.BaseURL,
		Currency:  cfg.Payment.Stripe.Currency,
	})
	if err != nil {
		logger.Fatal("Failed to initialize Stripe client", err)
	}

	// Initialize S3 storage
	s3Storage := storage.NewS3Storage(
		cfg.S3.Region,
		cfg.S3.Bucket,
		cfg.S3.AccessKeyID,
		cfg.S3.SecretAccessKey,
		cfg.S3.BaseURL,
	)

	// Start the order event hub
	hub := websocket.NewHub()
	go hub.Run()

	// Initialize repositories
	userRepo := repository.NewUserRepository(database)
	categoryRepo := repository.NewCategoryRepository(database)
	productRepo := repository.NewProductRepository(database)
	cartRepo := repository.NewCartRepository(database)
	orderRepo := repository.NewOrderRepository(database)
	issueRepo := repository.NewIssueRepository(database)

	// Initialize services
	authService := service.NewAuthService(
		userRepo,
		cfg.JWT.Secret,
		cfg.JWT.AccessTokenExpiry,
		cfg.JWT.RefreshTokenExpiry,
	)
	categoryService := service.NewCategoryService(categoryRepo)
	productService := service.NewProductService(productRepo, categoryRepo)
	cartService := service.NewCartService(cartRepo, productRepo)
	orderService := service.NewOrderService(orderRepo, stripeClient, hub, database)
	issueService := service.NewIssueService(issueRepo, orderRepo)

	// Initialize controllers
	authController := controller.NewAuthController(authService, cfg.JWT.Secret, tokenRevoker)
	categoryController := controller.NewCategoryController(categoryService)
	productController := controller.NewProductController(productService, categoryService)
	cartController := controller.NewCartController(cartService)
	orderController := controller.NewOrderController(orderService)
	issueController := controller.NewIssueController(issueService)
	uploadController := controller.NewUploadController(s3Storage)
	orderFeedController := controller.NewOrderFeedController(hub, cfg.CORS.AllowedOrigins)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(cfg.JWT.Secret, tokenBlacklist)

	// Start the abandoned cart cleanup job
	cartCleanup := scheduler.NewCartCleanupScheduler(cartRepo, cfg.Cleanup.CartRetention, cfg.Cleanup.Schedule)
	if err := cartCleanup.Start(); err != nil {
		logger.Fatal("Failed to start cart cleanup scheduler", err)
	}
	defer cartCleanup.Stop()

	// Setup router
	r := router.NewRouter(
		authController,
		categoryController,
		productController,
		cartController,
		orderController,
		issueController,
		uploadController,
		orderFeedController,
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
