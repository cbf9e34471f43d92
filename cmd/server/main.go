package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/tastebook/tastebook-backend/config"
	"github.com/tastebook/tastebook-backend/internal/app/controller"
	"github.com/tastebook/tastebook-backend/internal/app/repository"
	"github.com/tastebook/tastebook-backend/internal/app/service"
	"github.com/tastebook/tastebook-backend/internal/db"
	"github.com/tastebook/tastebook-backend/internal/middleware"
	"github.com/tastebook/tastebook-backend/internal/router"
	"github.com/tastebook/tastebook-backend/internal/scheduler"
	"github.com/tastebook/tastebook-backend/internal/storage"
	"github.com/tastebook/tastebook-backend/pkg/logger"
	"github.com/tastebook/tastebook-backend/pkg/redis"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", err)
	}

	logLevel := "info"
	if cfg.Server.Environment == "development" {
		logLevel = "debug"
	}
	logger.Initialize(logger.Config{
		Level:       logLevel,
		Format:      "console", // Use "json" for production
		EnableColor: true,
	})

	logger.Info("Starting TasteBook Backend Server", map[string]interface{}{
		"environment": cfg.Server.Environment,
		"port":        cfg.Server.Port,
		"log_level":   logLevel,
	})

	if err := db.Initialize(&cfg.Database); err != nil {
		logger.Fatal("Failed to initialize database", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Error("Failed to close database connection", err)
		}
	}()

	if err := db.Migrate(); err != nil {
		logger.Fatal("Failed to run migrations", err)
	}

	if err := db.Seed(); err != nil {
		logger.Warn("Failed to seed database", map[string]interface{}{
			"error": err.Error(),
		})
	}

	// Redis is used for token revocation; the API degrades gracefully
	// without it
	if err := redis.Init(&cfg.Redis); err != nil {
		logger.Warn("Redis unavailable, token revocation disabled", map[string]interface{}{
			"error": err.Error(),
		})
	}
	defer redis.Close()

	// Repositories
	userRepo := repository.NewUserRepository(db.GetDB())
	recipeRepo := repository.NewRecipeRepository(db.GetDB())
	reviewRepo := repository.NewReviewRepository(db.GetDB())
	ingredientRepo := repository.NewIngredientRepository(db.GetDB())
	categoryRepo := repository.NewCategoryRepository(db.GetDB())
	favoriteRepo := repository.NewFavoriteRepository(db.GetDB())
	searchRepo := repository.NewSearchRepository(db.GetDB())

	// Storage
	s3Storage := storage.NewS3Storage(
		cfg.S3.Region,
		cfg.S3.Bucket,
		cfg.S3.AccessKeyID,
		cfg.S3.SecretAccessKey,
		cfg.S3.BaseURL,
	)

	// Services
	authService := service.NewAuthService(
		userRepo,
		cfg.JWT.Secret,
		cfg.JWT.AccessTokenExpiry,
		cfg.JWT.RefreshTokenExpiry,
	)
	recipeService := service.NewRecipeService(recipeRepo, reviewRepo, s3Storage, db.GetDB())
	reviewService := service.NewReviewService(reviewRepo, recipeRepo, userRepo)
	userService := service.NewUserService(userRepo, recipeRepo, reviewRepo, favoriteRepo, searchRepo, db.GetDB())
	taxonomyService := service.NewTaxonomyService(ingredientRepo, categoryRepo)
	favoriteService := service.NewFavoriteService(favoriteRepo, recipeRepo)
	searchService := service.NewSearchService(searchRepo, recipeRepo)
	exportService := service.NewExportService(recipeRepo)

	// Controllers
	authController := controller.NewAuthController(authService)
	userController := controller.NewUserController(userService)
	recipeController := controller.NewRecipeController(recipeService, searchService)
	reviewController := controller.NewReviewController(reviewService)
	taxonomyController := controller.NewTaxonomyController(taxonomyService)
	favoriteController := controller.NewFavoriteController(favoriteService)
	searchController := controller.NewSearchController(searchService)
	uploadController := controller.NewUploadController(s3Storage)
	adminController := controller.NewAdminController(exportService)

	authMiddleware := middleware.NewAuthMiddleware(cfg.JWT.Secret)

	// Background cleanup of browsing history
	cleanupScheduler := scheduler.NewSearchCleanupScheduler(searchService, cfg.Search.RetentionDays)
	if err := cleanupScheduler.Start(); err != nil {
		logger.Warn("Browsing-history cleanup scheduler not running", map[string]interface{}{
			"error": err.Error(),
		})
	}
	defer cleanupScheduler.Stop()

	r := router.NewRouter(
		authController,
		userController,
		recipeController,
		reviewController,
		taxonomyController,
		favoriteController,
		searchController,
		uploadController,
		adminController,
		authMiddleware,
		cfg,
	)
	engine := r.Setup()

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

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server gracefully...")
	logger.Info("Server stopped successfully")
}
