package router

import (
	"github.com/gin-gonic/gin"
	"github.com/tastebook/tastebook-backend/config"
	"github.com/tastebook/tastebook-backend/internal/app/controller"
	"github.com/tastebook/tastebook-backend/internal/middleware"
)

type Router struct {
	authController     *controller.AuthController
	userController     *controller.UserController
	recipeController   *controller.RecipeController
	reviewController   *controller.ReviewController
	taxonomyController *controller.TaxonomyController
	favoriteController *controller.FavoriteController
	searchController   *controller.SearchController
	uploadController   *controller.UploadController
	adminController    *controller.AdminController
	authMiddleware     *middleware.AuthMiddleware
	config             *config.Config
}

func NewRouter(
	authController *controller.AuthController,
	userController *controller.UserController,
	recipeController *controller.RecipeController,
	reviewController *controller.ReviewController,
	taxonomyController *controller.TaxonomyController,
	favoriteController *controller.FavoriteController,
	searchController *controller.SearchController,
	uploadController *controller.UploadController,
	adminController *controller.AdminController,
	authMiddleware *middleware.AuthMiddleware,
	cfg *config.Config,
) *Router {
	return &Router{
		authController:     authController,
		userController:     userController,
		recipeController:   recipeController,
		reviewController:   reviewController,
		taxonomyController: taxonomyController,
		favoriteController: favoriteController,
		searchController:   searchController,
		uploadController:   uploadController,
		adminController:    adminController,
		authMiddleware:     authMiddleware,
		config:             cfg,
	}
}

func (r *Router) Setup() *gin.Engine {
	gin.SetMode(r.config.Server.GinMode)

	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.LoggingMiddleware())
	router.Use(corsMiddleware(r.config.CORS.AllowedOrigins))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"message": "TasteBook API is running",
		})
	})

	v1 := router.Group("/api/v1")
	{
		auth := v1.Group("/auth")
		{
			auth.POST("/register", r.authController.Register)
			auth.POST("/login", r.authController.Login)
			auth.POST("/logout", r.authMiddleware.Authenticate(), r.authController.Logout)
		}

		users := v1.Group("/users")
		users.Use(r.authMiddleware.Authenticate())
		{
			users.GET("/me", r.authController.Me)
			users.PATCH("/me", r.authController.UpdateMe)
			users.DELETE("/me", r.userController.DeleteMe)
		}

		recipes := v1.Group("/recipes")
		{
			recipes.GET("", r.recipeController.List)
			recipes.GET("/:id", r.authMiddleware.OptionalAuthenticate(), r.recipeController.Get)
			recipes.GET("/:id/reviews", r.reviewController.ListByRecipe)

			recipes.POST("", r.authMiddleware.Authenticate(), r.recipeController.Create)
			recipes.PATCH("/:id", r.authMiddleware.Authenticate(), r.recipeController.Update)
			recipes.DELETE("/:id", r.authMiddleware.Authenticate(), r.recipeController.Delete)
		}

		reviews := v1.Group("/reviews")
		{
			reviews.GET("/:id", r.reviewController.Get)
			reviews.POST("", r.authMiddleware.Authenticate(), r.reviewController.Create)
			reviews.DELETE("/:id", r.authMiddleware.Authenticate(), r.reviewController.Delete)
		}

		ingredients := v1.Group("/ingredients")
		{
			ingredients.GET("", r.taxonomyController.ListIngredients)
			ingredients.GET("/:id", r.taxonomyController.GetIngredient)
			ingredients.POST("",
				r.authMiddleware.Authenticate(),
				r.authMiddleware.RequireRole("admin"),
				r.taxonomyController.CreateIngredient,
			)
			ingredients.PATCH("/:id",
				r.authMiddleware.Authenticate(),
				r.authMiddleware.RequireRole("admin"),
				r.taxonomyController.UpdateIngredient,
			)
			ingredients.DELETE("/:id",
				r.authMiddleware.Authenticate(),
				r.authMiddleware.RequireRole("admin"),
				r.taxonomyController.DeleteIngredient,
			)
		}

		categories := v1.Group("/categories")
		{
			categories.GET("", r.taxonomyController.ListCategories)
			categories.GET("/:id", r.taxonomyController.GetCategory)
			categories.POST("",
				r.authMiddleware.Authenticate(),
				r.authMiddleware.RequireRole("admin"),
				r.taxonomyController.CreateCategory,
			)
			categories.PATCH("/:id",
				r.authMiddleware.Authenticate(),
				r.authMiddleware.RequireRole("admin"),
				r.taxonomyController.UpdateCategory,
			)
			categories.DELETE("/:id",
				r.authMiddleware.Authenticate(),
				r.authMiddleware.RequireRole("admin"),
				r.taxonomyController.DeleteCategory,
			)
		}

		favorites := v1.Group("/favorites")
		favorites.Use(r.authMiddleware.Authenticate())
		{
			favorites.GET("", r.favoriteController.List)
			favorites.POST("", r.favoriteController.Add)
			favorites.DELETE("/:recipeId", r.favoriteController.Remove)
		}

		searches := v1.Group("/searches")
		searches.Use(r.authMiddleware.Authenticate())
		{
			searches.GET("", r.searchController.List)
			searches.POST("", r.searchController.Record)
			searches.DELETE("", r.searchController.Clear)
			searches.DELETE("/:recipeId", r.searchController.Remove)
		}

		uploads := v1.Group("/uploads")
		uploads.Use(r.authMiddleware.Authenticate())
		{
			uploads.POST("/presigned-url", r.uploadController.GetPresignedURL)
		}

		admin := v1.Group("/admin")
		admin.Use(r.authMiddleware.Authenticate(), r.authMiddleware.RequireRole("admin"))
		{
			admin.GET("/export/recipes", r.adminController.ExportRecipes)
			admin.DELETE("/users/:id", r.userController.Delete)
		}
	}

	return router
}

func corsMiddleware(allowedOrigins []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")

		allowed := false
		for _, allowedOrigin := range allowedOrigins {
			if origin == allowedOrigin || allowedOrigin == "*" {
				allowed = true
				break
			}
		}

		if allowed {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		}

		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
