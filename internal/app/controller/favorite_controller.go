package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tastebook/tastebook-backend/internal/app/model"
	"github.com/tastebook/tastebook-backend/internal/app/service"
	apperrors "github.com/tastebook/tastebook-backend/internal/errors"
	"github.com/tastebook/tastebook-backend/internal/middleware"
)

type FavoriteController struct {
	favoriteService service.FavoriteService
}

func NewFavoriteController(favoriteService service.FavoriteService) *FavoriteController {
	return &FavoriteController{
		favoriteService: favoriteService,
	}
}

// List returns the recipes the user has favorited
// GET /api/v1/favorites
func (ctrl *FavoriteController) List(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		apperrors.Unauthorized(c, "")
		return
	}

	recipes, err := ctrl.favoriteService.ListRecipes(userID)
	if err != nil {
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "favorite list")
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": recipes})
}

// Add favorites a recipe for the user
// POST /api/v1/favorites
func (ctrl *FavoriteController) Add(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		apperrors.Unauthorized(c, "")
		return
	}

	var req model.RecipeRef
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "recipe_id is required")
		return
	}

	if err := ctrl.favoriteService.Add(userID, req.RecipeID); err != nil {
		switch {
		case errors.Is(err, service.ErrRecipeNotFound):
			apperrors.NotFound(c, apperrors.RecipeNotFound, "Recipe not found")
		case errors.Is(err, service.ErrAlreadyFavorited):
			apperrors.Conflict(c, apperrors.FavoriteAlreadyExists, "Recipe is already in favorites")
		default:
			apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "favorite add")
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Recipe added to favorites",
	})
}

// Remove unfavorites a recipe
// DELETE /api/v1/favorites/:recipeId
func (ctrl *FavoriteController) Remove(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		apperrors.Unauthorized(c, "")
		return
	}
	recipeID, ok := parseIDParam(c, "recipeId")
	if !ok {
		return
	}

	if err := ctrl.favoriteService.Remove(userID, recipeID); err != nil {
		if errors.Is(err, service.ErrFavoriteNotFound) {
			apperrors.NotFound(c, apperrors.FavoriteNotFound, "Favorite not found")
			return
		}
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "favorite remove")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Recipe removed from favorites",
	})
}
