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

// SearchController exposes the per-user recipe browsing history
type SearchController struct {
	searchService service.SearchService
}

func NewSearchController(searchService service.SearchService) *SearchController {
	return &SearchController{
		searchService: searchService,
	}
}

// List returns the recipes in the user's history, most recent first
// GET /api/v1/searches
func (ctrl *SearchController) List(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		apperrors.Unauthorized(c, "")
		return
	}

	recipes, err := ctrl.searchService.ListRecipes(userID)
	if err != nil {
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "search list")
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": recipes})
}

// Record notes that the user viewed a recipe
// POST /api/v1/searches
func (ctrl *SearchController) Record(c *gin.Context) {
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

	if err := ctrl.searchService.Record(userID, req.RecipeID); err != nil {
		if errors.Is(err, service.ErrRecipeNotFound) {
			apperrors.NotFound(c, apperrors.RecipeNotFound, "Recipe not found")
			return
		}
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "search record")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Visit recorded",
	})
}

// Remove drops one recipe from the user's history
// DELETE /api/v1/searches/:recipeId
func (ctrl *SearchController) Remove(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		apperrors.Unauthorized(c, "")
		return
	}
	recipeID, ok := parseIDParam(c, "recipeId")
	if !ok {
		return
	}

	if err := ctrl.searchService.Remove(userID, recipeID); err != nil {
		if errors.Is(err, service.ErrSearchNotFound) {
			apperrors.NotFound(c, apperrors.SearchNotFound, "History entry not found")
			return
		}
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "search remove")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "History entry removed",
	})
}

// Clear wipes the user's entire history
// DELETE /api/v1/searches
func (ctrl *SearchController) Clear(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		apperrors.Unauthorized(c, "")
		return
	}

	cleared, err := ctrl.searchService.Clear(userID)
	if err != nil {
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "search clear")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "History cleared",
		"data":    gin.H{"removed": cleared},
	})
}
