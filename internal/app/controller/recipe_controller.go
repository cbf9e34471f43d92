package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/tastebook/tastebook-backend/internal/app/model"
	"github.com/tastebook/tastebook-backend/internal/app/service"
	apperrors "github.com/tastebook/tastebook-backend/internal/errors"
	"github.com/tastebook/tastebook-backend/internal/middleware"
	"github.com/tastebook/tastebook-backend/internal/storage"
)

type RecipeController struct {
	recipeService service.RecipeService
	searchService service.SearchService
}

func NewRecipeController(recipeService service.RecipeService, searchService service.SearchService) *RecipeController {
	return &RecipeController{
		recipeService: recipeService,
		searchService: searchService,
	}
}

// List returns recipes with optional filters and pagination
// GET /api/v1/recipes
func (ctrl *RecipeController) List(c *gin.Context) {
	var query model.RecipeListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid list parameters")
		return
	}

	recipes, total, err := ctrl.recipeService.List(&query)
	if err != nil {
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "recipe list")
		return
	}

	page := query.Page
	if page < 1 {
		page = 1
	}
	limit := query.Limit
	if limit < 1 || limit > 100 {
		limit = 20
	}
	totalPages := (total + int64(limit) - 1) / int64(limit)

	c.JSON(http.StatusOK, gin.H{
		"data": recipes,
		"meta": gin.H{
			"total":       total,
			"page":        page,
			"limit":       limit,
			"total_pages": totalPages,
		},
	})
}

// Get returns the full recipe graph including review trees. When the
// caller is authenticated, the visit lands in their browsing history.
// GET /api/v1/recipes/:id
func (ctrl *RecipeController) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	recipe, err := ctrl.recipeService.GetByID(id)
	if err != nil {
		if errors.Is(err, service.ErrRecipeNotFound) {
			apperrors.NotFound(c, apperrors.RecipeNotFound, "Recipe not found")
			return
		}
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "recipe get")
		return
	}

	if userID, authed := middleware.GetUserID(c); authed {
		if err := ctrl.searchService.Record(userID, id); err != nil {
			// History is best effort; the recipe still renders
			middleware.GetLoggerFromContext(c).Warn("Failed to record recipe visit", map[string]interface{}{
				"user_id":   userID,
				"recipe_id": id,
				"error":     err.Error(),
			})
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"data": recipe,
	})
}

// Create stores a new recipe with instructions, taxonomy links and media
// POST /api/v1/recipes
func (ctrl *RecipeController) Create(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, ok := middleware.GetUserID(c)
	if !ok {
		apperrors.Unauthorized(c, "")
		return
	}

	var req model.CreateRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid recipe payload")
		return
	}

	recipe, err := ctrl.recipeService.Create(c.Request.Context(), userID, &req)
	if err != nil {
		log.Warn("Recipe creation failed", map[string]interface{}{
			"user_id": userID,
			"error":   err.Error(),
		})
		ctrl.respondWriteError(c, err, "recipe create")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Recipe created",
		"data":    recipe,
	})
}

// Update applies a partial recipe update
// PATCH /api/v1/recipes/:id
func (ctrl *RecipeController) Update(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		apperrors.Unauthorized(c, "")
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req model.UpdateRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid recipe payload")
		return
	}

	recipe, err := ctrl.recipeService.Update(c.Request.Context(), userID, middleware.IsAdmin(c), id, &req)
	if err != nil {
		ctrl.respondWriteError(c, err, "recipe update")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Recipe updated",
		"data":    recipe,
	})
}

// Delete removes a recipe and its whole dependent graph
// DELETE /api/v1/recipes/:id
func (ctrl *RecipeController) Delete(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		apperrors.Unauthorized(c, "")
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := ctrl.recipeService.Delete(userID, middleware.IsAdmin(c), id); err != nil {
		switch {
		case errors.Is(err, service.ErrRecipeNotFound):
			apperrors.NotFound(c, apperrors.RecipeNotFound, "Recipe not found")
		case errors.Is(err, service.ErrNotRecipeOwner):
			apperrors.RespondWithError(c, http.StatusForbidden, apperrors.AuthzOwnerOnly, "Only the recipe owner can delete it")
		default:
			apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "recipe delete")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Recipe deleted",
	})
}

func (ctrl *RecipeController) respondWriteError(c *gin.Context, err error, context string) {
	switch {
	case errors.Is(err, service.ErrRecipeNotFound):
		apperrors.NotFound(c, apperrors.RecipeNotFound, "Recipe not found")
	case errors.Is(err, service.ErrNotRecipeOwner):
		apperrors.RespondWithError(c, http.StatusForbidden, apperrors.AuthzOwnerOnly, "Only the recipe owner can modify it")
	case errors.Is(err, service.ErrInvalidMedia):
		apperrors.BadRequest(c, apperrors.ValidationInvalidFormat, "Media payload is not valid base64")
	case errors.Is(err, storage.ErrInvalidFileType):
		apperrors.BadRequest(c, apperrors.UploadInvalidFileType, "Only JPEG, PNG and MP4 media are accepted")
	case errors.Is(err, storage.ErrFileTooLarge):
		apperrors.BadRequest(c, apperrors.UploadFileTooLarge, "Media exceeds the 10MB upload limit")
	default:
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, context)
	}
}

// parseIDParam parses a positive integer path parameter, writing the
// error response itself when the value is malformed
func parseIDParam(c *gin.Context, name string) (uint, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid "+name+" parameter")
		return 0, false
	}
	return uint(id), true
}
