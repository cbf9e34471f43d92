package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tastebook/tastebook-backend/internal/app/model"
	"github.com/tastebook/tastebook-backend/internal/app/service"
	apperrors "github.com/tastebook/tastebook-backend/internal/errors"
)

// TaxonomyController exposes the ingredient and category catalogs
type TaxonomyController struct {
	taxonomyService service.TaxonomyService
}

func NewTaxonomyController(taxonomyService service.TaxonomyService) *TaxonomyController {
	return &TaxonomyController{
		taxonomyService: taxonomyService,
	}
}

// ListIngredients returns the ingredient catalog
// GET /api/v1/ingredients
func (ctrl *TaxonomyController) ListIngredients(c *gin.Context) {
	ingredients, err := ctrl.taxonomyService.ListIngredients()
	if err != nil {
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "ingredient list")
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": ingredients})
}

// GetIngredient returns one ingredient
// GET /api/v1/ingredients/:id
func (ctrl *TaxonomyController) GetIngredient(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	ingredient, err := ctrl.taxonomyService.GetIngredient(id)
	if err != nil {
		if errors.Is(err, service.ErrIngredientNotFound) {
			apperrors.NotFound(c, apperrors.IngredientNotFound, "Ingredient not found")
			return
		}
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "ingredient get")
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": ingredient})
}

// CreateIngredient adds an ingredient to the catalog (admin only)
// POST /api/v1/ingredients
func (ctrl *TaxonomyController) CreateIngredient(c *gin.Context) {
	var req model.NameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Ingredient name is required")
		return
	}

	ingredient, err := ctrl.taxonomyService.CreateIngredient(req.Name)
	if err != nil {
		apperrors.ParseAndRespond(c, http.StatusConflict, err, "ingredient create")
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message": "Ingredient created",
		"data":    ingredient,
	})
}

// UpdateIngredient renames an ingredient (admin only)
// PATCH /api/v1/ingredients/:id
func (ctrl *TaxonomyController) UpdateIngredient(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req model.NameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Ingredient name is required")
		return
	}

	ingredient, err := ctrl.taxonomyService.UpdateIngredient(id, req.Name)
	if err != nil {
		if errors.Is(err, service.ErrIngredientNotFound) {
			apperrors.NotFound(c, apperrors.IngredientNotFound, "Ingredient not found")
			return
		}
		apperrors.ParseAndRespond(c, http.StatusConflict, err, "ingredient update")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Ingredient updated",
		"data":    ingredient,
	})
}

// DeleteIngredient removes an ingredient and its recipe links (admin only)
// DELETE /api/v1/ingredients/:id
func (ctrl *TaxonomyController) DeleteIngredient(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := ctrl.taxonomyService.DeleteIngredient(id); err != nil {
		if errors.Is(err, service.ErrIngredientNotFound) {
			apperrors.NotFound(c, apperrors.IngredientNotFound, "Ingredient not found")
			return
		}
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "ingredient delete")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Ingredient deleted",
	})
}

// ListCategories returns the category catalog
// GET /api/v1/categories
func (ctrl *TaxonomyController) ListCategories(c *gin.Context) {
	categories, err := ctrl.taxonomyService.ListCategories()
	if err != nil {
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "category list")
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": categories})
}

// GetCategory returns one category
// GET /api/v1/categories/:id
func (ctrl *TaxonomyController) GetCategory(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	category, err := ctrl.taxonomyService.GetCategory(id)
	if err != nil {
		if errors.Is(err, service.ErrCategoryNotFound) {
			apperrors.NotFound(c, apperrors.CategoryNotFound, "Category not found")
			return
		}
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "category get")
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": category})
}

// CreateCategory adds a category to the catalog (admin only)
// POST /api/v1/categories
func (ctrl *TaxonomyController) CreateCategory(c *gin.Context) {
	var req model.NameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Category name is required")
		return
	}

	category, err := ctrl.taxonomyService.CreateCategory(req.Name)
	if err != nil {
		apperrors.ParseAndRespond(c, http.StatusConflict, err, "category create")
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message": "Category created",
		"data":    category,
	})
}

// UpdateCategory renames a category (admin only)
// PATCH /api/v1/categories/:id
func (ctrl *TaxonomyController) UpdateCategory(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req model.NameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Category name is required")
		return
	}

	category, err := ctrl.taxonomyService.UpdateCategory(id, req.Name)
	if err != nil {
		if errors.Is(err, service.ErrCategoryNotFound) {
			apperrors.NotFound(c, apperrors.CategoryNotFound, "Category not found")
			return
		}
		apperrors.ParseAndRespond(c, http.StatusConflict, err, "category update")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Category updated",
		"data":    category,
	})
}

// DeleteCategory removes a category and its recipe links (admin only)
// DELETE /api/v1/categories/:id
func (ctrl *TaxonomyController) DeleteCategory(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := ctrl.taxonomyService.DeleteCategory(id); err != nil {
		if errors.Is(err, service.ErrCategoryNotFound) {
			apperrors.NotFound(c, apperrors.CategoryNotFound, "Category not found")
			return
		}
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "category delete")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Category deleted",
	})
}
