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

type ReviewController struct {
	reviewService service.ReviewService
}

func NewReviewController(reviewService service.ReviewService) *ReviewController {
	return &ReviewController{
		reviewService: reviewService,
	}
}

// Create stores a review or a reply to an existing review
// POST /api/v1/reviews
func (ctrl *ReviewController) Create(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, ok := middleware.GetUserID(c)
	if !ok {
		apperrors.Unauthorized(c, "")
		return
	}

	var req model.CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid review payload")
		return
	}

	review, err := ctrl.reviewService.Create(userID, &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrRecipeNotFound):
			apperrors.NotFound(c, apperrors.RecipeNotFound, "Recipe not found")
		case errors.Is(err, service.ErrUserNotFound):
			apperrors.NotFound(c, apperrors.UserNotFound, "User not found")
		case errors.Is(err, service.ErrParentReviewNotFound):
			apperrors.NotFound(c, apperrors.ReviewParentNotFound, "Parent review not found")
		case errors.Is(err, service.ErrParentRecipeMismatch):
			apperrors.BadRequest(c, apperrors.ReviewParentMismatch, "Parent review belongs to a different recipe")
		case errors.Is(err, service.ErrRatingRequired):
			apperrors.BadRequest(c, apperrors.ReviewRatingRequired, "A top-level review requires a rating")
		case errors.Is(err, service.ErrInvalidRating):
			apperrors.BadRequest(c, apperrors.ReviewInvalidRating, "Rating must be between 1 and 5")
		default:
			log.Error("Review creation failed", err, map[string]interface{}{
				"user_id":   userID,
				"recipe_id": req.RecipeID,
			})
			apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "review create")
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Review created",
		"data":    review,
	})
}

// Get returns a review together with its full reply tree
// GET /api/v1/reviews/:id
func (ctrl *ReviewController) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	review, err := ctrl.reviewService.GetTree(id)
	if err != nil {
		if errors.Is(err, service.ErrReviewNotFound) {
			apperrors.NotFound(c, apperrors.ReviewNotFound, "Review not found")
			return
		}
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "review get")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": review,
	})
}

// ListByRecipe returns every root review of a recipe with reply trees
// GET /api/v1/recipes/:id/reviews
func (ctrl *ReviewController) ListByRecipe(c *gin.Context) {
	recipeID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	reviews, total, err := ctrl.reviewService.GetByRecipe(recipeID)
	if err != nil {
		if errors.Is(err, service.ErrRecipeNotFound) {
			apperrors.NotFound(c, apperrors.RecipeNotFound, "Recipe not found")
			return
		}
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "review list")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": reviews,
		"meta": gin.H{
			"total": total,
		},
	})
}

// Delete removes a review and its entire reply subtree
// DELETE /api/v1/reviews/:id
func (ctrl *ReviewController) Delete(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		apperrors.Unauthorized(c, "")
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := ctrl.reviewService.Delete(userID, middleware.IsAdmin(c), id); err != nil {
		switch {
		case errors.Is(err, service.ErrReviewNotFound):
			apperrors.NotFound(c, apperrors.ReviewNotFound, "Review not found")
		case errors.Is(err, service.ErrNotReviewOwner):
			apperrors.RespondWithError(c, http.StatusForbidden, apperrors.AuthzOwnerOnly, "Only the review author can delete it")
		default:
			apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "review delete")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Review deleted",
	})
}
