package service

import (
	"errors"

	"github.com/tastebook/tastebook-backend/internal/app/model"
	"github.com/tastebook/tastebook-backend/internal/app/repository"
	"github.com/tastebook/tastebook-backend/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrReviewNotFound       = errors.New("review not found")
	ErrParentReviewNotFound = errors.New("parent review not found")
	ErrParentRecipeMismatch = errors.New("parent review belongs to a different recipe")
	ErrRatingRequired       = errors.New("a top-level review requires a rating")
	ErrInvalidRating        = errors.New("rating must be between 1 and 5")
	ErrNotReviewOwner       = errors.New("review belongs to another user")
)

type ReviewService interface {
	Create(userID uint, req *model.CreateReviewRequest) (*model.Review, error)
	GetTree(id uint) (*model.Review, error)
	GetByRecipe(recipeID uint) ([]model.Review, int64, error)
	Delete(userID uint, isAdmin bool, reviewID uint) error
}

type reviewService struct {
	reviewRepo *repository.ReviewRepository
	recipeRepo *repository.RecipeRepository
	userRepo   *repository.UserRepository
}

func NewReviewService(
	reviewRepo *repository.ReviewRepository,
	recipeRepo *repository.RecipeRepository,
	userRepo *repository.UserRepository,
) ReviewService {
	return &reviewService{
		reviewRepo: reviewRepo,
		recipeRepo: recipeRepo,
		userRepo:   userRepo,
	}
}

// Create validates and stores a review or a reply. A top-level review
// must carry a rating in [1, 5]; a reply may omit the rating entirely,
// and a reply's parent must belong to the same recipe.
func (s *reviewService) Create(userID uint, req *model.CreateReviewRequest) (*model.Review, error) {
	exists, err := s.recipeRepo.Exists(req.RecipeID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrRecipeNotFound
	}

	userExists, err := s.userRepo.Exists(userID)
	if err != nil {
		return nil, err
	}
	if !userExists {
		return nil, ErrUserNotFound
	}

	if req.ParentReviewID != nil {
		parent, err := s.reviewRepo.GetReviewByID(*req.ParentReviewID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrParentReviewNotFound
			}
			return nil, err
		}
		if parent.RecipeID != req.RecipeID {
			logger.Warn("Reply rejected: parent on a different recipe", map[string]interface{}{
				"recipe_id":        req.RecipeID,
				"parent_review_id": parent.ID,
				"parent_recipe_id": parent.RecipeID,
			})
			return nil, ErrParentRecipeMismatch
		}
	} else {
		if req.Rating == nil {
			return nil, ErrRatingRequired
		}
		if *req.Rating < 1 || *req.Rating > 5 {
			return nil, ErrInvalidRating
		}
	}

	review := &model.Review{
		RecipeID: req.RecipeID,
		UserID:   userID,
		Rating:   req.Rating,
		Comment:  req.Comment,
		ParentID: req.ParentReviewID,
	}
	if err := s.reviewRepo.CreateReview(review); err != nil {
		logger.Error("Failed to create review", err, map[string]interface{}{
			"recipe_id": req.RecipeID,
			"user_id":   userID,
		})
		return nil, err
	}

	logger.Info("Review created", map[string]interface{}{
		"review_id": review.ID,
		"recipe_id": review.RecipeID,
		"is_reply":  review.ParentID != nil,
	})
	return review, nil
}

func (s *reviewService) GetTree(id uint) (*model.Review, error) {
	review, err := s.reviewRepo.GetTree(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReviewNotFound
		}
		return nil, err
	}
	return review, nil
}

// GetByRecipe returns a recipe's root reviews with their reply trees,
// plus the total number of review rows (roots and replies).
func (s *reviewService) GetByRecipe(recipeID uint) ([]model.Review, int64, error) {
	exists, err := s.recipeRepo.Exists(recipeID)
	if err != nil {
		return nil, 0, err
	}
	if !exists {
		return nil, 0, ErrRecipeNotFound
	}

	reviews, err := s.reviewRepo.GetTreesByRecipeID(recipeID)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.reviewRepo.CountByRecipeID(recipeID)
	if err != nil {
		return nil, 0, err
	}
	return reviews, total, nil
}

// Delete removes a review and every reply under it. Only the author or
// an admin may delete; replies vanish with their parent regardless of
// who wrote them.
func (s *reviewService) Delete(userID uint, isAdmin bool, reviewID uint) error {
	review, err := s.reviewRepo.GetReviewByID(reviewID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrReviewNotFound
		}
		return err
	}
	if !isAdmin && review.UserID != userID {
		return ErrNotReviewOwner
	}

	if err := s.reviewRepo.DeleteTree(reviewID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrReviewNotFound
		}
		logger.Error("Failed to delete review tree", err, map[string]interface{}{
			"review_id": reviewID,
		})
		return err
	}

	logger.Info("Review tree deleted", map[string]interface{}{
		"review_id": reviewID,
		"user_id":   userID,
	})
	return nil
}
