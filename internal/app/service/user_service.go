package service

import (
	"github.com/tastebook/tastebook-backend/internal/app/repository"
	"github.com/tastebook/tastebook-backend/pkg/logger"
	"gorm.io/gorm"
)

type UserService interface {
	DeleteAccount(userID uint) error
}

type userService struct {
	userRepo     *repository.UserRepository
	recipeRepo   *repository.RecipeRepository
	reviewRepo   *repository.ReviewRepository
	favoriteRepo *repository.FavoriteRepository
	searchRepo   *repository.SearchRepository
	db           *gorm.DB
}

func NewUserService(
	userRepo *repository.UserRepository,
	recipeRepo *repository.RecipeRepository,
	reviewRepo *repository.ReviewRepository,
	favoriteRepo *repository.FavoriteRepository,
	searchRepo *repository.SearchRepository,
	db *gorm.DB,
) UserService {
	return &userService{
		userRepo:     userRepo,
		recipeRepo:   recipeRepo,
		reviewRepo:   reviewRepo,
		favoriteRepo: favoriteRepo,
		searchRepo:   searchRepo,
		db:           db,
	}
}

// DeleteAccount removes a user and everything they own in one
// transaction. Owned recipes go first, each with its full dependent
// graph; then the user's reviews on other recipes, their favorites and
// browsing history, and finally the user row. Any failure rolls the
// whole cascade back.
func (s *userService) DeleteAccount(userID uint) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		recipeIDs, err := s.recipeRepo.OwnedRecipeIDsTx(tx, userID)
		if err != nil {
			return err
		}
		for _, recipeID := range recipeIDs {
			if err := s.reviewRepo.DeleteByRecipeTx(tx, recipeID); err != nil {
				return err
			}
			if err := s.recipeRepo.DeleteGraphTx(tx, recipeID); err != nil {
				return err
			}
		}

		// Reviews the user wrote on recipes that survive. Deleting one
		// tree can take another authored review with it (a reply under
		// an earlier tree), so each id is re-checked before its turn.
		reviewIDs, err := s.reviewRepo.AuthoredReviewIDsTx(tx, userID)
		if err != nil {
			return err
		}
		for _, reviewID := range reviewIDs {
			exists, err := s.reviewRepo.ExistsTx(tx, reviewID)
			if err != nil {
				return err
			}
			if !exists {
				continue
			}
			if err := s.reviewRepo.DeleteTreeTx(tx, reviewID); err != nil {
				return err
			}
		}

		if err := s.favoriteRepo.DeleteByUserTx(tx, userID); err != nil {
			return err
		}
		if err := s.searchRepo.DeleteByUserTx(tx, userID); err != nil {
			return err
		}

		deleted, err := s.userRepo.DeleteTx(tx, userID)
		if err != nil {
			return err
		}
		if !deleted {
			return ErrUserNotFound
		}
		return nil
	})
	if err != nil {
		logger.Error("Account deletion failed", err, map[string]interface{}{
			"user_id": userID,
		})
		return err
	}

	logger.Info("Account deleted", map[string]interface{}{
		"user_id": userID,
	})
	return nil
}
