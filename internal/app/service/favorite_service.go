package service

import (
	"errors"

	"github.com/tastebook/tastebook-backend/internal/app/model"
	"github.com/tastebook/tastebook-backend/internal/app/repository"
	"github.com/tastebook/tastebook-backend/pkg/logger"
)

var (
	ErrAlreadyFavorited = errors.New("recipe already favorited")
	ErrFavoriteNotFound = errors.New("favorite not found")
)

type FavoriteService interface {
	Add(userID, recipeID uint) error
	Remove(userID, recipeID uint) error
	ListRecipes(userID uint) ([]model.Recipe, error)
}

type favoriteService struct {
	favoriteRepo *repository.FavoriteRepository
	recipeRepo   *repository.RecipeRepository
}

func NewFavoriteService(
	favoriteRepo *repository.FavoriteRepository,
	recipeRepo *repository.RecipeRepository,
) FavoriteService {
	return &favoriteService{
		favoriteRepo: favoriteRepo,
		recipeRepo:   recipeRepo,
	}
}

func (s *favoriteService) Add(userID, recipeID uint) error {
	exists, err := s.recipeRepo.Exists(recipeID)
	if err != nil {
		return err
	}
	if !exists {
		return ErrRecipeNotFound
	}

	favorited, err := s.favoriteRepo.Exists(userID, recipeID)
	if err != nil {
		return err
	}
	if favorited {
		return ErrAlreadyFavorited
	}

	favorite := &model.Favorite{UserID: userID, RecipeID: recipeID}
	if err := s.favoriteRepo.Create(favorite); err != nil {
		logger.Error("Failed to add favorite", err, map[string]interface{}{
			"user_id":   userID,
			"recipe_id": recipeID,
		})
		return err
	}
	return nil
}

func (s *favoriteService) Remove(userID, recipeID uint) error {
	removed, err := s.favoriteRepo.Delete(userID, recipeID)
	if err != nil {
		return err
	}
	if !removed {
		return ErrFavoriteNotFound
	}
	return nil
}

func (s *favoriteService) ListRecipes(userID uint) ([]model.Recipe, error) {
	return s.favoriteRepo.FindRecipesByUser(userID)
}
