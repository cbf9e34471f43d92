package service

import (
	"errors"
	"time"

	"github.com/tastebook/tastebook-backend/internal/app/model"
	"github.com/tastebook/tastebook-backend/internal/app/repository"
	"github.com/tastebook/tastebook-backend/pkg/logger"
)

var ErrSearchNotFound = errors.New("search record not found")

type SearchService interface {
	Record(userID, recipeID uint) error
	Remove(userID, recipeID uint) error
	Clear(userID uint) (int64, error)
	ListRecipes(userID uint) ([]model.Recipe, error)
	PruneOlderThan(retention time.Duration) (int64, error)
}

type searchService struct {
	searchRepo *repository.SearchRepository
	recipeRepo *repository.RecipeRepository
}

func NewSearchService(
	searchRepo *repository.SearchRepository,
	recipeRepo *repository.RecipeRepository,
) SearchService {
	return &searchService{
		searchRepo: searchRepo,
		recipeRepo: recipeRepo,
	}
}

// Record stores that the user viewed a recipe; a repeat view refreshes
// the existing row's timestamp
func (s *searchService) Record(userID, recipeID uint) error {
	exists, err := s.recipeRepo.Exists(recipeID)
	if err != nil {
		return err
	}
	if !exists {
		return ErrRecipeNotFound
	}
	return s.searchRepo.Record(userID, recipeID)
}

func (s *searchService) Remove(userID, recipeID uint) error {
	removed, err := s.searchRepo.Delete(userID, recipeID)
	if err != nil {
		return err
	}
	if !removed {
		return ErrSearchNotFound
	}
	return nil
}

// Clear wipes the user's entire history; clearing an already-empty
// history is not an error
func (s *searchService) Clear(userID uint) (int64, error) {
	return s.searchRepo.DeleteByUser(userID)
}

func (s *searchService) ListRecipes(userID uint) ([]model.Recipe, error) {
	return s.searchRepo.FindRecipesByUser(userID)
}

// PruneOlderThan drops history rows last touched before now minus the
// retention window
func (s *searchService) PruneOlderThan(retention time.Duration) (int64, error) {
	cutoff := time.Now().Add(-retention)
	pruned, err := s.searchRepo.DeleteOlderThan(cutoff)
	if err != nil {
		logger.Error("Failed to prune browsing history", err, nil)
		return 0, err
	}
	if pruned > 0 {
		logger.Info("Pruned browsing history", map[string]interface{}{
			"rows":   pruned,
			"cutoff": cutoff,
		})
	}
	return pruned, nil
}
