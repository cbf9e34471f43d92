package repository

import (
	"time"

	"github.com/tastebook/tastebook-backend/internal/app/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SearchRepository struct {
	db *gorm.DB
}

func NewSearchRepository(db *gorm.DB) *SearchRepository {
	return &SearchRepository{db: db}
}

// Record stores that a user looked at a recipe. A repeat visit refreshes
// the timestamp instead of failing on the composite key.
func (r *SearchRepository) Record(userID, recipeID uint) error {
	record := model.SearchRecord{
		UserID:     userID,
		RecipeID:   recipeID,
		SearchedAt: time.Now(),
	}
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "recipe_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"searched_at"}),
	}).Create(&record).Error
}

func (r *SearchRepository) Delete(userID, recipeID uint) (bool, error) {
	result := r.db.Where("user_id = ? AND recipe_id = ?", userID, recipeID).Delete(&model.SearchRecord{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// FindRecipesByUser lists the recipes in a user's browsing history, most
// recent first
func (r *SearchRepository) FindRecipesByUser(userID uint) ([]model.Recipe, error) {
	var recipes []model.Recipe
	err := r.db.
		Joins("JOIN searches s ON s.recipe_id = recipes.id AND s.user_id = ?", userID).
		Preload("User").
		Preload("Categories").
		Order("s.searched_at DESC").
		Find(&recipes).Error
	return recipes, err
}

// DeleteByUser clears a user's entire browsing history and returns how
// many rows were removed
func (r *SearchRepository) DeleteByUser(userID uint) (int64, error) {
	result := r.db.Where("user_id = ?", userID).Delete(&model.SearchRecord{})
	return result.RowsAffected, result.Error
}

// DeleteByUserTx removes a user's browsing history, inside the caller's
// transaction
func (r *SearchRepository) DeleteByUserTx(tx *gorm.DB, userID uint) error {
	return tx.Where("user_id = ?", userID).Delete(&model.SearchRecord{}).Error
}

// DeleteOlderThan prunes history rows last touched before the cutoff and
// returns how many were removed
func (r *SearchRepository) DeleteOlderThan(cutoff time.Time) (int64, error) {
	result := r.db.Where("searched_at < ?", cutoff).Delete(&model.SearchRecord{})
	return result.RowsAffected, result.Error
}
