package repository

import (
	"github.com/tastebook/tastebook-backend/internal/app/model"

	"gorm.io/gorm"
)

type FavoriteRepository struct {
	db *gorm.DB
}

func NewFavoriteRepository(db *gorm.DB) *FavoriteRepository {
	return &FavoriteRepository{db: db}
}

func (r *FavoriteRepository) Create(favorite *model.Favorite) error {
	return r.db.Create(favorite).Error
}

func (r *FavoriteRepository) Delete(userID, recipeID uint) (bool, error) {
	result := r.db.Where("user_id = ? AND recipe_id = ?", userID, recipeID).Delete(&model.Favorite{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *FavoriteRepository) Exists(userID, recipeID uint) (bool, error) {
	var count int64
	err := r.db.Model(&model.Favorite{}).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// FindRecipesByUser lists the recipes a user has favorited, newest
// favorite first
func (r *FavoriteRepository) FindRecipesByUser(userID uint) ([]model.Recipe, error) {
	var recipes []model.Recipe
	err := r.db.
		Joins("JOIN favorites f ON f.recipe_id = recipes.id AND f.user_id = ?", userID).
		Preload("User").
		Preload("Categories").
		Order("f.created_at DESC").
		Find(&recipes).Error
	return recipes, err
}

// DeleteByUserTx removes every favorite a user has saved, inside the
// caller's transaction
func (r *FavoriteRepository) DeleteByUserTx(tx *gorm.DB, userID uint) error {
	return tx.Where("user_id = ?", userID).Delete(&model.Favorite{}).Error
}
