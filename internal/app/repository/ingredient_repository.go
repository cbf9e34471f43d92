package repository

import (
	"github.com/tastebook/tastebook-backend/internal/app/model"

	"gorm.io/gorm"
)

type IngredientRepository struct {
	db *gorm.DB
}

func NewIngredientRepository(db *gorm.DB) *IngredientRepository {
	return &IngredientRepository{db: db}
}

func (r *IngredientRepository) Create(ingredient *model.Ingredient) error {
	return r.db.Create(ingredient).Error
}

func (r *IngredientRepository) FindByID(id uint) (*model.Ingredient, error) {
	var ingredient model.Ingredient
	if err := r.db.First(&ingredient, id).Error; err != nil {
		return nil, err
	}
	return &ingredient, nil
}

func (r *IngredientRepository) FindAll() ([]model.Ingredient, error) {
	var ingredients []model.Ingredient
	err := r.db.Order("name ASC").Find(&ingredients).Error
	return ingredients, err
}

func (r *IngredientRepository) UpdateName(id uint, name string) error {
	result := r.db.Model(&model.Ingredient{}).Where("id = ?", id).Update("name", name)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Delete removes an ingredient and its recipe links in one transaction
func (r *IngredientRepository) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("ingredient_id = ?", id).Delete(&model.RecipeIngredient{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&model.Ingredient{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}
