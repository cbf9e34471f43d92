package repository

import (
	"strings"

	"github.com/tastebook/tastebook-backend/internal/app/model"

	"gorm.io/gorm"
)

type RecipeRepository struct {
	db *gorm.DB
}

func NewRecipeRepository(db *gorm.DB) *RecipeRepository {
	return &RecipeRepository{db: db}
}

// FindByID fetches a recipe with its author, instructions and taxonomy
// links. Instructions come back in insertion order, exactly as supplied
// on the last write.
func (r *RecipeRepository) FindByID(id uint) (*model.Recipe, error) {
	var recipe model.Recipe
	err := r.db.
		Preload("User").
		Preload("Instructions", func(db *gorm.DB) *gorm.DB {
			return db.Order("instructions.id ASC")
		}).
		Preload("Ingredients").
		Preload("Categories").
		First(&recipe, id).Error
	if err != nil {
		return nil, err
	}
	return &recipe, nil
}

// FindAll lists recipes with optional filters and pagination
func (r *RecipeRepository) FindAll(query *model.RecipeListQuery) ([]model.Recipe, int64, error) {
	db := r.db.Model(&model.Recipe{})

	if query.Search != nil && *query.Search != "" {
		pattern := "%" + strings.ToLower(*query.Search) + "%"
		db = db.Where("LOWER(recipes.name) LIKE ? OR LOWER(recipes.description) LIKE ?", pattern, pattern)
	}
	if query.RecipeType != nil && *query.RecipeType != "" {
		db = db.Where("recipes.recipe_type = ?", *query.RecipeType)
	}
	if query.UserID != nil {
		db = db.Where("recipes.user_id = ?", *query.UserID)
	}
	if query.CategoryID != nil {
		db = db.Joins("JOIN recipe_categories rc ON rc.recipe_id = recipes.id AND rc.category_id = ?", *query.CategoryID)
	}
	if query.IngredientID != nil {
		db = db.Joins("JOIN recipe_ingredients ri ON ri.recipe_id = recipes.id AND ri.ingredient_id = ?", *query.IngredientID)
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	page := query.Page
	if page < 1 {
		page = 1
	}
	limit := query.Limit
	if limit < 1 || limit > 100 {
		limit = 20
	}

	sortBy := query.SortBy
	if sortBy == "" {
		sortBy = "created_at"
	}
	sortOrder := query.SortOrder
	if sortOrder == "" {
		sortOrder = "desc"
	}

	var recipes []model.Recipe
	err := db.
		Preload("User").
		Preload("Categories").
		Order("recipes." + sortBy + " " + sortOrder).
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&recipes).Error
	if err != nil {
		return nil, 0, err
	}
	return recipes, total, nil
}

// Exists reports whether a recipe row exists
func (r *RecipeRepository) Exists(id uint) (bool, error) {
	var count int64
	if err := r.db.Model(&model.Recipe{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// OwnedRecipeIDsTx lists ids of recipes owned by a user, inside the
// caller's transaction
func (r *RecipeRepository) OwnedRecipeIDsTx(tx *gorm.DB, userID uint) ([]uint, error) {
	var ids []uint
	err := tx.Model(&model.Recipe{}).Where("user_id = ?", userID).Order("id ASC").Pluck("id", &ids).Error
	return ids, err
}

// DeleteGraphTx removes a recipe's dependent rows and the recipe itself
// inside the caller's transaction. Reviews are not touched here; callers
// delete the review trees first so every child row is gone before its
// parent.
func (r *RecipeRepository) DeleteGraphTx(tx *gorm.DB, recipeID uint) error {
	if err := tx.Where("recipe_id = ?", recipeID).Delete(&model.RecipeIngredient{}).Error; err != nil {
		return err
	}
	if err := tx.Where("recipe_id = ?", recipeID).Delete(&model.RecipeCategory{}).Error; err != nil {
		return err
	}
	if err := tx.Where("recipe_id = ?", recipeID).Delete(&model.Instruction{}).Error; err != nil {
		return err
	}
	if err := tx.Where("recipe_id = ?", recipeID).Delete(&model.Favorite{}).Error; err != nil {
		return err
	}
	if err := tx.Where("recipe_id = ?", recipeID).Delete(&model.SearchRecord{}).Error; err != nil {
		return err
	}
	return tx.Delete(&model.Recipe{}, recipeID).Error
}

// BulkCreate inserts recipes in batches, used by the import tool
func (r *RecipeRepository) BulkCreate(recipes []model.Recipe, batchSize int) error {
	return r.db.CreateInBatches(recipes, batchSize).Error
}

// FindAllForExport fetches every recipe with its author and taxonomy for
// the admin spreadsheet export
func (r *RecipeRepository) FindAllForExport() ([]model.Recipe, error) {
	var recipes []model.Recipe
	err := r.db.
		Preload("User").
		Preload("Ingredients").
		Preload("Categories").
		Order("recipes.id ASC").
		Find(&recipes).Error
	return recipes, err
}
