package db

import (
	"github.com/tastebook/tastebook-backend/internal/app/model"
	"github.com/tastebook/tastebook-backend/pkg/logger"
)

// Migrate runs database migrations
func Migrate() error {
	logger.Info("Running database migrations...")

	models := []interface{}{
		&model.User{},
		&model.Ingredient{},
		&model.Category{},
		&model.Recipe{},
		&model.Instruction{},
		&model.RecipeIngredient{},
		&model.RecipeCategory{},
		&model.Review{},
		&model.Favorite{},
		&model.SearchRecord{},
	}

	if err := DB.AutoMigrate(models...); err != nil {
		logger.Error("Failed to run migrations", err)
		return err
	}

	logger.Info("Database migrations completed successfully", map[string]interface{}{
		"models_count": len(models),
	})
	return nil
}

// Seed adds the base taxonomy rows used by the consumer frontend filters
func Seed() error {
	if err := seedCategories(); err != nil {
		logger.Error("Failed to seed categories", err)
		return err
	}
	if err := seedIngredients(); err != nil {
		logger.Error("Failed to seed ingredients", err)
		return err
	}
	return nil
}

func seedCategories() error {
	var count int64
	if err := DB.Model(&model.Category{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		logger.Info("Categories already seeded, skipping...", map[string]interface{}{
			"existing_count": count,
		})
		return nil
	}

	categories := []model.Category{
		{Name: "Breakfast"},
		{Name: "Lunch"},
		{Name: "Dinner"},
		{Name: "Dessert"},
		{Name: "Appetizer"},
		{Name: "Soup"},
		{Name: "Salad"},
		{Name: "Vegetarian"},
		{Name: "Vegan"},
		{Name: "Gluten-Free"},
	}
	for _, category := range categories {
		if err := DB.Create(&category).Error; err != nil {
			return err
		}
	}

	logger.Info("Categories seeded successfully", map[string]interface{}{
		"total": len(categories),
	})
	return nil
}

func seedIngredients() error {
	var count int64
	if err := DB.Model(&model.Ingredient{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		logger.Info("Ingredients already seeded, skipping...", map[string]interface{}{
			"existing_count": count,
		})
		return nil
	}

	ingredients := []model.Ingredient{
		{Name: "Salt"},
		{Name: "Black Pepper"},
		{Name: "Olive Oil"},
		{Name: "Garlic"},
		{Name: "Onion"},
		{Name: "Butter"},
		{Name: "Flour"},
		{Name: "Sugar"},
		{Name: "Egg"},
		{Name: "Milk"},
		{Name: "Tomato"},
		{Name: "Chicken Breast"},
		{Name: "Rice"},
		{Name: "Basil"},
		{Name: "Lemon"},
	}
	for _, ingredient := range ingredients {
		if err := DB.Create(&ingredient).Error; err != nil {
			return err
		}
	}

	logger.Info("Ingredients seeded successfully", map[string]interface{}{
		"total": len(ingredients),
	})
	return nil
}
