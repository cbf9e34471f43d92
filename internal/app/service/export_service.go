package service

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/tastebook/tastebook-backend/internal/app/model"
	"github.com/tastebook/tastebook-backend/internal/app/repository"
	"github.com/tastebook/tastebook-backend/pkg/logger"
	"github.com/xuri/excelize/v2"
)

// ExportService renders catalog data as spreadsheets for the admin UI
type ExportService interface {
	RecipesXLSX() ([]byte, error)
}

type exportService struct {
	recipeRepo *repository.RecipeRepository
}

func NewExportService(recipeRepo *repository.RecipeRepository) ExportService {
	return &exportService{recipeRepo: recipeRepo}
}

var recipeExportHeader = []string{
	"ID", "Name", "Type", "Author", "Servings",
	"Prep (min)", "Cook (min)", "Categories", "Ingredients", "Created",
}

func (s *exportService) RecipesXLSX() ([]byte, error) {
	recipes, err := s.recipeRepo.FindAllForExport()
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := "Recipes"
	f.SetSheetName(f.GetSheetName(0), sheet)

	for col, title := range recipeExportHeader {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheet, cell, title); err != nil {
			return nil, err
		}
	}

	for i, recipe := range recipes {
		row := i + 2
		values := []interface{}{
			recipe.ID,
			recipe.Name,
			recipe.RecipeType,
			authorName(&recipe),
			recipe.Servings,
			recipe.PrepTime,
			recipe.CookTime,
			joinNames(categoryNames(recipe.Categories)),
			joinNames(ingredientNames(recipe.Ingredients)),
			recipe.CreatedAt.Format("2006-01-02 15:04:05"),
		}
		for col, value := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return nil, err
			}
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to write spreadsheet: %w", err)
	}

	logger.Info("Exported recipe spreadsheet", map[string]interface{}{
		"recipe_count": len(recipes),
	})
	return buf.Bytes(), nil
}

func authorName(recipe *model.Recipe) string {
	if recipe.User == nil {
		return ""
	}
	return recipe.User.Username
}

func categoryNames(categories []model.Category) []string {
	names := make([]string, 0, len(categories))
	for _, c := range categories {
		names = append(names, c.Name)
	}
	return names
}

func ingredientNames(ingredients []model.Ingredient) []string {
	names := make([]string, 0, len(ingredients))
	for _, i := range ingredients {
		names = append(names, i.Name)
	}
	return names
}

func joinNames(names []string) string {
	return strings.Join(names, ", ")
}
