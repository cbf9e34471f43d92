package main

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/tastebook/tastebook-backend/config"
	"github.com/tastebook/tastebook-backend/internal/app/model"
	"github.com/tastebook/tastebook-backend/internal/app/repository"
	"github.com/tastebook/tastebook-backend/internal/db"
	"github.com/xuri/excelize/v2"
)

// Imports a recipe catalog from an XLSX file. Expected columns:
// Name | Type | Description | Servings | Prep (min) | Cook (min)
func main() {
	if len(os.Args) < 2 {
		log.Fatal("Usage: go run cmd/seed/main.go <xlsx_file_path>")
	}
	filePath := os.Args[1]

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	if err := db.Initialize(&cfg.Database); err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer db.Close()

	if err := db.Migrate(); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}
	if err := db.Seed(); err != nil {
		log.Fatal("Failed to seed base catalogs:", err)
	}

	recipeRepo := repository.NewRecipeRepository(db.GetDB())

	fmt.Printf("Reading XLSX file: %s\n", filePath)
	recipes, err := readRecipesFromXLSX(filePath)
	if err != nil {
		log.Fatal("Failed to read XLSX:", err)
	}

	fmt.Printf("Total recipes to import: %d\n", len(recipes))
	fmt.Print("Do you want to proceed with the import? (yes/no): ")
	var confirm string
	fmt.Scanln(&confirm)
	if confirm != "yes" && confirm != "y" {
		fmt.Println("Import cancelled.")
		return
	}

	batchSize := 500
	if err := recipeRepo.BulkCreate(recipes, batchSize); err != nil {
		log.Fatal("Failed to bulk create recipes:", err)
	}

	fmt.Printf("Import completed: %d recipes\n", len(recipes))
}

func readRecipesFromXLSX(filePath string) ([]model.Recipe, error) {
	f, err := excelize.OpenFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open XLSX file: %w", err)
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)
	if sheetName == "" {
		return nil, fmt.Errorf("no sheets found in XLSX file")
	}

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to read rows: %w", err)
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("sheet has no data rows")
	}

	var recipes []model.Recipe
	for i, row := range rows[1:] {
		if len(row) == 0 || strings.TrimSpace(cell(row, 0)) == "" {
			continue
		}
		recipes = append(recipes, model.Recipe{
			Name:        strings.TrimSpace(cell(row, 0)),
			RecipeType:  strings.TrimSpace(cell(row, 1)),
			Description: strings.TrimSpace(cell(row, 2)),
			Servings:    cellInt(row, 3, i+2),
			PrepTime:    cellInt(row, 4, i+2),
			CookTime:    cellInt(row, 5, i+2),
		})
	}
	return recipes, nil
}

func cell(row []string, idx int) string {
	if idx >= len(row) {
		return ""
	}
	return row[idx]
}

func cellInt(row []string, idx, rowNum int) int {
	raw := strings.TrimSpace(cell(row, idx))
	if raw == "" {
		return 0
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		log.Printf("row %d: ignoring non-numeric value %q", rowNum, raw)
		return 0
	}
	return n
}
