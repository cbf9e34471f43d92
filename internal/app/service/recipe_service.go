package service

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/tastebook/tastebook-backend/internal/app/model"
	"github.com/tastebook/tastebook-backend/internal/app/repository"
	"github.com/tastebook/tastebook-backend/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrRecipeNotFound = errors.New("recipe not found")
	ErrNotRecipeOwner = errors.New("recipe belongs to another user")
	ErrInvalidMedia   = errors.New("invalid media payload")
)

// MediaStorage resolves raw media bytes to a stored object URL
type MediaStorage interface {
	Upload(ctx context.Context, data []byte, contentType, folder string) (string, error)
}

type RecipeService interface {
	List(query *model.RecipeListQuery) ([]model.Recipe, int64, error)
	GetByID(id uint) (*model.Recipe, error)
	Create(ctx context.Context, userID uint, req *model.CreateRecipeRequest) (*model.Recipe, error)
	Update(ctx context.Context, userID uint, isAdmin bool, recipeID uint, req *model.UpdateRecipeRequest) (*model.Recipe, error)
	Delete(userID uint, isAdmin bool, recipeID uint) error
}

type recipeService struct {
	recipeRepo *repository.RecipeRepository
	reviewRepo *repository.ReviewRepository
	storage    MediaStorage
	db         *gorm.DB
}

func NewRecipeService(
	recipeRepo *repository.RecipeRepository,
	reviewRepo *repository.ReviewRepository,
	storage MediaStorage,
	db *gorm.DB,
) RecipeService {
	return &recipeService{
		recipeRepo: recipeRepo,
		reviewRepo: reviewRepo,
		storage:    storage,
		db:         db,
	}
}

func (s *recipeService) List(query *model.RecipeListQuery) ([]model.Recipe, int64, error) {
	return s.recipeRepo.FindAll(query)
}

// GetByID returns the full recipe graph, with every root review carrying
// its materialized reply tree.
func (s *recipeService) GetByID(id uint) (*model.Recipe, error) {
	recipe, err := s.recipeRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecipeNotFound
		}
		return nil, err
	}

	reviews, err := s.reviewRepo.GetTreesByRecipeID(id)
	if err != nil {
		return nil, err
	}
	recipe.Reviews = reviews

	return recipe, nil
}

// Create writes a recipe with its instructions and taxonomy links as a
// single transaction. Inline media is resolved to URLs before the
// transaction starts, so a storage failure never leaves partial rows and
// a database failure never references half-written recipes.
func (s *recipeService) Create(ctx context.Context, userID uint, req *model.CreateRecipeRequest) (*model.Recipe, error) {
	logger.Info("Creating recipe", map[string]interface{}{
		"user_id":     userID,
		"recipe_name": req.RecipeName,
	})

	uploadedImages, uploadedVideos, err := s.resolveMedia(ctx, req.Media)
	if err != nil {
		return nil, err
	}
	images := append(append([]string{}, req.Images...), uploadedImages...)
	videos := append(append([]string{}, req.Videos...), uploadedVideos...)

	tx := s.db.Begin()
	if tx.Error != nil {
		return nil, tx.Error
	}
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			logger.Error("Panic during recipe creation, rolling back", fmt.Errorf("panic: %v", r), map[string]interface{}{
				"user_id": userID,
			})
		}
	}()

	recipe := model.Recipe{
		Name:        req.RecipeName,
		Description: req.Description,
		RecipeType:  req.RecipeType,
		Servings:    req.Servings,
		PrepTime:    req.PrepTime,
		CookTime:    req.CookTime,
		Images:      images,
		Videos:      videos,
		UserID:      &userID,
	}
	if err := tx.Create(&recipe).Error; err != nil {
		tx.Rollback()
		logger.Error("Failed to create recipe row", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}

	if err := s.insertInstructionsTx(tx, recipe.ID, req.Instructions); err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := s.insertLinksTx(tx, recipe.ID, req.Ingredients, req.Categories); err != nil {
		tx.Rollback()
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	logger.Info("Recipe created", map[string]interface{}{
		"recipe_id": recipe.ID,
		"user_id":   userID,
	})
	return s.recipeRepo.FindByID(recipe.ID)
}

// Update applies a partial recipe update as a single transaction. Absent
// fields stay untouched; a present instruction, ingredient or category
// list (even an empty one) replaces the stored set wholesale. Uploaded
// media is appended to the image and video lists, after any present list
// value has replaced the stored one.
func (s *recipeService) Update(ctx context.Context, userID uint, isAdmin bool, recipeID uint, req *model.UpdateRecipeRequest) (*model.Recipe, error) {
	current, err := s.recipeRepo.FindByID(recipeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecipeNotFound
		}
		return nil, err
	}
	if !isAdmin && (current.UserID == nil || *current.UserID != userID) {
		return nil, ErrNotRecipeOwner
	}

	uploadedImages, uploadedVideos, err := s.resolveMedia(ctx, req.Media)
	if err != nil {
		return nil, err
	}

	updates := buildRecipeUpdates(req)

	images := current.Images
	if req.Images != nil {
		images = *req.Images
	}
	if len(uploadedImages) > 0 {
		images = append(append([]string{}, images...), uploadedImages...)
	}
	if req.Images != nil || len(uploadedImages) > 0 {
		// map-based Updates bypasses the column serializer, so store the
		// JSON text directly
		encoded, err := json.Marshal(images)
		if err != nil {
			return nil, err
		}
		updates["images"] = string(encoded)
	}

	videos := current.Videos
	if req.Videos != nil {
		videos = *req.Videos
	}
	if len(uploadedVideos) > 0 {
		videos = append(append([]string{}, videos...), uploadedVideos...)
	}
	if req.Videos != nil || len(uploadedVideos) > 0 {
		encoded, err := json.Marshal(videos)
		if err != nil {
			return nil, err
		}
		updates["videos"] = string(encoded)
	}

	tx := s.db.Begin()
	if tx.Error != nil {
		return nil, tx.Error
	}
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			logger.Error("Panic during recipe update, rolling back", fmt.Errorf("panic: %v", r), map[string]interface{}{
				"recipe_id": recipeID,
			})
		}
	}()

	var ingredients []model.IngredientRef
	if req.Ingredients != nil {
		ingredients = *req.Ingredients
	}
	var categories []model.CategoryRef
	if req.Categories != nil {
		categories = *req.Categories
	}

	if len(updates) > 0 {
		if err := tx.Model(&model.Recipe{}).Where("id = ?", recipeID).Updates(updates).Error; err != nil {
			tx.Rollback()
			logger.Error("Failed to update recipe row", err, map[string]interface{}{
				"recipe_id": recipeID,
			})
			return nil, err
		}
	}

	if req.Instructions != nil {
		if err := tx.Where("recipe_id = ?", recipeID).Delete(&model.Instruction{}).Error; err != nil {
			tx.Rollback()
			return nil, err
		}
		if err := s.insertInstructionsTx(tx, recipeID, *req.Instructions); err != nil {
			tx.Rollback()
			return nil, err
		}
	}

	if req.Ingredients != nil {
		if err := tx.Where("recipe_id = ?", recipeID).Delete(&model.RecipeIngredient{}).Error; err != nil {
			tx.Rollback()
			return nil, err
		}
	}
	if req.Categories != nil {
		if err := tx.Where("recipe_id = ?", recipeID).Delete(&model.RecipeCategory{}).Error; err != nil {
			tx.Rollback()
			return nil, err
		}
	}
	if err := s.insertLinksTx(tx, recipeID, ingredients, categories); err != nil {
		tx.Rollback()
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	logger.Info("Recipe updated", map[string]interface{}{
		"recipe_id": recipeID,
		"user_id":   userID,
	})
	return s.recipeRepo.FindByID(recipeID)
}

// Delete removes a recipe with everything hanging off it: review trees
// first (children before parents), then links, instructions, favorites,
// history rows and finally the recipe itself, all in one transaction.
func (s *recipeService) Delete(userID uint, isAdmin bool, recipeID uint) error {
	current, err := s.recipeRepo.FindByID(recipeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrRecipeNotFound
		}
		return err
	}
	if !isAdmin && (current.UserID == nil || *current.UserID != userID) {
		return ErrNotRecipeOwner
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.reviewRepo.DeleteByRecipeTx(tx, recipeID); err != nil {
			return err
		}
		return s.recipeRepo.DeleteGraphTx(tx, recipeID)
	})
	if err != nil {
		logger.Error("Failed to delete recipe", err, map[string]interface{}{
			"recipe_id": recipeID,
		})
		return err
	}

	logger.Info("Recipe deleted", map[string]interface{}{
		"recipe_id": recipeID,
		"user_id":   userID,
	})
	return nil
}

// resolveMedia uploads inline payloads and splits the resulting URLs into
// images and videos by content type
func (s *recipeService) resolveMedia(ctx context.Context, media []model.MediaUpload) ([]string, []string, error) {
	var images, videos []string
	for _, m := range media {
		data, err := base64.StdEncoding.DecodeString(m.Data)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %v", ErrInvalidMedia, err)
		}

		folder := "images"
		if strings.HasPrefix(m.ContentType, "video/") {
			folder = "videos"
		}

		url, err := s.storage.Upload(ctx, data, m.ContentType, folder)
		if err != nil {
			return nil, nil, err
		}
		if folder == "videos" {
			videos = append(videos, url)
		} else {
			images = append(images, url)
		}
	}
	return images, videos, nil
}

// insertInstructionsTx writes instruction rows one by one so they keep
// the caller's order. Step numbers are stored exactly as supplied.
func (s *recipeService) insertInstructionsTx(tx *gorm.DB, recipeID uint, instructions []model.InstructionInput) error {
	for _, input := range instructions {
		instruction := model.Instruction{
			RecipeID:    recipeID,
			StepNumber:  input.StepNumber,
			Description: input.Description,
		}
		if err := tx.Create(&instruction).Error; err != nil {
			return err
		}
	}
	return nil
}

// insertLinksTx writes the taxonomy link rows. Referenced ids are not
// pre-checked; a dangling id fails the foreign key constraint and aborts
// the transaction.
func (s *recipeService) insertLinksTx(tx *gorm.DB, recipeID uint, ingredients []model.IngredientRef, categories []model.CategoryRef) error {
	for _, ref := range ingredients {
		link := model.RecipeIngredient{RecipeID: recipeID, IngredientID: ref.IngredientID}
		if err := tx.Create(&link).Error; err != nil {
			return err
		}
	}
	for _, ref := range categories {
		link := model.RecipeCategory{RecipeID: recipeID, CategoryID: ref.CategoryID}
		if err := tx.Create(&link).Error; err != nil {
			return err
		}
	}
	return nil
}

// buildRecipeUpdates maps the present scalar fields of a partial update
// onto their columns. Nil fields produce no assignment at all.
func buildRecipeUpdates(req *model.UpdateRecipeRequest) map[string]interface{} {
	updates := make(map[string]interface{})
	if req.RecipeName != nil {
		updates["name"] = *req.RecipeName
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.RecipeType != nil {
		updates["recipe_type"] = *req.RecipeType
	}
	if req.Servings != nil {
		updates["servings"] = *req.Servings
	}
	if req.PrepTime != nil {
		updates["prep_time"] = *req.PrepTime
	}
	if req.CookTime != nil {
		updates["cook_time"] = *req.CookTime
	}
	return updates
}
