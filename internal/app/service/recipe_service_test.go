package service

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"
	"testing"

	"github.com/tastebook/tastebook-backend/internal/app/model"
	"github.com/tastebook/tastebook-backend/internal/app/repository"
	"github.com/tastebook/tastebook-backend/internal/db"
	"github.com/tastebook/tastebook-backend/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// fakeStorage stands in for S3 with the same validation rules
type fakeStorage struct {
	uploads int
}

func (f *fakeStorage) Upload(_ context.Context, data []byte, contentType, folder string) (string, error) {
	switch contentType {
	case "image/jpeg", "image/png", "video/mp4":
	default:
		return "", storage.ErrInvalidFileType
	}
	if int64(len(data)) > storage.MaxUploadSize {
		return "", storage.ErrFileTooLarge
	}
	f.uploads++
	return fmt.Sprintf("https://cdn.test/%s/upload-%d", folder, f.uploads), nil
}

type recipeServiceFixture struct {
	service    RecipeService
	db         *gorm.DB
	storage    *fakeStorage
	user       *model.User
	ingredient *model.Ingredient
	category   *model.Category
}

func setupRecipeServiceTest(t *testing.T) *recipeServiceFixture {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	recipeRepo := repository.NewRecipeRepository(testDB)
	reviewRepo := repository.NewReviewRepository(testDB)
	fake := &fakeStorage{}

	svc := NewRecipeService(recipeRepo, reviewRepo, fake, testDB)

	user := &model.User{Username: "chef", PasswordHash: "hash", Role: model.RoleUser}
	require.NoError(t, testDB.Create(user).Error)

	ingredient := &model.Ingredient{Name: "Tomato"}
	require.NoError(t, testDB.Create(ingredient).Error)
	category := &model.Category{Name: "Dinner"}
	require.NoError(t, testDB.Create(category).Error)

	return &recipeServiceFixture{
		service:    svc,
		db:         testDB,
		storage:    fake,
		user:       user,
		ingredient: ingredient,
		category:   category,
	}
}

func strPtr(v string) *string { return &v }

func encodedMedia(size int) string {
	return base64.StdEncoding.EncodeToString(make([]byte, size))
}

func TestRecipeService_Create_FullGraph(t *testing.T) {
	f := setupRecipeServiceTest(t)

	req := &model.CreateRecipeRequest{
		RecipeName:  "Pasta Arrabbiata",
		Description: "Spicy tomato pasta",
		RecipeType:  "main",
		Servings:    2,
		PrepTime:    10,
		CookTime:    20,
		Images:      []string{"https://cdn.test/existing.jpg"},
		Instructions: []model.InstructionInput{
			{StepNumber: 1, Description: "Boil the pasta"},
			{StepNumber: 2, Description: "Make the sauce"},
			{StepNumber: 3, Description: "Combine"},
		},
		Ingredients: []model.IngredientRef{{IngredientID: f.ingredient.ID}},
		Categories:  []model.CategoryRef{{CategoryID: f.category.ID}},
	}

	recipe, err := f.service.Create(context.Background(), f.user.ID, req)
	require.NoError(t, err)

	assert.Equal(t, "Pasta Arrabbiata", recipe.Name)
	require.NotNil(t, recipe.UserID)
	assert.Equal(t, f.user.ID, *recipe.UserID)

	require.Len(t, recipe.Instructions, 3)
	// Instructions keep the caller's order and step numbers
	assert.Equal(t, 1, recipe.Instructions[0].StepNumber)
	assert.Equal(t, "Boil the pasta", recipe.Instructions[0].Description)
	assert.Equal(t, 3, recipe.Instructions[2].StepNumber)

	require.Len(t, recipe.Ingredients, 1)
	assert.Equal(t, "Tomato", recipe.Ingredients[0].Name)
	require.Len(t, recipe.Categories, 1)
	assert.Equal(t, "Dinner", recipe.Categories[0].Name)
}

func TestRecipeService_Create_OutOfOrderStepNumbers(t *testing.T) {
	f := setupRecipeServiceTest(t)

	req := &model.CreateRecipeRequest{
		RecipeName: "Backwards Bake",
		Instructions: []model.InstructionInput{
			{StepNumber: 3, Description: "Serve"},
			{StepNumber: 1, Description: "Preheat"},
			{StepNumber: 2, Description: "Bake"},
		},
	}

	recipe, err := f.service.Create(context.Background(), f.user.ID, req)
	require.NoError(t, err)

	// Rows keep the caller's order and their supplied step numbers,
	// duplicates and gaps included; nothing renumbers them
	require.Len(t, recipe.Instructions, 3)
	assert.Equal(t, 3, recipe.Instructions[0].StepNumber)
	assert.Equal(t, "Serve", recipe.Instructions[0].Description)
	assert.Equal(t, 1, recipe.Instructions[1].StepNumber)
	assert.Equal(t, "Preheat", recipe.Instructions[1].Description)
	assert.Equal(t, 2, recipe.Instructions[2].StepNumber)
}

func TestRecipeService_Create_UnknownIngredientRollsBack(t *testing.T) {
	f := setupRecipeServiceTest(t)

	req := &model.CreateRecipeRequest{
		RecipeName: "Ghost Dish",
		Instructions: []model.InstructionInput{
			{StepNumber: 1, Description: "Stir"},
		},
		Ingredients: []model.IngredientRef{{IngredientID: 9999}},
	}

	_, err := f.service.Create(context.Background(), f.user.ID, req)
	// The dangling id is not pre-checked; the link insert fails the
	// foreign key constraint and aborts the transaction
	require.Error(t, err)
	assert.Contains(t, strings.ToLower(err.Error()), "foreign key")

	// Nothing from the attempt may survive
	var recipes, instructions int64
	f.db.Model(&model.Recipe{}).Count(&recipes)
	f.db.Model(&model.Instruction{}).Count(&instructions)
	assert.Equal(t, int64(0), recipes)
	assert.Equal(t, int64(0), instructions)
}

func TestRecipeService_Create_WithMedia(t *testing.T) {
	f := setupRecipeServiceTest(t)

	req := &model.CreateRecipeRequest{
		RecipeName: "Filmed Dish",
		Images:     []string{"https://cdn.test/cover.jpg"},
		Media: []model.MediaUpload{
			{Data: encodedMedia(128), ContentType: "image/png"},
			{Data: encodedMedia(256), ContentType: "video/mp4"},
		},
	}

	recipe, err := f.service.Create(context.Background(), f.user.ID, req)
	require.NoError(t, err)

	// Provided URLs come first, uploads are appended
	require.Len(t, recipe.Images, 2)
	assert.Equal(t, "https://cdn.test/cover.jpg", recipe.Images[0])
	assert.Contains(t, recipe.Images[1], "/images/")
	require.Len(t, recipe.Videos, 1)
	assert.Contains(t, recipe.Videos[0], "/videos/")
}

func TestRecipeService_Create_RejectedMediaWritesNothing(t *testing.T) {
	f := setupRecipeServiceTest(t)

	req := &model.CreateRecipeRequest{
		RecipeName: "Oversized",
		Media: []model.MediaUpload{
			{Data: encodedMedia(storage.MaxUploadSize + 1), ContentType: "image/jpeg"},
		},
	}

	_, err := f.service.Create(context.Background(), f.user.ID, req)
	assert.ErrorIs(t, err, storage.ErrFileTooLarge)

	var recipes int64
	f.db.Model(&model.Recipe{}).Count(&recipes)
	assert.Equal(t, int64(0), recipes)

	req.Media[0] = model.MediaUpload{Data: encodedMedia(16), ContentType: "image/gif"}
	_, err = f.service.Create(context.Background(), f.user.ID, req)
	assert.ErrorIs(t, err, storage.ErrInvalidFileType)
}

func (f *recipeServiceFixture) createBaseRecipe(t *testing.T) *model.Recipe {
	t.Helper()
	req := &model.CreateRecipeRequest{
		RecipeName:  "Base Dish",
		Description: "Before updates",
		RecipeType:  "main",
		Servings:    4,
		Images:      []string{"https://cdn.test/a.jpg"},
		Instructions: []model.InstructionInput{
			{StepNumber: 1, Description: "Old step one"},
			{StepNumber: 2, Description: "Old step two"},
		},
		Ingredients: []model.IngredientRef{{IngredientID: f.ingredient.ID}},
		Categories:  []model.CategoryRef{{CategoryID: f.category.ID}},
	}
	recipe, err := f.service.Create(context.Background(), f.user.ID, req)
	require.NoError(t, err)
	return recipe
}

func TestRecipeService_Update_PartialScalars(t *testing.T) {
	f := setupRecipeServiceTest(t)
	recipe := f.createBaseRecipe(t)

	servings := 6
	updated, err := f.service.Update(context.Background(), f.user.ID, false, recipe.ID, &model.UpdateRecipeRequest{
		RecipeName: strPtr("Renamed Dish"),
		Servings:   &servings,
	})
	require.NoError(t, err)

	assert.Equal(t, "Renamed Dish", updated.Name)
	assert.Equal(t, 6, updated.Servings)
	// Absent fields stay untouched
	assert.Equal(t, "Before updates", updated.Description)
	assert.Equal(t, "main", updated.RecipeType)
	assert.Len(t, updated.Instructions, 2)
	assert.Len(t, updated.Ingredients, 1)
}

func TestRecipeService_Update_ReplacesInstructionList(t *testing.T) {
	f := setupRecipeServiceTest(t)
	recipe := f.createBaseRecipe(t)

	newSteps := []model.InstructionInput{
		{StepNumber: 1, Description: "New step"},
	}
	updated, err := f.service.Update(context.Background(), f.user.ID, false, recipe.ID, &model.UpdateRecipeRequest{
		Instructions: &newSteps,
	})
	require.NoError(t, err)

	require.Len(t, updated.Instructions, 1)
	assert.Equal(t, "New step", updated.Instructions[0].Description)

	// No leftover rows from the old list
	var count int64
	f.db.Model(&model.Instruction{}).Where("recipe_id = ?", recipe.ID).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestRecipeService_Update_EmptyListClears(t *testing.T) {
	f := setupRecipeServiceTest(t)
	recipe := f.createBaseRecipe(t)

	empty := []model.IngredientRef{}
	updated, err := f.service.Update(context.Background(), f.user.ID, false, recipe.ID, &model.UpdateRecipeRequest{
		Ingredients: &empty,
	})
	require.NoError(t, err)

	assert.Empty(t, updated.Ingredients)
	// A list left absent survives
	assert.Len(t, updated.Categories, 1)
}

func TestRecipeService_Update_MediaAppends(t *testing.T) {
	f := setupRecipeServiceTest(t)
	recipe := f.createBaseRecipe(t)

	// Upload without an images value appends to the stored list
	updated, err := f.service.Update(context.Background(), f.user.ID, false, recipe.ID, &model.UpdateRecipeRequest{
		Media: []model.MediaUpload{{Data: encodedMedia(64), ContentType: "image/jpeg"}},
	})
	require.NoError(t, err)
	require.Len(t, updated.Images, 2)
	assert.Equal(t, "https://cdn.test/a.jpg", updated.Images[0])

	// A present images value replaces first, then uploads append
	replacement := []string{"https://cdn.test/new.jpg"}
	updated, err = f.service.Update(context.Background(), f.user.ID, false, recipe.ID, &model.UpdateRecipeRequest{
		Images: &replacement,
		Media:  []model.MediaUpload{{Data: encodedMedia(64), ContentType: "image/png"}},
	})
	require.NoError(t, err)
	require.Len(t, updated.Images, 2)
	assert.Equal(t, "https://cdn.test/new.jpg", updated.Images[0])
	assert.Contains(t, updated.Images[1], "/images/")
}

func TestRecipeService_Update_OwnershipEnforced(t *testing.T) {
	f := setupRecipeServiceTest(t)
	recipe := f.createBaseRecipe(t)

	stranger := &model.User{Username: "stranger", PasswordHash: "hash", Role: model.RoleUser}
	require.NoError(t, f.db.Create(stranger).Error)

	_, err := f.service.Update(context.Background(), stranger.ID, false, recipe.ID, &model.UpdateRecipeRequest{
		RecipeName: strPtr("Hijacked"),
	})
	assert.ErrorIs(t, err, ErrNotRecipeOwner)

	// Admins may edit anyone's recipe
	_, err = f.service.Update(context.Background(), stranger.ID, true, recipe.ID, &model.UpdateRecipeRequest{
		RecipeName: strPtr("Moderated"),
	})
	assert.NoError(t, err)
}

func TestRecipeService_Update_NotFound(t *testing.T) {
	f := setupRecipeServiceTest(t)

	_, err := f.service.Update(context.Background(), f.user.ID, false, 777, &model.UpdateRecipeRequest{})
	assert.ErrorIs(t, err, ErrRecipeNotFound)
}

func TestRecipeService_Delete_RemovesDependentGraph(t *testing.T) {
	f := setupRecipeServiceTest(t)
	recipe := f.createBaseRecipe(t)

	reviewRepo := repository.NewReviewRepository(f.db)
	root := &model.Review{RecipeID: recipe.ID, UserID: f.user.ID, Rating: intPtr(5), Comment: "root"}
	require.NoError(t, reviewRepo.CreateReview(root))
	reply := &model.Review{RecipeID: recipe.ID, UserID: f.user.ID, Comment: "reply", ParentID: &root.ID}
	require.NoError(t, reviewRepo.CreateReview(reply))

	require.NoError(t, f.db.Create(&model.Favorite{UserID: f.user.ID, RecipeID: recipe.ID}).Error)

	require.NoError(t, f.service.Delete(f.user.ID, false, recipe.ID))

	for _, tbl := range []struct {
		name   string
		target interface{}
	}{
		{"recipes", &model.Recipe{}},
		{"reviews", &model.Review{}},
		{"instructions", &model.Instruction{}},
		{"recipe_ingredients", &model.RecipeIngredient{}},
		{"recipe_categories", &model.RecipeCategory{}},
		{"favorites", &model.Favorite{}},
	} {
		var count int64
		f.db.Model(tbl.target).Count(&count)
		assert.Equal(t, int64(0), count, "table %s should be empty", tbl.name)
	}
}

func TestRecipeService_GetByID_IncludesReviewTrees(t *testing.T) {
	f := setupRecipeServiceTest(t)
	recipe := f.createBaseRecipe(t)

	reviewRepo := repository.NewReviewRepository(f.db)
	root := &model.Review{RecipeID: recipe.ID, UserID: f.user.ID, Rating: intPtr(5), Comment: "root"}
	require.NoError(t, reviewRepo.CreateReview(root))
	reply := &model.Review{RecipeID: recipe.ID, UserID: f.user.ID, Comment: "reply", ParentID: &root.ID}
	require.NoError(t, reviewRepo.CreateReview(reply))

	got, err := f.service.GetByID(recipe.ID)
	require.NoError(t, err)

	require.Len(t, got.Reviews, 1)
	assert.Equal(t, root.ID, got.Reviews[0].ID)
	require.Len(t, got.Reviews[0].Replies, 1)
	assert.Equal(t, reply.ID, got.Reviews[0].Replies[0].ID)
}

func intPtr(v int) *int { return &v }
