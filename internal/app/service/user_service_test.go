package service

import (
	"testing"

	"github.com/tastebook/tastebook-backend/internal/app/model"
	"github.com/tastebook/tastebook-backend/internal/app/repository"
	"github.com/tastebook/tastebook-backend/internal/db"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type userServiceFixture struct {
	service    UserService
	db         *gorm.DB
	reviewRepo *repository.ReviewRepository
}

func setupUserServiceTest(t *testing.T) *userServiceFixture {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	userRepo := repository.NewUserRepository(testDB)
	recipeRepo := repository.NewRecipeRepository(testDB)
	reviewRepo := repository.NewReviewRepository(testDB)
	favoriteRepo := repository.NewFavoriteRepository(testDB)
	searchRepo := repository.NewSearchRepository(testDB)

	return &userServiceFixture{
		service:    NewUserService(userRepo, recipeRepo, reviewRepo, favoriteRepo, searchRepo, testDB),
		db:         testDB,
		reviewRepo: reviewRepo,
	}
}

func (f *userServiceFixture) createUser(t *testing.T, username string) *model.User {
	t.Helper()
	user := &model.User{Username: username, PasswordHash: "hash", Role: model.RoleUser}
	require.NoError(t, f.db.Create(user).Error)
	return user
}

func (f *userServiceFixture) createRecipe(t *testing.T, owner *model.User, name string) *model.Recipe {
	t.Helper()
	recipe := &model.Recipe{Name: name, UserID: &owner.ID}
	require.NoError(t, f.db.Create(recipe).Error)
	require.NoError(t, f.db.Create(&model.Instruction{
		RecipeID:    recipe.ID,
		StepNumber:  1,
		Description: "Cook it",
	}).Error)
	return recipe
}

func (f *userServiceFixture) createReview(t *testing.T, recipeID, userID uint, rating *int, parentID *uint) *model.Review {
	t.Helper()
	review := &model.Review{RecipeID: recipeID, UserID: userID, Rating: rating, ParentID: parentID}
	require.NoError(t, f.reviewRepo.CreateReview(review))
	return review
}

func TestUserService_DeleteAccount_FullCascade(t *testing.T) {
	f := setupUserServiceTest(t)

	alice := f.createUser(t, "alice")
	bob := f.createUser(t, "bob")

	// Alice owns a recipe that Bob has reviewed and favorited
	aliceRecipe := f.createRecipe(t, alice, "Alice's Stew")
	bobReview := f.createReview(t, aliceRecipe.ID, bob.ID, intPtr(4), nil)
	f.createReview(t, aliceRecipe.ID, alice.ID, nil, &bobReview.ID)
	require.NoError(t, f.db.Create(&model.Favorite{UserID: bob.ID, RecipeID: aliceRecipe.ID}).Error)

	// Bob owns a recipe that Alice reviewed; Bob replied under Alice
	bobRecipe := f.createRecipe(t, bob, "Bob's Curry")
	bobRoot := f.createReview(t, bobRecipe.ID, bob.ID, intPtr(5), nil)
	aliceReview := f.createReview(t, bobRecipe.ID, alice.ID, intPtr(3), nil)
	f.createReview(t, bobRecipe.ID, bob.ID, nil, &aliceReview.ID)

	// Alice's favorites and history on Bob's recipe
	require.NoError(t, f.db.Create(&model.Favorite{UserID: alice.ID, RecipeID: bobRecipe.ID}).Error)
	searchRepo := repository.NewSearchRepository(f.db)
	require.NoError(t, searchRepo.Record(alice.ID, bobRecipe.ID))
	require.NoError(t, searchRepo.Record(bob.ID, aliceRecipe.ID))

	require.NoError(t, f.service.DeleteAccount(alice.ID))

	// Alice's user row is gone
	var users int64
	f.db.Model(&model.User{}).Where("id = ?", alice.ID).Count(&users)
	assert.Equal(t, int64(0), users)

	// Her recipe vanished with its entire graph, including Bob's review
	// and favorite on it
	var recipes, reviews, instructions, favorites, searches int64
	f.db.Model(&model.Recipe{}).Where("id = ?", aliceRecipe.ID).Count(&recipes)
	assert.Equal(t, int64(0), recipes)
	f.db.Model(&model.Review{}).Where("recipe_id = ?", aliceRecipe.ID).Count(&reviews)
	assert.Equal(t, int64(0), reviews)
	f.db.Model(&model.Instruction{}).Where("recipe_id = ?", aliceRecipe.ID).Count(&instructions)
	assert.Equal(t, int64(0), instructions)
	f.db.Model(&model.Favorite{}).Where("recipe_id = ?", aliceRecipe.ID).Count(&favorites)
	assert.Equal(t, int64(0), favorites)
	f.db.Model(&model.SearchRecord{}).Where("recipe_id = ?", aliceRecipe.ID).Count(&searches)
	assert.Equal(t, int64(0), searches)

	// Her review on Bob's recipe went, taking Bob's reply beneath it
	var aliceTree int64
	f.db.Model(&model.Review{}).Where("id = ? OR parent_id = ?", aliceReview.ID, aliceReview.ID).Count(&aliceTree)
	assert.Equal(t, int64(0), aliceTree)

	// Bob's world is otherwise intact
	var bobRecipes, bobRoots int64
	f.db.Model(&model.Recipe{}).Where("id = ?", bobRecipe.ID).Count(&bobRecipes)
	assert.Equal(t, int64(1), bobRecipes)
	f.db.Model(&model.Review{}).Where("id = ?", bobRoot.ID).Count(&bobRoots)
	assert.Equal(t, int64(1), bobRoots)

	// Alice's favorites and history rows are gone
	var aliceFavorites, aliceSearches int64
	f.db.Model(&model.Favorite{}).Where("user_id = ?", alice.ID).Count(&aliceFavorites)
	assert.Equal(t, int64(0), aliceFavorites)
	f.db.Model(&model.SearchRecord{}).Where("user_id = ?", alice.ID).Count(&aliceSearches)
	assert.Equal(t, int64(0), aliceSearches)
}

func TestUserService_DeleteAccount_NotFound(t *testing.T) {
	f := setupUserServiceTest(t)

	err := f.service.DeleteAccount(9999)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestUserService_DeleteAccount_FailureRollsBackEverything(t *testing.T) {
	f := setupUserServiceTest(t)

	alice := f.createUser(t, "alice")
	recipe := f.createRecipe(t, alice, "Alice's Stew")
	f.createReview(t, recipe.ID, alice.ID, intPtr(4), nil)
	require.NoError(t, f.db.Create(&model.Favorite{UserID: alice.ID, RecipeID: recipe.ID}).Error)

	// Sabotage the history step, which runs after reviews, instructions
	// and favorites have already been deleted inside the transaction
	require.NoError(t, f.db.Exec("ALTER TABLE searches RENAME TO searches_hidden").Error)

	err := f.service.DeleteAccount(alice.ID)
	require.Error(t, err)

	// The failure must unwind every earlier step
	var users, recipes, reviews, instructions, favorites int64
	f.db.Model(&model.User{}).Where("id = ?", alice.ID).Count(&users)
	assert.Equal(t, int64(1), users)
	f.db.Model(&model.Recipe{}).Where("id = ?", recipe.ID).Count(&recipes)
	assert.Equal(t, int64(1), recipes)
	f.db.Model(&model.Review{}).Where("recipe_id = ?", recipe.ID).Count(&reviews)
	assert.Equal(t, int64(1), reviews)
	f.db.Model(&model.Instruction{}).Where("recipe_id = ?", recipe.ID).Count(&instructions)
	assert.Equal(t, int64(1), instructions)
	f.db.Model(&model.Favorite{}).Where("user_id = ?", alice.ID).Count(&favorites)
	assert.Equal(t, int64(1), favorites)
}

func TestUserService_DeleteAccount_SelfReplyChain(t *testing.T) {
	f := setupUserServiceTest(t)

	alice := f.createUser(t, "alice")
	bob := f.createUser(t, "bob")
	bobRecipe := f.createRecipe(t, bob, "Bob's Curry")

	// Alice replies to her own review; the first tree delete removes
	// the nested one too, and the cascade must cope with that
	root := f.createReview(t, bobRecipe.ID, alice.ID, intPtr(4), nil)
	f.createReview(t, bobRecipe.ID, alice.ID, nil, &root.ID)

	require.NoError(t, f.service.DeleteAccount(alice.ID))

	var count int64
	f.db.Model(&model.Review{}).Where("user_id = ?", alice.ID).Count(&count)
	assert.Equal(t, int64(0), count)
}
