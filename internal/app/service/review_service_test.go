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

func setupReviewServiceTest(t *testing.T) (ReviewService, *gorm.DB, *model.User, *model.Recipe) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	reviewRepo := repository.NewReviewRepository(testDB)
	recipeRepo := repository.NewRecipeRepository(testDB)
	userRepo := repository.NewUserRepository(testDB)
	svc := NewReviewService(reviewRepo, recipeRepo, userRepo)

	user := &model.User{Username: "taster", PasswordHash: "hash", Role: model.RoleUser}
	require.NoError(t, testDB.Create(user).Error)

	recipe := &model.Recipe{Name: "Bibimbap", UserID: &user.ID}
	require.NoError(t, testDB.Create(recipe).Error)

	return svc, testDB, user, recipe
}

func TestReviewService_Create_RootReview(t *testing.T) {
	svc, _, user, recipe := setupReviewServiceTest(t)

	review, err := svc.Create(user.ID, &model.CreateReviewRequest{
		RecipeID: recipe.ID,
		Rating:   intPtr(4),
		Comment:  "Really good",
	})
	require.NoError(t, err)

	assert.Equal(t, recipe.ID, review.RecipeID)
	require.NotNil(t, review.Rating)
	assert.Equal(t, 4, *review.Rating)
	assert.Nil(t, review.ParentID)
	require.NotNil(t, review.User)
	assert.Equal(t, "taster", review.User.Username)
}

func TestReviewService_GetByRecipe_TotalCountsReplies(t *testing.T) {
	svc, _, user, recipe := setupReviewServiceTest(t)

	root, err := svc.Create(user.ID, &model.CreateReviewRequest{
		RecipeID: recipe.ID,
		Rating:   intPtr(5),
		Comment:  "Wonderful",
	})
	require.NoError(t, err)
	_, err = svc.Create(user.ID, &model.CreateReviewRequest{
		RecipeID:       recipe.ID,
		Comment:        "Glad you liked it",
		ParentReviewID: &root.ID,
	})
	require.NoError(t, err)

	reviews, total, err := svc.GetByRecipe(recipe.ID)
	require.NoError(t, err)

	// One root in the tree list, but the total covers replies too
	require.Len(t, reviews, 1)
	require.Len(t, reviews[0].Replies, 1)
	assert.Equal(t, int64(2), total)
}

func TestReviewService_Create_RootRequiresRating(t *testing.T) {
	svc, _, user, recipe := setupReviewServiceTest(t)

	_, err := svc.Create(user.ID, &model.CreateReviewRequest{
		RecipeID: recipe.ID,
		Comment:  "no rating",
	})
	assert.ErrorIs(t, err, ErrRatingRequired)
}

func TestReviewService_Create_RatingRange(t *testing.T) {
	svc, _, user, recipe := setupReviewServiceTest(t)

	for _, rating := range []int{0, 6, -1} {
		_, err := svc.Create(user.ID, &model.CreateReviewRequest{
			RecipeID: recipe.ID,
			Rating:   intPtr(rating),
		})
		assert.ErrorIs(t, err, ErrInvalidRating, "rating %d", rating)
	}
}

func TestReviewService_Create_ReplyWithoutRating(t *testing.T) {
	svc, _, user, recipe := setupReviewServiceTest(t)

	root, err := svc.Create(user.ID, &model.CreateReviewRequest{
		RecipeID: recipe.ID,
		Rating:   intPtr(5),
	})
	require.NoError(t, err)

	// Replies are exempt from the rating requirement
	reply, err := svc.Create(user.ID, &model.CreateReviewRequest{
		RecipeID:       recipe.ID,
		Comment:        "agreed",
		ParentReviewID: &root.ID,
	})
	require.NoError(t, err)
	assert.Nil(t, reply.Rating)
	require.NotNil(t, reply.ParentID)
	assert.Equal(t, root.ID, *reply.ParentID)
}

func TestReviewService_Create_UnknownRecipe(t *testing.T) {
	svc, _, user, _ := setupReviewServiceTest(t)

	_, err := svc.Create(user.ID, &model.CreateReviewRequest{
		RecipeID: 4242,
		Rating:   intPtr(3),
	})
	assert.ErrorIs(t, err, ErrRecipeNotFound)
}

func TestReviewService_Create_UnknownUser(t *testing.T) {
	svc, _, _, recipe := setupReviewServiceTest(t)

	_, err := svc.Create(4242, &model.CreateReviewRequest{
		RecipeID: recipe.ID,
		Rating:   intPtr(3),
	})
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestReviewService_Create_UnknownParent(t *testing.T) {
	svc, _, user, recipe := setupReviewServiceTest(t)

	missing := uint(999)
	_, err := svc.Create(user.ID, &model.CreateReviewRequest{
		RecipeID:       recipe.ID,
		ParentReviewID: &missing,
	})
	assert.ErrorIs(t, err, ErrParentReviewNotFound)
}

func TestReviewService_Create_ParentOnOtherRecipe(t *testing.T) {
	svc, testDB, user, recipe := setupReviewServiceTest(t)

	other := &model.Recipe{Name: "Other", UserID: &user.ID}
	require.NoError(t, testDB.Create(other).Error)

	root, err := svc.Create(user.ID, &model.CreateReviewRequest{
		RecipeID: other.ID,
		Rating:   intPtr(5),
	})
	require.NoError(t, err)

	_, err = svc.Create(user.ID, &model.CreateReviewRequest{
		RecipeID:       recipe.ID,
		ParentReviewID: &root.ID,
	})
	assert.ErrorIs(t, err, ErrParentRecipeMismatch)
}

func TestReviewService_Delete_OwnerOnly(t *testing.T) {
	svc, testDB, user, recipe := setupReviewServiceTest(t)

	other := &model.User{Username: "other", PasswordHash: "hash", Role: model.RoleUser}
	require.NoError(t, testDB.Create(other).Error)

	review, err := svc.Create(user.ID, &model.CreateReviewRequest{
		RecipeID: recipe.ID,
		Rating:   intPtr(2),
	})
	require.NoError(t, err)

	err = svc.Delete(other.ID, false, review.ID)
	assert.ErrorIs(t, err, ErrNotReviewOwner)

	// Admin override
	require.NoError(t, svc.Delete(other.ID, true, review.ID))

	err = svc.Delete(user.ID, false, review.ID)
	assert.ErrorIs(t, err, ErrReviewNotFound)
}

func TestReviewService_Delete_TakesRepliesAlong(t *testing.T) {
	svc, testDB, user, recipe := setupReviewServiceTest(t)

	other := &model.User{Username: "other", PasswordHash: "hash", Role: model.RoleUser}
	require.NoError(t, testDB.Create(other).Error)

	root, err := svc.Create(user.ID, &model.CreateReviewRequest{
		RecipeID: recipe.ID,
		Rating:   intPtr(5),
	})
	require.NoError(t, err)

	// Someone else's reply still goes when the root goes
	_, err = svc.Create(other.ID, &model.CreateReviewRequest{
		RecipeID:       recipe.ID,
		Comment:        "reply",
		ParentReviewID: &root.ID,
	})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(user.ID, false, root.ID))

	var count int64
	testDB.Model(&model.Review{}).Count(&count)
	assert.Equal(t, int64(0), count)
}
