package service

import (
	"testing"
	"time"

	"github.com/tastebook/tastebook-backend/internal/app/model"
	"github.com/tastebook/tastebook-backend/internal/app/repository"
	"github.com/tastebook/tastebook-backend/internal/db"
	"github.com/tastebook/tastebook-backend/pkg/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupAuthServiceTest(t *testing.T) (AuthService, *gorm.DB) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	userRepo := repository.NewUserRepository(testDB)
	svc := NewAuthService(userRepo, "test-secret", 15*time.Minute, 7*24*time.Hour)
	return svc, testDB
}

func TestAuthService_Register(t *testing.T) {
	svc, _ := setupAuthServiceTest(t)

	user, tokens, err := svc.Register(&model.RegisterRequest{
		Username: "homecook",
		Password: "secret-password",
		Email:    "cook@example.com",
		FullName: "Home Cook",
	})
	require.NoError(t, err)

	assert.Equal(t, "homecook", user.Username)
	require.NotNil(t, user.Email)
	assert.Equal(t, "cook@example.com", *user.Email)
	assert.Equal(t, model.RoleUser, user.Role)
	assert.NotEmpty(t, tokens.AccessToken)

	// The stored hash must verify against the original password
	assert.True(t, util.VerifyPassword(user.PasswordHash, "secret-password"))
}

func TestAuthService_Register_OptionalFieldsOmitted(t *testing.T) {
	svc, _ := setupAuthServiceTest(t)

	user, _, err := svc.Register(&model.RegisterRequest{
		Username: "minimal",
		Password: "secret-password",
	})
	require.NoError(t, err)

	assert.Nil(t, user.Email)
	assert.Nil(t, user.FullName)
}

func TestAuthService_Register_DuplicateUsername(t *testing.T) {
	svc, _ := setupAuthServiceTest(t)

	_, _, err := svc.Register(&model.RegisterRequest{Username: "homecook", Password: "secret-password"})
	require.NoError(t, err)

	_, _, err = svc.Register(&model.RegisterRequest{Username: "homecook", Password: "other-password"})
	assert.ErrorIs(t, err, ErrUsernameAlreadyExists)
}

func TestAuthService_Login(t *testing.T) {
	svc, _ := setupAuthServiceTest(t)

	_, _, err := svc.Register(&model.RegisterRequest{Username: "homecook", Password: "secret-password"})
	require.NoError(t, err)

	user, tokens, err := svc.Login("homecook", "secret-password")
	require.NoError(t, err)
	assert.Equal(t, "homecook", user.Username)
	assert.NotEmpty(t, tokens.AccessToken)

	_, _, err = svc.Login("homecook", "wrong-password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, err = svc.Login("nobody", "secret-password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthService_UpdateProfile(t *testing.T) {
	svc, _ := setupAuthServiceTest(t)

	user, _, err := svc.Register(&model.RegisterRequest{
		Username: "homecook",
		Password: "secret-password",
		Email:    "cook@example.com",
		FullName: "Home Cook",
	})
	require.NoError(t, err)

	// A present field updates, absent fields stay
	updated, err := svc.UpdateProfile(user.ID, &model.UpdateUserRequest{
		FullName: strPtr("New Name"),
	})
	require.NoError(t, err)
	require.NotNil(t, updated.FullName)
	assert.Equal(t, "New Name", *updated.FullName)
	require.NotNil(t, updated.Email)
	assert.Equal(t, "cook@example.com", *updated.Email)

	// An empty string clears the column
	updated, err = svc.UpdateProfile(user.ID, &model.UpdateUserRequest{
		Email: strPtr(""),
	})
	require.NoError(t, err)
	assert.Nil(t, updated.Email)
	require.NotNil(t, updated.FullName)
	assert.Equal(t, "New Name", *updated.FullName)
}

func TestAuthService_UpdateProfile_Password(t *testing.T) {
	svc, _ := setupAuthServiceTest(t)

	user, _, err := svc.Register(&model.RegisterRequest{Username: "homecook", Password: "old-password"})
	require.NoError(t, err)

	_, err = svc.UpdateProfile(user.ID, &model.UpdateUserRequest{
		Password: strPtr("new-password"),
	})
	require.NoError(t, err)

	_, _, err = svc.Login("homecook", "old-password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, _, err = svc.Login("homecook", "new-password")
	assert.NoError(t, err)
}
