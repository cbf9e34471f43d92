package service

import (
	"context"
	"errors"
	"time"

	"github.com/tastebook/tastebook-backend/internal/app/model"
	"github.com/tastebook/tastebook-backend/internal/app/repository"
	"github.com/tastebook/tastebook-backend/pkg/logger"
	"github.com/tastebook/tastebook-backend/pkg/redis"
	"github.com/tastebook/tastebook-backend/pkg/util"
	"gorm.io/gorm"
)

var (
	ErrUsernameAlreadyExists = errors.New("username already exists")
	ErrEmailAlreadyExists    = errors.New("email already exists")
	ErrInvalidCredentials    = errors.New("invalid username or password")
	ErrUserNotFound          = errors.New("user not found")
)

type AuthService interface {
	Register(req *model.RegisterRequest) (*model.User, *util.TokenPair, error)
	Login(username, password string) (*model.User, *util.TokenPair, error)
	GetUserByID(id uint) (*model.User, error)
	UpdateProfile(userID uint, req *model.UpdateUserRequest) (*model.User, error)
	Logout(ctx context.Context, token string, expiresAt time.Time) error
}

type authService struct {
	userRepo      *repository.UserRepository
	jwtSecret     string
	accessExpiry  time.Duration
	refreshExpiry time.Duration
}

func NewAuthService(
	userRepo *repository.UserRepository,
	jwtSecret string,
	accessExpiry, refreshExpiry time.Duration,
) AuthService {
	return &authService{
		userRepo:      userRepo,
		jwtSecret:     jwtSecret,
		accessExpiry:  accessExpiry,
		refreshExpiry: refreshExpiry,
	}
}

func (s *authService) Register(req *model.RegisterRequest) (*model.User, *util.TokenPair, error) {
	logger.Info("Attempting user registration", map[string]interface{}{
		"username": req.Username,
	})

	existing, err := s.userRepo.FindByUsername(req.Username)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		logger.Error("Failed to check existing username", err, map[string]interface{}{
			"username": req.Username,
		})
		return nil, nil, err
	}
	if existing != nil {
		logger.Warn("Registration failed: username already taken", map[string]interface{}{
			"username": req.Username,
		})
		return nil, nil, ErrUsernameAlreadyExists
	}

	hashedPassword, err := util.HashPassword(req.Password)
	if err != nil {
		logger.Error("Failed to hash password", err, nil)
		return nil, nil, err
	}

	user := &model.User{
		Username:     req.Username,
		PasswordHash: hashedPassword,
		Role:         model.RoleUser,
	}
	if req.Email != "" {
		user.Email = &req.Email
	}
	if req.FullName != "" {
		user.FullName = &req.FullName
	}

	if err := s.userRepo.Create(user); err != nil {
		logger.Error("Failed to create user", err, map[string]interface{}{
			"username": req.Username,
		})
		return nil, nil, err
	}

	tokens, err := util.GenerateTokenPair(
		user.ID,
		user.Username,
		string(user.Role),
		s.jwtSecret,
		s.accessExpiry,
		s.refreshExpiry,
	)
	if err != nil {
		logger.Error("Failed to generate tokens", err, map[string]interface{}{
			"user_id": user.ID,
		})
		return nil, nil, err
	}

	logger.Info("User registered", map[string]interface{}{
		"user_id":  user.ID,
		"username": user.Username,
	})
	return user, tokens, nil
}

func (s *authService) Login(username, password string) (*model.User, *util.TokenPair, error) {
	user, err := s.userRepo.FindByUsername(username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Login failed: unknown username", map[string]interface{}{
				"username": username,
			})
			return nil, nil, ErrInvalidCredentials
		}
		return nil, nil, err
	}

	if !util.VerifyPassword(user.PasswordHash, password) {
		logger.Warn("Login failed: wrong password", map[string]interface{}{
			"username": username,
		})
		return nil, nil, ErrInvalidCredentials
	}

	tokens, err := util.GenerateTokenPair(
		user.ID,
		user.Username,
		string(user.Role),
		s.jwtSecret,
		s.accessExpiry,
		s.refreshExpiry,
	)
	if err != nil {
		logger.Error("Failed to generate tokens", err, map[string]interface{}{
			"user_id": user.ID,
		})
		return nil, nil, err
	}

	logger.Info("User logged in", map[string]interface{}{
		"user_id":  user.ID,
		"username": user.Username,
	})
	return user, tokens, nil
}

func (s *authService) GetUserByID(id uint) (*model.User, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// UpdateProfile applies a partial profile update. Fields absent from the
// request are untouched; an empty email or full name clears the column.
func (s *authService) UpdateProfile(userID uint, req *model.UpdateUserRequest) (*model.User, error) {
	updates := make(map[string]interface{})
	if req.Email != nil {
		if *req.Email == "" {
			updates["email"] = nil
		} else {
			updates["email"] = *req.Email
		}
	}
	if req.FullName != nil {
		if *req.FullName == "" {
			updates["full_name"] = nil
		} else {
			updates["full_name"] = *req.FullName
		}
	}
	if req.ProfilePicture != nil {
		updates["profile_picture"] = *req.ProfilePicture
	}
	if req.Password != nil {
		hashed, err := util.HashPassword(*req.Password)
		if err != nil {
			return nil, err
		}
		updates["password_hash"] = hashed
	}

	if len(updates) > 0 {
		if err := s.userRepo.Update(userID, updates); err != nil {
			logger.Error("Failed to update profile", err, map[string]interface{}{
				"user_id": userID,
			})
			return nil, err
		}
	}

	return s.GetUserByID(userID)
}

// Logout blacklists the access token until it would have expired anyway
func (s *authService) Logout(ctx context.Context, token string, expiresAt time.Time) error {
	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		return nil
	}
	if err := redis.BlacklistToken(ctx, token, ttl); err != nil {
		logger.Error("Failed to blacklist token", err, nil)
		return err
	}
	return nil
}
