package model

import (
	"time"
)

type UserRole string

const (
	RoleUser  UserRole = "user"
	RoleAdmin UserRole = "admin"
)

type User struct {
	ID             uint      `gorm:"primarykey" json:"id"`
	Username       string    `gorm:"uniqueIndex;not null" json:"username"` // sign-in handle
	PasswordHash   string    `gorm:"not null" json:"-"`
	Email          *string   `gorm:"uniqueIndex" json:"email,omitempty"` // optional, unique when set
	FullName       *string   `json:"full_name,omitempty"`
	ProfilePicture string    `json:"profile_picture"` // profile image URL
	Role           UserRole  `gorm:"type:varchar(20);default:'user'" json:"role"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`

	Recipes   []Recipe       `gorm:"foreignKey:UserID" json:"recipes,omitempty"`
	Reviews   []Review       `gorm:"foreignKey:UserID" json:"-"`
	Favorites []Favorite     `gorm:"foreignKey:UserID" json:"-"`
	Searches  []SearchRecord `gorm:"foreignKey:UserID" json:"-"`
}

func (User) TableName() string {
	return "users"
}

// RegisterRequest is the signup payload
type RegisterRequest struct {
	Username string `json:"username" binding:"required,min=3,max=30"`
	Password string `json:"password" binding:"required,min=8"`
	Email    string `json:"email" binding:"omitempty,email"`
	FullName string `json:"full_name"`
}

// LoginRequest is the signin payload
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// UpdateUserRequest carries partial profile updates. Nil fields are left
// untouched; empty strings for email/full_name clear the column.
type UpdateUserRequest struct {
	Email          *string `json:"email,omitempty" binding:"omitempty"`
	FullName       *string `json:"full_name,omitempty"`
	ProfilePicture *string `json:"profile_picture,omitempty"`
	Password       *string `json:"password,omitempty" binding:"omitempty,min=8"`
}
