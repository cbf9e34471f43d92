package model

import (
	"time"
)

// Favorite marks a recipe as saved by a user
type Favorite struct {
	UserID    uint      `gorm:"primaryKey" json:"user_id"`
	RecipeID  uint      `gorm:"primaryKey" json:"recipe_id"`
	CreatedAt time.Time `json:"created_at"`

	User   User   `gorm:"foreignKey:UserID" json:"-"`
	Recipe Recipe `gorm:"foreignKey:RecipeID" json:"recipe,omitempty"`
}

func (Favorite) TableName() string {
	return "favorites"
}

// SearchRecord notes that a user opened a recipe from search results.
// Repeated visits refresh SearchedAt rather than adding rows.
type SearchRecord struct {
	UserID     uint      `gorm:"primaryKey" json:"user_id"`
	RecipeID   uint      `gorm:"primaryKey" json:"recipe_id"`
	SearchedAt time.Time `json:"searched_at"`

	User   User   `gorm:"foreignKey:UserID" json:"-"`
	Recipe Recipe `gorm:"foreignKey:RecipeID" json:"recipe,omitempty"`
}

func (SearchRecord) TableName() string {
	return "searches"
}

// RecipeRef is the add-favorite / record-search payload
type RecipeRef struct {
	RecipeID uint `json:"recipe_id" binding:"required"`
}
