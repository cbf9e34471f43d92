package model

import (
	"time"
)

type Ingredient struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	Name      string    `gorm:"uniqueIndex;not null" json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

func (Ingredient) TableName() string {
	return "ingredients"
}

type Category struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	Name      string    `gorm:"uniqueIndex;not null" json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

func (Category) TableName() string {
	return "categories"
}

// NameRequest is the shared create/rename payload for ingredients and
// categories
type NameRequest struct {
	Name string `json:"name" binding:"required,min=1,max=100"`
}
