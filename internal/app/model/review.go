package model

import (
	"time"
)

// Review is one node of a per-recipe review tree. A root review (nil
// ParentID) carries a mandatory 1-5 rating; a reply references its parent
// and may omit the rating. Tree membership is fixed at creation.
type Review struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	RecipeID  uint      `gorm:"not null;index" json:"recipe_id"`
	Recipe    Recipe    `gorm:"foreignKey:RecipeID" json:"-"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	User      User      `gorm:"foreignKey:UserID" json:"user"`
	Rating    *int      `json:"rating,omitempty"` // required for roots, optional for replies
	Comment   string    `gorm:"type:text" json:"comment"`
	CreatedAt time.Time `json:"created_at"`

	ParentID *uint    `gorm:"index" json:"parent_review_id,omitempty"`
	Parent   *Review  `gorm:"foreignKey:ParentID" json:"-"`
	Replies  []Review `gorm:"foreignKey:ParentID" json:"replies,omitempty"`
}

func (Review) TableName() string {
	return "reviews"
}

// CreateReviewRequest is the review/reply creation payload
type CreateReviewRequest struct {
	RecipeID       uint   `json:"recipe_id" binding:"required"`
	Rating         *int   `json:"rating,omitempty"`
	Comment        string `json:"comment"`
	ParentReviewID *uint  `json:"parent_review_id,omitempty"`
}
