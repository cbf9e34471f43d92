package model

import (
	"time"
)

type Recipe struct {
	ID          uint      `gorm:"primarykey" json:"id"`
	Name        string    `gorm:"not null" json:"recipe_name"`
	Description string    `gorm:"type:text" json:"description"`
	RecipeType  string    `json:"recipe_type"`
	Servings    int       `json:"servings"`
	PrepTime    int       `json:"prep_time"` // minutes
	CookTime    int       `json:"cook_time"` // minutes
	Images      []string  `gorm:"serializer:json" json:"images"`
	Videos      []string  `gorm:"serializer:json" json:"videos"`
	UserID      *uint     `gorm:"index" json:"user_id,omitempty"` // owner; cleared rows are removed by cascade, never orphaned
	User        *User     `gorm:"foreignKey:UserID" json:"user,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	Instructions []Instruction `gorm:"foreignKey:RecipeID" json:"instructions,omitempty"`
	Reviews      []Review      `gorm:"foreignKey:RecipeID" json:"reviews,omitempty"`
	Ingredients  []Ingredient  `gorm:"many2many:recipe_ingredients" json:"ingredients,omitempty"`
	Categories   []Category    `gorm:"many2many:recipe_categories" json:"categories,omitempty"`
}

func (Recipe) TableName() string {
	return "recipes"
}

type Instruction struct {
	ID          uint   `gorm:"primarykey" json:"id"`
	RecipeID    uint   `gorm:"not null;index" json:"recipe_id"`
	Recipe      Recipe `gorm:"foreignKey:RecipeID" json:"-"`
	StepNumber  int    `gorm:"not null" json:"step_number"` // caller-assigned; never renumbered
	Description string `gorm:"type:text;not null" json:"description"`
}

func (Instruction) TableName() string {
	return "instructions"
}

// RecipeIngredient links a recipe to an ingredient
type RecipeIngredient struct {
	RecipeID     uint       `gorm:"primaryKey" json:"recipe_id"`
	IngredientID uint       `gorm:"primaryKey" json:"ingredient_id"`
	Recipe       Recipe     `gorm:"foreignKey:RecipeID" json:"-"`
	Ingredient   Ingredient `gorm:"foreignKey:IngredientID" json:"-"`
}

func (RecipeIngredient) TableName() string {
	return "recipe_ingredients"
}

// RecipeCategory links a recipe to a category
type RecipeCategory struct {
	RecipeID   uint     `gorm:"primaryKey" json:"recipe_id"`
	CategoryID uint     `gorm:"primaryKey" json:"category_id"`
	Recipe     Recipe   `gorm:"foreignKey:RecipeID" json:"-"`
	Category   Category `gorm:"foreignKey:CategoryID" json:"-"`
}

func (RecipeCategory) TableName() string {
	return "recipe_categories"
}

// InstructionInput is one instruction row in a recipe payload
type InstructionInput struct {
	StepNumber  int    `json:"step_number" binding:"required,min=1"`
	Description string `json:"description" binding:"required"`
}

// IngredientRef references an existing ingredient by id
type IngredientRef struct {
	IngredientID uint `json:"ingredient_id" binding:"required"`
}

// CategoryRef references an existing category by id
type CategoryRef struct {
	CategoryID uint `json:"category_id" binding:"required"`
}

// MediaUpload is an inline base64 media payload resolved to a URL by the
// storage collaborator before the recipe row is written
type MediaUpload struct {
	Data        string `json:"data" binding:"required"`         // base64-encoded bytes
	ContentType string `json:"content_type" binding:"required"` // image/jpeg, image/png or video/mp4
}

// CreateRecipeRequest is the recipe creation payload
type CreateRecipeRequest struct {
	RecipeName   string             `json:"recipe_name" binding:"required"`
	Description  string             `json:"description"`
	RecipeType   string             `json:"recipe_type"`
	Servings     int                `json:"servings"`
	PrepTime     int                `json:"prep_time"`
	CookTime     int                `json:"cook_time"`
	Images       []string           `json:"images"`
	Videos       []string           `json:"videos"`
	Media        []MediaUpload      `json:"media"`
	Instructions []InstructionInput `json:"instructions"`
	Ingredients  []IngredientRef    `json:"ingredients"`
	Categories   []CategoryRef      `json:"categories"`
}

// UpdateRecipeRequest carries a partial recipe update. A nil field is left
// untouched; a present field fully replaces the stored value. Present
// instruction/ingredient/category lists (including empty ones) replace
// the prior set wholesale.
type UpdateRecipeRequest struct {
	RecipeName   *string             `json:"recipe_name,omitempty"`
	Description  *string             `json:"description,omitempty"`
	RecipeType   *string             `json:"recipe_type,omitempty"`
	Servings     *int                `json:"servings,omitempty"`
	PrepTime     *int                `json:"prep_time,omitempty"`
	CookTime     *int                `json:"cook_time,omitempty"`
	Images       *[]string           `json:"images,omitempty"`
	Videos       *[]string           `json:"videos,omitempty"`
	Media        []MediaUpload       `json:"media,omitempty"`
	Instructions *[]InstructionInput `json:"instructions,omitempty"`
	Ingredients  *[]IngredientRef    `json:"ingredients,omitempty"`
	Categories   *[]CategoryRef      `json:"categories,omitempty"`
}

// RecipeListQuery filters and paginates the recipe list endpoint
type RecipeListQuery struct {
	Search       *string `form:"search"`
	RecipeType   *string `form:"recipe_type"`
	CategoryID   *uint   `form:"category_id"`
	IngredientID *uint   `form:"ingredient_id"`
	UserID       *uint   `form:"user_id"`
	Page         int     `form:"page" binding:"omitempty,min=1"`
	Limit        int     `form:"limit" binding:"omitempty,min=1,max=100"`
	SortBy       string  `form:"sort_by" binding:"omitempty,oneof=created_at name prep_time cook_time"`
	SortOrder    string  `form:"sort_order" binding:"omitempty,oneof=asc desc"`
}
