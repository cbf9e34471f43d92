package service

import (
	"errors"

	"github.com/tastebook/tastebook-backend/internal/app/model"
	"github.com/tastebook/tastebook-backend/internal/app/repository"
	"gorm.io/gorm"
)

var (
	ErrIngredientNotFound = errors.New("ingredient not found")
	ErrCategoryNotFound   = errors.New("category not found")
)

// TaxonomyService manages the shared ingredient and category catalogs
// recipes link against
type TaxonomyService interface {
	ListIngredients() ([]model.Ingredient, error)
	GetIngredient(id uint) (*model.Ingredient, error)
	CreateIngredient(name string) (*model.Ingredient, error)
	UpdateIngredient(id uint, name string) (*model.Ingredient, error)
	DeleteIngredient(id uint) error
	ListCategories() ([]model.Category, error)
	GetCategory(id uint) (*model.Category, error)
	CreateCategory(name string) (*model.Category, error)
	UpdateCategory(id uint, name string) (*model.Category, error)
	DeleteCategory(id uint) error
}

type taxonomyService struct {
	ingredientRepo *repository.IngredientRepository
	categoryRepo   *repository.CategoryRepository
}

func NewTaxonomyService(
	ingredientRepo *repository.IngredientRepository,
	categoryRepo *repository.CategoryRepository,
) TaxonomyService {
	return &taxonomyService{
		ingredientRepo: ingredientRepo,
		categoryRepo:   categoryRepo,
	}
}

func (s *taxonomyService) ListIngredients() ([]model.Ingredient, error) {
	return s.ingredientRepo.FindAll()
}

func (s *taxonomyService) GetIngredient(id uint) (*model.Ingredient, error) {
	ingredient, err := s.ingredientRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrIngredientNotFound
		}
		return nil, err
	}
	return ingredient, nil
}

func (s *taxonomyService) CreateIngredient(name string) (*model.Ingredient, error) {
	ingredient := &model.Ingredient{Name: name}
	if err := s.ingredientRepo.Create(ingredient); err != nil {
		return nil, err
	}
	return ingredient, nil
}

func (s *taxonomyService) UpdateIngredient(id uint, name string) (*model.Ingredient, error) {
	if err := s.ingredientRepo.UpdateName(id, name); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrIngredientNotFound
		}
		return nil, err
	}
	return s.ingredientRepo.FindByID(id)
}

func (s *taxonomyService) DeleteIngredient(id uint) error {
	if err := s.ingredientRepo.Delete(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrIngredientNotFound
		}
		return err
	}
	return nil
}

func (s *taxonomyService) ListCategories() ([]model.Category, error) {
	return s.categoryRepo.FindAll()
}

func (s *taxonomyService) GetCategory(id uint) (*model.Category, error) {
	category, err := s.categoryRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}
	return category, nil
}

func (s *taxonomyService) CreateCategory(name string) (*model.Category, error) {
	category := &model.Category{Name: name}
	if err := s.categoryRepo.Create(category); err != nil {
		return nil, err
	}
	return category, nil
}

func (s *taxonomyService) UpdateCategory(id uint, name string) (*model.Category, error) {
	if err := s.categoryRepo.UpdateName(id, name); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}
	return s.categoryRepo.FindByID(id)
}

func (s *taxonomyService) DeleteCategory(id uint) error {
	if err := s.categoryRepo.Delete(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCategoryNotFound
		}
		return err
	}
	return nil
}
