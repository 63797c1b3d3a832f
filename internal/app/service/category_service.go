package service

import (
	"errors"

	"gorm.io/gorm"

	"github.com/ebuka-odih/mini-ecommerce-backend/internal/app/model"
	"github.com/ebuka-odih/mini-ecommerce-backend/internal/app/repository"
	"github.com/ebuka-odih/mini-ecommerce-backend/pkg/logger"
	"github.com/ebuka-odih/mini-ecommerce-backend/pkg/util"
)

var ErrDuplicateCategory = errors.New("category name or slug already exists")

type CategoryInput struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	ImageID     *uint  `json:"image_id"`
	IsActive    *bool  `json:"is_active"`
}

type CategoryService interface {
	ListCategories(activeOnly bool) ([]model.Category, error)
	GetCategory(id uint) (*model.Category, error)
	GetCategoryBySlug(slug string) (*model.Category, error)
	CreateCategory(input CategoryInput) (*model.Category, error)
	UpdateCategory(id uint, input CategoryInput) (*model.Category, error)
	DeleteCategory(id uint) error
}

type categoryService struct {
	categoryRepo repository.CategoryRepository
}

func NewCategoryService(categoryRepo repository.CategoryRepository) CategoryService {
	return &categoryService{categoryRepo: categoryRepo}
}

func (s *categoryService) ListCategories(activeOnly bool) ([]model.Category, error) {
	return s.categoryRepo.FindAll(activeOnly)
}

func (s *categoryService) GetCategory(id uint) (*model.Category, error) {
	category, err := s.categoryRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}
	return category, nil
}

func (s *categoryService) GetCategoryBySlug(slug string) (*model.Category, error) {
	category, err := s.categoryRepo.FindBySlug(slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}
	return category, nil
}

func (s *categoryService) CreateCategory(input CategoryInput) (*model.Category, error) {
	category := &model.Category{
		Name:        input.Name,
		Slug:        util.Slugify(input.Name),
		Description: input.Description,
		ImageID:     input.ImageID,
		IsActive:    true,
	}
	if input.IsActive != nil {
		category.IsActive = *input.IsActive
	}

	if err := s.categoryRepo.Create(category); err != nil {
		if isDuplicateKey(err) {
			return nil, ErrDuplicateCategory
		}
		return nil, err
	}

	logger.Info("Category created", map[string]interface{}{
		"category_id": category.ID,
		"slug":        category.Slug,
	})
	return category, nil
}

func (s *categoryService) UpdateCategory(id uint, input CategoryInput) (*model.Category, error) {
	category, err := s.GetCategory(id)
	if err != nil {
		return nil, err
	}

	// The slug is stable once assigned; renames keep existing links alive.
	category.Name = input.Name
	category.Description = input.Description
	category.ImageID = input.ImageID
	if input.IsActive != nil {
		category.IsActive = *input.IsActive
	}
	category.Image = nil

	if err := s.categoryRepo.Update(category); err != nil {
		if isDuplicateKey(err) {
			return nil, ErrDuplicateCategory
		}
		return nil, err
	}
	return category, nil
}

func (s *categoryService) DeleteCategory(id uint) error {
	if _, err := s.GetCategory(id); err != nil {
		return err
	}
	if err := s.categoryRepo.Delete(id); err != nil {
		return err
	}
	logger.Info("Category deleted", map[string]interface{}{
		"category_id": id,
	})
	return nil
}
