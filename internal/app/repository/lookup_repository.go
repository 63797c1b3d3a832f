package repository

import (
	"github.com/ebuka-odih/mini-ecommerce-backend/internal/app/model"
	"github.com/ebuka-odih/mini-ecommerce-backend/pkg/logger"
	"gorm.io/gorm"
)

// Size and Color repositories are kept together: the two lookup tables
// share a shape and are always managed from the same admin screen.

type SizeRepository interface {
	Create(size *model.Size) error
	FindAll(activeOnly bool) ([]model.Size, error)
	FindByID(id uint) (*model.Size, error)
	Update(size *model.Size) error
	Delete(id uint) error
}

type ColorRepository interface {
	Create(color *model.Color) error
	FindAll(activeOnly bool) ([]model.Color, error)
	FindByID(id uint) (*model.Color, error)
	Update(color *model.Color) error
	Delete(id uint) error
}

type sizeRepository struct {
	db *gorm.DB
}

func NewSizeRepository(db *gorm.DB) SizeRepository {
	return &sizeRepository{db: db}
}

func (r *sizeRepository) Create(size *model.Size) error {
	if err := r.db.Create(size).Error; err != nil {
		logger.Error("Failed to create size in database", err, map[string]interface{}{
			"name": size.Name,
		})
		return err
	}
	return nil
}

func (r *sizeRepository) FindAll(activeOnly bool) ([]model.Size, error) {
	query := r.db.Model(&model.Size{}).Order("sort_order ASC, name ASC")
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}

	var sizes []model.Size
	if err := query.Find(&sizes).Error; err != nil {
		logger.Error("Failed to list sizes from database", err)
		return nil, err
	}
	return sizes, nil
}

func (r *sizeRepository) FindByID(id uint) (*model.Size, error) {
	var size model.Size
	if err := r.db.First(&size, id).Error; err != nil {
		return nil, err
	}
	return &size, nil
}

func (r *sizeRepository) Update(size *model.Size) error {
	return r.db.Save(size).Error
}

func (r *sizeRepository) Delete(id uint) error {
	// Variations referencing this size go with it (cascade).
	return r.db.Delete(&model.Size{}, id).Error
}

type colorRepository struct {
	db *gorm.DB
}

func NewColorRepository(db *gorm.DB) ColorRepository {
	return &colorRepository{db: db}
}

func (r *colorRepository) Create(color *model.Color) error {
	if err := r.db.Create(color).Error; err != nil {
		logger.Error("Failed to create color in database", err, map[string]interface{}{
			"name": color.Name,
		})
		return err
	}
	return nil
}

func (r *colorRepository) FindAll(activeOnly bool) ([]model.Color, error) {
	query := r.db.Model(&model.Color{}).Order("sort_order ASC, name ASC")
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}

	var colors []model.Color
	if err := query.Find(&colors).Error; err != nil {
		logger.Error("Failed to list colors from database", err)
		return nil, err
	}
	return colors, nil
}

func (r *colorRepository) FindByID(id uint) (*model.Color, error) {
	var color model.Color
	if err := r.db.First(&color, id).Error; err != nil {
		return nil, err
	}
	return &color, nil
}

func (r *colorRepository) Update(color *model.Color) error {
	return r.db.Save(color).Error
}

func (r *colorRepository) Delete(id uint) error {
	return r.db.Delete(&model.Color{}, id).Error
}
