package repository

import (
	"github.com/ebuka-odih/mini-ecommerce-backend/internal/app/model"
	"github.com/ebuka-odih/mini-ecommerce-backend/pkg/logger"
	"gorm.io/gorm"
)

type LayoutRepository interface {
	Create(layout *model.HomepageLayout) error
	FindByID(id uint) (*model.HomepageLayout, error)
	FindAll() ([]model.HomepageLayout, error)
	FindActive() ([]model.HomepageLayout, error)
	Update(layout *model.HomepageLayout) error
	Delete(id uint) error
}

type layoutRepository struct {
	db *gorm.DB
}

func NewLayoutRepository(db *gorm.DB) LayoutRepository {
	return &layoutRepository{db: db}
}

func (r *layoutRepository) baseQuery() *gorm.DB {
	return r.db.Model(&model.HomepageLayout{}).
		Preload("Category").
		Preload("Category.Image").
		Preload("CoverImage")
}

func (r *layoutRepository) Create(layout *model.HomepageLayout) error {
	if err := r.db.Create(layout).Error; err != nil {
		logger.Error("Failed to create homepage layout in database", err, map[string]interface{}{
			"grid_position": layout.GridPosition,
		})
		return err
	}
	return nil
}

func (r *layoutRepository) FindByID(id uint) (*model.HomepageLayout, error) {
	var layout model.HomepageLayout
	if err := r.baseQuery().First(&layout, id).Error; err != nil {
		return nil, err
	}
	return &layout, nil
}

func (r *layoutRepository) FindAll() ([]model.HomepageLayout, error) {
	var layouts []model.HomepageLayout
	err := r.baseQuery().
		Order("grid_position ASC, sort_order ASC, id ASC").
		Find(&layouts).Error
	if err != nil {
		logger.Error("Failed to list homepage layouts from database", err)
		return nil, err
	}
	return layouts, nil
}

func (r *layoutRepository) FindActive() ([]model.HomepageLayout, error) {
	var layouts []model.HomepageLayout
	err := r.baseQuery().
		Where("is_active = ?", true).
		Order("sort_order ASC, id ASC").
		Find(&layouts).Error
	if err != nil {
		logger.Error("Failed to list active homepage layouts from database", err)
		return nil, err
	}
	return layouts, nil
}

func (r *layoutRepository) Update(layout *model.HomepageLayout) error {
	if err := r.db.Save(layout).Error; err != nil {
		logger.Error("Failed to update homepage layout in database", err, map[string]interface{}{
			"layout_id": layout.ID,
		})
		return err
	}
	return nil
}

func (r *layoutRepository) Delete(id uint) error {
	if err := r.db.Delete(&model.HomepageLayout{}, id).Error; err != nil {
		logger.Error("Failed to delete homepage layout from database", err, map[string]interface{}{
			"layout_id": id,
		})
		return err
	}
	return nil
}
