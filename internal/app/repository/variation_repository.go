package repository

import (
	"github.com/ebuka-odih/mini-ecommerce-backend/internal/app/model"
	"github.com/ebuka-odih/mini-ecommerce-backend/pkg/logger"
	"gorm.io/gorm"
)

type VariationRepository interface {
	Create(variation *model.ProductVariation) error
	FindByID(id uint) (*model.ProductVariation, error)
	FindByProduct(productID uint) ([]model.ProductVariation, error)
	// FindBySelection returns the unique variation for an exact
	// (size_id, color_id) pair, nil axes matching unset axes.
	FindBySelection(productID uint, sizeID, colorID *uint) (*model.ProductVariation, error)
	CombinationTaken(productID uint, sizeID, colorID *uint, excludeID uint) (bool, error)
	Update(variation *model.ProductVariation) error
	AdjustStock(id uint, delta int) error
	Delete(id uint) error
}

type variationRepository struct {
	db *gorm.DB
}

func NewVariationRepository(db *gorm.DB) VariationRepository {
	return &variationRepository{db: db}
}

func (r *variationRepository) Create(variation *model.ProductVariation) error {
	logger.Debug("Creating product variation in database", map[string]interface{}{
		"product_id": variation.ProductID,
		"size_id":    variation.SizeID,
		"color_id":   variation.ColorID,
	})

	if err := r.db.Create(variation).Error; err != nil {
		logger.Error("Failed to create product variation in database", err, map[string]interface{}{
			"product_id": variation.ProductID,
		})
		return err
	}
	return nil
}

func (r *variationRepository) FindByID(id uint) (*model.ProductVariation, error) {
	var variation model.ProductVariation
	err := r.db.Preload("Size").Preload("Color").First(&variation, id).Error
	if err != nil {
		return nil, err
	}
	return &variation, nil
}

func (r *variationRepository) FindByProduct(productID uint) ([]model.ProductVariation, error) {
	var variations []model.ProductVariation
	err := r.db.Preload("Size").Preload("Color").
		Where("product_id = ?", productID).
		Order("id ASC").
		Find(&variations).Error
	if err != nil {
		logger.Error("Failed to list product variations from database", err, map[string]interface{}{
			"product_id": productID,
		})
		return nil, err
	}
	return variations, nil
}

func (r *variationRepository) FindBySelection(productID uint, sizeID, colorID *uint) (*model.ProductVariation, error) {
	query := r.db.Preload("Size").Preload("Color").Where("product_id = ?", productID)
	query = applyAxis(query, "size_id", sizeID)
	query = applyAxis(query, "color_id", colorID)

	var variation model.ProductVariation
	if err := query.First(&variation).Error; err != nil {
		return nil, err
	}
	return &variation, nil
}

func (r *variationRepository) CombinationTaken(productID uint, sizeID, colorID *uint, excludeID uint) (bool, error) {
	query := r.db.Model(&model.ProductVariation{}).Where("product_id = ?", productID)
	query = applyAxis(query, "size_id", sizeID)
	query = applyAxis(query, "color_id", colorID)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func applyAxis(query *gorm.DB, column string, id *uint) *gorm.DB {
	if id == nil {
		return query.Where(column + " IS NULL")
	}
	return query.Where(column+" = ?", *id)
}

func (r *variationRepository) Update(variation *model.ProductVariation) error {
	if err := r.db.Save(variation).Error; err != nil {
		logger.Error("Failed to update product variation in database", err, map[string]interface{}{
			"variation_id": variation.ID,
		})
		return err
	}
	return nil
}

func (r *variationRepository) AdjustStock(id uint, delta int) error {
	if err := r.db.Model(&model.ProductVariation{}).Where("id = ?", id).
		Update("stock_quantity", gorm.Expr("stock_quantity + ?", delta)).Error; err != nil {
		logger.Error("Failed to adjust variation stock in database", err, map[string]interface{}{
			"variation_id": id,
			"delta":        delta,
		})
		return err
	}
	return nil
}

func (r *variationRepository) Delete(id uint) error {
	if err := r.db.Delete(&model.ProductVariation{}, id).Error; err != nil {
		logger.Error("Failed to delete product variation from database", err, map[string]interface{}{
			"variation_id": id,
		})
		return err
	}
	return nil
}
