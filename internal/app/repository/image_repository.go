package repository

import (
	"fmt"
	"time"

	"github.com/ebuka-odih/mini-ecommerce-backend/internal/app/model"
	"github.com/ebuka-odih/mini-ecommerce-backend/pkg/logger"
	"gorm.io/gorm"
)

type ImageFilter struct {
	Folder   string // empty means all folders
	Tag      string
	Search   string
	Featured bool
	Limit    int
	Offset   int
}

type ImageRepository interface {
	Create(image *model.Image) error
	FindByID(id uint) (*model.Image, error)
	FindByIDs(ids []uint) ([]model.Image, error)
	FindWithFilter(filter ImageFilter) ([]model.Image, error)
	ListFolders() ([]string, error)
	Update(image *model.Image) error
	Delete(id uint) error
	// RecordUsage bumps the usage counters; see the media service for the
	// best-effort semantics.
	RecordUsage(id uint, usedAt time.Time, context string) error
	// FindPurgeable returns soft-deleted images older than the cutoff,
	// bypassing the soft-delete scope.
	FindPurgeable(cutoff time.Time) ([]model.Image, error)
	HardDelete(id uint) error
}

type imageRepository struct {
	db *gorm.DB
}

func NewImageRepository(db *gorm.DB) ImageRepository {
	return &imageRepository{db: db}
}

func (r *imageRepository) Create(image *model.Image) error {
	if err := r.db.Create(image).Error; err != nil {
		logger.Error("Failed to create image in database", err, map[string]interface{}{
			"filename": image.Filename,
			"folder":   image.Folder,
		})
		return err
	}
	return nil
}

func (r *imageRepository) FindByID(id uint) (*model.Image, error) {
	var image model.Image
	if err := r.db.First(&image, id).Error; err != nil {
		return nil, err
	}
	return &image, nil
}

func (r *imageRepository) FindByIDs(ids []uint) ([]model.Image, error) {
	var images []model.Image
	if err := r.db.Where("id IN ?", ids).Find(&images).Error; err != nil {
		logger.Error("Failed to find images by ids from database", err)
		return nil, err
	}
	return images, nil
}

func (r *imageRepository) FindWithFilter(filter ImageFilter) ([]model.Image, error) {
	query := r.db.Model(&model.Image{}).Order("created_at DESC")

	if filter.Folder != "" {
		query = query.Where("folder = ?", filter.Folder)
	}
	if filter.Tag != "" {
		// Tags are comma-joined; match the tag at any position.
		like := fmt.Sprintf("%%%s%%", filter.Tag)
		query = query.Where("tags LIKE ?", like)
	}
	if filter.Search != "" {
		like := fmt.Sprintf("%%%s%%", filter.Search)
		query = query.Where("filename LIKE ? OR original_name LIKE ?", like, like)
	}
	if filter.Featured {
		query = query.Where("is_featured = ?", true)
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}

	var images []model.Image
	if err := query.Find(&images).Error; err != nil {
		logger.Error("Failed to find images with filter", err, map[string]interface{}{
			"folder": filter.Folder,
			"tag":    filter.Tag,
		})
		return nil, err
	}
	return images, nil
}

func (r *imageRepository) ListFolders() ([]string, error) {
	var folders []string
	err := r.db.Model(&model.Image{}).
		Where("folder <> ''").
		Distinct().
		Order("folder ASC").
		Pluck("folder", &folders).Error
	if err != nil {
		logger.Error("Failed to list image folders from database", err)
		return nil, err
	}
	return folders, nil
}

func (r *imageRepository) Update(image *model.Image) error {
	if err := r.db.Save(image).Error; err != nil {
		logger.Error("Failed to update image in database", err, map[string]interface{}{
			"image_id": image.ID,
		})
		return err
	}
	return nil
}

func (r *imageRepository) Delete(id uint) error {
	if err := r.db.Delete(&model.Image{}, id).Error; err != nil {
		logger.Error("Failed to delete image from database", err, map[string]interface{}{
			"image_id": id,
		})
		return err
	}
	return nil
}

func (r *imageRepository) RecordUsage(id uint, usedAt time.Time, context string) error {
	updates := map[string]interface{}{
		"download_count": gorm.Expr("download_count + 1"),
		"last_used_at":   usedAt,
	}
	if context != "" {
		updates["usage_context"] = context
	}
	return r.db.Model(&model.Image{}).Where("id = ?", id).Updates(updates).Error
}

func (r *imageRepository) FindPurgeable(cutoff time.Time) ([]model.Image, error) {
	var images []model.Image
	err := r.db.Unscoped().
		Where("deleted_at IS NOT NULL AND deleted_at < ?", cutoff).
		Find(&images).Error
	if err != nil {
		logger.Error("Failed to find purgeable images from database", err)
		return nil, err
	}
	return images, nil
}

func (r *imageRepository) HardDelete(id uint) error {
	return r.db.Unscoped().Delete(&model.Image{}, id).Error
}
