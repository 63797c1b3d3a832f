package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/ebuka-odih/mini-ecommerce-backend/internal/app/model"
	"github.com/ebuka-odih/mini-ecommerce-backend/internal/app/repository"
	"github.com/ebuka-odih/mini-ecommerce-backend/pkg/logger"
	"github.com/ebuka-odih/mini-ecommerce-backend/pkg/util"
	"gorm.io/gorm"
)

var (
	ErrProductNotFound  = errors.New("product not found")
	ErrCategoryNotFound = errors.New("category not found")
	ErrDuplicateSKU     = errors.New("sku already in use")
)

type ProductSort string

const (
	ProductSortCreatedAt ProductSort = "created_at"
	ProductSortPrice     ProductSort = "price"
	ProductSortName      ProductSort = "name"
)

type ProductListOptions struct {
	CategoryID        *uint
	ActiveOnly        bool
	FeaturedOnly      bool
	Search            string
	Sort              ProductSort
	SortAscending     bool
	Limit             int
	Offset            int
	IncludeVariations bool
}

type ProductService interface {
	ListProducts(opts ProductListOptions) ([]model.Product, error)
	GetProductByID(id uint) (*model.Product, error)
	GetProductBySlug(slug string) (*model.Product, error)
	CreateProduct(product *model.Product) error
	UpdateProduct(product *model.Product) error
	DeleteProduct(id uint) error
	// AttachImages replaces the product's image set and records usage on
	// each attached image.
	AttachImages(productID uint, imageIDs []uint) (*model.Product, error)
}

type productService struct {
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
	mediaService MediaService
	db           *gorm.DB
}

func NewProductService(
	productRepo repository.ProductRepository,
	categoryRepo repository.CategoryRepository,
	mediaService MediaService,
	db *gorm.DB,
) ProductService {
	return &productService{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		mediaService: mediaService,
		db:           db,
	}
}

func (s *productService) ListProducts(opts ProductListOptions) ([]model.Product, error) {
	logger.Debug("Listing products", map[string]interface{}{
		"category_id": opts.CategoryID,
		"search":      opts.Search,
		"sort":        opts.Sort,
		"limit":       opts.Limit,
		"offset":      opts.Offset,
	})

	filter := repository.ProductFilter{
		CategoryID:        opts.CategoryID,
		ActiveOnly:        opts.ActiveOnly,
		FeaturedOnly:      opts.FeaturedOnly,
		Search:            opts.Search,
		SortAscending:     opts.SortAscending,
		Limit:             opts.Limit,
		Offset:            opts.Offset,
		IncludeVariations: opts.IncludeVariations,
	}

	switch opts.Sort {
	case ProductSortPrice:
		filter.SortBy = repository.ProductSortPrice
	case ProductSortName:
		filter.SortBy = repository.ProductSortName
	case ProductSortCreatedAt:
		fallthrough
	default:
		filter.SortBy = repository.ProductSortCreatedAt
	}

	products, err := s.productRepo.FindWithFilter(filter)
	if err != nil {
		logger.Error("Failed to list products", err)
		return nil, err
	}

	logger.Info("Products listed", map[string]interface{}{
		"count": len(products),
	})
	return products, nil
}

func (s *productService) GetProductByID(id uint) (*model.Product, error) {
	product, err := s.productRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Product not found", map[string]interface{}{
				"product_id": id,
			})
			return nil, ErrProductNotFound
		}
		logger.Error("Failed to fetch product", err, map[string]interface{}{
			"product_id": id,
		})
		return nil, err
	}
	return product, nil
}

func (s *productService) GetProductBySlug(slug string) (*model.Product, error) {
	product, err := s.productRepo.FindBySlug(slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return product, nil
}

func (s *productService) CreateProduct(product *model.Product) error {
	logger.Info("Creating new product", map[string]interface{}{
		"name": product.Name,
		"sku":  product.SKU,
	})

	if product.CategoryID != nil {
		if _, err := s.categoryRepo.FindByID(*product.CategoryID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrCategoryNotFound
			}
			return err
		}
	}

	if product.Slug == "" {
		slug, err := s.uniqueSlug(product.Name)
		if err != nil {
			return err
		}
		product.Slug = slug
	}

	if product.SKU != "" {
		if _, err := s.productRepo.FindBySKU(product.SKU); err == nil {
			logger.Warn("Duplicate product SKU rejected", map[string]interface{}{
				"sku": product.SKU,
			})
			return ErrDuplicateSKU
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
	}

	if err := s.productRepo.Create(product); err != nil {
		logger.Error("Failed to create product", err, map[string]interface{}{
			"name": product.Name,
			"sku":  product.SKU,
		})
		return err
	}

	logger.Info("Product created successfully", map[string]interface{}{
		"product_id": product.ID,
		"slug":       product.Slug,
	})
	return nil
}

func (s *productService) UpdateProduct(product *model.Product) error {
	existing, err := s.productRepo.FindByID(product.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Cannot update: product not found", map[string]interface{}{
				"product_id": product.ID,
			})
			return ErrProductNotFound
		}
		return err
	}

	if product.CategoryID != nil {
		if _, err := s.categoryRepo.FindByID(*product.CategoryID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrCategoryNotFound
			}
			return err
		}
	}

	if product.SKU != "" && product.SKU != existing.SKU {
		if other, err := s.productRepo.FindBySKU(product.SKU); err == nil && other.ID != product.ID {
			return ErrDuplicateSKU
		} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
	}

	if product.Slug == "" {
		product.Slug = existing.Slug
	}
	// has_variations is owned by the variation service
	product.HasVariations = existing.HasVariations

	if err := s.productRepo.Update(product); err != nil {
		logger.Error("Failed to update product", err, map[string]interface{}{
			"product_id": product.ID,
		})
		return err
	}

	logger.Info("Product updated successfully", map[string]interface{}{
		"product_id": product.ID,
	})
	return nil
}

func (s *productService) DeleteProduct(id uint) error {
	if _, err := s.productRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProductNotFound
		}
		return err
	}

	if err := s.productRepo.Delete(id); err != nil {
		return err
	}

	logger.Info("Product deleted successfully", map[string]interface{}{
		"product_id": id,
	})
	return nil
}

func (s *productService) AttachImages(productID uint, imageIDs []uint) (*model.Product, error) {
	product, err := s.productRepo.FindByID(productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}

	images, err := s.mediaService.GetImagesByIDs(imageIDs)
	if err != nil {
		return nil, err
	}
	if len(images) != len(imageIDs) {
		return nil, ErrImageNotFound
	}

	if err := s.db.Model(product).Association("Images").Replace(images); err != nil {
		logger.Error("Failed to replace product images", err, map[string]interface{}{
			"product_id": productID,
		})
		return nil, err
	}

	now := time.Now()
	for _, img := range images {
		// Best-effort bookkeeping; an attach never fails over a counter.
		if err := s.mediaService.TrackUsage(img.ID, now, "product"); err != nil {
			logger.Warn("Failed to record image usage", map[string]interface{}{
				"image_id": img.ID,
				"error":    err.Error(),
			})
		}
	}

	logger.Info("Product images attached", map[string]interface{}{
		"product_id":  productID,
		"image_count": len(images),
	})
	return s.productRepo.FindByID(productID)
}

// uniqueSlug derives a slug from the name and suffixes it with a counter
// when that slug is already taken: green-tee, green-tee-2, green-tee-3.
func (s *productService) uniqueSlug(name string) (string, error) {
	base := util.Slugify(name)
	if base == "" {
		base = "product"
	}

	count, err := s.productRepo.CountBySlugPrefix(base)
	if err != nil {
		return "", err
	}
	if count == 0 {
		return base, nil
	}
	return fmt.Sprintf("%s-%d", base, count+1), nil
}
