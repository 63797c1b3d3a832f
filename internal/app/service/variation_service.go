package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ebuka-odih/mini-ecommerce-backend/internal/app/model"
	"github.com/ebuka-odih/mini-ecommerce-backend/internal/app/repository"
	"github.com/ebuka-odih/mini-ecommerce-backend/pkg/logger"
	"github.com/ebuka-odih/mini-ecommerce-backend/pkg/util"
	"gorm.io/gorm"
)

var (
	ErrVariationNotFound          = errors.New("variation not found")
	ErrVariationCombinationExists = errors.New("a variation with this size and color already exists")
	ErrVariationAxisNotFound      = errors.New("size or color not found")
)

// VariationQuote is the price/stock answer for a (size, color) selection.
type VariationQuote struct {
	Price       float64 `json:"price"`
	Stock       int     `json:"stock"`
	SKU         string  `json:"sku"`
	VariationID *uint   `json:"variation_id,omitempty"`
}

type VariationInput struct {
	ProductID     uint
	SizeID        *uint
	ColorID       *uint
	SKU           string // empty means derive from product SKU + axis tokens
	Price         *float64
	StockQuantity int
	IsActive      bool
	Attributes    string
}

type VariationService interface {
	// Resolve returns the effective price/stock/SKU for a selection, or the
	// product's base values when the product carries no variations.
	Resolve(productID uint, sizeID, colorID *uint) (*VariationQuote, error)
	ListByProduct(productID uint) ([]model.ProductVariation, error)
	GetByID(id uint) (*model.ProductVariation, error)
	Create(input VariationInput) (*model.ProductVariation, error)
	Update(id uint, input VariationInput) (*model.ProductVariation, error)
	Delete(id uint) error
}

type variationService struct {
	variationRepo repository.VariationRepository
	productRepo   repository.ProductRepository
	sizeRepo      repository.SizeRepository
	colorRepo     repository.ColorRepository
}

func NewVariationService(
	variationRepo repository.VariationRepository,
	productRepo repository.ProductRepository,
	sizeRepo repository.SizeRepository,
	colorRepo repository.ColorRepository,
) VariationService {
	return &variationService{
		variationRepo: variationRepo,
		productRepo:   productRepo,
		sizeRepo:      sizeRepo,
		colorRepo:     colorRepo,
	}
}

func (s *variationService) Resolve(productID uint, sizeID, colorID *uint) (*VariationQuote, error) {
	logger.Debug("Resolving variation", map[string]interface{}{
		"product_id": productID,
		"size_id":    sizeID,
		"color_id":   colorID,
	})

	product, err := s.productRepo.FindByID(productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		logger.Error("Failed to fetch product for variation resolve", err, map[string]interface{}{
			"product_id": productID,
		})
		return nil, err
	}

	variation, err := s.variationRepo.FindBySelection(productID, sizeID, colorID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Error("Failed to look up variation", err, map[string]interface{}{
				"product_id": productID,
			})
			return nil, err
		}
		// No matching row. A product that carries variations only sells
		// combinations that exist; anything else falls back to the base
		// product.
		if product.HasVariations {
			logger.Warn("Requested variation combination does not exist", map[string]interface{}{
				"product_id": productID,
				"size_id":    sizeID,
				"color_id":   colorID,
			})
			return nil, ErrVariationNotFound
		}
		return &VariationQuote{
			Price: product.EffectivePrice(),
			Stock: product.StockQuantity,
			SKU:   product.SKU,
		}, nil
	}

	quote := &VariationQuote{
		Price:       product.EffectivePrice(),
		Stock:       variation.StockQuantity,
		SKU:         product.SKU,
		VariationID: &variation.ID,
	}
	if variation.Price != nil {
		quote.Price = *variation.Price
	}
	if variation.SKU != nil && *variation.SKU != "" {
		quote.SKU = *variation.SKU
	}
	return quote, nil
}

func (s *variationService) ListByProduct(productID uint) ([]model.ProductVariation, error) {
	if _, err := s.productRepo.FindByID(productID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return s.variationRepo.FindByProduct(productID)
}

func (s *variationService) GetByID(id uint) (*model.ProductVariation, error) {
	variation, err := s.variationRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVariationNotFound
		}
		return nil, err
	}
	return variation, nil
}

func (s *variationService) Create(input VariationInput) (*model.ProductVariation, error) {
	logger.Info("Creating product variation", map[string]interface{}{
		"product_id": input.ProductID,
		"size_id":    input.SizeID,
		"color_id":   input.ColorID,
	})

	product, err := s.productRepo.FindByID(input.ProductID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}

	size, color, err := s.resolveAxes(input.SizeID, input.ColorID)
	if err != nil {
		return nil, err
	}

	// The composite unique index is the real guard against concurrent
	// creates; this check exists to return a clean error in the common case.
	taken, err := s.variationRepo.CombinationTaken(input.ProductID, input.SizeID, input.ColorID, 0)
	if err != nil {
		return nil, err
	}
	if taken {
		logger.Warn("Variation combination already exists", map[string]interface{}{
			"product_id": input.ProductID,
			"size_id":    input.SizeID,
			"color_id":   input.ColorID,
		})
		return nil, ErrVariationCombinationExists
	}

	variation := &model.ProductVariation{
		ProductID:     input.ProductID,
		SizeID:        input.SizeID,
		ColorID:       input.ColorID,
		Price:         input.Price,
		StockQuantity: input.StockQuantity,
		IsActive:      input.IsActive,
		Attributes:    input.Attributes,
	}

	sku := strings.TrimSpace(input.SKU)
	if sku == "" {
		sku = deriveVariationSKU(product.SKU, size, color)
	}
	if sku != "" {
		variation.SKU = &sku
	}

	if err := s.variationRepo.Create(variation); err != nil {
		return nil, translateVariationError(err)
	}

	// First variation flips the product into variation-driven selling.
	if !product.HasVariations {
		product.HasVariations = true
		if err := s.productRepo.Update(product); err != nil {
			logger.Error("Failed to flag product as having variations", err, map[string]interface{}{
				"product_id": product.ID,
			})
			return nil, err
		}
	}

	logger.Info("Product variation created successfully", map[string]interface{}{
		"variation_id": variation.ID,
		"sku":          sku,
	})
	return variation, nil
}

func (s *variationService) Update(id uint, input VariationInput) (*model.ProductVariation, error) {
	variation, err := s.variationRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVariationNotFound
		}
		return nil, err
	}

	size, color, err := s.resolveAxes(input.SizeID, input.ColorID)
	if err != nil {
		return nil, err
	}

	taken, err := s.variationRepo.CombinationTaken(variation.ProductID, input.SizeID, input.ColorID, variation.ID)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrVariationCombinationExists
	}

	variation.SizeID = input.SizeID
	variation.ColorID = input.ColorID
	variation.Price = input.Price
	variation.StockQuantity = input.StockQuantity
	variation.IsActive = input.IsActive
	variation.Attributes = input.Attributes

	sku := strings.TrimSpace(input.SKU)
	if sku == "" {
		product, err := s.productRepo.FindByID(variation.ProductID)
		if err != nil {
			return nil, err
		}
		sku = deriveVariationSKU(product.SKU, size, color)
	}
	if sku != "" {
		variation.SKU = &sku
	} else {
		variation.SKU = nil
	}

	if err := s.variationRepo.Update(variation); err != nil {
		return nil, translateVariationError(err)
	}

	logger.Info("Product variation updated successfully", map[string]interface{}{
		"variation_id": variation.ID,
	})
	return variation, nil
}

func (s *variationService) Delete(id uint) error {
	variation, err := s.variationRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrVariationNotFound
		}
		return err
	}

	if err := s.variationRepo.Delete(id); err != nil {
		return err
	}

	remaining, err := s.variationRepo.FindByProduct(variation.ProductID)
	if err != nil {
		return err
	}
	if len(remaining) == 0 {
		product, err := s.productRepo.FindByID(variation.ProductID)
		if err == nil && product.HasVariations {
			product.HasVariations = false
			if err := s.productRepo.Update(product); err != nil {
				logger.Error("Failed to clear has_variations flag", err, map[string]interface{}{
					"product_id": product.ID,
				})
			}
		}
	}

	logger.Info("Product variation deleted successfully", map[string]interface{}{
		"variation_id": id,
	})
	return nil
}

func (s *variationService) resolveAxes(sizeID, colorID *uint) (*model.Size, *model.Color, error) {
	var size *model.Size
	var color *model.Color

	if sizeID != nil {
		found, err := s.sizeRepo.FindByID(*sizeID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, nil, ErrVariationAxisNotFound
			}
			return nil, nil, err
		}
		size = found
	}
	if colorID != nil {
		found, err := s.colorRepo.FindByID(*colorID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, nil, ErrVariationAxisNotFound
			}
			return nil, nil, err
		}
		color = found
	}
	return size, color, nil
}

// deriveVariationSKU builds a deterministic SKU from the product SKU and the
// axis names: GN-001 + M + Red -> GN-001-M-RED. Re-creating the same
// combination always derives the same SKU, so a duplicate trips the unique
// index instead of minting a second spelling.
func deriveVariationSKU(productSKU string, size *model.Size, color *model.Color) string {
	parts := []string{productSKU}
	if size != nil {
		parts = append(parts, util.SKUToken(size.Name))
	}
	if color != nil {
		parts = append(parts, util.SKUToken(color.Name))
	}
	if len(parts) == 1 {
		return fmt.Sprintf("%s-DEFAULT", productSKU)
	}
	return strings.Join(parts, "-")
}

// translateVariationError maps unique-index failures that raced past the
// service-level check onto the same sentinel the check would have returned.
// Postgres names the violated index; sqlite only lists the columns, so both
// spellings are matched. The SKU index counts as a combination conflict too:
// the derived SKU is deterministic, so colliding on it means the same
// combination already exists.
func translateVariationError(err error) error {
	if err == nil {
		return nil
	}
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "idx_variation_combination"),
		strings.Contains(msg, "idx_variations_live_sku"),
		strings.Contains(msg, "unique") && strings.Contains(msg, "product_variations."):
		return ErrVariationCombinationExists
	}
	return err
}
