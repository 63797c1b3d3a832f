package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ebuka-odih/mini-ecommerce-backend/internal/app/service"
	apperrors "github.com/ebuka-odih/mini-ecommerce-backend/internal/errors"
	"github.com/ebuka-odih/mini-ecommerce-backend/internal/middleware"
	"github.com/ebuka-odih/mini-ecommerce-backend/pkg/logger"
)

type VariationController struct {
	variationService service.VariationService
}

func NewVariationController(variationService service.VariationService) *VariationController {
	return &VariationController{
		variationService: variationService,
	}
}

type VariationRequest struct {
	SizeID        *uint    `json:"size_id"`
	ColorID       *uint    `json:"color_id"`
	SKU           string   `json:"sku"`
	Price         *float64 `json:"price"`
	StockQuantity int      `json:"stock_quantity" binding:"gte=0"`
	IsActive      *bool    `json:"is_active"`
	Attributes    string   `json:"attributes"`
}

// Resolve answers the storefront's price/stock question for a selection
// GET /api/v1/products/:id/resolve?size_id=&color_id=
func (ctrl *VariationController) Resolve(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	productID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var sizeID, colorID *uint
	if v, ok := parseUintQuery(c, "size_id"); ok {
		sizeID = &v
	}
	if v, ok := parseUintQuery(c, "color_id"); ok {
		colorID = &v
	}

	quote, err := ctrl.variationService.Resolve(productID, sizeID, colorID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrProductNotFound):
			apperrors.NotFound(c, apperrors.CatalogProductNotFound, "Product not found")
		case errors.Is(err, service.ErrVariationNotFound):
			apperrors.NotFound(c, apperrors.VariationNotFound, "No variation matches that selection")
		default:
			log.Error("Failed to resolve variation", err, map[string]interface{}{
				"product_id": productID,
			})
			apperrors.InternalError(c, "Failed to resolve variation")
		}
		return
	}

	c.JSON(http.StatusOK, quote)
}

// ListVariations returns all variations of a product
// GET /api/v1/products/:id/variations
func (ctrl *VariationController) ListVariations(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	productID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	variations, err := ctrl.variationService.ListByProduct(productID)
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			apperrors.NotFound(c, apperrors.CatalogProductNotFound, "Product not found")
			return
		}
		log.Error("Failed to fetch variations", err, map[string]interface{}{
			"product_id": productID,
		})
		apperrors.InternalError(c, "Failed to fetch variations")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"variations": variations,
		"count":      len(variations),
	})
}

// CreateVariation adds a variation to a product (Admin only)
// POST /api/v1/admin/products/:id/variations
func (ctrl *VariationController) CreateVariation(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	productID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req VariationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, err.Error())
		return
	}

	input := service.VariationInput{
		ProductID:     productID,
		SizeID:        req.SizeID,
		ColorID:       req.ColorID,
		SKU:           req.SKU,
		Price:         req.Price,
		StockQuantity: req.StockQuantity,
		IsActive:      true,
		Attributes:    req.Attributes,
	}
	if req.IsActive != nil {
		input.IsActive = *req.IsActive
	}

	variation, err := ctrl.variationService.Create(input)
	if err != nil {
		ctrl.respondVariationError(c, log, err, productID)
		return
	}

	log.Info("Variation created", map[string]interface{}{
		"variation_id": variation.ID,
		"product_id":   productID,
	})
	c.JSON(http.StatusCreated, gin.H{"variation": variation})
}

// UpdateVariation updates a variation (Admin only)
// PUT /api/v1/admin/variations/:id
func (ctrl *VariationController) UpdateVariation(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req VariationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, err.Error())
		return
	}

	input := service.VariationInput{
		SizeID:        req.SizeID,
		ColorID:       req.ColorID,
		SKU:           req.SKU,
		Price:         req.Price,
		StockQuantity: req.StockQuantity,
		IsActive:      true,
		Attributes:    req.Attributes,
	}
	if req.IsActive != nil {
		input.IsActive = *req.IsActive
	}

	variation, err := ctrl.variationService.Update(id, input)
	if err != nil {
		ctrl.respondVariationError(c, log, err, id)
		return
	}

	c.JSON(http.StatusOK, gin.H{"variation": variation})
}

// DeleteVariation removes a variation (Admin only)
// DELETE /api/v1/admin/variations/:id
func (ctrl *VariationController) DeleteVariation(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := ctrl.variationService.Delete(id); err != nil {
		if errors.Is(err, service.ErrVariationNotFound) {
			apperrors.NotFound(c, apperrors.VariationNotFound, "Variation not found")
			return
		}
		log.Error("Failed to delete variation", err, map[string]interface{}{
			"variation_id": id,
		})
		apperrors.InternalError(c, "Failed to delete variation")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Variation deleted"})
}

func (ctrl *VariationController) respondVariationError(c *gin.Context, log *logger.Logger, err error, id uint) {
	switch {
	case errors.Is(err, service.ErrProductNotFound):
		apperrors.NotFound(c, apperrors.CatalogProductNotFound, "Product not found")
	case errors.Is(err, service.ErrVariationNotFound):
		apperrors.NotFound(c, apperrors.VariationNotFound, "Variation not found")
	case errors.Is(err, service.ErrVariationAxisNotFound):
		apperrors.NotFound(c, apperrors.CatalogLookupNotFound, "Size or color not found")
	case errors.Is(err, service.ErrVariationCombinationExists):
		apperrors.Conflict(c, apperrors.VariationCombinationExists, "That size/color combination already exists for this product")
	default:
		log.Error("Variation operation failed", err, map[string]interface{}{
			"id": id,
		})
		apperrors.InternalError(c, "Variation operation failed")
	}
}
