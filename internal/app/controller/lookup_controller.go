package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ebuka-odih/mini-ecommerce-backend/internal/app/service"
	apperrors "github.com/ebuka-odih/mini-ecommerce-backend/internal/errors"
	"github.com/ebuka-odih/mini-ecommerce-backend/internal/middleware"
)

// LookupController serves the size and color axis tables.
type LookupController struct {
	lookupService service.LookupService
}

func NewLookupController(lookupService service.LookupService) *LookupController {
	return &LookupController{
		lookupService: lookupService,
	}
}

// ListSizes returns sizes, active ones only unless ?all=true
// GET /api/v1/sizes
func (ctrl *LookupController) ListSizes(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	sizes, err := ctrl.lookupService.ListSizes(c.Query("all") != "true")
	if err != nil {
		log.Error("Failed to fetch sizes", err, nil)
		apperrors.InternalError(c, "Failed to fetch sizes")
		return
	}

	c.JSON(http.StatusOK, gin.H{"sizes": sizes, "count": len(sizes)})
}

// CreateSize creates a new size (Admin only)
// POST /api/v1/admin/sizes
func (ctrl *LookupController) CreateSize(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req service.SizeInput
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, err.Error())
		return
	}

	size, err := ctrl.lookupService.CreateSize(req)
	if err != nil {
		if errors.Is(err, service.ErrDuplicateLookup) {
			apperrors.Conflict(c, apperrors.CatalogLookupNameExists, "A size with that name already exists")
			return
		}
		log.Error("Failed to create size", err, nil)
		apperrors.InternalError(c, "Failed to create size")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"size": size})
}

// UpdateSize updates a size (Admin only)
// PUT /api/v1/admin/sizes/:id
func (ctrl *LookupController) UpdateSize(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req service.SizeInput
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, err.Error())
		return
	}

	size, err := ctrl.lookupService.UpdateSize(id, req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSizeNotFound):
			apperrors.NotFound(c, apperrors.CatalogLookupNotFound, "Size not found")
		case errors.Is(err, service.ErrDuplicateLookup):
			apperrors.Conflict(c, apperrors.CatalogLookupNameExists, "A size with that name already exists")
		default:
			log.Error("Failed to update size", err, map[string]interface{}{"size_id": id})
			apperrors.InternalError(c, "Failed to update size")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"size": size})
}

// DeleteSize soft-deletes a size (Admin only)
// DELETE /api/v1/admin/sizes/:id
func (ctrl *LookupController) DeleteSize(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := ctrl.lookupService.DeleteSize(id); err != nil {
		if errors.Is(err, service.ErrSizeNotFound) {
			apperrors.NotFound(c, apperrors.CatalogLookupNotFound, "Size not found")
			return
		}
		log.Error("Failed to delete size", err, map[string]interface{}{"size_id": id})
		apperrors.InternalError(c, "Failed to delete size")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Size deleted"})
}

// ListColors returns colors, active ones only unless ?all=true
// GET /api/v1/colors
func (ctrl *LookupController) ListColors(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	colors, err := ctrl.lookupService.ListColors(c.Query("all") != "true")
	if err != nil {
		log.Error("Failed to fetch colors", err, nil)
		apperrors.InternalError(c, "Failed to fetch colors")
		return
	}

	c.JSON(http.StatusOK, gin.H{"colors": colors, "count": len(colors)})
}

// CreateColor creates a new color (Admin only)
// POST /api/v1/admin/colors
func (ctrl *LookupController) CreateColor(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req service.ColorInput
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, err.Error())
		return
	}

	color, err := ctrl.lookupService.CreateColor(req)
	if err != nil {
		if errors.Is(err, service.ErrDuplicateLookup) {
			apperrors.Conflict(c, apperrors.CatalogLookupNameExists, "A color with that name already exists")
			return
		}
		log.Error("Failed to create color", err, nil)
		apperrors.InternalError(c, "Failed to create color")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"color": color})
}

// UpdateColor updates a color (Admin only)
// PUT /api/v1/admin/colors/:id
func (ctrl *LookupController) UpdateColor(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req service.ColorInput
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, err.Error())
		return
	}

	color, err := ctrl.lookupService.UpdateColor(id, req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrColorNotFound):
			apperrors.NotFound(c, apperrors.CatalogLookupNotFound, "Color not found")
		case errors.Is(err, service.ErrDuplicateLookup):
			apperrors.Conflict(c, apperrors.CatalogLookupNameExists, "A color with that name already exists")
		default:
			log.Error("Failed to update color", err, map[string]interface{}{"color_id": id})
			apperrors.InternalError(c, "Failed to update color")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"color": color})
}

// DeleteColor soft-deletes a color (Admin only)
// DELETE /api/v1/admin/colors/:id
func (ctrl *LookupController) DeleteColor(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := ctrl.lookupService.DeleteColor(id); err != nil {
		if errors.Is(err, service.ErrColorNotFound) {
			apperrors.NotFound(c, apperrors.CatalogLookupNotFound, "Color not found")
			return
		}
		log.Error("Failed to delete color", err, map[string]interface{}{"color_id": id})
		apperrors.InternalError(c, "Failed to delete color")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Color deleted"})
}
