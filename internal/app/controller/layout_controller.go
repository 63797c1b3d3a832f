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

type LayoutController struct {
	layoutService service.LayoutService
}

func NewLayoutController(layoutService service.LayoutService) *LayoutController {
	return &LayoutController{
		layoutService: layoutService,
	}
}

// ResolveHomepage returns the seven grid slots ready to render
// GET /api/v1/homepage
func (ctrl *LayoutController) ResolveHomepage(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	view, err := ctrl.layoutService.ResolveHomepage(c.Request.Context())
	if err != nil {
		log.Error("Failed to resolve homepage", err, nil)
		apperrors.InternalError(c, "Failed to resolve homepage")
		return
	}

	c.JSON(http.StatusOK, view)
}

// ListLayouts returns all layout rows, active or not (Admin only)
// GET /api/v1/admin/layouts
func (ctrl *LayoutController) ListLayouts(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	layouts, err := ctrl.layoutService.ListLayouts()
	if err != nil {
		log.Error("Failed to fetch layouts", err, nil)
		apperrors.InternalError(c, "Failed to fetch layouts")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"layouts": layouts,
		"count":   len(layouts),
	})
}

// GetLayout returns a layout by ID (Admin only)
// GET /api/v1/admin/layouts/:id
func (ctrl *LayoutController) GetLayout(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	layout, err := ctrl.layoutService.GetLayout(id)
	if err != nil {
		if errors.Is(err, service.ErrLayoutNotFound) {
			apperrors.NotFound(c, apperrors.LayoutNotFound, "Layout not found")
			return
		}
		log.Error("Failed to fetch layout", err, map[string]interface{}{
			"layout_id": id,
		})
		apperrors.InternalError(c, "Failed to fetch layout")
		return
	}

	c.JSON(http.StatusOK, gin.H{"layout": layout})
}

// CreateLayout assigns content to a grid slot (Admin only)
// POST /api/v1/admin/layouts
func (ctrl *LayoutController) CreateLayout(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req service.LayoutInput
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, err.Error())
		return
	}

	layout, err := ctrl.layoutService.CreateLayout(c.Request.Context(), req)
	if err != nil {
		ctrl.respondLayoutError(c, log, err, 0)
		return
	}

	log.Info("Layout created", map[string]interface{}{
		"layout_id":     layout.ID,
		"grid_position": layout.GridPosition,
	})
	c.JSON(http.StatusCreated, gin.H{"layout": layout})
}

// UpdateLayout updates a layout row (Admin only)
// PUT /api/v1/admin/layouts/:id
func (ctrl *LayoutController) UpdateLayout(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req service.LayoutInput
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, err.Error())
		return
	}

	layout, err := ctrl.layoutService.UpdateLayout(c.Request.Context(), id, req)
	if err != nil {
		ctrl.respondLayoutError(c, log, err, id)
		return
	}

	c.JSON(http.StatusOK, gin.H{"layout": layout})
}

// DeleteLayout removes a layout row (Admin only)
// DELETE /api/v1/admin/layouts/:id
func (ctrl *LayoutController) DeleteLayout(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := ctrl.layoutService.DeleteLayout(c.Request.Context(), id); err != nil {
		if errors.Is(err, service.ErrLayoutNotFound) {
			apperrors.NotFound(c, apperrors.LayoutNotFound, "Layout not found")
			return
		}
		log.Error("Failed to delete layout", err, map[string]interface{}{
			"layout_id": id,
		})
		apperrors.InternalError(c, "Failed to delete layout")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Layout deleted"})
}

// ToggleActive flips a layout's active flag (Admin only)
// POST /api/v1/admin/layouts/:id/toggle
func (ctrl *LayoutController) ToggleActive(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	layout, err := ctrl.layoutService.ToggleActive(c.Request.Context(), id)
	if err != nil {
		ctrl.respondLayoutError(c, log, err, id)
		return
	}

	c.JSON(http.StatusOK, gin.H{"layout": layout})
}

func (ctrl *LayoutController) respondLayoutError(c *gin.Context, log *logger.Logger, err error, id uint) {
	switch {
	case errors.Is(err, service.ErrLayoutNotFound):
		apperrors.NotFound(c, apperrors.LayoutNotFound, "Layout not found")
	case errors.Is(err, service.ErrInvalidGridPosition):
		apperrors.BadRequest(c, apperrors.LayoutInvalidGridPosition, "Unknown grid position")
	case errors.Is(err, service.ErrInvalidSliderSpeed):
		apperrors.BadRequest(c, apperrors.LayoutInvalidSliderSpeed, "Slider speed must be at least 1000ms")
	case errors.Is(err, service.ErrCategoryNotFound):
		apperrors.NotFound(c, apperrors.CatalogCategoryNotFound, "Category not found")
	default:
		log.Error("Layout operation failed", err, map[string]interface{}{
			"layout_id": id,
		})
		apperrors.InternalError(c, "Layout operation failed")
	}
}
