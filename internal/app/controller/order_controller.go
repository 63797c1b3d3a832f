package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ebuka-odih/mini-ecommerce-backend/internal/app/model"
	"github.com/ebuka-odih/mini-ecommerce-backend/internal/app/service"
	apperrors "github.com/ebuka-odih/mini-ecommerce-backend/internal/errors"
	"github.com/ebuka-odih/mini-ecommerce-backend/internal/middleware"
)

type OrderController struct {
	orderService service.OrderService
}

func NewOrderController(orderService service.OrderService) *OrderController {
	return &OrderController{
		orderService: orderService,
	}
}

type UpdateOrderStatusRequest struct {
	Status model.OrderStatus `json:"status" binding:"required"`
}

// ListOrders returns orders, optionally filtered by status (Admin only)
// GET /api/v1/admin/orders?status=
func (ctrl *OrderController) ListOrders(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	orders, err := ctrl.orderService.ListOrders(service.OrderListOptions{
		Status: c.Query("status"),
		Limit:  parseIntQuery(c, "limit", 50),
		Offset: parseIntQuery(c, "offset", 0),
	})
	if err != nil {
		if errors.Is(err, service.ErrInvalidOrderState) {
			apperrors.BadRequest(c, apperrors.OrderInvalidStatus, "Unknown order status")
			return
		}
		log.Error("Failed to fetch orders", err, nil)
		apperrors.InternalError(c, "Failed to fetch orders")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"orders": orders,
		"count":  len(orders),
	})
}

// GetOrder returns an order with its items (Admin only)
// GET /api/v1/admin/orders/:id
func (ctrl *OrderController) GetOrder(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	order, err := ctrl.orderService.GetOrder(id)
	if err != nil {
		if errors.Is(err, service.ErrOrderNotFound) {
			apperrors.NotFound(c, apperrors.OrderNotFound, "Order not found")
			return
		}
		log.Error("Failed to fetch order", err, map[string]interface{}{
			"order_id": id,
		})
		apperrors.InternalError(c, "Failed to fetch order")
		return
	}

	c.JSON(http.StatusOK, gin.H{"order": order})
}

// CreateOrder places an order
// POST /api/v1/orders
func (ctrl *OrderController) CreateOrder(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req service.OrderInput
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, err.Error())
		return
	}

	// Authenticated customers order as themselves.
	if userID, ok := middleware.GetUserID(c); ok {
		req.UserID = userID
	}

	order, err := ctrl.orderService.CreateOrder(req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCustomerNotFound):
			apperrors.NotFound(c, apperrors.ResourceNotFound, "Customer not found")
		case errors.Is(err, service.ErrProductNotFound):
			apperrors.NotFound(c, apperrors.CatalogProductNotFound, "Product not found")
		case errors.Is(err, service.ErrVariationNotFound):
			apperrors.NotFound(c, apperrors.VariationNotFound, "No variation matches that selection")
		case errors.Is(err, service.ErrInsufficientStock):
			apperrors.Conflict(c, apperrors.ResourceConflict, "Insufficient stock for one or more items")
		default:
			log.Error("Failed to create order", err, nil)
			apperrors.InternalError(c, "Failed to create order")
		}
		return
	}

	log.Info("Order placed", map[string]interface{}{
		"order_id":     order.ID,
		"order_number": order.OrderNumber,
	})
	c.JSON(http.StatusCreated, gin.H{"order": order})
}

// UpdateOrderStatus moves an order through its lifecycle (Admin only)
// PUT /api/v1/admin/orders/:id/status
func (ctrl *OrderController) UpdateOrderStatus(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, err.Error())
		return
	}

	order, err := ctrl.orderService.UpdateOrderStatus(id, req.Status)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrOrderNotFound):
			apperrors.NotFound(c, apperrors.OrderNotFound, "Order not found")
		case errors.Is(err, service.ErrInvalidOrderState):
			apperrors.BadRequest(c, apperrors.OrderInvalidStatus, "Unknown order status")
		default:
			log.Error("Failed to update order status", err, map[string]interface{}{
				"order_id": id,
			})
			apperrors.InternalError(c, "Failed to update order status")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"order": order})
}

// ListCustomers returns customer accounts (Admin only)
// GET /api/v1/admin/customers
func (ctrl *OrderController) ListCustomers(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	customers, err := ctrl.orderService.ListCustomers(
		parseIntQuery(c, "limit", 50),
		parseIntQuery(c, "offset", 0),
	)
	if err != nil {
		log.Error("Failed to fetch customers", err, nil)
		apperrors.InternalError(c, "Failed to fetch customers")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"customers": customers,
		"count":     len(customers),
	})
}

// GetCustomer returns one customer account (Admin only)
// GET /api/v1/admin/customers/:id
func (ctrl *OrderController) GetCustomer(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	customer, err := ctrl.orderService.GetCustomer(id)
	if err != nil {
		if errors.Is(err, service.ErrCustomerNotFound) {
			apperrors.NotFound(c, apperrors.ResourceNotFound, "Customer not found")
			return
		}
		log.Error("Failed to fetch customer", err, map[string]interface{}{
			"customer_id": id,
		})
		apperrors.InternalError(c, "Failed to fetch customer")
		return
	}

	c.JSON(http.StatusOK, gin.H{"customer": customer})
}
