package service

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/ebuka-odih/mini-ecommerce-backend/internal/app/model"
	"github.com/ebuka-odih/mini-ecommerce-backend/internal/app/repository"
	"github.com/ebuka-odih/mini-ecommerce-backend/pkg/logger"
	"github.com/ebuka-odih/mini-ecommerce-backend/pkg/util"
)

var (
	ErrOrderNotFound     = errors.New("order not found")
	ErrInvalidOrderState = errors.New("invalid order status")
	ErrCustomerNotFound  = errors.New("customer not found")
	ErrInsufficientStock = errors.New("insufficient stock")
)

type OrderItemInput struct {
	ProductID uint  `json:"product_id" binding:"required"`
	SizeID    *uint `json:"size_id"`
	ColorID   *uint `json:"color_id"`
	Quantity  int   `json:"quantity" binding:"required,min=1"`
}

type OrderInput struct {
	UserID          uint             `json:"user_id" binding:"required"`
	ShippingAddress string           `json:"shipping_address"`
	Items           []OrderItemInput `json:"items" binding:"required,min=1"`
}

type OrderListOptions struct {
	Status string
	Limit  int
	Offset int
}

type OrderService interface {
	ListOrders(opts OrderListOptions) ([]model.Order, error)
	GetOrder(id uint) (*model.Order, error)
	CreateOrder(input OrderInput) (*model.Order, error)
	UpdateOrderStatus(id uint, status model.OrderStatus) (*model.Order, error)

	ListCustomers(limit, offset int) ([]model.User, error)
	GetCustomer(id uint) (*model.User, error)
}

type orderService struct {
	orderRepo        repository.OrderRepository
	userRepo         repository.UserRepository
	productRepo      repository.ProductRepository
	variationRepo    repository.VariationRepository
	variationService VariationService
}

func NewOrderService(
	orderRepo repository.OrderRepository,
	userRepo repository.UserRepository,
	productRepo repository.ProductRepository,
	variationRepo repository.VariationRepository,
	variationService VariationService,
) OrderService {
	return &orderService{
		orderRepo:        orderRepo,
		userRepo:         userRepo,
		productRepo:      productRepo,
		variationRepo:    variationRepo,
		variationService: variationService,
	}
}

func (s *orderService) ListOrders(opts OrderListOptions) ([]model.Order, error) {
	filter := repository.OrderFilter{
		Limit:  opts.Limit,
		Offset: opts.Offset,
	}
	if opts.Status != "" {
		status := model.OrderStatus(opts.Status)
		if !validOrderStatus(status) {
			return nil, ErrInvalidOrderState
		}
		filter.Status = &status
	}
	return s.orderRepo.FindWithFilter(filter)
}

func (s *orderService) GetOrder(id uint) (*model.Order, error) {
	order, err := s.orderRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	return order, nil
}

// CreateOrder prices each line through the variation resolver so the
// snapshot carries the SKU and price the customer actually saw, then
// decrements stock.
func (s *orderService) CreateOrder(input OrderInput) (*model.Order, error) {
	if _, err := s.userRepo.FindByID(input.UserID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCustomerNotFound
		}
		return nil, err
	}

	order := &model.Order{
		OrderNumber:     util.GenerateOrderNumber(),
		UserID:          input.UserID,
		Status:          model.OrderStatusPending,
		PaymentStatus:   model.PaymentStatusPending,
		ShippingAddress: input.ShippingAddress,
	}

	for _, item := range input.Items {
		product, err := s.productRepo.FindByID(item.ProductID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrProductNotFound
			}
			return nil, err
		}

		quote, err := s.variationService.Resolve(item.ProductID, item.SizeID, item.ColorID)
		if err != nil {
			return nil, err
		}
		if quote.Stock < item.Quantity {
			return nil, fmt.Errorf("%w: product %d", ErrInsufficientStock, item.ProductID)
		}

		order.OrderItems = append(order.OrderItems, model.OrderItem{
			ProductID:   item.ProductID,
			VariationID: quote.VariationID,
			ProductName: product.Name,
			SKU:         quote.SKU,
			UnitPrice:   quote.Price,
			Quantity:    item.Quantity,
		})
		order.TotalAmount += quote.Price * float64(item.Quantity)
	}

	if err := s.orderRepo.Create(order); err != nil {
		return nil, err
	}

	for _, item := range order.OrderItems {
		var adjustErr error
		if item.VariationID != nil {
			adjustErr = s.variationRepo.AdjustStock(*item.VariationID, -item.Quantity)
		} else {
			adjustErr = s.productRepo.AdjustStock(item.ProductID, -item.Quantity)
		}
		if adjustErr != nil {
			logger.Warn("Failed to adjust stock after order", map[string]interface{}{
				"order_id":   order.ID,
				"product_id": item.ProductID,
				"error":      adjustErr.Error(),
			})
		}
	}

	logger.Info("Order created", map[string]interface{}{
		"order_id":     order.ID,
		"order_number": order.OrderNumber,
		"total":        order.TotalAmount,
	})
	return s.GetOrder(order.ID)
}

func (s *orderService) UpdateOrderStatus(id uint, status model.OrderStatus) (*model.Order, error) {
	if !validOrderStatus(status) {
		return nil, ErrInvalidOrderState
	}
	if _, err := s.GetOrder(id); err != nil {
		return nil, err
	}
	if err := s.orderRepo.UpdateStatus(id, status); err != nil {
		return nil, err
	}

	logger.Info("Order status updated", map[string]interface{}{
		"order_id": id,
		"status":   status,
	})
	return s.GetOrder(id)
}

func (s *orderService) ListCustomers(limit, offset int) ([]model.User, error) {
	role := model.RoleCustomer
	return s.userRepo.FindAll(&role, limit, offset)
}

func (s *orderService) GetCustomer(id uint) (*model.User, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCustomerNotFound
		}
		return nil, err
	}
	return user, nil
}

func validOrderStatus(status model.OrderStatus) bool {
	switch status {
	case model.OrderStatusPending, model.OrderStatusConfirmed,
		model.OrderStatusShipped, model.OrderStatusDelivered,
		model.OrderStatusCancelled:
		return true
	}
	return false
}
