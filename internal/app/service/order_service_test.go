package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/ebuka-odih/mini-ecommerce-backend/internal/app/model"
	"github.com/ebuka-odih/mini-ecommerce-backend/internal/app/repository"
	"github.com/ebuka-odih/mini-ecommerce-backend/internal/db"
)

type orderFixtures struct {
	customer *model.User
	plain    *model.Product // no variations, sells at base price
	tee      *model.Product // variation-driven
	sizeM    *model.Size
	red      *model.Color
}

func setupOrderServiceTest(t *testing.T) (OrderService, *gorm.DB, orderFixtures) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() { db.CleanupTestDB(testDB) })

	orderRepo := repository.NewOrderRepository(testDB)
	userRepo := repository.NewUserRepository(testDB)
	productRepo := repository.NewProductRepository(testDB)
	variationRepo := repository.NewVariationRepository(testDB)
	sizeRepo := repository.NewSizeRepository(testDB)
	colorRepo := repository.NewColorRepository(testDB)

	variationService := NewVariationService(variationRepo, productRepo, sizeRepo, colorRepo)
	svc := NewOrderService(orderRepo, userRepo, productRepo, variationRepo, variationService)

	f := orderFixtures{
		customer: &model.User{Email: "jo@example.com", PasswordHash: "x", Name: "Jo", Role: model.RoleCustomer},
		plain:    &model.Product{Name: "Tote Bag", Slug: "tote-bag", SKU: "TB-001", Price: 15.00, StockQuantity: 10, IsActive: true},
		tee:      &model.Product{Name: "Green Tee", Slug: "green-tee", SKU: "GN-001", Price: 25.00, StockQuantity: 0, IsActive: true},
		sizeM:    &model.Size{Name: "M"},
		red:      &model.Color{Name: "Red"},
	}
	require.NoError(t, testDB.Create(f.customer).Error)
	require.NoError(t, testDB.Create(f.plain).Error)
	require.NoError(t, testDB.Create(f.tee).Error)
	require.NoError(t, testDB.Create(f.sizeM).Error)
	require.NoError(t, testDB.Create(f.red).Error)

	price := 27.50
	_, err = variationService.Create(VariationInput{
		ProductID:     f.tee.ID,
		SizeID:        &f.sizeM.ID,
		ColorID:       &f.red.ID,
		Price:         &price,
		StockQuantity: 4,
		IsActive:      true,
	})
	require.NoError(t, err)

	return svc, testDB, f
}

func TestOrderService_CreateOrder(t *testing.T) {
	svc, testDB, f := setupOrderServiceTest(t)

	order, err := svc.CreateOrder(OrderInput{
		UserID:          f.customer.ID,
		ShippingAddress: "12 Marina Rd, Lagos",
		Items: []OrderItemInput{
			{ProductID: f.plain.ID, Quantity: 2},
			{ProductID: f.tee.ID, SizeID: &f.sizeM.ID, ColorID: &f.red.ID, Quantity: 1},
		},
	})
	require.NoError(t, err)

	assert.NotEmpty(t, order.OrderNumber)
	assert.Equal(t, model.OrderStatusPending, order.Status)
	assert.Equal(t, 2*15.00+27.50, order.TotalAmount)
	require.Len(t, order.OrderItems, 2)

	// Each line snapshots what the customer saw at checkout.
	plain := order.OrderItems[0]
	assert.Equal(t, "Tote Bag", plain.ProductName)
	assert.Equal(t, "TB-001", plain.SKU)
	assert.Equal(t, 15.00, plain.UnitPrice)
	assert.Nil(t, plain.VariationID)

	tee := order.OrderItems[1]
	assert.Equal(t, "GN-001-M-RED", tee.SKU)
	assert.Equal(t, 27.50, tee.UnitPrice)
	assert.NotNil(t, tee.VariationID)

	// Stock came off the variation row and the base product respectively.
	var product model.Product
	require.NoError(t, testDB.First(&product, f.plain.ID).Error)
	assert.Equal(t, 8, product.StockQuantity)

	var variation model.ProductVariation
	require.NoError(t, testDB.Where("product_id = ?", f.tee.ID).First(&variation).Error)
	assert.Equal(t, 3, variation.StockQuantity)
}

func TestOrderService_CreateOrder_Rejections(t *testing.T) {
	svc, _, f := setupOrderServiceTest(t)

	_, err := svc.CreateOrder(OrderInput{
		UserID: 9999,
		Items:  []OrderItemInput{{ProductID: f.plain.ID, Quantity: 1}},
	})
	assert.ErrorIs(t, err, ErrCustomerNotFound)

	_, err = svc.CreateOrder(OrderInput{
		UserID: f.customer.ID,
		Items:  []OrderItemInput{{ProductID: 9999, Quantity: 1}},
	})
	assert.ErrorIs(t, err, ErrProductNotFound)

	// A variation product only sells combinations that exist.
	_, err = svc.CreateOrder(OrderInput{
		UserID: f.customer.ID,
		Items:  []OrderItemInput{{ProductID: f.tee.ID, Quantity: 1}},
	})
	assert.ErrorIs(t, err, ErrVariationNotFound)

	_, err = svc.CreateOrder(OrderInput{
		UserID: f.customer.ID,
		Items:  []OrderItemInput{{ProductID: f.plain.ID, Quantity: 50}},
	})
	assert.ErrorIs(t, err, ErrInsufficientStock)
}

func TestOrderService_ListOrders(t *testing.T) {
	svc, _, f := setupOrderServiceTest(t)

	order, err := svc.CreateOrder(OrderInput{
		UserID: f.customer.ID,
		Items:  []OrderItemInput{{ProductID: f.plain.ID, Quantity: 1}},
	})
	require.NoError(t, err)

	orders, err := svc.ListOrders(OrderListOptions{})
	require.NoError(t, err)
	assert.Len(t, orders, 1)

	pending, err := svc.ListOrders(OrderListOptions{Status: "pending"})
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, order.ID, pending[0].ID)

	shipped, err := svc.ListOrders(OrderListOptions{Status: "shipped"})
	require.NoError(t, err)
	assert.Len(t, shipped, 0)

	_, err = svc.ListOrders(OrderListOptions{Status: "misplaced"})
	assert.ErrorIs(t, err, ErrInvalidOrderState)
}

func TestOrderService_UpdateOrderStatus(t *testing.T) {
	svc, _, f := setupOrderServiceTest(t)

	order, err := svc.CreateOrder(OrderInput{
		UserID: f.customer.ID,
		Items:  []OrderItemInput{{ProductID: f.plain.ID, Quantity: 1}},
	})
	require.NoError(t, err)

	updated, err := svc.UpdateOrderStatus(order.ID, model.OrderStatusShipped)
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusShipped, updated.Status)

	_, err = svc.UpdateOrderStatus(order.ID, "misplaced")
	assert.ErrorIs(t, err, ErrInvalidOrderState)

	_, err = svc.UpdateOrderStatus(9999, model.OrderStatusShipped)
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestOrderService_Customers(t *testing.T) {
	svc, testDB, f := setupOrderServiceTest(t)

	// Admins are not customers.
	admin := &model.User{Email: "admin@example.com", PasswordHash: "x", Name: "Admin", Role: model.RoleAdmin}
	require.NoError(t, testDB.Create(admin).Error)

	customers, err := svc.ListCustomers(0, 0)
	require.NoError(t, err)
	require.Len(t, customers, 1)
	assert.Equal(t, f.customer.ID, customers[0].ID)

	customer, err := svc.GetCustomer(f.customer.ID)
	require.NoError(t, err)
	assert.Equal(t, "Jo", customer.Name)

	_, err = svc.GetCustomer(9999)
	assert.ErrorIs(t, err, ErrCustomerNotFound)
}
