package app

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/ebuka-odih/mini-ecommerce-backend/config"
	"github.com/ebuka-odih/mini-ecommerce-backend/internal/app/controller"
	"github.com/ebuka-odih/mini-ecommerce-backend/internal/app/model"
	"github.com/ebuka-odih/mini-ecommerce-backend/internal/app/repository"
	"github.com/ebuka-odih/mini-ecommerce-backend/internal/app/service"
	"github.com/ebuka-odih/mini-ecommerce-backend/internal/db"
	"github.com/ebuka-odih/mini-ecommerce-backend/internal/middleware"
	"github.com/ebuka-odih/mini-ecommerce-backend/pkg/util"
)

type TestServer struct {
	Router      *gin.Engine
	DB          *gorm.DB
	AuthService service.AuthService
}

// nullStorage stands in for S3 during integration tests. No media is
// uploaded over HTTP here, so it only needs to satisfy the interface.
type nullStorage struct{}

func (nullStorage) Upload(_ context.Context, key, _ string, _ []byte) (string, error) {
	return "https://cdn.test/" + key, nil
}

func (nullStorage) Delete(_ context.Context, _ string) error { return nil }

func (nullStorage) ObjectKey(folder, filename string) string { return folder + "/" + filename }

func (nullStorage) ObjectURL(key string) string { return "https://cdn.test/" + key }

func setupIntegrationTest(t *testing.T) *TestServer {
	gin.SetMode(gin.TestMode)

	// Setup database
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)

	// Setup repositories
	userRepo := repository.NewUserRepository(testDB)
	categoryRepo := repository.NewCategoryRepository(testDB)
	productRepo := repository.NewProductRepository(testDB)
	sizeRepo := repository.NewSizeRepository(testDB)
	colorRepo := repository.NewColorRepository(testDB)
	variationRepo := repository.NewVariationRepository(testDB)
	imageRepo := repository.NewImageRepository(testDB)
	layoutRepo := repository.NewLayoutRepository(testDB)
	orderRepo := repository.NewOrderRepository(testDB)

	// Setup services
	authService := service.NewAuthService(userRepo, config.JWTConfig{
		Secret:             "test-secret",
		AccessTokenExpiry:  15 * time.Minute,
		RefreshTokenExpiry: 7 * 24 * time.Hour,
	})
	mediaService := service.NewMediaService(imageRepo, nullStorage{}, config.MediaConfig{
		FetchTimeout:  5 * time.Second,
		MaxUploadSize: 10 << 20,
		DefaultFolder: model.FolderRoot,
	}, nil)
	categoryService := service.NewCategoryService(categoryRepo)
	productService := service.NewProductService(productRepo, categoryRepo, mediaService, testDB)
	lookupService := service.NewLookupService(sizeRepo, colorRepo)
	variationService := service.NewVariationService(variationRepo, productRepo, sizeRepo, colorRepo)
	layoutService := service.NewLayoutService(layoutRepo, categoryRepo, testDB)
	orderService := service.NewOrderService(orderRepo, userRepo, productRepo, variationRepo, variationService)

	// Setup controllers
	authController := controller.NewAuthController(authService)
	categoryController := controller.NewCategoryController(categoryService)
	productController := controller.NewProductController(productService)
	lookupController := controller.NewLookupController(lookupService)
	variationController := controller.NewVariationController(variationService)
	layoutController := controller.NewLayoutController(layoutService)
	orderController := controller.NewOrderController(orderService)

	// Setup middleware
	authMiddleware := middleware.NewAuthMiddleware("test-secret")

	// Setup router
	router := gin.New()

	auth := router.Group("/api/v1/auth")
	{
		auth.POST("/register", authController.Register)
		auth.POST("/login", authController.Login)
		auth.POST("/refresh", authController.Refresh)
	}

	v1 := router.Group("/api/v1")
	{
		v1.GET("/products", productController.ListProducts)
		v1.GET("/products/:id", productController.GetProduct)
		v1.GET("/products/:id/variations", variationController.ListVariations)
		v1.GET("/products/:id/resolve", variationController.Resolve)
		v1.GET("/categories", categoryController.ListCategories)
		v1.GET("/sizes", lookupController.ListSizes)
		v1.GET("/colors", lookupController.ListColors)
		v1.GET("/homepage", layoutController.ResolveHomepage)

		v1.POST("/orders", authMiddleware.Authenticate(), orderController.CreateOrder)
	}

	admin := router.Group("/api/v1/admin")
	admin.Use(authMiddleware.Authenticate(), authMiddleware.RequireRole("admin"))
	{
		admin.POST("/categories", categoryController.CreateCategory)
		admin.POST("/products", productController.CreateProduct)
		admin.POST("/products/:id/variations", variationController.CreateVariation)
		admin.POST("/sizes", lookupController.CreateSize)
		admin.POST("/colors", lookupController.CreateColor)
		admin.POST("/layouts", layoutController.CreateLayout)
		admin.GET("/orders", orderController.ListOrders)
		admin.PUT("/orders/:id/status", orderController.UpdateOrderStatus)
		admin.GET("/customers", orderController.ListCustomers)
	}

	return &TestServer{
		Router:      router,
		DB:          testDB,
		AuthService: authService,
	}
}

// seedAdmin inserts an admin user directly and returns a bearer token for it.
func seedAdmin(t *testing.T, ts *TestServer) string {
	hash, err := util.HashPassword("admin-password")
	require.NoError(t, err)

	admin := &model.User{
		Email:        "admin@example.com",
		PasswordHash: hash,
		Name:         "Admin",
		Role:         model.RoleAdmin,
	}
	require.NoError(t, ts.DB.Create(admin).Error)

	tokens, err := util.GenerateTokenPair(admin.ID, admin.Email, string(admin.Role), "test-secret", 15*time.Minute, time.Hour)
	require.NoError(t, err)
	return tokens.AccessToken
}

func (ts *TestServer) doJSON(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	ts.Router.ServeHTTP(w, req)
	return w
}

func decodeJSON(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestCompleteStoreJourney(t *testing.T) {
	ts := setupIntegrationTest(t)
	defer db.CleanupTestDB(ts.DB)

	// 1. Register a customer
	t.Log("Step 1: Register customer")
	w := ts.doJSON(t, "POST", "/api/v1/auth/register", "", map[string]string{
		"email":    "buyer@example.com",
		"password": "password123",
		"name":     "Test Buyer",
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	registerResp := decodeJSON(t, w)
	customerToken := registerResp["tokens"].(map[string]interface{})["access_token"].(string)
	customerID := uint(registerResp["user"].(map[string]interface{})["id"].(float64))

	// 2. Admin sets up the catalog
	t.Log("Step 2: Admin builds catalog")
	adminToken := seedAdmin(t, ts)

	w = ts.doJSON(t, "POST", "/api/v1/admin/categories", adminToken, map[string]interface{}{
		"name": "T-Shirts",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	categoryID := uint(decodeJSON(t, w)["category"].(map[string]interface{})["id"].(float64))

	w = ts.doJSON(t, "POST", "/api/v1/admin/sizes", adminToken, map[string]interface{}{"name": "M"})
	require.Equal(t, http.StatusCreated, w.Code)
	sizeID := uint(decodeJSON(t, w)["size"].(map[string]interface{})["id"].(float64))

	w = ts.doJSON(t, "POST", "/api/v1/admin/colors", adminToken, map[string]interface{}{
		"name":     "Red",
		"hex_code": "#FF0000",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	colorID := uint(decodeJSON(t, w)["color"].(map[string]interface{})["id"].(float64))

	w = ts.doJSON(t, "POST", "/api/v1/admin/products", adminToken, map[string]interface{}{
		"name":           "Green Tee",
		"sku":            "GN-001",
		"price":          25.00,
		"stock_quantity": 100,
		"category_id":    categoryID,
	})
	require.Equal(t, http.StatusCreated, w.Code)
	product := decodeJSON(t, w)["product"].(map[string]interface{})
	productID := uint(product["id"].(float64))
	assert.Equal(t, "green-tee", product["slug"])

	w = ts.doJSON(t, "POST", fmt.Sprintf("/api/v1/admin/products/%d/variations", productID), adminToken, map[string]interface{}{
		"size_id":        sizeID,
		"color_id":       colorID,
		"price":          27.50,
		"stock_quantity": 4,
	})
	require.Equal(t, http.StatusCreated, w.Code)
	variation := decodeJSON(t, w)["variation"].(map[string]interface{})
	assert.Equal(t, "GN-001-M-RED", variation["sku"])

	// 3. Admin places the category on the homepage
	t.Log("Step 3: Admin publishes hero layout")
	w = ts.doJSON(t, "POST", "/api/v1/admin/layouts", adminToken, map[string]interface{}{
		"grid_position": "hero",
		"section_name":  "Hero",
		"category_id":   categoryID,
		"layout_type":   "grid",
		"title":         "New Season",
		"gradient_from": "#111111",
		"gradient_to":   "#333333",
		"is_active":     true,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	// 4. Storefront resolves the homepage
	t.Log("Step 4: Resolve homepage")
	w = ts.doJSON(t, "GET", "/api/v1/homepage", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	homepageResp := decodeJSON(t, w)
	slots := homepageResp["slots"].([]interface{})
	assert.Len(t, slots, len(model.GridPositions))

	hero := slots[0].(map[string]interface{})
	assert.Equal(t, "hero", hero["position"])
	assert.NotNil(t, hero["layout"])
	assert.Equal(t, "/category/t-shirts", hero["link"])

	// 5. Storefront resolves the variation selection
	t.Log("Step 5: Resolve variation quote")
	w = ts.doJSON(t, "GET", fmt.Sprintf("/api/v1/products/%d/resolve?size_id=%d&color_id=%d", productID, sizeID, colorID), "", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	quote := decodeJSON(t, w)
	assert.Equal(t, 27.50, quote["price"])
	assert.Equal(t, float64(4), quote["stock"])
	assert.Equal(t, "GN-001-M-RED", quote["sku"])

	// 6. Customer places an order for that selection
	t.Log("Step 6: Place order")
	w = ts.doJSON(t, "POST", "/api/v1/orders", customerToken, map[string]interface{}{
		"user_id":          customerID,
		"shipping_address": "1 Test Street",
		"items": []map[string]interface{}{
			{"product_id": productID, "size_id": sizeID, "color_id": colorID, "quantity": 2},
		},
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	orderResp := decodeJSON(t, w)
	order := orderResp["order"].(map[string]interface{})
	assert.Equal(t, "pending", order["status"])
	assert.Equal(t, 55.00, order["total_amount"])

	items := order["order_items"].([]interface{})
	require.Len(t, items, 1)
	assert.Equal(t, "GN-001-M-RED", items[0].(map[string]interface{})["sku"])

	// 7. Variation stock decreased, base product stock untouched by the override price
	t.Log("Step 7: Verify stock")
	var updatedVariation model.ProductVariation
	require.NoError(t, ts.DB.First(&updatedVariation, uint(variation["id"].(float64))).Error)
	assert.Equal(t, 2, updatedVariation.StockQuantity)

	// 8. Admin reviews the order book and the customer list
	t.Log("Step 8: Admin reviews orders")
	w = ts.doJSON(t, "GET", "/api/v1/admin/orders", adminToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	orders := decodeJSON(t, w)["orders"].([]interface{})
	assert.Len(t, orders, 1)

	orderID := uint(order["id"].(float64))
	w = ts.doJSON(t, "PUT", fmt.Sprintf("/api/v1/admin/orders/%d/status", orderID), adminToken, map[string]string{
		"status": "shipped",
	})
	assert.Equal(t, http.StatusOK, w.Code)

	w = ts.doJSON(t, "GET", "/api/v1/admin/customers", adminToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	customers := decodeJSON(t, w)["customers"].([]interface{})
	require.Len(t, customers, 1)
	assert.Equal(t, "buyer@example.com", customers[0].(map[string]interface{})["email"])
}

func TestAuthenticationFlow(t *testing.T) {
	ts := setupIntegrationTest(t)
	defer db.CleanupTestDB(ts.DB)

	w := ts.doJSON(t, "POST", "/api/v1/auth/register", "", map[string]string{
		"email":    "test@example.com",
		"password": "password123",
		"name":     "Test User",
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	// Login
	w = ts.doJSON(t, "POST", "/api/v1/auth/login", "", map[string]string{
		"email":    "test@example.com",
		"password": "password123",
	})
	assert.Equal(t, http.StatusOK, w.Code)

	loginResp := decodeJSON(t, w)
	refreshToken := loginResp["tokens"].(map[string]interface{})["refresh_token"].(string)

	// Refresh
	w = ts.doJSON(t, "POST", "/api/v1/auth/refresh", "", map[string]string{
		"refresh_token": refreshToken,
	})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, decodeJSON(t, w)["tokens"].(map[string]interface{})["access_token"])
}

func TestAdminRouteProtection(t *testing.T) {
	ts := setupIntegrationTest(t)
	defer db.CleanupTestDB(ts.DB)

	// No token at all
	w := ts.doJSON(t, "POST", "/api/v1/admin/categories", "", map[string]string{"name": "Jeans"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// A customer token is authenticated but not authorized
	w = ts.doJSON(t, "POST", "/api/v1/auth/register", "", map[string]string{
		"email":    "shopper@example.com",
		"password": "password123",
		"name":     "Shopper",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	customerToken := decodeJSON(t, w)["tokens"].(map[string]interface{})["access_token"].(string)

	w = ts.doJSON(t, "POST", "/api/v1/admin/categories", customerToken, map[string]string{"name": "Jeans"})
	assert.Equal(t, http.StatusForbidden, w.Code)

	// Orders need a logged-in user
	w = ts.doJSON(t, "POST", "/api/v1/orders", "", map[string]interface{}{
		"user_id": 1,
		"items":   []map[string]interface{}{{"product_id": 1, "quantity": 1}},
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
