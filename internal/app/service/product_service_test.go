package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/ebuka-odih/mini-ecommerce-backend/config"
	"github.com/ebuka-odih/mini-ecommerce-backend/internal/app/model"
	"github.com/ebuka-odih/mini-ecommerce-backend/internal/app/repository"
	"github.com/ebuka-odih/mini-ecommerce-backend/internal/db"
)

func setupProductServiceTest(t *testing.T) (ProductService, *gorm.DB) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() { db.CleanupTestDB(testDB) })

	mediaService := NewMediaService(
		repository.NewImageRepository(testDB),
		newFakeObjectStorage(),
		config.MediaConfig{FetchTimeout: 5 * time.Second, MaxUploadSize: 1 << 20, DefaultFolder: "root"},
		nil,
	)
	svc := NewProductService(
		repository.NewProductRepository(testDB),
		repository.NewCategoryRepository(testDB),
		mediaService,
		testDB,
	)
	return svc, testDB
}

func TestProductService_CreateProduct(t *testing.T) {
	svc, testDB := setupProductServiceTest(t)

	category := &model.Category{Name: "Tees", Slug: "tees", IsActive: true}
	require.NoError(t, testDB.Create(category).Error)

	product := &model.Product{
		Name:       "Green Tee",
		SKU:        "GN-001",
		Price:      25.00,
		CategoryID: &category.ID,
		IsActive:   true,
	}
	require.NoError(t, svc.CreateProduct(product))
	assert.Equal(t, "green-tee", product.Slug)

	// Same name gets a suffixed slug instead of a collision.
	second := &model.Product{Name: "Green Tee", SKU: "GN-002", Price: 25.00}
	require.NoError(t, svc.CreateProduct(second))
	assert.Equal(t, "green-tee-2", second.Slug)

	missing := uint(9999)
	err := svc.CreateProduct(&model.Product{Name: "Orphan", SKU: "OR-001", CategoryID: &missing})
	assert.ErrorIs(t, err, ErrCategoryNotFound)
}

func TestProductService_CreateProduct_DuplicateSKU(t *testing.T) {
	svc, _ := setupProductServiceTest(t)

	require.NoError(t, svc.CreateProduct(&model.Product{Name: "Green Tee", SKU: "GN-001", Price: 25.00}))

	err := svc.CreateProduct(&model.Product{Name: "Another Tee", SKU: "GN-001", Price: 30.00})
	assert.ErrorIs(t, err, ErrDuplicateSKU)
}

func TestProductService_GetProduct(t *testing.T) {
	svc, _ := setupProductServiceTest(t)

	product := &model.Product{Name: "Green Tee", SKU: "GN-001", Price: 25.00}
	require.NoError(t, svc.CreateProduct(product))

	found, err := svc.GetProductByID(product.ID)
	require.NoError(t, err)
	assert.Equal(t, "Green Tee", found.Name)

	found, err = svc.GetProductBySlug("green-tee")
	require.NoError(t, err)
	assert.Equal(t, product.ID, found.ID)

	_, err = svc.GetProductByID(9999)
	assert.ErrorIs(t, err, ErrProductNotFound)

	_, err = svc.GetProductBySlug("no-such-tee")
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestProductService_ListProducts(t *testing.T) {
	svc, testDB := setupProductServiceTest(t)

	category := &model.Category{Name: "Tees", Slug: "tees", IsActive: true}
	require.NoError(t, testDB.Create(category).Error)

	require.NoError(t, svc.CreateProduct(&model.Product{
		Name: "Green Tee", SKU: "GN-001", Price: 25.00, CategoryID: &category.ID, IsActive: true, IsFeatured: true,
	}))
	require.NoError(t, svc.CreateProduct(&model.Product{
		Name: "Blue Hoodie", SKU: "BH-001", Price: 60.00, IsActive: true,
	}))
	require.NoError(t, svc.CreateProduct(&model.Product{
		Name: "Retired Tee", SKU: "RT-001", Price: 10.00, IsActive: false,
	}))

	all, err := svc.ListProducts(ProductListOptions{})
	require.NoError(t, err)
	assert.Len(t, all, 3)

	active, err := svc.ListProducts(ProductListOptions{ActiveOnly: true})
	require.NoError(t, err)
	assert.Len(t, active, 2)

	featured, err := svc.ListProducts(ProductListOptions{FeaturedOnly: true})
	require.NoError(t, err)
	require.Len(t, featured, 1)
	assert.Equal(t, "GN-001", featured[0].SKU)

	inCategory, err := svc.ListProducts(ProductListOptions{CategoryID: &category.ID})
	require.NoError(t, err)
	assert.Len(t, inCategory, 1)

	searched, err := svc.ListProducts(ProductListOptions{Search: "hoodie"})
	require.NoError(t, err)
	require.Len(t, searched, 1)
	assert.Equal(t, "BH-001", searched[0].SKU)

	cheapestFirst, err := svc.ListProducts(ProductListOptions{Sort: ProductSortPrice, SortAscending: true})
	require.NoError(t, err)
	require.Len(t, cheapestFirst, 3)
	assert.Equal(t, "RT-001", cheapestFirst[0].SKU)
}

func TestProductService_UpdateProduct(t *testing.T) {
	svc, _ := setupProductServiceTest(t)

	product := &model.Product{Name: "Green Tee", SKU: "GN-001", Price: 25.00}
	require.NoError(t, svc.CreateProduct(product))
	other := &model.Product{Name: "Blue Tee", SKU: "BL-001", Price: 25.00}
	require.NoError(t, svc.CreateProduct(other))

	product.Price = 29.00
	product.SKU = "BL-001"
	assert.ErrorIs(t, svc.UpdateProduct(product), ErrDuplicateSKU)

	product.SKU = "GN-001"
	require.NoError(t, svc.UpdateProduct(product))

	updated, err := svc.GetProductByID(product.ID)
	require.NoError(t, err)
	assert.Equal(t, 29.00, updated.Price)
	assert.Equal(t, "green-tee", updated.Slug)

	assert.ErrorIs(t, svc.UpdateProduct(&model.Product{ID: 9999, Name: "Ghost"}), ErrProductNotFound)
}

func TestProductService_DeleteProduct(t *testing.T) {
	svc, _ := setupProductServiceTest(t)

	product := &model.Product{Name: "Green Tee", SKU: "GN-001", Price: 25.00}
	require.NoError(t, svc.CreateProduct(product))

	require.NoError(t, svc.DeleteProduct(product.ID))
	assert.ErrorIs(t, svc.DeleteProduct(product.ID), ErrProductNotFound)

	_, err := svc.GetProductByID(product.ID)
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestProductService_AttachImages(t *testing.T) {
	svc, testDB := setupProductServiceTest(t)

	product := &model.Product{Name: "Green Tee", SKU: "GN-001", Price: 25.00}
	require.NoError(t, svc.CreateProduct(product))

	img1 := &model.Image{Filename: "front.jpg", Path: "root/front.jpg", URL: "https://cdn.test/root/front.jpg"}
	img2 := &model.Image{Filename: "back.jpg", Path: "root/back.jpg", URL: "https://cdn.test/root/back.jpg"}
	require.NoError(t, testDB.Create(img1).Error)
	require.NoError(t, testDB.Create(img2).Error)

	attached, err := svc.AttachImages(product.ID, []uint{img1.ID, img2.ID})
	require.NoError(t, err)
	assert.Len(t, attached.Images, 2)

	// Attaching records usage on each image.
	var used model.Image
	require.NoError(t, testDB.First(&used, img1.ID).Error)
	assert.NotNil(t, used.LastUsedAt)
	assert.Equal(t, "product", used.UsageContext)

	// A later attach replaces the set rather than appending.
	attached, err = svc.AttachImages(product.ID, []uint{img2.ID})
	require.NoError(t, err)
	assert.Len(t, attached.Images, 1)

	_, err = svc.AttachImages(product.ID, []uint{img1.ID, 9999})
	assert.ErrorIs(t, err, ErrImageNotFound)

	_, err = svc.AttachImages(9999, []uint{img1.ID})
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestProductService_RecreateAfterDelete(t *testing.T) {
	svc, _ := setupProductServiceTest(t)

	first := &model.Product{Name: "Green Tee", SKU: "GN-001", Price: 25.00, IsActive: true}
	require.NoError(t, svc.CreateProduct(first))
	require.Equal(t, "green-tee", first.Slug)
	require.NoError(t, svc.DeleteProduct(first.ID))

	// A soft-deleted product releases its SKU and slug for reuse.
	second := &model.Product{Name: "Green Tee", SKU: "GN-001", Price: 28.00, IsActive: true}
	require.NoError(t, svc.CreateProduct(second))
	assert.Equal(t, "green-tee", second.Slug)
	assert.NotEqual(t, first.ID, second.ID)
}
