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

type variationFixtures struct {
	product *model.Product
	sizeS   *model.Size
	sizeM   *model.Size
	red     *model.Color
	blue    *model.Color
}

func setupVariationServiceTest(t *testing.T) (VariationService, *gorm.DB, variationFixtures) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() { db.CleanupTestDB(testDB) })

	variationRepo := repository.NewVariationRepository(testDB)
	productRepo := repository.NewProductRepository(testDB)
	sizeRepo := repository.NewSizeRepository(testDB)
	colorRepo := repository.NewColorRepository(testDB)

	svc := NewVariationService(variationRepo, productRepo, sizeRepo, colorRepo)

	fixtures := variationFixtures{
		product: &model.Product{Name: "Green Tee", Slug: "green-tee", SKU: "GN-001", Price: 25.00, StockQuantity: 100, IsActive: true},
		sizeS:   &model.Size{Name: "S", DisplayName: "Small"},
		sizeM:   &model.Size{Name: "M", DisplayName: "Medium"},
		red:     &model.Color{Name: "Red", HexCode: "#ff0000"},
		blue:    &model.Color{Name: "Blue", HexCode: "#0000ff"},
	}
	require.NoError(t, testDB.Create(fixtures.product).Error)
	require.NoError(t, testDB.Create(fixtures.sizeS).Error)
	require.NoError(t, testDB.Create(fixtures.sizeM).Error)
	require.NoError(t, testDB.Create(fixtures.red).Error)
	require.NoError(t, testDB.Create(fixtures.blue).Error)

	return svc, testDB, fixtures
}

func TestVariationService_Create(t *testing.T) {
	svc, testDB, f := setupVariationServiceTest(t)

	price := 27.50
	variation, err := svc.Create(VariationInput{
		ProductID:     f.product.ID,
		SizeID:        &f.sizeM.ID,
		ColorID:       &f.red.ID,
		Price:         &price,
		StockQuantity: 5,
		IsActive:      true,
	})
	require.NoError(t, err)
	require.NotNil(t, variation.SKU)
	assert.Equal(t, "GN-001-M-RED", *variation.SKU)

	// First variation flips the product into variation-driven selling.
	var product model.Product
	require.NoError(t, testDB.First(&product, f.product.ID).Error)
	assert.True(t, product.HasVariations)
}

func TestVariationService_Create_DuplicateCombination(t *testing.T) {
	svc, _, f := setupVariationServiceTest(t)

	_, err := svc.Create(VariationInput{
		ProductID: f.product.ID,
		SizeID:    &f.sizeM.ID,
		ColorID:   &f.red.ID,
		IsActive:  true,
	})
	require.NoError(t, err)

	_, err = svc.Create(VariationInput{
		ProductID: f.product.ID,
		SizeID:    &f.sizeM.ID,
		ColorID:   &f.red.ID,
		IsActive:  true,
	})
	assert.ErrorIs(t, err, ErrVariationCombinationExists)

	// A different color on the same size is a new combination.
	_, err = svc.Create(VariationInput{
		ProductID: f.product.ID,
		SizeID:    &f.sizeM.ID,
		ColorID:   &f.blue.ID,
		IsActive:  true,
	})
	assert.NoError(t, err)
}

func TestVariationService_Create_UnknownAxis(t *testing.T) {
	svc, _, f := setupVariationServiceTest(t)

	missing := uint(9999)
	_, err := svc.Create(VariationInput{
		ProductID: f.product.ID,
		SizeID:    &missing,
	})
	assert.ErrorIs(t, err, ErrVariationAxisNotFound)

	_, err = svc.Create(VariationInput{
		ProductID: 9999,
		SizeID:    &f.sizeM.ID,
	})
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestVariationService_Resolve(t *testing.T) {
	svc, _, f := setupVariationServiceTest(t)

	override := 30.00
	withOverride, err := svc.Create(VariationInput{
		ProductID:     f.product.ID,
		SizeID:        &f.sizeM.ID,
		ColorID:       &f.red.ID,
		Price:         &override,
		StockQuantity: 3,
		IsActive:      true,
	})
	require.NoError(t, err)

	inherited, err := svc.Create(VariationInput{
		ProductID:     f.product.ID,
		SizeID:        &f.sizeS.ID,
		ColorID:       &f.blue.ID,
		StockQuantity: 8,
		IsActive:      true,
	})
	require.NoError(t, err)

	tests := []struct {
		name      string
		sizeID    *uint
		colorID   *uint
		wantErr   error
		wantPrice float64
		wantStock int
		wantSKU   string
		wantID    *uint
	}{
		{
			name:      "Variation with price override",
			sizeID:    &f.sizeM.ID,
			colorID:   &f.red.ID,
			wantPrice: 30.00,
			wantStock: 3,
			wantSKU:   "GN-001-M-RED",
			wantID:    &withOverride.ID,
		},
		{
			name:      "Variation inheriting the product price",
			sizeID:    &f.sizeS.ID,
			colorID:   &f.blue.ID,
			wantPrice: 25.00,
			wantStock: 8,
			wantSKU:   "GN-001-S-BLUE",
			wantID:    &inherited.ID,
		},
		{
			name:    "Combination that was never created",
			sizeID:  &f.sizeS.ID,
			colorID: &f.red.ID,
			wantErr: ErrVariationNotFound,
		},
		{
			name:    "No selection on a variation product",
			wantErr: ErrVariationNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			quote, err := svc.Resolve(f.product.ID, tt.sizeID, tt.colorID)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantPrice, quote.Price)
			assert.Equal(t, tt.wantStock, quote.Stock)
			assert.Equal(t, tt.wantSKU, quote.SKU)
			require.NotNil(t, quote.VariationID)
			assert.Equal(t, *tt.wantID, *quote.VariationID)
		})
	}
}

func TestVariationService_Resolve_SalePriceInheritance(t *testing.T) {
	svc, testDB, f := setupVariationServiceTest(t)

	sale := 19.99
	f.product.SalePrice = &sale
	require.NoError(t, testDB.Save(f.product).Error)

	_, err := svc.Create(VariationInput{
		ProductID:     f.product.ID,
		SizeID:        &f.sizeM.ID,
		StockQuantity: 2,
		IsActive:      true,
	})
	require.NoError(t, err)

	quote, err := svc.Resolve(f.product.ID, &f.sizeM.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, 19.99, quote.Price)
}

func TestVariationService_Resolve_NoVariationsFallsBack(t *testing.T) {
	svc, _, f := setupVariationServiceTest(t)

	// Without variations any selection answers with the base product.
	quote, err := svc.Resolve(f.product.ID, &f.sizeM.ID, &f.red.ID)
	require.NoError(t, err)
	assert.Equal(t, 25.00, quote.Price)
	assert.Equal(t, 100, quote.Stock)
	assert.Equal(t, "GN-001", quote.SKU)
	assert.Nil(t, quote.VariationID)

	_, err = svc.Resolve(9999, nil, nil)
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestVariationService_Update(t *testing.T) {
	svc, _, f := setupVariationServiceTest(t)

	variation, err := svc.Create(VariationInput{
		ProductID:     f.product.ID,
		SizeID:        &f.sizeM.ID,
		ColorID:       &f.red.ID,
		StockQuantity: 5,
		IsActive:      true,
	})
	require.NoError(t, err)

	other, err := svc.Create(VariationInput{
		ProductID: f.product.ID,
		SizeID:    &f.sizeS.ID,
		ColorID:   &f.red.ID,
		IsActive:  true,
	})
	require.NoError(t, err)

	// Moving onto an occupied combination is rejected.
	_, err = svc.Update(other.ID, VariationInput{
		SizeID:  &f.sizeM.ID,
		ColorID: &f.red.ID,
	})
	assert.ErrorIs(t, err, ErrVariationCombinationExists)

	// Keeping the same combination while changing stock is fine, and the
	// derived SKU follows the axes.
	updated, err := svc.Update(variation.ID, VariationInput{
		SizeID:        &f.sizeM.ID,
		ColorID:       &f.blue.ID,
		StockQuantity: 12,
		IsActive:      true,
	})
	require.NoError(t, err)
	assert.Equal(t, 12, updated.StockQuantity)
	require.NotNil(t, updated.SKU)
	assert.Equal(t, "GN-001-M-BLUE", *updated.SKU)
}

func TestVariationService_Delete(t *testing.T) {
	svc, testDB, f := setupVariationServiceTest(t)

	variation, err := svc.Create(VariationInput{
		ProductID: f.product.ID,
		SizeID:    &f.sizeM.ID,
		IsActive:  true,
	})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(variation.ID))

	// Removing the last variation clears the flag again.
	var product model.Product
	require.NoError(t, testDB.First(&product, f.product.ID).Error)
	assert.False(t, product.HasVariations)

	assert.ErrorIs(t, svc.Delete(variation.ID), ErrVariationNotFound)
}

func TestVariationService_RecreateAfterDelete(t *testing.T) {
	svc, _, f := setupVariationServiceTest(t)

	first, err := svc.Create(VariationInput{
		ProductID: f.product.ID,
		SizeID:    &f.sizeM.ID,
		ColorID:   &f.red.ID,
		IsActive:  true,
	})
	require.NoError(t, err)
	require.NoError(t, svc.Delete(first.ID))

	// The deleted row must not squat on its combination or its derived SKU.
	second, err := svc.Create(VariationInput{
		ProductID:     f.product.ID,
		SizeID:        &f.sizeM.ID,
		ColorID:       &f.red.ID,
		StockQuantity: 3,
		IsActive:      true,
	})
	require.NoError(t, err)
	require.NotNil(t, second.SKU)
	assert.Equal(t, "GN-001-M-RED", *second.SKU)
	assert.NotEqual(t, first.ID, second.ID)

	quote, err := svc.Resolve(f.product.ID, &f.sizeM.ID, &f.red.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, quote.Stock)
}

func TestTranslateVariationError(t *testing.T) {
	svc, testDB, f := setupVariationServiceTest(t)

	_, err := svc.Create(VariationInput{
		ProductID: f.product.ID,
		SizeID:    &f.sizeM.ID,
		ColorID:   &f.red.ID,
		IsActive:  true,
	})
	require.NoError(t, err)

	// Insert the same combination behind the service's back to get the
	// engine's own unique-index error, the way a raced request would.
	dup := &model.ProductVariation{
		ProductID: f.product.ID,
		SizeID:    &f.sizeM.ID,
		ColorID:   &f.red.ID,
	}
	rawErr := testDB.Create(dup).Error
	require.Error(t, rawErr)
	assert.ErrorIs(t, translateVariationError(rawErr), ErrVariationCombinationExists)

	assert.NoError(t, translateVariationError(nil))
	assert.ErrorIs(t, translateVariationError(gorm.ErrRecordNotFound), gorm.ErrRecordNotFound)
}
