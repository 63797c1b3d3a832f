package db

import (
	"github.com/ebuka-odih/mini-ecommerce-backend/internal/app/model"
	"github.com/ebuka-odih/mini-ecommerce-backend/pkg/logger"
)

// partialUniqueIndexes are the uniqueness constraints that only span live
// rows. AutoMigrate cannot express a partial index, and a full unique index
// would let a soft-deleted row pin its identifier forever: deleting a
// variation and re-creating the same (product, size, color) combination, or
// a deleted product's slug/SKU, must work. The sqlite test database applies
// the same list, so both engines enforce identical constraints.
var partialUniqueIndexes = []string{
	// One active layout per grid slot; service code deactivates the previous
	// occupant inside the same transaction, this backstops concurrent
	// activations.
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_homepage_layouts_active_position
	 ON homepage_layouts (grid_position) WHERE is_active AND deleted_at IS NULL`,
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_variation_combination
	 ON product_variations (product_id, size_id, color_id) WHERE deleted_at IS NULL`,
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_variations_live_sku
	 ON product_variations (sku) WHERE deleted_at IS NULL`,
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_products_live_slug
	 ON products (slug) WHERE deleted_at IS NULL`,
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_products_live_sku
	 ON products (sku) WHERE deleted_at IS NULL`,
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_categories_live_name
	 ON categories (name) WHERE deleted_at IS NULL`,
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_categories_live_slug
	 ON categories (slug) WHERE deleted_at IS NULL`,
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_sizes_live_name
	 ON sizes (name) WHERE deleted_at IS NULL`,
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_colors_live_name
	 ON colors (name) WHERE deleted_at IS NULL`,
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_users_live_email
	 ON users (email) WHERE deleted_at IS NULL`,
}

// Migrate runs database migrations
func Migrate() error {
	logger.Info("Running database migrations...")

	models := []interface{}{
		&model.User{},
		&model.Category{},
		&model.Size{},
		&model.Color{},
		&model.Product{},
		&model.ProductVariation{},
		&model.Image{},
		&model.HomepageLayout{},
		&model.Order{},
		&model.OrderItem{},
	}

	if err := DB.AutoMigrate(models...); err != nil {
		logger.Error("Failed to run migrations", err)
		return err
	}

	for _, ddl := range partialUniqueIndexes {
		if err := DB.Exec(ddl).Error; err != nil {
			logger.Error("Failed to create partial unique index", err, map[string]interface{}{
				"ddl": ddl,
			})
			return err
		}
	}

	if err := seedInitialData(); err != nil {
		logger.Error("Failed to seed initial data during migration", err)
		return err
	}

	logger.Info("Database migrations completed successfully", map[string]interface{}{
		"models_count": len(models),
	})
	return nil
}

// Seed adds initial data to the database (optional)
func Seed() error {
	return seedInitialData()
}

func seedInitialData() error {
	logger.Info("Seeding initial data...")

	if err := seedSizes(); err != nil {
		logger.Error("Failed to seed sizes", err)
		return err
	}
	if err := seedColors(); err != nil {
		logger.Error("Failed to seed colors", err)
		return err
	}

	logger.Info("Initial data seeded successfully")
	return nil
}

func seedSizes() error {
	var count int64
	if err := DB.Model(&model.Size{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		logger.Info("Sizes already seeded, skipping...", map[string]interface{}{
			"existing_count": count,
		})
		return nil
	}

	sizes := []model.Size{
		{Name: "XS", DisplayName: "Extra Small", SortOrder: 1},
		{Name: "S", DisplayName: "Small", SortOrder: 2},
		{Name: "M", DisplayName: "Medium", SortOrder: 3},
		{Name: "L", DisplayName: "Large", SortOrder: 4},
		{Name: "XL", DisplayName: "Extra Large", SortOrder: 5},
		{Name: "XXL", DisplayName: "Double Extra Large", SortOrder: 6},
	}

	for i := range sizes {
		sizes[i].IsActive = true
		if err := DB.Create(&sizes[i]).Error; err != nil {
			logger.Error("Failed to create size", err, map[string]interface{}{
				"size": sizes[i].Name,
			})
			return err
		}
	}

	logger.Info("Sizes seeded successfully", map[string]interface{}{
		"total_sizes": len(sizes),
	})
	return nil
}

func seedColors() error {
	var count int64
	if err := DB.Model(&model.Color{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		logger.Info("Colors already seeded, skipping...", map[string]interface{}{
			"existing_count": count,
		})
		return nil
	}

	colors := []model.Color{
		{Name: "Black", DisplayName: "Black", HexCode: "#000000", SortOrder: 1},
		{Name: "White", DisplayName: "White", HexCode: "#FFFFFF", SortOrder: 2},
		{Name: "Red", DisplayName: "Red", HexCode: "#DC2626", SortOrder: 3},
		{Name: "Blue", DisplayName: "Blue", HexCode: "#2563EB", SortOrder: 4},
		{Name: "Green", DisplayName: "Green", HexCode: "#16A34A", SortOrder: 5},
		{Name: "Grey", DisplayName: "Grey", HexCode: "#6B7280", SortOrder: 6},
	}

	for i := range colors {
		colors[i].IsActive = true
		if err := DB.Create(&colors[i]).Error; err != nil {
			logger.Error("Failed to create color", err, map[string]interface{}{
				"color": colors[i].Name,
			})
			return err
		}
	}

	logger.Info("Colors seeded successfully", map[string]interface{}{
		"total_colors": len(colors),
	})
	return nil
}
