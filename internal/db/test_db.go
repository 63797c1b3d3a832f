package db

import (
	"fmt"
	"log"

	"github.com/ebuka-odih/mini-ecommerce-backend/internal/app/model"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// SetupTestDB creates an in-memory SQLite database for testing
func SetupTestDB() (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to test database: %w", err)
	}

	err = db.AutoMigrate(
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
	)
	if err != nil {
		return nil, fmt.Errorf("failed to migrate test database: %w", err)
	}

	// SQLite supports the same partial unique indexes the postgres migration
	// creates, so soft-delete-aware uniqueness holds in tests too.
	for _, ddl := range partialUniqueIndexes {
		if err := db.Exec(ddl).Error; err != nil {
			return nil, fmt.Errorf("failed to create partial unique index: %w", err)
		}
	}

	return db, nil
}

// CleanupTestDB cleans up the test database
func CleanupTestDB(db *gorm.DB) {
	sqlDB, err := db.DB()
	if err != nil {
		log.Printf("Failed to get DB instance: %v", err)
		return
	}
	sqlDB.Close()
}

// TruncateAllTables removes all data from tables
func TruncateAllTables(db *gorm.DB) error {
	tables := []string{
		"order_items", "orders", "homepage_layouts", "images",
		"product_variations", "products", "sizes", "colors",
		"categories", "users",
	}
	for _, table := range tables {
		if err := db.Exec(fmt.Sprintf("DELETE FROM %s", table)).Error; err != nil {
			return err
		}
	}
	return nil
}
