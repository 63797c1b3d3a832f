package main

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/ebuka-odih/mini-ecommerce-backend/config"
	"github.com/ebuka-odih/mini-ecommerce-backend/internal/app/model"
	"github.com/ebuka-odih/mini-ecommerce-backend/internal/app/repository"
	"github.com/ebuka-odih/mini-ecommerce-backend/internal/db"
	"github.com/ebuka-odih/mini-ecommerce-backend/pkg/util"
)

// Imports a product catalog from an XLSX export. Expected columns:
// sku | name | description | price | sale_price | stock | category
func main() {
	if len(os.Args) < 2 {
		log.Fatal("Usage: go run cmd/seed/main.go <xlsx_file_path>")
	}

	filePath := os.Args[1]

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	if err := db.Initialize(&cfg.Database); err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer db.Close()

	if err := db.Migrate(); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	categoryRepo := repository.NewCategoryRepository(db.GetDB())

	fmt.Printf("Reading XLSX file: %s\n", filePath)
	products, skipped, err := readProductsFromXLSX(filePath, categoryRepo)
	if err != nil {
		log.Fatal("Failed to read XLSX:", err)
	}

	fmt.Printf("Products to import: %d (skipped %d rows)\n", len(products), skipped)
	if len(products) == 0 {
		fmt.Println("Nothing to import.")
		return
	}

	fmt.Print("Do you want to proceed with the import? (yes/no): ")
	var confirm string
	fmt.Scanln(&confirm)
	if confirm != "yes" && confirm != "y" {
		fmt.Println("Import cancelled.")
		return
	}

	batchSize := 500
	if err := db.GetDB().CreateInBatches(products, batchSize).Error; err != nil {
		log.Fatal("Failed to bulk create products:", err)
	}

	fmt.Println("Import completed successfully!")
	fmt.Printf("Total products imported: %d\n", len(products))
}

func readProductsFromXLSX(filePath string, categoryRepo repository.CategoryRepository) ([]model.Product, int, error) {
	f, err := excelize.OpenFile(filePath)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to open XLSX file: %w", err)
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)
	if sheetName == "" {
		return nil, 0, fmt.Errorf("no sheets found in XLSX file")
	}

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to read rows: %w", err)
	}
	if len(rows) == 0 {
		return nil, 0, fmt.Errorf("no data found in XLSX file")
	}

	var products []model.Product
	seenSKUs := make(map[string]bool)
	slugCounter := make(map[string]int)
	categoryCache := make(map[string]*uint)
	skipped := 0

	for i, row := range rows {
		if i == 0 {
			fmt.Printf("Headers: %v\n", row)
			continue
		}
		if len(row) < 6 {
			skipped++
			continue
		}

		sku := strings.TrimSpace(row[0])
		name := strings.TrimSpace(row[1])
		description := strings.TrimSpace(row[2])
		priceStr := strings.TrimSpace(row[3])
		salePriceStr := strings.TrimSpace(row[4])
		stockStr := strings.TrimSpace(row[5])

		if sku == "" || name == "" || priceStr == "" {
			skipped++
			continue
		}
		if seenSKUs[sku] {
			skipped++
			continue
		}

		price, err := strconv.ParseFloat(priceStr, 64)
		if err != nil || price <= 0 {
			skipped++
			continue
		}

		var salePrice *float64
		if salePriceStr != "" {
			if sp, err := strconv.ParseFloat(salePriceStr, 64); err == nil && sp > 0 && sp < price {
				salePrice = &sp
			}
		}

		stock := 0
		if stockStr != "" {
			if s, err := strconv.Atoi(stockStr); err == nil && s >= 0 {
				stock = s
			}
		}

		var categoryID *uint
		if len(row) > 6 {
			if categoryName := strings.TrimSpace(row[6]); categoryName != "" {
				categoryID, err = resolveCategory(categoryRepo, categoryCache, categoryName)
				if err != nil {
					return nil, 0, err
				}
			}
		}

		slug := util.Slugify(name)
		slugCounter[slug]++
		if n := slugCounter[slug]; n > 1 {
			slug = fmt.Sprintf("%s-%d", slug, n)
		}

		seenSKUs[sku] = true
		products = append(products, model.Product{
			Name:          name,
			Slug:          slug,
			SKU:           sku,
			Description:   description,
			Price:         price,
			SalePrice:     salePrice,
			StockQuantity: stock,
			CategoryID:    categoryID,
			IsActive:      true,
		})
	}

	return products, skipped, nil
}

// resolveCategory finds or creates the named category, caching lookups.
func resolveCategory(categoryRepo repository.CategoryRepository, cache map[string]*uint, name string) (*uint, error) {
	if id, ok := cache[name]; ok {
		return id, nil
	}

	slug := util.Slugify(name)
	if existing, err := categoryRepo.FindBySlug(slug); err == nil {
		cache[name] = &existing.ID
		return &existing.ID, nil
	}

	category := &model.Category{
		Name:     name,
		Slug:     slug,
		IsActive: true,
	}
	if err := categoryRepo.Create(category); err != nil {
		return nil, fmt.Errorf("failed to create category %q: %w", name, err)
	}

	cache[name] = &category.ID
	return &category.ID, nil
}
