package model

import (
	"time"

	"gorm.io/gorm"
)

type Product struct {
	ID            uint     `gorm:"primarykey" json:"id"`
	Name          string   `gorm:"not null" json:"name"`
	// Slug and SKU uniqueness spans live rows only; the partial unique
	// indexes live in db.Migrate so a soft-deleted product does not pin
	// its identifiers forever.
	Slug          string   `gorm:"not null" json:"slug"`
	SKU           string   `gorm:"column:sku;not null" json:"sku"`
	Description   string   `gorm:"type:text" json:"description"`
	Price         float64  `gorm:"not null" json:"price"`
	SalePrice     *float64 `json:"sale_price,omitempty"`
	StockQuantity int      `gorm:"default:0" json:"stock_quantity"`
	CategoryID    *uint    `gorm:"index" json:"category_id,omitempty"`
	IsActive      bool     `gorm:"default:true" json:"is_active"`
	IsFeatured    bool     `gorm:"default:false" json:"is_featured"`
	HasVariations bool     `gorm:"default:false" json:"has_variations"`

	// Import metadata for products pulled in from external storefronts
	ExternalID     string `gorm:"index" json:"external_id,omitempty"`
	SourceURL      string `json:"source_url,omitempty"`
	SourcePlatform string `gorm:"type:varchar(50)" json:"source_platform,omitempty"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Category   *Category          `gorm:"foreignKey:CategoryID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL" json:"category,omitempty"`
	Variations []ProductVariation `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"variations,omitempty"`
	Images     []Image            `gorm:"many2many:product_images" json:"images,omitempty"`
}

func (Product) TableName() string {
	return "products"
}

// EffectivePrice is the price the storefront shows for the base product:
// the sale price when one is set, the regular price otherwise.
func (p *Product) EffectivePrice() float64 {
	if p.SalePrice != nil {
		return *p.SalePrice
	}
	return p.Price
}
