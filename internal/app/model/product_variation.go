package model

import (
	"time"

	"gorm.io/gorm"
)

// ProductVariation is one size/color instance of a product with optional
// price and stock overrides. At most one live variation may exist per
// (product_id, size_id, color_id) triple; idx_variation_combination (a
// partial unique index over non-deleted rows, created in db.Migrate) is the
// enforcement point so concurrent admin writes cannot race past the
// service-level check, while a soft-deleted row frees its combination for
// re-creation. The SKU index is partial for the same reason: the derived
// SKU is deterministic, so a dead row must not squat on it.
type ProductVariation struct {
	ID            uint     `gorm:"primarykey" json:"id"`
	ProductID     uint     `gorm:"not null;index" json:"product_id"`
	SizeID        *uint    `json:"size_id,omitempty"`
	ColorID       *uint    `json:"color_id,omitempty"`
	SKU           *string  `gorm:"column:sku" json:"sku,omitempty"`
	Price         *float64 `json:"price,omitempty"` // nil means inherit the product price
	StockQuantity int      `gorm:"default:0" json:"stock_quantity"`
	IsActive      bool     `gorm:"default:true" json:"is_active"`
	Attributes    string   `gorm:"type:text" json:"attributes,omitempty"` // free-form key/value JSON

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Product Product `gorm:"foreignKey:ProductID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	Size    *Size   `gorm:"foreignKey:SizeID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"size,omitempty"`
	Color   *Color  `gorm:"foreignKey:ColorID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"color,omitempty"`
}

func (ProductVariation) TableName() string {
	return "product_variations"
}

// MatchesSelection reports whether this variation is the row for the
// requested (size, color) pair. Both axes must match exactly; a nil
// requested axis only matches a variation with that axis unset.
func (v *ProductVariation) MatchesSelection(sizeID, colorID *uint) bool {
	return uintPtrEqual(v.SizeID, sizeID) && uintPtrEqual(v.ColorID, colorID)
}

func uintPtrEqual(a, b *uint) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}
