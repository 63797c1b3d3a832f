package model

import (
	"time"

	"gorm.io/gorm"
)

// Size and Color are independent lookup tables for the variation axes.
// Variations reference them with nullable foreign keys; deleting a lookup
// row cascades to the variations built on it.

type Size struct {
	ID          uint           `gorm:"primarykey" json:"id"`
	Name        string         `gorm:"type:varchar(50);not null" json:"name"` // e.g. "M", "XL"; unique across live rows
	DisplayName string         `gorm:"type:varchar(100)" json:"display_name"` // e.g. "Medium"
	SortOrder   int            `gorm:"default:0" json:"sort_order"`
	IsActive    bool           `gorm:"default:true" json:"is_active"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Size) TableName() string {
	return "sizes"
}

type Color struct {
	ID          uint           `gorm:"primarykey" json:"id"`
	Name        string         `gorm:"type:varchar(50);not null" json:"name"` // e.g. "Red"; unique across live rows
	DisplayName string         `gorm:"type:varchar(100)" json:"display_name"`
	HexCode     string         `gorm:"type:varchar(7)" json:"hex_code"` // swatch rendering
	SortOrder   int            `gorm:"default:0" json:"sort_order"`
	IsActive    bool           `gorm:"default:true" json:"is_active"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Color) TableName() string {
	return "colors"
}
