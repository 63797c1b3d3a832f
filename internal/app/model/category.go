package model

import (
	"time"

	"gorm.io/gorm"
)

type Category struct {
	ID          uint           `gorm:"primarykey" json:"id"`
	// Name/slug uniqueness covers live rows only (partial indexes in
	// db.Migrate), so a deleted category can be recreated under its name.
	Name        string         `gorm:"not null" json:"name"`
	Slug        string         `gorm:"not null" json:"slug"`
	Description string         `gorm:"type:text" json:"description"`
	ImageID     *uint          `gorm:"index" json:"image_id,omitempty"`
	IsActive    bool           `gorm:"default:true" json:"is_active"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	Image    *Image    `gorm:"foreignKey:ImageID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL" json:"image,omitempty"`
	Products []Product `gorm:"foreignKey:CategoryID" json:"-"`
}

func (Category) TableName() string {
	return "categories"
}
