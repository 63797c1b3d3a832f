package model

import (
	"time"

	"gorm.io/gorm"
)

type GridPosition string // named slot on the homepage grid

const (
	GridHero            GridPosition = "hero"
	GridMainLeft        GridPosition = "main_left"
	GridMainRightTop    GridPosition = "main_right_top"
	GridMainRightBottom GridPosition = "main_right_bottom"
	GridSecondaryLeft   GridPosition = "secondary_left"
	GridSecondaryCenter GridPosition = "secondary_center"
	GridSecondaryRight  GridPosition = "secondary_right"
)

// GridPositions lists the seven fixed slots in render order.
var GridPositions = []GridPosition{
	GridHero,
	GridMainLeft,
	GridMainRightTop,
	GridMainRightBottom,
	GridSecondaryLeft,
	GridSecondaryCenter,
	GridSecondaryRight,
}

// Valid reports whether p names one of the fixed slots.
func (p GridPosition) Valid() bool {
	for _, known := range GridPositions {
		if p == known {
			return true
		}
	}
	return false
}

type LayoutType string

const (
	LayoutGrid   LayoutType = "grid"   // static tile
	LayoutSlider LayoutType = "slider" // rotating tile
)

// HomepageLayout assigns content to one grid slot. At most one row per
// slot may be active; the service deactivates the previous occupant when a
// new one is activated, and a partial unique index on grid_position is the
// storage-level backstop.
type HomepageLayout struct {
	ID           uint         `gorm:"primarykey" json:"id"`
	GridPosition GridPosition `gorm:"type:varchar(30);not null;index" json:"grid_position"`
	SectionName  string       `gorm:"type:varchar(100)" json:"section_name"`

	CategoryID     *uint  `gorm:"index" json:"category_id,omitempty"`
	CoverImageID   *uint  `gorm:"index" json:"cover_image_id,omitempty"`
	UseCustomCover bool   `gorm:"default:false" json:"use_custom_cover"`
	CoverImageURL  string `json:"cover_image_url,omitempty"` // override text, used when no Image row backs the cover

	LayoutType  LayoutType `gorm:"type:varchar(20);default:'grid'" json:"layout_type"`
	SliderSpeed int        `gorm:"default:0" json:"slider_speed"` // ms, sliders only

	Title        string `json:"title"`
	Subtitle     string `json:"subtitle"`
	Description  string `gorm:"type:text" json:"description"`
	GradientFrom string `gorm:"type:varchar(50)" json:"gradient_from"` // palette token
	GradientTo   string `gorm:"type:varchar(50)" json:"gradient_to"`
	TextColor    string `gorm:"type:varchar(50)" json:"text_color"`
	CustomLink   string `json:"custom_link,omitempty"` // overrides the category-derived link

	IsActive  bool `gorm:"default:false;index" json:"is_active"`
	SortOrder int  `gorm:"default:0" json:"sort_order"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Category   *Category `gorm:"foreignKey:CategoryID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL" json:"category,omitempty"`
	CoverImage *Image    `gorm:"foreignKey:CoverImageID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL" json:"cover_image,omitempty"`
}

func (HomepageLayout) TableName() string {
	return "homepage_layouts"
}
