package model

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

// FolderRoot is the sentinel folder for unfoldered images. A folder is a
// free-text label, not a filesystem path.
const FolderRoot = "root"

type Image struct {
	ID           uint   `gorm:"primarykey" json:"id"`
	Filename     string `gorm:"not null" json:"filename"`
	OriginalName string `json:"original_name"`
	Path         string `gorm:"not null" json:"path"` // object key on the storage disk
	Disk         string `gorm:"type:varchar(20);default:'s3'" json:"disk"`
	URL          string `json:"url"`
	Folder       string `gorm:"type:varchar(100);index;default:'root'" json:"folder"`
	Tags         string `gorm:"type:text" json:"tags"` // comma-joined, see ParseTags
	MimeType     string `gorm:"type:varchar(50)" json:"mime_type"`
	Size         int64  `json:"size"`
	Width        int    `json:"width"`
	Height       int    `json:"height"`
	ColorPalette string `gorm:"type:text" json:"color_palette,omitempty"`
	IsFeatured   bool   `gorm:"default:false" json:"is_featured"`
	IsOptimized  bool   `gorm:"default:false" json:"is_optimized"`

	// Best-effort usage bookkeeping. Consumers hold a reference without a
	// cascade, so these counters can drift; dangling links are tolerated.
	DownloadCount int        `gorm:"default:0" json:"download_count"`
	LastUsedAt    *time.Time `json:"last_used_at,omitempty"`
	UsageContext  string     `gorm:"type:varchar(50)" json:"usage_context,omitempty"`

	UploadedByID *uint      `gorm:"index" json:"uploaded_by,omitempty"`
	UploadedBy   *User      `gorm:"foreignKey:UploadedByID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL" json:"-"`
	UploadedAt   time.Time  `json:"uploaded_at"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Image) TableName() string {
	return "images"
}

// ParseTags splits the stored comma-joined tag string into an ordered list,
// trimming whitespace and dropping empty entries. Order is insertion order
// and survives a parse/join round trip.
func ParseTags(raw string) []string {
	if raw == "" {
		return nil
	}
	var tags []string
	for _, part := range strings.Split(raw, ",") {
		tag := strings.TrimSpace(part)
		if tag == "" {
			continue
		}
		tags = append(tags, tag)
	}
	return tags
}

// JoinTags normalizes and joins a tag list back into the stored form.
func JoinTags(tags []string) string {
	clean := make([]string, 0, len(tags))
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			continue
		}
		clean = append(clean, tag)
	}
	return strings.Join(clean, ",")
}

// TagList returns the image's parsed tags.
func (i *Image) TagList() []string {
	return ParseTags(i.Tags)
}
