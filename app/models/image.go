package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	ImageTypeLogo    = "LOGO"
	ImageTypeCover   = "COVER"
	ImageTypeGallery = "GALLERY"
)

// Image is an organization-scoped upload (logo, cover, or gallery photo)
// stored on local disk with a generated thumbnail.
type Image struct {
	ID             uint           `gorm:"primaryKey" json:"id"`
	UUID           string         `gorm:"type:varchar(36);uniqueIndex" json:"uuid"`
	OrganizationID uint           `gorm:"not null;index" json:"organization_id"`
	Type           string         `gorm:"type:varchar(16);not null;default:'GALLERY'" json:"type"`
	FileName       string         `gorm:"type:varchar(255);not null" json:"file_name"`
	FilePath       string         `gorm:"type:varchar(255);not null" json:"file_path"`
	ThumbnailPath  string         `gorm:"type:varchar(255)" json:"thumbnail_path"`
	FileSize       int64          `json:"file_size"`
	Width          int            `json:"width"`
	Height         int            `json:"height"`
	SortOrder      int            `gorm:"default:0" json:"sort_order"`
	CreatedAt      time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
}

// BeforeCreate assigns a public UUID if none was set.
func (i *Image) BeforeCreate(tx *gorm.DB) error {
	if i.UUID == "" {
		i.UUID = uuid.New().String()
	}
	return nil
}
