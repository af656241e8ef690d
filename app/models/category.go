package models

import (
	"time"

	"gorm.io/gorm"
)

type Category struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Name      string         `gorm:"type:varchar(150);not null" json:"name"`
	Slug      string         `gorm:"type:varchar(150);uniqueIndex;not null" json:"slug"`
	Icon      string         `gorm:"type:varchar(50)" json:"icon"`
	SortOrder int            `gorm:"default:0" json:"sort_order"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func GetAllCategories(db *gorm.DB) ([]Category, error) {
	var categories []Category
	err := db.Order("sort_order ASC, name ASC").Find(&categories).Error
	return categories, err
}
