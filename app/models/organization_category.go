package models

import "time"

// OrganizationCategory links an organization to a directory category. At most
// one row per pair; inserts use skip-duplicate semantics.
type OrganizationCategory struct {
	OrganizationID uint      `gorm:"primaryKey;autoIncrement:false" json:"organization_id"`
	CategoryID     uint      `gorm:"primaryKey;autoIncrement:false" json:"category_id"`
	CreatedAt      time.Time `gorm:"autoCreateTime" json:"created_at"`
}
