package models

import "time"

const (
	DeviceTypeDesktop = "DESKTOP"
	DeviceTypeMobile  = "MOBILE"
	DeviceTypeTablet  = "TABLET"
)

// PageView is a single analytics hit on an organization's listing page. The
// client IP is never stored raw, only a SHA-256 hash.
type PageView struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	OrganizationID uint      `gorm:"not null;index:idx_page_views_org_created,priority:1" json:"organization_id"`
	Path           string    `gorm:"type:varchar(255);not null" json:"path"`
	Referrer       string    `gorm:"type:varchar(255)" json:"referrer"`
	UserAgent      string    `gorm:"type:varchar(500)" json:"user_agent"`
	DeviceType     string    `gorm:"type:varchar(16);default:'DESKTOP'" json:"device_type"`
	IPHash         string    `gorm:"type:varchar(64)" json:"-"`
	CreatedAt      time.Time `gorm:"autoCreateTime;index:idx_page_views_org_created,priority:2" json:"created_at"`
}
