package models

import (
	"time"

	"gorm.io/gorm"
)

// Offer is a coupon or promotion attached to an organization (PREMIUM-tier
// entitlement).
type Offer struct {
	ID             uint           `gorm:"primaryKey" json:"id"`
	OrganizationID uint           `gorm:"not null;index" json:"organization_id"`
	Title          string         `gorm:"type:varchar(200);not null" json:"title"`
	Description    string         `gorm:"type:text" json:"description"`
	Code           string         `gorm:"type:varchar(50)" json:"code"`
	ValidFrom      *time.Time     `gorm:"type:timestamp;default:null" json:"valid_from,omitempty"`
	ValidUntil     *time.Time     `gorm:"type:timestamp;default:null" json:"valid_until,omitempty"`
	IsActive       bool           `gorm:"default:true" json:"is_active"`
	CreatedAt      time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
}

// IsCurrent reports whether the offer is active and inside its validity window.
func (o *Offer) IsCurrent(now time.Time) bool {
	if !o.IsActive {
		return false
	}
	if o.ValidFrom != nil && now.Before(*o.ValidFrom) {
		return false
	}
	if o.ValidUntil != nil && now.After(*o.ValidUntil) {
		return false
	}
	return true
}
