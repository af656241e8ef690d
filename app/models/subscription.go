package models

import "time"

const (
	TierBasic    = "BASIC"
	TierFeatured = "FEATURED"
	TierPremium  = "PREMIUM"
	TierElite    = "ELITE"
)

const (
	SubscriptionStatusActive     = "ACTIVE"
	SubscriptionStatusPastDue    = "PAST_DUE"
	SubscriptionStatusCancelled  = "CANCELLED"
	SubscriptionStatusIncomplete = "INCOMPLETE"
)

// Subscription mirrors the provider-side billing state for one organization.
// At most one row per organization; writes go through the billing service
// which upserts keyed on organization_id.
type Subscription struct {
	ID                   uint       `gorm:"primaryKey" json:"id"`
	OrganizationID       uint       `gorm:"not null;uniqueIndex" json:"organization_id"`
	Tier                 string     `gorm:"type:varchar(32);not null" json:"tier"`
	Status               string     `gorm:"type:varchar(32);not null;default:'ACTIVE';index" json:"status"`
	StripeCustomerID     string     `gorm:"type:varchar(191);index" json:"stripe_customer_id"`
	StripeSubscriptionID string     `gorm:"type:varchar(191);index" json:"stripe_subscription_id"`
	CurrentPeriodStart   *time.Time `gorm:"type:timestamp;default:null" json:"current_period_start,omitempty"`
	CurrentPeriodEnd     *time.Time `gorm:"type:timestamp;default:null" json:"current_period_end,omitempty"`
	CancelledAt          *time.Time `gorm:"type:timestamp;default:null" json:"cancelled_at,omitempty"`
	CreatedAt            time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt            time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}
