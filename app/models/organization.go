package models

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	OrgStatusPendingPayment = "PENDING_PAYMENT"
	OrgStatusApproved       = "APPROVED"
	OrgStatusActive         = "ACTIVE"
	OrgStatusSuspended      = "SUSPENDED"
	OrgStatusRejected       = "REJECTED"
	OrgStatusChurned        = "CHURNED"
)

// Organization is a listed business tenant in the directory. Created by the
// application review workflow (status PENDING_PAYMENT) and moved to ACTIVE
// once a checkout completes.
type Organization struct {
	ID               uint   `gorm:"primaryKey" json:"id"`
	UUID             string `gorm:"type:varchar(36);uniqueIndex" json:"uuid"`
	Name             string `gorm:"type:varchar(200);not null" json:"name" validate:"required,min=2,max=200"`
	Slug             string `gorm:"type:varchar(200);uniqueIndex;not null" json:"slug" validate:"required"`
	Description      string `gorm:"type:longtext" json:"description"`
	ShortDescription string `gorm:"type:varchar(500)" json:"short_description" validate:"max=500"`
	Phone            string `gorm:"type:varchar(50)" json:"phone"`
	Email            string `gorm:"type:varchar(200)" json:"email" validate:"omitempty,email"`
	Website          string `gorm:"type:varchar(255)" json:"website" validate:"omitempty,url"`
	Address          string `gorm:"type:varchar(255)" json:"address"`
	City             string `gorm:"type:varchar(100);index" json:"city"`
	State            string `gorm:"type:varchar(50)" json:"state"`
	Zip              string `gorm:"type:varchar(20)" json:"zip"`
	Country          string `gorm:"type:varchar(2);default:'US'" json:"country"`
	Latitude         *float64 `gorm:"type:decimal(10,7)" json:"latitude,omitempty"`
	Longitude        *float64 `gorm:"type:decimal(10,7)" json:"longitude,omitempty"`
	Status           string `gorm:"type:varchar(32);not null;default:'PENDING_PAYMENT';index" json:"status"`
	Featured         bool   `gorm:"default:false;index:idx_organizations_featured,priority:1" json:"featured"`
	FeaturedOrder    int    `gorm:"default:0;index:idx_organizations_featured,priority:2" json:"featured_order"`
	// SubscriptionTier is a denormalized copy of Subscription.Tier kept in
	// sync by the billing service; the subscriptions table is the source of
	// truth.
	SubscriptionTier string         `gorm:"type:varchar(32);default:null" json:"subscription_tier,omitempty"`
	OwnerID          uint           `gorm:"not null;index" json:"owner_id"`
	Owner            *User          `gorm:"foreignKey:OwnerID" json:"-"`
	OpenHours        JSON           `gorm:"type:json" json:"open_hours,omitempty"`
	SocialLinks      JSON           `gorm:"type:json" json:"social_links,omitempty"`
	ApprovedAt       *time.Time     `gorm:"type:timestamp;default:null" json:"approved_at,omitempty"`
	CreatedAt        time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt        gorm.DeletedAt `gorm:"index" json:"-"`
}

func (o *Organization) Validate() error {
	v := validator.New()
	return v.Struct(o)
}

// BeforeCreate assigns a public UUID if none was set.
func (o *Organization) BeforeCreate(tx *gorm.DB) error {
	if o.UUID == "" {
		o.UUID = uuid.New().String()
	}
	return nil
}

// IsBookable reports whether the organization may receive leads.
func (o *Organization) IsBookable() bool {
	return o.Status == OrgStatusActive
}
