package models

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	LeadTypeContactForm  = "CONTACT_FORM"
	LeadTypePhoneClick   = "PHONE_CLICK"
	LeadTypeQuoteRequest = "QUOTE_REQUEST"
)

// Lead is a contact-form submission scoped to one organization. Immutable
// once created.
type Lead struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	UUID           string    `gorm:"type:varchar(36);uniqueIndex" json:"uuid"`
	OrganizationID uint      `gorm:"not null;index" json:"organization_id"`
	Name           string    `gorm:"type:varchar(150);not null" json:"name" validate:"required,min=2,max=150"`
	Email          string    `gorm:"type:varchar(200);not null" json:"email" validate:"required,email"`
	Phone          string    `gorm:"type:varchar(50)" json:"phone"`
	Message        string    `gorm:"type:text" json:"message"`
	Type           string    `gorm:"type:varchar(32);not null;default:'CONTACT_FORM'" json:"type"`
	CreatedAt      time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (l *Lead) Validate() error {
	v := validator.New()
	return v.Struct(l)
}

// BeforeCreate assigns a public UUID if none was set.
func (l *Lead) BeforeCreate(tx *gorm.DB) error {
	if l.UUID == "" {
		l.UUID = uuid.New().String()
	}
	return nil
}
