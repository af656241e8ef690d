package models

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	ApplicationStatusNew       = "NEW"
	ApplicationStatusPending   = "PENDING"
	ApplicationStatusReviewing = "REVIEWING"
	ApplicationStatusApproved  = "APPROVED"
	ApplicationStatusRejected  = "REJECTED"
)

// NonTerminalApplicationStatuses are the statuses an application can still be
// decided from. At most one application per email may sit in one of these.
var NonTerminalApplicationStatuses = []string{
	ApplicationStatusNew,
	ApplicationStatusPending,
	ApplicationStatusReviewing,
}

// Application is a prospective business's intake submission awaiting admin
// review. Mutated exactly once by an admin decision; never deleted.
type Application struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	UUID         string     `gorm:"type:varchar(36);uniqueIndex" json:"uuid"`
	BusinessName string     `gorm:"type:varchar(200);not null" json:"business_name" validate:"required,min=2,max=200"`
	ContactName  string     `gorm:"type:varchar(150);not null" json:"contact_name" validate:"required,min=2,max=150"`
	Email        string     `gorm:"type:varchar(200);not null;index" json:"email" validate:"required,email"`
	Phone        string     `gorm:"type:varchar(50);not null" json:"phone" validate:"required"`
	Website      string     `gorm:"type:varchar(255)" json:"website" validate:"omitempty,url"`
	Category     string     `gorm:"type:varchar(150)" json:"category"`
	Description  string     `gorm:"type:text" json:"description"`
	Address      string     `gorm:"type:varchar(255)" json:"address"`
	City         string     `gorm:"type:varchar(100)" json:"city"`
	State        string     `gorm:"type:varchar(50)" json:"state"`
	Zip          string     `gorm:"type:varchar(20)" json:"zip"`
	Status       string     `gorm:"type:varchar(32);not null;default:'NEW';index" json:"status"`
	AdminNotes   string     `gorm:"type:text" json:"admin_notes"`
	ReviewedBy   *uint      `gorm:"index" json:"reviewed_by,omitempty"`
	ReviewedAt   *time.Time `gorm:"type:timestamp;default:null" json:"reviewed_at,omitempty"`
	CreatedAt    time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

func (a *Application) Validate() error {
	v := validator.New()
	return v.Struct(a)
}

// BeforeCreate assigns a public UUID if none was set.
func (a *Application) BeforeCreate(tx *gorm.DB) error {
	if a.UUID == "" {
		a.UUID = uuid.New().String()
	}
	return nil
}

// IsTerminal reports whether the application has already been decided.
func (a *Application) IsTerminal() bool {
	return a.Status == ApplicationStatusApproved || a.Status == ApplicationStatusRejected
}
