package models

import "time"

const (
	AuditActionApplicationApproved = "APPLICATION_APPROVED"
	AuditActionApplicationRejected = "APPLICATION_REJECTED"
	AuditActionOrganizationUpdated = "ORGANIZATION_UPDATED"
	AuditActionOrganizationSuspend = "ORGANIZATION_SUSPENDED"
)

// AuditLog is an append-only record of administrative actions. Rows are never
// updated or deleted after insert.
type AuditLog struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	Action    string    `gorm:"type:varchar(64);not null;index" json:"action"`
	Entity    string    `gorm:"type:varchar(64);not null" json:"entity"`
	EntityID  string    `gorm:"type:varchar(64);not null" json:"entity_id"`
	Details   JSON      `gorm:"type:json" json:"details,omitempty"`
	CreatedAt time.Time `gorm:"autoCreateTime;index" json:"created_at"`
}
