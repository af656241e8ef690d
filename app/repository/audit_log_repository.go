package repository

import (
	"github.com/mindspark-labs/localpages/app/models"
	"gorm.io/gorm"
)

// auditLogRepository implements the AuditLogRepository interface
type auditLogRepository struct {
	db *gorm.DB
}

// NewAuditLogRepository creates a new audit log repository instance
func NewAuditLogRepository(db *gorm.DB) AuditLogRepository {
	return &auditLogRepository{db: db}
}

// Append inserts a new audit entry. There are deliberately no update or
// delete operations on this repository.
func (r *auditLogRepository) Append(entry *models.AuditLog) error {
	return r.db.Create(entry).Error
}

func (r *auditLogRepository) List(offset, limit int) ([]models.AuditLog, int64, error) {
	var total int64
	if err := r.db.Model(&models.AuditLog{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var entries []models.AuditLog
	err := r.db.Order("created_at DESC").Offset(offset).Limit(limit).Find(&entries).Error
	return entries, total, err
}
