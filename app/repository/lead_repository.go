package repository

import (
	"time"

	"github.com/mindspark-labs/localpages/app/models"
	"gorm.io/gorm"
)

// leadRepository implements the LeadRepository interface
type leadRepository struct {
	db *gorm.DB
}

// NewLeadRepository creates a new lead repository instance
func NewLeadRepository(db *gorm.DB) LeadRepository {
	return &leadRepository{db: db}
}

func (r *leadRepository) Create(lead *models.Lead) error {
	return r.db.Create(lead).Error
}

func (r *leadRepository) GetByOrganizationID(organizationID uint, offset, limit int) ([]models.Lead, int64, error) {
	q := r.db.Model(&models.Lead{}).Where("organization_id = ?", organizationID)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var leads []models.Lead
	err := q.Order("created_at DESC").Offset(offset).Limit(limit).Find(&leads).Error
	return leads, total, err
}

func (r *leadRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.Lead{}).Count(&count).Error
	return count, err
}

func (r *leadRepository) CountSince(since time.Time) (int64, error) {
	var count int64
	err := r.db.Model(&models.Lead{}).Where("created_at >= ?", since).Count(&count).Error
	return count, err
}
