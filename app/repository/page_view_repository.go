package repository

import (
	"time"

	"github.com/mindspark-labs/localpages/app/models"
	"gorm.io/gorm"
)

// pageViewRepository implements the PageViewRepository interface
type pageViewRepository struct {
	db *gorm.DB
}

// NewPageViewRepository creates a new page view repository instance
func NewPageViewRepository(db *gorm.DB) PageViewRepository {
	return &pageViewRepository{db: db}
}

func (r *pageViewRepository) Create(view *models.PageView) error {
	return r.db.Create(view).Error
}

func (r *pageViewRepository) CountByOrganization(organizationID uint, since time.Time) (int64, error) {
	var count int64
	err := r.db.Model(&models.PageView{}).
		Where("organization_id = ? AND created_at >= ?", organizationID, since).
		Count(&count).Error
	return count, err
}

func (r *pageViewRepository) CountSince(since time.Time) (int64, error) {
	var count int64
	err := r.db.Model(&models.PageView{}).Where("created_at >= ?", since).Count(&count).Error
	return count, err
}
