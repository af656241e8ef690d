package repository

import (
	"strings"
	"time"

	"github.com/mindspark-labs/localpages/app/models"
	"gorm.io/gorm"
)

// applicationRepository implements the ApplicationRepository interface
type applicationRepository struct {
	db *gorm.DB
}

// NewApplicationRepository creates a new application repository instance
func NewApplicationRepository(db *gorm.DB) ApplicationRepository {
	return &applicationRepository{db: db}
}

func (r *applicationRepository) Create(app *models.Application) error {
	return r.db.Create(app).Error
}

func (r *applicationRepository) GetByID(id uint) (*models.Application, error) {
	var app models.Application
	err := r.db.First(&app, id).Error
	if err != nil {
		return nil, err
	}
	return &app, nil
}

func (r *applicationRepository) GetByUUID(uuid string) (*models.Application, error) {
	var app models.Application
	err := r.db.Where("uuid = ?", uuid).First(&app).Error
	if err != nil {
		return nil, err
	}
	return &app, nil
}

// HasOpenApplicationForEmail reports whether a non-terminal application
// already exists for the given email.
func (r *applicationRepository) HasOpenApplicationForEmail(email string) (bool, error) {
	var count int64
	err := r.db.Model(&models.Application{}).
		Where("email = ? AND status IN ?", strings.ToLower(strings.TrimSpace(email)), models.NonTerminalApplicationStatuses).
		Count(&count).Error
	return count > 0, err
}

// MarkReviewed is an atomic conditional transition: the UPDATE only matches
// while the application is still undecided, so a concurrent second decision
// affects zero rows and reports false.
func (r *applicationRepository) MarkReviewed(id uint, status, notes string, reviewerID uint, reviewedAt time.Time) (bool, error) {
	tx := r.db.Model(&models.Application{}).
		Where("id = ? AND status IN ?", id, models.NonTerminalApplicationStatuses).
		Updates(map[string]interface{}{
			"status":      status,
			"admin_notes": notes,
			"reviewed_by": reviewerID,
			"reviewed_at": reviewedAt,
		})
	if tx.Error != nil {
		return false, tx.Error
	}
	return tx.RowsAffected > 0, nil
}

func (r *applicationRepository) List(status string, offset, limit int) ([]models.Application, int64, error) {
	q := r.db.Model(&models.Application{})
	if status = strings.TrimSpace(status); status != "" {
		q = q.Where("status = ?", status)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var apps []models.Application
	err := q.Order("created_at DESC").Offset(offset).Limit(limit).Find(&apps).Error
	return apps, total, err
}
