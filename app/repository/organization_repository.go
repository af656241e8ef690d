package repository

import (
	"strings"

	"github.com/mindspark-labs/localpages/app/models"
	"gorm.io/gorm"
)

// organizationRepository implements the OrganizationRepository interface
type organizationRepository struct {
	db *gorm.DB
}

// NewOrganizationRepository creates a new organization repository instance
func NewOrganizationRepository(db *gorm.DB) OrganizationRepository {
	return &organizationRepository{db: db}
}

func (r *organizationRepository) Create(org *models.Organization) error {
	return r.db.Create(org).Error
}

func (r *organizationRepository) GetByID(id uint) (*models.Organization, error) {
	var org models.Organization
	err := r.db.First(&org, id).Error
	if err != nil {
		return nil, err
	}
	return &org, nil
}

func (r *organizationRepository) GetByUUID(uuid string) (*models.Organization, error) {
	var org models.Organization
	err := r.db.Where("uuid = ?", uuid).First(&org).Error
	if err != nil {
		return nil, err
	}
	return &org, nil
}

func (r *organizationRepository) GetBySlug(slug string) (*models.Organization, error) {
	var org models.Organization
	err := r.db.Where("slug = ?", slug).First(&org).Error
	if err != nil {
		return nil, err
	}
	return &org, nil
}

func (r *organizationRepository) GetByOwnerID(ownerID uint) (*models.Organization, error) {
	var org models.Organization
	err := r.db.Where("owner_id = ?", ownerID).First(&org).Error
	if err != nil {
		return nil, err
	}
	return &org, nil
}

func (r *organizationRepository) Update(org *models.Organization) error {
	return r.db.Save(org).Error
}

func (r *organizationRepository) UpdateStatus(id uint, status string) error {
	return r.db.Model(&models.Organization{}).Where("id = ?", id).
		Update("status", status).Error
}

// UpdateProfile applies a partial set of editable fields. Callers are
// responsible for whitelisting the keys.
func (r *organizationRepository) UpdateProfile(id uint, fields map[string]interface{}) error {
	if len(fields) == 0 {
		return nil
	}
	return r.db.Model(&models.Organization{}).Where("id = ?", id).
		Updates(fields).Error
}

// Search finds active organizations matching a free-text query, an optional
// category slug and an optional city.
func (r *organizationRepository) Search(query, categorySlug, city string, offset, limit int) ([]models.Organization, int64, error) {
	q := r.db.Model(&models.Organization{}).
		Where("organizations.status = ?", models.OrgStatusActive)

	if trimmed := strings.TrimSpace(query); trimmed != "" {
		like := "%" + trimmed + "%"
		q = q.Where("organizations.name LIKE ? OR organizations.description LIKE ?", like, like)
	}
	if city = strings.TrimSpace(city); city != "" {
		q = q.Where("organizations.city = ?", city)
	}
	if categorySlug = strings.TrimSpace(categorySlug); categorySlug != "" {
		q = q.Joins("JOIN organization_categories oc ON oc.organization_id = organizations.id").
			Joins("JOIN categories c ON c.id = oc.category_id").
			Where("c.slug = ?", categorySlug)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var orgs []models.Organization
	err := q.Order("organizations.featured DESC, organizations.featured_order ASC, organizations.name ASC").
		Offset(offset).Limit(limit).
		Find(&orgs).Error
	return orgs, total, err
}

func (r *organizationRepository) GetFeatured(limit int) ([]models.Organization, error) {
	var orgs []models.Organization
	err := r.db.Where("featured = ? AND status = ?", true, models.OrgStatusActive).
		Order("featured_order ASC").
		Limit(limit).
		Find(&orgs).Error
	return orgs, err
}

func (r *organizationRepository) SetFeatured(id uint, featured bool, order int) error {
	return r.db.Model(&models.Organization{}).Where("id = ?", id).
		Updates(map[string]interface{}{"featured": featured, "featured_order": order}).Error
}

func (r *organizationRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.Organization{}).Count(&count).Error
	return count, err
}

func (r *organizationRepository) CountByStatus(status string) (int64, error) {
	var count int64
	err := r.db.Model(&models.Organization{}).Where("status = ?", status).Count(&count).Error
	return count, err
}
