package repository

import (
	"strings"

	"github.com/mindspark-labs/localpages/app/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// categoryRepository implements the CategoryRepository interface
type categoryRepository struct {
	db *gorm.DB
}

// NewCategoryRepository creates a new category repository instance
func NewCategoryRepository(db *gorm.DB) CategoryRepository {
	return &categoryRepository{db: db}
}

func (r *categoryRepository) GetAll() ([]models.Category, error) {
	return models.GetAllCategories(r.db)
}

func (r *categoryRepository) GetBySlug(slug string) (*models.Category, error) {
	var category models.Category
	err := r.db.Where("slug = ?", slug).First(&category).Error
	if err != nil {
		return nil, err
	}
	return &category, nil
}

// FindByNameContains performs a case-insensitive substring match against
// category names, used to resolve the free-text category on applications.
func (r *categoryRepository) FindByNameContains(name string) (*models.Category, error) {
	var category models.Category
	like := "%" + strings.ToLower(strings.TrimSpace(name)) + "%"
	err := r.db.Where("LOWER(name) LIKE ?", like).First(&category).Error
	if err != nil {
		return nil, err
	}
	return &category, nil
}

// LinkOrganization inserts the join row with skip-duplicate semantics.
func (r *categoryRepository) LinkOrganization(organizationID, categoryID uint) error {
	link := models.OrganizationCategory{
		OrganizationID: organizationID,
		CategoryID:     categoryID,
	}
	return r.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&link).Error
}

func (r *categoryRepository) GetForOrganization(organizationID uint) ([]models.Category, error) {
	var categories []models.Category
	err := r.db.
		Joins("JOIN organization_categories oc ON oc.category_id = categories.id").
		Where("oc.organization_id = ?", organizationID).
		Order("categories.sort_order ASC").
		Find(&categories).Error
	return categories, err
}
