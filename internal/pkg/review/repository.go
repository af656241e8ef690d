package review

import (
	"time"

	"github.com/mindspark-labs/localpages/app/models"
	"github.com/mindspark-labs/localpages/app/repository"
	"gorm.io/gorm"
)

// Repository provides the DB operations used by the review service. All
// methods called between InTransaction's begin and commit run on the same
// transaction handle.
type Repository interface {
	GetApplication(id uint) (*models.Application, error)
	MarkReviewed(id uint, status, notes string, reviewerID uint, reviewedAt time.Time) (bool, error)
	CreateUser(user *models.User) error
	CreateOrganization(org *models.Organization) error
	SetUserOrganization(userID, organizationID uint) error
	FindCategoryByNameContains(name string) (*models.Category, error)
	LinkOrganizationCategory(organizationID, categoryID uint) error
	AppendAuditLog(entry *models.AuditLog) error
	InTransaction(fn func(Repository) error) error
}

type gormRepository struct {
	db    *gorm.DB
	repos *repository.Repositories
}

// NewRepository creates a review repository backed by GORM.
func NewRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db, repos: repository.NewRepositories(db)}
}

func (r *gormRepository) GetApplication(id uint) (*models.Application, error) {
	return r.repos.Application.GetByID(id)
}

func (r *gormRepository) MarkReviewed(id uint, status, notes string, reviewerID uint, reviewedAt time.Time) (bool, error) {
	return r.repos.Application.MarkReviewed(id, status, notes, reviewerID, reviewedAt)
}

func (r *gormRepository) CreateUser(user *models.User) error {
	return r.repos.User.Create(user)
}

func (r *gormRepository) CreateOrganization(org *models.Organization) error {
	return r.repos.Organization.Create(org)
}

func (r *gormRepository) SetUserOrganization(userID, organizationID uint) error {
	return r.repos.User.SetOrganization(userID, organizationID)
}

func (r *gormRepository) FindCategoryByNameContains(name string) (*models.Category, error) {
	return r.repos.Category.FindByNameContains(name)
}

func (r *gormRepository) LinkOrganizationCategory(organizationID, categoryID uint) error {
	return r.repos.Category.LinkOrganization(organizationID, categoryID)
}

func (r *gormRepository) AppendAuditLog(entry *models.AuditLog) error {
	return r.repos.AuditLog.Append(entry)
}

// InTransaction runs fn against a repository bound to a single DB
// transaction; any error rolls the whole unit back.
func (r *gormRepository) InTransaction(fn func(Repository) error) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return fn(NewRepository(tx))
	})
}
