package repository

import (
	"time"

	"github.com/mindspark-labs/localpages/app/models"
	"gorm.io/gorm"
)

// UserRepository defines the interface for user-related database operations
type UserRepository interface {
	Create(user *models.User) error
	GetByID(id uint) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	Update(user *models.User) error
	SetOrganization(userID, organizationID uint) error
	List(offset, limit int) ([]models.User, error)
	Count() (int64, error)
}

// OrganizationRepository defines the interface for organization operations
type OrganizationRepository interface {
	Create(org *models.Organization) error
	GetByID(id uint) (*models.Organization, error)
	GetByUUID(uuid string) (*models.Organization, error)
	GetBySlug(slug string) (*models.Organization, error)
	GetByOwnerID(ownerID uint) (*models.Organization, error)
	Update(org *models.Organization) error
	UpdateStatus(id uint, status string) error
	UpdateProfile(id uint, fields map[string]interface{}) error
	Search(query, categorySlug, city string, offset, limit int) ([]models.Organization, int64, error)
	GetFeatured(limit int) ([]models.Organization, error)
	SetFeatured(id uint, featured bool, order int) error
	Count() (int64, error)
	CountByStatus(status string) (int64, error)
}

// ApplicationRepository defines the interface for intake applications
type ApplicationRepository interface {
	Create(app *models.Application) error
	GetByID(id uint) (*models.Application, error)
	GetByUUID(uuid string) (*models.Application, error)
	HasOpenApplicationForEmail(email string) (bool, error)
	// MarkReviewed transitions the application to a terminal status only if
	// it is still undecided. Returns false when another decision already won.
	MarkReviewed(id uint, status, notes string, reviewerID uint, reviewedAt time.Time) (bool, error)
	List(status string, offset, limit int) ([]models.Application, int64, error)
}

// SubscriptionRepository defines the interface for local subscription state
type SubscriptionRepository interface {
	GetByOrganizationID(organizationID uint) (*models.Subscription, error)
	GetByStripeSubscriptionID(stripeSubscriptionID string) (*models.Subscription, error)
	Upsert(sub *models.Subscription) error
	Update(sub *models.Subscription) error
}

// CategoryRepository defines the interface for directory categories
type CategoryRepository interface {
	GetAll() ([]models.Category, error)
	GetBySlug(slug string) (*models.Category, error)
	FindByNameContains(name string) (*models.Category, error)
	LinkOrganization(organizationID, categoryID uint) error
	GetForOrganization(organizationID uint) ([]models.Category, error)
}

// LeadRepository defines the interface for captured leads
type LeadRepository interface {
	Create(lead *models.Lead) error
	GetByOrganizationID(organizationID uint, offset, limit int) ([]models.Lead, int64, error)
	Count() (int64, error)
	CountSince(since time.Time) (int64, error)
}

// PageViewRepository defines the interface for analytics hits
type PageViewRepository interface {
	Create(view *models.PageView) error
	CountByOrganization(organizationID uint, since time.Time) (int64, error)
	CountSince(since time.Time) (int64, error)
}

// AuditLogRepository defines the interface for the append-only admin trail
type AuditLogRepository interface {
	Append(entry *models.AuditLog) error
	List(offset, limit int) ([]models.AuditLog, int64, error)
}

// Repositories bundles all repository implementations
type Repositories struct {
	User         UserRepository
	Organization OrganizationRepository
	Application  ApplicationRepository
	Subscription SubscriptionRepository
	Category     CategoryRepository
	Lead         LeadRepository
	PageView     PageViewRepository
	AuditLog     AuditLogRepository
}

// NewRepositories creates a new instance of all repositories
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		User:         NewUserRepository(db),
		Organization: NewOrganizationRepository(db),
		Application:  NewApplicationRepository(db),
		Subscription: NewSubscriptionRepository(db),
		Category:     NewCategoryRepository(db),
		Lead:         NewLeadRepository(db),
		PageView:     NewPageViewRepository(db),
		AuditLog:     NewAuditLogRepository(db),
	}
}
