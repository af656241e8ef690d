package billing

import (
	"time"

	"github.com/mindspark-labs/localpages/app/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Repository provides DB operations used by the billing service.
type Repository interface {
	GetSubscriptionByOrganizationID(organizationID uint) (*models.Subscription, error)
	GetSubscriptionByStripeID(stripeSubscriptionID string) (*models.Subscription, error)
	UpsertSubscription(sub *models.Subscription) error
	SaveSubscription(sub *models.Subscription) error
	GetOrganizationWithOwner(id uint) (*models.Organization, error)
	UpdateOrganizationStatus(id uint, status string) error
	UpdateOrganizationTier(id uint, tier string) error
	CreateWebhookEventIfNotExists(event *models.WebhookEvent) (bool, *models.WebhookEvent, error)
	MarkWebhookProcessed(id uint, processingError string) error
}

type gormRepository struct {
	db *gorm.DB
}

// NewRepository creates a billing repository backed by GORM.
func NewRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) GetSubscriptionByOrganizationID(organizationID uint) (*models.Subscription, error) {
	var sub models.Subscription
	err := r.db.Where("organization_id = ?", organizationID).First(&sub).Error
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

func (r *gormRepository) GetSubscriptionByStripeID(stripeSubscriptionID string) (*models.Subscription, error) {
	var sub models.Subscription
	err := r.db.Where("stripe_subscription_id = ?", stripeSubscriptionID).First(&sub).Error
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

func (r *gormRepository) UpsertSubscription(sub *models.Subscription) error {
	if err := r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "organization_id"},
		},
		DoUpdates: clause.AssignmentColumns([]string{
			"tier",
			"status",
			"stripe_customer_id",
			"stripe_subscription_id",
			"current_period_start",
			"current_period_end",
			"cancelled_at",
			"updated_at",
		}),
	}).Create(sub).Error; err != nil {
		return err
	}

	// Ensure ID is populated after upsert.
	return r.db.Where("organization_id = ?", sub.OrganizationID).First(sub).Error
}

func (r *gormRepository) SaveSubscription(sub *models.Subscription) error {
	return r.db.Save(sub).Error
}

func (r *gormRepository) GetOrganizationWithOwner(id uint) (*models.Organization, error) {
	var org models.Organization
	err := r.db.Preload("Owner").First(&org, id).Error
	if err != nil {
		return nil, err
	}
	return &org, nil
}

func (r *gormRepository) UpdateOrganizationStatus(id uint, status string) error {
	return r.db.Model(&models.Organization{}).Where("id = ?", id).
		Update("status", status).Error
}

func (r *gormRepository) UpdateOrganizationTier(id uint, tier string) error {
	return r.db.Model(&models.Organization{}).Where("id = ?", id).
		Update("subscription_tier", tier).Error
}

func (r *gormRepository) CreateWebhookEventIfNotExists(event *models.WebhookEvent) (bool, *models.WebhookEvent, error) {
	tx := r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "provider"},
			{Name: "provider_event_id"},
		},
		DoNothing: true,
	}).Create(event)
	if tx.Error != nil {
		return false, nil, tx.Error
	}

	created := tx.RowsAffected > 0
	var stored models.WebhookEvent
	if err := r.db.Where("provider = ? AND provider_event_id = ?", event.Provider, event.ProviderEventID).
		First(&stored).Error; err != nil {
		return false, nil, err
	}
	return created, &stored, nil
}

// MarkWebhookProcessed stamps processed_at on success. A failed event keeps
// processed_at NULL so the provider's redelivery is processed again instead
// of being acknowledged as a duplicate.
func (r *gormRepository) MarkWebhookProcessed(id uint, processingError string) error {
	updates := map[string]interface{}{
		"processing_error": processingError,
	}
	if processingError == "" {
		now := time.Now()
		updates["processed_at"] = &now
	}
	return r.db.Model(&models.WebhookEvent{}).Where("id = ?", id).Updates(updates).Error
}
