package repository

import (
	"github.com/mindspark-labs/localpages/app/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// subscriptionRepository implements the SubscriptionRepository interface
type subscriptionRepository struct {
	db *gorm.DB
}

// NewSubscriptionRepository creates a new subscription repository instance
func NewSubscriptionRepository(db *gorm.DB) SubscriptionRepository {
	return &subscriptionRepository{db: db}
}

func (r *subscriptionRepository) GetByOrganizationID(organizationID uint) (*models.Subscription, error) {
	var sub models.Subscription
	err := r.db.Where("organization_id = ?", organizationID).First(&sub).Error
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

func (r *subscriptionRepository) GetByStripeSubscriptionID(stripeSubscriptionID string) (*models.Subscription, error) {
	var sub models.Subscription
	err := r.db.Where("stripe_subscription_id = ?", stripeSubscriptionID).First(&sub).Error
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

// Upsert creates or updates the subscription keyed on organization_id, then
// re-reads so the ID is populated after a conflict-update.
func (r *subscriptionRepository) Upsert(sub *models.Subscription) error {
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

	return r.db.Where("organization_id = ?", sub.OrganizationID).First(sub).Error
}

func (r *subscriptionRepository) Update(sub *models.Subscription) error {
	return r.db.Save(sub).Error
}
