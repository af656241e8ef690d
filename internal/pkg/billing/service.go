package billing

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/mindspark-labs/localpages/app/models"
	"gorm.io/gorm"
)

// PaymentGateway is the provider surface the reconciliation workflow needs.
// StripeClient implements it; tests inject a fake.
type PaymentGateway interface {
	CreateCheckoutSession(ctx context.Context, in CheckoutSessionParams) (string, error)
	CreateBillingPortalSession(ctx context.Context, customerID string) (string, error)
	GetSubscription(ctx context.Context, subscriptionID string) (*ProviderSubscription, error)
}

// Service keeps local subscription/organization state consistent with the
// payment provider, driven by signed webhook events, and initiates new
// checkout and billing-portal flows.
type Service struct {
	repo    Repository
	gateway PaymentGateway
}

// NewService creates a billing service from injected collaborators.
func NewService(repo Repository, gateway PaymentGateway) *Service {
	return &Service{repo: repo, gateway: gateway}
}

// NewServiceFromDB creates a billing service from a GORM DB handle.
func NewServiceFromDB(db *gorm.DB, gateway PaymentGateway) *Service {
	return NewService(NewRepository(db), gateway)
}

// InitiateCheckout returns a redirect URL for the organization's next
// billing step: the provider's self-service portal when a customer already
// exists (plan changes go through the portal, never a second checkout), or
// a fresh checkout session for the requested tier.
func (s *Service) InitiateCheckout(ctx context.Context, organizationID uint, tier string) (string, error) {
	normalized := NormalizeTier(tier)
	if normalized == "" {
		return "", ErrInvalidTier
	}

	sub, err := s.repo.GetSubscriptionByOrganizationID(organizationID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", err
	}
	if sub != nil && strings.TrimSpace(sub.StripeCustomerID) != "" {
		return s.gateway.CreateBillingPortalSession(ctx, sub.StripeCustomerID)
	}

	org, err := s.repo.GetOrganizationWithOwner(organizationID)
	if err != nil {
		return "", err
	}
	email := org.Email
	if org.Owner != nil && org.Owner.Email != "" {
		email = org.Owner.Email
	}

	return s.gateway.CreateCheckoutSession(ctx, CheckoutSessionParams{
		PriceID:        StripePriceID(normalized),
		CustomerEmail:  email,
		OrganizationID: organizationID,
		Tier:           normalized,
	})
}

// RecordWebhookEvent persists webhook payloads idempotently.
func (s *Service) RecordWebhookEvent(ctx context.Context, eventID, eventType string, payload []byte, signatureValid bool) (bool, *models.WebhookEvent, error) {
	_ = ctx
	id := strings.TrimSpace(eventID)
	if id == "" {
		sum := sha256.Sum256(payload)
		id = "hash:" + hex.EncodeToString(sum[:])
	}

	event := &models.WebhookEvent{
		Provider:        models.BillingProviderStripe,
		ProviderEventID: id,
		EventType:       strings.TrimSpace(eventType),
		PayloadJSON:     string(payload),
		SignatureValid:  signatureValid,
	}
	return s.repo.CreateWebhookEventIfNotExists(event)
}

// MarkWebhookProcessed records the processing outcome. Only a nil error
// stamps processed_at; a failed event stays unprocessed so the provider's
// redelivery runs the handler again.
func (s *Service) MarkWebhookProcessed(ctx context.Context, webhookEventID uint, processingErr error) error {
	_ = ctx
	if webhookEventID == 0 {
		return errors.New("webhook_event_id is required")
	}
	errMsg := ""
	if processingErr != nil {
		errMsg = processingErr.Error()
	}
	return s.repo.MarkWebhookProcessed(webhookEventID, errMsg)
}

// ProcessEvent dispatches one verified provider event. Unrecognized kinds
// are logged and acknowledged as no-ops; every lookup miss is non-fatal so
// out-of-order delivery never errors.
func (s *Service) ProcessEvent(ctx context.Context, event *Event) error {
	switch event.Type {
	case "checkout.session.completed":
		return s.handleCheckoutCompleted(ctx, event)
	case "invoice.payment_succeeded":
		return s.handleInvoiceEvent(event, models.SubscriptionStatusActive)
	case "invoice.payment_failed":
		return s.handleInvoiceEvent(event, models.SubscriptionStatusPastDue)
	case "customer.subscription.deleted":
		return s.handleSubscriptionDeleted(event)
	case "customer.subscription.updated":
		return s.handleSubscriptionUpdated(event)
	default:
		log.Printf("billing: unhandled webhook event type %s", event.Type)
		return nil
	}
}

// handleCheckoutCompleted reconciles a finished checkout: fetch the live
// subscription from the provider, upsert the local row keyed on the
// organization, and activate the organization. Replaying the same event
// converges to the same state.
func (s *Service) handleCheckoutCompleted(ctx context.Context, event *Event) error {
	var session checkoutSession
	if err := json.Unmarshal(event.Data.Object, &session); err != nil {
		return fmt.Errorf("decode checkout session: %w", err)
	}

	orgID := parseOrganizationID(session.Metadata["organizationId"])
	tier := NormalizeTier(session.Metadata["tier"])
	if orgID == 0 || session.Subscription == "" {
		log.Printf("billing: checkout %s completed without correlation metadata, skipping", session.ID)
		return nil
	}

	providerSub, err := s.gateway.GetSubscription(ctx, session.Subscription)
	if err != nil {
		return fmt.Errorf("fetch provider subscription: %w", err)
	}

	sub := &models.Subscription{
		OrganizationID:       orgID,
		Tier:                 tier,
		Status:               models.SubscriptionStatusActive,
		StripeCustomerID:     session.Customer,
		StripeSubscriptionID: providerSub.ID,
		CurrentPeriodStart:   timePtr(providerSub.CurrentPeriodStart),
		CurrentPeriodEnd:     timePtr(providerSub.CurrentPeriodEnd),
	}
	if err := s.repo.UpsertSubscription(sub); err != nil {
		return fmt.Errorf("upsert subscription: %w", err)
	}

	if err := s.repo.UpdateOrganizationStatus(orgID, models.OrgStatusActive); err != nil {
		return fmt.Errorf("activate organization: %w", err)
	}
	// Keep the denormalized tier copy in sync; subscriptions stay the
	// source of truth.
	if tier != "" {
		if err := s.repo.UpdateOrganizationTier(orgID, tier); err != nil {
			return fmt.Errorf("sync organization tier: %w", err)
		}
	}
	return nil
}

func (s *Service) handleInvoiceEvent(event *Event, status string) error {
	var inv invoice
	if err := json.Unmarshal(event.Data.Object, &inv); err != nil {
		return fmt.Errorf("decode invoice: %w", err)
	}
	if inv.Subscription == "" {
		return nil
	}

	sub, err := s.repo.GetSubscriptionByStripeID(inv.Subscription)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// The invoice may reference a subscription not reconciled yet.
			return nil
		}
		return err
	}

	sub.Status = status
	return s.repo.SaveSubscription(sub)
}

func (s *Service) handleSubscriptionDeleted(event *Event) error {
	var obj subscriptionObject
	if err := json.Unmarshal(event.Data.Object, &obj); err != nil {
		return fmt.Errorf("decode subscription: %w", err)
	}

	sub, err := s.repo.GetSubscriptionByStripeID(obj.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}

	now := time.Now()
	sub.Status = models.SubscriptionStatusCancelled
	sub.CancelledAt = &now
	if err := s.repo.SaveSubscription(sub); err != nil {
		return err
	}
	return s.repo.UpdateOrganizationStatus(sub.OrganizationID, models.OrgStatusSuspended)
}

func (s *Service) handleSubscriptionUpdated(event *Event) error {
	var obj subscriptionObject
	if err := json.Unmarshal(event.Data.Object, &obj); err != nil {
		return fmt.Errorf("decode subscription: %w", err)
	}

	sub, err := s.repo.GetSubscriptionByStripeID(obj.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}

	if obj.CurrentPeriodStart > 0 {
		sub.CurrentPeriodStart = timePtr(time.Unix(obj.CurrentPeriodStart, 0))
	}
	if obj.CurrentPeriodEnd > 0 {
		sub.CurrentPeriodEnd = timePtr(time.Unix(obj.CurrentPeriodEnd, 0))
	}
	if obj.CancelAtPeriodEnd {
		sub.Status = models.SubscriptionStatusCancelled
	} else {
		sub.Status = models.SubscriptionStatusActive
	}
	return s.repo.SaveSubscription(sub)
}

func parseOrganizationID(raw string) uint {
	id, err := strconv.ParseUint(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return 0
	}
	return uint(id)
}

func timePtr(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}
