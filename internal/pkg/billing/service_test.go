package billing

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/mindspark-labs/localpages/app/models"
	"gorm.io/gorm"
)

type fakeBillingRepo struct {
	subs       map[uint]*models.Subscription
	orgs       map[uint]*models.Organization
	events     map[string]*models.WebhookEvent
	saveErr    error
	nextSubID  uint
	nextEvtKey uint
}

func newFakeBillingRepo() *fakeBillingRepo {
	return &fakeBillingRepo{
		subs:   make(map[uint]*models.Subscription),
		orgs:   make(map[uint]*models.Organization),
		events: make(map[string]*models.WebhookEvent),
	}
}

func (f *fakeBillingRepo) GetSubscriptionByOrganizationID(organizationID uint) (*models.Subscription, error) {
	sub, ok := f.subs[organizationID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return sub, nil
}

func (f *fakeBillingRepo) GetSubscriptionByStripeID(stripeSubscriptionID string) (*models.Subscription, error) {
	for _, sub := range f.subs {
		if sub.StripeSubscriptionID == stripeSubscriptionID {
			return sub, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeBillingRepo) UpsertSubscription(sub *models.Subscription) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	if existing, ok := f.subs[sub.OrganizationID]; ok {
		sub.ID = existing.ID
	} else {
		f.nextSubID++
		sub.ID = f.nextSubID
	}
	f.subs[sub.OrganizationID] = sub
	return nil
}

func (f *fakeBillingRepo) SaveSubscription(sub *models.Subscription) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.subs[sub.OrganizationID] = sub
	return nil
}

func (f *fakeBillingRepo) GetOrganizationWithOwner(id uint) (*models.Organization, error) {
	org, ok := f.orgs[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return org, nil
}

func (f *fakeBillingRepo) UpdateOrganizationStatus(id uint, status string) error {
	org, ok := f.orgs[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	org.Status = status
	return nil
}

func (f *fakeBillingRepo) UpdateOrganizationTier(id uint, tier string) error {
	org, ok := f.orgs[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	org.SubscriptionTier = tier
	return nil
}

func (f *fakeBillingRepo) CreateWebhookEventIfNotExists(event *models.WebhookEvent) (bool, *models.WebhookEvent, error) {
	key := event.Provider + "/" + event.ProviderEventID
	if existing, ok := f.events[key]; ok {
		return false, existing, nil
	}
	f.nextEvtKey++
	event.ID = f.nextEvtKey
	f.events[key] = event
	return true, event, nil
}

func (f *fakeBillingRepo) MarkWebhookProcessed(id uint, processingError string) error {
	for _, evt := range f.events {
		if evt.ID == id {
			evt.ProcessingError = processingError
			if processingError == "" {
				now := time.Now()
				evt.ProcessedAt = &now
			}
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

type fakeGateway struct {
	checkoutURL    string
	portalURL      string
	subscription   *ProviderSubscription
	subErr         error
	checkoutCalls  []CheckoutSessionParams
	portalCalls    []string
	getSubCalls    []string
	checkoutFailed error
}

func (f *fakeGateway) CreateCheckoutSession(_ context.Context, in CheckoutSessionParams) (string, error) {
	f.checkoutCalls = append(f.checkoutCalls, in)
	if f.checkoutFailed != nil {
		return "", f.checkoutFailed
	}
	return f.checkoutURL, nil
}

func (f *fakeGateway) CreateBillingPortalSession(_ context.Context, customerID string) (string, error) {
	f.portalCalls = append(f.portalCalls, customerID)
	return f.portalURL, nil
}

func (f *fakeGateway) GetSubscription(_ context.Context, subscriptionID string) (*ProviderSubscription, error) {
	f.getSubCalls = append(f.getSubCalls, subscriptionID)
	if f.subErr != nil {
		return nil, f.subErr
	}
	return f.subscription, nil
}

func seedOrg(repo *fakeBillingRepo, id uint) *models.Organization {
	org := &models.Organization{
		ID:     id,
		Name:   "Bravo's Italian Kitchen",
		Slug:   "bravos-italian-kitchen",
		Status: models.OrgStatusPendingPayment,
		Email:  "info@bravos.example",
		Owner:  &models.User{ID: 7, Email: "owner@bravos.example"},
	}
	repo.orgs[id] = org
	return org
}

func checkoutCompletedEvent(orgID uint, tier, customer, subscription string) *Event {
	payload := fmt.Sprintf(`{
		"id": "evt_checkout",
		"type": "checkout.session.completed",
		"data": {"object": {
			"id": "cs_test_1",
			"customer": %q,
			"subscription": %q,
			"metadata": {"organizationId": "%d", "tier": %q}
		}}
	}`, customer, subscription, orgID, tier)
	ev, err := ParseEvent([]byte(payload))
	if err != nil {
		panic(err)
	}
	return ev
}

func subscriptionEvent(eventType, subID string, cancelAtPeriodEnd bool, periodStart, periodEnd int64) *Event {
	obj, _ := json.Marshal(map[string]any{
		"id":                   subID,
		"cancel_at_period_end": cancelAtPeriodEnd,
		"current_period_start": periodStart,
		"current_period_end":   periodEnd,
	})
	ev := &Event{ID: "evt_" + eventType, Type: eventType}
	ev.Data.Object = obj
	return ev
}

func TestInitiateCheckoutNewCustomer(t *testing.T) {
	repo := newFakeBillingRepo()
	seedOrg(repo, 1)
	gw := &fakeGateway{checkoutURL: "https://pay.example/cs_test_1"}
	svc := NewService(repo, gw)

	url, err := svc.InitiateCheckout(context.Background(), 1, "featured")
	if err != nil {
		t.Fatalf("InitiateCheckout: %v", err)
	}
	if url != "https://pay.example/cs_test_1" {
		t.Errorf("url = %q", url)
	}
	if len(gw.checkoutCalls) != 1 {
		t.Fatalf("checkout calls = %d, want 1", len(gw.checkoutCalls))
	}
	call := gw.checkoutCalls[0]
	if call.Tier != "FEATURED" {
		t.Errorf("tier = %q, want FEATURED", call.Tier)
	}
	if call.OrganizationID != 1 {
		t.Errorf("organization id = %d, want 1", call.OrganizationID)
	}
	if call.CustomerEmail != "owner@bravos.example" {
		t.Errorf("customer email = %q, want owner email", call.CustomerEmail)
	}
	if len(gw.portalCalls) != 0 {
		t.Error("portal must not be used for a new customer")
	}
}

func TestInitiateCheckoutExistingCustomerGoesToPortal(t *testing.T) {
	repo := newFakeBillingRepo()
	seedOrg(repo, 1)
	repo.subs[1] = &models.Subscription{
		ID:               4,
		OrganizationID:   1,
		StripeCustomerID: "cus_123",
		Status:           models.SubscriptionStatusActive,
	}
	gw := &fakeGateway{portalURL: "https://pay.example/portal"}
	svc := NewService(repo, gw)

	url, err := svc.InitiateCheckout(context.Background(), 1, "PREMIUM")
	if err != nil {
		t.Fatalf("InitiateCheckout: %v", err)
	}
	if url != "https://pay.example/portal" {
		t.Errorf("url = %q, want portal url", url)
	}
	if len(gw.portalCalls) != 1 || gw.portalCalls[0] != "cus_123" {
		t.Errorf("portal calls = %v, want [cus_123]", gw.portalCalls)
	}
	if len(gw.checkoutCalls) != 0 {
		t.Error("existing customers must never get a second checkout")
	}
}

func TestInitiateCheckoutInvalidTier(t *testing.T) {
	repo := newFakeBillingRepo()
	seedOrg(repo, 1)
	svc := NewService(repo, &fakeGateway{})

	if _, err := svc.InitiateCheckout(context.Background(), 1, "GOLD"); !errors.Is(err, ErrInvalidTier) {
		t.Fatalf("err = %v, want ErrInvalidTier", err)
	}
}

func TestProcessCheckoutCompletedActivatesOrganization(t *testing.T) {
	repo := newFakeBillingRepo()
	org := seedOrg(repo, 42)
	periodEnd := time.Unix(1700600000, 0)
	gw := &fakeGateway{subscription: &ProviderSubscription{
		ID:                 "sub_abc",
		CustomerID:         "cus_abc",
		Status:             "active",
		CurrentPeriodStart: time.Unix(1700000000, 0),
		CurrentPeriodEnd:   periodEnd,
	}}
	svc := NewService(repo, gw)

	event := checkoutCompletedEvent(42, "PREMIUM", "cus_abc", "sub_abc")
	if err := svc.ProcessEvent(context.Background(), event); err != nil {
		t.Fatalf("ProcessEvent: %v", err)
	}

	sub := repo.subs[42]
	if sub == nil {
		t.Fatal("subscription was not persisted")
	}
	if sub.Status != models.SubscriptionStatusActive {
		t.Errorf("subscription status = %q", sub.Status)
	}
	if sub.StripeSubscriptionID != "sub_abc" || sub.StripeCustomerID != "cus_abc" {
		t.Errorf("provider ids = %q/%q", sub.StripeSubscriptionID, sub.StripeCustomerID)
	}
	if sub.CurrentPeriodEnd == nil || !sub.CurrentPeriodEnd.Equal(periodEnd) {
		t.Errorf("period end = %v, want %v", sub.CurrentPeriodEnd, periodEnd)
	}
	if org.Status != models.OrgStatusActive {
		t.Errorf("organization status = %q, want ACTIVE", org.Status)
	}
	if org.SubscriptionTier != models.TierPremium {
		t.Errorf("organization tier = %q, want PREMIUM", org.SubscriptionTier)
	}
}

func TestProcessCheckoutCompletedReplayConverges(t *testing.T) {
	repo := newFakeBillingRepo()
	seedOrg(repo, 42)
	gw := &fakeGateway{subscription: &ProviderSubscription{ID: "sub_abc"}}
	svc := NewService(repo, gw)

	event := checkoutCompletedEvent(42, "BASIC", "cus_abc", "sub_abc")
	if err := svc.ProcessEvent(context.Background(), event); err != nil {
		t.Fatalf("first delivery: %v", err)
	}
	firstID := repo.subs[42].ID
	if err := svc.ProcessEvent(context.Background(), event); err != nil {
		t.Fatalf("replay: %v", err)
	}
	if len(repo.subs) != 1 {
		t.Fatalf("subscription rows = %d, want 1", len(repo.subs))
	}
	if repo.subs[42].ID != firstID {
		t.Errorf("replay allocated a new row: %d != %d", repo.subs[42].ID, firstID)
	}
}

func TestProcessCheckoutCompletedWithoutMetadataIsNoOp(t *testing.T) {
	repo := newFakeBillingRepo()
	gw := &fakeGateway{}
	svc := NewService(repo, gw)

	ev := &Event{ID: "evt_x", Type: "checkout.session.completed"}
	ev.Data.Object = json.RawMessage(`{"id":"cs_1","customer":"cus_1","subscription":"sub_1","metadata":{}}`)
	if err := svc.ProcessEvent(context.Background(), ev); err != nil {
		t.Fatalf("ProcessEvent: %v", err)
	}
	if len(gw.getSubCalls) != 0 {
		t.Error("no provider fetch expected without correlation metadata")
	}
	if len(repo.subs) != 0 {
		t.Error("no state expected without correlation metadata")
	}
}

func TestProcessInvoiceEvents(t *testing.T) {
	repo := newFakeBillingRepo()
	seedOrg(repo, 1)
	repo.subs[1] = &models.Subscription{
		ID:                   9,
		OrganizationID:       1,
		StripeSubscriptionID: "sub_live",
		Status:               models.SubscriptionStatusActive,
	}
	svc := NewService(repo, &fakeGateway{})

	failed := &Event{ID: "evt_f", Type: "invoice.payment_failed"}
	failed.Data.Object = json.RawMessage(`{"subscription":"sub_live"}`)
	if err := svc.ProcessEvent(context.Background(), failed); err != nil {
		t.Fatalf("payment failed: %v", err)
	}
	if repo.subs[1].Status != models.SubscriptionStatusPastDue {
		t.Errorf("status after failure = %q, want PAST_DUE", repo.subs[1].Status)
	}

	succeeded := &Event{ID: "evt_s", Type: "invoice.payment_succeeded"}
	succeeded.Data.Object = json.RawMessage(`{"subscription":"sub_live"}`)
	if err := svc.ProcessEvent(context.Background(), succeeded); err != nil {
		t.Fatalf("payment succeeded: %v", err)
	}
	if repo.subs[1].Status != models.SubscriptionStatusActive {
		t.Errorf("status after recovery = %q, want ACTIVE", repo.subs[1].Status)
	}
}

func TestProcessInvoiceEventUnknownSubscriptionIsNoOp(t *testing.T) {
	repo := newFakeBillingRepo()
	svc := NewService(repo, &fakeGateway{})

	ev := &Event{ID: "evt_f", Type: "invoice.payment_failed"}
	ev.Data.Object = json.RawMessage(`{"subscription":"sub_unknown"}`)
	if err := svc.ProcessEvent(context.Background(), ev); err != nil {
		t.Fatalf("unknown subscription must not error: %v", err)
	}
}

func TestProcessSubscriptionDeleted(t *testing.T) {
	repo := newFakeBillingRepo()
	org := seedOrg(repo, 1)
	org.Status = models.OrgStatusActive
	repo.subs[1] = &models.Subscription{
		ID:                   9,
		OrganizationID:       1,
		StripeSubscriptionID: "sub_live",
		Status:               models.SubscriptionStatusActive,
	}
	svc := NewService(repo, &fakeGateway{})

	ev := subscriptionEvent("customer.subscription.deleted", "sub_live", false, 0, 0)
	if err := svc.ProcessEvent(context.Background(), ev); err != nil {
		t.Fatalf("ProcessEvent: %v", err)
	}
	if repo.subs[1].Status != models.SubscriptionStatusCancelled {
		t.Errorf("subscription status = %q, want CANCELLED", repo.subs[1].Status)
	}
	if repo.subs[1].CancelledAt == nil {
		t.Error("cancelled_at must be stamped")
	}
	if org.Status != models.OrgStatusSuspended {
		t.Errorf("organization status = %q, want SUSPENDED", org.Status)
	}
}

func TestProcessSubscriptionUpdated(t *testing.T) {
	repo := newFakeBillingRepo()
	seedOrg(repo, 1)
	repo.subs[1] = &models.Subscription{
		ID:                   9,
		OrganizationID:       1,
		StripeSubscriptionID: "sub_live",
		Status:               models.SubscriptionStatusActive,
	}
	svc := NewService(repo, &fakeGateway{})

	ev := subscriptionEvent("customer.subscription.updated", "sub_live", true, 1700000000, 1702600000)
	if err := svc.ProcessEvent(context.Background(), ev); err != nil {
		t.Fatalf("ProcessEvent: %v", err)
	}
	sub := repo.subs[1]
	if sub.Status != models.SubscriptionStatusCancelled {
		t.Errorf("status = %q, want CANCELLED while cancel_at_period_end", sub.Status)
	}
	if sub.CurrentPeriodEnd == nil || sub.CurrentPeriodEnd.Unix() != 1702600000 {
		t.Errorf("period end = %v, want 1702600000", sub.CurrentPeriodEnd)
	}

	ev = subscriptionEvent("customer.subscription.updated", "sub_live", false, 1702600000, 1705300000)
	if err := svc.ProcessEvent(context.Background(), ev); err != nil {
		t.Fatalf("ProcessEvent: %v", err)
	}
	if repo.subs[1].Status != models.SubscriptionStatusActive {
		t.Errorf("status = %q, want ACTIVE after cancellation reverted", repo.subs[1].Status)
	}
}

func TestProcessEventUnhandledTypeIsAcked(t *testing.T) {
	svc := NewService(newFakeBillingRepo(), &fakeGateway{})
	ev := &Event{ID: "evt_x", Type: "charge.refunded"}
	ev.Data.Object = json.RawMessage(`{}`)
	if err := svc.ProcessEvent(context.Background(), ev); err != nil {
		t.Fatalf("unhandled event types must be acknowledged: %v", err)
	}
}

func TestRecordWebhookEventDeduplicates(t *testing.T) {
	repo := newFakeBillingRepo()
	svc := NewService(repo, &fakeGateway{})
	payload := []byte(`{"id":"evt_1","type":"invoice.payment_succeeded"}`)

	created, first, err := svc.RecordWebhookEvent(context.Background(), "evt_1", "invoice.payment_succeeded", payload, true)
	if err != nil || !created {
		t.Fatalf("first delivery: created=%v err=%v", created, err)
	}
	created, second, err := svc.RecordWebhookEvent(context.Background(), "evt_1", "invoice.payment_succeeded", payload, true)
	if err != nil {
		t.Fatalf("duplicate delivery: %v", err)
	}
	if created {
		t.Error("duplicate delivery must not create a new row")
	}
	if first.ID != second.ID {
		t.Errorf("duplicate returned row %d, want %d", second.ID, first.ID)
	}

	if err := svc.MarkWebhookProcessed(context.Background(), first.ID, nil); err != nil {
		t.Fatalf("MarkWebhookProcessed: %v", err)
	}
	if first.ProcessedAt == nil {
		t.Error("processed_at must be stamped")
	}
	if first.ProcessingError != "" {
		t.Errorf("processing_error = %q, want empty", first.ProcessingError)
	}
}

func TestFailedEventStaysUnprocessedUntilRedeliverySucceeds(t *testing.T) {
	repo := newFakeBillingRepo()
	svc := NewService(repo, &fakeGateway{})
	payload := []byte(`{"id":"evt_42","type":"checkout.session.completed"}`)

	_, record, err := svc.RecordWebhookEvent(context.Background(), "evt_42", "checkout.session.completed", payload, true)
	if err != nil {
		t.Fatalf("first delivery: %v", err)
	}

	// Handler failed (say the gateway was down). The event must keep
	// processed_at NULL so the redelivery is not acknowledged as handled.
	if err := svc.MarkWebhookProcessed(context.Background(), record.ID, errors.New("gateway unavailable")); err != nil {
		t.Fatalf("mark failed attempt: %v", err)
	}
	if record.ProcessedAt != nil {
		t.Fatal("failed event must not be stamped processed")
	}
	if record.ProcessingError == "" {
		t.Fatal("failure reason must be recorded")
	}

	// Provider redelivers the same event: the stored row comes back
	// unprocessed, so the caller runs the handler again.
	created, redelivered, err := svc.RecordWebhookEvent(context.Background(), "evt_42", "checkout.session.completed", payload, true)
	if err != nil {
		t.Fatalf("redelivery: %v", err)
	}
	if created {
		t.Error("redelivery must reuse the stored event row")
	}
	if redelivered.ProcessedAt != nil {
		t.Fatal("redelivered event must still read as unprocessed")
	}

	// This time the handler succeeds.
	if err := svc.MarkWebhookProcessed(context.Background(), redelivered.ID, nil); err != nil {
		t.Fatalf("mark successful attempt: %v", err)
	}
	if redelivered.ProcessedAt == nil {
		t.Error("processed_at must be stamped after the successful attempt")
	}
	if redelivered.ProcessingError != "" {
		t.Errorf("processing_error = %q, want cleared", redelivered.ProcessingError)
	}
}
