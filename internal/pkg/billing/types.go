package billing

import (
	"encoding/json"
	"errors"
	"time"
)

var (
	// ErrInvalidTier is returned when a checkout names an unrecognized tier.
	ErrInvalidTier = errors.New("invalid subscription tier")
	// ErrInvalidSignature is returned for webhook payloads that fail
	// authenticity verification. No state is touched in that case.
	ErrInvalidSignature = errors.New("invalid webhook signature")
)

// Event is the envelope of a provider webhook notification.
type Event struct {
	ID   string `json:"id"`
	Type string `json:"type"`
	Data struct {
		Object json.RawMessage `json:"object"`
	} `json:"data"`
}

// ParseEvent decodes a raw webhook payload into its envelope.
func ParseEvent(raw []byte) (*Event, error) {
	var ev Event
	if err := json.Unmarshal(raw, &ev); err != nil {
		return nil, err
	}
	if ev.Type == "" {
		return nil, errors.New("webhook event has no type")
	}
	return &ev, nil
}

// checkoutSession is the subset of the provider checkout session object the
// reconciliation workflow reads.
type checkoutSession struct {
	ID           string            `json:"id"`
	Customer     string            `json:"customer"`
	Subscription string            `json:"subscription"`
	Metadata     map[string]string `json:"metadata"`
}

// invoice is the subset of the provider invoice object read on payment
// succeeded/failed events.
type invoice struct {
	Subscription string `json:"subscription"`
}

// subscriptionObject is the subset of the provider subscription object
// carried in subscription.updated/deleted events.
type subscriptionObject struct {
	ID                 string `json:"id"`
	Customer           string `json:"customer"`
	Status             string `json:"status"`
	CancelAtPeriodEnd  bool   `json:"cancel_at_period_end"`
	CurrentPeriodStart int64  `json:"current_period_start"`
	CurrentPeriodEnd   int64  `json:"current_period_end"`
}

// ProviderSubscription is the provider-agnostic view of a live subscription
// fetched from the payment gateway.
type ProviderSubscription struct {
	ID                 string
	CustomerID         string
	Status             string
	CancelAtPeriodEnd  bool
	CurrentPeriodStart time.Time
	CurrentPeriodEnd   time.Time
}

// CheckoutSessionParams describes a new hosted checkout to create. The
// organization id and tier ride along as opaque metadata and come back on
// the checkout-completed event for correlation.
type CheckoutSessionParams struct {
	PriceID        string
	CustomerEmail  string
	OrganizationID uint
	Tier           string
}
