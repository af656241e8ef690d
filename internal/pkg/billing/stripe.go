package billing

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/mindspark-labs/localpages/internal/pkg/env"
)

const defaultStripeAPIBaseURL = "https://api.stripe.com/v1"

// StripeClient talks to the payment provider's REST API. It is constructed
// once at process start and injected into the billing service; it must not
// be a package-level singleton.
type StripeClient struct {
	SecretKey     string
	APIBaseURL    string
	PublicBaseURL string

	HTTPClient *http.Client
}

type stripeCheckoutSessionResponse struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

type stripePortalSessionResponse struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

type stripeSubscriptionResponse struct {
	ID                 string `json:"id"`
	Customer           string `json:"customer"`
	Status             string `json:"status"`
	CancelAtPeriodEnd  bool   `json:"cancel_at_period_end"`
	CurrentPeriodStart int64  `json:"current_period_start"`
	CurrentPeriodEnd   int64  `json:"current_period_end"`
}

// NewStripeClientFromEnv builds a client from STRIPE_SECRET_KEY and
// PUBLIC_DOMAIN.
func NewStripeClientFromEnv() *StripeClient {
	base := strings.TrimRight(env.GetEnv("PUBLIC_DOMAIN", ""), "/")
	if base == "" {
		base = "http://localhost:" + env.GetEnv("APP_PORT", "4000")
	}

	return &StripeClient{
		SecretKey:     strings.TrimSpace(env.GetEnv("STRIPE_SECRET_KEY", "")),
		APIBaseURL:    strings.TrimSpace(env.GetEnv("STRIPE_API_BASE_URL", defaultStripeAPIBaseURL)),
		PublicBaseURL: base,
		HTTPClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// CreateCheckoutSession creates a hosted subscription checkout and returns
// its redirect URL.
func (c *StripeClient) CreateCheckoutSession(ctx context.Context, in CheckoutSessionParams) (string, error) {
	if strings.TrimSpace(in.PriceID) == "" {
		return "", errors.New("price id is required")
	}
	if in.OrganizationID == 0 {
		return "", errors.New("organization id is required")
	}

	form := url.Values{}
	form.Set("mode", "subscription")
	form.Set("payment_method_types[0]", "card")
	form.Set("line_items[0][price]", in.PriceID)
	form.Set("line_items[0][quantity]", "1")
	form.Set("metadata[organizationId]", strconv.FormatUint(uint64(in.OrganizationID), 10))
	form.Set("metadata[tier]", in.Tier)
	form.Set("success_url", c.PublicBaseURL+"/client/subscription?success=true")
	form.Set("cancel_url", c.PublicBaseURL+"/client/subscription?cancelled=true")
	if email := strings.TrimSpace(in.CustomerEmail); email != "" {
		form.Set("customer_email", email)
	}

	var out stripeCheckoutSessionResponse
	if err := c.postForm(ctx, "/checkout/sessions", form, &out); err != nil {
		return "", err
	}
	if out.URL == "" {
		return "", errors.New("checkout session response carried no url")
	}
	return out.URL, nil
}

// CreateBillingPortalSession creates a self-service portal session for an
// existing customer and returns its redirect URL.
func (c *StripeClient) CreateBillingPortalSession(ctx context.Context, customerID string) (string, error) {
	if strings.TrimSpace(customerID) == "" {
		return "", errors.New("customer id is required")
	}

	form := url.Values{}
	form.Set("customer", strings.TrimSpace(customerID))
	form.Set("return_url", c.PublicBaseURL+"/client/subscription")

	var out stripePortalSessionResponse
	if err := c.postForm(ctx, "/billing_portal/sessions", form, &out); err != nil {
		return "", err
	}
	if out.URL == "" {
		return "", errors.New("portal session response carried no url")
	}
	return out.URL, nil
}

// GetSubscription fetches the live subscription object from the provider.
func (c *StripeClient) GetSubscription(ctx context.Context, subscriptionID string) (*ProviderSubscription, error) {
	id := strings.TrimSpace(subscriptionID)
	if id == "" {
		return nil, errors.New("subscription id is required")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, strings.TrimRight(c.APIBaseURL, "/")+"/subscriptions/"+url.PathEscape(id), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.SecretKey)
	req.Header.Set("Accept", "application/json")

	body, err := c.do(req)
	if err != nil {
		return nil, err
	}

	var out stripeSubscriptionResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, err
	}
	return providerSubscriptionFromResponse(&out), nil
}

func (c *StripeClient) postForm(ctx context.Context, path string, form url.Values, out interface{}) error {
	if strings.TrimSpace(c.SecretKey) == "" {
		return errors.New("STRIPE_SECRET_KEY is not configured")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, strings.TrimRight(c.APIBaseURL, "/")+path, strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.SecretKey)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	body, err := c.do(req)
	if err != nil {
		return err
	}
	return json.Unmarshal(body, out)
}

func (c *StripeClient) do(req *http.Request) ([]byte, error) {
	client := c.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: 15 * time.Second}
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("stripe request failed: status=%d body=%s", resp.StatusCode, string(body))
	}
	return body, nil
}

func providerSubscriptionFromResponse(in *stripeSubscriptionResponse) *ProviderSubscription {
	out := &ProviderSubscription{
		ID:                strings.TrimSpace(in.ID),
		CustomerID:        in.Customer,
		Status:            in.Status,
		CancelAtPeriodEnd: in.CancelAtPeriodEnd,
	}
	if in.CurrentPeriodStart > 0 {
		out.CurrentPeriodStart = time.Unix(in.CurrentPeriodStart, 0)
	}
	if in.CurrentPeriodEnd > 0 {
		out.CurrentPeriodEnd = time.Unix(in.CurrentPeriodEnd, 0)
	}
	return out
}
