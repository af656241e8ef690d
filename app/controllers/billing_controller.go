package controllers

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"

	"github.com/mindspark-labs/localpages/app/repository"
	"github.com/mindspark-labs/localpages/internal/pkg/billing"
	"github.com/mindspark-labs/localpages/internal/pkg/database"
	"github.com/mindspark-labs/localpages/internal/pkg/env"
	"github.com/mindspark-labs/localpages/internal/pkg/usercontext"
)

var billingService *billing.Service

// InitializeBillingController wires the reconciliation service with the
// Stripe gateway. Must run after the database is up.
func InitializeBillingController() {
	billingService = billing.NewServiceFromDB(database.GetDB(), billing.NewStripeClientFromEnv())
}

type checkoutRequest struct {
	Tier string `json:"tier"`
}

// HandleCheckout starts a checkout (or billing-portal) flow for the calling
// business owner's organization.
func HandleCheckout(c *fiber.Ctx) error {
	var req checkoutRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   "validation_error",
			"message": "invalid request body",
		})
	}

	orgID := usercontext.GetOrganizationID(c)
	if orgID == 0 {
		// Session predates the org back-link; resolve through ownership.
		org, err := repository.GetGlobalFactory().GetOrganizationRepository().GetByOwnerID(usercontext.GetUserID(c))
		if err != nil {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error":   "not_found",
				"message": "no organization for this account",
			})
		}
		orgID = org.ID
	}

	url, err := billingService.InitiateCheckout(c.UserContext(), orgID, req.Tier)
	if err != nil {
		if errors.Is(err, billing.ErrInvalidTier) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error":   "validation_error",
				"message": "invalid subscription tier",
			})
		}
		log.Printf("checkout for organization %d failed: %v", orgID, err)
		return internalError(c)
	}

	return c.JSON(fiber.Map{"url": url})
}

// HandleStripeWebhook verifies, records, and processes one provider event.
// Redelivered events short-circuit on the persisted event row.
func HandleStripeWebhook(c *fiber.Ctx) error {
	payload := c.Body()
	signature := c.Get("Stripe-Signature")
	secret := env.GetEnv("STRIPE_WEBHOOK_SECRET", "")

	if !billing.VerifyStripeWebhookSignature(payload, signature, secret) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   "invalid_signature",
			"message": "webhook signature verification failed",
		})
	}

	event, err := billing.ParseEvent(payload)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   "validation_error",
			"message": "malformed webhook payload",
		})
	}

	created, record, err := billingService.RecordWebhookEvent(c.UserContext(), event.ID, event.Type, payload, true)
	if err != nil {
		log.Printf("webhook event persistence failed: %v", err)
		return internalError(c)
	}
	if !created && record.ProcessedAt != nil {
		// Provider redelivery of an event we already handled.
		return c.JSON(fiber.Map{"received": true})
	}

	if err := billingService.ProcessEvent(c.UserContext(), event); err != nil {
		log.Printf("webhook %s (%s) processing failed: %v", event.ID, event.Type, err)
		if markErr := billingService.MarkWebhookProcessed(c.UserContext(), record.ID, err); markErr != nil {
			log.Printf("webhook %s mark failed: %v", event.ID, markErr)
		}
		// Non-2xx so the provider redelivers.
		return internalError(c)
	}

	if err := billingService.MarkWebhookProcessed(c.UserContext(), record.ID, nil); err != nil {
		log.Printf("webhook %s mark failed: %v", event.ID, err)
	}

	return c.JSON(fiber.Map{"received": true})
}
