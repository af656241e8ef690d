package controllers

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/mindspark-labs/localpages/app/models"
	"github.com/mindspark-labs/localpages/app/repository"
	"github.com/mindspark-labs/localpages/internal/pkg/mail"
)

type leadRequest struct {
	OrganizationID uint   `json:"organizationId"`
	Name           string `json:"name"`
	Email          string `json:"email"`
	Phone          string `json:"phone"`
	Message        string `json:"message"`
	Type           string `json:"type"`
}

// HandleLeadSubmit records an inbound inquiry for an active listing and
// notifies the owner best-effort.
func HandleLeadSubmit(c *fiber.Ctx) error {
	if s := models.GetSiteSettings(); s != nil && !s.LeadsEnabled {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"error":   "unavailable",
			"message": "lead capture is temporarily disabled",
		})
	}

	var req leadRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   "validation_error",
			"message": "invalid request body",
		})
	}
	if req.OrganizationID == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   "validation_error",
			"message": "organizationId is required",
		})
	}

	org, err := repository.GetGlobalFactory().GetOrganizationRepository().GetByID(req.OrganizationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error":   "not_found",
				"message": "organization not found",
			})
		}
		log.Printf("lead organization lookup failed: %v", err)
		return internalError(c)
	}
	if !org.IsBookable() {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error":   "not_found",
			"message": "organization not found",
		})
	}

	leadType := req.Type
	if leadType == "" {
		leadType = models.LeadTypeContactForm
	}
	lead := &models.Lead{
		OrganizationID: org.ID,
		Name:           req.Name,
		Email:          req.Email,
		Phone:          req.Phone,
		Message:        req.Message,
		Type:           leadType,
	}
	if err := lead.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   "validation_error",
			"message": err.Error(),
		})
	}

	if err := repository.GetGlobalFactory().GetLeadRepository().Create(lead); err != nil {
		log.Printf("lead create failed: %v", err)
		return internalError(c)
	}

	// Notify the listing owner; a mail outage never fails the capture.
	if owner, err := repository.GetGlobalFactory().GetUserRepository().GetByID(org.OwnerID); err == nil {
		if err := mail.SendLeadNotification(owner.Email, org.Name, lead.Name, lead.Email, lead.Message); err != nil {
			log.Printf("lead notification to %s failed: %v", owner.Email, err)
		}
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"leadId":  lead.ID,
	})
}
