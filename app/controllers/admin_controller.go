package controllers

import (
	"errors"
	"log"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/mindspark-labs/localpages/app/models"
	"github.com/mindspark-labs/localpages/app/repository"
	"github.com/mindspark-labs/localpages/internal/pkg/database"
	"github.com/mindspark-labs/localpages/internal/pkg/mail"
	"github.com/mindspark-labs/localpages/internal/pkg/review"
	"github.com/mindspark-labs/localpages/internal/pkg/statistics"
	"github.com/mindspark-labs/localpages/internal/pkg/usercontext"
)

var reviewService *review.Service

// InitializeAdminController wires the review workflow used by the decision
// endpoint. Must run after the database is up.
func InitializeAdminController() {
	reviewService = review.NewServiceFromDB(database.GetDB())
}

// HandleAdminApplications lists intake applications, optionally filtered by
// status.
func HandleAdminApplications(c *fiber.Ctx) error {
	status := c.Query("status")
	offset, limit := pagination(c)

	apps, total, err := repository.GetGlobalFactory().GetApplicationRepository().List(status, offset, limit)
	if err != nil {
		log.Printf("admin application list failed: %v", err)
		return internalError(c)
	}

	return c.JSON(fiber.Map{
		"applications": apps,
		"total":        total,
	})
}

type decisionRequest struct {
	Status     string `json:"status"`
	AdminNotes string `json:"adminNotes"`
}

// HandleAdminApplicationDecide applies an admin's verdict on an application.
// A second decision on the same application yields a conflict.
func HandleAdminApplicationDecide(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   "validation_error",
			"message": "invalid application id",
		})
	}

	var req decisionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   "validation_error",
			"message": "invalid request body",
		})
	}

	result, err := reviewService.Decide(c.UserContext(), uint(id), review.DecisionInput{
		Decision:   req.Status,
		AdminNotes: req.AdminNotes,
		ReviewerID: usercontext.GetUserID(c),
	})
	if err != nil {
		switch {
		case errors.Is(err, review.ErrInvalidDecision):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error":   "validation_error",
				"message": "status must be APPROVED or REJECTED",
			})
		case errors.Is(err, review.ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error":   "not_found",
				"message": "application not found",
			})
		case errors.Is(err, review.ErrAlreadyReviewed):
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"error":   "conflict",
				"message": "application already reviewed",
			})
		default:
			log.Printf("application decision failed: %v", err)
			return internalError(c)
		}
	}

	// Mail failures never roll back a committed decision.
	if app, err := repository.GetGlobalFactory().GetApplicationRepository().GetByID(uint(id)); err == nil {
		if result.Approved {
			if err := mail.SendWelcomeMail(app.Email, app.BusinessName, result.TempPassword); err != nil {
				log.Printf("welcome mail to %s failed: %v", app.Email, err)
			}
		} else {
			if err := mail.SendRejectionMail(app.Email, app.BusinessName); err != nil {
				log.Printf("rejection mail to %s failed: %v", app.Email, err)
			}
		}
	}

	message := "application rejected"
	if result.Approved {
		message = "application approved"
	}
	resp := fiber.Map{
		"success": true,
		"message": message,
	}
	if result.Approved {
		resp["organizationId"] = result.OrganizationID
		resp["userId"] = result.UserID
	}
	return c.JSON(resp)
}

// HandleAdminAuditLogs pages through the append-only admin trail.
func HandleAdminAuditLogs(c *fiber.Ctx) error {
	offset, limit := pagination(c)

	logs, total, err := repository.GetGlobalFactory().GetAuditLogRepository().List(offset, limit)
	if err != nil {
		log.Printf("audit log list failed: %v", err)
		return internalError(c)
	}

	return c.JSON(fiber.Map{
		"audit_logs": logs,
		"total":      total,
	})
}

// HandleAdminStats serves the back-office dashboard aggregates.
func HandleAdminStats(c *fiber.Ctx) error {
	stats := statistics.GetStatistics()

	orgRepo := repository.GetGlobalFactory().GetOrganizationRepository()
	pending, err := orgRepo.CountByStatus(models.OrgStatusPendingPayment)
	if err != nil {
		log.Printf("stats pending count failed: %v", err)
		return internalError(c)
	}
	suspended, err := orgRepo.CountByStatus(models.OrgStatusSuspended)
	if err != nil {
		log.Printf("stats suspended count failed: %v", err)
		return internalError(c)
	}

	return c.JSON(fiber.Map{
		"active_organizations":          stats.ActiveOrganizations,
		"pending_payment_organizations": pending,
		"suspended_organizations":       suspended,
		"total_leads":                   stats.TotalLeads,
		"today_page_views":              stats.TodayPageViews,
	})
}

type featuredRequest struct {
	Featured bool `json:"featured"`
	Order    int  `json:"order"`
}

// HandleAdminOrganizationFeature toggles an organization's placement on the
// featured carousel.
func HandleAdminOrganizationFeature(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   "validation_error",
			"message": "invalid organization id",
		})
	}

	var req featuredRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   "validation_error",
			"message": "invalid request body",
		})
	}

	if err := repository.GetGlobalFactory().GetOrganizationRepository().SetFeatured(uint(id), req.Featured, req.Order); err != nil {
		log.Printf("set featured failed: %v", err)
		return internalError(c)
	}
	return c.JSON(fiber.Map{"updated": true})
}

func pagination(c *fiber.Ctx) (offset, limit int) {
	limit = c.QueryInt("limit", 20)
	if limit < 1 || limit > 100 {
		limit = 20
	}
	page := c.QueryInt("page", 1)
	if page < 1 {
		page = 1
	}
	return (page - 1) * limit, limit
}
