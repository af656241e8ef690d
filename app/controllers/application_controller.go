package controllers

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"github.com/mindspark-labs/localpages/app/models"
	"github.com/mindspark-labs/localpages/app/repository"
	"github.com/mindspark-labs/localpages/internal/pkg/hcaptcha"
)

type applicationRequest struct {
	BusinessName string `json:"businessName"`
	ContactName  string `json:"contactName"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	Website      string `json:"website"`
	Category     string `json:"category"`
	Description  string `json:"description"`
	Address      string `json:"address"`
	City         string `json:"city"`
	State        string `json:"state"`
	Zip          string `json:"zip"`
	CaptchaToken string `json:"captchaToken"`
}

// HandleApplicationSubmit accepts a public business application. At most one
// undecided application may exist per email.
func HandleApplicationSubmit(c *fiber.Ctx) error {
	if s := models.GetSiteSettings(); s != nil && !s.ApplicationsEnabled {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"error":   "unavailable",
			"message": "applications are temporarily closed",
		})
	}

	var req applicationRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   "validation_error",
			"message": "invalid request body",
		})
	}

	if hcaptcha.Enabled() {
		if ok, err := hcaptcha.Verify(req.CaptchaToken); !ok {
			log.Printf("application captcha rejected: %v", err)
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error":   "validation_error",
				"message": "captcha verification failed",
			})
		}
	}

	app := &models.Application{
		BusinessName: req.BusinessName,
		ContactName:  req.ContactName,
		Email:        req.Email,
		Phone:        req.Phone,
		Website:      req.Website,
		Category:     req.Category,
		Description:  req.Description,
		Address:      req.Address,
		City:         req.City,
		State:        req.State,
		Zip:          req.Zip,
		Status:       models.ApplicationStatusNew,
	}
	if err := app.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   "validation_error",
			"message": err.Error(),
		})
	}

	repo := repository.GetGlobalFactory().GetApplicationRepository()
	open, err := repo.HasOpenApplicationForEmail(app.Email)
	if err != nil {
		log.Printf("application duplicate check failed: %v", err)
		return internalError(c)
	}
	if open {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error":   "conflict",
			"message": "an application for this email is already under review",
		})
	}

	if err := repo.Create(app); err != nil {
		log.Printf("application create failed: %v", err)
		return internalError(c)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success":       true,
		"applicationId": app.ID,
	})
}

func internalError(c *fiber.Ctx) error {
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error":   "internal_server_error",
		"message": "something went wrong",
	})
}
