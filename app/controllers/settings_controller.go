package controllers

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"github.com/mindspark-labs/localpages/app/models"
	"github.com/mindspark-labs/localpages/internal/pkg/database"
)

// HandleAdminSettings returns the full site configuration.
func HandleAdminSettings(c *fiber.Ctx) error {
	return c.JSON(models.GetSiteSettings())
}

// HandleAdminSettingsUpdate replaces the site configuration.
func HandleAdminSettingsUpdate(c *fiber.Ctx) error {
	var settings models.SiteSettings
	if err := c.BodyParser(&settings); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   "validation_error",
			"message": "invalid request body",
		})
	}

	if err := models.SaveSiteSettings(database.GetDB(), &settings); err != nil {
		log.Printf("settings save failed: %v", err)
		return internalError(c)
	}

	return c.JSON(models.GetSiteSettings())
}
