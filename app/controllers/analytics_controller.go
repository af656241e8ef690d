package controllers

import (
	"crypto/sha256"
	"encoding/hex"
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/mindspark-labs/localpages/app/models"
	"github.com/mindspark-labs/localpages/app/repository"
)

type pageViewRequest struct {
	OrganizationID uint   `json:"organizationId"`
	Path           string `json:"path"`
	Referrer       string `json:"referrer"`
	DeviceType     string `json:"deviceType"`
}

// HandleAnalyticsTrack records one listing page view. The client IP is
// hashed server-side before it touches storage.
func HandleAnalyticsTrack(c *fiber.Ctx) error {
	var req pageViewRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   "validation_error",
			"message": "invalid request body",
		})
	}
	if req.OrganizationID == 0 || req.Path == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   "validation_error",
			"message": "organizationId and path are required",
		})
	}

	view := &models.PageView{
		OrganizationID: req.OrganizationID,
		Path:           req.Path,
		Referrer:       req.Referrer,
		UserAgent:      c.Get("User-Agent"),
		DeviceType:     normalizeDeviceType(req.DeviceType),
		IPHash:         hashIP(c.IP()),
	}

	if err := repository.GetGlobalFactory().GetPageViewRepository().Create(view); err != nil {
		log.Printf("page view create failed: %v", err)
		return internalError(c)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"recorded": true})
}

func normalizeDeviceType(raw string) string {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case models.DeviceTypeMobile:
		return models.DeviceTypeMobile
	case models.DeviceTypeTablet:
		return models.DeviceTypeTablet
	default:
		return models.DeviceTypeDesktop
	}
}

func hashIP(ip string) string {
	sum := sha256.Sum256([]byte(ip))
	return hex.EncodeToString(sum[:])
}
