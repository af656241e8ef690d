package controllers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mindspark-labs/localpages/app/models"
	"github.com/mindspark-labs/localpages/app/repository"
	"github.com/mindspark-labs/localpages/internal/pkg/database"
	"github.com/mindspark-labs/localpages/internal/pkg/imageprocessor"
	"github.com/mindspark-labs/localpages/internal/pkg/usercontext"
)

// clientOrganizationID resolves the calling business owner's organization.
func clientOrganizationID(c *fiber.Ctx) (uint, error) {
	if orgID := usercontext.GetOrganizationID(c); orgID != 0 {
		return orgID, nil
	}
	org, err := repository.GetGlobalFactory().GetOrganizationRepository().GetByOwnerID(usercontext.GetUserID(c))
	if err != nil {
		return 0, err
	}
	return org.ID, nil
}

type profileUpdateRequest struct {
	Description      *string                `json:"description"`
	ShortDescription *string                `json:"shortDescription"`
	Phone            *string                `json:"phone"`
	Email            *string                `json:"email"`
	Website          *string                `json:"website"`
	Address          *string                `json:"address"`
	City             *string                `json:"city"`
	State            *string                `json:"state"`
	Zip              *string                `json:"zip"`
	OpenHours        map[string]interface{} `json:"openHours"`
	SocialLinks      map[string]interface{} `json:"socialLinks"`
}

// HandleClientProfileUpdate applies a partial update to the caller's
// listing. Name, slug, status, and tier are never client-writable.
func HandleClientProfileUpdate(c *fiber.Ctx) error {
	orgID, err := clientOrganizationID(c)
	if err != nil {
		return notFound(c, "no organization for this account")
	}

	var req profileUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   "validation_error",
			"message": "invalid request body",
		})
	}

	fields := map[string]interface{}{}
	setIf(fields, "description", req.Description)
	setIf(fields, "short_description", req.ShortDescription)
	setIf(fields, "phone", req.Phone)
	setIf(fields, "email", req.Email)
	setIf(fields, "website", req.Website)
	setIf(fields, "address", req.Address)
	setIf(fields, "city", req.City)
	setIf(fields, "state", req.State)
	setIf(fields, "zip", req.Zip)
	if req.OpenHours != nil {
		fields["open_hours"] = models.JSON(mustJSON(req.OpenHours))
	}
	if req.SocialLinks != nil {
		fields["social_links"] = models.JSON(mustJSON(req.SocialLinks))
	}
	if len(fields) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   "validation_error",
			"message": "no updatable fields in request",
		})
	}

	if err := repository.GetGlobalFactory().GetOrganizationRepository().UpdateProfile(orgID, fields); err != nil {
		log.Printf("profile update for organization %d failed: %v", orgID, err)
		return internalError(c)
	}

	org, err := repository.GetGlobalFactory().GetOrganizationRepository().GetByID(orgID)
	if err != nil {
		return internalError(c)
	}
	return c.JSON(fiber.Map{"success": true, "organization": org})
}

// HandleClientLeads pages through the caller's captured leads.
func HandleClientLeads(c *fiber.Ctx) error {
	orgID, err := clientOrganizationID(c)
	if err != nil {
		return notFound(c, "no organization for this account")
	}
	offset, limit := pagination(c)

	leads, total, err := repository.GetGlobalFactory().GetLeadRepository().GetByOrganizationID(orgID, offset, limit)
	if err != nil {
		log.Printf("client leads for organization %d failed: %v", orgID, err)
		return internalError(c)
	}

	return c.JSON(fiber.Map{
		"leads": leads,
		"total": total,
	})
}

// HandleClientSubscription reports the caller's current subscription state.
func HandleClientSubscription(c *fiber.Ctx) error {
	orgID, err := clientOrganizationID(c)
	if err != nil {
		return notFound(c, "no organization for this account")
	}

	sub, err := repository.GetGlobalFactory().GetSubscriptionRepository().GetByOrganizationID(orgID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.JSON(fiber.Map{"subscription": nil})
		}
		log.Printf("client subscription for organization %d failed: %v", orgID, err)
		return internalError(c)
	}

	return c.JSON(fiber.Map{"subscription": sub})
}

// HandleClientImageUpload stores an uploaded listing image and generates its
// thumbnail.
func HandleClientImageUpload(c *fiber.Ctx) error {
	orgID, err := clientOrganizationID(c)
	if err != nil {
		return notFound(c, "no organization for this account")
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   "validation_error",
			"message": "image file is required",
		})
	}

	imageType := strings.ToUpper(c.FormValue("type", models.ImageTypeGallery))
	switch imageType {
	case models.ImageTypeLogo, models.ImageTypeCover, models.ImageTypeGallery:
	default:
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   "validation_error",
			"message": "type must be LOGO, COVER, or GALLERY",
		})
	}

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	switch ext {
	case ".jpg", ".jpeg", ".png", ".gif", ".webp":
	default:
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   "validation_error",
			"message": "unsupported image format",
		})
	}

	dir := imageprocessor.UploadDir(orgID)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		log.Printf("upload dir create failed: %v", err)
		return internalError(c)
	}
	fileName := fmt.Sprintf("%s%s", uuid.New().String(), ext)
	filePath := filepath.Join(dir, fileName)
	if err := c.SaveFile(fileHeader, filePath); err != nil {
		log.Printf("upload save failed: %v", err)
		return internalError(c)
	}

	image := &models.Image{
		OrganizationID: orgID,
		Type:           imageType,
		FileName:       fileHeader.Filename,
		FilePath:       filePath,
		FileSize:       fileHeader.Size,
	}
	if err := imageprocessor.Process(image); err != nil {
		os.Remove(filePath)
		log.Printf("image processing failed: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   "validation_error",
			"message": "could not process image",
		})
	}

	if err := database.GetDB().Create(image).Error; err != nil {
		log.Printf("image create failed: %v", err)
		return internalError(c)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"image": image})
}

func setIf(fields map[string]interface{}, column string, value *string) {
	if value != nil {
		fields[column] = *value
	}
}

func mustJSON(v map[string]interface{}) []byte {
	raw, err := json.Marshal(v)
	if err != nil {
		return []byte("{}")
	}
	return raw
}
