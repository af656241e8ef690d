package controllers

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/mindspark-labs/localpages/app/models"
	"github.com/mindspark-labs/localpages/app/repository"
	"github.com/mindspark-labs/localpages/internal/pkg/database"
)

// HandleOrganizationSearch serves the public directory search. Only ACTIVE
// listings are returned.
func HandleOrganizationSearch(c *fiber.Ctx) error {
	offset, limit := pagination(c)

	orgs, total, err := repository.GetGlobalFactory().GetOrganizationRepository().Search(
		c.Query("q"), c.Query("category"), c.Query("city"), offset, limit,
	)
	if err != nil {
		log.Printf("organization search failed: %v", err)
		return internalError(c)
	}

	return c.JSON(fiber.Map{
		"organizations": orgs,
		"total":         total,
	})
}

// HandleOrganizationBySlug serves one listing's public detail, including its
// categories and current offers.
func HandleOrganizationBySlug(c *fiber.Ctx) error {
	org, err := repository.GetGlobalFactory().GetOrganizationRepository().GetBySlug(c.Params("slug"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFound(c, "organization not found")
		}
		log.Printf("organization lookup failed: %v", err)
		return internalError(c)
	}
	if org.Status != models.OrgStatusActive {
		return notFound(c, "organization not found")
	}

	categories, err := repository.GetGlobalFactory().GetCategoryRepository().GetForOrganization(org.ID)
	if err != nil {
		log.Printf("organization categories failed: %v", err)
		return internalError(c)
	}

	var images []models.Image
	if err := database.GetDB().Where("organization_id = ?", org.ID).
		Order("sort_order ASC").Find(&images).Error; err != nil {
		log.Printf("organization images failed: %v", err)
		return internalError(c)
	}

	var offers []models.Offer
	if err := database.GetDB().Where("organization_id = ? AND is_active = ?", org.ID, true).
		Find(&offers).Error; err != nil {
		log.Printf("organization offers failed: %v", err)
		return internalError(c)
	}

	return c.JSON(fiber.Map{
		"organization": org,
		"categories":   categories,
		"images":       images,
		"offers":       offers,
	})
}

// HandleFeaturedOrganizations serves the homepage carousel.
func HandleFeaturedOrganizations(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 6)
	if limit < 1 || limit > 20 {
		limit = 6
	}
	orgs, err := repository.GetGlobalFactory().GetOrganizationRepository().GetFeatured(limit)
	if err != nil {
		log.Printf("featured organizations failed: %v", err)
		return internalError(c)
	}
	return c.JSON(fiber.Map{"organizations": orgs})
}

// HandleCategories lists all directory categories.
func HandleCategories(c *fiber.Ctx) error {
	categories, err := repository.GetGlobalFactory().GetCategoryRepository().GetAll()
	if err != nil {
		log.Printf("category list failed: %v", err)
		return internalError(c)
	}
	return c.JSON(fiber.Map{"categories": categories})
}

// HandleBlogIndex lists published editorial posts.
func HandleBlogIndex(c *fiber.Ctx) error {
	offset, limit := pagination(c)
	posts, err := models.GetPublishedPosts(database.GetDB(), offset, limit)
	if err != nil {
		log.Printf("blog list failed: %v", err)
		return internalError(c)
	}
	return c.JSON(fiber.Map{"posts": posts})
}

// HandleBlogShow serves one published post by slug.
func HandleBlogShow(c *fiber.Ctx) error {
	post, err := models.FindPublishedPostBySlug(database.GetDB(), c.Params("slug"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFound(c, "post not found")
		}
		log.Printf("blog lookup failed: %v", err)
		return internalError(c)
	}
	return c.JSON(fiber.Map{"post": post})
}

// HandleSiteSettings exposes the public subset of site configuration.
func HandleSiteSettings(c *fiber.Ctx) error {
	return c.JSON(models.GetSiteSettings())
}

func notFound(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
		"error":   "not_found",
		"message": message,
	})
}
