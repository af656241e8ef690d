package router

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	"github.com/mindspark-labs/localpages/app/controllers"
	"github.com/mindspark-labs/localpages/internal/pkg/middleware"
	"github.com/mindspark-labs/localpages/internal/pkg/statistics"
)

type ApiRouter struct {
}

func (h ApiRouter) InstallRouter(app *fiber.App) {
	api := app.Group("/api", limiter.New())

	v1 := api.Group("/v1")

	// Public marketing surface
	v1.Post("/applications", controllers.HandleApplicationSubmit)
	v1.Post("/leads", controllers.HandleLeadSubmit)
	v1.Post("/analytics", controllers.HandleAnalyticsTrack)
	v1.Get("/organizations", controllers.HandleOrganizationSearch)
	v1.Get("/organizations/featured", controllers.HandleFeaturedOrganizations)
	v1.Get("/organizations/:slug", controllers.HandleOrganizationBySlug)
	v1.Get("/categories", controllers.HandleCategories)
	v1.Get("/blog", controllers.HandleBlogIndex)
	v1.Get("/blog/:slug", controllers.HandleBlogShow)
	v1.Get("/settings", controllers.HandleSiteSettings)

	// Back office
	admin := v1.Group("/admin", middleware.RequireAdminAPI)
	admin.Get("/applications", controllers.HandleAdminApplications)
	admin.Patch("/applications/:id", controllers.HandleAdminApplicationDecide)
	admin.Get("/audit-logs", controllers.HandleAdminAuditLogs)
	admin.Get("/stats", controllers.HandleAdminStats)
	admin.Post("/organizations/:id/featured", controllers.HandleAdminOrganizationFeature)
	admin.Get("/settings", controllers.HandleAdminSettings)
	admin.Patch("/settings", controllers.HandleAdminSettingsUpdate)

	// Client portal
	v1.Post("/checkout", middleware.RequireClientAPI, controllers.HandleCheckout)
	client := v1.Group("/client", middleware.RequireClientAPI)
	client.Patch("/profile", controllers.HandleClientProfileUpdate)
	client.Get("/leads", controllers.HandleClientLeads)
	client.Get("/subscription", controllers.HandleClientSubscription)
	client.Post("/images", controllers.HandleClientImageUpload)

	// Server-to-server operations
	internal := api.Group("/internal", middleware.ServiceKeyMiddleware())
	internal.Post("/statistics/refresh", func(ctx *fiber.Ctx) error {
		statistics.ResetCacheUpdateTimer()
		statistics.UpdateCacheIfNeeded()
		return ctx.JSON(fiber.Map{"refreshed": true})
	})
}

func NewApiRouter() *ApiRouter {
	return &ApiRouter{}
}
