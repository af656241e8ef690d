package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/mindspark-labs/localpages/app/controllers"
	"github.com/mindspark-labs/localpages/internal/pkg/constants"
	"github.com/mindspark-labs/localpages/internal/pkg/middleware"
)

// registerRoleRoutes installs the role-gated browser entry points. The
// back office and client portal are API-driven; their index routes serve
// the same payloads as the corresponding API endpoints.
func (h HttpRouter) registerRoleRoutes(app *fiber.App) {
	adminGroup := app.Group(constants.AdminRoute, middleware.RequireAdmin)
	adminGroup.Get("/", controllers.HandleAdminStats)
	adminGroup.Get("/applications", controllers.HandleAdminApplications)
	adminGroup.Get("/audit-logs", controllers.HandleAdminAuditLogs)

	clientGroup := app.Group(constants.ClientRoute, middleware.RequireClient)
	clientGroup.Get("/", controllers.HandleClientSubscription)
	clientGroup.Get("/leads", controllers.HandleClientLeads)
	clientGroup.Get("/subscription", controllers.HandleClientSubscription)
}
