package router

import (
	"github.com/gofiber/fiber/v2"
	gothfiber "github.com/shareed2k/goth_fiber"

	"github.com/mindspark-labs/localpages/app/controllers"
	"github.com/mindspark-labs/localpages/internal/pkg/constants"
	"github.com/mindspark-labs/localpages/internal/pkg/middleware"
)

func (h HttpRouter) registerPublicRoutes(app *fiber.App) {
	// Role-aware entry point
	app.Get(constants.DashboardRoute, loggedInMiddleware, controllers.HandleDashboardRedirect)

	// Auth
	app.Get(constants.LoginRoute, loggedInMiddleware, controllers.HandleAuthLoginPage)
	app.Post("/logout", middleware.RequireAuth, controllers.HandleAuthLogout)

	// Social OAuth
	app.Get("/auth/:provider", gothfiber.BeginAuthHandler)
	app.Get("/auth/:provider/callback", controllers.HandleOAuthCallback)

	// Uploaded listing media
	app.Static(constants.UploadsRoute, constants.UploadsPath)

	// Billing provider webhooks (no CSRF, signature-verified in controller)
	app.Post("/api/webhooks/stripe", controllers.HandleStripeWebhook)
}
