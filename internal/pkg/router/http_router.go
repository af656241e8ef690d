package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/mindspark-labs/localpages/app/controllers"
	"github.com/mindspark-labs/localpages/internal/pkg/middleware"
	"github.com/mindspark-labs/localpages/internal/pkg/oauth"
	"github.com/mindspark-labs/localpages/internal/pkg/session"
)

type HttpRouter struct {
}

func (h HttpRouter) InstallRouter(app *fiber.App) {
	// init session
	session.NewSessionStore()

	// init oauth providers
	oauth.Setup()

	// Apply UserContext middleware globally as first middleware
	app.Use(middleware.UserContextMiddleware)

	// Initialize controllers that hold service wiring
	controllers.InitializeAdminController()
	controllers.InitializeBillingController()

	h.registerPublicRoutes(app)
	h.registerRoleRoutes(app)
	h.registerCSRFProtectedRoutes(app)
}

func NewHttpRouter() *HttpRouter {
	return &HttpRouter{}
}

func loggedInMiddleware(c *fiber.Ctx) error {
	// UserContextMiddleware already set all user context
	// All user information is available via usercontext.GetUserContext(c)
	return c.Next()
}
