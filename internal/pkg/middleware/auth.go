package middleware

import (
	"github.com/gofiber/fiber/v2"

	"github.com/mindspark-labs/localpages/internal/pkg/constants"
	"github.com/mindspark-labs/localpages/internal/pkg/usercontext"
)

// RequireAuth ensures a logged-in web session; redirects to /login if missing.
func RequireAuth(c *fiber.Ctx) error {
	if !usercontext.IsLoggedIn(c) {
		return c.Redirect(constants.LoginRoute, fiber.StatusSeeOther)
	}
	return c.Next()
}

// RequireAdmin ensures a logged-in back-office user; redirects otherwise.
func RequireAdmin(c *fiber.Ctx) error {
	uc := usercontext.GetUserContext(c)
	if !uc.IsLoggedIn {
		return c.Redirect(constants.LoginRoute, fiber.StatusSeeOther)
	}
	if !uc.IsAdmin() {
		return c.Redirect(constants.LoginRoute, fiber.StatusSeeOther)
	}
	return c.Next()
}

// RequireClient ensures a logged-in business owner; redirects otherwise.
func RequireClient(c *fiber.Ctx) error {
	uc := usercontext.GetUserContext(c)
	if !uc.IsLoggedIn {
		return c.Redirect(constants.LoginRoute, fiber.StatusSeeOther)
	}
	if !uc.IsClient() {
		return c.Redirect(constants.LoginRoute, fiber.StatusSeeOther)
	}
	return c.Next()
}

// RequireAPISessionAuth ensures a logged-in session for API routes and returns JSON 401 instead of redirect.
func RequireAPISessionAuth(c *fiber.Ctx) error {
	if !usercontext.IsLoggedIn(c) {
		return unauthorizedJSON(c)
	}
	return c.Next()
}

// RequireAdminAPI ensures a back-office session for API routes, JSON 401/403.
func RequireAdminAPI(c *fiber.Ctx) error {
	uc := usercontext.GetUserContext(c)
	if !uc.IsLoggedIn {
		return unauthorizedJSON(c)
	}
	if !uc.IsAdmin() {
		return forbiddenJSON(c)
	}
	return c.Next()
}

// RequireClientAPI ensures a business-owner session for API routes, JSON 401/403.
func RequireClientAPI(c *fiber.Ctx) error {
	uc := usercontext.GetUserContext(c)
	if !uc.IsLoggedIn {
		return unauthorizedJSON(c)
	}
	if !uc.IsClient() {
		return forbiddenJSON(c)
	}
	return c.Next()
}

func unauthorizedJSON(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"error":   "unauthorized",
		"message": "login required",
	})
}

func forbiddenJSON(c *fiber.Ctx) error {
	return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
		"error":   "forbidden",
		"message": "insufficient role",
	})
}
