package usercontext

import (
	"github.com/gofiber/fiber/v2"

	"github.com/mindspark-labs/localpages/app/models"
)

// UserContext represents the complete user context for a request
type UserContext struct {
	UserID         uint   `json:"user_id"`
	Username       string `json:"username"`
	Role           string `json:"role"`
	OrganizationID uint   `json:"organization_id"`
	IsLoggedIn     bool   `json:"is_logged_in"`
}

// IsAdmin reports whether the context belongs to back-office staff.
func (uc UserContext) IsAdmin() bool {
	return uc.Role == models.RoleAdmin || uc.Role == models.RoleSuperAdmin
}

// IsClient reports whether the context belongs to a business owner.
func (uc UserContext) IsClient() bool {
	return uc.Role == models.RoleBusinessClient
}

// GetUserContext retrieves the user context from fiber context
// Returns a default anonymous context if none is set
func GetUserContext(c *fiber.Ctx) UserContext {
	if ctx := c.Locals("USER_CONTEXT"); ctx != nil {
		return ctx.(UserContext)
	}
	return UserContext{IsLoggedIn: false}
}

// IsLoggedIn checks if the current user is logged in
func IsLoggedIn(c *fiber.Ctx) bool {
	return GetUserContext(c).IsLoggedIn
}

// IsAdmin checks if the current user is back-office staff
func IsAdmin(c *fiber.Ctx) bool {
	return GetUserContext(c).IsAdmin()
}

// GetUserID returns the current user's ID, or 0 if not logged in
func GetUserID(c *fiber.Ctx) uint {
	return GetUserContext(c).UserID
}

// GetOrganizationID returns the organization the current user owns, or 0.
func GetOrganizationID(c *fiber.Ctx) uint {
	return GetUserContext(c).OrganizationID
}

// GetUsername returns the current user's username, or empty string if not logged in
func GetUsername(c *fiber.Ctx) string {
	return GetUserContext(c).Username
}
