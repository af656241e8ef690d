package controllers

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sujit-baniya/flash"

	"github.com/mindspark-labs/localpages/app/models"
	"github.com/mindspark-labs/localpages/app/repository"
	"github.com/mindspark-labs/localpages/internal/pkg/constants"
	"github.com/mindspark-labs/localpages/internal/pkg/database"
	"github.com/mindspark-labs/localpages/internal/pkg/session"
	"github.com/mindspark-labs/localpages/internal/pkg/usercontext"
)

// HandleAuthLoginPage is the target of auth redirects. It surfaces any
// pending flash message so the frontend can show why the user landed here.
func HandleAuthLoginPage(c *fiber.Ctx) error {
	if usercontext.IsLoggedIn(c) {
		return c.Redirect(roleHome(usercontext.GetUserContext(c).Role))
	}

	return c.JSON(fiber.Map{
		"login": true,
		"flash": flash.Get(c),
	})
}

// HandleAuthLogin authenticates a user from posted credentials and routes
// them to the surface matching their role.
func HandleAuthLogin(c *fiber.Ctx) error {
	fm := fiber.Map{
		"type": "error",
	}

	email := c.FormValue("email")
	password := c.FormValue("password")

	// notice: in production you should not inform the user
	// with detailed messages about login failures
	user, err := repository.GetGlobalFactory().GetUserRepository().GetByEmail(email)
	if err != nil {
		fm["message"] = "There is a problem with the login process"

		return flash.WithError(c, fm).Redirect(constants.LoginRoute)
	}

	if !models.CheckPasswordHash(password, user.Password) {
		fm["message"] = "There is a problem with the login process"

		return flash.WithError(c, fm).Redirect(constants.LoginRoute)
	}

	if err := establishSession(c, user); err != nil {
		fm["message"] = fmt.Sprintf("something went wrong: %s", err)

		return flash.WithError(c, fm).Redirect(constants.LoginRoute)
	}

	database.GetDB().Model(user).Update("last_login_at", time.Now())

	fm = fiber.Map{
		"type":    "success",
		"message": "Welcome back!",
	}

	return flash.WithSuccess(c, fm).Redirect(roleHome(user.Role))
}

// HandleAuthLogout destroys the session and sends the user to the login page.
func HandleAuthLogout(c *fiber.Ctx) error {
	fm := fiber.Map{
		"type": "error",
	}

	if err := session.DestroySession(c); err != nil {
		fm["message"] = fmt.Sprintf("something went wrong: %s", err)

		return flash.WithError(c, fm).Redirect(constants.LoginRoute)
	}

	c.Locals(usercontext.KeyFromProtected, false)

	fm = fiber.Map{
		"type":    "success",
		"message": "You are signed out.",
	}

	return flash.WithSuccess(c, fm).Redirect(constants.LoginRoute)
}

// HandleDashboardRedirect forwards /dashboard to the role-specific area.
func HandleDashboardRedirect(c *fiber.Ctx) error {
	uc := usercontext.GetUserContext(c)
	if !uc.IsLoggedIn {
		return c.Redirect(constants.LoginRoute, fiber.StatusSeeOther)
	}
	return c.Redirect(roleHome(uc.Role), fiber.StatusSeeOther)
}

// establishSession stores the authenticated user in the server-side session.
func establishSession(c *fiber.Ctx, user *models.User) error {
	sess, err := session.GetSessionStore().Get(c)
	if err != nil {
		return err
	}

	sess.Set(usercontext.AuthKey, true)
	sess.Set(usercontext.KeyUserID, user.ID)
	sess.Set(usercontext.KeyUsername, user.Name)
	sess.Set(usercontext.KeyRole, user.Role)
	if user.OrganizationID != nil {
		sess.Set(usercontext.KeyOrganizationID, *user.OrganizationID)
	}

	return sess.Save()
}

func roleHome(role string) string {
	switch role {
	case models.RoleAdmin, models.RoleSuperAdmin:
		return constants.AdminRoute
	case models.RoleBusinessClient:
		return constants.ClientRoute
	default:
		return constants.PublicRoute
	}
}
