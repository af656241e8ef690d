package controllers

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
	gothfiber "github.com/shareed2k/goth_fiber"
	"github.com/sujit-baniya/flash"
	"gorm.io/gorm"

	"github.com/mindspark-labs/localpages/app/repository"
	"github.com/mindspark-labs/localpages/internal/pkg/constants"
)

// HandleOAuthCallback completes the provider flow and logs the user in.
// Accounts are provisioned exclusively through the application review
// workflow, so an unknown email is rejected rather than auto-created.
func HandleOAuthCallback(c *fiber.Ctx) error {
	u, err := gothfiber.CompleteUserAuth(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).SendString(fmt.Sprintf("OAuth failed: %v", err))
	}

	if u.Email == "" {
		fm := fiber.Map{
			"type":    "error",
			"message": "Your identity provider did not share an email address",
		}
		return flash.WithError(c, fm).Redirect(constants.LoginRoute)
	}

	user, err := repository.GetGlobalFactory().GetUserRepository().GetByEmail(u.Email)
	if err != nil {
		fm := fiber.Map{"type": "error"}
		if errors.Is(err, gorm.ErrRecordNotFound) {
			fm["message"] = "No account exists for this email. Apply for a listing first."
		} else {
			fm["message"] = "There is a problem with the login process"
		}
		return flash.WithError(c, fm).Redirect(constants.LoginRoute)
	}

	if err := establishSession(c, user); err != nil {
		fm := fiber.Map{
			"type":    "error",
			"message": fmt.Sprintf("something went wrong: %s", err),
		}
		return flash.WithError(c, fm).Redirect(constants.LoginRoute)
	}

	return c.Redirect(roleHome(user.Role), fiber.StatusSeeOther)
}
