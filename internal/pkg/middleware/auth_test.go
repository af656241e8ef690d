package middleware

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"

	"github.com/mindspark-labs/localpages/app/models"
	"github.com/mindspark-labs/localpages/internal/pkg/usercontext"
)

func newTestApp(role string, loggedIn bool) *fiber.App {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("USER_CONTEXT", usercontext.UserContext{
			UserID:     1,
			Role:       role,
			IsLoggedIn: loggedIn,
		})
		return c.Next()
	})
	ok := func(c *fiber.Ctx) error { return c.SendString("ok") }
	app.Get("/admin", RequireAdmin, ok)
	app.Get("/client", RequireClient, ok)
	app.Get("/api", RequireAdminAPI, ok)
	return app
}

func TestRequireAdminRedirectsToLogin(t *testing.T) {
	cases := []struct {
		name     string
		role     string
		loggedIn bool
		status   int
		location string
	}{
		{"anonymous", "", false, fiber.StatusSeeOther, "/login"},
		{"wrong role", models.RoleBusinessClient, true, fiber.StatusSeeOther, "/login"},
		{"admin", models.RoleAdmin, true, fiber.StatusOK, ""},
		{"super admin", models.RoleSuperAdmin, true, fiber.StatusOK, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			app := newTestApp(tc.role, tc.loggedIn)
			resp, err := app.Test(httptest.NewRequest("GET", "/admin", nil))
			assert.NoError(t, err)
			assert.Equal(t, tc.status, resp.StatusCode)
			assert.Equal(t, tc.location, resp.Header.Get("Location"))
		})
	}
}

func TestRequireClientRedirectsToLogin(t *testing.T) {
	app := newTestApp(models.RoleAdmin, true)
	resp, err := app.Test(httptest.NewRequest("GET", "/client", nil))
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/login", resp.Header.Get("Location"))

	app = newTestApp(models.RoleBusinessClient, true)
	resp, err = app.Test(httptest.NewRequest("GET", "/client", nil))
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestRequireAdminAPIReturnsJSONErrors(t *testing.T) {
	app := newTestApp("", false)
	resp, err := app.Test(httptest.NewRequest("GET", "/api", nil))
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	app = newTestApp(models.RoleBusinessClient, true)
	resp, err = app.Test(httptest.NewRequest("GET", "/api", nil))
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}
