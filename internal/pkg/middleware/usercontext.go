package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/mindspark-labs/localpages/internal/pkg/session"
	"github.com/mindspark-labs/localpages/internal/pkg/usercontext"
)

// UserContextMiddleware sets up the complete user context for every request
// This centralizes user session handling and eliminates code duplication
func UserContextMiddleware(c *fiber.Ctx) error {
	// Avoid interfering with Goth/Fiber session handling on OAuth routes.
	// Goth uses its own fiber session store and relies on per-request locals.
	// We skip our app session on /auth/* to prevent cross-store collisions.
	if strings.HasPrefix(c.Path(), "/auth/") {
		return c.Next()
	}
	// Get session with error handling
	sess, err := session.GetSessionStore().Get(c)
	if err != nil {
		return anonymous(c)
	}

	// Get user ID from session
	userID := sess.Get(usercontext.KeyUserID)
	if userID == nil {
		return anonymous(c)
	}
	uid, ok := userID.(uint)
	if !ok || uid == 0 {
		return anonymous(c)
	}

	// User is logged in - pull the rest from the session
	username := session.GetSessionValue(c, usercontext.KeyUsername)
	role := session.GetSessionValue(c, usercontext.KeyRole)
	var orgID uint
	if v := sess.Get(usercontext.KeyOrganizationID); v != nil {
		if o, ok := v.(uint); ok {
			orgID = o
		}
	}

	userCtx := usercontext.UserContext{
		UserID:         uid,
		Username:       username,
		Role:           role,
		OrganizationID: orgID,
		IsLoggedIn:     true,
	}
	c.Locals("USER_CONTEXT", userCtx)
	c.Locals(usercontext.KeyFromProtected, true)
	c.Locals(usercontext.KeyUserID, uid)
	c.Locals(usercontext.KeyUsername, username)
	c.Locals(usercontext.KeyRole, role)

	return c.Next()
}

func anonymous(c *fiber.Ctx) error {
	c.Locals("USER_CONTEXT", usercontext.UserContext{IsLoggedIn: false})
	c.Locals(usercontext.KeyFromProtected, false)
	return c.Next()
}
