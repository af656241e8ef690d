package usercontext

// Shared Locals/session keys used across controllers and middlewares
const (
	AuthKey           = "authenticated"
	KeyUserID         = "user_id"
	KeyUsername       = "username"
	KeyRole           = "role"
	KeyOrganizationID = "organization_id"
	KeyFromProtected  = "from_protected"
)
