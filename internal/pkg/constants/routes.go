package constants

// Static route constants
const (
	PublicRoute    = "/"
	LoginRoute     = "/login"
	DashboardRoute = "/dashboard"
	AdminRoute     = "/admin"
	ClientRoute    = "/client"
	UploadsRoute   = "/uploads"
	// Upload path without leading slash for URL construction
	UploadsPath = "uploads"
)
