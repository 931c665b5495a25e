package enums

// Client-side routes used as navigation targets.
const (
	RouteLogin          = "/login"
	RouteDashboard      = "/dashboard"
	RouteGoogleCallback = "/auth/google/callback"
)
