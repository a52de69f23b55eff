package server

// Route path constants
// All application routes are defined here to ensure consistency and prevent typos
const (
	RouteIndex    = "/"
	RouteLogin    = "/login"
	RouteCallback = "/callback"

	RouteDashboard = "/dashboard"

	RouteConfigure            = "/configure/{guild_id}"
	RouteConfigureAddStaff    = "/configure/{guild_id}/add_staff"
	RouteConfigureRemoveStaff = "/configure/{guild_id}/remove_staff"
	RouteConfigureSaveSetting = "/configure/{guild_id}/save_setting"

	RouteHealth = "/health"

	// Static Asset Routes (patterns)
	RouteStatic = "/static/"
)
