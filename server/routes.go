package server

import "net/http"

func (s *Server) initRoutes() {
	s.RegisterRouteFunc("GET "+RouteIndex, ChainMiddleware(s.IndexHandler(), s.HTMLMiddleWare()...))

	// LOGIN
	s.RegisterRouteFunc("GET "+RouteLogin, ChainMiddleware(s.LoginHandler(), s.HTMLMiddleWare()...))
	s.RegisterRouteFunc("GET "+RouteCallback, ChainMiddleware(s.CallbackHandler(), s.HTMLMiddleWare()...))

	// Authenticated HTML routes (redirect to the landing page without a session)
	s.RegisterRouteFunc("GET "+RouteDashboard, ChainMiddleware(s.DashboardHandler(), s.HTMLMiddleWare(s.RequireSession(redirectHome))...))
	s.RegisterRouteFunc("GET "+RouteConfigure, ChainMiddleware(s.ConfigureGetHandler(), s.HTMLMiddleWare(s.RequireSession(redirectHome))...))
	s.RegisterRouteFunc("POST "+RouteConfigure, ChainMiddleware(s.SaveFormHandler(), s.HTMLMiddleWare(s.RequireSession(redirectHome))...))

	// JSON settings API (401 without a session)
	s.RegisterRouteFunc("POST "+RouteConfigureAddStaff, ChainMiddleware(s.AddStaffHandler(), s.APIMiddleware(s.RequireSession(unauthorizedJSON))...))
	s.RegisterRouteFunc("POST "+RouteConfigureRemoveStaff, ChainMiddleware(s.RemoveStaffHandler(), s.APIMiddleware(s.RequireSession(unauthorizedJSON))...))
	s.RegisterRouteFunc("POST "+RouteConfigureSaveSetting, ChainMiddleware(s.SaveSettingHandler(), s.APIMiddleware(s.RequireSession(unauthorizedJSON))...))

	s.RegisterRouteFunc("GET "+RouteHealth, s.HealthHandler())

	s.RegisterRouteHandler("GET "+RouteStatic, http.StripPrefix(RouteStatic, s.fileServer))
}
