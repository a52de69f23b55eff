package server

import (
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/villicusbot/web/discord"
)

// IndexHandler renders the landing page with the Discord sign-in link.
func (s *Server) IndexHandler() http.HandlerFunc {
	tmpl, err := ParseTemplate("index.html")
	if err != nil {
		panic("Failed to parse index template: " + err.Error())
	}

	return func(w http.ResponseWriter, r *http.Request) {
		data := map[string]interface{}{
			"AppName":  s.config.GetAppName(),
			"OAuthURL": s.discord.AuthorizeURL(),
		}

		w.Header().Set("Content-Type", contentTypeHTML)
		if err := tmpl.Execute(w, data); err != nil {
			log.Err(err).Msg("Failed to render index template")
		}
	}
}

// LoginHandler redirects straight to Discord's authorize URL.
func (s *Server) LoginHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, s.discord.AuthorizeURL(), http.StatusTemporaryRedirect)
	}
}

// CallbackHandler completes the OAuth flow: it exchanges the authorization
// code for an access token, creates a session for it, and sends the user to
// the dashboard. No session is created on any failure.
func (s *Server) CallbackHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		code := r.URL.Query().Get("code")
		if code == "" {
			http.Error(w, "Missing code", http.StatusBadRequest)
			return
		}

		token, err := s.discord.ExchangeCode(r.Context(), code)
		if err != nil {
			log.Ctx(r.Context()).Warn().Err(err).Msg("code exchange failed")
			http.Redirect(w, r, RouteIndex, http.StatusSeeOther)
			return
		}

		cookieValue, err := s.sessions.Issue(r.Context(), token.AccessToken)
		if err != nil {
			log.Ctx(r.Context()).Error().Err(err).Msg("failed to issue session")
			http.Error(w, "Failed to create session", http.StatusInternalServerError)
			return
		}

		s.setSessionCookie(w, r, cookieValue)
		http.Redirect(w, r, RouteDashboard, http.StatusSeeOther)
	}
}

// DashboardHandler lists the guilds the user can administer. An upstream
// refusal of the token is treated as an invalid session, not an error page.
func (s *Server) DashboardHandler() http.HandlerFunc {
	tmpl, err := ParseTemplate("dashboard.html")
	if err != nil {
		panic("Failed to parse dashboard template: " + err.Error())
	}

	return func(w http.ResponseWriter, r *http.Request) {
		accessToken := accessTokenFromContext(r.Context())

		guilds, err := s.discord.ListGuilds(r.Context(), accessToken)
		if err != nil {
			log.Ctx(r.Context()).Warn().Err(err).Msg("guild list fetch failed, treating session as invalid")
			http.Redirect(w, r, RouteIndex, http.StatusSeeOther)
			return
		}

		data := map[string]interface{}{
			"AppName":     s.config.GetAppName(),
			"Guilds":      guilds,
			"AdminGuilds": discord.AdminGuilds(guilds),
		}

		w.Header().Set("Content-Type", contentTypeHTML)
		if err := tmpl.Execute(w, data); err != nil {
			log.Ctx(r.Context()).Err(err).Msg("Failed to render dashboard template")
		}
	}
}

// HealthHandler is the liveness probe.
func (s *Server) HealthHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	}
}
