package server

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/rs/zerolog/log"

	"github.com/villicusbot/web/botapi"
	"github.com/villicusbot/web/internal/errors"
)

// guildIDFromRequest parses the {guild_id} path segment.
func guildIDFromRequest(r *http.Request) (int64, error) {
	return strconv.ParseInt(r.PathValue("guild_id"), 10, 64)
}

// relay writes a bot API outcome to the caller unchanged. Non-200 upstream
// responses keep their exact status and body; only transport-level failures
// become a 502 because there is no upstream status to relay.
func relay(w http.ResponseWriter, r *http.Request, resp *botapi.Response, err error) {
	if err == nil {
		w.WriteHeader(resp.StatusCode)
		w.Write(resp.Body)
		return
	}

	var statusErr *botapi.StatusError
	if errors.As(err, &statusErr) {
		w.WriteHeader(statusErr.StatusCode)
		w.Write(statusErr.Body)
		return
	}

	log.Ctx(r.Context()).Error().Err(err).Msg("bot api request failed")
	http.Error(w, "Bot API unavailable", http.StatusBadGateway)
}

// mintScopedToken exchanges the session's access token for a guild-scoped bot
// API token. Minting happens on every guild-scoped action; the token lives
// for one request.
func (s *Server) mintScopedToken(w http.ResponseWriter, r *http.Request, guildID int64) (string, bool) {
	token, err := s.bot.MintToken(r.Context(), accessTokenFromContext(r.Context()), guildID)
	if err != nil {
		relay(w, r, nil, err)
		return "", false
	}
	return token, true
}

// ConfigureGetHandler renders the settings view for one guild. The staff role
// mapping is enriched with role names best-effort: a roles fetch failure
// still produces the list, with raw role ids standing in for names.
func (s *Server) ConfigureGetHandler() http.HandlerFunc {
	tmpl, err := ParseTemplate("configure.html")
	if err != nil {
		panic("Failed to parse configure template: " + err.Error())
	}

	return func(w http.ResponseWriter, r *http.Request) {
		guildID, err := guildIDFromRequest(r)
		if err != nil {
			http.NotFound(w, r)
			return
		}

		botToken, ok := s.mintScopedToken(w, r, guildID)
		if !ok {
			return
		}

		settings, err := s.bot.GetSettings(r.Context(), botToken, guildID)
		if err != nil {
			relay(w, r, nil, err)
			return
		}

		roles, err := s.bot.GetRoles(r.Context(), botToken, guildID)
		if err != nil {
			log.Ctx(r.Context()).Warn().Err(err).Int64("guild_id", guildID).Msg("roles fetch failed, staff list will use raw ids")
			roles = nil
		}
		staffRoles := botapi.EnrichStaffRoles(settings, roles)

		data := map[string]interface{}{
			"AppName":    s.config.GetAppName(),
			"GuildID":    guildID,
			"Settings":   settings,
			"StaffRoles": staffRoles.Roles,
		}

		w.Header().Set("Content-Type", contentTypeHTML)
		if err := tmpl.Execute(w, data); err != nil {
			log.Ctx(r.Context()).Err(err).Msg("Failed to render configure template")
		}
	}
}

// AddStaffHandler forwards a staff role addition to the bot API.
func (s *Server) AddStaffHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		guildID, err := guildIDFromRequest(r)
		if err != nil {
			http.NotFound(w, r)
			return
		}

		var body struct {
			RoleID json.Number `json:"role_id"`
			Level  json.Number `json:"level"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			http.Error(w, "Invalid JSON body", http.StatusBadRequest)
			return
		}
		roleID, err := body.RoleID.Int64()
		if err != nil {
			http.Error(w, "Invalid role_id", http.StatusBadRequest)
			return
		}
		level, err := body.Level.Int64()
		if err != nil {
			http.Error(w, "Invalid level", http.StatusBadRequest)
			return
		}

		botToken, ok := s.mintScopedToken(w, r, guildID)
		if !ok {
			return
		}

		resp, err := s.bot.AddStaffRole(r.Context(), botToken, guildID, roleID, int(level))
		relay(w, r, resp, err)
	}
}

// RemoveStaffHandler forwards a staff role removal to the bot API.
func (s *Server) RemoveStaffHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		guildID, err := guildIDFromRequest(r)
		if err != nil {
			http.NotFound(w, r)
			return
		}

		var body struct {
			RoleID json.Number `json:"role_id"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			http.Error(w, "Invalid JSON body", http.StatusBadRequest)
			return
		}
		roleID, err := body.RoleID.Int64()
		if err != nil {
			http.Error(w, "Invalid role_id", http.StatusBadRequest)
			return
		}

		botToken, ok := s.mintScopedToken(w, r, guildID)
		if !ok {
			return
		}

		resp, err := s.bot.RemoveStaffRole(r.Context(), botToken, guildID, roleID)
		relay(w, r, resp, err)
	}
}

// SaveSettingHandler forwards an arbitrary settings payload unchanged. No
// schema validation happens here; the bot API owns the settings shape.
func (s *Server) SaveSettingHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		guildID, err := guildIDFromRequest(r)
		if err != nil {
			http.NotFound(w, r)
			return
		}

		payload, err := io.ReadAll(r.Body)
		if err != nil {
			http.Error(w, "Failed to read body", http.StatusBadRequest)
			return
		}

		botToken, ok := s.mintScopedToken(w, r, guildID)
		if !ok {
			return
		}

		resp, err := s.bot.SaveSetting(r.Context(), botToken, guildID, payload)
		relay(w, r, resp, err)
	}
}

// SaveFormHandler handles the bulk settings form: it builds a partial payload
// from only the fields present, posts it to the bot API, and sends the user
// back to the settings view. Failures render the error page instead of
// relaying, since the caller is a browser mid-form-submit.
func (s *Server) SaveFormHandler() http.HandlerFunc {
	tmpl, err := ParseTemplate("error.html")
	if err != nil {
		panic("Failed to parse error template: " + err.Error())
	}

	return func(w http.ResponseWriter, r *http.Request) {
		guildID, err := guildIDFromRequest(r)
		if err != nil {
			http.NotFound(w, r)
			return
		}

		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form data", http.StatusBadRequest)
			return
		}

		fields := map[string]string{}
		if warns := r.FormValue("warns_to_punish"); warns != "" {
			fields["warns_to_punish"] = warns
		}
		if action := r.FormValue("warn_action"); action != "" {
			fields["warn_punish_action"] = action
		}

		if _, err := s.bot.SaveForm(r.Context(), guildID, fields); err != nil {
			log.Ctx(r.Context()).Warn().Err(err).Int64("guild_id", guildID).Msg("settings form save failed")
			data := map[string]interface{}{
				"AppName": s.config.GetAppName(),
				"Message": "Failed to save settings",
			}
			w.Header().Set("Content-Type", contentTypeHTML)
			w.WriteHeader(http.StatusInternalServerError)
			if err := tmpl.Execute(w, data); err != nil {
				log.Ctx(r.Context()).Err(err).Msg("Failed to render error template")
			}
			return
		}

		http.Redirect(w, r, fmt.Sprintf("/configure/%d", guildID), http.StatusSeeOther)
	}
}
