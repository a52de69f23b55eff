package server_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// botFake is a minimal bot API: it mints tokens and serves one guild's
// settings and roles.
func botFake(t *testing.T) http.Handler {
	t.Helper()
	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/token", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "shared-key", r.Header.Get("X-API-KEY"))
		var body struct {
			AccessToken string `json:"access_token"`
			GuildID     int64  `json:"guild_id"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Equal(t, "discord-token", body.AccessToken)
		w.Write([]byte(`{"token":"scoped-token"}`))
	})

	mux.HandleFunc("GET /api/guilds/42/settings", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "Bearer scoped-token", r.Header.Get("Authorization"))
		w.Write([]byte(`{"warns_to_punish":"3","warn_punish_action":"mute","staff_roles":{"42":5}}`))
	})

	mux.HandleFunc("GET /api/guilds/42/roles", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"roles":[{"id":42,"name":"Mods"}]}`))
	})

	mux.HandleFunc("POST /api/guilds/42/staffrole", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"ok":true}`))
	})

	mux.HandleFunc("DELETE /api/guilds/42/staffrole", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"ok":true}`))
	})

	mux.HandleFunc("POST /api/guilds/42/settings", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"ok":true}`))
	})

	return mux
}

func TestConfigureGetHandler(t *testing.T) {
	t.Run("unauthenticated redirects home with no downstream calls", func(t *testing.T) {
		f := newFixture(t, nil, nil, false)

		rec := f.do(httptest.NewRequest(http.MethodGet, "/configure/42", nil))
		require.Equal(t, http.StatusSeeOther, rec.Code)
		require.Equal(t, "/", rec.Header().Get("Location"))
		require.Zero(t, f.botRequests.Load())
	})

	t.Run("renders enriched staff roles", func(t *testing.T) {
		f := newFixture(t, nil, botFake(t), false)

		rec := f.do(f.authedRequest(t, http.MethodGet, "/configure/42", nil))
		require.Equal(t, http.StatusOK, rec.Code)
		require.Contains(t, rec.Body.String(), "Mods")
		require.Contains(t, rec.Body.String(), "Level 5")
	})

	t.Run("roles fetch failure falls back to raw ids", func(t *testing.T) {
		mux := http.NewServeMux()
		mux.HandleFunc("POST /api/token", func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"token":"scoped-token"}`))
		})
		mux.HandleFunc("GET /api/guilds/42/settings", func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"staff_roles":{"42":5}}`))
		})
		mux.HandleFunc("GET /api/guilds/42/roles", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		})
		f := newFixture(t, nil, mux, false)

		rec := f.do(f.authedRequest(t, http.MethodGet, "/configure/42", nil))
		require.Equal(t, http.StatusOK, rec.Code)
		require.Contains(t, rec.Body.String(), "42 &mdash; Level 5")
	})

	t.Run("mint refusal is relayed verbatim", func(t *testing.T) {
		botDeny := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusForbidden)
			w.Write([]byte("not an admin of this guild"))
		})
		f := newFixture(t, nil, botDeny, false)

		rec := f.do(f.authedRequest(t, http.MethodGet, "/configure/42", nil))
		require.Equal(t, http.StatusForbidden, rec.Code)
		require.Equal(t, "not an admin of this guild", rec.Body.String())
	})

	t.Run("non-numeric guild id is a 404", func(t *testing.T) {
		f := newFixture(t, nil, nil, false)

		rec := f.do(f.authedRequest(t, http.MethodGet, "/configure/not-a-guild", nil))
		require.Equal(t, http.StatusNotFound, rec.Code)
		require.Zero(t, f.botRequests.Load())
	})
}

func TestStaffHandlers(t *testing.T) {
	t.Run("unauthenticated add_staff is a 401", func(t *testing.T) {
		f := newFixture(t, nil, nil, false)

		body := `{"role_id":9,"level":5}`
		req := httptest.NewRequest(http.MethodPost, "/configure/42/add_staff", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		rec := f.do(req)
		require.Equal(t, http.StatusUnauthorized, rec.Code)
		require.Zero(t, f.botRequests.Load())
	})

	t.Run("add_staff forwards and relays the response", func(t *testing.T) {
		f := newFixture(t, nil, botFake(t), false)

		body := `{"role_id":9,"level":5}`
		rec := f.do(f.authedRequest(t, http.MethodPost, "/configure/42/add_staff", &body))
		require.Equal(t, http.StatusOK, rec.Code)
		require.JSONEq(t, `{"ok":true}`, rec.Body.String())
	})

	t.Run("remove_staff forwards and relays the response", func(t *testing.T) {
		f := newFixture(t, nil, botFake(t), false)

		body := `{"role_id":9}`
		rec := f.do(f.authedRequest(t, http.MethodPost, "/configure/42/remove_staff", &body))
		require.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("bot refusal keeps its exact status and body", func(t *testing.T) {
		botTeapot := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTeapot)
			w.Write([]byte("no staff changes today"))
		})
		f := newFixture(t, nil, botTeapot, false)

		body := `{"role_id":9,"level":5}`
		rec := f.do(f.authedRequest(t, http.MethodPost, "/configure/42/add_staff", &body))
		require.Equal(t, http.StatusTeapot, rec.Code)
		require.Equal(t, "no staff changes today", rec.Body.String())
	})

	t.Run("malformed body is a 400", func(t *testing.T) {
		f := newFixture(t, nil, nil, false)

		body := `{"role_id":`
		rec := f.do(f.authedRequest(t, http.MethodPost, "/configure/42/add_staff", &body))
		require.Equal(t, http.StatusBadRequest, rec.Code)
		require.Zero(t, f.botRequests.Load())
	})
}

func TestSaveSettingHandler(t *testing.T) {
	t.Run("forwards arbitrary payloads unchanged", func(t *testing.T) {
		var gotBody string
		mux := http.NewServeMux()
		mux.HandleFunc("POST /api/token", func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"token":"scoped-token"}`))
		})
		mux.HandleFunc("POST /api/guilds/42/settings", func(w http.ResponseWriter, r *http.Request) {
			raw, err := io.ReadAll(r.Body)
			require.NoError(t, err)
			gotBody = string(raw)
			w.Write([]byte(`{"ok":true}`))
		})
		f := newFixture(t, nil, mux, false)

		body := `{"accent_color":"#6ee7b7","theme":"dark"}`
		rec := f.do(f.authedRequest(t, http.MethodPost, "/configure/42/save_setting", &body))
		require.Equal(t, http.StatusOK, rec.Code)
		require.JSONEq(t, body, gotBody)
	})

	t.Run("unauthenticated is a 401", func(t *testing.T) {
		f := newFixture(t, nil, nil, false)

		rec := f.do(httptest.NewRequest(http.MethodPost, "/configure/42/save_setting", strings.NewReader(`{}`)))
		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestSaveFormHandler(t *testing.T) {
	t.Run("success redirects back to the settings view", func(t *testing.T) {
		var gotKey string
		var gotBody map[string]string
		mux := http.NewServeMux()
		mux.HandleFunc("POST /api/guilds/42/settings", func(w http.ResponseWriter, r *http.Request) {
			gotKey = r.Header.Get("X-API-KEY")
			require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
			w.Write([]byte(`{"ok":true}`))
		})
		f := newFixture(t, nil, mux, false)

		form := "warns_to_punish=3&warn_action=mute"
		req := f.authedRequest(t, http.MethodPost, "/configure/42", &form)
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		rec := f.do(req)

		require.Equal(t, http.StatusSeeOther, rec.Code)
		require.Equal(t, "/configure/42", rec.Header().Get("Location"))
		require.Equal(t, "shared-key", gotKey)
		require.Equal(t, map[string]string{"warns_to_punish": "3", "warn_punish_action": "mute"}, gotBody)
	})

	t.Run("omits absent fields", func(t *testing.T) {
		var gotBody map[string]string
		mux := http.NewServeMux()
		mux.HandleFunc("POST /api/guilds/42/settings", func(w http.ResponseWriter, r *http.Request) {
			require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
			w.Write([]byte(`{"ok":true}`))
		})
		f := newFixture(t, nil, mux, false)

		form := "warns_to_punish=5"
		req := f.authedRequest(t, http.MethodPost, "/configure/42", &form)
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		rec := f.do(req)

		require.Equal(t, http.StatusSeeOther, rec.Code)
		require.Equal(t, map[string]string{"warns_to_punish": "5"}, gotBody)
	})

	t.Run("failure renders the error page", func(t *testing.T) {
		botDeny := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte("bad setting"))
		})
		f := newFixture(t, nil, botDeny, false)

		form := "warns_to_punish=3"
		req := f.authedRequest(t, http.MethodPost, "/configure/42", &form)
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		rec := f.do(req)

		require.Equal(t, http.StatusInternalServerError, rec.Code)
		require.Contains(t, rec.Body.String(), "Failed to save settings")
	})

	t.Run("unauthenticated redirects home", func(t *testing.T) {
		f := newFixture(t, nil, nil, false)

		req := httptest.NewRequest(http.MethodPost, "/configure/42", strings.NewReader("warns_to_punish=3"))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		rec := f.do(req)

		require.Equal(t, http.StatusSeeOther, rec.Code)
		require.Equal(t, "/", rec.Header().Get("Location"))
		require.Zero(t, f.botRequests.Load())
	})
}
