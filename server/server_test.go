package server_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/villicusbot/web/botapi"
	"github.com/villicusbot/web/discord"
	"github.com/villicusbot/web/internal/config"
	"github.com/villicusbot/web/server"
	"github.com/villicusbot/web/session"
)

// testConfig reuses the real env-backed config but pins the environment so
// tests never hit DEV-only route logging.
type testConfig struct {
	config.EnvVars
	config.Cors
	config.Discord
	config.BotAPI
	config.Session
}

func (testConfig) GetEnv() string { return "TEST" }

// fixture wires a Server against fake Discord and bot API endpoints.
type fixture struct {
	server  *server.Server
	codec   *session.Codec
	manager *session.Manager
	store   *session.MemoryStore

	discordRequests atomic.Int64
	botRequests     atomic.Int64
}

// newFixture builds the server under test. discordHandler and botHandler
// stand in for the two upstreams; either may be nil when a test never calls
// it. withStore selects the store-backed session variant.
func newFixture(t *testing.T, discordHandler, botHandler http.Handler, withStore bool) *fixture {
	t.Helper()

	f := &fixture{}

	discordTS := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.discordRequests.Add(1)
		if discordHandler == nil {
			t.Errorf("unexpected discord request: %s %s", r.Method, r.URL.Path)
			return
		}
		discordHandler.ServeHTTP(w, r)
	}))
	t.Cleanup(discordTS.Close)

	botTS := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.botRequests.Add(1)
		if botHandler == nil {
			t.Errorf("unexpected bot api request: %s %s", r.Method, r.URL.Path)
			return
		}
		botHandler.ServeHTTP(w, r)
	}))
	t.Cleanup(botTS.Close)

	f.codec = session.NewCodec("test-secret")
	var store session.Store
	if withStore {
		f.store = session.NewMemoryStore()
		store = f.store
	}
	f.manager = session.NewManager(f.codec, store, zerolog.Nop())

	discordClient := discord.New(discord.Config{
		ClientID:     "client-id",
		ClientSecret: "client-secret",
		RedirectURI:  "http://localhost:8000/callback",
		Scopes:       []string{"identify", "guilds"},
		APIBase:      discordTS.URL,
	})
	botClient := botapi.New(botTS.URL, "shared-key", nil)

	f.server = server.New(testConfig{}, discordClient, botClient, f.manager, zerolog.Nop())
	return f
}

// do routes a request through the server without following redirects.
func (f *fixture) do(req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	f.server.ServeHTTP(rec, req)
	return rec
}

// authedRequest attaches a valid session cookie for the given access token.
func (f *fixture) authedRequest(t *testing.T, method, target string, body *string) *http.Request {
	t.Helper()

	cookieValue, err := f.manager.Issue(context.Background(), "discord-token")
	require.NoError(t, err)

	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, target, strings.NewReader(*body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	req.AddCookie(&http.Cookie{Name: session.CookieName, Value: cookieValue})
	return req
}
