// Package discord is a minimal client for the two Discord surfaces this
// application touches: the OAuth2 authorization-code flow and the
// authenticated user's guild list.
package discord

import (
	"context"
	"net/http"
	"time"

	"golang.org/x/oauth2"

	"github.com/villicusbot/web/internal/errors"
)

// DefaultAPIBase is Discord's public REST API base URL.
const DefaultAPIBase = "https://discord.com/api"

// Config holds the OAuth2 application credentials issued by Discord.
type Config struct {
	ClientID     string
	ClientSecret string
	RedirectURI  string
	Scopes       []string

	// APIBase overrides the Discord API base URL. Used by tests.
	APIBase string

	// HTTPClient overrides the outbound client. Defaults to a client with a
	// 10 second timeout.
	HTTPClient *http.Client
}

type Client struct {
	oauth   *oauth2.Config
	apiBase string
	http    *http.Client
}

func New(cfg Config) *Client {
	apiBase := cfg.APIBase
	if apiBase == "" {
		apiBase = DefaultAPIBase
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}

	return &Client{
		oauth: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURI,
			Scopes:       cfg.Scopes,
			Endpoint: oauth2.Endpoint{
				AuthURL:   apiBase + "/oauth2/authorize",
				TokenURL:  apiBase + "/oauth2/token",
				AuthStyle: oauth2.AuthStyleInParams,
			},
		},
		apiBase: apiBase,
		http:    httpClient,
	}
}

// AuthorizeURL builds the Discord authorization URL the user is redirected to
// when they click "sign in". prompt=consent forces the consent screen so the
// guilds scope is always re-granted.
func (c *Client) AuthorizeURL() string {
	return c.oauth.AuthCodeURL("", oauth2.SetAuthURLParam("prompt", "consent"))
}

// ExchangeCode converts the authorization code from Discord's redirect into an
// access token via the token endpoint. Any non-success upstream status is an
// ErrUpstreamAuth; a success response without an access token is
// ErrMalformedTokenResponse. No session must be created on either failure.
func (c *Client) ExchangeCode(ctx context.Context, code string) (*oauth2.Token, error) {
	ctx = context.WithValue(ctx, oauth2.HTTPClient, c.http)

	token, err := c.oauth.Exchange(ctx, code)
	if err != nil {
		var retrieveErr *oauth2.RetrieveError
		if errors.As(err, &retrieveErr) {
			return nil, errors.Wrapf(errors.ErrUpstreamAuth, "token endpoint returned %d", retrieveErr.Response.StatusCode)
		}
		return nil, errors.Wrapf(err, "discord token exchange")
	}
	if token.AccessToken == "" {
		return nil, errors.ErrMalformedTokenResponse
	}
	return token, nil
}
