// Package botapi is the client for the bot's own HTTP API: it mints
// guild-scoped bearer tokens from a user's Discord access token and forwards
// settings reads and writes. Bot API error responses are never reinterpreted;
// their status and body are relayed to the caller as-is.
package botapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/villicusbot/web/internal/errors"
)

const apiKeyHeader = "X-API-KEY"

// StatusError carries a non-200 bot API response so handlers can relay it
// verbatim.
type StatusError struct {
	StatusCode int
	Body       []byte
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("bot api returned %d: %s", e.StatusCode, e.Body)
}

// Response is a successful (200) bot API response body.
type Response struct {
	StatusCode int
	Body       []byte
}

type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

// New creates a bot API client. baseURL is the bot API root
// (e.g. http://localhost:5000), apiKey the pre-shared key for the
// broker-to-bot-API leg.
func New(baseURL, apiKey string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &Client{baseURL: baseURL, apiKey: apiKey, http: httpClient}
}

// MintToken exchanges the user's Discord access token plus a guild id for a
// short-lived guild-scoped bearer token. Tokens are never cached; every
// guild-scoped action mints a fresh one.
func (c *Client) MintToken(ctx context.Context, accessToken string, guildID int64) (string, error) {
	payload, err := json.Marshal(map[string]any{
		"access_token": accessToken,
		"guild_id":     guildID,
	})
	if err != nil {
		return "", errors.Wrapf(err, "marshal token request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/token", bytes.NewReader(payload))
	if err != nil {
		return "", errors.Wrapf(err, "build token request")
	}
	req.Header.Set(apiKeyHeader, c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", errors.Wrapf(err, "mint scoped token")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", errors.Wrapf(err, "read token response")
	}
	if resp.StatusCode != http.StatusOK {
		return "", &StatusError{StatusCode: resp.StatusCode, Body: body}
	}

	var tokenResp struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(body, &tokenResp); err != nil {
		return "", errors.Wrapf(err, "decode token response")
	}
	if tokenResp.Token == "" {
		return "", errors.Wrapf(errors.ErrMalformedTokenResponse, "bot api token")
	}
	return tokenResp.Token, nil
}

// do issues a bot API request with the given bearer token and relays the
// outcome: 200 responses come back as *Response, anything else as a
// *StatusError.
func (c *Client) do(ctx context.Context, method, path, botToken string, body []byte) (*Response, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, errors.Wrapf(err, "build %s %s", method, path)
	}
	if botToken != "" {
		req.Header.Set("Authorization", "Bearer "+botToken)
	} else {
		req.Header.Set(apiKeyHeader, c.apiKey)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, errors.Wrapf(err, "%s %s", method, path)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrapf(err, "read %s %s response", method, path)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: respBody}
	}
	return &Response{StatusCode: resp.StatusCode, Body: respBody}, nil
}
