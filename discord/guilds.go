package discord

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"github.com/villicusbot/web/internal/errors"
)

// permissionAdministrator is the ADMINISTRATOR bit in a guild permission set.
const permissionAdministrator = 0x8

// Guild is one entry of the authenticated user's guild list.
type Guild struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Icon        string      `json:"icon"`
	Owner       bool        `json:"owner"`
	Permissions Permissions `json:"permissions"`
}

// IsAdmin reports whether the user can administer the guild: they own it or
// hold the ADMINISTRATOR permission.
func (g Guild) IsAdmin() bool {
	return g.Owner || uint64(g.Permissions)&permissionAdministrator != 0
}

// Permissions is a guild permission bit set. Discord serializes it as a
// decimal string on current API versions but older payloads carry a number,
// so both forms are accepted.
type Permissions uint64

func (p *Permissions) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		v, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			return errors.Wrapf(err, "permissions %q", s)
		}
		*p = Permissions(v)
		return nil
	}

	var n uint64
	if err := json.Unmarshal(data, &n); err != nil {
		return errors.Wrapf(err, "permissions")
	}
	*p = Permissions(n)
	return nil
}

// ListGuilds fetches the guilds the user belongs to. A non-200 response is
// reported as ErrUpstreamAuth: an expired or revoked token is
// indistinguishable from any other upstream refusal here, and callers treat
// both as an invalid session.
func (c *Client) ListGuilds(ctx context.Context, accessToken string) ([]Guild, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.apiBase+"/users/@me/guilds", nil)
	if err != nil {
		return nil, errors.Wrapf(err, "build guilds request")
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, errors.Wrapf(err, "fetch guilds")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return nil, errors.Wrapf(errors.ErrUpstreamAuth, "guild list returned %d", resp.StatusCode)
	}

	var guilds []Guild
	if err := json.NewDecoder(resp.Body).Decode(&guilds); err != nil {
		return nil, errors.Wrapf(err, "decode guild list")
	}
	return guilds, nil
}

// AdminGuilds filters guilds down to the ones the user can administer.
func AdminGuilds(guilds []Guild) []Guild {
	var admin []Guild
	for _, g := range guilds {
		if g.IsAdmin() {
			admin = append(admin, g)
		}
	}
	return admin
}
