package botapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/villicusbot/web/internal/errors"
)

// Settings is the guild settings document. The bot API owns its schema; this
// side only forwards it and, for rendering, enriches the staff role mapping.
type Settings map[string]any

// Role is one guild role as reported by the bot API.
type Role struct {
	ID   json.Number `json:"id"`
	Name string      `json:"name"`
}

// GetSettings fetches the settings document for a guild.
func (c *Client) GetSettings(ctx context.Context, botToken string, guildID int64) (Settings, error) {
	resp, err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/guilds/%d/settings", guildID), botToken, nil)
	if err != nil {
		return nil, err
	}

	var settings Settings
	if err := json.Unmarshal(resp.Body, &settings); err != nil {
		return nil, errors.Wrapf(err, "decode guild settings")
	}
	return settings, nil
}

// GetRoles fetches the guild's role list, used to resolve staff role names.
func (c *Client) GetRoles(ctx context.Context, botToken string, guildID int64) ([]Role, error) {
	resp, err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/guilds/%d/roles", guildID), botToken, nil)
	if err != nil {
		return nil, err
	}

	var rolesResp struct {
		Roles []Role `json:"roles"`
	}
	if err := json.Unmarshal(resp.Body, &rolesResp); err != nil {
		return nil, errors.Wrapf(err, "decode guild roles")
	}
	return rolesResp.Roles, nil
}

// AddStaffRole registers a role as staff with a permission level.
func (c *Client) AddStaffRole(ctx context.Context, botToken string, guildID, roleID int64, level int) (*Response, error) {
	payload, err := json.Marshal(map[string]any{"role_id": roleID, "level": level})
	if err != nil {
		return nil, errors.Wrapf(err, "marshal staff role")
	}
	return c.do(ctx, http.MethodPost, fmt.Sprintf("/api/guilds/%d/staffrole", guildID), botToken, payload)
}

// RemoveStaffRole removes a role from the staff mapping.
func (c *Client) RemoveStaffRole(ctx context.Context, botToken string, guildID, roleID int64) (*Response, error) {
	payload, err := json.Marshal(map[string]any{"role_id": roleID})
	if err != nil {
		return nil, errors.Wrapf(err, "marshal staff role")
	}
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/guilds/%d/staffrole", guildID), botToken, payload)
}

// SaveSetting forwards an arbitrary settings payload unchanged. No schema
// validation happens on this side.
func (c *Client) SaveSetting(ctx context.Context, botToken string, guildID int64, payload []byte) (*Response, error) {
	return c.do(ctx, http.MethodPost, fmt.Sprintf("/api/guilds/%d/settings", guildID), botToken, payload)
}

// SaveForm posts a partial settings payload built from the bulk-edit form.
// This leg authenticates with the pre-shared API key, which is the contract
// the bot API expects for settings written on the user's behalf by the site.
func (c *Client) SaveForm(ctx context.Context, guildID int64, fields map[string]string) (*Response, error) {
	payload, err := json.Marshal(fields)
	if err != nil {
		return nil, errors.Wrapf(err, "marshal settings form")
	}
	return c.do(ctx, http.MethodPost, fmt.Sprintf("/api/guilds/%d/settings", guildID), "", payload)
}
