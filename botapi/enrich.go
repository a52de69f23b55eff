package botapi

import (
	"sort"
	"strconv"
)

// StaffRole is one staff role entry prepared for rendering: the configured
// permission level plus the role name resolved from the guild's role list.
type StaffRole struct {
	ID    string `json:"id"`
	Level int    `json:"level"`
	Name  string `json:"name"`
}

// StaffRoleList is the outcome of staff role enrichment. Enriched reports
// whether role names were resolved from the bot API or the raw role ids were
// used as a fallback, so callers (and tests) can tell the two paths apart.
type StaffRoleList struct {
	Roles    []StaffRole
	Enriched bool
}

// EnrichStaffRoles cross-references the settings' staff_roles mapping
// (role id -> level) with the guild role list. When roles is nil — the roles
// fetch failed — every entry keeps its id as the display name. Entries are
// sorted by role id so rendering is deterministic.
func EnrichStaffRoles(settings Settings, roles []Role) StaffRoleList {
	staffRoles, _ := settings["staff_roles"].(map[string]any)

	names := make(map[string]string, len(roles))
	for _, r := range roles {
		names[r.ID.String()] = r.Name
	}

	list := StaffRoleList{Enriched: roles != nil}
	for id, rawLevel := range staffRoles {
		entry := StaffRole{ID: id, Name: id, Level: asInt(rawLevel)}
		if name, ok := names[id]; ok {
			entry.Name = name
		}
		list.Roles = append(list.Roles, entry)
	}

	sort.Slice(list.Roles, func(i, j int) bool {
		return list.Roles[i].ID < list.Roles[j].ID
	})
	return list
}

// asInt converts a decoded JSON level to an int. Levels arrive as float64
// from encoding/json but the bot API has historically sent strings too.
func asInt(v any) int {
	switch n := v.(type) {
	case float64:
		return int(n)
	case int:
		return n
	case string:
		parsed, err := strconv.Atoi(n)
		if err != nil {
			return 0
		}
		return parsed
	default:
		return 0
	}
}
