package config

type Discord struct{}

var _ DiscordConfig = Discord{}

func (Discord) GetClientID() string {
	return GetEnv("DISCORD_CLIENT_ID", "")
}

func (Discord) GetClientSecret() string {
	return GetEnv("DISCORD_CLIENT_SECRET", "")
}

func (Discord) GetRedirectURI() string {
	return GetEnv("REDIRECT_URI", "http://localhost:8000/callback")
}

// GetScopes returns the OAuth2 scopes requested from Discord. "identify" is
// needed to resolve the user, "guilds" to list the guilds they belong to.
func (Discord) GetScopes() []string {
	return []string{"identify", "guilds"}
}
