package config

type Config interface {
	EnvConfig
	CorsConfig
	DiscordConfig
	BotAPIConfig
	SessionConfig
}

type EnvConfig interface {
	GetAddr() string
	GetAppName() string
	GetEnv() string
}

type CorsConfig interface {
	GetAllowedOrigins() AllowedOrigins
	GetAllowedMethods() []string
	GetAllowedHeaders() []string
}

type DiscordConfig interface {
	GetClientID() string
	GetClientSecret() string
	GetRedirectURI() string
	GetScopes() []string
}

type BotAPIConfig interface {
	GetBotAPIURL() string
	GetBotAPIKey() string
}

type SessionConfig interface {
	GetSessionSecret() string
	GetRedisURL() string
}

type mainConfig struct {
	EnvVars
	Cors
	Discord
	BotAPI
	Session
}

func New() Config {
	return mainConfig{}
}
