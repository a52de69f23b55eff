package config

type Session struct{}

var _ SessionConfig = Session{}

func (Session) GetSessionSecret() string {
	return GetEnv("SESSION_SECRET", "change-me")
}

// GetRedisURL returns the optional Redis connection URL. When empty the
// server falls back to storing the access token directly in the signed cookie.
func (Session) GetRedisURL() string {
	return GetEnv("REDIS_URL", "")
}
