package config

type BotAPI struct{}

var _ BotAPIConfig = BotAPI{}

func (BotAPI) GetBotAPIURL() string {
	return GetEnv("BOT_API_URL", "http://localhost:5000")
}

func (BotAPI) GetBotAPIKey() string {
	return GetEnv("BOT_API_KEY", "")
}
