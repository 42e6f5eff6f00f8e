package config

import "os"

// Config holds application configuration loaded from environment variables
type Config struct {
	OpenWeatherAPIKey string
	NewsAPIKey        string
	AnthropicAPIKey   string
	OpenAIAPIKey      string
	LLMProvider       string
	RedisURL          string
	ProfilesFile      string
	HistoryFile       string
	Port              string
}

// Load reads configuration from environment variables
func Load() *Config {
	return &Config{
		OpenWeatherAPIKey: os.Getenv("OPENWEATHER_API_KEY"),
		NewsAPIKey:        os.Getenv("NEWS_API_KEY"),
		AnthropicAPIKey:   os.Getenv("ANTHROPIC_API_KEY"),
		OpenAIAPIKey:      os.Getenv("OPENAI_API_KEY"),
		LLMProvider:       getEnvWithDefault("LLM_PROVIDER", "anthropic"),
		RedisURL:          os.Getenv("REDIS_URL"),
		ProfilesFile:      getEnvWithDefault("PROFILES_FILE", "profiles.json"),
		HistoryFile:       getEnvWithDefault("HISTORY_FILE", "briefing_history.json"),
		Port:              getEnvWithDefault("PORT", "8080"),
	}
}

func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
