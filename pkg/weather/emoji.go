package weather

import "strings"

// emojiFor maps an OpenWeatherMap description to a weather emoji.
// Keyword precedence matters: "thundery rain" is a thunderstorm, not rain.
func emojiFor(description string) string {
	desc := strings.ToLower(description)

	switch {
	case strings.Contains(desc, "thunder"):
		return "⛈️"
	case strings.Contains(desc, "snow"):
		return "🌨️"
	case strings.Contains(desc, "rain"), strings.Contains(desc, "drizzle"):
		return "🌧️"
	case strings.Contains(desc, "mist"), strings.Contains(desc, "fog"), strings.Contains(desc, "haze"):
		return "🌫️"
	case strings.Contains(desc, "clear"):
		return "☀️"
	case strings.Contains(desc, "few clouds"), strings.Contains(desc, "scattered"):
		return "⛅"
	case strings.Contains(desc, "cloud"):
		return "☁️"
	}

	return "🌡️"
}
