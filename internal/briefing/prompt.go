package briefing

import (
	"fmt"
	"strings"
	"time"

	"github.com/jmherd/daily-briefing/internal/model"
)

// CompilePrompt renders weather, forecast, and news into the model prompt.
// Pure and deterministic: identical inputs (including the injected today
// clock) produce identical output, and well-formed inputs never fail.
func CompilePrompt(weather model.WeatherSnapshot, forecast []model.ForecastEntry, news model.NewsBundle, profile model.Profile, today time.Time) string {
	unitSymbol := "°C"
	speedUnit := "m/s"
	if profile.Units == model.UnitsImperial {
		unitSymbol = "°F"
		speedUnit = "mph"
	}

	var weatherText string
	if weather.Err != "" {
		weatherText = "Weather data unavailable."
	} else {
		weatherText = fmt.Sprintf(
			"%s: %d%s, feels like %d%s, %s, humidity %d%%, wind %v %s",
			weather.City,
			weather.Temperature, unitSymbol,
			weather.FeelsLike, unitSymbol,
			weather.Description,
			weather.Humidity,
			weather.WindSpeed, speedUnit,
		)
	}

	var forecastText string
	if len(forecast) > 0 {
		lines := make([]string, 0, len(forecast))
		for _, e := range forecast {
			line := fmt.Sprintf("  %s: %d%s, %s", e.Time, e.Temp, unitSymbol, e.Description)
			if e.Pop > 10 {
				line += fmt.Sprintf(", %d%% chance of rain", e.Pop)
			}
			lines = append(lines, line)
		}
		forecastText = strings.Join(lines, "\n")
	} else {
		forecastText = "Forecast unavailable."
	}

	var newsText strings.Builder
	for _, topic := range profile.Topics {
		newsText.WriteString(fmt.Sprintf("\n%s:\n", strings.ToUpper(topic)))

		articles := news.Topics[topic]
		if len(articles) == 0 {
			newsText.WriteString("  No articles found.\n")
			continue
		}
		for _, article := range articles {
			newsText.WriteString(fmt.Sprintf("  - %s (%s)\n", article.Title, article.Source))
		}
	}

	return fmt.Sprintf(`Today is %s.

Current conditions:
%s

Today's forecast (next 24 hours):
%s

Today's top headlines by topic:
%s

Please write a %s morning briefing based on this information.
Structure it as follows:
1. A warm, one-sentence greeting that acknowledges the day and weather.
2. A weather summary with practical advice (what to wear, any notable changes during the day).
3. A brief summary of the most interesting or important news across all topics —
   look for connections between stories if any exist.
4. A single closing thought or question worth thinking about today.

Keep the total length to around 200-250 words. Be specific, not generic.`,
		today.Format("Monday, January 02, 2006"),
		weatherText,
		forecastText,
		newsText.String(),
		profile.BriefingTone,
	)
}
