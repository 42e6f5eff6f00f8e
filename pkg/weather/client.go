package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"net/url"
	"time"

	"github.com/jmherd/daily-briefing/internal/model"
)

const (
	currentURL  = "https://api.openweathermap.org/data/2.5/weather"
	forecastURL = "https://api.openweathermap.org/data/2.5/forecast"

	// 8 three-hour samples covers roughly the next 24 hours.
	forecastSamples = 8
)

type Client struct {
	apiKey     string
	httpClient *http.Client
}

func NewClient(apiKey string) *Client {
	return &Client{
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// Current fetches current conditions for the profile's city. Failures are
// returned in-band in the snapshot's Err field, never as a Go error.
func (c *Client) Current(ctx context.Context, profile model.Profile) model.WeatherSnapshot {
	params := url.Values{}
	params.Set("q", profile.City)
	params.Set("appid", c.apiKey)
	params.Set("units", profile.Units)

	resp, err := c.get(ctx, currentURL, params)
	if err != nil {
		// The transport error embeds the request URL, appid included, so
		// only a generic message goes into the user-visible sentinel.
		slog.Error("error fetching weather", "city", profile.City, "error", err)
		return model.WeatherSnapshot{Err: "Weather fetch failed: network error"}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return model.WeatherSnapshot{Err: fmt.Sprintf("Weather fetch failed: %d", resp.StatusCode)}
	}

	var raw owmCurrentResponse
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		slog.Error("error decoding weather response", "city", profile.City, "error", err)
		return model.WeatherSnapshot{Err: "Weather fetch failed: invalid response"}
	}

	snapshot := model.WeatherSnapshot{
		City:        raw.Name,
		Temperature: int(math.Round(raw.Main.Temp)),
		FeelsLike:   int(math.Round(raw.Main.FeelsLike)),
		Humidity:    raw.Main.Humidity,
		WindSpeed:   raw.Wind.Speed,
	}
	if len(raw.Weather) > 0 {
		snapshot.Description = raw.Weather[0].Description
	}

	return snapshot
}

// Forecast fetches the next ~24 hours in three-hour samples. Forecast absence
// is non-fatal, so any failure yields an empty slice.
func (c *Client) Forecast(ctx context.Context, profile model.Profile) []model.ForecastEntry {
	params := url.Values{}
	params.Set("q", profile.City)
	params.Set("appid", c.apiKey)
	params.Set("units", profile.Units)
	params.Set("cnt", fmt.Sprintf("%d", forecastSamples))

	resp, err := c.get(ctx, forecastURL, params)
	if err != nil {
		return []model.ForecastEntry{}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return []model.ForecastEntry{}
	}

	var raw owmForecastResponse
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return []model.ForecastEntry{}
	}

	entries := make([]model.ForecastEntry, 0, len(raw.List))
	for _, item := range raw.List {
		description := ""
		if len(item.Weather) > 0 {
			description = item.Weather[0].Description
		}

		entries = append(entries, model.ForecastEntry{
			Time:        time.Unix(item.Dt, 0).Format("3 PM"),
			Temp:        int(math.Round(item.Main.Temp)),
			Description: description,
			Emoji:       emojiFor(description),
			Pop:         int(math.Round(item.Pop * 100)),
		})
	}

	return entries
}

func (c *Client) get(ctx context.Context, rawURL string, params url.Values) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", rawURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("weather request: %w", err)
	}
	return c.httpClient.Do(req)
}

type owmCurrentResponse struct {
	Name    string         `json:"name"`
	Main    owmMain        `json:"main"`
	Weather []owmCondition `json:"weather"`
	Wind    owmWind        `json:"wind"`
}

type owmForecastResponse struct {
	List []owmForecastItem `json:"list"`
}

type owmForecastItem struct {
	Dt      int64          `json:"dt"`
	Main    owmMain        `json:"main"`
	Weather []owmCondition `json:"weather"`
	Pop     float64        `json:"pop"`
}

type owmMain struct {
	Temp      float64 `json:"temp"`
	FeelsLike float64 `json:"feels_like"`
	Humidity  int     `json:"humidity"`
}

type owmCondition struct {
	Description string `json:"description"`
}

type owmWind struct {
	Speed float64 `json:"speed"`
}
