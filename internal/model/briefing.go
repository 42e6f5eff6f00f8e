package model

// Profile drives one user's briefing: where they are, what they follow,
// and how the narrative should sound. Stored in profiles.json keyed by name.
type Profile struct {
	City                string   `json:"city"`
	Units               string   `json:"units"`
	Topics              []string `json:"topics"`
	BriefingTone        string   `json:"briefing_tone"`
	MaxArticlesPerTopic int      `json:"max_articles_per_topic"`
}

const (
	UnitsImperial = "imperial"
	UnitsMetric   = "metric"
)

// WeatherSnapshot is the normalized current-conditions record. A failed fetch
// is carried in-band in Err rather than as a Go error, so the pipeline can
// degrade instead of aborting.
type WeatherSnapshot struct {
	City        string  `json:"city,omitempty"`
	Temperature int     `json:"temperature"`
	FeelsLike   int     `json:"feels_like"`
	Description string  `json:"description,omitempty"`
	Humidity    int     `json:"humidity"`
	WindSpeed   float64 `json:"wind_speed"`
	Err         string  `json:"error,omitempty"`
}

// ForecastEntry is one three-hour forecast sample, ordered by time.
type ForecastEntry struct {
	Time        string `json:"time"`
	Temp        int    `json:"temp"`
	Description string `json:"description"`
	Emoji       string `json:"emoji"`
	Pop         int    `json:"pop"`
}

type Article struct {
	Title  string `json:"title"`
	Source string `json:"source"`
	URL    string `json:"url"`
}

// NewsBundle maps each profile topic to its articles. Every topic the profile
// names is present even when the fetch came back empty, so callers never
// distinguish "missing key" from "no results". Err is the bundle-level
// sentinel for a missing provider credential; check it before iterating.
type NewsBundle struct {
	Topics map[string][]Article `json:"topics"`
	Err    string               `json:"error,omitempty"`
}

// BriefingResult is one completed orchestration run. Immutable once built;
// history retains only the date, clock time, and narrative.
type BriefingResult struct {
	Weather     WeatherSnapshot `json:"weather"`
	Forecast    []ForecastEntry `json:"forecast,omitempty"`
	News        NewsBundle      `json:"news"`
	Briefing    string          `json:"briefing"`
	GeneratedAt string          `json:"generated_at"`
}

type HistoryEntry struct {
	Date        string `json:"date"`
	GeneratedAt string `json:"generated_at"`
	Briefing    string `json:"briefing"`
}
