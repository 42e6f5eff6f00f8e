package weather

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-playground/assert/v2"

	"github.com/jmherd/daily-briefing/internal/model"
)

func testProfile() model.Profile {
	return model.Profile{
		City:                "Tampa, US",
		Units:               model.UnitsImperial,
		Topics:              []string{"technology"},
		BriefingTone:        "casual",
		MaxArticlesPerTopic: 2,
	}
}

func newTestClient(srv *httptest.Server) *Client {
	client := &Client{
		apiKey:     "test-key",
		httpClient: srv.Client(),
	}
	client.httpClient.Transport = &rewriteTransport{base: srv.URL, inner: http.DefaultTransport}
	return client
}

func TestCurrent(t *testing.T) {
	payload := map[string]interface{}{
		"name": "Tampa",
		"main": map[string]interface{}{
			"temp":       88.2,
			"feels_like": 94.7,
			"humidity":   60,
		},
		"weather": []map[string]interface{}{
			{"description": "clear sky"},
		},
		"wind": map[string]interface{}{
			"speed": 8.0,
		},
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Tampa, US", r.URL.Query().Get("q"))
		assert.Equal(t, "imperial", r.URL.Query().Get("units"))
		assert.Equal(t, "test-key", r.URL.Query().Get("appid"))
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(payload)
	}))
	defer srv.Close()

	snapshot := newTestClient(srv).Current(t.Context(), testProfile())

	assert.Equal(t, "", snapshot.Err)
	assert.Equal(t, "Tampa", snapshot.City)
	assert.Equal(t, 88, snapshot.Temperature)
	assert.Equal(t, 95, snapshot.FeelsLike)
	assert.Equal(t, "clear sky", snapshot.Description)
	assert.Equal(t, 60, snapshot.Humidity)
	assert.Equal(t, 8.0, snapshot.WindSpeed)
}

func TestCurrent_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	snapshot := newTestClient(srv).Current(t.Context(), testProfile())

	assert.Equal(t, "Weather fetch failed: 404", snapshot.Err)
	assert.Equal(t, "", snapshot.City)
}

// errorTransport fails every request before it leaves the process.
type errorTransport struct{}

func (errorTransport) RoundTrip(*http.Request) (*http.Response, error) {
	return nil, errors.New("dial tcp: connection refused")
}

func TestCurrent_TransportErrorHidesKey(t *testing.T) {
	client := &Client{
		apiKey:     "SUPERSECRETKEY",
		httpClient: &http.Client{Transport: errorTransport{}},
	}

	snapshot := client.Current(t.Context(), testProfile())

	assert.Equal(t, "Weather fetch failed: network error", snapshot.Err)
	// The wrapped transport error carries the full request URL, appid
	// included; none of it may surface in the sentinel.
	assert.Equal(t, false, strings.Contains(snapshot.Err, "SUPERSECRETKEY"))
	assert.Equal(t, false, strings.Contains(snapshot.Err, "appid"))
}

func TestCurrent_BadBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	}))
	defer srv.Close()

	snapshot := newTestClient(srv).Current(t.Context(), testProfile())

	assert.Equal(t, "Weather fetch failed: invalid response", snapshot.Err)
}

func TestForecast(t *testing.T) {
	threePM := time.Date(2026, time.August, 30, 15, 0, 0, 0, time.Local).Unix()
	payload := map[string]interface{}{
		"list": []map[string]interface{}{
			{
				"dt": threePM,
				"main": map[string]interface{}{
					"temp": 89.6,
				},
				"weather": []map[string]interface{}{
					{"description": "light rain"},
				},
				"pop": 0.35,
			},
		},
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "8", r.URL.Query().Get("cnt"))
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(payload)
	}))
	defer srv.Close()

	entries := newTestClient(srv).Forecast(t.Context(), testProfile())

	assert.Equal(t, 1, len(entries))

	e := entries[0]
	assert.Equal(t, "3 PM", e.Time)
	assert.Equal(t, 90, e.Temp)
	assert.Equal(t, "light rain", e.Description)
	assert.Equal(t, "🌧️", e.Emoji)
	assert.Equal(t, 35, e.Pop)
}

func TestForecast_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	entries := newTestClient(srv).Forecast(t.Context(), testProfile())

	assert.Equal(t, 0, len(entries))
}

func TestEmojiFor(t *testing.T) {
	tests := []struct {
		name        string
		description string
		want        string
	}{
		{"thunder beats rain", "thunderstorm with heavy rain", "⛈️"},
		{"snow", "light snow", "🌨️"},
		{"rain", "moderate rain", "🌧️"},
		{"drizzle", "light intensity drizzle", "🌧️"},
		{"haze", "haze", "🌫️"},
		{"clear", "clear sky", "☀️"},
		{"few clouds", "few clouds", "⛅"},
		{"scattered clouds", "scattered clouds", "⛅"},
		{"overcast", "overcast clouds", "☁️"},
		{"unknown falls through", "sandstorm", "🌡️"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := emojiFor(tt.description)
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

// rewriteTransport redirects all requests to a fixed base URL (test server).
type rewriteTransport struct {
	base  string
	inner http.RoundTripper
}

func (rt *rewriteTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req2 := req.Clone(req.Context())
	parsed, _ := http.NewRequest("GET", rt.base, nil)
	req2.URL.Host = parsed.URL.Host
	req2.URL.Scheme = parsed.URL.Scheme
	return rt.inner.RoundTrip(req2)
}
