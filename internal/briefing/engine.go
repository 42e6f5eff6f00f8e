package briefing

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/jmherd/daily-briefing/internal/cache"
	"github.com/jmherd/daily-briefing/internal/metrics"
	"github.com/jmherd/daily-briefing/internal/model"
	"github.com/jmherd/daily-briefing/pkg/llm"
)

type WeatherSource interface {
	Current(ctx context.Context, profile model.Profile) model.WeatherSnapshot
	Forecast(ctx context.Context, profile model.Profile) []model.ForecastEntry
}

type NewsSource interface {
	FetchTopics(ctx context.Context, profile model.Profile) model.NewsBundle
}

type HistorySink interface {
	Append(profileName string, result model.BriefingResult) error
}

const fetchCacheTTL = 30 * time.Minute

// Engine runs the whole pipeline for one profile: fetch weather, forecast,
// and news (concurrently, through the bounded-age cache), compile the
// prompt, generate or stream the narrative, and record it in history.
//
// Degradation rules: a weather error or empty news only thins out the
// prompt; a history write failure is logged and swallowed; only a
// Generator failure aborts the run.
type Engine struct {
	weather    WeatherSource
	news       NewsSource
	generator  llm.Generator
	history    HistorySink
	fetchCache cache.Cache
	now        func() time.Time
}

func NewEngine(weather WeatherSource, news NewsSource, generator llm.Generator, history HistorySink, fetchCache cache.Cache) *Engine {
	return &Engine{
		weather:    weather,
		news:       news,
		generator:  generator,
		history:    history,
		fetchCache: fetchCache,
		now:        time.Now,
	}
}

// Run generates a complete briefing in one shot and persists it.
func (e *Engine) Run(ctx context.Context, profileName string, profile model.Profile) (*model.BriefingResult, error) {
	weather, forecast, news := e.fetch(ctx, profileName, profile)
	prompt := CompilePrompt(weather, forecast, news, profile, e.now())

	text, err := e.generator.Generate(ctx, prompt)
	if err != nil {
		metrics.BriefingFailures.WithLabelValues(profileName).Inc()
		return nil, err
	}

	result := e.assemble(weather, forecast, news, text)
	metrics.BriefingsGenerated.WithLabelValues(profileName, "single").Inc()
	e.persist(profileName, result)
	return result, nil
}

// RunStream generates a briefing chunk by chunk, invoking onChunk for each
// text fragment as it arrives. The result is assembled from the chunk
// concatenation; a stream failure discards the partial text and nothing is
// written to history.
func (e *Engine) RunStream(ctx context.Context, profileName string, profile model.Profile, onChunk func(text string)) (*model.BriefingResult, error) {
	weather, forecast, news := e.fetch(ctx, profileName, profile)
	prompt := CompilePrompt(weather, forecast, news, profile, e.now())

	stream, err := e.generator.Stream(ctx, prompt)
	if err != nil {
		metrics.BriefingFailures.WithLabelValues(profileName).Inc()
		return nil, err
	}
	defer stream.Close()

	var text strings.Builder
	for stream.Next() {
		text.WriteString(stream.Text())
		if onChunk != nil {
			onChunk(stream.Text())
		}
	}
	if err := stream.Err(); err != nil {
		metrics.BriefingFailures.WithLabelValues(profileName).Inc()
		return nil, err
	}

	result := e.assemble(weather, forecast, news, text.String())
	metrics.BriefingsGenerated.WithLabelValues(profileName, "stream").Inc()
	e.persist(profileName, result)
	return result, nil
}

func (e *Engine) assemble(weather model.WeatherSnapshot, forecast []model.ForecastEntry, news model.NewsBundle, text string) *model.BriefingResult {
	return &model.BriefingResult{
		Weather:     weather,
		Forecast:    forecast,
		News:        news,
		Briefing:    text,
		GeneratedAt: e.now().Format("03:04 PM"),
	}
}

// fetchedData is the cached form of one profile's provider fetches.
type fetchedData struct {
	Weather  model.WeatherSnapshot `json:"weather"`
	Forecast []model.ForecastEntry `json:"forecast"`
	News     model.NewsBundle      `json:"news"`
}

func (e *Engine) fetch(ctx context.Context, profileName string, profile model.Profile) (model.WeatherSnapshot, []model.ForecastEntry, model.NewsBundle) {
	key := fetchCacheKey(profileName, profile)

	if e.fetchCache != nil {
		if raw, ok := e.fetchCache.Get(ctx, key); ok {
			var cached fetchedData
			if err := json.Unmarshal(raw, &cached); err == nil {
				metrics.FetchCacheHits.WithLabelValues("hit").Inc()
				return cached.Weather, cached.Forecast, cached.News
			}
		}
		metrics.FetchCacheHits.WithLabelValues("miss").Inc()
	}

	var data fetchedData
	var wg sync.WaitGroup

	wg.Add(3)
	go func() {
		defer wg.Done()
		data.Weather = e.weather.Current(ctx, profile)
		if data.Weather.Err != "" {
			metrics.ProviderFetchFailures.WithLabelValues("weather").Inc()
		}
	}()
	go func() {
		defer wg.Done()
		data.Forecast = e.weather.Forecast(ctx, profile)
		if len(data.Forecast) == 0 {
			metrics.ProviderFetchFailures.WithLabelValues("forecast").Inc()
		}
	}()
	go func() {
		defer wg.Done()
		data.News = e.news.FetchTopics(ctx, profile)
		if data.News.Err != "" {
			metrics.ProviderFetchFailures.WithLabelValues("news").Inc()
		}
	}()
	wg.Wait()

	if e.fetchCache != nil {
		if raw, err := json.Marshal(data); err == nil {
			e.fetchCache.Set(ctx, key, raw, fetchCacheTTL)
		}
	}

	return data.Weather, data.Forecast, data.News
}

// fetchCacheKey fingerprints the profile so that editing a profile (new
// city, new topics) invalidates its cached fetches immediately.
func fetchCacheKey(profileName string, profile model.Profile) string {
	raw, _ := json.Marshal(profile)
	sum := sha256.Sum256(append([]byte(profileName+"|"), raw...))
	return fmt.Sprintf("briefing:fetch:%x", sum[:8])
}

func (e *Engine) persist(profileName string, result *model.BriefingResult) {
	if e.history == nil || profileName == "" {
		return
	}

	if err := e.history.Append(profileName, *result); err != nil {
		metrics.HistoryWriteFailures.Inc()
		slog.Error("error saving briefing to history", "profile", profileName, "error", err)
	}
}
