package main

import (
	"context"
	"log"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"github.com/jmherd/daily-briefing/internal/briefing"
	"github.com/jmherd/daily-briefing/internal/cache"
	"github.com/jmherd/daily-briefing/internal/config"
	"github.com/jmherd/daily-briefing/internal/history"
	"github.com/jmherd/daily-briefing/internal/profile"
	"github.com/jmherd/daily-briefing/pkg/llm"
	"github.com/jmherd/daily-briefing/pkg/news"
	"github.com/jmherd/daily-briefing/pkg/weather"
)

// One-shot runner: generates and stores a briefing for every profile, or
// only the profiles named as arguments. Meant for cron.
func main() {

	godotenv.Load()

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	cfg := config.Load()

	var generator llm.Generator
	switch cfg.LLMProvider {
	case "openai":
		generator = llm.NewOpenAIClient(cfg.OpenAIAPIKey)
	default:
		generator = llm.NewAnthropicClient(cfg.AnthropicAPIKey)
	}

	engine := briefing.NewEngine(
		weather.NewClient(cfg.OpenWeatherAPIKey),
		news.NewClient(cfg.NewsAPIKey),
		generator,
		history.NewStore(cfg.HistoryFile),
		cache.NewMemory(),
	)

	profiles, err := profile.NewStore(cfg.ProfilesFile).Load()
	if err != nil {
		log.Fatalf("error loading profiles: %v", err)
	}

	if len(profiles) == 0 {
		slog.Error("no profiles configured", "file", cfg.ProfilesFile)
		return
	}

	names := os.Args[1:]
	if len(names) == 0 {
		for name := range profiles {
			names = append(names, name)
		}
	}

	ctx := context.Background()

	var generated, errors int

	for _, name := range names {
		p, ok := profiles[name]
		if !ok {
			slog.Error("unknown profile", "profile", name)
			errors++
			continue
		}

		result, err := engine.Run(ctx, name, p)
		if err != nil {
			slog.Error("error generating briefing", "profile", name, "error", err)
			errors++
			continue
		}

		slog.Info("briefing generated", "profile", name, "generated_at", result.GeneratedAt, "chars", len(result.Briefing))
		generated++
	}

	slog.Info("run complete", "generated", generated, "errors", errors)
}
