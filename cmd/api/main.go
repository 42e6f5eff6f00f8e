package main

import (
	"log"
	"log/slog"
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jmherd/daily-briefing/internal/briefing"
	"github.com/jmherd/daily-briefing/internal/cache"
	"github.com/jmherd/daily-briefing/internal/config"
	"github.com/jmherd/daily-briefing/internal/handler"
	"github.com/jmherd/daily-briefing/internal/history"
	"github.com/jmherd/daily-briefing/internal/profile"
	"github.com/jmherd/daily-briefing/pkg/llm"
	"github.com/jmherd/daily-briefing/pkg/news"
	"github.com/jmherd/daily-briefing/pkg/weather"
)

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

	var fetchCache cache.Cache
	if cfg.RedisURL != "" {
		redisCache, err := cache.NewRedis(cfg.RedisURL)
		if err != nil {
			log.Fatalf("error connecting to Redis: %v", err)
		}
		defer redisCache.Close()
		fetchCache = redisCache
	} else {
		fetchCache = cache.NewMemory()
	}

	profiles := profile.NewStore(cfg.ProfilesFile)
	historyStore := history.NewStore(cfg.HistoryFile)

	engine := briefing.NewEngine(
		weather.NewClient(cfg.OpenWeatherAPIKey),
		news.NewClient(cfg.NewsAPIKey),
		generator,
		historyStore,
		fetchCache,
	)

	briefingHandler := handler.NewBriefingHandler(engine, profiles, historyStore)
	profileHandler := handler.NewProfileHandler(profiles)

	r := gin.Default()

	allowedOrigins := []string{"http://localhost:3000"}

	if frontendURL := os.Getenv("FRONTEND_URL"); frontendURL != "" {
		allowedOrigins = append(allowedOrigins, frontendURL)
	}

	slog.Info("AllowOrigins URL:", "urls", allowedOrigins)

	r.Use(cors.New(cors.Config{
		AllowOrigins: allowedOrigins,
		AllowMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type"},
	}))

	r.POST("/briefings/:name", briefingHandler.GenerateBriefing)
	r.GET("/briefings/:name/history", briefingHandler.GetHistory)
	r.GET("/profiles", profileHandler.GetProfiles)
	r.PUT("/profiles/:name", profileHandler.PutProfile)
	r.DELETE("/profiles/:name", profileHandler.DeleteProfile)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/health", briefingHandler.GetHealth)

	err := r.Run(":" + cfg.Port)
	if err != nil {
		log.Fatalf("error starting server: %v", err)
	}
}
