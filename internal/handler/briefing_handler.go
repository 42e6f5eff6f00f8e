package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jmherd/daily-briefing/internal/model"
)

type Briefer interface {
	Run(ctx context.Context, profileName string, profile model.Profile) (*model.BriefingResult, error)
	RunStream(ctx context.Context, profileName string, profile model.Profile, onChunk func(text string)) (*model.BriefingResult, error)
}

type ProfileStore interface {
	Load() (map[string]model.Profile, error)
	Get(name string) (*model.Profile, error)
	Save(profiles map[string]model.Profile) error
}

type HistoryStore interface {
	Load(profileName string) []model.HistoryEntry
}

type BriefingHandler struct {
	briefer  Briefer
	profiles ProfileStore
	history  HistoryStore
}

func NewBriefingHandler(briefer Briefer, profiles ProfileStore, history HistoryStore) *BriefingHandler {
	return &BriefingHandler{briefer: briefer, profiles: profiles, history: history}
}

// GenerateBriefing runs the pipeline for one profile. With ?stream=true the
// narrative is delivered as server-sent chunk events while the model is
// still talking, followed by a final result event.
func (h *BriefingHandler) GenerateBriefing(c *gin.Context) {
	name := c.Param("name")

	profile, err := h.profiles.Get(name)
	if err != nil {
		slog.Error("error loading profile", "profile", name, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Profile store error"})
		return
	}
	if profile == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Profile not found"})
		return
	}

	if c.Query("stream") == "true" {
		h.streamBriefing(c, name, *profile)
		return
	}

	result, err := h.briefer.Run(c.Request.Context(), name, *profile)
	if err != nil {
		slog.Error("error generating briefing", "profile", name, "error", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "Briefing generation failed"})
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *BriefingHandler) streamBriefing(c *gin.Context, name string, profile model.Profile) {
	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")

	result, err := h.briefer.RunStream(c.Request.Context(), name, profile, func(text string) {
		c.SSEvent("chunk", text)
		c.Writer.Flush()
	})
	if err != nil {
		slog.Error("error streaming briefing", "profile", name, "error", err)
		c.SSEvent("error", gin.H{"error": "Briefing generation failed"})
		c.Writer.Flush()
		return
	}

	c.SSEvent("done", result)
	c.Writer.Flush()
}

// GetHistory returns the profile's past briefings, newest first.
func (h *BriefingHandler) GetHistory(c *gin.Context) {
	name := c.Param("name")

	entries := h.history.Load(name)

	c.JSON(http.StatusOK, HistoryResponse{
		Profile: name,
		Entries: entries,
		Total:   len(entries),
	})
}

func (h *BriefingHandler) GetHealth(c *gin.Context) {
	if _, err := h.profiles.Load(); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":   "unhealthy",
			"profiles": "unreadable",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
