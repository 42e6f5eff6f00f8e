package handler

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/jmherd/daily-briefing/internal/model"
)

type ProfileHandler struct {
	profiles ProfileStore
}

func NewProfileHandler(profiles ProfileStore) *ProfileHandler {
	return &ProfileHandler{profiles: profiles}
}

func (h *ProfileHandler) GetProfiles(c *gin.Context) {
	profiles, err := h.profiles.Load()
	if err != nil {
		slog.Error("error loading profiles", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Profile store error"})
		return
	}

	c.JSON(http.StatusOK, profiles)
}

// PutProfile creates or replaces a profile under the name in the URL.
func (h *ProfileHandler) PutProfile(c *gin.Context) {
	name := c.Param("name")

	var req ProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid profile payload"})
		return
	}

	profile, problem := req.toProfile()
	if problem != "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": problem})
		return
	}

	profiles, err := h.profiles.Load()
	if err != nil {
		slog.Error("error loading profiles", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Profile store error"})
		return
	}

	profiles[name] = profile

	if err := h.profiles.Save(profiles); err != nil {
		slog.Error("error saving profiles", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Profile store error"})
		return
	}

	c.JSON(http.StatusOK, profile)
}

func (h *ProfileHandler) DeleteProfile(c *gin.Context) {
	name := c.Param("name")

	profiles, err := h.profiles.Load()
	if err != nil {
		slog.Error("error loading profiles", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Profile store error"})
		return
	}

	if _, ok := profiles[name]; !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Profile not found"})
		return
	}

	delete(profiles, name)

	if err := h.profiles.Save(profiles); err != nil {
		slog.Error("error saving profiles", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Profile store error"})
		return
	}

	c.Status(http.StatusNoContent)
}

func (r ProfileRequest) toProfile() (model.Profile, string) {
	city := strings.TrimSpace(r.City)
	if city == "" {
		return model.Profile{}, "City is required"
	}

	if r.Units != model.UnitsImperial && r.Units != model.UnitsMetric {
		return model.Profile{}, "Units must be imperial or metric"
	}

	topics := make([]string, 0, len(r.Topics))
	for _, topic := range r.Topics {
		if t := strings.TrimSpace(topic); t != "" {
			topics = append(topics, t)
		}
	}
	if len(topics) == 0 {
		return model.Profile{}, "At least one topic is required"
	}

	if r.MaxArticlesPerTopic < 1 || r.MaxArticlesPerTopic > 10 {
		return model.Profile{}, "Max articles per topic must be between 1 and 10"
	}

	return model.Profile{
		City:                city,
		Units:               r.Units,
		Topics:              topics,
		BriefingTone:        strings.TrimSpace(r.BriefingTone),
		MaxArticlesPerTopic: r.MaxArticlesPerTopic,
	}, ""
}
