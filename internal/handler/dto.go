package handler

import "github.com/jmherd/daily-briefing/internal/model"

type ProfileRequest struct {
	City                string   `json:"city"`
	Units               string   `json:"units"`
	Topics              []string `json:"topics"`
	BriefingTone        string   `json:"briefing_tone"`
	MaxArticlesPerTopic int      `json:"max_articles_per_topic"`
}

type HistoryResponse struct {
	Profile string               `json:"profile"`
	Entries []model.HistoryEntry `json:"entries"`
	Total   int                  `json:"total"`
}
