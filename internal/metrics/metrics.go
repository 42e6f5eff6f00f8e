package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	BriefingsGenerated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "briefings_generated_total",
			Help: "Total number of briefings generated",
		},
		[]string{"profile", "mode"},
	)

	BriefingFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "briefing_failures_total",
			Help: "Total number of briefing runs aborted by a model failure",
		},
		[]string{"profile"},
	)

	ProviderFetchFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "provider_fetch_failures_total",
			Help: "Total number of degraded external fetches",
		},
		[]string{"provider"},
	)

	HistoryWriteFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "history_write_failures_total",
			Help: "Total number of swallowed history write failures",
		},
	)

	FetchCacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fetch_cache_total",
			Help: "Fetch cache lookups by outcome",
		},
		[]string{"outcome"},
	)
)
