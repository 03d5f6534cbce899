package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	CatalogLoads = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_loads_total",
			Help: "Question catalog loads by source (cache, remote, fallback)",
		},
		[]string{"assessment_type", "source"},
	)

	ResultsRecorded = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "assessment_results_recorded_total",
			Help: "Results persisted, by assessment type",
		},
		[]string{"assessment_type"},
	)

	PersistenceFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "assessment_persistence_failures_total",
			Help: "Failed result writes and history appends",
		},
		[]string{"stage"},
	)

	SubmitDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "assessment_submit_duration_seconds",
			Help: "Time from submit to recorded result",
		},
		[]string{"assessment_type"},
	)
)

const (
	SourceCache    = "cache"
	SourceRemote   = "remote"
	SourceFallback = "fallback"

	StageResultWrite   = "result_write"
	StageHistoryAppend = "history_append"
)
