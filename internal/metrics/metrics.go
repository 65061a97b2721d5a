package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "gosurvey"

// Refresh outcomes.
const (
	ResultSuccess = "success"
	ResultError   = "error"
	ResultSkipped = "skipped"
)

// Summarizer outcomes.
const (
	SummaryFits      = "fits"
	SummaryAccepted  = "accepted"
	SummaryRejected  = "rejected"
	SummaryFailed    = "failed"
	SummaryTruncated = "truncated"
)

var (
	RefreshTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "refresh_total",
		Help:      "Snapshot refresh attempts by result.",
	}, []string{"result"})

	RefreshDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "refresh_duration_seconds",
		Help:      "Time spent fetching and publishing a snapshot.",
		Buckets:   []float64{0.1, 0.25, 0.5, 1, 2, 5, 10, 20, 30},
	})

	TabRows = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "tab_rows",
		Help:      "Rows in the published snapshot per tab.",
	}, []string{"tab"})

	SkippedRows = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "tab_skipped_rows",
		Help:      "Rows without an organization key in the published snapshot per tab.",
	}, []string{"tab"})

	SnapshotStale = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "snapshot_stale",
		Help:      "Whether the served snapshot is older than the last refresh attempt (1/0).",
	})

	LastSuccess = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "refresh_last_success_timestamp_seconds",
		Help:      "Unix time of the last successful refresh.",
	})

	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "HTTP requests by route and status code.",
	}, []string{"method", "route", "code"})

	HTTPLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency by route.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route"})

	SummarizerResults = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "summarizer_results_total",
		Help:      "Outcomes of shortening insight text by dimension.",
	}, []string{"dimension", "result"})

	LLMTokens = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "llm_tokens_total",
		Help:      "Tokens used by the summarizer, by model and kind (prompt or completion).",
	}, []string{"model", "kind"})
)
