package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP request metrics
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "factlens_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status_code"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "factlens_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	// Outbound fetches, labelled by kind (page, feed, image) and outcome.
	FetchTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "factlens_fetch_total",
			Help: "Total number of outbound fetches",
		},
		[]string{"kind", "status"},
	)

	FetchDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "factlens_fetch_duration_seconds",
			Help:    "Outbound fetch duration in seconds",
			Buckets: []float64{.05, .1, .25, .5, 1, 2.5, 5, 10, 20},
		},
		[]string{"kind"},
	)

	ArticlesCollected = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "factlens_articles_collected_total",
			Help: "Articles collected per source and method",
		},
		[]string{"source", "method"},
	)

	SourceFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "factlens_source_failures_total",
			Help: "Per-source collection failures that were isolated",
		},
		[]string{"source", "method"},
	)

	CredibilityScores = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "factlens_credibility_score",
			Help:    "Distribution of credibility totals returned by /check-url",
			Buckets: prometheus.LinearBuckets(0, 10, 11),
		},
	)

	QuestionsAnswered = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "factlens_questions_answered_total",
			Help: "Questions answered by question type",
		},
		[]string{"type"},
	)

	CacheRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "factlens_cache_requests_total",
			Help: "Trending cache lookups by result",
		},
		[]string{"driver", "result"},
	)
)

// ObserveFetch records one outbound fetch.
func ObserveFetch(kind string, err error, started time.Time) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	FetchTotal.WithLabelValues(kind, status).Inc()
	FetchDuration.WithLabelValues(kind).Observe(time.Since(started).Seconds())
}
