package matchmaking

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	runsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "matchmaking_runs_total",
			Help: "Total number of generation runs by outcome",
		},
		[]string{"outcome"},
	)

	candidatesSelected = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "matchmaking_candidates_per_run",
			Help:    "Candidates selected per generation run",
			Buckets: prometheus.LinearBuckets(0, 2, 6),
		},
	)

	oracleCallsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "matchmaking_oracle_calls_total",
			Help: "Total compatibility oracle calls by status",
		},
		[]string{"status"},
	)

	persistFailuresTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "matchmaking_persist_failures_total",
			Help: "Total recommendation upsert failures",
		},
	)

	scoreDistribution = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "matchmaking_scores",
			Help:    "Distribution of persisted recommendation scores",
			Buckets: prometheus.LinearBuckets(0, 10, 11),
		},
		[]string{"algorithm"},
	)

	runDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "matchmaking_run_duration_seconds",
			Help:    "Wall-clock duration of generation runs",
			Buckets: prometheus.ExponentialBuckets(0.5, 2, 10),
		},
	)
)

func RecordRun(outcome string) {
	runsTotal.WithLabelValues(outcome).Inc()
}

func RecordCandidatesSelected(count int) {
	candidatesSelected.Observe(float64(count))
}

func RecordOracleCall(status string) {
	oracleCallsTotal.WithLabelValues(status).Inc()
}

func RecordPersistFailure() {
	persistFailuresTotal.Inc()
}

func RecordScore(algorithm string, score int) {
	scoreDistribution.WithLabelValues(algorithm).Observe(float64(score))
}

func RecordRunDuration(d time.Duration) {
	runDuration.Observe(d.Seconds())
}
