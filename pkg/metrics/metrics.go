// Package metrics provides Prometheus instrumentation for the scoring
// pipeline and the team optimizer.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Manager owns all Prometheus collectors for the process.
type Manager struct {
	namespace string
	registry  *prometheus.Registry

	profilesScored  prometheus.Counter
	suspicionFlags  prometheus.Counter
	scoringErrors   prometheus.Counter
	swapsProposed   prometheus.Counter
	swapsAccepted   prometheus.Counter
	swapsRejected   prometheus.Counter
	replacements    prometheus.Counter
	fairnessScore   prometheus.Gauge
	teamCount       prometheus.Gauge
	stageDuration   *prometheus.HistogramVec
	suspicionScores prometheus.Histogram
}

// Option configures a Manager.
type Option func(*Manager)

// WithNamespace overrides the metric namespace.
func WithNamespace(ns string) Option {
	return func(m *Manager) {
		if ns != "" {
			m.namespace = ns
		}
	}
}

// WithRegistry sets the registry collectors are registered on.
func WithRegistry(r *prometheus.Registry) Option {
	return func(m *Manager) {
		if r != nil {
			m.registry = r
		}
	}
}

// NewManager builds a Manager and registers its collectors.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace: "rondo",
		registry:  prometheus.NewRegistry(),
	}
	for _, opt := range opts {
		opt(m)
	}

	auto := promauto.With(m.registry)

	m.profilesScored = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "profiles_scored_total",
		Help:      "Total number of competitor profiles scored",
	})
	m.suspicionFlags = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "suspicion_flags_total",
		Help:      "Total number of profiles flagged as suspected smurfs",
	})
	m.scoringErrors = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "scoring_errors_total",
		Help:      "Total number of profiles that failed scoring",
	})
	m.swapsProposed = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "optimizer_swaps_proposed_total",
		Help:      "Total number of swap proposals evaluated by the optimizer",
	})
	m.swapsAccepted = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "optimizer_swaps_accepted_total",
		Help:      "Total number of swap proposals that improved fairness",
	})
	m.swapsRejected = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "optimizer_swaps_rejected_total",
		Help:      "Total number of swap proposals rejected",
	})
	m.replacements = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "replacements_total",
		Help:      "Total number of single-member team replacements applied",
	})
	m.fairnessScore = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Name:      "fairness_score",
		Help:      "Fairness score of the most recent assignment (lower is better)",
	})
	m.teamCount = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Name:      "team_count",
		Help:      "Number of teams in the most recent assignment",
	})
	m.stageDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Name:      "stage_duration_seconds",
		Help:      "Duration of pipeline stages",
		Buckets:   prometheus.DefBuckets,
	}, []string{"stage"})
	m.suspicionScores = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Name:      "suspicion_score",
		Help:      "Distribution of computed suspicion scores",
		Buckets:   []float64{10, 20, 30, 40, 50, 60, 70, 80, 90, 100},
	})

	return m
}

var global = NewManager()

// Global returns the process-wide manager.
func Global() *Manager { return global }

// Handler serves the global registry over HTTP.
func Handler() http.Handler {
	return promhttp.HandlerFor(global.registry, promhttp.HandlerOpts{})
}

// Recording helpers on the global manager.

func RecordProfileScored()       { global.profilesScored.Inc() }
func RecordSuspicionFlag()       { global.suspicionFlags.Inc() }
func RecordScoringError()        { global.scoringErrors.Inc() }
func RecordSwapProposed()        { global.swapsProposed.Inc() }
func RecordSwapAccepted()        { global.swapsAccepted.Inc() }
func RecordSwapRejected()        { global.swapsRejected.Inc() }
func RecordReplacement()         { global.replacements.Inc() }
func SetFairnessScore(v float64) { global.fairnessScore.Set(v) }
func SetTeamCount(n int)         { global.teamCount.Set(float64(n)) }
func ObserveSuspicion(v float64) { global.suspicionScores.Observe(v) }
func ObserveStage(stage string, d time.Duration) {
	global.stageDuration.WithLabelValues(stage).Observe(d.Seconds())
}
