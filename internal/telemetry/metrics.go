package telemetry

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// sessionsTotal counts finished sessions by final state and abort reason
	sessionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "guut_sessions_total",
		Help: "Finished debugging sessions by final state and abort reason",
	}, []string{"state", "reason"})

	// mutantsKilled counts killed mutants by how they were killed
	mutantsKilled = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "guut_mutants_killed_total",
		Help: "Killed mutants by kill source (session or sweep)",
	}, []string{"source"})

	completionDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "guut_completion_duration_seconds",
		Help:    "Model completion latency in seconds",
		Buckets: prometheus.ExponentialBuckets(0.25, 2, 10),
	}, []string{"endpoint"})

	completionTokens = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "guut_completion_tokens_total",
		Help: "Tokens used by model completions",
	}, []string{"endpoint", "kind"})

	sandboxDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "guut_sandbox_run_duration_seconds",
		Help:    "Sandboxed process duration in seconds",
		Buckets: prometheus.ExponentialBuckets(0.1, 2, 10),
	}, []string{"variant", "kind"})

	sandboxTimeouts = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "guut_sandbox_timeouts_total",
		Help: "Sandboxed processes killed by the timeout",
	}, []string{"variant", "kind"})

	cacheLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "guut_execution_cache_lookups_total",
		Help: "Execution cache lookups by result",
	}, []string{"result"})
)

// ObserveSession records a finished session.
func ObserveSession(state, reason string) {
	sessionsTotal.WithLabelValues(state, reason).Inc()
}

// ObserveKill records a killed mutant.
func ObserveKill(viaSweep bool) {
	source := "session"
	if viaSweep {
		source = "sweep"
	}

	mutantsKilled.WithLabelValues(source).Inc()
}

// ObserveCompletion records one model completion.
func ObserveCompletion(endpoint string, d time.Duration, promptTokens, completion int) {
	completionDuration.WithLabelValues(endpoint).Observe(d.Seconds())
	completionTokens.WithLabelValues(endpoint, "prompt").Add(float64(promptTokens))
	completionTokens.WithLabelValues(endpoint, "completion").Add(float64(completion))
}

// ObserveSandboxRun records one sandboxed process.
func ObserveSandboxRun(variant, kind string, d time.Duration, timedOut bool) {
	sandboxDuration.WithLabelValues(variant, kind).Observe(d.Seconds())

	if timedOut {
		sandboxTimeouts.WithLabelValues(variant, kind).Inc()
	}
}

// ObserveCacheLookup records an execution cache hit or miss.
func ObserveCacheLookup(hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}

	cacheLookups.WithLabelValues(result).Inc()
}
