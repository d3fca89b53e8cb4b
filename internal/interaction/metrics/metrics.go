package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// CallsTotal tracks interaction calls per operation and outcome
	CallsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "interact_calls_total",
			Help: "Total number of interaction calls",
		},
		[]string{"operation", "status"},
	)

	// PlatformErrorsTotal tracks classified platform errors per operation
	PlatformErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "interact_platform_errors_total",
			Help: "Total number of platform errors by classified kind",
		},
		[]string{"operation", "kind"},
	)

	// AccountMutationsTotal tracks corrective mutations applied to the pool
	AccountMutationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "interact_account_mutations_total",
			Help: "Total number of account store mutations",
		},
		[]string{"action"},
	)

	// CallLatency tracks platform call latency
	CallLatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "interact_call_latency_seconds",
			Help:    "Platform call latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"},
	)

	// EligibleLookupFailures tracks resolution failures
	EligibleLookupFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "interact_resolution_failures_total",
			Help: "Total number of account resolution failures",
		},
		[]string{"operation"},
	)
)
