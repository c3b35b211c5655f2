// Package metrics defines the prometheus collectors for the service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Auth operation metrics
var (
	// AuthOpsTotal tracks auth service operations by operation and result.
	AuthOpsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "auth_operations_total",
			Help: "Total auth operations by operation and result",
		},
		[]string{"operation", "result"},
	)

	// PasswordHashDuration tracks bcrypt hashing latency in seconds. The work
	// factor is tunable, so the buckets reach into whole seconds.
	PasswordHashDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "password_hash_duration_seconds",
			Help:    "Password hashing duration in seconds",
			Buckets: []float64{.01, .025, .05, .1, .25, .5, 1, 2.5},
		},
	)

	// SessionsIssuedTotal counts session tokens handed out.
	SessionsIssuedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "sessions_issued_total",
			Help: "Total session tokens issued",
		},
	)
)

const (
	ResultSuccess  = "success"
	ResultFailure  = "failure"
	ResultRejected = "rejected"
)
