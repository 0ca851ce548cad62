// Package metrics holds the Prometheus collectors exported by keystone.
//
// A nil *Metrics is valid and records nothing, so services can be built
// without a registry.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "keystone"

// Metrics bundles the collectors.
type Metrics struct {
	identitiesGenerated prometheus.Counter
	unlockFailures      prometheus.Counter
	operations          *prometheus.CounterVec
	batchInFlight       prometheus.Gauge
	batchDuration       prometheus.Histogram
}

// New registers the collectors with reg.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		identitiesGenerated: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "identities_generated_total",
			Help:      "Owned identities generated or restored.",
		}),
		unlockFailures: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "unlock_failures_total",
			Help:      "Failed attempts to open a sealed identity.",
		}),
		operations: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "operations_total",
			Help:      "Identity and message operations by name and result.",
		}, []string{"op", "result"}),
		batchInFlight: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "batch",
			Name:      "in_flight",
			Help:      "Identities currently being generated by batch workers.",
		}),
		batchDuration: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "batch",
			Name:      "generate_seconds",
			Help:      "Time to generate one identity in a batch.",
			Buckets:   prometheus.ExponentialBuckets(0.001, 2, 12),
		}),
	}
}

// IdentityGenerated counts a new owned identity.
func (m *Metrics) IdentityGenerated() {
	if m == nil {
		return
	}
	m.identitiesGenerated.Inc()
}

// UnlockFailed counts a wrong passphrase.
func (m *Metrics) UnlockFailed() {
	if m == nil {
		return
	}
	m.unlockFailures.Inc()
}

// Operation records the outcome of op.
func (m *Metrics) Operation(op string, err error) {
	if m == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.operations.WithLabelValues(op, result).Inc()
}

// BatchStart marks one batch item as started and returns a func that records
// its completion.
func (m *Metrics) BatchStart() func() {
	if m == nil {
		return func() {}
	}
	m.batchInFlight.Inc()
	start := time.Now()
	return func() {
		m.batchInFlight.Dec()
		m.batchDuration.Observe(time.Since(start).Seconds())
	}
}
