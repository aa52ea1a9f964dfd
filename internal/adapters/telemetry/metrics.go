package telemetry

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.trai.ch/autobuild/internal/core/domain"
	"go.trai.ch/autobuild/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Metrics = (*Metrics)(nil)

const namespace = "autobuild"

// Metrics implements ports.Metrics on a private Prometheus registry.
type Metrics struct {
	registry      *prometheus.Registry
	nodes         *prometheus.CounterVec
	nodeDurations *prometheus.HistogramVec
	phases        *prometheus.HistogramVec
}

// NewMetrics creates the collectors and registers them on a fresh registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		nodes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "nodes_total",
			Help:      "Scheduled nodes by outcome.",
		}, []string{"outcome"}),
		nodeDurations: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "node_duration_seconds",
			Help:      "Wall time per scheduled node.",
			Buckets:   prometheus.ExponentialBuckets(0.1, 4, 8),
		}, []string{"node", "outcome"}),
		phases: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "phase_duration_seconds",
			Help:      "Wall time per build phase.",
			Buckets:   prometheus.ExponentialBuckets(0.1, 4, 8),
		}, []string{"phase", "failed"}),
	}
	m.registry.MustRegister(m.nodes, m.nodeDurations, m.phases)
	return m
}

// Registry exposes the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// ObserveNode records the outcome and duration of one node.
func (m *Metrics) ObserveNode(node string, outcome ports.NodeOutcome, d time.Duration) {
	m.nodes.WithLabelValues(string(outcome)).Inc()
	m.nodeDurations.WithLabelValues(node, string(outcome)).Observe(d.Seconds())
}

// ObservePhase records the duration of one configure, build or relocate phase.
func (m *Metrics) ObservePhase(phase string, failed bool, d time.Duration) {
	m.phases.WithLabelValues(phase, strconv.FormatBool(failed)).Observe(d.Seconds())
}

// WriteTextfile writes all collected metrics to path in the text exposition
// format, for the node_exporter textfile collector.
func (m *Metrics) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrMetricsWriteFailed.Error()), "path", path)
	}
	return nil
}
