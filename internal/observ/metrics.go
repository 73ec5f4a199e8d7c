package observ

import (
	"fmt"
	"io"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
)

// Metrics holds the pipeline's Prometheus instruments on a private registry.
type Metrics struct {
	registry      *prometheus.Registry
	phaseDuration *prometheus.HistogramVec
	phaseFailures *prometheus.CounterVec
	warnings      *prometheus.CounterVec
}

// NewMetrics registers the instruments on registry, or on a fresh registry
// when nil.
func NewMetrics(registry *prometheus.Registry) *Metrics {
	if registry == nil {
		registry = prometheus.NewRegistry()
	}
	m := &Metrics{
		registry: registry,
		phaseDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "orbit",
			Name:      "phase_duration_seconds",
			Help:      "Wall time spent in a single phase execution.",
			Buckets:   []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		}, []string{"phase"}),
		phaseFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "orbit",
			Name:      "phase_failures_total",
			Help:      "Phase executions that returned a diagnostic.",
		}, []string{"phase", "kind"}),
		warnings: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "orbit",
			Name:      "warnings_total",
			Help:      "Warnings pushed to a session.",
		}, []string{"phase"}),
	}
	registry.MustRegister(m.phaseDuration, m.phaseFailures, m.warnings)
	return m
}

// ObservePhase records one execution of phase.
func (m *Metrics) ObservePhase(phase string, seconds float64) {
	if m == nil {
		return
	}
	m.phaseDuration.WithLabelValues(phase).Observe(seconds)
}

// PhaseFailed counts a failure of the given diagnostic kind.
func (m *Metrics) PhaseFailed(phase, kind string) {
	if m == nil {
		return
	}
	m.phaseFailures.WithLabelValues(phase, kind).Inc()
}

// WarningsPushed adds n warnings attributed to phase.
func (m *Metrics) WarningsPushed(phase string, n int) {
	if m == nil || n <= 0 {
		return
	}
	m.warnings.WithLabelValues(phase).Add(float64(n))
}

// Registry exposes the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// WriteText writes all metric families in the Prometheus text format.
func (m *Metrics) WriteText(w io.Writer) error {
	families, err := m.registry.Gather()
	if err != nil {
		return fmt.Errorf("gather metrics: %w", err)
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return fmt.Errorf("write metric %s: %w", mf.GetName(), err)
		}
	}
	return nil
}
