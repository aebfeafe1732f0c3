package http

import (
	"net/http"
	"time"

	"github.com/GNINE11/ProjAutomata-TC/pkg/machine"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics tracks registrations, runs and run latency. The collectors live
// on a private registry so tests can build as many instances as they like.
type Metrics struct {
	registry        *prometheus.Registry
	machinesCreated *prometheus.CounterVec
	runsTotal       *prometheus.CounterVec
	runDuration     *prometheus.HistogramVec
}

// NewMetrics builds the metric set.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()

	m := &Metrics{
		registry: reg,
		machinesCreated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "automata_machines_created_total",
			Help: "Machines registered, by kind.",
		}, []string{"kind"}),
		runsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "automata_runs_total",
			Help: "Acceptance runs, by kind and verdict.",
		}, []string{"kind", "verdict"}),
		runDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "automata_run_duration_seconds",
			Help:    "Acceptance run latency, by kind.",
			Buckets: prometheus.DefBuckets,
		}, []string{"kind"}),
	}

	reg.MustRegister(m.machinesCreated, m.runsTotal, m.runDuration)
	return m
}

// MachineCreated counts a successful registration.
func (m *Metrics) MachineCreated(kind machine.Kind) {
	m.machinesCreated.WithLabelValues(string(kind)).Inc()
}

// RunObserved counts a finished run and records its latency.
func (m *Metrics) RunObserved(kind machine.Kind, verdict machine.Verdict, elapsed time.Duration) {
	m.runsTotal.WithLabelValues(string(kind), string(verdict)).Inc()
	m.runDuration.WithLabelValues(string(kind)).Observe(elapsed.Seconds())
}

// Handler exposes the collectors in Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
