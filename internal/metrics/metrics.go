// Package metrics provides Prometheus metrics for cutlist generation and the HTTP API.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder owns a set of collectors registered on one registry.
// A nil *Recorder is valid and records nothing.
type Recorder struct {
	registry *prometheus.Registry

	generationsTotal   *prometheus.CounterVec
	generationDuration prometheus.Histogram
	partsTotal         *prometheus.CounterVec
	diagnosticsTotal   *prometheus.CounterVec
	commandsTotal      *prometheus.CounterVec
	requestsTotal      *prometheus.CounterVec
	requestDuration    *prometheus.HistogramVec
}

// New creates a recorder on a fresh registry.
func New() *Recorder {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Recorder{
		registry: reg,

		generationsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "slabcut_generations_total",
				Help: "Total number of cutlist generations",
			},
			[]string{"scope"},
		),
		generationDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "slabcut_generation_duration_seconds",
				Help:    "Time taken to generate a cutlist",
				Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
			},
		),
		partsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "slabcut_part_instances_total",
				Help: "Total number of part instances listed, by material type",
			},
			[]string{"material_type"},
		),
		diagnosticsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "slabcut_diagnostics_total",
				Help: "Total number of diagnostics attached to reports",
			},
			[]string{"level", "key"},
		),
		commandsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "slabcut_update_commands_total",
				Help: "Total number of scene update commands",
			},
			[]string{"command", "status"},
		),
		requestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "slabcut_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"route", "status"},
		),
		requestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "slabcut_http_request_duration_seconds",
				Help:    "Duration of HTTP requests",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"route"},
		),
	}
}

// Registry exposes the registry for the /metrics handler.
func (r *Recorder) Registry() *prometheus.Registry {
	if r == nil {
		return nil
	}
	return r.registry
}

// RecordGeneration records one cutlist generation.
func (r *Recorder) RecordGeneration(scope string, duration time.Duration) {
	if r == nil {
		return
	}
	r.generationsTotal.WithLabelValues(scope).Inc()
	r.generationDuration.Observe(duration.Seconds())
}

// RecordParts adds part instances of one material type.
func (r *Recorder) RecordParts(materialType string, count int) {
	if r == nil || count == 0 {
		return
	}
	r.partsTotal.WithLabelValues(materialType).Add(float64(count))
}

// RecordDiagnostic counts an error, warning or tip key.
func (r *Recorder) RecordDiagnostic(level, key string) {
	if r == nil {
		return
	}
	r.diagnosticsTotal.WithLabelValues(level, key).Inc()
}

// RecordCommand counts an update command. Status is "applied" or "noop".
func (r *Recorder) RecordCommand(command, status string) {
	if r == nil {
		return
	}
	r.commandsTotal.WithLabelValues(command, status).Inc()
}

// RecordRequest records an HTTP request.
func (r *Recorder) RecordRequest(route, status string, duration time.Duration) {
	if r == nil {
		return
	}
	r.requestsTotal.WithLabelValues(route, status).Inc()
	r.requestDuration.WithLabelValues(route).Observe(duration.Seconds())
}

// Timer measures the duration of an operation.
type Timer struct {
	start time.Time
}

// NewTimer starts a timer.
func NewTimer() *Timer {
	return &Timer{start: time.Now()}
}

// Duration returns the elapsed time since the timer was created.
func (t *Timer) Duration() time.Duration {
	return time.Since(t.start)
}
