package internal

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// MetricsConfig configures the Prometheus metrics of a runtime.
type MetricsConfig struct {
	// Namespace is the metrics namespace (default: "vars").
	Namespace string

	// Subsystem is the metrics subsystem (default: "").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer
}

// Metrics holds the Prometheus collectors of a runtime. A nil *Metrics records nothing.
type Metrics struct {
	applies       prometheus.Counter
	passes        prometheus.Counter
	writes        *prometheus.CounterVec
	hooks         prometheus.Counter
	animations    prometheus.Gauge
	applyDuration prometheus.Histogram
}

const (
	WriteAccepted  = "accepted"
	WriteRejected  = "rejected"
	WriteUnchanged = "unchanged"
)

// NewMetrics registers the runtime collectors on config.Registry.
// Collectors already registered there are reused, so it can be called again
// on the same registry.
func NewMetrics(config MetricsConfig) *Metrics {
	if config.Namespace == "" {
		config.Namespace = "vars"
	}
	if config.Registry == nil {
		config.Registry = prometheus.DefaultRegisterer
	}

	reg := config.Registry

	return &Metrics{
		applies: register(reg, prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "apply_cycles_total",
			Help:        "Total number of apply cycles",
			ConstLabels: config.ConstLabels,
		})),

		passes: register(reg, prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "apply_passes_total",
			Help:        "Total number of queue drains across all apply cycles",
			ConstLabels: config.ConstLabels,
		})),

		writes: register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "writes_total",
			Help:        "Total number of variable write requests by result",
			ConstLabels: config.ConstLabels,
		}, []string{"result"})),

		hooks: register(reg, prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "hook_calls_total",
			Help:        "Total number of hook invocations",
			ConstLabels: config.ConstLabels,
		})),

		animations: register(reg, prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "running_animations",
			Help:        "Number of animations currently running",
			ConstLabels: config.ConstLabels,
		})),

		applyDuration: register(reg, prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "apply_duration_seconds",
			Help:        "Apply cycle duration in seconds",
			ConstLabels: config.ConstLabels,
			Buckets:     []float64{.00001, .0001, .001, .01, .1, 1},
		})),
	}
}

// register adds c to reg, or returns the equal collector reg already holds.
func register[C prometheus.Collector](reg prometheus.Registerer, c C) C {
	err := reg.Register(c)
	if err == nil {
		return c
	}

	var are prometheus.AlreadyRegisteredError
	if errors.As(err, &are) {
		if existing, ok := are.ExistingCollector.(C); ok {
			return existing
		}
	}
	panic(err)
}

func (m *Metrics) observeApply(passes int, d time.Duration) {
	if m == nil {
		return
	}
	m.applies.Inc()
	m.passes.Add(float64(passes))
	m.applyDuration.Observe(d.Seconds())
}

func (m *Metrics) write(result string) {
	if m == nil {
		return
	}
	m.writes.WithLabelValues(result).Inc()
}

func (m *Metrics) hookCalls(n int) {
	if m == nil || n == 0 {
		return
	}
	m.hooks.Add(float64(n))
}

func (m *Metrics) setAnimations(n int) {
	if m == nil {
		return
	}
	m.animations.Set(float64(n))
}
