// Package metrics exposes reactive runtime activity as Prometheus metrics.
//
//	reg := prometheus.NewRegistry()
//	sig.Configure(sig.WithHooks(metrics.New(metrics.WithRegistry(reg))))
package metrics

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	sig "github.com/AnatoleLucet/signals"
)

// Config configures the Prometheus collector.
type Config struct {
	// Namespace is the metrics namespace (default: "sig").
	Namespace string

	// Subsystem is the metrics subsystem (default: "").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Buckets are the histogram buckets for run durations.
	// Default: prometheus.DefBuckets
	Buckets []float64

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer
}

type Option func(*Config)

func WithNamespace(namespace string) Option {
	return func(c *Config) {
		c.Namespace = namespace
	}
}

func WithSubsystem(subsystem string) Option {
	return func(c *Config) {
		c.Subsystem = subsystem
	}
}

func WithConstLabels(labels prometheus.Labels) Option {
	return func(c *Config) {
		c.ConstLabels = labels
	}
}

func WithBuckets(buckets []float64) Option {
	return func(c *Config) {
		c.Buckets = buckets
	}
}

func WithRegistry(registry prometheus.Registerer) Option {
	return func(c *Config) {
		c.Registry = registry
	}
}

func defaultConfig() Config {
	return Config{
		Namespace: "sig",
		Buckets:   prometheus.DefBuckets,
		Registry:  prometheus.DefaultRegisterer,
	}
}

// Collector implements sig.Hooks. One collector can serve many runtimes.
type Collector struct {
	runsTotal    *prometheus.CounterVec
	runDuration  *prometheus.HistogramVec
	errorsTotal  *prometheus.CounterVec
	flushesTotal prometheus.Counter
	flushPasses  prometheus.Histogram
	flushEffects prometheus.Histogram
}

var _ sig.Hooks = (*Collector)(nil)

// New registers the metrics and returns the collector. Registering twice on
// the same registry panics, like any promauto metric.
func New(opts ...Option) *Collector {
	config := defaultConfig()
	for _, opt := range opts {
		opt(&config)
	}

	factory := promauto.With(config.Registry)

	return &Collector{
		runsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "runs_total",
			Help:        "Total number of memo and effect runs",
			ConstLabels: config.ConstLabels,
		}, []string{"kind"}),

		runDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "run_duration_seconds",
			Help:        "Memo and effect run duration in seconds",
			ConstLabels: config.ConstLabels,
			Buckets:     config.Buckets,
		}, []string{"kind"}),

		errorsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "errors_total",
			Help:        "Total number of memo and effect failures",
			ConstLabels: config.ConstLabels,
		}, []string{"kind", "error_type"}),

		flushesTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "flushes_total",
			Help:        "Total number of effect flushes",
			ConstLabels: config.ConstLabels,
		}),

		flushPasses: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "flush_passes",
			Help:        "Passes needed for a flush to settle",
			ConstLabels: config.ConstLabels,
			Buckets:     prometheus.LinearBuckets(1, 1, 10),
		}),

		flushEffects: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "flush_effects",
			Help:        "Effects run by a single flush",
			ConstLabels: config.ConstLabels,
			Buckets:     prometheus.ExponentialBuckets(1, 2, 10),
		}),
	}
}

func (c *Collector) OnRun(_ string, kind sig.Kind, d time.Duration) {
	c.runsTotal.WithLabelValues(kind.String()).Inc()
	c.runDuration.WithLabelValues(kind.String()).Observe(d.Seconds())
}

func (c *Collector) OnError(_ string, kind sig.Kind, err error) {
	c.errorsTotal.WithLabelValues(kind.String(), errorType(err)).Inc()
}

func (c *Collector) OnFlush(passes, effects int, _ time.Duration) {
	c.flushesTotal.Inc()
	c.flushPasses.Observe(float64(passes))
	c.flushEffects.Observe(float64(effects))
}

func errorType(err error) string {
	var cycleErr *sig.CycleError
	var computeErr *sig.ComputeError

	switch {
	case errors.As(err, &cycleErr):
		return "cycle"
	case errors.As(err, &computeErr):
		return "panic"
	default:
		return "other"
	}
}
