// Package metric defines the pipeline's Prometheus metrics and the registry
// that owns them.
package metric

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

const namespace = "powerframe"

// Metrics contains all pipeline metrics
type Metrics struct {
	// Codec metrics
	FramesEncoded    prometheus.Counter
	FramesRead       prometheus.Counter
	ChecksumFailures prometheus.Counter

	// Classification metrics
	EssentialFrames prometheus.Counter
	FlagsRaised     *prometheus.CounterVec
	SignalsDerived  *prometheus.CounterVec
}

// NewMetrics creates a new Metrics instance with all pipeline metrics
func NewMetrics() *Metrics {
	return &Metrics{
		FramesEncoded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "codec",
			Name:      "frames_encoded_total",
			Help:      "Total number of frames encoded to the wire file",
		}),
		FramesRead: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "codec",
			Name:      "frames_read_total",
			Help:      "Total number of frames decoded from the wire file",
		}),
		ChecksumFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "codec",
			Name:      "checksum_failures_total",
			Help:      "Total number of frames rejected for checksum mismatch",
		}),
		EssentialFrames: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "classify",
			Name:      "essential_frames_total",
			Help:      "Total number of frames classified essential",
		}),
		FlagsRaised: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "classify",
			Name:      "flags_raised_total",
			Help:      "Essential-frame flags by rule",
		}, []string{"flag"}),
		SignalsDerived: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "classify",
			Name:      "signals_derived_total",
			Help:      "Derived actuator signals by type",
		}, []string{"signal"}),
	}
}

// Registry manages the registration and lifecycle of metrics
type Registry struct {
	prometheusRegistry *prometheus.Registry

	// Metrics holds the registered pipeline metrics.
	Metrics *Metrics
}

// NewRegistry creates a registry with the pipeline metrics and Go runtime
// collectors registered.
func NewRegistry() *Registry {
	r := &Registry{
		prometheusRegistry: prometheus.NewRegistry(),
		Metrics:            NewMetrics(),
	}

	r.prometheusRegistry.MustRegister(
		r.Metrics.FramesEncoded,
		r.Metrics.FramesRead,
		r.Metrics.ChecksumFailures,
		r.Metrics.EssentialFrames,
		r.Metrics.FlagsRaised,
		r.Metrics.SignalsDerived,
	)

	r.prometheusRegistry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return r
}

// PrometheusRegistry returns the underlying Prometheus registry
func (r *Registry) PrometheusRegistry() *prometheus.Registry {
	return r.prometheusRegistry
}
