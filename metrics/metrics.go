// Package metrics exposes Prometheus counters and gauges for a
// gnssiq-synth run: samples produced, sources whose stream has ended,
// and per-request latency.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds a run's Prometheus collectors.
type Metrics struct {
	SamplesWritten   prometheus.Counter
	StreamsEnded     *prometheus.CounterVec
	RequestDuration  prometheus.Histogram
	ActiveSignals    prometheus.Gauge
}

// New registers and returns a fresh Metrics set against reg.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		SamplesWritten: f.NewCounter(prometheus.CounterOpts{
			Namespace: "gnssiq",
			Name:      "samples_written_total",
			Help:      "Total I/Q sample pairs written to output.",
		}),
		StreamsEnded: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "gnssiq",
			Name:      "source_streams_ended_total",
			Help:      "Count of sources whose signal-time warp domain has been exceeded.",
		}, []string{"signal"}),
		RequestDuration: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: "gnssiq",
			Name:      "request_duration_seconds",
			Help:      "Wall-clock time to service one Composite.RequestSamples call.",
			Buckets:   prometheus.DefBuckets,
		}),
		ActiveSignals: f.NewGauge(prometheus.GaugeOpts{
			Namespace: "gnssiq",
			Name:      "active_signals",
			Help:      "Number of signals currently added to the Composite.",
		}),
	}
}
