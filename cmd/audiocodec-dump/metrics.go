package main

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/common/version"
)

const metricsNamespace = "audiocodec_dump"

type metrics struct {
	registry *prometheus.Registry

	files    *prometheus.CounterVec
	warnings *prometheus.CounterVec
	duration prometheus.Histogram
}

func newMetrics() *metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(version.NewCollector(metricsNamespace))

	f := promauto.With(reg)

	return &metrics{
		registry: reg,
		files: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "files_total",
			Help:      "Files inspected, by format and result.",
		}, []string{"format", "result"}),
		warnings: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "warnings_total",
			Help:      "Decoder warnings, by stage.",
		}, []string{"stage"}),
		duration: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "inspect_duration_seconds",
			Help:      "Time spent inspecting a single file.",
			Buckets:   prometheus.ExponentialBuckets(0.0005, 4, 8),
		}),
	}
}

func (m *metrics) observe(r result) {
	status := "ok"
	if r.err != nil {
		status = "error"
	}
	m.files.WithLabelValues(r.format.String(), status).Inc()
	m.duration.Observe(r.elapsed.Seconds())

	if r.report == nil {
		return
	}
	for _, w := range r.report.Warnings() {
		m.warnings.WithLabelValues(w.Stage).Inc()
	}
}

// writeTextfile writes all metrics in the node exporter textfile format.
func (m *metrics) writeTextfile(path string) error {
	return prometheus.WriteToTextfile(path, m.registry)
}
