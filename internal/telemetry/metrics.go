// Package telemetry records metrics and traces for detection passes and
// version catalog loads.
package telemetry

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "platdetect"

// Outcome labels for detection metrics.
const (
	OutcomeMatched      = "matched"
	OutcomeFailed       = "failed"
	OutcomeUndetermined = "undetermined"
)

// Registry holds every platdetect collector. It is separate from the default
// registry so textfile output contains only platdetect series.
var Registry = prometheus.NewRegistry()

var (
	metricDetections = promauto.With(Registry).NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "detections_total",
		Help:      "Detector evaluations by platform and outcome.",
	}, []string{"platform", "outcome"})

	metricPasses = promauto.With(Registry).NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "detection_passes_total",
		Help:      "Completed detection passes by outcome.",
	}, []string{"outcome"})

	metricCatalogLoads = promauto.With(Registry).NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "catalog_loads_total",
		Help:      "Version catalog loads by platform, source and result.",
	}, []string{"platform", "source", "result"})

	metricCatalogLoadSeconds = promauto.With(Registry).NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "catalog_load_seconds",
		Help:      "Time spent building a version catalog.",
		Buckets:   []float64{0.001, 0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10},
	}, []string{"platform", "source"})
)

// RecordDetection counts one detector evaluation.
func RecordDetection(platform, outcome string) {
	metricDetections.WithLabelValues(platform, outcome).Inc()
}

// RecordPass counts one orchestrator pass.
func RecordPass(outcome string) {
	metricPasses.WithLabelValues(outcome).Inc()
}

// RecordCatalogLoad counts a catalog load and observes its duration.
func RecordCatalogLoad(platform, source string, err error, elapsed time.Duration) {
	result := "success"
	if err != nil {
		result = "error"
	}
	metricCatalogLoads.WithLabelValues(platform, source, result).Inc()
	metricCatalogLoadSeconds.WithLabelValues(platform, source).Observe(elapsed.Seconds())
}

// WriteTextfile writes all platdetect metrics to path in the text exposition
// format understood by the node exporter textfile collector.
func WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, Registry)
}
