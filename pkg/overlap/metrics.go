package overlap

import "time"

// MetricsCollector receives one call per completed operation. Implement it
// to feed a monitoring system; see pkg/metrics for a Prometheus version.
type MetricsCollector interface {
	// RecordAnalyze is called after every Analyze. err is non-nil when the
	// scan was cancelled.
	RecordAnalyze(vertices, pairs int, duration time.Duration, err error)

	// RecordMaterialize is called after every Materialize.
	RecordMaterialize(status Status, faces int, duration time.Duration)
}

// NoopMetricsCollector discards all metrics.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordAnalyze(int, int, time.Duration, error)   {}
func (NoopMetricsCollector) RecordMaterialize(Status, int, time.Duration) {}
