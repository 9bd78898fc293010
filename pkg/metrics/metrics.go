// Package metrics exports overlap analysis and selection activity to
// Prometheus.
package metrics

import (
	"time"

	"github.com/chazu/weightscan/pkg/overlap"
	"github.com/prometheus/client_golang/prometheus"
)

// Collector implements overlap.MetricsCollector on top of Prometheus
// collectors registered with a caller-supplied registerer.
type Collector struct {
	analyses        *prometheus.CounterVec
	analyzeDuration prometheus.Histogram
	vertices        prometheus.Counter
	pairs           prometheus.Gauge

	selections          *prometheus.CounterVec
	materializeDuration prometheus.Histogram
	faces               prometheus.Gauge
}

var _ overlap.MetricsCollector = (*Collector)(nil)

// NewCollector creates a Collector and registers it with reg. A nil reg
// registers with prometheus.DefaultRegisterer.
func NewCollector(reg prometheus.Registerer) (*Collector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	c := &Collector{
		analyses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "weightscan_analyses_total",
			Help: "Overlap analyses run, by result",
		}, []string{"result"}),
		analyzeDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "weightscan_analyze_duration_seconds",
			Help:    "Time spent scanning vertices for overlaps",
			Buckets: prometheus.DefBuckets,
		}),
		vertices: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "weightscan_vertices_scanned_total",
			Help: "Vertices visited by overlap analyses",
		}),
		pairs: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "weightscan_overlap_pairs",
			Help: "Overlap pairs found by the most recent completed analysis",
		}),
		selections: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "weightscan_selections_total",
			Help: "Face selections materialized, by status",
		}, []string{"status"}),
		materializeDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "weightscan_materialize_duration_seconds",
			Help:    "Time spent turning selected overlaps into faces",
			Buckets: prometheus.DefBuckets,
		}),
		faces: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "weightscan_selected_faces",
			Help: "Faces in the most recent materialized selection",
		}),
	}
	for _, col := range []prometheus.Collector{
		c.analyses, c.analyzeDuration, c.vertices, c.pairs,
		c.selections, c.materializeDuration, c.faces,
	} {
		if err := reg.Register(col); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// RecordAnalyze records one analysis run. Cancelled runs are counted but
// leave the pair gauge untouched.
func (c *Collector) RecordAnalyze(vertices, pairs int, d time.Duration, err error) {
	c.analyzeDuration.Observe(d.Seconds())
	c.vertices.Add(float64(vertices))
	if err != nil {
		c.analyses.WithLabelValues("cancelled").Inc()
		return
	}
	c.analyses.WithLabelValues("ok").Inc()
	c.pairs.Set(float64(pairs))
}

// RecordMaterialize records one materialization.
func (c *Collector) RecordMaterialize(status overlap.Status, faces int, d time.Duration) {
	c.selections.WithLabelValues(status.String()).Inc()
	c.materializeDuration.Observe(d.Seconds())
	c.faces.Set(float64(faces))
}
