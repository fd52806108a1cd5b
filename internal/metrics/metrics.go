// Package metrics records the figures of one aggregation run in Prometheus
// form and writes them in the node_exporter textfile format.
package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/specialistvlad/stackagg/internal/pipeline"
	"github.com/specialistvlad/stackagg/internal/report"
)

const namespace = "stackagg"

// Stages timed by ObserveStage.
const (
	StageLoad      = "load"
	StageAggregate = "aggregate"
	StageRender    = "render"
)

// Run holds the metrics of a single run on a private registry, so runs in
// the same process never share series.
type Run struct {
	registry *prometheus.Registry

	// ReportsTotal counts ingested reports. Labels: stacktrace (present, missing)
	ReportsTotal *prometheus.CounterVec
	// UniqueRoots is the number of distinct starting frames.
	UniqueRoots prometheus.Gauge
	// Edges is the number of distinct edges in the aggregation graph.
	Edges prometheus.Gauge
	// Paths is the number of maximal paths over all roots.
	Paths prometheus.Gauge
	// LongestPath is the length of the longest maximal path.
	LongestPath prometheus.Gauge
	// StageDurationSeconds is the wall time of each stage. Labels: stage
	StageDurationSeconds *prometheus.GaugeVec
}

// NewRun creates and registers the metrics of one run.
func NewRun() *Run {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Run{
		registry: reg,
		ReportsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reports_total",
			Help:      "Reports ingested, by whether they carried a stacktrace.",
		}, []string{"stacktrace"}),
		UniqueRoots: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "unique_roots",
			Help:      "Distinct starting frames in the aggregation graph.",
		}),
		Edges: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "graph_edges",
			Help:      "Distinct edges in the aggregation graph.",
		}),
		Paths: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "paths",
			Help:      "Maximal paths over all roots.",
		}),
		LongestPath: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "longest_path_frames",
			Help:      "Frames in the longest maximal path.",
		}),
		StageDurationSeconds: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "stage_duration_seconds",
			Help:      "Wall time spent in each stage of the run.",
		}, []string{"stage"}),
	}
}

// Registry returns the run's private registry.
func (r *Run) Registry() *prometheus.Registry {
	return r.registry
}

// ObserveReports counts the ingested reports.
func (r *Run) ObserveReports(reports []report.Report) {
	for _, rep := range reports {
		if len(rep.Frames()) == 0 {
			r.ReportsTotal.WithLabelValues("missing").Inc()
		} else {
			r.ReportsTotal.WithLabelValues("present").Inc()
		}
	}
}

// ObserveResult records the shape of the aggregation result.
func (r *Run) ObserveResult(res *pipeline.Result) {
	paths, longest := 0, 0
	for _, rr := range res.Roots {
		paths += len(rr.Paths)
		for _, p := range rr.Paths {
			longest = max(longest, len(p))
		}
	}

	r.UniqueRoots.Set(float64(len(res.Roots)))
	r.Edges.Set(float64(res.Graph().EdgeCount()))
	r.Paths.Set(float64(paths))
	r.LongestPath.Set(float64(longest))
}

// ObserveStage records how long stage took.
func (r *Run) ObserveStage(stage string, d time.Duration) {
	r.StageDurationSeconds.WithLabelValues(stage).Set(d.Seconds())
}

// WriteTextfile atomically writes every metric of the run to path.
func (r *Run) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return fmt.Errorf("failed to write metrics to %s: %w", path, err)
	}
	return nil
}
