// SPDX-License-Identifier: MIT

// Package metrics exports estimator runs as Prometheus metrics.
//
// Observer implements gcm.Observer; register it on any prometheus.Registerer
// and either scrape the registry or dump it with WriteTextfile for the node
// exporter's textfile collector.
package metrics

import (
	"strconv"

	"github.com/katalvlaran/sbdet/gcm"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "sbdet"

// Observer records estimator runs.
type Observer struct {
	runs       *prometheus.CounterVec
	solves     prometheus.Counter
	iterations prometheus.Histogram
	lastError  prometheus.Gauge
	objective  prometheus.Gauge
	duration   prometheus.Histogram
	nodes      prometheus.Gauge
	snapshots  prometheus.Gauge
}

var _ gcm.Observer = (*Observer)(nil)

// NewObserver creates the estimator collectors and registers them on reg.
// A nil reg leaves them unregistered. Registering twice on the same
// registry panics, as promauto does.
func NewObserver(reg prometheus.Registerer) *Observer {
	f := promauto.With(reg)

	return &Observer{
		runs: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "estimator_runs_total",
			Help:      "Completed estimator runs",
		}, []string{"solver", "converged"}),
		solves: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "estimator_solves_total",
			Help:      "QP solves across all runs",
		}),
		iterations: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "estimator_iterations",
			Help:      "QP solves per run",
			Buckets:   prometheus.LinearBuckets(1, 1, 12),
		}),
		lastError: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "estimator_last_error",
			Help:      "L1 change of the final iteration of the latest run",
		}),
		objective: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "estimator_objective",
			Help:      "QP objective of the final solve of the latest run",
		}),
		duration: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "estimator_duration_seconds",
			Help:      "Wall time per run",
			Buckets:   prometheus.ExponentialBuckets(0.001, 4, 10),
		}),
		nodes: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "estimator_nodes",
			Help:      "Node count N of the latest run",
		}),
		snapshots: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "estimator_snapshots",
			Help:      "Snapshot count T of the latest run",
		}),
	}
}

// OnStart implements gcm.Observer.
func (o *Observer) OnStart(n, t, _ int) {
	o.nodes.Set(float64(n))
	o.snapshots.Set(float64(t))
}

// OnIteration implements gcm.Observer.
func (o *Observer) OnIteration(_ int, err, _ float64) {
	o.solves.Inc()
	o.lastError.Set(err)
}

// OnFinish implements gcm.Observer.
func (o *Observer) OnFinish(tr *gcm.Trace) {
	if tr == nil {
		return
	}
	o.runs.WithLabelValues(tr.Solver, strconv.FormatBool(tr.Converged)).Inc()
	o.iterations.Observe(float64(tr.Iterations))
	o.lastError.Set(tr.LastError())
	o.objective.Set(tr.Objective)
	o.duration.Observe(tr.Elapsed.Seconds())
}

// WriteTextfile writes every metric of g to path in the text exposition
// format, atomically.
func WriteTextfile(path string, g prometheus.Gatherer) error {
	return prometheus.WriteToTextfile(path, g)
}
