// Package telemetry exports pathcore search-statistics as Prometheus
// metrics, grounded on the PrometheusObserver pattern from the
// hupe1980/vecgo observability example: a set of Counter/Histogram fields
// built with prometheus.New* constructors and registered once at
// construction, then updated from a Record call the caller makes after each
// query.
package telemetry

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/lintang-bs/pathcore/pkg/problem"
)

// Recorder exports the per-experiment record fields named in spec section
// "Per-experiment record" (expanded, inserted, updated, touched, elapsed
// micros) as Prometheus counters and a histogram, labelled by algorithm
// name so a single registry can serve queries run against several
// expansion policies.
type Recorder struct {
	nodesExpanded *prometheus.CounterVec
	nodesInserted *prometheus.CounterVec
	nodesUpdated  *prometheus.CounterVec
	nodesTouched  *prometheus.CounterVec
	queriesTotal  *prometheus.CounterVec
	pathNotFound  *prometheus.CounterVec
	latency       *prometheus.HistogramVec
	pathCost      *prometheus.HistogramVec
}

// NewRecorder builds a Recorder and registers its collectors with reg.
func NewRecorder(reg prometheus.Registerer) *Recorder {
	r := &Recorder{
		nodesExpanded: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "pathcore_nodes_expanded_total",
			Help: "Total nodes popped from the open list and expanded.",
		}, []string{"alg"}),
		nodesInserted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "pathcore_nodes_inserted_total",
			Help: "Total nodes freshly inserted into an open list.",
		}, []string{"alg"}),
		nodesUpdated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "pathcore_nodes_updated_total",
			Help: "Total nodes relaxed to a cheaper g-value after insertion.",
		}, []string{"alg"}),
		nodesTouched: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "pathcore_nodes_touched_total",
			Help: "Total successor candidates considered during expansion.",
		}, []string{"alg"}),
		queriesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "pathcore_queries_total",
			Help: "Total queries run, labelled by algorithm.",
		}, []string{"alg"}),
		pathNotFound: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "pathcore_path_not_found_total",
			Help: "Total queries that returned no path.",
		}, []string{"alg"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "pathcore_query_latency_seconds",
			Help:    "Query wall-clock latency.",
			Buckets: prometheus.DefBuckets,
		}, []string{"alg"}),
		pathCost: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "pathcore_path_cost",
			Help:    "Sum of edge costs of the returned path.",
			Buckets: prometheus.ExponentialBuckets(1, 2, 16),
		}, []string{"alg"}),
	}

	reg.MustRegister(
		r.nodesExpanded, r.nodesInserted, r.nodesUpdated, r.nodesTouched,
		r.queriesTotal, r.pathNotFound, r.latency, r.pathCost,
	)
	return r
}

// Record updates every collector from one query's solution.
func (r *Recorder) Record(alg string, sol problem.Solution) {
	r.queriesTotal.WithLabelValues(alg).Inc()
	r.nodesExpanded.WithLabelValues(alg).Add(float64(sol.NodesExpanded))
	r.nodesInserted.WithLabelValues(alg).Add(float64(sol.NodesInserted))
	r.nodesUpdated.WithLabelValues(alg).Add(float64(sol.NodesUpdated))
	r.nodesTouched.WithLabelValues(alg).Add(float64(sol.NodesTouched))
	r.latency.WithLabelValues(alg).Observe(time.Duration(sol.TimeElapsedMicro * int64(time.Microsecond)).Seconds())

	if !sol.Found() {
		r.pathNotFound.WithLabelValues(alg).Inc()
		return
	}
	r.pathCost.WithLabelValues(alg).Observe(sol.SumOfEdgeCosts)
}
