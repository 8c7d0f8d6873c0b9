package telemetry

import (
	"math"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"

	"github.com/lintang-bs/pathcore/pkg/core"
	"github.com/lintang-bs/pathcore/pkg/problem"
)

func counterValue(t *testing.T, c *prometheus.CounterVec, alg string) float64 {
	t.Helper()
	var m dto.Metric
	assert.NoError(t, c.WithLabelValues(alg).Write(&m))
	return m.GetCounter().GetValue()
}

func TestRecordFoundPathIncrementsCounters(t *testing.T) {
	reg := prometheus.NewRegistry()
	r := NewRecorder(reg)

	sol := problem.Solution{
		Path:             []core.NodeID{0, 1, 2},
		SumOfEdgeCosts:   4.5,
		NodesExpanded:    3,
		NodesInserted:    5,
		NodesUpdated:     1,
		NodesTouched:     8,
		TimeElapsedMicro: 250,
	}

	r.Record("astar", sol)

	assert.Equal(t, 1.0, counterValue(t, r.queriesTotal, "astar"))
	assert.Equal(t, 3.0, counterValue(t, r.nodesExpanded, "astar"))
	assert.Equal(t, 5.0, counterValue(t, r.nodesInserted, "astar"))
	assert.Equal(t, 1.0, counterValue(t, r.nodesUpdated, "astar"))
	assert.Equal(t, 8.0, counterValue(t, r.nodesTouched, "astar"))
	assert.Equal(t, 0.0, counterValue(t, r.pathNotFound, "astar"))
}

func TestRecordNoPathIncrementsNotFoundCounter(t *testing.T) {
	reg := prometheus.NewRegistry()
	r := NewRecorder(reg)

	sol := problem.Solution{SumOfEdgeCosts: math.Inf(1)}
	r.Record("bch", sol)

	assert.Equal(t, 1.0, counterValue(t, r.pathNotFound, "bch"))
	assert.Equal(t, 1.0, counterValue(t, r.queriesTotal, "bch"))
}
