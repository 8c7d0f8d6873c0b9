package search

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lintang-bs/pathcore/pkg/expansion"
	"github.com/lintang-bs/pathcore/pkg/graph"
	"github.com/lintang-bs/pathcore/pkg/heuristic"
	"github.com/lintang-bs/pathcore/pkg/problem"
)

// TestFCHAutoSwitchesFromUpToDownPhase drives the same up-then-down graph
// shape as expansion.TestFCHUpPhaseThenDownPhase, but through the search
// harness end to end: FCH must reach node 1 in the up-phase, hit the local
// apex there (no higher-rank neighbour), and automatically continue in the
// down-phase to reach the target.
func TestFCHAutoSwitchesFromUpToDownPhase(t *testing.T) {
	g := graph.NewXYGraph(3)
	g.SetRank(0, 0)
	g.SetRank(1, 2)
	g.SetRank(2, 1)
	g.AddEdge(0, 1, 4) // up: 0 -> 1
	g.AddEdge(1, 2, 3) // down: 1 -> 2

	fc := NewFCH(expansion.NewFCHPolicy(g), heuristic.Zero{})
	sol := fc.GetPath(&problem.Instance{StartID: 0, TargetID: 2, InstanceID: 1})
	assert.True(t, sol.Found())
	assert.InDelta(t, 7.0, sol.SumOfEdgeCosts, 1e-9)
	assert.Equal(t, []int32{0, 1, 2}, idsToInt32(sol.Path))
}

// TestFCHNextNodeRestartsInUpPhase checks that a node with its own upward
// neighbour is not stuck in the down-phase left over from a prior node's
// local apex.
func TestFCHNextNodeRestartsInUpPhase(t *testing.T) {
	g := graph.NewXYGraph(4)
	g.SetRank(0, 0)
	g.SetRank(1, 3) // apex reached at 1: no higher-rank neighbour of 1
	g.SetRank(2, 1)
	g.SetRank(3, 2)
	g.AddEdge(0, 1, 1) // up: 0 -> 1 (apex)
	g.AddEdge(0, 2, 5) // up: 0 -> 2
	g.AddEdge(2, 3, 1) // up: 2 -> 3 (still ascending, no phase switch needed)
	g.AddEdge(1, 3, 10) // down: 1 -> 3, more expensive than through 2

	fc := NewFCH(expansion.NewFCHPolicy(g), heuristic.Zero{})
	sol := fc.GetPath(&problem.Instance{StartID: 0, TargetID: 3, InstanceID: 1})
	assert.True(t, sol.Found())
	assert.InDelta(t, 6.0, sol.SumOfEdgeCosts, 1e-9)
	assert.Equal(t, []int32{0, 2, 3}, idsToInt32(sol.Path))
}

func TestFCHNoPathWhenDisconnected(t *testing.T) {
	g := graph.NewXYGraph(2)
	g.SetRank(0, 0)
	g.SetRank(1, 1)
	fc := NewFCH(expansion.NewFCHPolicy(g), heuristic.Zero{})
	sol := fc.GetPath(&problem.Instance{StartID: 0, TargetID: 1, InstanceID: 1})
	assert.False(t, sol.Found())
}
