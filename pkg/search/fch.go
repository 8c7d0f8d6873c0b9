package search

import (
	"math"
	"time"

	"github.com/lintang-bs/pathcore/pkg/core"
	"github.com/lintang-bs/pathcore/pkg/expansion"
	"github.com/lintang-bs/pathcore/pkg/heuristic"
	"github.com/lintang-bs/pathcore/pkg/problem"
)

// FCH is the forward-driven contraction-hierarchy search harness (spec
// section 4.4). It drives an expansion.FCHPolicy through its up- and
// down-phase, which is the piece FCHPolicy's own doc comment defers to this
// package: at each popped node, FCH first expands the up-phase (climb rank);
// if that yields no successors it is a local apex, so FCH flips the policy
// to the down-phase and re-expands the same node before moving on. The next
// popped node always starts fresh in the up-phase, so the phase never leaks
// across nodes that still have upward neighbours of their own.
type FCH struct {
	policy *expansion.FCHPolicy
	h      heuristic.Func
	open   *core.OpenList
}

// NewFCH constructs an FCH search over policy. policy may be a plain
// expansion.NewFCHPolicy or one built via expansion.NewFCHCPGPolicy; both
// return *expansion.FCHPolicy, so the same harness drives FCH-CPG's phase
// transition too, with no separate driver.
func NewFCH(policy *expansion.FCHPolicy, h heuristic.Func) *FCH {
	return &FCH{policy: policy, h: h, open: core.NewOpenList()}
}

// GetPath runs one query to completion, exactly mirroring FlexibleAStar's
// loop except for the per-node up-then-down expansion above.
func (fc *FCH) GetPath(pi *problem.Instance) problem.Solution {
	start := time.Now()
	fc.policy.Clear()
	fc.open.Clear()

	sol := problem.Solution{SumOfEdgeCosts: math.Inf(1)}

	tx, ty := fc.policy.GetXY(pi.TargetID)

	startNode := fc.policy.GenerateStartNode(pi)
	sx, sy := fc.policy.GetXY(startNode.ID())
	startNode.Init(pi.InstanceID, nil, 0, fc.h.Estimate(sx, sy, tx, ty))
	fc.open.Push(startNode)
	sol.NodesInserted++

	targetNode := fc.policy.GenerateTargetNode(pi)
	targetNode.EnsureFresh(pi.InstanceID)

	for fc.open.Len() > 0 {
		u := fc.open.Pop()
		if u.ID() == targetNode.ID() {
			sol.Path = reconstructPath(u)
			sol.SumOfEdgeCosts = u.G()
			sol.NodesExpanded++
			sol.TimeElapsedMicro = time.Since(start).Microseconds()
			return sol
		}
		u.SetExpanded(true)
		sol.NodesExpanded++

		fc.policy.SetPhase(true)
		fc.policy.Expand(u, pi)
		s, ok := fc.policy.First()
		if !ok {
			// Local apex: no higher-rank neighbour remains. Switch to the
			// down-phase and descend via original edges only.
			fc.policy.SetPhase(false)
			fc.policy.Expand(u, pi)
			s, ok = fc.policy.First()
		}

		for ; ok; s, ok = fc.policy.Next() {
			sol.NodesTouched++
			v := s.Node
			if v.Expanded() {
				continue
			}
			gv := u.G() + s.Cost
			if v.SearchID() != pi.InstanceID {
				vx, vy := fc.policy.GetXY(v.ID())
				v.Init(pi.InstanceID, u, gv, gv+fc.h.Estimate(vx, vy, tx, ty))
				fc.open.Push(v)
				sol.NodesInserted++
			} else if gv < v.G() {
				v.Relax(gv, u)
				if fc.open.Contains(v) {
					fc.open.DecreaseKey(v)
				} else {
					fc.open.Push(v)
				}
				sol.NodesUpdated++
			}
		}
	}

	sol.TimeElapsedMicro = time.Since(start).Microseconds()
	return sol
}

// MemoryFootprint reports the approximate memory held by the underlying
// FCHPolicy's node pool.
func (fc *FCH) MemoryFootprint() uintptr {
	return fc.policy.PoolMem()
}
