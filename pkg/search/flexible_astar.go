// Package search implements the best-first search harnesses that drive the
// expansion policies in pkg/expansion: a unidirectional Flexible A* loop, a
// bidirectional contraction-hierarchy search with meeting-point termination,
// and a two-phase CHASE-like search that defers relaxation of core nodes.
package search

import (
	"math"
	"time"

	"github.com/lintang-bs/pathcore/pkg/core"
	"github.com/lintang-bs/pathcore/pkg/expansion"
	"github.com/lintang-bs/pathcore/pkg/heuristic"
	"github.com/lintang-bs/pathcore/pkg/problem"
)

// FlexibleAStar is the generic unidirectional best-first search harness
// (spec section 4.5). It is parameterised by an expansion policy and a
// heuristic; passing heuristic.Zero degenerates it to Dijkstra. The policy
// owns its own node pool, so the harness itself holds no per-node storage
// beyond the open list.
type FlexibleAStar struct {
	policy expansion.Policy
	h      heuristic.Func
	open   *core.OpenList
	hook   expansion.OnRelaxHook
}

// NewFlexibleAStar constructs a search over policy, using h to estimate
// remaining cost. If policy also implements expansion.OnRelaxHook
// (JPS2/JPS2+), OnRelax is invoked after every relaxation that updates a
// node's parent, matching spec section 4.3.
func NewFlexibleAStar(policy expansion.Policy, h heuristic.Func) *FlexibleAStar {
	fa := &FlexibleAStar{
		policy: policy,
		h:      h,
		open:   core.NewOpenList(),
	}
	if hook, ok := policy.(expansion.OnRelaxHook); ok {
		fa.hook = hook
	}
	return fa
}

// GetPath runs one query to completion. pi.InstanceID must be strictly
// greater than the InstanceID of any prior query run through this policy,
// so stale per-node state from earlier searches is invalidated lazily per
// spec section 4.8.
func (fa *FlexibleAStar) GetPath(pi *problem.Instance) problem.Solution {
	start := time.Now()
	fa.policy.Clear()
	fa.open.Clear()

	sol := problem.Solution{SumOfEdgeCosts: math.Inf(1)}

	tx, ty := fa.policy.GetXY(pi.TargetID)

	startNode := fa.policy.GenerateStartNode(pi)
	sx, sy := fa.policy.GetXY(startNode.ID())
	startNode.Init(pi.InstanceID, nil, 0, fa.h.Estimate(sx, sy, tx, ty))
	fa.open.Push(startNode)
	sol.NodesInserted++

	targetNode := fa.policy.GenerateTargetNode(pi)
	targetNode.EnsureFresh(pi.InstanceID)

	for fa.open.Len() > 0 {
		u := fa.open.Pop()
		if u.ID() == targetNode.ID() {
			sol.Path = reconstructPath(u)
			sol.SumOfEdgeCosts = u.G()
			sol.NodesExpanded++
			sol.TimeElapsedMicro = time.Since(start).Microseconds()
			return sol
		}
		u.SetExpanded(true)
		fa.policy.Expand(u, pi)
		sol.NodesExpanded++

		for s, ok := fa.policy.First(); ok; s, ok = fa.policy.Next() {
			sol.NodesTouched++
			v := s.Node
			if v.Expanded() {
				continue
			}
			gv := u.G() + s.Cost
			if v.SearchID() != pi.InstanceID {
				vx, vy := fa.policy.GetXY(v.ID())
				v.Init(pi.InstanceID, u, gv, gv+fa.h.Estimate(vx, vy, tx, ty))
				fa.open.Push(v)
				sol.NodesInserted++
				if fa.hook != nil {
					fa.hook.OnRelax(v, arrivalDirection(u, v, fa.policy))
				}
			} else if gv < v.G() {
				v.Relax(gv, u)
				if fa.open.Contains(v) {
					fa.open.DecreaseKey(v)
				} else {
					fa.open.Push(v)
				}
				sol.NodesUpdated++
				if fa.hook != nil {
					fa.hook.OnRelax(v, arrivalDirection(u, v, fa.policy))
				}
			}
		}
	}

	sol.TimeElapsedMicro = time.Since(start).Microseconds()
	return sol
}

// poolMemReporter is implemented by every expansion.Policy that owns a
// core.NodePool. MemoryFootprint methods in this package sum every
// contributor's PoolMem rather than dropping any (spec section 13,
// "mem() accounting is summed, not partially discarded").
type poolMemReporter interface {
	PoolMem() uintptr
}

// MemoryFootprint reports the approximate memory held by the search's
// underlying node pool.
func (fa *FlexibleAStar) MemoryFootprint() uintptr {
	if r, ok := fa.policy.(poolMemReporter); ok {
		return r.PoolMem()
	}
	return 0
}

// arrivalDirection derives the compass direction from u to v using the
// policy's coordinate map, for policies whose on-relax hook records it on
// the node (JPS2/JPS2+). Plain JPS never registers a hook, so this is only
// ever called for the "2" variants.
func arrivalDirection(u, v *core.SearchNode, p expansion.Policy) core.Direction {
	ux, uy := p.GetXY(u.ID())
	vx, vy := p.GetXY(v.ID())
	dx, dy := sign(vx-ux), sign(vy-uy)
	switch {
	case dx == 0 && dy < 0:
		return core.DirN
	case dx > 0 && dy < 0:
		return core.DirNE
	case dx > 0 && dy == 0:
		return core.DirE
	case dx > 0 && dy > 0:
		return core.DirSE
	case dx == 0 && dy > 0:
		return core.DirS
	case dx < 0 && dy > 0:
		return core.DirSW
	case dx < 0 && dy == 0:
		return core.DirW
	case dx < 0 && dy < 0:
		return core.DirNW
	default:
		return core.DirNone
	}
}

func sign(v int32) int32 {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}

// reconstructPath walks parent links from n back to the start and returns
// the path in start-to-n order.
func reconstructPath(n *core.SearchNode) []core.NodeID {
	var rev []core.NodeID
	for cur := n; cur != nil; cur = cur.Parent() {
		rev = append(rev, cur.ID())
	}
	path := make([]core.NodeID, len(rev))
	for i, id := range rev {
		path[len(rev)-1-i] = id
	}
	return path
}
