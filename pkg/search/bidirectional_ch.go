package search

import (
	"math"
	"time"

	"github.com/lintang-bs/pathcore/pkg/core"
	"github.com/lintang-bs/pathcore/pkg/expansion"
	"github.com/lintang-bs/pathcore/pkg/graph"
	"github.com/lintang-bs/pathcore/pkg/problem"
	"github.com/lintang-bs/pathcore/pkg/util"
)

// BidirectionalCH runs a forward and a backward best-first search
// concurrently over a contracted XYGraph, alternating a single pop per
// step, and stops at a provably optimal meeting-point rather than when
// either search reaches the other's start (spec section 4.6). It is
// grounded on the teacher's ShortestPathBiDijkstra
// (pkg/engine/routingalgorithm/bidirectional_dijkstra.go), generalized from
// a hardcoded Dijkstra-over-CH search into one parameterised by any
// expansion.RankedPolicy pair.
type BidirectionalCH struct {
	g       *graph.XYGraph
	fwd     *expansion.BCHPolicy
	bwd     *expansion.BCHPolicy
	fwdOpen *core.OpenList
	bwdOpen *core.OpenList
}

// NewBidirectionalCH constructs a bidirectional CH search over g.
func NewBidirectionalCH(g *graph.XYGraph) *BidirectionalCH {
	return &BidirectionalCH{
		g:       g,
		fwd:     expansion.NewBCHPolicy(g, false),
		bwd:     expansion.NewBCHPolicy(g, true),
		fwdOpen: core.NewOpenList(),
		bwdOpen: core.NewOpenList(),
	}
}

// GetPath runs one bidirectional query to completion.
func (b *BidirectionalCH) GetPath(pi *problem.Instance) problem.Solution {
	start := time.Now()
	b.fwd.Clear()
	b.bwd.Clear()
	b.fwdOpen.Clear()
	b.bwdOpen.Clear()

	sol := problem.Solution{SumOfEdgeCosts: math.Inf(1)}

	fwdStart := b.fwd.Generate(pi.StartID)
	fwdStart.Init(pi.InstanceID, nil, 0, 0)
	b.fwdOpen.Push(fwdStart)
	sol.NodesInserted++

	bwdStart := b.bwd.Generate(pi.TargetID)
	bwdStart.Init(pi.InstanceID, nil, 0, 0)
	b.bwdOpen.Push(bwdStart)
	sol.NodesInserted++

	st := biState{
		fwdOpen: b.fwdOpen, bwdOpen: b.bwdOpen,
		fwd: b.fwd, bwd: b.bwd,
		bestCost: math.Inf(1),
	}
	runBidirectionalAlternation(&st, pi, &sol)

	if math.IsInf(st.bestCost, 1) || st.meetFwd == nil {
		sol.TimeElapsedMicro = time.Since(start).Microseconds()
		return sol
	}

	sol.Path = unpackBidirectionalPath(b.g, st.meetFwd, st.meetBwd)
	sol.SumOfEdgeCosts = st.bestCost
	sol.TimeElapsedMicro = time.Since(start).Microseconds()
	return sol
}

// MemoryFootprint reports the summed memory held by the forward and
// backward node pools.
func (b *BidirectionalCH) MemoryFootprint() uintptr {
	return b.fwd.PoolMem() + b.bwd.PoolMem()
}

// biState carries one bidirectional alternation's mutable progress, shared
// between plain BidirectionalCH and phase 2 of ChaseSearch so both run the
// exact same meeting-point logic (spec section 4.6).
type biState struct {
	fwdOpen, bwdOpen *core.OpenList
	fwd, bwd         *expansion.BCHPolicy
	bestCost         float64
	meetFwd, meetBwd *core.SearchNode
}

// runBidirectionalAlternation pops a single node per step, alternating
// forward/backward starting with forward, relaxing successors and probing
// the opposite direction's node for a candidate meeting point, until the
// smaller of the two open-set top f-values is at least st.bestCost.
func runBidirectionalAlternation(st *biState, pi *problem.Instance, sol *problem.Solution) {
	turnForward := true
	for st.fwdOpen.Len() > 0 || st.bwdOpen.Len() > 0 {
		frontier, other := st.fwdOpen, st.bwdOpen
		policy, otherPolicy := st.fwd, st.bwd
		if !turnForward {
			frontier, other = st.bwdOpen, st.fwdOpen
			policy, otherPolicy = st.bwd, st.fwd
		}

		if frontier.Len() == 0 || frontier.Peek().F() >= st.bestCost {
			if other.Len() == 0 || other.Peek().F() >= st.bestCost {
				return
			}
			turnForward = !turnForward
			continue
		}

		u := frontier.Pop()
		u.SetExpanded(true)
		policy.Expand(u, pi)
		sol.NodesExpanded++

		for s, ok := policy.First(); ok; s, ok = policy.Next() {
			sol.NodesTouched++
			v := s.Node
			gv := u.G() + s.Cost
			if v.SearchID() != pi.InstanceID {
				v.Init(pi.InstanceID, u, gv, gv)
				frontier.Push(v)
				sol.NodesInserted++
			} else if gv < v.G() {
				v.Relax(gv, u)
				if frontier.Contains(v) {
					frontier.DecreaseKey(v)
				} else {
					frontier.Push(v)
				}
				sol.NodesUpdated++
			} else {
				continue
			}

			opp := otherPolicy.Generate(v.ID())
			opp.EnsureFresh(pi.InstanceID)
			if opp.SearchID() == pi.InstanceID && !math.IsInf(opp.G(), 1) {
				mu := v.G() + opp.G()
				if mu < st.bestCost {
					st.bestCost = mu
					if turnForward {
						st.meetFwd, st.meetBwd = v, opp
					} else {
						st.meetFwd, st.meetBwd = opp, v
					}
				}
			}
		}

		turnForward = !turnForward
	}
}

// unpackBidirectionalPath walks the forward parent chain from meetFwd back
// to the forward start, the backward parent chain from meetBwd back to the
// backward start (i.e. the target), reverses the second half, and unpacks
// any shortcut edge along the way into its two constituent edges (spec
// section 13, "CH shortcut unpacking"), recursively, since a shortcut's
// removed edges can themselves be shortcuts.
func unpackBidirectionalPath(g *graph.XYGraph, meetFwd, meetBwd *core.SearchNode) []core.NodeID {
	var fwdHalf []core.NodeID
	for cur := meetFwd; cur != nil; cur = cur.Parent() {
		fwdHalf = append(fwdHalf, cur.ID())
	}
	// fwdHalf is meet -> ... -> start; reverse to start -> ... -> meet.
	util.ReverseG(fwdHalf)

	var bwdHalf []core.NodeID
	for cur := meetBwd; cur != nil; cur = cur.Parent() {
		bwdHalf = append(bwdHalf, cur.ID())
	}
	// bwdHalf is meet -> ... -> target already, backward-search parent
	// links run from the target toward higher rank, same as forward.

	packed := make([]core.NodeID, 0, len(fwdHalf)+len(bwdHalf))
	packed = append(packed, fwdHalf...)
	if len(bwdHalf) > 0 {
		packed = append(packed, bwdHalf[1:]...)
	}

	return unpackShortcuts(g, packed)
}

// unpackShortcuts expands every shortcut edge along a sequence of adjacent
// node ids into the real edges it replaces, following RemovedEdgeOne (into
// u's OutEdges) and RemovedEdgeTwo (into v's OutEdges) recursively until
// only non-shortcut edges remain.
func unpackShortcuts(g *graph.XYGraph, path []core.NodeID) []core.NodeID {
	if len(path) < 2 {
		return path
	}
	out := []core.NodeID{path[0]}
	for i := 0; i < len(path)-1; i++ {
		u, w := path[i], path[i+1]
		edge, ok := findEdge(g, u, w)
		if !ok {
			out = append(out, w)
			continue
		}
		out = append(out, unpackEdge(g, u, edge)...)
	}
	return out
}

// findEdge locates the out-edge from u to w, preferring the cheapest if
// there are parallel edges.
func findEdge(g *graph.XYGraph, u, w core.NodeID) (graph.Edge, bool) {
	best := graph.Edge{}
	found := false
	for _, e := range g.OutEdges(u) {
		if e.Head == w && (!found || e.Cost < best.Cost) {
			best = e
			found = true
		}
	}
	return best, found
}

// unpackEdge returns the sequence of node ids traversed by edge (excluding
// its tail u, which the caller already appended), recursively expanding
// shortcuts.
func unpackEdge(g *graph.XYGraph, u core.NodeID, e graph.Edge) []core.NodeID {
	if !e.IsShortcut {
		return []core.NodeID{e.Head}
	}
	one := g.OutEdgeAt(u, e.RemovedEdgeOne)
	mid := one.Head
	two := g.OutEdgeAt(mid, e.RemovedEdgeTwo)
	result := unpackEdge(g, u, one)
	result = append(result, unpackEdge(g, mid, two)...)
	return result
}
