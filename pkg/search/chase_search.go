package search

import (
	"math"
	"time"

	"github.com/lintang-bs/pathcore/pkg/core"
	"github.com/lintang-bs/pathcore/pkg/expansion"
	"github.com/lintang-bs/pathcore/pkg/graph"
	"github.com/lintang-bs/pathcore/pkg/problem"
)

// coreFraction is the rank threshold defining the "core" of a contracted
// graph: nodes with rank >= coreFraction*numNodes (spec section 4.7).
const coreFraction = 0.95

// ChaseSearch is a two-phase bidirectional CH search grounded on
// original_source/src/search/chase_search.h. Phase 1 runs bidirectional CH
// but defers pushing core-rank nodes onto the open set, relaxing them in
// place into a per-direction "norelax" list instead; a lower bound derived
// from those deferred relaxations often proves optimality without ever
// searching the core. Phase 2, entered only when phase 1's bound cannot
// rule out a path through the core, seeds the open sets from the norelax
// lists and finishes as plain BidirectionalCH.
type ChaseSearch struct {
	g        *graph.XYGraph
	fwd      *expansion.BCHPolicy
	bwd      *expansion.BCHPolicy
	fwdOpen  *core.OpenList
	bwdOpen  *core.OpenList
	coreRank int32
}

// NewChaseSearch constructs a two-phase CH search over g.
func NewChaseSearch(g *graph.XYGraph) *ChaseSearch {
	return &ChaseSearch{
		g:        g,
		fwd:      expansion.NewBCHPolicy(g, false),
		bwd:      expansion.NewBCHPolicy(g, true),
		fwdOpen:  core.NewOpenList(),
		bwdOpen:  core.NewOpenList(),
		coreRank: coreRankThreshold(g),
	}
}

func coreRankThreshold(g *graph.XYGraph) int32 {
	return int32(math.Ceil(coreFraction * float64(g.NumNodes())))
}

func (c *ChaseSearch) inCore(id core.NodeID) bool {
	return c.g.Rank(id) >= c.coreRank
}

// norelaxSet tracks, per direction, the deferred core nodes and the
// smallest g seen among them (core_lb in spec terms).
type norelaxSet struct {
	nodes map[core.NodeID]*core.SearchNode
	lb    float64
}

func newNorelaxSet() *norelaxSet {
	return &norelaxSet{nodes: make(map[core.NodeID]*core.SearchNode), lb: math.Inf(1)}
}

func (n *norelaxSet) add(v *core.SearchNode) {
	n.nodes[v.ID()] = v
	if v.G() < n.lb {
		n.lb = v.G()
	}
}

// GetPath runs one two-phase query to completion.
func (c *ChaseSearch) GetPath(pi *problem.Instance) problem.Solution {
	start := time.Now()
	c.fwd.Clear()
	c.bwd.Clear()
	c.fwdOpen.Clear()
	c.bwdOpen.Clear()

	sol := problem.Solution{SumOfEdgeCosts: math.Inf(1)}

	fwdStart := c.fwd.Generate(pi.StartID)
	fwdStart.Init(pi.InstanceID, nil, 0, 0)
	c.fwdOpen.Push(fwdStart)
	sol.NodesInserted++

	bwdStart := c.bwd.Generate(pi.TargetID)
	bwdStart.Init(pi.InstanceID, nil, 0, 0)
	c.bwdOpen.Push(bwdStart)
	sol.NodesInserted++

	st := &biState{
		fwdOpen: c.fwdOpen, bwdOpen: c.bwdOpen,
		fwd: c.fwd, bwd: c.bwd,
		bestCost: math.Inf(1),
	}
	fwdNorelax := newNorelaxSet()
	bwdNorelax := newNorelaxSet()

	c.phase1(pi, &sol, st, fwdNorelax, bwdNorelax)

	fwdLB := math.Min(fwdNorelax.lb, topF(c.fwdOpen))
	bwdLB := math.Min(bwdNorelax.lb, topF(c.bwdOpen))
	bestBound := math.Min(fwdLB, bwdLB)

	switch {
	case bestBound >= st.bestCost:
		// Optimal path (if any) never enters the core; phase 1's result
		// already stands.
	case math.IsInf(fwdNorelax.lb, 1) || math.IsInf(bwdNorelax.lb, 1):
		// One direction never reaches the core, so no path through it
		// exists to reconsider; phase 1's result stands.
	default:
		c.phase2(pi, &sol, st, fwdNorelax, bwdNorelax)
	}

	if math.IsInf(st.bestCost, 1) || st.meetFwd == nil {
		sol.TimeElapsedMicro = time.Since(start).Microseconds()
		return sol
	}

	sol.Path = unpackBidirectionalPath(c.g, st.meetFwd, st.meetBwd)
	sol.SumOfEdgeCosts = st.bestCost
	sol.TimeElapsedMicro = time.Since(start).Microseconds()
	return sol
}

// MemoryFootprint reports the summed memory held by the forward and
// backward node pools.
func (c *ChaseSearch) MemoryFootprint() uintptr {
	return c.fwd.PoolMem() + c.bwd.PoolMem()
}

func topF(open *core.OpenList) float64 {
	if open.Len() == 0 {
		return math.Inf(1)
	}
	return open.Peek().F()
}

// phase1 mirrors runBidirectionalAlternation but diverts successors whose
// rank falls within the core into the direction's norelax set instead of
// pushing them onto the open set. Diverted nodes are still relaxed in
// place, so phase 2 (if it runs) sees their best known g.
func (c *ChaseSearch) phase1(
	pi *problem.Instance, sol *problem.Solution, st *biState,
	fwdNorelax, bwdNorelax *norelaxSet,
) {
	turnForward := true
	for c.fwdOpen.Len() > 0 || c.bwdOpen.Len() > 0 {
		frontier, other := c.fwdOpen, c.bwdOpen
		policy, otherPolicy := c.fwd, c.bwd
		norelax := fwdNorelax
		if !turnForward {
			frontier, other = c.bwdOpen, c.fwdOpen
			policy, otherPolicy = c.bwd, c.fwd
			norelax = bwdNorelax
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
			fresh := v.SearchID() != pi.InstanceID
			switch {
			case fresh:
				v.Init(pi.InstanceID, u, gv, gv)
				sol.NodesInserted++
			case gv < v.G():
				v.Relax(gv, u)
				sol.NodesUpdated++
			default:
				continue
			}

			if c.inCore(v.ID()) {
				norelax.add(v)
			} else if fresh {
				frontier.Push(v)
			} else if frontier.Contains(v) {
				frontier.DecreaseKey(v)
			} else {
				frontier.Push(v)
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

// phase2 seeds both open sets from the norelax sets accumulated in phase 1
// and finishes with the same alternation plain BidirectionalCH uses.
func (c *ChaseSearch) phase2(
	pi *problem.Instance, sol *problem.Solution, st *biState,
	fwdNorelax, bwdNorelax *norelaxSet,
) {
	for _, v := range fwdNorelax.nodes {
		if !c.fwdOpen.Contains(v) {
			c.fwdOpen.Push(v)
			sol.NodesInserted++
		}
	}
	for _, v := range bwdNorelax.nodes {
		if !c.bwdOpen.Contains(v) {
			c.bwdOpen.Push(v)
			sol.NodesInserted++
		}
	}

	runBidirectionalAlternation(st, pi, sol)
}
