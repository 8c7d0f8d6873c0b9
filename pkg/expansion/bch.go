package expansion

import (
	"github.com/lintang-bs/pathcore/pkg/core"
	"github.com/lintang-bs/pathcore/pkg/graph"
	"github.com/lintang-bs/pathcore/pkg/problem"
)

// edgeAccessor is bound once at construction to either (*graph.XYGraph).OutEdges
// or (*graph.XYGraph).InEdges, so the hot expansion loop contains no
// per-call branch on search direction (spec section 9, "Function-pointer
// branch elision (BCH)": "parameterise the policy by direction at
// construction so the hot loop contains no direction test").
type edgeAccessor func(*graph.XYGraph, core.NodeID) []graph.Edge

// BCHPolicy is the bidirectional contraction-hierarchy expansion policy
// (spec section 4, "Expansion policies (graph)"). A forward instance scans
// outgoing edges and only ascends to higher-rank nodes; a backward instance
// (constructed with backward=true) scans incoming edges under the same
// upward-only rule, since in a contraction hierarchy the optimal path
// between any two nodes climbs to a shared highest-rank vertex and
// descends, so a search restricted to "toward higher rank" edges suffices
// in both directions (spec GLOSSARY, "Contraction rank").
type BCHPolicy struct {
	g        *graph.XYGraph
	pool     *core.NodePool
	backward bool
	edgesFn  edgeAccessor
	successorBuffer
}

// NewBCHPolicy returns a forward (backward=false) or backward BCH policy
// over g.
func NewBCHPolicy(g *graph.XYGraph, backward bool) *BCHPolicy {
	fn := edgeAccessor((*graph.XYGraph).OutEdges)
	if backward {
		fn = (*graph.XYGraph).InEdges
	}
	return &BCHPolicy{g: g, pool: core.NewNodePool(), backward: backward, edgesFn: fn}
}

// IsBackward reports which adjacency list this instance scans.
func (p *BCHPolicy) IsBackward() bool { return p.backward }

// PoolMem reports the node pool's approximate memory footprint.
func (p *BCHPolicy) PoolMem() uintptr { return p.pool.Mem() }

func (p *BCHPolicy) Generate(id core.NodeID) *core.SearchNode { return p.pool.Generate(id) }
func (p *BCHPolicy) GetXY(id core.NodeID) (int32, int32)      { return p.g.GetXY(id) }
func (p *BCHPolicy) GetRank(id core.NodeID) int32              { return p.g.Rank(id) }
func (p *BCHPolicy) Clear()                                    {}

func (p *BCHPolicy) GenerateStartNode(pi *problem.Instance) *core.SearchNode {
	n := p.Generate(pi.StartID)
	n.EnsureFresh(pi.InstanceID)
	return n
}

func (p *BCHPolicy) GenerateTargetNode(pi *problem.Instance) *core.SearchNode {
	n := p.Generate(pi.TargetID)
	n.EnsureFresh(pi.InstanceID)
	return n
}

// Expand implements Policy: only edges toward strictly higher rank are
// followed, in either direction.
func (p *BCHPolicy) Expand(n *core.SearchNode, pi *problem.Instance) {
	p.reset()
	rank := p.g.Rank(n.ID())
	for _, e := range p.edgesFn(p.g, n.ID()) {
		if p.g.Rank(e.Head) <= rank {
			continue
		}
		succ := p.Generate(e.Head)
		succ.EnsureFresh(pi.InstanceID)
		p.add(succ, e.Cost)
	}
}
