package expansion

import (
	"github.com/lintang-bs/pathcore/pkg/core"
	"github.com/lintang-bs/pathcore/pkg/graph"
	"github.com/lintang-bs/pathcore/pkg/problem"
)

// FCHPolicy is the forward-driven contraction-hierarchy policy (spec
// section 4, "Expansion policies (graph)": "CH forward/backward, FCH,
// FCH-CPG"). Unlike BCHPolicy, FCH runs from the source only, in two
// phases: an up-phase climbing rank via any edge (shortcut or original)
// until no higher-rank neighbour remains reachable, then a down-phase that
// descends via original edges only toward the target. SetPhase toggles
// between them; pkg/search.FCH is responsible for driving the phase
// transition (per popped node: when its up-phase expansion yields no
// successors, the classic FCH "apex" condition).
type FCHPolicy struct {
	g   *graph.XYGraph
	pool *core.NodePool
	up  bool
	successorBuffer
}

// NewFCHPolicy returns an FCH policy starting in the up-phase.
func NewFCHPolicy(g *graph.XYGraph) *FCHPolicy {
	return &FCHPolicy{g: g, pool: core.NewNodePool(), up: true}
}

// SetPhase switches between the up-phase (up=true) and down-phase.
func (p *FCHPolicy) SetPhase(up bool) { p.up = up }

// Phase reports the current phase.
func (p *FCHPolicy) Phase() (up bool) { return p.up }

func (p *FCHPolicy) Generate(id core.NodeID) *core.SearchNode { return p.pool.Generate(id) }
func (p *FCHPolicy) GetXY(id core.NodeID) (int32, int32)      { return p.g.GetXY(id) }
func (p *FCHPolicy) GetRank(id core.NodeID) int32              { return p.g.Rank(id) }
func (p *FCHPolicy) Clear()                                    { p.up = true }

// PoolMem reports the node pool's approximate memory footprint.
func (p *FCHPolicy) PoolMem() uintptr { return p.pool.Mem() }

func (p *FCHPolicy) GenerateStartNode(pi *problem.Instance) *core.SearchNode {
	n := p.Generate(pi.StartID)
	n.EnsureFresh(pi.InstanceID)
	return n
}

func (p *FCHPolicy) GenerateTargetNode(pi *problem.Instance) *core.SearchNode {
	n := p.Generate(pi.TargetID)
	n.EnsureFresh(pi.InstanceID)
	return n
}

// Expand implements Policy. In the up-phase, only strictly-higher-rank
// successors are generated (via any edge). In the down-phase, only
// strictly-lower-rank successors reached by a non-shortcut edge are
// generated, since a shortcut's constituent original edges are what
// actually appear on the ground path.
func (p *FCHPolicy) Expand(n *core.SearchNode, pi *problem.Instance) {
	p.reset()
	rank := p.g.Rank(n.ID())
	for _, e := range p.g.OutEdges(n.ID()) {
		headRank := p.g.Rank(e.Head)
		if p.up {
			if headRank <= rank {
				continue
			}
		} else {
			if headRank >= rank || e.IsShortcut {
				continue
			}
		}
		succ := p.Generate(e.Head)
		succ.EnsureFresh(pi.InstanceID)
		p.add(succ, e.Cost)
	}
}
