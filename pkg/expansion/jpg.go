package expansion

import (
	"github.com/lintang-bs/pathcore/pkg/core"
	"github.com/lintang-bs/pathcore/pkg/graph"
	"github.com/lintang-bs/pathcore/pkg/problem"
)

// JPGPolicy is jump-point search over a corner-point graph (spec section 4,
// "jump-point on CPG"). Every CPG edge already spans a maximal taut-string
// segment between two corners, so the "jump" step JPS performs online on a
// raw grid has already been folded into CPG construction; the only pruning
// left to apply at query time is JPS's other core rule, never stepping back
// toward the node the current node was reached from.
type JPGPolicy struct {
	CPGPolicy
}

// NewJPGPolicy wraps cpg in a fresh policy.
func NewJPGPolicy(cpg *graph.CornerPointGraph) *JPGPolicy {
	return &JPGPolicy{CPGPolicy: CPGPolicy{cpg: cpg, pool: core.NewNodePool()}}
}

// Expand implements Policy, filtering out the immediate-parent successor
// that CPGPolicy.Expand would otherwise re-offer.
func (p *JPGPolicy) Expand(n *core.SearchNode, pi *problem.Instance) {
	p.reset()
	var parentID core.NodeID = core.InvalidID
	if n.Parent() != nil {
		parentID = n.Parent().ID()
	}
	for _, e := range p.cpg.OutEdges(n.ID()) {
		if e.Head == parentID {
			continue
		}
		succ := p.Generate(e.Head)
		succ.EnsureFresh(pi.InstanceID)
		p.add(succ, e.Cost)
	}
}
