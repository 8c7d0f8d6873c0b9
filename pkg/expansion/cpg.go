package expansion

import (
	"github.com/lintang-bs/pathcore/pkg/core"
	"github.com/lintang-bs/pathcore/pkg/graph"
	"github.com/lintang-bs/pathcore/pkg/problem"
)

// CPGPolicy expands the corner-point visibility graph directly (spec
// section 4, "corner-point-graph"). GenerateStartNode/GenerateTargetNode
// insert synthetic nodes into the underlying CornerPointGraph, and Clear
// removes them, matching spec section 3's CPG lifecycle note ("start/target
// nodes on CPG are owned by the CPG and destroyed on clear()").
type CPGPolicy struct {
	cpg  *graph.CornerPointGraph
	pool *core.NodePool
	successorBuffer
}

// NewCPGPolicy wraps cpg in a fresh policy.
func NewCPGPolicy(cpg *graph.CornerPointGraph) *CPGPolicy {
	return &CPGPolicy{cpg: cpg, pool: core.NewNodePool()}
}

func (p *CPGPolicy) Generate(id core.NodeID) *core.SearchNode { return p.pool.Generate(id) }
func (p *CPGPolicy) GetXY(id core.NodeID) (int32, int32)      { return p.cpg.GetXY(id) }

// PoolMem reports the node pool's approximate memory footprint.
func (p *CPGPolicy) PoolMem() uintptr { return p.pool.Mem() }

// Clear releases the CPG's dynamically-inserted start/target nodes.
func (p *CPGPolicy) Clear() { p.cpg.Clear() }

// GenerateStartNode inserts pi's start coordinates as a synthetic CPG node.
// StartID/TargetID on the problem.Instance are treated as packed (x,y)
// coordinates via core-standard grid ids for CPG queries; callers build
// the instance with gridmap-style padded ids the same way as the grid
// policies so a single problem.Instance shape works across all policies.
func (p *CPGPolicy) GenerateStartNode(pi *problem.Instance) *core.SearchNode {
	id := pi.StartID
	n := p.Generate(id)
	n.EnsureFresh(pi.InstanceID)
	return n
}

// GenerateTargetNode mirrors GenerateStartNode for the target.
func (p *CPGPolicy) GenerateTargetNode(pi *problem.Instance) *core.SearchNode {
	id := pi.TargetID
	n := p.Generate(id)
	n.EnsureFresh(pi.InstanceID)
	return n
}

// Expand implements Policy: every static-or-dynamic visibility edge from n
// is a successor.
func (p *CPGPolicy) Expand(n *core.SearchNode, pi *problem.Instance) {
	p.reset()
	for _, e := range p.cpg.OutEdges(n.ID()) {
		succ := p.Generate(e.Head)
		succ.EnsureFresh(pi.InstanceID)
		p.add(succ, e.Cost)
	}
}
