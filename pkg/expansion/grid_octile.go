package expansion

import (
	"math"

	"github.com/lintang-bs/pathcore/pkg/core"
	"github.com/lintang-bs/pathcore/pkg/gridmap"
	"github.com/lintang-bs/pathcore/pkg/problem"
)

const diagCost = math.Sqrt2

// direction offsets in Direction enum order (N, NE, E, SE, S, SW, W, NW).
var dirDX = [8]int32{0, 1, 1, 1, 0, -1, -1, -1}
var dirDY = [8]int32{-1, -1, 0, 1, 1, 1, 0, -1}
var dirEnum = [8]core.Direction{core.DirN, core.DirNE, core.DirE, core.DirSE, core.DirS, core.DirSW, core.DirW, core.DirNW}
var dirIsDiag = [8]bool{false, true, false, true, false, true, false, true}

// GridOctilePolicy is the plain 8-connected expansion policy (spec section
// 4.2): every traversable neighbour is a successor, at cost 1 orthogonally
// or sqrt2 diagonally, and a diagonal step is only permitted when both
// composing orthogonal cells are open (no corner-cutting).
type GridOctilePolicy struct {
	grid *gridmap.GridMap
	pool *core.NodePool
	successorBuffer
}

// NewGridOctilePolicy wraps grid in a fresh policy with its own node pool.
func NewGridOctilePolicy(grid *gridmap.GridMap) *GridOctilePolicy {
	return &GridOctilePolicy{grid: grid, pool: core.NewNodePool()}
}

// Generate implements Policy.
func (p *GridOctilePolicy) Generate(id core.NodeID) *core.SearchNode {
	return p.pool.Generate(id)
}

// GetXY implements Policy.
func (p *GridOctilePolicy) GetXY(id core.NodeID) (int32, int32) {
	return p.grid.ToUnpadded(id)
}

// GenerateStartNode implements Policy.
func (p *GridOctilePolicy) GenerateStartNode(pi *problem.Instance) *core.SearchNode {
	n := p.Generate(pi.StartID)
	n.EnsureFresh(pi.InstanceID)
	return n
}

// GenerateTargetNode implements Policy.
func (p *GridOctilePolicy) GenerateTargetNode(pi *problem.Instance) *core.SearchNode {
	n := p.Generate(pi.TargetID)
	n.EnsureFresh(pi.InstanceID)
	return n
}

// Clear implements Policy; the plain grid policy has no per-query scratch
// state to release.
func (p *GridOctilePolicy) Clear() {}

// PoolMem reports the node pool's approximate memory footprint.
func (p *GridOctilePolicy) PoolMem() uintptr { return p.pool.Mem() }

// canStep reports whether a step in direction i from (x,y) is legal:
// the destination must be traversable, and if diagonal, both of the
// composing orthogonal cells must also be open.
func (p *GridOctilePolicy) canStep(x, y int32, i int) (int32, int32, bool) {
	nx, ny := x+dirDX[i], y+dirDY[i]
	if !p.grid.GetLabel(nx, ny) {
		return 0, 0, false
	}
	if dirIsDiag[i] {
		if !p.grid.GetLabel(x+dirDX[i], y) || !p.grid.GetLabel(x, y+dirDY[i]) {
			return 0, 0, false
		}
	}
	return nx, ny, true
}

// Expand implements Policy.
func (p *GridOctilePolicy) Expand(n *core.SearchNode, pi *problem.Instance) {
	p.reset()
	x, y := p.grid.ToUnpadded(n.ID())
	for i := 0; i < 8; i++ {
		nx, ny, ok := p.canStep(x, y, i)
		if !ok {
			continue
		}
		succ := p.Generate(p.grid.ToPaddedID(nx, ny))
		succ.EnsureFresh(pi.InstanceID)
		cost := 1.0
		if dirIsDiag[i] {
			cost = diagCost
		}
		p.add(succ, cost)
	}
}
