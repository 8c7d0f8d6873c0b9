package expansion

import (
	"github.com/lintang-bs/pathcore/pkg/core"
	"github.com/lintang-bs/pathcore/pkg/gridmap"
	"github.com/lintang-bs/pathcore/pkg/problem"
)

// WeightedGridJPSPolicy generalises JPS to weighted terrain (spec section
// 4.3, "Weighted-grid JPS"): a change in terrain cost across an edge is
// treated as a forced neighbour (since a uniform-cost jump can no longer
// assume the interior of the scanned segment is free to skip), and the
// heuristic scale is derived from the cheapest terrain reference so h stays
// admissible.
type WeightedGridJPSPolicy struct {
	grid *gridmap.WeightedGridMap
	pool *core.NodePool
	successorBuffer
}

// NewWeightedGridJPSPolicy wraps grid in a fresh policy.
func NewWeightedGridJPSPolicy(grid *gridmap.WeightedGridMap) *WeightedGridJPSPolicy {
	return &WeightedGridJPSPolicy{grid: grid, pool: core.NewNodePool()}
}

func (p *WeightedGridJPSPolicy) Generate(id core.NodeID) *core.SearchNode { return p.pool.Generate(id) }
func (p *WeightedGridJPSPolicy) GetXY(id core.NodeID) (int32, int32)      { return p.grid.ToXY(id) }
func (p *WeightedGridJPSPolicy) Clear()                                  {}

// PoolMem reports the node pool's approximate memory footprint.
func (p *WeightedGridJPSPolicy) PoolMem() uintptr { return p.pool.Mem() }

func (p *WeightedGridJPSPolicy) GenerateStartNode(pi *problem.Instance) *core.SearchNode {
	n := p.Generate(pi.StartID)
	n.EnsureFresh(pi.InstanceID)
	return n
}

func (p *WeightedGridJPSPolicy) GenerateTargetNode(pi *problem.Instance) *core.SearchNode {
	n := p.Generate(pi.TargetID)
	n.EnsureFresh(pi.InstanceID)
	return n
}

// HScale exposes the cheapest-terrain scale factor for callers constructing
// a heuristic.Octile for this grid.
func (p *WeightedGridJPSPolicy) HScale() float64 { return p.grid.HScale() }

func (p *WeightedGridJPSPolicy) canMove(x, y int32, d core.Direction) (int32, int32, bool) {
	dx, dy := offset(d)
	nx, ny := x+dx, y+dy
	if !p.grid.Passable(nx, ny) {
		return 0, 0, false
	}
	if d.IsDiagonal() {
		if !p.grid.Passable(x+dx, y) || !p.grid.Passable(x, y+dy) {
			return 0, 0, false
		}
	}
	return nx, ny, true
}

// terrainChanged reports whether the terrain at (x,y) differs from the
// terrain one step back along d, which forces a jump point since the edge
// cost from here on can no longer be folded into a single average-cost
// jump segment.
func (p *WeightedGridJPSPolicy) terrainChanged(x, y int32, d core.Direction) bool {
	dx, dy := offset(d)
	return p.grid.Terrain(x, y) != p.grid.Terrain(x-dx, y-dy)
}

// jump performs a weighted jump scan: it stops (in addition to the plain
// JPS stopping conditions) whenever the terrain changes, since a uniform
// per-step cost can no longer be assumed beyond that point.
func (p *WeightedGridJPSPolicy) jump(x, y int32, d core.Direction, tx, ty int32) (jx, jy int32, cost float64, ok bool) {
	cx, cy := x, y
	cost = 0
	for {
		nx, ny, moved := p.canMove(cx, cy, d)
		if !moved {
			return 0, 0, 0, false
		}
		stepCost, _ := p.grid.EdgeCost(cx, cy, nx, ny)
		cost += stepCost
		cx, cy = nx, ny
		if cx == tx && cy == ty {
			return cx, cy, cost, true
		}
		if p.terrainChanged(cx, cy, d) {
			return cx, cy, cost, true
		}
		if p.forcedStraight(cx, cy, d) {
			return cx, cy, cost, true
		}
	}
}

// forcedStraight mirrors jpsCore.forcedStraight but samples the weighted
// grid's Passable predicate instead of a plain GridMap.
func (p *WeightedGridJPSPolicy) forcedStraight(x, y int32, d core.Direction) bool {
	dx, dy := offset(d)
	if dx == 0 {
		if !p.grid.Passable(x+1, y-dy) && p.grid.Passable(x+1, y) {
			return true
		}
		if !p.grid.Passable(x-1, y-dy) && p.grid.Passable(x-1, y) {
			return true
		}
		return false
	}
	if !p.grid.Passable(x-dx, y+1) && p.grid.Passable(x, y+1) {
		return true
	}
	if !p.grid.Passable(x-dx, y-1) && p.grid.Passable(x, y-1) {
		return true
	}
	return false
}

// Expand implements Policy. Diagonal movement is not modelled for weighted
// terrain here: edge cost is only well-defined as an endpoint average for
// axis-aligned steps in this engine's weighted grid (spec section 4.2's
// diagonal cost formula assumes uniform terrain), so only the four
// cardinal directions are explored.
func (p *WeightedGridJPSPolicy) Expand(n *core.SearchNode, pi *problem.Instance) {
	p.reset()
	x, y := p.grid.ToXY(n.ID())
	tx, ty := p.grid.ToXY(pi.TargetID)
	dirs := []core.Direction{core.DirN, core.DirE, core.DirS, core.DirW}
	if n.Parent() != nil {
		px, py := p.grid.ToXY(n.Parent().ID())
		if d := dirFromDelta(sign32(x-px), sign32(y-py)); d != core.DirNone {
			dirs = []core.Direction{d}
		}
	}
	for _, dir := range dirs {
		if _, _, ok := p.canMove(x, y, dir); !ok {
			continue
		}
		jx, jy, cost, ok := p.jump(x, y, dir, tx, ty)
		if !ok {
			continue
		}
		succ := p.Generate(p.grid.ToID(jx, jy))
		succ.EnsureFresh(pi.InstanceID)
		p.add(succ, cost)
	}
}
