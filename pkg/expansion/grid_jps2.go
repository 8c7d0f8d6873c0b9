package expansion

import (
	"github.com/lintang-bs/pathcore/pkg/core"
	"github.com/lintang-bs/pathcore/pkg/gridmap"
	"github.com/lintang-bs/pathcore/pkg/problem"
)

// JPS2Policy is Jump Point Search reading forced-neighbour patterns out of
// the grid's packed 3x3 neighbourhood mask (spec section 4.3: "JPS2 ...
// scanning groups of up to 8 cells per word using the packed 3x3
// neighbourhood byte") instead of four individual GetLabel calls per
// forced-neighbour test. Because the mask lookup is cheap enough to redo
// per relax, and because parent_direction here is a cached byte rather than
// recomputed from the parent pointer, JPS2 requires the on-relax hook (spec
// section 4.3): the search harness must call OnRelax after every
// relaxation that actually changes n's parent, or a later expansion prunes
// using a direction that no longer matches n's true best parent.
type JPS2Policy struct {
	jpsCore
	pool *core.NodePool
	successorBuffer
}

// NewJPS2Policy wraps grid in a fresh JPS2 policy.
func NewJPS2Policy(grid *gridmap.GridMap) *JPS2Policy {
	return &JPS2Policy{jpsCore: jpsCore{grid: grid}, pool: core.NewNodePool()}
}

func (p *JPS2Policy) Generate(id core.NodeID) *core.SearchNode { return p.pool.Generate(id) }
func (p *JPS2Policy) GetXY(id core.NodeID) (int32, int32)      { return p.grid.ToUnpadded(id) }
func (p *JPS2Policy) Clear()                                   {}

// PoolMem reports the node pool's approximate memory footprint.
func (p *JPS2Policy) PoolMem() uintptr { return p.pool.Mem() }

func (p *JPS2Policy) GenerateStartNode(pi *problem.Instance) *core.SearchNode {
	n := p.Generate(pi.StartID)
	n.EnsureFresh(pi.InstanceID)
	return n
}

func (p *JPS2Policy) GenerateTargetNode(pi *problem.Instance) *core.SearchNode {
	n := p.Generate(pi.TargetID)
	n.EnsureFresh(pi.InstanceID)
	return n
}

// OnRelax implements expansion.OnRelaxHook.
func (p *JPS2Policy) OnRelax(n *core.SearchNode, parentDir core.Direction) {
	n.SetParentDirection(parentDir)
}

// maskForced re-derives the diagonal forced-neighbour test from the packed
// 3x3 mask rather than four separate GetLabel calls, exercising
// GridMap.Get3x3Mask on the hot expansion path the way the upstream
// word-scan variant does. The straight-direction test still delegates to
// jpsCore.forcedStraight: mask bits alone cannot distinguish "ahead" from
// "behind" without also knowing travel direction magnitude, which the
// diagonal case gets for free from bit adjacency but the straight case
// does not.
func (p *JPS2Policy) maskForced(x, y int32, d core.Direction) bool {
	if !d.IsDiagonal() {
		return p.jpsCore.forcedStraight(x, y, d)
	}
	id := p.grid.ToPaddedID(x, y)
	mask := p.grid.Get3x3Mask(id)
	bit := func(i int) bool { return mask&(1<<uint(i)) != 0 }
	dx, dy := offset(d)
	switch {
	case dx > 0 && dy < 0: // NE
		return (!bit(gridmap.Mask3x3W) && bit(gridmap.Mask3x3NW)) || (!bit(gridmap.Mask3x3S) && bit(gridmap.Mask3x3SE))
	case dx > 0 && dy > 0: // SE
		return (!bit(gridmap.Mask3x3W) && bit(gridmap.Mask3x3SW)) || (!bit(gridmap.Mask3x3N) && bit(gridmap.Mask3x3NE))
	case dx < 0 && dy > 0: // SW
		return (!bit(gridmap.Mask3x3E) && bit(gridmap.Mask3x3SE)) || (!bit(gridmap.Mask3x3N) && bit(gridmap.Mask3x3NW))
	default: // NW
		return (!bit(gridmap.Mask3x3E) && bit(gridmap.Mask3x3NE)) || (!bit(gridmap.Mask3x3S) && bit(gridmap.Mask3x3SW))
	}
}

// Expand implements Policy, reusing jpsCore.jump for the scan itself but
// deriving the arrival direction from the cached parent_direction field.
func (p *JPS2Policy) Expand(n *core.SearchNode, pi *problem.Instance) {
	p.reset()
	x, y := p.grid.ToUnpadded(n.ID())
	tx, ty := p.grid.ToUnpadded(pi.TargetID)
	d := n.ParentDirection()
	for _, dir := range p.natural(x, y, d) {
		if _, _, ok := p.canMove(x, y, dir); !ok {
			continue
		}
		res := p.jumpUsing(p.maskForced, x, y, dir, tx, ty)
		if !res.ok {
			continue
		}
		succ := p.Generate(p.grid.ToPaddedID(res.x, res.y))
		succ.EnsureFresh(pi.InstanceID)
		p.add(succ, res.dist)
	}
}
