package expansion

import (
	"github.com/lintang-bs/pathcore/pkg/core"
	"github.com/lintang-bs/pathcore/pkg/gridmap"
	"github.com/lintang-bs/pathcore/pkg/problem"
)

// JPS2PlusPolicy combines JPS2's packed-mask forced-neighbour test with
// JPS+'s precomputed jump table (spec section 4.3, "JPS2+"). Like JPS2, it
// caches parent_direction on the node and therefore requires the on-relax
// hook; SPEC_FULL section 13 additionally requires that the CLI actually
// runs experiments for this algorithm, unlike the upstream jps2plus setup
// path.
type JPS2PlusPolicy struct {
	jpsCore
	pool  *core.NodePool
	table map[core.NodeID][8]jpsTableEntry
	successorBuffer
}

// NewJPS2PlusPolicy builds the jump table (using the plain forced test,
// which the spec's consistency requirement guarantees agrees with the
// packed-mask test) and returns a ready policy.
func NewJPS2PlusPolicy(grid *gridmap.GridMap) *JPS2PlusPolicy {
	p := &JPS2PlusPolicy{jpsCore: jpsCore{grid: grid}, pool: core.NewNodePool()}
	p.table = buildJumpTable(&p.jpsCore)
	return p
}

func (p *JPS2PlusPolicy) Generate(id core.NodeID) *core.SearchNode { return p.pool.Generate(id) }
func (p *JPS2PlusPolicy) GetXY(id core.NodeID) (int32, int32)      { return p.grid.ToUnpadded(id) }
func (p *JPS2PlusPolicy) Clear()                                   {}

// PoolMem reports the node pool's approximate memory footprint.
func (p *JPS2PlusPolicy) PoolMem() uintptr { return p.pool.Mem() }

func (p *JPS2PlusPolicy) GenerateStartNode(pi *problem.Instance) *core.SearchNode {
	n := p.Generate(pi.StartID)
	n.EnsureFresh(pi.InstanceID)
	return n
}

func (p *JPS2PlusPolicy) GenerateTargetNode(pi *problem.Instance) *core.SearchNode {
	n := p.Generate(pi.TargetID)
	n.EnsureFresh(pi.InstanceID)
	return n
}

// OnRelax implements expansion.OnRelaxHook.
func (p *JPS2PlusPolicy) OnRelax(n *core.SearchNode, parentDir core.Direction) {
	n.SetParentDirection(parentDir)
}

func (p *JPS2PlusPolicy) lookup(x, y, tx, ty int32, d core.Direction) (jumpResult, bool) {
	id := p.grid.ToPaddedID(x, y)
	row, ok := p.table[id]
	if !ok {
		return jumpResult{}, false
	}
	entry := row[dirIndex(d)]

	if steps, aligned := alongRay(x, y, tx, ty, d); aligned {
		if steps <= entry.steps {
			dx, dy := offset(d)
			jx, jy := x+dx*steps, y+dy*steps
			return jumpResult{x: jx, y: jy, dist: stepCost(d.IsDiagonal(), float64(steps)), ok: steps > 0}, true
		}
		if !entry.foundJP {
			return jumpResult{}, true
		}
	}
	if d.IsDiagonal() {
		ddx, ddy := offset(d)
		hdir, vdir := diagComponents(d)
		for _, k := range [2]int32{(ty - y) * ddy, (tx - x) * ddx} {
			if k < 1 || k > entry.steps {
				continue
			}
			cx, cy := x+ddx*k, y+ddy*k
			crow := p.table[p.grid.ToPaddedID(cx, cy)]
			for _, c := range [2]core.Direction{hdir, vdir} {
				if s, al := alongRay(cx, cy, tx, ty, c); al && s <= crow[dirIndex(c)].steps {
					return jumpResult{x: cx, y: cy, dist: stepCost(true, float64(k)), ok: true}, true
				}
			}
		}
	}
	if !entry.foundJP {
		return jumpResult{}, true
	}
	dx, dy := offset(d)
	jx, jy := x+dx*entry.steps, y+dy*entry.steps
	return jumpResult{x: jx, y: jy, dist: stepCost(d.IsDiagonal(), float64(entry.steps)), ok: true}, true
}

// Expand implements Policy.
func (p *JPS2PlusPolicy) Expand(n *core.SearchNode, pi *problem.Instance) {
	p.reset()
	x, y := p.grid.ToUnpadded(n.ID())
	tx, ty := p.grid.ToUnpadded(pi.TargetID)
	d := n.ParentDirection()
	for _, dir := range p.natural(x, y, d) {
		res, has := p.lookup(x, y, tx, ty, dir)
		if !has || !res.ok {
			continue
		}
		succ := p.Generate(p.grid.ToPaddedID(res.x, res.y))
		succ.EnsureFresh(pi.InstanceID)
		p.add(succ, res.dist)
	}
}
