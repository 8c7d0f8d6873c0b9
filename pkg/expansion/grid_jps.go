package expansion

import (
	"math"

	"github.com/lintang-bs/pathcore/pkg/core"
	"github.com/lintang-bs/pathcore/pkg/gridmap"
	"github.com/lintang-bs/pathcore/pkg/problem"
)

// jumpResult is what the online jump scan finds in one pruned direction.
type jumpResult struct {
	x, y int32
	dist float64
	ok   bool
}

// jpsCore holds the jump-point scanning logic shared by JPS, JPS2, JPS+ and
// JPS2+: only how a node's arrival direction is obtained, and whether the
// jump distance comes from an online scan or a precomputed table, differ
// between them.
type jpsCore struct {
	grid *gridmap.GridMap
}

func (j *jpsCore) passable(x, y int32) bool { return j.grid.GetLabel(x, y) }

// natural returns the natural successor directions from an arrival
// direction d, entering the grid at (x,y) (spec section 4.3). For a
// diagonal arrival the two composing cardinals plus the continuing
// diagonal are always natural. For a cardinal arrival only the straight
// continuation is always natural; either diagonal candidate is added only
// when the forced-neighbour test holds on that side: the cell beside the
// previous cell (one step back along d) is blocked while the cell beside
// (x,y) is open, the same test forcedStraight applies. Without this
// gate every JPS variant would explore non-forced diagonal jumps, which
// still finds an optimal path but loses the pruning the algorithm is
// built on. DirNone (start node, or a node with no recorded direction)
// means "search all eight directions".
func (j *jpsCore) natural(x, y int32, d core.Direction) []core.Direction {
	switch d {
	case core.DirN:
		dirs := []core.Direction{core.DirN}
		if !j.passable(x+1, y+1) && j.passable(x+1, y) {
			dirs = append(dirs, core.DirNE)
		}
		if !j.passable(x-1, y+1) && j.passable(x-1, y) {
			dirs = append(dirs, core.DirNW)
		}
		return dirs
	case core.DirS:
		dirs := []core.Direction{core.DirS}
		if !j.passable(x+1, y-1) && j.passable(x+1, y) {
			dirs = append(dirs, core.DirSE)
		}
		if !j.passable(x-1, y-1) && j.passable(x-1, y) {
			dirs = append(dirs, core.DirSW)
		}
		return dirs
	case core.DirE:
		dirs := []core.Direction{core.DirE}
		if !j.passable(x-1, y-1) && j.passable(x, y-1) {
			dirs = append(dirs, core.DirNE)
		}
		if !j.passable(x-1, y+1) && j.passable(x, y+1) {
			dirs = append(dirs, core.DirSE)
		}
		return dirs
	case core.DirW:
		dirs := []core.Direction{core.DirW}
		if !j.passable(x+1, y-1) && j.passable(x, y-1) {
			dirs = append(dirs, core.DirNW)
		}
		if !j.passable(x+1, y+1) && j.passable(x, y+1) {
			dirs = append(dirs, core.DirSW)
		}
		return dirs
	case core.DirNE:
		return []core.Direction{core.DirN, core.DirNE, core.DirE}
	case core.DirSE:
		return []core.Direction{core.DirE, core.DirSE, core.DirS}
	case core.DirSW:
		return []core.Direction{core.DirS, core.DirSW, core.DirW}
	case core.DirNW:
		return []core.Direction{core.DirW, core.DirNW, core.DirN}
	default:
		return []core.Direction{
			core.DirN, core.DirNE, core.DirE, core.DirSE,
			core.DirS, core.DirSW, core.DirW, core.DirNW,
		}
	}
}

func offset(d core.Direction) (dx, dy int32) {
	switch d {
	case core.DirN:
		return 0, -1
	case core.DirNE:
		return 1, -1
	case core.DirE:
		return 1, 0
	case core.DirSE:
		return 1, 1
	case core.DirS:
		return 0, 1
	case core.DirSW:
		return -1, 1
	case core.DirW:
		return -1, 0
	case core.DirNW:
		return -1, -1
	default:
		return 0, 0
	}
}

// forced reports whether cell (x,y), entered by moving in direction d, has
// a forced neighbour (spec section 4.3).
func (j *jpsCore) forced(x, y int32, d core.Direction) bool {
	if d.IsDiagonal() {
		return j.forcedDiagonal(x, y, d)
	}
	return j.forcedStraight(x, y, d)
}

func (j *jpsCore) forcedStraight(x, y int32, d core.Direction) bool {
	dx, dy := offset(d)
	if dx == 0 { // vertical travel: check east/west
		if !j.passable(x+1, y-dy) && j.passable(x+1, y) {
			return true
		}
		if !j.passable(x-1, y-dy) && j.passable(x-1, y) {
			return true
		}
		return false
	}
	// horizontal travel: check north/south
	if !j.passable(x-dx, y+1) && j.passable(x, y+1) {
		return true
	}
	if !j.passable(x-dx, y-1) && j.passable(x, y-1) {
		return true
	}
	return false
}

func (j *jpsCore) forcedDiagonal(x, y int32, d core.Direction) bool {
	dx, dy := offset(d)
	if !j.passable(x-dx, y) && j.passable(x-dx, y+dy) {
		return true
	}
	if !j.passable(x, y-dy) && j.passable(x+dx, y-dy) {
		return true
	}
	return false
}

// canMove reports whether a single step in direction d from (x,y) is legal,
// applying the no-corner-cutting rule on diagonals.
func (j *jpsCore) canMove(x, y int32, d core.Direction) (int32, int32, bool) {
	dx, dy := offset(d)
	nx, ny := x+dx, y+dy
	if !j.passable(nx, ny) {
		return 0, 0, false
	}
	if d.IsDiagonal() {
		if !j.passable(x+dx, y) || !j.passable(x, y+dy) {
			return 0, 0, false
		}
	}
	return nx, ny, true
}

// jump performs the online jump scan from (x,y) in direction d toward
// (tx,ty), per spec section 4.3.
func (j *jpsCore) jump(x, y int32, d core.Direction, tx, ty int32) jumpResult {
	return j.jumpUsing(j.forced, x, y, d, tx, ty)
}

// jumpUsing runs the jump scan with a caller-supplied forced-neighbour
// predicate, letting JPS2 substitute its packed-mask test without
// duplicating the scan loop.
func (j *jpsCore) jumpUsing(forcedFn func(x, y int32, d core.Direction) bool, x, y int32, d core.Direction, tx, ty int32) jumpResult {
	diag := d.IsDiagonal()
	steps := 0.0
	cx, cy := x, y
	for {
		nx, ny, ok := j.canMove(cx, cy, d)
		if !ok {
			return jumpResult{}
		}
		cx, cy = nx, ny
		steps++
		if cx == tx && cy == ty {
			return jumpResult{x: cx, y: cy, dist: stepCost(diag, steps), ok: true}
		}
		if forcedFn(cx, cy, d) {
			return jumpResult{x: cx, y: cy, dist: stepCost(diag, steps), ok: true}
		}
		if diag {
			// A diagonal jump point also arises when either composing
			// cardinal succeeds from here (spec section 4.3).
			hdir, vdir := diagComponents(d)
			if cx == tx || cy == ty {
				c := hdir
				if cx == tx {
					c = vdir
				}
				for sx, sy, ok2 := j.canMove(cx, cy, c); ok2; sx, sy, ok2 = j.canMove(sx, sy, c) {
					if sx == tx && sy == ty {
						return jumpResult{x: cx, y: cy, dist: stepCost(diag, steps), ok: true}
					}
				}
			}
			if j.jumpSucceeds(cx, cy, hdir) || j.jumpSucceeds(cx, cy, vdir) {
				return jumpResult{x: cx, y: cy, dist: stepCost(diag, steps), ok: true}
			}
		}
	}
}

// jumpSucceeds is a cheap existence check for the diagonal jump-point rule:
// does a straight jump from (x,y) in dir meet a forced neighbour before a
// blocked cell. It does not look for the target (jumpUsing checks that
// itself), and it reports true once the bounded lookahead runs out.
func (j *jpsCore) jumpSucceeds(x, y int32, d core.Direction) bool {
	nx, ny, ok := j.canMove(x, y, d)
	if !ok {
		return false
	}
	if j.forced(nx, ny, d) {
		return true
	}
	// Scan straight ahead for a forced neighbour; a bounded lookahead keeps
	// this check cheap relative to a full recursive jump.
	for i := 0; i < maxStraightLookahead; i++ {
		nx2, ny2, ok2 := j.canMove(nx, ny, d)
		if !ok2 {
			return false
		}
		if j.forced(nx2, ny2, d) {
			return true
		}
		nx, ny = nx2, ny2
	}
	return true
}

const maxStraightLookahead = 4096

func diagComponents(d core.Direction) (horiz, vert core.Direction) {
	switch d {
	case core.DirNE:
		return core.DirE, core.DirN
	case core.DirSE:
		return core.DirE, core.DirS
	case core.DirSW:
		return core.DirW, core.DirS
	case core.DirNW:
		return core.DirW, core.DirN
	}
	return core.DirNone, core.DirNone
}

func stepCost(diag bool, steps float64) float64 {
	if diag {
		return steps * math.Sqrt2
	}
	return steps
}

// JPSPolicy implements Jump Point Search over a uniform-cost grid (spec
// section 4.3). Arrival direction is recovered from the successor's parent
// pointer rather than cached, so it never needs the on-relax hook.
type JPSPolicy struct {
	jpsCore
	pool *core.NodePool
	successorBuffer
}

// NewJPSPolicy wraps grid in a fresh JPS policy.
func NewJPSPolicy(grid *gridmap.GridMap) *JPSPolicy {
	return &JPSPolicy{jpsCore: jpsCore{grid: grid}, pool: core.NewNodePool()}
}

func (p *JPSPolicy) Generate(id core.NodeID) *core.SearchNode { return p.pool.Generate(id) }

func (p *JPSPolicy) GetXY(id core.NodeID) (int32, int32) { return p.grid.ToUnpadded(id) }

// PoolMem reports the node pool's approximate memory footprint.
func (p *JPSPolicy) PoolMem() uintptr { return p.pool.Mem() }

func (p *JPSPolicy) GenerateStartNode(pi *problem.Instance) *core.SearchNode {
	n := p.Generate(pi.StartID)
	n.EnsureFresh(pi.InstanceID)
	return n
}

func (p *JPSPolicy) GenerateTargetNode(pi *problem.Instance) *core.SearchNode {
	n := p.Generate(pi.TargetID)
	n.EnsureFresh(pi.InstanceID)
	return n
}

func (p *JPSPolicy) Clear() {}

// arrivalDirection infers n's direction of arrival from its parent's
// coordinates; DirNone (search every direction) if n has no parent.
func (p *JPSPolicy) arrivalDirection(n *core.SearchNode) core.Direction {
	if n.Parent() == nil {
		return core.DirNone
	}
	px, py := p.grid.ToUnpadded(n.Parent().ID())
	x, y := p.grid.ToUnpadded(n.ID())
	dx, dy := sign32(x-px), sign32(y-py)
	return dirFromDelta(dx, dy)
}

func sign32(v int32) int32 {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}

func dirFromDelta(dx, dy int32) core.Direction {
	switch {
	case dx == 0 && dy == -1:
		return core.DirN
	case dx == 1 && dy == -1:
		return core.DirNE
	case dx == 1 && dy == 0:
		return core.DirE
	case dx == 1 && dy == 1:
		return core.DirSE
	case dx == 0 && dy == 1:
		return core.DirS
	case dx == -1 && dy == 1:
		return core.DirSW
	case dx == -1 && dy == 0:
		return core.DirW
	case dx == -1 && dy == -1:
		return core.DirNW
	default:
		return core.DirNone
	}
}

// Expand implements Policy.
func (p *JPSPolicy) Expand(n *core.SearchNode, pi *problem.Instance) {
	p.reset()
	x, y := p.grid.ToUnpadded(n.ID())
	tx, ty := p.grid.ToUnpadded(pi.TargetID)
	d := p.arrivalDirection(n)
	for _, dir := range p.natural(x, y, d) {
		if _, _, ok := p.canMove(x, y, dir); !ok {
			continue
		}
		res := p.jump(x, y, dir, tx, ty)
		if !res.ok {
			continue
		}
		succ := p.Generate(p.grid.ToPaddedID(res.x, res.y))
		succ.EnsureFresh(pi.InstanceID)
		p.add(succ, res.dist)
	}
}
