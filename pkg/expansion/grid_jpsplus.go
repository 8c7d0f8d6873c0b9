package expansion

import (
	"github.com/k0kubun/go-ansi"
	"github.com/schollz/progressbar/v3"

	"github.com/lintang-bs/pathcore/pkg/core"
	"github.com/lintang-bs/pathcore/pkg/gridmap"
	"github.com/lintang-bs/pathcore/pkg/problem"
)

// jpsTableEntry is one cell's precomputed jump distance in one direction:
// steps is how far a straight/diagonal ray can travel before either a
// forced neighbour (foundJP=true, steps is the jump-point distance) or a
// wall/boundary (foundJP=false, steps is how far the ray got before
// stopping).
type jpsTableEntry struct {
	steps   int32
	foundJP bool
}

// buildJumpTable precomputes, for every traversable cell and all eight
// directions, the online jump result with no target (spec section 4.3,
// "JPS+ / JPS2+ precompute ... the distance to the next jump point or to
// the grid edge"). Precomputation reuses the exact same scan as the online
// algorithm so tabulated and online results can never disagree (the spec's
// stated consistency requirement).
func buildJumpTable(j *jpsCore) map[core.NodeID][8]jpsTableEntry {
	table := make(map[core.NodeID][8]jpsTableEntry)
	w, h := j.grid.Width(), j.grid.Height()

	bar := progressbar.NewOptions(int(h),
		progressbar.OptionSetWriter(ansi.NewAnsiStdout()),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionShowBytes(false),
		progressbar.OptionSetWidth(15),
		progressbar.OptionSetDescription("[cyan]warming jump-point table[reset]"),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}))

	for y := int32(0); y < h; y++ {
		for x := int32(0); x < w; x++ {
			if !j.grid.GetLabel(x, y) {
				continue
			}
			var row [8]jpsTableEntry
			for i := 0; i < 8; i++ {
				row[i] = scanForTable(j, x, y, dirEnumFromIndex(i))
			}
			table[j.grid.ToPaddedID(x, y)] = row
		}
		bar.Add(1)
	}
	return table
}

func dirEnumFromIndex(i int) core.Direction { return dirEnum[i] }

func scanForTable(j *jpsCore, x, y int32, d core.Direction) jpsTableEntry {
	steps := int32(0)
	cx, cy := x, y
	for {
		nx, ny, ok := j.canMove(cx, cy, d)
		if !ok {
			return jpsTableEntry{steps: steps, foundJP: false}
		}
		cx, cy = nx, ny
		steps++
		if j.forced(cx, cy, d) {
			return jpsTableEntry{steps: steps, foundJP: true}
		}
		if d.IsDiagonal() {
			hdir, vdir := diagComponents(d)
			if j.jumpSucceeds(cx, cy, hdir) || j.jumpSucceeds(cx, cy, vdir) {
				return jpsTableEntry{steps: steps, foundJP: true}
			}
		}
	}
}

// alongRay reports whether (tx,ty) lies exactly on the ray leaving (x,y) in
// direction d, and if so, how many steps away.
func alongRay(x, y, tx, ty int32, d core.Direction) (steps int32, ok bool) {
	dx, dy := offset(d)
	ddx, ddy := tx-x, ty-y
	if d.IsDiagonal() {
		if ddx == 0 || ddy == 0 || abs32i(ddx) != abs32i(ddy) {
			return 0, false
		}
		if sign32(ddx) != dx || sign32(ddy) != dy {
			return 0, false
		}
		return abs32i(ddx), true
	}
	if dx == 0 { // vertical ray
		if ddx != 0 || ddy == 0 || sign32(ddy) != dy {
			return 0, false
		}
		return abs32i(ddy), true
	}
	// horizontal ray
	if ddy != 0 || ddx == 0 || sign32(ddx) != dx {
		return 0, false
	}
	return abs32i(ddx), true
}

func abs32i(v int32) int32 {
	if v < 0 {
		return -v
	}
	return v
}

// JPSPlusPolicy is JPS with the online jump scan replaced by a constant-
// time table lookup (spec section 4.3, "JPS+").
type JPSPlusPolicy struct {
	jpsCore
	pool  *core.NodePool
	table map[core.NodeID][8]jpsTableEntry
	successorBuffer
}

// NewJPSPlusPolicy builds the jump table for grid and returns a ready
// policy. Table construction is O(width*height*8) and should be done once
// per grid, not per query.
func NewJPSPlusPolicy(grid *gridmap.GridMap) *JPSPlusPolicy {
	p := &JPSPlusPolicy{jpsCore: jpsCore{grid: grid}, pool: core.NewNodePool()}
	p.table = buildJumpTable(&p.jpsCore)
	return p
}

func (p *JPSPlusPolicy) Generate(id core.NodeID) *core.SearchNode { return p.pool.Generate(id) }
func (p *JPSPlusPolicy) GetXY(id core.NodeID) (int32, int32)      { return p.grid.ToUnpadded(id) }
func (p *JPSPlusPolicy) Clear()                                   {}

// PoolMem reports the node pool's approximate memory footprint.
func (p *JPSPlusPolicy) PoolMem() uintptr { return p.pool.Mem() }

func (p *JPSPlusPolicy) GenerateStartNode(pi *problem.Instance) *core.SearchNode {
	n := p.Generate(pi.StartID)
	n.EnsureFresh(pi.InstanceID)
	return n
}

func (p *JPSPlusPolicy) GenerateTargetNode(pi *problem.Instance) *core.SearchNode {
	n := p.Generate(pi.TargetID)
	n.EnsureFresh(pi.InstanceID)
	return n
}

// lookup resolves one direction's successor using the table, folding in
// the query-specific target-on-ray check the table cannot precompute.
func (p *JPSPlusPolicy) lookup(x, y, tx, ty int32, d core.Direction) (jumpResult, bool) {
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

func dirIndex(d core.Direction) int {
	for i, e := range dirEnum {
		if e == d {
			return i
		}
	}
	return 0
}

// Expand implements Policy.
func (p *JPSPlusPolicy) Expand(n *core.SearchNode, pi *problem.Instance) {
	p.reset()
	x, y := p.grid.ToUnpadded(n.ID())
	tx, ty := p.grid.ToUnpadded(pi.TargetID)
	d := core.DirNone
	if n.Parent() != nil {
		px, py := p.grid.ToUnpadded(n.Parent().ID())
		d = dirFromDelta(sign32(x-px), sign32(y-py))
	}
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
