package graph

import (
	"math"

	"github.com/dhconnelly/rtreego"

	"github.com/lintang-bs/pathcore/pkg/core"
	"github.com/lintang-bs/pathcore/pkg/gridmap"
)

// cpgTolerance is the half-width of the bounding rectangle rtreego indexes
// each corner under, following the teacher's point-indexing pattern
// (alg/rtree.go: "define the bounds of s to be a rectangle centered at
// s.location with side lengths 2*tol").
const cpgTolerance = 0.0001

// cornerSpatial adapts a corner's grid position to rtreego.Spatial so the
// r-tree can answer "corners near this query point" range queries.
type cornerSpatial struct {
	point rtreego.Point
	index int
}

func (c *cornerSpatial) Bounds() rtreego.Rect {
	r, _ := rtreego.NewRect(c.point, []float64{cpgTolerance, cpgTolerance})
	return r
}

// CornerPointGraph is a reduced visibility graph over the convex corners of
// a passability grid (spec section 3, "Corner-point graph"). Edges join
// pairs of corners with an unobstructed straight line between them
// ("taut-string segments"). Start and target are inserted dynamically per
// query, connected to every corner they can see, and removed by Clear.
type CornerPointGraph struct {
	grid    *gridmap.GridMap
	corners []cornerXY
	edges   [][]Edge // static adjacency among corners, indices 0..len(corners)-1
	tree    *rtreego.Rtree

	// dynamic per-query state
	dynX, dynY   []int32
	dynEdges     [][]Edge // dynamic node's own outgoing edges
	dynIncoming  map[core.NodeID][]Edge // corner id -> edges added because a dynamic node can see it
}

type cornerXY struct{ x, y int32 }

// BuildCornerPointGraph extracts convex corners from grid and precomputes
// the static visibility graph among them.
func BuildCornerPointGraph(grid *gridmap.GridMap) *CornerPointGraph {
	cpg := &CornerPointGraph{grid: grid}
	cpg.extractCorners()
	cpg.tree = rtreego.NewTree(2, 4, 16)
	for i, c := range cpg.corners {
		cpg.tree.Insert(&cornerSpatial{point: rtreego.Point{float64(c.x), float64(c.y)}, index: i})
	}
	cpg.buildStaticEdges()
	cpg.resetDynamic()
	return cpg
}

// extractCorners finds every traversable cell that is a convex turning
// point: a cell adjacent (diagonally) to a blocked cell whose two
// composing orthogonal neighbours are both traversable. Such a cell is
// where a taut string bends around an obstacle.
func (cpg *CornerPointGraph) extractCorners() {
	w, h := cpg.grid.Width(), cpg.grid.Height()
	diag := [4][2]int32{{1, 1}, {1, -1}, {-1, 1}, {-1, -1}}
	for y := int32(0); y < h; y++ {
		for x := int32(0); x < w; x++ {
			if !cpg.grid.GetLabel(x, y) {
				continue
			}
			isCorner := false
			for _, d := range diag {
				dx, dy := d[0], d[1]
				diagBlocked := !cpg.grid.GetLabel(x+dx, y+dy)
				orthoAOpen := cpg.grid.GetLabel(x+dx, y)
				orthoBOpen := cpg.grid.GetLabel(x, y+dy)
				if diagBlocked && orthoAOpen && orthoBOpen {
					isCorner = true
					break
				}
			}
			if isCorner {
				cpg.corners = append(cpg.corners, cornerXY{x, y})
			}
		}
	}
}

// hasLineOfSight reports whether every grid cell touched by the segment
// (x1,y1)-(x2,y2) is traversable, using a supercover Bresenham walk so a
// diagonal line can never pass between two diagonally-blocked cells (the
// same no-corner-cutting rule as the octile expansion policy).
func hasLineOfSight(grid *gridmap.GridMap, x1, y1, x2, y2 int32) bool {
	dx := abs32(x2 - x1)
	dy := abs32(y2 - y1)
	sx, sy := int32(1), int32(1)
	if x1 > x2 {
		sx = -1
	}
	if y1 > y2 {
		sy = -1
	}
	x, y := x1, y1
	err := dx - dy
	for {
		if !grid.GetLabel(x, y) {
			return false
		}
		if x == x2 && y == y2 {
			return true
		}
		e2 := 2 * err
		movedX, movedY := false, false
		if e2 > -dy {
			err -= dy
			x += sx
			movedX = true
		}
		if e2 < dx {
			err += dx
			y += sy
			movedY = true
		}
		if movedX && movedY {
			// Diagonal step: forbid cutting the corner between the two
			// cells passed through, matching gridmap's octile rule.
			if !grid.GetLabel(x-sx, y) || !grid.GetLabel(x, y-sy) {
				return false
			}
		}
	}
}

func abs32(v int32) int32 {
	if v < 0 {
		return -v
	}
	return v
}

func euclid(x1, y1, x2, y2 int32) float64 {
	dx := float64(x2 - x1)
	dy := float64(y2 - y1)
	return math.Sqrt(dx*dx + dy*dy)
}

func (cpg *CornerPointGraph) buildStaticEdges() {
	n := len(cpg.corners)
	cpg.edges = make([][]Edge, n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if i == j {
				continue
			}
			a, b := cpg.corners[i], cpg.corners[j]
			if hasLineOfSight(cpg.grid, a.x, a.y, b.x, b.y) {
				cpg.edges[i] = append(cpg.edges[i], Edge{Head: core.NodeID(j), Cost: euclid(a.x, a.y, b.x, b.y)})
			}
		}
	}
}

// NumStaticNodes returns the number of permanent corner nodes.
func (cpg *CornerPointGraph) NumStaticNodes() int { return len(cpg.corners) }

// GetXY returns the position of any node, static or dynamically inserted.
func (cpg *CornerPointGraph) GetXY(id core.NodeID) (x, y int32) {
	if int(id) < len(cpg.corners) {
		c := cpg.corners[id]
		return c.x, c.y
	}
	di := int(id) - len(cpg.corners)
	return cpg.dynX[di], cpg.dynY[di]
}

// OutEdges returns id's outgoing edges, merging the static visibility graph
// with any edges added by dynamic insertion (spec: "start/target nodes ...
// inserted dynamically per query").
func (cpg *CornerPointGraph) OutEdges(id core.NodeID) []Edge {
	if int(id) < len(cpg.corners) {
		return append(append([]Edge(nil), cpg.edges[id]...), cpg.dynIncoming[id]...)
	}
	di := int(id) - len(cpg.corners)
	return cpg.dynEdges[di]
}

// InsertQueryNode adds a synthetic node at (x,y), connecting it (in both
// directions) to every corner it has line of sight to. Returns the new
// node's id.
func (cpg *CornerPointGraph) InsertQueryNode(x, y int32) core.NodeID {
	id := core.NodeID(len(cpg.corners) + len(cpg.dynX))
	cpg.dynX = append(cpg.dynX, x)
	cpg.dynY = append(cpg.dynY, y)

	bounds, _ := rtreego.NewRect(rtreego.Point{-1, -1}, []float64{float64(cpg.grid.Width()) + 2, float64(cpg.grid.Height()) + 2})
	var out []Edge
	for _, res := range cpg.tree.SearchIntersect(bounds) {
		cs := res.(*cornerSpatial)
		c := cpg.corners[cs.index]
		if hasLineOfSight(cpg.grid, x, y, c.x, c.y) {
			cost := euclid(x, y, c.x, c.y)
			out = append(out, Edge{Head: core.NodeID(cs.index), Cost: cost})
			cid := core.NodeID(cs.index)
			cpg.dynIncoming[cid] = append(cpg.dynIncoming[cid], Edge{Head: id, Cost: cost})
		}
	}
	cpg.dynEdges = append(cpg.dynEdges, out)
	return id
}

// Clear removes every dynamically-inserted node (spec: CPG start/target
// nodes are "destroyed on clear()").
func (cpg *CornerPointGraph) Clear() {
	cpg.resetDynamic()
}

func (cpg *CornerPointGraph) resetDynamic() {
	cpg.dynX = nil
	cpg.dynY = nil
	cpg.dynEdges = nil
	cpg.dynIncoming = make(map[core.NodeID][]Edge)
}

// ToRankedXYGraph bakes the corner-visibility graph, including whatever
// dynamic start/target nodes are currently inserted, into an XYGraph so
// FCH-style expansion (pkg/expansion.FCHPolicy) can run over it (spec:
// "Expansion policies (graph) ... FCH-CPG"). Callers must insert query
// nodes via InsertQueryNode before calling this, since dynamic nodes
// inserted afterward will not appear in the returned graph. Since a
// corner-point graph has
// no contraction hierarchy of its own, rank is assigned by ascending
// out-degree: low-connectivity corners (dead ends, narrow passages) are
// contracted first, mirroring the same "contract the least-connected nodes
// first" heuristic the teacher's own priority-term-based CH construction
// uses (pkg/contractor/contraction_hierarchies.go's calculatePriority).
func (cpg *CornerPointGraph) ToRankedXYGraph() *XYGraph {
	numStatic := len(cpg.corners)
	n := numStatic + len(cpg.dynX)
	g := NewXYGraph(n)
	for i, c := range cpg.corners {
		g.SetXY(core.NodeID(i), c.x, c.y)
		for _, e := range cpg.edges[i] {
			g.AddEdge(core.NodeID(i), e.Head, e.Cost)
		}
		for _, e := range cpg.dynIncoming[core.NodeID(i)] {
			g.AddEdge(core.NodeID(i), e.Head, e.Cost)
		}
	}
	for di := range cpg.dynX {
		id := core.NodeID(numStatic + di)
		g.SetXY(id, cpg.dynX[di], cpg.dynY[di])
		for _, e := range cpg.dynEdges[di] {
			g.AddEdge(id, e.Head, e.Cost)
		}
	}
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	for i := 1; i < len(order); i++ {
		for j := i; j > 0 && len(g.OutEdges(core.NodeID(order[j]))) < len(g.OutEdges(core.NodeID(order[j-1]))); j-- {
			order[j], order[j-1] = order[j-1], order[j]
		}
	}
	for rank, nodeIdx := range order {
		g.SetRank(core.NodeID(nodeIdx), int32(rank))
	}
	return g
}
