package gridmap

import "github.com/lintang-bs/pathcore/pkg/core"

// CheapTerrain is the reference terrain byte used to scale heuristics; the
// benchmark format uses '.' for the cheapest traversable terrain (spec
// section 3, "Weighted grid map").
const CheapTerrain byte = '.'

// BlockedTerrain marks a cell as impassable regardless of its nominal
// weight.
const BlockedTerrain byte = '@'

// terrainWeight maps a terrain byte to its per-unit-distance movement cost.
// '.' costs 1; the letters 'a'..'z' cost 2..27, rising linearly with the
// letter, so higher characters denote more expensive terrain; any other
// byte costs 1.
func terrainWeight(b byte) float64 {
	if b == CheapTerrain {
		return 1
	}
	if b >= 'a' && b <= 'z' {
		return float64(b-'a') + 2
	}
	return 1
}

// WeightedGridMap is a rectangular grid where every traversable cell also
// carries a terrain byte. Edge cost between two adjacent cells is the
// average of their terrain weights (spec section 3).
type WeightedGridMap struct {
	width, height int32
	terrain       []byte
}

// NewWeightedGridMap allocates a width x height weighted grid with every
// cell initialised to BlockedTerrain.
func NewWeightedGridMap(width, height int32) *WeightedGridMap {
	t := make([]byte, width*height)
	for i := range t {
		t[i] = BlockedTerrain
	}
	return &WeightedGridMap{width: width, height: height, terrain: t}
}

func (w *WeightedGridMap) Width() int32  { return w.width }
func (w *WeightedGridMap) Height() int32 { return w.height }

func (w *WeightedGridMap) index(x, y int32) int32 { return y*w.width + x }

// ToID converts unpadded (x,y) to a node id, unpadded (weighted grids do not
// need the octile-corner padding since diagonal corner-cutting rules do not
// apply the same way to terrain-weighted movement in this engine).
func (w *WeightedGridMap) ToID(x, y int32) core.NodeID { return core.NodeID(w.index(x, y)) }

// ToXY converts a node id back to unpadded (x,y).
func (w *WeightedGridMap) ToXY(id core.NodeID) (x, y int32) {
	return int32(id) % w.width, int32(id) / w.width
}

func (w *WeightedGridMap) inBounds(x, y int32) bool {
	return x >= 0 && x < w.width && y >= 0 && y < w.height
}

// SetTerrain sets the terrain byte for unpadded (x,y).
func (w *WeightedGridMap) SetTerrain(x, y int32, b byte) {
	if !w.inBounds(x, y) {
		return
	}
	w.terrain[w.index(x, y)] = b
}

// Terrain returns the terrain byte for unpadded (x,y), or BlockedTerrain if
// out of bounds.
func (w *WeightedGridMap) Terrain(x, y int32) byte {
	if !w.inBounds(x, y) {
		return BlockedTerrain
	}
	return w.terrain[w.index(x, y)]
}

// Passable reports whether (x,y) is traversable at all.
func (w *WeightedGridMap) Passable(x, y int32) bool {
	return w.inBounds(x, y) && w.Terrain(x, y) != BlockedTerrain
}

// EdgeCost returns the cost of moving between two adjacent traversable
// cells: the average of their terrain weights (spec section 3). It does not
// validate adjacency.
func (w *WeightedGridMap) EdgeCost(x1, y1, x2, y2 int32) (float64, bool) {
	if !w.Passable(x1, y1) || !w.Passable(x2, y2) {
		return 0, false
	}
	wa := terrainWeight(w.Terrain(x1, y1))
	wb := terrainWeight(w.Terrain(x2, y2))
	return (wa + wb) / 2, true
}

// HScale returns the cheapest-terrain reference weight used to keep octile
// heuristics admissible over this grid (spec section 4.3).
func (w *WeightedGridMap) HScale() float64 {
	return terrainWeight(CheapTerrain)
}
