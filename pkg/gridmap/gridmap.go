// Package gridmap implements the bit-packed passability grid and the
// weighted-terrain grid variant used by the grid expansion policies in
// pkg/expansion (spec section 3, "Grid map" / "Weighted grid map").
package gridmap

import "github.com/lintang-bs/pathcore/pkg/core"

// padding is the width, in cells, of the blocked border added on every
// side of the grid so 3x3 neighbourhood extraction never needs a bounds
// check.
const padding = 1

// GridMap is a rectangular passability grid, stored as one bit per cell,
// with a one-cell blocked pad on every side. Coordinates are exposed both
// in unpadded (x,y) form and as a single padded id (spec section 3).
type GridMap struct {
	width, height             int32 // unpadded dimensions
	paddedWidth, paddedHeight int32
	bits                      []uint64
	// rotated is a 90-degree-rotated copy of bits, used for fast vertical
	// scans by the JPS family (spec: "A rotated-by-90 copy is maintained
	// for fast vertical scans").
	rotated []uint64
}

// NewGridMap allocates a width x height passability grid, all cells
// initially blocked. Callers populate it with SetLabel.
func NewGridMap(width, height int32) *GridMap {
	g := &GridMap{
		width:         width,
		height:        height,
		paddedWidth:   width + 2*padding,
		paddedHeight:  height + 2*padding,
	}
	g.bits = make([]uint64, wordsFor(g.paddedWidth*g.paddedHeight))
	g.rotated = make([]uint64, wordsFor(g.paddedWidth*g.paddedHeight))
	return g
}

func wordsFor(nbits int32) int {
	return int((nbits + 63) / 64)
}

// Width and Height return the unpadded grid dimensions.
func (g *GridMap) Width() int32  { return g.width }
func (g *GridMap) Height() int32 { return g.height }

// PaddedWidth and PaddedHeight return the dimensions including the border.
func (g *GridMap) PaddedWidth() int32  { return g.paddedWidth }
func (g *GridMap) PaddedHeight() int32 { return g.paddedHeight }

// ToPaddedID converts unpadded (x,y) to a padded node id.
func (g *GridMap) ToPaddedID(x, y int32) core.NodeID {
	return core.NodeID((y+padding)*g.paddedWidth + (x + padding))
}

// ToUnpadded converts a padded node id back to unpadded (x,y).
func (g *GridMap) ToUnpadded(id core.NodeID) (x, y int32) {
	px := int32(id) % g.paddedWidth
	py := int32(id) / g.paddedWidth
	return px - padding, py - padding
}

func (g *GridMap) inBoundsPadded(px, py int32) bool {
	return px >= 0 && px < g.paddedWidth && py >= 0 && py < g.paddedHeight
}

func bitPos(paddedID int32) (word int, bit uint) {
	return int(paddedID / 64), uint(paddedID % 64)
}

// GetLabel reports whether the cell at unpadded (x,y) is traversable. Cells
// outside the unpadded bounds (including the pad) are always blocked.
func (g *GridMap) GetLabel(x, y int32) bool {
	if x < 0 || x >= g.width || y < 0 || y >= g.height {
		return false
	}
	return g.getLabelPadded(x+padding, y+padding)
}

func (g *GridMap) getLabelPadded(px, py int32) bool {
	if !g.inBoundsPadded(px, py) {
		return false
	}
	word, bit := bitPos(py*g.paddedWidth + px)
	return g.bits[word]&(uint64(1)<<bit) != 0
}

// SetLabel marks the cell at unpadded (x,y) traversable (v=true) or blocked.
func (g *GridMap) SetLabel(x, y int32, v bool) {
	if x < 0 || x >= g.width || y < 0 || y >= g.height {
		return
	}
	px, py := x+padding, y+padding
	word, bit := bitPos(py*g.paddedWidth + px)
	rword, rbit := bitPos(g.rotatedIndex(px, py))
	if v {
		g.bits[word] |= uint64(1) << bit
		g.rotated[rword] |= uint64(1) << rbit
	} else {
		g.bits[word] &^= uint64(1) << bit
		g.rotated[rword] &^= uint64(1) << rbit
	}
}

// rotatedIndex maps a padded (px,py) coordinate into the 90-degree-rotated
// copy's linear index, following the same transform the sipp rotated
// gridmap uses for temporal-obstacle scans: rx = paddedHeight-py-1, ry = px.
func (g *GridMap) rotatedIndex(px, py int32) int32 {
	rx := g.paddedHeight - py - 1
	ry := px
	return ry*g.paddedHeight + rx
}

// GetLabelPaddedID reports traversability by padded id directly, avoiding a
// round trip through unpadded coordinates on the hot expansion path.
func (g *GridMap) GetLabelPaddedID(id core.NodeID) bool {
	px := int32(id) % g.paddedWidth
	py := int32(id) / g.paddedWidth
	return g.getLabelPadded(px, py)
}

// Get3x3Mask returns the 9-bit traversability mask of the 3x3 neighbourhood
// centred on the padded cell at id. Bit i (0..8) corresponds to, in
// row-major order starting at the top-left corner:
//
//	0 1 2
//	3 4 5
//	6 7 8
//
// bit 4 (the centre) is always the queried cell itself.
func (g *GridMap) Get3x3Mask(id core.NodeID) uint16 {
	px := int32(id) % g.paddedWidth
	py := int32(id) / g.paddedWidth
	var mask uint16
	bitIdx := 0
	for dy := int32(-1); dy <= 1; dy++ {
		for dx := int32(-1); dx <= 1; dx++ {
			if g.getLabelPadded(px+dx, py+dy) {
				mask |= 1 << uint(bitIdx)
			}
			bitIdx++
		}
	}
	return mask
}

// bit indices within a Get3x3Mask result.
const (
	Mask3x3NW = 0
	Mask3x3N  = 1
	Mask3x3NE = 2
	Mask3x3W  = 3
	Mask3x3C  = 4
	Mask3x3E  = 5
	Mask3x3SW = 6
	Mask3x3S  = 7
	Mask3x3SE = 8
)
