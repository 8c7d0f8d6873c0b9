// Package heuristic provides the pure distance-estimate functions consumed
// by pkg/search: octile distance for 8-connected grids and the zero
// heuristic that turns a best-first search into plain Dijkstra/SSSP.
package heuristic

import "math"

// Func estimates the remaining cost from (x1,y1) to (x2,y2). Implementations
// must be admissible and, for the search harnesses in pkg/search to retain
// their optimality guarantees, consistent: h(u) <= c(u,v) + h(v) for every
// edge (u,v).
type Func interface {
	Estimate(x1, y1, x2, y2 int32) float64
}

// Zero always returns 0, degrading Flexible A* into Dijkstra/SSSP (spec
// section 4, "Heuristics: ... zero (Dijkstra/SSSP)").
type Zero struct{}

// Estimate implements Func.
func (Zero) Estimate(_, _, _, _ int32) float64 { return 0 }

const sqrt2 = math.Sqrt2

// Octile computes the octile distance between two grid cells, optionally
// scaled by HScale to stay admissible over weighted terrain (spec section
// 4.3, "Weighted-grid JPS ... uses the heuristic's hscale").
type Octile struct {
	// HScale is the per-unit-distance cost of the cheapest traversable
	// terrain. 0 is treated as 1 (uniform-cost grid).
	HScale float64
}

// NewOctile returns a heuristic scaled by hscale, or a uniform-cost octile
// heuristic if hscale is 0.
func NewOctile(hscale float64) Octile {
	return Octile{HScale: hscale}
}

// Estimate implements Func using the standard octile-distance formula:
// sqrt(2)*min(|dx|,|dy|) + (max(|dx|,|dy|) - min(|dx|,|dy|)), scaled by the
// cheapest-terrain reference cost.
func (o Octile) Estimate(x1, y1, x2, y2 int32) float64 {
	dx := absInt32(x1 - x2)
	dy := absInt32(y1 - y2)
	var lo, hi float64
	if dx < dy {
		lo, hi = float64(dx), float64(dy)
	} else {
		lo, hi = float64(dy), float64(dx)
	}
	scale := o.HScale
	if scale == 0 {
		scale = 1
	}
	return scale * (sqrt2*lo + (hi - lo))
}

func absInt32(v int32) int32 {
	if v < 0 {
		return -v
	}
	return v
}
