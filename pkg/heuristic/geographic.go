package heuristic

import "github.com/golang/geo/s2"

// earthRadiusMeters is the mean Earth radius used to convert an s2 central
// angle into a distance.
const earthRadiusMeters = 6371008.8

// microdegree is the fixed-point scale xy_graph uses to store lat/lon
// coordinates as int32: a coordinate value of 1e6 is 1 degree.
const microdegree = 1e6

// Geographic estimates great-circle distance between two xy_graph
// coordinates that hold lat/lon encoded as fixed-point microdegrees, using
// s2's spherical distance, generalized from the teacher's
// alg/s2_geo.go ProjectPointToLineCoord (which projects a snapped point onto
// a road segment using the same s2.PointFromLatLng construction) into a
// heuristic distance estimate instead of a projection.
type Geographic struct {
	// MetersPerCostUnit converts great-circle meters into the graph's cost
	// unit, e.g. meters-per-minute at a reference speed. 0 is treated as 1,
	// i.e. the heuristic estimates in meters directly.
	MetersPerCostUnit float64
}

// NewGeographic returns a Geographic heuristic scaled by metersPerCostUnit.
func NewGeographic(metersPerCostUnit float64) Geographic {
	return Geographic{MetersPerCostUnit: metersPerCostUnit}
}

// Estimate implements Func, treating (x, y) as (lon, lat) microdegrees.
func (g Geographic) Estimate(x1, y1, x2, y2 int32) float64 {
	from := s2.LatLngFromDegrees(float64(y1)/microdegree, float64(x1)/microdegree)
	to := s2.LatLngFromDegrees(float64(y2)/microdegree, float64(x2)/microdegree)
	meters := float64(from.Distance(to)) * earthRadiusMeters

	scale := g.MetersPerCostUnit
	if scale == 0 {
		scale = 1
	}
	return meters / scale
}
