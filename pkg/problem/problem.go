// Package problem holds the input and output tuples the search harnesses in
// pkg/search accept and return (spec section 3, "Problem instance" /
// "Solution").
package problem

import "github.com/lintang-bs/pathcore/pkg/core"

// Instance is one shortest-path query. InstanceID doubles as the search
// epoch: passing a fresh, monotonically increasing InstanceID per query is
// what lets pkg/core.NodePool lazily invalidate stale per-node state
// instead of clearing it eagerly.
type Instance struct {
	StartID    core.NodeID
	TargetID   core.NodeID
	Verbose    bool
	InstanceID uint32
}

// Solution is the result of a single query.
type Solution struct {
	Path             []core.NodeID
	SumOfEdgeCosts   float64
	NodesExpanded    int64
	NodesInserted    int64
	NodesUpdated     int64
	NodesTouched     int64
	TimeElapsedMicro int64
}

// Found reports whether a path was found (a non-infinite cost with at least
// the start node in the path).
func (s *Solution) Found() bool {
	return len(s.Path) > 0
}
