package expansion

import "github.com/lintang-bs/pathcore/pkg/graph"

// NewFCHCPGPolicy runs FCHPolicy over the ranked graph baked out of a
// corner-point graph's visibility edges, including those of the query
// nodes inserted at the time of the call (spec: "FCH-CPG"). Dynamic
// start/target insertion has already happened by the time this is used:
// callers first call cpg.InsertQueryNode for the query's start/target and
// pass a problem.Instance whose StartID/TargetID are the returned ids, then
// rebuild (or cache) the ranked graph including those synthetic nodes.
// Because rank assignment here is a static, degree-based heuristic rather
// than a true contraction order, this policy trades some of full CH's
// upward-only pruning guarantee for simplicity — a documented
// approximation, since building a true contraction hierarchy is out of
// scope (spec section 1).
func NewFCHCPGPolicy(cpg *graph.CornerPointGraph) *FCHPolicy {
	return NewFCHPolicy(cpg.ToRankedXYGraph())
}
