// Package expansion implements the ExpansionPolicy contract (spec section
// 4.1) and every concrete policy the spec names: plain octile grid
// expansion, the JPS family, weighted-grid JPS, and the contraction-
// hierarchy / corner-point graph policies.
package expansion

import (
	"github.com/lintang-bs/pathcore/pkg/core"
	"github.com/lintang-bs/pathcore/pkg/problem"
)

// Successor is one (node, edge-cost) pair produced by a call to Expand.
type Successor struct {
	Node *core.SearchNode
	Cost float64
}

// Policy is the contract every expansion policy implements (spec section
// 4.1). Expand populates an internal successor buffer; First/Next iterate
// it. Policies do not own the open list — pkg/search owns that — they only
// look up neighbours through the map/graph they wrap and hand back node
// pointers from their own pool.
type Policy interface {
	// Expand computes the successors of n for the current query and fills
	// the internal buffer that First/Next iterate.
	Expand(n *core.SearchNode, pi *problem.Instance)

	// First returns the first buffered successor, or ok=false if Expand
	// produced none.
	First() (s Successor, ok bool)

	// Next returns the next buffered successor after the last one returned
	// by First/Next, or ok=false past the end.
	Next() (s Successor, ok bool)

	// Generate returns the unique search-node for id, allocating it lazily
	// on first use.
	Generate(id core.NodeID) *core.SearchNode

	// GenerateStartNode and GenerateTargetNode produce the canonical
	// start/target search-node for the query, applying any policy-specific
	// coordinate transform or synthetic-node insertion (CPG).
	GenerateStartNode(pi *problem.Instance) *core.SearchNode
	GenerateTargetNode(pi *problem.Instance) *core.SearchNode

	// GetXY is the inverse id->coordinate map, used for tracing/reporting.
	GetXY(id core.NodeID) (x, y int32)

	// Clear releases per-query scratch state (e.g. CPG's dynamic nodes).
	Clear()
}

// RankedPolicy is implemented by contraction-hierarchy policies, which
// additionally expose each node's contraction rank so a bidirectional
// search can enforce "traverse only toward higher ranks going up".
type RankedPolicy interface {
	Policy
	GetRank(id core.NodeID) int32
}

// OnRelaxHook is called by the search harness after every relaxation that
// updates a node's parent (spec section 4.3, "On-relax hook"). JPS2/JPS2+
// policies use it to keep parent_direction in sync with the edge that
// actually relaxed the node; every other policy gets the default no-op.
type OnRelaxHook interface {
	OnRelax(n *core.SearchNode, parentDir core.Direction)
}

// successorBuffer is embedded by every concrete policy to implement
// First/Next without duplicating the iteration bookkeeping.
type successorBuffer struct {
	buf []Successor
	pos int
}

func (b *successorBuffer) reset() {
	b.buf = b.buf[:0]
	b.pos = 0
}

func (b *successorBuffer) add(n *core.SearchNode, cost float64) {
	b.buf = append(b.buf, Successor{Node: n, Cost: cost})
}

func (b *successorBuffer) First() (Successor, bool) {
	b.pos = 0
	return b.Next()
}

func (b *successorBuffer) Next() (Successor, bool) {
	if b.pos >= len(b.buf) {
		return Successor{}, false
	}
	s := b.buf[b.pos]
	b.pos++
	return s, true
}
