// Package core holds the pieces every search algorithm and expansion
// policy shares: the node identifier space, the per-search node state
// machine, the node pool that hands out stable pointers, and the indexed
// open-list priority queue.
package core

import "math"

// NodeID is a 31-bit non-negative node identifier. On grids it is the
// padded y*width+x index; on graphs it is an index in [0, numNodes).
type NodeID int32

// InvalidID is the sentinel meaning "absent" (spec: INF_ID).
const InvalidID NodeID = -1

// Direction is the arrival direction used by the JPS family of expansion
// policies to prune successor sets. NONE means "no parent direction is
// known yet" (e.g. the start node).
type Direction uint8

const (
	DirNone Direction = iota
	DirN
	DirNE
	DirE
	DirSE
	DirS
	DirSW
	DirW
	DirNW
)

// Opposite returns the reverse of d.
func (d Direction) Opposite() Direction {
	switch d {
	case DirN:
		return DirS
	case DirNE:
		return DirSW
	case DirE:
		return DirW
	case DirSE:
		return DirNW
	case DirS:
		return DirN
	case DirSW:
		return DirNE
	case DirW:
		return DirE
	case DirNW:
		return DirSE
	default:
		return DirNone
	}
}

// IsDiagonal reports whether d is one of the four diagonal directions.
func (d Direction) IsDiagonal() bool {
	switch d {
	case DirNE, DirSE, DirSW, DirNW:
		return true
	default:
		return false
	}
}

const notInHeap = -1

// SearchNode is the mutable per-node search state described in spec
// section 3 ("Search node"). Exactly one exists per (id, policy) pair for
// the lifetime of the owning NodePool; freshness across distinct searches
// is provided by comparing searchID against the pool's current search id,
// not by reallocating the node.
type SearchNode struct {
	id         NodeID
	expanded   bool
	g          float64
	f          float64
	parent     *SearchNode
	searchID   uint32
	heapIndex  int
	parentDir  Direction
}

func newSearchNode(id NodeID) *SearchNode {
	return &SearchNode{
		id:        id,
		g:         math.Inf(1),
		f:         math.Inf(1),
		heapIndex: notInHeap,
		parentDir: DirNone,
	}
}

// ID returns the node's graph/grid identifier.
func (n *SearchNode) ID() NodeID { return n.id }

// Expanded reports whether the node has already been popped and expanded
// during the current search.
func (n *SearchNode) Expanded() bool { return n.expanded }

// SetExpanded marks the node's expansion status.
func (n *SearchNode) SetExpanded(v bool) { n.expanded = v }

// G returns the best known tentative distance from the search's start node.
func (n *SearchNode) G() float64 { return n.g }

// F returns the node's priority key, g+h.
func (n *SearchNode) F() float64 { return n.f }

// Parent returns the predecessor search-node, or nil at the start node or
// when the node has not yet been reached.
func (n *SearchNode) Parent() *SearchNode { return n.parent }

// SetParent overrides the predecessor without touching g/f. Used by
// expansion policies that synthesize nodes outside the normal relax path
// (e.g. CPG start/target insertion).
func (n *SearchNode) SetParent(p *SearchNode) { n.parent = p }

// ParentDirection returns the direction of arrival recorded by the last
// successful relaxation, used by JPS-family policies to prune successors.
func (n *SearchNode) ParentDirection() Direction { return n.parentDir }

// SetParentDirection updates the arrival direction. This is the "on-relax
// hook" target described in spec section 4.3: JPS2/JPS2+ must call this
// after every relaxation that updates n's parent, or later pruning uses a
// stale direction and loses optimality.
func (n *SearchNode) SetParentDirection(d Direction) { n.parentDir = d }

// HeapIndex returns the node's current position in its owning open list's
// backing slice, or -1 if the node is not currently on any open list.
func (n *SearchNode) HeapIndex() int { return n.heapIndex }

// SearchID returns the id of the search that last touched this node.
func (n *SearchNode) SearchID() uint32 { return n.searchID }

// touch lazily resets stale per-search state the first time a node is read
// or written during search whose id differs from the node's last-seen
// search id (spec section 4.8 / 9, "epoch-based reset").
func (n *SearchNode) touch(searchID uint32) {
	if n.searchID == searchID {
		return
	}
	n.searchID = searchID
	n.expanded = false
	n.g = math.Inf(1)
	n.f = math.Inf(1)
	n.parent = nil
	n.parentDir = DirNone
	n.heapIndex = notInHeap
}

// EnsureFresh resolves staleness against searchID without touching
// g/f/parent (unlike Init). Expansion policies call this on every node they
// hand back from Generate before the search harness reads or compares its
// g/f, since a node's last touch may belong to a previous query.
func (n *SearchNode) EnsureFresh(searchID uint32) {
	n.touch(searchID)
}

// Init seeds a freshly-touched node (the start node, or a node generated
// for the first time this search) with its initial g/f/parent.
func (n *SearchNode) Init(searchID uint32, parent *SearchNode, g, f float64) {
	n.touch(searchID)
	n.parent = parent
	n.g = g
	n.f = f
}

// Relax lowers g (and f by the same delta) and rebinds parent. The caller
// must have already established gval < n.g.
func (n *SearchNode) Relax(g float64, parent *SearchNode) {
	n.f = (n.f - n.g) + g
	n.g = g
	n.parent = parent
}

// Less implements the tie-break rule from spec section 4.5 and confirmed
// against the upstream search_node::operator<: smaller f first, and among
// equal f, larger g wins (favouring the node closer to the target under a
// consistent heuristic).
func (n *SearchNode) Less(other *SearchNode) bool {
	if n.f != other.f {
		return n.f < other.f
	}
	return n.g > other.g
}
