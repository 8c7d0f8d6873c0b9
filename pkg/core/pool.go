package core

// NodePool lazily allocates a unique *SearchNode per id and hands out
// pointers that stay valid for the lifetime of the pool (spec section 4.8
// / 9, "stable per-id node references"). Storage grows in geometric
// blocks so previously-returned pointers are never invalidated by a slice
// reallocation.
//
// The pool does not clear per-node state between searches: Clear only
// bumps a counter. Staleness is resolved lazily, per node, the first
// time SearchNode.touch sees a mismatched search id.
type NodePool struct {
	blocks     [][]SearchNode
	nextBlock  int
	index      map[NodeID]*SearchNode
	searchID   uint32
}

const initialBlockCapacity = 1024

// NewNodePool creates an empty pool. The first search id handed out by
// Clear is 1, so the zero value of SearchNode.searchID (0) never
// collides with a real search.
func NewNodePool() *NodePool {
	return &NodePool{
		index:    make(map[NodeID]*SearchNode),
		searchID: 0,
	}
}

// Generate returns the unique search-node for id, allocating it on first
// use. The returned node's fields are only meaningful for the pool's
// current search id; callers on the hot path call Touch (or Init) before
// reading g/f/parent/expanded.
func (p *NodePool) Generate(id NodeID) *SearchNode {
	if n, ok := p.index[id]; ok {
		return n
	}
	n := p.alloc(id)
	p.index[id] = n
	return n
}

// Lookup returns the existing node for id without allocating, and false
// if none has been generated yet.
func (p *NodePool) Lookup(id NodeID) (*SearchNode, bool) {
	n, ok := p.index[id]
	return n, ok
}

func (p *NodePool) alloc(id NodeID) *SearchNode {
	if p.nextBlock == 0 {
		p.blocks = append(p.blocks, make([]SearchNode, 0, initialBlockCapacity))
		p.nextBlock = len(p.blocks) - 1
	}
	block := &p.blocks[p.nextBlock]
	if len(*block) == cap(*block) {
		newCap := cap(*block) * 2
		p.blocks = append(p.blocks, make([]SearchNode, 0, newCap))
		p.nextBlock = len(p.blocks) - 1
		block = &p.blocks[p.nextBlock]
	}
	*block = append(*block, *newSearchNode(id))
	return &(*block)[len(*block)-1]
}

// Touch resolves staleness for n against the pool's current search id.
// Call it before reading a node fetched via Generate/Lookup unless the
// caller is about to call Init anyway (Init touches internally).
func (p *NodePool) Touch(n *SearchNode) {
	n.touch(p.searchID)
}

// SearchID returns the id of the search currently in progress.
func (p *NodePool) SearchID() uint32 { return p.searchID }

// Clear starts a new search: it increments the epoch used to lazily
// invalidate stale node state. No per-node work happens here, which is
// the whole point of epoch-based reset (spec section 4.8) — resetting
// eagerly would be O(N) per query.
func (p *NodePool) Clear() uint32 {
	p.searchID++
	return p.searchID
}

// Size returns the number of distinct ids ever generated from this pool.
func (p *NodePool) Size() int { return len(p.index) }

// Mem approximates the pool's memory footprint in bytes; every block's
// contribution is included; see DESIGN.md re: the upstream mem()
// accumulator bug that this implementation deliberately avoids.
func (p *NodePool) Mem() uintptr {
	var total uintptr
	for _, b := range p.blocks {
		total += uintptr(cap(b)) * nodeSize
	}
	return total
}

const nodeSize = uintptr(0) +
	8 /* id/expanded/parentDir packed by field padding, approximated */ +
	8 + 8 + // g, f
	8 + // parent pointer
	4 + 4 // searchID, heapIndex
