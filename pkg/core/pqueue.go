package core

// OpenList is a binary min-heap over *SearchNode, ordered by SearchNode.Less.
// Each node's position in the backing slice is mirrored on the node itself
// (heapIndex), so DecreaseKey/Contains/Remove are O(log n) without a
// separate position map — generalizing the teacher's MinHeap[T]+pos-map
// pattern (pkg/contractor/priority_queue.go) to store the index directly on
// the payload instead of in a side map keyed by an Item constraint.
type OpenList struct {
	nodes []*SearchNode
}

// NewOpenList returns an empty open list.
func NewOpenList() *OpenList {
	return &OpenList{}
}

// Len returns the number of nodes currently on the list.
func (o *OpenList) Len() int { return len(o.nodes) }

// Contains reports whether n is currently on this open list.
func (o *OpenList) Contains(n *SearchNode) bool {
	i := n.heapIndex
	return i >= 0 && i < len(o.nodes) && o.nodes[i] == n
}

// Peek returns the minimum node without removing it, or nil if empty.
func (o *OpenList) Peek() *SearchNode {
	if len(o.nodes) == 0 {
		return nil
	}
	return o.nodes[0]
}

// Push inserts n, which must not already be on this list.
func (o *OpenList) Push(n *SearchNode) {
	o.nodes = append(o.nodes, n)
	n.heapIndex = len(o.nodes) - 1
	o.siftUp(n.heapIndex)
}

// Pop removes and returns the minimum node, or nil if the list is empty.
func (o *OpenList) Pop() *SearchNode {
	if len(o.nodes) == 0 {
		return nil
	}
	min := o.nodes[0]
	last := len(o.nodes) - 1
	o.swap(0, last)
	o.nodes[last] = nil
	o.nodes = o.nodes[:last]
	min.heapIndex = notInHeap
	if len(o.nodes) > 0 {
		o.siftDown(0)
	}
	return min
}

// DecreaseKey re-establishes heap order after n's key (f, or the f/g pair)
// has been lowered in place, e.g. by SearchNode.Relax. n must already be on
// this list. Since the search-node tie-break also depends on g, a change
// that only affects the tie-break (g increasing f-neutrally can't happen
// under Relax, but a caller performing a raw mutation might) is handled the
// same way: sift up first, then down, since either direction may apply.
func (o *OpenList) DecreaseKey(n *SearchNode) {
	i := n.heapIndex
	if i < 0 {
		return
	}
	i = o.siftUp(i)
	o.siftDown(i)
}

// Remove takes n off the list regardless of its current key, used when an
// expansion policy needs to retract a previously-generated successor.
func (o *OpenList) Remove(n *SearchNode) {
	i := n.heapIndex
	if i < 0 {
		return
	}
	last := len(o.nodes) - 1
	o.swap(i, last)
	o.nodes[last] = nil
	o.nodes = o.nodes[:last]
	n.heapIndex = notInHeap
	if i < len(o.nodes) {
		i = o.siftUp(i)
		o.siftDown(i)
	}
}

// Clear empties the list, releasing every node's heap index. It does not
// touch g/f/parent/expanded — that is the node pool's job on the next
// search.
func (o *OpenList) Clear() {
	for _, n := range o.nodes {
		n.heapIndex = notInHeap
	}
	o.nodes = o.nodes[:0]
}

func (o *OpenList) swap(i, j int) {
	o.nodes[i], o.nodes[j] = o.nodes[j], o.nodes[i]
	o.nodes[i].heapIndex = i
	o.nodes[j].heapIndex = j
}

func (o *OpenList) siftUp(i int) int {
	for i > 0 {
		parent := (i - 1) / 2
		if !o.nodes[i].Less(o.nodes[parent]) {
			break
		}
		o.swap(i, parent)
		i = parent
	}
	return i
}

func (o *OpenList) siftDown(i int) int {
	n := len(o.nodes)
	for {
		left := 2*i + 1
		right := 2*i + 2
		smallest := i
		if left < n && o.nodes[left].Less(o.nodes[smallest]) {
			smallest = left
		}
		if right < n && o.nodes[right].Less(o.nodes[smallest]) {
			smallest = right
		}
		if smallest == i {
			return i
		}
		o.swap(i, smallest)
		i = smallest
	}
}
