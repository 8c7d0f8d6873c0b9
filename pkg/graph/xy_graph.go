// Package graph holds the two graph representations the contraction-
// hierarchy and corner-point expansion policies operate over: the prepared
// contracted road-network graph (XYGraph) and the corner-point visibility
// graph derived from a grid (CornerPointGraph).
package graph

import (
	"bytes"
	"encoding/gob"

	"github.com/lintang-bs/pathcore/pkg/core"
)

// Edge is one adjacency-list entry: a head node and the traversal cost to
// reach it. Contracted graphs additionally mark shortcut edges and record
// the two original edges they replace, so a bidirectional CH search can
// unpack a path of shortcuts back into real edges (spec section 3, "Graph";
// SPEC_FULL section 13, "CH shortcut unpacking").
type Edge struct {
	Head       core.NodeID
	Cost       float64
	IsShortcut bool
	// RemovedEdgeOne indexes u's OutEdges and RemovedEdgeTwo indexes v's
	// OutEdges, where u->w is a shortcut replacing u->v->w. Both are only
	// meaningful when IsShortcut is true.
	RemovedEdgeOne int32
	RemovedEdgeTwo int32
}

// XYGraph is a prepared contraction-hierarchy graph: for every node, an
// (x,y) position, outgoing and incoming adjacency lists, and a contraction
// rank (spec section 3, "Graph": "an xy_graph holds for each node: an (x,y)
// pair and two adjacency lists ... A separate rank array gives each node
// its contraction rank"). Construction of the hierarchy itself (rank
// assignment, shortcut insertion) is out of scope here; pkg/store loads an
// already-prepared XYGraph.
type XYGraph struct {
	x, y     []int32
	outEdges [][]Edge
	inEdges  [][]Edge
	rank     []int32
}

// NewXYGraph allocates a graph with n nodes, all at (0,0), rank 0, with no
// edges. Callers populate positions, ranks and edges via the setters below.
func NewXYGraph(n int) *XYGraph {
	return &XYGraph{
		x:        make([]int32, n),
		y:        make([]int32, n),
		outEdges: make([][]Edge, n),
		inEdges:  make([][]Edge, n),
		rank:     make([]int32, n),
	}
}

// NumNodes returns the number of nodes in the graph.
func (g *XYGraph) NumNodes() int { return len(g.x) }

// SetXY sets the position of node id.
func (g *XYGraph) SetXY(id core.NodeID, x, y int32) {
	g.x[id] = x
	g.y[id] = y
}

// GetXY returns the position of node id.
func (g *XYGraph) GetXY(id core.NodeID) (x, y int32) {
	return g.x[id], g.y[id]
}

// SetRank sets the contraction rank of node id.
func (g *XYGraph) SetRank(id core.NodeID, rank int32) {
	g.rank[id] = rank
}

// Rank returns the contraction rank of node id: a total order used by CH
// searches to only traverse edges toward higher ranks going up.
func (g *XYGraph) Rank(id core.NodeID) int32 { return g.rank[id] }

// AddEdge appends a plain (non-shortcut) directed edge from -> to with the
// given cost, updating both adjacency lists.
func (g *XYGraph) AddEdge(from, to core.NodeID, cost float64) {
	g.outEdges[from] = append(g.outEdges[from], Edge{Head: to, Cost: cost})
	g.inEdges[to] = append(g.inEdges[to], Edge{Head: from, Cost: cost})
}

// AddShortcut appends a shortcut edge from -> to replacing from -> v -> to,
// recording the indices of the two edges it replaces: removedOne in from's
// OutEdges and removedTwo in v's OutEdges.
func (g *XYGraph) AddShortcut(from, to core.NodeID, cost float64, removedOne, removedTwo int32) {
	e := Edge{Head: to, Cost: cost, IsShortcut: true, RemovedEdgeOne: removedOne, RemovedEdgeTwo: removedTwo}
	g.outEdges[from] = append(g.outEdges[from], e)
	in := e
	in.Head = from
	g.inEdges[to] = append(g.inEdges[to], in)
}

// OutEdges returns the outgoing adjacency list of node id.
func (g *XYGraph) OutEdges(id core.NodeID) []Edge { return g.outEdges[id] }

// InEdges returns the incoming adjacency list of node id.
func (g *XYGraph) InEdges(id core.NodeID) []Edge { return g.inEdges[id] }

// OutEdgeAt returns the i-th outgoing edge of node id, used when unpacking a
// shortcut's RemovedEdgeOne/RemovedEdgeTwo indices.
func (g *XYGraph) OutEdgeAt(id core.NodeID, i int32) Edge { return g.outEdges[id][i] }

// xyGraphWire is the exported mirror of XYGraph's private fields, used only
// as the gob wire format (spec section 13, "Node-pool block allocation"
// sibling concern: XYGraph itself has no exported fields to gob-encode
// directly, so GobEncode/GobDecode marshal through this shape instead, the
// way pkg/store persists a prepared graph).
type xyGraphWire struct {
	X, Y     []int32
	OutEdges [][]Edge
	InEdges  [][]Edge
	Rank     []int32
}

// GobEncode implements gob.GobEncoder.
func (g *XYGraph) GobEncode() ([]byte, error) {
	buf := new(bytes.Buffer)
	enc := gob.NewEncoder(buf)
	err := enc.Encode(xyGraphWire{X: g.x, Y: g.y, OutEdges: g.outEdges, InEdges: g.inEdges, Rank: g.rank})
	return buf.Bytes(), err
}

// GobDecode implements gob.GobDecoder.
func (g *XYGraph) GobDecode(data []byte) error {
	var w xyGraphWire
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&w); err != nil {
		return err
	}
	g.x, g.y, g.outEdges, g.inEdges, g.rank = w.X, w.Y, w.OutEdges, w.InEdges, w.Rank
	return nil
}
