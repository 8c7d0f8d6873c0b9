package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lintang-bs/pathcore/pkg/core"
)

func TestXYGraphBasics(t *testing.T) {
	g := NewXYGraph(3)
	g.SetXY(0, 0, 0)
	g.SetXY(1, 10, 0)
	g.SetXY(2, 10, 10)
	g.SetRank(0, 5)
	g.SetRank(1, 2)
	g.SetRank(2, 8)

	g.AddEdge(0, 1, 5)
	g.AddEdge(1, 0, 3)

	assert.Equal(t, 3, g.NumNodes())
	x, y := g.GetXY(2)
	assert.Equal(t, int32(10), x)
	assert.Equal(t, int32(10), y)
	assert.Equal(t, int32(5), g.Rank(0))

	out := g.OutEdges(0)
	assert.Len(t, out, 1)
	assert.Equal(t, core.NodeID(1), out[0].Head)
	assert.Equal(t, 5.0, out[0].Cost)

	in := g.InEdges(1)
	assert.Len(t, in, 1)
	assert.Equal(t, core.NodeID(0), in[0].Head)
}

func TestXYGraphShortcutUnpacking(t *testing.T) {
	g := NewXYGraph(3)
	g.AddEdge(0, 1, 2) // index 0 on node 0's out edges
	g.AddEdge(1, 2, 3) // index 0 on node 1's out edges
	g.AddShortcut(0, 2, 5, 0, 0)

	out := g.OutEdges(0)
	assert.Len(t, out, 2)
	sc := out[1]
	assert.True(t, sc.IsShortcut)
	assert.Equal(t, core.NodeID(2), sc.Head)

	first := g.OutEdgeAt(0, sc.RemovedEdgeOne)
	assert.Equal(t, core.NodeID(1), first.Head)
}
