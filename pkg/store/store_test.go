package store

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lintang-bs/pathcore/pkg/core"
	"github.com/lintang-bs/pathcore/pkg/graph"
)

func sampleGraph() *graph.XYGraph {
	g := graph.NewXYGraph(3)
	g.SetXY(0, 0, 0)
	g.SetXY(1, 1, 0)
	g.SetXY(2, 2, 0)
	g.SetRank(0, 0)
	g.SetRank(1, 1)
	g.SetRank(2, 2)
	g.AddEdge(0, 1, 4)
	g.AddEdge(1, 2, 6)
	g.AddShortcut(0, 2, 10, 0, 0)
	return g
}

func TestCompressGraphThenLoadGraphRoundTrips(t *testing.T) {
	g := sampleGraph()

	blob, err := CompressGraph(g)
	assert.NoError(t, err)

	reloaded, err := LoadGraph(blob)
	assert.NoError(t, err)

	assert.Equal(t, g.NumNodes(), reloaded.NumNodes())
	x, y := reloaded.GetXY(core.NodeID(1))
	assert.Equal(t, int32(1), x)
	assert.Equal(t, int32(0), y)
	assert.Equal(t, g.OutEdges(0), reloaded.OutEdges(0))
	assert.Equal(t, g.Rank(2), reloaded.Rank(2))
}

func TestGraphStorePutGet(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "graphs")
	s, err := Open(dir)
	assert.NoError(t, err)
	defer s.Close()

	g := sampleGraph()
	assert.NoError(t, s.Put("region-a", g))

	reloaded, err := s.Get("region-a")
	assert.NoError(t, err)
	assert.Equal(t, g.NumNodes(), reloaded.NumNodes())
	assert.Equal(t, g.OutEdges(1), reloaded.OutEdges(1))
}

func TestGraphStoreGetMissingKeyErrors(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "graphs")
	s, err := Open(dir)
	assert.NoError(t, err)
	defer s.Close()

	_, err = s.Get("missing")
	assert.Error(t, err)
}
