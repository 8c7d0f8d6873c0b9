package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lintang-bs/pathcore/pkg/gridmap"
)

func openGrid(w, h int32) *gridmap.GridMap {
	g := gridmap.NewGridMap(w, h)
	for y := int32(0); y < h; y++ {
		for x := int32(0); x < w; x++ {
			g.SetLabel(x, y, true)
		}
	}
	return g
}

func TestCornerPointGraphFindsCornersAroundObstacle(t *testing.T) {
	g := openGrid(5, 5)
	g.SetLabel(2, 2, false)

	cpg := BuildCornerPointGraph(g)
	assert.Greater(t, cpg.NumStaticNodes(), 0)
}

func TestCornerPointGraphInsertAndClear(t *testing.T) {
	g := openGrid(5, 5)
	g.SetLabel(2, 2, false)
	cpg := BuildCornerPointGraph(g)

	start := cpg.InsertQueryNode(0, 0)
	target := cpg.InsertQueryNode(4, 4)
	assert.NotEqual(t, start, target)

	sx, sy := cpg.GetXY(start)
	assert.Equal(t, int32(0), sx)
	assert.Equal(t, int32(0), sy)

	out := cpg.OutEdges(start)
	assert.NotEmpty(t, out, "start should see at least one corner")

	cpg.Clear()
	fresh := cpg.InsertQueryNode(0, 0)
	assert.Equal(t, start, fresh, "dynamic ids restart from the same offset after Clear")
}

func TestHasLineOfSightBlocksCornerCutting(t *testing.T) {
	g := openGrid(3, 3)
	g.SetLabel(1, 1, false)
	assert.False(t, hasLineOfSight(g, 0, 0, 2, 2), "diagonal through a single blocked cell must be rejected")
	assert.True(t, hasLineOfSight(g, 0, 0, 2, 0))
}
