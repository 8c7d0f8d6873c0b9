package expansion

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lintang-bs/pathcore/pkg/gridmap"
	"github.com/lintang-bs/pathcore/pkg/problem"
)

func open3x3WithCentreBlocked() *gridmap.GridMap {
	g := gridmap.NewGridMap(3, 3)
	for y := int32(0); y < 3; y++ {
		for x := int32(0); x < 3; x++ {
			g.SetLabel(x, y, true)
		}
	}
	g.SetLabel(1, 1, false)
	return g
}

func TestGridOctileNoCornerCutting(t *testing.T) {
	g := open3x3WithCentreBlocked()
	p := NewGridOctilePolicy(g)
	pi := &problem.Instance{InstanceID: 1}
	start := p.Generate(g.ToPaddedID(0, 0))
	start.Init(1, nil, 0, 0)

	p.Expand(start, pi)
	successors := drainAll(p)
	for _, s := range successors {
		x, y := g.ToUnpadded(s.Node.ID())
		assert.False(t, x == 1 && y == 1, "blocked cell must never be a successor")
	}
	// (0,0)'s only legal successors are the two orthogonal cells; the
	// diagonal (1,1) is blocked outright, and cutting past it is moot here
	// since there is no other diagonal candidate on this map.
	assert.Len(t, successors, 2)
}

func TestGridOctileDiagonalCostIsSqrt2(t *testing.T) {
	g := gridmap.NewGridMap(2, 2)
	for y := int32(0); y < 2; y++ {
		for x := int32(0); x < 2; x++ {
			g.SetLabel(x, y, true)
		}
	}
	p := NewGridOctilePolicy(g)
	pi := &problem.Instance{InstanceID: 1}
	start := p.Generate(g.ToPaddedID(0, 0))
	start.Init(1, nil, 0, 0)
	p.Expand(start, pi)

	found := false
	for _, s := range drainAll(p) {
		x, y := g.ToUnpadded(s.Node.ID())
		if x == 1 && y == 1 {
			assert.InDelta(t, 1.4142135623730951, s.Cost, 1e-9)
			found = true
		}
	}
	assert.True(t, found)
}

func drainAll(p Policy) []Successor {
	var out []Successor
	s, ok := p.First()
	for ok {
		out = append(out, s)
		s, ok = p.Next()
	}
	return out
}
