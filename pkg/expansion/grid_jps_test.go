package expansion

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lintang-bs/pathcore/pkg/core"
	"github.com/lintang-bs/pathcore/pkg/gridmap"
	"github.com/lintang-bs/pathcore/pkg/problem"
)

func TestJPSNeverCrossesBlockedDiagonal(t *testing.T) {
	g := open3x3WithCentreBlocked()
	p := NewJPSPolicy(g)
	pi := &problem.Instance{InstanceID: 1, TargetID: g.ToPaddedID(2, 2)}
	start := p.Generate(g.ToPaddedID(0, 0))
	start.Init(1, nil, 0, 0)

	p.Expand(start, pi)
	for _, s := range drainAll(p) {
		x, y := g.ToUnpadded(s.Node.ID())
		assert.False(t, x == 1 && y == 1)
	}
}

func TestJPSStraightCorridorJumpsToForcedNeighbour(t *testing.T) {
	// 5x3 corridor with a wall poking in from the south at x=2, forcing a
	// jump point just past it, at (3,1), when travelling east along y=1.
	g := gridmap.NewGridMap(5, 3)
	for y := int32(0); y < 3; y++ {
		for x := int32(0); x < 5; x++ {
			g.SetLabel(x, y, true)
		}
	}
	g.SetLabel(2, 2, false) // moving east along y=1, (3,1) has the forced neighbour (3,2)

	p := NewJPSPolicy(g)
	pi := &problem.Instance{InstanceID: 1, TargetID: g.ToPaddedID(4, 1)}
	start := p.Generate(g.ToPaddedID(0, 1))
	start.Init(1, nil, 0, 0)
	p.Expand(start, pi)

	successors := drainAll(p)
	assert.NotEmpty(t, successors)
}

func TestJPSArrivalDirectionFromParent(t *testing.T) {
	g := gridmap.NewGridMap(3, 3)
	for y := int32(0); y < 3; y++ {
		for x := int32(0); x < 3; x++ {
			g.SetLabel(x, y, true)
		}
	}
	p := NewJPSPolicy(g)
	parent := p.Generate(g.ToPaddedID(0, 0))
	parent.Init(1, nil, 0, 0)
	child := p.Generate(g.ToPaddedID(1, 1))
	child.Init(1, parent, 1.41, 1.41)

	assert.Equal(t, core.DirSE, p.arrivalDirection(child))
	assert.Equal(t, core.DirNone, p.arrivalDirection(parent))
}

func TestJPS2OnRelaxUpdatesParentDirection(t *testing.T) {
	g := gridmap.NewGridMap(3, 3)
	for y := int32(0); y < 3; y++ {
		for x := int32(0); x < 3; x++ {
			g.SetLabel(x, y, true)
		}
	}
	p := NewJPS2Policy(g)
	n := p.Generate(g.ToPaddedID(1, 1))
	n.Init(1, nil, 0, 0)
	assert.Equal(t, core.DirNone, n.ParentDirection())
	p.OnRelax(n, core.DirE)
	assert.Equal(t, core.DirE, n.ParentDirection())
}
