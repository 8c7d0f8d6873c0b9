package expansion

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lintang-bs/pathcore/pkg/gridmap"
	"github.com/lintang-bs/pathcore/pkg/problem"
)

func TestWeightedGridJPSMatchesScenarioS5(t *testing.T) {
	g := gridmap.NewWeightedGridMap(3, 1)
	g.SetTerrain(0, 0, gridmap.CheapTerrain)
	g.SetTerrain(1, 0, 'd') // weight 5
	g.SetTerrain(2, 0, gridmap.CheapTerrain)

	p := NewWeightedGridJPSPolicy(g)
	pi := &problem.Instance{InstanceID: 1, TargetID: g.ToID(2, 0)}
	start := p.Generate(g.ToID(0, 0))
	start.Init(1, nil, 0, 0)

	p.Expand(start, pi)
	succ := drainAll(p)
	assert.Len(t, succ, 1, "terrain change at (1,0) is itself a jump point")
	first := succ[0]
	assert.Equal(t, g.ToID(1, 0), first.Node.ID())
	assert.InDelta(t, 3.0, first.Cost, 1e-9) // (1+5)/2

	first.Node.Init(1, start, first.Cost, first.Cost)
	p.Expand(first.Node, pi)
	second := drainAll(p)
	assert.Len(t, second, 1)
	assert.Equal(t, g.ToID(2, 0), second[0].Node.ID())
	assert.InDelta(t, 3.0, second[0].Cost, 1e-9) // (5+1)/2

	assert.InDelta(t, 6.0, first.Cost+second[0].Cost, 1e-9) // total S5 cost
}

func TestWeightedGridJPSHScale(t *testing.T) {
	g := gridmap.NewWeightedGridMap(2, 2)
	p := NewWeightedGridJPSPolicy(g)
	assert.Equal(t, 1.0, p.HScale())
}
