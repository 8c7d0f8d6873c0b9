package expansion

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lintang-bs/pathcore/pkg/graph"
	"github.com/lintang-bs/pathcore/pkg/problem"
)

func TestFCHUpPhaseThenDownPhase(t *testing.T) {
	g := graph.NewXYGraph(3)
	g.SetRank(0, 0)
	g.SetRank(1, 2)
	g.SetRank(2, 1)
	g.AddEdge(0, 1, 4) // up: 0 -> 1
	g.AddEdge(1, 2, 3) // down: 1 -> 2 (rank 2 -> rank 1)

	p := NewFCHPolicy(g)
	pi := &problem.Instance{InstanceID: 1}
	n0 := p.Generate(0)
	n0.Init(1, nil, 0, 0)

	assert.True(t, p.Phase())
	p.Expand(n0, pi)
	up := drainAll(p)
	assert.Len(t, up, 1)
	assert.Equal(t, 4.0, up[0].Cost)

	p.SetPhase(false)
	n1 := p.Generate(1)
	n1.Init(1, n0, 4, 4)
	p.Expand(n1, pi)
	down := drainAll(p)
	assert.Len(t, down, 1)
	assert.Equal(t, 3.0, down[0].Cost)

	p.Clear()
	assert.True(t, p.Phase())
}
