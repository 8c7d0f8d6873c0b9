package expansion

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lintang-bs/pathcore/pkg/graph"
	"github.com/lintang-bs/pathcore/pkg/gridmap"
	"github.com/lintang-bs/pathcore/pkg/problem"
)

func TestCPGPolicyExpandsViaDynamicNodes(t *testing.T) {
	g := gridmap.NewGridMap(5, 5)
	for y := int32(0); y < 5; y++ {
		for x := int32(0); x < 5; x++ {
			g.SetLabel(x, y, true)
		}
	}
	g.SetLabel(2, 2, false)
	cpg := graph.BuildCornerPointGraph(g)
	p := NewCPGPolicy(cpg)

	pi := &problem.Instance{InstanceID: 1}
	pi.StartID = cpg.InsertQueryNode(0, 0)
	pi.TargetID = cpg.InsertQueryNode(4, 4)

	start := p.GenerateStartNode(pi)
	p.Expand(start, pi)
	assert.NotEmpty(t, drainAll(p))

	p.Clear()
}

func TestJPGPolicySkipsImmediateParent(t *testing.T) {
	g := gridmap.NewGridMap(5, 5)
	for y := int32(0); y < 5; y++ {
		for x := int32(0); x < 5; x++ {
			g.SetLabel(x, y, true)
		}
	}
	g.SetLabel(2, 2, false)
	cpg := graph.BuildCornerPointGraph(g)
	p := NewJPGPolicy(cpg)

	pi := &problem.Instance{InstanceID: 1}
	pi.StartID = cpg.InsertQueryNode(0, 0)
	pi.TargetID = cpg.InsertQueryNode(4, 4)

	start := p.GenerateStartNode(pi)
	start.Init(1, nil, 0, 0)
	p.Expand(start, pi)
	firstHop := drainAll(p)
	assert.NotEmpty(t, firstHop)

	child := firstHop[0].Node
	child.Init(1, start, firstHop[0].Cost, firstHop[0].Cost)
	p.Expand(child, pi)
	for _, s := range drainAll(p) {
		assert.NotEqual(t, start.ID(), s.Node.ID())
	}
}
