package core

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDirectionOpposite(t *testing.T) {
	cases := []struct {
		in, want Direction
	}{
		{DirN, DirS},
		{DirNE, DirSW},
		{DirE, DirW},
		{DirSE, DirNW},
		{DirS, DirN},
		{DirSW, DirNE},
		{DirW, DirE},
		{DirNW, DirSE},
		{DirNone, DirNone},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, c.in.Opposite())
	}
}

func TestDirectionIsDiagonal(t *testing.T) {
	diag := []Direction{DirNE, DirSE, DirSW, DirNW}
	straight := []Direction{DirN, DirE, DirS, DirW, DirNone}
	for _, d := range diag {
		assert.True(t, d.IsDiagonal())
	}
	for _, d := range straight {
		assert.False(t, d.IsDiagonal())
	}
}

func TestSearchNodeInitAndFreshness(t *testing.T) {
	n := newSearchNode(NodeID(7))
	assert.Equal(t, NodeID(7), n.ID())
	assert.True(t, math.IsInf(n.G(), 1))
	assert.True(t, math.IsInf(n.F(), 1))
	assert.Nil(t, n.Parent())

	n.Init(1, nil, 0, 10)
	assert.Equal(t, 0.0, n.G())
	assert.Equal(t, 10.0, n.F())
	assert.Equal(t, uint32(1), n.SearchID())

	n.SetExpanded(true)
	n.Relax(3, nil)
	assert.Equal(t, 3.0, n.G())
	assert.Equal(t, 13.0, n.F())

	// A later search with a different id lazily wipes state on touch.
	n.touch(2)
	assert.False(t, n.Expanded())
	assert.True(t, math.IsInf(n.G(), 1))
	assert.True(t, math.IsInf(n.F(), 1))
	assert.Nil(t, n.Parent())
	assert.Equal(t, DirNone, n.ParentDirection())
}

func TestSearchNodeRelaxPreservesHDelta(t *testing.T) {
	n := newSearchNode(NodeID(1))
	n.Init(1, nil, 5, 12) // h = f - g = 7
	n.Relax(2, nil)
	assert.Equal(t, 2.0, n.G())
	assert.InDelta(t, 9.0, n.F(), 1e-9) // g' + h = 2 + 7
}

func TestSearchNodeLessTieBreak(t *testing.T) {
	a := newSearchNode(1)
	b := newSearchNode(2)
	a.Init(1, nil, 5, 10)
	b.Init(1, nil, 5, 12)
	assert.True(t, a.Less(b), "smaller f wins")
	assert.False(t, b.Less(a))

	c := newSearchNode(3)
	d := newSearchNode(4)
	c.Init(1, nil, 4, 10)
	d.Init(1, nil, 6, 10)
	assert.True(t, d.Less(c), "equal f: larger g wins")
	assert.False(t, c.Less(d))
}

func TestSearchNodeParentDirectionOnRelaxHook(t *testing.T) {
	n := newSearchNode(1)
	n.Init(1, nil, 0, 0)
	assert.Equal(t, DirNone, n.ParentDirection())
	n.SetParentDirection(DirNE)
	assert.Equal(t, DirNE, n.ParentDirection())
}
