package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNodePoolStablePointers(t *testing.T) {
	p := NewNodePool()
	a := p.Generate(5)
	b := p.Generate(5)
	assert.Same(t, a, b, "same id must return the same pointer")
	assert.Equal(t, 1, p.Size())

	c := p.Generate(6)
	assert.NotSame(t, a, c)
	assert.Equal(t, 2, p.Size())
}

func TestNodePoolGrowsAcrossBlocks(t *testing.T) {
	p := NewNodePool()
	ptrs := make([]*SearchNode, 0, initialBlockCapacity*3)
	for i := 0; i < initialBlockCapacity*3; i++ {
		ptrs = append(ptrs, p.Generate(NodeID(i)))
	}
	// Pointers returned earlier must still be valid and distinct after the
	// pool has grown past its first block.
	for i, ptr := range ptrs {
		assert.Same(t, ptr, p.Generate(NodeID(i)))
	}
}

func TestNodePoolEpochLazyReset(t *testing.T) {
	p := NewNodePool()
	n := p.Generate(1)
	sid := p.Clear()
	n.Init(sid, nil, 0, 5)
	n.SetExpanded(true)

	sid2 := p.Clear()
	assert.NotEqual(t, sid, sid2)
	p.Touch(n)
	assert.False(t, n.Expanded())
	assert.Equal(t, sid2, n.SearchID())
}

func TestNodePoolLookup(t *testing.T) {
	p := NewNodePool()
	_, ok := p.Lookup(42)
	assert.False(t, ok)

	want := p.Generate(42)
	got, ok := p.Lookup(42)
	assert.True(t, ok)
	assert.Same(t, want, got)
}
