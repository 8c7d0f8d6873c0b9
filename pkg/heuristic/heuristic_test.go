package heuristic

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestZeroIsAlwaysZero(t *testing.T) {
	var h Zero
	assert.Equal(t, 0.0, h.Estimate(0, 0, 100, 100))
	assert.Equal(t, 0.0, h.Estimate(5, 5, 5, 5))
}

func TestOctileStraightLine(t *testing.T) {
	h := NewOctile(0)
	assert.InDelta(t, 4.0, h.Estimate(0, 0, 4, 0), 1e-9)
	assert.InDelta(t, 4.0, h.Estimate(0, 0, 0, 4), 1e-9)
}

func TestOctileDiagonal(t *testing.T) {
	h := NewOctile(0)
	assert.InDelta(t, sqrt2*3, h.Estimate(0, 0, 3, 3), 1e-9)
}

func TestOctileMixed(t *testing.T) {
	h := NewOctile(0)
	// dx=2, dy=5: 2 diagonal steps + 3 straight steps.
	assert.InDelta(t, 2*sqrt2+3, h.Estimate(0, 0, 2, 5), 1e-9)
}

func TestOctileHScale(t *testing.T) {
	uniform := NewOctile(0)
	scaled := NewOctile(2.5)
	assert.InDelta(t, 2.5*uniform.Estimate(0, 0, 4, 1), scaled.Estimate(0, 0, 4, 1), 1e-9)
}

func TestOctileSymmetric(t *testing.T) {
	h := NewOctile(1)
	assert.InDelta(t, h.Estimate(1, 2, 9, 7), h.Estimate(9, 7, 1, 2), 1e-9)
}
