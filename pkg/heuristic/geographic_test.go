package heuristic

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGeographicSamePointIsZero(t *testing.T) {
	h := NewGeographic(0)
	assert.InDelta(t, 0.0, h.Estimate(106_827_000, -6_175_000, 106_827_000, -6_175_000), 1e-6)
}

func TestGeographicOneDegreeLatitudeIsRoughly111Km(t *testing.T) {
	h := NewGeographic(0)
	// (lon, lat) = (0, 0) to (0, 1 degree): one degree of latitude is close
	// to 111.2km regardless of longitude.
	meters := h.Estimate(0, 0, 0, int32(microdegree))
	assert.InDelta(t, 111_195.0, meters, 500)
}

func TestGeographicIsSymmetric(t *testing.T) {
	h := NewGeographic(0)
	a := h.Estimate(106_827_000, -6_175_000, 110_400_000, -7_250_000)
	b := h.Estimate(110_400_000, -7_250_000, 106_827_000, -6_175_000)
	assert.InDelta(t, a, b, 1e-6)
}

func TestGeographicMetersPerCostUnitScales(t *testing.T) {
	meters := NewGeographic(0)
	perMinute := NewGeographic(500) // 500 meters/minute reference speed
	got := perMinute.Estimate(0, 0, 0, int32(microdegree))
	want := meters.Estimate(0, 0, 0, int32(microdegree)) / 500
	assert.InDelta(t, want, got, 1e-9)
}
