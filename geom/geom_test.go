package geom

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeAngle(t *testing.T) {
	assert.InDelta(t, 0, NormalizeAngle(2*math.Pi), 1e-9)
	assert.InDelta(t, math.Pi, NormalizeAngle(-math.Pi), 1e-9)
	assert.InDelta(t, math.Pi/2, NormalizeAngle(math.Pi/2+4*math.Pi), 1e-9)
}

func TestAngleDiff_ShortestPath(t *testing.T) {
	// Crossing the 0/2pi seam should produce a small signed delta, not ~2pi.
	d := AngleDiff(0.01, 2*math.Pi-0.01)
	assert.InDelta(t, 0.02, d, 1e-9)
}

func TestPointToSegmentDistance(t *testing.T) {
	a := MakeVector2(0, 0)
	b := MakeVector2(10, 0)
	assert.InDelta(t, 3, PointToSegmentDistance(MakeVector2(5, 3), a, b), 1e-9)
	assert.InDelta(t, 5, PointToSegmentDistance(MakeVector2(-5, 0), a, b), 1e-9)
	assert.InDelta(t, 0, PointToSegmentDistance(MakeVector2(5, 0), a, b), 1e-9)
}

func TestCastRayToSquare_CardinalHits(t *testing.T) {
	origin := MakeVector2(2, 3)
	max := 9.0

	_, eastDist, eastSide := CastRayToSquare(origin, FromHeading(0), max)
	assert.InDelta(t, 7, eastDist, 1e-9)
	assert.Equal(t, SideEast, eastSide)

	_, northDist, northSide := CastRayToSquare(origin, FromHeading(-math.Pi/2), max)
	assert.InDelta(t, 3, northDist, 1e-9)
	assert.Equal(t, SideNorth, northSide)

	_, southDist, southSide := CastRayToSquare(origin, FromHeading(math.Pi/2), max)
	assert.InDelta(t, 6, southDist, 1e-9)
	assert.Equal(t, SideSouth, southSide)

	_, westDist, westSide := CastRayToSquare(origin, FromHeading(math.Pi), max)
	assert.InDelta(t, 2, westDist, 1e-9)
	assert.Equal(t, SideWest, westSide)
}

func TestVector2_ClampHitsBoundary(t *testing.T) {
	v := MakeVector2(-1, 15)
	out, hit := v.Clamp(9)
	assert.True(t, hit)
	assert.Equal(t, MakeVector2(0, 9), out)
}
