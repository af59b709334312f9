package numeric

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToFixed_RoundsHalfUp(t *testing.T) {
	// 2.5 and 0.125 are exactly representable in binary, so the half-up
	// boundary is unambiguous here (unlike most decimal literals).
	assert.Equal(t, 3.0, ToFixed(2.5, 0))
	assert.Equal(t, -3.0, ToFixed(-2.5, 0))
	assert.Equal(t, 0.13, ToFixed(0.125, 2))
}

func TestToFixed_PassesThroughHazards(t *testing.T) {
	assert.True(t, math.IsNaN(ToFixed(math.NaN(), 4)))
	assert.True(t, math.IsInf(ToFixed(math.Inf(1), 4), 1))
}

func TestIsHazard(t *testing.T) {
	assert.True(t, IsHazard(math.NaN()))
	assert.True(t, IsHazard(math.Inf(-1)))
	assert.False(t, IsHazard(1.0))
}

func TestRound4And2(t *testing.T) {
	assert.Equal(t, 1.2346, Round4(1.23456))
	assert.Equal(t, 1.23, Round2(1.2261))
}
