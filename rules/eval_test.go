package rules

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bytearena/duelcore/script"
	"github.com/bytearena/duelcore/sensors"
)

func parseOrFail(t *testing.T, src string) *script.Program {
	t.Helper()
	prog, diag := script.Parse(src)
	require.Nil(t, diag)
	return prog
}

func TestWalk_LastMatchWinsPerField(t *testing.T) {
	prog := parseOrFail(t, "SET THROTTLE 0.2\nSET THROTTLE 0.8\nSET STRAFE -0.5\n")
	state := Walk(prog, map[string]sensors.Value{}, false)
	assert.Equal(t, 0.8, state.Throttle)
	assert.Equal(t, -0.5, state.Strafe)
	assert.Equal(t, []int{1, 2, 3}, state.MatchedLines)
}

func TestWalk_ConditionGatesCommand(t *testing.T) {
	prog := parseOrFail(t, "IF ENEMY_VISIBLE THEN SET THROTTLE 1\n")

	state := Walk(prog, map[string]sensors.Value{}, false)
	assert.Equal(t, 0.0, state.Throttle)
	assert.Empty(t, state.MatchedLines)

	state = Walk(prog, map[string]sensors.Value{}, true)
	assert.Equal(t, 1.0, state.Throttle)
}

func TestWalk_UnavailableSensorMakesCompareFalse(t *testing.T) {
	prog := parseOrFail(t, "IF ENEMY_X > 0 THEN FIRE ON\n")
	table := map[string]sensors.Value{"ENEMY_X": sensors.Unavailable}
	state := Walk(prog, table, false)
	assert.False(t, state.Fire)
}

func TestWalk_DivisionByZeroIsUnavailable(t *testing.T) {
	prog := parseOrFail(t, "IF (1 / 0) > 0 THEN FIRE ON\n")
	state := Walk(prog, map[string]sensors.Value{}, true)
	assert.False(t, state.Fire)
}

func TestEvalFunction_ClampMinMaxAbs(t *testing.T) {
	assert.Equal(t, sensors.Avail(5), evalFunction("CLAMP", []float64{10, 0, 5}))
	assert.Equal(t, sensors.Avail(2), evalFunction("MIN", []float64{2, 9}))
	assert.Equal(t, sensors.Avail(9), evalFunction("MAX", []float64{2, 9}))
	assert.Equal(t, sensors.Avail(3), evalFunction("ABS", []float64{-3}))
}

func TestEvalFunction_NormalizeAngleWraps(t *testing.T) {
	v := evalFunction("NORMALIZE_ANGLE", []float64{-90})
	require.True(t, v.Available)
	assert.InDelta(t, 270, v.Num, 1e-9)
}

func TestEvalFunction_AngleDiffShortestPath(t *testing.T) {
	v := evalFunction("ANGLE_DIFF", []float64{10, 350})
	require.True(t, v.Available)
	assert.InDelta(t, 20, v.Num, 1e-9)
}

func TestEvalFunction_Atan2Degrees(t *testing.T) {
	v := evalFunction("ATAN2", []float64{1, 1})
	require.True(t, v.Available)
	assert.InDelta(t, 45, v.Num, 1e-9)
	assert.InDelta(t, 45, math.Atan2(1, 1)*180/math.Pi, 1e-9)
}
