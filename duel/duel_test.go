package duel

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bytearena/duelcore/geom"
	"github.com/bytearena/duelcore/rules"
	"github.com/bytearena/duelcore/script"
)

func mustParse(t *testing.T, src string) *script.Program {
	t.Helper()
	prog, diag := script.Parse(src)
	require.Nil(t, diag)
	return prog
}

func TestBuildPerception_StartingGeometryBothHidden(t *testing.T) {
	a := newRobot(geom.MakeVector2(0, 0), 0, nil, 0)
	b := newRobot(geom.MakeVector2(9, 9), math.Pi, nil, 1)

	dist := b.Pos.Sub(a.Pos).Mag()
	assert.InDelta(t, 12.727922061357855, dist, 1e-9)

	pa := BuildPerception(a, b, 10)
	pb := BuildPerception(b, a, 10)
	assert.False(t, pa.EnemyVisible)
	assert.False(t, pb.EnemyVisible)
	assert.Nil(t, pa.Enemy)
}

func TestBuildPerception_WallRaysFacingEast(t *testing.T) {
	self := newRobot(geom.MakeVector2(2, 3), 0, nil, 0)
	other := newRobot(geom.MakeVector2(9, 9), 0, nil, 1)

	p := BuildPerception(self, other, 10)
	assert.InDelta(t, 7, p.Wall.Ahead.Distance, 1e-9)
	assert.InDelta(t, 3, p.Wall.Left.Distance, 1e-9)
	assert.InDelta(t, 6, p.Wall.Right.Distance, 1e-9)
	assert.InDelta(t, 2, p.Wall.Back.Distance, 1e-9)
	assert.Equal(t, p.Wall.Back.Distance, p.Wall.Nearest.Distance)
}

func TestApplyRotation_FullRevolutionReturnsToStart(t *testing.T) {
	r := newRobot(geom.MakeVector2(0, 0), 0, nil, 0)
	for i := 0; i < 60; i++ {
		applyRotation(r, 1, false)
	}
	assert.InDelta(t, 0, geom.SignedHalfCircle(r.Heading), 1e-9)
}

func TestApplyBoost_IgnitionAndBurstSequence(t *testing.T) {
	r := newRobot(geom.MakeVector2(0, 0), 0, nil, 0)
	r.Energy = 100

	delta, ignited, active := applyBoost(r, rules.BoostRight)
	require.True(t, ignited)
	require.True(t, active)
	assert.Equal(t, 65.0, r.Energy)
	assert.InDelta(t, 5.0/12.0, delta.Mag(), 1e-9)

	for _, force := range []float64{4, 3, 2, 1} {
		d, ign, act := applyBoost(r, rules.BoostNone)
		assert.False(t, ign)
		assert.True(t, act)
		assert.InDelta(t, force/12.0, d.Mag(), 1e-9)
	}

	d, ign, act := applyBoost(r, rules.BoostNone)
	assert.False(t, ign)
	assert.False(t, act)
	assert.True(t, d.IsZero())
}

func TestApplyBoost_RequestDuringActiveBurstIgnored(t *testing.T) {
	r := newRobot(geom.MakeVector2(0, 0), 0, nil, 0)
	r.Energy = 100

	applyBoost(r, rules.BoostRight)
	energyAfterIgnite := r.Energy

	_, ignited, active := applyBoost(r, rules.BoostLeft)
	assert.False(t, ignited)
	assert.True(t, active)
	assert.Equal(t, energyAfterIgnite, r.Energy)
	assert.Equal(t, rules.BoostRight, r.BoostLocked)
}

func TestApplyBoost_RequestDuringCooldownIgnored(t *testing.T) {
	r := newRobot(geom.MakeVector2(0, 0), 0, nil, 0)
	r.Energy = 100

	applyBoost(r, rules.BoostRight)
	for i := 0; i < 4; i++ {
		applyBoost(r, rules.BoostNone)
	}

	_, ignited, active := applyBoost(r, rules.BoostRight)
	assert.False(t, ignited)
	assert.False(t, active)
	assert.Greater(t, r.BoostCooldown, 0)
}

func TestApplyHousekeeping_EnergyRegenOverSixtyTicks(t *testing.T) {
	r := newRobot(geom.MakeVector2(0, 0), 0, nil, 0)
	r.Energy = 50
	for i := 0; i < 60; i++ {
		applyHousekeeping(r)
	}
	assert.InDelta(t, 65, r.Energy, 1e-9)
}

func TestApplyHousekeeping_EnergyNeverExceedsMax(t *testing.T) {
	r := newRobot(geom.MakeVector2(0, 0), 0, nil, 0)
	r.Energy = MaxEnergy
	applyHousekeeping(r)
	assert.Equal(t, MaxEnergy, r.Energy)
}

func TestResolveMovement_ClampsAtArenaBoundary(t *testing.T) {
	a := newRobot(geom.MakeVector2(9, 5), 0, nil, 0)
	b := newRobot(geom.MakeVector2(0, 0), math.Pi, nil, 1)

	controls := [2]rules.ControlState{{Throttle: 1}, {}}
	results := resolveMovement([2]*RobotState{a, b}, controls, 10)

	assert.True(t, results[0].HitBoundary)
	assert.Equal(t, 9.0, a.Pos.GetX())
}

func TestResolveMovement_MutualHeadOnCollisionReverts(t *testing.T) {
	a := newRobot(geom.MakeVector2(4, 5), 0, nil, 0)
	b := newRobot(geom.MakeVector2(4.5, 5), math.Pi, nil, 1)
	startA, startB := a.Pos, b.Pos

	controls := [2]rules.ControlState{{Throttle: 1}, {Throttle: 1}}
	results := resolveMovement([2]*RobotState{a, b}, controls, 10)

	assert.True(t, results[0].BlockedByRobot)
	assert.True(t, results[1].BlockedByRobot)
	assert.Equal(t, startA, a.Pos)
	assert.Equal(t, startB, b.Pos)
}

func TestSpawnIntents_BlockedByNoEnergy(t *testing.T) {
	a := newRobot(geom.MakeVector2(0, 0), 0, nil, 0)
	a.Energy = 3
	b := newRobot(geom.MakeVector2(5, 5), 0, nil, 1)

	controls := [2]rules.ControlState{{Fire: true}, {}}
	outcomes, spawned := spawnIntents([2]*RobotState{a, b}, controls)

	assert.False(t, outcomes[0].ShotFired)
	assert.Equal(t, "no-energy", outcomes[0].ShotBlockedWhy)
	assert.Empty(t, spawned)
}

func TestSpawnIntents_BlockedByCooldown(t *testing.T) {
	a := newRobot(geom.MakeVector2(0, 0), 0, nil, 0)
	a.FireCooldown = 1
	b := newRobot(geom.MakeVector2(5, 5), 0, nil, 1)

	controls := [2]rules.ControlState{{Fire: true}, {}}
	outcomes, spawned := spawnIntents([2]*RobotState{a, b}, controls)

	assert.False(t, outcomes[0].ShotFired)
	assert.Equal(t, "cooldown", outcomes[0].ShotBlockedWhy)
	assert.Empty(t, spawned)
}

func TestSpawnIntents_SuccessDebitsEnergyAndSetsCooldown(t *testing.T) {
	a := newRobot(geom.MakeVector2(0, 0), 0, nil, 0)
	b := newRobot(geom.MakeVector2(5, 5), 0, nil, 1)

	controls := [2]rules.ControlState{{Fire: true}, {}}
	outcomes, spawned := spawnIntents([2]*RobotState{a, b}, controls)

	assert.True(t, outcomes[0].ShotFired)
	assert.Equal(t, MaxEnergy-FireEnergyCost, a.Energy)
	assert.Equal(t, FireCooldownTicks, a.FireCooldown)
	require.Len(t, spawned, 1)
	assert.Equal(t, b.ID, spawned[0].TargetID)
}

func TestAdvanceProjectiles_HitsAlignedTarget(t *testing.T) {
	shooter := newRobot(geom.MakeVector2(3, 5), 0, nil, 0)
	target := newRobot(geom.MakeVector2(7, 5), math.Pi, nil, 1)
	byID := map[string]*RobotState{shooter.ID: shooter, target.ID: target}

	proj := &projectile{
		ShooterID: shooter.ID, TargetID: target.ID,
		Pos: geom.MakeVector2(6.7, 5), Dir: geom.FromHeading(0),
		CardinalAtSpawn: "E", Traveled: 4.2, MaxRange: ShotRange,
	}
	pendingKills := map[string]bool{}

	alive, advanced := advanceProjectiles([]*projectile{proj}, byID, 10, pendingKills)

	require.Len(t, advanced, 1)
	assert.True(t, advanced[0].trace.Hit)
	assert.True(t, pendingKills[target.ID])
	assert.Empty(t, alive)
}

func TestAdvanceProjectiles_ExpiresExactlyAtMaxRange(t *testing.T) {
	shooter := newRobot(geom.MakeVector2(0, 5), 0, nil, 0)
	target := newRobot(geom.MakeVector2(9, 9), 0, nil, 1)
	byID := map[string]*RobotState{shooter.ID: shooter, target.ID: target}

	proj := &projectile{
		ShooterID: shooter.ID, TargetID: target.ID,
		Pos: geom.MakeVector2(4.5, 5), Dir: geom.FromHeading(0),
		CardinalAtSpawn: "E", Traveled: 4.5, MaxRange: ShotRange,
	}
	pendingKills := map[string]bool{}

	alive, advanced := advanceProjectiles([]*projectile{proj}, byID, 10, pendingKills)

	require.Len(t, advanced, 1)
	assert.False(t, advanced[0].trace.Hit)
	assert.Empty(t, alive)
	assert.InDelta(t, ShotRange, proj.Traveled, 1e-9)
}

func TestNewBattleConfig_RejectsOutOfRangeValues(t *testing.T) {
	_, err := NewBattleConfig(ArenaSizeMin-1, MaxTicksMax+1)
	require.Error(t, err)
}

func TestNewBattleConfig_AcceptsDefaults(t *testing.T) {
	cfg, err := NewBattleConfig(ArenaSizeDefault, MaxTicksDefault)
	require.NoError(t, err)
	assert.Equal(t, ArenaSizeDefault, cfg.ArenaSize)
}

func TestSimulateBattle_RejectsNilProgram(t *testing.T) {
	_, err := SimulateBattle(nil, mustParse(t, "FIRE ON\n"), DefaultBattleConfig())
	require.Error(t, err)
}

func TestSimulateBattle_IsDeterministic(t *testing.T) {
	progA := mustParse(t, "SET THROTTLE 0.5\nIF ENEMY_VISIBLE THEN FIRE ON\n")
	progB := mustParse(t, "SET TURN 0.3\n")
	cfg, err := NewBattleConfig(10, 40)
	require.NoError(t, err)

	r1, err1 := SimulateBattle(progA, progB, cfg)
	r2, err2 := SimulateBattle(progA, progB, cfg)
	require.NoError(t, err1)
	require.NoError(t, err2)

	assert.Equal(t, len(r1.Ticks), len(r2.Ticks))
	assert.Equal(t, r1.Status, r2.Status)
	for i := range r1.Ticks {
		assert.Equal(t, r1.Ticks[i].EndSnapshot, r2.Ticks[i].EndSnapshot)
	}
}

func TestSimulateBattle_RotationOnlyNeverMoves(t *testing.T) {
	progA := mustParse(t, "SET TURN 1\n")
	progB := mustParse(t, "SET TURN 0\n")
	cfg, err := NewBattleConfig(10, 60)
	require.NoError(t, err)

	result, err := SimulateBattle(progA, progB, cfg)
	require.NoError(t, err)

	for _, tick := range result.Ticks {
		assert.False(t, tick.Actions[0].Moved)
	}
	last := result.Ticks[len(result.Ticks)-1]
	heading := last.EndSnapshot.Robots[0].Heading
	wrapped := math.Min(heading, 360-heading)
	assert.InDelta(t, 0, wrapped, 0.5)
}
