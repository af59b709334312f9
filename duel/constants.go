// Package duel implements the tick-based physics and combat engine: the
// deterministic step function that advances two robots, each driven by a
// compiled script.Program, one tick at a time.
package duel

import "math"

const (
	Dt = 1.0 / 60.0

	VisionRadius    = 8.0
	VisionHalfAngle = math.Pi / 3

	ShotRange         = 5.0
	ShotHitRadius     = 0.36
	RobotCollisionRad = 0.34

	SideBoostEnergyCost     = 35.0
	SideBoostCooldownTicks  = 10
	FireEnergyCost          = 6.0
	FireCooldownTicks       = 1

	ForwardTicksPerTile  = 8.0
	BackwardTicksPerTile = 16.0
	StrafeTicksPerTile   = 12.0

	ProjectileTicksPerTile = 2.0
	ProjectileSpeed        = 1.0 / (ProjectileTicksPerTile * Dt)

	EnergyRegenPerSec = 15.0
	MaxEnergy         = 100.0

	RotationDegPerSec = 360.0

	ArenaSizeMin, ArenaSizeMax, ArenaSizeDefault = 6, 40, 10
	MaxTicksMin, MaxTicksMax, MaxTicksDefault    = 20, 5000, 500

	// ticksSinceEnemySeenSentinel is the saturating ceiling EnemyMemory's
	// counter never exceeds, so long-idle battles don't overflow an int.
	ticksSinceEnemySeenSentinel = 1 << 30
)

var boostBurstForce = [5]int{5, 4, 3, 2, 1}
