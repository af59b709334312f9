package duel

import (
	"math"

	"github.com/bytearena/duelcore/geom"
	"github.com/bytearena/duelcore/rules"
)

// moveResult carries the per-robot telemetry the tick log records for the
// movement phase.
type moveResult struct {
	RotationDelta float64
	Attempted     bool
	HitBoundary   bool
	BlockedByRobot bool
	BoostIgnited  bool
	BoostActive   bool
	BoostFrom     geom.Vector2
	BoostTo       geom.Vector2
}

// applyHousekeeping runs the per-tick regen/decay that happens before
// rotation and movement: boost cooldown ticks down, energy regenerates.
func applyHousekeeping(r *RobotState) {
	if !r.Alive {
		return
	}
	if r.BoostCooldown > 0 {
		r.BoostCooldown--
	}
	r.Energy += EnergyRegenPerSec * Dt
	if r.Energy > MaxEnergy {
		r.Energy = MaxEnergy
	}
}

// applyRotation turns the robot and returns the signed delta actually
// applied (already zero for dead robots, whose controls are neutral).
func applyRotation(r *RobotState, turn float64, fire bool) float64 {
	if !r.Alive {
		return 0
	}
	penalty := 1.0
	if fire {
		penalty = 0.5
	}
	radPerSec := RotationDegPerSec * (math.Pi / 180.0)
	delta := turn * radPerSec * penalty * Dt
	r.Heading = geom.NormalizeAngle(r.Heading + delta)
	return delta
}

// linearDelta computes the world-frame movement delta from throttle/strafe,
// before side-boost is added.
func linearDelta(r *RobotState, throttle, strafe float64, fire bool) geom.Vector2 {
	if !r.Alive {
		return geom.MakeNullVector2()
	}

	penalty := 1.0
	if fire {
		penalty = 0.5
	}

	forwardSpeed := 1.0 / (ForwardTicksPerTile * Dt)
	backwardSpeed := 1.0 / (BackwardTicksPerTile * Dt)
	strafeSpeed := 1.0 / (StrafeTicksPerTile * Dt)

	fwdUnit := geom.FromHeading(r.Heading)
	rightUnit := geom.FromHeading(r.Heading + math.Pi/2)

	fwdSpeed := forwardSpeed
	if throttle < 0 {
		fwdSpeed = backwardSpeed
	}

	delta := fwdUnit.Scale(throttle * fwdSpeed * penalty * Dt)
	delta = delta.Add(rightUnit.Scale(strafe * strafeSpeed * penalty * Dt))
	return delta
}

// applyBoost runs the side-boost ignition/burst state machine for one
// robot and returns this tick's boost-induced world-frame delta.
func applyBoost(r *RobotState, requested rules.BoostChoice) (delta geom.Vector2, ignited, active bool) {
	if !r.Alive {
		return geom.MakeNullVector2(), false, false
	}

	if r.BoostBurstRemaining == 0 && requested != rules.BoostNone &&
		r.BoostCooldown == 0 && r.Energy >= SideBoostEnergyCost {
		r.Energy -= SideBoostEnergyCost
		r.BoostCooldown = SideBoostCooldownTicks
		r.BoostBurstRemaining = len(boostBurstForce)
		r.BoostLocked = requested
		ignited = true
	}

	if r.BoostBurstRemaining == 0 {
		return geom.MakeNullVector2(), ignited, false
	}

	level := boostBurstForce[len(boostBurstForce)-r.BoostBurstRemaining]
	mag := float64(level) / StrafeTicksPerTile

	dir := r.Heading + math.Pi/2 // right
	if r.BoostLocked == rules.BoostLeft {
		dir = r.Heading - math.Pi/2
	}

	delta = geom.FromHeading(dir).Scale(mag)
	active = true

	r.BoostBurstRemaining--
	if r.BoostBurstRemaining == 0 {
		r.BoostLocked = rules.BoostNone
	}

	return delta, ignited, active
}

// resolveMovement runs rotation, linear movement and side-boost for both
// robots from the pre-tick snapshot, then resolves robot-robot and wall
// collision simultaneously, per §4.5's ordering contract.
func resolveMovement(robots [2]*RobotState, controls [2]rules.ControlState, arenaSize int) [2]moveResult {
	var results [2]moveResult
	var proposals [2]geom.Vector2
	var attempted [2]bool

	for _, r := range robots {
		applyHousekeeping(r)
	}

	for i, r := range robots {
		ctl := controls[i]
		results[i].RotationDelta = applyRotation(r, ctl.Turn, ctl.Fire)
	}

	for i, r := range robots {
		ctl := controls[i]
		start := r.Pos

		lin := linearDelta(r, ctl.Throttle, ctl.Strafe, ctl.Fire)
		boostDelta, ignited, active := applyBoost(r, ctl.Boost)

		results[i].BoostIgnited = ignited
		results[i].BoostActive = active
		if active {
			results[i].BoostFrom = start
			results[i].BoostTo = start.Add(boostDelta)
		}

		total := lin.Add(boostDelta)
		attempted[i] = !total.IsZero()

		proposed := start.Add(total)
		clamped, hit := proposed.Clamp(float64(arenaSize - 1))
		results[i].HitBoundary = hit
		proposals[i] = clamped
	}

	bothAlive := robots[0].Alive && robots[1].Alive
	if bothAlive {
		dist := proposals[0].Sub(proposals[1]).Mag()
		if dist < 2*RobotCollisionRad {
			for i, r := range robots {
				if attempted[i] {
					proposals[i] = r.Pos
					results[i].BlockedByRobot = true
				}
			}
		}
	}

	for i, r := range robots {
		results[i].Attempted = attempted[i]
		r.Pos = proposals[i]
	}

	return results
}
