package duel

import (
	"github.com/bytearena/duelcore/geom"
	"github.com/bytearena/duelcore/rules"
)

// fireOutcome is the per-robot telemetry the firing phase produces before
// projectile traces are known to have hit anything.
type fireOutcome struct {
	ShotFired      bool
	ShotBlockedWhy string
}

// tickDownFireCooldown is step 1 of §4.6: alive robots' fire cooldown
// decrements saturatingly before spawn intents are evaluated.
func tickDownFireCooldown(r *RobotState) {
	if !r.Alive {
		return
	}
	if r.FireCooldown > 0 {
		r.FireCooldown--
	}
}

// spawnIntents is step 2 of §4.6: for each robot whose control.fire is
// true, gate on cooldown then energy, debit and emit a projectile on
// success.
func spawnIntents(robots [2]*RobotState, controls [2]rules.ControlState) ([2]fireOutcome, []*projectile) {
	var outcomes [2]fireOutcome
	var spawned []*projectile

	for i, r := range robots {
		if !r.Alive || !controls[i].Fire {
			continue
		}

		if r.FireCooldown > 0 {
			outcomes[i].ShotBlockedWhy = "cooldown"
			continue
		}
		if r.Energy < FireEnergyCost {
			outcomes[i].ShotBlockedWhy = "no-energy"
			continue
		}

		r.Energy -= FireEnergyCost
		r.FireCooldown = FireCooldownTicks
		outcomes[i].ShotFired = true

		targetID := robots[1-i].ID
		spawned = append(spawned, &projectile{
			ShooterID:       r.ID,
			TargetID:        targetID,
			Pos:             r.Pos,
			Dir:             geom.FromHeading(r.Heading),
			CardinalAtSpawn: cardinalFromHeading(r.Heading),
			Traveled:        0,
			MaxRange:        ShotRange,
		})
	}

	return outcomes, spawned
}

// projectileAdvance pairs a tick's trace with the in-flight projectile it
// came from, so the action-record builder can tell a brand-new spawn's
// trace apart from an older shot still traveling from an earlier tick.
type projectileAdvance struct {
	trace ProjectileTrace
	src   *projectile
}

// advanceProjectiles is step 3 of §4.6: every in-flight projectile steps
// forward, bounded by remaining range and the wall, and is retired on hit,
// range exhaustion or leaving the arena. Kills are recorded in
// pendingKills, keyed by robot id, rather than applied immediately — a
// projectile that hits late in the list must not see an already-applied
// death from earlier in the same tick as "already dead", but must see
// marks recorded this tick to avoid double-killing.
func advanceProjectiles(in []*projectile, robots map[string]*RobotState, arenaSize int, pendingKills map[string]bool) ([]*projectile, []projectileAdvance) {
	var alive []*projectile
	var advanced []projectileAdvance

	for _, proj := range in {
		target := robots[proj.TargetID]

		remaining := proj.MaxRange - proj.Traveled
		if remaining <= 0 {
			continue
		}

		max := float64(arenaSize - 1)
		_, wallDist, _ := geom.CastRayToSquare(proj.Pos, proj.Dir, max)

		step := ProjectileSpeed * Dt
		if step > remaining {
			step = remaining
		}
		if wallDist < step {
			step = wallDist
		}

		endpoint := proj.Pos.Add(proj.Dir.Scale(step))

		hit := false
		if target.Alive && !pendingKills[target.ID] {
			d := geom.PointToSegmentDistance(target.Pos, proj.Pos, endpoint)
			if d <= ShotHitRadius {
				hit = true
			}
		}

		trace := ProjectileTrace{
			ShooterID: proj.ShooterID,
			TargetID:  proj.TargetID,
			From:      proj.Pos,
			To:        endpoint,
			Direction: proj.CardinalAtSpawn,
			Range:     proj.MaxRange,
			Hit:       hit,
		}
		advanced = append(advanced, projectileAdvance{trace: trace, src: proj})

		if hit {
			pendingKills[target.ID] = true
			continue
		}

		proj.Traveled += step
		proj.Pos = endpoint

		exhausted := proj.Traveled >= proj.MaxRange || step == wallDist
		if !exhausted {
			alive = append(alive, proj)
		}
	}

	return alive, advanced
}

// applyPendingKills is step 4 of §4.6.
func applyPendingKills(robots [2]*RobotState, pendingKills map[string]bool) {
	for _, r := range robots {
		if pendingKills[r.ID] {
			r.Alive = false
		}
	}
}
