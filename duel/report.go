package duel

import (
	"math"

	"github.com/bytearena/duelcore/geom"
	"github.com/bytearena/duelcore/numeric"
	"github.com/bytearena/duelcore/rules"
)

// replayFrameRate is the reported replay frame rate: round(1000 / tick_ms),
// per §6's wire-exact requirement. At Dt = 1/60s, tick_ms ≈ 16.667 and this
// rounds to 60.
var replayFrameRate = int(math.Round(1000.0 / (Dt * 1000.0)))


// roundedVec rounds a position-like vector to the 4-decimal reporting
// precision invariant §3 mandates for positions and deltas.
func roundedVec(v geom.Vector2) geom.Vector2 {
	x, y := v.Get()
	return geom.MakeVector2(numeric.Round4(x), numeric.Round4(y))
}

func buildSnapshot(tick int, robots [2]*RobotState) Snapshot {
	var out [2]RobotSnapshot
	for i, r := range robots {
		out[i] = RobotSnapshot{
			ID:            r.ID,
			Position:      roundedVec(r.Pos),
			Heading:       numeric.Round2(headingDegrees(r.Heading)),
			Direction:     cardinalFromHeading(r.Heading),
			Alive:         r.Alive,
			Energy:        numeric.Round4(r.Energy),
			FireCooldown:  r.FireCooldown,
			BoostCooldown: r.BoostCooldown,
		}
	}
	return Snapshot{Tick: tick, Robots: out[:]}
}

// roundWallRay rounds a wall ray's distance (reporting precision: 2
// decimals, like headings and distances) and its intersection point (4
// decimals, like a position).
func roundWallRay(w WallRay) WallRay {
	return WallRay{Distance: numeric.Round2(w.Distance), Point: roundedVec(w.Point), Side: w.Side}
}

// roundPerception produces the reporting-precision copy of a Perception
// computed at full internal precision, for inclusion in a Snapshot's
// companion perception list or a TickLog. The full-precision values keep
// driving sensor evaluation; only the reported copy is rounded.
func roundPerception(p Perception) Perception {
	out := p
	out.Wall = WallPerception{
		Ahead:         roundWallRay(p.Wall.Ahead),
		Left:          roundWallRay(p.Wall.Left),
		Right:         roundWallRay(p.Wall.Right),
		Back:          roundWallRay(p.Wall.Back),
		Nearest:       roundWallRay(p.Wall.Nearest),
		SightArcLeft:  roundWallRay(p.Wall.SightArcLeft),
		SightArcRight: roundWallRay(p.Wall.SightArcRight),
	}
	if p.Enemy != nil {
		e := *p.Enemy
		e.DX, e.DY = numeric.Round4(e.DX), numeric.Round4(e.DY)
		e.Distance = numeric.Round2(e.Distance)
		e.Heading = numeric.Round2(e.Heading)
		out.Enemy = &e
	}
	return out
}

func roundPerceptions(ps [2]Perception) []Perception {
	return []Perception{roundPerception(ps[0]), roundPerception(ps[1])}
}

// buildActionRecord assembles one robot's per-tick telemetry from the raw
// phase outputs the movement and combat engines produced.
func buildActionRecord(r *RobotState, ctl rules.ControlState, mv moveResult, fire fireOutcome, trace *ProjectileTrace) ActionRecord {
	rec := ActionRecord{
		RobotID: r.ID,
		Controls: ControlSnapshot{
			Throttle: numeric.Round4(ctl.Throttle),
			Strafe:   numeric.Round4(ctl.Strafe),
			Turn:     numeric.Round4(ctl.Turn),
			Fire:     ctl.Fire,
			Boost:    ctl.Boost.String(),
		},
		MatchedLines:   ctl.MatchedLines,
		RotationDelta:  numeric.Round2(mv.RotationDelta * 180 / math.Pi),
		Moved:          mv.Attempted && !mv.BlockedByRobot,
		HitBoundary:    mv.HitBoundary,
		BlockedByRobot: mv.BlockedByRobot,
		ShotFired:      fire.ShotFired,
		ShotBlockedWhy: fire.ShotBlockedWhy,
		BoostIgnited:   mv.BoostIgnited,
		BoostActive:    mv.BoostActive,
		Details:        describeAction(mv, fire),
	}
	if trace != nil {
		t := *trace
		t.From, t.To = roundedVec(t.From), roundedVec(t.To)
		rec.ProjectileTrace = &t
	}
	return rec
}

func describeAction(mv moveResult, fire fireOutcome) string {
	switch {
	case fire.ShotFired:
		return "fired"
	case fire.ShotBlockedWhy != "":
		return "fire blocked: " + fire.ShotBlockedWhy
	case mv.BlockedByRobot:
		return "movement blocked by opponent"
	case mv.BoostIgnited:
		return "side boost ignited"
	case mv.HitBoundary:
		return "hit arena boundary"
	case mv.Attempted:
		return "moved"
	default:
		return "idle"
	}
}

func buildActionHint(r *RobotState, ctl rules.ControlState, mv moveResult, fire fireOutcome) ActionHint {
	action := "idle"
	switch {
	case fire.ShotFired:
		action = "fire"
	case mv.BoostActive:
		action = "boost"
	case mv.Attempted:
		action = "move"
	case ctl.Turn != 0:
		action = "turn"
	}
	return ActionHint{
		RobotID:   r.ID,
		Action:    action,
		Event:     describeAction(mv, fire),
		BoostUsed: mv.BoostActive,
	}
}

func buildReplayFrame(tick int, snap Snapshot, traces []ProjectileTrace, boosts []BoostSegment, hints []ActionHint) ReplayFrame {
	roundedTraces := make([]ProjectileTrace, len(traces))
	for i, t := range traces {
		t.From, t.To = roundedVec(t.From), roundedVec(t.To)
		roundedTraces[i] = t
	}
	roundedBoosts := make([]BoostSegment, len(boosts))
	for i, b := range boosts {
		b.From, b.To = roundedVec(b.From), roundedVec(b.To)
		roundedBoosts[i] = b
	}
	return ReplayFrame{
		Tick:          tick,
		Snapshot:      snap,
		Projectiles:   roundedTraces,
		BoostSegments: roundedBoosts,
		ActionHints:   hints,
		FrameRate:     replayFrameRate,
	}
}
