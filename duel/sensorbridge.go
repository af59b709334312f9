package duel

import (
	"github.com/bytearena/duelcore/geom"
	"github.com/bytearena/duelcore/sensors"
)

// buildSensorTable translates a robot's own state, its current perception
// and its remembered enemy sighting into the generic sensor table the
// rules package evaluates against.
func buildSensorTable(self *RobotState, perception Perception, arenaSize int) map[string]sensors.Value {
	ticksSinceSeen := float64(self.Memory.TicksSinceSeen)
	if perception.EnemyVisible {
		ticksSinceSeen = 0
	}

	selfView := sensors.Self{
		X:                   self.Pos.GetX(),
		Y:                   self.Pos.GetY(),
		HeadingDegrees:      headingDegrees(self.Heading),
		Energy:              self.Energy,
		BoostCooldown:       float64(self.BoostCooldown),
		TicksSinceEnemySeen: ticksSinceSeen,
		ArenaSize:           float64(arenaSize),
	}

	var cur sensors.EnemyCurrent
	if perception.EnemyVisible && perception.Enemy != nil {
		e := perception.Enemy
		cur = sensors.EnemyCurrent{
			Visible:        true,
			X:              self.Pos.GetX() + e.DX,
			Y:              self.Pos.GetY() + e.DY,
			HeadingDegrees: e.Heading,
			DX:             e.DX,
			DY:             e.DY,
			Distance:       e.Distance,
		}
	}

	var prev sensors.EnemyPrev
	if self.Memory.Valid {
		prev = sensors.EnemyPrev{
			Valid:          true,
			X:              self.Memory.X,
			Y:              self.Memory.Y,
			HeadingDegrees: self.Memory.Heading,
			DX:             self.Memory.DX,
			DY:             self.Memory.DY,
			Distance:       self.Memory.Distance,
		}
	}

	walls := sensors.Walls{
		Ahead:   perception.Wall.Ahead.Distance,
		Left:    perception.Wall.Left.Distance,
		Right:   perception.Wall.Right.Distance,
		Back:    perception.Wall.Back.Distance,
		Nearest: perception.Wall.Nearest.Distance,
	}

	return sensors.Build(selfView, cur, prev, walls)
}

// updateMemory advances a robot's enemy-sighting memory after a tick's
// perception has been computed, per the ticks_since_enemy_seen invariant:
// zero exactly when the post-tick perception says visible, else the prior
// value plus one (saturating). otherPos is the opponent's absolute
// position at the moment of sighting — memory freezes it, rather than
// recomputing it relative to self's position on later ticks.
func updateMemory(mem *EnemyMemory, perception Perception, otherPos geom.Vector2) {
	if perception.EnemyVisible && perception.Enemy != nil {
		e := perception.Enemy
		x, y := otherPos.Get()
		mem.Valid = true
		mem.X, mem.Y = x, y
		mem.Heading = e.Heading
		mem.DX, mem.DY = e.DX, e.DY
		mem.Distance = e.Distance
		mem.TicksSinceSeen = 0
		return
	}

	if mem.TicksSinceSeen < ticksSinceEnemySeenSentinel {
		mem.TicksSinceSeen++
	}
}
