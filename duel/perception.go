package duel

import (
	"math"

	"github.com/bytearena/duelcore/geom"
)

// cardinalFromHeading derives the compass quadrant the wire format reports
// for a heading, per the external interface's quadrant rule.
func cardinalFromHeading(headingRad float64) string {
	deg := geom.NormalizeAngle(headingRad) * 180 / math.Pi
	switch {
	case deg >= 315 || deg < 45:
		return "E"
	case deg < 135:
		return "S"
	case deg < 225:
		return "W"
	default:
		return "N"
	}
}

func headingDegrees(headingRad float64) float64 {
	return geom.NormalizeAngle(headingRad) * 180 / math.Pi
}

func distanceBand(d float64) string {
	switch {
	case d <= 2:
		return "near"
	case d <= 4:
		return "mid"
	default:
		return "far"
	}
}

func bearingOf(lateral float64) string {
	switch {
	case math.Abs(lateral) <= 0.75:
		return "FRONT"
	case lateral < 0:
		return "FRONT_LEFT"
	default:
		return "FRONT_RIGHT"
	}
}

// visionCheck reports whether self can see other, the raw world-frame
// offset and distance (which feed the ENEMY_DX/DY/DISTANCE sensors), and
// the forward/lateral decomposition of that offset in self's heading frame
// (used for the visibility test and the bearing).
func visionCheck(self, other *RobotState) (visible bool, dx, dy, distance, forward, lateral float64) {
	if !other.Alive {
		return false, 0, 0, 0, 0, 0
	}

	offset := other.Pos.Sub(self.Pos)
	dx, dy = offset.Get()
	distance = offset.Mag()
	if distance > VisionRadius {
		return false, dx, dy, distance, 0, 0
	}

	fwdUnit := geom.FromHeading(self.Heading)
	rightUnit := geom.FromHeading(self.Heading + math.Pi/2)

	forward = offset.Dot(fwdUnit)
	lateral = offset.Dot(rightUnit)

	if forward <= 0 {
		return false, dx, dy, distance, forward, lateral
	}

	denom := math.Max(1e-9, forward)
	angle := math.Atan2(math.Abs(lateral), denom)
	if math.Abs(angle) > VisionHalfAngle {
		return false, dx, dy, distance, forward, lateral
	}

	return true, dx, dy, distance, forward, lateral
}

// castWallRay casts from self's position along a heading-relative direction
// until it crosses the arena boundary, at square side arenaSize-1.
func castWallRay(self *RobotState, arenaSize int, relativeAngle float64) WallRay {
	max := float64(arenaSize - 1)
	dir := geom.FromHeading(self.Heading + relativeAngle)
	point, dist, side := geom.CastRayToSquare(self.Pos, dir, max)
	return WallRay{Distance: dist, Point: point, Side: side.String()}
}

// BuildPerception computes self's view of the world this tick: whether the
// opponent is visible and at what relative geometry, and the wall rays
// along the four heading-relative directions plus the two sight-arc edges.
func BuildPerception(self, other *RobotState, arenaSize int) Perception {
	visible, dx, dy, distance, _, lateral := visionCheck(self, other)

	p := Perception{
		RobotID:      self.ID,
		EnemyVisible: visible,
		Wall: WallPerception{
			Ahead:         castWallRay(self, arenaSize, 0),
			Left:          castWallRay(self, arenaSize, -math.Pi/2),
			Right:         castWallRay(self, arenaSize, math.Pi/2),
			Back:          castWallRay(self, arenaSize, math.Pi),
			SightArcLeft:  castWallRay(self, arenaSize, -VisionHalfAngle),
			SightArcRight: castWallRay(self, arenaSize, VisionHalfAngle),
		},
	}

	rays := []WallRay{p.Wall.Ahead, p.Wall.Left, p.Wall.Right, p.Wall.Back}
	p.Wall.Nearest = rays[0]
	for _, r := range rays[1:] {
		if r.Distance < p.Wall.Nearest.Distance {
			p.Wall.Nearest = r
		}
	}

	if visible {
		p.Enemy = &EnemyPerception{
			DX:       dx,
			DY:       dy,
			Distance: distance,
			Band:     distanceBand(distance),
			Bearing:  bearingOf(lateral),
			Heading:  headingDegrees(other.Heading),
		}
	}

	return p
}
