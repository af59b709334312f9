// Package sensors builds the per-tick sensor table a robot's Program reads
// from: self state, enemy perception (current and remembered), wall
// distances, and the arena size. It has no knowledge of the DSL or of the
// simulator's mutable state — callers translate their own state into the
// small view structs below.
package sensors

// Value is either a finite reading or an unavailable one. Expressions that
// reference an unavailable sensor evaluate to unavailable themselves, which
// in turn makes any Compare condition built on them evaluate false — this
// is not an error, it's how a script reacts to "I don't know yet".
type Value struct {
	Num       float64
	Available bool
}

func Avail(v float64) Value { return Value{Num: v, Available: true} }

var Unavailable = Value{}

// Self carries the actor's own telemetry.
type Self struct {
	X, Y                float64
	HeadingDegrees      float64
	Energy              float64
	BoostCooldown       float64
	TicksSinceEnemySeen float64
	ArenaSize           float64
}

// EnemyCurrent is the opponent's state this tick, when visible.
type EnemyCurrent struct {
	Visible              bool
	X, Y                 float64
	HeadingDegrees       float64
	DX, DY               float64
	Distance             float64
}

// EnemyPrev is the last remembered sighting, if any.
type EnemyPrev struct {
	Valid                bool
	X, Y                 float64
	HeadingDegrees       float64
	DX, DY               float64
	Distance             float64
}

// Walls carries the ray distances to the arena boundary along the actor's
// cardinal directions.
type Walls struct {
	Ahead, Left, Right, Back, Nearest float64
}

// Names enumerates every identifier the parser accepts as a sensor
// reference. Anything outside this set (that isn't a known function or the
// PI/TAU constants) fails to parse.
var Names = map[string]struct{}{
	"SELF_X": {}, "SELF_Y": {}, "SELF_HEADING": {},
	"SELF_ENERGY": {}, "BOOST_COOLDOWN": {},
	"TICKS_SINCE_ENEMY_SEEN": {}, "ARENA_SIZE": {},

	"ENEMY_X": {}, "ENEMY_Y": {}, "ENEMY_HEADING": {},
	"ENEMY_DX": {}, "ENEMY_DY": {}, "ENEMY_DISTANCE": {},

	"PREV_ENEMY_X": {}, "PREV_ENEMY_Y": {}, "PREV_ENEMY_HEADING": {},
	"PREV_ENEMY_DX": {}, "PREV_ENEMY_DY": {}, "PREV_ENEMY_DISTANCE": {},

	"ENEMY_X_DELTA": {}, "ENEMY_Y_DELTA": {}, "ENEMY_HEADING_DELTA": {},
	"ENEMY_DX_DELTA": {}, "ENEMY_DY_DELTA": {}, "ENEMY_DISTANCE_DELTA": {},

	"WALL_AHEAD_DISTANCE": {}, "WALL_LEFT_DISTANCE": {}, "WALL_RIGHT_DISTANCE": {},
	"WALL_BACK_DISTANCE": {}, "WALL_NEAREST_DISTANCE": {},
}

func IsKnown(name string) bool {
	_, ok := Names[name]
	return ok
}

// Build assembles the sensor table for one robot's rule evaluation this
// tick, from the self/enemy/wall views the caller has already computed.
func Build(self Self, cur EnemyCurrent, prev EnemyPrev, walls Walls) map[string]Value {
	t := make(map[string]Value, len(Names))

	t["SELF_X"] = Avail(self.X)
	t["SELF_Y"] = Avail(self.Y)
	t["SELF_HEADING"] = Avail(self.HeadingDegrees)
	t["SELF_ENERGY"] = Avail(self.Energy)
	t["BOOST_COOLDOWN"] = Avail(self.BoostCooldown)
	t["TICKS_SINCE_ENEMY_SEEN"] = Avail(self.TicksSinceEnemySeen)
	t["ARENA_SIZE"] = Avail(self.ArenaSize)

	t["WALL_AHEAD_DISTANCE"] = Avail(walls.Ahead)
	t["WALL_LEFT_DISTANCE"] = Avail(walls.Left)
	t["WALL_RIGHT_DISTANCE"] = Avail(walls.Right)
	t["WALL_BACK_DISTANCE"] = Avail(walls.Back)
	t["WALL_NEAREST_DISTANCE"] = Avail(walls.Nearest)

	if cur.Visible {
		t["ENEMY_X"] = Avail(cur.X)
		t["ENEMY_Y"] = Avail(cur.Y)
		t["ENEMY_HEADING"] = Avail(cur.HeadingDegrees)
		t["ENEMY_DX"] = Avail(cur.DX)
		t["ENEMY_DY"] = Avail(cur.DY)
		t["ENEMY_DISTANCE"] = Avail(cur.Distance)
	} else {
		t["ENEMY_X"] = Unavailable
		t["ENEMY_Y"] = Unavailable
		t["ENEMY_HEADING"] = Unavailable
		t["ENEMY_DX"] = Unavailable
		t["ENEMY_DY"] = Unavailable
		t["ENEMY_DISTANCE"] = Unavailable
	}

	if prev.Valid {
		t["PREV_ENEMY_X"] = Avail(prev.X)
		t["PREV_ENEMY_Y"] = Avail(prev.Y)
		t["PREV_ENEMY_HEADING"] = Avail(prev.HeadingDegrees)
		t["PREV_ENEMY_DX"] = Avail(prev.DX)
		t["PREV_ENEMY_DY"] = Avail(prev.DY)
		t["PREV_ENEMY_DISTANCE"] = Avail(prev.Distance)
	} else {
		t["PREV_ENEMY_X"] = Unavailable
		t["PREV_ENEMY_Y"] = Unavailable
		t["PREV_ENEMY_HEADING"] = Unavailable
		t["PREV_ENEMY_DX"] = Unavailable
		t["PREV_ENEMY_DY"] = Unavailable
		t["PREV_ENEMY_DISTANCE"] = Unavailable
	}

	deltaOf := func(curV, prevV Value) Value {
		if curV.Available && prevV.Available {
			return Avail(curV.Num - prevV.Num)
		}
		return Unavailable
	}

	t["ENEMY_X_DELTA"] = deltaOf(t["ENEMY_X"], t["PREV_ENEMY_X"])
	t["ENEMY_Y_DELTA"] = deltaOf(t["ENEMY_Y"], t["PREV_ENEMY_Y"])
	t["ENEMY_HEADING_DELTA"] = deltaOf(t["ENEMY_HEADING"], t["PREV_ENEMY_HEADING"])
	t["ENEMY_DX_DELTA"] = deltaOf(t["ENEMY_DX"], t["PREV_ENEMY_DX"])
	t["ENEMY_DY_DELTA"] = deltaOf(t["ENEMY_DY"], t["PREV_ENEMY_DY"])
	t["ENEMY_DISTANCE_DELTA"] = deltaOf(t["ENEMY_DISTANCE"], t["PREV_ENEMY_DISTANCE"])

	return t
}
