package duel

import (
	"github.com/bytearena/duelcore/geom"
	"github.com/bytearena/duelcore/rules"
	"github.com/bytearena/duelcore/script"
)

// RobotState is the simulator's owned, mutable view of one combatant.
// Unlike Program, which is immutable and may be shared across battles,
// RobotState belongs exclusively to a single running simulation.
type RobotState struct {
	ID      string
	Program *script.Program

	Pos     geom.Vector2
	Heading float64 // radians, arena convention

	Alive  bool
	Energy float64

	FireCooldown int

	BoostCooldown       int
	BoostBurstRemaining int
	BoostLocked         rules.BoostChoice

	Memory EnemyMemory
}

// EnemyMemory holds the last confirmed sighting of the opponent, used to
// compute the PREV_ENEMY_* and ENEMY_*_DELTA sensors even on ticks when the
// enemy has slipped out of the vision cone.
type EnemyMemory struct {
	Valid bool

	X, Y, Heading float64
	DX, DY        float64
	Distance      float64

	TicksSinceSeen int
}

// BattleConfig bounds a single simulate() call.
type BattleConfig struct {
	ArenaSize int `json:"arenaSize"`
	MaxTicks  int `json:"maxTicks"`

	// stream, when non-nil, receives every ReplayFrame through a
	// leaky-bucket channel as the battle runs, in addition to the batch
	// BattleResult.ReplayFrames slice. Set it with WithFrameStream. See
	// replay.go.
	stream *FrameStream `json:"-"`

	// Verbose emits one logx.Tick trace line per tick, for CLI --debug runs.
	Verbose bool `json:"-"`
}

// DefaultBattleConfig mirrors the defaults named in the external interface.
func DefaultBattleConfig() BattleConfig {
	return BattleConfig{ArenaSize: ArenaSizeDefault, MaxTicks: MaxTicksDefault}
}

// WithFrameStream returns a copy of cfg wired to push every ReplayFrame
// into fs as the battle runs. The caller must read fs.Batches() from a
// separate goroutine than the one calling SimulateBattle, since the
// stream delivers frames while the battle is still in progress.
func (cfg BattleConfig) WithFrameStream(fs *FrameStream) BattleConfig {
	cfg.stream = fs
	return cfg
}

// --- wire snapshot shapes -------------------------------------------------

type RobotSnapshot struct {
	ID            string       `json:"id"`
	Position      geom.Vector2 `json:"position"`
	Heading       float64      `json:"heading"`
	Direction     string       `json:"direction"`
	Alive         bool         `json:"alive"`
	Energy        float64      `json:"energy"`
	FireCooldown  int          `json:"fireCooldown"`
	BoostCooldown int          `json:"boostCooldown"`
}

type Snapshot struct {
	Tick   int             `json:"tick"`
	Robots []RobotSnapshot `json:"robots"`
}

type EnemyPerception struct {
	DX       float64 `json:"dx"`
	DY       float64 `json:"dy"`
	Distance float64 `json:"distance"`
	Band     string  `json:"band"`
	Bearing  string  `json:"bearing"`
	Heading  float64 `json:"heading"`
}

type WallRay struct {
	Distance float64      `json:"distance"`
	Point    geom.Vector2 `json:"point"`
	Side     string       `json:"side"`
}

type WallPerception struct {
	Ahead, Left, Right, Back WallRay `json:"-"`
	Nearest                  WallRay `json:"nearest"`
	SightArcLeft             WallRay `json:"sightArcLeft"`
	SightArcRight            WallRay `json:"sightArcRight"`
}

// MarshalJSON flattens the four cardinal rays under lowerCamelCase keys,
// mirroring the field-naming convention the rest of the wire format uses.
func (w WallPerception) MarshalJSON() ([]byte, error) {
	type alias struct {
		Ahead         WallRay `json:"ahead"`
		Left          WallRay `json:"left"`
		Right         WallRay `json:"right"`
		Back          WallRay `json:"back"`
		Nearest       WallRay `json:"nearest"`
		SightArcLeft  WallRay `json:"sightArcLeft"`
		SightArcRight WallRay `json:"sightArcRight"`
	}
	return marshalJSON(alias{w.Ahead, w.Left, w.Right, w.Back, w.Nearest, w.SightArcLeft, w.SightArcRight})
}

type Perception struct {
	RobotID      string           `json:"robotId"`
	EnemyVisible bool             `json:"enemyVisible"`
	Enemy        *EnemyPerception `json:"enemy,omitempty"`
	Wall         WallPerception   `json:"wall"`
}

type ProjectileTrace struct {
	ShooterID string       `json:"shooterId"`
	TargetID  string       `json:"targetId"`
	From      geom.Vector2 `json:"from"`
	To        geom.Vector2 `json:"to"`
	Direction string       `json:"direction"`
	Range     float64      `json:"range"`
	Hit       bool         `json:"hit"`
}

// projectile is an in-flight shot, owned by the simulator between spawn
// and retirement (hit, range exhaustion, or leaving the arena).
type projectile struct {
	ShooterID, TargetID string
	Pos                 geom.Vector2
	Dir                 geom.Vector2
	CardinalAtSpawn     string
	Traveled            float64
	MaxRange            float64
}

type ControlSnapshot struct {
	Throttle float64 `json:"throttle"`
	Strafe   float64 `json:"strafe"`
	Turn     float64 `json:"turn"`
	Fire     bool    `json:"fire"`
	Boost    string  `json:"boost"`
}

type ActionRecord struct {
	RobotID         string           `json:"robotId"`
	Controls        ControlSnapshot  `json:"controls"`
	MatchedLines    []int            `json:"matchedLines"`
	RotationDelta   float64          `json:"rotationDelta"`
	Moved           bool             `json:"moved"`
	HitBoundary     bool             `json:"hitBoundary"`
	BlockedByRobot  bool             `json:"blockedByRobot"`
	ShotFired       bool             `json:"shotFired"`
	ShotBlockedWhy  string           `json:"shotBlockedWhy,omitempty"`
	ProjectileTrace *ProjectileTrace `json:"projectileTrace,omitempty"`
	BoostIgnited    bool             `json:"boostIgnited"`
	BoostActive     bool             `json:"boostActive"`
	Details         string           `json:"details"`
}

type TickLog struct {
	Tick            int               `json:"tick"`
	StartSnapshot   Snapshot          `json:"startSnapshot"`
	StartPerception []Perception      `json:"startPerception"`
	Actions         []ActionRecord    `json:"actions"`
	Projectiles     []ProjectileTrace `json:"projectiles"`
	EndSnapshot     Snapshot          `json:"endSnapshot"`
	EndPerception   []Perception      `json:"endPerception"`
}

type BoostSegment struct {
	RobotID string       `json:"robotId"`
	From    geom.Vector2 `json:"from"`
	To      geom.Vector2 `json:"to"`
}

type ActionHint struct {
	RobotID   string `json:"robotId"`
	Action    string `json:"action"`
	Event     string `json:"event"`
	BoostUsed bool   `json:"boostUsed"`
}

type ReplayFrame struct {
	Tick          int               `json:"tick"`
	Snapshot      Snapshot          `json:"snapshot"`
	Projectiles   []ProjectileTrace `json:"projectiles"`
	BoostSegments []BoostSegment    `json:"boostSegments"`
	ActionHints   []ActionHint      `json:"actionHints"`
	FrameRate     int               `json:"frameRate"`
}

type BattleResult struct {
	Config            BattleConfig `json:"config"`
	InitialSnapshot   Snapshot     `json:"initialSnapshot"`
	FinalSnapshot     Snapshot     `json:"finalSnapshot"`
	InitialPerception []Perception `json:"initialPerception"`
	FinalPerception   []Perception `json:"finalPerception"`
	Ticks             []TickLog    `json:"ticks"`
	ReplayFrames      []ReplayFrame `json:"replayFrames"`
	Status            string       `json:"status"`
	WinnerID          string       `json:"winnerId,omitempty"`
}
