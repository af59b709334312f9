package duel

import (
	"fmt"
	"math"

	"github.com/pkg/errors"
	uuid "github.com/satori/go.uuid"

	"github.com/bytearena/duelcore/geom"
	"github.com/bytearena/duelcore/internal/logx"
	"github.com/bytearena/duelcore/rules"
	"github.com/bytearena/duelcore/script"
)

// robotNamespace anchors the deterministic v5 UUIDs assigned to combatants:
// SimulateBattle's output must be reproducible byte-for-byte given the same
// inputs, which a random v4 id (as the teacher's agent/projectile ids use)
// would violate.
var robotNamespace = uuid.NewV5(uuid.NamespaceOID, "bytearena/duelcore/robot")

func newRobot(pos geom.Vector2, heading float64, program *script.Program, slot int) *RobotState {
	id := uuid.NewV5(robotNamespace, fmt.Sprintf("slot-%d", slot))
	return &RobotState{
		ID:      id.String(),
		Program: program,
		Pos:     pos,
		Heading: heading,
		Alive:   true,
		Energy:  MaxEnergy,
	}
}

// SimulateBattle is the engine's second external entry point (spec.md §6):
// given two compiled programs and a config, it runs the deterministic tick
// loop to completion and returns the full BattleResult. Robot A starts at
// (0,0) heading East, robot B at (N-1,N-1) heading West, per spec.md's
// lifecycle section.
func SimulateBattle(progA, progB *script.Program, cfg BattleConfig) (*BattleResult, error) {
	if progA == nil || progB == nil {
		return nil, errors.New("simulate: both robot programs are required")
	}
	if err := cfg.validate(); err != nil {
		return nil, errors.Wrap(err, "simulate")
	}

	arenaMax := float64(cfg.ArenaSize - 1)
	robots := [2]*RobotState{
		newRobot(geom.MakeVector2(0, 0), 0, progA, 0),
		newRobot(geom.MakeVector2(arenaMax, arenaMax), math.Pi, progB, 1),
	}
	byID := map[string]*RobotState{
		robots[0].ID: robots[0],
		robots[1].ID: robots[1],
	}

	perceptions := [2]Perception{
		BuildPerception(robots[0], robots[1], cfg.ArenaSize),
		BuildPerception(robots[1], robots[0], cfg.ArenaSize),
	}

	result := &BattleResult{
		Config:            cfg,
		InitialSnapshot:   buildSnapshot(0, robots),
		InitialPerception: roundPerceptions(perceptions),
	}
	result.FinalSnapshot = result.InitialSnapshot
	result.FinalPerception = result.InitialPerception
	result.ReplayFrames = append(result.ReplayFrames,
		buildReplayFrame(0, result.InitialSnapshot, nil, nil, nil))

	stream := cfg.stream
	if stream != nil {
		stream.Push(result.ReplayFrames[0])
	}

	var projectiles []*projectile
	pendingKills := make(map[string]bool, 2)

	status := "draw"
	winnerID := ""

	for tick := 1; tick <= cfg.MaxTicks; tick++ {
		startSnapshot := buildSnapshot(tick-1, robots)
		startPerception := roundPerceptions(perceptions)

		var controls [2]rules.ControlState
		for i, r := range robots {
			if !r.Alive {
				continue
			}
			table := buildSensorTable(r, perceptions[i], cfg.ArenaSize)
			controls[i] = rules.Walk(r.Program, table, perceptions[i].EnemyVisible)
		}

		moveResults := resolveMovement(robots, controls, cfg.ArenaSize)

		for _, r := range robots {
			tickDownFireCooldown(r)
		}

		fireOutcomes, spawned := spawnIntents(robots, controls)
		projectiles = append(projectiles, spawned...)

		for k := range pendingKills {
			delete(pendingKills, k)
		}
		aliveProjectiles, advanced := advanceProjectiles(projectiles, byID, cfg.ArenaSize, pendingKills)
		projectiles = aliveProjectiles
		applyPendingKills(robots, pendingKills)

		tickTraces := make([]ProjectileTrace, 0, len(advanced))
		newTraceByShooter := make(map[string]*ProjectileTrace, 2)
		spawnedSet := make(map[*projectile]bool, len(spawned))
		for _, s := range spawned {
			spawnedSet[s] = true
		}
		for _, a := range advanced {
			tickTraces = append(tickTraces, a.trace)
			if spawnedSet[a.src] {
				t := a.trace
				newTraceByShooter[a.trace.ShooterID] = &t
			}
		}

		newPerceptions := [2]Perception{
			BuildPerception(robots[0], robots[1], cfg.ArenaSize),
			BuildPerception(robots[1], robots[0], cfg.ArenaSize),
		}
		for i, r := range robots {
			updateMemory(&r.Memory, newPerceptions[i], robots[1-i].Pos)
		}

		endSnapshot := buildSnapshot(tick, robots)
		endPerception := roundPerceptions(newPerceptions)

		actions := make([]ActionRecord, 2)
		var boostSegments []BoostSegment
		hints := make([]ActionHint, 0, 2)
		for i, r := range robots {
			trace := newTraceByShooter[r.ID]
			actions[i] = buildActionRecord(r, controls[i], moveResults[i], fireOutcomes[i], trace)
			if moveResults[i].BoostActive {
				boostSegments = append(boostSegments, BoostSegment{
					RobotID: r.ID,
					From:    moveResults[i].BoostFrom,
					To:      moveResults[i].BoostTo,
				})
			}
			hints = append(hints, buildActionHint(r, controls[i], moveResults[i], fireOutcomes[i]))
		}

		tickLog := TickLog{
			Tick:            tick,
			StartSnapshot:   startSnapshot,
			StartPerception: startPerception,
			Actions:         actions,
			Projectiles:     tickTraces,
			EndSnapshot:     endSnapshot,
			EndPerception:   endPerception,
		}
		result.Ticks = append(result.Ticks, tickLog)

		frame := buildReplayFrame(tick, endSnapshot, tickTraces, boostSegments, hints)
		result.ReplayFrames = append(result.ReplayFrames, frame)
		if stream != nil {
			stream.Push(frame)
		}

		perceptions = newPerceptions
		result.FinalSnapshot = endSnapshot
		result.FinalPerception = endPerception

		aliveCount, lastAliveID := 0, ""
		for _, r := range robots {
			if r.Alive {
				aliveCount++
				lastAliveID = r.ID
			}
		}

		if cfg.Verbose {
			logx.Tick(tick, status)
		}

		if aliveCount == 1 {
			status, winnerID = "finished", lastAliveID
			break
		}
		if aliveCount == 0 {
			status = "draw"
			break
		}
	}

	result.Status = status
	result.WinnerID = winnerID
	return result, nil
}
