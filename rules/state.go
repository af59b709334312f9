package rules

import (
	"github.com/bytearena/duelcore/script"
	"github.com/bytearena/duelcore/sensors"
)

// BoostChoice is the tri-state boost intent a control state carries: a
// robot can leave its previous boost alone only across ticks, never within
// one — each tick starts neutral.
type BoostChoice int

const (
	BoostNone BoostChoice = iota
	BoostLeft
	BoostRight
)

func (b BoostChoice) String() string {
	switch b {
	case BoostLeft:
		return "LEFT"
	case BoostRight:
		return "RIGHT"
	default:
		return "NONE"
	}
}

// ControlState is what a rule walk produces: the last-match-wins value of
// every controllable field, plus which rule lines actually fired this
// tick (for the tick log's telemetry).
type ControlState struct {
	Throttle float64
	Strafe   float64
	Turn     float64
	Fire     bool
	Boost    BoostChoice

	MatchedLines []int
}

func neutral() ControlState {
	return ControlState{}
}

// Walk evaluates every rule in program top-to-bottom against the given
// sensor table, applying each matched rule's command over a running
// control state. Rules are never reordered or deduplicated: authors are
// expected to place defaults above overrides.
func Walk(program *script.Program, table map[string]sensors.Value, enemyVisible bool) ControlState {
	state := neutral()

	for _, rule := range program.Rules {
		if rule.Condition != nil && !evalCondition(rule.Condition, table, enemyVisible) {
			continue
		}

		switch cmd := rule.Command.(type) {
		case script.SetControl:
			switch cmd.Field {
			case script.FieldThrottle:
				state.Throttle = cmd.Value
			case script.FieldStrafe:
				state.Strafe = cmd.Value
			case script.FieldTurn:
				state.Turn = cmd.Value
			}
		case script.Fire:
			state.Fire = cmd.Enabled
		case script.Boost:
			if cmd.Direction == script.BoostLeft {
				state.Boost = BoostLeft
			} else {
				state.Boost = BoostRight
			}
		}

		state.MatchedLines = append(state.MatchedLines, rule.Line)
	}

	return state
}
