// Package rules evaluates a parsed script.Program against a sensor table,
// producing the control vector the movement and combat engines consume.
package rules

import (
	"math"

	"github.com/bytearena/duelcore/geom"
	"github.com/bytearena/duelcore/numeric"
	"github.com/bytearena/duelcore/script"
	"github.com/bytearena/duelcore/sensors"
)

const radToDeg = 180 / math.Pi
const degToRad = math.Pi / 180

// evalNumExpr walks a numeric expression tree. An unavailable sensor, or a
// NaN/Inf hazard produced along the way, poisons the whole subtree rather
// than panicking or erroring — this is the "unavailable" propagation the
// sensor contract describes.
func evalNumExpr(e script.NumExpr, table map[string]sensors.Value) sensors.Value {
	switch expr := e.(type) {
	case script.Number:
		return sensors.Avail(expr.Value)

	case script.Sensor:
		v, ok := table[expr.Name]
		if !ok {
			return sensors.Unavailable
		}
		return v

	case script.Unary:
		v := evalNumExpr(expr.Operand, table)
		if !v.Available {
			return sensors.Unavailable
		}
		if expr.Op == script.UnaryMinus {
			return hazardGuard(-v.Num)
		}
		return hazardGuard(v.Num)

	case script.Binary:
		l := evalNumExpr(expr.Left, table)
		r := evalNumExpr(expr.Right, table)
		if !l.Available || !r.Available {
			return sensors.Unavailable
		}
		switch expr.Op {
		case script.BinAdd:
			return hazardGuard(l.Num + r.Num)
		case script.BinSub:
			return hazardGuard(l.Num - r.Num)
		case script.BinMul:
			return hazardGuard(l.Num * r.Num)
		case script.BinDiv:
			return hazardGuard(l.Num / r.Num)
		default:
			return sensors.Unavailable
		}

	case script.FuncCall:
		args := make([]float64, len(expr.Args))
		for i, a := range expr.Args {
			v := evalNumExpr(a, table)
			if !v.Available {
				return sensors.Unavailable
			}
			args[i] = v.Num
		}
		return evalFunction(expr.Name, args)

	default:
		return sensors.Unavailable
	}
}

func hazardGuard(v float64) sensors.Value {
	if numeric.IsHazard(v) {
		return sensors.Unavailable
	}
	return sensors.Avail(v)
}

func evalFunction(name string, args []float64) sensors.Value {
	switch name {
	case "ABS":
		return hazardGuard(math.Abs(args[0]))
	case "MIN":
		return hazardGuard(math.Min(args[0], args[1]))
	case "MAX":
		return hazardGuard(math.Max(args[0], args[1]))
	case "CLAMP":
		lo, hi := args[1], args[2]
		v := args[0]
		if v < lo {
			v = lo
		} else if v > hi {
			v = hi
		}
		return hazardGuard(v)
	case "ATAN2":
		// Every angle-valued sensor (SELF_HEADING, ENEMY_HEADING, ...) is
		// reported in degrees, so ATAN2 returns degrees too rather than
		// radians: a script comparing its result against SELF_HEADING
		// never needs a unit conversion.
		return hazardGuard(math.Atan2(args[0], args[1]) * radToDeg)
	case "ANGLE_DIFF":
		diff := geom.AngleDiff(args[0]*degToRad, args[1]*degToRad)
		return hazardGuard(diff * radToDeg)
	case "NORMALIZE_ANGLE":
		return hazardGuard(geom.NormalizeAngle(args[0]*degToRad) * radToDeg)
	default:
		return sensors.Unavailable
	}
}

// evalCondition evaluates a condition tree to a plain bool. A Compare whose
// operand is unavailable evaluates false, matching the halts-matching
// contract in the sensor evaluator's design. enemyVisible is threaded in
// separately from the numeric table since visibility isn't itself a
// numeric sensor.
func evalCondition(c script.Condition, table map[string]sensors.Value, enemyVisible bool) bool {
	switch cond := c.(type) {
	case script.Visibility:
		return enemyVisible == cond.Visible

	case script.Compare:
		l := evalNumExpr(cond.Left, table)
		r := evalNumExpr(cond.Right, table)
		if !l.Available || !r.Available {
			return false
		}
		switch cond.Op {
		case script.CmpGt:
			return l.Num > r.Num
		case script.CmpGte:
			return l.Num >= r.Num
		case script.CmpLt:
			return l.Num < r.Num
		case script.CmpLte:
			return l.Num <= r.Num
		case script.CmpEq:
			return l.Num == r.Num
		case script.CmpNeq:
			return l.Num != r.Num
		default:
			return false
		}

	case script.Logical:
		left := evalCondition(cond.Left, table, enemyVisible)
		if cond.Op == script.LogicalAnd {
			return left && evalCondition(cond.Right, table, enemyVisible)
		}
		return left || evalCondition(cond.Right, table, enemyVisible)

	case script.Not:
		return !evalCondition(cond.Operand, table, enemyVisible)

	default:
		return false
	}
}
