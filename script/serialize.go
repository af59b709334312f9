package script

import (
	"strconv"
	"strings"
)

// Serialize renders the program back into DSL source text. Re-parsing the
// result must yield a structurally equal Program — the round-trip property
// the test suite relies on to validate that the AST carries no hidden
// information lost by printing.
func (prog *Program) Serialize() string {
	lines := make([]string, len(prog.Rules))
	for i, r := range prog.Rules {
		lines[i] = r.serialize()
	}
	return strings.Join(lines, "\n")
}

func (r Rule) serialize() string {
	cmd := serializeCommand(r.Command)
	if r.Condition == nil {
		return cmd
	}
	return "IF " + serializeCondition(r.Condition) + " THEN " + cmd
}

func serializeCommand(c Command) string {
	switch cmd := c.(type) {
	case SetControl:
		return "SET " + cmd.Field.String() + " " + formatNum(cmd.Value)
	case Fire:
		if cmd.Enabled {
			return "FIRE ON"
		}
		return "FIRE OFF"
	case Boost:
		return "BOOST " + cmd.Direction.String()
	default:
		return ""
	}
}

func serializeCondition(c Condition) string {
	switch cond := c.(type) {
	case Visibility:
		return "ENEMY_VISIBLE"
	case Compare:
		return serializeNumExpr(cond.Left) + " " + cond.Op.String() + " " + serializeNumExpr(cond.Right)
	case Logical:
		return "(" + serializeCondition(cond.Left) + ") " + cond.Op.String() + " (" + serializeCondition(cond.Right) + ")"
	case Not:
		return "NOT (" + serializeCondition(cond.Operand) + ")"
	default:
		return ""
	}
}

func serializeNumExpr(e NumExpr) string {
	switch expr := e.(type) {
	case Number:
		return formatNum(expr.Value)
	case Sensor:
		return expr.Name
	case Unary:
		sign := "+"
		if expr.Op == UnaryMinus {
			sign = "-"
		}
		return sign + "(" + serializeNumExpr(expr.Operand) + ")"
	case Binary:
		return "(" + serializeNumExpr(expr.Left) + " " + expr.Op.String() + " " + serializeNumExpr(expr.Right) + ")"
	case FuncCall:
		args := make([]string, len(expr.Args))
		for i, a := range expr.Args {
			args[i] = serializeNumExpr(a)
		}
		return expr.Name + "(" + strings.Join(args, ", ") + ")"
	default:
		return ""
	}
}

func formatNum(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
