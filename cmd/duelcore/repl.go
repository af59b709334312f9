package main

import (
	"io/ioutil"
	"strconv"

	"github.com/abiosoft/ishell"
	"github.com/urfave/cli"

	"github.com/bytearena/duelcore/rules"
	"github.com/bytearena/duelcore/script"
	"github.com/bytearena/duelcore/sensors"
)

func readFile(path string) (string, error) {
	data, err := ioutil.ReadFile(path)
	return string(data), err
}

// replSession holds the one script and sensor table a repl invocation
// works against, mutated by "load" and "set" commands between "eval"
// calls — grounded in cmd/arena-master-cli/main.go's ishell.Context
// receiver-method pattern.
type replSession struct {
	program      *script.Program
	table        map[string]sensors.Value
	enemyVisible bool
}

func actionRepl(c *cli.Context) error {
	session := &replSession{table: make(map[string]sensors.Value)}
	shell := ishell.New()
	shell.Println("duelcore repl — load a script, set sensors, eval the rule walk")

	shell.AddCmd(&ishell.Cmd{
		Name: "load",
		Help: "load <script.rules> — parse and install a program",
		Func: session.handleLoad,
	})
	shell.AddCmd(&ishell.Cmd{
		Name: "set",
		Help: "set <SENSOR_NAME> <value> — assign a sensor reading",
		Func: session.handleSet,
	})
	shell.AddCmd(&ishell.Cmd{
		Name: "visible",
		Help: "visible <true|false> — toggle ENEMY_VISIBLE",
		Func: session.handleVisible,
	})
	shell.AddCmd(&ishell.Cmd{
		Name: "eval",
		Help: "eval — walk the loaded program against the current sensor table",
		Func: session.handleEval,
	})

	shell.Run()
	return nil
}

func (s *replSession) handleLoad(c *ishell.Context) {
	if len(c.Args) != 1 {
		c.Println("usage: load <script.rules>")
		return
	}
	text, err := readFile(c.Args[0])
	if err != nil {
		c.Println("error: " + err.Error())
		return
	}
	prog, diag := script.Parse(text)
	if diag != nil {
		c.Println("diagnostic: " + diag.Error())
		return
	}
	s.program = prog
	c.Println("loaded", len(prog.Rules), "rule(s)")
}

func (s *replSession) handleSet(c *ishell.Context) {
	if len(c.Args) != 2 {
		c.Println("usage: set <SENSOR_NAME> <value>")
		return
	}
	name := c.Args[0]
	if !sensors.IsKnown(name) {
		c.Println("unknown sensor " + name)
		return
	}
	v, err := strconv.ParseFloat(c.Args[1], 64)
	if err != nil {
		c.Println("not a number: " + c.Args[1])
		return
	}
	s.table[name] = sensors.Avail(v)
}

func (s *replSession) handleVisible(c *ishell.Context) {
	if len(c.Args) != 1 {
		c.Println("usage: visible <true|false>")
		return
	}
	s.enemyVisible = c.Args[0] == "true"
}

func (s *replSession) handleEval(c *ishell.Context) {
	if s.program == nil {
		c.Println("no script loaded; use 'load <path>' first")
		return
	}
	state := rules.Walk(s.program, s.table, s.enemyVisible)
	c.Printf("throttle=%.4f strafe=%.4f turn=%.4f fire=%v boost=%v matched=%v\n",
		state.Throttle, state.Strafe, state.Turn, state.Fire, state.Boost, state.MatchedLines)
}
