// Command duelcore is the CLI surface for the robot-duel core: it parses
// scripts, runs battles, and offers an interactive sensor/rule REPL for
// script authors. It is a thin consumer of the core's two exported
// entry points (script.Parse and duel.SimulateBattle) — no simulation
// logic lives here.
package main

import (
	"encoding/json"
	"fmt"
	"io/ioutil"
	"math"
	"os"

	"github.com/cheggaaa/pb"
	"github.com/davecgh/go-spew/spew"
	"github.com/ttacon/chalk"
	"github.com/urfave/cli"

	"github.com/bytearena/duelcore/duel"
	"github.com/bytearena/duelcore/script"
)

func main() {
	app := makeApp()
	if err := app.Run(os.Args); err != nil {
		failWith(err)
	}
}

func makeApp() *cli.App {
	app := cli.NewApp()
	app.Name = "duelcore"
	app.Usage = "parse robot-duel scripts and run deterministic battles"
	app.Version = "0.1.0"

	app.Commands = []cli.Command{
		{
			Name:      "parse",
			Usage:     "parse a script and report any diagnostic",
			ArgsUsage: "<script.rules>",
			Action:    actionParse,
		},
		{
			Name:      "run",
			Usage:     "simulate a battle between two scripts",
			ArgsUsage: "<battle.json>",
			Flags: []cli.Flag{
				cli.BoolFlag{Name: "debug", Usage: "dump the full BattleResult with go-spew"},
				cli.StringFlag{Name: "out", Usage: "write the BattleResult JSON to this file instead of stdout"},
				cli.BoolFlag{Name: "stream", Usage: "print the frame count of each leaky-bucket batch of replay frames as the battle runs"},
			},
			Action: actionRun,
		},
		{
			Name:   "repl",
			Usage:  "interactively evaluate sensor assignments against a script",
			Action: actionRepl,
		},
	}

	return app
}

func actionParse(c *cli.Context) error {
	path := c.Args().First()
	if path == "" {
		return fmt.Errorf("usage: duelcore parse <script.rules>")
	}

	text, err := ioutil.ReadFile(path)
	check(err, "could not read "+path)

	prog, diag := script.Parse(string(text))
	if diag != nil {
		failWith(diag)
	}

	fmt.Println(chalk.Green.Color(fmt.Sprintf("ok: %d rule(s)", len(prog.Rules))))
	return nil
}

func actionRun(c *cli.Context) error {
	path := c.Args().First()
	if path == "" {
		return fmt.Errorf("usage: duelcore run <battle.json>")
	}

	setup, err := loadBattleSetup(path)
	check(err, "could not load battle config")

	textA, err := ioutil.ReadFile(setup.ScriptAPath)
	check(err, "could not read "+setup.ScriptAPath)
	textB, err := ioutil.ReadFile(setup.ScriptBPath)
	check(err, "could not read "+setup.ScriptBPath)

	progA, diagA := script.Parse(string(textA))
	if diagA != nil {
		failWith(diagA)
	}
	progB, diagB := script.Parse(string(textB))
	if diagB != nil {
		failWith(diagB)
	}

	cfg, err := duel.NewBattleConfig(setup.ArenaSize, setup.MaxTicks)
	check(err, "invalid battle config")
	cfg.Verbose = c.Bool("debug")

	var stream *duel.FrameStream
	if c.Bool("stream") {
		stream = duel.NewFrameStream(int(math.Round(1.0/duel.Dt)), 5)
		cfg = cfg.WithFrameStream(stream)
		go func() {
			for batch := range stream.Batches() {
				fmt.Println(chalk.Yellow.Color(fmt.Sprintf("stream: batch of %d frame(s)", len(batch))))
			}
		}()
	}

	bar := pb.New(cfg.MaxTicks)
	bar.Start()
	result, err := duel.SimulateBattle(progA, progB, cfg)
	check(err, "simulation failed")
	bar.Set(len(result.Ticks))
	bar.Finish()

	fmt.Println(chalk.Green.Color(fmt.Sprintf(
		"%s vs %s: %s", setup.NameA, setup.NameB, result.Status)))

	if c.Bool("debug") {
		spew.Dump(result)
	}

	out, err := json.MarshalIndent(result, "", "  ")
	check(err, "could not marshal battle result")

	if dest := c.String("out"); dest != "" {
		check(ioutil.WriteFile(dest, out, 0644), "could not write "+dest)
		return nil
	}

	fmt.Println(string(out))
	return nil
}
