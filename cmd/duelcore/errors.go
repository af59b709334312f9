package main

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/ttacon/chalk"
	bettererrors "github.com/xtuc/better-errors"
	bettererrorstree "github.com/xtuc/better-errors/printer/tree"
)

// check prints msg in chalk.Red and exits the process, adapted from the
// teacher's common/utils/errors.go Check/Assert pair.
func check(err error, msg string) {
	if err == nil {
		return
	}
	fmt.Print(chalk.Red)
	log.Print(msg, chalk.Reset)
	failWith(err)
}

// failWith renders a *script.Diagnostic's better-errors chain as a tree
// when present, or falls back to a plain message, and exits non-zero —
// adapted from the teacher's common/utils/failWith.go.
func failWith(err error) {
	type chainer interface{ Chain() *bettererrors.Chain }

	if c, ok := err.(chainer); ok {
		msg := bettererrorstree.PrintChain(c.Chain())
		fmt.Println()
		fmt.Println(chalk.Red.Color("script error"))
		fmt.Println()
		fmt.Print(msg)
		fmt.Println()
		os.Exit(1)
	}

	fmt.Println(chalk.Red.Color("error: " + strings.TrimSpace(err.Error())))
	os.Exit(1)
}
