package script

import (
	"fmt"
	"strconv"

	bettererrors "github.com/xtuc/better-errors"
)

// Diagnostic is the single failure shape Parse ever returns: a 1-based
// source line and a human-readable message, carried inside a better-errors
// chain so callers that print diagnostic trees upstream get the same
// formatting as every other command-line failure in this codebase.
type Diagnostic struct {
	Line    int
	Message string
	chain   *bettererrors.Chain
}

func newDiagnostic(line int, format string, args ...interface{}) *Diagnostic {
	msg := fmt.Sprintf(format, args...)
	chain := bettererrors.
		New(msg).
		SetContext("line", strconv.Itoa(line))
	return &Diagnostic{Line: line, Message: msg, chain: chain}
}

func (d *Diagnostic) Error() string {
	return fmt.Sprintf("line %d: %s", d.Line, d.Message)
}

// Chain exposes the underlying better-errors chain for callers that want to
// render a diagnostic tree (the CLI's parse and run commands both do).
func (d *Diagnostic) Chain() *bettererrors.Chain { return d.chain }
