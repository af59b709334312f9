// Package logx emits structured JSON trace events for machine consumption,
// adapted from the teacher codebase's common/utils/debug.go. It is the
// simulator driver's opt-in tick-boundary tracing (BattleConfig.Verbose in
// cmd/duelcore), kept separate from the CLI's human-facing chalk output.
package logx

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// Context carries free-form structured fields alongside a log line.
type Context map[string]interface{}

type message struct {
	Time    string  `json:"time"`
	Service string  `json:"service"`
	Message string  `json:"message"`
	Context Context `json:"context,omitempty"`
}

// Debug writes one JSON line to stdout naming the emitting service and a
// human message, optionally carrying structured context.
func Debug(service, msg string, ctx Context) {
	m := message{
		Time:    time.Now().Format(time.RFC3339),
		Service: service,
		Message: msg,
		Context: ctx,
	}
	data, err := json.Marshal(m)
	if err != nil {
		fmt.Fprintln(os.Stderr, "logx: marshal failure:", err)
		return
	}
	fmt.Println(string(data))
}

// Tick is a convenience wrapper for the simulator's per-tick trace line.
func Tick(tick int, status string) {
	Debug("duelcore.sim", fmt.Sprintf("tick %d: %s", tick, status), nil)
}
