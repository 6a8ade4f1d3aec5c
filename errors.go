package sqf

import (
	"fmt"

	"github.com/sqfvm-go/sqfvm/diag"
)

// RuntimeError is an error raised during execution, carrying the numeric
// diagnostic code and location it was raised at (spec.md §7 "runtime-type",
// "runtime-shape", "runtime-environment", "fatal" error kinds).
//
// Grounded on the teacher's RuntimeError (interpreter.go) — same
// Line/Col/Msg shape, with Code added since this engine's diagnostics are
// numerically coded (diag.Message) rather than free text, and Fatal added
// to distinguish the spec's statement-abort vs call-stack-unwind
// propagation rules (spec.md §7).
type RuntimeError struct {
	Code  int
	Loc   diag.Location
	Msg   string
	Fatal bool
}

func (e *RuntimeError) Error() string {
	return fmt.Sprintf("%s: %s", e.Loc, e.Msg)
}

// NewRuntimeError builds a non-fatal runtime error (the common case: it
// aborts the current statement only, per spec.md §7).
func NewRuntimeError(code int, loc diag.Location, format string, args ...any) *RuntimeError {
	return &RuntimeError{Code: code, Loc: loc, Msg: fmt.Sprintf(format, args...)}
}

// NewFatalError builds a fatal runtime error: it unwinds the entire call
// stack and halts the VM (spec.md §7).
func NewFatalError(code int, loc diag.Location, format string, args ...any) *RuntimeError {
	return &RuntimeError{Code: code, Loc: loc, Msg: fmt.Sprintf(format, args...), Fatal: true}
}

func (e *RuntimeError) toMessage() diag.Message {
	sev := diag.Error
	if e.Fatal {
		sev = diag.Fatal
	}
	return diag.Message{Severity: sev, Code: e.Code, Loc: e.Loc, Payload: e.Msg}
}
