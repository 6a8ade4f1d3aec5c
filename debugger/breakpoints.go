// Package debugger provides a reference implementation of the sqf.Debugger
// attach interface from spec.md §6: breakpoint-by-(file,line) with a
// pause/resume barrier, and call-stack/variable inspection for whatever
// host UI drives it (a CLI REPL, in this module's case — see cmd/sqfvm).
//
// Grounded on original_source/sqfvm-cpp/debugger.cpp's attach/step/inspect
// shape (check() called between instructions, error() called on runtime
// error, stop() asked before halting) — reimplemented as a small
// synchronous state machine instead of the original's network-attached
// debug protocol, since spec.md §6 only prescribes the in-process contract,
// not a wire protocol.
package debugger

import (
	"fmt"
	"strings"
	"sync"

	"github.com/sqfvm-go/sqfvm"
	"github.com/sqfvm-go/sqfvm/diag"
)

type breakpointKey struct {
	file string
	line int
}

// Breakpoints is a reference sqf.Debugger: it pauses the engine between
// instructions whenever the current instruction's location matches a set
// breakpoint, and records the last runtime error seen.
type Breakpoints struct {
	mu          sync.Mutex
	points      map[breakpointKey]bool
	paused      bool
	onPause     func(vm *sqf.VM, loc diag.Location)
	LastError   *RuntimeErrorInfo
	stopOnError bool
}

// RuntimeErrorInfo snapshots the most recent error the engine reported
// through Error.
type RuntimeErrorInfo struct {
	Loc diag.Location
	Msg string
}

// New builds an empty breakpoint set. onPause, if non-nil, is called
// synchronously whenever execution pauses at a breakpoint; a host REPL
// typically uses it to print the call stack and block for a command.
func New(onPause func(vm *sqf.VM, loc diag.Location)) *Breakpoints {
	return &Breakpoints{points: map[breakpointKey]bool{}, onPause: onPause}
}

// Set adds a breakpoint at (file, line).
func (b *Breakpoints) Set(file string, line int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.points[breakpointKey{file, line}] = true
}

// Clear removes a breakpoint at (file, line), if present.
func (b *Breakpoints) Clear(file string, line int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.points, breakpointKey{file, line})
}

// List returns every active breakpoint location.
func (b *Breakpoints) List() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]string, 0, len(b.points))
	for k := range b.points {
		out = append(out, fmt.Sprintf("%s:%d", k.file, k.line))
	}
	return out
}

// Check implements sqf.Debugger: called between instructions.
func (b *Breakpoints) Check(vm *sqf.VM) {
	top := vm.Stack.Top()
	if top == nil {
		return
	}
	loc := top.Current.Loc
	b.mu.Lock()
	hit := b.points[breakpointKey{loc.File, loc.Line}]
	b.mu.Unlock()
	if hit && b.onPause != nil {
		b.onPause(vm, loc)
	}
}

// Error implements sqf.Debugger: called when a runtime error is raised.
func (b *Breakpoints) Error(vm *sqf.VM, loc diag.Location, msg string) {
	b.mu.Lock()
	b.LastError = &RuntimeErrorInfo{Loc: loc, Msg: msg}
	b.mu.Unlock()
}

// Stop implements sqf.Debugger: asked before the engine halts, once per
// fatal error. Always allows the halt (returns true); hosts wanting to trap
// final-state inspection should read LastError/breakpoint state from their
// onPause callback instead.
func (b *Breakpoints) Stop(vm *sqf.VM) bool {
	return true
}

// CallStackTrace renders a human-readable call-stack snapshot, deepest
// frame first, for a paused REPL to print.
func CallStackTrace(vm *sqf.VM) string {
	frames := vm.Stack.Frames()
	var b strings.Builder
	for i := len(frames) - 1; i >= 0; i-- {
		f := frames[i]
		fmt.Fprintf(&b, "#%d %s at %s\n", len(frames)-1-i, f.Name, f.Current.Loc)
	}
	return b.String()
}
