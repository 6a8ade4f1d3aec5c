package sqf

import "github.com/sqfvm-go/sqfvm/diag"

// Parser is the contract an external front-end (sqfexpr or sqfasm) must
// satisfy to feed instructions into a fresh call frame (spec.md §6 "Parser
// collaborator contract"). Given expanded source and the VM's operator
// registry (so the parser can consult precedence metadata when building an
// expression tree), it produces either a Code value or a list of
// diagnostics — never both partially: parse-time errors halt parsing of the
// translation unit before the engine is entered (spec.md §7).
type Parser interface {
	Parse(source string, registry *Registry) (*Code, []diag.Message)
}

// Debugger is the optional attach/step/inspect collaborator from spec.md §6.
// The engine calls Check between every instruction, Error when a runtime
// error is raised, and Stop before halting so a debugger can veto (e.g. to
// let the user resume past an error instead of unwinding).
type Debugger interface {
	// Check is called between instructions; non-blocking unless the
	// debugger itself chooses to block (e.g. at a breakpoint).
	Check(vm *VM)
	// Error is called when a runtime error is raised, before the engine
	// decides whether to abort the statement or unwind the stack.
	Error(vm *VM, loc diag.Location, msg string)
	// Stop is asked before the engine halts; returning false keeps the VM
	// from halting (the debugger has taken control, e.g. dropped into an
	// interactive prompt).
	Stop(vm *VM) bool
}
