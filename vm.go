package sqf

import (
	"fmt"
	"time"

	"github.com/sqfvm-go/sqfvm/diag"
)

// Config holds the execution engine's tunables (spec.md §4.5, §5).
type Config struct {
	// MaxInstructions caps the number of instructions a single top-level
	// Execute run (including the nested runs its operators start) may
	// dispatch; 0 means unlimited. Exceeding it raises
	// CodeMaximumInstructionCap as a fatal error (spec.md §4.5 step 4).
	MaxInstructions int
	// VerboseReturningNil, when set, emits a CodeReturningNil diagnostic at
	// Verbose severity every time GET_VARIABLE misses (spec.md §4.5 step 3
	// "GET_VARIABLE(n): ... push nil on miss (with verbose diagnostic
	// ReturningNil only when configured)").
	VerboseReturningNil bool
}

// VM is the host-embedded script interface (spec.md §6): hosts call Parse
// then Execute, then read the resulting work-stack values and inspect
// namespaces. A single VM instance holds exactly one active evaluation
// context (one CallStack) at a time.
//
// Grounded on the teacher's vm struct (vm.go: ip/chunk/env/stack/sp) and
// Interpreter (interpreter.go: Global/Core/native/_ops) — merged into one
// type here because spec.md's engine and host-interface are the same
// object, unlike MindScript's split between a bytecode vm and a
// tree-walking Interpreter.
type VM struct {
	NS       *NamespaceSet
	Stack    *CallStack
	Sink     diag.Sink
	Registry *Registry
	Debugger Debugger
	Config   Config

	halted       bool
	suspendUntil time.Time
	instrCount   int
	now          func() time.Time
}

// NewVM builds a VM with a fresh namespace set and empty call stack. sink
// may be diag.DiscardSink{} if the host doesn't want diagnostics.
func NewVM(sink diag.Sink, registry *Registry) *VM {
	if sink == nil {
		sink = diag.DiscardSink{}
	}
	if registry == nil {
		registry = NewRegistry()
	}
	return &VM{
		NS:       NewNamespaceSet(),
		Stack:    NewCallStack(),
		Sink:     sink,
		Registry: registry,
		now:      time.Now,
	}
}

// Halted reports whether the VM reached a fatal error or an explicit stop.
func (vm *VM) Halted() bool { return vm.halted }

// Suspended reports whether the VM is currently inside a suspension window
// (spec.md §4.5 "Suspension").
func (vm *VM) Suspended() bool {
	return !vm.suspendUntil.IsZero() && vm.now().Before(vm.suspendUntil)
}

// Suspend requests the engine stop dispatching for d; legal only when the
// top frame is Scheduled (spec.md §4.5). Operators call this from their
// Callback; none of the operators registered by the ops package call it.
func (vm *VM) Suspend(d time.Duration) error {
	top := vm.Stack.Top()
	if top == nil || !top.Scheduled {
		return NewRuntimeError(diag.CodeSuspensionDisabled, diagLoc(top),
			"suspension requested in an unscheduled frame")
	}
	vm.suspendUntil = vm.now().Add(d)
	return nil
}

// Tick clears the suspension deadline once it has passed; it is a no-op
// when not suspended or when the deadline is still ahead. It dispatches no
// instruction itself, and no VM method resumes the frames a suspended
// Execute left on the call stack.
func (vm *VM) Tick() {
	if !vm.suspendUntil.IsZero() && !vm.now().Before(vm.suspendUntil) {
		vm.suspendUntil = time.Time{}
	}
}

// Parse delegates to an external Parser collaborator (spec.md §6), passing
// this VM's operator registry so the parser can consult precedence
// metadata.
func (vm *VM) Parse(p Parser, source string) (*Code, []diag.Message) {
	return p.Parse(source, vm.Registry)
}

// Execute pushes a fresh frame bound to the mission namespace (the default
// global namespace, matching the teacher's single-Global-env convention),
// enqueues code's instructions, and drives the engine loop until the call
// stack this call introduced is empty or the VM suspends/halts. It returns
// the top frame's final work-stack snapshot, or an error if a fatal error
// halted the VM.
//
// frameName is a free-form label for stack traces; scheduled marks the
// frame as permitted to suspend (spec.md §4.5).
func (vm *VM) Execute(code *Code, frameName string, scheduled bool) ([]Value, error) {
	return vm.ExecuteIn(code, frameName, scheduled, vm.NS.Get(NSMission))
}

// ExecuteIn is Execute with an explicit bound namespace, for hosts running a
// script against a namespace other than "mission" (e.g. a UI script bound
// to "ui").
func (vm *VM) ExecuteIn(code *Code, frameName string, scheduled bool, ns *Namespace) ([]Value, error) {
	f := NewFrame(frameName, ns)
	f.Scheduled = scheduled
	f.Enqueue(code.Instructions...)
	baseDepth := vm.Stack.Depth()
	vm.Stack.Push(f)

	if err := vm.run(baseDepth); err != nil {
		return nil, err
	}
	return f.Work, nil
}

// ExecuteWithLocals is ExecuteIn with the new frame's local variables
// pre-seeded before its instructions run — the hook loop-style operators
// (ops.forEach, and ops.do for a "for" loop) need to bind "_x"/"_forEachIndex"
// or a "for" counter before the body's first instruction dispatches.
func (vm *VM) ExecuteWithLocals(code *Code, frameName string, scheduled bool, ns *Namespace, locals map[string]Value) ([]Value, error) {
	f := NewFrame(frameName, ns)
	f.Scheduled = scheduled
	for name, v := range locals {
		f.setLocal(name, v)
	}
	f.Enqueue(code.Instructions...)
	baseDepth := vm.Stack.Depth()
	vm.Stack.Push(f)

	if err := vm.run(baseDepth); err != nil {
		return nil, err
	}
	return f.Work, nil
}

// fail routes a runtime error through the debugger hook (if bound) and the
// diagnostic sink, matching spec.md §7 propagation: non-fatal errors abort
// the current statement (the frame's work stack is discarded and its
// pending instructions are dropped up to the statement's EndStatement, so
// execution continues with the next statement); fatal errors unwind the
// entire call stack and halt the VM — unless a bound Debugger vetoes the
// halt (spec.md §6 "the engine asks before halting"), in which case only the
// frame's work stack is discarded and dispatch continues with the next
// queued instruction.
func (vm *VM) fail(f *Frame, err *RuntimeError) {
	if vm.Debugger != nil {
		vm.Debugger.Error(vm, err.Loc, err.Msg)
	}
	vm.Sink.Emit(err.toMessage())
	if err.Fatal {
		if vm.Debugger != nil && !vm.Debugger.Stop(vm) {
			if f != nil {
				f.ClearWork()
			}
			return
		}
		vm.halted = true
		for !vm.Stack.Empty() {
			vm.Stack.Pop()
		}
		return
	}
	if f != nil {
		f.ClearWork()
		for !f.QueueEmpty() && f.queue.Front().Value.(Instruction).Op != OpEndStatement {
			f.Dequeue()
		}
	}
}

func (vm *VM) String() string {
	return fmt.Sprintf("VM{depth=%d halted=%v}", vm.Stack.Depth(), vm.halted)
}
