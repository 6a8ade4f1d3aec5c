package sqf

import (
	"container/list"
	"strings"

	"github.com/sqfvm-go/sqfvm/diag"
)

// Frame is one call frame (spec.md §3 "Scope"): a scope name for stack
// traces, the namespace unqualified globals resolve against, a local
// variable map, a FIFO instruction queue, a work stack, and the
// currently-dispatched instruction (for diagnostics).
//
// Grounded on the teacher's Env (interpreter.go: parent/table/sealParentWrites)
// generalized from a parent-linked chain to a flat local map — SQF frames
// don't lexically nest, the CallStack's frame vector plays that role
// (scope.go's design notes, spec.md §9 "Scopes as linked frames").
type Frame struct {
	Name      string
	Namespace *Namespace
	Locals    map[string]Value
	display   map[string]string
	queue     *list.List // of Instruction
	Work      []Value
	Current   Instruction
	Scheduled bool // may this frame suspend? (spec.md §4.5 "Suspension")
}

// NewFrame creates an empty frame bound to ns, ready to receive instructions
// via Enqueue.
func NewFrame(name string, ns *Namespace) *Frame {
	return &Frame{
		Name:      name,
		Namespace: ns,
		Locals:    map[string]Value{},
		display:   map[string]string{},
		queue:     list.New(),
	}
}

// Enqueue appends instructions to the frame's pending queue.
func (f *Frame) Enqueue(instrs ...Instruction) {
	for _, in := range instrs {
		f.queue.PushBack(in)
	}
}

// Dequeue pops the next pending instruction, if any.
func (f *Frame) Dequeue() (Instruction, bool) {
	el := f.queue.Front()
	if el == nil {
		return Instruction{}, false
	}
	f.queue.Remove(el)
	return el.Value.(Instruction), true
}

func (f *Frame) QueueEmpty() bool { return f.queue.Len() == 0 }

func (f *Frame) Push(v Value) { f.Work = append(f.Work, v) }

func (f *Frame) Pop() (Value, bool) {
	n := len(f.Work)
	if n == 0 {
		return Nil(), false
	}
	v := f.Work[n-1]
	f.Work = f.Work[:n-1]
	return v, true
}

// ClearWork discards the work stack, the OpEndStatement behavior.
func (f *Frame) ClearWork() { f.Work = f.Work[:0] }

func (f *Frame) getLocal(name string) (Value, bool) {
	v, ok := f.Locals[normName(name)]
	return v, ok
}

func (f *Frame) setLocal(name string, v Value) {
	key := normName(name)
	f.Locals[key] = v
	if _, ok := f.display[key]; !ok {
		f.display[key] = name
	}
}

func (f *Frame) hasLocal(name string) bool {
	_, ok := f.Locals[normName(name)]
	return ok
}

// IsLocalName reports the parse-time-enforced naming convention: identifiers
// beginning with "_" are local variables (spec.md §3); the engine itself
// does not enforce this at execute time, only variable-resolution rules
// consult it.
func IsLocalName(name string) bool { return strings.HasPrefix(name, "_") }

// CallStack is the ordered sequence of frames, deepest (most recently
// pushed) at the end — spec.md §3 "Call stack".
type CallStack struct {
	frames []*Frame
}

func NewCallStack() *CallStack { return &CallStack{} }

func (cs *CallStack) Push(f *Frame) { cs.frames = append(cs.frames, f) }

func (cs *CallStack) Pop() (*Frame, bool) {
	n := len(cs.frames)
	if n == 0 {
		return nil, false
	}
	f := cs.frames[n-1]
	cs.frames = cs.frames[:n-1]
	return f, true
}

func (cs *CallStack) Top() *Frame {
	if len(cs.frames) == 0 {
		return nil
	}
	return cs.frames[len(cs.frames)-1]
}

func (cs *CallStack) Empty() bool { return len(cs.frames) == 0 }

func (cs *CallStack) Depth() int { return len(cs.frames) }

// Frames returns the live frame vector, deepest last. Callers must not
// retain it across a Push/Pop.
func (cs *CallStack) Frames() []*Frame { return cs.frames }

// GetLocal/SetLocal operate on the top frame only (spec.md §4.3).
func (cs *CallStack) GetLocal(name string) (Value, bool) {
	top := cs.Top()
	if top == nil {
		return Nil(), false
	}
	return top.getLocal(name)
}

func (cs *CallStack) SetLocal(name string, v Value) {
	top := cs.Top()
	if top == nil {
		return
	}
	top.setLocal(name, v)
}

// GetAny walks frames top-down, falling through to the top frame's bound
// namespace (spec.md §4.3/§4.5 variable resolution rules). Names beginning
// with "_" are looked up only in frames.
func (cs *CallStack) GetAny(name string) (Value, bool) {
	for i := len(cs.frames) - 1; i >= 0; i-- {
		if v, ok := cs.frames[i].getLocal(name); ok {
			return v, true
		}
	}
	if IsLocalName(name) {
		return Nil(), false
	}
	top := cs.Top()
	if top == nil || top.Namespace == nil {
		return Nil(), false
	}
	return top.Namespace.Get(name)
}

// SetAny mutates the first frame (top-down) where name is already bound, or
// if none, writes to the top frame's namespace for a global name, or binds
// it fresh in the top frame for a local name (spec.md §4.3/§4.5).
func (cs *CallStack) SetAny(name string, v Value) {
	for i := len(cs.frames) - 1; i >= 0; i-- {
		if cs.frames[i].hasLocal(name) {
			cs.frames[i].setLocal(name, v)
			return
		}
	}
	top := cs.Top()
	if top == nil {
		return
	}
	if IsLocalName(name) {
		top.setLocal(name, v)
		return
	}
	if top.Namespace != nil {
		top.Namespace.Set(name, v)
	}
}

// diagLoc is a tiny convenience so callers building synthetic diagnostics
// from a frame's current instruction don't repeat the field access.
func diagLoc(f *Frame) diag.Location {
	if f == nil {
		return diag.Location{}
	}
	return f.Current.Loc
}
