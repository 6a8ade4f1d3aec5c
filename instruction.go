package sqf

import "github.com/sqfvm-go/sqfvm/diag"

// Op enumerates the closed instruction set from spec.md §3. Grounded on the
// teacher's vm.go opcode enum (opNop, opConst, opCall, ...) — same "small
// closed enum dispatched in a switch" shape, renamed and re-cut to the ten
// variants the spec names instead of MindScript's expression-tree opcodes.
type Op int

const (
	OpPush Op = iota
	OpCallNular
	OpCallUnary
	OpCallBinary
	OpAssignTo
	OpAssignToLocal
	OpGetVariable
	OpMakeArray
	OpEndStatement
	OpScopeMark
)

func (o Op) String() string {
	switch o {
	case OpPush:
		return "push"
	case OpCallNular:
		return "callNular"
	case OpCallUnary:
		return "callUnary"
	case OpCallBinary:
		return "callBinary"
	case OpAssignTo:
		return "assignTo"
	case OpAssignToLocal:
		return "assignToLocal"
	case OpGetVariable:
		return "getVariable"
	case OpMakeArray:
		return "makeArray"
	case OpEndStatement:
		return "endStatement"
	case OpScopeMark:
		return "scopeMark"
	default:
		return "unknown"
	}
}

// Instruction is one immutable unit of compiled code. Exactly one of the
// payload fields is meaningful, selected by Op:
//
//	OpPush           -> Value
//	OpCallNular/Unary/Binary, OpAssignTo/ToLocal/GetVariable -> Name
//	OpMakeArray      -> N
//	OpScopeMark      -> Name (scope label)
//	OpEndStatement   -> (none)
//
// Loc is non-empty after any real parse (spec.md §3 invariant); the zero
// Location is only seen on instructions built synthetically in tests.
type Instruction struct {
	Op    Op
	Value Value
	Name  string
	N     int
	Loc   diag.Location
}

func Push(v Value, loc diag.Location) Instruction {
	return Instruction{Op: OpPush, Value: v, Loc: loc}
}

func CallNular(name string, loc diag.Location) Instruction {
	return Instruction{Op: OpCallNular, Name: name, Loc: loc}
}

func CallUnary(name string, loc diag.Location) Instruction {
	return Instruction{Op: OpCallUnary, Name: name, Loc: loc}
}

func CallBinary(name string, loc diag.Location) Instruction {
	return Instruction{Op: OpCallBinary, Name: name, Loc: loc}
}

func AssignTo(name string, loc diag.Location) Instruction {
	return Instruction{Op: OpAssignTo, Name: name, Loc: loc}
}

func AssignToLocal(name string, loc diag.Location) Instruction {
	return Instruction{Op: OpAssignToLocal, Name: name, Loc: loc}
}

func GetVariable(name string, loc diag.Location) Instruction {
	return Instruction{Op: OpGetVariable, Name: name, Loc: loc}
}

func MakeArray(n int, loc diag.Location) Instruction {
	return Instruction{Op: OpMakeArray, N: n, Loc: loc}
}

func EndStatement(loc diag.Location) Instruction {
	return Instruction{Op: OpEndStatement, Loc: loc}
}

func ScopeMark(name string, loc diag.Location) Instruction {
	return Instruction{Op: OpScopeMark, Name: name, Loc: loc}
}
