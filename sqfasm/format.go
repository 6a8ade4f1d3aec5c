// Package sqfasm implements the "assembly" parser front-end collaborator
// from spec.md §6: one instruction per line, using the instruction names
// from §3 with literal arguments. It satisfies the sqf.Parser interface so
// the engine can consume it interchangeably with sqfexpr.
//
// Grounded on the teacher's printer.go / lexer.go pairing (a small
// hand-rolled recursive-descent reader plus a matching writer) — adapted
// from MindScript's expression-tree surface to a flat, one-opcode-per-line
// instruction listing, since spec.md §4.2 requires the assembly surface to
// be round-trip exact over Instruction, not over an AST.
package sqfasm

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/sqfvm-go/sqfvm"
)

// Format renders instructions back to assembly text, one per line. It is
// the inverse of Parse: for any Code produced by Parse, Format(Parse(...))
// reproduces semantically identical instructions (spec.md §4.2 round-trip
// exactness; literal whitespace/ordering of the original text is not
// preserved, only the instruction sequence is).
func Format(instructions []sqf.Instruction) string {
	var b strings.Builder
	for _, in := range instructions {
		b.WriteString(formatOne(in))
		b.WriteByte('\n')
	}
	return b.String()
}

func formatOne(in sqf.Instruction) string {
	switch in.Op {
	case sqf.OpPush:
		return "push " + formatValueLiteral(in.Value)
	case sqf.OpCallNular:
		return "callNular " + in.Name
	case sqf.OpCallUnary:
		return "callUnary " + in.Name
	case sqf.OpCallBinary:
		return "callBinary " + in.Name
	case sqf.OpAssignTo:
		return "assignTo " + in.Name
	case sqf.OpAssignToLocal:
		return "assignToLocal " + in.Name
	case sqf.OpGetVariable:
		return "getVariable " + in.Name
	case sqf.OpMakeArray:
		return "makeArray " + strconv.Itoa(in.N)
	case sqf.OpEndStatement:
		return "endStatement"
	case sqf.OpScopeMark:
		return "scopeMark " + in.Name
	default:
		return "; unknown opcode"
	}
}

func formatValueLiteral(v sqf.Value) string {
	switch v.Tag() {
	case sqf.TNil:
		return "NIL"
	case sqf.TBool:
		if v.AsBool() {
			return "BOOL true"
		}
		return "BOOL false"
	case sqf.TScalar:
		return "SCALAR " + strconv.FormatFloat(v.AsScalar(), 'g', -1, 64)
	case sqf.TString:
		return "STRING " + quoteString(v.AsString())
	default:
		return fmt.Sprintf("; unsupported literal tag %v", v.Tag())
	}
}

func quoteString(s string) string {
	var b strings.Builder
	b.WriteByte('"')
	for _, r := range s {
		if r == '"' || r == '\\' {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	b.WriteByte('"')
	return b.String()
}
