package sqfasm

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/sqfvm-go/sqfvm"
	"github.com/sqfvm-go/sqfvm/diag"
)

// Parser implements sqf.Parser for the assembly grammar. FileName is used
// only for diagnostic locations.
type Parser struct {
	FileName string
}

func New(fileName string) *Parser { return &Parser{FileName: fileName} }

// Parse splits source into statements (by newline, then by ';' within a
// line, so both "one per line" and semicolon-separated single-line forms
// from spec.md §8 scenario 3 are accepted), and parses each as one
// instruction.
func (p *Parser) Parse(source string, registry *sqf.Registry) (*sqf.Code, []diag.Message) {
	var instrs []sqf.Instruction
	var msgs []diag.Message

	lineNo := 0
	for _, physLine := range strings.Split(source, "\n") {
		lineNo++
		for _, stmt := range strings.Split(physLine, ";") {
			stmt = strings.TrimSpace(stmt)
			if stmt == "" || strings.HasPrefix(stmt, "#") {
				continue
			}
			in, err := parseStatement(stmt, diag.Location{File: p.FileName, Line: lineNo, Col: 1})
			if err != nil {
				msgs = append(msgs, diag.Message{
					Severity: diag.Error,
					Code:     diag.CodeAsmBadOperand,
					Loc:      diag.Location{File: p.FileName, Line: lineNo, Col: 1},
					Payload:  err.Error(),
				})
				continue
			}
			instrs = append(instrs, in)
		}
	}
	if len(msgs) > 0 {
		return nil, msgs
	}
	return sqf.NewCode(instrs, source), nil
}

func parseStatement(stmt string, loc diag.Location) (sqf.Instruction, error) {
	fields := splitFirst(stmt)
	op, rest := fields[0], fields[1]

	switch op {
	case "push":
		v, err := parseLiteral(rest)
		if err != nil {
			return sqf.Instruction{}, err
		}
		return sqf.Push(v, loc), nil
	case "callNular":
		return sqf.CallNular(strings.TrimSpace(rest), loc), nil
	case "callUnary":
		return sqf.CallUnary(strings.TrimSpace(rest), loc), nil
	case "callBinary":
		return sqf.CallBinary(strings.TrimSpace(rest), loc), nil
	case "assignTo":
		return sqf.AssignTo(strings.TrimSpace(rest), loc), nil
	case "assignToLocal":
		return sqf.AssignToLocal(strings.TrimSpace(rest), loc), nil
	case "getVariable":
		return sqf.GetVariable(strings.TrimSpace(rest), loc), nil
	case "makeArray":
		n, err := strconv.Atoi(strings.TrimSpace(rest))
		if err != nil {
			return sqf.Instruction{}, fmt.Errorf("makeArray: bad count %q", rest)
		}
		return sqf.MakeArray(n, loc), nil
	case "endStatement":
		return sqf.EndStatement(loc), nil
	case "scopeMark":
		return sqf.ScopeMark(strings.TrimSpace(rest), loc), nil
	default:
		return sqf.Instruction{}, fmt.Errorf("unknown instruction %q", op)
	}
}

// splitFirst splits "op rest..." into exactly two fields, rest possibly
// empty.
func splitFirst(s string) [2]string {
	s = strings.TrimSpace(s)
	i := strings.IndexAny(s, " \t")
	if i < 0 {
		return [2]string{s, ""}
	}
	return [2]string{s[:i], strings.TrimSpace(s[i+1:])}
}

func parseLiteral(s string) (sqf.Value, error) {
	fields := splitFirst(s)
	kind, rest := fields[0], fields[1]
	switch kind {
	case "NIL":
		return sqf.Nil(), nil
	case "BOOL":
		switch strings.TrimSpace(rest) {
		case "true":
			return sqf.Bool(true), nil
		case "false":
			return sqf.Bool(false), nil
		default:
			return sqf.Value{}, fmt.Errorf("push BOOL: expected true/false, got %q", rest)
		}
	case "SCALAR":
		n, err := strconv.ParseFloat(strings.TrimSpace(rest), 64)
		if err != nil {
			return sqf.Value{}, fmt.Errorf("push SCALAR: %w", err)
		}
		return sqf.Scalar(n), nil
	case "STRING":
		str, err := unquote(strings.TrimSpace(rest))
		if err != nil {
			return sqf.Value{}, err
		}
		return sqf.String(str), nil
	default:
		return sqf.Value{}, fmt.Errorf("push: unknown literal type %q", kind)
	}
}

func unquote(s string) (string, error) {
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return "", fmt.Errorf("push STRING: expected a quoted literal, got %q", s)
	}
	inner := s[1 : len(s)-1]
	var b strings.Builder
	for i := 0; i < len(inner); i++ {
		if inner[i] == '\\' && i+1 < len(inner) {
			i++
			b.WriteByte(inner[i])
			continue
		}
		b.WriteByte(inner[i])
	}
	return b.String(), nil
}
