package sqfexpr

import (
	"fmt"
	"strings"

	"github.com/sqfvm-go/sqfvm"
	"github.com/sqfvm-go/sqfvm/diag"
)

// Parser implements sqf.Parser for the high-level expression grammar.
type Parser struct {
	FileName string
}

func New(fileName string) *Parser { return &Parser{FileName: fileName} }

type parseState struct {
	toks     []token
	pos      int
	fileName string
	registry *sqf.Registry
	out      []sqf.Instruction
	msgs     []diag.Message
}

func (p *Parser) Parse(source string, registry *sqf.Registry) (*sqf.Code, []diag.Message) {
	toks := newLexer(source).lex()
	st := &parseState{toks: toks, fileName: p.FileName, registry: registry}
	st.program()
	if len(st.msgs) > 0 {
		return nil, st.msgs
	}
	return sqf.NewCode(st.out, source), nil
}

func (st *parseState) cur() token  { return st.toks[st.pos] }
func (st *parseState) at(t tokType, text string) bool {
	c := st.cur()
	return c.typ == t && (text == "" || c.text == text)
}
func (st *parseState) advance() token {
	t := st.toks[st.pos]
	if st.pos < len(st.toks)-1 {
		st.pos++
	}
	return t
}

func (st *parseState) loc() diag.Location {
	c := st.cur()
	return diag.Location{File: st.fileName, Line: c.line, Col: c.col}
}

func (st *parseState) errorf(format string, args ...any) {
	st.msgs = append(st.msgs, diag.Message{
		Severity: diag.Error,
		Code:     diag.CodeExprUnexpectedToken,
		Loc:      st.loc(),
		Payload:  fmt.Sprintf(format, args...),
	})
}

// program parses a sequence of statements (a ';' ends a statement, but a
// statement that ends without one is simply followed by the next), emitting
// EndStatement only
// *between* statements — never after the final one — so the last
// statement's result value survives on the work stack at halt (spec.md §8
// scenario 1/2).
func (st *parseState) program() {
	if st.at(tEOF, "") {
		return
	}
	first := true
	for !st.at(tEOF, "") {
		if st.at(tPunct, ";") {
			st.advance()
			continue
		}
		if !first {
			st.out = append(st.out, sqf.EndStatement(st.loc()))
		}
		first = false
		st.statement()
		if len(st.msgs) > 0 {
			return
		}
	}
}

func (st *parseState) statement() {
	loc := st.loc()

	if st.at(tIdent, "private") {
		st.advance()
		if !st.at(tIdent, "") || !strings.HasPrefix(st.cur().text, "_") {
			st.errorf("expected a local variable name after 'private'")
			return
		}
		name := st.advance().text
		if st.at(tPunct, "=") {
			st.advance()
			st.expr(0)
			st.out = append(st.out, sqf.AssignToLocal(name, loc))
		} else {
			st.out = append(st.out, sqf.Push(sqf.Nil(), loc), sqf.AssignToLocal(name, loc))
		}
		return
	}

	if st.at(tIdent, "") && st.toks[st.pos+1].typ == tPunct && st.toks[st.pos+1].text == "=" {
		name := st.advance().text
		st.advance() // '='
		st.expr(0)
		st.out = append(st.out, sqf.AssignTo(name, loc))
		return
	}

	st.expr(0)
}

// expr implements precedence-climbing binary-operator parsing, consulting
// the registry for each candidate operator's precedence (spec.md §4.4).
func (st *parseState) expr(minPrec int) {
	st.unary()
	for {
		name, ok := st.peekBinaryOpName()
		if !ok {
			return
		}
		prec := 5
		if st.registry != nil {
			prec = st.registry.Precedence(name, 5)
		}
		if prec < minPrec {
			return
		}
		loc := st.loc()
		st.advance()
		st.expr(prec + 1)
		st.out = append(st.out, sqf.CallBinary(name, loc))
	}
}

// peekBinaryOpName reports the operator name of the current token if it
// could start a binary operator (symbolic punctuation, an identifier
// registered as a binary operator, or an identifier registered under no
// arity at all that is followed by an operand), without consuming it. The
// last case is left for the engine to report as an unknown binary operator.
func (st *parseState) peekBinaryOpName() (string, bool) {
	c := st.cur()
	switch c.typ {
	case tPunct:
		switch c.text {
		case "+", "-", "*", "/", "%", "^", "<", ">", "<=", ">=", "==", "!=", "&&", "||":
			return c.text, true
		}
		return "", false
	case tIdent:
		if c.text == "private" || c.text == "true" || c.text == "false" {
			return "", false
		}
		if st.registry != nil {
			if _, ok := st.registry.Lookup(c.text, sqf.Binary); ok {
				return c.text, true
			}
			_, isNular := st.registry.Lookup(c.text, sqf.Nular)
			_, isUnary := st.registry.Lookup(c.text, sqf.Unary)
			if !isNular && !isUnary && startsOperand(st.toks[st.pos+1]) {
				return c.text, true
			}
		}
		return "", false
	}
	return "", false
}

// unary handles prefix '-'/'!' and identifier-form unary operators (e.g.
// "abs 4", "count arr"), then falls through to primary.
func (st *parseState) unary() {
	c := st.cur()
	if c.typ == tPunct && (c.text == "-" || c.text == "!") {
		loc := st.loc()
		op := st.advance().text
		st.unary()
		st.out = append(st.out, sqf.CallUnary(op, loc))
		return
	}
	if c.typ == tIdent && c.text != "true" && c.text != "false" && c.text != "private" {
		if st.registry != nil {
			if _, ok := st.registry.Lookup(c.text, sqf.Unary); ok {
				// Only treat as a unary-operator application when followed
				// by something that can start an operand (not an operator
				// or a statement terminator) — otherwise it's a bare
				// variable/nular reference.
				nxt := st.toks[st.pos+1]
				if startsOperand(nxt) {
					loc := st.loc()
					name := st.advance().text
					st.unary()
					st.out = append(st.out, sqf.CallUnary(name, loc))
					return
				}
			}
		}
	}
	st.primary()
}

func startsOperand(t token) bool {
	switch t.typ {
	case tNumber, tString, tIdent:
		return true
	case tPunct:
		return t.text == "(" || t.text == "[" || t.text == "{" || t.text == "-" || t.text == "!"
	}
	return false
}

func (st *parseState) primary() {
	c := st.cur()
	loc := st.loc()

	switch {
	case c.typ == tNumber:
		st.advance()
		st.out = append(st.out, sqf.Push(sqf.Scalar(c.numVal), loc))

	case c.typ == tString:
		st.advance()
		st.out = append(st.out, sqf.Push(sqf.String(c.text), loc))

	case c.typ == tIdent && c.text == "true":
		st.advance()
		st.out = append(st.out, sqf.Push(sqf.Bool(true), loc))

	case c.typ == tIdent && c.text == "false":
		st.advance()
		st.out = append(st.out, sqf.Push(sqf.Bool(false), loc))

	case c.typ == tPunct && c.text == "(":
		st.advance()
		st.expr(0)
		if !st.at(tPunct, ")") {
			st.errorf("expected ')'")
			return
		}
		st.advance()

	case c.typ == tPunct && c.text == "[":
		st.advance()
		n := 0
		if !st.at(tPunct, "]") {
			for {
				st.expr(0)
				n++
				if st.at(tPunct, ",") {
					st.advance()
					continue
				}
				break
			}
		}
		if !st.at(tPunct, "]") {
			st.errorf("expected ']'")
			return
		}
		st.advance()
		st.out = append(st.out, sqf.MakeArray(n, loc))

	case c.typ == tPunct && c.text == "{":
		st.advance()
		inner := st.codeBlock()
		st.out = append(st.out, sqf.Push(sqf.CodeVal(inner), loc))

	case c.typ == tIdent:
		st.advance()
		if st.registry != nil {
			if _, ok := st.registry.Lookup(c.text, sqf.Nular); ok {
				st.out = append(st.out, sqf.CallNular(c.text, loc))
				return
			}
		}
		st.out = append(st.out, sqf.GetVariable(c.text, loc))

	default:
		st.errorf("unexpected token %q", c.text)
	}
}

// codeBlock parses statements until a matching '}' and returns them as a
// nested Code value (a first-class CODE literal, spec.md §3).
func (st *parseState) codeBlock() *sqf.Code {
	saved := st.out
	st.out = nil
	first := true
	for !st.at(tPunct, "}") && !st.at(tEOF, "") {
		if st.at(tPunct, ";") {
			st.advance()
			continue
		}
		if !first {
			st.out = append(st.out, sqf.EndStatement(st.loc()))
		}
		first = false
		st.statement()
		if len(st.msgs) > 0 {
			break
		}
	}
	body := st.out
	st.out = saved
	if st.at(tPunct, "}") {
		st.advance()
	} else {
		st.errorf("expected '}'")
	}
	return sqf.NewCode(body, "")
}
