package preprocessor

import (
	"fmt"
	"strings"

	"github.com/sqfvm-go/sqfvm/diag"
	"github.com/sqfvm-go/sqfvm/fileio"
)

// Preprocessor turns a root logical path into a single expanded string plus
// a PositionMap (spec.md §4.1). One Preprocessor handles one top-level Run;
// construct a fresh one per run.
type Preprocessor struct {
	Resolver fileio.Resolver
	Sink     diag.Sink

	macros       map[string]*Macro
	includeStack []string
	condStack    []bool // allowwrite = AND(condStack); one bool per open #ifdef/#ifndef
	elseStack    []bool // no directive handler appends to it; it stays empty
	expanding    map[string]bool

	out strings.Builder
	pos *PositionMap
}

func New(resolver fileio.Resolver, sink diag.Sink) *Preprocessor {
	if sink == nil {
		sink = diag.DiscardSink{}
	}
	return &Preprocessor{
		Resolver:  resolver,
		Sink:      sink,
		macros:    map[string]*Macro{},
		expanding: map[string]bool{},
		pos:       &PositionMap{},
	}
}

// Run preprocesses rootLogicalPath (resolved as an angle include with an
// empty "from" file, i.e. purely through the resolver's roots) and returns
// the expanded text and its position map.
func (p *Preprocessor) Run(rootLogicalPath string) (string, *PositionMap, error) {
	phys, err := p.Resolver.Resolve(rootLogicalPath, fileio.Angled, "")
	if err != nil {
		return "", nil, fmt.Errorf("cannot resolve %s: %w", rootLogicalPath, err)
	}
	if err := p.processFile(phys, rootLogicalPath); err != nil {
		return "", nil, err
	}
	return p.out.String(), p.pos, nil
}

func (p *Preprocessor) allowwrite() bool {
	for _, b := range p.condStack {
		if !b {
			return false
		}
	}
	return true
}

func (p *Preprocessor) emit(sev diag.Severity, code int, file string, line, col int, format string, args ...any) {
	p.Sink.Emit(diag.Message{
		Severity: sev,
		Code:     code,
		Loc:      diag.Location{File: file, Line: line, Col: col},
		Payload:  fmt.Sprintf(format, args...),
	})
}

// writeString appends s to the output, recording that it originates at
// (file, line, col) — the position of its first rune.
func (p *Preprocessor) writeString(s string, file string, line, col int) {
	if s == "" {
		return
	}
	p.pos.mark(p.out.Len(), file, line, col)
	p.out.WriteString(s)
}

func contains(list []string, s string) bool {
	for _, x := range list {
		if x == s {
			return true
		}
	}
	return false
}

// processFile expands one physical file's contents into p.out, recursing
// for #include directives. Grounded on original_source's
// preprocessorfileinfo::parse_file, crossed with the teacher's Lexer
// line/col-tracked scan loop (lexer.go).
func (p *Preprocessor) processFile(physicalPath, logicalPath string) error {
	if contains(p.includeStack, physicalPath) {
		chain := append(append([]string{}, p.includeStack...), physicalPath)
		p.emit(diag.Error, diag.CodeRecursiveInclude, logicalPath, 1, 1,
			"recursive include detected: %s", strings.Join(chain, " -> "))
		return nil
	}
	raw, err := p.Resolver.Read(physicalPath)
	if err != nil {
		p.emit(diag.Error, diag.CodeIncludeFailed, logicalPath, 1, 1, "%s", err.Error())
		return nil
	}

	p.includeStack = append(p.includeStack, physicalPath)
	defer func() { p.includeStack = p.includeStack[:len(p.includeStack)-1] }()

	condBase := len(p.condStack)
	cur := newCursor(string(raw))
	atLineStart := true

	for {
		r, ok := cur.peek(0)
		if !ok {
			break
		}

		if atLineStart {
			var ws []rune
			wsLine, wsCol := cur.pos3()
			for {
				rr, ok2 := cur.peek(0)
				if !ok2 || (rr != ' ' && rr != '\t' && rr != '\r') {
					break
				}
				cur.next()
				ws = append(ws, rr)
			}
			if rr, ok2 := cur.peek(0); ok2 && rr == '#' {
				cur.next()
				p.handleDirective(cur, logicalPath, physicalPath)
				atLineStart = true
				continue
			}
			if p.allowwrite() {
				p.writeString(string(ws), logicalPath, wsLine, wsCol)
			}
			atLineStart = false
			continue
		}

		line, col := cur.pos3()
		r, _ = cur.next()
		if r == '\n' {
			if p.allowwrite() {
				p.writeString("\n", logicalPath, line, col)
			}
			atLineStart = true
			continue
		}
		if isWordRune(r) {
			// next() may have folded a comment or a line continuation in
			// front of r, so the word is built from r onward instead of
			// being re-read from the position before that next() call.
			word := string(r) + cur.getWord()
			if !p.allowwrite() {
				continue
			}
			p.expandWord(word, cur, logicalPath, line, col)
			continue
		}
		if p.allowwrite() {
			p.writeString(string(r), logicalPath, line, col)
		}
	}

	if len(p.condStack) != condBase {
		line, col := cur.pos3()
		p.emit(diag.Error, diag.CodeMissingEndif, logicalPath, line, col, "missing #endif at end of file")
		p.condStack = p.condStack[:condBase]
		if len(p.elseStack) > condBase {
			p.elseStack = p.elseStack[:condBase]
		}
	}
	return nil
}

// expandWord handles one word encountered during the top-level file scan:
// if it names a macro, expand it (consuming a following argument list from
// cur for function-like macros); otherwise pass it through verbatim
// (spec.md §4.1 "Words not matching a defined macro pass through verbatim").
func (p *Preprocessor) expandWord(word string, cur *cursor, file string, line, col int) {
	m, ok := p.macros[word]
	if !ok {
		p.writeString(word, file, line, col)
		return
	}
	if p.expanding[word] {
		// Re-entrancy guard: a macro does not expand recursively into
		// itself within its own expansion (spec.md §4.1).
		p.writeString(word, file, line, col)
		return
	}

	if !m.IsFunctionLike {
		p.expanding[word] = true
		expanded := p.expandTextFully(m.Body, file, line, col)
		delete(p.expanding, word)
		p.writeString(expanded, file, line, col)
		return
	}

	// Function-like: only expands when immediately (optional whitespace)
	// followed by "(".
	save := *cur
	for {
		rr, ok2 := cur.peek(0)
		if !ok2 || (rr != ' ' && rr != '\t' && rr != '\n' && rr != '\r') {
			break
		}
		cur.next()
	}
	rr, ok2 := cur.peek(0)
	if !ok2 || rr != '(' {
		*cur = save
		p.writeString(word, file, line, col)
		return
	}
	cur.next() // consume '('
	argText := p.readBalanced(cur, ')')
	rawArgs := splitArgs(argText)
	if len(rawArgs) != len(m.Params) {
		p.emit(diag.Error, diag.CodeArgCountMismatch, file, line, col,
			"macro %q expects %d argument(s), got %d", word, len(m.Params), len(rawArgs))
		p.writeString(word+"("+argText+")", file, line, col)
		return
	}
	expandedArgs := make([]string, len(rawArgs))
	for i, a := range rawArgs {
		expandedArgs[i] = p.expandTextFully(a, file, line, col)
	}
	body := expandBody(m, rawArgs, expandedArgs)

	p.expanding[word] = true
	expanded := p.expandTextFully(body, file, line, col)
	delete(p.expanding, word)
	p.writeString(expanded, file, line, col)
}

// readBalanced consumes up to (and including) the matching close rune,
// honouring nested (), [], {} (spec.md §4.1 "parse a comma-separated
// argument list with balanced nesting"), and returns the text strictly
// between the opening and the matching close.
func (p *Preprocessor) readBalanced(cur *cursor, closeRune rune) string {
	var b strings.Builder
	depth := 1
	for {
		r, ok := cur.next()
		if !ok {
			break
		}
		switch r {
		case '(', '[', '{':
			depth++
		case ')', ']', '}':
			depth--
			if depth == 0 && r == closeRune {
				return b.String()
			}
		}
		b.WriteRune(r)
	}
	return b.String()
}

// expandTextFully fully macro-expands a plain string (a macro body, or a
// macro argument's already-extracted text) with no directive handling —
// directives are only recognized at the top of a physical source file
// (spec.md §4.1 scopes directive recognition to "line-leading #").
func (p *Preprocessor) expandTextFully(s string, file string, line, col int) string {
	var b strings.Builder
	runes := []rune(s)
	i := 0
	for i < len(runes) {
		r := runes[i]
		if isWordRune(r) {
			j := i
			for j < len(runes) && isWordRune(runes[j]) {
				j++
			}
			word := string(runes[i:j])
			i = j

			m, ok := p.macros[word]
			if !ok || p.expanding[word] {
				b.WriteString(word)
				continue
			}
			if !m.IsFunctionLike {
				p.expanding[word] = true
				b.WriteString(p.expandTextFully(m.Body, file, line, col))
				delete(p.expanding, word)
				continue
			}
			k := i
			for k < len(runes) && (runes[k] == ' ' || runes[k] == '\t' || runes[k] == '\n' || runes[k] == '\r') {
				k++
			}
			if k >= len(runes) || runes[k] != '(' {
				b.WriteString(word)
				continue
			}
			k++ // consume '('
			depth := 1
			start := k
			for k < len(runes) && depth > 0 {
				switch runes[k] {
				case '(':
					depth++
				case ')':
					depth--
					if depth == 0 {
						continue
					}
				}
				k++
			}
			argText := string(runes[start:k])
			if k < len(runes) {
				k++ // consume ')'
			}
			i = k

			rawArgs := splitArgs(argText)
			if len(rawArgs) != len(m.Params) {
				p.emit(diag.Error, diag.CodeArgCountMismatch, file, line, col,
					"macro %q expects %d argument(s), got %d", word, len(m.Params), len(rawArgs))
				b.WriteString(word + "(" + argText + ")")
				continue
			}
			expandedArgs := make([]string, len(rawArgs))
			for idx, a := range rawArgs {
				expandedArgs[idx] = p.expandTextFully(a, file, line, col)
			}
			body := expandBody(m, rawArgs, expandedArgs)
			p.expanding[word] = true
			b.WriteString(p.expandTextFully(body, file, line, col))
			delete(p.expanding, word)
			continue
		}
		b.WriteRune(r)
		i++
	}
	return b.String()
}
