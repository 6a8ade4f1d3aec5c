package preprocessor

import (
	"strings"

	"github.com/sqfvm-go/sqfvm/diag"
	"github.com/sqfvm-go/sqfvm/fileio"
)

func skipHSpace(cur *cursor) {
	for {
		r, ok := cur.peek(0)
		if !ok || (r != ' ' && r != '\t') {
			return
		}
		cur.next()
	}
}

// handleDirective is called immediately after the leading '#' has been
// consumed. It recognizes the seven directive forms from spec.md §4.1;
// malformed directives emit a diagnostic and preprocessing continues from
// the next line. An include that cannot be resolved or read emits
// IncludeFailed and preprocessing continues too: no directive aborts the
// run.
func (p *Preprocessor) handleDirective(cur *cursor, logicalPath, physicalPath string) {
	line, col := cur.pos3()
	skipHSpace(cur)
	word := cur.getWord()

	switch word {
	case "define":
		p.handleDefine(cur, logicalPath, line, col)
	case "undef":
		skipHSpace(cur)
		name := cur.getWord()
		delete(p.macros, name)
		cur.skipLineRemainder()
	case "include":
		p.handleInclude(cur, logicalPath, physicalPath, line, col)
	case "ifdef":
		skipHSpace(cur)
		name := cur.getWord()
		_, defined := p.macros[name]
		p.condStack = append(p.condStack, defined)
		cur.skipLineRemainder()
	case "ifndef":
		skipHSpace(cur)
		name := cur.getWord()
		_, defined := p.macros[name]
		p.condStack = append(p.condStack, !defined)
		cur.skipLineRemainder()
	case "else":
		if len(p.condStack) == 0 {
			p.emit(diag.Error, diag.CodeElseWithoutIf, logicalPath, line, col, "#else without matching #ifdef/#ifndef")
		} else {
			top := len(p.condStack) - 1
			p.condStack[top] = !p.condStack[top]
		}
		cur.skipLineRemainder()
	case "endif":
		if len(p.condStack) == 0 {
			p.emit(diag.Error, diag.CodeEndifWithoutIf, logicalPath, line, col, "#endif without matching #ifdef/#ifndef")
		} else {
			p.condStack = p.condStack[:len(p.condStack)-1]
		}
		cur.skipLineRemainder()
	case "":
		p.emit(diag.Warning, diag.CodeUnknownInstruction, logicalPath, line, col, "empty preprocessor directive")
		cur.skipLineRemainder()
	default:
		p.emit(diag.Warning, diag.CodeUnknownInstruction, logicalPath, line, col, "unknown preprocessor instruction %q", word)
		cur.skipLineRemainder()
	}
}

// handleDefine parses "#define NAME", "#define NAME body", and
// "#define NAME(a, b, …) body" (spec.md §4.1).
func (p *Preprocessor) handleDefine(cur *cursor, logicalPath string, line, col int) {
	skipHSpace(cur)
	name := cur.getWord()
	if name == "" {
		p.emit(diag.Error, diag.CodeMalformedDefine, logicalPath, line, col, "#define missing macro name")
		cur.skipLineRemainder()
		return
	}

	m := &Macro{Name: name}

	if r, ok := cur.peek(0); ok && r == '(' {
		cur.next()
		m.IsFunctionLike = true
		for {
			skipHSpace(cur)
			paramName := cur.getWord()
			if paramName != "" {
				m.Params = append(m.Params, paramName)
			}
			skipHSpace(cur)
			r, ok := cur.peek(0)
			if !ok {
				break
			}
			if r == ',' {
				cur.next()
				continue
			}
			if r == ')' {
				cur.next()
				break
			}
			break
		}
	}

	skipHSpace(cur)
	m.Body = strings.TrimRight(cur.getLine(true), " \t\r")

	if existing, ok := p.macros[name]; ok {
		_ = existing
		p.emit(diag.Warning, diag.CodeRedefinedMacro, logicalPath, line, col, "macro %q redefined", name)
	}
	p.macros[name] = m
}

// handleInclude parses '#include "path"' / '#include <path>' (spec.md
// §4.1), resolves and recursively expands the included file inline, then
// flags any trailing garbage on the #include line.
func (p *Preprocessor) handleInclude(cur *cursor, logicalPath, fromPhysical string, line, col int) {
	skipHSpace(cur)
	open, ok := cur.peek(0)
	if !ok || (open != '"' && open != '<') {
		p.emit(diag.Error, diag.CodeMalformedDefine, logicalPath, line, col, "#include missing \"path\" or <path>")
		cur.skipLineRemainder()
		return
	}
	cur.next()
	closeRune := '"'
	kind := fileio.Quoted
	if open == '<' {
		closeRune = '>'
		kind = fileio.Angled
	}

	var pathBuf strings.Builder
	for {
		r, ok := cur.peek(0)
		if !ok || r == closeRune || r == '\n' {
			break
		}
		cur.next()
		pathBuf.WriteRune(r)
	}
	if r, ok := cur.peek(0); ok && r == closeRune {
		cur.next()
	} else {
		p.emit(diag.Error, diag.CodeMalformedDefine, logicalPath, line, col, "unterminated #include path")
		cur.skipLineRemainder()
		return
	}
	logical := pathBuf.String()

	skipHSpace(cur)
	if r, ok := cur.peek(0); ok && r != '\n' {
		trailingLine, trailingCol := cur.pos3()
		trailing := strings.TrimSpace(cur.getLine(false))
		if trailing != "" {
			p.emit(diag.Warning, diag.CodeUnexpectedDataAfterInclude, logicalPath, trailingLine, trailingCol,
				"unexpected data after #include: %q", trailing)
		}
	}

	phys, err := p.Resolver.Resolve(logical, kind, fromPhysical)
	if err != nil {
		p.emit(diag.Error, diag.CodeIncludeFailed, logicalPath, line, col, "cannot resolve include %q: %s", logical, err.Error())
		return
	}
	p.processFile(phys, logical)
}
