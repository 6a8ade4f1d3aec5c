// Package preprocessor implements the C-style macro/conditional-inclusion
// engine from spec.md §4.1: a stateful character-stream cursor, directive
// recognition, and object-like/function-like macro expansion, producing a
// single expanded string plus a position map back to source origin.
//
// Grounded primarily on original_source's
// sqf::parser::preprocessor::default::preprocessorfileinfo (default.h): the
// next()/peek()/move_back()/get_word()/get_line() cursor contract is taken
// directly from there, crossed with the teacher's Lexer (lexer.go) for
// line/col bookkeeping style (start/cur/line/col fields, peekN/advance
// naming).
package preprocessor

import "strings"

// cursor is a single mutable reader over one file's source text, with
// 1-step undo and comment/line-continuation folding built into next().
// Non-reentrant per file; nesting across #include is handled by
// processFile (preprocessor.go) recursing with a fresh cursor per included
// file, so the Go call stack holds the stack of cursors, matching
// original_source's "reentrant across nested includes via a stack of
// cursors" design (spec.md §9).
type cursor struct {
	src  []rune
	pos  int // index into src of the next rune to read
	line int // 1-based
	col  int // 1-based

	// undo state for move_back(): the single previous (pos,line,col)
	// before the last next() call.
	prevPos, prevLine, prevCol int
	hasPrev                    bool

	inString   bool
	stringQuot rune
}

func newCursor(src string) *cursor {
	return &cursor{src: []rune(src), pos: 0, line: 1, col: 1}
}

func (c *cursor) eof() bool { return c.pos >= len(c.src) }

// peek looks ahead k runes (0 = the next unread rune) without consuming
// anything and without comment folding — callers that need folded lookahead
// call next()+move_back() instead.
func (c *cursor) peek(k int) (rune, bool) {
	i := c.pos + k
	if i < 0 || i >= len(c.src) {
		return 0, false
	}
	return c.src[i], true
}

// rawNext consumes exactly one rune from the underlying buffer, updating
// line/col bookkeeping. It performs no comment or continuation handling.
func (c *cursor) rawNext() (rune, bool) {
	if c.eof() {
		return 0, false
	}
	r := c.src[c.pos]
	c.pos++
	if r == '\n' {
		c.line++
		c.col = 1
	} else {
		c.col++
	}
	return r, true
}

// next consumes one *logical* character: it folds "\<newline>" into
// nothing (line continuation), skips "//" line comments and "/* */" block
// comments unless the cursor is inside a string literal, and tracks string
// literal mode itself by observing unescaped quote characters. Grounded on
// preprocessorfileinfo::_next()'s recursive "skip and retry" shape.
func (c *cursor) next() (rune, bool) {
	c.prevPos, c.prevLine, c.prevCol, c.hasPrev = c.pos, c.line, c.col, true

	for {
		if c.eof() {
			return 0, false
		}
		r := c.src[c.pos]

		// Line continuation: backslash immediately followed by newline
		// (optionally with trailing \r) folds away entirely.
		if r == '\\' {
			if nl, ok := c.peek(1); ok && (nl == '\n' || (nl == '\r')) {
				c.rawNext() // consume backslash
				if r2, ok := c.peek(0); ok && r2 == '\r' {
					c.rawNext()
				}
				if r2, ok := c.peek(0); ok && r2 == '\n' {
					c.rawNext()
				}
				continue
			}
		}

		if !c.inString && r == '/' {
			if nxt, ok := c.peek(1); ok && nxt == '/' {
				for !c.eof() {
					if r2, _ := c.peek(0); r2 == '\n' {
						break
					}
					c.rawNext()
				}
				continue
			}
			if nxt, ok := c.peek(1); ok && nxt == '*' {
				c.rawNext()
				c.rawNext()
				for !c.eof() {
					a, _ := c.peek(0)
					b, _ := c.peek(1)
					if a == '*' && b == '/' {
						c.rawNext()
						c.rawNext()
						break
					}
					c.rawNext()
				}
				continue
			}
		}

		if r == '"' || r == '\'' {
			if !c.inString {
				c.inString = true
				c.stringQuot = r
			} else if r == c.stringQuot {
				// A doubled quote ("" or '') inside a same-quoted string is
				// an escaped literal quote: the first one closes string mode
				// here and the second reopens it on the next call, so both
				// characters pass through and string mode stays on.
				c.inString = false
			}
		}

		c.rawNext()
		return r, true
	}
}

// moveBack undoes exactly the last next() call. Only one step is
// guaranteed, matching the cursor contract in spec.md §4.1.
func (c *cursor) moveBack() {
	if !c.hasPrev {
		return
	}
	c.pos, c.line, c.col = c.prevPos, c.prevLine, c.prevCol
	c.hasPrev = false
}

// getWord reads the maximal [A-Za-z0-9_]+ run starting at the cursor,
// returning "" if the cursor isn't positioned at such a character.
func (c *cursor) getWord() string {
	var b strings.Builder
	for {
		r, ok := c.peek(0)
		if !ok || !isWordRune(r) {
			break
		}
		c.next()
		b.WriteRune(r)
	}
	return b.String()
}

// getLine reads through the next unescaped newline (not consuming it,
// unless a comment runs up to it, in which case next() consumes the newline
// together with the comment), optionally folding "\<newline>" continuations
// into one logical line when joinContinuations is set.
func (c *cursor) getLine(joinContinuations bool) string {
	var b strings.Builder
	for {
		r, ok := c.peek(0)
		if !ok || r == '\n' {
			return b.String()
		}
		if joinContinuations && r == '\\' {
			if nl, ok2 := c.peek(1); ok2 && nl == '\n' {
				c.rawNext()
				c.rawNext()
				b.WriteByte(' ')
				continue
			}
		}
		nr, ok := c.next()
		if !ok || nr == '\n' {
			return b.String()
		}
		b.WriteRune(nr)
	}
}

// skipLineRemainder discards the rest of the logical line (up to but not
// including the newline, unless a comment runs up to it and next() consumes
// it), used to drop the tail of a directive.
func (c *cursor) skipLineRemainder() {
	for {
		r, ok := c.peek(0)
		if !ok || r == '\n' {
			return
		}
		if nr, _ := c.next(); nr == '\n' {
			return
		}
	}
}

func isWordRune(r rune) bool {
	return r == '_' ||
		(r >= 'a' && r <= 'z') ||
		(r >= 'A' && r <= 'Z') ||
		(r >= '0' && r <= '9')
}

func (c *cursor) pos3() (line, col int) { return c.line, c.col }
