// Package diag defines the structured diagnostics surface shared by every
// other package in this module. No library package in this module writes
// directly to stdout/stderr or calls the standard log package (only the
// cmd/sqfvm host prints); every component that needs to report something
// accepts a Sink and emits a Message through it.
package diag

import (
	"fmt"
	"io"
	"strings"
)

// Severity orders diagnostics from merely informational to fatal.
type Severity int

const (
	Trace Severity = iota
	Verbose
	Info
	Warning
	Error
	Fatal
)

func (s Severity) String() string {
	switch s {
	case Trace:
		return "trace"
	case Verbose:
		return "verbose"
	case Info:
		return "info"
	case Warning:
		return "warning"
	case Error:
		return "error"
	case Fatal:
		return "fatal"
	default:
		return "unknown"
	}
}

// Location is a source position a Message can be tied to. File is empty for
// diagnostics with no source origin (e.g. host-level configuration errors).
type Location struct {
	File string
	Line int // 1-based; 0 means unknown
	Col  int // 1-based; 0 means unknown
}

func (l Location) String() string {
	if l.File == "" && l.Line == 0 {
		return "<unknown>"
	}
	return fmt.Sprintf("%s:%d:%d", l.File, l.Line, l.Col)
}

// Message is one structured diagnostic: a severity, a stable numeric code
// (see codes.go for the ranges), a source location, and a human payload.
type Message struct {
	Severity Severity
	Code     int
	Loc      Location
	Payload  string
}

func (m Message) String() string {
	return fmt.Sprintf("%s[%d] at %s: %s", m.Severity, m.Code, m.Loc, m.Payload)
}

// Sink accepts diagnostics. Every component in this module that needs to
// report something — the preprocessor, the parsers, the execution engine —
// takes a Sink rather than writing to a fixed destination, so hosts can
// redirect, buffer, or filter presentation.
type Sink interface {
	Emit(Message)
}

// WriterSink renders messages as human-readable lines (with a caret-style
// snippet when source text is available) to an io.Writer. It is the default
// Sink used by the CLI.
type WriterSink struct {
	W      io.Writer
	Source func(file string) (string, bool) // optional: supplies source text for caret snippets
}

func NewWriterSink(w io.Writer) *WriterSink { return &WriterSink{W: w} }

func (s *WriterSink) Emit(m Message) {
	fmt.Fprintln(s.W, m.String())
	if s.Source == nil || m.Loc.File == "" || m.Loc.Line <= 0 {
		return
	}
	src, ok := s.Source(m.Loc.File)
	if !ok {
		return
	}
	fmt.Fprint(s.W, Snippet(src, m.Loc.Line, m.Loc.Col))
}

// Snippet renders a Python-style caret snippet: up to one line of context
// before and after the error line, with a caret under the 1-based column.
func Snippet(src string, line, col int) string {
	lines := strings.Split(src, "\n")
	if len(lines) == 0 {
		lines = []string{""}
	}
	if line < 1 {
		line = 1
	}
	if line > len(lines) {
		line = len(lines)
	}
	if col < 1 {
		col = 1
	}

	var b strings.Builder
	if line > 1 {
		fmt.Fprintf(&b, "%4d | %s\n", line-1, lines[line-2])
	}
	fmt.Fprintf(&b, "%4d | %s\n", line, lines[line-1])
	pad := col - 1
	if pad < 0 {
		pad = 0
	}
	fmt.Fprintf(&b, "     | %s^\n", strings.Repeat(" ", pad))
	if line < len(lines) {
		fmt.Fprintf(&b, "%4d | %s\n", line+1, lines[line])
	}
	return b.String()
}

// DiscardSink drops every message; useful in tests that only care about
// return values, not diagnostic text.
type DiscardSink struct{}

func (DiscardSink) Emit(Message) {}

// CollectSink records every message it receives, in order. Useful in tests
// that assert on which diagnostics were produced.
type CollectSink struct {
	Messages []Message
}

func (c *CollectSink) Emit(m Message) { c.Messages = append(c.Messages, m) }

// HasCode reports whether any collected message carries the given code.
func (c *CollectSink) HasCode(code int) bool {
	for _, m := range c.Messages {
		if m.Code == code {
			return true
		}
	}
	return false
}
