package preprocessor

import (
	"strings"
	"testing"

	"github.com/sqfvm-go/sqfvm/diag"
	"github.com/sqfvm-go/sqfvm/fileio"
)

func run(t *testing.T, files map[string]string, root string) (string, *diag.CollectSink) {
	t.Helper()
	sink := &diag.CollectSink{}
	pp := New(fileio.NewMemResolver(files), sink)
	out, _, err := pp.Run(root)
	if err != nil {
		t.Fatalf("Run(%q): %v", root, err)
	}
	return out, sink
}

// spec.md §8 scenario 4: "#define FOO 1+2\nFOO * 3" preprocesses to
// "1+2 * 3" (textual expansion, precedence applies after expansion).
func TestObjectLikeMacroExpansion(t *testing.T) {
	out, _ := run(t, map[string]string{
		"main.sqf": "#define FOO 1+2\nFOO * 3",
	}, "main.sqf")
	if got := strings.TrimSpace(out); got != "1+2 * 3" {
		t.Fatalf("got %q, want %q", got, "1+2 * 3")
	}
}

// spec.md §8 scenario 5: "#define SQ(x) (x)*(x)\nSQ(1+1)" preprocesses to
// "(1+1)*(1+1)".
func TestFunctionLikeMacroExpansion(t *testing.T) {
	out, _ := run(t, map[string]string{
		"main.sqf": "#define SQ(x) (x)*(x)\nSQ(1+1)",
	}, "main.sqf")
	if got := strings.TrimSpace(out); got != "(1+1)*(1+1)" {
		t.Fatalf("got %q, want %q", got, "(1+1)*(1+1)")
	}
}

// spec.md §8 scenario 6: "#define STR(x) #x\nSTR(hello)" preprocesses to
// "\"hello\"".
func TestStringifyOperator(t *testing.T) {
	out, _ := run(t, map[string]string{
		"main.sqf": "#define STR(x) #x\nSTR(hello)",
	}, "main.sqf")
	if got := strings.TrimSpace(out); got != `"hello"` {
		t.Fatalf("got %q, want %q", got, `"hello"`)
	}
}

// spec.md §8 scenario 7: recursive include a.h/b.h terminates with exactly
// one RecursiveInclude diagnostic.
func TestRecursiveIncludeDetection(t *testing.T) {
	_, sink := run(t, map[string]string{
		"a.h": `#include "b.h"`,
		"b.h": `#include "a.h"`,
	}, "a.h")

	count := 0
	for _, m := range sink.Messages {
		if m.Code == diag.CodeRecursiveInclude {
			count++
		}
	}
	if count != 1 {
		t.Fatalf("got %d RecursiveInclude diagnostics, want exactly 1 (messages: %v)", count, sink.Messages)
	}
}

func TestTokenPaste(t *testing.T) {
	out, _ := run(t, map[string]string{
		"main.sqf": "#define CAT(a, b) a##b\nCAT(foo, bar)",
	}, "main.sqf")
	if got := strings.TrimSpace(out); got != "foobar" {
		t.Fatalf("got %q, want %q", got, "foobar")
	}
}

func TestIfdefSkipsBody(t *testing.T) {
	out, sink := run(t, map[string]string{
		"main.sqf": "#ifdef NOPE\nskippedText\n#else\nkeptText\n#endif",
	}, "main.sqf")
	if strings.Contains(out, "skippedText") {
		t.Fatalf("expected ifdef-false branch to be dropped, got %q", out)
	}
	if !strings.Contains(out, "keptText") {
		t.Fatalf("expected else branch to be kept, got %q", out)
	}
	if sink.HasCode(diag.CodeMissingEndif) {
		t.Fatalf("unexpected MissingEndif diagnostic")
	}
}

func TestUndefinedMacroPassesThroughVerbatim(t *testing.T) {
	out, _ := run(t, map[string]string{
		"main.sqf": "hint someText;",
	}, "main.sqf")
	if strings.TrimSpace(out) != "hint someText;" {
		t.Fatalf("got %q, want verbatim pass-through", out)
	}
}
