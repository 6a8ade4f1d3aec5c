package sqfasm_test

import (
	"testing"

	"github.com/sqfvm-go/sqfvm"
	"github.com/sqfvm-go/sqfvm/diag"
	"github.com/sqfvm-go/sqfvm/ops"
	"github.com/sqfvm-go/sqfvm/sqfasm"
)

// spec.md §8 scenario 3: "push SCALAR 1; push SCALAR 2; callBinary +;" ->
// work stack [3].
func TestAssemblyScenario3(t *testing.T) {
	reg := sqf.NewRegistry()
	ops.RegisterAll(reg)
	vm := sqf.NewVM(diag.DiscardSink{}, reg)

	p := sqfasm.New("<test>")
	code, msgs := vm.Parse(p, "push SCALAR 1; push SCALAR 2; callBinary +;")
	for _, m := range msgs {
		t.Fatalf("parse error: %s", m)
	}
	results, err := vm.Execute(code, "test", false)
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if len(results) != 1 || results[0].AsScalar() != 3 {
		t.Fatalf("got %v, want [3]", results)
	}
}

func TestFormatRoundTrip(t *testing.T) {
	reg := sqf.NewRegistry()
	ops.RegisterAll(reg)

	src := "push SCALAR 1\npush STRING \"hi\"\ncallBinary +\nassignTo _x\ngetVariable _x\nmakeArray 2\nendStatement\n"
	p := sqfasm.New("<test>")
	code, msgs := p.Parse(src, reg)
	if len(msgs) > 0 {
		t.Fatalf("parse error: %v", msgs)
	}

	formatted := sqfasm.Format(code.Instructions)
	code2, msgs2 := p.Parse(formatted, reg)
	if len(msgs2) > 0 {
		t.Fatalf("reparse error: %v", msgs2)
	}
	if len(code2.Instructions) != len(code.Instructions) {
		t.Fatalf("round-trip instruction count mismatch: %d vs %d", len(code2.Instructions), len(code.Instructions))
	}
	for i := range code.Instructions {
		a, b := code.Instructions[i], code2.Instructions[i]
		if a.Op != b.Op || a.Name != b.Name || a.N != b.N {
			t.Fatalf("instruction %d mismatch: %+v vs %+v", i, a, b)
		}
	}
}
