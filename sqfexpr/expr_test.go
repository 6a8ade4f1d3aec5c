package sqfexpr_test

import (
	"testing"

	"github.com/sqfvm-go/sqfvm"
	"github.com/sqfvm-go/sqfvm/diag"
	"github.com/sqfvm-go/sqfvm/ops"
	"github.com/sqfvm-go/sqfvm/sqfexpr"
)

func eval(t *testing.T, src string) []sqf.Value {
	t.Helper()
	reg := sqf.NewRegistry()
	ops.RegisterAll(reg)
	vm := sqf.NewVM(diag.DiscardSink{}, reg)

	p := sqfexpr.New("<test>")
	code, msgs := vm.Parse(p, src)
	for _, m := range msgs {
		t.Fatalf("parse error: %s", m)
	}
	results, err := vm.Execute(code, "test", false)
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	return results
}

func TestArithmeticPrecedence(t *testing.T) {
	got := eval(t, "1 + 2 * 3;")
	if len(got) != 1 || got[0].AsScalar() != 7 {
		t.Fatalf("got %v, want [7]", got)
	}
}

func TestCodeBlockCallsAndUnaryWordOperator(t *testing.T) {
	got := eval(t, "call { 1 + 1 };")
	if len(got) != 1 || got[0].AsScalar() != 2 {
		t.Fatalf("got %v, want [2]", got)
	}
}

func TestPrivateDeclaration(t *testing.T) {
	got := eval(t, "private _y = 10; _y * 2;")
	if len(got) != 1 || got[0].AsScalar() != 20 {
		t.Fatalf("got %v, want [20]", got)
	}
}

func TestStringAndArrayLiterals(t *testing.T) {
	got := eval(t, `["a", "b"];`)
	if len(got) != 1 {
		t.Fatalf("got %v", got)
	}
	arr := got[0].AsArray()
	if arr == nil || arr.Len() != 2 {
		t.Fatalf("expected 2-element array, got %v", got[0])
	}
	v0, _ := arr.Get(0)
	if v0.AsString() != "a" {
		t.Fatalf("element 0 = %q, want %q", v0.AsString(), "a")
	}
}

func TestWordBinaryOperator(t *testing.T) {
	got := eval(t, "3 max 7;")
	if len(got) != 1 || got[0].AsScalar() != 7 {
		t.Fatalf("got %v, want [7]", got)
	}
}
