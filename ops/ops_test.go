package ops_test

import (
	"testing"

	"github.com/sqfvm-go/sqfvm"
	"github.com/sqfvm-go/sqfvm/diag"
	"github.com/sqfvm-go/sqfvm/ops"
	"github.com/sqfvm-go/sqfvm/sqfexpr"
)

func eval(t *testing.T, vm *sqf.VM, src string) []sqf.Value {
	t.Helper()
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

func newVM(t *testing.T) *sqf.VM {
	t.Helper()
	reg := sqf.NewRegistry()
	ops.RegisterAll(reg)
	return sqf.NewVM(diag.DiscardSink{}, reg)
}

func TestIfThenElseBranches(t *testing.T) {
	vm := newVM(t)
	got := eval(t, vm, "if (1 < 2) then { 10 } else { 20 };")
	if len(got) != 1 || got[0].AsScalar() != 10 {
		t.Fatalf("got %v, want [10] (true branch)", got)
	}
	got = eval(t, vm, "if (2 < 1) then { 10 } else { 20 };")
	if len(got) != 1 || got[0].AsScalar() != 20 {
		t.Fatalf("got %v, want [20] (false branch)", got)
	}
}

func TestIfThenWithoutElse(t *testing.T) {
	vm := newVM(t)
	got := eval(t, vm, "if (2 < 1) then { 10 };")
	if len(got) != 1 || got[0].Tag() != sqf.TNil {
		t.Fatalf("got %v, want [nil] (false, no else)", got)
	}
}

func TestWhileDoAccumulates(t *testing.T) {
	vm := newVM(t)
	got := eval(t, vm, "_i = 0; _sum = 0; while { _i < 5 } do { _sum = _sum + _i; _i = _i + 1 }; _sum;")
	if len(got) != 1 || got[0].AsScalar() != 10 {
		t.Fatalf("got %v, want [10] (0+1+2+3+4)", got)
	}
}

func TestForFromToDoBindsCounter(t *testing.T) {
	vm := newVM(t)
	got := eval(t, vm, "_sum = 0; for \"_i\" from 1 to 3 do { _sum = _sum + _i }; _sum;")
	if len(got) != 1 || got[0].AsScalar() != 6 {
		t.Fatalf("got %v, want [6] (1+2+3)", got)
	}
}

func TestForEachBindsXAndIndex(t *testing.T) {
	vm := newVM(t)
	got := eval(t, vm, `_out = []; { _out = _out + [_x * 10 + _forEachIndex] } forEach [5, 6, 7]; _out;`)
	if len(got) != 1 {
		t.Fatalf("got %v", got)
	}
	arr := got[0].AsArray()
	if arr == nil || arr.Len() != 3 {
		t.Fatalf("expected a 3-element array, got %v", got[0])
	}
	want := []float64{50, 61, 72}
	for i, w := range want {
		v, _ := arr.Get(i)
		if v.AsScalar() != w {
			t.Fatalf("element %d = %v, want %v", i, v, w)
		}
	}
}

func TestSetVariableThenGetVariable(t *testing.T) {
	vm := newVM(t)
	got := eval(t, vm, `missionNamespace setVariable ["score", 42]; missionNamespace getVariable "score";`)
	if len(got) != 1 || got[0].AsScalar() != 42 {
		t.Fatalf("got %v, want [42]", got)
	}
}

// isNull has no script-visible way to produce a null OBJECT handle (every
// "for"/"while" handle this module constructs is non-nil), so this exercises
// isNull's fallback branch for non-OBJECT values instead: an unset variable
// reads back as NIL, and isNull treats NIL as null same as a null handle.
func TestIsNullOnUnsetVariable(t *testing.T) {
	vm := newVM(t)
	got := eval(t, vm, "isNull _neverSet;")
	if len(got) != 1 || !got[0].AsBool() {
		t.Fatalf("got %v, want [true] (unset variable reads back nil, isNull(nil) is true)", got)
	}
}

func TestDiagLogAndSystemChatEmitThroughSink(t *testing.T) {
	vm := newVM(t)
	collect := &diag.CollectSink{}
	vm.Sink = collect
	eval(t, vm, `diag_log "to the log"; systemChat "to the chat";`)
	if len(collect.Messages) != 2 {
		t.Fatalf("expected 2 sink messages, got %d: %v", len(collect.Messages), collect.Messages)
	}
	if collect.Messages[0].Severity != diag.Trace || collect.Messages[0].Payload != "to the log" {
		t.Fatalf("diag_log message = %+v, want Trace severity with payload %q", collect.Messages[0], "to the log")
	}
	if collect.Messages[1].Severity != diag.Info || collect.Messages[1].Payload != "to the chat" {
		t.Fatalf("systemChat message = %+v, want Info severity with payload %q", collect.Messages[1], "to the chat")
	}
}
