package sqf_test

import (
	"fmt"
	"testing"

	"github.com/sqfvm-go/sqfvm"
	"github.com/sqfvm-go/sqfvm/diag"
	"github.com/sqfvm-go/sqfvm/ops"
	"github.com/sqfvm-go/sqfvm/sqfexpr"
)

func newTestVM(t *testing.T) *sqf.VM {
	t.Helper()
	reg := sqf.NewRegistry()
	ops.RegisterAll(reg)
	return sqf.NewVM(diag.DiscardSink{}, reg)
}

func runExpr(t *testing.T, vm *sqf.VM, src string) []sqf.Value {
	t.Helper()
	p := sqfexpr.New("<test>")
	code, msgs := vm.Parse(p, src)
	for _, m := range msgs {
		t.Fatalf("parse error: %s", m)
	}
	results, err := vm.Execute(code, "test", false)
	if err != nil {
		t.Fatalf("execute error: %v", err)
	}
	return results
}

// spec.md §8 scenario 1: "1 + 2 * 3;" -> work stack [7].
func TestScenarioArithmeticPrecedence(t *testing.T) {
	vm := newTestVM(t)
	got := runExpr(t, vm, "1 + 2 * 3;")
	if len(got) != 1 || got[0].AsScalar() != 7 {
		t.Fatalf("got %v, want [7]", got)
	}
}

// spec.md §8 scenario 2: "_x = 4; _x + 1;" -> work stack [5]; _x not in any
// namespace.
func TestScenarioLocalAssignment(t *testing.T) {
	vm := newTestVM(t)
	got := runExpr(t, vm, "_x = 4; _x + 1;")
	if len(got) != 1 || got[0].AsScalar() != 5 {
		t.Fatalf("got %v, want [5]", got)
	}
	if vm.NS.Get(sqf.NSMission).Has("_x") {
		t.Fatalf("_x leaked into mission namespace")
	}
}

func TestMakeArrayPreservesSourceOrder(t *testing.T) {
	vm := newTestVM(t)
	got := runExpr(t, vm, "[1, 2, 3];")
	if len(got) != 1 {
		t.Fatalf("got %v", got)
	}
	arr := got[0].AsArray()
	if arr == nil || arr.Len() != 3 {
		t.Fatalf("expected a 3-element array, got %v", got[0])
	}
	for i, want := range []float64{1, 2, 3} {
		v, _ := arr.Get(i)
		if v.AsScalar() != want {
			t.Fatalf("element %d = %v, want %v", i, v, want)
		}
	}
}

func TestCaseInsensitiveVariableResolution(t *testing.T) {
	vm := newTestVM(t)
	runExpr(t, vm, "myVar = 10;")
	got := runExpr(t, vm, "MYVAR;")
	if len(got) != 1 || got[0].AsScalar() != 10 {
		t.Fatalf("got %v, want [10] (case-insensitive lookup)", got)
	}
}

func TestUnknownBinaryOperatorAbortsStatementOnly(t *testing.T) {
	vm := newTestVM(t)
	collect := &diag.CollectSink{}
	vm.Sink = collect
	got := runExpr(t, vm, "1 bogusOperator 2; 42;")
	if !collect.HasCode(diag.CodeUnknownBinaryOperator) {
		t.Fatalf("expected CodeUnknownBinaryOperator diagnostic, got %v", collect.Messages)
	}
	if len(got) != 1 || got[0].AsScalar() != 42 {
		t.Fatalf("expected execution to continue with the next statement, got %v", got)
	}
}

func TestInstructionCountCapHalts(t *testing.T) {
	vm := newTestVM(t)
	vm.Config.MaxInstructions = 2
	_, err := runExprErr(vm, "1 + 2 * 3;")
	if err == nil {
		t.Fatalf("expected instruction cap error")
	}
	if !vm.Halted() {
		t.Fatalf("expected VM to be halted after exceeding instruction cap")
	}
}

func runExprErr(vm *sqf.VM, src string) ([]sqf.Value, error) {
	p := sqfexpr.New("<test>")
	code, msgs := vm.Parse(p, src)
	if len(msgs) > 0 {
		return nil, fmt.Errorf("%s", msgs[0].String())
	}
	return vm.Execute(code, "test", false)
}

// vetoOnceDebugger implements sqf.Debugger: its first Stop call vetoes the
// halt, every later call allows it — used to confirm Stop is consulted
// before a halt commits (not just notified after the fact) and that a false
// return genuinely keeps the engine running instead of halting.
type vetoOnceDebugger struct {
	stopCalls int
}

func (d *vetoOnceDebugger) Check(vm *sqf.VM)                                {}
func (d *vetoOnceDebugger) Error(vm *sqf.VM, loc diag.Location, msg string) {}
func (d *vetoOnceDebugger) Stop(vm *sqf.VM) bool {
	d.stopCalls++
	return d.stopCalls > 1
}

func TestDebuggerCanVetoInstructionCapHalt(t *testing.T) {
	vm := newTestVM(t)
	vm.Config.MaxInstructions = 2
	dbg := &vetoOnceDebugger{}
	vm.Debugger = dbg

	_, err := runExprErr(vm, "1 + 2 * 3;")
	if dbg.stopCalls < 2 {
		t.Fatalf("expected Debugger.Stop to be consulted more than once (veto, then commit), got %d", dbg.stopCalls)
	}
	if err == nil {
		t.Fatalf("expected the cap to still halt once Stop stopped vetoing")
	}
	if !vm.Halted() {
		t.Fatalf("expected VM to be halted once Stop allowed it")
	}
}
