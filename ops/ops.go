// Package ops is the built-in operator library collaborator from spec.md
// §6: the set of named nular/unary/binary operations the execution engine
// dispatches to by name and arity. Nothing in the sqf package knows these
// operator names; RegisterAll is the only place that wires domain behavior
// onto the engine's otherwise-empty sqf.Registry.
//
// Grounded on the teacher's builtin_core.go/std_core.go/builtin_strings.go/
// builtin_misc.go (RegisterNative-style registration, one function per
// builtin, fail()-based error signalling) — generalized from MindScript's
// single-arity-native convention to the spec's three explicit arity classes
// registered under the same operator name.
package ops

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/sqfvm-go/sqfvm"
	"github.com/sqfvm-go/sqfvm/diag"
)

// RegisterAll wires the full built-in operator library onto r.
func RegisterAll(r *sqf.Registry) {
	registerArithmetic(r)
	registerComparison(r)
	registerLogic(r)
	registerString(r)
	registerArray(r)
	registerTypePredicates(r)
	registerControlFlow(r)
	registerNamespace(r)
	registerDiagnostics(r)
}

func nular(r *sqf.Registry, name string, prec int, fn sqf.Callback) {
	r.Register(sqf.Operator{Name: name, Kind: sqf.Nular, Precedence: prec, Fn: fn})
}

func unary(r *sqf.Registry, name string, prec int, fn sqf.Callback) {
	r.Register(sqf.Operator{Name: name, Kind: sqf.Unary, Precedence: prec, Fn: fn})
}

func binary(r *sqf.Registry, name string, prec int, fn sqf.Callback) {
	r.Register(sqf.Operator{Name: name, Kind: sqf.Binary, Precedence: prec, Fn: fn})
}

func typeErr(loc_ string, got sqf.Tag, want string) error {
	return fmt.Errorf("%s: expected %s, got %s", loc_, want, got)
}

func registerArithmetic(r *sqf.Registry) {
	binary(r, "+", 6, func(vm *sqf.VM, args []sqf.Value) (sqf.Value, error) {
		a, b := args[0], args[1]
		switch {
		case a.Tag() == sqf.TScalar && b.Tag() == sqf.TScalar:
			return sqf.Scalar(a.AsScalar() + b.AsScalar()), nil
		case a.Tag() == sqf.TString && b.Tag() == sqf.TString:
			return sqf.String(a.AsString() + b.AsString()), nil
		case a.Tag() == sqf.TArray && b.Tag() == sqf.TArray:
			out := append(append([]sqf.Value{}, a.AsArray().Items...), b.AsArray().Items...)
			return sqf.NewArrayValue(out), nil
		default:
			return sqf.Nil(), typeErr("+", a.Tag(), "SCALAR/STRING/ARRAY operands of matching type")
		}
	})
	binary(r, "-", 6, func(vm *sqf.VM, args []sqf.Value) (sqf.Value, error) {
		a, b := args[0], args[1]
		if a.Tag() == sqf.TScalar && b.Tag() == sqf.TScalar {
			return sqf.Scalar(a.AsScalar() - b.AsScalar()), nil
		}
		if a.Tag() == sqf.TArray && b.Tag() == sqf.TArray {
			keep := []sqf.Value{}
			for _, v := range a.AsArray().Items {
				found := false
				for _, w := range b.AsArray().Items {
					if sqf.DeepEqual(v, w) {
						found = true
						break
					}
				}
				if !found {
					keep = append(keep, v)
				}
			}
			return sqf.NewArrayValue(keep), nil
		}
		return sqf.Nil(), typeErr("-", a.Tag(), "SCALAR or ARRAY operands")
	})
	binary(r, "*", 7, func(vm *sqf.VM, args []sqf.Value) (sqf.Value, error) {
		return sqf.Scalar(args[0].AsScalar() * args[1].AsScalar()), nil
	})
	binary(r, "/", 7, func(vm *sqf.VM, args []sqf.Value) (sqf.Value, error) {
		b := args[1].AsScalar()
		if b == 0 {
			return sqf.Nil(), fmt.Errorf("division by zero")
		}
		return sqf.Scalar(args[0].AsScalar() / b), nil
	})
	binary(r, "%", 7, func(vm *sqf.VM, args []sqf.Value) (sqf.Value, error) {
		b := args[1].AsScalar()
		if b == 0 {
			return sqf.Nil(), fmt.Errorf("modulo by zero")
		}
		return sqf.Scalar(math.Mod(args[0].AsScalar(), b)), nil
	})
	binary(r, "^", 8, func(vm *sqf.VM, args []sqf.Value) (sqf.Value, error) {
		return sqf.Scalar(math.Pow(args[0].AsScalar(), args[1].AsScalar())), nil
	})
	binary(r, "min", 6, func(vm *sqf.VM, args []sqf.Value) (sqf.Value, error) {
		return sqf.Scalar(math.Min(args[0].AsScalar(), args[1].AsScalar())), nil
	})
	binary(r, "max", 6, func(vm *sqf.VM, args []sqf.Value) (sqf.Value, error) {
		return sqf.Scalar(math.Max(args[0].AsScalar(), args[1].AsScalar())), nil
	})
	unary(r, "-", 9, func(vm *sqf.VM, args []sqf.Value) (sqf.Value, error) {
		return sqf.Scalar(-args[0].AsScalar()), nil
	})
	unary(r, "abs", 9, func(vm *sqf.VM, args []sqf.Value) (sqf.Value, error) {
		return sqf.Scalar(math.Abs(args[0].AsScalar())), nil
	})
	unary(r, "sqrt", 9, func(vm *sqf.VM, args []sqf.Value) (sqf.Value, error) {
		return sqf.Scalar(math.Sqrt(args[0].AsScalar())), nil
	})
	unary(r, "round", 9, func(vm *sqf.VM, args []sqf.Value) (sqf.Value, error) {
		return sqf.Scalar(math.Round(args[0].AsScalar())), nil
	})
	unary(r, "floor", 9, func(vm *sqf.VM, args []sqf.Value) (sqf.Value, error) {
		return sqf.Scalar(math.Floor(args[0].AsScalar())), nil
	})
	unary(r, "ceil", 9, func(vm *sqf.VM, args []sqf.Value) (sqf.Value, error) {
		return sqf.Scalar(math.Ceil(args[0].AsScalar())), nil
	})
}

func registerComparison(r *sqf.Registry) {
	cmp := func(name string, prec int, fn func(a, b float64) bool) {
		binary(r, name, prec, func(vm *sqf.VM, args []sqf.Value) (sqf.Value, error) {
			return sqf.Bool(fn(args[0].AsScalar(), args[1].AsScalar())), nil
		})
	}
	cmp("<", 5, func(a, b float64) bool { return a < b })
	cmp(">", 5, func(a, b float64) bool { return a > b })
	cmp("<=", 5, func(a, b float64) bool { return a <= b })
	cmp(">=", 5, func(a, b float64) bool { return a >= b })

	binary(r, "==", 4, func(vm *sqf.VM, args []sqf.Value) (sqf.Value, error) {
		return sqf.Bool(sqf.DeepEqual(args[0], args[1])), nil
	})
	binary(r, "!=", 4, func(vm *sqf.VM, args []sqf.Value) (sqf.Value, error) {
		return sqf.Bool(!sqf.DeepEqual(args[0], args[1])), nil
	})
}

func registerLogic(r *sqf.Registry) {
	binary(r, "&&", 3, func(vm *sqf.VM, args []sqf.Value) (sqf.Value, error) {
		return sqf.Bool(args[0].AsBool() && args[1].AsBool()), nil
	})
	binary(r, "||", 2, func(vm *sqf.VM, args []sqf.Value) (sqf.Value, error) {
		return sqf.Bool(args[0].AsBool() || args[1].AsBool()), nil
	})
	unary(r, "!", 9, func(vm *sqf.VM, args []sqf.Value) (sqf.Value, error) {
		return sqf.Bool(!args[0].AsBool()), nil
	})
}

func registerString(r *sqf.Registry) {
	unary(r, "toLower", 9, func(vm *sqf.VM, args []sqf.Value) (sqf.Value, error) {
		return sqf.String(strings.ToLower(args[0].AsString())), nil
	})
	unary(r, "toUpper", 9, func(vm *sqf.VM, args []sqf.Value) (sqf.Value, error) {
		return sqf.String(strings.ToUpper(args[0].AsString())), nil
	})
	unary(r, "count", 9, func(vm *sqf.VM, args []sqf.Value) (sqf.Value, error) {
		v := args[0]
		switch v.Tag() {
		case sqf.TArray:
			return sqf.Scalar(float64(v.AsArray().Len())), nil
		case sqf.TString:
			return sqf.Scalar(float64(len([]rune(v.AsString())))), nil
		default:
			return sqf.Nil(), typeErr("count", v.Tag(), "ARRAY or STRING")
		}
	})
	binary(r, "splitString", 6, func(vm *sqf.VM, args []sqf.Value) (sqf.Value, error) {
		s, seps := args[0].AsString(), args[1].AsString()
		parts := strings.FieldsFunc(s, func(r rune) bool { return strings.ContainsRune(seps, r) })
		items := make([]sqf.Value, len(parts))
		for i, p := range parts {
			items[i] = sqf.String(p)
		}
		return sqf.NewArrayValue(items), nil
	})
	unary(r, "str", 9, func(vm *sqf.VM, args []sqf.Value) (sqf.Value, error) {
		return sqf.String(args[0].String()), nil
	})
}

func registerArray(r *sqf.Registry) {
	binary(r, "select", 6, func(vm *sqf.VM, args []sqf.Value) (sqf.Value, error) {
		arr := args[0].AsArray()
		if arr == nil {
			return sqf.Nil(), typeErr("select", args[0].Tag(), "ARRAY")
		}
		idx := int(args[1].AsScalar())
		v, ok := arr.Get(idx)
		if !ok {
			return sqf.Nil(), fmt.Errorf("select: index %d out of range [0,%d)", idx, arr.Len())
		}
		return v, nil
	})
	binary(r, "pushBack", 6, func(vm *sqf.VM, args []sqf.Value) (sqf.Value, error) {
		arr := args[0].AsArray()
		if arr == nil {
			return sqf.Nil(), typeErr("pushBack", args[0].Tag(), "ARRAY")
		}
		arr.Append(args[1])
		return sqf.Scalar(float64(arr.Len() - 1)), nil
	})
	binary(r, "resize", 6, func(vm *sqf.VM, args []sqf.Value) (sqf.Value, error) {
		arr := args[0].AsArray()
		if arr == nil {
			return sqf.Nil(), typeErr("resize", args[0].Tag(), "ARRAY")
		}
		arr.Resize(int(args[1].AsScalar()))
		return sqf.Nil(), nil
	})
	binary(r, "set", 6, func(vm *sqf.VM, args []sqf.Value) (sqf.Value, error) {
		arr := args[0].AsArray()
		pair := args[1].AsArray()
		if arr == nil || pair == nil || pair.Len() != 2 {
			return sqf.Nil(), fmt.Errorf("set: expected (array, [index, value])")
		}
		idx := int(pair.Items[0].AsScalar())
		if idx >= arr.Len() {
			arr.Resize(idx + 1)
		}
		arr.Set(idx, pair.Items[1])
		return sqf.Nil(), nil
	})
	binary(r, "in", 4, func(vm *sqf.VM, args []sqf.Value) (sqf.Value, error) {
		arr := args[1].AsArray()
		if arr == nil {
			return sqf.Nil(), typeErr("in", args[1].Tag(), "ARRAY")
		}
		for _, v := range arr.Items {
			if sqf.DeepEqual(v, args[0]) {
				return sqf.Bool(true), nil
			}
		}
		return sqf.Bool(false), nil
	})
	binary(r, "find", 6, func(vm *sqf.VM, args []sqf.Value) (sqf.Value, error) {
		arr := args[0].AsArray()
		if arr == nil {
			return sqf.Nil(), typeErr("find", args[0].Tag(), "ARRAY")
		}
		for i, v := range arr.Items {
			if sqf.DeepEqual(v, args[1]) {
				return sqf.Scalar(float64(i)), nil
			}
		}
		return sqf.Scalar(-1), nil
	})
	unary(r, "reverse", 9, func(vm *sqf.VM, args []sqf.Value) (sqf.Value, error) {
		arr := args[0].AsArray()
		if arr == nil {
			return sqf.Nil(), typeErr("reverse", args[0].Tag(), "ARRAY")
		}
		for i, j := 0, len(arr.Items)-1; i < j; i, j = i+1, j-1 {
			arr.Items[i], arr.Items[j] = arr.Items[j], arr.Items[i]
		}
		return sqf.Nil(), nil
	})
	unary(r, "sort", 9, func(vm *sqf.VM, args []sqf.Value) (sqf.Value, error) {
		arr := args[0].AsArray()
		if arr == nil {
			return sqf.Nil(), typeErr("sort", args[0].Tag(), "ARRAY")
		}
		sort.SliceStable(arr.Items, func(i, j int) bool {
			return arr.Items[i].AsScalar() < arr.Items[j].AsScalar()
		})
		return sqf.Nil(), nil
	})
}

func registerTypePredicates(r *sqf.Registry) {
	is := func(name string, tag sqf.Tag) {
		unary(r, name, 9, func(vm *sqf.VM, args []sqf.Value) (sqf.Value, error) {
			return sqf.Bool(args[0].Tag() == tag), nil
		})
	}
	is("isNil", sqf.TNil)
	is("isArray", sqf.TArray)
	is("isText", sqf.TString)
	is("isNumber", sqf.TScalar)
	is("isCode", sqf.TCode)
	unary(r, "typeName", 9, func(vm *sqf.VM, args []sqf.Value) (sqf.Value, error) {
		return sqf.String(args[0].Tag().String()), nil
	})
	// isNull: for OBJECT-kind handles, true only for a nil handle reference;
	// every other type falls back to the NOTHING check (this module has no
	// per-type null sentinel the way real SQF distinguishes objNull/grpNull).
	unary(r, "isNull", 9, func(vm *sqf.VM, args []sqf.Value) (sqf.Value, error) {
		v := args[0]
		if v.Tag() == sqf.TObject {
			return sqf.Bool(v.AsObject() == nil), nil
		}
		return sqf.Bool(v.IsNil()), nil
	})
}

// loopState is the payload stashed behind a "LOOP_WHILE"/"LOOP_FOR" Object
// handle while "while"/"for"/"from"/"to" build up a loop description for
// "do" to run. Nothing outside this file knows this type exists; the engine
// only ever sees it as an opaque sqf.Object.
type loopState struct {
	cond             *sqf.Code // while
	varName          string    // for
	from, to         float64
	haveFrom, haveTo bool
}

func registerControlFlow(r *sqf.Registry) {
	unary(r, "call", 9, func(vm *sqf.VM, args []sqf.Value) (sqf.Value, error) {
		return callCode(vm, args[0], false)
	})
	// "if (cond) then {a} else {b}": "if" is a near-identity unary that just
	// validates its operand is BOOL (real SQF's IF_TYPE carries no other
	// state); "else" binds tighter than "then" so "{a} else {b}" combines
	// into a branch pair before "then" ever sees it.
	unary(r, "if", 9, func(vm *sqf.VM, args []sqf.Value) (sqf.Value, error) {
		if args[0].Tag() != sqf.TBool {
			return sqf.Nil(), typeErr("if", args[0].Tag(), "BOOL")
		}
		return args[0], nil
	})
	binary(r, "else", 5, func(vm *sqf.VM, args []sqf.Value) (sqf.Value, error) {
		thenCode, elseCode := args[0].AsCode(), args[1].AsCode()
		if thenCode == nil || elseCode == nil {
			return sqf.Nil(), typeErr("else", args[0].Tag(), "CODE else CODE")
		}
		return sqf.ObjectVal(&sqf.Object{Kind: "IF_ELSE", Payload: [2]*sqf.Code{thenCode, elseCode}}), nil
	})
	binary(r, "then", 4, func(vm *sqf.VM, args []sqf.Value) (sqf.Value, error) {
		cond := args[0].AsBool()
		branch := args[1]
		if obj := branch.AsObject(); obj != nil && obj.Kind == "IF_ELSE" {
			pair := obj.Payload.([2]*sqf.Code)
			if cond {
				return callCode(vm, sqf.CodeVal(pair[0]), false)
			}
			return callCode(vm, sqf.CodeVal(pair[1]), false)
		}
		if cond {
			return callCode(vm, branch, false)
		}
		return sqf.Nil(), nil
	})
	binary(r, "exitWith", 4, func(vm *sqf.VM, args []sqf.Value) (sqf.Value, error) {
		if args[0].AsBool() {
			return callCode(vm, args[1], false)
		}
		return sqf.Nil(), nil
	})

	// "while {cond} do {body}": "while" captures the condition code behind a
	// LOOP_WHILE handle; "do" below drives the loop once it also sees the
	// body.
	unary(r, "while", 9, func(vm *sqf.VM, args []sqf.Value) (sqf.Value, error) {
		cond := args[0].AsCode()
		if cond == nil {
			return sqf.Nil(), typeErr("while", args[0].Tag(), "CODE")
		}
		return sqf.ObjectVal(&sqf.Object{Kind: "LOOP_WHILE", Payload: &loopState{cond: cond}}), nil
	})

	// "for "_i" from a to b do {body}": "for" captures the counter variable
	// name; "from"/"to" fill in the bounds; "do" runs it.
	unary(r, "for", 9, func(vm *sqf.VM, args []sqf.Value) (sqf.Value, error) {
		if args[0].Tag() != sqf.TString {
			return sqf.Nil(), typeErr("for", args[0].Tag(), "STRING (loop variable name)")
		}
		return sqf.ObjectVal(&sqf.Object{Kind: "LOOP_FOR", Payload: &loopState{varName: args[0].AsString()}}), nil
	})
	binary(r, "from", 6, func(vm *sqf.VM, args []sqf.Value) (sqf.Value, error) {
		obj := args[0].AsObject()
		if obj == nil || obj.Kind != "LOOP_FOR" {
			return sqf.Nil(), typeErr("from", args[0].Tag(), `result of "for <name>"`)
		}
		ls := obj.Payload.(*loopState)
		ls.from = args[1].AsScalar()
		ls.haveFrom = true
		return args[0], nil
	})
	binary(r, "to", 6, func(vm *sqf.VM, args []sqf.Value) (sqf.Value, error) {
		obj := args[0].AsObject()
		if obj == nil || obj.Kind != "LOOP_FOR" {
			return sqf.Nil(), typeErr("to", args[0].Tag(), `result of "for <name> from <n>"`)
		}
		ls := obj.Payload.(*loopState)
		if !ls.haveFrom {
			return sqf.Nil(), fmt.Errorf(`to: "for %q" is missing "from"`, ls.varName)
		}
		ls.to = args[1].AsScalar()
		ls.haveTo = true
		return args[0], nil
	})
	binary(r, "do", 4, func(vm *sqf.VM, args []sqf.Value) (sqf.Value, error) {
		obj := args[0].AsObject()
		body := args[1].AsCode()
		if obj == nil || body == nil {
			return sqf.Nil(), typeErr("do", args[0].Tag(), `result of "while {...}" or "for ... to ..."`)
		}
		ls, ok := obj.Payload.(*loopState)
		if !ok {
			return sqf.Nil(), typeErr("do", args[0].Tag(), "a while/for loop handle")
		}
		var last sqf.Value = sqf.Nil()
		switch obj.Kind {
		case "LOOP_WHILE":
			for i := 0; i < 1_000_000; i++ {
				cv, err := callCode(vm, sqf.CodeVal(ls.cond), false)
				if err != nil {
					return sqf.Nil(), err
				}
				if !cv.AsBool() {
					break
				}
				last, err = callCode(vm, args[1], false)
				if err != nil {
					return sqf.Nil(), err
				}
			}
		case "LOOP_FOR":
			if !ls.haveFrom || !ls.haveTo {
				return sqf.Nil(), fmt.Errorf(`do: "for %q" is missing "from"/"to"`, ls.varName)
			}
			for i := ls.from; i <= ls.to; i++ {
				v, err := callCodeWithLocals(vm, args[1], map[string]sqf.Value{ls.varName: sqf.Scalar(i)})
				if err != nil {
					return sqf.Nil(), err
				}
				last = v
			}
		default:
			return sqf.Nil(), typeErr("do", args[0].Tag(), "a while/for loop handle")
		}
		return last, nil
	})

	binary(r, "forEach", 4, func(vm *sqf.VM, args []sqf.Value) (sqf.Value, error) {
		code := args[0].AsCode()
		arr := args[1].AsArray()
		if code == nil || arr == nil {
			return sqf.Nil(), typeErr("forEach", args[0].Tag(), "CODE forEach ARRAY")
		}
		var last sqf.Value = sqf.Nil()
		for i, item := range arr.Items {
			v, err := callCodeWithLocals(vm, args[0], map[string]sqf.Value{
				"_x":            item,
				"_forEachIndex": sqf.Scalar(float64(i)),
			})
			if err != nil {
				return sqf.Nil(), err
			}
			last = v
		}
		return last, nil
	})
}

// callCode runs a TCode value to completion against vm's namespace set
// (bound to "mission" by default, not scheduled unless the caller wants
// suspension — callers needing that build their own frame directly via
// vm.ExecuteIn).
func callCode(vm *sqf.VM, v sqf.Value, scheduled bool) (sqf.Value, error) {
	code := v.AsCode()
	if code == nil {
		return sqf.Nil(), typeErr("call", v.Tag(), "CODE")
	}
	results, err := vm.Execute(code, "call", scheduled)
	if err != nil {
		return sqf.Nil(), err
	}
	if len(results) == 0 {
		return sqf.Nil(), nil
	}
	return results[len(results)-1], nil
}

// callCodeWithLocals is callCode plus pre-seeded locals, for loop bodies
// that bind a per-iteration variable ("_x"/"_forEachIndex", a "for" counter)
// before the body's first instruction runs.
func callCodeWithLocals(vm *sqf.VM, v sqf.Value, locals map[string]sqf.Value) (sqf.Value, error) {
	code := v.AsCode()
	if code == nil {
		return sqf.Nil(), typeErr("call", v.Tag(), "CODE")
	}
	results, err := vm.ExecuteWithLocals(code, "call", false, vm.NS.Get(sqf.NSMission), locals)
	if err != nil {
		return sqf.Nil(), err
	}
	if len(results) == 0 {
		return sqf.Nil(), nil
	}
	return results[len(results)-1], nil
}

func registerNamespace(r *sqf.Registry) {
	lookupNS := func(vm *sqf.VM, name string) *sqf.Namespace { return vm.NS.Get(name) }

	binary(r, "getVariable", 6, func(vm *sqf.VM, args []sqf.Value) (sqf.Value, error) {
		ns := args[0].AsNamespace()
		if ns == nil {
			ns = lookupNS(vm, sqf.NSMission)
		}
		v, ok := ns.Get(args[1].AsString())
		if !ok {
			return sqf.Nil(), nil
		}
		return v, nil
	})
	binary(r, "setVariable", 6, func(vm *sqf.VM, args []sqf.Value) (sqf.Value, error) {
		ns := args[0].AsNamespace()
		if ns == nil {
			ns = lookupNS(vm, sqf.NSMission)
		}
		pair := args[1].AsArray()
		if pair == nil || pair.Len() != 2 {
			return sqf.Nil(), fmt.Errorf("setVariable: expected [name, value]")
		}
		name := pair.Items[0].AsString()
		ns.Set(name, pair.Items[1])
		return sqf.Nil(), nil
	})
	nular(r, "missionNamespace", 9, func(vm *sqf.VM, args []sqf.Value) (sqf.Value, error) {
		return sqf.NamespaceVal(lookupNS(vm, sqf.NSMission)), nil
	})
	nular(r, "uiNamespace", 9, func(vm *sqf.VM, args []sqf.Value) (sqf.Value, error) {
		return sqf.NamespaceVal(lookupNS(vm, sqf.NSUI)), nil
	})
	nular(r, "profileNamespace", 9, func(vm *sqf.VM, args []sqf.Value) (sqf.Value, error) {
		return sqf.NamespaceVal(lookupNS(vm, sqf.NSProfile)), nil
	})
	nular(r, "parsingNamespace", 9, func(vm *sqf.VM, args []sqf.Value) (sqf.Value, error) {
		return sqf.NamespaceVal(lookupNS(vm, sqf.NSParsing)), nil
	})
}

func registerDiagnostics(r *sqf.Registry) {
	unary(r, "hint", 9, func(vm *sqf.VM, args []sqf.Value) (sqf.Value, error) {
		vm.Sink.Emit(sinkMessage(args[0].AsString()))
		return sqf.Nil(), nil
	})
	// diag_log/systemChat are stubs: the real game routes these to the RPT
	// log and the multiplayer chat channel respectively, neither of which
	// this module has a host for, so both just forward through the
	// diagnostic sink at a severity matching their real-game destination.
	unary(r, "diag_log", 9, func(vm *sqf.VM, args []sqf.Value) (sqf.Value, error) {
		vm.Sink.Emit(sinkMessageAt(diag.Trace, args[0].AsString()))
		return sqf.Nil(), nil
	})
	unary(r, "systemChat", 9, func(vm *sqf.VM, args []sqf.Value) (sqf.Value, error) {
		vm.Sink.Emit(sinkMessageAt(diag.Info, args[0].AsString()))
		return sqf.Nil(), nil
	})
}
