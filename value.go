// Package sqf implements the value & instruction model and the execution
// engine described in spec.md §3-§4: a tagged-value runtime, a closed
// instruction set, a scope/call-stack, an operator registry, and the
// two-stack interpreter that ties them together.
//
// Grounded on the teacher's Value/Env model (interpreter.go) — generalized
// from MindScript's map/function-heavy value set to SQF's
// scalar/bool/string/array/code/namespace/handle set, and from a parent-
// linked Env chain to an explicit frame stack (scope.go) so the engine can
// expose call-stack introspection cheaply.
package sqf

import (
	"fmt"
	"strconv"
	"strings"
)

// Tag discriminates the cases of Value.
type Tag int

const (
	TNil Tag = iota
	TBool
	TScalar // IEEE-754 double
	TString // immutable UTF-8
	TArray  // shared reference
	TCode   // shared reference
	TNamespace
	TObject // opaque domain-typed handle (object/group/side/...)
)

func (t Tag) String() string {
	switch t {
	case TNil:
		return "NOTHING"
	case TBool:
		return "BOOL"
	case TScalar:
		return "SCALAR"
	case TString:
		return "STRING"
	case TArray:
		return "ARRAY"
	case TCode:
		return "CODE"
	case TNamespace:
		return "NAMESPACE"
	case TObject:
		return "OBJECT"
	default:
		return "UNKNOWN"
	}
}

// Value is the tagged union every stack slot, variable, and array element
// holds. Scalar/bool/string/nil are value-semantic; array, code, and
// namespace are shared references (copy-on-assign shares the underlying
// storage — element mutation is visible through every holder). Equality on
// shared kinds is identity-based (spec.md §3).
type Value struct {
	tag    Tag
	b      bool
	n      float64
	s      string
	arr    *Array
	code    *Code
	ns     *Namespace
	object *Object
}

// Object is an opaque domain-typed handle (object/group/side/etc). Identity
// equality only; the kind string is carried purely for diagnostics and
// typeName(). Payload lets an operator library (ops) stash its own
// structured state behind the handle — e.g. a partially-built for/while loop
// descriptor threaded through "for"/"from"/"to"/"do" — without the core
// value model needing to know anything about it.
type Object struct {
	Kind    string
	Payload any
	id      uint64
}

var objectCounter uint64

// NewObject mints a fresh, uniquely-identified handle of the given kind.
func NewObject(kind string) *Object {
	objectCounter++
	return &Object{Kind: kind, id: objectCounter}
}

func Nil() Value                 { return Value{tag: TNil} }
func Bool(b bool) Value          { return Value{tag: TBool, b: b} }
func Scalar(n float64) Value     { return Value{tag: TScalar, n: n} }
func String(s string) Value      { return Value{tag: TString, s: s} }
func ArrayVal(a *Array) Value    { return Value{tag: TArray, arr: a} }
func CodeVal(c *Code) Value      { return Value{tag: TCode, code: c} }
func NamespaceVal(n *Namespace) Value { return Value{tag: TNamespace, ns: n} }
func ObjectVal(o *Object) Value  { return Value{tag: TObject, object: o} }

// NewArrayValue is a convenience constructor wrapping a fresh Array.
func NewArrayValue(items []Value) Value { return ArrayVal(NewArray(items)) }

func (v Value) Tag() Tag { return v.tag }
func (v Value) IsNil() bool { return v.tag == TNil }

func (v Value) AsBool() bool {
	switch v.tag {
	case TBool:
		return v.b
	case TNil:
		return false
	default:
		return true
	}
}

func (v Value) AsScalar() float64 {
	switch v.tag {
	case TScalar:
		return v.n
	case TBool:
		if v.b {
			return 1
		}
		return 0
	default:
		return 0
	}
}

func (v Value) AsString() string {
	if v.tag == TString {
		return v.s
	}
	return v.String()
}

func (v Value) AsArray() *Array {
	if v.tag == TArray {
		return v.arr
	}
	return nil
}

func (v Value) AsCode() *Code {
	if v.tag == TCode {
		return v.code
	}
	return nil
}

func (v Value) AsNamespace() *Namespace {
	if v.tag == TNamespace {
		return v.ns
	}
	return nil
}

func (v Value) AsObject() *Object {
	if v.tag == TObject {
		return v.object
	}
	return nil
}

// String renders the printable form from spec.md §4.2: arrays render
// "[a, b, c]"; strings render with surrounding quotes and doubled inner
// quotes; a self-containing array renders "[...]" for the back-reference
// instead of recursing forever (stringify-time cycle guard).
func (v Value) String() string {
	var b strings.Builder
	v.writeTo(&b, map[*Array]bool{})
	return b.String()
}

func (v Value) writeTo(b *strings.Builder, seen map[*Array]bool) {
	switch v.tag {
	case TNil:
		b.WriteString("any")
	case TBool:
		if v.b {
			b.WriteString("true")
		} else {
			b.WriteString("false")
		}
	case TScalar:
		b.WriteString(formatScalar(v.n))
	case TString:
		b.WriteByte('"')
		b.WriteString(strings.ReplaceAll(v.s, `"`, `""`))
		b.WriteByte('"')
	case TArray:
		if seen[v.arr] {
			b.WriteString("[...]")
			return
		}
		seen[v.arr] = true
		defer delete(seen, v.arr)
		b.WriteByte('[')
		for i, e := range v.arr.Items {
			if i > 0 {
				b.WriteString(", ")
			}
			e.writeTo(b, seen)
		}
		b.WriteByte(']')
	case TCode:
		b.WriteString(fmt.Sprintf("<code, %d instructions>", len(v.code.Instructions)))
	case TNamespace:
		b.WriteString(fmt.Sprintf("<namespace %s>", v.ns.Name))
	case TObject:
		b.WriteString(fmt.Sprintf("<%s>", strings.ToUpper(v.object.Kind)))
	}
}

func formatScalar(n float64) string {
	if n == float64(int64(n)) && n < 1e15 && n > -1e15 {
		return strconv.FormatInt(int64(n), 10)
	}
	return strconv.FormatFloat(n, 'g', -1, 64)
}

// Equal implements spec.md §3 equality: value-semantic for scalar/bool/
// string/nil, identity-based for array/code/namespace/object.
func Equal(a, b Value) bool {
	if a.tag != b.tag {
		// Int/float distinction does not exist here (Scalar is the only
		// numeric tag) so a tag mismatch is always inequality.
		return false
	}
	switch a.tag {
	case TNil:
		return true
	case TBool:
		return a.b == b.b
	case TScalar:
		return a.n == b.n
	case TString:
		return a.s == b.s
	case TArray:
		return a.arr == b.arr
	case TCode:
		return a.code == b.code
	case TNamespace:
		return a.ns == b.ns
	case TObject:
		return a.object == b.object
	}
	return false
}

// DeepEqual additionally compares array contents element-wise (used by a few
// operators like "in"/"find"); it still treats nested shared values by
// identity once their own tag resolves (no deep comparison of namespaces).
func DeepEqual(a, b Value) bool {
	if a.tag == TArray && b.tag == TArray {
		if a.arr == b.arr {
			return true
		}
		if len(a.arr.Items) != len(b.arr.Items) {
			return false
		}
		for i := range a.arr.Items {
			if !DeepEqual(a.arr.Items[i], b.arr.Items[i]) {
				return false
			}
		}
		return true
	}
	return Equal(a, b)
}
