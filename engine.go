package sqf

import "github.com/sqfvm-go/sqfvm/diag"

// run drives the two-stack interpreter loop (spec.md §4.5) until the call
// stack returns to baseDepth (the depth before this Execute call pushed its
// frame), the VM halts, or the VM suspends.
func (vm *VM) run(baseDepth int) error {
	if baseDepth == 0 {
		// A top-level Execute starts a fresh instruction count; nested
		// Execute calls made by operators share their caller's count.
		vm.instrCount = 0
	}
	for vm.Stack.Depth() > baseDepth && !vm.halted && !vm.Suspended() {
		f := vm.Stack.Top()
		if f == nil {
			break
		}

		// Step 1: pop exhausted frames.
		if f.QueueEmpty() {
			vm.Stack.Pop()
			continue
		}

		// Step 2: dequeue + update diagnostics cursor.
		instr, _ := f.Dequeue()
		f.Current = instr

		// Step 4 (checked before dispatch so a cap of N lets N instructions
		// dispatch and halts on the (N+1)th, matching "any program exceeding
		// the cap halts"). Goes
		// through fail() like any other fatal error, so a bound Debugger
		// gets the same chance to veto the halt (spec.md §6).
		vm.instrCount++
		if vm.Config.MaxInstructions > 0 && vm.instrCount > vm.Config.MaxInstructions {
			capErr := NewFatalError(diag.CodeMaximumInstructionCap, instr.Loc,
				"maximum instruction count (%d) exceeded", vm.Config.MaxInstructions)
			vm.fail(f, capErr)
			if vm.halted {
				return capErr
			}
			continue
		}

		// Step 3: dispatch.
		vm.dispatch(f, instr)

		// Step 5: debugger hook.
		if vm.Debugger != nil {
			vm.Debugger.Check(vm)
		}
	}

	return nil
}

func (vm *VM) dispatch(f *Frame, instr Instruction) {
	switch instr.Op {
	case OpPush:
		f.Push(instr.Value)

	case OpCallNular:
		vm.call(f, instr, Nular, 0)
	case OpCallUnary:
		vm.call(f, instr, Unary, 1)
	case OpCallBinary:
		vm.call(f, instr, Binary, 2)

	case OpAssignTo:
		v, ok := f.Pop()
		if !ok {
			vm.fail(f, NewRuntimeError(diag.CodeStackUnderflow, instr.Loc, "assignTo %q: work stack empty", instr.Name))
			return
		}
		vm.Stack.SetAny(instr.Name, v)

	case OpAssignToLocal:
		v, ok := f.Pop()
		if !ok {
			vm.fail(f, NewRuntimeError(diag.CodeStackUnderflow, instr.Loc, "assignToLocal %q: work stack empty", instr.Name))
			return
		}
		vm.Stack.SetLocal(instr.Name, v)

	case OpGetVariable:
		v, ok := vm.Stack.GetAny(instr.Name)
		if !ok {
			if vm.Config.VerboseReturningNil {
				vm.Sink.Emit(diag.Message{Severity: diag.Verbose, Code: diag.CodeReturningNil, Loc: instr.Loc,
					Payload: "variable \"" + instr.Name + "\" not found, returning nil"})
			}
			v = Nil()
		}
		f.Push(v)

	case OpMakeArray:
		items := make([]Value, instr.N)
		for i := instr.N - 1; i >= 0; i-- {
			v, ok := f.Pop()
			if !ok {
				vm.fail(f, NewRuntimeError(diag.CodeStackUnderflow, instr.Loc, "makeArray %d: work stack underflow", instr.N))
				return
			}
			items[i] = v
		}
		f.Push(NewArrayValue(items))

	case OpEndStatement:
		f.ClearWork()

	case OpScopeMark:
		// No-op in the basic engine; a marker for non-local control flow
		// implemented by higher-level operators (spec.md §4.5 step 3).
	}
}

func (vm *VM) call(f *Frame, instr Instruction, kind Kind, arity int) {
	op, ok := vm.Registry.Lookup(instr.Name, kind)
	if !ok {
		code := diag.CodeUnknownNularOperator
		switch kind {
		case Unary:
			code = diag.CodeUnknownUnaryOperator
		case Binary:
			code = diag.CodeUnknownBinaryOperator
		}
		vm.fail(f, NewRuntimeError(code, instr.Loc, "unknown %s operator %q", kindName(kind), instr.Name))
		return
	}

	args := make([]Value, arity)
	for i := arity - 1; i >= 0; i-- {
		v, ok := f.Pop()
		if !ok {
			vm.fail(f, NewRuntimeError(diag.CodeStackUnderflow, instr.Loc,
				"operator %q: work stack underflow", instr.Name))
			return
		}
		args[i] = v
	}

	result, err := op.Fn(vm, args)
	if err != nil {
		if re, ok := err.(*RuntimeError); ok {
			vm.fail(f, re)
		} else {
			vm.fail(f, NewRuntimeError(diag.CodeWrongOperandType, instr.Loc, "%s", err.Error()))
		}
		return
	}
	f.Push(result)
}

func kindName(k Kind) string {
	switch k {
	case Nular:
		return "nular"
	case Unary:
		return "unary"
	case Binary:
		return "binary"
	default:
		return "?"
	}
}
