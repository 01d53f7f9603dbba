package machine

import "github.com/ondrejsv/ippcode22/lang/types"

func init() {
	registerHandler(LABEL, opLabel)
	registerHandler(JUMP, opJump)
	registerHandler(JUMPIFEQ, opJumpifeq)
	registerHandler(JUMPIFNEQ, opJumpifneq)
	registerHandler(JUMPIFEQS, opJumpifeqs)
	registerHandler(JUMPIFNEQS, opJumpifneqs)
	registerHandler(CALL, opCall)
	registerHandler(RETURN, opReturn)
	registerHandler(EXIT, opExit)
}

// LABEL does nothing at execution time; the label-to-order binding was
// already registered by the loader while building the InstructionTable.
func opLabel(e *Engine, _ Instruction) (ctrl, error) { return next, nil }

func opJump(e *Engine, instr Instruction) (ctrl, error) {
	order, err := e.Table.LabelOrder(instr.Args[0].Label)
	if err != nil {
		return ctrl{}, err
	}
	return jumpTo(order), nil
}

func condJump(e *Engine, instr Instruction, want bool) (ctrl, error) {
	x, err := e.resolve(instr, 1)
	if err != nil {
		return ctrl{}, err
	}
	y, err := e.resolve(instr, 2)
	if err != nil {
		return ctrl{}, err
	}
	eq, err := compareValues(cmpEq, x, y)
	if err != nil {
		return ctrl{}, err
	}
	if eq != want {
		return next, nil
	}
	order, err := e.Table.LabelOrder(instr.Args[0].Label)
	if err != nil {
		return ctrl{}, err
	}
	return jumpTo(order), nil
}

func opJumpifeq(e *Engine, instr Instruction) (ctrl, error)  { return condJump(e, instr, true) }
func opJumpifneq(e *Engine, instr Instruction) (ctrl, error) { return condJump(e, instr, false) }

func condJumpStack(e *Engine, instr Instruction, want bool) (ctrl, error) {
	y, err := e.Operands.Pop()
	if err != nil {
		return ctrl{}, err
	}
	x, err := e.Operands.Pop()
	if err != nil {
		return ctrl{}, err
	}
	eq, err := compareValues(cmpEq, x, y)
	if err != nil {
		return ctrl{}, err
	}
	if eq != want {
		return next, nil
	}
	order, err := e.Table.LabelOrder(instr.Args[0].Label)
	if err != nil {
		return ctrl{}, err
	}
	return jumpTo(order), nil
}

func opJumpifeqs(e *Engine, instr Instruction) (ctrl, error) {
	return condJumpStack(e, instr, true)
}

func opJumpifneqs(e *Engine, instr Instruction) (ctrl, error) {
	return condJumpStack(e, instr, false)
}

func opCall(e *Engine, instr Instruction) (ctrl, error) {
	order, err := e.Table.LabelOrder(instr.Args[0].Label)
	if err != nil {
		return ctrl{}, err
	}
	e.Calls.Push(e.pos + 1) // resume after this CALL, regardless of order gaps
	return jumpTo(order), nil
}

func opReturn(e *Engine, _ Instruction) (ctrl, error) {
	pos, err := e.Calls.Pop()
	if err != nil {
		return ctrl{}, err
	}
	return jumpToPos(pos), nil
}

func opExit(e *Engine, instr Instruction) (ctrl, error) {
	v, err := e.resolve(instr, 0)
	if err != nil {
		return ctrl{}, err
	}
	n, ok := v.(types.Int)
	if !ok {
		return ctrl{}, newDiagnostic(CodeBadValue, "EXIT: operand must be an int, got %s", v.Type())
	}
	if n < 0 || n > 49 {
		return ctrl{}, newDiagnostic(CodeBadValue, "EXIT: status %d is out of range [0,49]", n)
	}
	return exitWith(int(n)), nil
}
