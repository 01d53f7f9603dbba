package machine

import "github.com/ondrejsv/ippcode22/lang/types"

func init() {
	registerHandler(AND, opAnd)
	registerHandler(OR, opOr)
	registerHandler(NOT, opNot)
	registerHandler(ANDS, opAnds)
	registerHandler(ORS, opOrs)
	registerHandler(NOTS, opNots)
}

func asBool(v types.Value) (types.Bool, error) {
	b, ok := v.(types.Bool)
	if !ok {
		return false, newDiagnostic(CodeTypeMismatch, "expected bool operand, got %s", v.Type())
	}
	return b, nil
}

func boolBinary(e *Engine, instr Instruction, f func(a, b types.Bool) types.Bool) (ctrl, error) {
	x, err := e.resolve(instr, 1)
	if err != nil {
		return ctrl{}, err
	}
	a, err := asBool(x)
	if err != nil {
		return ctrl{}, err
	}
	y, err := e.resolve(instr, 2)
	if err != nil {
		return ctrl{}, err
	}
	b, err := asBool(y)
	if err != nil {
		return ctrl{}, err
	}
	if err := e.Frames.Assign(e.dst(instr), f(a, b)); err != nil {
		return ctrl{}, err
	}
	return next, nil
}

func opAnd(e *Engine, instr Instruction) (ctrl, error) {
	return boolBinary(e, instr, func(a, b types.Bool) types.Bool { return a && b })
}

func opOr(e *Engine, instr Instruction) (ctrl, error) {
	return boolBinary(e, instr, func(a, b types.Bool) types.Bool { return a || b })
}

func opNot(e *Engine, instr Instruction) (ctrl, error) {
	x, err := e.resolve(instr, 1)
	if err != nil {
		return ctrl{}, err
	}
	a, err := asBool(x)
	if err != nil {
		return ctrl{}, err
	}
	if err := e.Frames.Assign(e.dst(instr), !a); err != nil {
		return ctrl{}, err
	}
	return next, nil
}

func boolStack(e *Engine, f func(a, b types.Bool) types.Bool) (ctrl, error) {
	y, err := e.Operands.Pop()
	if err != nil {
		return ctrl{}, err
	}
	x, err := e.Operands.Pop()
	if err != nil {
		return ctrl{}, err
	}
	a, err := asBool(x)
	if err != nil {
		return ctrl{}, err
	}
	b, err := asBool(y)
	if err != nil {
		return ctrl{}, err
	}
	e.Operands.Push(f(a, b))
	return next, nil
}

func opAnds(e *Engine, _ Instruction) (ctrl, error) {
	return boolStack(e, func(a, b types.Bool) types.Bool { return a && b })
}

func opOrs(e *Engine, _ Instruction) (ctrl, error) {
	return boolStack(e, func(a, b types.Bool) types.Bool { return a || b })
}

func opNots(e *Engine, _ Instruction) (ctrl, error) {
	x, err := e.Operands.Pop()
	if err != nil {
		return ctrl{}, err
	}
	a, err := asBool(x)
	if err != nil {
		return ctrl{}, err
	}
	e.Operands.Push(!a)
	return next, nil
}
